package upload

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
)

// Store persists uploaded images under a dedicated directory for the duration
// of one request. Files are written under the sanitized original name, so two
// concurrent uploads of identically named files race (last writer wins). The
// classifier output path is unique per request, which is where isolation
// actually matters.
type Store struct {
	Dir string
}

func NewStore(dir string) (*Store, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve upload dir: %w", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Store{Dir: abs}, nil
}

// Save writes the upload to disk and returns its absolute path.
func (s *Store) Save(r io.Reader, safeName string) (string, error) {
	path := filepath.Join(s.Dir, safeName)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(path)
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("close %s: %w", path, err)
	}
	return path, nil
}

// Remove deletes a stored upload. Best effort: a failed delete is logged,
// never escalated, so it is safe to defer on every path.
func (s *Store) Remove(path string) {
	if path == "" {
		return
	}
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return
		}
		log.Printf("failed to delete temporary file %s: %v", path, err)
		return
	}
	log.Printf("cleaned up temporary file: %s", path)
}
