package classify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

const excerptLimit = 2000

// Runner invokes the SpeciesNet model as a child process. One invocation per
// request, blocking for the full duration of inference; concurrent requests
// are isolated by uniquely named output files.
type Runner struct {
	// Dir is the SpeciesNet installation (the cameratrapai checkout), used as
	// the child's working directory.
	Dir    string
	Python string

	// Timeout bounds one invocation; zero means unbounded, matching the
	// original deployment.
	Timeout time.Duration
}

func NewRunner(dir, python string, timeout time.Duration) *Runner {
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}
	return &Runner{Dir: dir, Python: python, Timeout: timeout}
}

// Check verifies the installation directory exists.
func (r *Runner) Check() error {
	info, err := os.Stat(r.Dir)
	if err != nil {
		return &NotFoundError{Path: r.Dir, Err: err}
	}
	if !info.IsDir() {
		return &NotFoundError{Path: r.Dir, Err: errors.New("not a directory")}
	}
	return nil
}

// Classify runs the model against imagePath and returns its predictions. The
// temporary output file is deleted after being read, whether or not parsing
// succeeded.
func (r *Runner) Classify(ctx context.Context, imagePath string) (*RawPredictions, error) {
	if err := r.Check(); err != nil {
		return nil, err
	}

	absImage, err := filepath.Abs(imagePath)
	if err != nil {
		return nil, fmt.Errorf("resolve image path: %w", err)
	}

	outPath := filepath.Join(os.TempDir(), "speciesnet_output_"+uuid.NewString()+".json")
	defer func() {
		if err := os.Remove(outPath); err != nil {
			if !os.IsNotExist(err) {
				log.Printf("failed to delete temporary output file %s: %v", outPath, err)
			}
			return
		}
		log.Printf("cleaned up temporary output file: %s", outPath)
	}()

	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, r.Python,
		"-m", "speciesnet.scripts.run_model",
		"--filepaths", absImage,
		"--predictions_json", outPath,
		"--noprogress_bars",
		"--bypass_prompts",
	)
	cmd.Dir = r.Dir
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	log.Printf("executing speciesnet: %s", strings.Join(cmd.Args, " "))

	if err := cmd.Run(); err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, &TimeoutError{Limit: r.Timeout}
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil, &ExecError{ExitCode: exitErr.ExitCode(), Stderr: excerpt(stderr.String())}
		}
		return nil, fmt.Errorf("run speciesnet: %w", err)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		return nil, fmt.Errorf("read predictions file: %w", err)
	}

	raw := &RawPredictions{}
	if err := json.Unmarshal(data, raw); err != nil {
		return nil, &OutputError{Excerpt: excerpt(string(data)), Err: err}
	}
	raw.Raw = append([]byte(nil), data...)
	return raw, nil
}

func excerpt(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > excerptLimit {
		return s[:excerptLimit]
	}
	return s
}
