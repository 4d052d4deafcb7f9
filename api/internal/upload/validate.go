package upload

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// Extensions is the upload allow-list, matched case-insensitively against the
// part after the last dot.
var Extensions = []string{"png", "jpg", "jpeg", "gif", "bmp", "tiff", "webp"}

type ValidationKind int

const (
	MissingField ValidationKind = iota
	EmptyFilename
	UnsupportedExtension
)

type ValidationError struct {
	Kind     ValidationKind
	Filename string
}

func (e *ValidationError) Error() string {
	switch e.Kind {
	case MissingField:
		return "no image field in request"
	case EmptyFilename:
		return "no file selected"
	case UnsupportedExtension:
		return fmt.Sprintf("unsupported file type: %q", e.Filename)
	}
	return "invalid upload"
}

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9_.-]`)

// SafeName strips directory components and anything outside [A-Za-z0-9_.-],
// mirroring werkzeug's secure_filename which the original API relied on.
func SafeName(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, " ", "_")
	name = unsafeChars.ReplaceAllString(name, "")
	name = strings.TrimLeft(name, ".")
	return name
}

func allowed(name string) bool {
	i := strings.LastIndex(name, ".")
	if i < 0 {
		return false
	}
	ext := strings.ToLower(name[i+1:])
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}
	return false
}

// Validate checks the declared filename and returns a filesystem-safe version
// of it. It has no side effects; nothing touches disk before it passes.
func Validate(filename string) (string, *ValidationError) {
	if filename == "" {
		return "", &ValidationError{Kind: EmptyFilename}
	}
	if !allowed(filename) {
		return "", &ValidationError{Kind: UnsupportedExtension, Filename: filename}
	}
	safe := SafeName(filename)
	if safe == "" || safe == "." {
		return "", &ValidationError{Kind: EmptyFilename}
	}
	return safe, nil
}
