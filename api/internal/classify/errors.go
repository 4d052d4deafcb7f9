package classify

import (
	"fmt"
	"time"
)

// NotFoundError means the SpeciesNet installation directory is missing.
// Environment misconfiguration, not a client problem.
type NotFoundError struct {
	Path string
	Err  error
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("speciesnet installation not found at %s: %v", e.Path, e.Err)
}

func (e *NotFoundError) Unwrap() error { return e.Err }

// ExecError carries the model process's nonzero exit status and stderr.
// Never retried: a transient model failure is indistinguishable from a
// deterministic one at this layer.
type ExecError struct {
	ExitCode int
	Stderr   string
}

func (e *ExecError) Error() string {
	return fmt.Sprintf("speciesnet exited with code %d: %s", e.ExitCode, e.Stderr)
}

// TimeoutError means the model process was killed after exceeding the
// configured wall-clock limit.
type TimeoutError struct {
	Limit time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("speciesnet did not finish within %s", e.Limit)
}

// OutputError means the model exited cleanly but left output this package
// could not parse. That is a contract violation on the model's side.
type OutputError struct {
	Excerpt string
	Err     error
}

func (e *OutputError) Error() string {
	return fmt.Sprintf("unparseable speciesnet output: %v", e.Err)
}

func (e *OutputError) Unwrap() error { return e.Err }
