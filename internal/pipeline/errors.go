// Package pipeline provides the generic stage contract and the runner
// that executes stages sequentially over a shared session store.
package pipeline

import "fmt"

// MissingInputError indicates a stage's declared input key was absent
// from the store when the stage was about to run. Always terminal for
// the run, never retried.
type MissingInputError struct {
	Stage string
	Key   string
}

func (e *MissingInputError) Error() string {
	return fmt.Sprintf("stage %s: missing input key %q", e.Stage, e.Key)
}

// DependencyError indicates a gateway operation failed or timed out
// while a stage was executing. Terminal for the run; retrying is the
// caller's choice, by re-invoking the whole pipeline.
type DependencyError struct {
	Stage     string
	Operation string
	Cause     error
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf("stage %s: dependency %s failed: %v", e.Stage, e.Operation, e.Cause)
}

func (e *DependencyError) Unwrap() error {
	return e.Cause
}

// ContractViolationError indicates a stage claimed success without
// writing a declared output, or wrote an output owned by a stage that
// has not run yet. This is an internal defect, not a recoverable error.
type ContractViolationError struct {
	Stage   string
	Key     string
	Message string
}

func (e *ContractViolationError) Error() string {
	return fmt.Sprintf("stage %s: contract violation on key %q: %s", e.Stage, e.Key, e.Message)
}
