package pipeline

import (
	"context"
	"log"
	"reflect"

	"github.com/martin/listing-hunter/internal/state"
	"github.com/martin/listing-hunter/internal/types"
)

// Stage is one transformation step in a pipeline. A stage declares the
// store keys it requires before running and the keys it guarantees to
// write on success; the runner enforces both sides of that contract.
type Stage interface {
	Name() string
	Inputs() []string
	Outputs() []string
	Execute(ctx context.Context, store *state.Store) error
}

// Report is the runner's account of a single run. Errors are captured
// here rather than propagated past the runner's invocation boundary.
type Report struct {
	Statuses    []types.StageStatus
	FailedStage string
	Cancelled   bool
	Err         error
}

// Success reports whether every stage completed.
func (r *Report) Success() bool {
	return r.Err == nil && !r.Cancelled
}

// Runner executes stages strictly in declared order over a store the
// run owns exclusively. Execution is single-threaded and synchronous:
// each stage blocks until its gateway calls complete. The runner
// performs no retries.
type Runner struct {
	stages []Stage

	// Observer, when set, receives each stage status as it is
	// recorded. Called synchronously from Run.
	Observer func(status types.StageStatus)
}

// NewRunner creates a runner over an ordered stage list.
func NewRunner(stages ...Stage) *Runner {
	return &Runner{stages: stages}
}

// Stages returns the declared stage order.
func (r *Runner) Stages() []Stage {
	return r.stages
}

// Run executes all stages in order. On the first failure it halts,
// records which stage failed and why, and marks the remaining stages
// not-run. Cancellation is honored at stage boundaries and reported
// distinctly from failure.
func (r *Runner) Run(ctx context.Context, store *state.Store) *Report {
	report := &Report{
		Statuses: make([]types.StageStatus, 0, len(r.stages)),
	}

	// Declared outputs of stages that have not run yet. Writing one of
	// these from another stage is a contract violation.
	pendingOutputs := make(map[string]string)
	for _, st := range r.stages {
		for _, key := range st.Outputs() {
			pendingOutputs[key] = st.Name()
		}
	}

	for i, st := range r.stages {
		if err := ctx.Err(); err != nil {
			report.Cancelled = true
			r.record(report, types.StageStatus{
				Name:   st.Name(),
				Status: types.StageCancelled,
				Error:  err.Error(),
			})
			r.markNotRun(report, i+1)
			return report
		}

		if err := r.checkInputs(st, store); err != nil {
			r.fail(report, st.Name(), err)
			r.markNotRun(report, i+1)
			return report
		}

		// This stage may now write (or overwrite) its own outputs.
		for _, key := range st.Outputs() {
			delete(pendingOutputs, key)
		}
		before := snapshotPending(store, pendingOutputs)

		if err := st.Execute(ctx, store); err != nil {
			if ctx.Err() != nil {
				report.Cancelled = true
				r.record(report, types.StageStatus{
					Name:   st.Name(),
					Status: types.StageCancelled,
					Error:  err.Error(),
				})
			} else {
				r.fail(report, st.Name(), err)
			}
			r.markNotRun(report, i+1)
			return report
		}

		if err := r.checkOutputs(st, store, before, pendingOutputs); err != nil {
			log.Printf("FATAL: %v", err)
			r.fail(report, st.Name(), err)
			r.markNotRun(report, i+1)
			return report
		}

		r.record(report, types.StageStatus{
			Name:   st.Name(),
			Status: types.StageCompleted,
		})
	}

	return report
}

func (r *Runner) checkInputs(st Stage, store *state.Store) error {
	for _, key := range st.Inputs() {
		if !store.Has(key) {
			return &MissingInputError{Stage: st.Name(), Key: key}
		}
	}
	return nil
}

// checkOutputs verifies the stage wrote every declared output and did
// not clobber an output still owned by a stage that has not run. A
// clobber is any change to a pending key: creating it, overwriting its
// value, or removing it.
func (r *Runner) checkOutputs(st Stage, store *state.Store, before map[string]keySnapshot, pendingOutputs map[string]string) error {
	for _, key := range st.Outputs() {
		if !store.Has(key) {
			return &ContractViolationError{
				Stage:   st.Name(),
				Key:     key,
				Message: "declared output not written on success",
			}
		}
	}
	for key, owner := range pendingOutputs {
		prev := before[key]
		cur, ok := store.Get(key)
		if ok != prev.present || (ok && !reflect.DeepEqual(cur, prev.value)) {
			return &ContractViolationError{
				Stage:   st.Name(),
				Key:     key,
				Message: "wrote output key owned by pending stage " + owner,
			}
		}
	}
	return nil
}

func (r *Runner) record(report *Report, status types.StageStatus) {
	report.Statuses = append(report.Statuses, status)
	if r.Observer != nil {
		r.Observer(status)
	}
}

func (r *Runner) fail(report *Report, stage string, err error) {
	report.Err = err
	report.FailedStage = stage
	r.record(report, types.StageStatus{
		Name:   stage,
		Status: types.StageFailed,
		Error:  err.Error(),
	})
}

func (r *Runner) markNotRun(report *Report, from int) {
	for _, st := range r.stages[from:] {
		r.record(report, types.StageStatus{
			Name:   st.Name(),
			Status: types.StageNotRun,
		})
	}
}

// keySnapshot captures one pending-output key's state before a stage
// runs, so any change the stage makes to it can be detected after.
type keySnapshot struct {
	present bool
	value   any
}

func snapshotPending(store *state.Store, pendingOutputs map[string]string) map[string]keySnapshot {
	snap := make(map[string]keySnapshot, len(pendingOutputs))
	for key := range pendingOutputs {
		v, ok := store.Get(key)
		snap[key] = keySnapshot{present: ok, value: v}
	}
	return snap
}
