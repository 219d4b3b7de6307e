// Package hunt composes the listing stages into runnable pipelines and
// turns runner reports into caller-facing results. It is the single
// place that knows the stage order for each hunt variant.
package hunt

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/martin/listing-hunter/internal/db"
	"github.com/martin/listing-hunter/internal/gateway"
	"github.com/martin/listing-hunter/internal/gateway/mock"
	"github.com/martin/listing-hunter/internal/pipeline"
	"github.com/martin/listing-hunter/internal/stages"
	"github.com/martin/listing-hunter/internal/state"
	"github.com/martin/listing-hunter/internal/types"
)

// ProgressFunc receives each stage's terminal status as the run
// advances. It is called from the running goroutine; callers that fan
// results out must synchronize on their side.
type ProgressFunc func(status types.StageStatus)

// Options configures one hunt run.
type Options struct {
	Criteria    types.Criteria
	Preferences types.Preferences
	Limit       int

	Searcher gateway.Searcher
	Notifier gateway.Notifier

	// FallbackToMock wires the mock searcher behind the primary one.
	// Off by default: a dead backend fails the run unless the caller
	// opts in.
	FallbackToMock bool

	// Database, when set, is an open handle the caller owns; the run
	// records through it without closing it. DatabaseURL is the
	// fallback: a connection is opened for the run and closed after.
	// Persistence is skipped when neither is set.
	Database    *db.DB
	DatabaseURL string

	OnProgress ProgressFunc
	Verbose    bool
}

// Properties runs the full property pipeline: search, filter, score,
// notify.
func Properties(ctx context.Context, opts Options) (*types.RunResult, error) {
	opts.Criteria.Kind = types.KindProperty
	if opts.Preferences.TotalWeight() == 0 {
		opts.Preferences = types.DefaultPreferences()
	}
	if err := opts.Criteria.Validate(); err != nil {
		return nil, err
	}
	if err := opts.Preferences.Validate(); err != nil {
		return nil, err
	}

	search := stages.NewSearch(opts.Searcher)
	search.Verbose = opts.Verbose
	if opts.FallbackToMock {
		search.Fallback = mock.NewSearcher()
	}

	runner := pipeline.NewRunner(
		search,
		stages.NewFilter(),
		stages.NewScore(),
		stages.NewNotify(opts.Notifier),
	)
	return run(ctx, runner, opts)
}

// Jobs runs the job pipeline. Job listings have no comparable scoring
// dimensions, so the flow is search into notify.
func Jobs(ctx context.Context, opts Options) (*types.RunResult, error) {
	opts.Criteria.Kind = types.KindJob
	if err := opts.Criteria.Validate(); err != nil {
		return nil, err
	}

	search := stages.NewSearch(opts.Searcher)
	search.Verbose = opts.Verbose
	if opts.FallbackToMock {
		search.Fallback = mock.NewSearcher()
	}

	runner := pipeline.NewRunner(search, &jobPassThrough{}, stages.NewNotify(opts.Notifier))
	return run(ctx, runner, opts)
}

// Both runs the property and job pipelines concurrently over
// independent sessions. The pipelines share nothing, so a failure in
// one does not abort the other; both results are returned.
func Both(ctx context.Context, propertyOpts, jobOpts Options) (*types.RunResult, *types.RunResult, error) {
	var propertyResult, jobResult *types.RunResult

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		propertyResult, err = Properties(gctx, propertyOpts)
		return err
	})
	g.Go(func() error {
		var err error
		jobResult, err = Jobs(gctx, jobOpts)
		return err
	})
	if err := g.Wait(); err != nil {
		return propertyResult, jobResult, err
	}
	return propertyResult, jobResult, nil
}

// jobPassThrough promotes raw job listings to the scored slot. Job
// listings have no score dimensions, so they are marked as final
// as-is; the notify stage refuses anything not marked.
type jobPassThrough struct{}

func (j *jobPassThrough) Name() string      { return "collect" }
func (j *jobPassThrough) Inputs() []string  { return []string{stages.KeyRawListings} }
func (j *jobPassThrough) Outputs() []string { return []string{stages.KeyScoredListings} }

func (j *jobPassThrough) Execute(_ context.Context, store *state.Store) error {
	v, _ := store.Get(stages.KeyRawListings)
	listings, ok := v.([]types.Listing)
	if !ok {
		return fmt.Errorf("store key %q holds %T, want []types.Listing", stages.KeyRawListings, v)
	}
	out := make([]types.Listing, len(listings))
	copy(out, listings)
	for i := range out {
		out[i].Scored = true
	}
	store.Set(stages.KeyScoredListings, out)
	return nil
}

func run(ctx context.Context, runner *pipeline.Runner, opts Options) (*types.RunResult, error) {
	store := state.New()
	store.Set(stages.KeyCriteria, opts.Criteria)
	store.Set(stages.KeyPreferences, opts.Preferences)
	if opts.Limit > 0 {
		store.Set(stages.KeyLimit, opts.Limit)
	}

	persist := newPersister(ctx, opts)
	persist.start(ctx, store.SessionID(), string(opts.Criteria.Kind), opts.Criteria.Query)

	runner.Observer = func(status types.StageStatus) {
		if opts.OnProgress != nil {
			opts.OnProgress(status)
		}
		persist.stage(ctx, status)
	}

	report := runner.Run(ctx, store)
	result := assemble(store, report)
	persist.finish(ctx, store, result)
	return result, nil
}

// assemble builds the caller-facing result from the store and the
// runner's report.
func assemble(store *state.Store, report *pipeline.Report) *types.RunResult {
	result := &types.RunResult{
		SessionID:     store.SessionID(),
		Success:       report.Success(),
		Cancelled:     report.Cancelled,
		StageStatuses: report.Statuses,
		FailedStage:   report.FailedStage,
		Timestamp:     time.Now().UTC(),
	}
	if report.Err != nil {
		result.Error = report.Err.Error()
	}

	if v, ok := store.Get(stages.KeyScoredListings); ok {
		if listings, ok := v.([]types.Listing); ok {
			limit := stages.DefaultTopK
			if lv, ok := store.Get(stages.KeyLimit); ok {
				if l, ok := lv.(int); ok && l > 0 {
					limit = l
				}
			}
			if len(listings) > limit {
				listings = listings[:limit]
			}
			result.TopListings = listings
		}
	}
	if _, ok := store.Get(stages.KeyNotification); ok {
		result.NotificationSent = true
	}
	return result
}

// persister carries the optional database handle for a run. Persistence
// is best effort: a database problem is logged and the run proceeds.
type persister struct {
	db    *db.DB
	owned bool
	runID uuid.UUID
	ready bool
}

func newPersister(ctx context.Context, opts Options) *persister {
	p := &persister{}
	if opts.Database != nil {
		p.db = opts.Database
		return p
	}
	if opts.DatabaseURL == "" {
		return p
	}
	handle, err := db.Connect(ctx, opts.DatabaseURL)
	if err != nil {
		log.Printf("Warning: database unavailable, run will not be persisted: %v", err)
		return p
	}
	p.db = handle
	p.owned = true
	return p
}

func (p *persister) start(ctx context.Context, sessionID, kind, query string) {
	if p.db == nil {
		return
	}
	id, err := p.db.CreateRun(ctx, sessionID, kind, query)
	if err != nil {
		log.Printf("Warning: failed to record run: %v", err)
		return
	}
	p.runID = id
	p.ready = true
}

func (p *persister) stage(ctx context.Context, status types.StageStatus) {
	if !p.ready {
		return
	}
	if err := p.db.SaveStageStatus(ctx, p.runID, status.Name, string(status.Status), status.Error); err != nil {
		log.Printf("Warning: failed to record stage status: %v", err)
	}
}

func (p *persister) finish(ctx context.Context, store *state.Store, result *types.RunResult) {
	if p.db == nil {
		return
	}
	if p.owned {
		defer p.db.Close()
	}
	if !p.ready {
		return
	}

	if v, ok := store.Get(stages.KeyScoredListings); ok {
		if err := p.db.SaveArtifact(ctx, p.runID, "score", v); err != nil {
			log.Printf("Warning: failed to record artifact: %v", err)
		}
	}

	status := db.RunStatusCompleted
	switch {
	case result.Cancelled:
		status = db.RunStatusCancelled
	case !result.Success:
		status = db.RunStatusFailed
	}
	if err := p.db.CompleteRun(ctx, p.runID, status); err != nil {
		log.Printf("Warning: failed to complete run record: %v", err)
	}
}
