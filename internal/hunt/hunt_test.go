package hunt

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/martin/listing-hunter/internal/db"
	"github.com/martin/listing-hunter/internal/state"
	"github.com/martin/listing-hunter/internal/types"
)

type fakeSearcher struct {
	listings []types.Listing
	err      error
}

func (f *fakeSearcher) Search(_ context.Context, criteria types.Criteria) ([]types.Listing, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]types.Listing, 0, len(f.listings))
	for _, l := range f.listings {
		if l.Kind == criteria.Kind {
			out = append(out, l)
		}
	}
	return out, nil
}

type fakeNotifier struct {
	mu       sync.Mutex
	received [][]types.Listing
	err      error
}

func (f *fakeNotifier) Notify(_ context.Context, listings []types.Listing) (*types.Confirmation, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.mu.Lock()
	f.received = append(f.received, listings)
	f.mu.Unlock()
	return &types.Confirmation{Channel: "fake", Count: len(listings)}, nil
}

func (f *fakeNotifier) deliveries() [][]types.Listing {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.received
}

func propertyListing(title string, price, size float64) types.Listing {
	return types.Listing{
		Kind:     types.KindProperty,
		Title:    title,
		Location: "Praha 3",
		Link:     "https://example.com/" + title,
		Price:    price,
		SizeM2:   size,
	}
}

func jobListing(title string) types.Listing {
	return types.Listing{
		Kind:     types.KindJob,
		Title:    title,
		Company:  "Acme",
		Location: "Prague",
		Link:     "https://example.com/job/" + title,
	}
}

func TestProperties_EndToEnd(t *testing.T) {
	searcher := &fakeSearcher{listings: []types.Listing{
		propertyListing("good-deal", 15000, 48),
		propertyListing("pricey", 45000, 30),
		propertyListing("mid", 26000, 55),
	}}
	notifier := &fakeNotifier{}

	result, err := Properties(context.Background(), Options{
		Searcher: searcher,
		Notifier: notifier,
		Limit:    2,
	})

	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.True(t, result.NotificationSent)
	assert.NotEmpty(t, result.SessionID)
	assert.Empty(t, result.FailedStage)

	require.Len(t, result.StageStatuses, 4)
	names := []string{"search", "filter", "score", "notify"}
	for i, status := range result.StageStatuses {
		assert.Equal(t, names[i], status.Name)
		assert.Equal(t, types.StageCompleted, status.Status)
	}

	require.Len(t, result.TopListings, 2, "limit caps the final listing set")
	assert.Equal(t, "good-deal", result.TopListings[0].Title)
	assert.True(t, result.TopListings[0].Scored)

	deliveries := notifier.deliveries()
	require.Len(t, deliveries, 1)
	assert.Len(t, deliveries[0], 2)
}

func TestProperties_FilterByCriteria(t *testing.T) {
	budget := 20000.0
	searcher := &fakeSearcher{listings: []types.Listing{
		propertyListing("cheap", 15000, 40),
		propertyListing("expensive", 35000, 60),
	}}
	notifier := &fakeNotifier{}

	result, err := Properties(context.Background(), Options{
		Criteria: types.Criteria{MaxBudget: &budget},
		Searcher: searcher,
		Notifier: notifier,
	})

	require.NoError(t, err)
	require.True(t, result.Success)
	require.Len(t, result.TopListings, 1)
	assert.Equal(t, "cheap", result.TopListings[0].Title)
}

func TestProperties_InvalidCriteria(t *testing.T) {
	budget := -5.0

	_, err := Properties(context.Background(), Options{
		Criteria: types.Criteria{MaxBudget: &budget},
		Searcher: &fakeSearcher{},
		Notifier: &fakeNotifier{},
	})

	assert.Error(t, err)
}

func TestProperties_SearchFailureFoldedIntoResult(t *testing.T) {
	notifier := &fakeNotifier{}

	result, err := Properties(context.Background(), Options{
		Searcher: &fakeSearcher{err: errors.New("backend down")},
		Notifier: notifier,
	})

	require.NoError(t, err, "run failures are reported in the result, not returned")
	assert.False(t, result.Success)
	assert.Equal(t, "search", result.FailedStage)
	assert.Contains(t, result.Error, "backend down")
	assert.False(t, result.NotificationSent)
	assert.Empty(t, notifier.deliveries())

	require.Len(t, result.StageStatuses, 4)
	assert.Equal(t, types.StageFailed, result.StageStatuses[0].Status)
	for _, status := range result.StageStatuses[1:] {
		assert.Equal(t, types.StageNotRun, status.Status)
	}
}

func TestProperties_FallbackToMock(t *testing.T) {
	notifier := &fakeNotifier{}

	result, err := Properties(context.Background(), Options{
		Searcher:       &fakeSearcher{err: errors.New("backend down")},
		Notifier:       notifier,
		FallbackToMock: true,
	})

	require.NoError(t, err)
	assert.True(t, result.Success, "mock fixtures carry the run when the flag is set")
	assert.NotEmpty(t, result.TopListings)
}

func TestProperties_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := Properties(ctx, Options{
		Searcher: &fakeSearcher{listings: []types.Listing{propertyListing("a", 20000, 40)}},
		Notifier: &fakeNotifier{},
	})

	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.True(t, result.Cancelled)
}

func TestProperties_Progress(t *testing.T) {
	var seen []types.StageStatus

	result, err := Properties(context.Background(), Options{
		Searcher: &fakeSearcher{listings: []types.Listing{propertyListing("a", 20000, 40)}},
		Notifier: &fakeNotifier{},
		OnProgress: func(status types.StageStatus) {
			seen = append(seen, status)
		},
	})

	require.NoError(t, err)
	assert.Equal(t, result.StageStatuses, seen, "progress mirrors the final statuses")
}

func TestJobs_PassThrough(t *testing.T) {
	searcher := &fakeSearcher{listings: []types.Listing{
		jobListing("backend"), jobListing("frontend"),
	}}
	notifier := &fakeNotifier{}

	result, err := Jobs(context.Background(), Options{
		Searcher: searcher,
		Notifier: notifier,
	})

	require.NoError(t, err)
	assert.True(t, result.Success)

	require.Len(t, result.StageStatuses, 3)
	assert.Equal(t, "search", result.StageStatuses[0].Name)
	assert.Equal(t, "collect", result.StageStatuses[1].Name)
	assert.Equal(t, "notify", result.StageStatuses[2].Name)

	require.Len(t, result.TopListings, 2)
	assert.Zero(t, result.TopListings[0].Score, "job listings carry no score dimensions")
	assert.True(t, result.NotificationSent)
}

func TestBoth_RunsIndependently(t *testing.T) {
	searcher := &fakeSearcher{listings: []types.Listing{
		propertyListing("flat", 20000, 45),
		jobListing("backend"),
	}}
	notifier := &fakeNotifier{}
	opts := Options{Searcher: searcher, Notifier: notifier}

	propertyResult, jobResult, err := Both(context.Background(), opts, opts)

	require.NoError(t, err)
	require.NotNil(t, propertyResult)
	require.NotNil(t, jobResult)
	assert.True(t, propertyResult.Success)
	assert.True(t, jobResult.Success)
	assert.NotEqual(t, propertyResult.SessionID, jobResult.SessionID, "each hunt gets its own session")
	assert.Len(t, notifier.deliveries(), 2)
}

func TestBoth_FailureInOneDoesNotAbortTheOther(t *testing.T) {
	good := &fakeSearcher{listings: []types.Listing{jobListing("backend")}}
	bad := &fakeSearcher{err: errors.New("backend down")}
	notifier := &fakeNotifier{}

	propertyResult, jobResult, err := Both(context.Background(),
		Options{Searcher: bad, Notifier: notifier},
		Options{Searcher: good, Notifier: notifier},
	)

	require.NoError(t, err, "run failures are carried in the results")
	assert.False(t, propertyResult.Success)
	assert.True(t, jobResult.Success)
}

func TestNewPersister_SharedHandleNotOwned(t *testing.T) {
	handle := &db.DB{}
	p := newPersister(context.Background(), Options{Database: handle})

	assert.Same(t, handle, p.db)
	assert.False(t, p.owned, "a caller-provided handle is never closed by the run")

	// finish must leave the shared handle open for the next run.
	p.finish(context.Background(), state.New(), &types.RunResult{})
	assert.Same(t, handle, p.db)
}

func TestNewPersister_NoDatabase(t *testing.T) {
	p := newPersister(context.Background(), Options{})
	assert.Nil(t, p.db)
	assert.False(t, p.ready)
}
