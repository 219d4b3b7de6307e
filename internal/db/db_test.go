package db

import (
	"context"
	"encoding/json"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/martin/listing-hunter/internal/types"
)

// testDB connects to the database named by TEST_DATABASE_URL. The suite
// is skipped when the variable is unset, so unit test runs need no
// PostgreSQL instance.
func testDB(t *testing.T) *DB {
	t.Helper()
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	database, err := Connect(context.Background(), url)
	require.NoError(t, err)
	t.Cleanup(database.Close)

	require.NoError(t, database.Migrate(context.Background()))
	return database
}

func TestRunLifecycle(t *testing.T) {
	database := testDB(t)
	ctx := context.Background()
	sessionID := uuid.NewString()

	runID, err := database.CreateRun(ctx, sessionID, "property", "2kk praha 3")
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, runID)

	run, err := database.GetRun(ctx, runID)
	require.NoError(t, err)
	require.NotNil(t, run)
	assert.Equal(t, sessionID, run.SessionID)
	assert.Equal(t, "property", run.Kind)
	assert.Equal(t, "2kk praha 3", run.Query)
	assert.Equal(t, RunStatusRunning, run.Status)
	assert.Nil(t, run.CompletedAt)

	require.NoError(t, database.CompleteRun(ctx, runID, RunStatusCompleted))

	run, err = database.GetRun(ctx, runID)
	require.NoError(t, err)
	assert.Equal(t, RunStatusCompleted, run.Status)
	assert.NotNil(t, run.CompletedAt)
}

func TestGetRun_NotFound(t *testing.T) {
	database := testDB(t)

	run, err := database.GetRun(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Nil(t, run)
}

func TestGetRunBySession(t *testing.T) {
	database := testDB(t)
	ctx := context.Background()
	sessionID := uuid.NewString()

	first, err := database.CreateRun(ctx, sessionID, "property", "")
	require.NoError(t, err)
	second, err := database.CreateRun(ctx, sessionID, "property", "")
	require.NoError(t, err)

	run, err := database.GetRunBySession(ctx, sessionID)
	require.NoError(t, err)
	require.NotNil(t, run)
	assert.Contains(t, []uuid.UUID{first, second}, run.ID)

	missing, err := database.GetRunBySession(ctx, uuid.NewString())
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestStageStatuses(t *testing.T) {
	database := testDB(t)
	ctx := context.Background()

	runID, err := database.CreateRun(ctx, uuid.NewString(), "property", "")
	require.NoError(t, err)

	require.NoError(t, database.SaveStageStatus(ctx, runID, "search", "completed", ""))
	require.NoError(t, database.SaveStageStatus(ctx, runID, "filter", "failed", "boom"))

	records, err := database.ListStageStatuses(ctx, runID)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "search", records[0].Stage)
	assert.Empty(t, records[0].Error)
	assert.Equal(t, "filter", records[1].Stage)
	assert.Equal(t, "boom", records[1].Error)

	// Upsert replaces rather than duplicates.
	require.NoError(t, database.SaveStageStatus(ctx, runID, "filter", "completed", ""))
	records, err = database.ListStageStatuses(ctx, runID)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "completed", records[1].Status)
	assert.Empty(t, records[1].Error)
}

func TestArtifacts(t *testing.T) {
	database := testDB(t)
	ctx := context.Background()

	runID, err := database.CreateRun(ctx, uuid.NewString(), "property", "")
	require.NoError(t, err)

	listings := []types.Listing{{
		Kind:     types.KindProperty,
		Title:    "2+1 Apartment",
		Location: "Praha 2",
		Link:     "https://example.com/p/1",
		Scored:   true,
		Score:    84.2,
	}}
	require.NoError(t, database.SaveArtifact(ctx, runID, "score", listings))

	raw, err := database.GetArtifact(ctx, runID, "score")
	require.NoError(t, err)
	require.NotNil(t, raw)

	var got []types.Listing
	require.NoError(t, json.Unmarshal(raw, &got))
	require.Len(t, got, 1)
	assert.Equal(t, "2+1 Apartment", got[0].Title)
	assert.Equal(t, 84.2, got[0].Score)

	missing, err := database.GetArtifact(ctx, runID, "notify")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestListRuns(t *testing.T) {
	database := testDB(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := database.CreateRun(ctx, uuid.NewString(), "job", "")
		require.NoError(t, err)
	}

	runs, err := database.ListRuns(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, runs, 2)
}
