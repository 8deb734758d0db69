// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/pollscan/pkg/types"
)

func testReport() *types.Report {
	return &types.Report{
		Meta: types.ReportMeta{
			FetchedAt:     time.Date(2026, 1, 28, 12, 0, 0, 0, time.UTC),
			DatasetURL:    "http://example.com/data.csv",
			DatasetFormat: string(types.FormatDelimited),
		},
		GenericBallot: []types.CanonicalRecord{
			{Pollster: "Acme", EndDate: "2026-01-03", SampleSize: 1000,
				Answers: []types.Answer{{Choice: "Dem", Pct: 48}, {Choice: "GOP", Pct: 45}}},
			{Pollster: "Zenith", EndDate: "2026-01-05",
				Answers: []types.Answer{{Choice: "Dem", Pct: 47}, {Choice: "GOP", Pct: 46}}},
		},
		Approval: []types.CanonicalRecord{
			{Pollster: "Apex", Race: "Presidential Approval",
				Answers: []types.Answer{{Choice: "Approve", Pct: 45}, {Choice: "Disapprove", Pct: 50}}},
		},
		Races: map[string][]types.CanonicalRecord{
			"TX Senate": {
				{Pollster: "Summit", Race: "TX Senate",
					Answers: []types.Answer{{Choice: "Smith", Pct: 51}}},
			},
		},
	}
}

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(types.StoreConfig{DataDir: t.TempDir()})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveAndLoadReport(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	runID, err := s.SaveReport(ctx, testReport())
	require.NoError(t, err)
	assert.Positive(t, runID)

	loaded, err := s.LoadReport(ctx, runID)
	require.NoError(t, err)

	assert.Equal(t, testReport(), loaded)
}

func TestLoadReportPreservesOrder(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	runID, err := s.SaveReport(ctx, testReport())
	require.NoError(t, err)

	loaded, err := s.LoadReport(ctx, runID)
	require.NoError(t, err)

	require.Len(t, loaded.GenericBallot, 2)
	assert.Equal(t, "Acme", loaded.GenericBallot[0].Pollster)
	assert.Equal(t, "Zenith", loaded.GenericBallot[1].Pollster)
}

func TestListRuns(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	first, err := s.SaveReport(ctx, testReport())
	require.NoError(t, err)
	second, err := s.SaveReport(ctx, testReport())
	require.NoError(t, err)

	runs, err := s.ListRuns(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 2)

	// Newest first.
	assert.Equal(t, second, runs[0].ID)
	assert.Equal(t, first, runs[1].ID)
	assert.Equal(t, 4, runs[0].Records)
	assert.Equal(t, "http://example.com/data.csv", runs[0].DatasetURL)
}

func TestLoadReportEmptyBucketsNonNil(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	report := testReport()
	report.Approval = []types.CanonicalRecord{}
	report.Races = map[string][]types.CanonicalRecord{}

	runID, err := s.SaveReport(ctx, report)
	require.NoError(t, err)

	loaded, err := s.LoadReport(ctx, runID)
	require.NoError(t, err)

	// Buckets with no stored records come back empty, not nil, so the
	// exported document keeps its array and object shapes.
	assert.NotNil(t, loaded.Approval)
	assert.NotNil(t, loaded.Races)
	assert.Empty(t, loaded.Approval)
	assert.Empty(t, loaded.Races)
}

func TestLoadReportMissingRun(t *testing.T) {
	s := openTestStore(t)
	_, err := s.LoadReport(context.Background(), 999)
	assert.Error(t, err)
}
