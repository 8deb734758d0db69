// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package engine

import (
	"encoding/json"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/pdiddy/pollscan/internal/discover"
	"github.com/pdiddy/pollscan/pkg/types"
)

const ballotCSV = `Pollster,Start,End,Sample,Dem,GOP
Acme,1/1/2026,1/3/2026,"1,000",48%,45%
Zenith,1/2/2026,1/5/2026,800,47%,46%
Apex,1/4/2026,1/6/2026,900,46%,44%
Summit,1/5/2026,1/8/2026,1200,49%,43%
Ridge,1/7/2026,1/9/2026,700,45%,47%
Acme,1/1/2026,1/3/2026,1000,48%,45%
`

const approvalCSV = `Race,Pollster,Start,End,Approve,Disapprove
Presidential Approval,Acme,1/1/2026,1/3/2026,45%,50%
Presidential Approval,Zenith,1/2/2026,1/5/2026,44%,51%
Presidential Approval,Apex,1/4/2026,1/6/2026,46%,49%
TX Senate,Summit,1/5/2026,1/8/2026,,
Presidential Approval,Ridge,1/7/2026,1/9/2026,43%,52%
Presidential Approval,Crest,1/8/2026,1/10/2026,47%,48%
`

const scriptBody = `var config = {};
window.config = config;
function track() { return config; }
`

func run(t *testing.T, payloads []types.RawPayload) (*types.Report, error) {
	t.Helper()
	fetched := time.Date(2026, 1, 28, 12, 0, 0, 0, time.UTC)
	return Run(payloads, types.EngineConfig{}, fetched, io.Discard)
}

func TestRunGenericBallot(t *testing.T) {
	report, err := run(t, []types.RawPayload{
		{URL: "http://example.com/app.js", ContentType: "text/javascript", Body: scriptBody},
		{URL: "http://example.com/data.csv", ContentType: "text/csv", Body: ballotCSV},
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if report.Meta.DatasetURL != "http://example.com/data.csv" {
		t.Errorf("DatasetURL = %q", report.Meta.DatasetURL)
	}
	if report.Meta.DatasetFormat != string(types.FormatDelimited) {
		t.Errorf("DatasetFormat = %q", report.Meta.DatasetFormat)
	}
	if report.Meta.FetchedAt.IsZero() {
		t.Error("FetchedAt not set")
	}

	// All rows have Dem and Republican-style answers, so everything routes
	// to the generic-ballot bucket; the duplicate Acme row collapses.
	if len(report.GenericBallot) != 5 {
		t.Fatalf("len(GenericBallot) = %d, want 5", len(report.GenericBallot))
	}
	if len(report.Approval) != 0 || len(report.Races) != 0 {
		t.Errorf("unexpected buckets: approval=%d races=%v", len(report.Approval), report.Races)
	}

	first := report.GenericBallot[0]
	if first.Pollster != "Acme" || first.StartDate != "2026-01-01" || first.EndDate != "2026-01-03" {
		t.Errorf("first record = %+v", first)
	}
	if first.SampleSize != 1000 {
		t.Errorf("SampleSize = %d, want 1000", first.SampleSize)
	}
	if len(first.Answers) != 2 || first.Answers[0].Choice != "Dem" || first.Answers[0].Pct != 48 ||
		first.Answers[1].Choice != "GOP" || first.Answers[1].Pct != 45 {
		t.Errorf("Answers = %v", first.Answers)
	}

	// Untouched buckets serialize as empty collections, not null.
	data, err := json.Marshal(report)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	for _, want := range []string{`"approval":[]`, `"races":{}`} {
		if !strings.Contains(string(data), want) {
			t.Errorf("report JSON missing %s: %s", want, data)
		}
	}
}

func TestRunApprovalWithRaceColumn(t *testing.T) {
	report, err := run(t, []types.RawPayload{
		{URL: "http://example.com/data.csv", ContentType: "text/csv", Body: approvalCSV},
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if len(report.Approval) != 5 {
		t.Fatalf("len(Approval) = %d, want 5", len(report.Approval))
	}
	for _, r := range report.Approval {
		if r.Race != "Presidential Approval" {
			t.Errorf("Race = %q", r.Race)
		}
		if len(r.Answers) != 2 || r.Answers[0].Choice != "Approve" || r.Answers[1].Choice != "Disapprove" {
			t.Errorf("Answers = %v, want standardized labels", r.Answers)
		}
	}

	// The TX Senate row has no parsable answers but a pollster, so it is
	// retained and routed by its race label.
	if len(report.Races["TX Senate"]) != 1 {
		t.Errorf("Races = %v, want TX Senate entry", report.Races)
	}
}

func TestRunNoDataset(t *testing.T) {
	_, err := run(t, []types.RawPayload{
		{URL: "http://example.com/app.js", Body: scriptBody},
		{URL: "http://example.com/misc.json", Body: `{"ok":true}`},
	})

	var noData *discover.NoDatasetError
	if !errors.As(err, &noData) {
		t.Fatalf("Run() error = %v, want NoDatasetError", err)
	}
	if len(noData.Candidates) != 0 {
		t.Errorf("Candidates = %v, want none parsed", noData.Candidates)
	}
}

func TestRunNoDatasetBelowFloor(t *testing.T) {
	// Parses fine but matches no signal categories, so it never clears
	// the selection floor.
	junkCSV := `a,b,c,d,e
1,2,3,4,5
6,7,8,9,10
11,12,13,14,15
16,17,18,19,20
21,22,23,24,25
`
	_, err := run(t, []types.RawPayload{
		{URL: "http://example.com/junk.csv", ContentType: "text/csv", Body: junkCSV},
	})

	var noData *discover.NoDatasetError
	if !errors.As(err, &noData) {
		t.Fatalf("Run() error = %v, want NoDatasetError", err)
	}
	if len(noData.Candidates) != 1 {
		t.Fatalf("Candidates = %v, want the junk table", noData.Candidates)
	}
	if noData.Candidates[0].Rows != 5 {
		t.Errorf("candidate rows = %d, want 5", noData.Candidates[0].Rows)
	}
}

func TestRunEmptyNormalization(t *testing.T) {
	// Signal-rich header, but every row is blank where it matters: no
	// pollster, no numeric answers.
	emptyCSV := `Pollster,Start,End,Sample,Dem,GOP
,1/1/2026,1/3/2026,n/a,,
,1/2/2026,1/5/2026,n/a,,
,1/4/2026,1/6/2026,n/a,,
,1/5/2026,1/8/2026,n/a,,
,1/7/2026,1/9/2026,n/a,,
`
	_, err := run(t, []types.RawPayload{
		{URL: "http://example.com/empty.csv", ContentType: "text/csv", Body: emptyCSV},
	})

	var empty *discover.EmptyNormalizationError
	if !errors.As(err, &empty) {
		t.Fatalf("Run() error = %v, want EmptyNormalizationError", err)
	}
	if empty.DatasetURL != "http://example.com/empty.csv" {
		t.Errorf("DatasetURL = %q", empty.DatasetURL)
	}
	if empty.RowsSkipped != 5 {
		t.Errorf("RowsSkipped = %d, want 5", empty.RowsSkipped)
	}
	if len(empty.Columns) != 6 {
		t.Errorf("Columns = %v", empty.Columns)
	}
}

func TestRunEmptyPool(t *testing.T) {
	_, err := run(t, nil)
	var noData *discover.NoDatasetError
	if !errors.As(err, &noData) {
		t.Fatalf("Run(nil) error = %v, want NoDatasetError", err)
	}
}
