// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package engine runs the full dataset discovery and normalization
// pipeline over an already-captured payload pool: parse every payload,
// score and select the authoritative table, infer column roles, normalize
// rows, and route the records into the report buckets.
//
// The pipeline is synchronous, deterministic, and free of I/O. The two
// terminal outcomes (no dataset found, empty after normalization) are
// typed errors from the discover package; individual parse failures and
// skipped rows are absorbed locally.
package engine

import (
	"fmt"
	"io"
	"time"

	"github.com/pdiddy/pollscan/internal/classify"
	"github.com/pdiddy/pollscan/internal/discover"
	"github.com/pdiddy/pollscan/internal/normalize"
	"github.com/pdiddy/pollscan/internal/tabular"
	"github.com/pdiddy/pollscan/pkg/types"
)

// Run executes the pipeline and builds the report document. fetchedAt
// records when the payload pool was collected; progress goes to w.
func Run(payloads []types.RawPayload, cfg types.EngineConfig, fetchedAt time.Time, w io.Writer) (*types.Report, error) {
	cfg = cfg.Defaults()

	var tables []*types.Table
	for _, p := range payloads {
		t := tabular.Parse(p)
		if t == nil {
			fmt.Fprintf(w, "skipped %s: no parser recognized it\n", p.URL)
			continue
		}
		fmt.Fprintf(w, "parsed %s as %s (%d cols, %d rows)\n",
			p.URL, t.Format, len(t.Columns), len(t.Rows))
		tables = append(tables, t)
	}

	cands := discover.ScoreAll(tables, cfg)
	for _, c := range cands {
		fmt.Fprintf(w, "candidate %s (%s): %.1f\n", c.Table.SourceURL, c.Table.Format, c.Score)
	}

	winner := discover.Select(cands, cfg)
	if winner == nil {
		return nil, &discover.NoDatasetError{Candidates: discover.Summarize(cands)}
	}
	fmt.Fprintf(w, "selected %s (%s, score %.1f)\n",
		winner.Table.SourceURL, winner.Table.Format, winner.Score)

	roles := normalize.InferRoles(winner.Table, cfg)
	result := normalize.Rows(winner.Table, roles)
	if len(result.Records) == 0 {
		var sample []types.Cell
		if len(winner.Table.Rows) > 0 {
			sample = winner.Table.Rows[0]
		}
		return nil, &discover.EmptyNormalizationError{
			DatasetURL:  winner.Table.SourceURL,
			Columns:     winner.Table.Columns,
			SampleRow:   sample,
			RowsSkipped: result.Skipped,
		}
	}
	fmt.Fprintf(w, "normalized %d records (%d rows skipped)\n",
		len(result.Records), result.Skipped)

	buckets := classify.Route(result.Records)

	report := &types.Report{
		Meta: types.ReportMeta{
			FetchedAt:     fetchedAt,
			DatasetURL:    winner.Table.SourceURL,
			DatasetFormat: string(winner.Table.Format),
		},
		GenericBallot: buckets.GenericBallot,
		Approval:      buckets.Approval,
		Races:         buckets.Races,
	}
	fmt.Fprintf(w, "report: %d generic-ballot, %d approval, %d races\n",
		len(report.GenericBallot), len(report.Approval), len(report.Races))
	return report, nil
}
