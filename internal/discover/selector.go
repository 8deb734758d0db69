// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package discover

import (
	"github.com/pdiddy/pollscan/pkg/types"
)

// Candidate pairs a parsed table with its plausibility score.
type Candidate struct {
	Table *types.Table
	Score float64
}

// ScoreAll scores every parsed table, preserving candidate order.
func ScoreAll(tables []*types.Table, cfg types.EngineConfig) []Candidate {
	cands := make([]Candidate, 0, len(tables))
	for _, t := range tables {
		cands = append(cands, Candidate{Table: t, Score: Score(t, cfg)})
	}
	return cands
}

// Select returns the highest-scoring candidate at or above the selection
// floor. Tables under the row floor are ineligible outright, no matter how
// strongly their columns match. Ties break to the earliest-encountered
// candidate. A nil return is the normal "no dataset found" outcome, not an
// error: callers wrap it in a NoDatasetError with the candidate scores
// attached.
func Select(cands []Candidate, cfg types.EngineConfig) *Candidate {
	cfg = cfg.Defaults()

	best := -1
	for i, c := range cands {
		if len(c.Table.Rows) < cfg.MinRows {
			continue
		}
		if best < 0 || c.Score > cands[best].Score {
			best = i
		}
	}
	if best < 0 || cands[best].Score < cfg.MinScore {
		return nil
	}
	return &cands[best]
}
