// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package discover

import (
	"fmt"
	"strings"

	"github.com/pdiddy/pollscan/pkg/types"
)

// CandidateScore is the diagnostic summary of one scored candidate,
// carried inside the terminal outcomes so a failed run can be debugged
// without re-fetching anything.
type CandidateScore struct {
	URL     string       `json:"url"`
	Format  types.Format `json:"format"`
	Score   float64      `json:"score"`
	Rows    int          `json:"rows"`
	Columns int          `json:"columns"`
}

// Summarize converts scored candidates into their diagnostic form.
func Summarize(cands []Candidate) []CandidateScore {
	out := make([]CandidateScore, 0, len(cands))
	for _, c := range cands {
		out = append(out, CandidateScore{
			URL:     c.Table.SourceURL,
			Format:  c.Table.Format,
			Score:   c.Score,
			Rows:    len(c.Table.Rows),
			Columns: len(c.Table.Columns),
		})
	}
	return out
}

// NoDatasetError reports that no candidate table cleared the selection
// floor. This is an expected terminal outcome when the source pages expose
// no usable table, not a pipeline fault.
type NoDatasetError struct {
	// Candidates holds the scores of everything that was considered.
	Candidates []CandidateScore
}

func (e *NoDatasetError) Error() string {
	if len(e.Candidates) == 0 {
		return "no dataset found: no payload parsed as a table"
	}
	parts := make([]string, 0, len(e.Candidates))
	for _, c := range e.Candidates {
		parts = append(parts, fmt.Sprintf("%s (%s): %.1f", c.URL, c.Format, c.Score))
	}
	return fmt.Sprintf("no dataset found among %d candidates: %s",
		len(e.Candidates), strings.Join(parts, "; "))
}

// EmptyNormalizationError reports that a dataset was selected but row
// normalization retained zero records. Distinct from NoDatasetFound so
// callers can tell "nothing looked like data" from "the data was unusable".
type EmptyNormalizationError struct {
	// DatasetURL is the source of the table that was selected.
	DatasetURL string

	// Columns are the selected table's column names.
	Columns []string

	// SampleRow is the table's first row, for debugging.
	SampleRow []types.Cell

	// RowsSkipped counts rows dropped for lacking both identity and
	// answer signal.
	RowsSkipped int
}

func (e *EmptyNormalizationError) Error() string {
	return fmt.Sprintf("dataset %s selected but empty after normalization (%d rows skipped; columns: %s)",
		e.DatasetURL, e.RowsSkipped, strings.Join(e.Columns, ", "))
}
