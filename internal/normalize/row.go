// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package normalize

import (
	"github.com/pdiddy/pollscan/pkg/types"
)

// Result holds the retained records and skip statistics from one table.
type Result struct {
	Records []types.CanonicalRecord

	// Skipped counts rows dropped for carrying neither a pollster nor any
	// parseable answer. Counted, never surfaced as an error.
	Skipped int
}

// Rows maps every raw row through the role map into a canonical record,
// preserving row order. A row is retained only if it has a pollster value
// or at least one successfully parsed answer.
func Rows(t *types.Table, rm RoleMap) Result {
	var res Result

	for row := range t.Rows {
		cell := func(role Role) types.Cell {
			idx := rm.Index(role)
			if idx < 0 {
				return nil
			}
			return t.CellAt(row, idx)
		}

		rec := types.CanonicalRecord{
			Pollster:   CleanText(cell(RolePollster)),
			Sponsor:    CleanText(cell(RoleSponsor)),
			StartDate:  ParseDate(cell(RoleStartDate)),
			EndDate:    ParseDate(cell(RoleEndDate)),
			Population: CleanText(cell(RolePopulation)),
			URL:        CleanURL(cell(RoleURL)),
			Race:       CleanText(cell(RoleRace)),
			State:      CleanText(cell(RoleState)),
			District:   CleanText(cell(RoleDistrict)),
		}
		if n, ok := ParseInt(cell(RoleSampleSize)); ok {
			rec.SampleSize = n
		}

		for _, ac := range rm.Answers {
			pct, ok := ParsePct(t.CellAt(row, ac.Index))
			if !ok {
				continue
			}
			rec.Answers = append(rec.Answers, types.Answer{Choice: ac.Label, Pct: pct})
		}

		if rec.Pollster == "" && len(rec.Answers) == 0 {
			res.Skipped++
			continue
		}
		res.Records = append(res.Records, rec)
	}

	return res
}
