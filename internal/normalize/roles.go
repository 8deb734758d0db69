// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package normalize turns the selected table into canonical poll records:
// it infers which column plays which semantic role, then maps each raw row
// through that role assignment.
package normalize

import (
	"regexp"
	"strings"

	"github.com/pdiddy/pollscan/internal/discover"
	"github.com/pdiddy/pollscan/pkg/types"
)

// Role is a semantic meta column role.
type Role string

const (
	RolePollster   Role = "pollster"
	RoleSponsor    Role = "sponsor"
	RoleStartDate  Role = "startDate"
	RoleEndDate    Role = "endDate"
	RoleSampleSize Role = "sampleSize"
	RolePopulation Role = "population"
	RoleURL        Role = "url"
	RoleRace       Role = "race"
	RoleState      Role = "state"
	RoleDistrict   Role = "district"
)

// rolePatterns lists roles in resolution order with their name patterns,
// tried in order against normalized column names. The first unclaimed
// column matching the first pattern that hits wins; a column claimed by an
// earlier role is never reassigned.
var rolePatterns = []struct {
	role     Role
	patterns []*regexp.Regexp
}{
	{RolePollster, []*regexp.Regexp{
		regexp.MustCompile(`pollster`),
		regexp.MustCompile(`polling`),
		regexp.MustCompile(`\bfirm\b`),
		regexp.MustCompile(`organi[sz]ation`),
	}},
	{RoleSponsor, []*regexp.Regexp{
		regexp.MustCompile(`sponsor`),
		regexp.MustCompile(`client`),
		regexp.MustCompile(`commissioned`),
	}},
	{RoleStartDate, []*regexp.Regexp{
		regexp.MustCompile(`start`),
		regexp.MustCompile(`begin`),
		regexp.MustCompile(`from date`),
	}},
	{RoleEndDate, []*regexp.Regexp{
		regexp.MustCompile(`\bend\b`),
		regexp.MustCompile(`finish`),
		regexp.MustCompile(`to date`),
		regexp.MustCompile(`^date$`),
	}},
	{RoleSampleSize, []*regexp.Regexp{
		regexp.MustCompile(`sample`),
		regexp.MustCompile(`respondent`),
		regexp.MustCompile(`interview`),
		regexp.MustCompile(`^n$`),
	}},
	{RolePopulation, []*regexp.Regexp{
		regexp.MustCompile(`population`),
		regexp.MustCompile(`\b(rv|lv|adults)\b`),
		regexp.MustCompile(`voter type`),
	}},
	{RoleURL, []*regexp.Regexp{
		regexp.MustCompile(`\burl\b`),
		regexp.MustCompile(`\blink\b`),
		regexp.MustCompile(`source`),
	}},
	{RoleRace, []*regexp.Regexp{
		regexp.MustCompile(`race`),
		regexp.MustCompile(`contest`),
		regexp.MustCompile(`office`),
	}},
	{RoleState, []*regexp.Regexp{
		regexp.MustCompile(`\bstate\b`),
	}},
	{RoleDistrict, []*regexp.Regexp{
		regexp.MustCompile(`district`),
		regexp.MustCompile(`\bcd\b`),
	}},
}

// AnswerColumn is a column whose values are a named numeric response.
type AnswerColumn struct {
	Index int
	Label string
}

// RoleMap assigns each table column either a meta role or answer-column
// candidacy. Built once per selected table; all row access during
// normalization goes through it by index.
type RoleMap struct {
	// Indexes maps each resolved meta role to its column index. Roles
	// absent from the map are unassigned.
	Indexes map[Role]int

	// Answers lists the qualifying answer columns in original column order.
	Answers []AnswerColumn
}

// Index returns the column index for a role, or -1 when unassigned.
func (m RoleMap) Index(r Role) int {
	if i, ok := m.Indexes[r]; ok {
		return i
	}
	return -1
}

// InferRoles resolves meta roles against the table's column names, then
// qualifies the remaining columns as answer columns by numeric density:
// sampling the leading rows, at least cfg.AnswerDensity of the non-blank
// sampled values must parse as numeric.
func InferRoles(t *types.Table, cfg types.EngineConfig) RoleMap {
	cfg = cfg.Defaults()

	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = discover.NormalizeName(c)
	}

	claimed := make(map[int]bool)
	indexes := make(map[Role]int)

	for _, rp := range rolePatterns {
		for _, pat := range rp.patterns {
			found := -1
			for i, n := range names {
				if claimed[i] || n == "" {
					continue
				}
				if pat.MatchString(n) {
					found = i
					break
				}
			}
			if found >= 0 {
				indexes[rp.role] = found
				claimed[found] = true
				break
			}
		}
	}

	var answers []AnswerColumn
	for i, raw := range t.Columns {
		if claimed[i] || strings.TrimSpace(raw) == "" {
			continue
		}
		if answerDensity(t, i, cfg.AnswerSampleRows) >= cfg.AnswerDensity {
			answers = append(answers, AnswerColumn{Index: i, Label: strings.TrimSpace(raw)})
		}
	}

	return RoleMap{Indexes: indexes, Answers: answers}
}

// answerDensity returns the fraction of non-blank sampled cells in a
// column that parse as numeric. A column with no non-blank samples has
// zero density.
func answerDensity(t *types.Table, col, sampleRows int) float64 {
	nonBlank, numeric := 0, 0
	for row := 0; row < len(t.Rows) && row < sampleRows; row++ {
		c := t.CellAt(row, col)
		if IsBlank(c) {
			continue
		}
		nonBlank++
		if _, ok := ParsePct(c); ok {
			numeric++
		}
	}
	if nonBlank == 0 {
		return 0
	}
	return float64(numeric) / float64(nonBlank)
}
