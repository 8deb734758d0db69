// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package discover scores parsed tables and selects the authoritative
// dataset among the candidates, or reports the typed outcome when no
// candidate qualifies.
package discover

import (
	"math"
	"regexp"
	"strings"

	"github.com/pdiddy/pollscan/pkg/types"
)

// signal is one scoring category. A table earns the weight once if any of
// its normalized column names matches the pattern; repeated matches of the
// same category do not accumulate.
type signal struct {
	name    string
	pattern *regexp.Regexp
	weight  float64
}

// signals are the column-name categories a poll dataset is expected to
// show. Score is monotonic non-decreasing in the number of distinct
// categories matched.
var signals = []signal{
	{"pollster", regexp.MustCompile(`pollster|polling|\bfirm\b|organi[sz]ation|surveyor`), 10},
	{"start date", regexp.MustCompile(`start|begin|field.?start|from.?date`), 10},
	{"end date", regexp.MustCompile(`\bend\b|finish|field.?end|to.?date`), 10},
	{"sample", regexp.MustCompile(`sample|respondent|interview|\bn\b`), 10},
	{"race", regexp.MustCompile(`race|contest|district|\bstate\b|geograph|office`), 10},
	{"answers", regexp.MustCompile(`approve|disapprove|\bdem\b|democrat|republican|\bgop\b|\brep\b|favor`), 10},
}

// trackingPattern marks tables that are analytics instrumentation rather
// than data. One hit sinks the table to trackingSentinel regardless of
// anything else it matches.
var trackingPattern = regexp.MustCompile(`tag ?manager|data ?layer|analytics|\bgtm\b|utm ?(source|medium|campaign)|pixel`)

const (
	trackingSentinel = -1000

	rowBonusCap    = 200
	colBonusCap    = 30
	smallTablePnty = 25
)

// nameAllowed keeps letters, digits, spaces, and a small punctuation
// allow-list when normalizing column names.
func nameAllowed(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == ' ', r == '%', r == '-', r == '_', r == '/':
		return true
	}
	return false
}

// NormalizeName lowercases a column name, collapses whitespace, and strips
// punctuation outside the allow-list. Shared with role inference so both
// stages see identical names.
func NormalizeName(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		if nameAllowed(r) {
			b.WriteRune(r)
		} else {
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// Score assigns a plausibility score to a table. Larger and richer tables
// win ties through capped volume bonuses; tables under the row floor are
// penalized; tracking tables are sunk outright.
func Score(t *types.Table, cfg types.EngineConfig) float64 {
	cfg = cfg.Defaults()

	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = NormalizeName(c)
	}
	joined := strings.Join(names, " | ")

	if trackingPattern.MatchString(joined) {
		return trackingSentinel
	}

	var score float64
	for _, sig := range signals {
		for _, n := range names {
			if sig.pattern.MatchString(n) {
				score += sig.weight
				break
			}
		}
	}

	score += math.Min(float64(len(t.Rows)), rowBonusCap) / 10
	score += math.Min(float64(len(t.Columns)), colBonusCap) / 2

	if len(t.Rows) < cfg.MinRows {
		score -= smallTablePnty
	}
	return score
}
