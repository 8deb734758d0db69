// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package classify

import (
	"strconv"
	"strings"

	"github.com/pdiddy/pollscan/pkg/types"
)

// Dedup drops records that are structurally identical by composite key,
// keeping the first occurrence and preserving the relative order of the
// kept records. Idempotent: dedup(dedup(x)) == dedup(x).
func Dedup(records []types.CanonicalRecord) []types.CanonicalRecord {
	seen := make(map[string]bool, len(records))
	out := records[:0:0]
	for _, r := range records {
		k := dedupKey(r)
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, r)
	}
	return out
}

// dedupKey joins the identity fields and rendered answers into a stable
// lowercase key.
func dedupKey(r types.CanonicalRecord) string {
	answers := make([]string, 0, len(r.Answers))
	for _, a := range r.Answers {
		answers = append(answers, a.Choice+":"+strconv.FormatFloat(a.Pct, 'g', -1, 64))
	}
	return strings.ToLower(strings.Join([]string{
		r.Pollster,
		r.EndDate,
		r.Race,
		strings.Join(answers, ";"),
		r.URL,
	}, "|"))
}
