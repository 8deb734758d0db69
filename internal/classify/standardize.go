// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package classify

import (
	"strings"

	"github.com/pdiddy/pollscan/pkg/types"
)

// Canonical choice labels for the two fixed buckets.
const (
	ChoiceDem        = "Dem"
	ChoiceGOP        = "GOP"
	ChoiceApprove    = "Approve"
	ChoiceDisapprove = "Disapprove"
)

// StandardizeGenericBallot returns a copy of the record with party-like
// choice labels rewritten to Dem/GOP. Labels matching neither party are
// left as-is.
func StandardizeGenericBallot(r types.CanonicalRecord) types.CanonicalRecord {
	return rewriteAnswers(r, func(label string) string {
		lower := strings.ToLower(label)
		switch {
		case demLabel.MatchString(lower):
			return ChoiceDem
		case gopLabel.MatchString(lower):
			return ChoiceGOP
		}
		return label
	})
}

// StandardizeApproval returns a copy of the record with sentiment labels
// rewritten to Approve/Disapprove. Labels matching neither are left as-is.
func StandardizeApproval(r types.CanonicalRecord) types.CanonicalRecord {
	return rewriteAnswers(r, func(label string) string {
		lower := strings.ToLower(label)
		switch {
		case disapproveLabel.MatchString(lower):
			return ChoiceDisapprove
		case approveLabel.MatchString(lower):
			return ChoiceApprove
		}
		return label
	})
}

// rewriteAnswers copies the record with each answer label mapped through
// rewrite. The source record is never mutated.
func rewriteAnswers(r types.CanonicalRecord, rewrite func(string) string) types.CanonicalRecord {
	out := r
	out.Answers = make([]types.Answer, len(r.Answers))
	for i, a := range r.Answers {
		out.Answers[i] = types.Answer{Choice: rewrite(a.Choice), Pct: a.Pct}
	}
	return out
}
