// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package classify routes canonical poll records into their output
// buckets, standardizes choice labels for the two fixed buckets, and
// deduplicates each bucket.
package classify

import (
	"regexp"
	"strings"

	"github.com/pdiddy/pollscan/pkg/types"
)

// Bucket names a record's destination.
type Bucket string

const (
	BucketGenericBallot Bucket = "genericBallot"
	BucketApproval      Bucket = "approval"
	BucketRace          Bucket = "race"
)

// UnknownRace is the race label for records whose race field is blank.
const UnknownRace = "Unknown race"

// Race-field vocabularies. Checked before answer-label shape so an
// explicit race declaration always wins.
var (
	genericRacePattern  = regexp.MustCompile(`generic`)
	genericPartyPattern = regexp.MustCompile(`ballot|\bdem\b|democrat|\bgop\b|republican`)

	approvalRacePattern = regexp.MustCompile(`approval`)
	approvalWhoPattern  = regexp.MustCompile(`trump|president`)
)

// Answer-label vocabularies. "disapprov" is tested before "approv" since
// one contains the other.
var (
	disapproveLabel = regexp.MustCompile(`disapprov`)
	approveLabel    = regexp.MustCompile(`approv`)
	demLabel        = regexp.MustCompile(`\bdem\b|democrat`)
	gopLabel        = regexp.MustCompile(`\bgop\b|republican|\brep\b`)
)

// Classify decides a record's bucket. The decision is a pure function of
// the race field and the answer choice labels; every record maps to
// exactly one bucket. For BucketRace the returned label is the trimmed
// race field, or UnknownRace when blank.
func Classify(r types.CanonicalRecord) (Bucket, string) {
	race := strings.ToLower(r.Race)

	if genericRacePattern.MatchString(race) && genericPartyPattern.MatchString(race) {
		return BucketGenericBallot, ""
	}
	if approvalRacePattern.MatchString(race) && approvalWhoPattern.MatchString(race) {
		return BucketApproval, ""
	}

	var hasApprove, hasDisapprove, hasDem, hasGOP bool
	for _, a := range r.Answers {
		label := strings.ToLower(a.Choice)
		switch {
		case disapproveLabel.MatchString(label):
			hasDisapprove = true
		case approveLabel.MatchString(label):
			hasApprove = true
		}
		if demLabel.MatchString(label) {
			hasDem = true
		}
		if gopLabel.MatchString(label) {
			hasGOP = true
		}
	}
	if hasApprove && hasDisapprove {
		return BucketApproval, ""
	}
	if hasDem && hasGOP {
		return BucketGenericBallot, ""
	}

	label := strings.TrimSpace(r.Race)
	if label == "" {
		label = UnknownRace
	}
	return BucketRace, label
}
