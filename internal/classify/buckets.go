// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package classify

import (
	"github.com/pdiddy/pollscan/pkg/types"
)

// Buckets holds the routed, standardized, deduplicated record collections.
type Buckets struct {
	GenericBallot []types.CanonicalRecord
	Approval      []types.CanonicalRecord
	Races         map[string][]types.CanonicalRecord
}

// Route classifies every record, standardizes the labels of the two fixed
// buckets, and deduplicates each bucket independently. Input order is
// preserved within each bucket so first-occurrence-wins is well-defined.
// All three buckets come back non-nil so empty ones serialize as empty
// collections rather than null.
func Route(records []types.CanonicalRecord) Buckets {
	b := Buckets{
		GenericBallot: []types.CanonicalRecord{},
		Approval:      []types.CanonicalRecord{},
		Races:         make(map[string][]types.CanonicalRecord),
	}

	for _, r := range records {
		bucket, label := Classify(r)
		switch bucket {
		case BucketGenericBallot:
			b.GenericBallot = append(b.GenericBallot, StandardizeGenericBallot(r))
		case BucketApproval:
			b.Approval = append(b.Approval, StandardizeApproval(r))
		case BucketRace:
			b.Races[label] = append(b.Races[label], r)
		}
	}

	b.GenericBallot = Dedup(b.GenericBallot)
	b.Approval = Dedup(b.Approval)
	for label, recs := range b.Races {
		b.Races[label] = Dedup(recs)
	}
	return b
}
