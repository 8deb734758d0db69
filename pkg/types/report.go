// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// ReportMeta describes where and when the winning dataset was found.
type ReportMeta struct {
	// FetchedAt is when the payload pool was collected.
	FetchedAt time.Time `json:"fetchedAt" yaml:"fetched_at"`

	// DatasetURL is the source URL of the selected table.
	DatasetURL string `json:"datasetUrl" yaml:"dataset_url"`

	// DatasetFormat names which parser recognized the selected table.
	DatasetFormat string `json:"datasetFormat" yaml:"dataset_format"`
}

// Report is the engine's single output document: normalized poll records
// bucketed into generic-ballot polls, approval polls, and per-race lists.
type Report struct {
	Meta ReportMeta `json:"meta" yaml:"meta"`

	GenericBallot []CanonicalRecord `json:"genericBallot" yaml:"generic_ballot"`
	Approval      []CanonicalRecord `json:"approval" yaml:"approval"`

	// Races maps a free-text race label to its records. Records whose race
	// could not be determined land under the "Unknown race" label.
	Races map[string][]CanonicalRecord `json:"races" yaml:"races"`
}

// TotalRecords returns the number of records across all buckets.
func (r *Report) TotalRecords() int {
	n := len(r.GenericBallot) + len(r.Approval)
	for _, recs := range r.Races {
		n += len(recs)
	}
	return n
}
