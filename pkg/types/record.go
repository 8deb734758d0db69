// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Answer is one named numeric response in a poll observation: a choice
// label and its percentage. Pct is always finite.
type Answer struct {
	Choice string  `json:"choice" yaml:"choice"`
	Pct    float64 `json:"pct" yaml:"pct"`
}

// CanonicalRecord is a normalized poll observation built from one raw table
// row. Optional fields are empty (or zero) when the source row carried no
// usable value for them. Created once by the row normalizer and immutable
// thereafter; classification works on copies.
type CanonicalRecord struct {
	// Pollster is the polling organization name.
	Pollster string `json:"pollster,omitempty" yaml:"pollster,omitempty"`

	// Sponsor is the poll's sponsor or client, when declared.
	Sponsor string `json:"sponsor,omitempty" yaml:"sponsor,omitempty"`

	// StartDate and EndDate are field dates in YYYY-MM-DD form, or empty
	// when the source cell did not parse as a date.
	StartDate string `json:"startDate,omitempty" yaml:"start_date,omitempty"`
	EndDate   string `json:"endDate,omitempty" yaml:"end_date,omitempty"`

	// SampleSize is the respondent count, 0 when unknown.
	SampleSize int `json:"sampleSize,omitempty" yaml:"sample_size,omitempty"`

	// Population is the sample population code (e.g. "RV", "LV", "A").
	Population string `json:"population,omitempty" yaml:"population,omitempty"`

	// URL links to the source poll. Kept only when it matches an
	// http(s) URL shape.
	URL string `json:"url,omitempty" yaml:"url,omitempty"`

	// Race, State, and District describe the contest, attached only when
	// non-blank in the source.
	Race     string `json:"race,omitempty" yaml:"race,omitempty"`
	State    string `json:"state,omitempty" yaml:"state,omitempty"`
	District string `json:"district,omitempty" yaml:"district,omitempty"`

	// Answers holds the named numeric responses in column order. Non-empty
	// for every retained record unless Pollster alone justified retention.
	Answers []Answer `json:"answers" yaml:"answers"`
}
