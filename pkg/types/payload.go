// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the pollscan pipeline:
// captured payloads, the uniform table representation, canonical poll
// records, and the final report document.
package types

// RawPayload is one fetched non-markup resource suspected of containing
// tabular poll data. Produced by the capture stage, consumed once by the
// format parsers; never mutated.
type RawPayload struct {
	// URL is the resource address the payload was fetched from.
	URL string `json:"url" yaml:"url"`

	// ContentType is the declared Content-Type of the response, possibly
	// empty or lying. It biases parser order but never gates it.
	ContentType string `json:"content_type" yaml:"content_type"`

	// Body is the raw response text.
	Body string `json:"body" yaml:"body"`
}
