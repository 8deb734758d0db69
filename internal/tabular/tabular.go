// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package tabular converts raw captured payloads of unknown shape —
// wrapped query responses, structured JSON, or delimited text — into the
// uniform Table representation. Parse failure is not an error: a payload
// that no handler recognizes is simply not a dataset candidate.
package tabular

import (
	"strings"

	"github.com/pdiddy/pollscan/pkg/types"
)

// Parse attempts each format handler against the payload and returns the
// first Table produced, or nil when no handler recognizes the body.
//
// The wrapped-query handler always goes first: its marker is
// content-specific and its input is legitimately script-shaped. After
// that, script- or markup-looking bodies are rejected outright. The
// declared content type biases whether JSON or delimited text is tried
// next, but never gates an attempt.
func Parse(p types.RawPayload) *types.Table {
	if t, _ := ParseWrapped(p); t != nil {
		return t
	}

	if LooksLikeScript(p.Body) {
		return nil
	}

	ct := strings.ToLower(p.ContentType)
	if strings.Contains(ct, "csv") || strings.Contains(ct, "tab-separated") {
		if t, _ := ParseDelimited(p); t != nil {
			return t
		}
		if t, _ := ParseJSON(p); t != nil {
			return t
		}
		return nil
	}

	if t, _ := ParseJSON(p); t != nil {
		return t
	}
	if t, _ := ParseDelimited(p); t != nil {
		return t
	}
	return nil
}
