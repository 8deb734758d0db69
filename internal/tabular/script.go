// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tabular

import "regexp"

// scriptMarkers identify payloads that are executable code or markup rather
// than data: declarations at line starts, browser globals, source-map
// pointers, and analytics shims. A single hit disqualifies the payload from
// the JSON and delimited-text parsers (the wrapped-query parser expects
// exactly this shape before unwrapping, so it is exempt).
var scriptMarkers = []*regexp.Regexp{
	regexp.MustCompile(`(?m)^\s*(?:var|let|const)\s+[A-Za-z_$][\w$]*\s*[=;]`),
	regexp.MustCompile(`(?m)^\s*function\s+[A-Za-z_$][\w$]*\s*\(`),
	regexp.MustCompile(`(?m)^\s*\(function\s*\(`),
	regexp.MustCompile(`\b(?:window|document|navigator)\s*\.`),
	regexp.MustCompile(`//[#@]\s*sourceMappingURL=`),
	regexp.MustCompile(`\b(?:dataLayer|gtag|ga)\s*\(`),
	regexp.MustCompile(`(?i)<(?:!doctype|html|script)\b`),
}

// LooksLikeScript reports whether the body reads as executable code, markup,
// or tracking instrumentation instead of data. Pure predicate.
func LooksLikeScript(body string) bool {
	for _, m := range scriptMarkers {
		if m.MatchString(body) {
			return true
		}
	}
	return false
}
