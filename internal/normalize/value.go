// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package normalize

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/pdiddy/pollscan/pkg/types"
)

// CellText renders a cell as text for tolerant field parsing. Floats that
// are whole numbers print without a fractional part.
func CellText(c types.Cell) string {
	switch v := c.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return fmt.Sprint(c)
}

// IsBlank reports whether a cell is nil or whitespace-only text.
func IsBlank(c types.Cell) bool {
	return strings.TrimSpace(CellText(c)) == ""
}

// dateLayouts are tried in order after the serialized-date form.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"1/2/2006",
	"2006-01-02",
	"Jan 2, 2006",
	"January 2, 2006",
}

// serializedDatePattern matches the Date(year,month,day[,...]) form that
// wrapped query responses emit for date cells. Month is zero-based.
var serializedDatePattern = regexp.MustCompile(`^Date\((\d{4}),(\d{1,2}),(\d{1,2})`)

// ParseDate parses a date-like cell tolerantly and returns it in
// YYYY-MM-DD form, or "" when nothing matched. Never fails loudly: an
// unparseable date is an absent date.
func ParseDate(c types.Cell) string {
	s := strings.TrimSpace(CellText(c))
	if s == "" {
		return ""
	}

	if m := serializedDatePattern.FindStringSubmatch(s); m != nil {
		year, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		day, _ := strconv.Atoi(m[3])
		t := time.Date(year, time.Month(month+1), day, 0, 0, 0, 0, time.UTC)
		return t.Format("2006-01-02")
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02")
		}
	}
	return ""
}

// integerRun matches the first run of digits, allowing thousands separators.
var integerRun = regexp.MustCompile(`\d[\d,]*`)

// ParseInt extracts an integer from a cell: numeric cells truncate, text
// cells yield their first digit run with separators stripped.
func ParseInt(c types.Cell) (int, bool) {
	if f, ok := c.(float64); ok {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return int(f), true
	}

	s := integerRun.FindString(CellText(c))
	if s == "" {
		return 0, false
	}
	n, err := strconv.Atoi(strings.ReplaceAll(s, ",", ""))
	if err != nil {
		return 0, false
	}
	return n, true
}

// ParsePct parses a percentage-like cell as a finite float, stripping a
// trailing percent sign and thousands separators.
func ParsePct(c types.Cell) (float64, bool) {
	if f, ok := c.(float64); ok {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return f, true
	}

	s := strings.TrimSpace(CellText(c))
	s = strings.TrimSuffix(s, "%")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// CleanURL keeps a cell only when it looks like an http(s) URL.
func CleanURL(c types.Cell) string {
	s := strings.TrimSpace(CellText(c))
	if strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://") {
		return s
	}
	return ""
}

// CleanText trims a text cell, returning "" for blank or nil cells.
func CleanText(c types.Cell) string {
	return strings.TrimSpace(CellText(c))
}
