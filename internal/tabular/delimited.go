// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tabular

import (
	"encoding/csv"
	"io"
	"strings"

	"github.com/pdiddy/pollscan/pkg/types"
)

// Acceptance floor for delimited text. Free text and JavaScript both
// contain commas; requiring a minimum volume of consistent-width lines
// keeps them out.
const (
	minDelimitedLines = 6
	minHeaderFields   = 5
	widthCheckRows    = 5
)

// ParseDelimited parses CSV-like text into a Table. The reader is
// deliberately lax (lazy quotes, ragged rows, CRLF or LF) — real-world
// exports are not standards-compliant. Returns (nil, nil) when the body
// does not clear the acceptance floor.
func ParseDelimited(p types.RawPayload) (*types.Table, error) {
	body := strings.TrimPrefix(p.Body, "\xef\xbb\xbf")

	nonBlank := 0
	for _, line := range strings.Split(body, "\n") {
		if strings.TrimSpace(line) != "" {
			nonBlank++
		}
	}
	if nonBlank < minDelimitedLines {
		return nil, nil
	}

	r := csv.NewReader(strings.NewReader(body))
	r.LazyQuotes = true
	r.TrimLeadingSpace = true
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, nil
	}
	if len(header) < minHeaderFields {
		return nil, nil
	}

	var records [][]string
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil
		}
		if blankRecord(rec) {
			continue
		}
		records = append(records, rec)
	}

	// The first few data rows must be as wide as the header, give or take
	// one trailing field.
	check := widthCheckRows
	if check > len(records) {
		check = len(records)
	}
	for i := 0; i < check; i++ {
		w := len(records[i])
		if w > len(header) || w < len(header)-1 {
			return nil, nil
		}
	}

	rows := make([][]types.Cell, 0, len(records))
	for _, rec := range records {
		row := make([]types.Cell, 0, len(header))
		for i, field := range rec {
			if i >= len(header) {
				break
			}
			row = append(row, field)
		}
		rows = append(rows, row)
	}

	cols := make([]string, len(header))
	for i, h := range header {
		cols[i] = strings.TrimSpace(h)
	}

	return &types.Table{
		Format:    types.FormatDelimited,
		SourceURL: p.URL,
		Columns:   cols,
		Rows:      rows,
	}, nil
}

func blankRecord(rec []string) bool {
	for _, f := range rec {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
