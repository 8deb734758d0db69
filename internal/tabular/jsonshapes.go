// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tabular

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pdiddy/pollscan/pkg/types"
)

// ParseJSON recognizes three JSON dataset shapes:
//
//  1. a non-empty array of flat records — columns are the union of keys
//     across all records in first-seen order, missing keys read as nil;
//  2. an object declaring explicit "cols" and "rows" arrays;
//  3. an object whose "data" (or "rows") member is an array of records,
//     handled like shape 1.
//
// Any other JSON shape returns (nil, nil): an unrecognized shape is not a
// dataset, and falling through to the delimited-text parser would be wrong.
func ParseJSON(p types.RawPayload) (*types.Table, error) {
	body := strings.TrimSpace(p.Body)
	if body == "" {
		return nil, nil
	}

	switch body[0] {
	case '[':
		var records []json.RawMessage
		if err := json.Unmarshal([]byte(body), &records); err != nil {
			return nil, nil
		}
		return recordsTable(records, p.URL)
	case '{':
		var obj map[string]json.RawMessage
		if err := json.Unmarshal([]byte(body), &obj); err != nil {
			return nil, nil
		}
		if colsRaw, ok := obj["cols"]; ok {
			if rowsRaw, ok := obj["rows"]; ok {
				return colsRowsTable(colsRaw, rowsRaw, p.URL)
			}
		}
		for _, key := range []string{"data", "rows"} {
			raw, ok := obj[key]
			if !ok {
				continue
			}
			var records []json.RawMessage
			if err := json.Unmarshal(raw, &records); err != nil {
				continue
			}
			return recordsTable(records, p.URL)
		}
	}
	return nil, nil
}

// recordsTable builds a Table from an array of flat record objects.
func recordsTable(records []json.RawMessage, url string) (*types.Table, error) {
	if len(records) == 0 {
		return nil, nil
	}

	var cols []string
	seen := make(map[string]int) // column name → index
	var rows [][]types.Cell

	for _, raw := range records {
		keys, err := objectKeys(raw)
		if err != nil {
			// Element is not a flat object; the array is not a dataset.
			return nil, nil
		}
		var fields map[string]any
		if err := json.Unmarshal(raw, &fields); err != nil {
			return nil, nil
		}

		for _, k := range keys {
			if _, ok := seen[k]; !ok {
				seen[k] = len(cols)
				cols = append(cols, k)
			}
		}

		row := make([]types.Cell, len(cols))
		for k, v := range fields {
			row[seen[k]] = scalarCell(v)
		}
		rows = append(rows, row)
	}

	// Earlier rows may be shorter than the final column set; that is fine,
	// missing trailing cells read as nil.
	return &types.Table{
		Format:    types.FormatJSON,
		SourceURL: url,
		Columns:   cols,
		Rows:      rows,
	}, nil
}

// colsRowsTable builds a Table from explicit cols/rows arrays. Column
// entries may be plain strings or descriptor objects with label/id/name.
func colsRowsTable(colsRaw, rowsRaw json.RawMessage, url string) (*types.Table, error) {
	var colEntries []json.RawMessage
	if err := json.Unmarshal(colsRaw, &colEntries); err != nil || len(colEntries) == 0 {
		return nil, nil
	}

	cols := make([]string, len(colEntries))
	for i, raw := range colEntries {
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			cols[i] = s
			continue
		}
		var desc struct {
			Label string `json:"label"`
			Name  string `json:"name"`
			ID    string `json:"id"`
		}
		if err := json.Unmarshal(raw, &desc); err != nil {
			return nil, nil
		}
		switch {
		case desc.Label != "":
			cols[i] = desc.Label
		case desc.Name != "":
			cols[i] = desc.Name
		case desc.ID != "":
			cols[i] = desc.ID
		default:
			cols[i] = fmt.Sprintf("col_%d", i)
		}
	}

	var rawRows [][]any
	if err := json.Unmarshal(rowsRaw, &rawRows); err != nil {
		return nil, nil
	}
	rows := make([][]types.Cell, 0, len(rawRows))
	for _, rr := range rawRows {
		row := make([]types.Cell, 0, len(rr))
		for i, v := range rr {
			if i >= len(cols) {
				break
			}
			row = append(row, scalarCell(v))
		}
		rows = append(rows, row)
	}

	return &types.Table{
		Format:    types.FormatJSON,
		SourceURL: url,
		Columns:   cols,
		Rows:      rows,
	}, nil
}

// scalarCell converts a decoded JSON value to a Cell. Nested structures
// carry no tabular signal and read as nil.
func scalarCell(v any) types.Cell {
	switch x := v.(type) {
	case string:
		return x
	case float64:
		return x
	case bool:
		if x {
			return "true"
		}
		return "false"
	}
	return nil
}

// objectKeys returns the member names of a JSON object in declaration
// order. encoding/json maps lose ordering, and first-seen column order is
// load-bearing, so the keys are read off the token stream directly.
func objectKeys(raw json.RawMessage) ([]string, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("not a JSON object")
	}

	var keys []string
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected token %v", tok)
		}
		keys = append(keys, key)
		if err := skipValue(dec); err != nil {
			return nil, err
		}
	}
	return keys, nil
}

// skipValue consumes one JSON value from the decoder, descending through
// nested objects and arrays.
func skipValue(dec *json.Decoder) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	d, ok := tok.(json.Delim)
	if !ok || (d != '{' && d != '[') {
		return nil
	}
	depth := 1
	for depth > 0 {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		if d, ok := tok.(json.Delim); ok {
			switch d {
			case '{', '[':
				depth++
			case '}', ']':
				depth--
			}
		}
	}
	return nil
}
