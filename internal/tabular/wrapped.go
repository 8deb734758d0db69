// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tabular

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pdiddy/pollscan/pkg/types"
)

// wrapperMarker is the literal call wrapper that query-response endpoints
// wrap their JSON table in, e.g.
//
//	google.visualization.Query.setResponse({"table":{"cols":[...],"rows":[...]}});
//
// The argument is extracted by a tolerant text match, not a JS grammar.
const wrapperMarker = "setResponse("

// wrappedResponse mirrors the embedded table payload.
type wrappedResponse struct {
	Status string `json:"status"`
	Table  struct {
		Cols []wrappedCol `json:"cols"`
		Rows []wrappedRow `json:"rows"`
	} `json:"table"`
}

// wrappedCol is a column descriptor. Label is the human name; ID is the
// internal spreadsheet id (e.g. "A", "B").
type wrappedCol struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

type wrappedRow struct {
	C []*wrappedCell `json:"c"`
}

// wrappedCell carries a raw value V and a formatted string fallback F.
type wrappedCell struct {
	V any    `json:"v"`
	F string `json:"f"`
}

// ParseWrapped extracts the table embedded in a call-wrapped query response.
// It returns (nil, nil) when the wrapper marker is absent or the embedded
// payload does not decode; wrapper absence just means "not this format".
func ParseWrapped(p types.RawPayload) (*types.Table, error) {
	start := strings.Index(p.Body, wrapperMarker)
	if start < 0 {
		return nil, nil
	}
	inner := p.Body[start+len(wrapperMarker):]
	end := strings.LastIndex(inner, ")")
	if end < 0 {
		return nil, nil
	}
	inner = strings.TrimSpace(inner[:end])

	var resp wrappedResponse
	if err := json.Unmarshal([]byte(inner), &resp); err != nil {
		return nil, nil
	}
	if len(resp.Table.Cols) == 0 {
		return nil, nil
	}

	cols := make([]string, len(resp.Table.Cols))
	for i, c := range resp.Table.Cols {
		switch {
		case c.Label != "":
			cols[i] = c.Label
		case c.ID != "":
			cols[i] = c.ID
		default:
			cols[i] = fmt.Sprintf("col_%d", i)
		}
	}

	rows := make([][]types.Cell, 0, len(resp.Table.Rows))
	for _, r := range resp.Table.Rows {
		row := make([]types.Cell, 0, len(r.C))
		for i, c := range r.C {
			if i >= len(cols) {
				break
			}
			row = append(row, wrappedCellValue(c))
		}
		rows = append(rows, row)
	}

	return &types.Table{
		Format:    types.FormatWrapped,
		SourceURL: p.URL,
		Columns:   cols,
		Rows:      rows,
	}, nil
}

// wrappedCellValue prefers the raw value over the formatted fallback.
func wrappedCellValue(c *wrappedCell) types.Cell {
	if c == nil {
		return nil
	}
	switch v := c.V.(type) {
	case string:
		return v
	case float64:
		return v
	case bool:
		if c.F != "" {
			return c.F
		}
		return fmt.Sprintf("%t", v)
	}
	if c.F != "" {
		return c.F
	}
	return nil
}
