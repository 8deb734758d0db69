// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tabular

import (
	"reflect"
	"testing"

	"github.com/pdiddy/pollscan/pkg/types"
)

func TestParseJSONRecordArray(t *testing.T) {
	body := `[
		{"pollster":"Acme","end":"2026-01-03","dem":48},
		{"pollster":"Zenith","gop":45,"end":"2026-01-05"}
	]`
	table, err := ParseJSON(types.RawPayload{URL: "http://example.com/a.json", Body: body})
	if err != nil {
		t.Fatalf("ParseJSON() error = %v", err)
	}
	if table == nil {
		t.Fatal("ParseJSON() = nil, want table")
	}

	// Union of keys in first-seen order.
	wantCols := []string{"pollster", "end", "dem", "gop"}
	if !reflect.DeepEqual(table.Columns, wantCols) {
		t.Fatalf("Columns = %v, want %v", table.Columns, wantCols)
	}

	if len(table.Rows) != 2 {
		t.Fatalf("len(Rows) = %d, want 2", len(table.Rows))
	}
	// Missing key in the first record reads as nil.
	if got := table.CellAt(0, 3); got != nil {
		t.Errorf("CellAt(0,3) = %v, want nil", got)
	}
	if got := table.CellAt(1, 3); got != 45.0 {
		t.Errorf("CellAt(1,3) = %v, want 45.0", got)
	}
	if got := table.CellAt(1, 0); got != "Zenith" {
		t.Errorf("CellAt(1,0) = %v, want Zenith", got)
	}
}

func TestParseJSONColsRows(t *testing.T) {
	body := `{"cols":["Pollster","Dem","GOP"],"rows":[["Acme",48,45],["Zenith",47,46]]}`
	table, err := ParseJSON(types.RawPayload{Body: body})
	if err != nil {
		t.Fatalf("ParseJSON() error = %v", err)
	}
	if table == nil {
		t.Fatal("ParseJSON() = nil, want table")
	}
	if !reflect.DeepEqual(table.Columns, []string{"Pollster", "Dem", "GOP"}) {
		t.Errorf("Columns = %v", table.Columns)
	}
	if got := table.CellAt(1, 1); got != 47.0 {
		t.Errorf("CellAt(1,1) = %v, want 47.0", got)
	}
}

func TestParseJSONNestedData(t *testing.T) {
	body := `{"generated":"2026-01-28","data":[{"pollster":"Acme","dem":48},{"pollster":"Zenith","dem":47}]}`
	table, err := ParseJSON(types.RawPayload{Body: body})
	if err != nil {
		t.Fatalf("ParseJSON() error = %v", err)
	}
	if table == nil {
		t.Fatal("ParseJSON() = nil, want table")
	}
	if !reflect.DeepEqual(table.Columns, []string{"pollster", "dem"}) {
		t.Errorf("Columns = %v", table.Columns)
	}
}

func TestParseJSONRejectsOtherShapes(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"scalar", `42`},
		{"empty array", `[]`},
		{"array of scalars", `[1,2,3]`},
		{"object without dataset members", `{"ok":true,"count":3}`},
		{"not json", `Pollster,Dem`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := ParseJSON(types.RawPayload{Body: tt.body})
			if err != nil {
				t.Fatalf("ParseJSON() error = %v", err)
			}
			if table != nil {
				t.Errorf("ParseJSON() = %v, want nil", table)
			}
		})
	}
}
