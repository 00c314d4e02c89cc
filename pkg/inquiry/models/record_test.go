package models

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestRecord_KeepsColumnOrder(t *testing.T) {
	r := NewRecord()
	r.Set("Zone", "North")
	r.Set("Amount", int64(10))
	r.Set("Client", nil)
	r.Set("Zone", "South")

	if got := r.Columns(); !reflect.DeepEqual(got, []string{"Zone", "Amount", "Client"}) {
		t.Errorf("Columns() = %v", got)
	}

	data, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	expected := `{"Zone":"South","Amount":10,"Client":null}`
	if string(data) != expected {
		t.Errorf("Marshal = %s, expected %s", data, expected)
	}
}

func TestRecord_NoHTMLEscaping(t *testing.T) {
	r := NewRecord()
	r.Set("Remarks <internal>", "R&D > Sales")

	data, err := r.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON failed: %v", err)
	}
	expected := `{"Remarks <internal>":"R&D > Sales"}`
	if string(data) != expected {
		t.Errorf("MarshalJSON = %s, expected %s", data, expected)
	}
}

func TestRecord_Zero(t *testing.T) {
	var r Record
	if r.Len() != 0 || r.Columns() != nil {
		t.Errorf("zero record has columns %v", r.Columns())
	}
	if _, ok := r.Get("x"); ok {
		t.Error("zero record returned a value")
	}
	data, err := json.Marshal(r)
	if err != nil || string(data) != "{}" {
		t.Errorf("Marshal = %s, %v", data, err)
	}
}

func TestTable_At(t *testing.T) {
	table := Table{Rows: [][]Cell{
		{StringCell("A"), StringCell("B"), StringCell("C")},
		{IntCell(1)},
	}}

	if w := table.Width(); w != 3 {
		t.Errorf("Width() = %d, expected 3", w)
	}

	tests := []struct {
		r, c     int
		expected CellKind
	}{
		{0, 2, CellString},
		{1, 0, CellInt},
		{1, 2, CellEmpty},
		{5, 0, CellEmpty},
		{-1, 0, CellEmpty},
	}
	for _, tt := range tests {
		if kind := table.At(tt.r, tt.c).Kind; kind != tt.expected {
			t.Errorf("At(%d, %d).Kind = %v, expected %v", tt.r, tt.c, kind, tt.expected)
		}
	}
}
