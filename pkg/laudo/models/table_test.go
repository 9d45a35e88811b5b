package models

import (
	"errors"
	"testing"
)

func sampleTable() *Table {
	return NewTable("Empreendimento",
		[]string{" Contratante ", "ENDEREÇO", "ART"},
		[][]string{
			{"  ACME  ", "Rua A", "nan"},
			{"Beta"},
		})
}

func TestRowGetCaseInsensitive(t *testing.T) {
	tbl := sampleTable()
	tests := []struct {
		row      int
		column   string
		expected string
	}{
		{0, "contratante", "ACME"},
		{0, "Endereço", "Rua A"},
		{0, "endereço ", "Rua A"},
		{0, "ART", ""},
		{0, "Setor", ""},
		{1, "Endereço", ""},
	}

	for _, tt := range tests {
		got := tbl.Row(tt.row).Get(tt.column)
		if got != tt.expected {
			t.Errorf("Row(%d).Get(%q) = %q, expected %q", tt.row, tt.column, got, tt.expected)
		}
	}
}

func TestRequireReportsMissingColumn(t *testing.T) {
	tbl := sampleTable()
	if err := tbl.Require("contratante", "art"); err != nil {
		t.Fatalf("Require returned %v for present columns", err)
	}

	err := tbl.Require("Contratante", "Tipo")
	if !errors.Is(err, ErrMissingColumn) {
		t.Fatalf("expected ErrMissingColumn, got %v", err)
	}
	var colErr *ColumnError
	if !errors.As(err, &colErr) || colErr.Column != "Tipo" || colErr.Table != "Empreendimento" {
		t.Errorf("unexpected column error: %#v", err)
	}

	var nilTable *Table
	if err := nilTable.Require("Tipo"); !errors.Is(err, ErrMissingColumn) {
		t.Errorf("nil table should miss every column, got %v", err)
	}
}

func TestFilterPreservesOrder(t *testing.T) {
	tbl := NewTable("Sistemas", []string{"ID_Sistema", "ID_Item"}, [][]string{
		{"3", "1"}, {"1", "2"}, {"2", "1"}, {"5", "1"},
	})

	rows := tbl.Filter(func(r Row) bool { return SameKey(r.Raw("ID_Item"), "1.0") })
	var ids []string
	for _, r := range rows {
		ids = append(ids, r.Key("ID_Sistema"))
	}
	if len(ids) != 3 || ids[0] != "3" || ids[1] != "2" || ids[2] != "5" {
		t.Errorf("Filter order = %v, expected [3 2 5]", ids)
	}
}

func TestAddColumnAndSet(t *testing.T) {
	tbl := NewTable("indice_fotos", []string{"Foto"}, [][]string{{"a.jpg"}, {}})

	col := tbl.AddColumn("Figura_calc")
	if again := tbl.AddColumn("figura_calc"); again != col {
		t.Errorf("AddColumn should reuse existing column, got %d and %d", col, again)
	}

	tbl.Set(1, col, "7")
	if got := tbl.Row(1).Get("Figura_calc"); got != "7" {
		t.Errorf("Set/Get = %q, expected 7", got)
	}
	if got := tbl.Row(0).Get("Figura_calc"); got != "" {
		t.Errorf("unset cell = %q, expected empty", got)
	}
}
