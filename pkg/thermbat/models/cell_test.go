package models

import (
	"encoding/json"
	"math"
	"testing"
)

func TestParseCell(t *testing.T) {
	tests := []struct {
		input    string
		kind     CellKind
		expected string
	}{
		{"123", KindNumber, "123"},
		{"123.45", KindNumber, "123.45"},
		{"-100", KindNumber, "-100"},
		{" 2.50 ", KindNumber, "2.5"},
		{"hello", KindText, "hello"},
		{"nan", KindText, "nan"},
		{"Inf", KindText, "Inf"},
		{"", KindEmpty, ""},
		{"   ", KindEmpty, ""},
	}

	for _, tt := range tests {
		c := ParseCell(tt.input)
		if c.Kind() != tt.kind {
			t.Errorf("ParseCell(%q).Kind() = %v, expected %v", tt.input, c.Kind(), tt.kind)
		}
		if c.String() != tt.expected {
			t.Errorf("ParseCell(%q).String() = %q, expected %q", tt.input, c.String(), tt.expected)
		}
	}
}

func TestCellCoercion(t *testing.T) {
	if v, ok := Text(" 48 ").Float(); !ok || v != 48 {
		t.Errorf("Text(\" 48 \").Float() = %v, %v", v, ok)
	}
	if _, ok := Text("28 V").Float(); ok {
		t.Error("expected non-numeric text to fail Float")
	}
	if _, ok := Empty().Float(); ok {
		t.Error("expected Empty to fail Float")
	}

	if c := Text("2.5").Coerce(); !c.IsNumber() || c.String() != "2.5" {
		t.Errorf("Coerce numeric text = %v", c)
	}
	if c := Text("abc").Coerce(); c.Kind() != KindText {
		t.Errorf("Coerce(abc) changed kind to %v", c.Kind())
	}
	if c := Number(28).AsText(); c.Kind() != KindText || c.String() != "28" {
		t.Errorf("AsText(28) = %v (%v)", c, c.Kind())
	}
	if c := Empty().AsText(); !c.IsEmpty() {
		t.Error("AsText of Empty should stay Empty")
	}
	if c := Number(math.NaN()); !c.IsEmpty() {
		t.Error("NaN should become Empty")
	}
}

func TestCellJSON(t *testing.T) {
	tests := []struct {
		cell     Cell
		expected string
	}{
		{Number(48), "48"},
		{Number(2.5), "2.5"},
		{Text("28"), `"28"`},
		{Empty(), "null"},
	}
	for _, tt := range tests {
		data, err := json.Marshal(tt.cell)
		if err != nil {
			t.Fatalf("Marshal(%v): %v", tt.cell, err)
		}
		if string(data) != tt.expected {
			t.Errorf("Marshal(%v) = %s, expected %s", tt.cell, data, tt.expected)
		}

		var back Cell
		if err := json.Unmarshal(data, &back); err != nil {
			t.Fatalf("Unmarshal(%s): %v", data, err)
		}
		if !back.Equal(tt.cell) {
			t.Errorf("round trip of %s = %v, expected %v", data, back, tt.cell)
		}
	}

	var c Cell
	if err := json.Unmarshal([]byte(`[1]`), &c); err == nil {
		t.Error("expected error for array cell")
	}
}
