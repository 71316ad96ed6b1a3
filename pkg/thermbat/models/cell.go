// Package models defines data structures for battery spreadsheet extraction.
package models

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// CellKind identifies which member of the Cell union is set.
type CellKind uint8

const (
	// KindEmpty marks a blank cell (NA in the source sheet).
	KindEmpty CellKind = iota
	// KindNumber marks a numeric cell.
	KindNumber
	// KindText marks a text cell.
	KindText
)

// Cell is a single scalar spreadsheet value: a number, a text or empty.
type Cell struct {
	kind CellKind
	num  float64
	text string
}

// Number returns a numeric cell. NaN and infinities become Empty since they
// have no JSON form.
func Number(v float64) Cell {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Empty()
	}
	return Cell{kind: KindNumber, num: v}
}

// Text returns a text cell. An empty string is still a text cell; use
// ParseCell when blank input should become Empty.
func Text(s string) Cell {
	return Cell{kind: KindText, text: s}
}

// Empty returns the blank cell.
func Empty() Cell {
	return Cell{}
}

// ParseCell converts a raw spreadsheet string into a cell.
// Blank strings become Empty, numeric strings become Number, anything else Text.
func ParseCell(s string) Cell {
	if strings.TrimSpace(s) == "" {
		return Empty()
	}
	if f, ok := parseNumber(s); ok {
		return Number(f)
	}
	return Text(s)
}

// parseNumber accepts finite decimal numbers only; "nan" and "inf" spellings
// stay text.
func parseNumber(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// Kind returns the union member held by the cell.
func (c Cell) Kind() CellKind { return c.kind }

// IsEmpty reports whether the cell is blank.
func (c Cell) IsEmpty() bool { return c.kind == KindEmpty }

// IsNumber reports whether the cell holds a number.
func (c Cell) IsNumber() bool { return c.kind == KindNumber }

// Float returns the numeric value of the cell. Text cells are parsed after
// trimming; Empty and unparseable text report false.
func (c Cell) Float() (float64, bool) {
	switch c.kind {
	case KindNumber:
		return c.num, true
	case KindText:
		return parseNumber(c.text)
	}
	return 0, false
}

// Coerce turns numeric text into a Number and leaves every other cell as is.
func (c Cell) Coerce() Cell {
	if c.kind != KindText {
		return c
	}
	if f, ok := c.Float(); ok {
		return Number(f)
	}
	return c
}

// AsText returns the cell rendered as a Text cell, or Empty for blank cells.
func (c Cell) AsText() Cell {
	if c.kind == KindEmpty {
		return c
	}
	return Text(c.String())
}

// String renders the cell the way a sheet user reads it: numbers in their
// shortest decimal form (48, 2.5), text verbatim, blanks as "".
func (c Cell) String() string {
	switch c.kind {
	case KindNumber:
		return strconv.FormatFloat(c.num, 'f', -1, 64)
	case KindText:
		return c.text
	}
	return ""
}

// Equal reports whether two cells hold the same member and value.
func (c Cell) Equal(o Cell) bool {
	return c == o
}

// MarshalJSON encodes numbers as JSON numbers, text as strings and blanks as null.
func (c Cell) MarshalJSON() ([]byte, error) {
	switch c.kind {
	case KindNumber:
		return json.Marshal(c.num)
	case KindText:
		return json.Marshal(c.text)
	}
	return []byte("null"), nil
}

// UnmarshalJSON accepts a JSON number, string or null.
func (c *Cell) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	cell, err := CellFromJSON(v)
	if err != nil {
		return err
	}
	*c = cell
	return nil
}

// CellFromJSON converts a decoded JSON scalar into a cell.
func CellFromJSON(v any) (Cell, error) {
	switch t := v.(type) {
	case nil:
		return Empty(), nil
	case float64:
		return Number(t), nil
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return Cell{}, err
		}
		return Number(f), nil
	case string:
		return Text(t), nil
	case bool:
		return Text(strconv.FormatBool(t)), nil
	}
	return Cell{}, &json.UnsupportedValueError{Str: "non-scalar cell value"}
}
