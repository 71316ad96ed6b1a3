// Package output serializes extracted records to JSON with stable key order.
package output

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/ukaji3/thermbat-go/pkg/thermbat/models"
)

// Indent is the indentation used for pretty output.
const Indent = "    "

// ContentType is the MIME type of serialized records.
const ContentType = "application/json"

// ToJSON encodes a record as an array of flat objects, one per row, keys in
// extraction order.
func ToJSON(rec models.Record, pretty bool) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')
	if rec != nil {
		for i, row := range rec.Rows() {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeObject(&buf, row); err != nil {
				return nil, err
			}
		}
	}
	buf.WriteByte(']')
	return finish(buf.Bytes(), pretty)
}

// BlocksToJSON encodes blocks as one object keyed by block key, each value
// being the record's row array.
func BlocksToJSON(blocks []models.DataBlock, pretty bool) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, b := range blocks {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeKey(&buf, b.Key); err != nil {
			return nil, err
		}
		data, err := ToJSON(b.Record, false)
		if err != nil {
			return nil, fmt.Errorf("encode block %s: %w", b.Key, err)
		}
		buf.Write(data)
	}
	buf.WriteByte('}')
	return finish(buf.Bytes(), pretty)
}

func finish(compact []byte, pretty bool) ([]byte, error) {
	if !pretty {
		return compact, nil
	}
	var out bytes.Buffer
	if err := json.Indent(&out, compact, "", Indent); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

func writeObject(buf *bytes.Buffer, row *models.ParameterMap) error {
	buf.WriteByte('{')
	for i, k := range row.Keys() {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeKey(buf, k); err != nil {
			return err
		}
		v, _ := row.Get(k)
		data, err := v.MarshalJSON()
		if err != nil {
			return fmt.Errorf("encode %q: %w", k, err)
		}
		buf.Write(data)
	}
	buf.WriteByte('}')
	return nil
}

func writeKey(buf *bytes.Buffer, k string) error {
	data, err := json.Marshal(k)
	if err != nil {
		return err
	}
	buf.Write(data)
	buf.WriteByte(':')
	return nil
}

// ErrNotRecord indicates JSON that is not an array of flat objects.
var ErrNotRecord = errors.New("not a record: expected an array of flat objects")

// Decode parses serialized record bytes, keeping key order. A single top-level
// object is accepted as a one-row record.
func Decode(data []byte) (models.RowSet, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("decode record: %w", err)
	}
	switch tok {
	case json.Delim('{'):
		row, err := readObject(dec)
		if err != nil {
			return nil, err
		}
		return models.RowSet{row}, expectEOF(dec)
	case json.Delim('['):
	default:
		return nil, ErrNotRecord
	}

	rows := models.RowSet{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("decode record: %w", err)
		}
		if tok != json.Delim('{') {
			return nil, ErrNotRecord
		}
		row, err := readObject(dec)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("decode record: %w", err)
	}
	return rows, expectEOF(dec)
}

// readObject reads the members of an object whose opening brace was consumed.
func readObject(dec *json.Decoder) (*models.ParameterMap, error) {
	row := models.NewParameterMap()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("decode record: %w", err)
		}
		key, ok := tok.(string)
		if !ok {
			return nil, ErrNotRecord
		}
		tok, err = dec.Token()
		if err != nil {
			return nil, fmt.Errorf("decode record: %w", err)
		}
		if _, nested := tok.(json.Delim); nested {
			return nil, fmt.Errorf("%w: field %q is not a scalar", ErrNotRecord, key)
		}
		cell, err := models.CellFromJSON(tok)
		if err != nil {
			return nil, fmt.Errorf("decode field %q: %w", key, err)
		}
		row.Set(key, cell)
	}
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("decode record: %w", err)
	}
	return row, nil
}

func expectEOF(dec *json.Decoder) error {
	if _, err := dec.Token(); err != io.EOF {
		return ErrNotRecord
	}
	return nil
}
