package models

// Record is anything that serializes to an ordered list of flat rows.
type Record interface {
	Rows() []*ParameterMap
}

// ParameterMap is an ordered parameter-name to value mapping.
type ParameterMap struct {
	keys   []string
	values map[string]Cell
}

// NewParameterMap returns an empty map.
func NewParameterMap() *ParameterMap {
	return &ParameterMap{values: make(map[string]Cell)}
}

// Set stores v under key. Re-setting a key replaces the value but keeps the
// key's original position.
func (p *ParameterMap) Set(key string, v Cell) {
	if p.values == nil {
		p.values = make(map[string]Cell)
	}
	if _, ok := p.values[key]; !ok {
		p.keys = append(p.keys, key)
	}
	p.values[key] = v
}

// Get returns the value stored under key.
func (p *ParameterMap) Get(key string) (Cell, bool) {
	if p == nil {
		return Cell{}, false
	}
	v, ok := p.values[key]
	return v, ok
}

// Keys returns the keys in insertion order.
func (p *ParameterMap) Keys() []string {
	if p == nil {
		return nil
	}
	out := make([]string, len(p.keys))
	copy(out, p.keys)
	return out
}

// Len returns the number of keys.
func (p *ParameterMap) Len() int {
	if p == nil {
		return 0
	}
	return len(p.keys)
}

// Rows serializes the map as a single row.
func (p *ParameterMap) Rows() []*ParameterMap {
	return []*ParameterMap{p}
}

// TimeSeriesTable is an ordered sequence of rows aligned to Columns.
type TimeSeriesTable struct {
	Columns []string
	Data    [][]Cell
}

// NewTimeSeriesTable returns an empty table with the given schema.
func NewTimeSeriesTable(columns ...string) *TimeSeriesTable {
	return &TimeSeriesTable{Columns: columns}
}

// Append adds a row when its leading cell is non-empty and reports whether
// it was kept. The row is padded or cut to the schema arity.
func (t *TimeSeriesTable) Append(row []Cell) bool {
	if len(row) == 0 || row[0].IsEmpty() {
		return false
	}
	t.add(row)
	return true
}

// AppendNonEmpty adds a row unless every schema cell is empty. Unlike Append
// a blank leading cell does not drop the row.
func (t *TimeSeriesTable) AppendNonEmpty(row []Cell) bool {
	blank := true
	for i := 0; i < len(row) && i < len(t.Columns); i++ {
		if !row[i].IsEmpty() {
			blank = false
			break
		}
	}
	if blank {
		return false
	}
	t.add(row)
	return true
}

func (t *TimeSeriesTable) add(row []Cell) {
	r := make([]Cell, len(t.Columns))
	copy(r, row)
	t.Data = append(t.Data, r)
}

// Len returns the number of rows.
func (t *TimeSeriesTable) Len() int { return len(t.Data) }

// Rows converts each table row into a flat ParameterMap.
func (t *TimeSeriesTable) Rows() []*ParameterMap {
	out := make([]*ParameterMap, 0, len(t.Data))
	for _, row := range t.Data {
		m := NewParameterMap()
		for i, col := range t.Columns {
			m.Set(col, row[i])
		}
		out = append(out, m)
	}
	return out
}

// RowSet is a record read back from storage.
type RowSet []*ParameterMap

// Rows returns the rows themselves.
func (r RowSet) Rows() []*ParameterMap { return r }
