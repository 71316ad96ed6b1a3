package parser

import (
	"strings"

	"github.com/ukaji3/thermbat-go/pkg/thermbat/models"
)

// Column schema of the auto-detected temperature table.
var temperatureColumns = []string{"Time", "T1", "T2", "T3"}

// ExtractTemperatureSeries reads the Time/T1/T2/T3 table below the header
// row of m. Time comes from m.Col and T1..T3 from m.ValueCol onward. Rows
// with an empty Time cell are skipped. Returns nil when no row holds data.
func ExtractTemperatureSeries(g *models.Grid, m Match) *models.TimeSeriesTable {
	table := models.NewTimeSeriesTable(temperatureColumns...)
	for r := m.Row + 1; r < g.Rows(); r++ {
		row := make([]models.Cell, len(temperatureColumns))
		row[0] = g.At(r, m.Col).Coerce()
		for i := 1; i < len(row); i++ {
			row[i] = g.At(r, m.ValueCol+i-1).Coerce()
		}
		table.Append(row)
	}
	if table.Len() == 0 {
		return nil
	}
	return table
}

// ExtractDischargeProfile reads the single reading under the
// Duration/Current/Voltage header anchored at m. Duration and current are
// numeric when they parse; voltage is kept as text.
func ExtractDischargeProfile(g *models.Grid, m Match) *models.ParameterMap {
	if m.Row+1 >= g.Rows() {
		return nil
	}
	rec := models.NewParameterMap()
	for i := 0; i < 3; i++ {
		key := g.Text(m.Row, m.Col+i)
		val := g.At(m.Row+1, m.Col+i)
		if i < 2 {
			val = val.Coerce()
		} else {
			val = val.AsText()
		}
		rec.Set(key, val)
	}
	return rec
}

// ExtractParameterSpec collects (parameter, value) pairs from the matched
// parameter column and its value column. Blank or "nan" keys and blank values
// are skipped. Returns nil when nothing was collected.
func ExtractParameterSpec(g *models.Grid, m Match) *models.ParameterMap {
	rec := models.NewParameterMap()
	for r := 0; r < g.Rows(); r++ {
		key := g.Text(r, m.Col)
		if isBlankName(key) {
			continue
		}
		val := g.At(r, m.ValueCol)
		if val.IsEmpty() {
			continue
		}
		rec.Set(key, val.Coerce())
	}
	if rec.Len() == 0 {
		return nil
	}
	return rec
}

// ExtractMatch dispatches to the extractor of an auto-detected layout.
// The result is nil when the layout holds no data.
func ExtractMatch(g *models.Grid, m Match) models.Record {
	switch m.Layout {
	case LayoutTemperatureSeries:
		if t := ExtractTemperatureSeries(g, m); t != nil {
			return t
		}
	case LayoutDischargeProfile:
		if p := ExtractDischargeProfile(g, m); p != nil {
			return p
		}
	case LayoutParameterSpec:
		if p := ExtractParameterSpec(g, m); p != nil {
			return p
		}
	}
	return nil
}

func isBlankName(s string) bool {
	s = strings.TrimSpace(s)
	return s == "" || fold(s) == "nan"
}

// blockSet accumulates data blocks in extraction order. A repeated key
// replaces the earlier record in place.
type blockSet struct {
	blocks []models.DataBlock
	index  map[string]int
}

func (s *blockSet) put(tag models.Tag, key string, rec models.Record) {
	if s.index == nil {
		s.index = make(map[string]int)
	}
	b := models.DataBlock{Tag: tag, Key: key, Record: rec}
	if i, ok := s.index[key]; ok {
		s.blocks[i] = b
		return
	}
	s.index[key] = len(s.blocks)
	s.blocks = append(s.blocks, b)
}

func (s *blockSet) list() []models.DataBlock {
	return s.blocks
}

func textOr(g *models.Grid, r, c int, fallback string) string {
	if v := g.Text(r, c); !isBlankName(v) {
		return v
	}
	return fallback
}
