package parser

import (
	"strings"

	"github.com/ukaji3/thermbat-go/pkg/thermbat/models"
	"golang.org/x/text/cases"
)

// Layout names a known sheet layout.
type Layout string

const (
	// LayoutNone means no detector matched.
	LayoutNone Layout = ""
	// LayoutTemperatureSeries is a Time/T1/T2/T3 table below a header row.
	LayoutTemperatureSeries Layout = "temperature_series"
	// LayoutDischargeProfile is a single Duration/Current/Voltage reading.
	LayoutDischargeProfile Layout = "discharge_profile"
	// LayoutParameterSpec is a parameter column with values two columns right.
	LayoutParameterSpec Layout = "parameter_spec"
	// LayoutDesignMatrix is the parameter-by-build design sheet. It is never
	// auto-detected.
	LayoutDesignMatrix Layout = "design_matrix"
)

// Match is the anchor reported by a detector.
type Match struct {
	Layout Layout
	// Row is the header row (temperature, discharge) or the first row
	// holding the matched text (parameter spec).
	Row int
	// Col is the anchor column.
	Col int
	// ValueCol is the first value column: the T1 column of a temperature
	// series, or the value column of a parameter spec sheet.
	ValueCol int
}

// DetectFunc inspects a grid and reports an anchor when its signature is present.
type DetectFunc func(g *models.Grid, off Offsets) (Match, bool)

// Detector is one entry of the ordered detection list.
type Detector struct {
	Name   string
	Layout Layout
	Detect DetectFunc
}

// Detectors returns the automatic detectors in precedence order. A grid may
// satisfy several signatures; the first one wins.
func Detectors() []Detector {
	return []Detector{
		{Name: "time-series header", Layout: LayoutTemperatureSeries, Detect: detectTemperatureSeries},
		{Name: "duration/current/voltage window", Layout: LayoutDischargeProfile, Detect: detectDischargeProfile},
		{Name: "battery parameter column", Layout: LayoutParameterSpec, Detect: detectParameterSpec},
	}
}

// Detect runs the default detectors in order.
func Detect(g *models.Grid, off Offsets) (Match, bool) {
	return DetectWith(g, off, Detectors())
}

// DetectWith runs the given detectors in order and returns the first match.
func DetectWith(g *models.Grid, off Offsets, detectors []Detector) (Match, bool) {
	if g == nil {
		return Match{}, false
	}
	for _, d := range detectors {
		if m, ok := d.Detect(g, off); ok {
			m.Layout = d.Layout
			return m, true
		}
	}
	return Match{}, false
}

func fold(s string) string {
	return cases.Fold().String(s)
}

func detectTemperatureSeries(g *models.Grid, off Offsets) (Match, bool) {
	limit := off.HeaderScanRows
	if limit <= 0 || limit > g.Rows() {
		limit = g.Rows()
	}
	for r := 0; r < limit; r++ {
		parts := make([]string, 0, g.Cols())
		for c := 0; c < g.Cols(); c++ {
			parts = append(parts, g.At(r, c).String())
		}
		line := fold(strings.Join(parts, " "))
		if !strings.Contains(line, "time") || !strings.Contains(line, "t1") {
			continue
		}
		col := 0
		for c := 0; c < g.Cols(); c++ {
			if strings.Contains(fold(g.At(r, c).String()), "time") {
				col = c
				break
			}
		}
		// T1..T3 may sit on either side of Time.
		first := col + 1
		for c := 0; c < g.Cols(); c++ {
			if c != col && strings.HasPrefix(fold(strings.TrimSpace(g.At(r, c).String())), "t1") {
				first = c
				break
			}
		}
		return Match{Row: r, Col: col, ValueCol: first}, true
	}
	return Match{}, false
}

func detectDischargeProfile(g *models.Grid, _ Offsets) (Match, bool) {
	for r := 0; r < g.Rows()-1; r++ {
		for c := 0; c+2 < g.Cols(); c++ {
			if fold(g.Text(r, c)) == "duration" &&
				fold(g.Text(r, c+1)) == "current" &&
				fold(g.Text(r, c+2)) == "voltage" {
				return Match{Row: r, Col: c}, true
			}
		}
	}
	return Match{}, false
}

func detectParameterSpec(g *models.Grid, _ Offsets) (Match, bool) {
	for c := 0; c < g.Cols(); c++ {
		for r := 0; r < g.Rows(); r++ {
			if strings.Contains(fold(g.At(r, c).String()), "battery") {
				return Match{Row: r, Col: c, ValueCol: c + 2}, true
			}
		}
	}
	return Match{}, false
}
