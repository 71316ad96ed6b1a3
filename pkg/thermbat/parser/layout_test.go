package parser

import (
	"testing"

	"github.com/ukaji3/thermbat-go/pkg/thermbat/models"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name   string
		rows   [][]string
		layout Layout
		row    int
		col    int
	}{
		{
			name: "temperature header below title",
			rows: [][]string{
				{"Test report"},
				{},
				{"", "Battery 48"},
				{"", "Time", "T1", "T2", "T3"},
				{"", "0", "20", "21", "22"},
			},
			layout: LayoutTemperatureSeries,
			row:    3,
			col:    1,
		},
		{
			name:   "temperature header matched case-insensitively",
			rows:   [][]string{{"TIME (s)", "t1"}},
			layout: LayoutTemperatureSeries,
		},
		{
			name: "discharge window",
			rows: [][]string{
				{"notes"},
				{"", "Duration", "Current", "Voltage"},
				{"", "100", "2.5", "28"},
			},
			layout: LayoutDischargeProfile,
			row:    1,
			col:    1,
		},
		{
			name:   "discharge window without a reading row",
			rows:   [][]string{{"Duration", "Current", "Voltage"}},
			layout: LayoutNone,
		},
		{
			name: "battery parameter column",
			rows: [][]string{
				{"", "Battery Type", "", "TB-48"},
				{"", "Voltage", "", "28"},
			},
			layout: LayoutParameterSpec,
			row:    0,
			col:    1,
		},
		{
			name:   "unrecognized",
			rows:   [][]string{{"a", "b"}, {"c", "d"}},
			layout: LayoutNone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, ok := Detect(models.GridFromStrings(tt.rows), DefaultOffsets())
			if tt.layout == LayoutNone {
				if ok {
					t.Fatalf("expected no match, got %+v", m)
				}
				return
			}
			if !ok {
				t.Fatalf("expected %s, got no match", tt.layout)
			}
			if m.Layout != tt.layout || m.Row != tt.row || m.Col != tt.col {
				t.Errorf("Detect = %+v, expected %s at (%d,%d)", m, tt.layout, tt.row, tt.col)
			}
		})
	}
}

func TestDetectParameterSpecValueColumn(t *testing.T) {
	g := models.GridFromStrings([][]string{{"Battery", "", "48"}})
	m, ok := Detect(g, DefaultOffsets())
	if !ok || m.ValueCol != 2 {
		t.Fatalf("expected value column 2, got %+v (ok=%v)", m, ok)
	}
}

func TestDetectTemperatureHeaderBeyondScanLimit(t *testing.T) {
	rows := make([][]string, 12)
	rows[11] = []string{"Time", "T1"}
	g := models.GridFromStrings(rows)
	if m, ok := Detect(g, DefaultOffsets()); ok {
		t.Fatalf("header past row 10 should not match, got %+v", m)
	}
}

func TestDetectWithCustomOrder(t *testing.T) {
	// Satisfies both the temperature and the parameter signature.
	g := models.GridFromStrings([][]string{
		{"Battery", "Time", "T1"},
		{"Voltage", "0", "20"},
	})

	m, _ := Detect(g, DefaultOffsets())
	if m.Layout != LayoutTemperatureSeries {
		t.Fatalf("default order should prefer temperature, got %s", m.Layout)
	}

	custom := []Detector{Detectors()[2], Detectors()[0]}
	m, _ = DetectWith(g, DefaultOffsets(), custom)
	if m.Layout != LayoutParameterSpec {
		t.Fatalf("custom order should prefer parameter spec, got %s", m.Layout)
	}
}
