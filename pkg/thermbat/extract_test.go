package thermbat

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/ukaji3/thermbat-go/pkg/thermbat/models"
	"github.com/ukaji3/thermbat-go/pkg/thermbat/output"
	"github.com/ukaji3/thermbat-go/pkg/thermbat/parser"
)

func TestConvertLayouts(t *testing.T) {
	tests := []struct {
		name   string
		rows   [][]string
		layout parser.Layout
		json   string
	}{
		{
			name: "temperature series",
			rows: [][]string{
				{},
				{"", "Time", "T1", "T2", "T3"},
				{"", "0", "20", "21", "22"},
				{"", "", "1", "1", "1"},
			},
			layout: parser.LayoutTemperatureSeries,
			json:   `[{"Time":0,"T1":20,"T2":21,"T3":22}]`,
		},
		{
			name: "discharge profile",
			rows: [][]string{
				{"", "Duration", "Current", "Voltage"},
				{"", "100", "2.5", "28"},
			},
			layout: parser.LayoutDischargeProfile,
			json:   `[{"Duration":100,"Current":2.5,"Voltage":"28"}]`,
		},
		{
			name: "parameter spec",
			rows: [][]string{
				{"Battery Type", "", "TB-48"},
				{"Voltage", "", "28"},
			},
			layout: parser.LayoutParameterSpec,
			json:   `[{"Battery Type":"TB-48","Voltage":28}]`,
		},
		{
			name:   "empty temperature table falls through",
			rows:   [][]string{{"Battery", "", "48", "time t1"}},
			layout: parser.LayoutParameterSpec,
			json:   `[{"Battery":48}]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conv, err := Convert(models.GridFromStrings(tt.rows), DefaultOptions())
			if err != nil {
				t.Fatalf("Convert failed: %v", err)
			}
			if conv.Layout != tt.layout {
				t.Errorf("layout = %q, want %q", conv.Layout, tt.layout)
			}
			data, err := output.ToJSON(conv.Record, false)
			if err != nil {
				t.Fatalf("ToJSON failed: %v", err)
			}
			if string(data) != tt.json {
				t.Errorf("json = %s, want %s", data, tt.json)
			}
		})
	}
}

func TestConvertUnrecognized(t *testing.T) {
	_, err := Convert(models.GridFromStrings([][]string{{"a", "b"}, {"c", "d"}}), DefaultOptions())
	if !errors.Is(err, ErrFormatUnrecognized) {
		t.Fatalf("expected ErrFormatUnrecognized, got %v", err)
	}
}

func TestConvertIsDeterministic(t *testing.T) {
	g := models.GridFromStrings([][]string{
		{"", "Time", "T1", "T2", "T3"},
		{"", "0", "20.5", "21", "n/a"},
		{"", "5", "30", "", "32"},
	})
	var outputs [][]byte
	for i := 0; i < 2; i++ {
		conv, err := Convert(g, DefaultOptions())
		if err != nil {
			t.Fatalf("Convert failed: %v", err)
		}
		data, err := output.ToJSON(conv.Record, true)
		if err != nil {
			t.Fatalf("ToJSON failed: %v", err)
		}
		outputs = append(outputs, data)
	}
	if !bytes.Equal(outputs[0], outputs[1]) {
		t.Errorf("outputs differ:\n%s\n---\n%s", outputs[0], outputs[1])
	}
}

func TestConvertWithCustomDetectors(t *testing.T) {
	g := models.GridFromStrings([][]string{
		{"Battery", "", "48"},
		{"Time", "T1", "T2", "T3"},
		{"0", "1", "2", "3"},
	})

	conv, err := Convert(g, DefaultOptions())
	if err != nil {
		t.Fatalf("Convert failed: %v", err)
	}
	if conv.Layout != parser.LayoutTemperatureSeries {
		t.Fatalf("default layout = %q", conv.Layout)
	}

	opts := DefaultOptions()
	for _, d := range parser.Detectors() {
		if d.Layout == parser.LayoutParameterSpec {
			opts.Detectors = []parser.Detector{d}
		}
	}
	conv, err = Convert(g, opts)
	if err != nil {
		t.Fatalf("Convert failed: %v", err)
	}
	if conv.Layout != parser.LayoutParameterSpec {
		t.Errorf("custom layout = %q, want parameter_spec", conv.Layout)
	}
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		input string
		want  Kind
		err   bool
	}{
		{"", KindAuto, false},
		{"auto", KindAuto, false},
		{" Design ", KindDesign, false},
		{"TEMP", KindTemp, false},
		{"discharge", KindDischarge, false},
		{"specs", KindSpecs, false},
		{"xls", "", true},
	}
	for _, tt := range tests {
		got, err := ParseKind(tt.input)
		if tt.err {
			if !errors.Is(err, ErrUnknownKind) {
				t.Errorf("ParseKind(%q) error = %v, want ErrUnknownKind", tt.input, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ParseKind(%q) = %q, %v; want %q", tt.input, got, err, tt.want)
		}
	}
}

func TestKindTag(t *testing.T) {
	tests := map[Kind]models.Tag{
		KindDesign:    models.TagDesignData,
		KindSpecs:     models.TagCustomerSpecs,
		KindTemp:      models.TagTempData,
		KindDischarge: models.TagDischargeData,
		KindAuto:      "",
	}
	for kind, want := range tests {
		if got := kind.Tag(); got != want {
			t.Errorf("%s.Tag() = %q, want %q", kind, got, want)
		}
	}
}

func TestParseAutoBlockKeys(t *testing.T) {
	tests := []struct {
		name string
		rows [][]string
		tag  models.Tag
		key  string
	}{
		{
			name: "series",
			rows: [][]string{{"Time", "T1", "T2", "T3"}, {"0", "1", "2", "3"}},
			tag:  models.TagTempData,
			key:  "Battery-Unknown_Series",
		},
		{
			name: "profile",
			rows: [][]string{{"Duration", "Current", "Voltage"}, {"1", "2", "3"}},
			tag:  models.TagDischargeProfileSpec,
			key:  "Battery-Unknown_Profile",
		},
		{
			name: "spec with battery code",
			rows: [][]string{{"Battery Code", "", " 48 "}, {"Voltage", "", "28"}},
			tag:  models.TagCustomerSpecs,
			key:  "Battery-48_Spec",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			blocks, err := Parse(models.GridFromStrings(tt.rows), KindAuto, DefaultOptions())
			if err != nil {
				t.Fatalf("Parse failed: %v", err)
			}
			if len(blocks) != 1 {
				t.Fatalf("expected 1 block, got %d", len(blocks))
			}
			if blocks[0].Tag != tt.tag || blocks[0].Key != tt.key {
				t.Errorf("block = %s/%s, want %s/%s", blocks[0].Tag, blocks[0].Key, tt.tag, tt.key)
			}
		})
	}
}

func TestParseUnknownKind(t *testing.T) {
	_, err := Parse(models.GridFromStrings([][]string{{"a"}}), Kind("xls"), DefaultOptions())
	if !errors.Is(err, ErrUnknownKind) {
		t.Errorf("expected ErrUnknownKind, got %v", err)
	}
}

func TestParseUploadKindWithoutSignature(t *testing.T) {
	blocks, err := Parse(models.GridFromStrings([][]string{{"a"}}), KindTemp, DefaultOptions())
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(blocks) != 0 {
		t.Errorf("expected no blocks, got %d", len(blocks))
	}
}

func TestExtractFile(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	f.SetCellValue("Sheet1", "B2", "Duration")
	f.SetCellValue("Sheet1", "C2", "Current")
	f.SetCellValue("Sheet1", "D2", "Voltage")
	f.SetCellValue("Sheet1", "B3", 100)
	f.SetCellValue("Sheet1", "C3", 2.5)
	f.SetCellValue("Sheet1", "D3", 28)

	path := filepath.Join(t.TempDir(), "profile.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("Failed to save test file: %v", err)
	}

	blocks, err := ExtractFile(path, KindAuto, DefaultOptions())
	if err != nil {
		t.Fatalf("ExtractFile failed: %v", err)
	}
	data, err := output.ToJSON(blocks[0].Record, false)
	if err != nil {
		t.Fatalf("ToJSON failed: %v", err)
	}
	if want := `[{"Duration":100,"Current":2.5,"Voltage":"28"}]`; string(data) != want {
		t.Errorf("json = %s, want %s", data, want)
	}
}

func TestExtractReaderNamedSheet(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	if _, err := f.NewSheet("Specs"); err != nil {
		t.Fatalf("NewSheet failed: %v", err)
	}
	f.SetCellValue("Specs", "A1", "Battery Type")
	f.SetCellValue("Specs", "C1", "TB-48")
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("WriteToBuffer failed: %v", err)
	}

	opts := DefaultOptions()
	opts.Sheet = "Specs"
	blocks, err := ExtractReader("specs.xlsx", buf, KindAuto, opts)
	if err != nil {
		t.Fatalf("ExtractReader failed: %v", err)
	}
	if blocks[0].Key != "Battery-TB-48_Spec" {
		t.Errorf("key = %q, want Battery-TB-48_Spec", blocks[0].Key)
	}
}

func TestExtractFileErrors(t *testing.T) {
	_, err := ExtractFile(filepath.Join(t.TempDir(), "missing.xlsx"), KindDesign, DefaultOptions())
	var extErr *ExtractionError
	if !errors.As(err, &extErr) {
		t.Fatalf("expected ExtractionError, got %v", err)
	}
	if extErr.Source != "missing.xlsx" || extErr.Kind != KindDesign {
		t.Errorf("unexpected error fields: %+v", extErr)
	}
	if extErr.Unwrap() == nil {
		t.Error("expected wrapped cause")
	}
}
