package thermbat

import (
	"io"
	"path/filepath"
	"strings"

	"github.com/ukaji3/thermbat-go/pkg/thermbat/models"
	"github.com/ukaji3/thermbat-go/pkg/thermbat/parser"
	"golang.org/x/text/cases"
)

// Conversion is the result of automatic layout detection.
type Conversion struct {
	Layout parser.Layout
	Record models.Record
}

// Convert detects the layout of g and extracts its record. Leading blank rows
// are ignored. Detectors are tried in order; a detector whose layout yields no
// data hands over to the next one. ErrFormatUnrecognized is returned when
// nothing matched, with no partial output.
func Convert(g *models.Grid, opts Options) (*Conversion, error) {
	g = parser.TrimTopEmptyRows(g)
	for _, d := range opts.detectors() {
		m, ok := parser.DetectWith(g, opts.Offsets, []parser.Detector{d})
		if !ok {
			continue
		}
		if rec := parser.ExtractMatch(g, m); rec != nil {
			return &Conversion{Layout: m.Layout, Record: rec}, nil
		}
	}
	return nil, ErrFormatUnrecognized
}

// Parse extracts the data blocks of a sheet read as kind. Upload kinds use
// fixed template positions and return an empty slice when the template
// signature is absent.
func Parse(g *models.Grid, kind Kind, opts Options) ([]models.DataBlock, error) {
	switch kind {
	case KindAuto, "":
		conv, err := Convert(g, opts)
		if err != nil {
			return nil, err
		}
		return []models.DataBlock{autoBlock(conv)}, nil
	case KindDesign:
		return parser.ExtractDesignMatrix(g, opts.Offsets), nil
	case KindSpecs:
		return parser.ExtractCustomerSpecs(g, opts.Offsets), nil
	case KindTemp:
		return parser.ExtractTempMulti(g, opts.Offsets), nil
	case KindDischarge:
		return parser.ExtractDischargeMulti(g, opts.Offsets), nil
	}
	return nil, ErrUnknownKind
}

// ExtractFile reads an xlsx file and extracts its data blocks.
func ExtractFile(path string, kind Kind, opts Options) ([]models.DataBlock, error) {
	g, err := parser.OpenGrid(path, opts.Sheet)
	if err != nil {
		return nil, NewExtractionError(filepath.Base(path), kind, err)
	}
	return Parse(g, kind, opts)
}

// ExtractReader reads an xlsx stream and extracts its data blocks.
func ExtractReader(name string, r io.Reader, kind Kind, opts Options) ([]models.DataBlock, error) {
	g, err := parser.ReadGrid(r, opts.Sheet)
	if err != nil {
		return nil, NewExtractionError(name, kind, err)
	}
	return Parse(g, kind, opts)
}

// autoBlock wraps an auto-detected record. Parameter sheets take their
// battery code from the first parameter mentioning the battery.
func autoBlock(conv *Conversion) models.DataBlock {
	battery := "Unknown"
	switch conv.Layout {
	case parser.LayoutTemperatureSeries:
		return models.DataBlock{Tag: models.TagTempData, Key: models.SpecKey(battery, "Series"), Record: conv.Record}
	case parser.LayoutDischargeProfile:
		return models.DataBlock{Tag: models.TagDischargeProfileSpec, Key: models.SpecKey(battery, "Profile"), Record: conv.Record}
	}
	if p, ok := conv.Record.(*models.ParameterMap); ok {
		caser := cases.Fold()
		for _, k := range p.Keys() {
			if !strings.Contains(caser.String(k), "battery") {
				continue
			}
			if v, _ := p.Get(k); !v.IsEmpty() {
				battery = strings.TrimSpace(v.String())
				break
			}
		}
	}
	return models.DataBlock{Tag: models.TagCustomerSpecs, Key: models.SpecKey(battery, "Spec"), Record: conv.Record}
}
