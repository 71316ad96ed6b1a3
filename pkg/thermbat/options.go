// Package thermbat extracts battery test data blocks from spreadsheets.
package thermbat

import (
	"fmt"
	"strings"

	"github.com/ukaji3/thermbat-go/pkg/thermbat/models"
	"github.com/ukaji3/thermbat-go/pkg/thermbat/parser"
)

// Kind selects how a sheet is read.
type Kind string

const (
	// KindAuto detects the layout from the sheet contents.
	KindAuto Kind = "auto"
	// KindDesign reads a design data matrix (one column per build).
	KindDesign Kind = "design"
	// KindSpecs reads a customer specification sheet with its discharge profile.
	KindSpecs Kind = "specs"
	// KindTemp reads a shared-time temperature sheet with many builds.
	KindTemp Kind = "temp"
	// KindDischarge reads a multi-build discharge sheet.
	KindDischarge Kind = "discharge"
)

// Kinds lists the accepted kinds.
func Kinds() []Kind {
	return []Kind{KindAuto, KindDesign, KindSpecs, KindTemp, KindDischarge}
}

// ParseKind maps a user supplied name to a Kind.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	if k == "" {
		return KindAuto, nil
	}
	for _, known := range Kinds() {
		if k == known {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// Tag returns the tag given to blocks of this kind. Auto sheets get their tag
// from the detected layout.
func (k Kind) Tag() models.Tag {
	switch k {
	case KindDesign:
		return models.TagDesignData
	case KindSpecs:
		return models.TagCustomerSpecs
	case KindTemp:
		return models.TagTempData
	case KindDischarge:
		return models.TagDischargeData
	}
	return ""
}

// Options configures extraction behavior.
type Options struct {
	// Sheet names the worksheet to read. Empty selects the first sheet.
	Sheet string
	// Offsets holds the template cell positions.
	Offsets parser.Offsets
	// Detectors overrides the automatic detection order. Nil uses parser.Detectors().
	Detectors []parser.Detector
}

// DefaultOptions returns default extraction options.
func DefaultOptions() Options {
	return Options{
		Offsets: parser.DefaultOffsets(),
	}
}

func (o Options) detectors() []parser.Detector {
	if o.Detectors != nil {
		return o.Detectors
	}
	return parser.Detectors()
}
