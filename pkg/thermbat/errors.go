package thermbat

import (
	"errors"
	"fmt"
)

// ErrFormatUnrecognized indicates no layout signature matched the sheet.
var ErrFormatUnrecognized = errors.New("format not recognized")

// ErrUnknownKind indicates an unsupported upload kind name.
var ErrUnknownKind = errors.New("unknown data kind")

// ExtractionError represents an error while reading or extracting a sheet.
type ExtractionError struct {
	Source string
	Kind   Kind
	Err    error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extraction error in %q (%s): %v", e.Source, e.Kind, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// NewExtractionError creates a new ExtractionError.
func NewExtractionError(source string, kind Kind, err error) *ExtractionError {
	return &ExtractionError{
		Source: source,
		Kind:   kind,
		Err:    err,
	}
}
