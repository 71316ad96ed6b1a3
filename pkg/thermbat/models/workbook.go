package models

import "fmt"

// BuildKey identifies one physical battery build.
type BuildKey struct {
	// Battery is the battery code (e.g. "48").
	Battery string
	// Build is the build number within the battery.
	Build string
}

// String combines the key into "Battery-{code}_Build-{number}".
func (k BuildKey) String() string {
	return fmt.Sprintf("Battery-%s_Build-%s", k.Battery, k.Build)
}

// SpecKey returns the key of a battery-level block such as "Battery-48_Spec".
func SpecKey(battery, suffix string) string {
	return fmt.Sprintf("Battery-%s_%s", battery, suffix)
}

// Tag classifies a data block and decides its storage subfolder.
type Tag string

const (
	TagDesignData           Tag = "DesignData"
	TagCustomerSpecs        Tag = "CustomerSpecs"
	TagDischargeProfileSpec Tag = "DischargeProfileSpec"
	TagTempData             Tag = "TempData"
	TagDischargeData        Tag = "DischargeData"
)

// Tags lists every known tag in canonical order.
func Tags() []Tag {
	return []Tag{TagDesignData, TagCustomerSpecs, TagDischargeProfileSpec, TagTempData, TagDischargeData}
}

// DataBlock is one extracted build or spec record.
type DataBlock struct {
	// Tag is the data type of the block.
	Tag Tag
	// Key is the build key or spec key text.
	Key string
	// Record holds the extracted values.
	Record Record
}

// ValidationError is one rule violation for one build. It is reported, never raised.
type ValidationError struct {
	BuildKey string `json:"build_key"`
	Rule     string `json:"rule"`
	Message  string `json:"message"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.BuildKey, e.Message)
}
