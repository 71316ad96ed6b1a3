// Package parser turns spreadsheet grids into battery data blocks.
package parser

// Offsets holds the fixed cell positions used by the layout detectors and
// the upload-path parsers. All indexes are 0-based.
type Offsets struct {
	// HeaderScanRows bounds the search for a time-series header row.
	HeaderScanRows int

	// Design data matrix.
	DesignParamCol      int
	DesignUnitCol       int
	DesignParamStartRow int
	DesignFirstBuildCol int
	DesignBatteryRow    int
	DesignBuildRow      int

	// Shared-time temperature sheet.
	TempTimeCol      int
	TempFirstCol     int
	TempHeaderRow    int
	TempBatteryRow   int
	TempBuildRow     int
	TempDataStartRow int
	TempHeaderMarker string
	TempBlockColumns int

	// Multi-build discharge sheet.
	DischargeFirstCol     int
	DischargeHeaderRow    int
	DischargeBatteryRow   int
	DischargeBuildRow     int
	DischargeDataStartRow int
	DischargeHeaderMarker string

	// Customer specification sheet.
	SpecBatteryRow   int
	SpecBatteryCol   int
	SpecStartRow     int
	SpecEndRow       int // exclusive
	SpecParamCol     int
	SpecValueCol     int
	ProfileHeaderRow int
	ProfileFirstCol  int
	ProfileMarker    string
}

// DefaultOffsets returns the positions used by the standard workbook templates.
func DefaultOffsets() Offsets {
	return Offsets{
		HeaderScanRows: 10,

		DesignParamCol:      1,
		DesignUnitCol:       2,
		DesignParamStartRow: 4,
		DesignFirstBuildCol: 3,
		DesignBatteryRow:    4,
		DesignBuildRow:      5,

		TempTimeCol:      1,
		TempFirstCol:     2,
		TempHeaderRow:    5,
		TempBatteryRow:   2,
		TempBuildRow:     3,
		TempDataStartRow: 6,
		TempHeaderMarker: "T1",
		TempBlockColumns: 3,

		DischargeFirstCol:     1,
		DischargeHeaderRow:    7,
		DischargeBatteryRow:   4,
		DischargeBuildRow:     5,
		DischargeDataStartRow: 8,
		DischargeHeaderMarker: "Time",

		SpecBatteryRow:   5,
		SpecBatteryCol:   3,
		SpecStartRow:     6,
		SpecEndRow:       20,
		SpecParamCol:     1,
		SpecValueCol:     3,
		ProfileHeaderRow: 4,
		ProfileFirstCol:  5,
		ProfileMarker:    "Duration",
	}
}
