package parser

import (
	"github.com/ukaji3/thermbat-go/pkg/thermbat/models"
)

const (
	unknownBattery = "UnknownBatt"
	unknownBuild   = "UnknownBuild"
)

// ExtractTempMulti reads a temperature sheet where every build shares one
// Time column. Each build is a three column block whose header row cell
// equals TempHeaderMarker; its battery code and build number sit one column
// right of the block start.
func ExtractTempMulti(g *models.Grid, off Offsets) []models.DataBlock {
	var set blockSet
	width := off.TempBlockColumns
	if width <= 0 {
		width = 3
	}
	for c := off.TempFirstCol; c < g.Cols(); {
		if g.Text(off.TempHeaderRow, c) != off.TempHeaderMarker {
			c++
			continue
		}
		key := models.BuildKey{
			Battery: textOr(g, off.TempBatteryRow, c+1, unknownBattery),
			Build:   textOr(g, off.TempBuildRow, c+1, unknownBuild),
		}
		table := models.NewTimeSeriesTable("Time", "T1", "T2", "T3")
		for r := off.TempDataStartRow; r < g.Rows(); r++ {
			table.Append([]models.Cell{
				g.At(r, off.TempTimeCol).Coerce(),
				g.At(r, c).Coerce(),
				g.At(r, c+1).Coerce(),
				g.At(r, c+2).Coerce(),
			})
		}
		set.put(models.TagTempData, key.String(), table)
		c += width
	}
	return set.list()
}

// ExtractDischargeMulti reads a discharge sheet made of Time/Current/Voltage
// blocks side by side, each with its own Time column.
func ExtractDischargeMulti(g *models.Grid, off Offsets) []models.DataBlock {
	var set blockSet
	for c := off.DischargeFirstCol; c < g.Cols(); {
		if g.Text(off.DischargeHeaderRow, c) != off.DischargeHeaderMarker {
			c++
			continue
		}
		key := models.BuildKey{
			Battery: textOr(g, off.DischargeBatteryRow, c+1, unknownBattery),
			Build:   textOr(g, off.DischargeBuildRow, c+1, unknownBuild),
		}
		table := models.NewTimeSeriesTable("Time", "Current", "Voltage")
		for r := off.DischargeDataStartRow; r < g.Rows(); r++ {
			table.Append([]models.Cell{
				g.At(r, c).Coerce(),
				g.At(r, c+1).Coerce(),
				g.At(r, c+2).Coerce(),
			})
		}
		set.put(models.TagDischargeData, key.String(), table)
		c += 3
	}
	return set.list()
}
