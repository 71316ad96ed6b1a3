package parser

import (
	"strings"

	"github.com/ukaji3/thermbat-go/pkg/thermbat/models"
)

var profileColumns = []string{"Duration (sec)", "Current (A)", "Voltage (V)"}

// ExtractCustomerSpecs reads a customer specification sheet: one parameter
// block for the battery and, when the profile header is present, the
// discharge profile table next to it.
func ExtractCustomerSpecs(g *models.Grid, off Offsets) []models.DataBlock {
	battery := textOr(g, off.SpecBatteryRow, off.SpecBatteryCol, "Unknown")

	var set blockSet
	spec := models.NewParameterMap()
	for r := off.SpecStartRow; r < off.SpecEndRow && r < g.Rows(); r++ {
		name := g.Text(r, off.SpecParamCol)
		if isBlankName(name) {
			continue
		}
		spec.Set(name, g.At(r, off.SpecValueCol).Coerce())
	}
	if spec.Len() > 0 {
		set.put(models.TagCustomerSpecs, models.SpecKey(battery, "Spec"), spec)
	}

	if strings.Contains(g.Text(off.ProfileHeaderRow, off.ProfileFirstCol), off.ProfileMarker) {
		profile := models.NewTimeSeriesTable(profileColumns...)
		for r := off.ProfileHeaderRow + 1; r < g.Rows(); r++ {
			if g.Text(r, off.ProfileFirstCol) == profileColumns[0] {
				continue
			}
			profile.AppendNonEmpty([]models.Cell{
				g.At(r, off.ProfileFirstCol).Coerce(),
				g.At(r, off.ProfileFirstCol+1).Coerce(),
				g.At(r, off.ProfileFirstCol+2).Coerce(),
			})
		}
		if profile.Len() > 0 {
			set.put(models.TagDischargeProfileSpec, models.SpecKey(battery, "Profile"), profile)
		}
	}
	return set.list()
}
