package parser

import (
	"fmt"

	"github.com/ukaji3/thermbat-go/pkg/thermbat/models"
)

type designParam struct {
	row  int
	name string
}

// ExtractDesignMatrix splits a design data sheet into one parameter map per
// build column. Columns without a battery code or build number are unused and
// skipped.
func ExtractDesignMatrix(g *models.Grid, off Offsets) []models.DataBlock {
	params := designParams(g, off)
	if len(params) == 0 {
		return nil
	}

	var set blockSet
	for c := off.DesignFirstBuildCol; c < g.Cols(); c++ {
		battery := g.Text(off.DesignBatteryRow, c)
		build := g.Text(off.DesignBuildRow, c)
		if battery == "" || build == "" {
			continue
		}
		key := models.BuildKey{Battery: battery, Build: build}
		rec := models.NewParameterMap()
		for _, p := range params {
			rec.Set(p.name, g.At(p.row, c).Coerce())
		}
		set.put(models.TagDesignData, key.String(), rec)
	}
	return set.list()
}

// designParams returns the cleaned parameter names, suffixed with their unit
// when the unit column holds one.
func designParams(g *models.Grid, off Offsets) []designParam {
	var params []designParam
	for r := off.DesignParamStartRow; r < g.Rows(); r++ {
		name := g.Text(r, off.DesignParamCol)
		if isBlankName(name) {
			continue
		}
		if unit := g.Text(r, off.DesignUnitCol); !isBlankName(unit) {
			name = fmt.Sprintf("%s (%s)", name, unit)
		}
		params = append(params, designParam{row: r, name: name})
	}
	return params
}
