// Package validate checks extracted design builds against engineering rules.
//
// Validation is advisory: violations are returned as data and never stop an
// upload. Every rule is independent and skips a build silently when a
// parameter it needs is missing.
package validate

import (
	"fmt"
	"math"
	"strings"

	"github.com/ukaji3/thermbat-go/pkg/thermbat/models"
)

// Parameter names referenced by the rules. Design sheets append units, so a
// lookup also matches "<name> (<unit>)".
const (
	ParamDischargeTemperature = "Temperature of Discharge"
	ParamMaxActivationTime    = "Std. Max Activation Time"
	ParamCellsInSeries        = "Cells in Series"
	ParamStacksInParallel     = "Stacks in Parallel"
	ParamNumberOfCells        = "Number of Cells"
)

// MaterialParams are the weights that must add up to 100.
var MaterialParams = []string{
	"Electrolyte Weight per Electrode (grams)",
	"Anode Weight per Electrode (grams)",
	"Cathode Weight per Electrode (grams)",
	"Heat Pellet-1 Weight (grams)",
}

const (
	minDischargeTemp  = -40.0
	maxDischargeTemp  = 70.0
	maxActivationTime = 2000.0
	materialTotal     = 100.0
	materialTolerance = 0.5
)

// Rule checks one build and returns its violation messages.
type Rule struct {
	Name  string
	Check func(p *models.ParameterMap) []string
}

// Rules returns the fixed rule set in evaluation order.
func Rules() []Rule {
	return []Rule{
		{Name: "temperature_range", Check: checkTemperature},
		{Name: "activation_time", Check: checkActivation},
		{Name: "cell_count", Check: checkCellCount},
		{Name: "material_ratio", Check: checkMaterialRatio},
	}
}

func checkTemperature(p *models.ParameterMap) []string {
	temp, ok := number(p, ParamDischargeTemperature)
	if !ok || (temp >= minDischargeTemp && temp <= maxDischargeTemp) {
		return nil
	}
	return []string{fmt.Sprintf("Temperature must be between %g and %g (got %g)", minDischargeTemp, maxDischargeTemp, temp)}
}

func checkActivation(p *models.ParameterMap) []string {
	act, ok := number(p, ParamMaxActivationTime)
	if !ok || act <= maxActivationTime {
		return nil
	}
	return []string{fmt.Sprintf("Activation time > %g ms (got %g)", maxActivationTime, act)}
}

func checkCellCount(p *models.ParameterMap) []string {
	series, ok1 := number(p, ParamCellsInSeries)
	parallel, ok2 := number(p, ParamStacksInParallel)
	cells, ok3 := number(p, ParamNumberOfCells)
	if !ok1 || !ok2 || !ok3 || series*parallel == cells {
		return nil
	}
	return []string{fmt.Sprintf("Cells ≠ Series × Parallel (%g × %g ≠ %g)", series, parallel, cells)}
}

func checkMaterialRatio(p *models.ParameterMap) []string {
	total := 0.0
	for _, name := range MaterialParams {
		v, ok := lookup(p, name)
		if !ok {
			return nil
		}
		if f, ok := v.Float(); ok {
			total += f
		}
	}
	if math.Abs(total-materialTotal) <= materialTolerance {
		return nil
	}
	return []string{fmt.Sprintf("Material ratio must equal 100%% (got %g)", total)}
}

// lookup finds name exactly or with a unit suffix.
func lookup(p *models.ParameterMap, name string) (models.Cell, bool) {
	if v, ok := p.Get(name); ok {
		return v, true
	}
	prefix := name + " ("
	for _, k := range p.Keys() {
		if strings.HasPrefix(k, prefix) && strings.HasSuffix(k, ")") {
			v, _ := p.Get(k)
			return v, true
		}
	}
	return models.Cell{}, false
}

// number returns the numeric value of a parameter. Blank or non-numeric
// values count as absent.
func number(p *models.ParameterMap, name string) (float64, bool) {
	v, ok := lookup(p, name)
	if !ok {
		return 0, false
	}
	return v.Float()
}
