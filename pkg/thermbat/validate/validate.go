package validate

import (
	"github.com/ukaji3/thermbat-go/pkg/thermbat/models"
)

// Validate runs every rule over the parameter-map blocks, in block order, and
// returns the violations. Table records are ignored. Inputs are not modified.
func Validate(blocks []models.DataBlock) []models.ValidationError {
	return ValidateWith(blocks, Rules())
}

// ValidateWith runs the given rules instead of the default set.
func ValidateWith(blocks []models.DataBlock, rules []Rule) []models.ValidationError {
	var errs []models.ValidationError
	for _, b := range blocks {
		p, ok := b.Record.(*models.ParameterMap)
		if !ok || p == nil {
			continue
		}
		for _, rule := range rules {
			for _, msg := range rule.Check(p) {
				errs = append(errs, models.ValidationError{
					BuildKey: b.Key,
					Rule:     rule.Name,
					Message:  msg,
				})
			}
		}
	}
	return errs
}

// Summary counts builds with and without violations.
type Summary struct {
	Checked int
	Passed  int
	Failed  int
}

// Summarize computes a Summary for blocks given their violations.
func Summarize(blocks []models.DataBlock, errs []models.ValidationError) Summary {
	failed := make(map[string]bool, len(errs))
	for _, e := range errs {
		failed[e.BuildKey] = true
	}
	var s Summary
	seen := make(map[string]bool, len(blocks))
	for _, b := range blocks {
		if _, ok := b.Record.(*models.ParameterMap); !ok || seen[b.Key] {
			continue
		}
		seen[b.Key] = true
		s.Checked++
		if failed[b.Key] {
			s.Failed++
		} else {
			s.Passed++
		}
	}
	return s
}
