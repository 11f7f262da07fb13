package main

import (
	"math"

	"github.com/pthm-cable/studbook/config"
)

// ParamSpec defines a single optimizable parameter.
type ParamSpec struct {
	Name    string  // Human-readable name
	Path    string  // Config path for logging
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value
	Integer bool    // Rounded when applied
}

// ParamVector holds the set of all optimizable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of selection parameters.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			// Herd selection
			{Name: "min_breeding_value", Path: "herd.min_breeding_value", Min: 0, Max: 80, Default: 40},
			{Name: "candidates_per_dam", Path: "herd.candidates_per_dam", Min: 1, Max: 10, Default: 4, Integer: true},
			{Name: "pairs_per_generation", Path: "herd.pairs_per_generation", Min: 2, Max: 30, Default: 12, Integer: true},
			// Breeding value weights
			{Name: "diversity_weight", Path: "analysis.breeding_value.diversity_weight", Min: 0, Max: 100, Default: 30},
			{Name: "risk_weight", Path: "analysis.breeding_value.risk_weight", Min: 0, Max: 2, Default: 0.5},
			{Name: "inbreeding_weight", Path: "analysis.breeding_value.inbreeding_weight", Min: 0, Max: 100, Default: 50},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the default parameter values as a slice.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp ensures all values are within bounds, rounding integer parameters.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		val := max(spec.Min, min(spec.Max, v[i]))
		if spec.Integer {
			val = math.Round(val)
		}
		clamped[i] = val
	}
	return clamped
}

// ApplyToConfig applies parameter values to a Config struct.
// Order must match Specs order.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	c := pv.Clamp(values)
	cfg.Herd.MinBreedingValue = c[0]
	cfg.Herd.CandidatesPerDam = int(c[1])
	cfg.Herd.PairsPerGeneration = int(c[2])
	cfg.Analysis.BreedingValue.DiversityWeight = c[3]
	cfg.Analysis.BreedingValue.RiskWeight = c[4]
	cfg.Analysis.BreedingValue.InbreedingWeight = c[5]
}

// ExtractFromConfig extracts current parameter values from a Config struct.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	return []float64{
		cfg.Herd.MinBreedingValue,
		float64(cfg.Herd.CandidatesPerDam),
		float64(cfg.Herd.PairsPerGeneration),
		cfg.Analysis.BreedingValue.DiversityWeight,
		cfg.Analysis.BreedingValue.RiskWeight,
		cfg.Analysis.BreedingValue.InbreedingWeight,
	}
}
