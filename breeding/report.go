package breeding

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/floats"

	"github.com/pthm-cable/studbook/genetics"
)

// Report is the compatibility assessment of one candidate pair. It is a
// plain value; nothing in it refers back to the analyzer or the parents.
type Report struct {
	Species genetics.Species `json:"species"`
	ParentA string           `json:"parent_a,omitempty"`
	ParentB string           `json:"parent_b,omitempty"`

	Diversity  float64 `json:"genetic_diversity"`
	Inbreeding float64 `json:"inbreeding_coefficient"`

	HealthRisks      []Finding `json:"health_risks"`
	OverallRiskScore float64   `json:"overall_risk_score"`

	PredictedStats  map[string]StatRange `json:"predicted_stats"`
	PredictedColors []Outcome            `json:"predicted_colors"`
	LethalOffspring float64              `json:"lethal_offspring_rate"` // Share of color trials with a lethal phenotype
	Temperament     []Outcome            `json:"temperament"`

	BreedingValue   float64  `json:"breeding_value"`
	Recommendations []string `json:"recommendations"`
}

// Lethal reports whether any finding carries a lethal combination.
func (r Report) Lethal() bool {
	for _, f := range r.HealthRisks {
		if f.Lethal {
			return true
		}
	}
	return false
}

// ColorMass is the total probability over predicted colors (1 for any
// report produced by Analyze).
func (r Report) ColorMass() float64 {
	ps := make([]float64, len(r.PredictedColors))
	for i, o := range r.PredictedColors {
		ps[i] = o.Probability
	}
	return floats.Sum(ps)
}

// MostLikelyColor returns the top predicted color, or "" for an empty report.
func (r Report) MostLikelyColor() string {
	if len(r.PredictedColors) == 0 {
		return ""
	}
	return r.PredictedColors[0].Value
}

// StatNames returns the predicted stat names in sorted order.
func (r Report) StatNames() []string {
	names := make([]string, 0, len(r.PredictedStats))
	for name := range r.PredictedStats {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LogValue implements slog.LogValuer for structured logging.
func (r Report) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.String("species", string(r.Species)),
		slog.Float64("diversity", r.Diversity),
		slog.Float64("inbreeding", r.Inbreeding),
		slog.Float64("risk", r.OverallRiskScore),
		slog.Int("findings", len(r.HealthRisks)),
		slog.Bool("lethal", r.Lethal()),
		slog.Float64("breeding_value", r.BreedingValue),
		slog.String("top_color", r.MostLikelyColor()),
	}
	if r.ParentA != "" || r.ParentB != "" {
		attrs = append(attrs, slog.String("parent_a", r.ParentA), slog.String("parent_b", r.ParentB))
	}
	return slog.GroupValue(attrs...)
}
