package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// GenerationStats holds aggregated statistics for one herd generation.
type GenerationStats struct {
	Generation int `csv:"generation"`

	// Population at generation end
	Population int `csv:"population"`
	Adults     int `csv:"adults"`

	// Events during the generation
	Births    int `csv:"births"`
	Stillborn int `csv:"stillborn"`
	Retired   int `csv:"retired"`

	// Pair screening
	PairsAnalyzed int `csv:"pairs_analyzed"`
	PairsLethal   int `csv:"pairs_lethal"`    // Rejected for a lethal combination
	PairsLowValue int `csv:"pairs_low_value"` // Rejected under the breeding value floor
	PairsBred     int `csv:"pairs_bred"`

	// Screening distribution over every analyzed pair
	MeanDiversity     float64 `csv:"diversity_mean"`
	MeanInbreeding    float64 `csv:"inbreeding_mean"`
	MeanRisk          float64 `csv:"risk_mean"`
	BreedingValueMean float64 `csv:"breeding_value_mean"`
	BreedingValueP10  float64 `csv:"breeding_value_p10"`
	BreedingValueP50  float64 `csv:"breeding_value_p50"`
	BreedingValueP90  float64 `csv:"breeding_value_p90"`

	// Herd stats (sampled at generation end)
	SpeedMean        float64 `csv:"speed_mean"`
	SpeedStd         float64 `csv:"speed_std"`
	StaminaMean      float64 `csv:"stamina_mean"`
	AgilityMean      float64 `csv:"agility_mean"`
	StrengthMean     float64 `csv:"strength_mean"`
	IntelligenceMean float64 `csv:"intelligence_mean"`

	// Genetic state of the herd
	LethalCarriers int    `csv:"lethal_carriers"` // Animals carrying at least one lethal allele
	CoatVariety    int    `csv:"coat_variety"`    // Distinct coat chains
	TopCoat        string `csv:"top_coat"`
}

// Percentile calculates the p-th percentile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	// Linear interpolation
	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// Summary is the distribution of a sample.
type Summary struct {
	Mean, Std     float64
	P10, P50, P90 float64
}

// Summarize computes mean, population standard deviation and percentiles.
func Summarize(values []float64) Summary {
	n := len(values)
	if n == 0 {
		return Summary{}
	}

	mean, std := stat.PopMeanStdDev(values, nil)

	// Sort for percentiles
	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	return Summary{
		Mean: mean,
		Std:  std,
		P10:  Percentile(sorted, 0.10),
		P50:  Percentile(sorted, 0.50),
		P90:  Percentile(sorted, 0.90),
	}
}

// LogValue implements slog.LogValuer for structured logging.
func (s GenerationStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("generation", s.Generation),
		slog.Int("population", s.Population),
		slog.Int("adults", s.Adults),
		slog.Int("births", s.Births),
		slog.Int("stillborn", s.Stillborn),
		slog.Int("retired", s.Retired),
		slog.Int("pairs_analyzed", s.PairsAnalyzed),
		slog.Int("pairs_lethal", s.PairsLethal),
		slog.Int("pairs_low_value", s.PairsLowValue),
		slog.Int("pairs_bred", s.PairsBred),
		slog.Float64("diversity_mean", s.MeanDiversity),
		slog.Float64("inbreeding_mean", s.MeanInbreeding),
		slog.Float64("risk_mean", s.MeanRisk),
		slog.Float64("breeding_value_mean", s.BreedingValueMean),
		slog.Float64("breeding_value_p50", s.BreedingValueP50),
		slog.Float64("speed_mean", s.SpeedMean),
		slog.Float64("stamina_mean", s.StaminaMean),
		slog.Int("lethal_carriers", s.LethalCarriers),
		slog.Int("coat_variety", s.CoatVariety),
		slog.String("top_coat", s.TopCoat),
	)
}

// LogStats logs the generation stats using slog.
func (s GenerationStats) LogStats() {
	slog.Info("generation", "stats", s)
}
