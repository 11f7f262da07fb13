package telemetry

import (
	"sort"

	"github.com/pthm-cable/studbook/breeding"
	"github.com/pthm-cable/studbook/genetics"
)

// AnimalSample is the per-animal state the collector reads at generation end.
type AnimalSample struct {
	Adult         bool
	Stats         map[string]float64
	Coat          string
	LethalCarrier bool
}

// Collector accumulates events within a generation and produces GenerationStats.
type Collector struct {
	generation int

	// Event counters for the current generation
	births    int
	stillborn int
	retired   int
	lethal    int
	lowValue  int
	bred      int

	// Screening samples for the current generation
	diversity  []float64
	inbreeding []float64
	risk       []float64
	value      []float64
}

// NewCollector creates a new stats collector starting at generation 0.
func NewCollector() *Collector {
	return &Collector{}
}

// RecordBirth records a live offspring.
func (c *Collector) RecordBirth() {
	c.births++
}

// RecordStillborn records an offspring lost to a lethal genotype.
func (c *Collector) RecordStillborn() {
	c.stillborn++
}

// RecordRetirement records an animal leaving the herd.
func (c *Collector) RecordRetirement() {
	c.retired++
}

// RecordScreening records one analyzed pair.
func (c *Collector) RecordScreening(r breeding.Report) {
	c.diversity = append(c.diversity, r.Diversity)
	c.inbreeding = append(c.inbreeding, r.Inbreeding)
	c.risk = append(c.risk, r.OverallRiskScore)
	c.value = append(c.value, r.BreedingValue)
}

// RecordLethalRejection records a pair turned down for a lethal combination.
func (c *Collector) RecordLethalRejection() {
	c.lethal++
}

// RecordLowValueRejection records a pair turned down under the breeding value floor.
func (c *Collector) RecordLowValueRejection() {
	c.lowValue++
}

// RecordBred records a pair selected for breeding.
func (c *Collector) RecordBred() {
	c.bred++
}

// Generation returns the generation currently being collected.
func (c *Collector) Generation() int {
	return c.generation
}

// Flush produces stats for the current generation from the accumulated
// events and the herd at its end, then resets for the next generation.
func (c *Collector) Flush(herd []AnimalSample) GenerationStats {
	values := Summarize(c.value)
	stats := GenerationStats{
		Generation:        c.generation,
		Population:        len(herd),
		Births:            c.births,
		Stillborn:         c.stillborn,
		Retired:           c.retired,
		PairsAnalyzed:     len(c.value),
		PairsLethal:       c.lethal,
		PairsLowValue:     c.lowValue,
		PairsBred:         c.bred,
		MeanDiversity:     Summarize(c.diversity).Mean,
		MeanInbreeding:    Summarize(c.inbreeding).Mean,
		MeanRisk:          Summarize(c.risk).Mean,
		BreedingValueMean: values.Mean,
		BreedingValueP10:  values.P10,
		BreedingValueP50:  values.P50,
		BreedingValueP90:  values.P90,
	}

	perStat := make(map[string][]float64)
	coats := make(map[string]int)
	for _, a := range herd {
		if a.Adult {
			stats.Adults++
		}
		if a.LethalCarrier {
			stats.LethalCarriers++
		}
		for name, v := range a.Stats {
			perStat[name] = append(perStat[name], v)
		}
		if a.Coat != "" {
			coats[a.Coat]++
		}
	}

	speed := Summarize(perStat[genetics.StatSpeed])
	stats.SpeedMean = speed.Mean
	stats.SpeedStd = speed.Std
	stats.StaminaMean = Summarize(perStat[genetics.StatStamina]).Mean
	stats.AgilityMean = Summarize(perStat[genetics.StatAgility]).Mean
	stats.StrengthMean = Summarize(perStat[genetics.StatStrength]).Mean
	stats.IntelligenceMean = Summarize(perStat[genetics.StatIntelligence]).Mean

	stats.CoatVariety = len(coats)
	stats.TopCoat = topCoat(coats)

	c.reset()
	return stats
}

func (c *Collector) reset() {
	c.generation++
	c.births = 0
	c.stillborn = 0
	c.retired = 0
	c.lethal = 0
	c.lowValue = 0
	c.bred = 0
	c.diversity = c.diversity[:0]
	c.inbreeding = c.inbreeding[:0]
	c.risk = c.risk[:0]
	c.value = c.value[:0]
}

// topCoat is the most common coat, ties broken by name.
func topCoat(coats map[string]int) string {
	names := make([]string, 0, len(coats))
	for name := range coats {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if coats[names[i]] != coats[names[j]] {
			return coats[names[i]] > coats[names[j]]
		}
		return names[i] < names[j]
	})
	if len(names) == 0 {
		return ""
	}
	return names[0]
}
