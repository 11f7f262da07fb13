package main

import (
	"log/slog"
	"math"
	"sync"

	"github.com/pthm-cable/studbook/config"
	"github.com/pthm-cable/studbook/herd"
	"github.com/pthm-cable/studbook/telemetry"
)

// FitnessEvaluator runs herd simulations and computes fitness.
type FitnessEvaluator struct {
	params      *ParamVector
	generations int
	seeds       []uint64
	baseConfig  *config.Config

	mu          sync.Mutex
	bestFitness float64
	lastQuality float64 // quality from most recent Evaluate call
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, generations int, seeds []uint64, baseCfg *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:      params,
		generations: generations,
		seeds:       seeds,
		baseConfig:  baseCfg,
		bestFitness: math.Inf(1),
	}
}

// LastQuality returns the quality score from the most recent evaluation.
func (fe *FitnessEvaluator) LastQuality() float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastQuality
}

// runResult holds the results from a single herd run.
type runResult struct {
	survived int // generations completed before the herd died out
	stats    []telemetry.GenerationStats
}

// Evaluate computes fitness for a parameter vector (lower = better).
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	results := make([]runResult, len(fe.seeds))
	var wg sync.WaitGroup
	for i, seed := range fe.seeds {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = fe.runHerd(x, seed)
		}()
	}
	wg.Wait()

	var totalFitness, totalQuality float64
	for _, r := range results {
		q := computeQuality(r.stats)
		totalFitness += fe.computeFitness(r, q)
		totalQuality += q
	}
	n := float64(len(fe.seeds))
	avgFitness := totalFitness / n

	fe.mu.Lock()
	fe.bestFitness = min(fe.bestFitness, avgFitness)
	fe.lastQuality = totalQuality / n
	fe.mu.Unlock()

	return avgFitness
}

// runHerd executes one herd run with the parameters applied.
func (fe *FitnessEvaluator) runHerd(x []float64, seed uint64) runResult {
	cfg := *fe.baseConfig
	fe.params.ApplyToConfig(&cfg, x)

	var result runResult
	h, err := herd.New(&cfg, seed, nil)
	if err != nil {
		slog.Error("herd setup failed", "seed", seed, "error", err)
		return result
	}
	for result.survived < fe.generations && h.Population() > 0 {
		stats, err := h.Step()
		if err != nil {
			slog.Error("herd step failed", "seed", seed, "error", err)
			return result
		}
		result.stats = append(result.stats, stats)
		result.survived++
	}
	return result
}

// computeFitness calculates the scalar fitness (lower = better).
// Formula: -(survived generations × (1 + quality))
func (fe *FitnessEvaluator) computeFitness(r runResult, quality float64) float64 {
	return -(float64(r.survived) * (1 + quality))
}

// Quality component weights.
const (
	qualityWeightStats     = 0.40
	qualityWeightDiversity = 0.30
	qualityWeightViability = 0.30

	qualityWarmupGenerations = 2
)

// computeQuality scores the late herd in [0, 1]: high mean stats, retained
// diversity and few stillbirths.
func computeQuality(stats []telemetry.GenerationStats) float64 {
	if len(stats) <= qualityWarmupGenerations {
		return 0
	}
	valid := stats[qualityWarmupGenerations:]

	var statSum, diversitySum, viabilitySum float64
	for _, s := range valid {
		mean := (s.SpeedMean + s.StaminaMean + s.AgilityMean + s.StrengthMean + s.IntelligenceMean) / 5
		statSum += mean / 100
		diversitySum += s.MeanDiversity
		if conceived := s.Births + s.Stillborn; conceived > 0 {
			viabilitySum += float64(s.Births) / float64(conceived)
		} else {
			viabilitySum += 1
		}
	}
	n := float64(len(valid))
	quality := qualityWeightStats*statSum/n +
		qualityWeightDiversity*diversitySum/n +
		qualityWeightViability*viabilitySum/n
	return clamp01(quality)
}

// clamp01 clamps x to [0, 1].
func clamp01(x float64) float64 {
	return max(0, min(1, x))
}
