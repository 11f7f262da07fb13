// Package herd runs a multi-generation breeding simulation. Animals live
// as entities in an ark ECS world; each generation the herd ages, candidate
// pairs are scored by the compatibility analyzer, and the best pairs breed.
package herd

import (
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/studbook/breeding"
	"github.com/pthm-cable/studbook/components"
	"github.com/pthm-cable/studbook/config"
	"github.com/pthm-cable/studbook/genetics"
	"github.com/pthm-cable/studbook/telemetry"
)

// Herd holds the complete simulation state.
type Herd struct {
	cfg      *config.Config
	reg      *genetics.Registry
	species  genetics.Species
	analyzer *breeding.Analyzer

	seed uint64
	rng  *rand.Rand

	world *ecs.World

	// Entity mapper over every animal component
	animalMapper *ecs.Map5[
		components.Identity,
		components.Genome,
		components.Vitals,
		components.Stats,
		components.Pedigree,
	]
	animalFilter *ecs.Filter5[
		components.Identity,
		components.Genome,
		components.Vitals,
		components.Stats,
		components.Pedigree,
	]

	// Individual component mapper for parent updates
	vitalsMap *ecs.Map1[components.Vitals]

	// State
	generation int
	nextID     uint32
	population int

	// Telemetry
	collector *telemetry.Collector
	perf      *telemetry.PerfCollector
	bookmarks *telemetry.BookmarkDetector
	out       *telemetry.OutputManager
}

// New creates a herd of founders. out may be nil to disable file output.
func New(cfg *config.Config, seed uint64, out *telemetry.OutputManager) (*Herd, error) {
	species := genetics.Species(cfg.Herd.Species)
	if species != genetics.Horse && species != genetics.Dog {
		return nil, &genetics.UnsupportedSpeciesError{Species: species}
	}

	world := ecs.NewWorld()
	h := &Herd{
		cfg:      cfg,
		reg:      genetics.Default(),
		species:  species,
		seed:     seed,
		rng:      genetics.NewRand(seed, 0),
		world:    world,
		analyzer: breeding.NewAnalyzer(genetics.Default(), cfg.Analysis, cfg.Inheritance.MutationRate),
		animalMapper: ecs.NewMap5[
			components.Identity,
			components.Genome,
			components.Vitals,
			components.Stats,
			components.Pedigree,
		](world),
		animalFilter: ecs.NewFilter5[
			components.Identity,
			components.Genome,
			components.Vitals,
			components.Stats,
			components.Pedigree,
		](world),
		vitalsMap: ecs.NewMap1[components.Vitals](world),
		nextID:    1,
		collector: telemetry.NewCollector(),
		perf:      telemetry.NewPerfCollector(10),
		bookmarks: telemetry.NewBookmarkDetector(20),
		out:       out,
	}

	if err := h.spawnFounders(); err != nil {
		return nil, fmt.Errorf("spawning founders: %w", err)
	}
	return h, nil
}

// Species returns the species the herd is bred for.
func (h *Herd) Species() genetics.Species {
	return h.species
}

// Generation returns the number of completed generations.
func (h *Herd) Generation() int {
	return h.generation
}

// Population returns the number of living animals.
func (h *Herd) Population() int {
	return h.population
}

// Run advances n generations, stopping early if the herd dies out.
func (h *Herd) Run(n int) error {
	for i := 0; i < n; i++ {
		if h.population == 0 {
			slog.Warn("herd extinct", "generation", h.generation)
			return nil
		}
		if _, err := h.Step(); err != nil {
			return fmt.Errorf("generation %d: %w", h.generation, err)
		}
	}
	return nil
}

// Step advances one generation and returns its stats.
func (h *Herd) Step() (telemetry.GenerationStats, error) {
	h.perf.StartGeneration()

	h.perf.StartPhase(telemetry.PhaseAging)
	if err := h.age(); err != nil {
		return telemetry.GenerationStats{}, err
	}

	h.perf.StartPhase(telemetry.PhaseScreening)
	candidates, err := h.screen()
	if err != nil {
		return telemetry.GenerationStats{}, err
	}

	h.perf.StartPhase(telemetry.PhaseBreeding)
	if err := h.breed(candidates); err != nil {
		return telemetry.GenerationStats{}, err
	}

	h.perf.StartPhase(telemetry.PhaseTelemetry)
	stats, err := h.flushTelemetry()
	h.perf.EndGeneration()
	if err != nil {
		return stats, err
	}
	if err := h.out.WritePerf(h.perf.Stats(), stats.Generation); err != nil {
		return stats, err
	}

	h.generation++
	return stats, nil
}

// spawn creates an animal entity and assigns it the next ID.
func (h *Herd) spawn(id components.Identity, g components.Genome, v components.Vitals, s components.Stats, p components.Pedigree) ecs.Entity {
	id.ID = h.nextID
	id.Species = h.species
	h.nextID++
	h.population++
	return h.animalMapper.NewEntity(&id, &g, &v, &s, &p)
}
