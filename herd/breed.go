package herd

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/studbook/breeding"
	"github.com/pthm-cable/studbook/coat"
	"github.com/pthm-cable/studbook/components"
	"github.com/pthm-cable/studbook/genetics"
	"github.com/pthm-cable/studbook/telemetry"
)

// parent captures the read-only state of a breeding animal, taken before
// any entities are created.
type parent struct {
	entity      ecs.Entity
	id          uint32
	temperament string
	profile     genetics.Profile
	stats       map[string]float64
	pedigree    components.Pedigree
	attrs       breeding.Attributes
}

// candidate is one screened dam/sire pairing.
type candidate struct {
	dam, sire int // indexes into the dam and sire slices
	report    breeding.Report
}

type screening struct {
	dams, sires []parent
	candidates  []candidate
}

// screen pairs every adult female with random adult males and scores the
// pairings in parallel.
func (h *Herd) screen() (screening, error) {
	var sc screening
	maturity := h.cfg.Herd.MaturityAge

	query := h.animalFilter.Query()
	for query.Next() {
		id, genome, vitals, stats, ped := query.Get()
		if !vitals.Adult(maturity) {
			continue
		}
		p := parent{
			entity:      query.Entity(),
			id:          id.ID,
			temperament: id.Temperament,
			profile:     genome.Profile,
			stats:       stats.Clone(),
			pedigree:    *ped,
		}
		p.attrs = attributes(id, vitals, p.stats, ped)
		if id.Sex == breeding.Female {
			sc.dams = append(sc.dams, p)
		} else {
			sc.sires = append(sc.sires, p)
		}
	}
	if len(sc.dams) == 0 || len(sc.sires) == 0 {
		return sc, nil
	}

	perDam := min(h.cfg.Herd.CandidatesPerDam, len(sc.sires))
	var pairs []breeding.Pairing
	for d := range sc.dams {
		for _, s := range h.rng.Perm(len(sc.sires))[:perDam] {
			sc.candidates = append(sc.candidates, candidate{dam: d, sire: s})
			pairs = append(pairs, breeding.Pairing{
				A:      sc.sires[s].profile,
				B:      sc.dams[d].profile,
				AttrsA: sc.sires[s].attrs,
				AttrsB: sc.dams[d].attrs,
			})
		}
	}

	reports, err := h.analyzer.AnalyzeBatch(h.rng.Uint64(), pairs)
	if err != nil {
		return sc, fmt.Errorf("screening: %w", err)
	}
	for i, r := range reports {
		sc.candidates[i].report = r
		h.collector.RecordScreening(r)
	}
	return sc, nil
}

// breed selects pairs by breeding value and produces their offspring.
// Each dam breeds at most once per generation; sires may cover several dams.
func (h *Herd) breed(sc screening) error {
	order := make([]int, len(sc.candidates))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		return cmp.Compare(sc.candidates[b].report.BreedingValue, sc.candidates[a].report.BreedingValue)
	})

	hc := h.cfg.Herd
	bred := make(map[int]bool)
	var foals []offspring
	for _, i := range order {
		if len(bred) >= hc.PairsPerGeneration {
			break
		}
		c := sc.candidates[i]
		if bred[c.dam] {
			continue
		}
		if c.report.Lethal() {
			h.collector.RecordLethalRejection()
			continue
		}
		if c.report.BreedingValue < hc.MinBreedingValue {
			h.collector.RecordLowValueRejection()
			continue
		}
		bred[c.dam] = true
		h.collector.RecordBred()

		sire, dam := &sc.sires[c.sire], &sc.dams[c.dam]
		foal, ok, err := h.conceive(sire, dam)
		if err != nil {
			return fmt.Errorf("breeding %d x %d: %w", sire.id, dam.id, err)
		}
		if !ok {
			h.collector.RecordStillborn()
			continue
		}
		h.vitalsMap.Get(sire.entity).Offspring++
		h.vitalsMap.Get(dam.entity).Offspring++
		foals = append(foals, foal)
	}

	for _, f := range foals {
		h.spawn(f.identity, f.genome, f.vitals, f.stats, f.pedigree)
		h.collector.RecordBirth()
	}
	return nil
}

// offspring is a conceived animal waiting to be spawned.
type offspring struct {
	identity components.Identity
	genome   components.Genome
	vitals   components.Vitals
	stats    components.Stats
	pedigree components.Pedigree
}

// conceive builds an offspring of sire and dam. ok is false when the
// offspring's genotype is lethal.
func (h *Herd) conceive(sire, dam *parent) (offspring, bool, error) {
	profile, err := genetics.InheritProfile(h.rng, h.reg, h.species, sire.profile, dam.profile, h.cfg.Inheritance.MutationRate)
	if err != nil {
		return offspring{}, false, err
	}
	ph, err := genetics.ResolveProfile(h.reg, profile, h.species)
	if err != nil {
		return offspring{}, false, err
	}
	if ph.HasFlag(genetics.FlagLethal) {
		return offspring{}, false, nil
	}
	c, err := coat.Describe(h.reg, profile, h.species, 0)
	if err != nil {
		return offspring{}, false, err
	}

	stats := make(map[string]float64, len(genetics.StatNames))
	for _, name := range genetics.StatNames {
		mean := (sire.stats[name] + dam.stats[name]) / 2
		stats[name] = clampStat(mean + ph.Stats[name] + h.noise())
	}

	sex := breeding.Female
	if h.rng.IntN(2) == 1 {
		sex = breeding.Male
	}

	return offspring{
		identity: components.Identity{
			Sex:         sex,
			Generation:  h.generation + 1,
			Temperament: sampleOutcome(h.rng, breeding.PredictTemperament(sire.temperament, dam.temperament)),
		},
		genome: components.Genome{Profile: profile, Phenotype: ph, Coat: c.Chain},
		vitals: components.Vitals{
			Health: healthOf(ph),
			Mood:   50 + h.rng.Float64()*50,
		},
		stats:    components.Stats{Values: stats},
		pedigree: components.ChildPedigree(sire.id, &sire.pedigree, dam.id, &dam.pedigree, h.cfg.Herd.PedigreeDepth),
	}, true, nil
}

// sampleOutcome draws a value with probability proportional to its weight.
func sampleOutcome(rng genetics.Rand, outcomes []breeding.Outcome) string {
	var total float64
	for _, o := range outcomes {
		total += o.Probability
	}
	r := rng.Float64() * total
	for _, o := range outcomes {
		r -= o.Probability
		if r < 0 {
			return o.Value
		}
	}
	return outcomes[len(outcomes)-1].Value
}

// attributes converts an animal's components to analyzer input.
func attributes(id *components.Identity, v *components.Vitals, stats map[string]float64, p *components.Pedigree) breeding.Attributes {
	ancestors := p.Ancestors()
	ids := make([]string, len(ancestors))
	for i, a := range ancestors {
		ids[i] = telemetry.FormatID(a)
	}
	return breeding.Attributes{
		ID:          telemetry.FormatID(id.ID),
		Species:     id.Species,
		Sex:         id.Sex,
		Age:         v.Age,
		Stats:       stats,
		Health:      v.Health,
		Mood:        v.Mood,
		Training:    v.Training,
		Temperament: id.Temperament,
		Ancestors:   ids,
	}
}
