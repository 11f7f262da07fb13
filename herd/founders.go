package herd

import (
	"fmt"

	"github.com/pthm-cable/studbook/breeding"
	"github.com/pthm-cable/studbook/coat"
	"github.com/pthm-cable/studbook/components"
	"github.com/pthm-cable/studbook/genetics"
)

// temperaments founders are drawn from.
var temperaments = []string{"Calm", "Spirited", "Bold", "Gentle", "Nervous"}

// maxFounderDraws bounds redraws of founders with a lethal genotype.
const maxFounderDraws = 100

// spawnFounders creates the initial herd with alternating sexes.
func (h *Herd) spawnFounders() error {
	hc := h.cfg.Herd
	for i := 0; i < hc.Founders; i++ {
		profile, ph, err := h.drawFounder()
		if err != nil {
			return err
		}
		c, err := coat.Describe(h.reg, profile, h.species, 0)
		if err != nil {
			return err
		}

		sex := breeding.Female
		if i%2 == 1 {
			sex = breeding.Male
		}
		stats := make(map[string]float64, len(genetics.StatNames))
		for _, name := range genetics.StatNames {
			stats[name] = clampStat(50 + ph.Stats[name] + h.noise())
		}

		h.spawn(
			components.Identity{Sex: sex, Temperament: temperaments[h.rng.IntN(len(temperaments))]},
			components.Genome{Profile: profile, Phenotype: ph, Coat: c.Chain},
			components.Vitals{
				Age:      hc.MaturityAge + h.rng.Float64()*5,
				Health:   healthOf(ph),
				Mood:     50 + h.rng.Float64()*50,
				Training: h.rng.Float64() * 50,
			},
			components.Stats{Values: stats},
			components.Pedigree{},
		)
	}
	return nil
}

// drawFounder returns a random profile whose phenotype is not lethal.
func (h *Herd) drawFounder() (genetics.Profile, genetics.Phenotype, error) {
	for range maxFounderDraws {
		p, err := genetics.RandomProfile(h.rng, h.reg, h.species)
		if err != nil {
			return nil, genetics.Phenotype{}, err
		}
		ph, err := genetics.ResolveProfile(h.reg, p, h.species)
		if err != nil {
			return nil, genetics.Phenotype{}, err
		}
		if !ph.HasFlag(genetics.FlagLethal) {
			return p, ph, nil
		}
	}
	return nil, genetics.Phenotype{}, fmt.Errorf("no viable founder after %d draws", maxFounderDraws)
}

// noise is uniform in [-StatNoise, StatNoise].
func (h *Herd) noise() float64 {
	n := h.cfg.Herd.StatNoise
	return (h.rng.Float64()*2 - 1) * n
}

// healthOf scores 100 less 20 per unit of summed health risk weight.
func healthOf(ph genetics.Phenotype) float64 {
	var total float64
	for _, w := range ph.Health {
		total += w
	}
	return clampStat(100 - 20*total)
}

func clampStat(v float64) float64 {
	return max(0, min(100, v))
}
