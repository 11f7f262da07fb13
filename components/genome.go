package components

import (
	"github.com/pthm-cable/studbook/breeding"
	"github.com/pthm-cable/studbook/genetics"
)

// Genome holds the genotype and its resolved expression.
// Phenotype and Coat are computed once at birth; only the grey overlay
// depends on age, and Coat is refreshed when the animal ages.
type Genome struct {
	Profile   genetics.Profile
	Phenotype genetics.Phenotype
	Coat      string
}

// LethalCarrier reports whether the animal carries a single copy of a
// lethal risk allele.
func (g *Genome) LethalCarrier(species genetics.Species) bool {
	return breeding.LethalCarrier(g.Profile, species)
}

// Stats holds the animal's performance values, keyed by stat name.
type Stats struct {
	Values map[string]float64
}

// Clone returns a copy safe to hand to the analyzer.
func (s *Stats) Clone() map[string]float64 {
	out := make(map[string]float64, len(s.Values))
	for k, v := range s.Values {
		out[k] = v
	}
	return out
}
