// Package genetics models heritable loci, genotypes, inheritance and
// phenotype resolution for horses and dogs.
package genetics

import (
	"encoding/json"
	"fmt"
	"sort"
)

// Species identifies which animals a locus or condition applies to.
type Species string

const (
	Horse Species = "horse"
	Dog   Species = "dog"
	Both  Species = "both" // Only valid on loci and conditions
)

// AppliesTo reports whether something declared for s applies to an animal of species target.
func (s Species) AppliesTo(target Species) bool {
	if target != Horse && target != Dog {
		return false
	}
	return s == Both || s == target
}

// Dominance is the rule that combines a genotype's two alleles into an effect.
type Dominance string

const (
	Dominant           Dominance = "dominant"
	Recessive          Dominance = "recessive"
	Codominant         Dominance = "codominant"
	IncompleteDominant Dominance = "incomplete_dominant"
	Polygenic          Dominance = "polygenic"
	SexLinked          Dominance = "sex_linked"
	LethalCombo        Dominance = "lethal_combo"
)

// Special flags surfaced by the resolver.
const (
	FlagLethal              = "lethal"
	FlagBreedingRestriction = "breeding_restriction"
)

// Allele is one variant symbol at a locus.
type Allele string

// Genotype is an unordered allele pair. Pair keeps it sorted so equal
// genotypes compare equal and format identically.
type Genotype [2]Allele

// Pair builds a normalized genotype from two alleles in any order.
func Pair(a, b Allele) Genotype {
	if b < a {
		a, b = b, a
	}
	return Genotype{a, b}
}

// Normalize returns g with its alleles sorted.
func (g Genotype) Normalize() Genotype {
	return Pair(g[0], g[1])
}

// Homozygous reports whether both alleles are the same.
func (g Genotype) Homozygous() bool {
	return g[0] == g[1]
}

// Has reports whether a is one of the two alleles.
func (g Genotype) Has(a Allele) bool {
	return g[0] == a || g[1] == a
}

// Count returns how many copies of a the genotype carries (0, 1 or 2).
func (g Genotype) Count(a Allele) int {
	n := 0
	if g[0] == a {
		n++
	}
	if g[1] == a {
		n++
	}
	return n
}

func (g Genotype) String() string {
	n := g.Normalize()
	return fmt.Sprintf("%s/%s", n[0], n[1])
}

// UnmarshalJSON accepts a two-element array and normalizes its order.
func (g *Genotype) UnmarshalJSON(data []byte) error {
	var raw []Allele
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decoding genotype: %w", err)
	}
	if len(raw) != 2 {
		return fmt.Errorf("decoding genotype: want 2 alleles, got %d", len(raw))
	}
	*g = Pair(raw[0], raw[1])
	return nil
}

// Profile maps locus keys to genotypes. It is an animal's full heritable state.
type Profile map[string]Genotype

// Clone returns an independent copy.
func (p Profile) Clone() Profile {
	out := make(Profile, len(p))
	for k, g := range p {
		out[k] = g
	}
	return out
}

// Keys returns the locus keys in sorted order.
func (p Profile) Keys() []string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// EffectSet is the phenotypic contribution of one allele or one resolved genotype.
type EffectSet struct {
	Stats  map[string]float64 `json:"stats,omitempty"`
	Colors []string           `json:"colors,omitempty"`
	Health map[string]float64 `json:"health,omitempty"`
	Flags  []string           `json:"flags,omitempty"`
}

// Clone returns a deep copy so callers never alias registry data.
func (e EffectSet) Clone() EffectSet {
	return EffectSet{
		Stats:  cloneWeights(e.Stats),
		Colors: cloneTags(e.Colors),
		Health: cloneWeights(e.Health),
		Flags:  cloneTags(e.Flags),
	}
}

// HasFlag reports whether the set carries flag.
func (e EffectSet) HasFlag(flag string) bool {
	for _, f := range e.Flags {
		if f == flag {
			return true
		}
	}
	return false
}

// Phenotype is the merged effect of every locus of an animal.
type Phenotype struct {
	Stats  map[string]float64 `json:"stats"`
	Colors []string           `json:"colors"`
	Health map[string]float64 `json:"health"`
	Flags  []string           `json:"flags"`
}

// HasFlag reports whether any locus surfaced flag.
func (p Phenotype) HasFlag(flag string) bool {
	for _, f := range p.Flags {
		if f == flag {
			return true
		}
	}
	return false
}

func cloneWeights(m map[string]float64) map[string]float64 {
	if m == nil {
		return nil
	}
	out := make(map[string]float64, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func cloneTags(tags []string) []string {
	if tags == nil {
		return nil
	}
	out := make([]string, len(tags))
	copy(out, tags)
	return out
}

// unionTags appends the members of extra missing from base, keeping first-seen order.
func unionTags(base []string, extra ...string) []string {
	for _, t := range extra {
		found := false
		for _, b := range base {
			if b == t {
				found = true
				break
			}
		}
		if !found {
			base = append(base, t)
		}
	}
	return base
}
