package genetics

import "fmt"

// DefaultMutationRate is the per-allele mutation probability.
const DefaultMutationRate = 0.001

// Transmission records one allele passed from a parent.
type Transmission struct {
	Source  Allele // Allele picked from the parent before mutation
	Allele  Allele // Allele actually passed on
	Mutated bool
}

// Gamete picks one of the parent's two alleles with a fair coin and, with
// probability rate, replaces it by a different allele of the same locus.
// A locus with a single allele never mutates.
func Gamete(rng Rand, l *Locus, parent Genotype, rate float64) (Transmission, error) {
	if err := l.Validate(parent); err != nil {
		return Transmission{}, err
	}
	rng = orGlobal(rng)

	src := parent[rng.IntN(2)]
	t := Transmission{Source: src, Allele: src}

	n := len(l.Alleles)
	if n < 2 || rate <= 0 || rng.Float64() >= rate {
		return t, nil
	}

	// Draw from the n-1 other alleles by skipping over the source's slot.
	idx := rng.IntN(n - 1)
	if idx >= l.rank(src) {
		idx++
	}
	t.Allele = l.Alleles[idx]
	t.Mutated = true
	return t, nil
}

// Inherit produces a child genotype at one locus from the two parents.
func Inherit(rng Rand, l *Locus, a, b Genotype, rate float64) (Genotype, error) {
	ga, err := Gamete(rng, l, a, rate)
	if err != nil {
		return Genotype{}, fmt.Errorf("parent a: %w", err)
	}
	gb, err := Gamete(rng, l, b, rate)
	if err != nil {
		return Genotype{}, fmt.Errorf("parent b: %w", err)
	}
	return Pair(ga.Allele, gb.Allele), nil
}

// InheritProfile produces an offspring profile from two parent profiles.
// Both parents are validated in full before any locus is inherited.
func InheritProfile(rng Rand, r *Registry, species Species, a, b Profile, rate float64) (Profile, error) {
	if err := r.Validate(a, species); err != nil {
		return nil, fmt.Errorf("parent a: %w", err)
	}
	if err := r.Validate(b, species); err != nil {
		return nil, fmt.Errorf("parent b: %w", err)
	}
	loci, err := r.Loci(species)
	if err != nil {
		return nil, err
	}
	child := make(Profile, len(loci))
	for _, l := range loci {
		g, err := Inherit(rng, l, a[l.Key], b[l.Key], rate)
		if err != nil {
			return nil, err
		}
		child[l.Key] = g
	}
	return child, nil
}
