package genetics

import "fmt"

// Locus is one heritable trait location. Allele order encodes dominance
// rank for dominant loci and the wild type (first allele) for recessive ones.
type Locus struct {
	Key       string
	Name      string
	Alleles   []Allele
	Dominance Dominance
	Species   Species
	Effects   map[Allele]EffectSet
	Lethal    Allele // lethal_combo only
}

// HasAllele reports whether a belongs to the locus.
func (l *Locus) HasAllele(a Allele) bool {
	for _, x := range l.Alleles {
		if x == a {
			return true
		}
	}
	return false
}

// Wild returns the wild-type allele.
func (l *Locus) Wild() Allele {
	return l.Alleles[0]
}

// rank returns the position of a in the declared allele order, or -1.
func (l *Locus) rank(a Allele) int {
	for i, x := range l.Alleles {
		if x == a {
			return i
		}
	}
	return -1
}

// effect returns the declared effect of a single allele (empty if none declared).
func (l *Locus) effect(a Allele) EffectSet {
	return l.Effects[a].Clone()
}

// Validate checks that both alleles of g belong to the locus.
func (l *Locus) Validate(g Genotype) error {
	for _, a := range g {
		if !l.HasAllele(a) {
			return &InvalidGenotypeError{Locus: l.Key, Allele: a, Reason: "is not an allele of this locus"}
		}
	}
	return nil
}

// Registry is the read-only table of loci. It is built once and safe for
// concurrent use.
type Registry struct {
	loci  []*Locus
	index map[string]*Locus
}

// NewRegistry builds a registry, keeping declaration order.
func NewRegistry(loci ...Locus) (*Registry, error) {
	r := &Registry{index: make(map[string]*Locus, len(loci))}
	for i := range loci {
		l := loci[i]
		if l.Key == "" {
			return nil, fmt.Errorf("locus %d: empty key", i)
		}
		if _, dup := r.index[l.Key]; dup {
			return nil, fmt.Errorf("locus %s: duplicate key", l.Key)
		}
		if len(l.Alleles) == 0 {
			return nil, fmt.Errorf("locus %s: no alleles", l.Key)
		}
		if l.Species != Horse && l.Species != Dog && l.Species != Both {
			return nil, fmt.Errorf("locus %s: unknown species %q", l.Key, l.Species)
		}
		for a := range l.Effects {
			if !l.HasAllele(a) {
				return nil, fmt.Errorf("locus %s: effect for unknown allele %q", l.Key, a)
			}
		}
		if l.Dominance == LethalCombo && !l.HasAllele(l.Lethal) {
			return nil, fmt.Errorf("locus %s: lethal allele %q not declared", l.Key, l.Lethal)
		}

		alleles := make([]Allele, len(l.Alleles))
		copy(alleles, l.Alleles)
		l.Alleles = alleles
		effects := make(map[Allele]EffectSet, len(l.Effects))
		for a, e := range l.Effects {
			effects[a] = e.Clone()
		}
		l.Effects = effects

		r.loci = append(r.loci, &l)
		r.index[l.Key] = &l
	}
	return r, nil
}

// Locus returns the locus for key.
func (r *Registry) Locus(key string) (*Locus, error) {
	l, ok := r.index[key]
	if !ok {
		return nil, &NotFoundError{Kind: "locus", Key: key}
	}
	return l, nil
}

// Alleles returns the declared allele order of a locus.
func (r *Registry) Alleles(key string) ([]Allele, error) {
	l, err := r.Locus(key)
	if err != nil {
		return nil, err
	}
	out := make([]Allele, len(l.Alleles))
	copy(out, l.Alleles)
	return out, nil
}

// Dominance returns the dominance model of a locus.
func (r *Registry) Dominance(key string) (Dominance, error) {
	l, err := r.Locus(key)
	if err != nil {
		return "", err
	}
	return l.Dominance, nil
}

// LocusFor returns the locus for key, failing if it does not apply to species.
func (r *Registry) LocusFor(key string, species Species) (*Locus, error) {
	l, err := r.Locus(key)
	if err != nil {
		return nil, err
	}
	if !l.Species.AppliesTo(species) {
		return nil, &UnsupportedSpeciesError{Key: key, Species: species}
	}
	return l, nil
}

// Loci returns every locus applicable to species in declaration order.
// Loci declared for Both are included for horses and dogs alike.
func (r *Registry) Loci(species Species) ([]*Locus, error) {
	if species != Horse && species != Dog {
		return nil, &UnsupportedSpeciesError{Species: species}
	}
	var out []*Locus
	for _, l := range r.loci {
		if l.Species.AppliesTo(species) {
			out = append(out, l)
		}
	}
	return out, nil
}

// Validate checks a whole profile for species. It fails on the first
// problem; nothing is skipped.
func (r *Registry) Validate(p Profile, species Species) error {
	loci, err := r.Loci(species)
	if err != nil {
		return err
	}
	for _, key := range p.Keys() {
		if _, err := r.LocusFor(key, species); err != nil {
			return err
		}
	}
	for _, l := range loci {
		g, ok := p[l.Key]
		if !ok {
			return &InvalidGenotypeError{Locus: l.Key, Reason: "missing from profile"}
		}
		if err := l.Validate(g); err != nil {
			return err
		}
	}
	return nil
}
