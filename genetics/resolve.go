package genetics

import "fmt"

// Resolve converts one genotype into its effect set under the locus's
// dominance model. The result never shares memory with the registry.
func Resolve(g Genotype, l *Locus) (EffectSet, error) {
	if err := l.Validate(g); err != nil {
		return EffectSet{}, err
	}
	g = g.Normalize()

	switch l.Dominance {
	case Dominant, SexLinked:
		// Sex linkage is not modelled; the dominant rule applies.
		return l.effect(l.topRanked(g)), nil
	case Recessive:
		if g.Homozygous() && g[0] != l.Wild() {
			return l.effect(g[0]), nil
		}
		return l.effect(l.Wild()), nil
	case Codominant, IncompleteDominant:
		return blend(l.effect(g[0]), l.effect(g[1])), nil
	case Polygenic:
		return sum(l.effect(g[0]), l.effect(g[1])), nil
	case LethalCombo:
		e := blend(l.effect(g[0]), l.effect(g[1]))
		if g.Homozygous() && g[0] == l.Lethal {
			e.Flags = unionTags(e.Flags, FlagLethal)
		}
		return e, nil
	default:
		return EffectSet{}, fmt.Errorf("locus %s: unknown dominance model %q", l.Key, l.Dominance)
	}
}

// topRanked returns the allele of g declared earliest in the locus.
func (l *Locus) topRanked(g Genotype) Allele {
	if l.rank(g[1]) < l.rank(g[0]) {
		return g[1]
	}
	return g[0]
}

// blend averages numeric deltas and unions tag lists.
func blend(a, b EffectSet) EffectSet {
	out := combineTags(a, b)
	out.Stats = mergeWeights(a.Stats, b.Stats, 0.5)
	out.Health = mergeWeights(a.Health, b.Health, 0.5)
	return out
}

// sum adds numeric deltas and unions tag lists.
func sum(a, b EffectSet) EffectSet {
	out := combineTags(a, b)
	out.Stats = mergeWeights(a.Stats, b.Stats, 1)
	out.Health = mergeWeights(a.Health, b.Health, 1)
	return out
}

func combineTags(a, b EffectSet) EffectSet {
	var out EffectSet
	out.Colors = unionTags(cloneTags(a.Colors), b.Colors...)
	out.Flags = unionTags(cloneTags(a.Flags), b.Flags...)
	return out
}

// mergeWeights returns (a+b)*scale per key; a key missing on one side counts as 0.
func mergeWeights(a, b map[string]float64, scale float64) map[string]float64 {
	if len(a) == 0 && len(b) == 0 {
		return nil
	}
	out := make(map[string]float64, len(a)+len(b))
	for k, v := range a {
		out[k] += v * scale
	}
	for k, v := range b {
		out[k] += v * scale
	}
	return out
}

// ResolveProfile validates p and merges every locus into a whole-animal phenotype.
func ResolveProfile(r *Registry, p Profile, species Species) (Phenotype, error) {
	if err := r.Validate(p, species); err != nil {
		return Phenotype{}, err
	}
	loci, err := r.Loci(species)
	if err != nil {
		return Phenotype{}, err
	}

	ph := Phenotype{
		Stats:  make(map[string]float64),
		Colors: []string{},
		Health: make(map[string]float64),
		Flags:  []string{},
	}
	for _, l := range loci {
		e, err := Resolve(p[l.Key], l)
		if err != nil {
			return Phenotype{}, err
		}
		for k, v := range e.Stats {
			ph.Stats[k] += v
		}
		ph.Colors = append(ph.Colors, e.Colors...)
		for k, v := range e.Health {
			ph.Health[k] += v
		}
		ph.Flags = unionTags(ph.Flags, e.Flags...)
	}
	return ph, nil
}
