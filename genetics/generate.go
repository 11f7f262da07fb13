package genetics

// RandomGenotype draws both allele slots independently and uniformly from
// the locus's allele list, with replacement.
func RandomGenotype(rng Rand, l *Locus) Genotype {
	rng = orGlobal(rng)
	n := len(l.Alleles)
	return Pair(l.Alleles[rng.IntN(n)], l.Alleles[rng.IntN(n)])
}

// RandomProfile builds a founder profile covering every locus applicable to species.
func RandomProfile(rng Rand, r *Registry, species Species) (Profile, error) {
	loci, err := r.Loci(species)
	if err != nil {
		return nil, err
	}
	p := make(Profile, len(loci))
	for _, l := range loci {
		p[l.Key] = RandomGenotype(rng, l)
	}
	return p, nil
}
