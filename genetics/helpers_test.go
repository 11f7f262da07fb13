package genetics

import "testing"

// mustProfile builds a profile homozygous for each locus's clear allele,
// then applies overrides, so test animals start free of patterns and risks.
func mustProfile(t *testing.T, species Species, overrides map[string]Genotype) Profile {
	t.Helper()
	loci, err := Default().Loci(species)
	if err != nil {
		t.Fatalf("Loci(%s): %v", species, err)
	}
	p := make(Profile, len(loci))
	for _, l := range loci {
		a := clearAllele(l)
		p[l.Key] = Pair(a, a)
	}
	for k, g := range overrides {
		p[k] = g.Normalize()
	}
	return p
}

func mustLocus(t *testing.T, key string) *Locus {
	t.Helper()
	l, err := Default().Locus(key)
	if err != nil {
		t.Fatalf("Locus(%s): %v", key, err)
	}
	return l
}

// clearAllele is the first allele without a declared effect, else the last allele.
func clearAllele(l *Locus) Allele {
	for _, a := range l.Alleles {
		if _, ok := l.Effects[a]; !ok {
			return a
		}
	}
	return l.Alleles[len(l.Alleles)-1]
}
