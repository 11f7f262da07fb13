package genetics

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestRandomGenotypeMembership(t *testing.T) {
	rng := NewRand(1, 1)
	for _, species := range []Species{Horse, Dog} {
		loci, err := Default().Loci(species)
		if err != nil {
			t.Fatal(err)
		}
		for _, l := range loci {
			for i := 0; i < 1000; i++ {
				g := RandomGenotype(rng, l)
				if err := l.Validate(g); err != nil {
					t.Fatalf("RandomGenotype(%s) = %v: %v", l.Key, g, err)
				}
				if g != g.Normalize() {
					t.Fatalf("RandomGenotype(%s) = %v is not normalized", l.Key, g)
				}
			}
		}
	}
}

func TestRandomGenotypeHomozygousRate(t *testing.T) {
	rng := NewRand(7, 3)
	l := mustLocus(t, "dog_a") // 4 alleles: homozygous at rate 1/4
	const trials = 20000
	homo := 0
	for i := 0; i < trials; i++ {
		if RandomGenotype(rng, l).Homozygous() {
			homo++
		}
	}
	rate := float64(homo) / trials
	if rate < 0.22 || rate > 0.28 {
		t.Errorf("homozygous rate = %.3f, want ~0.25", rate)
	}
}

func TestRandomProfileCoversSpecies(t *testing.T) {
	r := Default()
	p, err := RandomProfile(nil, r, Dog)
	if err != nil {
		t.Fatal(err)
	}
	if err := r.Validate(p, Dog); err != nil {
		t.Errorf("RandomProfile(dog) failed validation: %v", err)
	}
	if _, err := RandomProfile(nil, r, "cat"); err == nil {
		t.Error("RandomProfile(cat) succeeded, want error")
	}
}

func TestGameteWithoutMutation(t *testing.T) {
	rng := NewRand(11, 0)
	for _, l := range []*Locus{mustLocus(t, "dog_a"), mustLocus(t, "extension"), mustLocus(t, "dog_k")} {
		for i := 0; i < 500; i++ {
			a := RandomGenotype(rng, l)
			b := RandomGenotype(rng, l)
			ga, err := Gamete(rng, l, a, 0)
			if err != nil {
				t.Fatal(err)
			}
			gb, err := Gamete(rng, l, b, 0)
			if err != nil {
				t.Fatal(err)
			}
			if ga.Mutated || gb.Mutated {
				t.Fatal("mutation with rate 0")
			}
			if !a.Has(ga.Allele) || !b.Has(gb.Allele) {
				t.Fatalf("%s: gametes %s,%s not drawn from parents %v,%v", l.Key, ga.Allele, gb.Allele, a, b)
			}
		}
	}
}

func TestInheritWithoutMutation(t *testing.T) {
	rng := NewRand(5, 9)
	l := mustLocus(t, "dog_a")
	for i := 0; i < 2000; i++ {
		a := RandomGenotype(rng, l)
		b := RandomGenotype(rng, l)
		child, err := Inherit(rng, l, a, b, 0)
		if err != nil {
			t.Fatal(err)
		}
		// Either allele order must be explainable as one from each parent.
		ok := (a.Has(child[0]) && b.Has(child[1])) || (a.Has(child[1]) && b.Has(child[0]))
		if !ok {
			t.Fatalf("child %v cannot come from %v x %v", child, a, b)
		}
	}
}

func TestInheritFairCoin(t *testing.T) {
	rng := NewRand(3, 3)
	l := mustLocus(t, "extension")
	const trials = 20000
	dominant := 0
	for i := 0; i < trials; i++ {
		g, err := Gamete(rng, l, Pair("E", "e"), 0)
		if err != nil {
			t.Fatal(err)
		}
		if g.Allele == "E" {
			dominant++
		}
	}
	frac := float64(dominant) / trials
	if frac < 0.47 || frac > 0.53 {
		t.Errorf("E transmitted at %.3f, want ~0.5", frac)
	}
}

func TestGameteForcedMutation(t *testing.T) {
	rng := NewRand(21, 2)
	for _, key := range []string{"dog_a", "dog_k", "cream", "mstn"} {
		l := mustLocus(t, key)
		for i := 0; i < 500; i++ {
			parent := RandomGenotype(rng, l)
			g, err := Gamete(rng, l, parent, 1.0)
			if err != nil {
				t.Fatal(err)
			}
			if !g.Mutated {
				t.Fatalf("%s: rate 1.0 did not mutate", key)
			}
			if g.Allele == g.Source {
				t.Fatalf("%s: mutated allele %s equals its source", key, g.Allele)
			}
			if !l.HasAllele(g.Allele) {
				t.Fatalf("%s: mutated to foreign allele %s", key, g.Allele)
			}
		}
	}
}

func TestGameteSingleAlleleLocusIsUnmutable(t *testing.T) {
	r, err := NewRegistry(Locus{Key: "fixed", Alleles: []Allele{"F"}, Species: Both, Dominance: Dominant})
	if err != nil {
		t.Fatal(err)
	}
	l, _ := r.Locus("fixed")
	g, err := Gamete(nil, l, Pair("F", "F"), 1.0)
	if err != nil {
		t.Fatal(err)
	}
	if g.Mutated || g.Allele != "F" {
		t.Errorf("single-allele locus gamete = %+v", g)
	}
}

func TestMutationReachesEveryOtherAllele(t *testing.T) {
	rng := NewRand(99, 1)
	l := mustLocus(t, "dog_a")
	seen := make(map[Allele]bool)
	for i := 0; i < 2000; i++ {
		g, err := Gamete(rng, l, Pair("Ay", "Ay"), 1.0)
		if err != nil {
			t.Fatal(err)
		}
		seen[g.Allele] = true
	}
	for _, a := range []Allele{"aw", "at", "a"} {
		if !seen[a] {
			t.Errorf("mutation never produced %s", a)
		}
	}
	if seen["Ay"] {
		t.Error("mutation reproduced the source allele")
	}
}

func TestInheritRejectsInvalidParents(t *testing.T) {
	l := mustLocus(t, "extension")
	_, err := Inherit(nil, l, Pair("E", "X"), Pair("e", "e"), 0)
	var ig *InvalidGenotypeError
	if !errors.As(err, &ig) {
		t.Errorf("error = %v, want InvalidGenotypeError", err)
	}
}

func TestInheritProfile(t *testing.T) {
	r := Default()
	rng := NewRand(8, 8)
	a, _ := RandomProfile(rng, r, Horse)
	b, _ := RandomProfile(rng, r, Horse)

	child, err := InheritProfile(rng, r, Horse, a, b, DefaultMutationRate)
	if err != nil {
		t.Fatal(err)
	}
	if err := r.Validate(child, Horse); err != nil {
		t.Errorf("child profile invalid: %v", err)
	}

	broken := b.Clone()
	delete(broken, "grey")
	if _, err := InheritProfile(rng, r, Horse, a, broken, 0); err == nil {
		t.Error("InheritProfile accepted a partial parent profile")
	}

	dog, _ := RandomProfile(rng, r, Dog)
	if _, err := InheritProfile(rng, r, Horse, a, dog, 0); err == nil {
		t.Error("InheritProfile accepted a dog parent for a horse")
	}
}

func TestGenotypeJSON(t *testing.T) {
	p := Profile{"extension": Pair("e", "E")}
	data, err := json.Marshal(p)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `{"extension":["E","e"]}` {
		t.Errorf("Marshal = %s", data)
	}

	var back Profile
	if err := json.Unmarshal([]byte(`{"cream":["Cr","C"]}`), &back); err != nil {
		t.Fatal(err)
	}
	if back["cream"] != Pair("C", "Cr") {
		t.Errorf("Unmarshal normalized to %v", back["cream"])
	}
	if back["cream"].String() != "C/Cr" {
		t.Errorf("String() = %s", back["cream"].String())
	}

	if err := json.Unmarshal([]byte(`{"cream":["C"]}`), &back); err == nil {
		t.Error("Unmarshal accepted a one-allele genotype")
	}
}
