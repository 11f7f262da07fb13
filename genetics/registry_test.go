package genetics

import (
	"errors"
	"testing"
)

func TestLociSharedAcrossSpecies(t *testing.T) {
	r := Default()
	for _, species := range []Species{Horse, Dog} {
		loci, err := r.Loci(species)
		if err != nil {
			t.Fatalf("Loci(%s): %v", species, err)
		}
		keys := make(map[string]bool, len(loci))
		for _, l := range loci {
			keys[l.Key] = true
			if !l.Species.AppliesTo(species) {
				t.Errorf("Loci(%s) returned %s declared for %s", species, l.Key, l.Species)
			}
		}
		for _, l := range sharedLoci {
			if !keys[l.Key] {
				t.Errorf("Loci(%s) is missing shared locus %s", species, l.Key)
			}
		}
	}
}

func TestLociDeclarationOrder(t *testing.T) {
	loci, err := Default().Loci(Horse)
	if err != nil {
		t.Fatal(err)
	}
	if loci[0].Key != "extension" || loci[1].Key != "agouti" {
		t.Errorf("first horse loci = %s, %s; want extension, agouti", loci[0].Key, loci[1].Key)
	}
}

func TestLociUnsupportedSpecies(t *testing.T) {
	for _, species := range []Species{Both, "cat", ""} {
		_, err := Default().Loci(species)
		var use *UnsupportedSpeciesError
		if !errors.As(err, &use) {
			t.Errorf("Loci(%q) error = %v, want UnsupportedSpeciesError", species, err)
		}
	}
}

func TestLocusLookup(t *testing.T) {
	r := Default()

	alleles, err := r.Alleles("cream")
	if err != nil {
		t.Fatal(err)
	}
	if len(alleles) != 2 || alleles[0] != "C" || alleles[1] != "Cr" {
		t.Errorf("Alleles(cream) = %v", alleles)
	}

	dom, err := r.Dominance("frame")
	if err != nil {
		t.Fatal(err)
	}
	if dom != LethalCombo {
		t.Errorf("Dominance(frame) = %s, want %s", dom, LethalCombo)
	}

	// Callers must not be able to mutate the registry through the returned slice.
	alleles[0] = "X"
	again, _ := r.Alleles("cream")
	if again[0] != "C" {
		t.Error("Alleles returned a slice aliasing registry data")
	}
}

func TestLocusNotFound(t *testing.T) {
	r := Default()
	_, err := r.Locus("wings")
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("error = %v, want NotFoundError", err)
	}
	if nf.Key != "wings" || nf.Kind != "locus" {
		t.Errorf("NotFoundError = %+v", nf)
	}
	if _, err := r.Alleles("wings"); !errors.As(err, &nf) {
		t.Errorf("Alleles error = %v, want NotFoundError", err)
	}
	if _, err := r.Dominance("wings"); !errors.As(err, &nf) {
		t.Errorf("Dominance error = %v, want NotFoundError", err)
	}
}

func TestLocusForWrongSpecies(t *testing.T) {
	_, err := Default().LocusFor("dog_m", Horse)
	var use *UnsupportedSpeciesError
	if !errors.As(err, &use) {
		t.Fatalf("error = %v, want UnsupportedSpeciesError", err)
	}
	if _, err := Default().LocusFor("grey", Dog); err != nil {
		t.Errorf("LocusFor(grey, dog) = %v, want nil", err)
	}
}

func TestNewRegistryRejectsBadTables(t *testing.T) {
	tests := []struct {
		name string
		loci []Locus
	}{
		{"empty key", []Locus{{Alleles: []Allele{"A"}, Species: Horse, Dominance: Dominant}}},
		{"no alleles", []Locus{{Key: "x", Species: Horse, Dominance: Dominant}}},
		{"duplicate", []Locus{
			{Key: "x", Alleles: []Allele{"A"}, Species: Horse, Dominance: Dominant},
			{Key: "x", Alleles: []Allele{"A"}, Species: Dog, Dominance: Dominant},
		}},
		{"bad species", []Locus{{Key: "x", Alleles: []Allele{"A"}, Species: "cat", Dominance: Dominant}}},
		{"effect for unknown allele", []Locus{{
			Key: "x", Alleles: []Allele{"A"}, Species: Horse, Dominance: Dominant,
			Effects: map[Allele]EffectSet{"B": colors("b")},
		}}},
		{"lethal allele undeclared", []Locus{{
			Key: "x", Alleles: []Allele{"A", "a"}, Species: Horse, Dominance: LethalCombo, Lethal: "L",
		}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewRegistry(tt.loci...); err == nil {
				t.Error("NewRegistry succeeded, want error")
			}
		})
	}
}

func TestValidate(t *testing.T) {
	r := Default()
	valid := mustProfile(t, Horse, nil)

	if err := r.Validate(valid, Horse); err != nil {
		t.Fatalf("Validate(valid) = %v", err)
	}

	missing := valid.Clone()
	delete(missing, "cream")
	var ig *InvalidGenotypeError
	if err := r.Validate(missing, Horse); !errors.As(err, &ig) || ig.Locus != "cream" {
		t.Errorf("missing locus error = %v, want InvalidGenotypeError at cream", err)
	}

	badAllele := valid.Clone()
	badAllele["extension"] = Pair("E", "Q")
	if err := r.Validate(badAllele, Horse); !errors.As(err, &ig) || ig.Allele != "Q" {
		t.Errorf("bad allele error = %v, want InvalidGenotypeError for Q", err)
	}

	unknown := valid.Clone()
	unknown["wings"] = Pair("W", "W")
	var nf *NotFoundError
	if err := r.Validate(unknown, Horse); !errors.As(err, &nf) {
		t.Errorf("unknown key error = %v, want NotFoundError", err)
	}

	foreign := valid.Clone()
	foreign["dog_m"] = Pair("m", "m")
	var use *UnsupportedSpeciesError
	if err := r.Validate(foreign, Horse); !errors.As(err, &use) {
		t.Errorf("foreign locus error = %v, want UnsupportedSpeciesError", err)
	}
}
