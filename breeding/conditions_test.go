package breeding

import (
	"errors"
	"testing"

	"github.com/pthm-cable/studbook/genetics"
)

func TestConditionsMatchRegistry(t *testing.T) {
	reg := genetics.Default()
	for _, c := range conditions {
		l, err := reg.Locus(c.Locus)
		if err != nil {
			t.Errorf("%s: %v", c.Key, err)
			continue
		}
		if !l.HasAllele(c.RiskAllele) {
			t.Errorf("%s: risk allele %q not at locus %s", c.Key, c.RiskAllele, c.Locus)
		}
		if c.Species != l.Species {
			t.Errorf("%s: species %s, locus %s is %s", c.Key, c.Species, c.Locus, l.Species)
		}
	}
}

func TestConditionLookup(t *testing.T) {
	c, err := Condition("double_merle")
	if err != nil {
		t.Fatal(err)
	}
	if c.Inheritance != LethalCombo || !c.Lethal {
		t.Errorf("double_merle = %+v", c)
	}

	_, err = Condition("nope")
	var nf *genetics.NotFoundError
	if !errors.As(err, &nf) || nf.Kind != "condition" {
		t.Errorf("err = %v, want condition NotFoundError", err)
	}

	_, err = ConditionFor("hypp", genetics.Dog)
	var use *genetics.UnsupportedSpeciesError
	if !errors.As(err, &use) {
		t.Errorf("err = %v, want UnsupportedSpeciesError", err)
	}

	if _, err := ConditionFor("melanoma", genetics.Dog); err != nil {
		t.Errorf("melanoma applies to dogs: %v", err)
	}
}

func TestConditionsBySpecies(t *testing.T) {
	for _, species := range []genetics.Species{genetics.Horse, genetics.Dog} {
		list, err := Conditions(species)
		if err != nil {
			t.Fatal(err)
		}
		if len(list) == 0 {
			t.Fatalf("no conditions for %s", species)
		}
		hasShared := false
		for _, c := range list {
			if !c.Species.AppliesTo(species) {
				t.Errorf("%s listed for %s", c.Key, species)
			}
			if c.Key == "melanoma" {
				hasShared = true
			}
		}
		if !hasShared {
			t.Errorf("shared condition missing for %s", species)
		}
	}

	if _, err := Conditions(genetics.Both); err == nil {
		t.Error("Conditions(both) should fail")
	}
}

func TestLethalCarrier(t *testing.T) {
	tests := []struct {
		name    string
		species genetics.Species
		locus   string
		g       genetics.Genotype
		want    bool
	}{
		{"clear horse", genetics.Horse, "", genetics.Genotype{}, false},
		{"frame carrier", genetics.Horse, "frame", genetics.Pair("O", "n"), true},
		{"frame homozygous", genetics.Horse, "frame", genetics.Pair("O", "O"), false},
		{"merle carrier", genetics.Dog, "dog_m", genetics.Pair("M", "m"), true},
		{"non-lethal carrier", genetics.Horse, "hypp", genetics.Pair("H", "N"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var overrides map[string]genetics.Genotype
			if tt.locus != "" {
				overrides = map[string]genetics.Genotype{tt.locus: tt.g}
			}
			p := cleanProfile(t, tt.species, overrides)
			if got := LethalCarrier(p, tt.species); got != tt.want {
				t.Errorf("LethalCarrier = %v, want %v", got, tt.want)
			}
		})
	}
}
