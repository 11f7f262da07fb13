package genetics

import (
	"math"
	"reflect"
	"testing"
)

func TestResolveIsPure(t *testing.T) {
	for _, species := range []Species{Horse, Dog} {
		loci, _ := Default().Loci(species)
		rng := NewRand(4, 4)
		for _, l := range loci {
			g := RandomGenotype(rng, l)
			first, err := Resolve(g, l)
			if err != nil {
				t.Fatal(err)
			}
			second, err := Resolve(g, l)
			if err != nil {
				t.Fatal(err)
			}
			if !reflect.DeepEqual(first, second) {
				t.Errorf("%s %v: resolve not repeatable: %+v vs %+v", l.Key, g, first, second)
			}
		}
	}
}

func TestResolveDoesNotAliasRegistry(t *testing.T) {
	l := mustLocus(t, "mstn")
	e, err := Resolve(Pair("C", "C"), l)
	if err != nil {
		t.Fatal(err)
	}
	e.Stats[StatSpeed] = 1000
	again, _ := Resolve(Pair("C", "C"), l)
	if again.Stats[StatSpeed] == 1000 {
		t.Error("mutating a resolved effect changed registry data")
	}
}

func TestResolveRecessiveRoundTrip(t *testing.T) {
	l := mustLocus(t, "dog_b")
	wild, _ := Resolve(Pair("B", "B"), l)

	het, err := Resolve(Pair("B", "b"), l)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(het, wild) {
		t.Errorf("heterozygous resolved to %+v, want wild type %+v", het, wild)
	}

	homo, err := Resolve(Pair("b", "b"), l)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(homo.Colors, []string{"brown"}) {
		t.Errorf("homozygous mutant colors = %v, want [brown]", homo.Colors)
	}
}

func TestResolveDominantUsesDeclaredOrder(t *testing.T) {
	l := mustLocus(t, "dog_a")
	tests := []struct {
		g    Genotype
		want string
	}{
		{Pair("a", "Ay"), "sable"},
		{Pair("at", "aw"), "wolf_sable"},
		{Pair("a", "at"), "tan_point"},
		{Pair("a", "a"), "recessive_black"},
	}
	for _, tt := range tests {
		e, err := Resolve(tt.g, l)
		if err != nil {
			t.Fatal(err)
		}
		if len(e.Colors) != 1 || e.Colors[0] != tt.want {
			t.Errorf("Resolve(%v) colors = %v, want [%s]", tt.g, e.Colors, tt.want)
		}
	}
}

func TestResolveSexLinkedMatchesDominant(t *testing.T) {
	l := mustLocus(t, "hemophilia")
	carrier, _ := Resolve(Pair("H", "h"), l)
	if len(carrier.Health) != 0 {
		t.Errorf("carrier health = %v, want none", carrier.Health)
	}
	affected, _ := Resolve(Pair("h", "h"), l)
	if affected.Health["hemophilia_a"] != 1 {
		t.Errorf("affected health = %v", affected.Health)
	}
}

func TestResolveCodominantBlends(t *testing.T) {
	l := mustLocus(t, "mstn")
	e, err := Resolve(Pair("C", "T"), l)
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]float64{StatSpeed: 3, StatStrength: 1, StatStamina: 3}
	if !reflect.DeepEqual(e.Stats, want) {
		t.Errorf("blended stats = %v, want %v", e.Stats, want)
	}
}

func TestResolvePolygenicSums(t *testing.T) {
	l := mustLocus(t, "endurance")
	tests := []struct {
		g    Genotype
		want float64
	}{
		{Pair("0", "0"), 0},
		{Pair("0", "+"), 3},
		{Pair("+", "+"), 6},
	}
	for _, tt := range tests {
		e, _ := Resolve(tt.g, l)
		if got := e.Stats[StatStamina]; math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Resolve(%v) stamina = %v, want %v", tt.g, got, tt.want)
		}
	}
}

func TestResolveLethalCombo(t *testing.T) {
	l := mustLocus(t, "frame")

	het, _ := Resolve(Pair("O", "n"), l)
	if het.HasFlag(FlagLethal) {
		t.Error("heterozygous frame flagged lethal")
	}
	if het.Health["lethal_white_overo"] != 0.5 {
		t.Errorf("heterozygous frame health = %v, want blended 0.5", het.Health)
	}

	homo, _ := Resolve(Pair("O", "O"), l)
	if !homo.HasFlag(FlagLethal) {
		t.Error("homozygous frame not flagged lethal")
	}
}

func TestResolveRejectsForeignAllele(t *testing.T) {
	if _, err := Resolve(Pair("E", "Z"), mustLocus(t, "extension")); err == nil {
		t.Error("Resolve accepted a foreign allele")
	}
}

func TestResolveProfileMerges(t *testing.T) {
	p := mustProfile(t, Horse, map[string]Genotype{
		"extension": Pair("E", "e"),
		"agouti":    Pair("A", "a"),
		"mstn":      Pair("C", "C"),
		"strength":  Pair("+", "+"),
		"frame":     Pair("O", "O"),
		"scid":      Pair("scid", "scid"),
	})
	ph, err := ResolveProfile(Default(), p, Horse)
	if err != nil {
		t.Fatal(err)
	}

	// mstn C/C gives strength 2, strength +/+ gives 6.
	if got := ph.Stats[StatStrength]; got != 8 {
		t.Errorf("strength = %v, want 8", got)
	}
	if len(ph.Colors) < 2 || ph.Colors[0] != "black_base" || ph.Colors[1] != "agouti_restricted" {
		t.Errorf("colors not in locus order: %v", ph.Colors)
	}
	lethal := 0
	for _, f := range ph.Flags {
		if f == FlagLethal {
			lethal++
		}
	}
	if lethal != 1 {
		t.Errorf("flags = %v, want a single lethal flag", ph.Flags)
	}
	if ph.Health["scid"] != 1 || ph.Health["lethal_white_overo"] != 1 {
		t.Errorf("health = %v", ph.Health)
	}
}
