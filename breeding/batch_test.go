package breeding

import (
	"reflect"
	"strings"
	"testing"

	"github.com/pthm-cable/studbook/genetics"
)

func randomPairings(t *testing.T, n int, species genetics.Species) []Pairing {
	t.Helper()
	rng := genetics.NewRand(11, 0)
	pairs := make([]Pairing, n)
	for i := range pairs {
		a, err := genetics.RandomProfile(rng, genetics.Default(), species)
		if err != nil {
			t.Fatal(err)
		}
		b, err := genetics.RandomProfile(rng, genetics.Default(), species)
		if err != nil {
			t.Fatal(err)
		}
		pairs[i] = Pairing{
			A: a, B: b,
			AttrsA: Attributes{ID: "a", Species: species, Stats: map[string]float64{"speed": 50}},
			AttrsB: Attributes{ID: "b", Species: species, Stats: map[string]float64{"speed": 70}},
		}
	}
	return pairs
}

func TestAnalyzeBatchMatchesSequential(t *testing.T) {
	an := newTestAnalyzer(genetics.DefaultMutationRate)
	pairs := randomPairings(t, 24, genetics.Dog)

	got, err := an.AnalyzeBatch(99, pairs)
	if err != nil {
		t.Fatalf("AnalyzeBatch: %v", err)
	}
	if len(got) != len(pairs) {
		t.Fatalf("got %d reports, want %d", len(got), len(pairs))
	}

	for i, p := range pairs {
		want, err := an.Analyze(genetics.NewRand(99, uint64(i)), p.A, p.B, p.AttrsA, p.AttrsB)
		if err != nil {
			t.Fatal(err)
		}
		if !reflect.DeepEqual(got[i], want) {
			t.Errorf("report %d differs from sequential analysis", i)
		}
	}
}

func TestAnalyzeBatchSmall(t *testing.T) {
	an := newTestAnalyzer(0)
	pairs := randomPairings(t, 2, genetics.Horse)
	got, err := an.AnalyzeBatch(1, pairs)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d reports, want 2", len(got))
	}

	empty, err := an.AnalyzeBatch(1, nil)
	if err != nil || len(empty) != 0 {
		t.Errorf("empty batch = %v, %v", empty, err)
	}
}

func TestAnalyzeBatchReportsFirstError(t *testing.T) {
	an := newTestAnalyzer(0)
	pairs := randomPairings(t, 12, genetics.Horse)
	pairs[3].AttrsB.Species = genetics.Dog
	pairs[7].AttrsB.Species = genetics.Dog

	_, err := an.AnalyzeBatch(1, pairs)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.HasPrefix(err.Error(), "pairing 3:") {
		t.Errorf("err = %q, want pairing 3 first", err)
	}
}
