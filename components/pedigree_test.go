package components

import (
	"reflect"
	"testing"
)

func TestChildPedigreeFounders(t *testing.T) {
	p := ChildPedigree(1, &Pedigree{}, 2, &Pedigree{}, 3)
	if p.Sire != 1 || p.Dam != 2 {
		t.Errorf("parents = %d, %d", p.Sire, p.Dam)
	}
	// Founder parents contribute no grandparents.
	if want := [][]uint32{{1, 2}}; !reflect.DeepEqual(p.Lines, want) {
		t.Errorf("lines = %v, want %v", p.Lines, want)
	}
}

func TestChildPedigreeDepth(t *testing.T) {
	sire := ChildPedigree(1, nil, 2, nil, 2)
	dam := ChildPedigree(3, nil, 4, nil, 2)

	tests := []struct {
		depth int
		want  [][]uint32
	}{
		{0, nil},
		{1, [][]uint32{{10, 11}}},
		{2, [][]uint32{{10, 11}, {1, 2, 3, 4}}},
		{5, [][]uint32{{10, 11}, {1, 2, 3, 4}}},
	}
	for _, tt := range tests {
		p := ChildPedigree(10, &sire, 11, &dam, tt.depth)
		if !reflect.DeepEqual(p.Lines, tt.want) {
			t.Errorf("depth %d: lines = %v, want %v", tt.depth, p.Lines, tt.want)
		}
		if len(p.Lines) > tt.depth {
			t.Errorf("depth %d exceeded: %d lines", tt.depth, len(p.Lines))
		}
	}
}

func TestAncestorsDeduplicates(t *testing.T) {
	// Half siblings share sire 1.
	a := ChildPedigree(1, nil, 2, nil, 2)
	b := ChildPedigree(1, nil, 3, nil, 2)
	p := ChildPedigree(5, &a, 6, &b, 3)

	want := []uint32{5, 6, 1, 2, 3}
	if got := p.Ancestors(); !reflect.DeepEqual(got, want) {
		t.Errorf("Ancestors() = %v, want %v", got, want)
	}
}
