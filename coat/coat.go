// Package coat derives descriptive coat colors from a genetic profile.
// The pipeline is deterministic: the same profile and age always give the
// same coat.
package coat

import (
	"fmt"
	"strings"

	"github.com/pthm-cable/studbook/genetics"
)

// Coat is the staged result of the color pipeline.
type Coat struct {
	Base     string   `json:"base"`     // Color after the base stage
	Diluted  string   `json:"diluted"`  // Color after every dilution stage
	Patterns []string `json:"patterns"` // White and spotting patterns in evaluation order
	Grey     string   `json:"grey,omitempty"`
	Chain    string   `json:"chain"` // Final descriptive label
}

// Grey stages.
const (
	GreyNone    = ""
	GreyGreying = "greying"
	GreyLight   = "light grey"
	GreyWhite   = "white"
)

// stage rewrites the coat in place from the profile's genotypes.
type stage func(c *Coat, g genes)

// genes is a read helper over a validated profile.
type genes genetics.Profile

func (g genes) count(key string, a genetics.Allele) int {
	return genetics.Profile(g)[key].Count(a)
}

func (g genes) has(key string, a genetics.Allele) bool {
	return g.count(key, a) > 0
}

func (g genes) homozygous(key string, a genetics.Allele) bool {
	return g.count(key, a) == 2
}

var pipelines = map[genetics.Species][]stage{
	genetics.Horse: {horseBase, creamStage, pearlStage, champagneStage, dunStage, silverStage, mushroomStage, horsePatterns},
	genetics.Dog:   {dogBase, dogPigment, dogMask, dogPatterns},
}

// Describe runs the species pipeline over p for an animal of the given age in years.
func Describe(r *genetics.Registry, p genetics.Profile, species genetics.Species, age float64) (Coat, error) {
	if err := r.Validate(p, species); err != nil {
		return Coat{}, fmt.Errorf("describing coat: %w", err)
	}
	stages, ok := pipelines[species]
	if !ok {
		return Coat{}, &genetics.UnsupportedSpeciesError{Species: species}
	}

	c := Coat{Patterns: []string{}}
	g := genes(p)
	for _, s := range stages {
		s(&c, g)
	}

	c.Chain = c.Diluted
	if len(c.Patterns) > 0 {
		c.Chain = c.Diluted + " " + strings.Join(c.Patterns, " ")
	}
	greyOverlay(&c, g, age)
	return c, nil
}

// greyOverlay wraps the chain once the grey allele is present; greying
// progresses with age.
func greyOverlay(c *Coat, g genes, age float64) {
	if !g.has("grey", "G") {
		return
	}
	switch {
	case age < 5:
		c.Grey = GreyGreying
		c.Chain = c.Chain + " (greying)"
	case age < 10:
		c.Grey = GreyLight
		c.Chain = "light grey (" + c.Chain + " base)"
	default:
		c.Grey = GreyWhite
		c.Chain = "white (" + c.Chain + " base)"
	}
}
