package coat

import (
	"strings"

	"github.com/pthm-cable/studbook/genetics"
)

// Dog base colors.
const (
	Yellow  = "yellow"
	Brindle = "brindle"
)

// agoutiNames lists the agouti series in dominance order.
var agoutiNames = []struct {
	allele genetics.Allele
	name   string
}{
	{"Ay", "sable"},
	{"aw", "wolf sable"},
	{"at", "tan point"},
	{"a", "black"},
}

// dogBase follows E, then K, then A: ee hides everything, KB gives solid
// black, otherwise the agouti series shows (with brindle striping for kbr).
func dogBase(c *Coat, g genes) {
	switch {
	case g.homozygous("dog_e", "e"):
		c.Base = Yellow
	case g.has("dog_k", "KB"):
		c.Base = Black
	case g.has("dog_k", "kbr"):
		c.Base = Brindle + " " + dogAgouti(g)
	default:
		c.Base = dogAgouti(g)
	}
	c.Diluted = c.Base
}

func dogAgouti(g genes) string {
	for _, a := range agoutiNames {
		if g.has("dog_a", a.allele) {
			return a.name
		}
	}
	return "black"
}

// dogPigment rewrites eumelanin for the brown and dilute loci. On a yellow
// dog only the nose leather changes.
func dogPigment(c *Coat, g genes) {
	brown := g.homozygous("dog_b", "b")
	dilute := g.homozygous("dog_d", "d")
	if !brown && !dilute {
		return
	}

	if c.Base == Yellow {
		switch {
		case brown && dilute:
			c.Diluted = "yellow (isabella nose)"
		case brown:
			c.Diluted = "yellow (liver nose)"
		default:
			c.Diluted = "yellow (blue nose)"
		}
		return
	}

	pigment := "blue"
	switch {
	case brown && dilute:
		pigment = "isabella"
	case brown && c.Base == Black:
		pigment = "chocolate"
	case brown:
		pigment = "liver"
	}
	if strings.Contains(c.Diluted, "black") {
		c.Diluted = strings.ReplaceAll(c.Diluted, "black", pigment)
		return
	}
	c.Diluted = pigment + " " + c.Diluted
}

func dogMask(c *Coat, g genes) {
	if g.has("dog_e", "Em") {
		c.Diluted = c.Diluted + " with mask"
	}
}

func dogPatterns(c *Coat, g genes) {
	switch g.count("dog_m", "M") {
	case 1:
		c.Patterns = append(c.Patterns, "merle")
	case 2:
		c.Patterns = append(c.Patterns, "double merle")
	}
	if g.homozygous("dog_s", "sp") {
		c.Patterns = append(c.Patterns, "piebald")
	}
	if g.has("dog_t", "T") {
		c.Patterns = append(c.Patterns, "ticked")
	}
}
