package coat

// Horse base colors.
const (
	Chestnut = "chestnut"
	Bay      = "bay"
	Black    = "black"
)

func horseBase(c *Coat, g genes) {
	switch {
	case g.homozygous("extension", "e"):
		c.Base = Chestnut
	case g.has("agouti", "A"):
		c.Base = Bay
	default:
		c.Base = Black
	}
	c.Diluted = c.Base
}

var singleCream = map[string]string{Chestnut: "palomino", Bay: "buckskin", Black: "smoky black"}
var doubleCream = map[string]string{Chestnut: "cremello", Bay: "perlino", Black: "smoky cream"}

func creamStage(c *Coat, g genes) {
	switch g.count("cream", "Cr") {
	case 1:
		c.Diluted = singleCream[c.Base]
	case 2:
		c.Diluted = doubleCream[c.Base]
	}
}

// pearlStage runs after cream: one pearl allele alongside one cream allele
// dilutes like double cream.
func pearlStage(c *Coat, g genes) {
	pearls := g.count("pearl", "prl")
	switch {
	case pearls == 2:
		c.Diluted = "pearl " + c.Diluted
	case pearls == 1 && g.count("cream", "Cr") == 1:
		c.Diluted = c.Diluted + " pseudo-double dilute"
	}
}

// champagneNames is keyed by the post-cream label.
var champagneNames = map[string]string{
	Chestnut:      "gold champagne",
	Bay:           "amber champagne",
	Black:         "classic champagne",
	"palomino":    "gold cream champagne",
	"buckskin":    "amber cream champagne",
	"smoky black": "classic cream champagne",
}

func champagneStage(c *Coat, g genes) {
	if !g.has("champagne", "Ch") {
		return
	}
	if name, ok := champagneNames[c.Diluted]; ok {
		c.Diluted = name
		return
	}
	c.Diluted = c.Diluted + " champagne"
}

var dunNames = map[string]string{Chestnut: "red dun", Bay: "bay dun", Black: "grulla"}

func dunStage(c *Coat, g genes) {
	if !g.has("dun", "D") {
		return
	}
	if c.Diluted == c.Base {
		c.Diluted = dunNames[c.Base]
		return
	}
	c.Diluted = c.Diluted + " dun"
}

// silverStage only shows on black pigment, so chestnuts are unaffected.
func silverStage(c *Coat, g genes) {
	if !g.has("silver", "Z") || c.Base == Chestnut {
		return
	}
	c.Diluted = "silver " + c.Diluted
}

// mushroomStage only shows on red pigment.
func mushroomStage(c *Coat, g genes) {
	if !g.homozygous("mushroom", "mu") || c.Base != Chestnut {
		return
	}
	if c.Diluted == Chestnut {
		c.Diluted = "mushroom"
		return
	}
	c.Diluted = c.Diluted + " mushroom"
}

func horsePatterns(c *Coat, g genes) {
	if g.has("tobiano", "To") {
		c.Patterns = append(c.Patterns, "tobiano")
	}
	switch g.count("frame", "O") {
	case 1:
		c.Patterns = append(c.Patterns, "frame overo")
	case 2:
		c.Patterns = append(c.Patterns, "lethal white overo")
	}
	switch g.count("sabino", "SB1") {
	case 1:
		c.Patterns = append(c.Patterns, "sabino")
	case 2:
		c.Patterns = append(c.Patterns, "sabino white")
	}
	if g.has("splash", "SW1") {
		c.Patterns = append(c.Patterns, "splash white")
	}
	if g.has("dominant_white", "W") {
		c.Patterns = append(c.Patterns, "dominant white")
	}
	if p := leopardPattern(g); p != "" {
		c.Patterns = append(c.Patterns, p)
	}
}

// leopardPattern picks the appaloosa pattern from leopard complex dosage
// and the presence of the pattern-1 modifier.
func leopardPattern(g genes) string {
	lp := g.count("leopard", "LP")
	if lp == 0 {
		return ""
	}
	patn := g.has("patn1", "PATN1")
	switch {
	case lp == 2 && patn:
		return "few-spot leopard"
	case patn:
		return "leopard complex"
	case lp == 2:
		return "snowflake appaloosa"
	default:
		return "blanket appaloosa"
	}
}
