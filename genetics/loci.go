package genetics

// Stat names used by the built-in loci.
const (
	StatSpeed        = "speed"
	StatStamina      = "stamina"
	StatAgility      = "agility"
	StatStrength     = "strength"
	StatIntelligence = "intelligence"
)

// StatNames lists the built-in stats in display order.
var StatNames = []string{StatSpeed, StatStamina, StatAgility, StatStrength, StatIntelligence}

func stats(kv ...any) map[string]float64 {
	m := make(map[string]float64, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		m[kv[i].(string)] = float64(kv[i+1].(int))
	}
	return m
}

func colors(tags ...string) EffectSet { return EffectSet{Colors: tags} }

func risk(condition string, weight float64, flags ...string) EffectSet {
	return EffectSet{Health: map[string]float64{condition: weight}, Flags: flags}
}

// horseLoci are declared in pipeline order: base color, dilutions,
// white patterns, then performance and health loci.
var horseLoci = []Locus{
	{
		Key: "extension", Name: "Extension (MC1R)", Alleles: []Allele{"E", "e"},
		Dominance: Dominant, Species: Horse,
		Effects: map[Allele]EffectSet{"E": colors("black_base"), "e": colors("red_base")},
	},
	{
		Key: "agouti", Name: "Agouti (ASIP)", Alleles: []Allele{"A", "a"},
		Dominance: Dominant, Species: Horse,
		Effects: map[Allele]EffectSet{"A": colors("agouti_restricted"), "a": colors("agouti_unrestricted")},
	},
	{
		Key: "cream", Name: "Cream (SLC45A2)", Alleles: []Allele{"C", "Cr"},
		Dominance: IncompleteDominant, Species: Horse,
		Effects: map[Allele]EffectSet{"Cr": colors("cream")},
	},
	{
		Key: "pearl", Name: "Pearl (SLC45A2)", Alleles: []Allele{"N", "prl"},
		Dominance: Recessive, Species: Horse,
		Effects: map[Allele]EffectSet{"prl": colors("pearl")},
	},
	{
		Key: "champagne", Name: "Champagne (SLC36A1)", Alleles: []Allele{"Ch", "n"},
		Dominance: Dominant, Species: Horse,
		Effects: map[Allele]EffectSet{"Ch": colors("champagne")},
	},
	{
		Key: "dun", Name: "Dun (TBX3)", Alleles: []Allele{"D", "nd"},
		Dominance: Dominant, Species: Horse,
		Effects: map[Allele]EffectSet{
			"D": {Colors: []string{"dun"}, Stats: stats(StatStamina, 2)},
		},
	},
	{
		Key: "silver", Name: "Silver (PMEL17)", Alleles: []Allele{"Z", "n"},
		Dominance: Dominant, Species: Horse,
		Effects: map[Allele]EffectSet{
			"Z": {Colors: []string{"silver"}, Health: map[string]float64{"mcoa": 0.3}},
		},
	},
	{
		Key: "mushroom", Name: "Mushroom", Alleles: []Allele{"N", "mu"},
		Dominance: Recessive, Species: Horse,
		Effects: map[Allele]EffectSet{"mu": colors("mushroom")},
	},
	{
		Key: "tobiano", Name: "Tobiano (KIT)", Alleles: []Allele{"To", "n"},
		Dominance: Dominant, Species: Horse,
		Effects: map[Allele]EffectSet{"To": colors("tobiano")},
	},
	{
		Key: "frame", Name: "Frame overo (EDNRB)", Alleles: []Allele{"O", "n"},
		Dominance: LethalCombo, Species: Horse, Lethal: "O",
		Effects: map[Allele]EffectSet{
			"O": {Colors: []string{"frame"}, Health: map[string]float64{"lethal_white_overo": 1}},
		},
	},
	{
		Key: "sabino", Name: "Sabino-1 (KIT)", Alleles: []Allele{"SB1", "n"},
		Dominance: IncompleteDominant, Species: Horse,
		Effects: map[Allele]EffectSet{"SB1": colors("sabino")},
	},
	{
		Key: "splash", Name: "Splashed white (MITF)", Alleles: []Allele{"SW1", "n"},
		Dominance: Dominant, Species: Horse,
		Effects: map[Allele]EffectSet{
			"SW1": {Colors: []string{"splash"}, Health: map[string]float64{"deafness": 0.2}},
		},
	},
	{
		Key: "dominant_white", Name: "Dominant white (KIT)", Alleles: []Allele{"W", "n"},
		Dominance: Dominant, Species: Horse,
		Effects: map[Allele]EffectSet{"W": colors("dominant_white")},
	},
	{
		Key: "leopard", Name: "Leopard complex (TRPM1)", Alleles: []Allele{"LP", "lp"},
		Dominance: IncompleteDominant, Species: Horse,
		Effects: map[Allele]EffectSet{
			"LP": {Colors: []string{"leopard"}, Health: map[string]float64{"csnb": 0.5}},
		},
	},
	{
		Key: "patn1", Name: "Pattern-1 modifier", Alleles: []Allele{"PATN1", "n"},
		Dominance: Dominant, Species: Horse,
		Effects: map[Allele]EffectSet{"PATN1": colors("patn1")},
	},
	{
		Key: "gait", Name: "Gait keeper (DMRT3)", Alleles: []Allele{"C", "A"},
		Dominance: Recessive, Species: Horse,
		Effects: map[Allele]EffectSet{
			"A": {Stats: stats(StatAgility, 4, StatSpeed, -2), Flags: []string{"gaited"}},
		},
	},
	{
		Key: "hypp", Name: "Hyperkalemic periodic paralysis", Alleles: []Allele{"H", "N"},
		Dominance: Dominant, Species: Horse,
		Effects: map[Allele]EffectSet{
			"H": {Stats: stats(StatStrength, 3), Health: map[string]float64{"hypp": 1}},
		},
	},
	{
		Key: "herda", Name: "Hereditary equine regional dermal asthenia", Alleles: []Allele{"N", "Hr"},
		Dominance: Recessive, Species: Horse,
		Effects: map[Allele]EffectSet{"Hr": risk("herda", 1, FlagBreedingRestriction)},
	},
	{
		Key: "pssm1", Name: "Polysaccharide storage myopathy type 1", Alleles: []Allele{"P1", "N"},
		Dominance: Dominant, Species: Horse,
		Effects: map[Allele]EffectSet{"P1": risk("pssm1", 0.6)},
	},
	{
		Key: "scid", Name: "Severe combined immunodeficiency", Alleles: []Allele{"N", "scid"},
		Dominance: Recessive, Species: Horse,
		Effects: map[Allele]EffectSet{"scid": risk("scid", 1, FlagLethal)},
	},
	{
		Key: "ocd", Name: "Osteochondrosis susceptibility", Alleles: []Allele{"N", "Oc"},
		Dominance: Polygenic, Species: Horse,
		Effects: map[Allele]EffectSet{"Oc": {Stats: stats(StatAgility, -1), Health: map[string]float64{"ocd": 0.25}}},
	},
}

var dogLoci = []Locus{
	{
		Key: "dog_e", Name: "Extension (MC1R)", Alleles: []Allele{"Em", "E", "e"},
		Dominance: Dominant, Species: Dog,
		Effects: map[Allele]EffectSet{
			"Em": colors("eumelanin", "mask"), "E": colors("eumelanin"), "e": colors("pheomelanin"),
		},
	},
	{
		Key: "dog_k", Name: "Dominant black (CBD103)", Alleles: []Allele{"KB", "kbr", "ky"},
		Dominance: Dominant, Species: Dog,
		Effects: map[Allele]EffectSet{
			"KB": colors("solid"), "kbr": colors("brindle"), "ky": colors("agouti_expressed"),
		},
	},
	{
		Key: "dog_a", Name: "Agouti (ASIP)", Alleles: []Allele{"Ay", "aw", "at", "a"},
		Dominance: Dominant, Species: Dog,
		Effects: map[Allele]EffectSet{
			"Ay": colors("sable"), "aw": colors("wolf_sable"), "at": colors("tan_point"), "a": colors("recessive_black"),
		},
	},
	{
		Key: "dog_b", Name: "Brown (TYRP1)", Alleles: []Allele{"B", "b"},
		Dominance: Recessive, Species: Dog,
		Effects: map[Allele]EffectSet{"b": colors("brown")},
	},
	{
		Key: "dog_d", Name: "Dilute (MLPH)", Alleles: []Allele{"D", "d"},
		Dominance: Recessive, Species: Dog,
		Effects: map[Allele]EffectSet{"d": {Colors: []string{"dilute"}, Health: map[string]float64{"cda": 0.3}}},
	},
	{
		Key: "dog_m", Name: "Merle (PMEL)", Alleles: []Allele{"m", "M"},
		Dominance: LethalCombo, Species: Dog, Lethal: "M",
		Effects: map[Allele]EffectSet{"M": {Colors: []string{"merle"}, Health: map[string]float64{"double_merle": 1}}},
	},
	{
		Key: "dog_s", Name: "White spotting (MITF)", Alleles: []Allele{"S", "sp"},
		Dominance: Recessive, Species: Dog,
		Effects: map[Allele]EffectSet{"sp": colors("piebald")},
	},
	{
		Key: "dog_t", Name: "Ticking", Alleles: []Allele{"T", "t"},
		Dominance: Dominant, Species: Dog,
		Effects: map[Allele]EffectSet{"T": colors("ticked")},
	},
	{
		Key: "prcd", Name: "Progressive rod-cone degeneration", Alleles: []Allele{"N", "prcd"},
		Dominance: Recessive, Species: Dog,
		Effects: map[Allele]EffectSet{"prcd": risk("prcd_pra", 1)},
	},
	{
		Key: "mdr1", Name: "Multi-drug resistance 1", Alleles: []Allele{"N", "m"},
		Dominance: Recessive, Species: Dog,
		Effects: map[Allele]EffectSet{"m": risk("mdr1", 0.8)},
	},
	{
		Key: "sod1", Name: "Degenerative myelopathy (SOD1)", Alleles: []Allele{"N", "A"},
		Dominance: Recessive, Species: Dog,
		Effects: map[Allele]EffectSet{"A": risk("degenerative_myelopathy", 1, FlagBreedingRestriction)},
	},
	{
		Key: "hip", Name: "Hip dysplasia susceptibility", Alleles: []Allele{"N", "Hd"},
		Dominance: Polygenic, Species: Dog,
		Effects: map[Allele]EffectSet{"Hd": {Stats: stats(StatAgility, -2), Health: map[string]float64{"hip_dysplasia": 0.3}}},
	},
	{
		Key: "hemophilia", Name: "Factor VIII (hemophilia A)", Alleles: []Allele{"H", "h"},
		Dominance: SexLinked, Species: Dog,
		Effects: map[Allele]EffectSet{"h": risk("hemophilia_a", 1)},
	},
}

var sharedLoci = []Locus{
	{
		Key: "grey", Name: "Progressive greying", Alleles: []Allele{"G", "g"},
		Dominance: Dominant, Species: Both,
		Effects: map[Allele]EffectSet{"G": {Colors: []string{"grey"}, Health: map[string]float64{"melanoma": 0.4}}},
	},
	{
		Key: "mstn", Name: "Myostatin", Alleles: []Allele{"C", "T"},
		Dominance: Codominant, Species: Both,
		Effects: map[Allele]EffectSet{
			"C": {Stats: stats(StatSpeed, 6, StatStrength, 2)},
			"T": {Stats: stats(StatStamina, 6)},
		},
	},
	{
		Key: "endurance", Name: "Endurance complex", Alleles: []Allele{"0", "+"},
		Dominance: Polygenic, Species: Both,
		Effects: map[Allele]EffectSet{"+": {Stats: stats(StatStamina, 3)}},
	},
	{
		Key: "agility", Name: "Agility complex", Alleles: []Allele{"0", "+"},
		Dominance: Polygenic, Species: Both,
		Effects: map[Allele]EffectSet{"+": {Stats: stats(StatAgility, 3)}},
	},
	{
		Key: "strength", Name: "Strength complex", Alleles: []Allele{"0", "+"},
		Dominance: Polygenic, Species: Both,
		Effects: map[Allele]EffectSet{"+": {Stats: stats(StatStrength, 3)}},
	},
	{
		Key: "intelligence", Name: "Trainability complex", Alleles: []Allele{"0", "+"},
		Dominance: Polygenic, Species: Both,
		Effects: map[Allele]EffectSet{"+": {Stats: stats(StatIntelligence, 3)}},
	},
}

var defaultRegistry = mustRegistry(horseLoci, dogLoci, sharedLoci)

func mustRegistry(groups ...[]Locus) *Registry {
	var all []Locus
	for _, g := range groups {
		all = append(all, g...)
	}
	r, err := NewRegistry(all...)
	if err != nil {
		panic("genetics: invalid built-in locus table: " + err.Error())
	}
	return r
}

// Default returns the built-in registry of horse, dog and shared loci.
func Default() *Registry {
	return defaultRegistry
}
