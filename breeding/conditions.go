package breeding

import (
	"github.com/pthm-cable/studbook/genetics"
)

// Inheritance is how a health condition passes to offspring.
type Inheritance string

const (
	Recessive   Inheritance = "recessive"
	Dominant    Inheritance = "dominant"
	Polygenic   Inheritance = "polygenic"
	LethalCombo Inheritance = "lethal_combo"
)

// HealthCondition is a named genetic risk, detected through the count of
// RiskAllele at Locus.
type HealthCondition struct {
	Key          string
	Name         string
	Inheritance  Inheritance
	Species      genetics.Species
	Locus        string
	RiskAllele   genetics.Allele
	CarrierRisk  float64 // Percent, used by dominant and polygenic conditions
	AffectedRisk float64 // Percent for an affected offspring
	Lethal       bool
}

var conditions = []HealthCondition{
	// Horse
	{Key: "hypp", Name: "Hyperkalemic periodic paralysis", Inheritance: Dominant, Species: genetics.Horse,
		Locus: "hypp", RiskAllele: "H", CarrierRisk: 50, AffectedRisk: 100},
	{Key: "herda", Name: "Hereditary equine regional dermal asthenia", Inheritance: Recessive, Species: genetics.Horse,
		Locus: "herda", RiskAllele: "Hr", AffectedRisk: 100},
	{Key: "pssm1", Name: "Polysaccharide storage myopathy type 1", Inheritance: Dominant, Species: genetics.Horse,
		Locus: "pssm1", RiskAllele: "P1", CarrierRisk: 50, AffectedRisk: 100},
	{Key: "scid", Name: "Severe combined immunodeficiency", Inheritance: Recessive, Species: genetics.Horse,
		Locus: "scid", RiskAllele: "scid", AffectedRisk: 100, Lethal: true},
	{Key: "lethal_white_overo", Name: "Lethal white overo syndrome", Inheritance: LethalCombo, Species: genetics.Horse,
		Locus: "frame", RiskAllele: "O", AffectedRisk: 50, Lethal: true},
	{Key: "ocd", Name: "Osteochondrosis", Inheritance: Polygenic, Species: genetics.Horse,
		Locus: "ocd", RiskAllele: "Oc", CarrierRisk: 20},

	// Dog
	{Key: "prcd_pra", Name: "Progressive retinal atrophy (prcd)", Inheritance: Recessive, Species: genetics.Dog,
		Locus: "prcd", RiskAllele: "prcd", AffectedRisk: 100},
	{Key: "mdr1", Name: "MDR1 drug sensitivity", Inheritance: Recessive, Species: genetics.Dog,
		Locus: "mdr1", RiskAllele: "m", AffectedRisk: 100},
	{Key: "degenerative_myelopathy", Name: "Degenerative myelopathy", Inheritance: Recessive, Species: genetics.Dog,
		Locus: "sod1", RiskAllele: "A", AffectedRisk: 100},
	{Key: "double_merle", Name: "Double merle syndrome", Inheritance: LethalCombo, Species: genetics.Dog,
		Locus: "dog_m", RiskAllele: "M", AffectedRisk: 50, Lethal: true},
	{Key: "hip_dysplasia", Name: "Hip dysplasia", Inheritance: Polygenic, Species: genetics.Dog,
		Locus: "hip", RiskAllele: "Hd", CarrierRisk: 30},
	// Sex linkage is not modelled; hemophilia A is scored as a plain recessive.
	{Key: "hemophilia_a", Name: "Hemophilia A", Inheritance: Recessive, Species: genetics.Dog,
		Locus: "hemophilia", RiskAllele: "h", AffectedRisk: 100},

	// Both
	{Key: "melanoma", Name: "Grey melanoma", Inheritance: Dominant, Species: genetics.Both,
		Locus: "grey", RiskAllele: "G", CarrierRisk: 10, AffectedRisk: 20},
}

var conditionIndex = func() map[string]int {
	m := make(map[string]int, len(conditions))
	for i, c := range conditions {
		m[c.Key] = i
	}
	return m
}()

// Condition looks up a health condition by key.
func Condition(key string) (HealthCondition, error) {
	i, ok := conditionIndex[key]
	if !ok {
		return HealthCondition{}, &genetics.NotFoundError{Kind: "condition", Key: key}
	}
	return conditions[i], nil
}

// ConditionFor is Condition restricted to conditions that apply to species.
func ConditionFor(key string, species genetics.Species) (HealthCondition, error) {
	c, err := Condition(key)
	if err != nil {
		return HealthCondition{}, err
	}
	if !c.Species.AppliesTo(species) {
		return HealthCondition{}, &genetics.UnsupportedSpeciesError{Key: key, Species: species}
	}
	return c, nil
}

// Conditions lists the conditions screened for species, in table order.
func Conditions(species genetics.Species) ([]HealthCondition, error) {
	if species != genetics.Horse && species != genetics.Dog {
		return nil, &genetics.UnsupportedSpeciesError{Species: species}
	}
	var out []HealthCondition
	for _, c := range conditions {
		if c.Species.AppliesTo(species) {
			out = append(out, c)
		}
	}
	return out, nil
}

// Finding is one condition flagged for a candidate pair.
type Finding struct {
	Condition   string      `json:"condition"`
	Name        string      `json:"name"`
	Inheritance Inheritance `json:"inheritance"`
	StatusA     Status      `json:"status_a"`
	StatusB     Status      `json:"status_b"`
	Risk        float64     `json:"risk"` // Percent contribution to the overall score
	Lethal      bool        `json:"lethal,omitempty"`
}

// Status is a parent's genotype status for one condition.
type Status string

const (
	Clear    Status = "clear"
	Carrier  Status = "carrier"
	Affected Status = "affected"
)

func statusOf(n int) Status {
	switch n {
	case 0:
		return Clear
	case 1:
		return Carrier
	default:
		return Affected
	}
}

// assess scores one condition for a pair given each parent's risk-allele
// count. ok is false when the pair carries no risk for it.
func (c HealthCondition) assess(na, nb int) (f Finding, ok bool) {
	var risk float64
	switch c.Inheritance {
	case Recessive:
		// Chance both gametes carry the allele.
		risk = c.AffectedRisk * float64(na) / 2 * float64(nb) / 2
	case Dominant:
		switch {
		case na == 2 || nb == 2:
			risk = c.AffectedRisk
		case na > 0 || nb > 0:
			risk = c.CarrierRisk
		}
	case Polygenic:
		risk = c.CarrierRisk * float64(na+nb) / 4
	case LethalCombo:
		if na > 0 && nb > 0 {
			risk = c.AffectedRisk
		}
	}
	if risk <= 0 {
		return Finding{}, false
	}
	return Finding{
		Condition:   c.Key,
		Name:        c.Name,
		Inheritance: c.Inheritance,
		StatusA:     statusOf(na),
		StatusB:     statusOf(nb),
		Risk:        risk,
		Lethal:      c.Lethal,
	}, true
}

// LethalCarrier reports whether p carries exactly one copy of the risk
// allele of a lethal condition for species.
func LethalCarrier(p genetics.Profile, species genetics.Species) bool {
	for _, c := range conditions {
		if !c.Lethal || !c.Species.AppliesTo(species) {
			continue
		}
		if g, ok := p[c.Locus]; ok && g.Count(c.RiskAllele) == 1 {
			return true
		}
	}
	return false
}
