// Package breeding scores candidate breeding pairs: genetic diversity,
// inbreeding, inherited health risk, predicted offspring stats, coats and
// temperament, and an overall breeding value.
package breeding

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/studbook/coat"
	"github.com/pthm-cable/studbook/config"
	"github.com/pthm-cable/studbook/genetics"
)

// Sex of an animal. Only used to find the mother for epigenetic bonuses.
type Sex string

const (
	Female Sex = "female"
	Male   Sex = "male"
)

// Blend is the temperament reported for the mixed share of unlike parents.
const Blend = "Blend"

// UnknownTemperament stands in for a parent with no temperament tag.
const UnknownTemperament = "Unknown"

// Recommendation tags, in the order they can appear.
const (
	RecHighRisk          = "high_health_risk_not_recommended"
	RecGeneticTesting    = "genetic_testing_recommended"
	RecLowRisk           = "low_health_risk_approved"
	RecLowDiversity      = "low_diversity_inbreeding_depression_risk"
	RecHighDiversity     = "excellent_genetic_diversity"
	RecDoNotBreed        = "do_not_breed_lethal_combination"
	RecDNATest           = "dna_test_both_parents"
	RecHealthCertificate = "verify_health_certificates"
)

// Attributes are the non-genetic facts about a parent the analyzer needs.
type Attributes struct {
	ID          string             `json:"id"`
	Species     genetics.Species   `json:"species"`
	Sex         Sex                `json:"sex,omitempty"`
	Age         float64            `json:"age,omitempty"`
	Stats       map[string]float64 `json:"stats,omitempty"`
	Health      float64            `json:"health,omitempty"`
	Mood        float64            `json:"mood,omitempty"`
	Training    float64            `json:"training,omitempty"`
	Temperament string             `json:"temperament,omitempty"`
	Ancestors   []string           `json:"ancestors,omitempty"` // Known pedigree IDs
}

// StatRange is a predicted offspring stat.
type StatRange struct {
	Min        float64 `json:"min"`
	Max        float64 `json:"max"`
	MostLikely float64 `json:"most_likely"`
}

// Outcome is one predicted value with its probability.
type Outcome struct {
	Value       string  `json:"value"`
	Probability float64 `json:"probability"`
}

// Analyzer builds compatibility reports. It holds no mutable state and is
// safe for concurrent use given a random source per goroutine.
type Analyzer struct {
	reg          *genetics.Registry
	cfg          config.AnalysisConfig
	mutationRate float64
}

// NewAnalyzer returns an analyzer over reg. A nil registry means genetics.Default().
func NewAnalyzer(reg *genetics.Registry, cfg config.AnalysisConfig, mutationRate float64) *Analyzer {
	if reg == nil {
		reg = genetics.Default()
	}
	return &Analyzer{reg: reg, cfg: cfg, mutationRate: mutationRate}
}

// Analyze scores the pairing of a and b. rng drives the offspring color
// trials; nil uses genetics.Global.
func (an *Analyzer) Analyze(rng genetics.Rand, a, b genetics.Profile, attrsA, attrsB Attributes) (Report, error) {
	if rng == nil {
		rng = genetics.Global
	}
	species := attrsA.Species
	if attrsB.Species != species {
		return Report{}, fmt.Errorf("analyzing pair: species %q and %q differ", attrsA.Species, attrsB.Species)
	}
	if err := an.reg.Validate(a, species); err != nil {
		return Report{}, fmt.Errorf("parent a: %w", err)
	}
	if err := an.reg.Validate(b, species); err != nil {
		return Report{}, fmt.Errorf("parent b: %w", err)
	}

	rep := Report{
		Species: species,
		ParentA: attrsA.ID,
		ParentB: attrsB.ID,
	}

	var err error
	if rep.Diversity, err = an.Diversity(a, b, species); err != nil {
		return Report{}, err
	}
	rep.Inbreeding = an.Inbreeding(attrsA, attrsB)
	if rep.HealthRisks, rep.OverallRiskScore, err = HealthRisks(a, b, species); err != nil {
		return Report{}, err
	}
	rep.PredictedStats = an.predictStats(rep.Diversity, rep.Inbreeding, attrsA, attrsB)
	if rep.PredictedColors, rep.LethalOffspring, err = an.predictColors(rng, a, b, species); err != nil {
		return Report{}, err
	}
	rep.Temperament = PredictTemperament(attrsA.Temperament, attrsB.Temperament)

	bv := an.cfg.BreedingValue
	rep.BreedingValue = clamp(bv.Base+
		rep.Diversity*bv.DiversityWeight-
		rep.OverallRiskScore*bv.RiskWeight-
		rep.Inbreeding*bv.InbreedingWeight, 0, 100)
	rep.Recommendations = an.recommend(rep)
	return rep, nil
}

// Diversity is 1 minus the share of alleles the two profiles have in
// common, matched as multisets over four alleles per locus.
func (an *Analyzer) Diversity(a, b genetics.Profile, species genetics.Species) (float64, error) {
	loci, err := an.reg.Loci(species)
	if err != nil {
		return 0, err
	}
	if len(loci) == 0 {
		return 0, nil
	}
	var shared int
	for _, l := range loci {
		ga, gb := a[l.Key], b[l.Key]
		used := [2]bool{}
		for _, x := range ga {
			for j, y := range gb {
				if !used[j] && x == y {
					used[j] = true
					shared += 2 // Counted once on each side
					break
				}
			}
		}
	}
	return 1 - float64(shared)/float64(4*len(loci)), nil
}

// Inbreeding is a bounded pedigree placeholder: a weight for a direct
// parent/offspring link plus a weight per known ancestor the pair shares.
// Without pedigree data it is 0.
func (an *Analyzer) Inbreeding(a, b Attributes) float64 {
	var coeff float64
	if (a.ID != "" && contains(b.Ancestors, a.ID)) || (b.ID != "" && contains(a.Ancestors, b.ID)) {
		coeff += an.cfg.DirectLinkWeight
	}
	seen := make(map[string]bool, len(a.Ancestors))
	for _, id := range a.Ancestors {
		seen[id] = true
	}
	for _, id := range dedupe(b.Ancestors) {
		if seen[id] {
			coeff += an.cfg.SharedAncestorWeight
		}
	}
	return clamp(coeff, 0, 1)
}

// HealthRisks screens every condition for species and returns the
// findings with their summed risk.
func HealthRisks(a, b genetics.Profile, species genetics.Species) ([]Finding, float64, error) {
	conds, err := Conditions(species)
	if err != nil {
		return nil, 0, err
	}
	var findings []Finding
	var total float64
	for _, c := range conds {
		f, ok := c.assess(a[c.Locus].Count(c.RiskAllele), b[c.Locus].Count(c.RiskAllele))
		if !ok {
			continue
		}
		findings = append(findings, f)
		total += f.Risk
	}
	return findings, total, nil
}

// mother picks the female parent, falling back to b.
func mother(a, b Attributes) Attributes {
	if a.Sex == Female && b.Sex != Female {
		return a
	}
	return b
}

func (an *Analyzer) epigeneticBonus(m Attributes) float64 {
	e := an.cfg.Epigenetic
	var bonus float64
	if m.Health > e.HealthThreshold {
		bonus += e.HealthBonus
	}
	if m.Mood > e.MoodThreshold {
		bonus += e.MoodBonus
	}
	if m.Training > e.TrainingThreshold {
		bonus += e.TrainingBonus
	}
	return math.Min(bonus, e.Cap)
}

func (an *Analyzer) predictStats(diversity, inbreeding float64, a, b Attributes) map[string]StatRange {
	adjust := an.epigeneticBonus(mother(a, b)) + math.Floor(diversity*an.cfg.HybridVigorFactor)
	if inbreeding > an.cfg.InbreedingThreshold {
		adjust -= math.Floor(inbreeding * an.cfg.InbreedingFactor)
	}

	out := make(map[string]StatRange)
	for name, va := range a.Stats {
		vb, ok := b.Stats[name]
		if !ok {
			continue
		}
		v := clamp(stat.Mean([]float64{va, vb}, nil)+adjust, 0, 100)
		out[name] = StatRange{
			Min:        clamp(v-an.cfg.StatBand, 0, 100),
			Max:        clamp(v+an.cfg.StatBand, 0, 100),
			MostLikely: v,
		}
	}
	return out
}

// predictColors breeds ColorTrials virtual offspring and tallies their
// coat chains. It also reports the share whose phenotype is lethal.
func (an *Analyzer) predictColors(rng genetics.Rand, a, b genetics.Profile, species genetics.Species) ([]Outcome, float64, error) {
	trials := an.cfg.ColorTrials
	if trials <= 0 {
		trials = 1
	}
	tally := make(map[string]int)
	lethal := 0
	for range trials {
		child, err := genetics.InheritProfile(rng, an.reg, species, a, b, an.mutationRate)
		if err != nil {
			return nil, 0, fmt.Errorf("color trial: %w", err)
		}
		ph, err := genetics.ResolveProfile(an.reg, child, species)
		if err != nil {
			return nil, 0, fmt.Errorf("color trial: %w", err)
		}
		if ph.HasFlag(genetics.FlagLethal) {
			lethal++
		}
		c, err := coat.Describe(an.reg, child, species, an.cfg.PredictionAge)
		if err != nil {
			return nil, 0, fmt.Errorf("color trial: %w", err)
		}
		tally[c.Chain]++
	}

	out := make([]Outcome, 0, len(tally))
	for chain, n := range tally {
		out = append(out, Outcome{Value: chain, Probability: float64(n) / float64(trials)})
	}
	sortOutcomes(out)
	return out, float64(lethal) / float64(trials), nil
}

// PredictTemperament combines the parents' temperament tags.
func PredictTemperament(a, b string) []Outcome {
	if a == "" {
		a = UnknownTemperament
	}
	if b == "" {
		b = UnknownTemperament
	}
	if a == b {
		return []Outcome{{Value: a, Probability: 0.7}}
	}
	return []Outcome{
		{Value: a, Probability: 0.4},
		{Value: b, Probability: 0.4},
		{Value: Blend, Probability: 0.2},
	}
}

func (an *Analyzer) recommend(rep Report) []string {
	rc := an.cfg.Recommendations
	var recs []string
	switch {
	case rep.OverallRiskScore > rc.HighRisk:
		recs = append(recs, RecHighRisk)
	case rep.OverallRiskScore >= rc.ModerateRisk:
		recs = append(recs, RecGeneticTesting)
	default:
		recs = append(recs, RecLowRisk)
	}
	switch {
	case rep.Diversity < rc.LowDiversity:
		recs = append(recs, RecLowDiversity)
	case rep.Diversity > rc.HighDiversity:
		recs = append(recs, RecHighDiversity)
	}
	if rep.Lethal() {
		recs = append(recs, RecDoNotBreed)
	}
	return append(recs, RecDNATest, RecHealthCertificate)
}

// sortOutcomes orders by probability, most likely first, then by value.
func sortOutcomes(out []Outcome) {
	sort.Slice(out, func(i, j int) bool {
		if out[i].Probability != out[j].Probability {
			return out[i].Probability > out[j].Probability
		}
		return out[i].Value < out[j].Value
	})
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func contains(ids []string, id string) bool {
	for _, x := range ids {
		if x == id {
			return true
		}
	}
	return false
}

func dedupe(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
