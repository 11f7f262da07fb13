package main

import (
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/pthm-cable/studbook/breeding"
	"github.com/pthm-cable/studbook/coat"
	"github.com/pthm-cable/studbook/config"
	"github.com/pthm-cable/studbook/genetics"
	"github.com/pthm-cable/studbook/telemetry"
)

func runFounder(args []string, cfg *config.Config, w io.Writer) error {
	fs := flag.NewFlagSet("founder", flag.ContinueOnError)
	species := fs.String("species", cfg.Herd.Species, "Species (horse or dog)")
	n := fs.Int("n", 1, "Number of founders")
	seed := seedFlag(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	rng := genetics.NewRand(resolveSeed(*seed), 0)
	sp := genetics.Species(*species)
	out := make([]animalFile, 0, *n)
	for i := 0; i < *n; i++ {
		p, err := genetics.RandomProfile(rng, genetics.Default(), sp)
		if err != nil {
			return err
		}
		sex := breeding.Female
		if i%2 == 1 {
			sex = breeding.Male
		}
		out = append(out, animalFile{
			Attributes: breeding.Attributes{ID: fmt.Sprintf("founder-%d", i+1), Species: sp, Sex: sex},
			Profile:    p,
		})
	}
	if len(out) == 1 {
		return writeJSON(w, out[0])
	}
	return writeJSON(w, out)
}

func runBreed(args []string, cfg *config.Config, w io.Writer) error {
	fs := flag.NewFlagSet("breed", flag.ContinueOnError)
	sirePath := fs.String("sire", "", "Sire animal file (required)")
	damPath := fs.String("dam", "", "Dam animal file (required)")
	n := fs.Int("n", 1, "Number of offspring")
	rate := fs.Float64("mutation-rate", cfg.Inheritance.MutationRate, "Per-allele mutation probability")
	seed := seedFlag(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *sirePath == "" || *damPath == "" {
		return fmt.Errorf("-sire and -dam are required")
	}

	sire, err := readAnimal(*sirePath, "")
	if err != nil {
		return err
	}
	dam, err := readAnimal(*damPath, "")
	if err != nil {
		return err
	}
	if sire.Species != dam.Species {
		return fmt.Errorf("cannot breed %s with %s", sire.Species, dam.Species)
	}

	ancestors := append([]string{sire.ID, dam.ID}, sire.Ancestors...)
	ancestors = append(ancestors, dam.Ancestors...)

	rng := genetics.NewRand(resolveSeed(*seed), 0)
	out := make([]animalFile, 0, *n)
	for i := 0; i < *n; i++ {
		p, err := genetics.InheritProfile(rng, genetics.Default(), sire.Species, sire.Profile, dam.Profile, *rate)
		if err != nil {
			return err
		}
		out = append(out, animalFile{
			Attributes: breeding.Attributes{
				ID:        fmt.Sprintf("%s-x-%s-%d", sire.ID, dam.ID, i+1),
				Species:   sire.Species,
				Ancestors: ancestors,
			},
			Profile: p,
		})
	}
	if len(out) == 1 {
		return writeJSON(w, out[0])
	}
	return writeJSON(w, out)
}

// coatOutput is the coat command's result.
type coatOutput struct {
	ID        string             `json:"id"`
	Coat      coat.Coat          `json:"coat"`
	Phenotype genetics.Phenotype `json:"phenotype"`
}

func runCoat(args []string, cfg *config.Config, w io.Writer) error {
	fs := flag.NewFlagSet("coat", flag.ContinueOnError)
	path := fs.String("animal", "", "Animal file (required)")
	age := fs.Float64("age", -1, "Age in years (-1 = use the file's age)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *path == "" {
		return fmt.Errorf("-animal is required")
	}

	a, err := readAnimal(*path, "")
	if err != nil {
		return err
	}
	years := a.Age
	if *age >= 0 {
		years = *age
	}
	c, err := coat.Describe(genetics.Default(), a.Profile, a.Species, years)
	if err != nil {
		return err
	}
	ph, err := genetics.ResolveProfile(genetics.Default(), a.Profile, a.Species)
	if err != nil {
		return err
	}
	return writeJSON(w, coatOutput{ID: a.ID, Coat: c, Phenotype: ph})
}

func runAnalyze(args []string, cfg *config.Config, w io.Writer) error {
	fs := flag.NewFlagSet("analyze", flag.ContinueOnError)
	aPath := fs.String("a", "", "First animal file")
	bPath := fs.String("b", "", "Second animal file")
	snapshotPath := fs.String("snapshot", "", "Studbook snapshot to read animals from")
	ids := fs.String("ids", "", "Two comma-separated animal IDs from -snapshot (empty = every female x male pair)")
	trials := fs.Int("trials", cfg.Analysis.ColorTrials, "Offspring color trials per report")
	asCSV := fs.Bool("csv", false, "Write reports as CSV")
	seed := seedFlag(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *trials <= 0 {
		return fmt.Errorf("-trials must be positive")
	}

	acfg := cfg.Analysis
	acfg.ColorTrials = *trials
	an := breeding.NewAnalyzer(genetics.Default(), acfg, cfg.Inheritance.MutationRate)

	var pairs []breeding.Pairing
	var err error
	if *snapshotPath != "" {
		pairs, err = snapshotPairings(*snapshotPath, *ids)
	} else {
		pairs, err = filePairing(*aPath, *bPath)
	}
	if err != nil {
		return err
	}

	reports, err := an.AnalyzeBatch(resolveSeed(*seed), pairs)
	if err != nil {
		return err
	}
	if *asCSV {
		return telemetry.WriteReports(w, reports)
	}
	if len(reports) == 1 {
		return writeJSON(w, reports[0])
	}
	return writeJSON(w, reports)
}

func filePairing(aPath, bPath string) ([]breeding.Pairing, error) {
	if aPath == "" || bPath == "" {
		return nil, fmt.Errorf("-a and -b are required without -snapshot")
	}
	a, err := readAnimal(aPath, "")
	if err != nil {
		return nil, err
	}
	b, err := readAnimal(bPath, "")
	if err != nil {
		return nil, err
	}
	return []breeding.Pairing{{A: a.Profile, B: b.Profile, AttrsA: a.Attributes, AttrsB: b.Attributes}}, nil
}

// snapshotPairings pairs two animals by ID, or every female with every
// male when ids is empty.
func snapshotPairings(path, ids string) ([]breeding.Pairing, error) {
	snap, err := telemetry.LoadSnapshot(path, genetics.Default())
	if err != nil {
		return nil, err
	}
	pairing := func(a, b telemetry.AnimalRecord) breeding.Pairing {
		return breeding.Pairing{A: a.Profile, B: b.Profile, AttrsA: a.Attributes(snap.Species), AttrsB: b.Attributes(snap.Species)}
	}

	if ids == "" {
		var pairs []breeding.Pairing
		for _, dam := range snap.Animals {
			if dam.Sex != breeding.Female {
				continue
			}
			for _, sire := range snap.Animals {
				if sire.Sex == breeding.Male {
					pairs = append(pairs, pairing(sire, dam))
				}
			}
		}
		return pairs, nil
	}

	parts := strings.Split(ids, ",")
	if len(parts) != 2 {
		return nil, fmt.Errorf("-ids wants two IDs, got %q", ids)
	}
	var recs [2]telemetry.AnimalRecord
	for i, part := range parts {
		id, err := strconv.ParseUint(strings.TrimSpace(part), 10, 32)
		if err != nil {
			return nil, fmt.Errorf("parsing id %q: %w", part, err)
		}
		rec, ok := snap.Find(uint32(id))
		if !ok {
			return nil, &genetics.NotFoundError{Kind: "animal", Key: part}
		}
		recs[i] = rec
	}
	return []breeding.Pairing{pairing(recs[0], recs[1])}, nil
}

func runLoci(args []string, cfg *config.Config, w io.Writer) error {
	fs := flag.NewFlagSet("loci", flag.ContinueOnError)
	species := fs.String("species", cfg.Herd.Species, "Species (horse or dog)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	loci, err := genetics.Default().Loci(genetics.Species(*species))
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "KEY\tNAME\tDOMINANCE\tALLELES")
	for _, l := range loci {
		alleles := make([]string, len(l.Alleles))
		for i, a := range l.Alleles {
			alleles[i] = string(a)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", l.Key, l.Name, l.Dominance, strings.Join(alleles, ","))
	}
	return tw.Flush()
}
