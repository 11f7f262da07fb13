// Package main provides the studbook CLI: random founder profiles,
// offspring, coat descriptions and pair compatibility reports over JSON
// animal files.
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/pthm-cable/studbook/breeding"
	"github.com/pthm-cable/studbook/config"
	"github.com/pthm-cable/studbook/genetics"
)

const usage = `usage: studbook <command> [flags]

commands:
  founder   generate random founder profiles
  breed     generate offspring of two animals
  coat      describe an animal's coat and phenotype
  analyze   score the pairing of two animals
  loci      list the loci for a species

Run "studbook <command> -h" for command flags.
`

// command is one CLI subcommand.
type command func(args []string, cfg *config.Config, w io.Writer) error

var commands = map[string]command{
	"founder": runFounder,
	"breed":   runBreed,
	"coat":    runCoat,
	"analyze": runAnalyze,
	"loci":    runLoci,
}

func main() {
	// Diagnostics go to stderr; stdout carries command output.
	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	cmd, ok := commands[os.Args[1]]
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n%s", os.Args[1], usage)
		os.Exit(2)
	}

	cfg, err := config.Load(os.Getenv("STUDBOOK_CONFIG"))
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if err := cmd(os.Args[2:], cfg, os.Stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		slog.Error("command failed", "command", os.Args[1], "error", err)
		os.Exit(1)
	}
}

// animalFile is the on-disk form of an animal: analyzer attributes plus
// the genetic profile.
type animalFile struct {
	breeding.Attributes
	Profile genetics.Profile `json:"profile"`
}

// readAnimal loads and validates an animal file. species, when set,
// overrides the species in the file.
func readAnimal(path string, species genetics.Species) (animalFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return animalFile{}, fmt.Errorf("reading animal: %w", err)
	}
	var a animalFile
	if err := json.Unmarshal(data, &a); err != nil {
		return animalFile{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	if species != "" {
		a.Species = species
	}
	if a.Species == "" {
		return animalFile{}, fmt.Errorf("%s: species not set", path)
	}
	if a.ID == "" {
		a.ID = path
	}
	if err := genetics.Default().Validate(a.Profile, a.Species); err != nil {
		return animalFile{}, fmt.Errorf("%s: %w", path, err)
	}
	return a, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// seedFlag registers -seed; zero means time-based.
func seedFlag(fs *flag.FlagSet) *uint64 {
	return fs.Uint64("seed", 0, "RNG seed (0 = time-based)")
}

func resolveSeed(seed uint64) uint64 {
	if seed == 0 {
		return uint64(time.Now().UnixNano())
	}
	return seed
}
