// Package config provides configuration loading and access for the
// genetics engine, the studbook CLI and the herd simulation.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all configuration parameters.
type Config struct {
	Inheritance InheritanceConfig `yaml:"inheritance"`
	Analysis    AnalysisConfig    `yaml:"analysis"`
	Herd        HerdConfig        `yaml:"herd"`
	Telemetry   TelemetryConfig   `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// InheritanceConfig holds offspring generation parameters.
type InheritanceConfig struct {
	MutationRate float64 `yaml:"mutation_rate" env:"STUDBOOK_MUTATION_RATE"` // Per-allele probability
}

// AnalysisConfig holds breeding compatibility parameters.
type AnalysisConfig struct {
	ColorTrials          int     `yaml:"color_trials" env:"STUDBOOK_COLOR_TRIALS"` // Monte-Carlo offspring per report
	PredictionAge        float64 `yaml:"prediction_age"`                           // Age used when describing predicted coats
	StatBand             float64 `yaml:"stat_band"`                                // +/- range around predicted stats
	HybridVigorFactor    float64 `yaml:"hybrid_vigor_factor"`                      // Bonus = floor(diversity * this)
	InbreedingFactor     float64 `yaml:"inbreeding_factor"`                        // Penalty = floor(coefficient * this)
	InbreedingThreshold  float64 `yaml:"inbreeding_threshold"`                     // Penalty applies above this coefficient
	DirectLinkWeight     float64 `yaml:"direct_link_weight"`                       // Coefficient for a parent/offspring pairing
	SharedAncestorWeight float64 `yaml:"shared_ancestor_weight"`                   // Coefficient per shared known ancestor

	Epigenetic      EpigeneticConfig      `yaml:"epigenetic"`
	BreedingValue   BreedingValueConfig   `yaml:"breeding_value"`
	Recommendations RecommendationsConfig `yaml:"recommendations"`
}

// EpigeneticConfig holds the mother's condition thresholds and bonuses.
type EpigeneticConfig struct {
	HealthThreshold   float64 `yaml:"health_threshold"`
	HealthBonus       float64 `yaml:"health_bonus"`
	MoodThreshold     float64 `yaml:"mood_threshold"`
	MoodBonus         float64 `yaml:"mood_bonus"`
	TrainingThreshold float64 `yaml:"training_threshold"`
	TrainingBonus     float64 `yaml:"training_bonus"`
	Cap               float64 `yaml:"cap"`
}

// BreedingValueConfig holds the breeding value formula weights.
type BreedingValueConfig struct {
	Base             float64 `yaml:"base"`
	DiversityWeight  float64 `yaml:"diversity_weight"`
	RiskWeight       float64 `yaml:"risk_weight"`
	InbreedingWeight float64 `yaml:"inbreeding_weight"`
}

// RecommendationsConfig holds recommendation thresholds.
type RecommendationsConfig struct {
	HighRisk      float64 `yaml:"high_risk"`      // Strong warning above this risk score
	ModerateRisk  float64 `yaml:"moderate_risk"`  // Genetic testing from this score up to HighRisk
	LowDiversity  float64 `yaml:"low_diversity"`  // Inbreeding depression warning below this
	HighDiversity float64 `yaml:"high_diversity"` // Praise above this
}

// HerdConfig holds herd simulation parameters.
type HerdConfig struct {
	Species            string  `yaml:"species" env:"STUDBOOK_SPECIES"`
	Founders           int     `yaml:"founders"`
	Generations        int     `yaml:"generations" env:"STUDBOOK_GENERATIONS"`
	PairsPerGeneration int     `yaml:"pairs_per_generation"`
	CandidatesPerDam   int     `yaml:"candidates_per_dam"` // Sires scored per dam each generation
	MaturityAge        float64 `yaml:"maturity_age"`
	MaxAge             float64 `yaml:"max_age"`
	PedigreeDepth      int     `yaml:"pedigree_depth"` // Generations of ancestors kept per animal
	StatNoise          float64 `yaml:"stat_noise"`     // Uniform +/- noise on newborn stats
	MinBreedingValue   float64 `yaml:"min_breeding_value"`
}

// TelemetryConfig holds output parameters.
type TelemetryConfig struct {
	OutputDir string `yaml:"output_dir" env:"STUDBOOK_OUTPUT_DIR"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	TrialWeight float64 // Probability mass of one Monte-Carlo trial
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Defaults returns a fresh copy of the embedded defaults, without
// environment overrides.
func Defaults() *Config {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		panic(fmt.Sprintf("config: embedded defaults are invalid: %v", err))
	}
	cfg.computeDerived()
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults,
// then applies STUDBOOK_* environment overrides.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	// Start with embedded defaults
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	// Load user config if provided
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	// Compute derived values
	cfg.computeDerived()

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Inheritance.MutationRate < 0 || c.Inheritance.MutationRate > 1 {
		return fmt.Errorf("inheritance.mutation_rate %v outside [0,1]", c.Inheritance.MutationRate)
	}
	if c.Analysis.ColorTrials <= 0 {
		return fmt.Errorf("analysis.color_trials must be positive, got %d", c.Analysis.ColorTrials)
	}
	if c.Herd.Species != "horse" && c.Herd.Species != "dog" {
		return fmt.Errorf("herd.species must be horse or dog, got %q", c.Herd.Species)
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	if c.Analysis.ColorTrials > 0 {
		c.Derived.TrialWeight = 1 / float64(c.Analysis.ColorTrials)
	}
	if c.Herd.CandidatesPerDam <= 0 {
		c.Herd.CandidatesPerDam = 1
	}
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
