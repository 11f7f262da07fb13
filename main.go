package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/pthm-cable/studbook/config"
	"github.com/pthm-cable/studbook/herd"
	"github.com/pthm-cable/studbook/telemetry"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs, config and snapshots (empty = use config)")
	seed := flag.Uint64("seed", 0, "RNG seed (0 = time-based)")
	generations := flag.Int("generations", 0, "Generations to run (0 = use config)")
	snapshot := flag.Bool("snapshot", false, "Save a studbook snapshot of the final herd")
	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = uint64(time.Now().UnixNano())
	}
	gens := cfg.Herd.Generations
	if *generations > 0 {
		gens = *generations
	}
	dir := cfg.Telemetry.OutputDir
	if *outputDir != "" {
		dir = *outputDir
	}

	out, err := telemetry.NewOutputManager(dir)
	if err != nil {
		slog.Error("failed to create output manager", "error", err)
		os.Exit(1)
	}
	defer out.Close()
	if err := out.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config", "error", err)
	}

	h, err := herd.New(cfg, rngSeed, out)
	if err != nil {
		slog.Error("failed to create herd", "error", err)
		os.Exit(1)
	}

	slog.Info("starting herd simulation",
		"seed", rngSeed,
		"species", h.Species(),
		"founders", h.Population(),
		"generations", gens,
		"output_dir", out.Dir(),
	)

	start := time.Now()
	if err := h.Run(gens); err != nil {
		slog.Error("simulation failed", "error", err)
		out.Close()
		os.Exit(1)
	}

	if *snapshot {
		path, err := out.WriteSnapshot(h.Snapshot(nil))
		if err != nil {
			slog.Error("failed to save snapshot", "error", err)
		} else if path != "" {
			slog.Info("snapshot saved", "path", path)
		}
	}

	slog.Info("simulation complete",
		"generations", h.Generation(),
		"population", h.Population(),
		"elapsed", time.Since(start).Round(time.Millisecond).String(),
	)
}
