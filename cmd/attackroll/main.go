// Package main provides the attackroll binary, which resolves attack formulas
// such as "1d8+2d6+4" and optionally plots their damage distribution.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/cory-johannsen/attackroll/internal/cli"
	"github.com/cory-johannsen/attackroll/internal/config"
	"github.com/cory-johannsen/attackroll/internal/game/attack"
	"github.com/cory-johannsen/attackroll/internal/game/dice"
	"github.com/cory-johannsen/attackroll/internal/game/trial"
	"github.com/cory-johannsen/attackroll/internal/observability"
	"github.com/cory-johannsen/attackroll/internal/render"
)

const usage = `usage: attackroll [flags] ATTACK...

ATTACK is a formula such as "1d8+2d6+4". A trailing A rolls with advantage,
a trailing D with disadvantage: "1d12+6A", "8d8+2d4+2d6+3D".

Flags may appear before or after the attacks; use "--" to stop flag parsing.

`

func main() {
	configPath := flag.String("config", "", "path to configuration file (optional)")
	forceCrit := flag.Bool("force-critical-hit", false, "force every attack roll to a natural 20")
	attackMod := flag.Int("attack-modifier", 0, "attack modifier added to the displayed attack roll")
	showDist := flag.Bool("show-distribution", false, "repeat the attacks and plot the damage distribution")
	throws := flag.Int("throws", 10000, "number of repetitions for the distribution")
	seed := flag.Uint64("seed", 0, "seed for a reproducible run; 0 uses crypto/rand")
	reroll := flag.String("reroll", "", "comma-separated die faces to reroll once, e.g. 1,2")
	presetsPath := flag.String("presets", "", "YAML file of named attack formulas")
	noColor := flag.Bool("no-color", false, "disable ANSI colors")
	chartWidth := flag.Int("chart-width", 60, "width of the longest histogram bar")
	flag.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), usage)
		flag.PrintDefaults()
	}
	tokens, err := cli.ParseInterspersed(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("parsing flags: %v", err)
	}

	if len(tokens) == 0 {
		fmt.Fprintln(os.Stderr, "error: you must provide at least one attack to make")
		flag.Usage()
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	// Flags given on the command line win over configuration.
	set := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })
	if set["attack-modifier"] {
		cfg.Simulation.AttackModifier = *attackMod
	}
	if set["throws"] {
		cfg.Simulation.Throws = *throws
	}
	if set["seed"] {
		cfg.Simulation.Seed = *seed
	}
	if set["presets"] {
		cfg.Simulation.PresetsFile = *presetsPath
	}
	if set["chart-width"] {
		cfg.Simulation.ChartWidth = *chartWidth
	}
	if *noColor {
		cfg.Simulation.Color = false
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid settings: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()
	logger, _ = observability.WithRunID(logger)

	if cfg.Simulation.PresetsFile != "" {
		presets, err := attack.LoadPresets(cfg.Simulation.PresetsFile)
		if err != nil {
			logger.Fatal("loading presets", zap.Error(err))
		}
		tokens = presets.Expand(tokens)
		logger.Info("presets loaded",
			zap.String("path", cfg.Simulation.PresetsFile),
			zap.Int("count", len(presets.All())),
		)
	}

	rerollValues, err := parseReroll(*reroll)
	if err != nil {
		logger.Fatal("parsing reroll values", zap.String("reroll", *reroll), zap.Error(err))
	}

	// Every formula is validated before the first draw.
	attacks, err := attack.ParseAttacks(tokens)
	if err != nil {
		logger.Fatal("parsing attacks", zap.Strings("attacks", tokens), zap.Error(err))
	}
	if len(rerollValues) > 0 {
		for i := range attacks {
			attacks[i] = attacks[i].WithReroll(rerollValues)
		}
	}

	var src dice.Source
	if cfg.Simulation.Seed != 0 {
		src = dice.NewSeededSource(cfg.Simulation.Seed)
	} else {
		src = dice.NewCryptoSource()
	}
	resolver := attack.NewResolver(src, logger)
	opts := attack.Options{
		AttackModifier: cfg.Simulation.AttackModifier,
		ForceCritical:  *forceCrit,
	}

	logger.Info("resolving attacks",
		zap.Int("attacks", len(attacks)),
		zap.Uint64("seed", cfg.Simulation.Seed),
		zap.Bool("force_critical", opts.ForceCritical),
	)

	results := make([]attack.Resolution, 0, len(attacks))
	for _, f := range attacks {
		results = append(results, resolver.Resolve(f, opts))
	}
	r := render.New(cfg.Simulation.Color)
	fmt.Fprint(os.Stdout, r.Resolutions(results))

	if !*showDist {
		return
	}

	dist, err := trial.Run(attacks, resolver, opts, cfg.Simulation.Throws)
	if err != nil {
		logger.Fatal("running trials", zap.Error(err))
	}
	fmt.Fprint(os.Stdout, "\n"+r.Distribution(dist, cfg.Simulation.ChartWidth))
}

// parseReroll parses a comma-separated list of die faces.
func parseReroll(s string) ([]int, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	var out []int
	for _, part := range strings.Split(s, ",") {
		v, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("invalid reroll value %q: %w", part, err)
		}
		out = append(out, v)
	}
	return out, nil
}
