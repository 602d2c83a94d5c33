// Package main provides the runtest binary, a Wald–Wolfowitz run test for
// checking whether a 0/1 sequence of die outcomes is plausibly random.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"

	"go.uber.org/zap"

	"github.com/cory-johannsen/attackroll/internal/cli"
	"github.com/cory-johannsen/attackroll/internal/config"
	"github.com/cory-johannsen/attackroll/internal/observability"
	"github.com/cory-johannsen/attackroll/internal/render"
	"github.com/cory-johannsen/attackroll/internal/stats"
)

func main() {
	configPath := flag.String("config", "", "path to configuration file (optional)")
	alpha := flag.Float64("significance-level", 0.05, "significance level for the hypothesis check")
	noColor := flag.Bool("no-color", false, "disable ANSI colors")
	args, err := cli.ParseInterspersed(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("parsing flags: %v", err)
	}

	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "usage: runtest [-significance-level 0.05] VALUE...")
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}
	alphaSet := false
	flag.Visit(func(f *flag.Flag) { alphaSet = alphaSet || f.Name == "significance-level" })
	cfg, err = applyFlags(cfg, *alpha, alphaSet, *noColor)
	if err != nil {
		log.Fatalf("invalid settings: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()
	logger, _ = observability.WithRunID(logger)

	values := make([]int, 0, len(args))
	for _, arg := range args {
		v, err := strconv.Atoi(arg)
		if err != nil {
			logger.Fatal("parsing value", zap.String("value", arg), zap.Error(err))
		}
		values = append(values, v)
	}

	res, err := stats.RunsTest(values, cfg.RunTest.SignificanceLevel)
	if err != nil {
		logger.Fatal("running run test", zap.Error(err))
	}
	logger.Info("run test complete",
		zap.Int("values", len(values)),
		zap.Float64("z", res.Z),
		zap.Float64("p_value", res.PValue),
		zap.Bool("random", res.Random),
	)
	fmt.Fprint(os.Stdout, render.New(cfg.Simulation.Color).RunsResult(res))
}

// applyFlags merges explicit command-line settings into cfg and validates the
// result.
//
// Postcondition: Returns a valid Config or a non-nil error.
func applyFlags(cfg config.Config, alpha float64, alphaSet, noColor bool) (config.Config, error) {
	if alphaSet {
		cfg.RunTest.SignificanceLevel = alpha
	}
	if noColor {
		cfg.Simulation.Color = false
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}
