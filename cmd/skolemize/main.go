// Command skolemize synthesizes Skolem functions for a QDIMACS 2QBF
// specification given on the command line.
//
// Usage:
//
//	skolemize [flags] spec_file
//
// Flags cover the run's samples/iterations/topo-sort surface, plus an
// optional --config file so a run's parameters can be versioned instead
// of retyped.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/skolemize/internal/satstub"
	"github.com/katalvlaran/skolemize/internal/xlog"
	"github.com/katalvlaran/skolemize/qdimacs"
	"github.com/katalvlaran/skolemize/sampler"
	"github.com/katalvlaran/skolemize/synth"
	"github.com/katalvlaran/skolemize/verifier"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

// run is separated from main so tests can drive it without os.Exit.
func run(args []string) int {
	fs := flag.NewFlagSet("skolemize", flag.ContinueOnError)
	samples := fs.Int("samples", 0, "number of samples to generate (default 500, or config file value)")
	iterations := fs.Int("iterations", 0, "repair iteration budget (default 50, or config file value)")
	topoSort := fs.Bool("topo-sort", true, "use the dependency-respecting variable order (disable with -no-topo-sort or -topo-sort=false)")
	noTopoSort := fs.Bool("no-topo-sort", false, "keep existentials in file-declaration order instead of the dependency-respecting order")
	seed := fs.Int64("seed", 0, "learner tie-break seed (default from config or learner.DefaultSeed)")
	maxDepth := fs.Int("max-depth", 0, "learner max tree depth (default from config or learner.DefaultMaxDepth)")
	debug := fs.Bool("debug", false, "enable verbose debug logging")
	configPath := fs.String("config", "", "optional YAML file with RunConfig overrides")

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: skolemize [flags] spec_file")
		return 2
	}
	specPath := fs.Arg(0)

	cfg := synth.DefaultConfig()
	if *configPath != "" {
		loaded, err := loadConfig(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "skolemize: %v\n", err)
			return 1
		}
		cfg = loaded
	}
	applyFlagOverrides(fs, &cfg, *samples, *iterations, *seed, *maxDepth, *topoSort, *debug)
	if *noTopoSort {
		cfg.TopoSort = false
	}

	logger := xlog.Default(cfg.Debug)

	specFile, err := os.Open(specPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "skolemize: %v\n", err)
		return 1
	}
	defer specFile.Close()

	spec, err := qdimacs.Parse(specFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "skolemize: %v\n", err)
		return 1
	}

	collab := func() (sampler.Generator, sampler.Oracle) {
		return satstub.NewGenerator(), satstub.NewOracle(spec.CNF())
	}
	solverFactory := func() verifier.Solver { return satstub.NewGenerator() }

	result, err := synth.Run(spec, collab, solverFactory, cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "skolemize: %v\n", err)
		switch {
		case errors.Is(err, synth.ErrSamplerExhausted):
			return 3
		case errors.Is(err, synth.ErrIterationBudgetExhausted):
			return 4
		default:
			return 1
		}
	}

	fmt.Print(synth.FormatCandidates(result.Order, result.Candidates))
	return 0
}

// loadConfig reads a RunConfig from YAML, starting from DefaultConfig
// so a file only needs to mention the fields it overrides.
func loadConfig(path string) (synth.RunConfig, error) {
	cfg := synth.DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

// applyFlagOverrides layers explicitly-set command-line flags over cfg,
// leaving config-file (or default) values untouched for flags the user
// never passed.
func applyFlagOverrides(fs *flag.FlagSet, cfg *synth.RunConfig, samples, iterations int, seed int64, maxDepth int, topoSort, debug bool) {
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "samples":
			cfg.Samples = samples
		case "iterations":
			cfg.Iterations = iterations
		case "seed":
			cfg.Seed = seed
		case "max-depth":
			cfg.MaxDepth = maxDepth
		case "topo-sort":
			cfg.TopoSort = topoSort
		case "debug":
			cfg.Debug = debug
		}
	})
}

