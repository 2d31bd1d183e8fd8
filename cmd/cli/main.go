package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/emmett/conlang/internal/app"
	"github.com/emmett/conlang/internal/config"
	"github.com/emmett/conlang/internal/output"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
	GitBranch = "unknown"
)

var (
	configFile   = flag.String("config", "", "Path to configuration file (default: ~/.conlangrc or /etc/conlang/config.yaml)")
	words        = flag.Int("words", 10, "Number of words to generate")
	syllables    = flag.Int("syllables", 0, "Number of standalone syllables to generate")
	minSyllables = flag.Int("min-syllables", 1, "Minimum syllables per word")
	maxSyllables = flag.Int("max-syllables", 0, "Maximum syllables per word (default from config)")
	validate     = flag.String("validate", "", "Comma-separated words to check against the inventory")
	inventory    = flag.Bool("inventory", false, "Print the phoneme inventory with features")
	showGrammar  = flag.Bool("grammar", false, "Generate and print a grammar")
	vocabSize    = flag.Int("vocabulary", 0, "Generate a vocabulary of this many base words")
	inflect      = flag.Bool("inflect", false, "Expand the vocabulary with inflected forms")
	seed         = flag.Uint64("seed", 0, "Random seed for reproducible output")
	wordOrder    = flag.String("word-order", "", "Grammar word order: SVO, SOV, VSO or random")
	outputFormat = flag.String("format", "text", "Output format: text, json")
	outputFile   = flag.String("output", "", "Output file (default: stdout)")
	writeConfig  = flag.String("write-config", "", "Write the effective configuration to this path and exit")
	verbose      = flag.Bool("verbose", false, "Print progress information to stderr")
	showVersion  = flag.Bool("version", false, "Show version information")
)

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Printf("Conlang CLI v%s\n", Version)
		fmt.Printf("  Commit:  %s\n", GitCommit)
		fmt.Printf("  Branch:  %s\n", GitBranch)
		fmt.Printf("  Built:   %s\n", BuildTime)
		os.Exit(0)
	}

	console := output.NewConsoleOutput(output.ConsoleConfig{Verbose: *verbose})

	cfg, err := config.LoadWithFallback(*configFile)
	if err != nil {
		console.Error("Failed to load config: %v", err)
		os.Exit(1)
	}
	applyConfigOverrides(cfg)

	if *writeConfig != "" {
		if err := cfg.Save(*writeConfig); err != nil {
			console.Error("%v", err)
			os.Exit(1)
		}
		fmt.Printf("Configuration written to %s\n", *writeConfig)
		return
	}

	if err := run(cfg, console); err != nil {
		console.Error("%v", err)
		os.Exit(1)
	}
}

// applyConfigOverrides copies flags given on the command line into cfg
func applyConfigOverrides(cfg *config.Config) {
	flagsSet := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) {
		flagsSet[f.Name] = true
	})

	if flagsSet["max-syllables"] {
		cfg.Phonology.MaxSyllables = *maxSyllables
	}
	if flagsSet["word-order"] {
		cfg.Grammar.WordOrder = *wordOrder
	}
}

func run(cfg *config.Config, console *output.ConsoleOutput) error {
	flagsSet := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) {
		flagsSet[f.Name] = true
	})

	gen := app.GeneratorConfig{
		Words:        *words,
		Syllables:    *syllables,
		MinSyllables: *minSyllables,
		Inventory:    *inventory,
		Grammar:      *showGrammar,
		Vocabulary:   *vocabSize,
		Inflect:      *inflect,
		Seed:         *seed,
		HasSeed:      flagsSet["seed"],
	}
	if *validate != "" {
		gen.Validate = strings.Split(*validate, ",")
	}
	// Another section on its own replaces the default word list
	if !flagsSet["words"] && (gen.Syllables > 0 || gen.Inventory || gen.Grammar || gen.Vocabulary > 0 || len(gen.Validate) > 0) {
		gen.Words = 0
	}

	var writer io.Writer = os.Stdout
	if *outputFile != "" {
		f, err := os.Create(*outputFile)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		writer = f
		console.Info("Writing output to %s", *outputFile)
	}

	formatter, err := output.NewFormatter(*outputFormat, writer)
	if err != nil {
		return err
	}

	if gen.HasSeed {
		console.Info("Using seed %d", gen.Seed)
	}
	return app.NewGenerator(cfg, gen, formatter).Run()
}
