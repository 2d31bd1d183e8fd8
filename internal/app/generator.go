package app

import (
	"fmt"
	"math/rand/v2"

	"github.com/emmett/conlang/internal/config"
	"github.com/emmett/conlang/internal/grammar"
	"github.com/emmett/conlang/internal/output"
	"github.com/emmett/conlang/internal/phonology"
	"github.com/emmett/conlang/internal/vocabulary"
)

// GeneratorConfig selects what a one-shot CLI run produces. Sections are
// written in the order inventory, syllables, words, validation, grammar
// and vocabulary.
type GeneratorConfig struct {
	Words        int
	Syllables    int
	MinSyllables int
	Validate     []string
	Inventory    bool
	Grammar      bool
	Vocabulary   int
	Inflect      bool

	// Seed makes the run reproducible when HasSeed is set
	Seed    uint64
	HasSeed bool
}

// Generator builds a language from configuration and writes the requested
// sections through a formatter
type Generator struct {
	cfg    *config.Config
	gen    GeneratorConfig
	format output.Formatter
}

// NewGenerator creates a new one-shot generator
func NewGenerator(cfg *config.Config, gen GeneratorConfig, format output.Formatter) *Generator {
	return &Generator{cfg: cfg, gen: gen, format: format}
}

// Run generates and writes every selected section
func (g *Generator) Run() error {
	var opts []phonology.Option
	var chooser grammar.Chooser = globalRand{}
	if g.gen.HasSeed {
		opts = append(opts, phonology.WithSeed(g.gen.Seed))
		// grammar draws from its own stream so adding -grammar does not
		// change the words of a seeded run
		chooser = rand.New(rand.NewPCG(g.gen.Seed, g.gen.Seed+1))
	}

	synth, err := phonology.New(g.cfg.PhonologyConfig(), opts...)
	if err != nil {
		return err
	}

	if g.gen.Inventory {
		if err := g.format.WriteInventory(synth.Inventory(), synth.Templates()); err != nil {
			return fmt.Errorf("failed to write inventory: %w", err)
		}
	}

	if g.gen.Syllables > 0 {
		syllables := make([]string, g.gen.Syllables)
		for i := range syllables {
			syllables[i] = synth.GenerateSyllable()
		}
		if err := g.format.WriteWords(syllables); err != nil {
			return fmt.Errorf("failed to write syllables: %w", err)
		}
	}

	if g.gen.Words > 0 {
		minSyllables := g.gen.MinSyllables
		if minSyllables == 0 {
			minSyllables = 1
		}
		words := make([]string, g.gen.Words)
		for i := range words {
			if words[i], err = synth.GenerateWord(minSyllables); err != nil {
				return err
			}
		}
		if err := g.format.WriteWords(words); err != nil {
			return fmt.Errorf("failed to write words: %w", err)
		}
	}

	for _, word := range g.gen.Validate {
		if err := g.format.WriteValidation(word, synth.IsValidWord(word)); err != nil {
			return fmt.Errorf("failed to write validation: %w", err)
		}
	}

	var gram *grammar.Grammar
	if g.gen.Grammar {
		gram = grammar.NewGenerator(g.cfg.GrammarConfig(), chooser).Generate()
		if err := g.format.WriteGrammar(gram); err != nil {
			return fmt.Errorf("failed to write grammar: %w", err)
		}
	}

	if g.gen.Vocabulary > 0 {
		if g.gen.Vocabulary > MaxVocabularySize {
			return &phonology.InvalidParameterError{
				Param:  "vocabulary",
				Value:  g.gen.Vocabulary,
				Reason: fmt.Sprintf("must be at most %d", MaxVocabularySize),
			}
		}
		vg := vocabulary.NewGenerator(g.cfg.VocabularyConfig(), synth)
		vocab, err := vg.Generate(g.gen.Vocabulary)
		if err != nil {
			return err
		}
		if g.gen.Inflect {
			var table grammar.Morphology
			if gram != nil {
				table = gram.Morphology
			}
			vocab = vg.Expand(vocab, table)
		}
		if err := g.format.WriteVocabulary(vocab); err != nil {
			return fmt.Errorf("failed to write vocabulary: %w", err)
		}
	}

	return nil
}
