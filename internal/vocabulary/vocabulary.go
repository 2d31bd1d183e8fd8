package vocabulary

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/emmett/conlang/internal/grammar"
)

// ErrFormSpaceExhausted is returned when no new unique form could be found
// within the retry budget
var ErrFormSpaceExhausted = errors.New("could not generate a unique word form")

// maxFormAttempts bounds the retries for a single unique form
const maxFormAttempts = 1000

// WordSource produces surface forms
type WordSource interface {
	GenerateWord(minSyllables int) (string, error)
	GenerateSyllable() string
}

// Entry is one word of the generated vocabulary
type Entry struct {
	Form       string            `json:"form"`
	Meaning    string            `json:"meaning"`
	POS        string            `json:"pos"`
	Morphology map[string]string `json:"morphology,omitempty"`
}

func (e Entry) String() string {
	return fmt.Sprintf("%s (%s): %s", e.Form, e.POS, e.Meaning)
}

// Vocabulary groups entries by part of speech
type Vocabulary map[string][]Entry

// Size returns the total number of entries
func (v Vocabulary) Size() int {
	n := 0
	for _, entries := range v {
		n += len(entries)
	}
	return n
}

// Validate checks that the core parts of speech are present and every entry
// is complete
func (v Vocabulary) Validate() error {
	if len(v) == 0 {
		return errors.New("vocabulary is empty")
	}
	for _, pos := range []string{grammar.Noun, grammar.Verb, grammar.Adjective} {
		if _, ok := v[pos]; !ok {
			return fmt.Errorf("vocabulary has no %s entries", pos)
		}
	}
	for pos, entries := range v {
		if len(entries) == 0 {
			return fmt.Errorf("vocabulary has an empty %s list", pos)
		}
		for i, e := range entries {
			if e.Form == "" || e.Meaning == "" {
				return fmt.Errorf("%s entry %d is missing its form or meaning", pos, i)
			}
		}
	}
	return nil
}

// Config holds vocabulary generation settings
type Config struct {
	// Size is the nominal number of base entries
	Size int
	// Distribution maps a part of speech to its share of Size
	Distribution map[string]float64
}

// DefaultDistribution returns the default part-of-speech shares
func DefaultDistribution() map[string]float64 {
	return map[string]float64{
		grammar.Noun:        0.4,
		grammar.Verb:        0.3,
		grammar.Adjective:   0.15,
		grammar.Adverb:      0.05,
		grammar.Determiner:  0.05,
		grammar.Preposition: 0.05,
	}
}

// DefaultConfig returns the default vocabulary settings
func DefaultConfig() Config {
	return Config{
		Size:         1000,
		Distribution: DefaultDistribution(),
	}
}

// DefaultInflections is the table Expand applies to base entries
func DefaultInflections() grammar.Morphology {
	return grammar.Morphology{
		grammar.Noun: {
			"number": {"singular", "plural"},
			"case":   {"nominative", "accusative"},
		},
		grammar.Verb: {
			"tense": {"present", "past", "future"},
		},
	}
}

// Generator builds vocabularies from a word source
type Generator struct {
	config Config
	words  WordSource
}

// NewGenerator creates a vocabulary generator
func NewGenerator(config Config, words WordSource) *Generator {
	if config.Distribution == nil {
		config.Distribution = DefaultDistribution()
	}
	return &Generator{config: config, words: words}
}

// partsOfSpeech returns the distribution keys, canonical ones first
func (g *Generator) partsOfSpeech() []string {
	out := make([]string, 0, len(g.config.Distribution))
	known := make(map[string]bool, len(grammar.PartsOfSpeech))
	for _, pos := range grammar.PartsOfSpeech {
		known[pos] = true
		if _, ok := g.config.Distribution[pos]; ok {
			out = append(out, pos)
		}
	}
	var extra []string
	for pos := range g.config.Distribution {
		if !known[pos] {
			extra = append(extra, pos)
		}
	}
	sort.Strings(extra)
	return append(out, extra...)
}

// Counts returns how many base entries each part of speech receives for size
func (g *Generator) Counts(size int) map[string]int {
	counts := make(map[string]int, len(g.config.Distribution))
	for pos, share := range g.config.Distribution {
		// The epsilon keeps products like 1000*0.15 from truncating to 149.
		counts[pos] = int(math.Floor(float64(size)*share + 1e-9))
	}
	return counts
}

// Generate builds a base vocabulary of roughly size entries with forms unique
// across the whole vocabulary. A non-positive size uses the configured size.
func (g *Generator) Generate(size int) (Vocabulary, error) {
	if size <= 0 {
		size = g.config.Size
	}

	counts := g.Counts(size)
	vocab := make(Vocabulary)
	used := make(map[string]bool, size)

	for _, pos := range g.partsOfSpeech() {
		n := counts[pos]
		entries := make([]Entry, 0, n)
		for i := 0; i < n; i++ {
			form, err := g.uniqueForm(used)
			if err != nil {
				return nil, fmt.Errorf("failed to generate %s %d: %w", pos, i, err)
			}
			entries = append(entries, Entry{
				Form:    form,
				Meaning: fmt.Sprintf("%s_meaning_%d", strings.ToLower(pos), i),
				POS:     pos,
			})
		}
		vocab[pos] = entries
	}

	return vocab, nil
}

func (g *Generator) uniqueForm(used map[string]bool) (string, error) {
	for attempt := 0; attempt < maxFormAttempts; attempt++ {
		form, err := g.words.GenerateWord(1)
		if err != nil {
			return "", err
		}
		if !used[form] {
			used[form] = true
			return form, nil
		}
	}
	return "", ErrFormSpaceExhausted
}

// ApplyMorphology returns one variant of entry per value of every feature
// the table defines for its part of speech. Each variant appends a fresh
// syllable to the base form. Entries whose part of speech has no features
// are returned unchanged.
func (g *Generator) ApplyMorphology(entry Entry, table grammar.Morphology) []Entry {
	features, ok := table[entry.POS]
	if !ok || len(features) == 0 {
		return []Entry{entry}
	}

	names := make([]string, 0, len(features))
	for name := range features {
		names = append(names, name)
	}
	sort.Strings(names)

	var variants []Entry
	for _, name := range names {
		for _, value := range features[name] {
			variants = append(variants, Entry{
				Form:       entry.Form + g.words.GenerateSyllable(),
				Meaning:    entry.Meaning,
				POS:        entry.POS,
				Morphology: map[string]string{name: value},
			})
		}
	}
	return variants
}

// Expand replaces every entry with its inflected variants under table.
// A nil table uses DefaultInflections.
func (g *Generator) Expand(vocab Vocabulary, table grammar.Morphology) Vocabulary {
	if table == nil {
		table = DefaultInflections()
	}
	out := make(Vocabulary, len(vocab))
	for pos, entries := range vocab {
		expanded := make([]Entry, 0, len(entries))
		for _, e := range entries {
			expanded = append(expanded, g.ApplyMorphology(e, table)...)
		}
		out[pos] = expanded
	}
	return out
}
