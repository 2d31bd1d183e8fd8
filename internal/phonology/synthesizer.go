package phonology

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"
)

// Config holds the phonology settings a Synthesizer is built from
type Config struct {
	// Consonants and Vowels list one symbol per character
	Consonants string
	Vowels     string

	// SyllableStructure lists templates over {C, V}, e.g. ["CV", "CVC"]
	SyllableStructure []string

	// MaxSyllables is the upper bound on syllables per generated word
	MaxSyllables int
}

// DefaultConfig returns the default phonology settings
func DefaultConfig() Config {
	return Config{
		Consonants:        "ptkbdgmnŋszʃʒfvθðhrl",
		Vowels:            "ieaouəɪɛæɑɔʊʌ",
		SyllableStructure: []string{"CV", "CVC", "V", "VC"},
		MaxSyllables:      3,
	}
}

// Inventory is the immutable pair of phoneme sets a language draws from
type Inventory struct {
	Consonants []Phoneme `json:"consonants"`
	Vowels     []Phoneme `json:"vowels"`
}

// Option customises a Synthesizer at construction
type Option func(*Synthesizer)

// WithSeed makes the synthesizer's output reproducible
func WithSeed(seed uint64) Option {
	return func(s *Synthesizer) {
		s.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}
}

// WithSource draws randomness from src
func WithSource(src rand.Source) Option {
	return func(s *Synthesizer) {
		s.rng = rand.New(src)
	}
}

// Synthesizer produces syllables and words from a phoneme inventory and a
// set of syllable templates. It is safe for concurrent use.
type Synthesizer struct {
	inventory    Inventory
	templates    []Template
	maxSyllables int
	symbols      map[rune]Phoneme

	mu  sync.Mutex
	rng *rand.Rand
}

// New validates cfg and builds a Synthesizer.
// It returns a *ConfigurationError for any rejected setting.
func New(cfg Config, opts ...Option) (*Synthesizer, error) {
	if cfg.Consonants == "" {
		return nil, &ConfigurationError{Field: "consonants", Reason: "must not be empty"}
	}
	if cfg.Vowels == "" {
		return nil, &ConfigurationError{Field: "vowels", Reason: "must not be empty"}
	}
	if len(cfg.SyllableStructure) == 0 {
		return nil, &ConfigurationError{Field: "syllable_structure", Reason: "must list at least one template"}
	}
	if cfg.MaxSyllables < 1 {
		return nil, &ConfigurationError{Field: "max_syllables", Reason: fmt.Sprintf("must be at least 1, got %d", cfg.MaxSyllables)}
	}

	s := &Synthesizer{
		maxSyllables: cfg.MaxSyllables,
		symbols:      make(map[rune]Phoneme),
		templates:    make([]Template, 0, len(cfg.SyllableStructure)),
	}

	var err error
	if s.inventory.Consonants, err = s.addPhonemes(cfg.Consonants, Consonant); err != nil {
		return nil, err
	}
	if s.inventory.Vowels, err = s.addPhonemes(cfg.Vowels, Vowel); err != nil {
		return nil, err
	}

	for _, raw := range cfg.SyllableStructure {
		t, err := ParseTemplate(raw)
		if err != nil {
			return nil, &ConfigurationError{Field: "syllable_structure", Reason: err.Error()}
		}
		s.templates = append(s.templates, t)
	}

	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	return s, nil
}

// addPhonemes builds the phonemes for one class, dropping repeated symbols.
// The two classes must not share a symbol.
func (s *Synthesizer) addPhonemes(symbols string, class Class) ([]Phoneme, error) {
	phonemes := make([]Phoneme, 0, len(symbols))
	for _, sym := range symbols {
		if prev, seen := s.symbols[sym]; seen {
			if prev.Class() != class {
				return nil, &ConfigurationError{
					Field:  string(class) + "s",
					Reason: fmt.Sprintf("symbol %q is already configured as a %s", sym, prev.Class()),
				}
			}
			continue
		}
		p := NewPhoneme(sym, class)
		s.symbols[sym] = p
		phonemes = append(phonemes, p)
	}
	return phonemes, nil
}

// GenerateSyllable picks a template uniformly at random and fills each slot
// with a uniformly random phoneme of the slot's class
func (s *Synthesizer) GenerateSyllable() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.syllableLocked()
}

func (s *Synthesizer) syllableLocked() string {
	t := s.templates[s.rng.IntN(len(s.templates))]

	var b strings.Builder
	for _, slot := range t {
		var set []Phoneme
		if slot == ConsonantSlot {
			set = s.inventory.Consonants
		} else {
			set = s.inventory.Vowels
		}
		b.WriteRune(set[s.rng.IntN(len(set))].Symbol)
	}
	return b.String()
}

// GenerateWord concatenates a uniformly random number of syllables in
// [minSyllables, MaxSyllables()]
func (s *Synthesizer) GenerateWord(minSyllables int) (string, error) {
	if minSyllables < 1 {
		return "", &InvalidParameterError{Param: "min_syllables", Value: minSyllables, Reason: "must be at least 1"}
	}
	if minSyllables > s.maxSyllables {
		return "", &InvalidParameterError{
			Param:  "min_syllables",
			Value:  minSyllables,
			Reason: fmt.Sprintf("exceeds max_syllables %d", s.maxSyllables),
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	n := minSyllables + s.rng.IntN(s.maxSyllables-minSyllables+1)
	var b strings.Builder
	for i := 0; i < n; i++ {
		b.WriteString(s.syllableLocked())
	}
	return b.String(), nil
}

// IsValidWord reports whether every character of word is a configured
// phoneme. The empty string is valid.
func (s *Synthesizer) IsValidWord(word string) bool {
	for _, r := range word {
		if _, ok := s.symbols[r]; !ok {
			return false
		}
	}
	return true
}

// Phoneme looks up a configured symbol
func (s *Synthesizer) Phoneme(symbol rune) (Phoneme, bool) {
	p, ok := s.symbols[symbol]
	return p, ok
}

// Inventory returns a copy of the phoneme sets
func (s *Synthesizer) Inventory() Inventory {
	return Inventory{
		Consonants: append([]Phoneme(nil), s.inventory.Consonants...),
		Vowels:     append([]Phoneme(nil), s.inventory.Vowels...),
	}
}

// Symbols returns every configured symbol, consonants first
func (s *Synthesizer) Symbols() []string {
	out := make([]string, 0, len(s.inventory.Consonants)+len(s.inventory.Vowels))
	for _, p := range s.inventory.Consonants {
		out = append(out, p.String())
	}
	for _, p := range s.inventory.Vowels {
		out = append(out, p.String())
	}
	return out
}

// Templates returns the configured syllable templates as strings
func (s *Synthesizer) Templates() []string {
	out := make([]string, len(s.templates))
	for i, t := range s.templates {
		out[i] = t.String()
	}
	return out
}

// MaxSyllables returns the configured syllable bound
func (s *Synthesizer) MaxSyllables() int {
	return s.maxSyllables
}
