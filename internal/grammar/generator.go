package grammar

import "strings"

// Chooser supplies uniform random indexes in [0, n)
type Chooser interface {
	IntN(n int) int
}

// Config selects the typological settings of a grammar
type Config struct {
	// WordOrder is SVO, SOV, VSO or "random"
	WordOrder      string
	Alignment      string
	MorphologyType string
}

// DefaultConfig returns the default grammar settings
func DefaultConfig() Config {
	return Config{
		WordOrder:      "SVO",
		Alignment:      "nominative-accusative",
		MorphologyType: "fusional",
	}
}

var wordOrders = map[string][]string{
	"SVO": {"SUBJ", "VERB", "OBJ"},
	"SOV": {"SUBJ", "OBJ", "VERB"},
	"VSO": {"VERB", "SUBJ", "OBJ"},
}

// wordOrderNames fixes the iteration order for random selection
var wordOrderNames = []string{"SVO", "SOV", "VSO"}

// IsKnownWordOrder reports whether name selects a fixed word order
func IsKnownWordOrder(name string) bool {
	_, ok := wordOrders[strings.ToUpper(name)]
	return ok
}

// Generator builds grammars
type Generator struct {
	config Config
	rng    Chooser
}

// NewGenerator creates a generator drawing randomness from rng
func NewGenerator(config Config, rng Chooser) *Generator {
	return &Generator{config: config, rng: rng}
}

// WordOrder returns the configured basic word order, or a uniformly random
// one when the configuration does not name a known order
func (g *Generator) WordOrder() []string {
	if order, ok := wordOrders[strings.ToUpper(g.config.WordOrder)]; ok {
		return append([]string(nil), order...)
	}
	name := wordOrderNames[g.rng.IntN(len(wordOrderNames))]
	return append([]string(nil), wordOrders[name]...)
}

// PhraseStructure returns noun phrase, verb phrase and sentence rules with
// the sentence rule built from order
func (g *Generator) PhraseStructure(order []string) []Rule {
	return []Rule{
		{Name: "NP", Pattern: []string{Determiner, Noun}, Probability: 1.0},
		{Name: "NP", Pattern: []string{Determiner, Adjective, Noun}, Probability: 1.0},
		{Name: "NP", Pattern: []string{Noun}, Probability: 1.0},
		{Name: "VP", Pattern: []string{Verb}, Probability: 1.0},
		{Name: "VP", Pattern: []string{Verb, "NP"}, Probability: 1.0},
		{Name: "VP", Pattern: []string{Verb, Adverb}, Probability: 1.0},
		{Name: "S", Pattern: []string{"NP", "VP"}, Probability: 1.0},
		{Name: "S", Pattern: append([]string(nil), order...), Probability: 1.0},
	}
}

// DefaultMorphology returns the inflectional categories of each part of speech
func DefaultMorphology() Morphology {
	return Morphology{
		Noun: {
			"number": {"singular", "plural"},
			"case":   {"nominative", "accusative", "genitive"},
		},
		Verb: {
			"tense":  {"present", "past", "future"},
			"aspect": {"simple", "continuous", "perfect"},
			"person": {"1st", "2nd", "3rd"},
		},
		Adjective: {
			"degree": {"positive", "comparative", "superlative"},
		},
	}
}

// Generate builds a complete grammar
func (g *Generator) Generate() *Grammar {
	order := g.WordOrder()
	return &Grammar{
		WordOrder:       order,
		Alignment:       g.config.Alignment,
		MorphologyType:  g.config.MorphologyType,
		PhraseStructure: g.PhraseStructure(order),
		Morphology:      DefaultMorphology(),
	}
}
