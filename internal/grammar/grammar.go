package grammar

import (
	"errors"
	"fmt"
	"strings"
)

// Parts of speech used across rules and vocabularies
const (
	Noun        = "NOUN"
	Verb        = "VERB"
	Adjective   = "ADJ"
	Adverb      = "ADV"
	Determiner  = "DET"
	Preposition = "PREP"
)

// PartsOfSpeech lists every part of speech in canonical order
var PartsOfSpeech = []string{Noun, Verb, Adjective, Adverb, Determiner, Preposition}

// Rule is a single phrase-structure rewrite, e.g. NP -> DET NOUN
type Rule struct {
	Name        string   `json:"name" yaml:"name"`
	Pattern     []string `json:"pattern" yaml:"pattern"`
	Probability float64  `json:"probability" yaml:"probability"`
}

func (r Rule) String() string {
	return fmt.Sprintf("%s -> %s (%.1f)", r.Name, strings.Join(r.Pattern, " "), r.Probability)
}

// Morphology maps a part of speech to its inflectional features and their values
type Morphology map[string]map[string][]string

// Grammar is the generated rule set of a language
type Grammar struct {
	WordOrder       []string   `json:"word_order"`
	Alignment       string     `json:"alignment,omitempty"`
	MorphologyType  string     `json:"morphology_type,omitempty"`
	PhraseStructure []Rule     `json:"phrase_structure"`
	Morphology      Morphology `json:"morphology"`
}

// Validate checks that every section of the grammar is populated
func (g *Grammar) Validate() error {
	if g == nil {
		return errors.New("grammar is nil")
	}
	if len(g.WordOrder) != 3 {
		return fmt.Errorf("word order must have 3 constituents, got %d", len(g.WordOrder))
	}
	if len(g.PhraseStructure) == 0 {
		return errors.New("phrase structure has no rules")
	}
	for i, r := range g.PhraseStructure {
		if r.Name == "" || len(r.Pattern) == 0 {
			return fmt.Errorf("phrase structure rule %d is incomplete", i)
		}
	}
	if len(g.Morphology) == 0 {
		return errors.New("morphology is empty")
	}
	return nil
}
