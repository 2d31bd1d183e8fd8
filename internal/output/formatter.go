package output

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/emmett/conlang/internal/grammar"
	"github.com/emmett/conlang/internal/phonology"
	"github.com/emmett/conlang/internal/vocabulary"
)

// Formatter is the interface for CLI output formatters
type Formatter interface {
	// WriteWords writes generated words or syllables
	WriteWords(words []string) error

	// WriteValidation writes the result of checking a word
	WriteValidation(word string, valid bool) error

	// WriteInventory writes the phoneme inventory with features
	WriteInventory(inv phonology.Inventory, templates []string) error

	// WriteGrammar writes a generated grammar
	WriteGrammar(g *grammar.Grammar) error

	// WriteVocabulary writes a generated vocabulary
	WriteVocabulary(v vocabulary.Vocabulary) error
}

// NewFormatter returns the formatter for format ("json" or "text")
func NewFormatter(format string, w io.Writer) (Formatter, error) {
	switch format {
	case "json":
		return NewJSONFormatter(w), nil
	case "text", "":
		return NewPlainTextFormatter(w), nil
	default:
		return nil, fmt.Errorf("unknown output format %q (want json or text)", format)
	}
}

// JSONFormatter writes one indented JSON document per call
type JSONFormatter struct {
	encoder *json.Encoder
}

// NewJSONFormatter creates a new JSON formatter
func NewJSONFormatter(writer io.Writer) *JSONFormatter {
	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	return &JSONFormatter{encoder: encoder}
}

func (j *JSONFormatter) WriteWords(words []string) error {
	return j.encoder.Encode(struct {
		Words []string `json:"words"`
	}{words})
}

func (j *JSONFormatter) WriteValidation(word string, valid bool) error {
	return j.encoder.Encode(struct {
		Word  string `json:"word"`
		Valid bool   `json:"valid"`
	}{word, valid})
}

func (j *JSONFormatter) WriteInventory(inv phonology.Inventory, templates []string) error {
	return j.encoder.Encode(struct {
		Inventory         phonology.Inventory `json:"inventory"`
		SyllableStructure []string            `json:"syllable_structure"`
	}{inv, templates})
}

func (j *JSONFormatter) WriteGrammar(g *grammar.Grammar) error {
	return j.encoder.Encode(g)
}

func (j *JSONFormatter) WriteVocabulary(v vocabulary.Vocabulary) error {
	return j.encoder.Encode(v)
}

// PlainTextFormatter writes human-readable lines
type PlainTextFormatter struct {
	writer io.Writer
}

// NewPlainTextFormatter creates a new plain text formatter
func NewPlainTextFormatter(writer io.Writer) *PlainTextFormatter {
	return &PlainTextFormatter{writer: writer}
}

func (p *PlainTextFormatter) WriteWords(words []string) error {
	for _, w := range words {
		if _, err := fmt.Fprintln(p.writer, w); err != nil {
			return err
		}
	}
	return nil
}

func (p *PlainTextFormatter) WriteValidation(word string, valid bool) error {
	verdict := "valid"
	if !valid {
		verdict = "invalid"
	}
	_, err := fmt.Fprintf(p.writer, "%q is %s\n", word, verdict)
	return err
}

func (p *PlainTextFormatter) WriteInventory(inv phonology.Inventory, templates []string) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Consonants (%d):\n", len(inv.Consonants))
	for _, c := range inv.Consonants {
		fmt.Fprintf(&b, "  %s  %s\n", c, describe(c.Features))
	}
	fmt.Fprintf(&b, "Vowels (%d):\n", len(inv.Vowels))
	for _, v := range inv.Vowels {
		fmt.Fprintf(&b, "  %s  %s\n", v, describe(v.Features))
	}
	fmt.Fprintf(&b, "Syllable structure: %s\n", strings.Join(templates, " "))

	_, err := io.WriteString(p.writer, b.String())
	return err
}

func (p *PlainTextFormatter) WriteGrammar(g *grammar.Grammar) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Word order: %s\n", strings.Join(g.WordOrder, " "))
	if g.Alignment != "" {
		fmt.Fprintf(&b, "Alignment: %s\n", g.Alignment)
	}
	if g.MorphologyType != "" {
		fmt.Fprintf(&b, "Morphology type: %s\n", g.MorphologyType)
	}
	b.WriteString("Phrase structure:\n")
	for _, rule := range g.PhraseStructure {
		fmt.Fprintf(&b, "  %s\n", rule)
	}
	b.WriteString("Morphology:\n")
	for _, pos := range sortedKeys(g.Morphology) {
		features := g.Morphology[pos]
		for _, name := range sortedKeys(features) {
			fmt.Fprintf(&b, "  %s %s: %s\n", pos, name, strings.Join(features[name], ", "))
		}
	}

	_, err := io.WriteString(p.writer, b.String())
	return err
}

func (p *PlainTextFormatter) WriteVocabulary(v vocabulary.Vocabulary) error {
	var b strings.Builder
	for _, pos := range sortedKeys(v) {
		fmt.Fprintf(&b, "%s (%d):\n", pos, len(v[pos]))
		for _, e := range v[pos] {
			fmt.Fprintf(&b, "  %s\n", e)
		}
	}
	_, err := io.WriteString(p.writer, b.String())
	return err
}

func describe(f phonology.Features) string {
	switch f.Class {
	case phonology.Consonant:
		voicing := "voiceless"
		if f.Voiced {
			voicing = "voiced"
		}
		return fmt.Sprintf("%s %s %s", voicing, f.Place, f.Manner)
	case phonology.Vowel:
		rounding := "unrounded"
		if f.Rounded {
			rounding = "rounded"
		}
		return fmt.Sprintf("%s %s %s", f.Height, f.Backness, rounding)
	}
	return string(f.Class)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
