package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/emmett/conlang/internal/grammar"
	"github.com/emmett/conlang/internal/phonology"
	"github.com/emmett/conlang/internal/vocabulary"
)

func TestNewFormatter(t *testing.T) {
	var buf bytes.Buffer
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"json", false},
		{"text", false},
		{"", false},
		{"yaml", true},
	}
	for _, tt := range tests {
		_, err := NewFormatter(tt.format, &buf)
		if (err != nil) != tt.wantErr {
			t.Errorf("NewFormatter(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
}

func TestJSONFormatterWords(t *testing.T) {
	var buf bytes.Buffer
	f := NewJSONFormatter(&buf)
	if err := f.WriteWords([]string{"paŋu", "θe"}); err != nil {
		t.Fatalf("WriteWords error: %v", err)
	}

	var got struct {
		Words []string `json:"words"`
	}
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if diff := cmp.Diff([]string{"paŋu", "θe"}, got.Words); diff != "" {
		t.Errorf("words mismatch (-want +got):\n%s", diff)
	}
}

func TestJSONFormatterInventory(t *testing.T) {
	var buf bytes.Buffer
	inv := phonology.Inventory{
		Consonants: []phonology.Phoneme{phonology.NewPhoneme('p', phonology.Consonant)},
		Vowels:     []phonology.Phoneme{phonology.NewPhoneme('a', phonology.Vowel)},
	}
	if err := NewJSONFormatter(&buf).WriteInventory(inv, []string{"CV"}); err != nil {
		t.Fatalf("WriteInventory error: %v", err)
	}
	out := buf.String()
	for _, want := range []string{`"symbol": "p"`, `"symbol": "a"`, `"syllable_structure"`} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %s:\n%s", want, out)
		}
	}
}

func TestPlainTextFormatter(t *testing.T) {
	var buf bytes.Buffer
	f := NewPlainTextFormatter(&buf)

	if err := f.WriteWords([]string{"ta", "ki"}); err != nil {
		t.Fatal(err)
	}
	if err := f.WriteValidation("ta", true); err != nil {
		t.Fatal(err)
	}
	if err := f.WriteValidation("x1", false); err != nil {
		t.Fatal(err)
	}

	want := "ta\nki\n\"ta\" is valid\n\"x1\" is invalid\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestPlainTextInventory(t *testing.T) {
	var buf bytes.Buffer
	inv := phonology.Inventory{
		Consonants: []phonology.Phoneme{phonology.NewPhoneme('b', phonology.Consonant)},
		Vowels:     []phonology.Phoneme{phonology.NewPhoneme('u', phonology.Vowel)},
	}
	if err := NewPlainTextFormatter(&buf).WriteInventory(inv, []string{"CV", "V"}); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"Consonants (1):", "b  voiced", "Vowels (1):", "u  ", "rounded", "Syllable structure: CV V"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestPlainTextGrammarAndVocabulary(t *testing.T) {
	var buf bytes.Buffer
	f := NewPlainTextFormatter(&buf)

	g := &grammar.Grammar{
		WordOrder:       []string{"S", "O", "V"},
		PhraseStructure: []grammar.Rule{{Name: "S", Pattern: []string{"NP", "VP"}, Probability: 1}},
		Morphology:      grammar.Morphology{grammar.Noun: {"number": {"singular", "plural"}}},
	}
	if err := f.WriteGrammar(g); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"Word order: S O V", "S -> NP VP", "NOUN number: singular, plural"} {
		if !strings.Contains(out, want) {
			t.Errorf("grammar output missing %q:\n%s", want, out)
		}
	}

	buf.Reset()
	v := vocabulary.Vocabulary{
		grammar.Verb: {{Form: "ka", Meaning: "verb_0", POS: grammar.Verb}},
		grammar.Noun: {{Form: "ta", Meaning: "noun_0", POS: grammar.Noun}},
	}
	if err := f.WriteVocabulary(v); err != nil {
		t.Fatal(err)
	}
	want := "NOUN (1):\n  ta (NOUN): noun_0\nVERB (1):\n  ka (VERB): verb_0\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("vocabulary output mismatch (-want +got):\n%s", diff)
	}
}

func TestConsoleOutput(t *testing.T) {
	var out, errs bytes.Buffer
	c := NewConsoleOutput(ConsoleConfig{Writer: &out, ErrorWriter: &errs})
	c.Info("hidden %d", 1)
	c.Error("failed: %s", "boom")
	if out.Len() != 0 {
		t.Errorf("Info wrote without verbose: %q", out.String())
	}
	if errs.String() != "[ERROR] failed: boom\n" {
		t.Errorf("Error = %q", errs.String())
	}

	c = NewConsoleOutput(ConsoleConfig{Verbose: true, Writer: &out})
	c.Info("seed %d", 7)
	if out.String() != "[INFO] seed 7\n" {
		t.Errorf("Info = %q", out.String())
	}
}
