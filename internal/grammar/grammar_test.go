package grammar

import (
	"math/rand/v2"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type fixedChooser int

func (f fixedChooser) IntN(n int) int { return int(f) % n }

func TestConfiguredWordOrder(t *testing.T) {
	tests := []struct {
		order string
		want  []string
	}{
		{"SVO", []string{"SUBJ", "VERB", "OBJ"}},
		{"sov", []string{"SUBJ", "OBJ", "VERB"}},
		{"VSO", []string{"VERB", "SUBJ", "OBJ"}},
	}
	for _, tt := range tests {
		g := NewGenerator(Config{WordOrder: tt.order}, fixedChooser(0))
		if diff := cmp.Diff(tt.want, g.WordOrder()); diff != "" {
			t.Errorf("%s word order mismatch (-want +got):\n%s", tt.order, diff)
		}
	}
}

func TestRandomWordOrder(t *testing.T) {
	for i, want := range [][]string{
		{"SUBJ", "VERB", "OBJ"},
		{"SUBJ", "OBJ", "VERB"},
		{"VERB", "SUBJ", "OBJ"},
	} {
		g := NewGenerator(Config{WordOrder: "random"}, fixedChooser(i))
		if diff := cmp.Diff(want, g.WordOrder()); diff != "" {
			t.Errorf("choice %d mismatch (-want +got):\n%s", i, diff)
		}
	}

	g := NewGenerator(Config{}, rand.New(rand.NewPCG(1, 2)))
	seen := map[string]bool{}
	for i := 0; i < 300; i++ {
		order := g.WordOrder()
		seen[order[0]+order[1]+order[2]] = true
	}
	if len(seen) != 3 {
		t.Errorf("saw %d distinct orders, want 3", len(seen))
	}
}

func TestGenerate(t *testing.T) {
	g := NewGenerator(DefaultConfig(), fixedChooser(0))
	gr := g.Generate()

	if err := gr.Validate(); err != nil {
		t.Fatalf("Validate error: %v", err)
	}
	if len(gr.PhraseStructure) != 8 {
		t.Fatalf("rules = %d, want 8", len(gr.PhraseStructure))
	}
	last := gr.PhraseStructure[len(gr.PhraseStructure)-1]
	if diff := cmp.Diff(gr.WordOrder, last.Pattern); diff != "" {
		t.Errorf("sentence rule does not follow word order (-want +got):\n%s", diff)
	}
	if gr.Alignment != "nominative-accusative" {
		t.Errorf("alignment = %s", gr.Alignment)
	}
	if got := len(gr.Morphology[Verb]); got != 3 {
		t.Errorf("VERB features = %d, want 3", got)
	}
}

func TestRuleString(t *testing.T) {
	r := Rule{Name: "NP", Pattern: []string{"DET", "NOUN"}, Probability: 1}
	if got := r.String(); got != "NP -> DET NOUN (1.0)" {
		t.Errorf("String() = %q", got)
	}
}

func TestValidate(t *testing.T) {
	good := NewGenerator(DefaultConfig(), fixedChooser(0)).Generate()

	tests := []struct {
		name string
		edit func(*Grammar)
	}{
		{"short word order", func(g *Grammar) { g.WordOrder = g.WordOrder[:2] }},
		{"no rules", func(g *Grammar) { g.PhraseStructure = nil }},
		{"empty rule", func(g *Grammar) { g.PhraseStructure = []Rule{{Name: "NP"}} }},
		{"no morphology", func(g *Grammar) { g.Morphology = nil }},
	}
	for _, tt := range tests {
		g := *good
		tt.edit(&g)
		if err := g.Validate(); err == nil {
			t.Errorf("%s: Validate succeeded, want error", tt.name)
		}
	}

	var nilGrammar *Grammar
	if err := nilGrammar.Validate(); err == nil {
		t.Error("nil grammar validated")
	}
}
