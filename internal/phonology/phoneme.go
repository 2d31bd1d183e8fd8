package phonology

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Class is the broad category of a phoneme
type Class string

const (
	Consonant Class = "consonant"
	Vowel     Class = "vowel"
)

// Other is the feature value given to symbols outside the lookup tables
const Other = "other"

// Features holds descriptive articulatory metadata for a phoneme.
// Consonants use Voiced, Manner and Place; vowels use Height, Backness
// and Rounded. Features never influence generation.
type Features struct {
	Class Class `json:"type"`

	Voiced bool   `json:"voiced,omitempty"`
	Manner string `json:"manner,omitempty"`
	Place  string `json:"place,omitempty"`

	Height   string `json:"height,omitempty"`
	Backness string `json:"backness,omitempty"`
	Rounded  bool   `json:"rounded,omitempty"`
}

// Phoneme is a single sound symbol tagged with its class and features
type Phoneme struct {
	Symbol   rune     `json:"-"`
	Features Features `json:"features"`
}

// NewPhoneme derives the features of symbol for the given class
func NewPhoneme(symbol rune, class Class) Phoneme {
	f := Features{Class: class}
	switch class {
	case Consonant:
		f.Voiced = strings.ContainsRune(voicedConsonants, symbol)
		f.Manner = lookup(mannerTable, symbol)
		f.Place = lookup(placeTable, symbol)
	case Vowel:
		f.Height = lookup(heightTable, symbol)
		f.Backness = lookup(backnessTable, symbol)
		f.Rounded = strings.ContainsRune(roundedVowels, symbol)
	}
	return Phoneme{Symbol: symbol, Features: f}
}

// Class returns the phoneme's class
func (p Phoneme) Class() Class {
	return p.Features.Class
}

func (p Phoneme) String() string {
	return string(p.Symbol)
}

// MarshalJSON encodes the symbol as a string rather than a code point
func (p Phoneme) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Symbol   string   `json:"symbol"`
		Features Features `json:"features"`
	}{string(p.Symbol), p.Features})
}

// GoString makes %#v output readable in test failures
func (p Phoneme) GoString() string {
	return fmt.Sprintf("Phoneme(%c, %s)", p.Symbol, p.Features.Class)
}

const (
	voicedConsonants = "bdgmnŋzʒvðrl"
	roundedVowels    = "ouɔʊ"
)

type featureRow struct {
	symbols string
	value   string
}

// Rows are checked in order; the first containing the symbol wins.
var mannerTable = []featureRow{
	{"ptk", "stop"},
	{"bdg", "voiced_stop"},
	{"fvθð", "fricative"},
	{"szʃʒ", "sibilant"},
	{"mn", "nasal"},
	{"l", "lateral"},
	{"r", "rhotic"},
	{"h", "glottal"},
}

var placeTable = []featureRow{
	{"pbm", "labial"},
	{"fv", "labiodental"},
	{"θð", "dental"},
	{"tdszln", "alveolar"},
	{"ʃʒ", "postalveolar"},
	{"kgŋ", "velar"},
	{"h", "glottal"},
}

var heightTable = []featureRow{
	{"iɪu", "high"},
	{"eɛoɔə", "mid"},
	{"aæɑ", "low"},
}

var backnessTable = []featureRow{
	{"iɪeɛæ", "front"},
	{"ə", "central"},
	{"uoɔɑ", "back"},
}

func lookup(table []featureRow, symbol rune) string {
	for _, row := range table {
		if strings.ContainsRune(row.symbols, symbol) {
			return row.value
		}
	}
	return Other
}
