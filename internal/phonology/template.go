package phonology

import (
	"fmt"
	"strings"
)

// Slot is one position in a syllable template
type Slot byte

const (
	ConsonantSlot Slot = 'C'
	VowelSlot     Slot = 'V'
)

// Template is an ordered sequence of slots, e.g. CVC
type Template []Slot

// ParseTemplate parses a template string over the alphabet {C, V}
func ParseTemplate(s string) (Template, error) {
	if s == "" {
		return nil, fmt.Errorf("empty syllable template")
	}

	t := make(Template, 0, len(s))
	for i, r := range s {
		switch Slot(r) {
		case ConsonantSlot, VowelSlot:
			t = append(t, Slot(r))
		default:
			return nil, fmt.Errorf("syllable template %q: invalid slot %q at offset %d (want C or V)", s, r, i)
		}
	}
	return t, nil
}

func (t Template) String() string {
	var b strings.Builder
	b.Grow(len(t))
	for _, s := range t {
		b.WriteByte(byte(s))
	}
	return b.String()
}
