package actor

import (
	"fmt"
	"sort"

	"github.com/jwebster45206/d20"

	"github.com/mrazzaque/mystic-manor/pkg/textutil"
)

// SheetSpec is the serializable character sheet carried by the world
// definition's player section.
type SheetSpec struct {
	Name       string         `json:"name"`
	MaxHP      int            `json:"max_hp"`
	AC         int            `json:"ac"`
	Attributes map[string]int `json:"attributes,omitempty"`
}

// Sheet is the runtime character sheet, backed by a d20 actor.
type Sheet struct {
	spec  SheetSpec
	actor *d20.Actor
}

// NewSheet builds the d20 actor for a spec.
func NewSheet(spec SheetSpec) (*Sheet, error) {
	if spec.Name == "" {
		return nil, fmt.Errorf("sheet name cannot be empty")
	}
	a, err := d20.NewActor(spec.Name).
		WithHP(spec.MaxHP).
		WithAC(spec.AC).
		WithAttributes(spec.Attributes).
		Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build actor: %w", err)
	}
	return &Sheet{spec: spec, actor: a}, nil
}

// Name returns the character's name.
func (s *Sheet) Name() string { return s.spec.Name }

// View renders the sheet as display lines.
func (s *Sheet) View() []string {
	lines := []string{
		textutil.Title(s.spec.Name),
		fmt.Sprintf("HP: %d/%d", s.actor.HP(), s.actor.MaxHP()),
		fmt.Sprintf("AC: %d", s.actor.AC()),
	}
	keys := make([]string, 0, len(s.spec.Attributes))
	for k := range s.spec.Attributes {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if v, ok := s.actor.Attribute(k); ok {
			lines = append(lines, fmt.Sprintf("%s: %d", textutil.Title(k), v))
		}
	}
	return lines
}
