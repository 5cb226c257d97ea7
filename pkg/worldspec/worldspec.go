// Package worldspec defines the JSON world definition and builds a
// playable world from it. Definitions are static data; a broken
// definition is a startup failure, never a runtime condition.
package worldspec

import (
	"fmt"
	"time"

	"github.com/mrazzaque/mystic-manor/pkg/actor"
	"github.com/mrazzaque/mystic-manor/pkg/game"
)

// ItemSpec declares one item kind.
type ItemSpec struct {
	Name   string `json:"name"`
	Weight int    `json:"weight"`
}

// RoomSpec declares one room, its exits and its starting items. Exits
// map direction labels to room keys; items map item keys to quantities.
type RoomSpec struct {
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Exits       map[string]string `json:"exits,omitempty"`
	Items       map[string]int    `json:"items,omitempty"`
}

// DoorSpec gates an existing exit behind a key item.
type DoorSpec struct {
	Room      string `json:"room"`
	Direction string `json:"direction"`
	Key       string `json:"key"`
}

// NPCSpec declares one character.
type NPCSpec struct {
	Name     string         `json:"name"`
	Behavior string         `json:"behavior"`
	Health   int            `json:"health"`
	Room     string         `json:"room"`
	Aliases  []string       `json:"aliases,omitempty"`
	Dialog   []string       `json:"dialog,omitempty"`
	Items    map[string]int `json:"items,omitempty"`
}

// PlayerSpec declares the player's start room, carry capacity and
// starting items, plus an optional character sheet.
type PlayerSpec struct {
	Start    string           `json:"start"`
	Capacity int              `json:"capacity"`
	Items    map[string]int   `json:"items,omitempty"`
	Sheet    *actor.SheetSpec `json:"sheet,omitempty"`
}

// EffectSpec declares the use-behavior of one item.
type EffectSpec struct {
	Kind         string   `json:"kind"`
	Lines        []string `json:"lines,omitempty"`
	DelaySeconds int      `json:"delay_seconds,omitempty"`
	Damage       int      `json:"damage,omitempty"`
	ImmuneLines  []string `json:"immune_lines,omitempty"`
	RegretLines  []string `json:"regret_lines,omitempty"`
	DefeatLines  []string `json:"defeat_lines,omitempty"`
}

// RiddleSpec declares the riddle exchange.
type RiddleSpec struct {
	NPC       string   `json:"npc"`
	Currency  string   `json:"currency"`
	Amount    int      `json:"amount"`
	Answers   []string `json:"answers"`
	Reward    string   `json:"reward"`
	RewardQty int      `json:"reward_qty"`

	UncoverLine      string   `json:"uncover_line"`
	AbsentLine       string   `json:"absent_line"`
	InsufficientLine string   `json:"insufficient_line"`
	PromptLine       string   `json:"prompt_line"`
	WrongLine        string   `json:"wrong_line"`
	AltAnswerLine    string   `json:"alt_answer_line,omitempty"`
	SuccessLines     []string `json:"success_lines"`
}

// Spec is a complete world definition.
type Spec struct {
	Name      string                `json:"name"`
	FileName  string                `json:"file_name,omitempty"`
	Welcome   []string              `json:"welcome,omitempty"`
	Help      []string              `json:"help,omitempty"`
	MapArt    []string              `json:"map_art,omitempty"`
	Items     []ItemSpec            `json:"items"`
	Rooms     []RoomSpec            `json:"rooms"`
	Opposites [][2]string           `json:"opposites,omitempty"`
	Doors     []DoorSpec            `json:"doors,omitempty"`
	Player    PlayerSpec            `json:"player"`
	NPCs      []NPCSpec             `json:"npcs,omitempty"`
	Effects   map[string]EffectSpec `json:"effects,omitempty"`
	Riddle    *RiddleSpec           `json:"riddle,omitempty"`
}

// Validate checks that every cross-reference in the definition
// resolves. It reports the first problem found.
func (s *Spec) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("world name is required")
	}
	if len(s.Rooms) == 0 {
		return fmt.Errorf("world has no rooms")
	}

	items := make(map[string]bool, len(s.Items))
	for _, it := range s.Items {
		if it.Name == "" {
			return fmt.Errorf("item with empty name")
		}
		if it.Weight < 0 {
			return fmt.Errorf("item %q: negative weight", it.Name)
		}
		key := itemKey(it.Name)
		if items[key] {
			return fmt.Errorf("duplicate item %q", key)
		}
		items[key] = true
	}

	rooms := make(map[string]bool, len(s.Rooms))
	for _, r := range s.Rooms {
		if r.Name == "" {
			return fmt.Errorf("room with empty name")
		}
		key := itemKey(r.Name)
		if rooms[key] {
			return fmt.Errorf("duplicate room %q", key)
		}
		rooms[key] = true
	}
	for _, r := range s.Rooms {
		key := itemKey(r.Name)
		for dir, dst := range r.Exits {
			if !rooms[dst] {
				return fmt.Errorf("room %q: exit %s leads to unknown room %q", key, dir, dst)
			}
		}
		for ik, qty := range r.Items {
			if !items[ik] {
				return fmt.Errorf("room %q: unknown item %q", key, ik)
			}
			if qty <= 0 {
				return fmt.Errorf("room %q: item %q has non-positive quantity", key, ik)
			}
		}
	}

	for _, d := range s.Doors {
		if !rooms[d.Room] {
			return fmt.Errorf("door %s/%s: unknown room", d.Room, d.Direction)
		}
		if !items[d.Key] {
			return fmt.Errorf("door %s/%s: unknown key item %q", d.Room, d.Direction, d.Key)
		}
	}

	npcs := make(map[string]bool, len(s.NPCs))
	for _, n := range s.NPCs {
		if _, err := actor.ParseBehavior(n.Behavior); err != nil {
			return fmt.Errorf("npc %q: %w", n.Name, err)
		}
		if !rooms[n.Room] {
			return fmt.Errorf("npc %q: unknown room %q", n.Name, n.Room)
		}
		for ik := range n.Items {
			if !items[ik] {
				return fmt.Errorf("npc %q: unknown item %q", n.Name, ik)
			}
		}
		npcs[itemKey(n.Name)] = true
	}

	if !rooms[s.Player.Start] {
		return fmt.Errorf("player start: unknown room %q", s.Player.Start)
	}
	if s.Player.Capacity <= 0 {
		return fmt.Errorf("player capacity must be positive")
	}
	for ik := range s.Player.Items {
		if !items[ik] {
			return fmt.Errorf("player items: unknown item %q", ik)
		}
	}

	for ik, e := range s.Effects {
		if !items[ik] {
			return fmt.Errorf("effect bound to unknown item %q", ik)
		}
		if _, ok := game.ParseEffectKind(e.Kind); !ok {
			return fmt.Errorf("effect %q: unknown kind %q", ik, e.Kind)
		}
	}

	if r := s.Riddle; r != nil {
		if !npcs[r.NPC] {
			return fmt.Errorf("riddle: unknown npc %q", r.NPC)
		}
		if !items[r.Currency] {
			return fmt.Errorf("riddle: unknown currency %q", r.Currency)
		}
		if !items[r.Reward] {
			return fmt.Errorf("riddle: unknown reward %q", r.Reward)
		}
		if r.Amount <= 0 || r.RewardQty <= 0 {
			return fmt.Errorf("riddle: amount and reward_qty must be positive")
		}
		if len(r.Answers) == 0 {
			return fmt.Errorf("riddle: no accepted answers")
		}
	}

	return nil
}

func (e EffectSpec) delay() time.Duration {
	return time.Duration(e.DelaySeconds) * time.Second
}
