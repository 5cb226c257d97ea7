package game

import (
	"strings"
	"time"
)

// EffectKind is the closed set of item-use behavior classes. Each item
// binds to exactly one kind at world build time; dispatch branches on
// the kind, never on item names.
type EffectKind int

const (
	// EffectInformational prints narration and changes no state.
	EffectInformational EffectKind = iota
	// EffectKeyHint reminds the player that keys work through the go
	// command.
	EffectKeyHint
	// EffectWeapon attacks a present, non-passive character. Boss
	// characters shrug it off with a scripted response instead of
	// taking damage.
	EffectWeapon
	// EffectCleanse removes its target: a passive character is
	// dismissed with a regret message, the boss is defeated and drops
	// its inventory.
	EffectCleanse
	// EffectTeleport moves the player to a random unlocked room and
	// clears the back stack.
	EffectTeleport
	// EffectVictory ends the game with a hard process exit after its
	// closing narration.
	EffectVictory
)

// ParseEffectKind maps a world-definition string to an EffectKind.
func ParseEffectKind(s string) (EffectKind, bool) {
	switch s {
	case "informational":
		return EffectInformational, true
	case "key":
		return EffectKeyHint, true
	case "weapon":
		return EffectWeapon, true
	case "cleanse":
		return EffectCleanse, true
	case "teleport":
		return EffectTeleport, true
	case "victory":
		return EffectVictory, true
	default:
		return EffectInformational, false
	}
}

// Effect is the use-behavior bound to an item. Narration lines may
// contain a {name} placeholder, replaced with the target's name.
type Effect struct {
	Kind  EffectKind
	Lines []string
	Delay time.Duration

	// Targeted fields, used by weapon and cleanse effects. RegretLines
	// answer a passive target, ImmuneLines a boss shrugging off a
	// weapon, DefeatLines a target taken out of play.
	Damage      int
	ImmuneLines []string
	RegretLines []string
	DefeatLines []string
}

func fillName(lines []string, name string) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = strings.ReplaceAll(l, "{name}", name)
	}
	return out
}

// Riddle is the reward exchange offered by one NPC: a currency debit
// against a reward credit, gated on the riddle having been uncovered
// and answered in the NPC's presence.
type Riddle struct {
	NPCKey    string
	Currency  string
	Amount    int
	Answers   []string
	Reward    string
	RewardQty int

	// Responses for each gate of the answer flow, in check order.
	UncoverLine      string
	AbsentLine       string
	InsufficientLine string
	PromptLine       string
	WrongLine        string
	AltAnswerLine    string
	SuccessLines     []string
}

// Accepts reports whether answer matches the accepted set,
// case-insensitively, and whether it is the canonical (first) answer.
func (r *Riddle) Accepts(answer string) (ok, canonical bool) {
	for i, a := range r.Answers {
		if strings.EqualFold(a, answer) {
			return true, i == 0
		}
	}
	return false, false
}
