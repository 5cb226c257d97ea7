// Package actor holds the characters of a game world: non-player
// characters with health, dialog and movement policy, and the player.
package actor

import (
	"fmt"
	"math/rand"

	"github.com/mrazzaque/mystic-manor/pkg/inventory"
	"github.com/mrazzaque/mystic-manor/pkg/textutil"
)

// Behavior is the closed set of NPC behavior variants. It is fixed at
// creation; combat and dismissal rules branch on it instead of on name
// comparisons.
type Behavior int

const (
	// Passive NPCs never fight. Attacking them is refused and
	// cleansing them removes them with a regret message.
	Passive Behavior = iota
	// Hostile NPCs can be fought with a weapon.
	Hostile
	// Boss NPCs are immune to ordinary weapons and are defeated only
	// by their scripted weakness.
	Boss
)

func (b Behavior) String() string {
	switch b {
	case Passive:
		return "passive"
	case Hostile:
		return "hostile"
	case Boss:
		return "boss"
	default:
		return fmt.Sprintf("behavior(%d)", int(b))
	}
}

// ParseBehavior maps a world-definition string to a Behavior.
func ParseBehavior(s string) (Behavior, error) {
	switch s {
	case "passive":
		return Passive, nil
	case "hostile":
		return Hostile, nil
	case "boss":
		return Boss, nil
	default:
		return Passive, fmt.Errorf("unknown behavior %q", s)
	}
}

// NPC is a non-player character. Its location is a room key; the room's
// presence roster and this field are kept in step by the world's move
// and remove operations, never mutated directly by callers.
type NPC struct {
	name     string
	behavior Behavior

	maxHealth int
	health    int

	location string
	removed  bool

	container  *inventory.Container
	dialog     []string
	dialogIdx  int
	interacted bool

	moveEnabled bool
	moveChance  int
}

// NewNPC creates a living NPC in the given room with full health and an
// empty uncapped container. Autonomous movement starts disabled.
func NewNPC(name string, behavior Behavior, maxHealth int, roomKey string) (*NPC, error) {
	if name == "" {
		return nil, fmt.Errorf("npc name cannot be empty")
	}
	if maxHealth <= 0 {
		return nil, fmt.Errorf("npc %q must have positive max health, got %d", name, maxHealth)
	}
	return &NPC{
		name:      name,
		behavior:  behavior,
		maxHealth: maxHealth,
		health:    maxHealth,
		location:  roomKey,
		container: inventory.New(),
	}, nil
}

// Name returns the NPC's display name.
func (n *NPC) Name() string { return n.name }

// Key returns the snake_case lookup key for the NPC.
func (n *NPC) Key() string { return textutil.Snake(n.name) }

// Behavior returns the NPC's behavior variant.
func (n *NPC) Behavior() Behavior { return n.behavior }

// Health returns current health.
func (n *NPC) Health() int { return n.health }

// MaxHealth returns the health ceiling.
func (n *NPC) MaxHealth() int { return n.maxHealth }

// Location returns the key of the room the NPC currently occupies.
func (n *NPC) Location() string { return n.location }

// Container returns the NPC's inventory.
func (n *NPC) Container() *inventory.Container { return n.container }

// Removed reports whether the NPC has left play. A removed NPC stays
// inspectable but is no longer present in any room.
func (n *NPC) Removed() bool { return n.removed }

// Interacted reports whether the player has ever interacted with the NPC.
func (n *NPC) Interacted() bool { return n.interacted }

// Heal raises health by amt, clamped to the maximum. Non-positive
// amounts are ignored.
func (n *NPC) Heal(amt int) {
	if amt <= 0 || n.removed {
		return
	}
	n.health += amt
	if n.health > n.maxHealth {
		n.health = n.maxHealth
	}
}

// Damage lowers health by amt. It reports whether health dropped to or
// below zero, in which case health is clamped at zero and the caller is
// responsible for removing the NPC from its room. Non-positive amounts
// are ignored.
func (n *NPC) Damage(amt int) bool {
	if amt <= 0 || n.removed {
		return false
	}
	if n.health-amt <= 0 {
		n.health = 0
		return true
	}
	n.health -= amt
	return false
}

// SetDialog replaces the NPC's dialog lines and resets the cursor.
func (n *NPC) SetDialog(lines []string) {
	n.dialog = append([]string(nil), lines...)
	n.dialogIdx = 0
}

// Interact marks the NPC as interacted with and returns the next dialog
// line together with its 1-based position and the line count. The
// cursor is cyclic: one line per call, wrapping after the last line.
func (n *NPC) Interact() (line string, pos, total int) {
	n.interacted = true
	if len(n.dialog) == 0 {
		return "", 0, 0
	}
	line = n.dialog[n.dialogIdx]
	pos = n.dialogIdx + 1
	total = len(n.dialog)
	n.dialogIdx = (n.dialogIdx + 1) % len(n.dialog)
	return line, pos, total
}

// SetMovement configures the autonomous-movement policy. chance is the
// denominator of the per-turn move probability and must be positive
// when movement is enabled.
func (n *NPC) SetMovement(enabled bool, chance int) error {
	if enabled && chance <= 0 {
		return fmt.Errorf("movement chance must be positive, got %d", chance)
	}
	n.moveEnabled = enabled
	n.moveChance = chance
	return nil
}

// MovementEnabled reports whether the autonomous-movement policy is on.
func (n *NPC) MovementEnabled() bool { return n.moveEnabled }

// MovementChance returns the configured chance denominator.
func (n *NPC) MovementChance() int { return n.moveChance }

// WantsMove draws from rng and reports whether the NPC should wander
// this turn. NPCs never wander before the player has interacted with
// them, and never once removed. The draw succeeds when a uniform value
// in [0, chance) lands on the midpoint.
func (n *NPC) WantsMove(rng *rand.Rand) bool {
	if !n.moveEnabled || !n.interacted || n.removed {
		return false
	}
	return rng.Intn(n.moveChance) == n.moveChance/2
}

// Relocate updates the NPC's room reference. It must only be called by
// the world while it updates the matching presence rosters.
func (n *NPC) Relocate(roomKey string) { n.location = roomKey }

// Retire marks the NPC as removed from play. It must only be called by
// the world while it detaches the NPC from its room.
func (n *NPC) Retire() { n.removed = true }
