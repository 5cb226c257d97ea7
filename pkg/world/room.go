package world

import (
	"sort"

	"github.com/mrazzaque/mystic-manor/pkg/actor"
	"github.com/mrazzaque/mystic-manor/pkg/inventory"
	"github.com/mrazzaque/mystic-manor/pkg/textutil"
)

// Room is one node of the world graph. Exits map free-form direction
// labels to destination room keys; the graph is directed and edges need
// not be symmetric. Each room owns an uncapped container and an ordered
// roster of present NPCs.
type Room struct {
	name        string
	description string
	exits       map[string]string
	container   *inventory.Container
	npcs        []*actor.NPC
}

// NewRoom creates a room with no exits and an empty container.
func NewRoom(name, description string) *Room {
	return &Room{
		name:        name,
		description: description,
		exits:       make(map[string]string),
		container:   inventory.New(),
	}
}

// Name returns the room's display name.
func (r *Room) Name() string { return r.name }

// Key returns the room's snake_case lookup key.
func (r *Room) Key() string { return textutil.Snake(r.name) }

// Description returns the room's short description.
func (r *Room) Description() string { return r.description }

// SetExit records an edge. An existing edge for the direction is
// overwritten.
func (r *Room) SetExit(direction, roomKey string) {
	r.exits[direction] = roomKey
}

// Exit resolves a direction to a destination room key.
func (r *Room) Exit(direction string) (string, bool) {
	dst, ok := r.exits[direction]
	return dst, ok
}

// Directions lists the room's exit labels in sorted order.
func (r *Room) Directions() []string {
	out := make([]string, 0, len(r.exits))
	for d := range r.exits {
		out = append(out, d)
	}
	sort.Strings(out)
	return out
}

// Container returns the room's inventory.
func (r *Room) Container() *inventory.Container { return r.container }

// NPCs returns the present NPCs in arrival order.
func (r *Room) NPCs() []*actor.NPC {
	return append([]*actor.NPC(nil), r.npcs...)
}

// addPresence and removePresence maintain the roster. They are called
// only by the World's move and remove operations so the roster and each
// NPC's location can never diverge.

func (r *Room) addPresence(n *actor.NPC) {
	r.npcs = append(r.npcs, n)
}

func (r *Room) removePresence(n *actor.NPC) {
	for i, present := range r.npcs {
		if present == n {
			r.npcs = append(r.npcs[:i], r.npcs[i+1:]...)
			return
		}
	}
}
