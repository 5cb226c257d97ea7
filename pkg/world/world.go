// Package world implements the room graph, the locked-door registry
// and the room classification used by teleport effects.
package world

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"

	"github.com/mrazzaque/mystic-manor/pkg/actor"
	"github.com/mrazzaque/mystic-manor/pkg/item"
)

// ErrUnknownRoom is returned when a room key does not resolve.
var ErrUnknownRoom = errors.New("unknown room")

type doorKey struct {
	room      string
	direction string
}

// World owns every room, the locked-door registry, the locked/unlocked
// room classification and the direction-opposite mapping.
type World struct {
	rooms     map[string]*Room
	roomOrder []string

	doors       map[doorKey]item.Item
	lockedRooms map[string]bool
	opposites   map[string]string
}

// New returns an empty world with the standard compass opposites
// preconfigured. Further opposite pairs can be added for worlds with
// other direction labels.
func New() *World {
	w := &World{
		rooms:       make(map[string]*Room),
		doors:       make(map[doorKey]item.Item),
		lockedRooms: make(map[string]bool),
		opposites:   make(map[string]string),
	}
	w.SetOpposites("north", "south")
	w.SetOpposites("east", "west")
	return w
}

// AddRoom registers a room under its key. Re-adding a key is an error.
func (w *World) AddRoom(r *Room) error {
	key := r.Key()
	if _, exists := w.rooms[key]; exists {
		return fmt.Errorf("room %q already exists", key)
	}
	w.rooms[key] = r
	w.roomOrder = append(w.roomOrder, key)
	return nil
}

// Room resolves a room key.
func (w *World) Room(key string) (*Room, error) {
	r, ok := w.rooms[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownRoom, key)
	}
	return r, nil
}

// Rooms returns every room in insertion order.
func (w *World) Rooms() []*Room {
	out := make([]*Room, 0, len(w.roomOrder))
	for _, key := range w.roomOrder {
		out = append(out, w.rooms[key])
	}
	return out
}

// SetOpposites records a direction label and its reverse, both ways.
func (w *World) SetOpposites(a, b string) {
	w.opposites[a] = b
	w.opposites[b] = a
}

// Opposite returns the reverse of a direction label.
func (w *World) Opposite(direction string) (string, bool) {
	op, ok := w.opposites[direction]
	return op, ok
}

// Lock gates the edge (roomKey, direction) behind key and reclassifies
// the destination room as locked, excluding it from random-room
// selection. The edge must exist; a dangling gate is a world-definition
// error that aborts startup.
func (w *World) Lock(roomKey, direction string, key item.Item) error {
	r, err := w.Room(roomKey)
	if err != nil {
		return err
	}
	dst, ok := r.Exit(direction)
	if !ok {
		return fmt.Errorf("cannot lock %s/%s: no such exit", roomKey, direction)
	}
	if _, err := w.Room(dst); err != nil {
		return fmt.Errorf("cannot lock %s/%s: %w", roomKey, direction, err)
	}
	w.doors[doorKey{roomKey, direction}] = key
	w.lockedRooms[dst] = true
	return nil
}

// IsLocked reports whether the edge is gated.
func (w *World) IsLocked(roomKey, direction string) bool {
	_, ok := w.doors[doorKey{roomKey, direction}]
	return ok
}

// KeyFor returns the item that opens the gated edge.
func (w *World) KeyFor(roomKey, direction string) (item.Item, bool) {
	it, ok := w.doors[doorKey{roomKey, direction}]
	return it, ok
}

// IsLockedRoom reports whether the room sits behind a locked door.
func (w *World) IsLockedRoom(roomKey string) bool {
	return w.lockedRooms[roomKey]
}

// IsDoorKey reports whether the item opens any locked door in the
// world. Used by the lockout guard on drops.
func (w *World) IsDoorKey(it item.Item) bool {
	for _, key := range w.doors {
		if key == it {
			return true
		}
	}
	return false
}

// RandomUnlockedRoom draws uniformly from the rooms not classified as
// locked.
func (w *World) RandomUnlockedRoom(rng *rand.Rand) (*Room, error) {
	candidates := make([]string, 0, len(w.roomOrder))
	for _, key := range w.roomOrder {
		if !w.lockedRooms[key] {
			candidates = append(candidates, key)
		}
	}
	if len(candidates) == 0 {
		return nil, errors.New("no unlocked rooms")
	}
	sort.Strings(candidates)
	return w.rooms[candidates[rng.Intn(len(candidates))]], nil
}

// PlaceNPC puts a newly created NPC into its starting room. It is part
// of world initialization, not gameplay.
func (w *World) PlaceNPC(n *actor.NPC) error {
	r, err := w.Room(n.Location())
	if err != nil {
		return fmt.Errorf("cannot place npc %s: %w", n.Key(), err)
	}
	r.addPresence(n)
	return nil
}

// MoveNPC walks an NPC along one of its current room's exits, updating
// both rosters and the NPC's location together. This is the only
// gameplay path that relocates an NPC.
func (w *World) MoveNPC(n *actor.NPC, direction string) error {
	if n.Removed() {
		return fmt.Errorf("npc %s has been removed", n.Key())
	}
	from, err := w.Room(n.Location())
	if err != nil {
		return err
	}
	dstKey, ok := from.Exit(direction)
	if !ok {
		return fmt.Errorf("npc %s: no exit %s from %s", n.Key(), direction, from.Key())
	}
	to, err := w.Room(dstKey)
	if err != nil {
		return err
	}
	from.removePresence(n)
	to.addPresence(n)
	n.Relocate(to.Key())
	return nil
}

// RemoveNPC takes an NPC out of play: its whole container moves into
// its current room's container, it leaves the room's roster, and it is
// marked removed. Calling it twice is an error.
func (w *World) RemoveNPC(n *actor.NPC) error {
	if n.Removed() {
		return fmt.Errorf("npc %s already removed", n.Key())
	}
	r, err := w.Room(n.Location())
	if err != nil {
		return err
	}
	if err := n.Container().TransferAllTo(r.Container()); err != nil {
		return fmt.Errorf("transfer inventory of %s: %w", n.Key(), err)
	}
	r.removePresence(n)
	n.Retire()
	return nil
}
