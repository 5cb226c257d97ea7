// Package inventory implements the weighted container shared by the
// player, rooms and NPCs.
package inventory

import (
	"errors"
	"fmt"
	"sort"

	"github.com/mrazzaque/mystic-manor/pkg/item"
)

var (
	// ErrCapacityExceeded is returned when an add would push a capped
	// container past its weight limit.
	ErrCapacityExceeded = errors.New("not enough carrying capacity")
	// ErrInsufficientQuantity is returned when a remove asks for more
	// units than the container holds.
	ErrInsufficientQuantity = errors.New("insufficient quantity")
)

// Container maps items to unit counts. Entries never hold a zero or
// negative count; an item with no units is absent. A container is owned
// by exactly one entity (player, room or NPC) and mutated only through
// that entity's operations.
type Container struct {
	items  map[item.Item]int
	cap    int
	capped bool
}

// New returns an uncapped container, as used by rooms and NPCs.
func New() *Container {
	return &Container{items: make(map[item.Item]int)}
}

// NewCapped returns a container with a maximum total weight, as used by
// the player.
func NewCapped(maxWeight int) *Container {
	return &Container{items: make(map[item.Item]int), cap: maxWeight, capped: true}
}

// QuantityOf returns the number of units held, zero for absent items.
func (c *Container) QuantityOf(it item.Item) int {
	return c.items[it]
}

// Add increments the stored quantity of it by n.
func (c *Container) Add(it item.Item, n int) error {
	if n <= 0 {
		return fmt.Errorf("quantity must be positive, got %d", n)
	}
	if c.capped && c.TotalWeight()+it.Weight()*n > c.cap {
		return fmt.Errorf("%w: %d %s would exceed %d", ErrCapacityExceeded, n, it.Key(), c.cap)
	}
	c.items[it] += n
	return nil
}

// Remove decrements the stored quantity of it by n, pruning the entry
// when it reaches zero.
func (c *Container) Remove(it item.Item, n int) error {
	if n <= 0 {
		return fmt.Errorf("quantity must be positive, got %d", n)
	}
	held := c.items[it]
	if held < n {
		return fmt.Errorf("%w: have %d %s, need %d", ErrInsufficientQuantity, held, it.Key(), n)
	}
	if held == n {
		delete(c.items, it)
		return nil
	}
	c.items[it] = held - n
	return nil
}

// TransferAllTo moves every entry into dst and empties the receiver.
// The transfer is all-or-nothing: if dst could not take the full load,
// nothing moves. Room containers are uncapped, so the death-transfer
// path can never fail, but the contract holds for any destination.
func (c *Container) TransferAllTo(dst *Container) error {
	if dst.capped {
		incoming := 0
		for it, n := range c.items {
			incoming += it.Weight() * n
		}
		if dst.TotalWeight()+incoming > dst.cap {
			return fmt.Errorf("%w: transfer of weight %d", ErrCapacityExceeded, incoming)
		}
	}
	for it, n := range c.items {
		dst.items[it] += n
	}
	c.items = make(map[item.Item]int)
	return nil
}

// TotalWeight recomputes the summed weight of all entries.
func (c *Container) TotalWeight() int {
	w := 0
	for it, n := range c.items {
		w += it.Weight() * n
	}
	return w
}

// Cap returns the weight limit and whether one exists.
func (c *Container) Cap() (int, bool) {
	return c.cap, c.capped
}

// Empty reports whether the container holds nothing.
func (c *Container) Empty() bool {
	return len(c.items) == 0
}

// Items returns the held items sorted by key.
func (c *Container) Items() []item.Item {
	out := make([]item.Item, 0, len(c.items))
	for it := range c.items {
		out = append(out, it)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key() < out[j].Key() })
	return out
}
