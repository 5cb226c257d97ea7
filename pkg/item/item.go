// Package item defines the immutable item catalog for a game world.
package item

import (
	"errors"
	"fmt"
	"sort"

	"github.com/mrazzaque/mystic-manor/pkg/textutil"
)

var (
	// ErrNotFound is returned when no item is registered under a key.
	ErrNotFound = errors.New("item not found")
	// ErrDuplicateItem is returned when a name is registered twice.
	// Re-registration is rejected rather than overwritten, so a world
	// definition with colliding names fails loudly at startup.
	ErrDuplicateItem = errors.New("item already registered")
)

// Item is an immutable item definition: a display name and a unit weight.
// Items are comparable values and safe to use as map keys.
type Item struct {
	name   string
	weight int
}

// Name returns the item's display name.
func (i Item) Name() string { return i.name }

// Weight returns the weight of a single unit.
func (i Item) Weight() int { return i.weight }

// Key returns the snake_case lookup key for the item.
func (i Item) Key() string { return textutil.Snake(i.name) }

// Registry is the catalog of all items in a world, keyed by the
// snake_case normalization of each item's name. It is owned by the
// game instance rather than held as package state, so multiple worlds
// can coexist in one process.
type Registry struct {
	items map[string]Item
}

// NewRegistry returns an empty item registry.
func NewRegistry() *Registry {
	return &Registry{items: make(map[string]Item)}
}

// Register adds an item definition to the registry.
func (r *Registry) Register(name string, weight int) (Item, error) {
	if name == "" {
		return Item{}, fmt.Errorf("item name cannot be empty")
	}
	if weight < 0 {
		return Item{}, fmt.Errorf("item %q has negative weight %d", name, weight)
	}
	key := textutil.Snake(name)
	if _, exists := r.items[key]; exists {
		return Item{}, fmt.Errorf("%w: %s", ErrDuplicateItem, key)
	}
	it := Item{name: name, weight: weight}
	r.items[key] = it
	return it, nil
}

// Lookup resolves a snake_case key to its item.
func (r *Registry) Lookup(key string) (Item, error) {
	it, ok := r.items[key]
	if !ok {
		return Item{}, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	return it, nil
}

// Items returns every registered item, sorted by key.
func (r *Registry) Items() []Item {
	out := make([]Item, 0, len(r.items))
	for _, it := range r.items {
		out = append(out, it)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key() < out[j].Key() })
	return out
}
