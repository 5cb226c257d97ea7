package world

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrazzaque/mystic-manor/pkg/actor"
	"github.com/mrazzaque/mystic-manor/pkg/item"
)

func buildTestWorld(t *testing.T) *World {
	t.Helper()
	w := New()
	kitchen := NewRoom("Kitchen", "in the kitchen")
	pantry := NewRoom("Pantry", "in the pantry")
	hall := NewRoom("Entrance Hall", "in the entrance hall")

	kitchen.SetExit("east", "pantry")
	kitchen.SetExit("south", "entrance_hall")
	pantry.SetExit("west", "kitchen")
	hall.SetExit("north", "kitchen")

	for _, r := range []*Room{kitchen, pantry, hall} {
		require.NoError(t, w.AddRoom(r))
	}
	return w
}

func TestRoom_Exits(t *testing.T) {
	r := NewRoom("Study", "in the quiet study")
	assert.Equal(t, "study", r.Key())

	r.SetExit("south", "library")
	dst, ok := r.Exit("south")
	require.True(t, ok)
	assert.Equal(t, "library", dst)

	_, ok = r.Exit("up")
	assert.False(t, ok)

	// Last write wins.
	r.SetExit("south", "master_bedroom")
	dst, _ = r.Exit("south")
	assert.Equal(t, "master_bedroom", dst)

	// Direction labels are free-form.
	r.SetExit("through the mirror", "hidden_chamber")
	dst, ok = r.Exit("through the mirror")
	require.True(t, ok)
	assert.Equal(t, "hidden_chamber", dst)

	assert.Equal(t, []string{"south", "through the mirror"}, r.Directions())
}

func TestWorld_AddRoom(t *testing.T) {
	w := New()
	require.NoError(t, w.AddRoom(NewRoom("Kitchen", "a kitchen")))
	err := w.AddRoom(NewRoom("Kitchen", "another kitchen"))
	assert.Error(t, err)

	_, err = w.Room("cellar")
	assert.ErrorIs(t, err, ErrUnknownRoom)
}

func TestWorld_Opposites(t *testing.T) {
	w := New()
	for _, pair := range [][2]string{{"north", "south"}, {"east", "west"}} {
		got, ok := w.Opposite(pair[0])
		require.True(t, ok)
		assert.Equal(t, pair[1], got)
		got, ok = w.Opposite(pair[1])
		require.True(t, ok)
		assert.Equal(t, pair[0], got)
	}

	w.SetOpposites("up", "down")
	got, ok := w.Opposite("down")
	require.True(t, ok)
	assert.Equal(t, "up", got)

	_, ok = w.Opposite("sideways")
	assert.False(t, ok)
}

func TestWorld_Lock(t *testing.T) {
	w := buildTestWorld(t)
	reg := item.NewRegistry()
	key, err := reg.Register("pantry key", 5)
	require.NoError(t, err)

	require.NoError(t, w.Lock("kitchen", "east", key))

	assert.True(t, w.IsLocked("kitchen", "east"))
	assert.False(t, w.IsLocked("kitchen", "south"))

	got, ok := w.KeyFor("kitchen", "east")
	require.True(t, ok)
	assert.Equal(t, key, got)

	assert.True(t, w.IsLockedRoom("pantry"), "destination reclassified as locked")
	assert.False(t, w.IsLockedRoom("kitchen"))
	assert.True(t, w.IsDoorKey(key))

	other, _ := reg.Register("coin", 1)
	assert.False(t, w.IsDoorKey(other))

	t.Run("locking a missing edge fails", func(t *testing.T) {
		err := w.Lock("kitchen", "up", key)
		assert.Error(t, err)
		err = w.Lock("cellar", "east", key)
		assert.ErrorIs(t, err, ErrUnknownRoom)
	})
}

func TestWorld_RandomUnlockedRoom(t *testing.T) {
	w := buildTestWorld(t)
	reg := item.NewRegistry()
	key, _ := reg.Register("pantry key", 5)
	require.NoError(t, w.Lock("kitchen", "east", key))

	rng := rand.New(rand.NewSource(42))
	seen := make(map[string]bool)
	for i := 0; i < 200; i++ {
		r, err := w.RandomUnlockedRoom(rng)
		require.NoError(t, err)
		assert.NotEqual(t, "pantry", r.Key(), "locked rooms are never drawn")
		seen[r.Key()] = true
	}
	assert.True(t, seen["kitchen"])
	assert.True(t, seen["entrance_hall"])
}

func TestWorld_MoveNPC(t *testing.T) {
	w := buildTestWorld(t)
	maid, err := actor.NewNPC("Maid", actor.Passive, 80, "kitchen")
	require.NoError(t, err)
	require.NoError(t, w.PlaceNPC(maid))

	kitchen, _ := w.Room("kitchen")
	hall, _ := w.Room("entrance_hall")
	require.Len(t, kitchen.NPCs(), 1)

	require.NoError(t, w.MoveNPC(maid, "south"))

	assert.Equal(t, "entrance_hall", maid.Location())
	assert.Empty(t, kitchen.NPCs())
	require.Len(t, hall.NPCs(), 1)
	assert.Same(t, maid, hall.NPCs()[0])

	err = w.MoveNPC(maid, "west")
	assert.Error(t, err, "no such exit")
	assert.Equal(t, "entrance_hall", maid.Location())
}

func TestWorld_RemoveNPC(t *testing.T) {
	w := buildTestWorld(t)
	reg := item.NewRegistry()
	keyItem, _ := reg.Register("chambers key", 5)

	ghost, err := actor.NewNPC("Ghost", actor.Boss, 150, "kitchen")
	require.NoError(t, err)
	require.NoError(t, w.PlaceNPC(ghost))
	require.NoError(t, ghost.Container().Add(keyItem, 1))

	kitchen, _ := w.Room("kitchen")
	require.NoError(t, w.RemoveNPC(ghost))

	assert.True(t, ghost.Removed())
	assert.Empty(t, kitchen.NPCs(), "removed NPC leaves the roster")
	assert.Equal(t, 1, kitchen.Container().QuantityOf(keyItem), "inventory lands in the room")
	assert.True(t, ghost.Container().Empty())

	err = w.RemoveNPC(ghost)
	assert.Error(t, err, "removal happens exactly once")
}

func TestRoom_RosterOrder(t *testing.T) {
	w := buildTestWorld(t)
	butler, _ := actor.NewNPC("Butler", actor.Passive, 100, "entrance_hall")
	guard, _ := actor.NewNPC("Security Guard", actor.Passive, 120, "entrance_hall")
	require.NoError(t, w.PlaceNPC(butler))
	require.NoError(t, w.PlaceNPC(guard))

	hall, _ := w.Room("entrance_hall")
	npcs := hall.NPCs()
	require.Len(t, npcs, 2)
	assert.Equal(t, "Butler", npcs[0].Name())
	assert.Equal(t, "Security Guard", npcs[1].Name())
}
