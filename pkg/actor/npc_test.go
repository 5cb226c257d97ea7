package actor

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNPC(t *testing.T) {
	n, err := NewNPC("Ghost of the Former Owner", Boss, 150, "master_bedroom")
	require.NoError(t, err)

	assert.Equal(t, "Ghost of the Former Owner", n.Name())
	assert.Equal(t, "ghost_of_the_former_owner", n.Key())
	assert.Equal(t, Boss, n.Behavior())
	assert.Equal(t, 150, n.Health())
	assert.Equal(t, 150, n.MaxHealth())
	assert.Equal(t, "master_bedroom", n.Location())
	assert.False(t, n.Removed())
	assert.False(t, n.Interacted())
	assert.True(t, n.Container().Empty())

	_, err = NewNPC("", Passive, 10, "hall")
	assert.Error(t, err)
	_, err = NewNPC("Cat", Passive, 0, "hall")
	assert.Error(t, err)
}

func TestNPC_Damage(t *testing.T) {
	t.Run("decrements above zero", func(t *testing.T) {
		n, _ := NewNPC("Guard", Hostile, 100, "hall")
		dead := n.Damage(30)
		assert.False(t, dead)
		assert.Equal(t, 70, n.Health())
	})

	t.Run("clamps at zero when damage meets health", func(t *testing.T) {
		n, _ := NewNPC("Guard", Hostile, 100, "hall")
		dead := n.Damage(100)
		assert.True(t, dead)
		assert.Equal(t, 0, n.Health())
	})

	t.Run("clamps at zero when damage exceeds health", func(t *testing.T) {
		n, _ := NewNPC("Guard", Hostile, 100, "hall")
		dead := n.Damage(250)
		assert.True(t, dead)
		assert.Equal(t, 0, n.Health())
	})

	t.Run("ignores non-positive damage", func(t *testing.T) {
		n, _ := NewNPC("Guard", Hostile, 100, "hall")
		assert.False(t, n.Damage(0))
		assert.False(t, n.Damage(-5))
		assert.Equal(t, 100, n.Health())
	})
}

func TestNPC_Heal(t *testing.T) {
	n, _ := NewNPC("Guard", Hostile, 100, "hall")
	n.Damage(40)
	n.Heal(20)
	assert.Equal(t, 80, n.Health())

	n.Heal(500)
	assert.Equal(t, 100, n.Health(), "heal clamps at max")

	n.Heal(-10)
	assert.Equal(t, 100, n.Health())
}

func TestNPC_InteractCyclesDialog(t *testing.T) {
	n, _ := NewNPC("Cat", Passive, 60, "library")
	n.SetDialog([]string{"first", "second", "third"})

	require.False(t, n.Interacted())

	line, pos, total := n.Interact()
	assert.Equal(t, "first", line)
	assert.Equal(t, 1, pos)
	assert.Equal(t, 3, total)
	assert.True(t, n.Interacted(), "interacted flips on the very first call")

	line, pos, _ = n.Interact()
	assert.Equal(t, "second", line)
	assert.Equal(t, 2, pos)

	line, _, _ = n.Interact()
	assert.Equal(t, "third", line)

	line, pos, _ = n.Interact()
	assert.Equal(t, "first", line, "cursor wraps after the last line")
	assert.Equal(t, 1, pos)
	assert.True(t, n.Interacted(), "interacted stays true")
}

func TestNPC_InteractWithoutDialog(t *testing.T) {
	n, _ := NewNPC("Statue", Passive, 10, "hall")
	line, pos, total := n.Interact()
	assert.Empty(t, line)
	assert.Zero(t, pos)
	assert.Zero(t, total)
	assert.True(t, n.Interacted())
}

func TestNPC_WantsMove(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	t.Run("never before interaction", func(t *testing.T) {
		n, _ := NewNPC("Maid", Passive, 80, "kitchen")
		require.NoError(t, n.SetMovement(true, 1))
		for i := 0; i < 50; i++ {
			assert.False(t, n.WantsMove(rng))
		}
	})

	t.Run("never when disabled", func(t *testing.T) {
		n, _ := NewNPC("Maid", Passive, 80, "kitchen")
		n.Interact()
		require.NoError(t, n.SetMovement(false, 30))
		for i := 0; i < 50; i++ {
			assert.False(t, n.WantsMove(rng))
		}
	})

	t.Run("always with denominator one", func(t *testing.T) {
		// Intn(1) is always 0, which equals 1/2.
		n, _ := NewNPC("Maid", Passive, 80, "kitchen")
		n.Interact()
		require.NoError(t, n.SetMovement(true, 1))
		assert.True(t, n.WantsMove(rng))
	})

	t.Run("never once removed", func(t *testing.T) {
		n, _ := NewNPC("Maid", Passive, 80, "kitchen")
		n.Interact()
		require.NoError(t, n.SetMovement(true, 1))
		n.Retire()
		assert.False(t, n.WantsMove(rng))
	})

	t.Run("rejects non-positive denominator", func(t *testing.T) {
		n, _ := NewNPC("Maid", Passive, 80, "kitchen")
		assert.Error(t, n.SetMovement(true, 0))
		assert.NoError(t, n.SetMovement(false, 0))
	})
}

func TestParseBehavior(t *testing.T) {
	tests := []struct {
		in      string
		want    Behavior
		wantErr bool
	}{
		{"passive", Passive, false},
		{"hostile", Hostile, false},
		{"boss", Boss, false},
		{"friendly", Passive, true},
		{"", Passive, true},
	}
	for _, tt := range tests {
		got, err := ParseBehavior(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestPlayer(t *testing.T) {
	p, err := NewPlayer("entrance_hall", 50)
	require.NoError(t, err)
	assert.Equal(t, "entrance_hall", p.Location())

	limit, capped := p.Container().Cap()
	require.True(t, capped)
	assert.Equal(t, 50, limit)

	p.MoveTo("library")
	assert.Equal(t, "library", p.Location())

	_, err = NewPlayer("entrance_hall", 0)
	assert.Error(t, err)
}
