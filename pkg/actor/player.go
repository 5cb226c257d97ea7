package actor

import (
	"fmt"

	"github.com/mrazzaque/mystic-manor/pkg/inventory"
)

// Player is the singleton player character: a current room and a
// weight-capped inventory. The back-navigation stack is owned by the
// game, not the player.
type Player struct {
	location  string
	container *inventory.Container
}

// NewPlayer creates a player in the given room with the given carry cap.
func NewPlayer(roomKey string, carryCap int) (*Player, error) {
	if carryCap <= 0 {
		return nil, fmt.Errorf("carry cap must be positive, got %d", carryCap)
	}
	return &Player{
		location:  roomKey,
		container: inventory.NewCapped(carryCap),
	}, nil
}

// Location returns the key of the room the player occupies.
func (p *Player) Location() string { return p.location }

// MoveTo places the player in the given room.
func (p *Player) MoveTo(roomKey string) { p.location = roomKey }

// Container returns the player's capped inventory.
func (p *Player) Container() *inventory.Container { return p.container }
