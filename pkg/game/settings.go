package game

import "fmt"

// Settings holds the per-session toggles chosen by the player.
type Settings struct {
	MapEnabled     bool
	Movement       bool
	MovementChance int
}

// Prompt text for the settings sequence. Configure and the terminal
// settings modal both read these, so the two flows cannot drift.
const (
	MapQuestion        = "Would you like to enable the map?"
	MovementQuestion   = "Would you like to enable random character movement?\n(Characters will randomly move around the map once interacted with)"
	DifficultyQuestion = "Which difficulty of random character movement?"
)

// Difficulty tiers for autonomous character movement, mapped to the
// chance denominator of a move per processed command.
var difficulties = map[string]int{
	"easy":   30,
	"medium": 15,
	"hard":   5,
}

// DifficultyChance maps a difficulty name to its chance denominator.
func DifficultyChance(name string) (int, bool) {
	c, ok := difficulties[name]
	return c, ok
}

// DifficultyNames lists the selectable tiers in ascending difficulty.
func DifficultyNames() []string {
	return []string{"easy", "medium", "hard"}
}

// ApplySettings stores the settings and applies the movement policy
// uniformly to every character. Movement with a non-positive chance
// denominator is rejected before any character is touched.
func (g *Game) ApplySettings(s Settings) error {
	if s.Movement && s.MovementChance <= 0 {
		return fmt.Errorf("movement chance must be positive, got %d", s.MovementChance)
	}
	g.settings = s
	for _, n := range g.npcOrder {
		if err := n.SetMovement(s.Movement, s.MovementChance); err != nil {
			return fmt.Errorf("apply movement to %s: %w", n.Key(), err)
		}
	}
	g.logger.Debug("settings applied",
		"map", s.MapEnabled,
		"movement", s.Movement,
		"chance", s.MovementChance)
	return nil
}

// Settings returns the current session settings.
func (g *Game) Settings() Settings { return g.settings }

// Configure runs the settings prompt sequence and applies the result.
// It is called once before play begins and again on the configure
// command.
func (g *Game) Configure(p Prompter) {
	s := Settings{}
	s.MapEnabled = p.YesNo(MapQuestion)

	if p.YesNo(MovementQuestion) {
		choice := p.Choice(DifficultyQuestion, DifficultyNames())
		chance, ok := DifficultyChance(choice)
		if !ok {
			chance = 100
		}
		s.Movement = true
		s.MovementChance = chance
	}

	if err := g.ApplySettings(s); err != nil {
		g.display.Message(err.Error())
		return
	}
	g.display.Message("Game settings saved.")
}
