package game

import "time"

// StackView is one inventory line: an item name with its held quantity
// and the combined weight of the stack.
type StackView struct {
	Name     string
	Key      string
	Quantity int
	Weight   int
}

// RoomView is everything the display needs to render a room.
type RoomView struct {
	Name        string
	Description string
	Directions  []string
	Items       []StackView
	NPCs        []string
}

// InventoryView is the player inventory with its weight budget.
type InventoryView struct {
	Stacks []StackView
	Weight int
	Cap    int
}

// Display is the rendering collaborator. The engine describes what to
// show; the front-end decides how. Paced output is the one place the
// engine asks for time: lines separated by a fixed delay, during which
// no further command is processed.
type Display interface {
	Room(RoomView)
	Inventory(InventoryView)
	Message(text string)
	Paced(lines []string, delay time.Duration)
	Selection(label string, options []string)
	Map(lines []string)
}

// Prompter is the settings-prompt collaborator.
type Prompter interface {
	YesNo(question string) bool
	Choice(question string, options []string) string
}
