// Package game implements the world controller: command-effect
// dispatch over the room graph, containers and characters.
package game

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mrazzaque/mystic-manor/pkg/actor"
	"github.com/mrazzaque/mystic-manor/pkg/inventory"
	"github.com/mrazzaque/mystic-manor/pkg/item"
	"github.com/mrazzaque/mystic-manor/pkg/textutil"
	"github.com/mrazzaque/mystic-manor/pkg/world"
)

// Params carries the assembled world into a game session. Registry,
// World, Player and Display are required; Rand, Exit and Logger default
// to sensible process-wide values when nil.
type Params struct {
	Registry *item.Registry
	World    *world.World
	Player   *actor.Player
	Sheet    *actor.Sheet
	NPCs     []*actor.NPC
	Aliases  map[string]string
	Effects  map[string]Effect
	Riddle   *Riddle
	MapArt   []string
	Help     []string

	Logger   *slog.Logger
	Rand     *rand.Rand
	Display  Display
	Prompter Prompter
	Exit     func(code int)
}

// Game is one session: the world plus the player-scoped state (back
// stack, visited set, settings). All mutation happens on the single
// turn goroutine; one command resolves fully, including the character
// movement tick, before the next is read.
type Game struct {
	id       uuid.UUID
	logger   *slog.Logger
	registry *item.Registry
	world    *world.World
	player   *actor.Player
	sheet    *actor.Sheet

	npcOrder []*actor.NPC
	npcs     map[string]*actor.NPC
	aliases  map[string]string

	effects map[string]Effect
	riddle  *Riddle
	mapArt  []string
	help    []string

	backStack []string
	visited   map[string]bool
	settings  Settings

	rng      *rand.Rand
	display  Display
	prompter Prompter
	exit     func(code int)
	over     bool
}

// New validates the params and builds a session.
func New(p Params) (*Game, error) {
	if p.Registry == nil || p.World == nil || p.Player == nil {
		return nil, errors.New("registry, world and player are required")
	}
	if p.Display == nil {
		return nil, errors.New("display is required")
	}
	if _, err := p.World.Room(p.Player.Location()); err != nil {
		return nil, fmt.Errorf("player start room: %w", err)
	}

	g := &Game{
		id:       uuid.New(),
		logger:   p.Logger,
		registry: p.Registry,
		world:    p.World,
		player:   p.Player,
		sheet:    p.Sheet,
		npcOrder: p.NPCs,
		npcs:     make(map[string]*actor.NPC, len(p.NPCs)),
		aliases:  p.Aliases,
		effects:  p.Effects,
		riddle:   p.Riddle,
		mapArt:   p.MapArt,
		help:     p.Help,
		visited:  map[string]bool{p.Player.Location(): true},
		rng:      p.Rand,
		display:  p.Display,
		prompter: p.Prompter,
		exit:     p.Exit,
	}
	if g.logger == nil {
		g.logger = slog.Default()
	}
	if g.rng == nil {
		g.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if g.exit == nil {
		g.exit = os.Exit
	}
	if g.aliases == nil {
		g.aliases = make(map[string]string)
	}
	if g.effects == nil {
		g.effects = make(map[string]Effect)
	}
	for _, n := range p.NPCs {
		g.npcs[n.Key()] = n
		g.aliases[n.Key()] = n.Key()
	}
	return g, nil
}

// ID returns the session identifier.
func (g *Game) ID() uuid.UUID { return g.id }

// Player returns the player.
func (g *Game) Player() *actor.Player { return g.player }

// World returns the room graph.
func (g *Game) World() *world.World { return g.world }

// VisitedCount returns how many distinct rooms the player has entered.
func (g *Game) VisitedCount() int { return len(g.visited) }

// Execute resolves one command, reports any failure to the display,
// and runs the character movement tick. It returns true when the
// command ends the session.
func (g *Game) Execute(cmd Command) (quit bool) {
	if cmd.IsUnknown() {
		g.display.Message("I don't know what you mean...")
		return false
	}

	var err error
	switch cmd.Word() {
	case "help":
		g.showHelp()
	case "go":
		err = g.goCommand(cmd)
	case "back":
		err = g.backCommand()
	case "quit":
		quit = g.quitCommand(cmd)
	case "inventory":
		err = g.inventoryCommand(cmd)
	case "room":
		g.roomCommand(cmd)
	case "interact":
		err = g.interactCommand(cmd)
	case "use":
		err = g.useCommand(cmd)
	case "answer":
		err = g.answerCommand(cmd)
	case "map":
		g.mapCommand()
	case "stats":
		g.statsCommand()
	case "configure":
		if g.prompter == nil {
			g.display.Message("Settings cannot be changed here.")
			break
		}
		g.Configure(g.prompter)
	default:
		g.display.Message("Unknown command: " + cmd.Word())
	}

	if err != nil {
		g.display.Message(err.Error())
		g.logger.Debug("command failed", "command", cmd.Word(), "error", err)
	}

	// Characters only wander as a side effect of a processed command,
	// never while the player is idle.
	g.tickMovement()
	return quit || g.over
}

// ShowRoom renders the player's current room.
func (g *Game) ShowRoom() {
	r, err := g.world.Room(g.player.Location())
	if err != nil {
		g.logger.Error("player in unknown room", "room", g.player.Location(), "error", err)
		return
	}
	view := RoomView{
		Name:        r.Name(),
		Description: r.Description(),
		Directions:  r.Directions(),
		Items:       stacksOf(r.Container()),
	}
	for _, n := range r.NPCs() {
		view.NPCs = append(view.NPCs, n.Name())
	}
	g.display.Room(view)
}

func stacksOf(c *inventory.Container) []StackView {
	items := c.Items()
	out := make([]StackView, 0, len(items))
	for _, it := range items {
		qty := c.QuantityOf(it)
		out = append(out, StackView{
			Name:     textutil.Title(it.Name()),
			Key:      it.Key(),
			Quantity: qty,
			Weight:   qty * it.Weight(),
		})
	}
	return out
}

func (g *Game) showHelp() {
	var b strings.Builder
	for _, line := range g.help {
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString("\nYour command words are:\n")
	b.WriteString(strings.Join(Words, " "))
	g.display.Message(b.String())
}

func (g *Game) currentRoom() *world.Room {
	r, err := g.world.Room(g.player.Location())
	if err != nil {
		// The player only ever moves along validated edges, so this
		// indicates a corrupted world and is unrecoverable.
		panic(fmt.Sprintf("player in unknown room %s: %v", g.player.Location(), err))
	}
	return r
}

func (g *Game) goCommand(cmd Command) error {
	if !cmd.HasSecondWord() {
		return failf(ErrInvalidArgument, "Go where?")
	}
	direction := cmd.SecondWord()
	r := g.currentRoom()

	dst, ok := r.Exit(direction)
	if !ok {
		return failf(ErrNoExit, "There is no door!")
	}

	if g.world.IsLocked(r.Key(), direction) {
		key, _ := g.world.KeyFor(r.Key(), direction)
		if g.player.Container().QuantityOf(key) == 0 {
			return failf(ErrDoorLocked,
				"Door is locked!\nTo enter this room you must find the %s.", key.Name())
		}
		// The key is a credential, not a token: passage never consumes it.
	}

	if opposite, ok := g.world.Opposite(direction); ok {
		g.backStack = append(g.backStack, opposite)
	}

	g.player.MoveTo(dst)
	g.visited[dst] = true
	g.logger.Debug("player moved", "direction", direction, "room", dst)
	g.ShowRoom()
	return nil
}

func (g *Game) backCommand() error {
	if len(g.backStack) == 0 {
		return failf(ErrIllegalState, "There are no rooms for you to go back to.")
	}
	direction := g.backStack[len(g.backStack)-1]
	g.backStack = g.backStack[:len(g.backStack)-1]

	r := g.currentRoom()
	dst, ok := r.Exit(direction)
	if !ok {
		return failf(ErrNoExit, "There is no door!")
	}
	g.player.MoveTo(dst)
	g.logger.Debug("player moved back", "direction", direction, "room", dst)
	g.ShowRoom()
	return nil
}

func (g *Game) quitCommand(cmd Command) bool {
	if cmd.HasSecondWord() {
		g.display.Message("Quit what?")
		return false
	}
	return true
}

const inventoryUsage = "Available inventory commands:\n" +
	"inventory display - Display current inventory\n" +
	"inventory drop [item] [quantity] - Drop an item from your inventory\n" +
	"inventory pickup [item] [quantity] - Pickup an item from the current room"

func (g *Game) inventoryCommand(cmd Command) error {
	if !cmd.HasSecondWord() {
		g.display.Message(inventoryUsage)
		return nil
	}

	switch cmd.SecondWord() {
	case "display":
		g.showInventory()
		return nil
	case "drop":
		if !cmd.HasThirdWord() {
			g.display.Message("Drop what item?")
			g.display.Selection("Items", containerKeys(g.player.Container()))
			return nil
		}
		return g.dropItem(cmd)
	case "pickup":
		if !cmd.HasThirdWord() {
			g.display.Message("Pickup what item?")
			g.display.Selection("Items", containerKeys(g.currentRoom().Container()))
			return nil
		}
		return g.pickupItem(cmd)
	default:
		g.display.Message(inventoryUsage)
		return nil
	}
}

func (g *Game) showInventory() {
	c := g.player.Container()
	limit, _ := c.Cap()
	g.display.Inventory(InventoryView{
		Stacks: stacksOf(c),
		Weight: c.TotalWeight(),
		Cap:    limit,
	})
}

func containerKeys(c *inventory.Container) []string {
	items := c.Items()
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.Key())
	}
	return out
}

// parseQuantity resolves the optional fourth word against a default of
// "everything available".
func parseQuantity(cmd Command, available int) (int, error) {
	if !cmd.HasFourthWord() {
		return available, nil
	}
	n, err := strconv.Atoi(cmd.FourthWord())
	if err != nil || n <= 0 {
		return 0, failf(ErrInvalidArgument, "Please specify a valid quantity.")
	}
	return n, nil
}

func (g *Game) dropItem(cmd Command) error {
	it, err := g.registry.Lookup(cmd.ThirdWord())
	if err != nil {
		g.display.Selection("Items", containerKeys(g.player.Container()))
		return failf(item.ErrNotFound, "Item not found.")
	}

	held := g.player.Container().QuantityOf(it)
	qty, err := parseQuantity(cmd, held)
	if err != nil {
		return err
	}
	if held < qty || held == 0 {
		return failf(inventory.ErrInsufficientQuantity,
			"You do not have enough %ss to drop.", it.Name())
	}

	r := g.currentRoom()
	// Lockout guard: losing a door key inside a gated room would strand
	// the player permanently.
	if g.world.IsLockedRoom(r.Key()) && g.world.IsDoorKey(it) {
		return failf(ErrIllegalState,
			"If you drop the key here, the door will lock behind you, sealing its secrets forever. I can't let you do that.")
	}

	if err := g.player.Container().Remove(it, qty); err != nil {
		return failf(inventory.ErrInsufficientQuantity, "You do not have enough %ss to drop.", it.Name())
	}
	if err := r.Container().Add(it, qty); err != nil {
		// Room containers are uncapped; adding cannot fail.
		panic(fmt.Sprintf("room add failed: %v", err))
	}

	g.logger.Debug("item dropped", "item", it.Key(), "quantity", qty, "room", r.Key())
	g.display.Message(fmt.Sprintf("You have dropped %d %s%s.", qty, it.Name(), plural(qty)))
	return nil
}

func (g *Game) pickupItem(cmd Command) error {
	it, err := g.registry.Lookup(cmd.ThirdWord())
	if err != nil {
		g.display.Selection("Items", containerKeys(g.currentRoom().Container()))
		return failf(item.ErrNotFound, "Item not found.")
	}

	r := g.currentRoom()
	inRoom := r.Container().QuantityOf(it)
	qty, err := parseQuantity(cmd, inRoom)
	if err != nil {
		return err
	}
	if inRoom < qty || inRoom == 0 {
		return failf(inventory.ErrInsufficientQuantity, "Insufficient quantity in the room.")
	}

	// Credit the player before debiting the room so a capacity failure
	// leaves both containers untouched.
	if err := g.player.Container().Add(it, qty); err != nil {
		return failf(inventory.ErrCapacityExceeded,
			"You do not have enough inventory space for this.")
	}
	if err := r.Container().Remove(it, qty); err != nil {
		panic(fmt.Sprintf("room remove failed after quantity check: %v", err))
	}

	g.logger.Debug("item picked up", "item", it.Key(), "quantity", qty, "room", r.Key())
	g.display.Message(fmt.Sprintf("You have picked up %d %s%s.", qty, it.Name(), plural(qty)))
	g.showInventory()
	return nil
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}

func (g *Game) roomNPCKeys() []string {
	npcs := g.currentRoom().NPCs()
	out := make([]string, 0, len(npcs))
	for _, n := range npcs {
		out = append(out, n.Key())
	}
	return out
}

// resolveNPC maps an alias to a character that is present in the
// player's room and still in play.
func (g *Game) resolveNPC(alias string) (*actor.NPC, error) {
	key, ok := g.aliases[alias]
	if !ok {
		return nil, failf(ErrUnknownNPC, "There is no character called %s.", alias)
	}
	n := g.npcs[key]
	if n == nil || n.Removed() || n.Location() != g.player.Location() {
		return nil, failf(ErrUnknownNPC, "%s is not here.", textutil.Title(strings.ReplaceAll(alias, "_", " ")))
	}
	return n, nil
}

func (g *Game) interactCommand(cmd Command) error {
	if !cmd.HasSecondWord() {
		g.display.Message("State the character you want to interact with:")
		g.display.Selection("Characters", g.roomNPCKeys())
		return nil
	}

	n, err := g.resolveNPC(cmd.SecondWord())
	if err != nil {
		g.display.Selection("Characters", g.roomNPCKeys())
		return err
	}

	line, pos, total := n.Interact()
	if total == 0 {
		g.display.Message(fmt.Sprintf("%s has nothing to say.", n.Name()))
		return nil
	}
	g.display.Message(fmt.Sprintf("[%d/%d] %s", pos, total, line))
	return nil
}

func (g *Game) roomCommand(cmd Command) {
	const usage = "Available room commands:\nroom info - Display information about the current room"
	if !cmd.HasSecondWord() || cmd.SecondWord() != "info" {
		g.display.Message(usage)
		return
	}
	g.ShowRoom()
}

func (g *Game) mapCommand() {
	if !g.settings.MapEnabled {
		g.display.Message("Map is disabled.")
		return
	}
	g.display.Map(g.mapArt)
}

func (g *Game) statsCommand() {
	if g.sheet == nil {
		g.display.Message("You have no character sheet.")
		return
	}
	g.display.Message(strings.Join(g.sheet.View(), "\n"))
}

// tickMovement gives every character its wander draw. Fired once per
// processed command.
func (g *Game) tickMovement() {
	for _, n := range g.npcOrder {
		if !n.WantsMove(g.rng) {
			continue
		}
		r, err := g.world.Room(n.Location())
		if err != nil {
			g.logger.Error("npc in unknown room", "npc", n.Key(), "error", err)
			continue
		}
		dirs := r.Directions()
		if len(dirs) == 0 {
			continue
		}
		dir := dirs[g.rng.Intn(len(dirs))]
		if err := g.world.MoveNPC(n, dir); err != nil {
			g.logger.Error("npc move failed", "npc", n.Key(), "direction", dir, "error", err)
			continue
		}
		g.logger.Debug("npc wandered", "npc", n.Key(), "direction", dir, "room", n.Location())
	}
}
