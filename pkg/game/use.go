package game

import (
	"fmt"
	"strings"

	"github.com/mrazzaque/mystic-manor/pkg/actor"
	"github.com/mrazzaque/mystic-manor/pkg/inventory"
	"github.com/mrazzaque/mystic-manor/pkg/item"
)

func (g *Game) useCommand(cmd Command) error {
	if !cmd.HasSecondWord() {
		g.display.Message("Use what?")
		g.display.Selection("Items", containerKeys(g.player.Container()))
		return nil
	}

	it, err := g.registry.Lookup(cmd.SecondWord())
	if err != nil {
		g.display.Selection("Items", containerKeys(g.player.Container()))
		return failf(item.ErrNotFound, "Item not found.")
	}
	if g.player.Container().QuantityOf(it) == 0 {
		return failf(ErrNotOwned, "You cannot use an item that you do not have.")
	}

	effect, ok := g.effects[it.Key()]
	if !ok {
		g.display.Message("Nothing happens.")
		return nil
	}

	switch effect.Kind {
	case EffectInformational, EffectKeyHint:
		g.display.Paced(effect.Lines, effect.Delay)
		return nil
	case EffectWeapon:
		return g.useWeapon(cmd, it, effect)
	case EffectCleanse:
		return g.useCleanse(cmd, effect)
	case EffectTeleport:
		return g.useTeleport(effect)
	case EffectVictory:
		g.display.Paced(effect.Lines, effect.Delay)
		g.over = true
		g.logger.Info("game won", "session", g.id, "item", it.Key())
		g.exit(0)
		return nil
	default:
		return failf(ErrIllegalState, "Nothing happens.")
	}
}

// useTarget resolves the third word as a present character, showing the
// room's character selection on any failure.
func (g *Game) useTarget(cmd Command) (*actor.NPC, error) {
	if !cmd.HasThirdWord() {
		g.display.Message("Use on what?")
		g.display.Selection("Characters", g.roomNPCKeys())
		return nil, nil
	}
	n, err := g.resolveNPC(cmd.ThirdWord())
	if err != nil {
		g.display.Selection("Characters", g.roomNPCKeys())
		return nil, err
	}
	return n, nil
}

func (g *Game) useWeapon(cmd Command, it item.Item, effect Effect) error {
	target, err := g.useTarget(cmd)
	if target == nil || err != nil {
		return err
	}

	if target.Behavior() == actor.Passive {
		return failf(ErrIllegalState, "Now why would you want to attack a passive character...")
	}

	if target.Behavior() == actor.Boss {
		// Bosses are immune to weapons; the attack plays out as
		// narration only.
		g.display.Paced(fillName(effect.ImmuneLines, target.Name()), effect.Delay)
		return nil
	}

	dead := target.Damage(effect.Damage)
	g.logger.Debug("npc attacked",
		"npc", target.Key(), "item", it.Key(), "damage", effect.Damage, "health", target.Health())
	g.display.Message(fmt.Sprintf("You strike %s with the %s for %d damage.",
		target.Name(), it.Name(), effect.Damage))
	if !dead {
		return nil
	}

	if err := g.world.RemoveNPC(target); err != nil {
		return fmt.Errorf("remove defeated character: %w", err)
	}
	g.display.Paced(fillName(effect.DefeatLines, target.Name()), effect.Delay)
	return nil
}

func (g *Game) useCleanse(cmd Command, effect Effect) error {
	target, err := g.useTarget(cmd)
	if target == nil || err != nil {
		return err
	}

	if err := g.world.RemoveNPC(target); err != nil {
		return fmt.Errorf("remove cleansed character: %w", err)
	}

	if target.Behavior() == actor.Passive {
		g.display.Message(strings.Join(fillName(effect.RegretLines, target.Name()), "\n"))
		return nil
	}
	g.display.Paced(fillName(effect.DefeatLines, target.Name()), effect.Delay)
	g.logger.Info("npc cleansed", "npc", target.Key(), "room", g.player.Location())
	return nil
}

func (g *Game) useTeleport(effect Effect) error {
	dst, err := g.world.RandomUnlockedRoom(g.rng)
	if err != nil {
		return fmt.Errorf("teleport: %w", err)
	}

	g.display.Paced(effect.Lines, effect.Delay)

	// A teleport severs the walked path, so retracing it is no longer
	// meaningful.
	g.backStack = nil
	g.player.MoveTo(dst.Key())
	g.visited[dst.Key()] = true
	g.logger.Debug("player teleported", "room", dst.Key())
	g.ShowRoom()
	return nil
}

func (g *Game) answerCommand(cmd Command) error {
	if g.riddle == nil {
		g.display.Message("There is no riddle to answer.")
		return nil
	}
	r := g.riddle

	keeper := g.npcs[r.NPCKey]
	if keeper == nil {
		return failf(ErrIllegalState, "There is no riddle to answer.")
	}
	if !keeper.Interacted() {
		return failf(ErrIllegalState, "%s", r.UncoverLine)
	}
	if keeper.Removed() || keeper.Location() != g.player.Location() {
		return failf(ErrIllegalState, "%s", r.AbsentLine)
	}

	currency, err := g.registry.Lookup(r.Currency)
	if err != nil {
		return fmt.Errorf("riddle currency: %w", err)
	}
	if g.player.Container().QuantityOf(currency) < r.Amount {
		return failf(ErrIllegalState, "%s", r.InsufficientLine)
	}

	if !cmd.HasSecondWord() {
		return failf(ErrInvalidArgument, "%s", r.PromptLine)
	}

	ok, canonical := r.Accepts(cmd.SecondWord())
	if !ok {
		return failf(ErrInvalidArgument, "%s", r.WrongLine)
	}

	reward, err := g.registry.Lookup(r.Reward)
	if err != nil {
		return fmt.Errorf("riddle reward: %w", err)
	}

	// The trade is atomic: verify the reward fits the player's weight
	// budget before touching either side.
	debit := r.Amount * currency.Weight()
	credit := r.RewardQty * reward.Weight()
	if limit, capped := g.player.Container().Cap(); capped {
		if g.player.Container().TotalWeight()-debit+credit > limit {
			return failf(inventory.ErrCapacityExceeded,
				"You do not have enough inventory space for this.")
		}
	}
	if keeper.Container().QuantityOf(reward) < r.RewardQty {
		return failf(ErrIllegalState, "%s has nothing left to give.", keeper.Name())
	}

	if !canonical {
		g.display.Message(r.AltAnswerLine)
	}
	g.display.Message(strings.Join(r.SuccessLines, "\n"))

	if err := g.player.Container().Remove(currency, r.Amount); err != nil {
		return fmt.Errorf("debit riddle currency: %w", err)
	}
	if err := keeper.Container().Remove(reward, r.RewardQty); err != nil {
		return fmt.Errorf("debit riddle reward: %w", err)
	}
	if err := g.player.Container().Add(reward, r.RewardQty); err != nil {
		return fmt.Errorf("credit riddle reward: %w", err)
	}

	g.logger.Info("riddle solved", "session", g.id, "reward", reward.Key())
	g.showInventory()
	return nil
}
