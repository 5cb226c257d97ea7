package worldspec

import (
	"fmt"

	"github.com/mrazzaque/mystic-manor/pkg/actor"
	"github.com/mrazzaque/mystic-manor/pkg/game"
	"github.com/mrazzaque/mystic-manor/pkg/item"
	"github.com/mrazzaque/mystic-manor/pkg/textutil"
	"github.com/mrazzaque/mystic-manor/pkg/world"
)

func itemKey(name string) string { return textutil.Snake(name) }

// Build turns a validated definition into game params. The caller adds
// the session collaborators (display, logger, rand) before game.New.
func (s *Spec) Build() (game.Params, error) {
	if err := s.Validate(); err != nil {
		return game.Params{}, fmt.Errorf("invalid world %q: %w", s.Name, err)
	}

	reg := item.NewRegistry()
	for _, it := range s.Items {
		if _, err := reg.Register(it.Name, it.Weight); err != nil {
			return game.Params{}, fmt.Errorf("register item %q: %w", it.Name, err)
		}
	}

	w := world.New()
	for _, pair := range s.Opposites {
		w.SetOpposites(pair[0], pair[1])
	}
	for _, rs := range s.Rooms {
		r := world.NewRoom(rs.Name, rs.Description)
		if err := w.AddRoom(r); err != nil {
			return game.Params{}, err
		}
		for dir, dst := range rs.Exits {
			r.SetExit(dir, dst)
		}
		for ik, qty := range rs.Items {
			it, err := reg.Lookup(ik)
			if err != nil {
				return game.Params{}, fmt.Errorf("room %q: %w", r.Key(), err)
			}
			if err := r.Container().Add(it, qty); err != nil {
				return game.Params{}, fmt.Errorf("room %q: %w", r.Key(), err)
			}
		}
	}
	for _, d := range s.Doors {
		key, err := reg.Lookup(d.Key)
		if err != nil {
			return game.Params{}, fmt.Errorf("door %s/%s: %w", d.Room, d.Direction, err)
		}
		if err := w.Lock(d.Room, d.Direction, key); err != nil {
			return game.Params{}, err
		}
	}

	npcs := make([]*actor.NPC, 0, len(s.NPCs))
	aliases := make(map[string]string)
	for _, ns := range s.NPCs {
		behavior, err := actor.ParseBehavior(ns.Behavior)
		if err != nil {
			return game.Params{}, fmt.Errorf("npc %q: %w", ns.Name, err)
		}
		n, err := actor.NewNPC(ns.Name, behavior, ns.Health, ns.Room)
		if err != nil {
			return game.Params{}, err
		}
		n.SetDialog(ns.Dialog)
		for ik, qty := range ns.Items {
			it, err := reg.Lookup(ik)
			if err != nil {
				return game.Params{}, fmt.Errorf("npc %q: %w", n.Key(), err)
			}
			if err := n.Container().Add(it, qty); err != nil {
				return game.Params{}, fmt.Errorf("npc %q: %w", n.Key(), err)
			}
		}
		if err := w.PlaceNPC(n); err != nil {
			return game.Params{}, err
		}
		npcs = append(npcs, n)
		for _, a := range ns.Aliases {
			aliases[a] = n.Key()
		}
	}

	player, err := actor.NewPlayer(s.Player.Start, s.Player.Capacity)
	if err != nil {
		return game.Params{}, err
	}
	for ik, qty := range s.Player.Items {
		it, err := reg.Lookup(ik)
		if err != nil {
			return game.Params{}, fmt.Errorf("player items: %w", err)
		}
		if err := player.Container().Add(it, qty); err != nil {
			return game.Params{}, fmt.Errorf("player items: %w", err)
		}
	}

	var sheet *actor.Sheet
	if s.Player.Sheet != nil {
		sheet, err = actor.NewSheet(*s.Player.Sheet)
		if err != nil {
			return game.Params{}, fmt.Errorf("player sheet: %w", err)
		}
	}

	effects := make(map[string]game.Effect, len(s.Effects))
	for ik, es := range s.Effects {
		kind, _ := game.ParseEffectKind(es.Kind)
		effects[ik] = game.Effect{
			Kind:        kind,
			Lines:       es.Lines,
			Delay:       es.delay(),
			Damage:      es.Damage,
			ImmuneLines: es.ImmuneLines,
			RegretLines: es.RegretLines,
			DefeatLines: es.DefeatLines,
		}
	}

	var riddle *game.Riddle
	if r := s.Riddle; r != nil {
		riddle = &game.Riddle{
			NPCKey:           r.NPC,
			Currency:         r.Currency,
			Amount:           r.Amount,
			Answers:          r.Answers,
			Reward:           r.Reward,
			RewardQty:        r.RewardQty,
			UncoverLine:      r.UncoverLine,
			AbsentLine:       r.AbsentLine,
			InsufficientLine: r.InsufficientLine,
			PromptLine:       r.PromptLine,
			WrongLine:        r.WrongLine,
			AltAnswerLine:    r.AltAnswerLine,
			SuccessLines:     r.SuccessLines,
		}
	}

	return game.Params{
		Registry: reg,
		World:    w,
		Player:   player,
		Sheet:    sheet,
		NPCs:     npcs,
		Aliases:  aliases,
		Effects:  effects,
		Riddle:   riddle,
		MapArt:   s.MapArt,
		Help:     s.Help,
	}, nil
}
