package sim

import (
	"fmt"

	"github.com/focustense/penpals-server/internal/logger"
	"github.com/focustense/penpals-server/internal/world"
	"github.com/focustense/penpals-server/internal/worlddate"
)

// Simulation is an in-memory world. Implements world.World.
type Simulation struct {
	date              worlddate.WorldDate
	players           map[int64]*Player
	npcs              map[string]*NPC
	sounds            []string
	mailInvalidations int
}

// NewSimulation creates an empty simulation starting at the given date.
func NewSimulation(date worlddate.WorldDate) *Simulation {
	return &Simulation{
		date:    date,
		players: make(map[int64]*Player),
		npcs:    make(map[string]*NPC),
	}
}

// Date returns the current simulation date.
func (s *Simulation) Date() worlddate.WorldDate {
	return s.date
}

// SetDate jumps the simulation to a specific date without running day
// boundaries.
func (s *Simulation) SetDate(date worlddate.WorldDate) {
	s.date = date
}

// AddPlayer registers a player with the simulation.
func (s *Simulation) AddPlayer(p *Player) {
	s.players[p.ID()] = p
}

// AddNPC registers an NPC with the simulation.
func (s *Simulation) AddNPC(n *NPC) {
	s.npcs[n.Name()] = n
}

// Player resolves an actor by stable id.
func (s *Simulation) Player(id int64) (world.Actor, bool) {
	p, ok := s.players[id]
	if !ok {
		return nil, false
	}
	return p, true
}

// PlayerByID returns the concrete player for direct state access.
func (s *Simulation) PlayerByID(id int64) (*Player, bool) {
	p, ok := s.players[id]
	return p, ok
}

// PlayerByName resolves a player by name.
func (s *Simulation) PlayerByName(name string) (*Player, bool) {
	for _, p := range s.players {
		if p.Name() == name {
			return p, true
		}
	}
	return nil, false
}

// Players returns every registered player.
func (s *Simulation) Players() []*Player {
	players := make([]*Player, 0, len(s.players))
	for _, p := range s.players {
		players = append(players, p)
	}
	return players
}

// CharacterByName resolves a recipient by stable name.
func (s *Simulation) CharacterByName(name string) (world.Recipient, bool) {
	n, ok := s.npcs[name]
	if !ok {
		return nil, false
	}
	return n, true
}

// NPCByName returns the concrete NPC for direct state access.
func (s *Simulation) NPCByName(name string) (*NPC, bool) {
	n, ok := s.npcs[name]
	return n, ok
}

// ChangeFriendship applies a point delta to the actor's relationship with
// the recipient, clamped to the relationship's bounds, and returns the
// resulting point total.
func (s *Simulation) ChangeFriendship(actor world.Actor, npc world.Recipient, points int) int {
	p, ok := s.players[actor.ID()]
	if !ok {
		return 0
	}
	f, ok := p.friendships[npc.Name()]
	if !ok {
		f = &world.Friendship{Status: world.StatusFriendly}
		p.friendships[npc.Name()] = f
	}
	f.Points += points
	if maxPoints := world.MaxFriendshipPoints(*f, npc.IsDatable()); f.Points > maxPoints {
		f.Points = maxPoints
	}
	if f.Points < 0 {
		f.Points = 0
	}
	return f.Points
}

// ReceiveGift performs the full immediate-delivery gift mutation: taste
// lookup, point change and counter updates. The point computation matches
// the rule evaluator's estimate.
func (s *Simulation) ReceiveGift(npc world.Recipient, gift *world.Item, from world.Actor, opts world.GiftOptions) error {
	p, ok := s.players[from.ID()]
	if !ok {
		return fmt.Errorf("unknown player id %d", from.ID())
	}
	multiplier := gift.QualityMultiplier()
	season, day := npc.Birthday()
	if s.date.Season == season && s.date.Day == day {
		multiplier *= 8
	}
	if spouseID, ok := npc.SpouseID(); ok && spouseID == from.ID() {
		multiplier /= 2
	}
	if opts.FriendshipMultiplier > 0 {
		multiplier *= opts.FriendshipMultiplier
	}
	points := int(float64(npc.GiftTaste(gift).BasePoints()) * multiplier)
	s.ChangeFriendship(p, npc, points)
	if opts.CountTowardLimits {
		if f, ok := p.friendships[npc.Name()]; ok {
			f.GiftsToday++
			f.GiftsThisWeek++
		}
	}
	if !opts.SuppressSound {
		s.PlaySound("give_gift")
	}
	if opts.ShowResponse {
		logger.Debugf("%s reacts to the %s from %s.", npc.DisplayName(), gift.Name, p.Name())
	}
	return nil
}

// CompleteQuest marks a quest in the actor's log complete and pays out its
// money reward.
func (s *Simulation) CompleteQuest(actor world.Actor, quest *world.Quest, opts world.QuestOptions) error {
	p, ok := s.players[actor.ID()]
	if !ok {
		return fmt.Errorf("unknown player id %d", actor.ID())
	}
	logged, ok := p.QuestByID(quest.SafeID())
	if !ok {
		return fmt.Errorf("quest %s is not in %s's log", quest.SafeID(), p.Name())
	}
	if logged.Completed {
		return fmt.Errorf("quest %s is already complete", quest.SafeID())
	}
	logged.Completed = true
	p.gold += logged.MoneyReward
	if !opts.SuppressSound {
		s.PlaySound("questcomplete")
	}
	return nil
}

// PlaySound records a sound cue request.
func (s *Simulation) PlaySound(name string) {
	s.sounds = append(s.sounds, name)
}

// Sounds returns every sound cue requested so far.
func (s *Simulation) Sounds() []string {
	return s.sounds
}

// ClearSounds discards recorded sound cues.
func (s *Simulation) ClearSounds() {
	s.sounds = nil
}

// InvalidateMailData records a mail cache invalidation request.
func (s *Simulation) InvalidateMailData() {
	s.mailInvalidations++
}

// MailInvalidations returns how many times the mail cache was invalidated.
func (s *Simulation) MailInvalidations() int {
	return s.mailInvalidations
}

// AdvanceDay moves the simulation to the next day, resetting daily gift
// counters and, on Sundays, weekly counters.
func (s *Simulation) AdvanceDay() worlddate.WorldDate {
	s.date = s.date.AddDays(1)
	weeklyReset := s.date.Weekday() == worlddate.Sunday
	for _, p := range s.players {
		for _, f := range p.friendships {
			f.GiftsToday = 0
			if weeklyReset {
				f.GiftsThisWeek = 0
			}
		}
	}
	return s.date
}
