package command

import (
	"fmt"
	"sort"
	"strings"

	"github.com/focustense/penpals-server/internal/logger"
	"github.com/focustense/penpals-server/internal/world"
)

func (e *Executor) executeDate() string {
	date := e.world.Date()
	return fmt.Sprintf("It is %s (%s).", date, date.Weekday())
}

// executeAdvance runs a full day boundary: the end-of-day sweep, the
// calendar roll with counter resets, then the morning sweep. Which of the
// two sweeps actually delivers depends on the configured scheduling mode.
func (e *Executor) executeAdvance() string {
	evening := e.engine.OnDayEnding()
	date := e.world.AdvanceDay()
	morning := e.engine.OnDayStarted()
	e.persist()
	return fmt.Sprintf("Advanced to %s (%s). Delivered %d parcel(s) overnight.",
		date, date.Weekday(), len(evening)+len(morning))
}

func (e *Executor) executeFriendship(c *Command) string {
	if err := c.RequireArgs(1, "Usage: friendship <player> [npc]"); err != nil {
		return err.Error()
	}
	player, ok := e.world.PlayerByName(c.Args[0])
	if !ok {
		return fmt.Sprintf("No player named %s.", c.Args[0])
	}

	describe := func(npcName string, f world.Friendship) string {
		hearts := f.Points / world.PointsPerHeart
		return fmt.Sprintf("  %s: %d pts (%d hearts), %d gift(s) today, %d this week [%s]",
			npcName, f.Points, hearts, f.GiftsToday, f.GiftsThisWeek, f.Status)
	}

	if len(c.Args) > 1 {
		f, ok := player.Friendship(c.Args[1])
		if !ok {
			return fmt.Sprintf("%s hasn't met %s.", player.Name(), c.Args[1])
		}
		return describe(c.Args[1], f)
	}

	friendships := player.Friendships()
	if len(friendships) == 0 {
		return fmt.Sprintf("%s hasn't met anyone yet.", player.Name())
	}
	names := make([]string, 0, len(friendships))
	for npcName := range friendships {
		names = append(names, npcName)
	}
	sort.Strings(names)
	lines := make([]string, 0, len(names))
	for _, npcName := range names {
		lines = append(lines, describe(npcName, friendships[npcName]))
	}
	return fmt.Sprintf("Friendships for %s:\n%s", player.Name(), strings.Join(lines, "\n"))
}

func (e *Executor) executeSave() string {
	if e.db == nil {
		return "Persistence is disabled."
	}
	if err := e.db.SaveStore(e.engine.Store()); err != nil {
		return fmt.Sprintf("Failed to save: %v", err)
	}
	return "Gift-mail store saved."
}

// persist writes the store after commands that mutate it. Failures are
// logged rather than surfaced; the in-memory store stays authoritative.
func (e *Executor) persist() {
	if e.db == nil {
		return
	}
	if err := e.db.SaveStore(e.engine.Store()); err != nil {
		logger.Errorf("Failed to persist gift-mail store: %v", err)
	}
}
