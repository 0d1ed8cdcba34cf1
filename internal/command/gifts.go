package command

import (
	"fmt"
	"sort"
	"strings"

	"github.com/focustense/penpals-server/internal/gifting"
	"github.com/focustense/penpals-server/internal/world"
)

func (e *Executor) executeSend(c *Command) string {
	if err := c.RequireArgs(2, "Usage: send <player> <npc> [quest-id]"); err != nil {
		return err.Error()
	}
	player, ok := e.world.PlayerByName(c.Args[0])
	if !ok {
		return fmt.Sprintf("No player named %s.", c.Args[0])
	}
	npc, ok := e.world.NPCByName(c.Args[1])
	if !ok {
		return fmt.Sprintf("No NPC named %s.", c.Args[1])
	}
	held := player.HeldItem()
	if held == nil {
		return fmt.Sprintf("%s is not holding anything.", player.Name())
	}

	var questInfo *world.ItemQuestInfo
	if len(c.Args) > 2 {
		quest, ok := player.QuestByID(c.Args[2])
		if !ok {
			return fmt.Sprintf("%s has no quest %s.", player.Name(), c.Args[2])
		}
		questInfo = world.QuestInfoFor(quest, npc.Name())
		if questInfo == nil {
			return fmt.Sprintf("Quest %s can't be completed by mailing %s.", c.Args[2], npc.Name())
		}
	}

	reasons, err := e.engine.Sender(player, held).Schedule(npc, questInfo)
	if err != nil {
		return fmt.Sprintf("Couldn't schedule the gift: %v", err)
	}
	if reasons != gifting.None {
		return fmt.Sprintf("%s can't receive this gift: %s.", npc.DisplayName(),
			strings.Join(reasons.Descriptions(), "; "))
	}
	e.persist()
	return fmt.Sprintf("Scheduled %s for delivery to %s on %s.", held.Name, npc.DisplayName(), e.engine.Rules().DeliveryDate())
}

func (e *Executor) executeQueue(c *Command) string {
	var lines []string
	for playerID, data := range e.engine.Store().PlayerGiftMail {
		senderName := fmt.Sprintf("player %d", playerID)
		if player, ok := e.world.PlayerByID(playerID); ok {
			senderName = player.Name()
		}
		if len(c.Args) > 0 && !strings.EqualFold(senderName, c.Args[0]) {
			continue
		}
		for npcName, parcel := range data.OutgoingGifts {
			line := fmt.Sprintf("  %s -> %s: %s", senderName, npcName, parcel.Gift)
			if parcel.QuestID != "" {
				line += fmt.Sprintf(" [quest %s]", parcel.QuestID)
			}
			lines = append(lines, line)
		}
	}
	if len(lines) == 0 {
		return "No scheduled parcels."
	}
	sort.Strings(lines)
	return "Scheduled parcels:\n" + strings.Join(lines, "\n")
}

func (e *Executor) executeDryRun() string {
	results := e.engine.Distributor().DryRun()
	if len(results) == 0 {
		return "Nothing queued for delivery."
	}
	lines := make([]string, 0, len(results))
	for _, result := range results {
		lines = append(lines, "  "+result.String())
	}
	sort.Strings(lines)
	return "Next sweep would produce:\n" + strings.Join(lines, "\n")
}

func (e *Executor) executeReceiveAll() string {
	results := e.engine.Distributor().ReceiveAll()
	gifting.LogResults(results, "Forced Sweep Results:")
	e.persist()
	if len(results) == 0 {
		return "Nothing to deliver."
	}
	lines := make([]string, 0, len(results))
	for _, result := range results {
		lines = append(lines, "  "+result.String())
	}
	sort.Strings(lines)
	return fmt.Sprintf("Delivered %d parcel(s):\n%s", len(results), strings.Join(lines, "\n"))
}

func (e *Executor) executeReturns(c *Command) string {
	if err := c.RequireArgs(1, "Usage: returns <player>"); err != nil {
		return err.Error()
	}
	player, ok := e.world.PlayerByName(c.Args[0])
	if !ok {
		return fmt.Sprintf("No player named %s.", c.Args[0])
	}
	var lines []string
	for _, mailKey := range player.Mailbox() {
		text, ok := e.engine.ReturnMailText(player.ID(), mailKey)
		if !ok {
			continue
		}
		lines = append(lines, fmt.Sprintf("  %s\n    %s", mailKey, text))
	}
	if len(lines) == 0 {
		return fmt.Sprintf("%s has no unclaimed returns.", player.Name())
	}
	return fmt.Sprintf("Unclaimed returns for %s:\n%s", player.Name(), strings.Join(lines, "\n"))
}

func (e *Executor) executeCollect(c *Command) string {
	if err := c.RequireArgs(2, "Usage: collect <player> <mail-key>"); err != nil {
		return err.Error()
	}
	player, ok := e.world.PlayerByName(c.Args[0])
	if !ok {
		return fmt.Sprintf("No player named %s.", c.Args[0])
	}
	mailKey := c.Args[1]
	returned, ok := e.engine.CollectReturn(player, mailKey)
	if !ok {
		return fmt.Sprintf("No return mail %s for %s.", mailKey, player.Name())
	}
	player.RemoveMail(mailKey)
	e.persist()
	return fmt.Sprintf("%s reclaimed %s from the return to %s.", player.Name(), returned.Gift, returned.NPCName)
}
