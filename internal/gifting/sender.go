package gifting

import (
	"errors"
	"fmt"

	"github.com/focustense/penpals-server/internal/config"
	"github.com/focustense/penpals-server/internal/logger"
	"github.com/focustense/penpals-server/internal/world"
)

// makingFriendsEventID marks completion of the introduction quest that can
// be required before gift mailing unlocks.
const makingFriendsEventID = "questComplete_25"

// Scheduling errors are soft: nothing is mutated and the caller reports
// them to the player.
var (
	// ErrStaleItem means the player's held item changed underneath the
	// scheduling request.
	ErrStaleItem = errors.New("held item no longer matches the gifted item")

	// ErrStackTooSmall means the held stack can't cover the required
	// item count.
	ErrStackTooSmall = errors.New("held stack is too small")

	// ErrBlacklisted means the item can never be mailed.
	ErrBlacklisted = errors.New("item is blacklisted from gift mail")

	// ErrMailLocked means the introduction quest hasn't been completed.
	ErrMailLocked = errors.New("gift mailing is not unlocked yet")

	// ErrQuestsDisabled means quest-linked parcels are disabled by
	// configuration.
	ErrQuestsDisabled = errors.New("quest deliveries are disabled")
)

// Sender schedules one player's held item for delivery. Bind it to the
// item the selection UI was opened with so a changed hotbar selection is
// detected as stale.
type Sender struct {
	world  world.World
	config *config.GiftingConfig
	rules  *Rules
	data   *GiftMailData
	actor  world.Actor
	item   *world.Item
}

// NewSender creates a sender for the given actor and selected item.
func NewSender(w world.World, cfg *config.GiftingConfig, rules *Rules, data *GiftMailData, actor world.Actor, item *world.Item) *Sender {
	return &Sender{world: w, config: cfg, rules: rules, data: data, actor: actor, item: item}
}

// Schedule queues the selected item for delivery to the named recipient,
// optionally linked to a quest. A non-zero reason set means the rules
// disallow the gift; an error means a soft failure with no state mutated.
// On success any previously queued parcel for the same recipient is
// replaced and its item returned to the sender's inventory.
func (s *Sender) Schedule(npc world.Recipient, questInfo *world.ItemQuestInfo) (NonGiftableReasons, error) {
	if s.config.RequireQuestCompletion && !s.actor.HasSeenEvent(makingFriendsEventID) {
		return None, ErrMailLocked
	}
	if s.rules.IsBlacklisted(s.item) {
		return None, ErrBlacklisted
	}
	if questInfo != nil && !s.config.EnableQuests {
		return None, ErrQuestsDisabled
	}
	questID := ""
	if questInfo != nil {
		questID = questInfo.ID
	}
	if reasons := s.rules.CheckGiftability(s.actor, npc, s.item, questID); reasons != None {
		return reasons, nil
	}
	if s.actor.HeldItem() != s.item {
		logger.Errorf("Couldn't schedule gift: %s's held item no longer matches the gifted item.", s.actor.Name())
		return None, ErrStaleItem
	}
	count := 1
	if questInfo != nil && questInfo.RequiredItemAmount > 1 {
		count = questInfo.RequiredItemAmount
	}
	gift, err := s.actor.RemoveHeldItems(count)
	if err != nil {
		logger.Errorf("Couldn't schedule gift: %v", err)
		return None, fmt.Errorf("%w: %v", ErrStackTooSmall, err)
	}
	if previous, ok := s.data.OutgoingGifts[npc.Name()]; ok {
		s.actor.AddItem(previous.Gift)
	}
	s.data.OutgoingGifts[npc.Name()] = Parcel{Gift: gift, QuestID: questID}
	s.world.PlaySound("Ship")
	logger.Debugf("Scheduled send of %s (quality %d) to %s.", s.item.Name, s.item.Quality, npc.Name())
	return None, nil
}
