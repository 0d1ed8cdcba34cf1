package gifting

import (
	"github.com/focustense/penpals-server/internal/config"
	"github.com/focustense/penpals-server/internal/world"
	"github.com/focustense/penpals-server/internal/worlddate"
)

// Rules evaluates whether and how profitably a gift can be mailed. A Rules
// value binds one configuration snapshot, one custom-rules snapshot, and
// one world date; build a fresh one per evaluation so live config edits and
// rule-asset patches take effect immediately.
type Rules struct {
	config *config.GiftingConfig
	custom *CustomRules
	date   worlddate.WorldDate
}

// NewRules creates a rule evaluator for the given snapshots.
func NewRules(cfg *config.GiftingConfig, custom *CustomRules, date worlddate.WorldDate) *Rules {
	return &Rules{config: cfg, custom: custom, date: date}
}

// DeliveryDate returns the date the gift will actually arrive under the
// configured scheduling mode.
func (r *Rules) DeliveryDate() worlddate.WorldDate {
	return worlddate.ResolveDeliveryDate(r.date, r.config.Scheduling)
}

// CheckGiftability returns every reason the given item cannot be mailed
// from the sender to the recipient. Zero means the gift is allowed.
//
// Quest-linked parcels are not normal gifts: they are only checked for the
// quest still existing and being incomplete, and bypass all taste and limit
// rules.
func (r *Rules) CheckGiftability(from world.Actor, to world.Recipient, item *world.Item, questID string) NonGiftableReasons {
	reasons := None
	if questID != "" {
		quest, ok := from.QuestByID(questID)
		if !ok {
			reasons |= ReasonQuestMissing
		} else if quest.Completed {
			reasons |= ReasonQuestCompleted
		}
		return reasons
	}
	if !to.CanReceiveGifts() {
		reasons |= ReasonCannotReceiveGifts
	}
	if to.IsChild() {
		reasons |= ReasonChild
	}
	if spouseID, ok := to.SpouseID(); ok && spouseID == from.ID() {
		reasons |= ReasonSpouse
	}
	if to.IsDivorcedFrom(from.ID()) {
		reasons |= ReasonDivorced
	}
	if to.SpeaksDwarvish() && !from.UnderstandsDwarvish() {
		reasons |= ReasonNoDwarvish
	}
	// Two dialogue key conventions exist for scripted rejections; older
	// content uses the lowercase prefix.
	if to.HasDialogue("reject_"+item.ID) || to.HasDialogue("RejectItem_"+item.ID) {
		reasons |= ReasonRejection
	}
	friendship, ok := from.Friendship(to.Name())
	if !ok {
		// No friendship record exists, so none of the remaining checks
		// can be evaluated.
		reasons |= ReasonUnmet
		return reasons
	}
	if friendship.Points >= world.MaxFriendshipPoints(friendship, to.IsDatable()) {
		reasons |= ReasonMaxFriendship
	}
	if !r.custom.IgnoreLimits[item.QualifiedID()] {
		sameDay := r.config.Scheduling == worlddate.SchedulingSameDay
		if sameDay && friendship.GiftsToday >= 1 {
			reasons |= ReasonDailyLimit
		}
		if friendship.GiftsThisWeek >= 2 &&
			(sameDay || r.DeliveryDate().Weekday() != worlddate.Sunday) &&
			!r.WillReceiveOnBirthday(to) {
			reasons |= ReasonWeeklyLimit
		}
	}
	return reasons
}

// EstimateFriendshipGain estimates, with high accuracy, the friendship
// delta the recipient's gift receipt will produce. This is the dry-run
// preview value, so it must track the simulation's own computation.
func (r *Rules) EstimateFriendshipGain(from world.Actor, to world.Recipient, item *world.Item, quest *world.Quest) int {
	if quest != nil {
		return r.QuestPoints(quest)
	}
	multiplier := item.QualityMultiplier()
	if r.WillReceiveOnBirthday(to) {
		multiplier *= 8
	}
	if spouseID, ok := to.SpouseID(); ok && spouseID == from.ID() {
		multiplier /= 2
	}
	basePoints := to.GiftTaste(item).BasePoints()
	if basePoints > 0 {
		multiplier *= r.config.FriendshipMultiplier
	}
	resultPoints := int(float64(basePoints) * multiplier)
	currentPoints := 0
	if friendship, ok := from.Friendship(to.Name()); ok {
		currentPoints = friendship.Points
		maxPoints := world.MaxFriendshipPoints(friendship, to.IsDatable())
		remainingPoints := maxPoints - currentPoints
		if remainingPoints < 0 {
			remainingPoints = 0
		}
		if resultPoints > remainingPoints {
			resultPoints = remainingPoints
		}
	}
	if resultPoints < 0 && resultPoints < -currentPoints {
		resultPoints = -currentPoints
	}
	return resultPoints
}

// QuestPoints returns the friendship awarded for completing a quest by
// mail, after scaling.
func (r *Rules) QuestPoints(quest *world.Quest) int {
	basePoints := 255
	if quest.Daily {
		basePoints = 150
	}
	return int(float64(basePoints) * r.config.QuestFriendshipMultiplier)
}

// IsLimitExempt reports whether the item bypasses (and does not count
// toward) daily and weekly gift limits.
func (r *Rules) IsLimitExempt(item *world.Item) bool {
	return r.custom.IgnoreLimits[item.QualifiedID()]
}

// IsBlacklisted reports whether the item can never be mailed.
func (r *Rules) IsBlacklisted(item *world.Item) bool {
	return r.custom.Blacklist[item.QualifiedID()]
}

// HasMaxFriendship reports whether the sender is already at the maximum
// allowed friendship with the recipient.
func (r *Rules) HasMaxFriendship(from world.Actor, to world.Recipient) bool {
	friendship, ok := from.Friendship(to.Name())
	return ok && friendship.Points >= world.MaxFriendshipPoints(friendship, to.IsDatable())
}

// WillReceiveOnBirthday reports whether the gift would arrive on the
// recipient's birthday, accounting for the scheduling mode. Under next-day
// scheduling a birthday gift has to be mailed the day before.
func (r *Rules) WillReceiveOnBirthday(to world.Recipient) bool {
	season, day := to.Birthday()
	delivery := r.DeliveryDate()
	return delivery.Season == season && delivery.Day == day
}
