// Package gifting implements the gift mailing engine: eligibility rules,
// friendship gain estimation, the pending-delivery store, scheduling, and
// the batch distributor that makes recipients actually receive their gifts.
package gifting

import "strings"

// NonGiftableReasons is the set of reasons a gift cannot be sent. Zero
// means the gift is allowed. The set is rebuilt from current world state on
// every evaluation and never cached.
type NonGiftableReasons uint32

const (
	// ReasonUnmet means the player has never met the recipient. When this
	// fires there is no friendship record at all, so no limit or
	// max-friendship reasons can accompany it.
	ReasonUnmet NonGiftableReasons = 1 << iota

	// ReasonCannotReceiveGifts means the recipient accepts no gifts of
	// any kind.
	ReasonCannotReceiveGifts

	// ReasonSpouse means the recipient is the sender's current spouse.
	ReasonSpouse

	// ReasonDivorced means the recipient is divorced from the sender.
	ReasonDivorced

	// ReasonChild means the recipient is one of the sender's children.
	ReasonChild

	// ReasonDailyLimit means the recipient already received a gift today.
	// Only applies under same-day scheduling.
	ReasonDailyLimit

	// ReasonWeeklyLimit means the recipient already received the maximum
	// number of gifts this week.
	ReasonWeeklyLimit

	// ReasonMaxFriendship means the sender already has the maximum
	// allowed friendship with the recipient.
	ReasonMaxFriendship

	// ReasonRejection means the recipient has a scripted rejection for
	// this specific item.
	ReasonRejection

	// ReasonNoDwarvish means the recipient speaks dwarvish and the sender
	// has not learned it.
	ReasonNoDwarvish

	// ReasonQuestMissing means the linked quest is no longer in the
	// sender's quest log.
	ReasonQuestMissing

	// ReasonQuestCompleted means the linked quest was already completed.
	ReasonQuestCompleted
)

// None is the empty reason set; the gift is allowed.
const None NonGiftableReasons = 0

var reasonNames = []struct {
	reason NonGiftableReasons
	name   string
	text   string
}{
	{ReasonUnmet, "Unmet", "you haven't met them yet"},
	{ReasonCannotReceiveGifts, "CannotReceiveGifts", "they cannot receive gifts"},
	{ReasonSpouse, "Spouse", "they live under your own roof"},
	{ReasonDivorced, "Divorced", "they want nothing more to do with you"},
	{ReasonChild, "Child", "they are your own child"},
	{ReasonDailyLimit, "DailyLimit", "they already received a gift that day"},
	{ReasonWeeklyLimit, "WeeklyLimit", "they already received too many gifts that week"},
	{ReasonMaxFriendship, "MaxFriendship", "your friendship couldn't be any stronger"},
	{ReasonRejection, "Rejection", "they refuse that particular item"},
	{ReasonNoDwarvish, "NoDwarvish", "you can't read the dwarvish address label"},
	{ReasonQuestMissing, "QuestMissing", "the errand it was for is gone"},
	{ReasonQuestCompleted, "QuestCompleted", "the errand it was for is already done"},
}

// Has reports whether the set contains the given reason.
func (r NonGiftableReasons) Has(reason NonGiftableReasons) bool {
	return r&reason != 0
}

// String returns the internal names of all set reasons joined with "|",
// or "None" for the empty set. For logs only.
func (r NonGiftableReasons) String() string {
	if r == None {
		return "None"
	}
	var names []string
	for _, entry := range reasonNames {
		if r.Has(entry.reason) {
			names = append(names, entry.name)
		}
	}
	return strings.Join(names, "|")
}

// Descriptions returns human-readable descriptions for every set reason,
// in declaration order.
func (r NonGiftableReasons) Descriptions() []string {
	var texts []string
	for _, entry := range reasonNames {
		if r.Has(entry.reason) {
			texts = append(texts, entry.text)
		}
	}
	return texts
}
