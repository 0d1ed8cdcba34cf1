package gifting

import (
	"strings"

	"github.com/focustense/penpals-server/internal/world"
	"github.com/focustense/penpals-server/internal/worlddate"
)

// returnMailPrefix is intentionally hardcoded so renaming the mod/server
// never breaks mail keys already present in save data.
const returnMailPrefix = "focustense.PenPals:ReturnedGift_"

// Parcel is an outgoing gift: the item plus the id of the quest, if any,
// the delivery should complete.
type Parcel struct {
	Gift    *world.Item `json:"gift"`
	QuestID string      `json:"quest_id,omitempty"`
}

// ReturnedGift records a gift that bounced because the recipient was
// non-giftable at delivery time. The record exists only until the sender
// opens the corresponding return mail.
type ReturnedGift struct {
	NPCName    string              `json:"npc_name"`
	Gift       *world.Item         `json:"gift"`
	PickupDate worlddate.WorldDate `json:"pickup_date"`
	Reasons    NonGiftableReasons  `json:"reasons"`
}

// GiftMailData is one player's gift-mail state.
type GiftMailData struct {
	// OutgoingGifts holds scheduled but undelivered parcels, keyed by
	// recipient name. At most one parcel per recipient; scheduling a new
	// one replaces the old.
	OutgoingGifts map[string]Parcel `json:"outgoing_gifts"`

	// ReturnedGifts holds bounced parcels keyed by a unique return id
	// that connects the record to its mailbox entry.
	ReturnedGifts map[string]ReturnedGift `json:"returned_gifts"`
}

// NewGiftMailData creates empty per-player gift-mail state.
func NewGiftMailData() *GiftMailData {
	return &GiftMailData{
		OutgoingGifts: make(map[string]Parcel),
		ReturnedGifts: make(map[string]ReturnedGift),
	}
}

// Store is the durable cross-session gift-mail state for all players,
// keyed by player id. It is owned by the hosting session and only mutated
// from the single-threaded simulation loop.
type Store struct {
	PlayerGiftMail map[int64]*GiftMailData `json:"player_gift_mail"`
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{PlayerGiftMail: make(map[int64]*GiftMailData)}
}

// DataFor returns the gift-mail state for a player, creating it on first
// use.
func (s *Store) DataFor(playerID int64) *GiftMailData {
	data, ok := s.PlayerGiftMail[playerID]
	if !ok {
		data = NewGiftMailData()
		s.PlayerGiftMail[playerID] = data
	}
	return data
}

// CollectReturn removes and returns the returned-gift record for the given
// return id, as happens when the player opens the return mail.
func (s *Store) CollectReturn(playerID int64, returnID string) (ReturnedGift, bool) {
	data, ok := s.PlayerGiftMail[playerID]
	if !ok {
		return ReturnedGift{}, false
	}
	returned, ok := data.ReturnedGifts[returnID]
	if !ok {
		return ReturnedGift{}, false
	}
	delete(data.ReturnedGifts, returnID)
	return returned, true
}

// ReturnMailKey builds the mailbox message key for a returned gift.
func ReturnMailKey(returnID string) string {
	return returnMailPrefix + returnID
}

// ReturnIDFromMailKey extracts the return id from a mailbox message key,
// or "" if the key is not a gift-return mail.
func ReturnIDFromMailKey(mailKey string) string {
	if !strings.HasPrefix(mailKey, returnMailPrefix) {
		return ""
	}
	return mailKey[len(returnMailPrefix):]
}
