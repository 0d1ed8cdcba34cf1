package world

import "github.com/focustense/penpals-server/internal/worlddate"

// Actor is the sender side of a gift: a player character resolved by its
// stable id.
type Actor interface {
	ID() int64
	Name() string

	// Friendship returns a snapshot of the actor's relationship record
	// with the named NPC. The second return is false when the actor has
	// never met the NPC.
	Friendship(npcName string) (Friendship, bool)

	// UnderstandsDwarvish reports whether the actor has unlocked the
	// restricted dwarvish language.
	UnderstandsDwarvish() bool

	// HasSeenEvent reports whether the actor has seen the named scripted
	// event. Used for the "Making Friends" quest gate.
	HasSeenEvent(eventID string) bool

	// QuestByID finds a quest in the actor's quest log by its safe id.
	QuestByID(questID string) (*Quest, bool)

	// HeldItem returns the actor's currently held item, or nil.
	HeldItem() *Item

	// RemoveHeldItems splits count items off the held stack and returns
	// them as a new stack. Fails without mutation if the held stack is
	// too small.
	RemoveHeldItems(count int) (*Item, error)

	// AddItem returns an item to the actor's inventory, merging stacks
	// of the same kind.
	AddItem(item *Item)

	// AddMail appends a message key to the actor's mailbox.
	AddMail(key string)
}

// Recipient is an NPC that may receive mailed gifts, resolved by its stable
// name.
type Recipient interface {
	Name() string
	DisplayName() string
	CanReceiveGifts() bool
	IsChild() bool
	IsDatable() bool

	// Birthday returns the recipient's birthday as season and day of
	// month.
	Birthday() (worlddate.Season, int)

	// SpeaksDwarvish reports whether the recipient requires the
	// restricted language to interact with.
	SpeaksDwarvish() bool

	// HasDialogue reports whether the recipient has a dialogue entry for
	// the given key. Scripted rejections are stored under item-keyed
	// dialogue.
	HasDialogue(key string) bool

	// SpouseID returns the actor id the recipient is married to, if any.
	SpouseID() (int64, bool)

	// IsDivorcedFrom reports whether the recipient was previously married
	// to the given actor.
	IsDivorcedFrom(actorID int64) bool

	// GiftTaste returns the recipient's taste for the given item.
	GiftTaste(item *Item) GiftTaste
}

// GiftOptions controls side effects of a gift-receipt mutation. Sound
// suppression is an explicit parameter here rather than global state so the
// batch sweep can silence per-gift sounds without shared flags.
type GiftOptions struct {
	// FriendshipMultiplier scales the friendship delta. The sweep passes
	// the configured gain multiplier for non-negative tastes and 1.0 for
	// negative ones, so penalties are never softened.
	FriendshipMultiplier float64

	// SuppressSound skips the default per-gift receipt sound.
	SuppressSound bool

	// ShowResponse skips the recipient's dialogue response when false.
	ShowResponse bool

	// CountTowardLimits controls whether the gift increments the daily
	// and weekly counters. False for limit-exempt items.
	CountTowardLimits bool
}

// QuestOptions controls side effects of a quest completion.
type QuestOptions struct {
	// SuppressSound skips the default quest-complete jingle; the sweep
	// plays a single aggregate sound instead.
	SuppressSound bool
}

// World is the mutation and resolution API the engine consumes from the
// hosting simulation. All calls are synchronous with no rollback; the
// simulation loop is single threaded.
type World interface {
	// Date returns the current simulation date.
	Date() worlddate.WorldDate

	// Player resolves an actor by stable id.
	Player(id int64) (Actor, bool)

	// CharacterByName resolves a recipient by stable name.
	CharacterByName(name string) (Recipient, bool)

	// ChangeFriendship applies a point delta to the actor's relationship
	// with the recipient, clamped to the simulation's own bounds, and
	// returns the resulting point total.
	ChangeFriendship(actor Actor, npc Recipient, points int) int

	// ReceiveGift performs the simulation's full immediate-delivery gift
	// mutation: taste lookup, point change, counter updates.
	ReceiveGift(npc Recipient, gift *Item, from Actor, opts GiftOptions) error

	// CompleteQuest commands completion of a quest in the actor's log,
	// paying out rewards.
	CompleteQuest(actor Actor, quest *Quest, opts QuestOptions) error

	// PlaySound requests playback of a named sound cue.
	PlaySound(name string)

	// InvalidateMailData signals that cached mail content must be
	// regenerated; return-mail text is produced on demand from the
	// pending store.
	InvalidateMailData()
}
