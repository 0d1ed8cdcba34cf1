package sim

import (
	"fmt"

	"github.com/focustense/penpals-server/internal/world"
)

// PlayerDefinition describes a player in the fixtures file.
type PlayerDefinition struct {
	ID                  int64                       `yaml:"id"`
	Name                string                      `yaml:"name"`
	Gold                int                         `yaml:"gold"`
	UnderstandsDwarvish bool                        `yaml:"understands_dwarvish"`
	SeenEvents          []string                    `yaml:"seen_events"`
	Friendships         map[string]world.Friendship `yaml:"friendships"`
	Inventory           []world.Item                `yaml:"inventory"`
	Held                string                      `yaml:"held"` // qualified id of the held item
	Quests              []world.Quest               `yaml:"quests"`
}

// Player is a gift sender. Implements world.Actor.
type Player struct {
	id          int64
	name        string
	gold        int
	dwarvish    bool
	seenEvents  map[string]bool
	friendships map[string]*world.Friendship
	inventory   []*world.Item
	held        *world.Item
	quests      []*world.Quest
	mailbox     []string
}

// NewPlayer creates a player from a definition.
func NewPlayer(def PlayerDefinition) *Player {
	p := &Player{
		id:          def.ID,
		name:        def.Name,
		gold:        def.Gold,
		dwarvish:    def.UnderstandsDwarvish,
		seenEvents:  make(map[string]bool),
		friendships: make(map[string]*world.Friendship),
	}
	for _, eventID := range def.SeenEvents {
		p.seenEvents[eventID] = true
	}
	for npcName, friendship := range def.Friendships {
		f := friendship
		if f.Status == "" {
			f.Status = world.StatusFriendly
		}
		p.friendships[npcName] = &f
	}
	for _, item := range def.Inventory {
		copied := item
		if copied.Stack == 0 {
			copied.Stack = 1
		}
		p.inventory = append(p.inventory, &copied)
		if def.Held != "" && copied.QualifiedID() == def.Held && p.held == nil {
			p.held = &copied
		}
	}
	for _, quest := range def.Quests {
		copied := quest
		p.quests = append(p.quests, &copied)
	}
	return p
}

func (p *Player) ID() int64    { return p.id }
func (p *Player) Name() string { return p.name }
func (p *Player) Gold() int    { return p.gold }

// Friendship returns a snapshot of the player's relationship with the
// named NPC.
func (p *Player) Friendship(npcName string) (world.Friendship, bool) {
	f, ok := p.friendships[npcName]
	if !ok {
		return world.Friendship{}, false
	}
	return *f, true
}

// Friendships returns a snapshot of every relationship record, keyed by
// NPC name.
func (p *Player) Friendships() map[string]world.Friendship {
	snapshot := make(map[string]world.Friendship, len(p.friendships))
	for npcName, f := range p.friendships {
		snapshot[npcName] = *f
	}
	return snapshot
}

// SetFriendship replaces the player's relationship record with the NPC.
func (p *Player) SetFriendship(npcName string, f world.Friendship) {
	if f.Status == "" {
		f.Status = world.StatusFriendly
	}
	p.friendships[npcName] = &f
}

func (p *Player) UnderstandsDwarvish() bool { return p.dwarvish }

func (p *Player) HasSeenEvent(eventID string) bool {
	return p.seenEvents[eventID]
}

// MarkEventSeen records that the player has seen a scripted event.
func (p *Player) MarkEventSeen(eventID string) {
	p.seenEvents[eventID] = true
}

// QuestByID finds a quest in the player's quest log by its safe id.
func (p *Player) QuestByID(questID string) (*world.Quest, bool) {
	if questID == "" {
		return nil, false
	}
	for _, quest := range p.quests {
		if quest.SafeID() == questID {
			return quest, true
		}
	}
	return nil, false
}

// AddQuest appends a quest to the player's quest log.
func (p *Player) AddQuest(quest *world.Quest) {
	p.quests = append(p.quests, quest)
}

// HeldItem returns the player's currently held item, or nil.
func (p *Player) HeldItem() *world.Item {
	return p.held
}

// Hold adds an item to the player's inventory and makes it the held item.
func (p *Player) Hold(item *world.Item) {
	p.inventory = append(p.inventory, item)
	p.held = item
}

// RemoveHeldItems splits count items off the held stack and returns them
// as a new stack. Fails without mutation if the held stack is too small.
func (p *Player) RemoveHeldItems(count int) (*world.Item, error) {
	if p.held == nil {
		return nil, fmt.Errorf("%s is not holding anything", p.name)
	}
	if p.held.Stack < count {
		return nil, fmt.Errorf("%s is holding %d of %s, need %d", p.name, p.held.Stack, p.held.Name, count)
	}
	removed := p.held.WithStack(count)
	if p.held.Stack == count {
		for i, item := range p.inventory {
			if item == p.held {
				p.inventory = append(p.inventory[:i], p.inventory[i+1:]...)
				break
			}
		}
		p.held = nil
	} else {
		p.held.Stack -= count
	}
	return removed, nil
}

// AddItem returns an item to the player's inventory, merging stacks of the
// same kind.
func (p *Player) AddItem(item *world.Item) {
	for _, existing := range p.inventory {
		if existing.SameKind(item) {
			existing.Stack += item.Stack
			return
		}
	}
	p.inventory = append(p.inventory, item)
}

// CountItems returns the total stack count of items matching the qualified
// id across the player's inventory.
func (p *Player) CountItems(qualifiedID string) int {
	total := 0
	for _, item := range p.inventory {
		if item.QualifiedID() == qualifiedID {
			total += item.Stack
		}
	}
	return total
}

// AddMail appends a message key to the player's mailbox.
func (p *Player) AddMail(key string) {
	p.mailbox = append(p.mailbox, key)
}

// Mailbox returns the player's pending mail keys in arrival order.
func (p *Player) Mailbox() []string {
	return p.mailbox
}

// RemoveMail removes the first mailbox entry matching the key.
func (p *Player) RemoveMail(key string) bool {
	for i, existing := range p.mailbox {
		if existing == key {
			p.mailbox = append(p.mailbox[:i], p.mailbox[i+1:]...)
			return true
		}
	}
	return false
}
