// Package sim is an in-memory implementation of the world contracts: a
// small, single-threaded stand-in for the hosting simulation, used by the
// server binary and the engine tests. NPCs and players load from YAML
// fixtures.
package sim

import (
	"github.com/focustense/penpals-server/internal/world"
	"github.com/focustense/penpals-server/internal/worlddate"
)

// BirthdayDefinition is an NPC birthday in YAML form.
type BirthdayDefinition struct {
	Season string `yaml:"season"`
	Day    int    `yaml:"day"`
}

// NPCDefinition describes an NPC in the fixtures file.
type NPCDefinition struct {
	DisplayName    string             `yaml:"display_name"`
	Giftable       *bool              `yaml:"giftable"` // default true
	Child          bool               `yaml:"child"`
	Datable        bool               `yaml:"datable"`
	SpeaksDwarvish bool               `yaml:"speaks_dwarvish"`
	Birthday       BirthdayDefinition `yaml:"birthday"`
	Tastes         map[string][]string `yaml:"tastes"` // taste name -> qualified item ids
	Rejections     []string           `yaml:"rejections"` // item ids with scripted rejections
	Dialogue       map[string]string  `yaml:"dialogue"`
	SpouseID       *int64             `yaml:"spouse_id"`
	DivorcedFrom   []int64            `yaml:"divorced_from"`
}

// NPC is a gift recipient. Implements world.Recipient.
type NPC struct {
	name           string
	displayName    string
	giftable       bool
	child          bool
	datable        bool
	speaksDwarvish bool
	birthdaySeason worlddate.Season
	birthdayDay    int
	dialogue       map[string]string
	tastes         map[string]world.GiftTaste // qualified item id -> taste
	spouseID       *int64
	divorcedFrom   map[int64]bool
}

// NewNPC creates an NPC from a definition.
func NewNPC(name string, def NPCDefinition) *NPC {
	n := &NPC{
		name:           name,
		displayName:    def.DisplayName,
		giftable:       def.Giftable == nil || *def.Giftable,
		child:          def.Child,
		datable:        def.Datable,
		speaksDwarvish: def.SpeaksDwarvish,
		birthdayDay:    def.Birthday.Day,
		dialogue:       make(map[string]string),
		tastes:         make(map[string]world.GiftTaste),
		spouseID:       def.SpouseID,
		divorcedFrom:   make(map[int64]bool),
	}
	if n.displayName == "" {
		n.displayName = name
	}
	if season, ok := worlddate.ParseSeason(def.Birthday.Season); ok {
		n.birthdaySeason = season
	}
	tasteValues := map[string]world.GiftTaste{
		"love":    world.TasteLove,
		"like":    world.TasteLike,
		"neutral": world.TasteNeutral,
		"dislike": world.TasteDislike,
		"hate":    world.TasteHate,
		"special": world.TasteSpecial,
	}
	for tasteName, itemIDs := range def.Tastes {
		taste, ok := tasteValues[tasteName]
		if !ok {
			continue
		}
		for _, id := range itemIDs {
			n.tastes[id] = taste
		}
	}
	for _, itemID := range def.Rejections {
		n.dialogue["reject_"+itemID] = "rejection"
	}
	for key, line := range def.Dialogue {
		n.dialogue[key] = line
	}
	for _, actorID := range def.DivorcedFrom {
		n.divorcedFrom[actorID] = true
	}
	return n
}

func (n *NPC) Name() string          { return n.name }
func (n *NPC) DisplayName() string   { return n.displayName }
func (n *NPC) CanReceiveGifts() bool { return n.giftable }
func (n *NPC) IsChild() bool         { return n.child }
func (n *NPC) IsDatable() bool       { return n.datable }
func (n *NPC) SpeaksDwarvish() bool  { return n.speaksDwarvish }

// Birthday returns the NPC's birthday season and day.
func (n *NPC) Birthday() (worlddate.Season, int) {
	return n.birthdaySeason, n.birthdayDay
}

// HasDialogue reports whether the NPC has a dialogue entry under the key.
func (n *NPC) HasDialogue(key string) bool {
	_, ok := n.dialogue[key]
	return ok
}

// SpouseID returns the actor the NPC is married to, if any.
func (n *NPC) SpouseID() (int64, bool) {
	if n.spouseID == nil {
		return 0, false
	}
	return *n.spouseID, true
}

// IsDivorcedFrom reports whether the NPC was previously married to the
// actor.
func (n *NPC) IsDivorcedFrom(actorID int64) bool {
	return n.divorcedFrom[actorID]
}

// GiftTaste returns the NPC's taste for an item, defaulting to neutral.
func (n *NPC) GiftTaste(item *world.Item) world.GiftTaste {
	if taste, ok := n.tastes[item.QualifiedID()]; ok {
		return taste
	}
	return world.TasteNeutral
}

// SetSpouse marries the NPC to the given actor.
func (n *NPC) SetSpouse(actorID int64) {
	n.spouseID = &actorID
}

// SetDivorced records a past marriage to the given actor.
func (n *NPC) SetDivorced(actorID int64) {
	n.spouseID = nil
	n.divorcedFrom[actorID] = true
}
