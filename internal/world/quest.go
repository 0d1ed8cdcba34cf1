package world

import "fmt"

// QuestType distinguishes the quest mechanics that a mailed gift can
// complete.
type QuestType string

const (
	QuestTypeItemDelivery QuestType = "item_delivery"
	QuestTypeFishing      QuestType = "fishing"
)

// Quest is a simulation-owned quest record. The engine only reads it and
// may command its completion through World.CompleteQuest.
type Quest struct {
	ID          string    `yaml:"id"`
	Title       string    `yaml:"title"`
	Type        QuestType `yaml:"type"`
	Target      string    `yaml:"target"` // recipient name the delivery must reach
	ItemID      string    `yaml:"item_id"`
	ItemCount   int       `yaml:"item_count"`
	MoneyReward int       `yaml:"money_reward"`
	Daily       bool      `yaml:"daily"`
	DayAccepted int       `yaml:"day_accepted"`
	Completed   bool      `yaml:"completed"`
	Objective   string    `yaml:"objective"`

	// Fishing-quest progress; a fishing quest is only deliverable once
	// enough fish have been caught.
	NumberFished int `yaml:"number_fished"`
	NumberToFish int `yaml:"number_to_fish"`
}

// SafeID derives a unique id for the quest: the assigned id when present,
// otherwise a synthetic id for accepted daily quests. Returns "" for
// unidentifiable quests.
func (q *Quest) SafeID() string {
	if q.ID != "" {
		return q.ID
	}
	if q.Daily && q.DayAccepted > 0 {
		return fmt.Sprintf("Daily_%d", q.DayAccepted)
	}
	return ""
}

// ItemQuestInfo describes a quest that can be completed by delivering an
// item to a recipient, resolved against a specific recipient at scheduling
// time.
type ItemQuestInfo struct {
	ID                 string
	Title              string
	RequiredItemID     string
	RequiredItemAmount int
	CurrencyAmount     int
}

// QuestInfoFor resolves delivery info for a quest targeting the given
// recipient. Returns nil if the quest is completed, targets someone else,
// or is not a deliverable type.
func QuestInfoFor(q *Quest, recipientName string) *ItemQuestInfo {
	if q == nil || q.Completed || q.SafeID() == "" {
		return nil
	}
	switch q.Type {
	case QuestTypeFishing:
		if q.NumberFished < q.NumberToFish {
			return nil
		}
		target := q.Target
		if target == "" {
			target = "Willy" // fishing quests fall back to the fisherman
		}
		if recipientName != target {
			return nil
		}
		return &ItemQuestInfo{
			ID:                 q.SafeID(),
			Title:              q.Title,
			RequiredItemID:     q.ItemID,
			RequiredItemAmount: 1,
			CurrencyAmount:     q.MoneyReward,
		}
	case QuestTypeItemDelivery:
		if recipientName != q.Target {
			return nil
		}
		count := q.ItemCount
		if count <= 0 {
			count = 1
		}
		return &ItemQuestInfo{
			ID:                 q.SafeID(),
			Title:              q.Title,
			RequiredItemID:     q.ItemID,
			RequiredItemAmount: count,
			CurrencyAmount:     q.MoneyReward,
		}
	default:
		return nil
	}
}
