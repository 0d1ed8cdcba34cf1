package gifting

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/focustense/penpals-server/internal/config"
	"github.com/focustense/penpals-server/internal/logger"
	"github.com/focustense/penpals-server/internal/world"
)

// Distributor performs the batch sweep that makes recipients actually
// receive their queued gifts. Build a fresh one per sweep via the Engine so
// it sees current config and custom rules.
type Distributor struct {
	world  world.World
	store  *Store
	rules  *Rules
	config *config.GiftingConfig
}

// NewDistributor creates a distributor over the given store and rule
// snapshot.
func NewDistributor(w world.World, store *Store, rules *Rules, cfg *config.GiftingConfig) *Distributor {
	return &Distributor{world: w, store: store, rules: rules, config: cfg}
}

// ReceiveAll processes every queued parcel for every player and returns the
// ordered outcome log.
//
// Each (player, recipient) pair either fully resolves (delivered, quest
// completed, or bounced) or is left untouched for the next sweep; there is
// no partially-processed state. Resolved entries are removed in a second
// pass so the outgoing map is never mutated while being iterated.
func (d *Distributor) ReceiveAll() []GiftResult {
	var results []GiftResult
	hasReturns := false
	hasCompletedQuests := false
	for playerID, giftData := range d.store.PlayerGiftMail {
		sender, ok := d.world.Player(playerID)
		if !ok {
			logger.Errorf("Player ID %d not found; skipping gifts.", playerID)
			continue
		}
		for npcName, parcel := range giftData.OutgoingGifts {
			npc, ok := d.world.CharacterByName(npcName)
			if !ok {
				logger.Errorf("NPC %s not found; skipping gift from %s.", npcName, sender.Name())
				continue
			}
			reasons := d.rules.CheckGiftability(sender, npc, parcel.Gift, parcel.QuestID)
			if reasons != None {
				results = append(results, GiftResult{
					FromID:   playerID,
					FromName: sender.Name(),
					ToName:   npcName,
					Gift:     parcel.Gift,
					Outcome:  fmt.Sprintf("Returned:%s", reasons),
				})
				returnID := uuid.NewString()
				giftData.ReturnedGifts[returnID] = ReturnedGift{
					NPCName:    npcName,
					Gift:       parcel.Gift,
					PickupDate: d.world.Date(),
					Reasons:    reasons,
				}
				sender.AddMail(ReturnMailKey(returnID))
				hasReturns = true
				continue
			}
			if quest := deliveryQuest(sender, parcel.QuestID); quest != nil {
				questPoints := d.rules.QuestPoints(quest)
				d.world.ChangeFriendship(sender, npc, questPoints)
				if err := d.world.CompleteQuest(sender, quest, world.QuestOptions{SuppressSound: true}); err != nil {
					logger.Errorf("Failed to complete quest %s for %s: %v", quest.SafeID(), sender.Name(), err)
					continue
				}
				hasCompletedQuests = true
				results = append(results, GiftResult{
					FromID:   playerID,
					FromName: sender.Name(),
					ToName:   npcName,
					Gift:     parcel.Gift,
					QuestID:  quest.SafeID(),
					Outcome:  "Quest",
					Points:   questPoints,
				})
				continue
			}
			taste := npc.GiftTaste(parcel.Gift)
			multiplier := 1.0
			if taste.BasePoints() >= 0 {
				multiplier = d.config.FriendshipMultiplier
			}
			previousPoints := friendshipPoints(sender, npcName)
			err := d.world.ReceiveGift(npc, parcel.Gift, sender, world.GiftOptions{
				FriendshipMultiplier: multiplier,
				SuppressSound:        true,
				ShowResponse:         false,
				CountTowardLimits:    !d.rules.IsLimitExempt(parcel.Gift),
			})
			if err != nil {
				logger.Errorf("Failed to deliver gift from %s to %s: %v", sender.Name(), npcName, err)
				continue
			}
			// Diff the authoritative totals instead of trusting the
			// estimate; world state may have shifted since scheduling.
			pointsGained := friendshipPoints(sender, npcName) - previousPoints
			results = append(results, GiftResult{
				FromID:   playerID,
				FromName: sender.Name(),
				ToName:   npcName,
				Gift:     parcel.Gift,
				Outcome:  taste.String(),
				Points:   pointsGained,
			})
		}
	}
	for _, result := range results {
		if giftData, ok := d.store.PlayerGiftMail[result.FromID]; ok {
			delete(giftData.OutgoingGifts, result.ToName)
		}
	}
	if hasCompletedQuests {
		d.world.PlaySound("questcomplete")
	}
	if hasReturns {
		d.world.InvalidateMailData()
	}
	return results
}

// DryRun computes the expected outcome of the next sweep without mutating
// anything. Point values come from the estimator.
func (d *Distributor) DryRun() []GiftResult {
	var results []GiftResult
	for playerID, giftData := range d.store.PlayerGiftMail {
		sender, ok := d.world.Player(playerID)
		if !ok {
			logger.Errorf("Player ID %d not found; skipping dry run entries.", playerID)
			continue
		}
		for npcName, parcel := range giftData.OutgoingGifts {
			npc, ok := d.world.CharacterByName(npcName)
			if !ok {
				logger.Errorf("NPC %s not found; skipping dry run entry from %s.", npcName, sender.Name())
				continue
			}
			result := GiftResult{
				FromID:   playerID,
				FromName: sender.Name(),
				ToName:   npcName,
				Gift:     parcel.Gift,
			}
			reasons := d.rules.CheckGiftability(sender, npc, parcel.Gift, parcel.QuestID)
			if reasons != None {
				result.Outcome = fmt.Sprintf("Returned:%s", reasons)
				results = append(results, result)
				continue
			}
			quest := deliveryQuest(sender, parcel.QuestID)
			if quest != nil {
				result.QuestID = quest.SafeID()
				result.Outcome = "Quest"
			} else {
				result.Outcome = npc.GiftTaste(parcel.Gift).String()
			}
			result.Points = d.rules.EstimateFriendshipGain(sender, npc, parcel.Gift, quest)
			results = append(results, result)
		}
	}
	return results
}

// deliveryQuest resolves the quest linked to an outgoing parcel, or nil.
func deliveryQuest(actor world.Actor, questID string) *world.Quest {
	if questID == "" {
		return nil
	}
	quest, ok := actor.QuestByID(questID)
	if !ok {
		return nil
	}
	return quest
}

func friendshipPoints(actor world.Actor, npcName string) int {
	friendship, ok := actor.Friendship(npcName)
	if !ok {
		return 0
	}
	return friendship.Points
}
