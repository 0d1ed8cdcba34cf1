package gifting

import (
	"errors"
	"testing"

	"github.com/focustense/penpals-server/internal/config"
	"github.com/focustense/penpals-server/internal/sim"
	"github.com/focustense/penpals-server/internal/world"
)

func testSender(s *sim.Simulation, cfg *config.GiftingConfig, custom *CustomRules, data *GiftMailData, player *sim.Player, item *world.Item) *Sender {
	if custom == nil {
		custom = NewCustomRules()
	}
	return NewSender(s, cfg, NewRules(cfg, custom, s.Date()), data, player, item)
}

func unlockedPlayer() *sim.Player {
	p := testPlayer()
	p.MarkEventSeen("questComplete_25")
	return p
}

func TestScheduleQueuesHeldItem(t *testing.T) {
	s := sim.NewSimulation(midweek)
	player := unlockedPlayer()
	npc := testNPC()
	s.AddPlayer(player)
	s.AddNPC(npc)
	item := &world.Item{ID: "66", Category: "O", Name: "Amethyst", Stack: 3}
	player.Hold(item)
	data := NewGiftMailData()

	reasons, err := testSender(s, testGiftingConfig(), nil, data, player, item).Schedule(npc, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reasons != None {
		t.Fatalf("unexpected reasons: %v", reasons)
	}
	parcel, ok := data.OutgoingGifts["Abigail"]
	if !ok {
		t.Fatal("expected a queued parcel for Abigail")
	}
	if parcel.Gift.QualifiedID() != "(O)66" || parcel.Gift.Stack != 1 {
		t.Errorf("unexpected parcel gift: %v", parcel.Gift)
	}
	if parcel.QuestID != "" {
		t.Errorf("unexpected quest id %q", parcel.QuestID)
	}
	if item.Stack != 2 {
		t.Errorf("expected 2 left in held stack, got %d", item.Stack)
	}
	sounds := s.Sounds()
	if len(sounds) != 1 || sounds[0] != "Ship" {
		t.Errorf("expected the shipping sound, got %v", sounds)
	}
}

func TestScheduleReplacesPreviousParcel(t *testing.T) {
	s := sim.NewSimulation(midweek)
	player := unlockedPlayer()
	npc := testNPC()
	s.AddPlayer(player)
	s.AddNPC(npc)
	cfg := testGiftingConfig()
	data := NewGiftMailData()

	first := &world.Item{ID: "66", Category: "O", Name: "Amethyst", Stack: 1}
	player.Hold(first)
	if _, err := testSender(s, cfg, nil, data, player, first).Schedule(npc, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if player.CountItems("(O)66") != 0 {
		t.Fatal("expected first item removed from inventory")
	}

	second := &world.Item{ID: "92", Category: "O", Name: "Sap", Stack: 1}
	player.Hold(second)
	if _, err := testSender(s, cfg, nil, data, player, second).Schedule(npc, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(data.OutgoingGifts) != 1 {
		t.Fatalf("expected a single queued parcel, got %d", len(data.OutgoingGifts))
	}
	if got := data.OutgoingGifts["Abigail"].Gift.QualifiedID(); got != "(O)92" {
		t.Errorf("expected replacement parcel, got %s", got)
	}
	if player.CountItems("(O)66") != 1 {
		t.Error("expected displaced item returned to inventory")
	}
}

func TestScheduleReturnsReasonsWithoutMutating(t *testing.T) {
	s := sim.NewSimulation(midweek)
	player := unlockedPlayer()
	npc := sim.NewNPC("Jas", sim.NPCDefinition{Child: true})
	s.AddPlayer(player)
	s.AddNPC(npc)
	player.SetFriendship("Jas", world.Friendship{Points: 500})
	item := &world.Item{ID: "66", Category: "O", Name: "Amethyst", Stack: 1}
	player.Hold(item)
	data := NewGiftMailData()

	reasons, err := testSender(s, testGiftingConfig(), nil, data, player, item).Schedule(npc, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reasons.Has(ReasonChild) {
		t.Errorf("expected Child reason, got %v", reasons)
	}
	if len(data.OutgoingGifts) != 0 {
		t.Error("expected nothing queued for an ineligible gift")
	}
	if player.CountItems("(O)66") != 1 {
		t.Error("expected inventory untouched")
	}
}

func TestScheduleSoftFailures(t *testing.T) {
	s := sim.NewSimulation(midweek)
	npc := testNPC()
	s.AddNPC(npc)
	item := func() *world.Item {
		return &world.Item{ID: "66", Category: "O", Name: "Amethyst", Stack: 1}
	}

	t.Run("mail locked", func(t *testing.T) {
		player := testPlayer() // never saw the introduction quest
		s.AddPlayer(player)
		held := item()
		player.Hold(held)
		_, err := testSender(s, testGiftingConfig(), nil, NewGiftMailData(), player, held).Schedule(npc, nil)
		if !errors.Is(err, ErrMailLocked) {
			t.Errorf("expected ErrMailLocked, got %v", err)
		}
	})

	t.Run("blacklisted", func(t *testing.T) {
		player := unlockedPlayer()
		s.AddPlayer(player)
		held := item()
		player.Hold(held)
		custom := NewCustomRules()
		custom.Blacklist["(O)66"] = true
		_, err := testSender(s, testGiftingConfig(), custom, NewGiftMailData(), player, held).Schedule(npc, nil)
		if !errors.Is(err, ErrBlacklisted) {
			t.Errorf("expected ErrBlacklisted, got %v", err)
		}
	})

	t.Run("quests disabled", func(t *testing.T) {
		player := unlockedPlayer()
		s.AddPlayer(player)
		held := item()
		player.Hold(held)
		cfg := testGiftingConfig()
		cfg.EnableQuests = false
		questInfo := &world.ItemQuestInfo{ID: "q1", RequiredItemAmount: 1}
		_, err := testSender(s, cfg, nil, NewGiftMailData(), player, held).Schedule(npc, questInfo)
		if !errors.Is(err, ErrQuestsDisabled) {
			t.Errorf("expected ErrQuestsDisabled, got %v", err)
		}
	})

	t.Run("stale held item", func(t *testing.T) {
		player := unlockedPlayer()
		s.AddPlayer(player)
		bound := item()
		player.Hold(bound)
		sender := testSender(s, testGiftingConfig(), nil, NewGiftMailData(), player, bound)
		player.Hold(item()) // switched hotbar selection since binding
		_, err := sender.Schedule(npc, nil)
		if !errors.Is(err, ErrStaleItem) {
			t.Errorf("expected ErrStaleItem, got %v", err)
		}
	})

	t.Run("stack too small for quest", func(t *testing.T) {
		player := unlockedPlayer()
		player.AddQuest(&world.Quest{ID: "q1", Type: world.QuestTypeItemDelivery, Target: "Abigail", ItemID: "66", ItemCount: 3})
		s.AddPlayer(player)
		held := item() // stack of 1, quest needs 3
		player.Hold(held)
		questInfo := &world.ItemQuestInfo{ID: "q1", RequiredItemID: "66", RequiredItemAmount: 3}
		data := NewGiftMailData()
		_, err := testSender(s, testGiftingConfig(), nil, data, player, held).Schedule(npc, questInfo)
		if !errors.Is(err, ErrStackTooSmall) {
			t.Errorf("expected ErrStackTooSmall, got %v", err)
		}
		if len(data.OutgoingGifts) != 0 {
			t.Error("expected nothing queued after a failed removal")
		}
	})
}

func TestScheduleQuestParcel(t *testing.T) {
	s := sim.NewSimulation(midweek)
	player := unlockedPlayer()
	player.AddQuest(&world.Quest{ID: "q1", Type: world.QuestTypeItemDelivery, Target: "Abigail", ItemID: "66", ItemCount: 2})
	npc := testNPC()
	s.AddPlayer(player)
	s.AddNPC(npc)
	held := &world.Item{ID: "66", Category: "O", Name: "Amethyst", Stack: 5}
	player.Hold(held)
	data := NewGiftMailData()
	questInfo := &world.ItemQuestInfo{ID: "q1", RequiredItemID: "66", RequiredItemAmount: 2}

	reasons, err := testSender(s, testGiftingConfig(), nil, data, player, held).Schedule(npc, questInfo)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reasons != None {
		t.Fatalf("unexpected reasons: %v", reasons)
	}
	parcel := data.OutgoingGifts["Abigail"]
	if parcel.QuestID != "q1" {
		t.Errorf("expected quest id q1, got %q", parcel.QuestID)
	}
	if parcel.Gift.Stack != 2 {
		t.Errorf("expected quest amount of 2 removed, got %d", parcel.Gift.Stack)
	}
	if held.Stack != 3 {
		t.Errorf("expected 3 left in held stack, got %d", held.Stack)
	}
}
