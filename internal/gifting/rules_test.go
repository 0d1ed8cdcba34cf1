package gifting

import (
	"testing"

	"github.com/focustense/penpals-server/internal/config"
	"github.com/focustense/penpals-server/internal/sim"
	"github.com/focustense/penpals-server/internal/world"
	"github.com/focustense/penpals-server/internal/worlddate"
)

func testGiftingConfig() *config.GiftingConfig {
	cfg := config.DefaultConfig().Gifting
	return &cfg
}

// midweek is a Wednesday, far from any test birthday.
var midweek = worlddate.WorldDate{Year: 1, Season: worlddate.Spring, Day: 3}

func testPlayer() *sim.Player {
	return sim.NewPlayer(sim.PlayerDefinition{
		ID:   1,
		Name: "Lew",
		Friendships: map[string]world.Friendship{
			"Abigail": {Points: 1000},
		},
	})
}

func testNPC() *sim.NPC {
	return sim.NewNPC("Abigail", sim.NPCDefinition{
		Datable:  true,
		Birthday: sim.BirthdayDefinition{Season: "fall", Day: 13},
		Tastes: map[string][]string{
			"love":    {"(O)66"},
			"like":    {"(O)92"},
			"dislike": {"(O)78"},
			"hate":    {"(O)80"},
			"special": {"(O)74"},
		},
		Rejections: []string{"446"},
	})
}

func lovedItem() *world.Item {
	return &world.Item{ID: "66", Category: "O", Name: "Amethyst", Stack: 1}
}

func TestCheckGiftabilityAllowed(t *testing.T) {
	rules := NewRules(testGiftingConfig(), NewCustomRules(), midweek)
	if got := rules.CheckGiftability(testPlayer(), testNPC(), lovedItem(), ""); got != None {
		t.Errorf("expected no reasons, got %v", got)
	}
}

func TestCheckGiftabilityRecipientReasons(t *testing.T) {
	notGiftable := false
	tests := []struct {
		name string
		npc  sim.NPCDefinition
		want NonGiftableReasons
	}{
		{"cannot receive gifts", sim.NPCDefinition{Giftable: &notGiftable}, ReasonCannotReceiveGifts},
		{"child", sim.NPCDefinition{Child: true}, ReasonChild},
		{"speaks dwarvish", sim.NPCDefinition{SpeaksDwarvish: true}, ReasonNoDwarvish},
		{"scripted rejection", sim.NPCDefinition{Rejections: []string{"66"}}, ReasonRejection},
		{"newer rejection key", sim.NPCDefinition{Dialogue: map[string]string{"RejectItem_66": "no"}}, ReasonRejection},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			player := sim.NewPlayer(sim.PlayerDefinition{
				ID:   1,
				Name: "Lew",
				Friendships: map[string]world.Friendship{
					"Pam": {Points: 500},
				},
			})
			npc := sim.NewNPC("Pam", tt.npc)
			rules := NewRules(testGiftingConfig(), NewCustomRules(), midweek)
			got := rules.CheckGiftability(player, npc, lovedItem(), "")
			if got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestCheckGiftabilitySpouseAndDivorce(t *testing.T) {
	player := testPlayer()
	npc := testNPC()
	rules := NewRules(testGiftingConfig(), NewCustomRules(), midweek)

	npc.SetSpouse(player.ID())
	if got := rules.CheckGiftability(player, npc, lovedItem(), ""); got != ReasonSpouse {
		t.Errorf("expected Spouse, got %v", got)
	}

	npc.SetDivorced(player.ID())
	if got := rules.CheckGiftability(player, npc, lovedItem(), ""); got != ReasonDivorced {
		t.Errorf("expected Divorced, got %v", got)
	}
}

func TestCheckGiftabilityUnmetStandsAlone(t *testing.T) {
	player := sim.NewPlayer(sim.PlayerDefinition{ID: 1, Name: "Lew"})
	npc := testNPC()
	rules := NewRules(testGiftingConfig(), NewCustomRules(), midweek)

	got := rules.CheckGiftability(player, npc, lovedItem(), "")
	if got != ReasonUnmet {
		t.Errorf("expected exactly Unmet, got %v", got)
	}
	// With no friendship record there is nothing to evaluate limits or
	// friendship caps against.
	if got.Has(ReasonDailyLimit) || got.Has(ReasonWeeklyLimit) || got.Has(ReasonMaxFriendship) {
		t.Errorf("limit reasons must never accompany Unmet: %v", got)
	}
}

func TestCheckGiftabilityDailyLimit(t *testing.T) {
	player := testPlayer()
	player.SetFriendship("Abigail", world.Friendship{Points: 1000, GiftsToday: 1})
	npc := testNPC()

	cfg := testGiftingConfig()
	cfg.Scheduling = worlddate.SchedulingSameDay
	rules := NewRules(cfg, NewCustomRules(), midweek)
	if got := rules.CheckGiftability(player, npc, lovedItem(), ""); got != ReasonDailyLimit {
		t.Errorf("expected DailyLimit under same-day scheduling, got %v", got)
	}

	// Next-day delivery lands on a fresh day, so today's gift doesn't
	// matter.
	cfg.Scheduling = worlddate.SchedulingNextDay
	rules = NewRules(cfg, NewCustomRules(), midweek)
	if got := rules.CheckGiftability(player, npc, lovedItem(), ""); got != None {
		t.Errorf("expected no reasons under next-day scheduling, got %v", got)
	}
}

func TestCheckGiftabilityWeeklyLimit(t *testing.T) {
	cfg := testGiftingConfig()
	cfg.Scheduling = worlddate.SchedulingNextDay
	npc := testNPC()
	atWeeklyLimit := func() *sim.Player {
		p := testPlayer()
		p.SetFriendship("Abigail", world.Friendship{Points: 1000, GiftsThisWeek: 2})
		return p
	}

	rules := NewRules(cfg, NewCustomRules(), midweek)
	if got := rules.CheckGiftability(atWeeklyLimit(), npc, lovedItem(), ""); got != ReasonWeeklyLimit {
		t.Errorf("expected WeeklyLimit mid-week, got %v", got)
	}

	// Mailed on Saturday under next-day scheduling, the gift arrives
	// Sunday after the weekly reset.
	saturday := worlddate.WorldDate{Year: 1, Season: worlddate.Spring, Day: 6}
	rules = NewRules(cfg, NewCustomRules(), saturday)
	if got := rules.CheckGiftability(atWeeklyLimit(), npc, lovedItem(), ""); got != None {
		t.Errorf("expected Saturday send to dodge the weekly limit, got %v", got)
	}

	// Birthday deliveries are exempt from the weekly limit.
	birthdayEve := worlddate.WorldDate{Year: 1, Season: worlddate.Fall, Day: 12}
	rules = NewRules(cfg, NewCustomRules(), birthdayEve)
	if got := rules.CheckGiftability(atWeeklyLimit(), npc, lovedItem(), ""); got != None {
		t.Errorf("expected birthday delivery to dodge the weekly limit, got %v", got)
	}

	// Under same-day scheduling the Sunday-arrival exception can't apply.
	cfg.Scheduling = worlddate.SchedulingSameDay
	sunday := worlddate.WorldDate{Year: 1, Season: worlddate.Spring, Day: 7}
	rules = NewRules(cfg, NewCustomRules(), sunday)
	if got := rules.CheckGiftability(atWeeklyLimit(), npc, lovedItem(), ""); got != ReasonWeeklyLimit {
		t.Errorf("expected WeeklyLimit on same-day Sunday, got %v", got)
	}
}

func TestCheckGiftabilityIgnoreLimits(t *testing.T) {
	player := testPlayer()
	player.SetFriendship("Abigail", world.Friendship{Points: 1000, GiftsToday: 1, GiftsThisWeek: 2})
	npc := testNPC()

	custom := NewCustomRules()
	custom.IgnoreLimits["(O)66"] = true
	rules := NewRules(testGiftingConfig(), custom, midweek)
	if got := rules.CheckGiftability(player, npc, lovedItem(), ""); got != None {
		t.Errorf("expected limit-exempt item to pass, got %v", got)
	}

	// The exemption covers gift limits only, not the friendship cap.
	player.SetFriendship("Abigail", world.Friendship{Points: 2000, GiftsToday: 1, GiftsThisWeek: 2})
	if got := rules.CheckGiftability(player, npc, lovedItem(), ""); got != ReasonMaxFriendship {
		t.Errorf("expected MaxFriendship to survive the exemption, got %v", got)
	}
}

func TestCheckGiftabilityMaxFriendship(t *testing.T) {
	npc := testNPC()
	rules := NewRules(testGiftingConfig(), NewCustomRules(), midweek)
	tests := []struct {
		name       string
		friendship world.Friendship
		want       NonGiftableReasons
	}{
		{"below cap", world.Friendship{Points: 1999}, None},
		{"datable cap", world.Friendship{Points: 2000}, ReasonMaxFriendship},
		{"dating raises cap", world.Friendship{Points: 2000, Status: world.StatusDating}, None},
		{"dating cap", world.Friendship{Points: 2500, Status: world.StatusDating}, ReasonMaxFriendship},
		{"married below cap", world.Friendship{Points: 3000, Status: world.StatusMarried}, None},
		{"married cap", world.Friendship{Points: 3500, Status: world.StatusMarried}, ReasonMaxFriendship},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			player := testPlayer()
			player.SetFriendship("Abigail", tt.friendship)
			got := rules.CheckGiftability(player, npc, lovedItem(), "")
			if got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestCheckGiftabilityQuestShortCircuit(t *testing.T) {
	// A quest parcel to a child at the weekly limit would fail every
	// normal check; linked to a live quest, it passes.
	player := sim.NewPlayer(sim.PlayerDefinition{
		ID:   1,
		Name: "Lew",
		Friendships: map[string]world.Friendship{
			"Jas": {Points: 1000, GiftsToday: 1, GiftsThisWeek: 2},
		},
	})
	player.AddQuest(&world.Quest{ID: "q1", Type: world.QuestTypeItemDelivery, Target: "Jas", ItemID: "66"})
	npc := sim.NewNPC("Jas", sim.NPCDefinition{Child: true})
	rules := NewRules(testGiftingConfig(), NewCustomRules(), midweek)

	if got := rules.CheckGiftability(player, npc, lovedItem(), "q1"); got != None {
		t.Errorf("expected live quest to bypass all checks, got %v", got)
	}
	if got := rules.CheckGiftability(player, npc, lovedItem(), "gone"); got != ReasonQuestMissing {
		t.Errorf("expected QuestMissing, got %v", got)
	}
	quest, _ := player.QuestByID("q1")
	quest.Completed = true
	if got := rules.CheckGiftability(player, npc, lovedItem(), "q1"); got != ReasonQuestCompleted {
		t.Errorf("expected QuestCompleted, got %v", got)
	}
}

func TestEstimateFriendshipGain(t *testing.T) {
	player := testPlayer()
	npc := testNPC()
	cfg := testGiftingConfig() // multiplier 0.6
	rules := NewRules(cfg, NewCustomRules(), midweek)
	item := func(id string, quality int) *world.Item {
		return &world.Item{ID: id, Category: "O", Name: "item " + id, Quality: quality, Stack: 1}
	}
	tests := []struct {
		name string
		item *world.Item
		want int
	}{
		{"loved gold", item("66", world.QualityGold), 60},     // 80 * 1.25 * 0.6
		{"liked silver", item("92", world.QualitySilver), 29}, // 45 * 1.1 * 0.6 = 29.7, truncated
		{"neutral normal", item("0", world.QualityNormal), 12},  // 20 * 0.6
		{"special normal", item("74", world.QualityNormal), 150}, // 250 * 0.6
		{"disliked normal", item("78", world.QualityNormal), -20}, // gains only
		{"hated gold", item("80", world.QualityGold), -50},        // -40 * 1.25
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := rules.EstimateFriendshipGain(player, npc, tt.item, nil)
			if got != tt.want {
				t.Errorf("expected %d points, got %d", tt.want, got)
			}
		})
	}
}

func TestEstimateFriendshipGainBirthday(t *testing.T) {
	cfg := testGiftingConfig()
	cfg.Scheduling = worlddate.SchedulingNextDay
	// Mailed the day before the birthday, delivered on it.
	rules := NewRules(cfg, NewCustomRules(), worlddate.WorldDate{Year: 1, Season: worlddate.Fall, Day: 12})

	got := rules.EstimateFriendshipGain(testPlayer(), testNPC(), lovedItem(), nil)
	if got != 384 { // 80 * 8 * 0.6
		t.Errorf("expected 384 points, got %d", got)
	}
}

func TestEstimateFriendshipGainSpouse(t *testing.T) {
	player := testPlayer()
	npc := testNPC()
	npc.SetSpouse(player.ID())
	player.SetFriendship("Abigail", world.Friendship{Points: 1000, Status: world.StatusMarried})
	rules := NewRules(testGiftingConfig(), NewCustomRules(), midweek)

	got := rules.EstimateFriendshipGain(player, npc, lovedItem(), nil)
	if got != 24 { // 80 * 0.5 * 0.6
		t.Errorf("expected 24 points, got %d", got)
	}
}

func TestEstimateFriendshipGainClamps(t *testing.T) {
	npc := testNPC()
	rules := NewRules(testGiftingConfig(), NewCustomRules(), midweek)

	player := testPlayer()
	player.SetFriendship("Abigail", world.Friendship{Points: 1990})
	if got := rules.EstimateFriendshipGain(player, npc, lovedItem(), nil); got != 10 {
		t.Errorf("expected gain clamped to 10 points of headroom, got %d", got)
	}

	player.SetFriendship("Abigail", world.Friendship{Points: 2100})
	if got := rules.EstimateFriendshipGain(player, npc, lovedItem(), nil); got != 0 {
		t.Errorf("expected zero gain above the cap, got %d", got)
	}

	player.SetFriendship("Abigail", world.Friendship{Points: 30})
	hated := &world.Item{ID: "80", Category: "O", Name: "Quartz", Quality: world.QualityGold, Stack: 1}
	if got := rules.EstimateFriendshipGain(player, npc, hated, nil); got != -30 {
		t.Errorf("expected loss clamped to -30, got %d", got)
	}
}

func TestQuestPoints(t *testing.T) {
	cfg := testGiftingConfig()
	rules := NewRules(cfg, NewCustomRules(), midweek)

	if got := rules.QuestPoints(&world.Quest{Daily: true, DayAccepted: 1}); got != 150 {
		t.Errorf("expected 150 points for a daily quest, got %d", got)
	}
	if got := rules.QuestPoints(&world.Quest{ID: "q1"}); got != 255 {
		t.Errorf("expected 255 points for a story quest, got %d", got)
	}

	cfg.QuestFriendshipMultiplier = 0.5
	if got := rules.QuestPoints(&world.Quest{ID: "q1"}); got != 127 { // 255 * 0.5, truncated
		t.Errorf("expected 127 points at half scale, got %d", got)
	}
}

func TestDeliveryDate(t *testing.T) {
	cfg := testGiftingConfig()
	cfg.Scheduling = worlddate.SchedulingSameDay
	rules := NewRules(cfg, NewCustomRules(), midweek)
	if got := rules.DeliveryDate(); got != midweek {
		t.Errorf("expected same-day delivery on %v, got %v", midweek, got)
	}

	cfg.Scheduling = worlddate.SchedulingNextDay
	rules = NewRules(cfg, NewCustomRules(), midweek)
	want := midweek.AddDays(1)
	if got := rules.DeliveryDate(); got != want {
		t.Errorf("expected next-day delivery on %v, got %v", want, got)
	}
}
