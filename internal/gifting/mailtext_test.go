package gifting

import (
	"strings"
	"testing"

	"github.com/focustense/penpals-server/internal/sim"
	"github.com/focustense/penpals-server/internal/world"
	"github.com/focustense/penpals-server/internal/worlddate"
)

func testReturnedGift(reasons NonGiftableReasons) ReturnedGift {
	return ReturnedGift{
		NPCName:    "Abigail",
		Gift:       &world.Item{ID: "66", Category: "O", Name: "Amethyst", Stack: 1},
		PickupDate: worlddate.WorldDate{Year: 1, Season: worlddate.Spring, Day: 3},
		Reasons:    reasons,
	}
}

func TestFormatReturnTextWithoutDetails(t *testing.T) {
	s := sim.NewSimulation(midweek)
	s.AddNPC(testNPC())

	text := FormatReturnText(s, testReturnedGift(ReasonDailyLimit), false)
	want := "Your gift could not be delivered to Abigail on Spring 3, Year 1; it is enclosed with this letter."
	if text != want {
		t.Errorf("expected %q, got %q", want, text)
	}
}

func TestFormatReturnTextWithDetails(t *testing.T) {
	s := sim.NewSimulation(midweek)
	s.AddNPC(testNPC())

	text := FormatReturnText(s, testReturnedGift(ReasonDailyLimit|ReasonWeeklyLimit), true)
	if !strings.Contains(text, "Word around town is that they already received a gift that day.") {
		t.Errorf("expected the first reason only, got %q", text)
	}
	if strings.Contains(text, "that week") {
		t.Errorf("expected a single reason in the letter, got %q", text)
	}
}

func TestFormatReturnTextUnknownNPC(t *testing.T) {
	s := sim.NewSimulation(midweek)

	// The NPC may have left the world entirely; fall back to the stored
	// name.
	text := FormatReturnText(s, testReturnedGift(ReasonChild), false)
	if !strings.Contains(text, "Abigail") {
		t.Errorf("expected the stored name in the letter, got %q", text)
	}
}
