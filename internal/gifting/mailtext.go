package gifting

import (
	"fmt"

	"github.com/focustense/penpals-server/internal/world"
)

// FormatReturnText renders the mail body for a returned gift. The text is
// generated on demand from the store, never stored. With details enabled
// and a non-empty reason set, exactly one human-readable reason is
// included.
func FormatReturnText(w world.World, returned ReturnedGift, detailed bool) string {
	npcName := returned.NPCName
	if npc, ok := w.CharacterByName(returned.NPCName); ok {
		npcName = npc.DisplayName()
	}
	details := ""
	if detailed {
		if reasons := returned.Reasons.Descriptions(); len(reasons) > 0 {
			details = fmt.Sprintf(" Word around town is that %s.", reasons[0])
		}
	}
	return fmt.Sprintf(
		"Your gift could not be delivered to %s on %s; it is enclosed with this letter.%s",
		npcName, returned.PickupDate, details)
}
