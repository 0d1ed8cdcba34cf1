package gifting

import (
	"fmt"

	"github.com/focustense/penpals-server/internal/logger"
	"github.com/focustense/penpals-server/internal/world"
)

// GiftResult is the outcome of one parcel in a sweep or dry run.
type GiftResult struct {
	FromID   int64
	FromName string
	ToName   string
	Gift     *world.Item

	// QuestID is set when the delivery completed (or would complete) a
	// quest.
	QuestID string

	// Outcome is a short explanation: a gift taste name, "Quest", or
	// "Returned:<reasons>". For logs, not UI.
	Outcome string

	// Points is the friendship delta produced by the delivery.
	Points int
}

// String formats the result as a single log line.
func (r GiftResult) String() string {
	return fmt.Sprintf("%s -> %s: %s [%s, %+d pts]", r.FromName, r.ToName, r.Gift, r.Outcome, r.Points)
}

// LogResults writes a heading and one debug line per result.
func LogResults(results []GiftResult, heading string) {
	if len(results) == 0 {
		return
	}
	logger.Debug(heading, "count", len(results))
	for _, result := range results {
		logger.Debugf("  %s", result)
	}
}
