package world

// FriendshipStatus is the relationship stage between a player and an NPC.
type FriendshipStatus string

const (
	StatusFriendly FriendshipStatus = "friendly"
	StatusDating   FriendshipStatus = "dating"
	StatusEngaged  FriendshipStatus = "engaged"
	StatusMarried  FriendshipStatus = "married"
	StatusDivorced FriendshipStatus = "divorced"
)

// Friendship is a snapshot of one player's relationship record with an NPC.
type Friendship struct {
	Points        int              `json:"points" yaml:"points"`
	GiftsToday    int              `json:"gifts_today" yaml:"gifts_today"`
	GiftsThisWeek int              `json:"gifts_this_week" yaml:"gifts_this_week"`
	Status        FriendshipStatus `json:"status" yaml:"status"`
}

// IsMarried reports whether the relationship is a current marriage.
func (f Friendship) IsMarried() bool {
	return f.Status == StatusMarried
}

// IsDating reports whether the relationship is dating or engaged.
func (f Friendship) IsDating() bool {
	return f.Status == StatusDating || f.Status == StatusEngaged
}

// IsDivorced reports whether the relationship ended in divorce.
func (f Friendship) IsDivorced() bool {
	return f.Status == StatusDivorced
}

// PointsPerHeart is the simulation's friendship-point value of one heart.
const PointsPerHeart = 250

// MaxFriendshipPoints returns the maximum friendship points attainable for
// the relationship: 8 hearts for a datable NPC, 10 otherwise, raised to 10
// while dating and 14 while married. Both the engine's estimator and the
// simulation's own mutation clamp against this value, which keeps dry-run
// previews authoritative.
func MaxFriendshipPoints(f Friendship, datable bool) int {
	maxHearts := 10
	if datable {
		maxHearts = 8
	}
	if f.IsMarried() {
		maxHearts = 14
	} else if f.IsDating() {
		maxHearts = 10
	}
	return maxHearts * PointsPerHeart
}
