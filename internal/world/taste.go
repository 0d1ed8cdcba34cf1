package world

// GiftTaste is a recipient's reaction to a particular gift, using the
// simulation's numeric values. Odd values and out-of-range values are
// treated as neutral.
type GiftTaste int

const (
	TasteLove    GiftTaste = 0
	TasteLike    GiftTaste = 2
	TasteDislike GiftTaste = 4
	TasteHate    GiftTaste = 6
	TasteSpecial GiftTaste = 7
	TasteNeutral GiftTaste = 8
)

// String returns the taste's internal name, for logs only.
func (t GiftTaste) String() string {
	switch t {
	case TasteLove:
		return "Love"
	case TasteLike:
		return "Like"
	case TasteDislike:
		return "Dislike"
	case TasteHate:
		return "Hate"
	case TasteSpecial:
		return "Special"
	default:
		return "Neutral"
	}
}

// BasePoints returns the friendship points gained or lost for the taste,
// before any scaling is applied.
func (t GiftTaste) BasePoints() int {
	switch t {
	case TasteLove:
		return 80
	case TasteLike:
		return 45
	case TasteDislike:
		return -20
	case TasteHate:
		return -40
	case TasteSpecial:
		return 250
	default:
		return 20
	}
}
