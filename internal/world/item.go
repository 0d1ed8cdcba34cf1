// Package world defines the contracts the gift engine consumes from the
// hosting simulation: actors, recipients, items, quests, and the narrow
// mutation API. The engine never mutates simulation state except through
// these interfaces.
package world

import "fmt"

// Item quality tiers, matching the simulation's values. Quality 3 is unused.
const (
	QualityNormal  = 0
	QualitySilver  = 1
	QualityGold    = 2
	QualityIridium = 4
)

// Item is a giftable inventory item. Items are value-ish: the engine copies
// them into parcels rather than holding references into player inventories.
type Item struct {
	ID       string `json:"id" yaml:"id"`
	Category string `json:"category" yaml:"category"`
	Name     string `json:"name" yaml:"name"`
	Quality  int    `json:"quality" yaml:"quality"`
	Stack    int    `json:"stack" yaml:"stack"`
}

// QualifiedID returns the category-qualified item id, e.g. "(O)128".
func (i *Item) QualifiedID() string {
	return fmt.Sprintf("(%s)%s", i.Category, i.ID)
}

// QualityMultiplier returns the friendship multiplier for the item's
// quality tier.
func (i *Item) QualityMultiplier() float64 {
	switch i.Quality {
	case QualitySilver:
		return 1.1
	case QualityGold:
		return 1.25
	case QualityIridium:
		return 1.5
	default:
		return 1.0
	}
}

// WithStack returns a copy of the item with the given stack size.
func (i *Item) WithStack(stack int) *Item {
	c := *i
	c.Stack = stack
	return &c
}

// SameKind reports whether two items stack together: same qualified id and
// quality.
func (i *Item) SameKind(other *Item) bool {
	return i.QualifiedID() == other.QualifiedID() && i.Quality == other.Quality
}

// String formats the item for logs.
func (i *Item) String() string {
	if i.Stack > 1 {
		return fmt.Sprintf("%s x%d (quality %d)", i.Name, i.Stack, i.Quality)
	}
	return fmt.Sprintf("%s (quality %d)", i.Name, i.Quality)
}
