// Package worlddate models the simulation calendar: four seasons of 28 days
// each, with weeks starting on Monday. Gift limits reset on Sunday.
package worlddate

import "fmt"

const (
	DaysPerSeason  = 28
	SeasonsPerYear = 4
	DaysPerWeek    = 7
)

// Season identifies one of the four in-game seasons.
type Season int

const (
	Spring Season = iota
	Summer
	Fall
	Winter
)

// String returns the season's display name.
func (s Season) String() string {
	switch s {
	case Spring:
		return "Spring"
	case Summer:
		return "Summer"
	case Fall:
		return "Fall"
	case Winter:
		return "Winter"
	default:
		return "Unknown"
	}
}

// Key returns the season's lowercase data key, as used in NPC birthday data.
func (s Season) Key() string {
	switch s {
	case Spring:
		return "spring"
	case Summer:
		return "summer"
	case Fall:
		return "fall"
	case Winter:
		return "winter"
	default:
		return ""
	}
}

// ParseSeason converts a data key ("spring", "summer", ...) to a Season.
func ParseSeason(key string) (Season, bool) {
	switch key {
	case "spring":
		return Spring, true
	case "summer":
		return Summer, true
	case "fall":
		return Fall, true
	case "winter":
		return Winter, true
	default:
		return Spring, false
	}
}

// Weekday identifies a day of the in-game week. Day 1 of every season is a
// Monday; Sunday is the weekly reset day.
type Weekday int

const (
	Monday Weekday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

// String returns the weekday's display name.
func (w Weekday) String() string {
	names := [...]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}
	if w < Monday || w > Sunday {
		return "Unknown"
	}
	return names[w]
}

// WorldDate is a calendar date in the simulation. Day is 1-based within the
// season. The zero value is Spring 1 of year 0, which precedes all valid
// dates; valid saved dates start at year 1.
type WorldDate struct {
	Year   int    `json:"year" yaml:"year"`
	Season Season `json:"season" yaml:"season"`
	Day    int    `json:"day" yaml:"day"`
}

// NewWorldDate creates a date, normalizing out-of-range days and seasons.
func NewWorldDate(year int, season Season, day int) WorldDate {
	d := WorldDate{Year: year, Season: season, Day: day}
	return FromTotalDays(d.TotalDays())
}

// TotalDays returns the number of days elapsed since Spring 1, Year 1
// (which is day 0).
func (d WorldDate) TotalDays() int {
	return (d.Year-1)*SeasonsPerYear*DaysPerSeason + int(d.Season)*DaysPerSeason + (d.Day - 1)
}

// FromTotalDays converts a day count (as produced by TotalDays) back into a
// calendar date.
func FromTotalDays(total int) WorldDate {
	year := total / (SeasonsPerYear * DaysPerSeason)
	rem := total % (SeasonsPerYear * DaysPerSeason)
	return WorldDate{
		Year:   year + 1,
		Season: Season(rem / DaysPerSeason),
		Day:    rem%DaysPerSeason + 1,
	}
}

// AddDays returns the date n days after this one.
func (d WorldDate) AddDays(n int) WorldDate {
	return FromTotalDays(d.TotalDays() + n)
}

// Weekday returns the day of the in-game week for this date.
func (d WorldDate) Weekday() Weekday {
	return Weekday((d.Day - 1) % DaysPerWeek)
}

// String formats the date for logs and mail text, e.g. "Spring 5, Year 1".
func (d WorldDate) String() string {
	return fmt.Sprintf("%s %d, Year %d", d.Season, d.Day, d.Year)
}

// Before reports whether d falls before other.
func (d WorldDate) Before(other WorldDate) bool {
	return d.TotalDays() < other.TotalDays()
}

// Scheduling selects when scheduled gifts are actually delivered.
type Scheduling string

const (
	// SchedulingSameDay delivers at the end of the day the gift was
	// scheduled, so all limit and birthday rules behave exactly as they
	// would for an in-person gift.
	SchedulingSameDay Scheduling = "same_day"

	// SchedulingNextDay delivers at the start of the following day. Limit
	// rules are deferred: a gift mailed on Saturday skips the weekly cap
	// because caps reset on Sunday, and birthday gifts must be mailed the
	// day before the birthday.
	SchedulingNextDay Scheduling = "next_day"
)

// ResolveDeliveryDate returns the date on which a gift scheduled on current
// will actually be delivered.
func ResolveDeliveryDate(current WorldDate, mode Scheduling) WorldDate {
	if mode == SchedulingNextDay {
		return current.AddDays(1)
	}
	return current
}
