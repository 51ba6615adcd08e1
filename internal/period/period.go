// Package period maps symbolic period keys ("month", "week", ...) to
// concrete calendar date ranges and filters collections against them.
package period

import "time"

// Key is a symbolic period token selected by the user.
type Key string

const (
	All       Key = "all"
	Week      Key = "week"
	Month     Key = "month"
	LastMonth Key = "last_month"
	Year      Key = "year"
)

// ParseKey returns the Key for a query-string value, defaulting to All.
func ParseKey(s string) Key {
	switch Key(s) {
	case Week, Month, LastMonth, Year:
		return Key(s)
	default:
		return All
	}
}

// Range is an inclusive calendar date range. Start and End carry no
// time-of-day; End extends through the last instant of its day when
// filtering.
type Range struct {
	Start time.Time
	End   time.Time
}

// midnight truncates t to its calendar date in t's location.
func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// Resolve maps a period key to a date range relative to now. It returns nil
// for All, meaning "no filtering". Weeks start on Monday.
func Resolve(key Key, now time.Time) *Range {
	today := midnight(now)
	switch key {
	case Week:
		offset := int(today.Weekday()) - int(time.Monday)
		if offset < 0 {
			offset += 7 // Sunday
		}
		return &Range{Start: today.AddDate(0, 0, -offset), End: today}
	case Month:
		return &Range{
			Start: time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location()),
			End:   today,
		}
	case LastMonth:
		firstOfThis := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location())
		return &Range{
			Start: firstOfThis.AddDate(0, -1, 0),
			End:   firstOfThis.AddDate(0, 0, -1),
		}
	case Year:
		return &Range{
			Start: time.Date(today.Year(), time.January, 1, 0, 0, 0, 0, today.Location()),
			End:   today,
		}
	default:
		return nil
	}
}

// Contains reports whether t falls within the range, with End extended
// through 23:59:59.999 of its day.
func (r *Range) Contains(t time.Time) bool {
	endExclusive := midnight(r.End).AddDate(0, 0, 1)
	return !t.Before(r.Start) && t.Before(endExclusive)
}

// Filter keeps the items whose selected date falls within the key's range.
// A nil range (key All) returns items unchanged. Items with no date are
// always retained: undated rows stay visible under every period filter.
func Filter[T any](items []T, key Key, now time.Time, dateOf func(T) *time.Time) []T {
	r := Resolve(key, now)
	if r == nil {
		return items
	}
	out := make([]T, 0, len(items))
	for _, it := range items {
		d := dateOf(it)
		if d == nil || r.Contains(*d) {
			out = append(out, it)
		}
	}
	return out
}
