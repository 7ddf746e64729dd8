package datetime

import (
	"time"
)

// MinDate is the sentinel returned for invalid calendar values.
var MinDate = time.Time{}

// Fixed month counts for quarter and half-year blocks.
const (
	MonthsPerQuarter  = 3
	MonthsPerHalfYear = 6
)

// IsValidDate reports whether year/month/day names a real Gregorian day.
func IsValidDate(year, month, day int) bool {
	if year < 1 || year > 9999 || month < 1 || month > 12 || day < 1 {
		return false
	}
	return day <= DaysInMonth(year, month)
}

// DaysInMonth returns the number of days in a month.
func DaysInMonth(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// SafeDate builds a date at midnight in loc, or MinDate when the values do
// not name a real day.
func SafeDate(year, month, day int, loc *time.Location) time.Time {
	if !IsValidDate(year, month, day) {
		return MinDate
	}
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, loc)
}

// SafeDateTime is SafeDate with a clock time.
func SafeDateTime(year, month, day, hour, minute, second int, loc *time.Location) time.Time {
	if !IsValidDate(year, month, day) || hour < 0 || hour > 23 || minute < 0 || minute > 59 || second < 0 || second > 59 {
		return MinDate
	}
	return time.Date(year, time.Month(month), day, hour, minute, second, 0, loc)
}

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// AtClock returns the day of t at the given clock time. MinDate stays
// MinDate.
func AtClock(t time.Time, hour, minute, second int) time.Time {
	if t.IsZero() {
		return MinDate
	}
	return time.Date(t.Year(), t.Month(), t.Day(), hour, minute, second, 0, t.Location())
}

// ISOWeekday returns Monday = 1 ... Sunday = 7.
func ISOWeekday(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

// ThisWeekday returns the given ISO weekday within the Monday based week of
// ref.
func ThisWeekday(ref time.Time, isoWeekday int) time.Time {
	return StartOfDay(ref).AddDate(0, 0, isoWeekday-ISOWeekday(ref))
}

// NextWeekday returns the weekday in the week after ref's week.
func NextWeekday(ref time.Time, isoWeekday int) time.Time {
	return ThisWeekday(ref, isoWeekday).AddDate(0, 0, 7)
}

// LastWeekday returns the weekday in the week before ref's week.
func LastWeekday(ref time.Time, isoWeekday int) time.Time {
	return ThisWeekday(ref, isoWeekday).AddDate(0, 0, -7)
}

// StartOfWeek returns Monday of ref's week.
func StartOfWeek(ref time.Time) time.Time {
	return ThisWeekday(ref, 1)
}

// MondayOfISOWeek returns Monday of ISO week `week` of `year`. Week 1 is the
// week holding the year's first Thursday.
func MondayOfISOWeek(year, week int, loc *time.Location) time.Time {
	jan4 := time.Date(year, time.January, 4, 0, 0, 0, 0, loc)
	return StartOfWeek(jan4).AddDate(0, 0, 7*(week-1))
}

// ISOWeeksInYear returns 52 or 53.
func ISOWeeksInYear(year int) int {
	_, w := time.Date(year, time.December, 28, 0, 0, 0, 0, time.UTC).ISOWeek()
	return w
}

// MondayOfMonthWeek returns Monday of the nth week of a month using the same
// Thursday rule: week 1 is the week holding the month's first Thursday.
func MondayOfMonthWeek(year, month, week int, loc *time.Location) time.Time {
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, loc)
	offset := (4 - ISOWeekday(first) + 7) % 7
	firstThursday := first.AddDate(0, 0, offset)
	return StartOfWeek(firstThursday).AddDate(0, 0, 7*(week-1))
}

// AddMonths adds n months, clamping the day to the target month's length.
func AddMonths(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	total := int(m) - 1 + n
	year := y + floorDiv(total, 12)
	month := floorMod(total, 12) + 1
	if limit := DaysInMonth(year, month); d > limit {
		d = limit
	}
	return time.Date(year, time.Month(month), d, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

// DiffDays counts calendar days from a to b.
func DiffDays(a, b time.Time) int {
	ua := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	ub := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(ub.Sub(ua).Hours() / 24)
}

// NthWeekdayOfMonth returns the nth (1 based) ISO weekday of a month. A
// negative n counts from the end; -1 is the last.
func NthWeekdayOfMonth(year, month, isoWeekday, n int, loc *time.Location) time.Time {
	if n < 0 {
		last := time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, loc)
		back := (ISOWeekday(last) - isoWeekday + 7) % 7
		return last.AddDate(0, 0, -back+7*(n+1))
	}
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, loc)
	ahead := (isoWeekday - ISOWeekday(first) + 7) % 7
	return first.AddDate(0, 0, ahead+7*(n-1))
}

// EasterSunday computes Western Easter with the anonymous Gregorian
// algorithm.
func EasterSunday(year int, loc *time.Location) time.Time {
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	month := (h + l - 7*m + 114) / 31
	day := (h+l-7*m+114)%31 + 1
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, loc)
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func floorMod(a, b int) int {
	return a - floorDiv(a, b)*b
}
