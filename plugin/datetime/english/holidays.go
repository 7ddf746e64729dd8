package english

import (
	"strings"
	"time"

	"github.com/hrygo/datetimex/plugin/datetime"
)

func fixed(month, day int) datetime.HolidayFunc {
	return func(year int, loc *time.Location) time.Time {
		return time.Date(year, time.Month(month), day, 0, 0, 0, 0, loc)
	}
}

// nth is the nth ISO weekday of a month; -1 is the last.
func nth(month, isoWeekday, n int) datetime.HolidayFunc {
	return func(year int, loc *time.Location) time.Time {
		return datetime.NthWeekdayOfMonth(year, month, isoWeekday, n, loc)
	}
}

func easterOffset(days int) datetime.HolidayFunc {
	return func(year int, loc *time.Location) time.Time {
		return datetime.EasterSunday(year, loc).AddDate(0, 0, days)
	}
}

var holidayRules = map[string]datetime.HolidayFunc{
	"new year's day":         fixed(1, 1),
	"new year":               fixed(1, 1),
	"martin luther king day": nth(1, 1, 3),
	"mlk day":                nth(1, 1, 3),
	"valentine's day":        fixed(2, 14),
	"st patrick's day":       fixed(3, 17),
	"st. patrick's day":      fixed(3, 17),
	"saint patrick's day":    fixed(3, 17),
	"april fools day":        fixed(4, 1),
	"april fool's day":       fixed(4, 1),
	"earth day":              fixed(4, 22),
	"good friday":            easterOffset(-2),
	"easter":                 easterOffset(0),
	"easter sunday":          easterOffset(0),
	"easter monday":          easterOffset(1),
	"mother's day":           nth(5, 7, 2),
	"memorial day":           nth(5, 1, -1),
	"father's day":           nth(6, 7, 3),
	"independence day":       fixed(7, 4),
	"labor day":              nth(9, 1, 1),
	"labour day":             nth(9, 1, 1),
	"columbus day":           nth(10, 1, 2),
	"halloween":              fixed(10, 31),
	"veterans day":           fixed(11, 11),
	"thanksgiving":           nth(11, 4, 4),
	"thanksgiving day":       nth(11, 4, 4),
	"christmas eve":          fixed(12, 24),
	"christmas":              fixed(12, 25),
	"christmas day":          fixed(12, 25),
	"xmas":                   fixed(12, 25),
	"boxing day":             fixed(12, 26),
	"new year's eve":         fixed(12, 31),
}

// holidays expands apostrophe variants: "mother's day", "mothers day" and
// the typographic apostrophe all resolve.
func holidays() map[string]datetime.HolidayFunc {
	m := make(map[string]datetime.HolidayFunc, 3*len(holidayRules))
	for name, rule := range holidayRules {
		m[name] = rule
		if strings.Contains(name, "'") {
			m[strings.ReplaceAll(name, "'", "")] = rule
			m[strings.ReplaceAll(name, "'", "’")] = rule
		}
	}
	return m
}
