package datetime

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Timex placeholders and codes.
const (
	TimexFuzzyYear  = "XXXX"
	TimexFuzzyMonth = "XX"
	TimexFuzzyDay   = "XX"
	TimexFuzzyWeek  = "WXX"
	TimexPresentRef = "PRESENT_REF"
	TimexWeekend    = "WE"
)

// Duration unit codes. Month uses MON so it cannot be confused with minute.
const (
	UnitYear   = "Y"
	UnitMonth  = "MON"
	UnitWeek   = "W"
	UnitDay    = "D"
	UnitHour   = "H"
	UnitMinute = "M"
	UnitSecond = "S"
)

// UnitSeconds is the nominal length of each duration unit.
var UnitSeconds = map[string]float64{
	UnitYear:   31536000,
	UnitMonth:  2592000,
	UnitWeek:   604800,
	UnitDay:    86400,
	UnitHour:   3600,
	UnitMinute: 60,
	UnitSecond: 1,
}

var unitOrder = []string{UnitYear, UnitMonth, UnitWeek, UnitDay, UnitHour, UnitMinute, UnitSecond}

func isTimeUnit(unit string) bool {
	return unit == UnitHour || unit == UnitMinute || unit == UnitSecond
}

const (
	layoutDate     = "2006-01-02"
	layoutTime     = "15:04:05"
	layoutDateTime = "2006-01-02 15:04:05"
)

// FormatDate renders the resolution form of a date.
func FormatDate(t time.Time) string {
	return t.Format(layoutDate)
}

// FormatTime renders the resolution form of a clock time.
func FormatTime(t time.Time) string {
	return t.Format(layoutTime)
}

// FormatDateTime renders the resolution form of a date-time.
func FormatDateTime(t time.Time) string {
	return t.Format(layoutDateTime)
}

// LuisDate renders a timex date. A negative year or month becomes a
// placeholder.
func LuisDate(year, month, day int) string {
	y := TimexFuzzyYear
	if year >= 0 {
		y = fmt.Sprintf("%04d", year)
	}
	m := TimexFuzzyMonth
	if month >= 0 {
		m = fmt.Sprintf("%02d", month)
	}
	d := TimexFuzzyDay
	if day >= 0 {
		d = fmt.Sprintf("%02d", day)
	}
	return y + "-" + m + "-" + d
}

// LuisDateOf renders a fully specified timex date.
func LuisDateOf(t time.Time) string {
	return LuisDate(t.Year(), int(t.Month()), t.Day())
}

// LuisTime renders hh:mm:ss.
func LuisTime(hour, minute, second int) string {
	return fmt.Sprintf("%02d:%02d:%02d", hour, minute, second)
}

// LuisDateTimeOf renders a fully specified timex date-time.
func LuisDateTimeOf(t time.Time) string {
	return LuisDateOf(t) + "T" + LuisTime(t.Hour(), t.Minute(), t.Second())
}

// TimexTime renders the shortest timex time: T15, T15:30 or T15:30:20.
func TimexTime(hour, minute, second int) string {
	switch {
	case second != 0:
		return fmt.Sprintf("T%02d:%02d:%02d", hour, minute, second)
	case minute != 0:
		return fmt.Sprintf("T%02d:%02d", hour, minute)
	default:
		return fmt.Sprintf("T%02d", hour)
	}
}

// WeekdayTimex renders XXXX-WXX-n for an ISO weekday (Monday = 1).
func WeekdayTimex(isoWeekday int) string {
	return TimexFuzzyYear + "-" + TimexFuzzyWeek + "-" + strconv.Itoa(isoWeekday)
}

// RangeTimex renders (start,end,duration).
func RangeTimex(start, end, duration string) string {
	return "(" + start + "," + end + "," + duration + ")"
}

// DateRangeTimex renders a date range. With noYear the years become
// placeholders.
func DateRangeTimex(start, end time.Time, noYear bool, duration string) string {
	if noYear {
		return RangeTimex(
			LuisDate(-1, int(start.Month()), start.Day()),
			LuisDate(-1, int(end.Month()), end.Day()),
			duration)
	}
	return RangeTimex(LuisDateOf(start), LuisDateOf(end), duration)
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// DurationTimex renders a single unit duration.
func DurationTimex(amount float64, unit string) string {
	switch unit {
	case UnitHour, UnitMinute, UnitSecond:
		return "PT" + formatAmount(amount) + unit
	case UnitMonth:
		return "P" + formatAmount(amount) + "M"
	default:
		return "P" + formatAmount(amount) + unit
	}
}

// DaysTimex renders P{n}D.
func DaysTimex(days int) string {
	return "P" + strconv.Itoa(days) + "D"
}

// ClockDurationTimex renders a sub-day duration as PT{h}H{m}M{s}S, omitting
// zero parts.
func ClockDurationTimex(d time.Duration) string {
	total := int(d.Seconds())
	if total < 0 {
		total = -total
	}
	h, m, s := total/3600, (total%3600)/60, total%60
	var b strings.Builder
	b.WriteString("PT")
	if h > 0 {
		b.WriteString(strconv.Itoa(h) + "H")
	}
	if m > 0 {
		b.WriteString(strconv.Itoa(m) + "M")
	}
	if s > 0 || (h == 0 && m == 0) {
		b.WriteString(strconv.Itoa(s) + "S")
	}
	return b.String()
}

// ComposeDurationTimex merges per-unit amounts into one timex, e.g.
// P1DT2H30M. Units are emitted largest first.
func ComposeDurationTimex(parts map[string]float64) string {
	var date, clock strings.Builder
	for _, unit := range unitOrder {
		amount, ok := parts[unit]
		if !ok {
			continue
		}
		if isTimeUnit(unit) {
			clock.WriteString(formatAmount(amount) + unit)
			continue
		}
		suffix := unit
		if unit == UnitMonth {
			suffix = "M"
		}
		date.WriteString(formatAmount(amount) + suffix)
	}
	out := "P" + date.String()
	if clock.Len() > 0 {
		out += "T" + clock.String()
	}
	return out
}

// ToPm shifts the leading hour of a time string by twelve hours. It accepts
// "hh:mm:ss", "Thh..." forms; hour 12 maps to 00.
func ToPm(s string) string {
	prefix := ""
	if strings.HasPrefix(s, "T") {
		prefix, s = "T", s[1:]
	}
	if len(s) < 2 {
		return prefix + s
	}
	hour, err := strconv.Atoi(s[:2])
	if err != nil {
		return prefix + s
	}
	hour += 12
	if hour == 24 {
		hour = 0
	}
	return prefix + fmt.Sprintf("%02d", hour%24) + s[2:]
}

// AllStringToPm applies ToPm to every timex hour (Thh not preceded by P) in s.
func AllStringToPm(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == 'T' && (i == 0 || s[i-1] != 'P') && isDigit(s, i+1) && isDigit(s, i+2) {
			b.WriteString(ToPm(s[i : i+3]))
			i += 2
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

func isDigit(s string, i int) bool {
	return i < len(s) && s[i] >= '0' && s[i] <= '9'
}
