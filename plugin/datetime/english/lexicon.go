package english

import (
	"sort"
	"strings"

	"github.com/dlclark/regexp2"

	"github.com/hrygo/datetimex/plugin/datetime"
)

var cardinals = []string{
	"", "one", "two", "three", "four", "five", "six", "seven", "eight", "nine",
	"ten", "eleven", "twelve", "thirteen", "fourteen", "fifteen", "sixteen",
	"seventeen", "eighteen", "nineteen",
}

var tens = []string{"", "", "twenty", "thirty", "forty", "fifty", "sixty", "seventy", "eighty", "ninety"}

var ordinalWords = []string{
	"", "first", "second", "third", "fourth", "fifth", "sixth", "seventh",
	"eighth", "ninth", "tenth", "eleventh", "twelfth", "thirteenth",
	"fourteenth", "fifteenth", "sixteenth", "seventeenth", "eighteenth",
	"nineteenth",
}

var tensOrdinals = map[int]string{20: "twentieth", 30: "thirtieth"}

// numbers covers 1..99 in words plus a few quantity phrases.
func numbers() map[string]float64 {
	m := map[string]float64{
		"a":           1,
		"an":          1,
		"a couple of": 2,
		"a couple":    2,
		"couple of":   2,
		"a few":       3,
		"a dozen":     12,
	}
	for i := 1; i < 100; i++ {
		for _, w := range numberWords(i) {
			m[w] = float64(i)
		}
	}
	return m
}

func numberWords(n int) []string {
	if n < 20 {
		return []string{cardinals[n]}
	}
	t, u := tens[n/10], n%10
	if u == 0 {
		return []string{t}
	}
	return []string{t + " " + cardinals[u], t + "-" + cardinals[u]}
}

func ordinalWordsOf(n int) []string {
	if n < 20 {
		return []string{ordinalWords[n]}
	}
	if w, ok := tensOrdinals[n]; ok {
		return []string{w}
	}
	t := tens[n/10]
	return []string{t + " " + ordinalWords[n%10], t + "-" + ordinalWords[n%10]}
}

// daysOfMonth maps ordinal words for 1..31.
func daysOfMonth() map[string]int {
	m := map[string]int{}
	for i := 1; i <= 31; i++ {
		for _, w := range ordinalWordsOf(i) {
			m[w] = i
		}
	}
	return m
}

func ordinals() map[string]int {
	m := daysOfMonth()
	m["last"] = -1
	return m
}

var months = map[string]int{
	"january": 1, "jan": 1,
	"february": 2, "feb": 2,
	"march": 3, "mar": 3,
	"april": 4, "apr": 4,
	"may":  5,
	"june": 6, "jun": 6,
	"july": 7, "jul": 7,
	"august": 8, "aug": 8,
	"september": 9, "sep": 9, "sept": 9,
	"october": 10, "oct": 10,
	"november": 11, "nov": 11,
	"december": 12, "dec": 12,
}

var fullMonths = []string{
	"january", "february", "march", "april", "may", "june", "july",
	"august", "september", "october", "november", "december",
}

var weekdayNames = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

func weekdays() map[string]int {
	m := map[string]int{
		"mon": 1, "tue": 2, "tues": 2, "wed": 3, "thu": 4, "thur": 4, "thurs": 4,
		"fri": 5, "sat": 6, "sun": 7,
	}
	for i, name := range weekdayNames {
		m[name] = i + 1
		m[name+"s"] = i + 1
	}
	return m
}

var units = map[string]string{
	"year": datetime.UnitYear, "years": datetime.UnitYear, "yr": datetime.UnitYear, "yrs": datetime.UnitYear,
	"month": datetime.UnitMonth, "months": datetime.UnitMonth,
	"week": datetime.UnitWeek, "weeks": datetime.UnitWeek,
	"day": datetime.UnitDay, "days": datetime.UnitDay,
	"hour": datetime.UnitHour, "hours": datetime.UnitHour, "hr": datetime.UnitHour, "hrs": datetime.UnitHour,
	"minute": datetime.UnitMinute, "minutes": datetime.UnitMinute, "min": datetime.UnitMinute, "mins": datetime.UnitMinute,
	"second": datetime.UnitSecond, "seconds": datetime.UnitSecond, "sec": datetime.UnitSecond, "secs": datetime.UnitSecond,
}

var relatives = map[string]int{
	"this": 0, "current": 0,
	"next": 1, "coming": 1, "upcoming": 1, "following": 1,
	"last": -1, "previous": -1, "past": -1, "prior": -1,
}

var specialDays = map[string]int{
	"today":                    0,
	"tomorrow":                 1,
	"tmr":                      1,
	"yesterday":                -1,
	"the day after tomorrow":   2,
	"day after tomorrow":       2,
	"the day before yesterday": -2,
	"day before yesterday":     -2,
}

var timesOfDay = map[string]string{
	"morning":        "TMO",
	"mornings":       "TMO",
	"afternoon":      "TAF",
	"afternoons":     "TAF",
	"evening":        "TEV",
	"evenings":       "TEV",
	"night":          "TNI",
	"nights":         "TNI",
	"tonight":        "TNI",
	"tonite":         "TNI",
	"daytime":        "TDA",
	"business hours": "TDT",
	"working hours":  "TDT",
}

var seasons = map[string]string{
	"spring": "SP",
	"summer": "SU",
	"fall":   "FA",
	"autumn": "FA",
	"winter": "WI",
}

var periodic = map[string]string{
	"daily":       "P1D",
	"weekly":      "P1W",
	"biweekly":    "P2W",
	"fortnightly": "P2W",
	"monthly":     "P1M",
	"quarterly":   "P3M",
	"yearly":      "P1Y",
	"annually":    "P1Y",
	"hourly":      "PT1H",
}

var specialTimes = map[string]int{
	"noon":      12,
	"midday":    12,
	"mid-day":   12,
	"midnight":  0,
	"mid-night": 0,
}

var minuteWords = map[string]int{
	"half":      30,
	"quarter":   15,
	"a quarter": 15,
}

var directions = map[string]int{
	"past":  1,
	"after": 1,
	"to":    -1,
	"till":  -1,
	"til":   -1,
}

// alternation renders keys as a regex alternation, longest first so that
// "a couple of" wins over "a". Spaces match any run of whitespace.
func alternation(keys []string) string {
	sorted := append([]string(nil), keys...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if len(sorted[i]) != len(sorted[j]) {
			return len(sorted[i]) > len(sorted[j])
		}
		return sorted[i] < sorted[j]
	})
	parts := make([]string, 0, len(sorted))
	for _, k := range sorted {
		if k == "" {
			continue
		}
		words := strings.Fields(k)
		for i, w := range words {
			words[i] = regexp2.Escape(w)
		}
		parts = append(parts, strings.Join(words, `\s+`))
	}
	return "(?:" + strings.Join(parts, "|") + ")"
}

func keysOf[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}
