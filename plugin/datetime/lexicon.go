package datetime

import (
	"strconv"
	"strings"
	"time"
)

// strategy is one parser interpretation. matched reports whether its pattern
// claimed the text; a claimed text is never handed to a later strategy.
type strategy func(text string, ref time.Time) (res *ResolutionResult, matched bool)

func runStrategies(text string, ref time.Time, strategies ...strategy) *ResolutionResult {
	for _, s := range strategies {
		if res, matched := s(text, ref); matched {
			if res == nil || !res.Success {
				return nil
			}
			return res
		}
	}
	return nil
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func lastWord(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return fields[len(fields)-1]
}

func lookupNumber(common CommonConfig, s string) (float64, bool) {
	s = collapse(s)
	if s == "" {
		return 0, false
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return v, true
	}
	v, ok := common.Numbers()[s]
	return v, ok
}

func lookupInt(common CommonConfig, s string) (int, bool) {
	v, ok := lookupNumber(common, s)
	if !ok || v != float64(int(v)) {
		return 0, false
	}
	return int(v), true
}

func stripOrdinalSuffix(s string) string {
	for _, suffix := range []string{"st", "nd", "rd", "th"} {
		if strings.HasSuffix(s, suffix) {
			if _, err := strconv.Atoi(s[:len(s)-len(suffix)]); err == nil {
				return s[:len(s)-len(suffix)]
			}
		}
	}
	return s
}

func lookupDay(common CommonConfig, s string) (int, bool) {
	s = collapse(strings.TrimPrefix(collapse(s), "the "))
	if v, ok := common.DaysOfMonth()[s]; ok {
		return v, true
	}
	n, err := strconv.Atoi(stripOrdinalSuffix(s))
	if err != nil || n < 1 || n > 31 {
		return 0, false
	}
	return n, true
}

func lookupMonth(common CommonConfig, s string) (int, bool) {
	s = strings.TrimSuffix(collapse(s), ".")
	if v, ok := common.Months()[s]; ok {
		return v, true
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || n > 12 {
		return 0, false
	}
	return n, true
}

func lookupOrdinal(common CommonConfig, s string) (int, bool) {
	s = collapse(s)
	if v, ok := common.Ordinals()[s]; ok {
		return v, true
	}
	n, err := strconv.Atoi(stripOrdinalSuffix(s))
	if err != nil {
		return 0, false
	}
	return n, true
}

func lookupWeekday(common CommonConfig, s string) (int, bool) {
	v, ok := common.Weekdays()[collapse(s)]
	return v, ok
}

func lookupRelative(common CommonConfig, s string) (int, bool) {
	v, ok := common.Relatives()[collapse(s)]
	return v, ok
}

// parseYear accepts four digit years and two digit years inside the
// locale's thresholds.
func parseYear(common CommonConfig, s string) (int, bool) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "'")
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	switch len(s) {
	case 4:
		return n, true
	case 1, 2:
		future, past := common.TwoDigitYearThresholds()
		switch {
		case n < future:
			return 2000 + n, true
		case n >= past:
			return 1900 + n, true
		}
	}
	return 0, false
}

// yearOf resolves the `year` or `yrel` group of m, falling back to the
// reference year. explicit reports whether the text named a year.
func yearOf(common CommonConfig, m Match, ref time.Time) (year int, explicit, ok bool) {
	if m.Has("year") {
		y, ok := parseYear(common, m.Group("year"))
		return y, true, ok
	}
	if m.Has("yrel") {
		off, ok := lookupRelative(common, m.Group("yrel"))
		return ref.Year() + off, true, ok
	}
	return ref.Year(), false, true
}

// nearestMonthDay returns the first occurrence of month/day on or after the
// reference day and the last one before it.
func nearestMonthDay(ref time.Time, month, day int) (future, past time.Time, ok bool) {
	loc := ref.Location()
	today := StartOfDay(ref)
	for i := 0; i <= 8 && future.IsZero(); i++ {
		if c := SafeDate(ref.Year()+i, month, day, loc); !c.IsZero() && !c.Before(today) {
			future = c
		}
	}
	for i := 0; i <= 8 && past.IsZero(); i++ {
		if c := SafeDate(ref.Year()-i, month, day, loc); !c.IsZero() && c.Before(today) {
			past = c
		}
	}
	return future, past, !future.IsZero() && !past.IsZero()
}

// nearestDayOfMonth is nearestMonthDay for a day with no month.
func nearestDayOfMonth(ref time.Time, day int) (future, past time.Time, ok bool) {
	loc := ref.Location()
	today := StartOfDay(ref)
	first := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, loc)
	for i := 0; i <= 12 && future.IsZero(); i++ {
		mo := AddMonths(first, i)
		if c := SafeDate(mo.Year(), int(mo.Month()), day, loc); !c.IsZero() && !c.Before(today) {
			future = c
		}
	}
	for i := 0; i <= 12 && past.IsZero(); i++ {
		mo := AddMonths(first, -i)
		if c := SafeDate(mo.Year(), int(mo.Month()), day, loc); !c.IsZero() && c.Before(today) {
			past = c
		}
	}
	return future, past, !future.IsZero() && !past.IsZero()
}

// nearestWeekday resolves a bare weekday: this week's if not yet passed,
// otherwise next week's; the past side mirrors it.
func nearestWeekday(ref time.Time, isoWeekday int) (future, past time.Time) {
	today := StartOfDay(ref)
	this := ThisWeekday(ref, isoWeekday)
	future, past = this, this
	if this.Before(today) {
		future = this.AddDate(0, 0, 7)
	} else {
		past = this.AddDate(0, 0, -7)
	}
	return future, past
}

// monthYears picks the years of a year-less month: the future side keeps
// the reference year while the month has not passed.
func monthYears(ref time.Time, month int) (future, past int) {
	if month >= int(ref.Month()) {
		return ref.Year(), ref.Year() - 1
	}
	return ref.Year() + 1, ref.Year()
}

func dateResult(timex string, future, past time.Time) *ResolutionResult {
	return &ResolutionResult{
		Success:          true,
		Timex:            timex,
		FutureValue:      future,
		PastValue:        past,
		FutureResolution: map[string]string{KeyDate: FormatDate(future)},
		PastResolution:   map[string]string{KeyDate: FormatDate(past)},
	}
}

func dateTimeResult(timex string, future, past time.Time) *ResolutionResult {
	return &ResolutionResult{
		Success:          true,
		Timex:            timex,
		FutureValue:      future,
		PastValue:        past,
		FutureResolution: map[string]string{KeyDateTime: FormatDateTime(future)},
		PastResolution:   map[string]string{KeyDateTime: FormatDateTime(past)},
	}
}

func datePeriodResult(timex string, future, past TimeRange) *ResolutionResult {
	return &ResolutionResult{
		Success:     true,
		Timex:       timex,
		FutureValue: future,
		PastValue:   past,
		FutureResolution: map[string]string{
			KeyStartDate: FormatDate(future.Start),
			KeyEndDate:   FormatDate(future.End),
		},
		PastResolution: map[string]string{
			KeyStartDate: FormatDate(past.Start),
			KeyEndDate:   FormatDate(past.End),
		},
	}
}

func dateTimePeriodResult(timex string, future, past TimeRange) *ResolutionResult {
	return &ResolutionResult{
		Success:     true,
		Timex:       timex,
		FutureValue: future,
		PastValue:   past,
		FutureResolution: map[string]string{
			KeyStartDateTime: FormatDateTime(future.Start),
			KeyEndDateTime:   FormatDateTime(future.End),
		},
		PastResolution: map[string]string{
			KeyStartDateTime: FormatDateTime(past.Start),
			KeyEndDateTime:   FormatDateTime(past.End),
		},
	}
}

// rangeTokens joins consecutive points linked by a range connector and
// absorbs a from/between prefix.
func rangeTokens(norm string, points []ExtractResult, common CommonConfig) []Token {
	var tokens []Token
	for i := 0; i+1 < len(points); i++ {
		first, second := points[i], points[i+1]
		if second.Start < first.End() {
			continue
		}
		start, between := first.Start, false
		before := runePrefix(norm, first.Start)
		if m, ok := common.RangePrefixRegex().Find(before); ok && m.End() == runeLen(before) {
			start, between = m.Index, m.Has("between")
		}
		if !rangeGapMatches(common, substring(norm, first.End(), second.Start-first.End()), between) {
			continue
		}
		tokens = append(tokens, Token{Start: start, End: second.End()})
	}
	return tokens
}

func rangeGapMatches(common CommonConfig, gap string, between bool) bool {
	if between {
		_, ok := common.AndRegex().MatchExact(gap)
		return ok
	}
	_, ok := common.RangeConnectorRegex().MatchExact(gap)
	return ok
}

// splitRange checks that text is exactly [prefix] first gap second and
// returns the two endpoints.
func splitRange(text string, points []ExtractResult, common CommonConfig) (first, second ExtractResult, ok bool) {
	if len(points) != 2 {
		return first, second, false
	}
	first, second = points[0], points[1]
	if second.End() != runeLen(text) || second.Start < first.End() {
		return first, second, false
	}
	between := false
	if prefix := runePrefix(text, first.Start); strings.TrimSpace(prefix) != "" {
		m, matched := common.RangePrefixRegex().MatchExact(prefix)
		if !matched {
			return first, second, false
		}
		between = m.Has("between")
	}
	gap := substring(text, first.End(), second.Start-first.End())
	return first, second, rangeGapMatches(common, gap, between)
}

// adjacentPair finds a and b in text, in that order, separated by a gap the
// connector accepts, and covering the whole text.
func adjacentPair(text string, as, bs []ExtractResult, connector *Regex) (ExtractResult, ExtractResult, bool) {
	total := runeLen(text)
	for _, x := range as {
		if x.Start != 0 {
			continue
		}
		for _, y := range bs {
			if y.Start < x.End() || y.End() != total {
				continue
			}
			if _, matched := connector.MatchExact(substring(text, x.End(), y.Start-x.End())); matched {
				return x, y, true
			}
		}
	}
	return ExtractResult{}, ExtractResult{}, false
}

// pairTokens spans every a followed by b with an accepted gap.
func pairTokens(norm string, as, bs []ExtractResult, connector *Regex) []Token {
	var tokens []Token
	for _, a := range as {
		for _, b := range bs {
			if b.Start < a.End() {
				continue
			}
			if _, ok := connector.MatchExact(substring(norm, a.End(), b.Start-a.End())); ok {
				tokens = append(tokens, Token{Start: a.Start, End: b.End()})
			}
		}
	}
	return tokens
}

// suffixTokens extends each candidate with a match of re anchored right after
// it.
func suffixTokens(norm string, ers []ExtractResult, re *Regex) []Token {
	var tokens []Token
	for _, er := range ers {
		if m, ok := re.Find(runeSuffix(norm, er.End())); ok && m.Index == 0 {
			tokens = append(tokens, Token{Start: er.Start, End: er.End() + m.End()})
		}
	}
	return tokens
}

// prefixMatch finds a match of re ending exactly at offset end.
func prefixMatch(norm string, end int, re *Regex) (Match, bool) {
	before := runePrefix(norm, end)
	m, ok := re.Find(before)
	if !ok || m.End() != runeLen(before) {
		return Match{}, false
	}
	return m, true
}

func withoutOverlaps(base, extra []ExtractResult) []ExtractResult {
	out := append([]ExtractResult(nil), base...)
	for _, er := range extra {
		clash := false
		for _, b := range base {
			if er.overlaps(b) {
				clash = true
				break
			}
		}
		if !clash {
			out = append(out, er)
		}
	}
	sortByStart(out)
	return out
}
