package datetime

import (
	"time"
)

type relativeMode int

const (
	// relativeDate shifts whole calendar days, weeks, months and years.
	relativeDate relativeMode = iota
	// relativeDateTime shifts the reference instant by hours, minutes and
	// seconds.
	relativeDateTime
)

func (m relativeMode) accepts(parts map[string]float64) bool {
	if len(parts) == 0 {
		return false
	}
	for unit, amount := range parts {
		switch m {
		case relativeDate:
			if isTimeUnit(unit) || amount != float64(int(amount)) {
				return false
			}
		case relativeDateTime:
			if !isTimeUnit(unit) {
				return false
			}
		}
	}
	return true
}

// relativeDurationTokens extends durations with an adjacent ago/later/in
// connector. Only durations whose units fit mode are considered.
func relativeDurationTokens(norm string, durations []ExtractResult, parser *DurationParser, config RelativeConfig, mode relativeMode) []Token {
	var tokens []Token
	for _, d := range durations {
		parts, ok := parser.parts(trimmed(d.Text))
		if !ok || !mode.accepts(parts) {
			continue
		}
		after := runeSuffix(norm, d.End())
		if m, ok := config.AgoRegex().Find(after); ok && m.Index == 0 {
			tokens = append(tokens, Token{Start: d.Start, End: d.End() + m.End()})
			continue
		}
		if m, ok := config.LaterRegex().Find(after); ok && m.Index == 0 {
			tokens = append(tokens, Token{Start: d.Start, End: d.End() + m.End()})
			continue
		}
		if m, ok := prefixMatch(norm, d.Start, config.InRegex()); ok {
			tokens = append(tokens, Token{Start: m.Index, End: d.End()})
		}
	}
	return tokens
}

// shiftDate moves a day by whole calendar units.
func shiftDate(t time.Time, parts map[string]float64, sign int) time.Time {
	for _, unit := range unitOrder {
		n := int(parts[unit]) * sign
		switch unit {
		case UnitYear:
			t = AddMonths(t, 12*n)
		case UnitMonth:
			t = AddMonths(t, n)
		case UnitWeek:
			t = t.AddDate(0, 0, 7*n)
		case UnitDay:
			t = t.AddDate(0, 0, n)
		}
	}
	return t
}

func shiftClock(t time.Time, parts map[string]float64, sign int) time.Time {
	var seconds float64
	for unit, amount := range parts {
		seconds += amount * UnitSeconds[unit]
	}
	return t.Add(time.Duration(float64(sign) * seconds * float64(time.Second)))
}

// resolveRelativeDuration turns "3 days ago", "2 hours later" or "in a week"
// into an instant. The embedded duration is returned as a sub-entity carrying
// mod before (ago) or after (later, in).
func resolveRelativeDuration(text string, ref time.Time, extractor *DurationExtractor, parser *DurationParser, config RelativeConfig, mode relativeMode) *ResolutionResult {
	durations := extractor.Extract(text, ref)
	if len(durations) == 0 {
		return nil
	}
	d := durations[0]
	parts, ok := parser.parts(trimmed(d.Text))
	if !ok || !mode.accepts(parts) {
		return nil
	}

	after, before := runeSuffix(text, d.End()), runePrefix(text, d.Start)
	var sign int
	var mod string
	switch {
	case config.AgoRegex().MatchString(after):
		sign, mod = -1, ModBefore
	case config.LaterRegex().MatchString(after):
		sign, mod = 1, ModAfter
	case config.InRegex().MatchString(before):
		sign, mod = 1, ModAfter
	default:
		return nil
	}

	sub := parser.Parse(d, ref)
	if !sub.Succeeded() {
		return nil
	}
	sub.Value.Mod = mod

	var res *ResolutionResult
	if mode == relativeDate {
		t := shiftDate(StartOfDay(ref), parts, sign)
		res = dateResult(LuisDateOf(t), t, t)
	} else {
		t := shiftClock(ref, parts, sign)
		res = dateTimeResult(LuisDateTimeOf(t), t, t)
	}
	res.SubDateTimeEntities = []*ParseResult{sub}
	return res
}
