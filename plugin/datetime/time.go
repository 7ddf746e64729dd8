package datetime

import (
	"strconv"
	"strings"
	"time"
)

// TimeExtractor finds clock times.
type TimeExtractor struct {
	config TimeConfig
}

// NewTimeExtractor returns a time extractor.
func NewTimeExtractor(config TimeConfig) *TimeExtractor {
	return &TimeExtractor{config: config}
}

// Extract implements Extractor.
func (e *TimeExtractor) Extract(text string, _ time.Time) []ExtractResult {
	norm := Normalize(text)
	patterns := append([]*Regex{}, e.config.TimePatterns()...)
	patterns = append(patterns,
		e.config.AtHourRegex(),
		e.config.SpecialTimeRegex(),
		e.config.RelativeMinuteRegex(),
	)
	if hook := e.config.Hook(); hook != nil {
		patterns = append(patterns, hook.Pattern())
	}
	return MergeAllTokens(findAllTokens(norm, patterns...), text, TypeTime)
}

// TimeParser resolves clock times on the reference day.
type TimeParser struct {
	config TimeConfig
	common CommonConfig
}

// NewTimeParser returns a time parser.
func NewTimeParser(config TimeConfig, common CommonConfig) *TimeParser {
	return &TimeParser{config: config, common: common}
}

// Parse implements Parser.
func (p *TimeParser) Parse(er ExtractResult, ref time.Time) *ParseResult {
	return newParseResult(er, p.parse(trimmed(er.Text), ref))
}

func (p *TimeParser) parse(text string, ref time.Time) *ResolutionResult {
	return runStrategies(text, ref,
		p.parseHook,
		p.parseSpecial,
		p.parseRelativeMinute,
		p.parsePatterns,
		p.parseBareHour,
	)
}

// ClockResult builds a time resolution on the reference day.
func ClockResult(ref time.Time, hour, minute, second int, comment Comment) *ResolutionResult {
	t := AtClock(ref, hour, minute, second)
	value := LuisTime(hour, minute, second)
	return &ResolutionResult{
		Success:          true,
		Timex:            TimexTime(hour, minute, second),
		Comment:          comment,
		FutureValue:      t,
		PastValue:        t,
		FutureResolution: map[string]string{KeyTime: value},
		PastResolution:   map[string]string{KeyTime: value},
	}
}

func (p *TimeParser) parseHook(text string, ref time.Time) (*ResolutionResult, bool) {
	hook := p.config.Hook()
	if hook == nil {
		return nil, false
	}
	m, ok := hook.Pattern().MatchExact(text)
	if !ok {
		return nil, false
	}
	res, ok := hook.Resolve(m, ref)
	if !ok {
		return nil, true
	}
	return res, true
}

func (p *TimeParser) parseSpecial(text string, ref time.Time) (*ResolutionResult, bool) {
	m, ok := p.config.SpecialTimeRegex().MatchExact(text)
	if !ok {
		return nil, false
	}
	hour, ok := p.config.SpecialTimes()[collapse(m.Group("special"))]
	if !ok {
		return nil, true
	}
	return ClockResult(ref, hour, 0, 0, CommentNone), true
}

func (p *TimeParser) parseRelativeMinute(text string, ref time.Time) (*ResolutionResult, bool) {
	m, ok := p.config.RelativeMinuteRegex().MatchExact(text)
	if !ok {
		return nil, false
	}
	var minute int
	if m.Has("minword") {
		minute, ok = p.config.MinuteWords()[collapse(m.Group("minword"))]
	} else {
		minute, ok = lookupInt(p.common, m.Group("minnum"))
	}
	if !ok || minute <= 0 || minute >= 60 {
		return nil, true
	}
	sign, ok := p.config.Directions()[collapse(m.Group("dir"))]
	if !ok {
		return nil, true
	}
	hour, ok := p.hour(m.Group("hour"))
	if !ok || hour > 23 {
		return nil, true
	}
	if sign < 0 {
		hour, minute = hour-1, 60-minute
		if hour < 0 {
			hour = 23
		}
		if hour == 0 && !m.Has("desc") {
			hour = 12
		}
	}
	return p.resolve(ref, m.Group("hour"), hour, minute, 0, m.Group("desc"), false)
}

func (p *TimeParser) parsePatterns(text string, ref time.Time) (*ResolutionResult, bool) {
	m, ok := matchFirstExact(text, p.config.TimePatterns())
	if !ok {
		return nil, false
	}
	hour, ok := p.hour(m.Group("hour"))
	if !ok {
		return nil, true
	}
	minute, second := 0, 0
	if m.Has("min") {
		if minute, ok = lookupInt(p.common, m.Group("min")); !ok {
			return nil, true
		}
	}
	if m.Has("sec") {
		if second, ok = lookupInt(p.common, m.Group("sec")); !ok {
			return nil, true
		}
	}
	return p.resolve(ref, m.Group("hour"), hour, minute, second, m.Group("desc"), m.Has("oclock"))
}

func (p *TimeParser) parseBareHour(text string, ref time.Time) (*ResolutionResult, bool) {
	m, ok := p.config.BareHourRegex().MatchExact(text)
	if !ok {
		return nil, false
	}
	hour, ok := p.hour(m.Group("hour"))
	if !ok {
		return nil, true
	}
	return p.resolve(ref, m.Group("hour"), hour, 0, 0, "", false)
}

func (p *TimeParser) hour(s string) (int, bool) {
	if v, ok := p.config.SpecialTimes()[collapse(s)]; ok {
		return v, true
	}
	return lookupInt(p.common, s)
}

// resolve applies the am/pm descriptor. An hour of 0-12 with no descriptor
// and no o'clock is flagged CommentAmPm unless it is a named time such as
// noon or a zero-padded 01-09.
func (p *TimeParser) resolve(ref time.Time, hourText string, hour, minute, second int, desc string, oclock bool) (*ResolutionResult, bool) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 || second < 0 || second > 59 {
		return nil, true
	}
	desc = collapse(desc)
	comment := CommentNone
	switch {
	case desc != "" && p.isPm(desc):
		if hour < 12 {
			hour += 12
		}
	case desc != "" && p.isAm(desc):
		if hour == 12 {
			hour = 0
		}
	case !oclock && hour <= 12 && p.ambiguousHour(hourText, hour):
		comment = CommentAmPm
	}
	return ClockResult(ref, hour, minute, second, comment), true
}

func (p *TimeParser) ambiguousHour(hourText string, hour int) bool {
	if _, named := p.config.SpecialTimes()[collapse(hourText)]; named {
		return false
	}
	return hour == 0 || !hasLeadingZero(hourText)
}

func (p *TimeParser) isPm(desc string) bool {
	_, ok := p.config.PmDescRegex().MatchExact(desc)
	return ok
}

func (p *TimeParser) isAm(desc string) bool {
	_, ok := p.config.AmDescRegex().MatchExact(desc)
	return ok
}

func hasLeadingZero(s string) bool {
	s = strings.TrimSpace(s)
	if len(s) < 2 || s[0] != '0' {
		return false
	}
	_, err := strconv.Atoi(s)
	return err == nil
}

// clockOf returns hour, minute and second of a resolved time value.
func clockOf(res *ResolutionResult) (int, int, int, bool) {
	t, ok := res.FutureValue.(time.Time)
	if !ok {
		return 0, 0, 0, false
	}
	return t.Hour(), t.Minute(), t.Second(), true
}
