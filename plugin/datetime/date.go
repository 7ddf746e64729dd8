package datetime

import (
	"time"
)

// DateExtractor finds single days.
type DateExtractor struct {
	config            DateConfig
	common            CommonConfig
	relative          RelativeConfig
	durationExtractor *DurationExtractor
	durationParser    *DurationParser
}

// NewDateExtractor returns a date extractor.
func NewDateExtractor(config DateConfig, common CommonConfig, relative RelativeConfig, durationExtractor *DurationExtractor, durationParser *DurationParser) *DateExtractor {
	return &DateExtractor{
		config:            config,
		common:            common,
		relative:          relative,
		durationExtractor: durationExtractor,
		durationParser:    durationParser,
	}
}

// Extract implements Extractor.
func (e *DateExtractor) Extract(text string, ref time.Time) []ExtractResult {
	norm := Normalize(text)
	tokens := findAllTokens(norm, e.config.DatePatterns()...)
	tokens = append(tokens, findAllTokens(norm, e.config.ImplicitPatterns()...)...)
	tokens = append(tokens, findAllTokens(norm,
		e.config.SpecialDayRegex(),
		e.config.RelativeWeekdayRegex(),
		e.config.WeekdayOfWeekRegex(),
		e.config.WeekdayRegex(),
	)...)
	tokens = append(tokens, relativeDurationTokens(norm, e.durationExtractor.Extract(text, ref), e.durationParser, e.relative, relativeDate)...)
	return MergeAllTokens(tokens, text, TypeDate)
}

// DateParser resolves single days.
type DateParser struct {
	config            DateConfig
	common            CommonConfig
	relative          RelativeConfig
	durationExtractor *DurationExtractor
	durationParser    *DurationParser
}

// NewDateParser returns a date parser.
func NewDateParser(config DateConfig, common CommonConfig, relative RelativeConfig, durationExtractor *DurationExtractor, durationParser *DurationParser) *DateParser {
	return &DateParser{
		config:            config,
		common:            common,
		relative:          relative,
		durationExtractor: durationExtractor,
		durationParser:    durationParser,
	}
}

// Parse implements Parser.
func (p *DateParser) Parse(er ExtractResult, ref time.Time) *ParseResult {
	return newParseResult(er, p.parse(trimmed(er.Text), ref))
}

func (p *DateParser) parse(text string, ref time.Time) *ResolutionResult {
	return runStrategies(text, ref,
		p.parseExplicit,
		p.parseSpecialDay,
		p.parseRelativeWeekday,
		p.parseWeekdayOfWeek,
		p.parseWeekday,
		p.parseDayOfMonth,
		p.parseRelativeDuration,
	)
}

func (p *DateParser) parseExplicit(text string, ref time.Time) (*ResolutionResult, bool) {
	m, ok := matchFirstExact(text, p.config.DatePatterns())
	if !ok {
		return nil, false
	}
	month, ok := lookupMonth(p.common, m.Group("month"))
	if !ok {
		return nil, true
	}
	day, ok := lookupDay(p.common, m.Group("day"))
	if !ok {
		return nil, true
	}
	if m.Has("year") {
		year, ok := parseYear(p.common, m.Group("year"))
		if !ok {
			return nil, true
		}
		// An impossible day keeps its timex and resolves to MinDate.
		d := SafeDate(year, month, day, ref.Location())
		return dateResult(LuisDate(year, month, day), d, d), true
	}
	future, past, ok := nearestMonthDay(ref, month, day)
	if !ok {
		return dateResult(LuisDate(-1, month, day), MinDate, MinDate), true
	}
	return dateResult(LuisDate(-1, month, day), future, past), true
}

func (p *DateParser) parseSpecialDay(text string, ref time.Time) (*ResolutionResult, bool) {
	m, ok := p.config.SpecialDayRegex().MatchExact(text)
	if !ok {
		return nil, false
	}
	offset, ok := p.common.SpecialDays()[collapse(m.Group("day"))]
	if !ok {
		return nil, true
	}
	d := StartOfDay(ref).AddDate(0, 0, offset)
	return dateResult(LuisDateOf(d), d, d), true
}

func (p *DateParser) parseRelativeWeekday(text string, ref time.Time) (*ResolutionResult, bool) {
	m, ok := p.config.RelativeWeekdayRegex().MatchExact(text)
	if !ok {
		return nil, false
	}
	weekday, ok := lookupWeekday(p.common, m.Group("weekday"))
	if !ok {
		return nil, true
	}
	offset, ok := lookupRelative(p.common, m.Group("rel"))
	if !ok {
		return nil, true
	}
	d := ThisWeekday(ref, weekday).AddDate(0, 0, 7*offset)
	return dateResult(WeekdayTimex(weekday), d, d), true
}

func (p *DateParser) parseWeekdayOfWeek(text string, ref time.Time) (*ResolutionResult, bool) {
	m, ok := p.config.WeekdayOfWeekRegex().MatchExact(text)
	if !ok {
		return nil, false
	}
	weekday, ok := lookupWeekday(p.common, m.Group("weekday"))
	if !ok {
		return nil, true
	}
	offset, ok := lookupRelative(p.common, m.Group("rel"))
	if !ok {
		return nil, true
	}
	d := ThisWeekday(ref, weekday).AddDate(0, 0, 7*offset)
	return dateResult(LuisDateOf(d), d, d), true
}

func (p *DateParser) parseWeekday(text string, ref time.Time) (*ResolutionResult, bool) {
	m, ok := p.config.WeekdayRegex().MatchExact(text)
	if !ok {
		return nil, false
	}
	weekday, ok := lookupWeekday(p.common, m.Group("weekday"))
	if !ok {
		return nil, true
	}
	future, past := nearestWeekday(ref, weekday)
	return dateResult(WeekdayTimex(weekday), future, past), true
}

func (p *DateParser) parseDayOfMonth(text string, ref time.Time) (*ResolutionResult, bool) {
	m, ok := p.config.DayOfMonthRegex().MatchExact(text)
	if !ok {
		return nil, false
	}
	day, ok := lookupDay(p.common, m.Group("day"))
	if !ok {
		return nil, true
	}
	future, past, ok := nearestDayOfMonth(ref, day)
	if !ok {
		return nil, true
	}
	return dateResult(LuisDate(-1, -1, day), future, past), true
}

func (p *DateParser) parseRelativeDuration(text string, ref time.Time) (*ResolutionResult, bool) {
	if len(p.durationExtractor.Extract(text, ref)) == 0 {
		return nil, false
	}
	return resolveRelativeDuration(text, ref, p.durationExtractor, p.durationParser, p.relative, relativeDate), true
}
