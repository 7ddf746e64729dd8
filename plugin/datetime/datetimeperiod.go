package datetime

import (
	"fmt"
	"time"
)

// DateTimePeriodExtractor finds ranges that carry both days and clock times.
type DateTimePeriodExtractor struct {
	config              DateTimePeriodConfig
	common              CommonConfig
	periodConfig        DatePeriodConfig
	dateExtractor       *DateExtractor
	timeExtractor       *TimeExtractor
	timePeriodExtractor *TimePeriodExtractor
	dateTimeExtractor   *DateTimeExtractor
	durationExtractor   *DurationExtractor
	durationParser      *DurationParser
}

// NewDateTimePeriodExtractor returns a date-time range extractor.
func NewDateTimePeriodExtractor(config DateTimePeriodConfig, common CommonConfig, periodConfig DatePeriodConfig, dateExtractor *DateExtractor, timeExtractor *TimeExtractor, timePeriodExtractor *TimePeriodExtractor, dateTimeExtractor *DateTimeExtractor, durationExtractor *DurationExtractor, durationParser *DurationParser) *DateTimePeriodExtractor {
	return &DateTimePeriodExtractor{
		config:              config,
		common:              common,
		periodConfig:        periodConfig,
		dateExtractor:       dateExtractor,
		timeExtractor:       timeExtractor,
		timePeriodExtractor: timePeriodExtractor,
		dateTimeExtractor:   dateTimeExtractor,
		durationExtractor:   durationExtractor,
		durationParser:      durationParser,
	}
}

// Extract implements Extractor.
func (e *DateTimePeriodExtractor) Extract(text string, ref time.Time) []ExtractResult {
	norm := Normalize(text)
	dates := e.dateExtractor.Extract(text, ref)
	timePeriods := e.timePeriodExtractor.Extract(text, ref)
	connector := e.config.DateTimePeriodConnectorRegex()

	tokens := findAllTokens(norm, e.config.SpecificTimeOfDayRegex())
	tokens = append(tokens, suffixTokens(norm, dates, e.config.TimeOfDaySuffixRegex())...)
	tokens = append(tokens, pairTokens(norm, dates, timePeriods, connector)...)
	tokens = append(tokens, pairTokens(norm, timePeriods, dates, connector)...)
	tokens = append(tokens, rangeTokens(norm, e.points(text, ref), e.common)...)
	tokens = append(tokens, e.relativeTokens(norm, e.durationExtractor.Extract(text, ref))...)
	return MergeAllTokens(tokens, text, TypeDateTimePeriod)
}

// points are date-time mentions plus the bare times that do not overlap
// them, so "Friday 3pm to 5pm" yields two endpoints.
func (e *DateTimePeriodExtractor) points(text string, ref time.Time) []ExtractResult {
	return withoutOverlaps(e.dateTimeExtractor.Extract(text, ref), e.timeExtractor.Extract(text, ref))
}

func (e *DateTimePeriodExtractor) relativeTokens(norm string, durations []ExtractResult) []Token {
	var tokens []Token
	for _, d := range durations {
		parts, ok := e.durationParser.parts(trimmed(d.Text))
		if !ok || !relativeDateTime.accepts(parts) {
			continue
		}
		if m, ok := prefixMatch(norm, d.Start, e.periodConfig.RelativePrefixRegex()); ok {
			tokens = append(tokens, Token{Start: m.Index, End: d.End()})
		}
	}
	return tokens
}

// DateTimePeriodParser resolves ranges that carry days and clock times.
type DateTimePeriodParser struct {
	config              DateTimePeriodConfig
	common              CommonConfig
	periodConfig        DatePeriodConfig
	dateExtractor       *DateExtractor
	dateParser          *DateParser
	timeExtractor       *TimeExtractor
	timeParser          *TimeParser
	timePeriodExtractor *TimePeriodExtractor
	timePeriodParser    *TimePeriodParser
	dateTimeExtractor   *DateTimeExtractor
	dateTimeParser      *DateTimeParser
	durationExtractor   *DurationExtractor
	durationParser      *DurationParser
}

// DateTimePeriodParserDeps groups the sibling extractors and parsers a
// DateTimePeriodParser composes.
type DateTimePeriodParserDeps struct {
	DateExtractor       *DateExtractor
	DateParser          *DateParser
	TimeExtractor       *TimeExtractor
	TimeParser          *TimeParser
	TimePeriodExtractor *TimePeriodExtractor
	TimePeriodParser    *TimePeriodParser
	DateTimeExtractor   *DateTimeExtractor
	DateTimeParser      *DateTimeParser
	DurationExtractor   *DurationExtractor
	DurationParser      *DurationParser
}

// NewDateTimePeriodParser returns a date-time range parser.
func NewDateTimePeriodParser(config DateTimePeriodConfig, common CommonConfig, periodConfig DatePeriodConfig, deps DateTimePeriodParserDeps) *DateTimePeriodParser {
	return &DateTimePeriodParser{
		config:              config,
		common:              common,
		periodConfig:        periodConfig,
		dateExtractor:       deps.DateExtractor,
		dateParser:          deps.DateParser,
		timeExtractor:       deps.TimeExtractor,
		timeParser:          deps.TimeParser,
		timePeriodExtractor: deps.TimePeriodExtractor,
		timePeriodParser:    deps.TimePeriodParser,
		dateTimeExtractor:   deps.DateTimeExtractor,
		dateTimeParser:      deps.DateTimeParser,
		durationExtractor:   deps.DurationExtractor,
		durationParser:      deps.DurationParser,
	}
}

// Parse implements Parser.
func (p *DateTimePeriodParser) Parse(er ExtractResult, ref time.Time) *ParseResult {
	return newParseResult(er, p.parse(trimmed(er.Text), ref))
}

func (p *DateTimePeriodParser) parse(text string, ref time.Time) *ResolutionResult {
	return runStrategies(text, ref,
		p.parseSpecificTimeOfDay,
		p.parseDateWithTimeOfDay,
		p.parseDateWithTimePeriod,
		p.parseDateTimePoints,
		p.parseRelativeUnit,
	)
}

func (p *DateTimePeriodParser) parseSpecificTimeOfDay(text string, ref time.Time) (*ResolutionResult, bool) {
	m, ok := p.config.SpecificTimeOfDayRegex().MatchExact(text)
	if !ok {
		return nil, false
	}
	var offset int
	var code string
	switch {
	case m.Has("tonight"):
		code = p.common.TimesOfDay()[collapse(m.Group("tonight"))]
	case m.Has("rel"):
		if offset, ok = lookupRelative(p.common, m.Group("rel")); !ok {
			return nil, true
		}
		code = p.common.TimesOfDay()[collapse(m.Group("tod"))]
	case m.Has("day"):
		if offset, ok = p.common.SpecialDays()[collapse(m.Group("day"))]; !ok {
			return nil, true
		}
		code = p.common.TimesOfDay()[collapse(m.Group("tod"))]
	default:
		return nil, true
	}
	day := StartOfDay(ref).AddDate(0, 0, offset)
	r, ok := timeOfDayRange(day, code)
	if !ok {
		return nil, true
	}
	return dateTimePeriodResult(LuisDateOf(day)+code, r, r), true
}

func (p *DateTimePeriodParser) parseDateWithTimeOfDay(text string, ref time.Time) (*ResolutionResult, bool) {
	for _, er := range p.dateExtractor.Extract(text, ref) {
		if er.Start != 0 {
			continue
		}
		m, ok := p.config.TimeOfDaySuffixRegex().MatchExact(runeSuffix(text, er.End()))
		if !ok {
			continue
		}
		date := p.dateParser.Parse(er, ref)
		code := p.common.TimesOfDay()[collapse(m.Group("tod"))]
		if !date.Succeeded() || code == "" {
			return nil, true
		}
		future, ok1 := timeOfDayRange(date.Value.FutureValue.(time.Time), code)
		past, ok2 := timeOfDayRange(date.Value.PastValue.(time.Time), code)
		if !ok1 || !ok2 {
			return nil, true
		}
		return dateTimePeriodResult(date.Value.Timex+code, future, past), true
	}
	return nil, false
}

func (p *DateTimePeriodParser) parseDateWithTimePeriod(text string, ref time.Time) (*ResolutionResult, bool) {
	dates := p.dateExtractor.Extract(text, ref)
	periods := p.timePeriodExtractor.Extract(text, ref)
	connector := p.config.DateTimePeriodConnectorRegex()
	dateER, periodER, ok := adjacentPair(text, dates, periods, connector)
	if !ok {
		periodER, dateER, ok = adjacentPair(text, periods, dates, connector)
	}
	if !ok {
		return nil, false
	}
	date := p.dateParser.Parse(dateER, ref)
	period := p.timePeriodParser.Parse(periodER, ref)
	if !date.Succeeded() || !period.Succeeded() {
		return nil, true
	}
	clock, ok := period.Value.FutureValue.(TimeRange)
	if !ok {
		return nil, true
	}
	onDay := func(day time.Time) TimeRange {
		if day.IsZero() {
			return TimeRange{Start: MinDate, End: MinDate}
		}
		start := AtClock(day, clock.Start.Hour(), clock.Start.Minute(), clock.Start.Second())
		return TimeRange{Start: start, End: start.Add(clock.End.Sub(clock.Start))}
	}
	future := onDay(date.Value.FutureValue.(time.Time))
	past := onDay(date.Value.PastValue.(time.Time))

	timex := date.Value.Timex + period.Value.Timex
	if start, end, duration, ok := splitRangeTimex(period.Value.Timex); ok {
		timex = RangeTimex(date.Value.Timex+start, date.Value.Timex+end, duration)
	}
	res := dateTimePeriodResult(timex, future, past)
	res.Comment = period.Value.Comment
	return res, true
}

func (p *DateTimePeriodParser) parseDateTimePoints(text string, ref time.Time) (*ResolutionResult, bool) {
	points := withoutOverlaps(p.dateTimeExtractor.Extract(text, ref), p.timeExtractor.Extract(text, ref))
	first, second, ok := splitRange(text, points, p.common)
	if !ok || first.Type != TypeDateTime {
		return nil, false
	}
	begin := p.dateTimeParser.Parse(first, ref)
	if !begin.Succeeded() {
		return nil, true
	}
	var futureEnd, pastEnd time.Time
	var endTimex string
	switch second.Type {
	case TypeDateTime:
		finish := p.dateTimeParser.Parse(second, ref)
		if !finish.Succeeded() {
			return nil, true
		}
		futureEnd, pastEnd = finish.Value.FutureValue.(time.Time), finish.Value.PastValue.(time.Time)
		endTimex = finish.Value.Timex
	case TypeTime:
		finish := p.timeParser.Parse(second, ref)
		if !finish.Succeeded() {
			return nil, true
		}
		h, m, s, _ := clockOf(finish.Value)
		futureEnd = AtClock(begin.Value.FutureValue.(time.Time), h, m, s)
		pastEnd = AtClock(begin.Value.PastValue.(time.Time), h, m, s)
		endTimex = LuisDateOf(futureEnd) + finish.Value.Timex
	default:
		return nil, true
	}
	futureStart := begin.Value.FutureValue.(time.Time)
	pastStart := begin.Value.PastValue.(time.Time)
	if !futureEnd.After(futureStart) || !pastEnd.After(pastStart) {
		return nil, true
	}
	timex := RangeTimex(begin.Value.Timex, endTimex, spanDurationTimex(futureEnd.Sub(futureStart)))
	return dateTimePeriodResult(timex, TimeRange{futureStart, futureEnd}, TimeRange{pastStart, pastEnd}), true
}

// spanDurationTimex renders the length of a range, whole days as P{n}D.
func spanDurationTimex(d time.Duration) string {
	if d%(24*time.Hour) == 0 {
		return DaysTimex(int(d / (24 * time.Hour)))
	}
	days := int(d / (24 * time.Hour))
	if days == 0 {
		return ClockDurationTimex(d)
	}
	return fmt.Sprintf("P%dD%s", days, ClockDurationTimex(d-time.Duration(days)*24*time.Hour)[1:])
}

func (p *DateTimePeriodParser) parseRelativeUnit(text string, ref time.Time) (*ResolutionResult, bool) {
	m, ok := p.periodConfig.RelativePrefixExactRegex().Find(text)
	if !ok || m.Index != 0 {
		return nil, false
	}
	rest := trimmed(runeSuffix(text, m.End()))
	parts, ok := p.durationParser.parts(rest)
	if !ok {
		return nil, false
	}
	if !relativeDateTime.accepts(parts) {
		return nil, true
	}
	sign, ok := lookupRelative(p.common, m.Group("rel"))
	if !ok || sign == 0 {
		return nil, true
	}
	var r TimeRange
	if sign < 0 {
		r = TimeRange{Start: shiftClock(ref, parts, -1), End: ref}
	} else {
		r = TimeRange{Start: ref, End: shiftClock(ref, parts, 1)}
	}
	timex := RangeTimex(LuisDateTimeOf(r.Start), LuisDateTimeOf(r.End), ComposeDurationTimex(parts))
	return dateTimePeriodResult(timex, r, r), true
}
