package datetime

import (
	"time"
)

// DateTimeExtractor finds a day combined with a clock time.
type DateTimeExtractor struct {
	config            DateTimeConfig
	relative          RelativeConfig
	dateExtractor     *DateExtractor
	timeExtractor     *TimeExtractor
	durationExtractor *DurationExtractor
	durationParser    *DurationParser
}

// NewDateTimeExtractor returns a date-time extractor.
func NewDateTimeExtractor(config DateTimeConfig, relative RelativeConfig, dateExtractor *DateExtractor, timeExtractor *TimeExtractor, durationExtractor *DurationExtractor, durationParser *DurationParser) *DateTimeExtractor {
	return &DateTimeExtractor{
		config:            config,
		relative:          relative,
		dateExtractor:     dateExtractor,
		timeExtractor:     timeExtractor,
		durationExtractor: durationExtractor,
		durationParser:    durationParser,
	}
}

// Extract implements Extractor.
func (e *DateTimeExtractor) Extract(text string, ref time.Time) []ExtractResult {
	norm := Normalize(text)
	dates := e.dateExtractor.Extract(text, ref)
	times := e.timeExtractor.Extract(text, ref)

	tokens := findAllTokens(norm, e.config.NowRegex())
	tokens = append(tokens, pairTokens(norm, dates, times, e.config.DateTimeConnectorRegex())...)
	tokens = append(tokens, pairTokens(norm, times, dates, e.config.TimeDateConnectorRegex())...)
	tokens = append(tokens, suffixTokens(norm, times, e.config.TodaySuffixRegex())...)
	tokens = append(tokens, relativeDurationTokens(norm, e.durationExtractor.Extract(text, ref), e.durationParser, e.relative, relativeDateTime)...)
	return MergeAllTokens(tokens, text, TypeDateTime)
}

// DateTimeParser resolves a day combined with a clock time.
type DateTimeParser struct {
	config            DateTimeConfig
	common            CommonConfig
	relative          RelativeConfig
	dateExtractor     *DateExtractor
	dateParser        *DateParser
	timeExtractor     *TimeExtractor
	timeParser        *TimeParser
	durationExtractor *DurationExtractor
	durationParser    *DurationParser
}

// NewDateTimeParser returns a date-time parser.
func NewDateTimeParser(config DateTimeConfig, common CommonConfig, relative RelativeConfig, dateExtractor *DateExtractor, dateParser *DateParser, timeExtractor *TimeExtractor, timeParser *TimeParser, durationExtractor *DurationExtractor, durationParser *DurationParser) *DateTimeParser {
	return &DateTimeParser{
		config:            config,
		common:            common,
		relative:          relative,
		dateExtractor:     dateExtractor,
		dateParser:        dateParser,
		timeExtractor:     timeExtractor,
		timeParser:        timeParser,
		durationExtractor: durationExtractor,
		durationParser:    durationParser,
	}
}

// Parse implements Parser.
func (p *DateTimeParser) Parse(er ExtractResult, ref time.Time) *ParseResult {
	return newParseResult(er, p.parse(trimmed(er.Text), ref))
}

func (p *DateTimeParser) parse(text string, ref time.Time) *ResolutionResult {
	return runStrategies(text, ref,
		p.parseNow,
		p.parseDateWithTime,
		p.parseTimeToday,
		p.parseRelativeDuration,
	)
}

func (p *DateTimeParser) parseNow(text string, ref time.Time) (*ResolutionResult, bool) {
	if _, ok := p.config.NowRegex().MatchExact(text); !ok {
		return nil, false
	}
	return dateTimeResult(TimexPresentRef, ref, ref), true
}

func (p *DateTimeParser) parseDateWithTime(text string, ref time.Time) (*ResolutionResult, bool) {
	dates := p.dateExtractor.Extract(text, ref)
	times := p.timeExtractor.Extract(text, ref)
	dateER, timeER, ok := adjacentPair(text, dates, times, p.config.DateTimeConnectorRegex())
	if !ok {
		timeER, dateER, ok = adjacentPair(text, times, dates, p.config.TimeDateConnectorRegex())
	}
	if !ok {
		return nil, false
	}
	date := p.dateParser.Parse(dateER, ref)
	clock := p.timeParser.Parse(timeER, ref)
	if !date.Succeeded() || !clock.Succeeded() {
		return nil, true
	}
	return combineDateAndTime(date.Value, clock.Value), true
}

// combineDateAndTime puts a resolved clock time on each side of a resolved
// date. The time's comment carries over.
func combineDateAndTime(date, clock *ResolutionResult) *ResolutionResult {
	h, m, s, ok := clockOf(clock)
	future, ok1 := date.FutureValue.(time.Time)
	past, ok2 := date.PastValue.(time.Time)
	if !ok || !ok1 || !ok2 {
		return nil
	}
	res := dateTimeResult(date.Timex+clock.Timex, AtClock(future, h, m, s), AtClock(past, h, m, s))
	res.Comment = clock.Comment
	return res
}

func (p *DateTimeParser) parseTimeToday(text string, ref time.Time) (*ResolutionResult, bool) {
	for _, er := range p.timeExtractor.Extract(text, ref) {
		if er.Start != 0 {
			continue
		}
		m, ok := p.config.TodaySuffixRegex().MatchExact(runeSuffix(text, er.End()))
		if !ok {
			continue
		}
		clock := p.timeParser.Parse(er, ref)
		if !clock.Succeeded() {
			return nil, true
		}
		h, min, s, _ := clockOf(clock.Value)
		code := p.common.TimesOfDay()[lastWord(m.Group("tod"))]
		switch {
		case code == "TMO" && h == 12:
			h = 0
		case code != "TMO" && code != "" && h < 12:
			h += 12
		}
		t := AtClock(ref, h, min, s)
		return dateTimeResult(LuisDateOf(ref)+TimexTime(h, min, s), t, t), true
	}
	return nil, false
}

func (p *DateTimeParser) parseRelativeDuration(text string, ref time.Time) (*ResolutionResult, bool) {
	if len(p.durationExtractor.Extract(text, ref)) == 0 {
		return nil, false
	}
	return resolveRelativeDuration(text, ref, p.durationExtractor, p.durationParser, p.relative, relativeDateTime), true
}
