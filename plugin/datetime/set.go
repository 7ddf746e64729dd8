package datetime

import (
	"strings"
	"time"
)

// SetExtractor finds recurring expressions such as "every Monday at 3pm".
type SetExtractor struct {
	config        SetConfig
	timeExtractor *TimeExtractor
}

// NewSetExtractor returns a set extractor.
func NewSetExtractor(config SetConfig, timeExtractor *TimeExtractor) *SetExtractor {
	return &SetExtractor{config: config, timeExtractor: timeExtractor}
}

// Extract implements Extractor.
func (e *SetExtractor) Extract(text string, ref time.Time) []ExtractResult {
	norm := Normalize(text)
	base := MergeAllTokens(e.baseTokens(norm), text, TypeSet)
	times := e.timeExtractor.Extract(text, ref)
	connector := e.config.SetTimeConnectorRegex()

	tokens := tokensFromResults(base)
	tokens = append(tokens, pairTokens(norm, base, times, connector)...)
	tokens = append(tokens, pairTokens(norm, times, base, connector)...)
	return MergeAllTokens(tokens, text, TypeSet)
}

func (e *SetExtractor) baseTokens(norm string) []Token {
	patterns := []*Regex{e.config.EachUnitRegex(), e.config.PeriodicRegex()}
	patterns = append(patterns, e.config.EachWeekdayPatterns()...)
	patterns = append(patterns, e.config.EachTimeOfDayPatterns()...)
	return findAllTokens(norm, patterns...)
}

// SetParser resolves recurring expressions. Values are "Set: <timex>".
type SetParser struct {
	config        SetConfig
	common        CommonConfig
	extractor     *SetExtractor
	timeExtractor *TimeExtractor
	timeParser    *TimeParser
}

// NewSetParser returns a set parser.
func NewSetParser(config SetConfig, common CommonConfig, extractor *SetExtractor, timeExtractor *TimeExtractor, timeParser *TimeParser) *SetParser {
	return &SetParser{
		config:        config,
		common:        common,
		extractor:     extractor,
		timeExtractor: timeExtractor,
		timeParser:    timeParser,
	}
}

// Parse implements Parser.
func (p *SetParser) Parse(er ExtractResult, ref time.Time) *ParseResult {
	return newParseResult(er, p.parse(trimmed(er.Text), ref))
}

func (p *SetParser) parse(text string, ref time.Time) *ResolutionResult {
	return runStrategies(text, ref,
		p.parseEachUnit,
		p.parsePeriodic,
		p.parseEachWeekday,
		p.parseEachTimeOfDay,
		p.parseSetWithTime,
	)
}

func setResult(timex string) *ResolutionResult {
	value := "Set: " + timex
	return &ResolutionResult{
		Success:          true,
		Timex:            timex,
		FutureValue:      value,
		PastValue:        value,
		FutureResolution: map[string]string{KeySet: timex},
		PastResolution:   map[string]string{KeySet: timex},
	}
}

func (p *SetParser) parseEachUnit(text string, _ time.Time) (*ResolutionResult, bool) {
	m, ok := p.config.EachUnitRegex().MatchExact(text)
	if !ok {
		return nil, false
	}
	unit, ok := p.common.Units()[collapse(m.Group("unit"))]
	if !ok {
		return nil, true
	}
	amount := 1.0
	switch {
	case m.Has("other"):
		amount = 2
	case m.Has("num"):
		if amount, ok = lookupNumber(p.common, m.Group("num")); !ok {
			return nil, true
		}
	}
	return setResult(DurationTimex(amount, unit)), true
}

func (p *SetParser) parsePeriodic(text string, _ time.Time) (*ResolutionResult, bool) {
	m, ok := p.config.PeriodicRegex().MatchExact(text)
	if !ok {
		return nil, false
	}
	timex, ok := p.config.Periodic()[collapse(m.Group("periodic"))]
	if !ok {
		return nil, true
	}
	return setResult(timex), true
}

func (p *SetParser) parseEachWeekday(text string, _ time.Time) (*ResolutionResult, bool) {
	m, ok := matchFirstExact(text, p.config.EachWeekdayPatterns())
	if !ok {
		return nil, false
	}
	weekday, ok := lookupWeekday(p.common, m.Group("weekday"))
	if !ok {
		return nil, true
	}
	return setResult(WeekdayTimex(weekday)), true
}

func (p *SetParser) parseEachTimeOfDay(text string, _ time.Time) (*ResolutionResult, bool) {
	m, ok := matchFirstExact(text, p.config.EachTimeOfDayPatterns())
	if !ok {
		return nil, false
	}
	code, ok := p.common.TimesOfDay()[collapse(m.Group("tod"))]
	if !ok {
		return nil, true
	}
	return setResult(code), true
}

func (p *SetParser) parseSetWithTime(text string, ref time.Time) (*ResolutionResult, bool) {
	base := MergeAllTokens(p.extractor.baseTokens(text), text, TypeSet)
	times := p.timeExtractor.Extract(text, ref)
	connector := p.config.SetTimeConnectorRegex()
	setER, timeER, ok := adjacentPair(text, base, times, connector)
	if !ok {
		timeER, setER, ok = adjacentPair(text, times, base, connector)
	}
	if !ok {
		return nil, false
	}
	set := p.parse(setER.Text, ref)
	clock := p.timeParser.Parse(timeER, ref)
	if set == nil || !clock.Succeeded() {
		return nil, true
	}
	var timex string
	switch {
	case set.Timex == DurationTimex(1, UnitDay):
		timex = clock.Value.Timex
	case strings.HasPrefix(set.Timex, TimexFuzzyYear+"-"+TimexFuzzyWeek):
		timex = set.Timex + clock.Value.Timex
	default:
		return nil, true
	}
	return setResult(timex), true
}
