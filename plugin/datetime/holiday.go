package datetime

import (
	"time"
)

// HolidayExtractor finds named holidays. Results are typed as dates.
type HolidayExtractor struct {
	config HolidayConfig
}

// NewHolidayExtractor returns a holiday extractor.
func NewHolidayExtractor(config HolidayConfig) *HolidayExtractor {
	return &HolidayExtractor{config: config}
}

// Extract implements Extractor.
func (e *HolidayExtractor) Extract(text string, _ time.Time) []ExtractResult {
	norm := Normalize(text)
	return MergeAllTokens(findAllTokens(norm, e.config.HolidayPatterns()...), text, TypeDate)
}

// HolidayParser resolves named holidays from the locale's holiday table.
type HolidayParser struct {
	config HolidayConfig
	common CommonConfig
}

// NewHolidayParser returns a holiday parser.
func NewHolidayParser(config HolidayConfig, common CommonConfig) *HolidayParser {
	return &HolidayParser{config: config, common: common}
}

// Parse implements Parser.
func (p *HolidayParser) Parse(er ExtractResult, ref time.Time) *ParseResult {
	return newParseResult(er, runStrategies(trimmed(er.Text), ref, p.parseHoliday))
}

func (p *HolidayParser) parseHoliday(text string, ref time.Time) (*ResolutionResult, bool) {
	m, ok := matchFirstExact(text, p.config.HolidayPatterns())
	if !ok {
		return nil, false
	}
	rule, ok := p.config.Holidays()[collapse(m.Group("holiday"))]
	if !ok {
		return nil, true
	}
	loc := ref.Location()

	if m.Has("rel") {
		offset, ok := lookupRelative(p.common, m.Group("rel"))
		if !ok {
			return nil, true
		}
		d := rule(ref.Year()+offset, loc)
		return dateResult(LuisDateOf(d), d, d), true
	}
	year, explicit, ok := yearOf(p.common, m, ref)
	if !ok {
		return nil, true
	}
	if explicit {
		d := rule(year, loc)
		return dateResult(LuisDateOf(d), d, d), true
	}

	today := StartOfDay(ref)
	this := rule(ref.Year(), loc)
	future, past := this, this
	if this.Before(today) {
		future = rule(ref.Year()+1, loc)
	} else {
		past = rule(ref.Year()-1, loc)
	}
	return dateResult(LuisDate(-1, int(this.Month()), this.Day()), future, past), true
}
