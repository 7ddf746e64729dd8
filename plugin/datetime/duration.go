package datetime

import (
	"time"
)

// DurationExtractor finds spans such as "3 days" or "2 hours and 30 minutes".
type DurationExtractor struct {
	config DurationConfig
}

// NewDurationExtractor returns a duration extractor for config.
func NewDurationExtractor(config DurationConfig) *DurationExtractor {
	return &DurationExtractor{config: config}
}

// Extract implements Extractor.
func (e *DurationExtractor) Extract(text string, _ time.Time) []ExtractResult {
	norm := Normalize(text)
	singles := e.singles(norm, text)
	return MergeAllTokens(e.join(norm, singles), text, TypeDuration)
}

func (e *DurationExtractor) singles(norm, text string) []ExtractResult {
	return MergeAllTokens(findAllTokens(norm, e.config.DurationPatterns()...), text, TypeDuration)
}

// join chains adjacent single-unit durations separated by a connector.
func (e *DurationExtractor) join(norm string, singles []ExtractResult) []Token {
	tokens := make([]Token, 0, len(singles))
	for i := 0; i < len(singles); {
		j := i
		for j+1 < len(singles) {
			gap := substring(norm, singles[j].End(), singles[j+1].Start-singles[j].End())
			if _, ok := e.config.ConnectorRegex().MatchExact(gap); !ok {
				break
			}
			j++
		}
		tokens = append(tokens, Token{Start: singles[i].Start, End: singles[j].End()})
		i = j + 1
	}
	return tokens
}

// DurationParser resolves durations to a timex and a length in seconds.
type DurationParser struct {
	config    DurationConfig
	common    CommonConfig
	extractor *DurationExtractor
}

// NewDurationParser returns a duration parser.
func NewDurationParser(config DurationConfig, common CommonConfig, extractor *DurationExtractor) *DurationParser {
	return &DurationParser{config: config, common: common, extractor: extractor}
}

// Parse implements Parser.
func (p *DurationParser) Parse(er ExtractResult, _ time.Time) *ParseResult {
	parts, ok := p.parts(trimmed(er.Text))
	if !ok {
		return newParseResult(er, nil)
	}
	return newParseResult(er, durationResult(parts))
}

// parts splits normalized duration text into per-unit amounts.
func (p *DurationParser) parts(text string) (map[string]float64, bool) {
	if m, ok := matchFirstExact(text, p.config.DurationPatterns()); ok {
		amount, unit, ok := p.single(m)
		if !ok {
			return nil, false
		}
		return map[string]float64{unit: amount}, true
	}

	singles := p.extractor.singles(text, text)
	if len(singles) < 2 || singles[0].Start != 0 || singles[len(singles)-1].End() != runeLen(text) {
		return nil, false
	}
	parts := make(map[string]float64, len(singles))
	for i, er := range singles {
		if i > 0 {
			gap := substring(text, singles[i-1].End(), er.Start-singles[i-1].End())
			if _, ok := p.config.ConnectorRegex().MatchExact(gap); !ok {
				return nil, false
			}
		}
		m, ok := matchFirstExact(er.Text, p.config.DurationPatterns())
		if !ok {
			return nil, false
		}
		amount, unit, ok := p.single(m)
		if !ok {
			return nil, false
		}
		parts[unit] += amount
	}
	return parts, true
}

func (p *DurationParser) single(m Match) (float64, string, bool) {
	unit, ok := p.common.Units()[collapse(m.Group("unit"))]
	if !ok {
		return 0, "", false
	}
	amount := 1.0
	switch {
	case m.Has("num"):
		v, ok := lookupNumber(p.common, m.Group("num"))
		if !ok {
			return 0, "", false
		}
		amount = v
	case m.Has("half"):
		amount = 0.5
	}
	if m.Has("andhalf") {
		amount += 0.5
	}
	return amount, unit, true
}

func durationResult(parts map[string]float64) *ResolutionResult {
	var seconds float64
	for unit, amount := range parts {
		seconds += amount * UnitSeconds[unit]
	}
	value := formatAmount(seconds)
	return &ResolutionResult{
		Success:          true,
		Timex:            ComposeDurationTimex(parts),
		FutureValue:      seconds,
		PastValue:        seconds,
		FutureResolution: map[string]string{KeyDuration: value},
		PastResolution:   map[string]string{KeyDuration: value},
	}
}
