package datetime

import (
	"strings"
	"time"
)

// clockSpan is a part of day as [start, end) hours; end 24 closes at
// 23:59:59.
type clockSpan struct {
	start, end int
}

var timeOfDaySpans = map[string]clockSpan{
	"TMO": {8, 12},
	"TAF": {12, 16},
	"TEV": {16, 20},
	"TNI": {20, 24},
	"TDT": {8, 18},
	"TDA": {6, 18},
}

// timeOfDayRange places a part-of-day code on day.
func timeOfDayRange(day time.Time, code string) (TimeRange, bool) {
	span, ok := timeOfDaySpans[code]
	if !ok {
		return TimeRange{}, false
	}
	start := AtClock(day, span.start, 0, 0)
	end := AtClock(day, span.end, 0, 0)
	if span.end == 24 {
		end = AtClock(day, 23, 59, 59)
	}
	return TimeRange{Start: start, End: end}, true
}

// TimePeriodExtractor finds clock ranges and parts of day.
type TimePeriodExtractor struct {
	config        TimePeriodConfig
	common        CommonConfig
	timeExtractor *TimeExtractor
}

// NewTimePeriodExtractor returns a time range extractor.
func NewTimePeriodExtractor(config TimePeriodConfig, common CommonConfig, timeExtractor *TimeExtractor) *TimePeriodExtractor {
	return &TimePeriodExtractor{config: config, common: common, timeExtractor: timeExtractor}
}

// Extract implements Extractor.
func (e *TimePeriodExtractor) Extract(text string, ref time.Time) []ExtractResult {
	norm := Normalize(text)
	tokens := findAllTokens(norm, e.config.NumberRangePatterns()...)
	tokens = append(tokens, findAllTokens(norm, e.config.TimeOfDayRegex())...)
	tokens = append(tokens, rangeTokens(norm, e.timeExtractor.Extract(text, ref), e.common)...)
	return MergeAllTokens(tokens, text, TypeTimePeriod)
}

// TimePeriodParser resolves clock ranges on the reference day.
type TimePeriodParser struct {
	config        TimePeriodConfig
	common        CommonConfig
	timeExtractor *TimeExtractor
	timeParser    *TimeParser
}

// NewTimePeriodParser returns a time range parser.
func NewTimePeriodParser(config TimePeriodConfig, common CommonConfig, timeExtractor *TimeExtractor, timeParser *TimeParser) *TimePeriodParser {
	return &TimePeriodParser{
		config:        config,
		common:        common,
		timeExtractor: timeExtractor,
		timeParser:    timeParser,
	}
}

// Parse implements Parser.
func (p *TimePeriodParser) Parse(er ExtractResult, ref time.Time) *ParseResult {
	return newParseResult(er, p.parse(trimmed(er.Text), ref))
}

func (p *TimePeriodParser) parse(text string, ref time.Time) *ResolutionResult {
	return runStrategies(text, ref,
		p.parseNumberRange,
		p.parseTimeOfDay,
		p.parseTimePoints,
	)
}

func (p *TimePeriodParser) parseNumberRange(text string, ref time.Time) (*ResolutionResult, bool) {
	m, ok := matchFirstExact(text, p.config.NumberRangePatterns())
	if !ok {
		return nil, false
	}
	h1, ok1 := p.timeParser.hour(m.Group("hour1"))
	h2, ok2 := p.timeParser.hour(m.Group("hour2"))
	if !ok1 || !ok2 {
		return nil, true
	}
	m1, m2 := 0, 0
	if m.Has("min1") {
		if m1, ok = lookupInt(p.common, m.Group("min1")); !ok {
			return nil, true
		}
	}
	if m.Has("min2") {
		if m2, ok = lookupInt(p.common, m.Group("min2")); !ok {
			return nil, true
		}
	}
	if h1 > 23 || h2 > 23 || m1 > 59 || m2 > 59 {
		return nil, true
	}

	d1, d2 := collapse(m.Group("desc1")), collapse(m.Group("desc2"))
	pm1, am1 := d1 != "" && p.timeParser.isPm(d1), d1 != "" && p.timeParser.isAm(d1)
	pm2, am2 := d2 != "" && p.timeParser.isPm(d2), d2 != "" && p.timeParser.isAm(d2)
	switch {
	case d1 == "" && pm2:
		// "2-4pm" is afternoon throughout, "11-1pm" starts in the morning.
		pm1 = h1 <= h2 || h2 == 12
		am1 = !pm1
	case d1 == "" && am2:
		am1 = true
	case d2 == "" && pm1:
		pm2 = true
	case d2 == "" && am1:
		am2 = h2 >= h1 && h2 != 12
		pm2 = !am2
	}
	comment := CommentNone
	if d1 == "" && d2 == "" && h1 >= 1 && h1 <= 12 && h2 >= 1 && h2 <= 12 {
		comment = CommentAmPm
	}
	h1, h2 = applyDesc(h1, pm1, am1), applyDesc(h2, pm2, am2)
	return clockRangeResult(ref, h1, m1, h2, m2, comment), true
}

func applyDesc(hour int, pm, am bool) int {
	switch {
	case pm && hour < 12:
		return hour + 12
	case am && hour == 12:
		return 0
	}
	return hour
}

func clockRangeResult(ref time.Time, h1, m1, h2, m2 int, comment Comment) *ResolutionResult {
	start := AtClock(ref, h1, m1, 0)
	end := AtClock(ref, h2, m2, 0)
	if !end.After(start) {
		end = end.AddDate(0, 0, 1)
	}
	r := TimeRange{Start: start, End: end}
	resolution := func() map[string]string {
		return map[string]string{
			KeyStartTime: LuisTime(h1, m1, 0),
			KeyEndTime:   LuisTime(h2, m2, 0),
		}
	}
	return &ResolutionResult{
		Success:          true,
		Timex:            RangeTimex(TimexTime(h1, m1, 0), TimexTime(h2, m2, 0), ClockDurationTimex(end.Sub(start))),
		Comment:          comment,
		FutureValue:      r,
		PastValue:        r,
		FutureResolution: resolution(),
		PastResolution:   resolution(),
	}
}

func (p *TimePeriodParser) parseTimeOfDay(text string, ref time.Time) (*ResolutionResult, bool) {
	m, ok := p.config.TimeOfDayRegex().MatchExact(text)
	if !ok {
		return nil, false
	}
	code, ok := p.common.TimesOfDay()[collapse(m.Group("tod"))]
	if !ok {
		return nil, true
	}
	r, ok := timeOfDayRange(ref, code)
	if !ok {
		return nil, true
	}
	resolution := func() map[string]string {
		return map[string]string{
			KeyStartTime: FormatTime(r.Start),
			KeyEndTime:   FormatTime(r.End),
		}
	}
	return &ResolutionResult{
		Success:          true,
		Timex:            code,
		FutureValue:      r,
		PastValue:        r,
		FutureResolution: resolution(),
		PastResolution:   resolution(),
	}, true
}

func (p *TimePeriodParser) parseTimePoints(text string, ref time.Time) (*ResolutionResult, bool) {
	first, second, ok := splitRange(text, p.timeExtractor.Extract(text, ref), p.common)
	if !ok {
		return nil, false
	}
	begin := p.timeParser.Parse(first, ref)
	finish := p.timeParser.Parse(second, ref)
	if !begin.Succeeded() || !finish.Succeeded() {
		return nil, true
	}
	h1, m1, _, _ := clockOf(begin.Value)
	h2, m2, _, _ := clockOf(finish.Value)
	comment := CommentNone
	switch {
	case begin.Value.Comment == CommentAmPm && finish.Value.Comment == CommentAmPm:
		comment = CommentAmPm
	case begin.Value.Comment == CommentAmPm && h2 >= 12 && h1+12 <= h2:
		h1 += 12
	}
	return clockRangeResult(ref, h1, m1, h2, m2, comment), true
}

// splitRangeTimex reads "(start,end,duration)".
func splitRangeTimex(timex string) (start, end, duration string, ok bool) {
	if !strings.HasPrefix(timex, "(") || !strings.HasSuffix(timex, ")") {
		return "", "", "", false
	}
	parts := strings.Split(timex[1:len(timex)-1], ",")
	if len(parts) != 3 {
		return "", "", "", false
	}
	return parts[0], parts[1], parts[2], true
}
