package datetime

import (
	"fmt"
	"strings"
	"time"
)

// DatePeriodExtractor finds ranges of days: months, weeks, quarters,
// seasons, explicit ranges and relative spans.
type DatePeriodExtractor struct {
	config            DatePeriodConfig
	common            CommonConfig
	dateExtractor     *DateExtractor
	durationExtractor *DurationExtractor
	durationParser    *DurationParser
}

// NewDatePeriodExtractor returns a date range extractor.
func NewDatePeriodExtractor(config DatePeriodConfig, common CommonConfig, dateExtractor *DateExtractor, durationExtractor *DurationExtractor, durationParser *DurationParser) *DatePeriodExtractor {
	return &DatePeriodExtractor{
		config:            config,
		common:            common,
		dateExtractor:     dateExtractor,
		durationExtractor: durationExtractor,
		durationParser:    durationParser,
	}
}

func (e *DatePeriodExtractor) simplePatterns() []*Regex {
	c := e.config
	var patterns []*Regex
	patterns = append(patterns, c.MonthDayRangePatterns()...)
	patterns = append(patterns, c.MonthWithYearPatterns()...)
	patterns = append(patterns, c.QuarterPatterns()...)
	patterns = append(patterns, c.HalfYearPatterns()...)
	patterns = append(patterns, c.SeasonRegex(), c.WeekOfMonthRegex())
	patterns = append(patterns, c.WeekOfYearPatterns()...)
	patterns = append(patterns, c.YearRegex())
	patterns = append(patterns, c.OneWordPeriodPatterns()...)
	return patterns
}

// Extract implements Extractor.
func (e *DatePeriodExtractor) Extract(text string, ref time.Time) []ExtractResult {
	norm := Normalize(text)
	simple := findAllTokens(norm, e.simplePatterns()...)

	tokens := append([]Token{}, simple...)
	for _, tok := range simple {
		if m, ok := prefixMatch(norm, tok.Start, e.config.ModPrefixRegex()); ok {
			tokens = append(tokens, Token{Start: m.Index, End: tok.End})
		}
	}
	tokens = append(tokens, rangeTokens(norm, e.dateExtractor.Extract(text, ref), e.common)...)
	for _, d := range e.durationExtractor.Extract(text, ref) {
		parts, ok := e.durationParser.parts(trimmed(d.Text))
		if !ok || !relativeDate.accepts(parts) {
			continue
		}
		if m, ok := prefixMatch(norm, d.Start, e.config.RelativePrefixRegex()); ok {
			tokens = append(tokens, Token{Start: m.Index, End: d.End()})
		}
	}
	return MergeAllTokens(tokens, text, TypeDatePeriod)
}

// DatePeriodParser resolves ranges of days.
type DatePeriodParser struct {
	config             DatePeriodConfig
	common             CommonConfig
	dateExtractor      *DateExtractor
	dateParser         *DateParser
	durationParser     *DurationParser
	inclusiveEndPeriod bool
}

// NewDatePeriodParser returns a date range parser.
func NewDatePeriodParser(config DatePeriodConfig, common CommonConfig, dateExtractor *DateExtractor, dateParser *DateParser, durationParser *DurationParser, inclusiveEndPeriod bool) *DatePeriodParser {
	return &DatePeriodParser{
		config:             config,
		common:             common,
		dateExtractor:      dateExtractor,
		dateParser:         dateParser,
		durationParser:     durationParser,
		inclusiveEndPeriod: inclusiveEndPeriod,
	}
}

// Parse implements Parser.
func (p *DatePeriodParser) Parse(er ExtractResult, ref time.Time) *ParseResult {
	return newParseResult(er, p.parse(trimmed(er.Text), ref))
}

func (p *DatePeriodParser) parse(text string, ref time.Time) *ResolutionResult {
	return runStrategies(text, ref,
		p.parseModPrefix,
		p.parseMonthDayRange,
		p.parseMonthWithYear,
		p.parseQuarter,
		p.parseHalfYear,
		p.parseSeason,
		p.parseWeekOfMonth,
		p.parseWeekOfYear,
		p.parseYear,
		p.parseOneWord,
		p.parseRelativeDuration,
		p.parseDateRange,
	)
}

func monthRange(year, month int, loc *time.Location) TimeRange {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, loc)
	return TimeRange{Start: start, End: AddMonths(start, 1)}
}

func blockRange(year, startMonth, months int, loc *time.Location) TimeRange {
	start := time.Date(year, time.Month(startMonth), 1, 0, 0, 0, 0, loc)
	return TimeRange{Start: start, End: AddMonths(start, months)}
}

func weekRange(monday time.Time) TimeRange {
	return TimeRange{Start: monday, End: monday.AddDate(0, 0, 7)}
}

// yearlessBlock places a block of months when no year was given. The block's
// end in the reference year is compared with the reference day: already
// over means past is this year and future next year, still ahead means
// future is this year and past last year, and a tie keeps this year on both
// sides.
func yearlessBlock(ref time.Time, startMonth, months int) (future, past TimeRange) {
	loc := ref.Location()
	today := StartOfDay(ref)
	this := blockRange(ref.Year(), startMonth, months, loc)
	switch {
	case this.End.Before(today):
		return blockRange(ref.Year()+1, startMonth, months, loc), this
	case this.End.After(today):
		return this, blockRange(ref.Year()-1, startMonth, months, loc)
	default:
		return this, this
	}
}

func blockTimex(r TimeRange, explicit bool, duration string) string {
	return DateRangeTimex(r.Start, r.End, !explicit, duration)
}

// narrow keeps the early, middle or late part of a range.
func narrow(r TimeRange, comment Comment) TimeRange {
	switch {
	case r.Start.Day() == 1 && r.End.Equal(AddMonths(r.Start, 1)):
		switch comment {
		case CommentEarly:
			return TimeRange{Start: r.Start, End: r.Start.AddDate(0, 0, 15)}
		case CommentMid:
			return TimeRange{Start: r.Start.AddDate(0, 0, 9), End: r.Start.AddDate(0, 0, 20)}
		case CommentLate:
			return TimeRange{Start: r.Start.AddDate(0, 0, 15), End: r.End}
		}
	case r.Start.Month() == time.January && r.Start.Day() == 1 && r.End.Equal(AddMonths(r.Start, 12)):
		switch comment {
		case CommentEarly:
			return TimeRange{Start: r.Start, End: AddMonths(r.Start, 6)}
		case CommentMid:
			return TimeRange{Start: AddMonths(r.Start, 3), End: AddMonths(r.Start, 9)}
		case CommentLate:
			return TimeRange{Start: AddMonths(r.Start, 6), End: r.End}
		}
	case r.Start.Weekday() == time.Monday && DiffDays(r.Start, r.End) == 7:
		switch comment {
		case CommentEarly:
			return TimeRange{Start: r.Start, End: r.Start.AddDate(0, 0, 3)}
		case CommentMid:
			return TimeRange{Start: r.Start.AddDate(0, 0, 1), End: r.Start.AddDate(0, 0, 4)}
		case CommentLate:
			return TimeRange{Start: r.Start.AddDate(0, 0, 3), End: r.End}
		}
	}
	days := DiffDays(r.Start, r.End)
	switch comment {
	case CommentEarly:
		return TimeRange{Start: r.Start, End: r.Start.AddDate(0, 0, days/2)}
	case CommentMid:
		return TimeRange{Start: r.Start.AddDate(0, 0, days/4), End: r.Start.AddDate(0, 0, days-days/4)}
	case CommentLate:
		return TimeRange{Start: r.Start.AddDate(0, 0, days/2), End: r.End}
	}
	return r
}

func (p *DatePeriodParser) parseModPrefix(text string, ref time.Time) (*ResolutionResult, bool) {
	m, ok := p.config.ModPrefixExactRegex().Find(text)
	if !ok || m.Index != 0 || m.End() >= runeLen(text) {
		return nil, false
	}
	var comment Comment
	var mod string
	switch {
	case m.Has("early"):
		comment, mod = CommentEarly, ModStart
	case m.Has("mid"):
		comment, mod = CommentMid, ModMid
	case m.Has("late"):
		comment, mod = CommentLate, ModEnd
	default:
		return nil, false
	}
	inner := p.parse(strings.TrimSpace(runeSuffix(text, m.End())), ref)
	if inner == nil {
		return nil, true
	}
	future, ok1 := inner.FutureValue.(TimeRange)
	past, ok2 := inner.PastValue.(TimeRange)
	if !ok1 || !ok2 {
		return nil, true
	}
	res := datePeriodResult(inner.Timex, narrow(future, comment), narrow(past, comment))
	res.Mod = mod
	res.Comment = comment
	return res, true
}

func (p *DatePeriodParser) parseMonthDayRange(text string, ref time.Time) (*ResolutionResult, bool) {
	m, ok := matchFirstExact(text, p.config.MonthDayRangePatterns())
	if !ok {
		return nil, false
	}
	month, ok := lookupMonth(p.common, m.Group("month"))
	if !ok {
		return nil, true
	}
	day1, ok1 := lookupDay(p.common, m.Group("day1"))
	day2, ok2 := lookupDay(p.common, m.Group("day2"))
	if !ok1 || !ok2 || day2 < day1 {
		return nil, true
	}
	loc := ref.Location()
	span := func(year int) (TimeRange, bool) {
		start := SafeDate(year, month, day1, loc)
		end := SafeDate(year, month, day2, loc)
		if start.IsZero() || end.IsZero() {
			return TimeRange{}, false
		}
		if p.inclusiveEndPeriod {
			end = end.AddDate(0, 0, 1)
		}
		return TimeRange{Start: start, End: end}, true
	}

	year, explicit, ok := yearOf(p.common, m, ref)
	if !ok {
		return nil, true
	}
	days := day2 - day1
	endDay := day2
	if p.inclusiveEndPeriod {
		days++
		endDay++
	}
	// An impossible day keeps its timex and resolves to MinDate.
	invalid := func(year int) *ResolutionResult {
		none := TimeRange{Start: MinDate, End: MinDate}
		timex := RangeTimex(LuisDate(year, month, day1), LuisDate(year, month, endDay), DaysTimex(days))
		return datePeriodResult(timex, none, none)
	}
	if explicit {
		r, ok := span(year)
		if !ok {
			return invalid(year), true
		}
		return datePeriodResult(blockTimex(r, true, DaysTimex(days)), r, r), true
	}

	today := StartOfDay(ref)
	var future, past TimeRange
	var okFuture, okPast bool
	for i := 0; i <= 8 && !okFuture; i++ {
		if r, ok := span(ref.Year() + i); ok && r.End.After(today) {
			future, okFuture = r, true
		}
	}
	for i := 0; i <= 8 && !okPast; i++ {
		if r, ok := span(ref.Year() - i); ok && r.Start.Before(today) {
			past, okPast = r, true
		}
	}
	if !okFuture || !okPast {
		return invalid(-1), true
	}
	return datePeriodResult(blockTimex(future, false, DaysTimex(days)), future, past), true
}

func (p *DatePeriodParser) parseMonthWithYear(text string, ref time.Time) (*ResolutionResult, bool) {
	m, ok := matchFirstExact(text, p.config.MonthWithYearPatterns())
	if !ok {
		return nil, false
	}
	month, ok := lookupMonth(p.common, m.Group("month"))
	if !ok {
		return nil, true
	}
	year, _, ok := yearOf(p.common, m, ref)
	if !ok {
		return nil, true
	}
	r := monthRange(year, month, ref.Location())
	return datePeriodResult(fmt.Sprintf("%04d-%02d", year, month), r, r), true
}

// blockResult resolves the index-th block of `months` months in a year.
func (p *DatePeriodParser) blockResult(m Match, ref time.Time, index, months int) (*ResolutionResult, bool) {
	startMonth := (index-1)*months + 1
	duration := DurationTimex(float64(months), UnitMonth)
	year, explicit, ok := yearOf(p.common, m, ref)
	if !ok {
		return nil, true
	}
	if explicit {
		r := blockRange(year, startMonth, months, ref.Location())
		return datePeriodResult(blockTimex(r, true, duration), r, r), true
	}
	future, past := yearlessBlock(ref, startMonth, months)
	this := blockRange(ref.Year(), startMonth, months, ref.Location())
	return datePeriodResult(blockTimex(this, false, duration), future, past), true
}

func (p *DatePeriodParser) parseQuarter(text string, ref time.Time) (*ResolutionResult, bool) {
	m, ok := matchFirstExact(text, p.config.QuarterPatterns())
	if !ok {
		return nil, false
	}
	if m.Has("rel") {
		offset, ok := lookupRelative(p.common, m.Group("rel"))
		if !ok {
			return nil, true
		}
		current := (int(ref.Month()) - 1) / MonthsPerQuarter
		start := AddMonths(time.Date(ref.Year(), time.Month(current*MonthsPerQuarter+1), 1, 0, 0, 0, 0, ref.Location()), offset*MonthsPerQuarter)
		r := TimeRange{Start: start, End: AddMonths(start, MonthsPerQuarter)}
		return datePeriodResult(blockTimex(r, true, DurationTimex(MonthsPerQuarter, UnitMonth)), r, r), true
	}
	quarter, ok := p.blockIndex(m)
	if !ok || quarter < 1 || quarter > 12/MonthsPerQuarter {
		return nil, true
	}
	return p.blockResult(m, ref, quarter, MonthsPerQuarter)
}

func (p *DatePeriodParser) parseHalfYear(text string, ref time.Time) (*ResolutionResult, bool) {
	m, ok := matchFirstExact(text, p.config.HalfYearPatterns())
	if !ok {
		return nil, false
	}
	half, ok := p.blockIndex(m)
	if !ok || half < 1 || half > 12/MonthsPerHalfYear {
		return nil, true
	}
	return p.blockResult(m, ref, half, MonthsPerHalfYear)
}

func (p *DatePeriodParser) blockIndex(m Match) (int, bool) {
	if m.Has("num") {
		return lookupInt(p.common, m.Group("num"))
	}
	return lookupOrdinal(p.common, m.Group("ord"))
}

// seasonStarts are meteorological season start months.
var seasonStarts = map[string]int{"SP": 3, "SU": 6, "FA": 9, "WI": 12}

func (p *DatePeriodParser) parseSeason(text string, ref time.Time) (*ResolutionResult, bool) {
	m, ok := p.config.SeasonRegex().MatchExact(text)
	if !ok {
		return nil, false
	}
	code, ok := p.config.Seasons()[collapse(m.Group("season"))]
	if !ok {
		return nil, true
	}
	startMonth := seasonStarts[code]
	loc := ref.Location()
	if m.Has("rel") {
		offset, ok := lookupRelative(p.common, m.Group("rel"))
		if !ok {
			return nil, true
		}
		year := ref.Year() + offset
		r := blockRange(year, startMonth, MonthsPerQuarter, loc)
		return datePeriodResult(fmt.Sprintf("%04d-%s", year, code), r, r), true
	}
	year, explicit, ok := yearOf(p.common, m, ref)
	if !ok {
		return nil, true
	}
	if explicit {
		r := blockRange(year, startMonth, MonthsPerQuarter, loc)
		return datePeriodResult(fmt.Sprintf("%04d-%s", year, code), r, r), true
	}
	future, past := yearlessBlock(ref, startMonth, MonthsPerQuarter)
	return datePeriodResult(code, future, past), true
}

// monthWeek returns the Monday of a week of a month and its 1 based number.
// ordinal -1 is the week holding the month's last Thursday.
func monthWeek(year, month, ordinal int, loc *time.Location) (time.Time, int) {
	first := MondayOfMonthWeek(year, month, 1, loc)
	if ordinal < 0 {
		monday := StartOfWeek(NthWeekdayOfMonth(year, month, 4, -1, loc))
		return monday, DiffDays(first, monday)/7 + 1
	}
	return first.AddDate(0, 0, 7*(ordinal-1)), ordinal
}

func (p *DatePeriodParser) parseWeekOfMonth(text string, ref time.Time) (*ResolutionResult, bool) {
	m, ok := p.config.WeekOfMonthRegex().MatchExact(text)
	if !ok {
		return nil, false
	}
	ordinal, ok := lookupOrdinal(p.common, m.Group("ord"))
	if !ok || ordinal == 0 || ordinal > 5 {
		return nil, true
	}
	loc := ref.Location()
	if m.Has("rel") {
		offset, ok := lookupRelative(p.common, m.Group("rel"))
		if !ok {
			return nil, true
		}
		month := AddMonths(time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, loc), offset)
		monday, week := monthWeek(month.Year(), int(month.Month()), ordinal, loc)
		r := weekRange(monday)
		return datePeriodResult(fmt.Sprintf("%04d-%02d-W%02d", month.Year(), int(month.Month()), week), r, r), true
	}
	month, ok := lookupMonth(p.common, m.Group("month"))
	if !ok {
		return nil, true
	}
	year, explicit, ok := yearOf(p.common, m, ref)
	if !ok {
		return nil, true
	}
	if explicit {
		monday, week := monthWeek(year, month, ordinal, loc)
		r := weekRange(monday)
		return datePeriodResult(fmt.Sprintf("%04d-%02d-W%02d", year, month, week), r, r), true
	}
	futureYear, pastYear := monthYears(ref, month)
	futureMonday, week := monthWeek(futureYear, month, ordinal, loc)
	pastMonday, _ := monthWeek(pastYear, month, ordinal, loc)
	timex := fmt.Sprintf("%s-%02d-W%02d", TimexFuzzyYear, month, week)
	return datePeriodResult(timex, weekRange(futureMonday), weekRange(pastMonday)), true
}

func (p *DatePeriodParser) parseWeekOfYear(text string, ref time.Time) (*ResolutionResult, bool) {
	m, ok := matchFirstExact(text, p.config.WeekOfYearPatterns())
	if !ok {
		return nil, false
	}
	week, ok := p.blockIndex(m)
	if !ok {
		return nil, true
	}
	year, _, ok := yearOf(p.common, m, ref)
	if !ok || week < 1 || week > ISOWeeksInYear(year) {
		return nil, true
	}
	r := weekRange(MondayOfISOWeek(year, week, ref.Location()))
	return datePeriodResult(fmt.Sprintf("%04d-W%02d", year, week), r, r), true
}

func (p *DatePeriodParser) parseYear(text string, ref time.Time) (*ResolutionResult, bool) {
	m, ok := p.config.YearExactRegex().MatchExact(text)
	if !ok {
		return nil, false
	}
	year, ok := parseYear(p.common, m.Group("year"))
	if !ok {
		return nil, true
	}
	r := blockRange(year, 1, 12, ref.Location())
	return datePeriodResult(fmt.Sprintf("%04d", year), r, r), true
}

func (p *DatePeriodParser) parseOneWord(text string, ref time.Time) (*ResolutionResult, bool) {
	m, ok := matchFirstExact(text, p.config.OneWordPeriodPatterns())
	if !ok {
		return nil, false
	}
	loc := ref.Location()
	offset := 0
	if m.Has("rel") {
		if offset, ok = lookupRelative(p.common, m.Group("rel")); !ok {
			return nil, true
		}
	}

	if m.Has("month") {
		month, ok := lookupMonth(p.common, m.Group("month"))
		if !ok {
			return nil, true
		}
		if m.Has("rel") {
			year := ref.Year() + offset
			r := monthRange(year, month, loc)
			return datePeriodResult(fmt.Sprintf("%04d-%02d", year, month), r, r), true
		}
		futureYear, pastYear := monthYears(ref, month)
		return datePeriodResult(fmt.Sprintf("%s-%02d", TimexFuzzyYear, month),
			monthRange(futureYear, month, loc), monthRange(pastYear, month, loc)), true
	}

	if m.Has("weekend") {
		saturday := StartOfWeek(ref).AddDate(0, 0, 5+7*offset)
		r := TimeRange{Start: saturday, End: saturday.AddDate(0, 0, 2)}
		year, week := saturday.ISOWeek()
		return datePeriodResult(fmt.Sprintf("%04d-W%02d-%s", year, week, TimexWeekend), r, r), true
	}

	unit, ok := p.common.Units()[collapse(m.Group("unit"))]
	if !ok {
		return nil, true
	}
	switch unit {
	case UnitWeek:
		monday := StartOfWeek(ref).AddDate(0, 0, 7*offset)
		year, week := monday.ISOWeek()
		r := weekRange(monday)
		return datePeriodResult(fmt.Sprintf("%04d-W%02d", year, week), r, r), true
	case UnitMonth:
		first := AddMonths(time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, loc), offset)
		r := monthRange(first.Year(), int(first.Month()), loc)
		return datePeriodResult(fmt.Sprintf("%04d-%02d", first.Year(), int(first.Month())), r, r), true
	case UnitYear:
		year := ref.Year() + offset
		r := blockRange(year, 1, 12, loc)
		return datePeriodResult(fmt.Sprintf("%04d", year), r, r), true
	}
	return nil, true
}

func (p *DatePeriodParser) parseRelativeDuration(text string, ref time.Time) (*ResolutionResult, bool) {
	m, ok := p.config.RelativePrefixExactRegex().Find(text)
	if !ok || m.Index != 0 {
		return nil, false
	}
	parts, ok := p.durationParser.parts(strings.TrimSpace(runeSuffix(text, m.End())))
	if !ok {
		return nil, false
	}
	sign, ok := lookupRelative(p.common, m.Group("rel"))
	if !ok || sign == 0 || !relativeDate.accepts(parts) {
		return nil, true
	}
	today := StartOfDay(ref)
	var r TimeRange
	if sign < 0 {
		r = TimeRange{Start: shiftDate(today, parts, -1), End: today}
	} else {
		start := today.AddDate(0, 0, 1)
		r = TimeRange{Start: start, End: shiftDate(start, parts, 1)}
	}
	return datePeriodResult(blockTimex(r, true, ComposeDurationTimex(parts)), r, r), true
}

// endpointTimex renders a range endpoint from the endpoint's own timex and
// its future and past boundaries. A year-less month/day stays year-less.
// Otherwise a date is named only when both sides agree on it.
func endpointTimex(original string, future, past time.Time) string {
	fuzzyYear := strings.HasPrefix(original, TimexFuzzyYear+"-")
	switch {
	case future.IsZero():
		return original
	case fuzzyYear && !strings.HasPrefix(original, TimexFuzzyYear+"-"+TimexFuzzyMonth) &&
		!strings.Contains(original, TimexFuzzyWeek):
		return LuisDate(-1, int(future.Month()), future.Day())
	case future.Equal(past):
		return LuisDateOf(future)
	case strings.Contains(original, TimexFuzzyWeek):
		return WeekdayTimex(ISOWeekday(future))
	case fuzzyYear:
		return LuisDate(-1, -1, future.Day())
	}
	return original
}

func (p *DatePeriodParser) parseDateRange(text string, ref time.Time) (*ResolutionResult, bool) {
	first, second, ok := splitRange(text, p.dateExtractor.Extract(text, ref), p.common)
	if !ok {
		return nil, false
	}
	begin := p.dateParser.Parse(first, ref)
	finish := p.dateParser.Parse(second, ref)
	if !begin.Succeeded() || !finish.Succeeded() {
		return nil, true
	}
	// rolled reports a year-less end moved into the following year.
	span := func(startValue, endValue any) (r TimeRange, rolled, ok bool) {
		start, ok1 := startValue.(time.Time)
		end, ok2 := endValue.(time.Time)
		if !ok1 || !ok2 {
			return TimeRange{}, false, false
		}
		if start.IsZero() || end.IsZero() {
			return TimeRange{Start: MinDate, End: MinDate}, false, true
		}
		if end.Before(start) && strings.HasPrefix(finish.Value.Timex, TimexFuzzyYear) {
			end = AddMonths(end, 12)
			rolled = true
		}
		if end.Before(start) {
			return TimeRange{}, false, false
		}
		if p.inclusiveEndPeriod {
			end = end.AddDate(0, 0, 1)
		}
		return TimeRange{Start: start, End: end}, rolled, true
	}
	past, _, ok1 := span(begin.Value.PastValue, finish.Value.PastValue)
	future, rolled, ok2 := span(begin.Value.FutureValue, finish.Value.FutureValue)
	if !ok1 || !ok2 {
		return nil, true
	}
	// A reversed year-less range is already under way: it started at the
	// past begin, so both sides share it.
	if rolled {
		future = past
	}
	timex := RangeTimex(
		endpointTimex(begin.Value.Timex, future.Start, past.Start),
		endpointTimex(finish.Value.Timex, future.End, past.End),
		DaysTimex(DiffDays(future.Start, future.End)))
	return datePeriodResult(timex, future, past), true
}
