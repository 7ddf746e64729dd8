package datetime

import (
	"log/slog"
	"time"
)

// Options tune a Bundle.
type Options struct {
	// InclusiveEndPeriod makes explicit date ranges end the day after their
	// last named day, keeping the reported P{n}D consistent with it.
	InclusiveEndPeriod bool
	// SkipAmbiguityFilter disables the locale's negative pattern list.
	SkipAmbiguityFilter bool
	// MatchTimeout bounds each pattern evaluation. Zero means
	// DefaultMatchTimeout.
	MatchTimeout time.Duration
	// Logger receives debug output about rejected candidates. Nil means
	// slog.Default().
	Logger *slog.Logger
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}

// Locale supplies every capability the categories need.
type Locale interface {
	Culture() string
	Common() CommonConfig
	Relative() RelativeConfig
	Duration() DurationConfig
	Date() DateConfig
	Time() TimeConfig
	DatePeriod() DatePeriodConfig
	TimePeriod() TimePeriodConfig
	DateTime() DateTimeConfig
	DateTimePeriod() DateTimePeriodConfig
	Set() SetConfig
	Holiday() HolidayConfig
	Merged() MergedConfig
}

// CommonConfig holds lexicons and connectors shared by all categories. Map
// keys are lowercase.
type CommonConfig interface {
	// Months maps month names to 1..12.
	Months() map[string]int
	// DaysOfMonth maps day tokens ("3", "3rd", "third") to 1..31.
	DaysOfMonth() map[string]int
	// Weekdays maps weekday names to ISO weekdays (Monday = 1).
	Weekdays() map[string]int
	// Numbers maps number words ("five", "a couple of") to values.
	Numbers() map[string]float64
	// Ordinals maps ordinal words ("first", "2nd") to positions; "last" is -1.
	Ordinals() map[string]int
	// Units maps unit words to the Unit* codes.
	Units() map[string]string
	// Relatives maps relative words to offsets: this 0, next 1, last -1.
	Relatives() map[string]int
	// SpecialDays maps day words to offsets from today: tomorrow 1.
	SpecialDays() map[string]int
	// TimesOfDay maps part-of-day words to timex codes (TMO, TAF, ...).
	TimesOfDay() map[string]string
	// TwoDigitYearThresholds returns (future, past): yy below future is
	// 2000+yy, yy at or above past is 1900+yy, anything between is rejected.
	TwoDigitYearThresholds() (future, past int)
	// RangeConnectorRegex matches the whole gap between two endpoints ("to").
	RangeConnectorRegex() *Regex
	// RangePrefixRegex matches "from" or "between" ending right before the
	// first endpoint. Group `between` marks the form requiring AndRegex.
	RangePrefixRegex() *Regex
	// AndRegex matches the whole gap of a between...and range.
	AndRegex() *Regex
}

// RelativeConfig holds the connectors of the relative-duration resolver.
type RelativeConfig interface {
	// AgoRegex matches at the start of the text following a duration.
	AgoRegex() *Regex
	// LaterRegex matches at the start of the text following a duration.
	LaterRegex() *Regex
	// InRegex matches at the end of the text preceding a duration.
	InRegex() *Regex
}

// DurationConfig drives duration extraction. Patterns use groups `num`,
// `unit`, `half` and `andhalf`.
type DurationConfig interface {
	DurationPatterns() []*Regex
	// ConnectorRegex matches the whole gap between two adjacent durations.
	ConnectorRegex() *Regex
}

// DateConfig drives date extraction and parsing.
type DateConfig interface {
	// DatePatterns are explicit dates with groups `month`, `day`, `year`
	// and optionally `weekday`.
	DatePatterns() []*Regex
	// ImplicitPatterns locate bare days of month in context; extraction only.
	ImplicitPatterns() []*Regex
	// DayOfMonthRegex parses a bare day of month, group `day`.
	DayOfMonthRegex() *Regex
	// SpecialDayRegex matches today/tomorrow forms, group `day`.
	SpecialDayRegex() *Regex
	// RelativeWeekdayRegex matches "next Friday", groups `rel`, `weekday`.
	RelativeWeekdayRegex() *Regex
	// WeekdayOfWeekRegex matches "Friday next week", groups `rel`, `weekday`.
	WeekdayOfWeekRegex() *Regex
	// WeekdayRegex matches a bare weekday, group `weekday`.
	WeekdayRegex() *Regex
}

// TimeHook is a locale specific time strategy tried before the generic ones.
type TimeHook interface {
	Pattern() *Regex
	Resolve(m Match, ref time.Time) (*ResolutionResult, bool)
}

// TimeConfig drives time extraction and parsing.
type TimeConfig interface {
	// TimePatterns carry groups `hour`, `min`, `sec`, `desc`, `oclock`.
	TimePatterns() []*Regex
	// AtHourRegex finds a bare hour after a preposition; extraction only.
	AtHourRegex() *Regex
	// BareHourRegex parses a bare hour, group `hour`.
	BareHourRegex() *Regex
	// SpecialTimeRegex matches noon/midnight, group `special`.
	SpecialTimeRegex() *Regex
	SpecialTimes() map[string]int
	// RelativeMinuteRegex matches "half past 5", groups `minword`, `minnum`,
	// `dir`, `hour`, `desc`.
	RelativeMinuteRegex() *Regex
	MinuteWords() map[string]int
	// Directions maps `dir` words to +1 (past) or -1 (to).
	Directions() map[string]int
	AmDescRegex() *Regex
	PmDescRegex() *Regex
	// Hook may be nil.
	Hook() TimeHook
}

// DatePeriodConfig drives date range extraction and parsing. Groups are
// documented per pattern; `year` is four digits, `yrel` is a relative year
// word, `rel` a relative word.
type DatePeriodConfig interface {
	// MonthDayRangePatterns: `month`, `day1`, `day2`, `year`.
	MonthDayRangePatterns() []*Regex
	// MonthWithYearPatterns: `month` and `year` or `yrel`.
	MonthWithYearPatterns() []*Regex
	// QuarterPatterns: `ord` or `num`, optional `year`/`yrel`, or `rel`.
	QuarterPatterns() []*Regex
	// HalfYearPatterns: `ord` or `num`, optional `year`/`yrel`.
	HalfYearPatterns() []*Regex
	// SeasonRegex: `season`, optional `rel`, `year`.
	SeasonRegex() *Regex
	Seasons() map[string]string
	// WeekOfMonthRegex: `ord`, then `month` [`year`] or `rel`.
	WeekOfMonthRegex() *Regex
	// WeekOfYearPatterns: `num` or `ord`, optional `year`/`yrel`.
	WeekOfYearPatterns() []*Regex
	// YearRegex finds a year in context; extraction only.
	YearRegex() *Regex
	// YearExactRegex parses a bare year, group `year`.
	YearExactRegex() *Regex
	// OneWordPeriodPatterns: `rel` with `unit` (week, month, year, weekend),
	// bare `weekend`, or `month` with optional `rel`.
	OneWordPeriodPatterns() []*Regex
	// RelativePrefixRegex ends right before a duration ("last", "next").
	RelativePrefixRegex() *Regex
	// RelativePrefixExactRegex starts a relative duration period, group `rel`.
	RelativePrefixExactRegex() *Regex
	// ModPrefixRegex ends right before a period, groups `early`, `mid`, `late`.
	ModPrefixRegex() *Regex
	// ModPrefixExactRegex starts a modified period, same groups.
	ModPrefixExactRegex() *Regex
}

// TimePeriodConfig drives time range extraction and parsing.
type TimePeriodConfig interface {
	// NumberRangePatterns: `hour1`, `min1`, `desc1`, `hour2`, `min2`, `desc2`.
	NumberRangePatterns() []*Regex
	// TimeOfDayRegex: `tod`.
	TimeOfDayRegex() *Regex
}

// DateTimeConfig drives date-time extraction and parsing.
type DateTimeConfig interface {
	// NowRegex: `now`.
	NowRegex() *Regex
	// DateTimeConnectorRegex matches the whole gap between a date and a time.
	DateTimeConnectorRegex() *Regex
	// TimeDateConnectorRegex matches the whole gap between a time and a date.
	TimeDateConnectorRegex() *Regex
	// TodaySuffixRegex follows a time ("8 tonight"), group `tod`.
	TodaySuffixRegex() *Regex
}

// DateTimePeriodConfig drives date-time range extraction and parsing.
type DateTimePeriodConfig interface {
	// SpecificTimeOfDayRegex: `rel` or `day` with `tod`, or `tonight`.
	SpecificTimeOfDayRegex() *Regex
	// TimeOfDaySuffixRegex follows a date ("Friday morning"), group `tod`.
	TimeOfDaySuffixRegex() *Regex
	// DateTimePeriodConnectorRegex matches the gap between a date and a
	// time range, in either order.
	DateTimePeriodConnectorRegex() *Regex
}

// SetConfig drives recurring set extraction and parsing.
type SetConfig interface {
	// EachUnitRegex: `unit`, optional `num` or `other`.
	EachUnitRegex() *Regex
	// PeriodicRegex: `periodic`.
	PeriodicRegex() *Regex
	// Periodic maps `periodic` words to timex durations ("daily" → P1D).
	Periodic() map[string]string
	// EachWeekdayPatterns: `weekday`.
	EachWeekdayPatterns() []*Regex
	// EachTimeOfDayPatterns: `tod`.
	EachTimeOfDayPatterns() []*Regex
	// SetTimeConnectorRegex matches the whole gap between a set and a time.
	SetTimeConnectorRegex() *Regex
}

// HolidayFunc computes a holiday's date for a year.
type HolidayFunc func(year int, loc *time.Location) time.Time

// HolidayConfig drives holiday extraction and parsing.
type HolidayConfig interface {
	// HolidayPatterns: `holiday`, optional `year`, `rel` or `yrel`.
	HolidayPatterns() []*Regex
	Holidays() map[string]HolidayFunc
}

// AmbiguityFilter drops a candidate whose text matches Key when a match of
// Context overlaps it.
type AmbiguityFilter struct {
	Key     *Regex
	Context *Regex
}

// MergedConfig drives the merged layer.
type MergedConfig interface {
	// ModifierSuffixRegex ends right before a candidate, groups `before`,
	// `after`, `since`, `more`, `less`.
	ModifierSuffixRegex() *Regex
	// ModifierPrefixRegex starts a candidate, same groups.
	ModifierPrefixRegex() *Regex
	// NumberEndingRegex follows a time mention, group `newTime`.
	NumberEndingRegex() *Regex
	AmbiguityFilters() []AmbiguityFilter
}
