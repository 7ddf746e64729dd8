// Package english is the en-us locale of the datetime recognizer.
package english

import (
	"github.com/pkg/errors"

	"github.com/hrygo/datetimex/plugin/datetime"
)

// Culture is the culture code served by this locale.
const Culture = "en-us"

// Config is the English locale. It is immutable once built.
type Config struct {
	common         commonConfig
	relative       relativeConfig
	duration       durationConfig
	date           dateConfig
	time           timeConfig
	datePeriod     datePeriodConfig
	timePeriod     timePeriodConfig
	dateTime       dateTimeConfig
	dateTimePeriod dateTimePeriodConfig
	set            setConfig
	holiday        holidayConfig
	merged         mergedConfig
}

var _ datetime.Locale = (*Config)(nil)

// compiler expands and compiles patterns, keeping the first failure.
type compiler struct {
	exp  expander
	opts datetime.Options
	err  error
}

func (c *compiler) re(name, pattern string) *datetime.Regex {
	if c.err != nil {
		return nil
	}
	r, err := datetime.CompileRegex(c.exp.expand(pattern), c.opts.MatchTimeout)
	if err != nil {
		c.err = errors.Wrapf(err, "english: %s", name)
		return nil
	}
	return r
}

func (c *compiler) all(name string, patterns []string) []*datetime.Regex {
	out := make([]*datetime.Regex, 0, len(patterns))
	for _, p := range patterns {
		out = append(out, c.re(name, p))
	}
	return out
}

// New compiles the English pattern tables.
func New(opts datetime.Options) (*Config, error) {
	c := &compiler{exp: newExpander(), opts: opts}
	nums := numbers()
	days := daysOfMonth()

	cfg := &Config{}
	cfg.common = commonConfig{
		numbers:        nums,
		daysOfMonth:    days,
		ordinals:       ordinals(),
		weekdays:       weekdays(),
		rangeConnector: c.re("range connector", rangeConnectorPattern),
		rangePrefix:    c.re("range prefix", rangePrefixPattern),
		and:            c.re("and", andPattern),
	}
	cfg.relative = relativeConfig{
		ago:   c.re("ago", agoPattern),
		later: c.re("later", laterPattern),
		in:    c.re("in", inPattern),
	}
	cfg.duration = durationConfig{
		patterns:  c.all("duration", durationPatterns),
		connector: c.re("duration connector", durationConnector),
	}
	cfg.date = dateConfig{
		patterns:      c.all("date", datePatterns),
		implicit:      c.all("implicit date", implicitDatePatterns),
		dayOfMonth:    c.re("day of month", dayOfMonthPattern),
		specialDay:    c.re("special day", specialDayPattern),
		relWeekday:    c.re("relative weekday", relativeWeekday),
		weekdayOfWeek: c.re("weekday of week", weekdayOfWeekPattern),
		weekday:       c.re("weekday", weekdayPattern),
	}
	cfg.time = timeConfig{
		patterns:    c.all("time", timePatterns),
		atHour:      c.re("at hour", atHourPattern),
		bareHour:    c.re("bare hour", bareHourPattern),
		specialTime: c.re("special time", specialTimePattern),
		relMinute:   c.re("relative minute", relativeMinute),
		am:          c.re("am", amDesc),
		pm:          c.re("pm", pmDesc),
		hook:        ishHook{pattern: c.re("ish", ishPattern), numbers: nums},
	}
	cfg.datePeriod = datePeriodConfig{
		monthDayRange:  c.all("month day range", datePeriod.monthDayRange),
		monthWithYear:  c.all("month with year", datePeriod.monthWithYear),
		quarter:        c.all("quarter", datePeriod.quarter),
		halfYear:       c.all("half year", datePeriod.halfYear),
		season:         c.re("season", datePeriod.season),
		weekOfMonth:    c.re("week of month", datePeriod.weekOfMonth),
		weekOfYear:     c.all("week of year", datePeriod.weekOfYear),
		year:           c.re("year", datePeriod.year),
		yearExact:      c.re("year exact", datePeriod.yearExact),
		oneWord:        c.all("one word period", datePeriod.oneWord),
		relPrefix:      c.re("relative prefix", datePeriod.relPrefix),
		relPrefixExact: c.re("relative prefix exact", datePeriod.relPrefixExact),
		modPrefix:      c.re("mod prefix", datePeriod.modPrefix),
		modPrefixExact: c.re("mod prefix exact", datePeriod.modPrefixExact),
	}
	cfg.timePeriod = timePeriodConfig{
		numberRange: c.all("time range", timePeriodPatterns),
		timeOfDay:   c.re("time of day", timeOfDayPattern),
	}
	cfg.dateTime = dateTimeConfig{
		now:         c.re("now", nowPattern),
		dateTime:    c.re("date time connector", dateTimeConnector),
		timeDate:    c.re("time date connector", timeDateConnector),
		todaySuffix: c.re("today suffix", todaySuffix),
	}
	cfg.dateTimePeriod = dateTimePeriodConfig{
		specificTimeOfDay: c.re("specific time of day", specificTimeOfDay),
		timeOfDaySuffix:   c.re("time of day suffix", timeOfDaySuffix),
		connector:         c.re("date time period connector", dateTimePeriodConnector),
	}
	cfg.set = setConfig{
		eachUnit:       c.re("each unit", eachUnitPattern),
		periodic:       c.re("periodic", periodicPattern),
		eachWeekday:    c.all("each weekday", eachWeekdayPatterns),
		eachTimeOfDay:  c.all("each time of day", eachTimeOfDayPatterns),
		setTimeConnect: c.re("set time connector", setTimeConnector),
	}
	cfg.holiday = holidayConfig{
		patterns: []*datetime.Regex{c.re("holiday", holidayPattern)},
		holidays: holidays(),
	}
	cfg.merged = mergedConfig{
		suffix:       c.re("modifier suffix", modifierSuffix),
		prefix:       c.re("modifier prefix", modifierPrefix),
		numberEnding: c.re("number ending", numberEnding),
		filters: []datetime.AmbiguityFilter{
			{Key: c.re("greeting key", goodGreetingKey), Context: c.re("greeting context", goodGreetingContext)},
			{Key: c.re("may key", mayKey), Context: c.re("may context", mayContext)},
		},
	}
	if c.err != nil {
		return nil, c.err
	}
	return cfg, nil
}

func (*Config) Culture() string { return Culture }

func (c *Config) Common() datetime.CommonConfig                 { return &c.common }
func (c *Config) Relative() datetime.RelativeConfig             { return &c.relative }
func (c *Config) Duration() datetime.DurationConfig             { return &c.duration }
func (c *Config) Date() datetime.DateConfig                     { return &c.date }
func (c *Config) Time() datetime.TimeConfig                     { return &c.time }
func (c *Config) DatePeriod() datetime.DatePeriodConfig         { return &c.datePeriod }
func (c *Config) TimePeriod() datetime.TimePeriodConfig         { return &c.timePeriod }
func (c *Config) DateTime() datetime.DateTimeConfig             { return &c.dateTime }
func (c *Config) DateTimePeriod() datetime.DateTimePeriodConfig { return &c.dateTimePeriod }
func (c *Config) Set() datetime.SetConfig                       { return &c.set }
func (c *Config) Holiday() datetime.HolidayConfig               { return &c.holiday }
func (c *Config) Merged() datetime.MergedConfig                 { return &c.merged }

type commonConfig struct {
	numbers     map[string]float64
	daysOfMonth map[string]int
	ordinals    map[string]int
	weekdays    map[string]int

	rangeConnector *datetime.Regex
	rangePrefix    *datetime.Regex
	and            *datetime.Regex
}

func (c *commonConfig) Months() map[string]int               { return months }
func (c *commonConfig) DaysOfMonth() map[string]int          { return c.daysOfMonth }
func (c *commonConfig) Weekdays() map[string]int             { return c.weekdays }
func (c *commonConfig) Numbers() map[string]float64          { return c.numbers }
func (c *commonConfig) Ordinals() map[string]int             { return c.ordinals }
func (c *commonConfig) Units() map[string]string             { return units }
func (c *commonConfig) Relatives() map[string]int            { return relatives }
func (c *commonConfig) SpecialDays() map[string]int          { return specialDays }
func (c *commonConfig) TimesOfDay() map[string]string        { return timesOfDay }
func (c *commonConfig) RangeConnectorRegex() *datetime.Regex { return c.rangeConnector }
func (c *commonConfig) RangePrefixRegex() *datetime.Regex    { return c.rangePrefix }
func (c *commonConfig) AndRegex() *datetime.Regex            { return c.and }

// TwoDigitYearThresholds: '29 is 2029, '70 is 1970, '45 is rejected.
func (c *commonConfig) TwoDigitYearThresholds() (future, past int) { return 30, 70 }

type relativeConfig struct {
	ago, later, in *datetime.Regex
}

func (c *relativeConfig) AgoRegex() *datetime.Regex   { return c.ago }
func (c *relativeConfig) LaterRegex() *datetime.Regex { return c.later }
func (c *relativeConfig) InRegex() *datetime.Regex    { return c.in }

type durationConfig struct {
	patterns  []*datetime.Regex
	connector *datetime.Regex
}

func (c *durationConfig) DurationPatterns() []*datetime.Regex { return c.patterns }
func (c *durationConfig) ConnectorRegex() *datetime.Regex     { return c.connector }

type dateConfig struct {
	patterns, implicit []*datetime.Regex

	dayOfMonth, specialDay, relWeekday, weekdayOfWeek, weekday *datetime.Regex
}

func (c *dateConfig) DatePatterns() []*datetime.Regex     { return c.patterns }
func (c *dateConfig) ImplicitPatterns() []*datetime.Regex { return c.implicit }
func (c *dateConfig) DayOfMonthRegex() *datetime.Regex    { return c.dayOfMonth }
func (c *dateConfig) SpecialDayRegex() *datetime.Regex    { return c.specialDay }
func (c *dateConfig) RelativeWeekdayRegex() *datetime.Regex {
	return c.relWeekday
}
func (c *dateConfig) WeekdayOfWeekRegex() *datetime.Regex { return c.weekdayOfWeek }
func (c *dateConfig) WeekdayRegex() *datetime.Regex       { return c.weekday }

type timeConfig struct {
	patterns []*datetime.Regex

	atHour, bareHour, specialTime, relMinute, am, pm *datetime.Regex

	hook ishHook
}

func (c *timeConfig) TimePatterns() []*datetime.Regex      { return c.patterns }
func (c *timeConfig) AtHourRegex() *datetime.Regex         { return c.atHour }
func (c *timeConfig) BareHourRegex() *datetime.Regex       { return c.bareHour }
func (c *timeConfig) SpecialTimeRegex() *datetime.Regex    { return c.specialTime }
func (c *timeConfig) SpecialTimes() map[string]int         { return specialTimes }
func (c *timeConfig) RelativeMinuteRegex() *datetime.Regex { return c.relMinute }
func (c *timeConfig) MinuteWords() map[string]int          { return minuteWords }
func (c *timeConfig) Directions() map[string]int           { return directions }
func (c *timeConfig) AmDescRegex() *datetime.Regex         { return c.am }
func (c *timeConfig) PmDescRegex() *datetime.Regex         { return c.pm }
func (c *timeConfig) Hook() datetime.TimeHook              { return c.hook }

type datePeriodConfig struct {
	monthDayRange, monthWithYear, quarter, halfYear, weekOfYear, oneWord []*datetime.Regex

	season, weekOfMonth, year, yearExact                 *datetime.Regex
	relPrefix, relPrefixExact, modPrefix, modPrefixExact *datetime.Regex
}

func (c *datePeriodConfig) MonthDayRangePatterns() []*datetime.Regex { return c.monthDayRange }
func (c *datePeriodConfig) MonthWithYearPatterns() []*datetime.Regex { return c.monthWithYear }
func (c *datePeriodConfig) QuarterPatterns() []*datetime.Regex       { return c.quarter }
func (c *datePeriodConfig) HalfYearPatterns() []*datetime.Regex      { return c.halfYear }
func (c *datePeriodConfig) SeasonRegex() *datetime.Regex             { return c.season }
func (c *datePeriodConfig) Seasons() map[string]string               { return seasons }
func (c *datePeriodConfig) WeekOfMonthRegex() *datetime.Regex        { return c.weekOfMonth }
func (c *datePeriodConfig) WeekOfYearPatterns() []*datetime.Regex    { return c.weekOfYear }
func (c *datePeriodConfig) YearRegex() *datetime.Regex               { return c.year }
func (c *datePeriodConfig) YearExactRegex() *datetime.Regex          { return c.yearExact }
func (c *datePeriodConfig) OneWordPeriodPatterns() []*datetime.Regex { return c.oneWord }
func (c *datePeriodConfig) RelativePrefixRegex() *datetime.Regex     { return c.relPrefix }
func (c *datePeriodConfig) RelativePrefixExactRegex() *datetime.Regex {
	return c.relPrefixExact
}
func (c *datePeriodConfig) ModPrefixRegex() *datetime.Regex      { return c.modPrefix }
func (c *datePeriodConfig) ModPrefixExactRegex() *datetime.Regex { return c.modPrefixExact }

type timePeriodConfig struct {
	numberRange []*datetime.Regex
	timeOfDay   *datetime.Regex
}

func (c *timePeriodConfig) NumberRangePatterns() []*datetime.Regex { return c.numberRange }
func (c *timePeriodConfig) TimeOfDayRegex() *datetime.Regex        { return c.timeOfDay }

type dateTimeConfig struct {
	now, dateTime, timeDate, todaySuffix *datetime.Regex
}

func (c *dateTimeConfig) NowRegex() *datetime.Regex               { return c.now }
func (c *dateTimeConfig) DateTimeConnectorRegex() *datetime.Regex { return c.dateTime }
func (c *dateTimeConfig) TimeDateConnectorRegex() *datetime.Regex { return c.timeDate }
func (c *dateTimeConfig) TodaySuffixRegex() *datetime.Regex       { return c.todaySuffix }

type dateTimePeriodConfig struct {
	specificTimeOfDay, timeOfDaySuffix, connector *datetime.Regex
}

func (c *dateTimePeriodConfig) SpecificTimeOfDayRegex() *datetime.Regex {
	return c.specificTimeOfDay
}
func (c *dateTimePeriodConfig) TimeOfDaySuffixRegex() *datetime.Regex { return c.timeOfDaySuffix }
func (c *dateTimePeriodConfig) DateTimePeriodConnectorRegex() *datetime.Regex {
	return c.connector
}

type setConfig struct {
	eachUnit, periodic, setTimeConnect *datetime.Regex
	eachWeekday, eachTimeOfDay         []*datetime.Regex
}

func (c *setConfig) EachUnitRegex() *datetime.Regex           { return c.eachUnit }
func (c *setConfig) PeriodicRegex() *datetime.Regex           { return c.periodic }
func (c *setConfig) Periodic() map[string]string              { return periodic }
func (c *setConfig) EachWeekdayPatterns() []*datetime.Regex   { return c.eachWeekday }
func (c *setConfig) EachTimeOfDayPatterns() []*datetime.Regex { return c.eachTimeOfDay }
func (c *setConfig) SetTimeConnectorRegex() *datetime.Regex   { return c.setTimeConnect }

type holidayConfig struct {
	patterns []*datetime.Regex
	holidays map[string]datetime.HolidayFunc
}

func (c *holidayConfig) HolidayPatterns() []*datetime.Regex           { return c.patterns }
func (c *holidayConfig) Holidays() map[string]datetime.HolidayFunc    { return c.holidays }

type mergedConfig struct {
	suffix, prefix, numberEnding *datetime.Regex
	filters                      []datetime.AmbiguityFilter
}

func (c *mergedConfig) ModifierSuffixRegex() *datetime.Regex { return c.suffix }
func (c *mergedConfig) ModifierPrefixRegex() *datetime.Regex { return c.prefix }
func (c *mergedConfig) NumberEndingRegex() *datetime.Regex   { return c.numberEnding }
func (c *mergedConfig) AmbiguityFilters() []datetime.AmbiguityFilter {
	return c.filters
}
