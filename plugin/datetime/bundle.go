package datetime

// Bundle wires every category extractor and parser of one locale. Build it
// once and share it; all members are safe for concurrent use.
type Bundle struct {
	DurationExtractor       *DurationExtractor
	DurationParser          *DurationParser
	DateExtractor           *DateExtractor
	DateParser              *DateParser
	TimeExtractor           *TimeExtractor
	TimeParser              *TimeParser
	DatePeriodExtractor     *DatePeriodExtractor
	DatePeriodParser        *DatePeriodParser
	TimePeriodExtractor     *TimePeriodExtractor
	TimePeriodParser        *TimePeriodParser
	DateTimeExtractor       *DateTimeExtractor
	DateTimeParser          *DateTimeParser
	DateTimePeriodExtractor *DateTimePeriodExtractor
	DateTimePeriodParser    *DateTimePeriodParser
	SetExtractor            *SetExtractor
	SetParser               *SetParser
	HolidayExtractor        *HolidayExtractor
	HolidayParser           *HolidayParser
	MergedExtractor         *MergedExtractor
	MergedParser            *MergedParser
}

// NewBundle builds the category pipeline for a locale.
func NewBundle(locale Locale, opts Options) *Bundle {
	common := locale.Common()
	relative := locale.Relative()
	b := &Bundle{}

	b.DurationExtractor = NewDurationExtractor(locale.Duration())
	b.DurationParser = NewDurationParser(locale.Duration(), common, b.DurationExtractor)

	b.DateExtractor = NewDateExtractor(locale.Date(), common, relative, b.DurationExtractor, b.DurationParser)
	b.DateParser = NewDateParser(locale.Date(), common, relative, b.DurationExtractor, b.DurationParser)

	b.TimeExtractor = NewTimeExtractor(locale.Time())
	b.TimeParser = NewTimeParser(locale.Time(), common)

	b.DatePeriodExtractor = NewDatePeriodExtractor(locale.DatePeriod(), common, b.DateExtractor, b.DurationExtractor, b.DurationParser)
	b.DatePeriodParser = NewDatePeriodParser(locale.DatePeriod(), common, b.DateExtractor, b.DateParser, b.DurationParser, opts.InclusiveEndPeriod)

	b.TimePeriodExtractor = NewTimePeriodExtractor(locale.TimePeriod(), common, b.TimeExtractor)
	b.TimePeriodParser = NewTimePeriodParser(locale.TimePeriod(), common, b.TimeExtractor, b.TimeParser)

	b.DateTimeExtractor = NewDateTimeExtractor(locale.DateTime(), relative, b.DateExtractor, b.TimeExtractor, b.DurationExtractor, b.DurationParser)
	b.DateTimeParser = NewDateTimeParser(locale.DateTime(), common, relative,
		b.DateExtractor, b.DateParser, b.TimeExtractor, b.TimeParser, b.DurationExtractor, b.DurationParser)

	b.DateTimePeriodExtractor = NewDateTimePeriodExtractor(locale.DateTimePeriod(), common, locale.DatePeriod(),
		b.DateExtractor, b.TimeExtractor, b.TimePeriodExtractor, b.DateTimeExtractor, b.DurationExtractor, b.DurationParser)
	b.DateTimePeriodParser = NewDateTimePeriodParser(locale.DateTimePeriod(), common, locale.DatePeriod(), DateTimePeriodParserDeps{
		DateExtractor:       b.DateExtractor,
		DateParser:          b.DateParser,
		TimeExtractor:       b.TimeExtractor,
		TimeParser:          b.TimeParser,
		TimePeriodExtractor: b.TimePeriodExtractor,
		TimePeriodParser:    b.TimePeriodParser,
		DateTimeExtractor:   b.DateTimeExtractor,
		DateTimeParser:      b.DateTimeParser,
		DurationExtractor:   b.DurationExtractor,
		DurationParser:      b.DurationParser,
	})

	b.SetExtractor = NewSetExtractor(locale.Set(), b.TimeExtractor)
	b.SetParser = NewSetParser(locale.Set(), common, b.SetExtractor, b.TimeExtractor, b.TimeParser)

	b.HolidayExtractor = NewHolidayExtractor(locale.Holiday())
	b.HolidayParser = NewHolidayParser(locale.Holiday(), common)

	b.MergedExtractor = NewMergedExtractor(locale.Merged(), b, opts)
	b.MergedParser = NewMergedParser(locale.Merged(), b, opts)
	return b
}
