package english

import (
	"strings"
)

// Shared fragments. Templates below refer to them as {name}.
const (
	dayNum   = `(?:3[01]|[12]\d|0?[1-9])(?:st|nd|rd|th)?`
	year4    = `(?:1[89]\d{2}|20\d{2})`
	hourNum  = `(?:1[0-2]|0?[1-9])`
	hour24   = `(?:2[0-3]|1\d|0?\d)`
	minute   = `[0-5]\d`
	desc     = `(?:a\.?\s*m\.?|p\.?\s*m\.?|in\s+the\s+(?:morning|afternoon|evening)|at\s+night)`
	amDesc   = `a\.?\s*m\.?|in\s+the\s+morning`
	pmDesc   = `p\.?\s*m\.?|in\s+the\s+(?:afternoon|evening)|at\s+night`
	relWord  = `(?:this|next|last|previous|coming|upcoming|current|past)`
	noClock  = `(?!\d|:|\s*(?:a\.?\s*m\b|p\.?\s*m\b|a\.m\.|p\.m\.|o['’]?\s*clock))`
	rangeSep = `\s*(?:-|\u2013|~)\s*|\s+(?:to|till|til|until|through|thru)\s+`
)

// expander substitutes {name} placeholders with lexicon alternations.
type expander struct {
	r *strings.Replacer
}

func newExpander() expander {
	hourWords := make([]string, 0, 12)
	for i := 1; i <= 12; i++ {
		hourWords = append(hourWords, cardinals[i])
	}
	ordWords := keysOf(daysOfMonth())
	singularWeekdays := append([]string(nil), weekdayNames...)
	pluralWeekdays := make([]string, 0, len(weekdayNames))
	for _, w := range weekdayNames {
		pluralWeekdays = append(pluralWeekdays, w+"s")
	}
	abbreviated := append(append([]string(nil), weekdayNames...), "mon", "tue", "tues", "wed", "thu", "thur", "thurs", "fri", "sat", "sun")

	return expander{r: strings.NewReplacer(
		"{dayNum}", dayNum,
		"{year4}", year4,
		"{hourNum}", hourNum,
		"{hour24}", hour24,
		"{minute}", minute,
		"{desc}", desc,
		"{rel}", relWord,
		"{noClock}", noClock,
		"{rangeSep}", rangeSep,
		"{month}", alternation(keysOf(months)),
		"{fullMonth}", alternation(fullMonths),
		"{weekday}", alternation(singularWeekdays),
		"{weekdayAbbr}", alternation(abbreviated),
		"{weekdays}", alternation(pluralWeekdays),
		"{ordWord}", alternation(ordWords),
		"{hourWord}", alternation(hourWords),
		"{number}", alternation(keysOf(numbers())),
		"{unit}", alternation(keysOf(units)),
		"{holiday}", alternation(keysOf(holidays())),
		"{season}", alternation(keysOf(seasons)),
		"{periodic}", alternation(keysOf(periodic)),
		"{tod}", `(?:morning|afternoon|evening|night)`,
	)}
}

func (e expander) expand(pattern string) string {
	return e.r.Replace(pattern)
}

// Category patterns. Group names are the contract with the datetime package.
var (
	datePatterns = []string{
		`\b(?:(?<weekday>{weekdayAbbr}),?\s+)?(?<month>{month})\.?\s+(?:the\s+)?(?<day>{dayNum}|{ordWord})(?:,?\s+(?<year>{year4}))?{noClock}\b`,
		`\b(?:(?<weekday>{weekdayAbbr}),?\s+)?(?:the\s+)?(?<day>{dayNum}|{ordWord})\s+(?:of\s+)?(?<month>{month})\.?(?:,?\s+(?<year>{year4}))?\b`,
		`(?<![\d-])(?<year>\d{4})-(?<month>0?[1-9]|1[0-2])-(?<day>3[01]|[12]\d|0?[1-9])(?![\d-])`,
		`(?<![\d/])(?<month>0?[1-9]|1[0-2])/(?<day>3[01]|[12]\d|0?[1-9])(?:/(?<year>\d{4}|\d{2}))?(?![\d/])`,
	}
	implicitDatePatterns = []string{
		`(?<=\bon\s+)(?:the\s+)?(?:(?:3[01]|[12]\d|0?[1-9])(?:st|nd|rd|th)|{ordWord})\b`,
	}
	dayOfMonthPattern    = `(?:the\s+)?(?<day>(?:3[01]|[12]\d|0?[1-9])(?:st|nd|rd|th)|{ordWord})`
	specialDayPattern    = `\b(?<day>(?:the\s+)?day\s+after\s+tomorrow|(?:the\s+)?day\s+before\s+yesterday|today|tomorrow|tmr|yesterday)\b`
	relativeWeekday      = `\b(?<rel>this|next|last|previous|coming|upcoming)\s+(?<weekday>{weekday})\b`
	weekdayOfWeekPattern = `\b(?<weekday>{weekday})\s+(?:of\s+)?(?<rel>this|next|last|previous)\s+week\b`
	weekdayPattern       = `\b(?<weekday>{weekday})\b`
	durationPatterns     = []string{
		`\b(?:(?<num>\d+(?:\.\d+)?)\s*|(?<num>{number})\s+)(?<unit>{unit})(?:\s+and\s+a\s+(?<andhalf>half))?\b`,
		`\b(?<num>\d+|{number})\s+and\s+a\s+(?<andhalf>half)\s+(?<unit>{unit})\b`,
		`\b(?:(?<half>half)\s+an?|an?\s+(?<half>half))\s+(?<unit>{unit})\b`,
	}
	durationConnector = `(?:\s*,)?\s+(?:and\s+)?`

	agoPattern   = `^\s+(?:ago|before\s+now|earlier)\b`
	laterPattern = `^\s+(?:later|from\s+now|after\s+now|hence)\b`
	inPattern    = `\b(?:in|within\s+the\s+next)\s+$`

	timePatterns = []string{
		`(?<![\d:])(?<hour>{hour24}):(?<min>{minute})(?::(?<sec>{minute}))?(?:\s*(?<desc>{desc})(?!\w))?(?![\d:])`,
		`(?<![:\d])\b(?<hour>{hourNum}|{hourWord})\s*(?<desc>{desc})(?!\w)`,
		`(?<![:\d])\b(?<hour>{hourNum}|{hourWord})\s+(?<oclock>o['’]?\s*clock)(?:\s+(?<desc>{desc}))?(?!\w)`,
		`\b(?<hour>{hourNum}|{hourWord})(?=\s+(?:tonight|tonite|this\s+(?:morning|afternoon|evening)))`,
	}
	atHourPattern      = `(?<=\b(?:at|around|about|by|until|till)\s+)(?:{hourNum}|{hourWord}|1[3-9]|2[0-3])(?![\w:/]|\.\d)`
	bareHourPattern    = `(?<hour>{hour24}|{hourWord})`
	specialTimePattern = `\b(?<special>noon|midday|mid-day|midnight|mid-night)\b`
	relativeMinute     = `\b(?:(?<minword>a\s+quarter|quarter|half)|(?<minnum>[1-5]?\d|{number})\s+minutes?)\s+(?<dir>past|after|to|till|til)\s+(?<hour>{hourNum}|{hourWord}|noon|midnight)(?:\s*(?<desc>{desc}))?(?!\w)`
	ishPattern         = `\b(?<hour>{hourNum}|{hourWord}|noon|midday)\s*-?\s*ish\b`

	datePeriod = struct {
		monthDayRange, monthWithYear, quarter, halfYear, weekOfYear, oneWord []string
		season, weekOfMonth, year, yearExact                                  string
		relPrefix, relPrefixExact, modPrefix, modPrefixExact                  string
	}{
		monthDayRange: []string{
			`\b(?:from\s+)?(?<month>{month})\.?\s+(?<day1>{dayNum})(?:{rangeSep})(?<day2>{dayNum})(?:,?\s+(?<year>{year4}))?{noClock}\b`,
			`\bbetween\s+(?<month>{month})\.?\s+(?<day1>{dayNum})\s+and\s+(?<day2>{dayNum})(?:,?\s+(?<year>{year4}))?{noClock}\b`,
			`\b(?:from\s+)?(?:the\s+)?(?<day1>{dayNum})(?:{rangeSep})(?:the\s+)?(?<day2>{dayNum})\s+(?:of\s+)?(?<month>{month})\.?(?:,?\s+(?<year>{year4}))?\b`,
		},
		monthWithYear: []string{
			`\b(?<month>{month})\.?,?\s+(?:of\s+)?(?<year>{year4})\b`,
			`\b(?<month>{month})\s+(?:of\s+)?(?<yrel>this|next|last)\s+year\b`,
			`(?<![\d-])(?<year>\d{4})-(?<month>0[1-9]|1[0-2])(?![\d-])`,
		},
		quarter: []string{
			`\b(?:the\s+)?(?<ord>first|second|third|fourth|1st|2nd|3rd|4th)\s+quarter(?:\s+(?:of\s+)?(?:the\s+)?(?:(?<year>{year4})|(?<yrel>this|next|last)\s+year))?\b`,
			`\bq(?<num>[1-4])(?:\s*,?\s*(?<year>{year4}))?\b`,
			`\b(?<rel>this|next|last|previous)\s+quarter\b`,
		},
		halfYear: []string{
			`\b(?:the\s+)?(?<ord>first|second|1st|2nd)\s+half(?:\s+(?:of\s+)?(?:the\s+)?(?:(?<year>{year4})|(?<yrel>this|next|last)\s+year))?\b`,
			`\bh(?<num>[12])(?:\s*,?\s*(?<year>{year4}))?\b`,
		},
		season:      `\b(?:(?<rel>this|next|last)\s+)?(?<season>{season})(?:\s+(?:of\s+)?(?<year>{year4}))?\b`,
		weekOfMonth: `\b(?:the\s+)?(?<ord>first|second|third|fourth|fifth|last|1st|2nd|3rd|4th|5th)\s+week\s+of\s+(?:(?<month>{fullMonth})(?:\s*,?\s*(?<year>{year4}))?|(?<rel>this|next|last)\s+month)\b`,
		weekOfYear: []string{
			`\bweek\s+(?<num>5[0-3]|[1-4]\d|0?[1-9])(?:\s+(?:of\s+)?(?<year>{year4}))?\b`,
			`\b(?:the\s+)?(?<ord>{ordWord}|(?:5[0-3]|[1-4]\d|[1-9])(?:st|nd|rd|th))\s+week\s+of\s+(?:(?<year>{year4})|(?<yrel>this|next|last)\s+year)\b`,
			`\b(?<year>\d{4})-?w(?<num>5[0-3]|[0-4]\d)\b`,
		},
		year:      `(?:(?<=\b(?:in|during|since|before|after|by|until|of|year|early|late)\s+)|(?<=\bmid-))(?<year>{year4})(?![\d:]|\s*(?:a\.?m|p\.?m)\b)`,
		yearExact: `(?<year>{year4})`,
		oneWord: []string{
			`\b(?<rel>{rel})\s+(?<unit>week|month|year)\b`,
			`\b(?:(?<rel>{rel})\s+)?(?<weekend>weekend)\b`,
			`\b(?:(?<rel>this|next|last)\s+)?(?<month>{fullMonth})\b(?!\.?\s+(?:\d|the\s+\d|{ordWord}\b))`,
		},
		relPrefix:      `\b(?<rel>last|past|previous|next|coming|following|upcoming)\s+$`,
		relPrefixExact: `^(?<rel>last|past|previous|next|coming|following|upcoming)\s+`,
		modPrefix:      `\b(?:(?<early>early|(?:the\s+)?(?:beginning|start)\s+of)|(?<mid>mid|(?:the\s+)?middle\s+of)|(?<late>late|(?:the\s+)?end\s+of))(?:\s+|-)$`,
		modPrefixExact: `^(?:(?<early>early|(?:the\s+)?(?:beginning|start)\s+of)|(?<mid>mid|(?:the\s+)?middle\s+of)|(?<late>late|(?:the\s+)?end\s+of))(?:\s+|-)`,
	}

	timePeriodPatterns = []string{
		`\bfrom\s+(?<hour1>{hour24}|{hourWord})(?::(?<min1>{minute}))?(?:\s*(?<desc1>{desc}))?(?:{rangeSep})(?<hour2>{hour24}|{hourWord})(?::(?<min2>{minute}))?(?:\s*(?<desc2>{desc}))?(?!\w|\s+{unit}\b)`,
		`\bbetween\s+(?<hour1>{hour24}|{hourWord})(?::(?<min1>{minute}))?(?:\s*(?<desc1>{desc}))?\s+and\s+(?<hour2>{hour24}|{hourWord})(?::(?<min2>{minute}))?(?:\s*(?<desc2>{desc}))?(?!\w|\s+{unit}\b)`,
		`(?<![\d:-])(?<hour1>{hour24}|{hourWord})(?::(?<min1>{minute}))?(?:\s*(?<desc1>{desc}))?(?:{rangeSep})(?<hour2>{hour24}|{hourWord})(?::(?<min2>{minute}))?\s*(?<desc2>{desc})(?!\w)`,
	}
	timeOfDayPattern = `\b(?<tod>morning|afternoon|evening|night|daytime|business\s+hours|working\s+hours)\b`

	nowPattern              = `\b(?<now>right\s+now|now|at\s+the\s+moment|as\s+soon\s+as\s+possible|asap)\b`
	dateTimeConnector       = `(?:\s*,)?\s+(?:(?:at|around|by|@)\s+)?|\s*@\s*|T`
	timeDateConnector       = `(?:\s*,)?\s+(?:on\s+)?`
	todaySuffix             = `\s+(?<tod>tonight|tonite|this\s+(?:morning|afternoon|evening))\b`
	specificTimeOfDay       = `\b(?:(?<tonight>tonight|tonite)|(?<rel>this|next|last)\s+(?<tod>{tod})|(?<day>today|tomorrow|yesterday)\s+(?<tod>{tod}))\b`
	timeOfDaySuffix         = `\s+(?:in\s+the\s+)?(?<tod>{tod})\b`
	dateTimePeriodConnector = `(?:\s*,)?\s+(?:on\s+)?`
	eachUnitPattern         = `\b(?:every|each)\s+(?:(?<other>other)\s+|(?<num>\d+|{number})\s+)?(?<unit>{unit})\b`
	periodicPattern         = `\b(?<periodic>{periodic})\b`
	eachWeekdayPatterns     = []string{`\b(?:every|each)\s+(?<weekday>{weekday})\b`, `\b(?:on\s+)?(?<weekday>{weekdays})\b`}
	eachTimeOfDayPatterns   = []string{`\b(?:every|each)\s+(?<tod>{tod})\b`, `\b(?<tod>mornings|afternoons|evenings|nights)\b`}
	setTimeConnector        = `(?:\s*,)?\s+(?:(?:at|around)\s+)?`
	holidayPattern          = `\b(?:(?<rel>this|next|last)\s+)?(?<holiday>{holiday})(?:\s+(?:of\s+)?(?<year>{year4})|\s+(?<yrel>this|next|last)\s+year)?\b`
	modifierSuffix          = `\b(?:(?<before>before|prior\s+to|earlier\s+than|no\s+later\s+than)|(?<after>after|later\s+than)|(?<since>since|starting\s+from|ever\s+since)|(?<more>more\s+than|longer\s+than|over|at\s+least)|(?<less>less\s+than|shorter\s+than|under|at\s+most))\s+$`
	modifierPrefix          = `^(?:(?<before>before|prior\s+to|earlier\s+than|no\s+later\s+than)|(?<after>after|later\s+than)|(?<since>since|starting\s+from|ever\s+since)|(?<more>more\s+than|longer\s+than|over|at\s+least)|(?<less>less\s+than|shorter\s+than|under|at\s+most))\s+`
	numberEnding            = `^\s+(?:meeting|appointment|call|conference|event|class)\s+(?:to|until|till)\s+(?<newTime>{hourNum})(?![\w:])`
	rangeConnectorPattern   = `{rangeSep}`
	rangePrefixPattern      = `\b(?:from|(?<between>between))\s+$`
	andPattern              = `\s+and\s+`
	goodGreetingKey         = `morning|afternoon|evening|night`
	goodGreetingContext     = `\bgood\s+(?:morning|afternoon|evening|night)\b`
	mayKey                  = `may`
	mayContext              = `\b(?:i|you|he|she|it|we|they|this|that|which|who|there)\s+may\b`
)
