// Package datetime recognizes temporal expressions in free text and resolves
// them into TIMEX strings and calendar values relative to a reference instant.
//
// The package is locale agnostic. Patterns and lexicons are supplied through
// the capability interfaces in config.go; see plugin/datetime/english for the
// shipped locale.
package datetime

import (
	"time"
)

// Category tags carried by ExtractResult.Type.
const (
	TypeDate           = "date"
	TypeTime           = "time"
	TypeDuration       = "duration"
	TypeDatePeriod     = "daterange"
	TypeTimePeriod     = "timerange"
	TypeDateTime       = "datetime"
	TypeDateTimePeriod = "datetimerange"
	TypeSet            = "set"
)

// Resolution role keys.
const (
	KeyTimex         = "timex"
	KeyType          = "type"
	KeyMod           = "Mod"
	KeyValue         = "value"
	KeyStart         = "start"
	KeyEnd           = "end"
	KeyDate          = "date"
	KeyTime          = "time"
	KeyDateTime      = "dateTime"
	KeyDuration      = "duration"
	KeySet           = "set"
	KeyStartDate     = "startDate"
	KeyEndDate       = "endDate"
	KeyStartTime     = "startTime"
	KeyEndTime       = "endTime"
	KeyStartDateTime = "startDateTime"
	KeyEndDateTime   = "endDateTime"
)

// Modifier values attached to ResolutionResult.Mod.
const (
	ModBefore = "before"
	ModAfter  = "after"
	ModSince  = "since"
	ModStart  = "start"
	ModMid    = "mid"
	ModEnd    = "end"
	ModMore   = "more"
	ModLess   = "less"
)

// NotResolved is the resolution value reported for recurring sets.
const NotResolved = "not resolved"

// Comment qualifies a resolution.
type Comment int

const (
	CommentNone Comment = iota
	// CommentAmPm marks a 12-hour clock value given without am/pm.
	CommentAmPm
	CommentEarly
	CommentMid
	CommentLate
)

func (c Comment) String() string {
	switch c {
	case CommentNone:
		return ""
	case CommentAmPm:
		return "ampm"
	case CommentEarly:
		return "early"
	case CommentMid:
		return "mid"
	case CommentLate:
		return "late"
	}
	return ""
}

// MarshalText lets Comment appear as its string form in JSON and YAML.
func (c Comment) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// Token is a raw candidate span, end exclusive.
type Token struct {
	Start int
	End   int
}

// Length returns the rune length of the token.
func (t Token) Length() int {
	return t.End - t.Start
}

// ExtractResult is one located candidate. Start and Length are rune offsets
// into the text passed to Extract.
type ExtractResult struct {
	Start  int    `json:"start"`
	Length int    `json:"length"`
	Text   string `json:"text"`
	Type   string `json:"type"`
	// Data is a category specific side channel. The merged extractor stores a
	// ModifierMarker here when it absorbed a leading modifier word.
	Data any `json:"-"`
}

// End returns the exclusive end offset.
func (er ExtractResult) End() int {
	return er.Start + er.Length
}

func (er ExtractResult) overlaps(other ExtractResult) bool {
	return er.Start < other.End() && other.Start < er.End()
}

// covers reports whether er contains other and is strictly longer.
func (er ExtractResult) covers(other ExtractResult) bool {
	return er.Start <= other.Start && er.End() >= other.End() && er.Length > other.Length
}

// ModifierMarker records a modifier word absorbed in front of an extract result.
type ModifierMarker struct {
	Mod    string
	Length int
}

// TimeRange is a resolved period. End is exclusive.
type TimeRange struct {
	Start time.Time
	End   time.Time
}

// ResolutionResult is the working value produced by a category parser.
//
// FutureValue and PastValue hold time.Time for points, TimeRange for periods,
// float64 seconds for durations and string for sets.
type ResolutionResult struct {
	Success             bool
	Timex               string
	Mod                 string
	Comment             Comment
	FutureValue         any
	PastValue           any
	FutureResolution    map[string]string
	PastResolution      map[string]string
	SubDateTimeEntities []*ParseResult
	IsLunar             bool
}

// ParseResult is an ExtractResult plus its resolved value. Value is nil iff
// parsing failed.
type ParseResult struct {
	ExtractResult
	Value         *ResolutionResult
	TimexStr      string
	ResolutionStr string
	// Resolution is filled by the merged parser only.
	Resolution *Resolution
}

// Succeeded reports whether the candidate resolved.
func (pr *ParseResult) Succeeded() bool {
	return pr != nil && pr.Value != nil && pr.Value.Success
}

func newParseResult(er ExtractResult, value *ResolutionResult) *ParseResult {
	pr := &ParseResult{ExtractResult: er}
	if value != nil && value.Success {
		pr.Value = value
		pr.TimexStr = value.Timex
	}
	return pr
}

// Parser resolves one extract result.
type Parser interface {
	Parse(er ExtractResult, ref time.Time) *ParseResult
}

// Extractor locates candidates of one category.
type Extractor interface {
	Extract(text string, ref time.Time) []ExtractResult
}
