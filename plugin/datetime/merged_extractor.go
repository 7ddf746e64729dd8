package datetime

import (
	"log/slog"
	"time"
)

// MergedExtractor runs every category extractor and reconciles their spans
// into one disjoint, ordered list.
type MergedExtractor struct {
	config          MergedConfig
	extractors      []Extractor
	filterAmbiguity bool
	logger          *slog.Logger
}

// NewMergedExtractor returns a merged extractor over the extractors of b.
func NewMergedExtractor(config MergedConfig, b *Bundle, opts Options) *MergedExtractor {
	return &MergedExtractor{
		config: config,
		// Order decides which of two identical spans survives.
		extractors: []Extractor{
			b.DateExtractor,
			b.TimeExtractor,
			b.DurationExtractor,
			b.DatePeriodExtractor,
			b.DateTimeExtractor,
			b.TimePeriodExtractor,
			b.DateTimePeriodExtractor,
			b.SetExtractor,
			b.HolidayExtractor,
		},
		filterAmbiguity: !opts.SkipAmbiguityFilter,
		logger:          opts.logger(),
	}
}

// Extract implements Extractor.
func (e *MergedExtractor) Extract(text string, ref time.Time) []ExtractResult {
	var results []ExtractResult
	for _, ex := range e.extractors {
		for _, er := range ex.Extract(text, ref) {
			results = addTo(results, er)
		}
	}

	norm := Normalize(text)
	results = e.numberEndings(norm, text, results)
	if e.filterAmbiguity {
		results = e.filterAmbiguous(norm, results)
	}
	sortByStart(results)
	results = e.addModifiers(norm, text, results)
	sortByStart(results)
	return results
}

// addTo inserts er into dst. A candidate that is disjoint from all entries
// is appended. One that covers entries and partially overlaps none replaces
// them at the position of the first. Everything else is dropped.
func addTo(dst []ExtractResult, er ExtractResult) []ExtractResult {
	first := -1
	for i, cur := range dst {
		if !er.overlaps(cur) {
			continue
		}
		if !er.covers(cur) {
			return dst
		}
		if first < 0 {
			first = i
		}
	}
	if first < 0 {
		return append(dst, er)
	}
	out := make([]ExtractResult, 0, len(dst))
	out = append(out, dst[:first]...)
	out = append(out, er)
	for _, cur := range dst[first+1:] {
		if !er.covers(cur) {
			out = append(out, cur)
		}
	}
	return out
}

// numberEndings adds a bare time for trailing numbers such as the "4" in
// "move the 3pm meeting to 4".
func (e *MergedExtractor) numberEndings(norm, text string, results []ExtractResult) []ExtractResult {
	re := e.config.NumberEndingRegex()
	if re == nil {
		return results
	}
	out := results
	for _, er := range results {
		switch er.Type {
		case TypeDate, TypeTime, TypeDateTime:
		default:
			continue
		}
		m, ok := re.Find(runeSuffix(norm, er.End()))
		if !ok || m.Index != 0 {
			continue
		}
		g, ok := m.GroupAt("newTime")
		if !ok {
			continue
		}
		start := er.End() + g.Index
		out = addTo(out, ExtractResult{
			Start:  start,
			Length: g.Length,
			Text:   substring(text, start, g.Length),
			Type:   TypeTime,
		})
	}
	return out
}

// filterAmbiguous drops candidates whose text is a known false positive in
// the surrounding context ("good morning", "I may").
func (e *MergedExtractor) filterAmbiguous(norm string, results []ExtractResult) []ExtractResult {
	filters := e.config.AmbiguityFilters()
	if len(filters) == 0 {
		return results
	}
	out := results[:0:0]
	for _, er := range results {
		if e.ambiguous(norm, er, filters) {
			e.logger.Debug("datetime candidate dropped as ambiguous", "text", er.Text, "type", er.Type)
			continue
		}
		out = append(out, er)
	}
	return out
}

func (e *MergedExtractor) ambiguous(norm string, er ExtractResult, filters []AmbiguityFilter) bool {
	candidate := trimmed(er.Text)
	for _, f := range filters {
		if _, ok := f.Key.MatchExact(candidate); !ok {
			continue
		}
		for _, m := range f.Context.FindAll(norm) {
			if m.Index < er.End() && er.Start < m.End() {
				return true
			}
		}
	}
	return false
}

// modifierOf names the modifier a match carries.
func modifierOf(m Match) string {
	for _, mod := range []string{ModBefore, ModAfter, ModSince, ModMore, ModLess} {
		if m.Has(mod) {
			return mod
		}
	}
	return ""
}

// modifierApplies reports whether mod may qualify a candidate of typ:
// more/less qualify durations, before/after/since everything else.
func modifierApplies(mod, typ string) bool {
	switch mod {
	case ModMore, ModLess:
		return typ == TypeDuration
	case ModBefore, ModAfter, ModSince:
		return typ != TypeDuration
	}
	return false
}

// addModifiers grows candidates over a preceding modifier word, unless that
// would run into the previous candidate.
func (e *MergedExtractor) addModifiers(norm, text string, results []ExtractResult) []ExtractResult {
	for i := range results {
		er := &results[i]
		m, ok := prefixMatch(norm, er.Start, e.config.ModifierSuffixRegex())
		if !ok {
			continue
		}
		mod := modifierOf(m)
		if !modifierApplies(mod, er.Type) {
			continue
		}
		if i > 0 && results[i-1].End() > m.Index {
			continue
		}
		extra := er.Start - m.Index
		er.Start = m.Index
		er.Length += extra
		er.Text = substring(text, er.Start, er.Length)
		er.Data = ModifierMarker{Mod: mod, Length: extra}
	}
	return results
}
