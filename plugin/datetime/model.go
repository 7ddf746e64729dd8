package datetime

import (
	"log/slog"
	"time"
)

// TypeNamePrefix prefixes ModelResult.TypeName.
const TypeNamePrefix = "datetimeV2."

// ModelResult is one recognized expression. End is inclusive.
type ModelResult struct {
	Start      int            `json:"start"`
	End        int            `json:"end"`
	Text       string         `json:"text"`
	TypeName   string         `json:"typeName"`
	Resolution map[string]any `json:"resolution"`
}

// Model recognizes every temporal expression in a text.
type Model struct {
	culture   string
	extractor *MergedExtractor
	parser    *MergedParser
	logger    *slog.Logger
}

// NewModel builds a model for a locale.
func NewModel(locale Locale, opts Options) *Model {
	b := NewBundle(locale, opts)
	return &Model{
		culture:   locale.Culture(),
		extractor: b.MergedExtractor,
		parser:    b.MergedParser,
		logger:    opts.logger(),
	}
}

// Culture returns the culture code the model was built for.
func (m *Model) Culture() string {
	return m.culture
}

// Parse recognizes expressions in query relative to ref. Candidates that do
// not resolve are left out.
func (m *Model) Parse(query string, ref time.Time) []ModelResult {
	var results []ModelResult
	for _, er := range m.extractor.Extract(query, ref) {
		pr := m.parser.Parse(er, ref)
		if !pr.Succeeded() || pr.Resolution == nil {
			continue
		}
		results = append(results, ModelResult{
			Start:      pr.Start,
			End:        pr.End() - 1,
			Text:       pr.Text,
			TypeName:   TypeNamePrefix + pr.Type,
			Resolution: map[string]any{"values": pr.Resolution.Values()},
		})
	}
	m.logger.Debug("datetime recognition finished",
		"culture", m.culture, "candidates", len(results), "query_len", runeLen(query))
	return results
}

// ParseResults exposes the merged parse results for callers that need the
// working values rather than the flattened resolution.
func (m *Model) ParseResults(query string, ref time.Time) []*ParseResult {
	var out []*ParseResult
	for _, er := range m.extractor.Extract(query, ref) {
		if pr := m.parser.Parse(er, ref); pr.Succeeded() {
			out = append(out, pr)
		}
	}
	return out
}
