package datetime

import (
	"log/slog"
	"strconv"
	"time"

	"github.com/dlclark/regexp2"
	"github.com/pkg/errors"
)

// DefaultMatchTimeout bounds a single pattern evaluation.
const DefaultMatchTimeout = 2 * time.Second

// Regex is a compiled locale pattern. All positions are rune offsets.
//
// Patterns may use lookbehind to demand context; such context is only
// available to extraction. Parsers match candidate text with MatchExact, which
// sees the candidate alone.
type Regex struct {
	pattern string
	re      *regexp2.Regexp
	exact   *regexp2.Regexp
	names   []string
}

// CompileRegex compiles a case-insensitive pattern with the given per-match
// timeout. A zero timeout uses DefaultMatchTimeout.
func CompileRegex(pattern string, timeout time.Duration) (*Regex, error) {
	if timeout <= 0 {
		timeout = DefaultMatchTimeout
	}
	re, err := regexp2.Compile(pattern, regexp2.IgnoreCase)
	if err != nil {
		return nil, errors.Wrapf(err, "compile pattern %q", pattern)
	}
	exact, err := regexp2.Compile(`^(?:`+pattern+`)$`, regexp2.IgnoreCase)
	if err != nil {
		return nil, errors.Wrapf(err, "compile anchored pattern %q", pattern)
	}
	re.MatchTimeout = timeout
	exact.MatchTimeout = timeout

	var names []string
	for _, name := range re.GetGroupNames() {
		if _, err := strconv.Atoi(name); err == nil {
			continue
		}
		names = append(names, name)
	}
	return &Regex{pattern: pattern, re: re, exact: exact, names: names}, nil
}

// MustCompileRegex is CompileRegex that panics on error. It is meant for
// package level pattern tables.
func MustCompileRegex(pattern string) *Regex {
	r, err := CompileRegex(pattern, 0)
	if err != nil {
		panic(err)
	}
	return r
}

// String returns the source pattern.
func (r *Regex) String() string {
	if r == nil {
		return ""
	}
	return r.pattern
}

// Group is one named capture.
type Group struct {
	Value  string
	Index  int
	Length int
}

// Match is one pattern occurrence.
type Match struct {
	Index  int
	Length int
	Value  string
	groups map[string]Group
}

// End returns the exclusive end offset.
func (m Match) End() int {
	return m.Index + m.Length
}

// Group returns the value of a named group, or "" when it did not participate.
func (m Match) Group(name string) string {
	return m.groups[name].Value
}

// GroupAt returns a named group and whether it participated.
func (m Match) GroupAt(name string) (Group, bool) {
	g, ok := m.groups[name]
	return g, ok
}

// Has reports whether a named group participated in the match.
func (m Match) Has(name string) bool {
	_, ok := m.groups[name]
	return ok
}

// FindAll returns every non-overlapping match in text. A timed out evaluation
// stops the scan and keeps the matches found so far.
func (r *Regex) FindAll(text string) []Match {
	if r == nil {
		return nil
	}
	var out []Match
	m, err := r.re.FindStringMatch(text)
	for m != nil && err == nil {
		out = append(out, r.convert(m))
		m, err = r.re.FindNextMatch(m)
	}
	if err != nil {
		slog.Warn("datetime pattern evaluation aborted", "pattern", r.pattern, "error", err)
	}
	return out
}

// Find returns the first match in text.
func (r *Regex) Find(text string) (Match, bool) {
	if r == nil {
		return Match{}, false
	}
	m, err := r.re.FindStringMatch(text)
	if err != nil {
		slog.Warn("datetime pattern evaluation aborted", "pattern", r.pattern, "error", err)
		return Match{}, false
	}
	if m == nil {
		return Match{}, false
	}
	return r.convert(m), true
}

// MatchExact matches the whole of text.
func (r *Regex) MatchExact(text string) (Match, bool) {
	if r == nil {
		return Match{}, false
	}
	m, err := r.exact.FindStringMatch(text)
	if err != nil {
		slog.Warn("datetime pattern evaluation aborted", "pattern", r.pattern, "error", err)
		return Match{}, false
	}
	if m == nil {
		return Match{}, false
	}
	return r.convert(m), true
}

// MatchString reports whether the pattern occurs in text.
func (r *Regex) MatchString(text string) bool {
	_, ok := r.Find(text)
	return ok
}

func (r *Regex) convert(m *regexp2.Match) Match {
	out := Match{Index: m.Index, Length: m.Length, Value: m.String()}
	for _, name := range r.names {
		g := m.GroupByName(name)
		if g == nil || len(g.Captures) == 0 {
			continue
		}
		if out.groups == nil {
			out.groups = make(map[string]Group, len(r.names))
		}
		out.groups[name] = Group{Value: g.String(), Index: g.Index, Length: g.Length}
	}
	return out
}

// findAllTokens collects the spans of every match of every pattern.
func findAllTokens(text string, patterns ...*Regex) []Token {
	var tokens []Token
	for _, p := range patterns {
		for _, m := range p.FindAll(text) {
			tokens = append(tokens, Token{Start: m.Index, End: m.End()})
		}
	}
	return tokens
}

// matchFirstExact tries patterns in order and returns the first that matches
// the whole of text.
func matchFirstExact(text string, patterns []*Regex) (Match, bool) {
	for _, p := range patterns {
		if m, ok := p.MatchExact(text); ok {
			return m, true
		}
	}
	return Match{}, false
}
