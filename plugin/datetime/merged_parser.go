package datetime

import (
	"log/slog"
	"reflect"
	"sort"
	"strings"
	"time"
)

// Resolution slot names.
const (
	SlotResolve         = "resolve"
	SlotResolveToPast   = "resolveToPast"
	SlotResolveToFuture = "resolveToFuture"
)

// Resolution is the public form of a parse: the timex, the output type and
// named slots of role maps (value, start, end).
type Resolution struct {
	Timex   string
	Type    string
	Mod     string
	Comment Comment
	IsLunar bool
	// Slots holds "resolve", or "resolveToPast" and "resolveToFuture". With
	// CommentAmPm each slot is split into an "Am" and a "Pm" variant; Pm
	// slots carry their own timex.
	Slots map[string]map[string]string
}

var slotOrder = []string{
	SlotResolveToPast, SlotResolveToFuture, SlotResolve,
	SlotResolveToPast + "Am", SlotResolveToPast + "Pm",
	SlotResolveToFuture + "Am", SlotResolveToFuture + "Pm",
	SlotResolve + "Am", SlotResolve + "Pm",
}

// Values flattens the slots into role maps tagged with timex, type and mod.
// Duplicates are dropped.
func (r *Resolution) Values() []map[string]string {
	if r == nil {
		return nil
	}
	var out []map[string]string
	for _, name := range slotOrder {
		slot, ok := r.Slots[name]
		if !ok {
			continue
		}
		v := map[string]string{KeyTimex: r.Timex, KeyType: r.Type}
		if r.Mod != "" {
			v[KeyMod] = r.Mod
		}
		for k, val := range slot {
			v[k] = val
		}
		if !containsValue(out, v) {
			out = append(out, v)
		}
	}
	return out
}

// String renders the slots compactly, e.g.
// "resolve{value=2024-03-03}". Slots and roles are sorted.
func (r *Resolution) String() string {
	if r == nil {
		return ""
	}
	names := make([]string, 0, len(r.Slots))
	for name := range r.Slots {
		names = append(names, name)
	}
	sort.Strings(names)
	var b strings.Builder
	for i, name := range names {
		if i > 0 {
			b.WriteByte(' ')
		}
		slot := r.Slots[name]
		roles := make([]string, 0, len(slot))
		for role := range slot {
			roles = append(roles, role)
		}
		sort.Strings(roles)
		b.WriteString(name + "{")
		for j, role := range roles {
			if j > 0 {
				b.WriteByte(',')
			}
			b.WriteString(role + "=" + slot[role])
		}
		b.WriteByte('}')
	}
	return b.String()
}

func containsValue(values []map[string]string, v map[string]string) bool {
	for _, existing := range values {
		if reflect.DeepEqual(existing, v) {
			return true
		}
	}
	return false
}

// MergedParser strips an absorbed modifier, dispatches to the category
// parser and builds the public resolution.
type MergedParser struct {
	config        MergedConfig
	parsers       map[string]Parser
	dateParser    Parser
	holidayParser Parser
	logger        *slog.Logger
}

// NewMergedParser returns a merged parser over the parsers of b.
func NewMergedParser(config MergedConfig, b *Bundle, opts Options) *MergedParser {
	return &MergedParser{
		config: config,
		parsers: map[string]Parser{
			TypeTime:           b.TimeParser,
			TypeDuration:       b.DurationParser,
			TypeDatePeriod:     b.DatePeriodParser,
			TypeTimePeriod:     b.TimePeriodParser,
			TypeDateTime:       b.DateTimeParser,
			TypeDateTimePeriod: b.DateTimePeriodParser,
			TypeSet:            b.SetParser,
		},
		dateParser:    b.DateParser,
		holidayParser: b.HolidayParser,
		logger:        opts.logger(),
	}
}

// Parse implements Parser.
func (p *MergedParser) Parse(er ExtractResult, ref time.Time) *ParseResult {
	inner, mod := p.stripModifier(er)

	var pr *ParseResult
	if er.Type == TypeDate {
		pr = p.dateParser.Parse(inner, ref)
		if !pr.Succeeded() {
			pr = p.holidayParser.Parse(inner, ref)
		}
	} else if parser, ok := p.parsers[er.Type]; ok {
		pr = parser.Parse(inner, ref)
	}
	if !pr.Succeeded() {
		p.logger.Debug("datetime candidate did not resolve", "text", er.Text, "type", er.Type)
		return &ParseResult{ExtractResult: er}
	}

	pr.ExtractResult = er
	if mod != "" {
		pr.Value.Mod = mod
		pr.Type = outputType(er.Type, mod)
	}
	pr.Resolution = buildResolution(er.Type, pr.Type, pr.Value)
	pr.ResolutionStr = pr.Resolution.String()
	return pr
}

// stripModifier returns the candidate without a leading modifier word and
// the modifier it carried.
func (p *MergedParser) stripModifier(er ExtractResult) (ExtractResult, string) {
	if marker, ok := er.Data.(ModifierMarker); ok && marker.Length > 0 && marker.Length < er.Length {
		return shrinkFront(er, marker.Length), marker.Mod
	}
	m, ok := p.config.ModifierPrefixRegex().Find(Normalize(er.Text))
	if !ok || m.Index != 0 || m.Length >= er.Length {
		return er, ""
	}
	mod := modifierOf(m)
	if !modifierApplies(mod, er.Type) {
		return er, ""
	}
	return shrinkFront(er, m.Length), mod
}

func shrinkFront(er ExtractResult, n int) ExtractResult {
	return ExtractResult{
		Start:  er.Start + n,
		Length: er.Length - n,
		Text:   runeSuffix(er.Text, n),
		Type:   er.Type,
	}
}

// outputType widens a point to a period when it is bounded by before,
// after or since.
func outputType(typ, mod string) string {
	switch mod {
	case ModBefore, ModAfter, ModSince:
	default:
		return typ
	}
	switch typ {
	case TypeDate:
		return TypeDatePeriod
	case TypeTime:
		return TypeTimePeriod
	case TypeDateTime:
		return TypeDateTimePeriod
	}
	return typ
}

// buildResolution renders the slots of a resolved value. category is the
// type of the parser that resolved it, output the reported type.
func buildResolution(category, output string, v *ResolutionResult) *Resolution {
	res := &Resolution{
		Timex:   v.Timex,
		Type:    output,
		Mod:     v.Mod,
		Comment: v.Comment,
		IsLunar: v.IsLunar,
		Slots:   map[string]map[string]string{},
	}
	future := roleMap(category, v.Mod, v.FutureResolution)
	past := roleMap(category, v.Mod, v.PastResolution)
	if reflect.DeepEqual(future, past) {
		res.Slots[SlotResolve] = future
	} else {
		res.Slots[SlotResolveToPast] = past
		res.Slots[SlotResolveToFuture] = future
	}
	if v.Comment == CommentAmPm {
		splitAmPm(res)
	}
	return res
}

// roleMap turns a category resolution into value/start/end roles.
func roleMap(category, mod string, resolution map[string]string) map[string]string {
	out := map[string]string{}
	switch category {
	case TypeDate, TypeTime, TypeDateTime:
		key := map[string]string{TypeDate: KeyDate, TypeTime: KeyTime, TypeDateTime: KeyDateTime}[category]
		value, ok := resolution[key]
		if !ok {
			return out
		}
		switch mod {
		case ModBefore:
			out[KeyEnd] = value
		case ModAfter, ModSince:
			out[KeyStart] = value
		default:
			out[KeyValue] = value
		}
	case TypeDatePeriod:
		addPeriodRoles(out, resolution[KeyStartDate], resolution[KeyEndDate], mod)
	case TypeTimePeriod:
		addPeriodRoles(out, resolution[KeyStartTime], resolution[KeyEndTime], mod)
	case TypeDateTimePeriod:
		addPeriodRoles(out, resolution[KeyStartDateTime], resolution[KeyEndDateTime], mod)
	case TypeDuration:
		if value, ok := resolution[KeyDuration]; ok {
			out[KeyValue] = value
		}
	case TypeSet:
		out[KeyValue] = NotResolved
	}
	return out
}

func addPeriodRoles(out map[string]string, start, end, mod string) {
	switch mod {
	case ModBefore:
		out[KeyEnd] = start
		return
	case ModAfter:
		out[KeyStart] = end
		return
	case ModSince:
		out[KeyStart] = start
		return
	}
	if start == "" || end == "" {
		return
	}
	out[KeyStart] = start
	out[KeyEnd] = end
}

// splitAmPm replaces every slot with its Am reading and a Pm reading twelve
// hours later.
func splitAmPm(res *Resolution) {
	for _, name := range []string{SlotResolve, SlotResolveToPast, SlotResolveToFuture} {
		slot, ok := res.Slots[name]
		if !ok {
			continue
		}
		pm := map[string]string{}
		for role, value := range slot {
			pm[role] = pmValue(res.Type, value)
		}
		pm[KeyTimex] = AllStringToPm(res.Timex)
		delete(res.Slots, name)
		res.Slots[name+"Am"] = slot
		res.Slots[name+"Pm"] = pm
	}
}

func pmValue(typ, value string) string {
	switch typ {
	case TypeTime, TypeTimePeriod:
		return ToPm(value)
	case TypeDateTime, TypeDateTimePeriod:
		date, clock, ok := strings.Cut(value, " ")
		if !ok {
			return value
		}
		return date + " " + ToPm(clock)
	}
	return value
}
