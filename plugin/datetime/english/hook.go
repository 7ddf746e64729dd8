package english

import (
	"strconv"
	"time"

	"github.com/hrygo/datetimex/plugin/datetime"
)

// ishHook resolves approximate times: "5ish" is 17:00, "noonish" 12:00.
// A bare hour below twelve is read as afternoon or evening.
type ishHook struct {
	pattern *datetime.Regex
	numbers map[string]float64
}

func (h ishHook) Pattern() *datetime.Regex {
	return h.pattern
}

func (h ishHook) Resolve(m datetime.Match, ref time.Time) (*datetime.ResolutionResult, bool) {
	word := m.Group("hour")
	if hour, ok := specialTimes[word]; ok {
		return datetime.ClockResult(ref, hour, 0, 0, datetime.CommentNone), true
	}
	hour, err := strconv.Atoi(word)
	if err != nil {
		v, ok := h.numbers[word]
		if !ok {
			return nil, false
		}
		hour = int(v)
	}
	if hour < 0 || hour > 12 {
		return nil, false
	}
	if hour < 12 {
		hour += 12
	}
	return datetime.ClockResult(ref, hour, 0, 0, datetime.CommentNone), true
}
