package datetime_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hrygo/datetimex/plugin/datetime"
)

func TestDateTimeParser(t *testing.T) {
	b := testBundle(t)

	tests := []struct {
		text   string
		timex  string
		future time.Time
		past   time.Time
	}{
		{"tomorrow at 5pm", "2024-01-16T17", at(2024, 1, 16, 17, 0), at(2024, 1, 16, 17, 0)},
		{"now", datetime.TimexPresentRef, refTime, refTime},
		{"right now", datetime.TimexPresentRef, refTime, refTime},
		{"in 2 hours", "2024-01-15T12:00:00", at(2024, 1, 15, 12, 0), at(2024, 1, 15, 12, 0)},
		{"30 minutes ago", "2024-01-15T09:30:00", at(2024, 1, 15, 9, 30), at(2024, 1, 15, 9, 30)},
		{"8 tonight", "2024-01-15T20", at(2024, 1, 15, 20, 0), at(2024, 1, 15, 20, 0)},
		{"Friday at 3pm", "XXXX-WXX-5T15", at(2024, 1, 19, 15, 0), at(2024, 1, 12, 15, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			pr := parseWhole(t, b.DateTimeExtractor, b.DateTimeParser, tt.text)
			require.True(t, pr.Succeeded())
			assert.Equal(t, datetime.TypeDateTime, pr.Type)
			assert.Equal(t, tt.timex, pr.TimexStr)
			assert.Equal(t, tt.future, pr.Value.FutureValue)
			assert.Equal(t, tt.past, pr.Value.PastValue)
		})
	}
}

func TestDateTimeParser_ResolutionStrings(t *testing.T) {
	b := testBundle(t)

	pr := parseWhole(t, b.DateTimeExtractor, b.DateTimeParser, "tomorrow at 5pm")
	require.True(t, pr.Succeeded())
	assert.Equal(t, "2024-01-16 17:00:00", pr.Value.FutureResolution[datetime.KeyDateTime])

	pr = parseWhole(t, b.DateTimeExtractor, b.DateTimeParser, "now")
	require.True(t, pr.Succeeded())
	assert.Equal(t, "2024-01-15 10:00:00", pr.Value.FutureResolution[datetime.KeyDateTime])
}

func TestDateTimeParser_RelativeSubEntity(t *testing.T) {
	b := testBundle(t)

	pr := parseWhole(t, b.DateTimeExtractor, b.DateTimeParser, "in 2 hours")
	require.True(t, pr.Succeeded())
	require.Len(t, pr.Value.SubDateTimeEntities, 1)
	sub := pr.Value.SubDateTimeEntities[0]
	assert.Equal(t, "PT2H", sub.TimexStr)
	assert.Equal(t, datetime.ModAfter, sub.Value.Mod)
}

func TestDateTimeExtractor_DaysOnlyDurationIgnored(t *testing.T) {
	b := testBundle(t)

	assert.Empty(t, b.DateTimeExtractor.Extract("3 days ago", refTime))
}
