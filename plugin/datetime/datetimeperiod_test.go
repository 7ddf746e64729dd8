package datetime_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hrygo/datetimex/plugin/datetime"
)

func TestDateTimePeriodParser(t *testing.T) {
	b := testBundle(t)

	lastSecond := time.Date(2024, 1, 15, 23, 59, 59, 0, time.UTC)

	tests := []struct {
		text   string
		timex  string
		future datetime.TimeRange
		past   datetime.TimeRange
	}{
		{"tonight", "2024-01-15TNI",
			span(at(2024, 1, 15, 20, 0), lastSecond),
			span(at(2024, 1, 15, 20, 0), lastSecond)},
		{"tomorrow morning", "2024-01-16TMO",
			span(at(2024, 1, 16, 8, 0), at(2024, 1, 16, 12, 0)),
			span(at(2024, 1, 16, 8, 0), at(2024, 1, 16, 12, 0))},
		{"yesterday evening", "2024-01-14TEV",
			span(at(2024, 1, 14, 16, 0), at(2024, 1, 14, 20, 0)),
			span(at(2024, 1, 14, 16, 0), at(2024, 1, 14, 20, 0))},
		{"Friday morning", "XXXX-WXX-5TMO",
			span(at(2024, 1, 19, 8, 0), at(2024, 1, 19, 12, 0)),
			span(at(2024, 1, 12, 8, 0), at(2024, 1, 12, 12, 0))},
		{"tomorrow from 2pm to 4pm", "(2024-01-16T14,2024-01-16T16,PT2H)",
			span(at(2024, 1, 16, 14, 0), at(2024, 1, 16, 16, 0)),
			span(at(2024, 1, 16, 14, 0), at(2024, 1, 16, 16, 0))},
		{"last 3 hours", "(2024-01-15T07:00:00,2024-01-15T10:00:00,PT3H)",
			span(at(2024, 1, 15, 7, 0), refTime),
			span(at(2024, 1, 15, 7, 0), refTime)},
		{"next 30 minutes", "(2024-01-15T10:00:00,2024-01-15T10:30:00,PT30M)",
			span(refTime, at(2024, 1, 15, 10, 30)),
			span(refTime, at(2024, 1, 15, 10, 30))},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			pr := parseWhole(t, b.DateTimePeriodExtractor, b.DateTimePeriodParser, tt.text)
			require.True(t, pr.Succeeded())
			assert.Equal(t, datetime.TypeDateTimePeriod, pr.Type)
			assert.Equal(t, tt.timex, pr.TimexStr)
			assert.Equal(t, tt.future, pr.Value.FutureValue)
			assert.Equal(t, tt.past, pr.Value.PastValue)
		})
	}
}

func TestDateTimePeriodParser_ResolutionStrings(t *testing.T) {
	b := testBundle(t)

	pr := parseWhole(t, b.DateTimePeriodExtractor, b.DateTimePeriodParser, "tonight")
	require.True(t, pr.Succeeded())
	assert.Equal(t, map[string]string{
		datetime.KeyStartDateTime: "2024-01-15 20:00:00",
		datetime.KeyEndDateTime:   "2024-01-15 23:59:59",
	}, pr.Value.FutureResolution)
}
