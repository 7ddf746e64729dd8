package datetime_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hrygo/datetimex/plugin/datetime"
)

func TestDurationParser(t *testing.T) {
	b := testBundle(t)

	tests := []struct {
		text    string
		timex   string
		seconds float64
	}{
		{"3 days", "P3D", 259200},
		{"2 hours and 30 minutes", "PT2H30M", 9000},
		{"1 day, 2 hours", "P1DT2H", 93600},
		{"half an hour", "PT0.5H", 1800},
		{"an hour and a half", "PT1.5H", 5400},
		{"2.5 hours", "PT2.5H", 9000},
		{"a couple of weeks", "P2W", 1209600},
		{"twenty-one days", "P21D", 1814400},
		{"6 months", "P6M", 15552000},
		{"45 secs", "PT45S", 45},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			pr := parseWhole(t, b.DurationExtractor, b.DurationParser, tt.text)
			require.True(t, pr.Succeeded())
			assert.Equal(t, datetime.TypeDuration, pr.Type)
			assert.Equal(t, tt.timex, pr.TimexStr)
			assert.Equal(t, tt.seconds, pr.Value.FutureValue)
			assert.Equal(t, pr.Value.FutureValue, pr.Value.PastValue)
		})
	}
}

func TestDurationExtractor_Separate(t *testing.T) {
	b := testBundle(t)

	ers := b.DurationExtractor.Extract("3 days or 2 weeks", refTime)
	require.Len(t, ers, 2)
	assert.Equal(t, "3 days", ers[0].Text)
	assert.Equal(t, "2 weeks", ers[1].Text)
}
