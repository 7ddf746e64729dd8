package datetime_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hrygo/datetimex/plugin/datetime"
)

func TestHolidayParser(t *testing.T) {
	b := testBundle(t)

	tests := []struct {
		text   string
		timex  string
		future time.Time
		past   time.Time
	}{
		{"christmas", "XXXX-12-25", ymd(2024, 12, 25), ymd(2023, 12, 25)},
		{"Christmas Eve", "XXXX-12-24", ymd(2024, 12, 24), ymd(2023, 12, 24)},
		{"thanksgiving 2023", "2023-11-23", ymd(2023, 11, 23), ymd(2023, 11, 23)},
		{"easter", "XXXX-03-31", ymd(2024, 3, 31), ymd(2023, 4, 9)},
		{"last christmas", "2023-12-25", ymd(2023, 12, 25), ymd(2023, 12, 25)},
		{"mothers day 2024", "2024-05-12", ymd(2024, 5, 12), ymd(2024, 5, 12)},
		{"new year's day", "XXXX-01-01", ymd(2025, 1, 1), ymd(2024, 1, 1)},
		{"memorial day next year", "2025-05-26", ymd(2025, 5, 26), ymd(2025, 5, 26)},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			pr := parseWhole(t, b.HolidayExtractor, b.HolidayParser, tt.text)
			require.True(t, pr.Succeeded())
			assert.Equal(t, datetime.TypeDate, pr.Type)
			assert.Equal(t, tt.timex, pr.TimexStr)
			assert.Equal(t, tt.future, pr.Value.FutureValue)
			assert.Equal(t, tt.past, pr.Value.PastValue)
		})
	}
}

func TestHolidayExtractor_InSentence(t *testing.T) {
	b := testBundle(t)

	er := extractOne(t, b.HolidayExtractor, "we fly home for thanksgiving")
	assert.Equal(t, "thanksgiving", er.Text)
	assert.Equal(t, 16, er.Start)

	assert.Empty(t, b.HolidayExtractor.Extract("an ordinary day", refTime))
}
