package datetime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func ymd(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func TestIsValidDate(t *testing.T) {
	assert.True(t, IsValidDate(2024, 2, 29))
	assert.False(t, IsValidDate(2023, 2, 29))
	assert.False(t, IsValidDate(2024, 4, 31))
	assert.False(t, IsValidDate(2024, 13, 1))
	assert.False(t, IsValidDate(2024, 1, 0))

	assert.True(t, SafeDate(2023, 2, 29, time.UTC).IsZero())
	assert.Equal(t, ymd(2024, 2, 29), SafeDate(2024, 2, 29, time.UTC))
	assert.True(t, SafeDateTime(2024, 1, 1, 24, 0, 0, time.UTC).IsZero())
}

func TestWeekdays(t *testing.T) {
	ref := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC) // Monday

	assert.Equal(t, 1, ISOWeekday(ref))
	assert.Equal(t, 7, ISOWeekday(ymd(2024, 1, 21)))
	assert.Equal(t, ymd(2024, 1, 19), ThisWeekday(ref, 5))
	assert.Equal(t, ymd(2024, 1, 26), NextWeekday(ref, 5))
	assert.Equal(t, ymd(2024, 1, 12), LastWeekday(ref, 5))
	assert.Equal(t, ymd(2024, 1, 15), StartOfWeek(ymd(2024, 1, 21)))
}

func TestISOWeeks(t *testing.T) {
	assert.Equal(t, ymd(2024, 1, 1), MondayOfISOWeek(2024, 1, time.UTC))
	assert.Equal(t, ymd(2021, 1, 4), MondayOfISOWeek(2021, 1, time.UTC))
	assert.Equal(t, 53, ISOWeeksInYear(2020))
	assert.Equal(t, 52, ISOWeeksInYear(2021))

	assert.Equal(t, ymd(2024, 1, 1), MondayOfMonthWeek(2024, 1, 1, time.UTC))
	assert.Equal(t, ymd(2024, 1, 29), MondayOfMonthWeek(2024, 2, 1, time.UTC))
}

func TestAddMonths(t *testing.T) {
	assert.Equal(t, ymd(2024, 2, 29), AddMonths(ymd(2024, 1, 31), 1))
	assert.Equal(t, ymd(2023, 2, 28), AddMonths(ymd(2023, 1, 31), 1))
	assert.Equal(t, ymd(2023, 12, 15), AddMonths(ymd(2024, 3, 15), -3))
	assert.Equal(t, ymd(2025, 1, 15), AddMonths(ymd(2024, 1, 15), 12))
}

func TestDiffDays(t *testing.T) {
	assert.Equal(t, 60, DiffDays(ymd(2024, 1, 1), ymd(2024, 3, 1)))
	assert.Equal(t, -1, DiffDays(ymd(2024, 1, 2), ymd(2024, 1, 1)))
}

func TestHolidayRules(t *testing.T) {
	assert.Equal(t, ymd(2024, 11, 28), NthWeekdayOfMonth(2024, 11, 4, 4, time.UTC))
	assert.Equal(t, ymd(2024, 5, 27), NthWeekdayOfMonth(2024, 5, 1, -1, time.UTC))
	assert.Equal(t, ymd(2024, 9, 2), NthWeekdayOfMonth(2024, 9, 1, 1, time.UTC))

	assert.Equal(t, ymd(2024, 3, 31), EasterSunday(2024, time.UTC))
	assert.Equal(t, ymd(2025, 4, 20), EasterSunday(2025, time.UTC))
	assert.Equal(t, ymd(2000, 4, 23), EasterSunday(2000, time.UTC))
}
