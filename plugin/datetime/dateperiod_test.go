package datetime_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hrygo/datetimex/plugin/datetime"
)

func TestDatePeriodParser(t *testing.T) {
	b := testBundle(t)

	tests := []struct {
		text   string
		timex  string
		future datetime.TimeRange
		past   datetime.TimeRange
	}{
		{"Q1 2024", "(2024-01-01,2024-04-01,P3M)",
			span(ymd(2024, 1, 1), ymd(2024, 4, 1)), span(ymd(2024, 1, 1), ymd(2024, 4, 1))},
		{"the third quarter", "(XXXX-07-01,XXXX-10-01,P3M)",
			span(ymd(2024, 7, 1), ymd(2024, 10, 1)), span(ymd(2023, 7, 1), ymd(2023, 10, 1))},
		{"last quarter", "(2023-10-01,2024-01-01,P3M)",
			span(ymd(2023, 10, 1), ymd(2024, 1, 1)), span(ymd(2023, 10, 1), ymd(2024, 1, 1))},
		{"H2 2024", "(2024-07-01,2025-01-01,P6M)",
			span(ymd(2024, 7, 1), ymd(2025, 1, 1)), span(ymd(2024, 7, 1), ymd(2025, 1, 1))},
		{"March 2024", "2024-03",
			span(ymd(2024, 3, 1), ymd(2024, 4, 1)), span(ymd(2024, 3, 1), ymd(2024, 4, 1))},
		{"March", "XXXX-03",
			span(ymd(2024, 3, 1), ymd(2024, 4, 1)), span(ymd(2023, 3, 1), ymd(2023, 4, 1))},
		{"next month", "2024-02",
			span(ymd(2024, 2, 1), ymd(2024, 3, 1)), span(ymd(2024, 2, 1), ymd(2024, 3, 1))},
		{"next week", "2024-W04",
			span(ymd(2024, 1, 22), ymd(2024, 1, 29)), span(ymd(2024, 1, 22), ymd(2024, 1, 29))},
		{"this weekend", "2024-W03-WE",
			span(ymd(2024, 1, 20), ymd(2024, 1, 22)), span(ymd(2024, 1, 20), ymd(2024, 1, 22))},
		{"last year", "2023",
			span(ymd(2023, 1, 1), ymd(2024, 1, 1)), span(ymd(2023, 1, 1), ymd(2024, 1, 1))},
		{"summer", "SU",
			span(ymd(2024, 6, 1), ymd(2024, 9, 1)), span(ymd(2023, 6, 1), ymd(2023, 9, 1))},
		{"winter 2023", "2023-WI",
			span(ymd(2023, 12, 1), ymd(2024, 3, 1)), span(ymd(2023, 12, 1), ymd(2024, 3, 1))},
		{"week 3 of 2024", "2024-W03",
			span(ymd(2024, 1, 15), ymd(2024, 1, 22)), span(ymd(2024, 1, 15), ymd(2024, 1, 22))},
		{"the first week of February 2024", "2024-02-W01",
			span(ymd(2024, 1, 29), ymd(2024, 2, 5)), span(ymd(2024, 1, 29), ymd(2024, 2, 5))},
		{"March 3-5", "(XXXX-03-03,XXXX-03-05,P2D)",
			span(ymd(2024, 3, 3), ymd(2024, 3, 5)), span(ymd(2023, 3, 3), ymd(2023, 3, 5))},
		{"from March 3 to March 5", "(XXXX-03-03,XXXX-03-05,P2D)",
			span(ymd(2024, 3, 3), ymd(2024, 3, 5)), span(ymd(2023, 3, 3), ymd(2023, 3, 5))},
		{"monday to friday", "(XXXX-WXX-1,XXXX-WXX-5,P4D)",
			span(ymd(2024, 1, 15), ymd(2024, 1, 19)), span(ymd(2024, 1, 8), ymd(2024, 1, 12))},
		{"from March 3 to March 1", "(XXXX-03-03,XXXX-03-01,P364D)",
			span(ymd(2023, 3, 3), ymd(2024, 3, 1)), span(ymd(2023, 3, 3), ymd(2024, 3, 1))},
		{"February 28-30", "(XXXX-02-28,XXXX-02-30,P2D)",
			span(datetime.MinDate, datetime.MinDate), span(datetime.MinDate, datetime.MinDate)},
		{"last 3 days", "(2024-01-12,2024-01-15,P3D)",
			span(ymd(2024, 1, 12), ymd(2024, 1, 15)), span(ymd(2024, 1, 12), ymd(2024, 1, 15))},
		{"next 2 weeks", "(2024-01-16,2024-01-30,P2W)",
			span(ymd(2024, 1, 16), ymd(2024, 1, 30)), span(ymd(2024, 1, 16), ymd(2024, 1, 30))},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			pr := parseWhole(t, b.DatePeriodExtractor, b.DatePeriodParser, tt.text)
			require.True(t, pr.Succeeded())
			assert.Equal(t, datetime.TypeDatePeriod, pr.Type)
			assert.Equal(t, tt.timex, pr.TimexStr)
			assert.Equal(t, tt.future, pr.Value.FutureValue)
			assert.Equal(t, tt.past, pr.Value.PastValue)
		})
	}
}

func TestDatePeriodParser_ModPrefix(t *testing.T) {
	b := testBundle(t)

	tests := []struct {
		text    string
		mod     string
		comment datetime.Comment
		want    datetime.TimeRange
	}{
		{"early March 2024", datetime.ModStart, datetime.CommentEarly, span(ymd(2024, 3, 1), ymd(2024, 3, 16))},
		{"mid March 2024", datetime.ModMid, datetime.CommentMid, span(ymd(2024, 3, 10), ymd(2024, 3, 21))},
		{"the end of March 2024", datetime.ModEnd, datetime.CommentLate, span(ymd(2024, 3, 16), ymd(2024, 4, 1))},
		{"late 2023", datetime.ModEnd, datetime.CommentLate, span(ymd(2023, 7, 1), ymd(2024, 1, 1))},
		{"early next week", datetime.ModStart, datetime.CommentEarly, span(ymd(2024, 1, 22), ymd(2024, 1, 25))},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			pr := parseWhole(t, b.DatePeriodExtractor, b.DatePeriodParser, tt.text)
			require.True(t, pr.Succeeded())
			assert.Equal(t, tt.mod, pr.Value.Mod)
			assert.Equal(t, tt.comment, pr.Value.Comment)
			assert.Equal(t, tt.want, pr.Value.FutureValue)
			assert.Equal(t, datetime.FormatDate(tt.want.Start), pr.Value.FutureResolution[datetime.KeyStartDate])
		})
	}
}

func TestDatePeriodParser_InclusiveEnd(t *testing.T) {
	b := newBundle(t, datetime.Options{InclusiveEndPeriod: true})

	pr := parseWhole(t, b.DatePeriodExtractor, b.DatePeriodParser, "March 3-5")
	require.True(t, pr.Succeeded())
	assert.Equal(t, "(XXXX-03-03,XXXX-03-06,P3D)", pr.TimexStr)
	assert.Equal(t, span(ymd(2024, 3, 3), ymd(2024, 3, 6)), pr.Value.FutureValue)

	pr = parseWhole(t, b.DatePeriodExtractor, b.DatePeriodParser, "from March 3 to March 5")
	require.True(t, pr.Succeeded())
	assert.Equal(t, "(XXXX-03-03,XXXX-03-06,P3D)", pr.TimexStr)
}

func TestDatePeriodExtractor_YearInContext(t *testing.T) {
	b := testBundle(t)

	er := extractOne(t, b.DatePeriodExtractor, "it happened in 2019")
	assert.Equal(t, "2019", er.Text)

	pr := b.DatePeriodParser.Parse(er, refTime)
	require.True(t, pr.Succeeded())
	assert.Equal(t, "2019", pr.TimexStr)
	assert.Equal(t, span(ymd(2019, 1, 1), ymd(2020, 1, 1)), pr.Value.FutureValue)

	assert.Empty(t, b.DatePeriodExtractor.Extract("call 2019 now", refTime))
}

func TestDatePeriodParser_InvalidRange(t *testing.T) {
	b := testBundle(t)

	er := extractOne(t, b.DatePeriodExtractor, "March 5-3")
	pr := b.DatePeriodParser.Parse(er, refTime)
	assert.False(t, pr.Succeeded())
}
