package datetime_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hrygo/datetimex/plugin/datetime"
)

func TestTimePeriodParser(t *testing.T) {
	b := testBundle(t)

	tests := []struct {
		text    string
		timex   string
		start   string
		end     string
		comment datetime.Comment
	}{
		{"from 2pm to 4pm", "(T14,T16,PT2H)", "14:00:00", "16:00:00", datetime.CommentNone},
		{"2-4pm", "(T14,T16,PT2H)", "14:00:00", "16:00:00", datetime.CommentNone},
		{"between 9 and 11am", "(T09,T11,PT2H)", "09:00:00", "11:00:00", datetime.CommentNone},
		{"from 10 to 12", "(T10,T12,PT2H)", "10:00:00", "12:00:00", datetime.CommentAmPm},
		{"from 9:30am to 5pm", "(T09:30,T17,PT7H30M)", "09:30:00", "17:00:00", datetime.CommentNone},
		{"from 10pm to 2am", "(T22,T02,PT4H)", "22:00:00", "02:00:00", datetime.CommentNone},
		{"morning", "TMO", "08:00:00", "12:00:00", datetime.CommentNone},
		{"business hours", "TDT", "08:00:00", "18:00:00", datetime.CommentNone},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			pr := parseWhole(t, b.TimePeriodExtractor, b.TimePeriodParser, tt.text)
			require.True(t, pr.Succeeded())
			assert.Equal(t, datetime.TypeTimePeriod, pr.Type)
			assert.Equal(t, tt.timex, pr.TimexStr)
			assert.Equal(t, tt.start, pr.Value.FutureResolution[datetime.KeyStartTime])
			assert.Equal(t, tt.end, pr.Value.FutureResolution[datetime.KeyEndTime])
			assert.Equal(t, tt.comment, pr.Value.Comment)
		})
	}
}

func TestTimePeriodParser_CrossesMidnight(t *testing.T) {
	b := testBundle(t)

	pr := parseWhole(t, b.TimePeriodExtractor, b.TimePeriodParser, "from 10pm to 2am")
	require.True(t, pr.Succeeded())
	r, ok := pr.Value.FutureValue.(datetime.TimeRange)
	require.True(t, ok)
	assert.Equal(t, at(2024, 1, 15, 22, 0), r.Start)
	assert.Equal(t, at(2024, 1, 16, 2, 0), r.End)
}

func TestTimePeriodParser_TimePoints(t *testing.T) {
	b := testBundle(t)

	pr := parseWhole(t, b.TimePeriodExtractor, b.TimePeriodParser, "from noon to 1:30pm")
	require.True(t, pr.Succeeded())
	assert.Equal(t, "(T12,T13:30,PT1H30M)", pr.TimexStr)
}
