package datetime_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hrygo/datetimex/plugin/datetime"
)

func TestTimeParser(t *testing.T) {
	b := testBundle(t)

	tests := []struct {
		text    string
		timex   string
		value   string
		comment datetime.Comment
	}{
		{"5pm", "T17", "17:00:00", datetime.CommentNone},
		{"5 a.m.", "T05", "05:00:00", datetime.CommentNone},
		{"12:05 pm", "T12:05", "12:05:00", datetime.CommentNone},
		{"12 am", "T00", "00:00:00", datetime.CommentNone},
		{"17:30", "T17:30", "17:30:00", datetime.CommentNone},
		{"9:15:30", "T09:15:30", "09:15:30", datetime.CommentAmPm},
		{"07:45", "T07:45", "07:45:00", datetime.CommentNone},
		{"0:30", "T00:30", "00:30:00", datetime.CommentAmPm},
		{"00:30", "T00:30", "00:30:00", datetime.CommentAmPm},
		{"quarter past midnight", "T00:15", "00:15:00", datetime.CommentNone},
		{"8 o'clock", "T08", "08:00:00", datetime.CommentNone},
		{"seven pm", "T19", "19:00:00", datetime.CommentNone},
		{"noon", "T12", "12:00:00", datetime.CommentNone},
		{"midnight", "T00", "00:00:00", datetime.CommentNone},
		{"half past 5", "T05:30", "05:30:00", datetime.CommentAmPm},
		{"quarter to 6pm", "T17:45", "17:45:00", datetime.CommentNone},
		{"10 minutes past 3 in the afternoon", "T15:10", "15:10:00", datetime.CommentNone},
		{"5ish", "T17", "17:00:00", datetime.CommentNone},
		{"noonish", "T12", "12:00:00", datetime.CommentNone},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			pr := parseWhole(t, b.TimeExtractor, b.TimeParser, tt.text)
			require.True(t, pr.Succeeded())
			assert.Equal(t, datetime.TypeTime, pr.Type)
			assert.Equal(t, tt.timex, pr.TimexStr)
			assert.Equal(t, tt.value, pr.Value.FutureResolution[datetime.KeyTime])
			assert.Equal(t, tt.comment, pr.Value.Comment)
		})
	}
}

func TestTimeExtractor_AtHour(t *testing.T) {
	b := testBundle(t)

	er := extractOne(t, b.TimeExtractor, "see you at 5")
	assert.Equal(t, "5", er.Text)
	assert.Equal(t, 11, er.Start)

	pr := b.TimeParser.Parse(er, refTime)
	require.True(t, pr.Succeeded())
	assert.Equal(t, "T05", pr.TimexStr)
	assert.Equal(t, datetime.CommentAmPm, pr.Value.Comment)
	assert.Equal(t, at(2024, 1, 15, 5, 0), pr.Value.FutureValue)
}

func TestTimeExtractor_Negative(t *testing.T) {
	b := testBundle(t)

	for _, text := range []string{
		"I have 5 apples",
		"version 2.5",
		"room 12",
	} {
		t.Run(text, func(t *testing.T) {
			assert.Empty(t, b.TimeExtractor.Extract(text, refTime))
		})
	}
}

func TestTimeParser_MinutesNotMistakenForHour(t *testing.T) {
	b := testBundle(t)

	ers := b.TimeExtractor.Extract("call at 12:05 pm", refTime)
	require.Len(t, ers, 1)
	assert.Equal(t, "12:05 pm", ers[0].Text)
}
