package datetime_test

import (
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hrygo/datetimex/plugin/datetime"
	"github.com/hrygo/datetimex/plugin/datetime/english"
)

var (
	modelOnce sync.Once
	model     *datetime.Model
	modelErr  error
)

func testModel(t *testing.T) *datetime.Model {
	t.Helper()
	modelOnce.Do(func() {
		var locale *english.Config
		locale, modelErr = english.New(datetime.Options{})
		if modelErr == nil {
			model = datetime.NewModel(locale, datetime.Options{})
		}
	})
	require.NoError(t, modelErr)
	return model
}

func values(t *testing.T, r datetime.ModelResult) []map[string]string {
	t.Helper()
	v, ok := r.Resolution["values"].([]map[string]string)
	require.True(t, ok, "resolution values have type %T", r.Resolution["values"])
	return v
}

func TestModel_Parse(t *testing.T) {
	m := testModel(t)

	tests := []struct {
		name     string
		query    string
		text     string
		start    int
		end      int
		typeName string
		values   []map[string]string
	}{
		{
			name: "month and ordinal day", query: "March 3rd", text: "March 3rd",
			start: 0, end: 8, typeName: "datetimeV2.date",
			values: []map[string]string{
				{"timex": "XXXX-03-03", "type": "date", "value": "2023-03-03"},
				{"timex": "XXXX-03-03", "type": "date", "value": "2024-03-03"},
			},
		},
		{
			name: "duration ago", query: "3 days ago", text: "3 days ago",
			start: 0, end: 9, typeName: "datetimeV2.date",
			values: []map[string]string{
				{"timex": "2024-01-12", "type": "date", "value": "2024-01-12"},
			},
		},
		{
			name: "clock range", query: "from 2pm to 4pm", text: "from 2pm to 4pm",
			start: 0, end: 14, typeName: "datetimeV2.timerange",
			values: []map[string]string{
				{"timex": "(T14,T16,PT2H)", "type": "timerange", "start": "14:00:00", "end": "16:00:00"},
			},
		},
		{
			name: "next weekday", query: "next Friday", text: "next Friday",
			start: 0, end: 10, typeName: "datetimeV2.date",
			values: []map[string]string{
				{"timex": "XXXX-WXX-5", "type": "date", "value": "2024-01-26"},
			},
		},
		{
			name: "quarter", query: "Q1 2024", text: "Q1 2024",
			start: 0, end: 6, typeName: "datetimeV2.daterange",
			values: []map[string]string{
				{"timex": "(2024-01-01,2024-04-01,P3M)", "type": "daterange", "start": "2024-01-01", "end": "2024-04-01"},
			},
		},
		{
			name: "bare hour", query: "at 5", text: "5",
			start: 3, end: 3, typeName: "datetimeV2.time",
			values: []map[string]string{
				{"timex": "T05", "type": "time", "value": "05:00:00"},
				{"timex": "T17", "type": "time", "value": "17:00:00"},
			},
		},
		{
			name: "before date", query: "before March 3rd", text: "before March 3rd",
			start: 0, end: 15, typeName: "datetimeV2.daterange",
			values: []map[string]string{
				{"timex": "XXXX-03-03", "type": "daterange", "Mod": "before", "end": "2023-03-03"},
				{"timex": "XXXX-03-03", "type": "daterange", "Mod": "before", "end": "2024-03-03"},
			},
		},
		{
			name: "more than duration", query: "more than 2 hours", text: "more than 2 hours",
			start: 0, end: 16, typeName: "datetimeV2.duration",
			values: []map[string]string{
				{"timex": "PT2H", "type": "duration", "Mod": "more", "value": "7200"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results := m.Parse(tt.query, refTime)
			require.Len(t, results, 1, "%+v", results)
			r := results[0]
			assert.Equal(t, tt.text, r.Text)
			assert.Equal(t, tt.start, r.Start)
			assert.Equal(t, tt.end, r.End)
			assert.Equal(t, tt.typeName, r.TypeName)
			if diff := cmp.Diff(tt.values, values(t, r)); diff != "" {
				t.Errorf("values mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestModel_Sentence(t *testing.T) {
	m := testModel(t)

	results := m.Parse("move the 3pm meeting to 4", refTime)
	require.Len(t, results, 2)
	assert.Equal(t, "3pm", results[0].Text)
	assert.Equal(t, 9, results[0].Start)
	assert.Equal(t, 11, results[0].End)
	assert.Equal(t, "4", results[1].Text)
	assert.Equal(t, 24, results[1].Start)
	assert.Equal(t, 24, results[1].End)

	assert.Empty(t, m.Parse("good morning", refTime))
	assert.Empty(t, m.Parse("", refTime))
	assert.Empty(t, m.Parse("nothing to see here", refTime))
}

func TestModel_SubEntityMod(t *testing.T) {
	m := testModel(t)

	prs := m.ParseResults("3 days ago", refTime)
	require.Len(t, prs, 1)
	require.Len(t, prs[0].Value.SubDateTimeEntities, 1)
	sub := prs[0].Value.SubDateTimeEntities[0]
	assert.Equal(t, datetime.TypeDuration, sub.Type)
	assert.Equal(t, datetime.ModBefore, sub.Value.Mod)
}

func TestModel_Idempotent(t *testing.T) {
	m := testModel(t)
	query := "call me tomorrow at 5pm or next Friday morning, every week"

	first := m.Parse(query, refTime)
	require.NotEmpty(t, first)
	if diff := cmp.Diff(first, m.Parse(query, refTime)); diff != "" {
		t.Errorf("second parse differs (-first +second):\n%s", diff)
	}
}

func TestModel_ConcurrentUse(t *testing.T) {
	m := testModel(t)
	queries := []string{"March 3rd", "from 2pm to 4pm", "3 days ago", "at 5", "every Monday at 3pm"}
	want := make([][]datetime.ModelResult, len(queries))
	for i, q := range queries {
		want[i] = m.Parse(q, refTime)
	}

	var wg sync.WaitGroup
	errs := make(chan string, 8*len(queries))
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i, q := range queries {
				if diff := cmp.Diff(want[i], m.Parse(q, refTime)); diff != "" {
					errs <- q + ": " + diff
				}
			}
		}()
	}
	wg.Wait()
	close(errs)
	for e := range errs {
		t.Error(e)
	}
}

func TestModel_Culture(t *testing.T) {
	assert.Equal(t, english.Culture, testModel(t).Culture())
}
