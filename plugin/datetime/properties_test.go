package datetime_test

import (
	"os"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/hrygo/datetimex/plugin/datetime"
)

var (
	concreteTimexRe  = regexp.MustCompile(`^\(?\d{4}`)
	yearlessDateRe   = regexp.MustCompile(`^XXXX-\d{2}-\d{2}$`)
	concreteDateRe   = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	concreteClockRe  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d`)
	resolutionCorpus = []string{
		"monday to friday",
		"from March 3 to March 5",
		"next week",
		"last month",
		"yesterday",
		"next friday",
		"June 2024",
		"January 20 2024",
		"March 3rd",
		"February 29",
		"January 15",
		"tomorrow at 5pm",
		"tomorrow at 5",
		"winter 2023",
		"Q1 2024",
	}
)

func corpusQueries(t *testing.T) []string {
	t.Helper()
	data, err := os.ReadFile("testdata/golden.yaml")
	require.NoError(t, err)
	var cases []goldenCase
	require.NoError(t, yaml.Unmarshal(data, &cases))
	queries := make([]string, 0, len(cases)+len(resolutionCorpus))
	for _, tc := range cases {
		queries = append(queries, tc.Query)
	}
	return append(queries, resolutionCorpus...)
}

// pointOf returns the instant a value starts at.
func pointOf(v any) (time.Time, bool) {
	switch v := v.(type) {
	case time.Time:
		return v, true
	case datetime.TimeRange:
		return v.Start, true
	}
	return time.Time{}, false
}

func sameValue(a, b any) bool {
	switch a := a.(type) {
	case time.Time:
		bt, ok := b.(time.Time)
		return ok && a.Equal(bt)
	case datetime.TimeRange:
		br, ok := b.(datetime.TimeRange)
		return ok && a.Start.Equal(br.Start) && a.End.Equal(br.End)
	}
	return a == b
}

func TestModel_ResolutionProperties(t *testing.T) {
	m := testModel(t)
	today := datetime.StartOfDay(refTime)
	checked := 0
	for _, q := range corpusQueries(t) {
		for _, pr := range m.ParseResults(q, refTime) {
			v := pr.Value
			timex := v.Timex
			name := q + "/" + pr.Text

			if concreteTimexRe.MatchString(timex) && !strings.Contains(timex, "X") {
				checked++
				assert.True(t, sameValue(v.FutureValue, v.PastValue),
					"%s: %s resolves to future %v and past %v", name, timex, v.FutureValue, v.PastValue)
			}

			if pr.Type == datetime.TypeDate && yearlessDateRe.MatchString(timex) {
				future, fok := pointOf(v.FutureValue)
				past, pok := pointOf(v.PastValue)
				require.True(t, fok && pok, name)
				if future.IsZero() {
					continue
				}
				checked++
				assert.False(t, future.Before(today), "%s: future %v before %v", name, future, today)
				assert.True(t, past.Before(today), "%s: past %v not before %v", name, past, today)
			}

			future, ok := v.FutureValue.(time.Time)
			if !ok || future.IsZero() {
				continue
			}
			switch {
			case pr.Type == datetime.TypeDate && concreteDateRe.MatchString(timex):
				checked++
				assert.Equal(t, timex, datetime.LuisDateOf(future), name)
			case pr.Type == datetime.TypeDateTime && concreteClockRe.MatchString(timex):
				checked++
				assert.True(t, strings.HasPrefix(datetime.LuisDateTimeOf(future), timex),
					"%s: %s does not prefix %s", name, timex, datetime.LuisDateTimeOf(future))
			}
		}
	}
	assert.Greater(t, checked, 10)
}
