package datetime_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/hrygo/datetimex/plugin/datetime"
	"github.com/hrygo/datetimex/plugin/datetime/english"
)

// refTime is Monday 2024-01-15 10:00 UTC.
var refTime = time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)

var (
	bundleOnce sync.Once
	bundle     *datetime.Bundle
	bundleErr  error
)

// testBundle shares one English bundle across tests; compiling the pattern
// tables is the slow part.
func testBundle(t *testing.T) *datetime.Bundle {
	t.Helper()
	bundleOnce.Do(func() {
		var locale *english.Config
		locale, bundleErr = english.New(datetime.Options{})
		if bundleErr == nil {
			bundle = datetime.NewBundle(locale, datetime.Options{})
		}
	})
	require.NoError(t, bundleErr)
	return bundle
}

func newBundle(t *testing.T, opts datetime.Options) *datetime.Bundle {
	t.Helper()
	locale, err := english.New(opts)
	require.NoError(t, err)
	return datetime.NewBundle(locale, opts)
}

// extractOne runs ex over text and requires a single candidate.
func extractOne(t *testing.T, ex datetime.Extractor, text string) datetime.ExtractResult {
	t.Helper()
	ers := ex.Extract(text, refTime)
	require.Len(t, ers, 1, "candidates for %q: %+v", text, ers)
	return ers[0]
}

// parseWhole extracts text as one candidate spanning all of it and parses
// it.
func parseWhole(t *testing.T, ex datetime.Extractor, p datetime.Parser, text string) *datetime.ParseResult {
	t.Helper()
	er := extractOne(t, ex, text)
	require.Equal(t, text, er.Text)
	return p.Parse(er, refTime)
}

func ymd(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func at(y, m, d, h, min int) time.Time {
	return time.Date(y, time.Month(m), d, h, min, 0, 0, time.UTC)
}

func span(start, end time.Time) datetime.TimeRange {
	return datetime.TimeRange{Start: start, End: end}
}
