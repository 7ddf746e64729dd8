package recognizer

import (
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hrygo/datetimex/plugin/datetime"
)

func TestNearestCulture(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"en-us", "en-us", true},
		{"EN-US", "en-us", true},
		{"en_US", "en-us", true},
		{"en-gb", "en-us", true},
		{"en", "en-us", true},
		{"", DefaultCulture, true},
		{"  ", DefaultCulture, true},
		{"fr-fr", "", false},
		{"zh-cn", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := NearestCulture(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCultures(t *testing.T) {
	assert.Equal(t, []string{"en-us"}, Cultures())
}

func TestNew(t *testing.T) {
	m, err := New("en-GB", datetime.Options{})
	require.NoError(t, err)
	assert.Equal(t, "en-us", m.Culture())

	ref := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	results := m.Parse("tomorrow", ref)
	require.Len(t, results, 1)
	assert.Equal(t, "datetimeV2.date", results[0].TypeName)

	_, err = New("fr-fr", datetime.Options{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnsupportedCulture))
	assert.Equal(t, ErrUnsupportedCulture, errors.Cause(err))
}

func TestCache(t *testing.T) {
	c := NewCache()

	a, err := c.Get("en-us", datetime.Options{})
	require.NoError(t, err)
	b, err := c.Get("en-gb", datetime.Options{})
	require.NoError(t, err)
	assert.Same(t, a, b)

	inclusive, err := c.Get("en-us", datetime.Options{InclusiveEndPeriod: true})
	require.NoError(t, err)
	assert.NotSame(t, a, inclusive)

	_, err = c.Get("de-de", datetime.Options{})
	assert.True(t, errors.Is(err, ErrUnsupportedCulture))
}
