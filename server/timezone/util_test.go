package timezone

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimezone(t *testing.T) {
	tests := []struct {
		name    string
		tz      string
		want    string
		wantErr bool
	}{
		{name: "UTC", tz: "UTC", want: "UTC"},
		{name: "empty string defaults to UTC", tz: "", want: "UTC"},
		{name: "Asia/Shanghai", tz: "Asia/Shanghai", want: "Asia/Shanghai"},
		{name: "America/New_York", tz: " America/New_York ", want: "America/New_York"},
		{name: "invalid timezone", tz: "Invalid/Timezone", want: "UTC", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc, err := ParseTimezone(tt.tz)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			require.NotNil(t, loc)
			assert.Equal(t, tt.want, loc.String())
			assert.Equal(t, !tt.wantErr, IsValidTimezone(tt.tz))
		})
	}
}

func TestParseReference(t *testing.T) {
	shanghai, err := ParseTimezone("Asia/Shanghai")
	require.NoError(t, err)

	tests := []struct {
		name  string
		value string
		loc   *time.Location
		want  time.Time
	}{
		{"rfc3339 keeps instant", "2024-01-15T02:00:00Z", shanghai, time.Date(2024, 1, 15, 10, 0, 0, 0, shanghai)},
		{"wall clock in zone", "2024-01-15 10:00", shanghai, time.Date(2024, 1, 15, 10, 0, 0, 0, shanghai)},
		{"seconds", "2024-01-15T10:00:30", time.UTC, time.Date(2024, 1, 15, 10, 0, 30, 0, time.UTC)},
		{"date only", "2024-01-15", nil, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseReference(tt.value, tt.loc)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %v", got)
			assert.Equal(t, tt.want.Location().String(), got.Location().String())
		})
	}

	_, err = ParseReference("next tuesday", time.UTC)
	assert.Error(t, err)

	now, err := ParseReference("", shanghai)
	require.NoError(t, err)
	assert.Equal(t, shanghai, now.Location())
}
