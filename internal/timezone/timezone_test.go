package timezone

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocation_FallsBackToDefault(t *testing.T) {
	assert.Equal(t, DefaultTimezone, Location("").String())
	assert.Equal(t, DefaultTimezone, Location("Not/AZone").String())
	assert.Equal(t, "UTC", Location("UTC").String())
}

func TestNormalizeTimestamp(t *testing.T) {
	cordoba := Location(DefaultTimezone)
	want := time.Date(2025, 11, 20, 13, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		raw  string
		want time.Time
	}{
		{"rfc3339 utc", "2025-11-20T13:00:00Z", want},
		{"rfc3339 with offset", "2025-11-20T10:00:00-03:00", want},
		{"python isoformat with offset", "2025-11-20T10:00:00.000000-03:00", want},
		{"python isoformat naive", "2025-11-20T10:00:00.000000", want},
		{"naive without fraction", "2025-11-20T10:00:00", want},
		{"space separated naive", "2025-11-20 10:00:00", want},
		{"space separated with offset", "2025-11-20 13:00:00+00:00", want},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeTimestamp(tt.raw, cordoba)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %s", got)
			assert.Equal(t, time.UTC, got.Location())
		})
	}
}

func TestNormalizeTimestamp_Invalid(t *testing.T) {
	for _, raw := range []string{"", "   ", "ayer", "20/11/2025 10:00"} {
		_, err := NormalizeTimestamp(raw, time.UTC)
		assert.Error(t, err, raw)
	}
}
