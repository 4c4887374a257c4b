//go:build unit

package tz_test

import (
	"testing"
	"time"

	"localscout-booking/internal/pkg/errs"
	"localscout-booking/internal/pkg/tz"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConverter_ParseLocal(t *testing.T) {
	c := tz.NewConverter(tz.DefaultZone)

	tests := []struct {
		name  string
		input string
		want  time.Time
	}{
		{
			name:  "wall clock in target zone",
			input: "2025-03-10T14:00:00",
			want:  time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC),
		},
		{
			name:  "minute precision",
			input: "2025-03-10T14:00",
			want:  time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC),
		},
		{
			name:  "space separated",
			input: "2025-03-10 23:30:00",
			want:  time.Date(2025, 3, 10, 17, 30, 0, 0, time.UTC),
		},
		{
			name:  "explicit UTC is kept",
			input: "2025-03-10T14:00:00Z",
			want:  time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC),
		},
		{
			name:  "explicit offset is honoured",
			input: "2025-03-10T14:00:00+09:00",
			want:  time.Date(2025, 3, 10, 5, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := c.ParseLocal(tt.input)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "want %s, got %s", tt.want, got)
			assert.Equal(t, time.UTC, got.Location())
		})
	}

	t.Run("garbage is rejected", func(t *testing.T) {
		_, err := c.ParseLocal("next tuesday")
		require.Error(t, err)
		assert.True(t, errs.Is(err, tz.ErrInvalidLocalTime))
	})

	t.Run("empty is rejected", func(t *testing.T) {
		_, err := c.ParseLocal("  ")
		assert.True(t, errs.Is(err, tz.ErrInvalidLocalTime))
	})
}

func TestConverter_RoundTrip(t *testing.T) {
	c := tz.NewConverter("Asia/Dhaka")

	utc, err := c.ParseLocal("2025-03-10T14:00:00")
	require.NoError(t, err)

	local := c.ToLocal(utc)
	assert.Equal(t, 14, local.Hour())
	assert.Equal(t, 10, local.Day())
	assert.Equal(t, "2025-03-10T14:00:00+06:00", c.FormatLocal(utc))
}

func TestNewConverter_UnknownZoneFallsBackToUTC(t *testing.T) {
	c := tz.NewConverter("Mars/Olympus_Mons")
	assert.Equal(t, time.UTC, c.Location())

	got, err := c.ParseLocal("2025-03-10T14:00:00")
	require.NoError(t, err)
	assert.True(t, time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC).Equal(got))
}
