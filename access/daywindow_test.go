package access_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/refeitorio/controle-acesso/access"
)

func TestDayWindow_Boundaries(t *testing.T) {
	start, end, err := access.DayWindow("2025-10-19")
	require.NoError(t, err)

	// Both bounds anchored to the fixed -03:00 offset, regardless of the
	// host timezone: local midnight is 03:00 UTC.
	assert.Equal(t, time.Date(2025, 10, 19, 3, 0, 0, 0, time.UTC), start.UTC())
	assert.Equal(t, start.Add(24*time.Hour-time.Millisecond), end)

	_, offset := start.Zone()
	assert.Equal(t, -3*60*60, offset)
	_, offset = end.Zone()
	assert.Equal(t, -3*60*60, offset)
}

func TestDayWindow_IndependentOfHostTimezone(t *testing.T) {
	// Simulate a host running far from the canteen: the window must not
	// move.
	tokyo := time.FixedZone("JST", 9*60*60)
	before, _, err := access.DayWindow("2025-10-19")
	require.NoError(t, err)

	local := time.Local
	time.Local = tokyo
	t.Cleanup(func() { time.Local = local })

	after, _, err := access.DayWindow("2025-10-19")
	require.NoError(t, err)
	assert.True(t, before.Equal(after))
}

func TestDayWindow_InvalidDate(t *testing.T) {
	for _, bad := range []string{"", "19/10/2025", "2025-13-40", "hoje"} {
		_, _, err := access.DayWindow(bad)
		assert.Error(t, err, "date %q should be rejected", bad)
	}
}

func TestToday_UsesFixedOffset(t *testing.T) {
	today := access.Today()
	require.Len(t, today, len("2006-01-02"))

	parsed, err := time.ParseInLocation("2006-01-02", today, access.Timezone)
	require.NoError(t, err)

	// Today must be the civil date in the fixed offset, not the host's.
	want := time.Now().In(access.Timezone)
	assert.Equal(t, want.Year(), parsed.Year())
	assert.Equal(t, want.YearDay(), parsed.YearDay())
}
