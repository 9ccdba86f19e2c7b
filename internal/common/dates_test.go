package common

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompactDateRoundTrip(t *testing.T) {
	d, err := ParseCompactDate("20250415")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, time.April, 15, 0, 0, 0, 0, time.UTC), d)
	assert.Equal(t, "20250415", FormatCompactDate(d))
}

func TestParseCompactDateRejectsGarbage(t *testing.T) {
	_, err := ParseCompactDate("2025-04-15")
	assert.Error(t, err)
}

func TestDaysSince(t *testing.T) {
	planting := time.Date(2025, time.April, 15, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 0, DaysSince(planting, planting))
	assert.Equal(t, 21, DaysSince(planting, planting.AddDate(0, 0, 21)))
	assert.Equal(t, -5, DaysSince(planting, planting.AddDate(0, 0, -5)))

	// Time of day does not shift the calendar difference.
	late := time.Date(2025, time.April, 16, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, 1, DaysSince(planting, late))
}
