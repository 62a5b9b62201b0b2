package postgres

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// inWindow applies the same comparisons the birthday SQL uses, so the test
// checks membership exactly as the database would.
func inWindow(key, startKey, endKey string, wrapped bool) bool {
	if wrapped {
		return key >= startKey || key <= endKey
	}

	return key >= startKey && key <= endKey
}

func TestBirthdayWindow(t *testing.T) {
	june10 := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)

	startKey, endKey, wrapped := birthdayWindow(june10, 7)
	assert.Equal(t, "06-10", startKey)
	assert.Equal(t, "06-17", endKey)
	assert.False(t, wrapped)
}

func TestBirthdayWindow_WrapsAcrossNewYear(t *testing.T) {
	dec28 := time.Date(2024, 12, 28, 0, 0, 0, 0, time.UTC)

	startKey, endKey, wrapped := birthdayWindow(dec28, 7)
	require.Equal(t, "12-28", startKey)
	require.Equal(t, "01-04", endKey)
	require.True(t, wrapped)

	// Both sides of the boundary are selected
	assert.True(t, inWindow("12-30", startKey, endKey, wrapped))
	assert.True(t, inWindow("01-02", startKey, endKey, wrapped))
	assert.True(t, inWindow("12-28", startKey, endKey, wrapped))
	assert.True(t, inWindow("01-04", startKey, endKey, wrapped))

	// Dates outside the window on either side are not
	assert.False(t, inWindow("12-27", startKey, endKey, wrapped))
	assert.False(t, inWindow("01-05", startKey, endKey, wrapped))
	assert.False(t, inWindow("06-15", startKey, endKey, wrapped))
}

func TestBirthdayWindow_NonWrappingExcludesFarSide(t *testing.T) {
	june10 := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)

	startKey, endKey, wrapped := birthdayWindow(june10, 7)
	require.False(t, wrapped)

	assert.True(t, inWindow("06-10", startKey, endKey, wrapped))
	assert.True(t, inWindow("06-17", startKey, endKey, wrapped))
	assert.False(t, inWindow("06-09", startKey, endKey, wrapped))
	assert.False(t, inWindow("06-18", startKey, endKey, wrapped))
	// A non-wrapping window must not pick up New Year dates
	assert.False(t, inWindow("01-01", startKey, endKey, wrapped))
	assert.False(t, inWindow("12-31", startKey, endKey, wrapped))
}

func TestBirthdayWindow_LeapDayInsideWindow(t *testing.T) {
	feb25 := time.Date(2024, 2, 25, 0, 0, 0, 0, time.UTC)

	startKey, endKey, wrapped := birthdayWindow(feb25, 7)
	require.False(t, wrapped)

	assert.True(t, inWindow("02-29", startKey, endKey, wrapped))
	assert.True(t, inWindow("03-03", startKey, endKey, wrapped))
	assert.False(t, inWindow("03-04", startKey, endKey, wrapped))
}
