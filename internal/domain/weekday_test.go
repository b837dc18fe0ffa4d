package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeekdayConversions(t *testing.T) {
	sunday, err := WeekdayFromSundayZero(0)
	require.NoError(t, err)
	assert.Equal(t, Sunday, sunday)
	assert.Equal(t, 7, sunday.ISO())
	assert.Equal(t, 0, sunday.SundayZero())

	monday, err := WeekdayFromSundayZero(1)
	require.NoError(t, err)
	assert.Equal(t, Monday, monday)
	assert.Equal(t, 1, monday.SundayZero())

	_, err = WeekdayFromSundayZero(7)
	assert.ErrorIs(t, err, ErrInvalidWeekday)

	_, err = WeekdayFromISO(0)
	assert.ErrorIs(t, err, ErrInvalidWeekday)

	for _, w := range AllWeekdays {
		back, err := WeekdayFromSundayZero(w.SundayZero())
		require.NoError(t, err)
		assert.Equal(t, w, back)
	}
}

func TestWeekdayOf(t *testing.T) {
	// 2025-03-10 is a Monday, 2025-03-16 a Sunday
	assert.Equal(t, Monday, WeekdayOf(time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, Sunday, WeekdayOf(time.Date(2025, 3, 16, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, Saturday, WeekdayFromTime(time.Saturday))
}

func TestParseWeekday(t *testing.T) {
	for input, want := range map[string]Weekday{
		"monday": Monday,
		"Sunday": Sunday,
		"wed":    Wednesday,
		"5":      Friday,
	} {
		got, err := ParseWeekday(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, got, input)
	}

	_, err := ParseWeekday("funday")
	assert.ErrorIs(t, err, ErrInvalidWeekday)

	_, err = ParseWeekday("0")
	assert.ErrorIs(t, err, ErrInvalidWeekday)
}

func TestWeekday_JSONMapKey(t *testing.T) {
	data, err := json.Marshal(map[Weekday]int{Tuesday: 2})
	require.NoError(t, err)
	assert.JSONEq(t, `{"tuesday":2}`, string(data))

	var decoded map[Weekday]int
	require.NoError(t, json.Unmarshal([]byte(`{"friday":5}`), &decoded))
	assert.Equal(t, map[Weekday]int{Friday: 5}, decoded)
}
