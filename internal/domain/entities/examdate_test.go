package entities

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestResolveExamYear(t *testing.T) {
	ref := time.Date(2025, time.November, 20, 15, 30, 0, 0, time.UTC)

	tests := []struct {
		name     string
		monthDay string
		want     time.Time
	}{
		{name: "upcoming date stays in reference year", monthDay: "Dec 5", want: date(2025, time.December, 5)},
		{name: "passed date rolls to next year", monthDay: "Jan 15", want: date(2026, time.January, 15)},
		{name: "reference day itself stays in reference year", monthDay: "Nov 20", want: date(2025, time.November, 20)},
		{name: "yesterday rolls to next year", monthDay: "Nov 19", want: date(2026, time.November, 19)},
		{name: "zero-padded day", monthDay: "Dec 05", want: date(2025, time.December, 5)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveExamYear(tt.monthDay, ref)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveExamYear_Unparseable(t *testing.T) {
	ref := date(2025, time.November, 20)

	for _, monthDay := range []string{"", "tomorrow", "13/45", "Feb 30"} {
		t.Run(monthDay, func(t *testing.T) {
			_, err := ResolveExamYear(monthDay, ref)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrUnparseableExamDate)
		})
	}
}

func TestDaysUntil(t *testing.T) {
	today := time.Date(2025, time.November, 20, 23, 59, 0, 0, time.UTC)

	assert.Equal(t, 0, DaysUntil(date(2025, time.November, 20), today))
	assert.Equal(t, 1, DaysUntil(date(2025, time.November, 21), today))
	assert.Equal(t, 15, DaysUntil(date(2025, time.December, 5), today))
	assert.Equal(t, -1, DaysUntil(date(2025, time.November, 19), today))
}

func TestDayKey(t *testing.T) {
	assert.Equal(t, "2025-11-20", DayKey(time.Date(2025, time.November, 20, 23, 59, 59, 0, time.UTC)))
}

func TestSnapshotIsFor(t *testing.T) {
	snap := DailySnapshot{Date: "2025-11-20"}

	assert.True(t, snap.IsFor(time.Date(2025, time.November, 20, 0, 0, 1, 0, time.UTC)))
	assert.False(t, snap.IsFor(time.Date(2025, time.November, 21, 0, 0, 1, 0, time.UTC)))
}
