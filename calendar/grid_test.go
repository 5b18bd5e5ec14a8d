package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBuildMonthGridShape(t *testing.T) {
	cases := []struct {
		year, month int
		daysInMonth int
	}{
		{2025, 3, 31},
		{2025, 2, 28},
		{2024, 2, 29}, // leap year
		{2025, 12, 31},
		{2025, 1, 31},
		{2025, 6, 30},
	}

	for _, tc := range cases {
		cells := BuildMonthGrid(tc.year, tc.month)
		assert.Len(t, cells, GridCells, "%d-%d", tc.year, tc.month)

		current := 0
		for _, cell := range cells {
			if cell.IsCurrentMonth {
				current++
			}
		}
		assert.Equal(t, tc.daysInMonth, current, "%d-%d current-month cells", tc.year, tc.month)
	}
}

func TestBuildMonthGridIsMondayFirstAndContiguous(t *testing.T) {
	cells := BuildMonthGrid(2025, 3)

	// March 1st 2025 is a Saturday, so the grid leads with Mon Feb 24.
	assert.Equal(t, "2025-02-24", cells[0].Date)
	assert.False(t, cells[0].IsCurrentMonth)

	prev, err := time.Parse(DateLayout, cells[0].Date)
	assert.NoError(t, err)
	assert.Equal(t, time.Monday, prev.Weekday())

	for _, cell := range cells[1:] {
		day, err := time.Parse(DateLayout, cell.Date)
		assert.NoError(t, err)
		assert.Equal(t, prev.AddDate(0, 0, 1), day, "dates must increase with no gaps")
		prev = day
	}
}

func TestBuildMonthGridYearRollover(t *testing.T) {
	// Out-of-range months normalize instead of erroring.
	assert.Equal(t, BuildMonthGrid(2025, 1), BuildMonthGrid(2024, 13))
	assert.Equal(t, BuildMonthGrid(2024, 12), BuildMonthGrid(2025, 0))

	// December grid spills into January of the next year.
	cells := BuildMonthGrid(2025, 12)
	assert.Equal(t, "2026-01-11", cells[GridCells-1].Date)
	assert.False(t, cells[GridCells-1].IsCurrentMonth)
}
