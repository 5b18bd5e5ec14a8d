package calendar

import "time"

const (
	// DateLayout is the storage format of Order.CleaningDate.
	DateLayout = "2006-01-02"
	// TimeLayout is the storage format of Order.StartTime.
	TimeLayout = "15:04"

	// GridCells is the fixed size of a month view: 6 full weeks.
	GridCells = 42
)

// DayCell is one slot of the month grid.
type DayCell struct {
	Date           string `json:"date"`
	IsCurrentMonth bool   `json:"is_current_month"`
}

// mondayIndex converts the native Sunday=0 weekday to Monday=0..Sunday=6.
func mondayIndex(w time.Weekday) int {
	if w == time.Sunday {
		return 6
	}
	return int(w) - 1
}

// BuildMonthGrid returns exactly 42 day cells for the given month, ordered
// Monday-first: leading cells pad the first week from the previous month,
// trailing cells pad out the grid from the following month. Out-of-range
// month values (0, 13, ...) roll over to adjacent years via time.Date
// normalization, so the function is total for any integer input.
func BuildMonthGrid(year, month int) []DayCell {
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	lead := mondayIndex(first.Weekday())

	cells := make([]DayCell, 0, GridCells)
	day := first.AddDate(0, 0, -lead)
	for len(cells) < GridCells {
		cells = append(cells, DayCell{
			Date:           day.Format(DateLayout),
			IsCurrentMonth: day.Month() == first.Month() && day.Year() == first.Year(),
		})
		day = day.AddDate(0, 0, 1)
	}
	return cells
}
