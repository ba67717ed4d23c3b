package calendar

import (
	"fmt"
	"time"
)

const GridCells = 42

type YearMonth struct {
	Year  int
	Month time.Month
}

func MonthOf(d Date) YearMonth {
	return YearMonth{Year: d.Year, Month: d.Month}
}

func (ym YearMonth) FirstDay() Date {
	return New(ym.Year, ym.Month, 1)
}

func (ym YearMonth) Contains(d Date) bool {
	return d.Year == ym.Year && d.Month == ym.Month
}

func (ym YearMonth) AddMonths(n int) YearMonth {
	return MonthOf(FromTime(time.Date(ym.Year, ym.Month+time.Month(n), 1, 0, 0, 0, 0, time.UTC)))
}

func (ym YearMonth) String() string {
	return fmt.Sprintf("%04d-%02d", ym.Year, int(ym.Month))
}

type MonthCell struct {
	Date           Date
	IsCurrentMonth bool
}

// BuildMonthGrid returns six Monday-start weeks covering anchor's month.
// A month never spans more than six weeks, so the grid always fits.
func BuildMonthGrid(anchor Date) []MonthCell {
	month := MonthOf(anchor)
	start := StartOfWeekMonday(month.FirstDay())
	cells := make([]MonthCell, 0, GridCells)
	for i := 0; i < GridCells; i++ {
		day := start.AddDays(i)
		cells = append(cells, MonthCell{Date: day, IsCurrentMonth: month.Contains(day)})
	}
	return cells
}
