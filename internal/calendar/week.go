package calendar

import (
	"fmt"
	"time"
)

type ISOWeek struct {
	Year int
	Week int
}

func (w ISOWeek) String() string {
	return fmt.Sprintf("%04d-W%02d", w.Year, w.Week)
}

// isoWeekdayIndex maps Monday..Sunday to 0..6.
func isoWeekdayIndex(d Date) int {
	return (int(d.Weekday()) + 6) % 7
}

func StartOfWeekMonday(d Date) Date {
	return d.AddDays(-isoWeekdayIndex(d))
}

// ISOWeekOf identifies the week by its Thursday; the Thursday's year is the
// ISO year, which is how 2024-12-30 lands in 2025-W01.
func ISOWeekOf(d Date) ISOWeek {
	thursday := d.AddDays(3 - isoWeekdayIndex(d))
	return ISOWeek{
		Year: thursday.Year,
		Week: (thursday.YearDay()-1)/7 + 1,
	}
}

// MondayOfISOWeek starts from Jan 4, which always falls in week 1.
func MondayOfISOWeek(year, week int) Date {
	jan4 := New(year, time.January, 4)
	return StartOfWeekMonday(jan4).AddDays(7 * (week - 1))
}

// WeeksInYear returns 52 or 53. Dec 28 is always in the last ISO week.
func WeeksInYear(year int) int {
	return ISOWeekOf(New(year, time.December, 28)).Week
}

// WeekDates returns the seven dates Monday..Sunday of the week containing d.
func WeekDates(d Date) []Date {
	start := StartOfWeekMonday(d)
	out := make([]Date, 0, 7)
	for i := 0; i < 7; i++ {
		out = append(out, start.AddDays(i))
	}
	return out
}
