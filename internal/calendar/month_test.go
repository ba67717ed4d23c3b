package calendar

import (
	"testing"
	"time"
)

func TestBuildMonthGridShape(t *testing.T) {
	for m := time.January; m <= time.December; m++ {
		anchor := New(2026, m, 15)
		cells := BuildMonthGrid(anchor)
		if len(cells) != GridCells {
			t.Fatalf("%s: expected %d cells, got %d", anchor, GridCells, len(cells))
		}
		if cells[0].Date.Weekday() != time.Monday {
			t.Fatalf("%s: first cell %s is a %s", anchor, cells[0].Date, cells[0].Date.Weekday())
		}
		first := MonthOf(anchor).FirstDay()
		inMonth := 0
		foundFirst := false
		for i, c := range cells {
			if i > 0 && c.Date != cells[i-1].Date.AddDays(1) {
				t.Fatalf("%s: cells not consecutive at %d", anchor, i)
			}
			if c.IsCurrentMonth != MonthOf(anchor).Contains(c.Date) {
				t.Fatalf("%s: wrong membership for %s", anchor, c.Date)
			}
			if c.IsCurrentMonth {
				inMonth++
			}
			if c.Date == first {
				foundFirst = c.IsCurrentMonth
			}
		}
		if !foundFirst {
			t.Fatalf("%s: first day of month not marked current", anchor)
		}
		last := MonthOf(anchor).AddMonths(1).FirstDay().AddDays(-1)
		if inMonth != last.Day {
			t.Fatalf("%s: expected %d in-month cells, got %d", anchor, last.Day, inMonth)
		}
	}
}

func TestBuildMonthGridMondayStartMonth(t *testing.T) {
	cells := BuildMonthGrid(New(2025, time.September, 20))
	if cells[0].Date != New(2025, time.September, 1) || !cells[0].IsCurrentMonth {
		t.Fatalf("expected grid to start on Sep 1 2025, got %+v", cells[0])
	}
}

func TestYearMonthAddMonths(t *testing.T) {
	ym := YearMonth{Year: 2026, Month: time.January}
	if got := ym.AddMonths(-1); got != (YearMonth{2025, time.December}) {
		t.Fatalf("unexpected previous month: %v", got)
	}
	if got := ym.AddMonths(13); got != (YearMonth{2027, time.February}) {
		t.Fatalf("unexpected month arithmetic: %v", got)
	}
	if ym.String() != "2026-01" {
		t.Fatalf("unexpected string: %s", ym.String())
	}
}
