// Package progress derives done/total summaries from grouped views.
package progress

import "github.com/sandeepkv93/hearth/internal/grouping"

type Summary struct {
	Done  int
	Total int
	Ratio float64
}

func summarize(done, open int) Summary {
	total := done + open
	s := Summary{Done: done, Total: total}
	if total > 0 {
		s.Ratio = float64(done) / float64(total)
	}
	return s
}

// Percent rounds the ratio to a whole percentage.
func (s Summary) Percent() int {
	return int(s.Ratio*100 + 0.5)
}

func Daily(d grouping.Daily) Summary {
	return summarize(len(d.DoneDay), len(d.OpenDay))
}

// Weekly counts week-scoped tasks plus every DAY task in the week's rows.
func Weekly(w grouping.Weekly) Summary {
	done := len(w.WeekDone)
	open := len(w.WeekOpen)
	for _, row := range w.Rows {
		done += row.DoneCount
		open += row.OpenCount
	}
	return summarize(done, open)
}

func Monthly(m grouping.Monthly) Summary {
	done := len(m.MonthDone)
	open := len(m.MonthOpen)
	for _, c := range m.DayCounts {
		done += c.Done
		open += c.Open
	}
	return summarize(done, open)
}

type Report struct {
	Daily   Summary
	Weekly  Summary
	Monthly Summary
}

func Compute(g grouping.Groups) Report {
	return Report{
		Daily:   Daily(g.Daily),
		Weekly:  Weekly(g.Weekly),
		Monthly: Monthly(g.Monthly),
	}
}
