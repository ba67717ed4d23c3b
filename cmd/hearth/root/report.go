package root

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/sandeepkv93/hearth/internal/calendar"
	"github.com/sandeepkv93/hearth/internal/grouping"
	"github.com/sandeepkv93/hearth/internal/model"
	"github.com/sandeepkv93/hearth/internal/progress"
	"github.com/sandeepkv93/hearth/internal/scope"
	"github.com/sandeepkv93/hearth/internal/storage"
)

// loadGroups fetches tasks and groups them around day. When the backend is
// unreachable the local cache is used instead.
func loadGroups(ctx context.Context, e *env, day calendar.Date, out io.Writer) (grouping.Groups, error) {
	tasks, err := e.Service.ListTasks(ctx)
	if err != nil {
		e.Logger.Warn("list tasks, using cache", "err", err)
		rows, cacheErr := e.Cache.ListTasks(ctx, storage.TaskListFilter{})
		if cacheErr != nil {
			return grouping.Groups{}, fmt.Errorf("list tasks: %w", err)
		}
		at, syncErr := e.Cache.LastSynced(ctx, storage.TasksSyncKey)
		if syncErr != nil && !errors.Is(syncErr, storage.ErrNotFound) {
			e.Logger.Warn("read cache sync mark", "err", syncErr)
		}
		fmt.Fprintln(out, cacheNote(at, syncErr))
		tasks = make([]model.Task, 0, len(rows))
		for _, row := range rows {
			tasks = append(tasks, row.Model())
		}
	}
	return grouping.Group(scope.ResolveAll(tasks), grouping.ReferenceFor(day)), nil
}

// cacheNote tells the user how old the cached snapshot is.
func cacheNote(at time.Time, err error) string {
	switch {
	case err == nil:
		return fmt.Sprintf("(offline: showing cache from %s)", at.Local().Format("2006-01-02 15:04"))
	case errors.Is(err, storage.ErrNotFound):
		return "(offline: cache never synced)"
	default:
		return "(offline: showing cache, last sync unknown)"
	}
}

func parseDay(raw string) (calendar.Date, error) {
	if strings.TrimSpace(raw) == "" {
		return calendar.Today(), nil
	}
	return calendar.ParseDate(raw)
}

func newProgressCmd() *cobra.Command {
	var date string
	cmd := &cobra.Command{
		Use:   "progress",
		Short: "Print day, week and month completion",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := parseDay(date)
			if err != nil {
				return err
			}
			e, err := openEnv(cmd.Context())
			if err != nil {
				return err
			}
			defer e.Close()

			out := cmd.OutOrStdout()
			groups, err := loadGroups(cmd.Context(), e, day, out)
			if err != nil {
				return err
			}
			report := progress.Compute(groups)
			writeSummary(out, "day "+day.String(), report.Daily)
			writeSummary(out, "week "+groups.Weekly.Week.String(), report.Weekly)
			writeSummary(out, "month "+groups.Monthly.Month.String(), report.Monthly)
			return nil
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "reference date YYYY-MM-DD (default today)")
	return cmd
}

func newWeekCmd() *cobra.Command {
	var date string
	cmd := &cobra.Command{
		Use:   "week",
		Short: "Print the week containing a date",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := parseDay(date)
			if err != nil {
				return err
			}
			e, err := openEnv(cmd.Context())
			if err != nil {
				return err
			}
			defer e.Close()

			out := cmd.OutOrStdout()
			groups, err := loadGroups(cmd.Context(), e, day, out)
			if err != nil {
				return err
			}
			writeWeek(out, groups.Weekly)
			return nil
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "any date in the week, YYYY-MM-DD (default today)")
	return cmd
}

func writeSummary(w io.Writer, label string, s progress.Summary) {
	fmt.Fprintf(w, "%-18s %3d%%  %d/%d done\n", label, s.Percent(), s.Done, s.Total)
}

func writeWeek(w io.Writer, week grouping.Weekly) {
	fmt.Fprintf(w, "%s (from %s)\n", week.Week, week.Start)
	for _, row := range week.Rows {
		fmt.Fprintf(w, "  %s %s  %d open  %d done\n", row.Date.Weekday().String()[:3], row.Date, row.OpenCount, row.DoneCount)
	}
	if len(week.WeekOpen)+len(week.WeekDone) == 0 {
		return
	}
	fmt.Fprintln(w, "this week:")
	for _, t := range week.WeekOpen {
		fmt.Fprintf(w, "  [ ] %s\n", t.Task.Text)
	}
	for _, t := range week.WeekDone {
		fmt.Fprintf(w, "  [x] %s\n", t.Task.Text)
	}
}
