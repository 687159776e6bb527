package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vinay0094k/myteamda-withroles-mobile/internal/dto"
	"github.com/vinay0094k/myteamda-withroles-mobile/internal/model"
	"github.com/vinay0094k/myteamda-withroles-mobile/internal/timesheet"
)

func addWeek(topLevel *cobra.Command, a *app) {
	var (
		back   int
		showID bool
	)

	cmd := &cobra.Command{
		Use:   "week",
		Short: "Show a working week day by day.",
		Example: `
timesheet week
timesheet week --back 2
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			lc, err := a.engine(cmd)
			if err != nil {
				return err
			}

			cursor := timesheet.NewWeekCursor(a.clock, a.horizon())
			for i := 0; i < back; i++ {
				if !cursor.Prev() {
					fmt.Fprintf(a.out, "only the last %d weeks can be shown\n", a.horizon())
					break
				}
			}

			a.warnStale()
			w := cursor.Window()
			p := printer{out: a.out, showID: showID}
			p.week(w, a.session.Days(), lc, timesheet.Today(a.clock))
			p.progress(a.weekly().Progress(w))

			// the store's figure is authoritative; show it when it disagrees
			if sum, err := a.session.Summary(cmd.Context(), w.Start, w.End); err == nil {
				if local := a.weekly().TotalHours(w); sum.TotalHours != local {
					p.note(fmt.Sprintf("server total %.1fh differs from %.1fh shown", sum.TotalHours, local))
				}
			} else {
				a.logger.Debug("summary unavailable", zap.Error(err))
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&back, "back", 0, "weeks before the current one")
	cmd.Flags().BoolVarP(&showID, "show-id", "k", false, "show entry ids")
	topLevel.AddCommand(cmd)
}

func addWeeks(topLevel *cobra.Command, a *app) {
	var weeks int

	cmd := &cobra.Command{
		Use:   "weeks",
		Short: "Show hour totals of the trailing weeks.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.engine(cmd); err != nil {
				return err
			}
			n := weeks
			if n <= 0 {
				n = a.cfg.Timesheet.TrailingWeeks
			}
			printer{out: a.out}.trailing(a.weekly().Trailing(timesheet.Today(a.clock), n))
			return nil
		},
	}

	cmd.Flags().IntVar(&weeks, "weeks", 0, "number of weeks (default from config)")
	topLevel.AddCommand(cmd)
}

// weeklyReporter is implemented by stores that serve the reviewer report.
type weeklyReporter interface {
	WeeklyReport(ctx context.Context, userID string, anchor time.Time, weeks int) (*dto.WeeklyReportResponse, error)
}

func addReport(topLevel *cobra.Command, a *app) {
	var (
		userID string
		weeks  int
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Show another employee's trailing weeks (managers, HR and admins).",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !model.CanReadOthers(a.role) {
				return errors.New("the report needs a manager, hr or admin token")
			}
			reporter, ok := a.store.(weeklyReporter)
			if !ok {
				return errors.New("the configured store cannot produce reports")
			}
			if userID == "" {
				userID = a.userID
			}
			report, err := reporter.WeeklyReport(cmd.Context(), userID, timesheet.Today(a.clock), weeks)
			if err != nil {
				return err
			}
			printer{out: a.out}.report(report)
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "for", "", "employee user id")
	cmd.Flags().IntVar(&weeks, "weeks", 0, "number of weeks (server default when 0)")
	topLevel.AddCommand(cmd)
}

func addProjects(topLevel *cobra.Command, a *app) {
	cmd := &cobra.Command{
		Use:   "projects",
		Short: "List the projects hours can be logged against.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			projects, err := a.projects.ListProjects(cmd.Context())
			if err != nil {
				return err
			}
			printer{out: a.out}.projects(projects)
			return nil
		},
	}
	topLevel.AddCommand(cmd)
}

// healthChecker is implemented by stores reachable over the network.
type healthChecker interface {
	Health(ctx context.Context) error
}

func addPing(topLevel *cobra.Command, a *app) {
	cmd := &cobra.Command{
		Use:   "ping",
		Short: "Check that the timesheet server answers.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			hc, ok := a.store.(healthChecker)
			if !ok {
				fmt.Fprintln(a.out, "ok (local store)")
				return nil
			}
			if err := hc.Health(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "ok %s\n", a.cfg.Client.BaseURL)
			return nil
		},
	}
	topLevel.AddCommand(cmd)
}
