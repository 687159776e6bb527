package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/vinay0094k/myteamda-withroles-mobile/internal/timesheet"
)

// entryFlags are the editable values shared by add and edit.
type entryFlags struct {
	Description  string
	Start        string
	End          string
	Hours        float64
	BreakMinutes int
	Fit          bool
}

func addEntryArgs(cmd *cobra.Command, o *entryFlags) {
	cmd.Flags().StringVarP(&o.Description, "message", "m", "", "what was worked on")
	cmd.Flags().StringVar(&o.Start, "start", "", "start time, HH:MM")
	cmd.Flags().StringVar(&o.End, "end", "", "end time, HH:MM")
	cmd.Flags().Float64Var(&o.Hours, "hours", 0, "duration in hours when no start/end is given")
	cmd.Flags().IntVar(&o.BreakMinutes, "break", 0, "break minutes, recorded but not subtracted")
	cmd.Flags().BoolVar(&o.Fit, "fit", false, "cap --hours to what is left of the day instead of failing")
}

// fitted caps a duration-only request to capped. A day with nothing left
// keeps the request so that the cap error explains the refusal.
func fitted(requested, capped float64) float64 {
	if capped <= 0 {
		return requested
	}
	return capped
}

// noteCapped tells the user their duration was cut down.
func noteCapped(p printer, requested, used float64) {
	if used < timesheet.RoundHours(requested) {
		p.note(fmt.Sprintf("capped to %s to stay within the daily limit (asked for %s)", hours(used), hours(requested)))
	}
}

// dateFlag parses --date, defaulting to today.
func dateFlag(value string, clock timesheet.Clock) (time.Time, error) {
	if value == "" || value == "today" {
		return timesheet.Today(clock), nil
	}
	if value == "yesterday" {
		return timesheet.Today(clock).AddDate(0, 0, -1), nil
	}
	d, err := timesheet.ParseDate(value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --date %q, want YYYY-MM-DD", value)
	}
	return d, nil
}

func addAdd(topLevel *cobra.Command, a *app) {
	var (
		o       entryFlags
		date    string
		project string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Log a draft entry.",
		Example: `
timesheet add --project Apollo --start 09:00 --end 10:30 -m "sprint planning"
timesheet add --project Apollo --hours 2 --date 2026-10-13 -m "code review"
timesheet add --project Apollo --hours 3 --fit -m "support"
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := dateFlag(date, a.clock)
			if err != nil {
				return err
			}
			projectID, err := resolveProject(cmd.Context(), a.projects, project)
			if err != nil {
				return err
			}
			lc, err := a.engine(cmd)
			if err != nil {
				return err
			}

			f := timesheet.Fields{
				ProjectID:     projectID,
				Description:   o.Description,
				Date:          day,
				StartTime:     trimmed(o.Start),
				EndTime:       trimmed(o.End),
				DurationHours: o.Hours,
				BreakMinutes:  o.BreakMinutes,
			}
			if o.Fit && f.StartTime == "" && f.EndTime == "" {
				f.DurationHours = fitted(o.Hours, a.validator.Clamp(a.session.Days(), day, o.Hours))
			}
			e, err := lc.Create(cmd.Context(), f)
			if err != nil {
				return err
			}
			p := printer{out: a.out}
			p.entry("added", e)
			if o.Fit {
				noteCapped(p, o.Hours, f.DurationHours)
			}
			if a.session.Phase() == timesheet.PhaseError {
				a.warnStale()
				return nil
			}
			p.note(fmt.Sprintf("%s left on %s", hours(lc.Permissions(day).Remaining), timesheet.FormatDate(day)))
			return nil
		},
	}

	addEntryArgs(cmd, &o)
	cmd.Flags().StringVar(&date, "date", "", "entry date, YYYY-MM-DD, today or yesterday (default today)")
	cmd.Flags().StringVarP(&project, "project", "p", "", "project id or name")
	topLevel.AddCommand(cmd)
}

func addEdit(topLevel *cobra.Command, a *app) {
	var (
		o          entryFlags
		clearTimes bool
	)

	cmd := &cobra.Command{
		Use:   "edit ID",
		Short: "Change a draft entry. Unset flags keep their current value.",
		Example: `
timesheet edit 5b1f... --end 11:00
timesheet edit 5b1f... --clear-times --hours 1.5
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lc, err := a.engine(cmd)
			if err != nil {
				return err
			}
			current, ok := a.session.Days().Find(args[0])
			if !ok {
				return fmt.Errorf("no entry %s in the loaded range", args[0])
			}

			changed := func(name string) bool { return cmd.Flags().Changed(name) }
			f := mergeEdit(current, o, changed, clearTimes)
			fit := o.Fit && changed("hours") && f.StartTime == "" && f.EndTime == ""
			if fit {
				f.DurationHours = fitted(f.DurationHours, a.validator.ClampReplace(a.session.Days(), current.Date, current.ID, f.DurationHours))
			}
			e, err := lc.Edit(cmd.Context(), current.ID, f)
			if err != nil {
				return err
			}
			p := printer{out: a.out}
			p.entry("updated", e)
			if fit {
				noteCapped(p, o.Hours, f.DurationHours)
			}
			a.warnStale()
			return nil
		},
	}

	addEntryArgs(cmd, &o)
	cmd.Flags().BoolVar(&clearTimes, "clear-times", false, "drop start/end and keep a plain duration")
	topLevel.AddCommand(cmd)
}

// mergeEdit overlays the changed flags on the entry's current values.
func mergeEdit(current timesheet.Entry, o entryFlags, changed func(string) bool, clearTimes bool) timesheet.EditFields {
	f := timesheet.EditFields{
		Description:   current.Description,
		StartTime:     current.StartTime,
		EndTime:       current.EndTime,
		DurationHours: current.DurationHours,
		BreakMinutes:  current.BreakMinutes,
	}
	if changed("message") {
		f.Description = o.Description
	}
	if changed("break") {
		f.BreakMinutes = o.BreakMinutes
	}
	switch {
	case clearTimes:
		f.StartTime, f.EndTime = "", ""
	case changed("start") || changed("end"):
		if changed("start") {
			f.StartTime = trimmed(o.Start)
		}
		if changed("end") {
			f.EndTime = trimmed(o.End)
		}
	}
	if changed("hours") && f.StartTime == "" && f.EndTime == "" {
		f.DurationHours = o.Hours
	}
	return f
}

func addRemove(topLevel *cobra.Command, a *app) {
	cmd := &cobra.Command{
		Use:     "rm ID",
		Aliases: []string{"delete"},
		Short:   "Delete a draft entry.",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lc, err := a.engine(cmd)
			if err != nil {
				return err
			}
			if err := lc.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "deleted %s\n", args[0])
			a.warnStale()
			return nil
		},
	}
	topLevel.AddCommand(cmd)
}

func addSubmit(topLevel *cobra.Command, a *app) {
	var date string

	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Submit every draft of one day. Submitted entries are locked.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := dateFlag(date, a.clock)
			if err != nil {
				return err
			}
			lc, err := a.engine(cmd)
			if err != nil {
				return err
			}
			n, err := lc.Submit(cmd.Context(), day)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "submitted %d %s for %s\n", n, plural(n, "entry", "entries"), timesheet.FormatDate(day))
			a.warnStale()
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "day to submit, YYYY-MM-DD, today or yesterday (default today)")
	topLevel.AddCommand(cmd)
}

// resolveProject accepts a project id or a case-insensitive active name.
func resolveProject(ctx context.Context, source timesheet.ProjectSource, ref string) (string, error) {
	ref = trimmed(ref)
	if ref == "" {
		return "", fmt.Errorf("--project is required")
	}
	projects, err := source.ListProjects(ctx)
	if err != nil {
		return "", err
	}
	var matches []timesheet.Project
	for _, p := range projects {
		if p.ID == ref {
			return p.ID, nil
		}
		if p.Active && strings.EqualFold(p.Name, ref) {
			matches = append(matches, p)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("no active project %q; see `timesheet projects`", ref)
	case 1:
		return matches[0].ID, nil
	default:
		return "", fmt.Errorf("project name %q is ambiguous; use its id", ref)
	}
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
