package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"github.com/vinay0094k/myteamda-withroles-mobile/internal/dto"
	"github.com/vinay0094k/myteamda-withroles-mobile/internal/timesheet"
)

type printer struct {
	out    io.Writer
	showID bool
}

var (
	bold  = color.New(color.Bold)
	faint = color.New(color.Faint)
	title = color.New(color.Bold, color.Underline)
)

func (p printer) title(s string) {
	_, _ = title.Fprintln(p.out, s)
}

func (p printer) note(s string) {
	_, _ = faint.Fprintln(p.out, s)
}

func (p printer) table() *uitable.Table {
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 60
	tbl.Wrap = true
	return tbl
}

func dayStatusColor(s timesheet.DayStatus) *color.Color {
	switch s {
	case timesheet.DayFullySubmitted:
		return color.New(color.FgGreen)
	case timesheet.DayPartiallySubmitted:
		return color.New(color.FgYellow)
	case timesheet.DayDraft:
		return color.New(color.FgCyan)
	default:
		return faint
	}
}

func entryTime(e timesheet.Entry) string {
	if e.HasTimes() {
		return e.StartTime + "-" + e.EndTime
	}
	return "-"
}

func hours(h float64) string {
	return fmt.Sprintf("%.1fh", h)
}

// week prints one row per weekday followed by that day's entries.
func (p printer) week(w timesheet.Window, days *timesheet.DayAggregator, lc *timesheet.Lifecycle, today time.Time) {
	p.title("Week " + w.String())

	tbl := p.table()
	header := []interface{}{bold.Sprint("Day"), bold.Sprint("Status"), bold.Sprint("Hours"), bold.Sprint("Left"), bold.Sprint("Entries")}
	if p.showID {
		header = append([]interface{}{bold.Sprint("ID")}, header...)
	}
	tbl.AddRow(header...)

	for _, d := range w.Weekdays() {
		perm := lc.Permissions(d)
		label := d.Format("Mon 02 Jan")
		if timesheet.SameDay(d, today) {
			label = bold.Sprint(label)
		}
		left := hours(perm.Remaining)
		if d.After(today) {
			left = "-"
		}
		row := []interface{}{label, dayStatusColor(perm.Status).Sprint(perm.Status), hours(perm.Hours), left, ""}
		if perm.CanSubmit {
			row[4] = faint.Sprint("ready to submit")
		}
		if p.showID {
			row = append([]interface{}{""}, row...)
		}
		tbl.AddRow(row...)

		for _, e := range days.EntriesOn(d) {
			desc := fmt.Sprintf("%s %s %s", entryTime(e), projectLabel(e), e.Description)
			if e.Status != timesheet.StatusDraft {
				desc = faint.Sprintf("%s [%s]", desc, e.Status)
			}
			line := []interface{}{"", "", hours(e.DurationHours), "", desc}
			if p.showID {
				line = append([]interface{}{e.ID}, line...)
			}
			tbl.AddRow(line...)
		}
	}
	fmt.Fprintln(p.out, tbl)
}

func projectLabel(e timesheet.Entry) string {
	if e.ProjectName != "" {
		return e.ProjectName
	}
	return e.ProjectID
}

// progress prints the week total against the target as a bar.
func (p printer) progress(pr timesheet.Progress) {
	const width = 20
	filled := pr.Percent * width / 100
	bar := strings.Repeat("#", filled) + strings.Repeat(".", width-filled)
	c := color.New(color.FgYellow)
	if pr.Percent >= 100 {
		c = color.New(color.FgGreen)
	}
	fmt.Fprintf(p.out, "\n%s %s of %s  %s\n", c.Sprintf("[%s]", bar), hours(pr.Total), hours(pr.Target), c.Sprintf("%d%%", pr.Percent))
}

func (p printer) trailing(rows []timesheet.WeekRow) {
	tbl := p.table()
	tbl.AddRow(bold.Sprint("Week"), bold.Sprint("Hours"), bold.Sprint("Drafts"), bold.Sprint("Submitted"), bold.Sprint("Target"))
	for _, r := range rows {
		tbl.AddRow(r.Window.String(), hours(r.TotalHours), r.DraftCount, r.SubmittedCount, fmt.Sprintf("%d%%", r.TargetPercent))
	}
	tbl.RightAlign(1)
	fmt.Fprintln(p.out, tbl)
}

func (p printer) report(r *dto.WeeklyReportResponse) {
	who := r.UserID
	if r.UserName != "" {
		who = r.UserName + " " + faint.Sprint(r.UserID)
	}
	p.title(fmt.Sprintf("%s (target %s)", who, hours(r.TargetHours)))
	tbl := p.table()
	tbl.AddRow(bold.Sprint("Week"), bold.Sprint("Hours"), bold.Sprint("Drafts"), bold.Sprint("Submitted"), bold.Sprint("Target"), bold.Sprint("Status"))
	for _, w := range r.Weeks {
		tbl.AddRow(w.WeekStart+".."+w.WeekEnd, hours(w.TotalHours), w.DraftCount, w.SubmittedCount, fmt.Sprintf("%d%%", w.TargetPercent), w.Status)
	}
	tbl.RightAlign(1)
	fmt.Fprintln(p.out, tbl)
}

func (p printer) projects(projects []timesheet.Project) {
	if len(projects) == 0 {
		p.note("no projects")
		return
	}
	tbl := p.table()
	tbl.AddRow(bold.Sprint("ID"), bold.Sprint("Name"), bold.Sprint("Client"))
	for _, pr := range projects {
		tbl.AddRow(pr.ID, pr.Name, pr.Client)
	}
	fmt.Fprintln(p.out, tbl)
}

// entry confirms a created or edited entry.
func (p printer) entry(verb string, e *timesheet.Entry) {
	_, _ = color.New(color.FgGreen).Fprint(p.out, verb)
	fmt.Fprintf(p.out, " %s  %s  %s  %s  %s\n",
		e.ID, timesheet.FormatDate(e.Date), entryTime(*e), hours(e.DurationHours), e.Description)
}
