package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/vinay0094k/myteamda-withroles-mobile/internal/dto"
	"github.com/vinay0094k/myteamda-withroles-mobile/internal/model"
	"github.com/vinay0094k/myteamda-withroles-mobile/internal/repository"
	"github.com/vinay0094k/myteamda-withroles-mobile/internal/timesheet"
)

// ── Export errors ──

var (
	ErrExportNoEntries    = errors.New("No timesheet entries in the requested range")
	ErrExportGenerateFail = errors.New("Failed to generate export file")
)

// ExportService renders timesheets as downloadable files.
//
//   - WeeklyWorkbook: one sheet per employee laid out as the weekly
//     employee timesheet (header block, then one row per worked day)
//   - Calendar: the caller's entries as an iCalendar feed
type ExportService interface {
	WeeklyWorkbook(ctx context.Context, actor Actor, req *dto.ExportRequest) (*bytes.Buffer, string, error)
	Calendar(ctx context.Context, actor Actor, req *dto.DateRangeRequest) ([]byte, string, error)
}

type exportService struct {
	repo     *repository.Repository
	location *time.Location
	logger   *zap.Logger
}

// NewExportService creates an ExportService; loc anchors clock times in the
// calendar feed.
func NewExportService(repo *repository.Repository, loc *time.Location, logger *zap.Logger) ExportService {
	if loc == nil {
		loc = time.UTC
	}
	return &exportService{repo: repo, location: loc, logger: logger}
}

// ═══════════════════════════════════════════════════════════
// WeeklyWorkbook
// ═══════════════════════════════════════════════════════════
//
// Sheet layout per employee:
//   row 1  month of the range start (OCTOBER)
//   row 2  Name:                       <first last>
//   row 3  Time Period (dd-mm-yyyy):   <from> to <to>
//   row 4  Number of Hrs in the week:  <total>
//   row 6  table header
//   row 7+ one row per day: date, day hours, hours spent, activities

type dayBlock struct {
	date       time.Time
	hours      []float64
	activities []string
}

func (s *exportService) WeeklyWorkbook(ctx context.Context, actor Actor, req *dto.ExportRequest) (*bytes.Buffer, string, error) {
	from, to, err := parseRange(req.StartDate, req.EndDate)
	if err != nil {
		return nil, "", err
	}
	if req.UserID != "" {
		if _, err := targetUser(actor, req.UserID); err != nil {
			return nil, "", err
		}
	} else if !model.CanReadOthers(actor.Role) {
		return nil, "", ErrForbiddenUser
	}

	entries, err := s.repo.Timesheet.ListForExport(ctx, repository.TimesheetFilter{
		UserID: req.UserID,
		From:   from,
		To:     to,
		Status: req.Status,
	})
	if err != nil {
		s.logger.Error("load export entries failed", zap.Error(err))
		return nil, "", err
	}
	if len(entries) == 0 {
		return nil, "", ErrExportNoEntries
	}

	// group by user in first-seen order
	var order []string
	byUser := make(map[string][]model.TimesheetEntry)
	for _, e := range entries {
		if _, ok := byUser[e.UserID]; !ok {
			order = append(order, e.UserID)
		}
		byUser[e.UserID] = append(byUser[e.UserID], e)
	}

	f := excelize.NewFile()
	defer f.Close()

	labelStyle, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	wrapStyle, _ := f.NewStyle(&excelize.Style{Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"}})

	usedNames := make(map[string]bool)
	for i, userID := range order {
		rows := byUser[userID]
		user := rows[0].User

		sheet := sheetName(user, userID, usedNames)
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sheet); err != nil {
				return nil, "", s.generateFailed(err)
			}
		} else if _, err := f.NewSheet(sheet); err != nil {
			return nil, "", s.generateFailed(err)
		}

		days := groupByDay(rows)
		hours := make([]float64, 0, len(rows))
		for _, d := range days {
			hours = append(hours, d.hours...)
		}

		name := userID
		if user != nil {
			name = user.FullName()
		}

		f.SetColWidth(sheet, "A", "A", 28)
		f.SetColWidth(sheet, "B", "C", 12)
		f.SetColWidth(sheet, "D", "D", 70)
		f.SetColWidth(sheet, "E", "F", 18)

		f.SetCellValue(sheet, "A1", strings.ToUpper(from.Month().String()))
		f.SetCellValue(sheet, "A2", "Name:")
		f.SetCellValue(sheet, "B2", name)
		f.SetCellValue(sheet, "A3", "Time Period (dd-mm-yyyy):")
		f.SetCellValue(sheet, "B3", fmt.Sprintf("%s to %s", from.Format("02-01-2006"), to.Format("02-01-2006")))
		f.SetCellValue(sheet, "A4", "Number of Hrs in the week:")
		f.SetCellValue(sheet, "B4", timesheet.SumHours(hours...))
		f.SetCellStyle(sheet, "A1", "A4", labelStyle)

		header := []interface{}{"Date (dd-mm-yyyy)", "Day Hours", "Hours Spent", "Activity", "Comments (If any)", "Has Blocker"}
		if err := f.SetSheetRow(sheet, "A6", &header); err != nil {
			return nil, "", s.generateFailed(err)
		}
		f.SetCellStyle(sheet, "A6", "F6", headerStyle)

		row := 7
		for _, d := range days {
			total := timesheet.SumHours(d.hours...)
			values := []interface{}{
				d.date.Format("02-01-2006"),
				total,
				total,
				strings.Join(d.activities, "\n"),
				"",
				"",
			}
			if err := f.SetSheetRow(sheet, cell("A", row), &values); err != nil {
				return nil, "", s.generateFailed(err)
			}
			f.SetCellStyle(sheet, cell("D", row), cell("D", row), wrapStyle)
			row++
		}
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		return nil, "", s.generateFailed(err)
	}

	filename := fmt.Sprintf("timesheets_export_from_%sTo%s.xlsx", req.StartDate, req.EndDate)
	if req.UserID != "" {
		if u := entries[0].User; u != nil && u.EmployeeID != "" {
			filename = fmt.Sprintf("%s_timesheet_from_%sTo%s.xlsx", u.EmployeeID, req.StartDate, req.EndDate)
		}
	}

	s.logger.Info("weekly workbook exported",
		zap.String("actor", actor.UserID),
		zap.Int("employees", len(order)),
		zap.Int("entries", len(entries)),
	)
	return buf, filename, nil
}

func (s *exportService) generateFailed(err error) error {
	s.logger.Error("write workbook failed", zap.Error(err))
	return ErrExportGenerateFail
}

// groupByDay buckets entries per calendar day, ascending, keeping each day's
// activities in clock order.
func groupByDay(entries []model.TimesheetEntry) []*dayBlock {
	index := make(map[time.Time]*dayBlock)
	var days []*dayBlock
	for i := range entries {
		e := &entries[i]
		date := timesheet.DateOf(e.EntryDate)
		d, ok := index[date]
		if !ok {
			d = &dayBlock{date: date}
			index[date] = d
			days = append(days, d)
		}
		d.hours = append(d.hours, e.DurationHours)
		d.activities = append(d.activities, activityText(e))
	}
	sort.Slice(days, func(i, j int) bool { return days[i].date.Before(days[j].date) })
	return days
}

// activityText renders "Project - task (HH:MM-HH:MM)".
func activityText(e *model.TimesheetEntry) string {
	project := "Project"
	if e.Project != nil && e.Project.Name != "" {
		project = e.Project.Name
	}
	text := fmt.Sprintf("%s - %s", project, e.TaskDescription)
	if e.HasTimes() {
		text += fmt.Sprintf(" (%s-%s)", *e.StartTime, *e.EndTime)
	}
	return text
}

// sheetName derives a unique sheet title within excel's 31 rune limit.
func sheetName(u *model.User, userID string, used map[string]bool) string {
	base := userID
	if u != nil {
		base = u.FullName()
		if u.EmployeeID != "" {
			base = u.EmployeeID + " " + base
		}
	}
	base = strings.Map(func(r rune) rune {
		if strings.ContainsRune(`:\/?*[]`, r) {
			return '-'
		}
		return r
	}, base)
	if runes := []rune(base); len(runes) > 28 {
		base = string(runes[:28])
	}
	name := base
	for n := 2; used[name]; n++ {
		name = fmt.Sprintf("%s %d", base, n)
	}
	used[name] = true
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}

// ═══════════════════════════════════════════════════════════
// Calendar
// ═══════════════════════════════════════════════════════════

func (s *exportService) Calendar(ctx context.Context, actor Actor, req *dto.DateRangeRequest) ([]byte, string, error) {
	from, to, err := parseRange(req.StartDate, req.EndDate)
	if err != nil {
		return nil, "", err
	}

	entries, _, err := s.repo.Timesheet.List(ctx, repository.TimesheetFilter{UserID: actor.UserID, From: from, To: to})
	if err != nil {
		s.logger.Error("load calendar entries failed", zap.String("user_id", actor.UserID), zap.Error(err))
		return nil, "", err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//timesheet//entries//EN")
	cal.SetXWRCalName("Timesheet " + req.StartDate + " to " + req.EndDate)

	for i := range entries {
		e := &entries[i]
		event := cal.AddEvent(e.EntryID + "@timesheet")
		event.SetDtStampTime(e.UpdatedAt)
		event.SetCreatedTime(e.CreatedAt)
		event.SetModifiedAt(e.UpdatedAt)
		event.SetSummary(activityText(e))
		event.SetDescription(fmt.Sprintf("%s, %.1f hours, break %d minutes", e.Status, e.DurationHours, e.BreakTimeMinutes))

		date := timesheet.DateOf(e.EntryDate)
		if start, end, ok := s.clockRange(date, e); ok {
			event.SetStartAt(start)
			event.SetEndAt(end)
		} else {
			event.SetAllDayStartAt(date)
			event.SetAllDayEndAt(date.AddDate(0, 0, 1))
		}
	}

	filename := fmt.Sprintf("timesheet_%s_%s.ics", req.StartDate, req.EndDate)
	return []byte(cal.Serialize()), filename, nil
}

// clockRange places an entry's HH:MM range on its date in the export zone.
func (s *exportService) clockRange(date time.Time, e *model.TimesheetEntry) (time.Time, time.Time, bool) {
	if !e.HasTimes() {
		return time.Time{}, time.Time{}, false
	}
	st, err1 := timesheet.ParseClock(*e.StartTime)
	en, err2 := timesheet.ParseClock(*e.EndTime)
	if err1 != nil || err2 != nil {
		return time.Time{}, time.Time{}, false
	}
	y, m, d := date.Date()
	start := time.Date(y, m, d, st.Hour(), st.Minute(), 0, 0, s.location)
	end := time.Date(y, m, d, en.Hour(), en.Minute(), 0, 0, s.location)
	return start, end, true
}
