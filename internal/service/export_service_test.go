package service

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/vinay0094k/myteamda-withroles-mobile/internal/dto"
	"github.com/vinay0094k/myteamda-withroles-mobile/internal/model"
	"github.com/vinay0094k/myteamda-withroles-mobile/internal/repository"
)

// ── test helpers ──

func setupTestExportService() (ExportService, *timesheetFixture) {
	f := setupTestTimesheetService()
	repo := &repository.Repository{Timesheet: f.entries, Project: f.projects, User: f.entries.users}
	return NewExportService(repo, time.UTC, zap.NewNop()), f
}

func weekExport(userID string) *dto.ExportRequest {
	return &dto.ExportRequest{
		UserID:           userID,
		DateRangeRequest: dto.DateRangeRequest{StartDate: "2026-10-12", EndDate: "2026-10-16"},
	}
}

// ── WeeklyWorkbook ──

func TestExportService_WeeklyWorkbook_SingleEmployee(t *testing.T) {
	svc, f := setupTestExportService()
	f.seed("e1", "user-1", "proj-1", "2026-10-12", 3, "09:00", "12:00", model.EntryDraft)
	f.seed("e2", "user-1", "proj-2", "2026-10-12", 4.5, "", "", model.EntryDraft)
	f.seed("e3", "user-1", "proj-1", "2026-10-13", 8, "", "", model.EntrySubmitted)
	f.seed("e4", "user-2", "proj-1", "2026-10-13", 8, "", "", model.EntryDraft)

	buf, filename, err := svc.WeeklyWorkbook(context.Background(), employee, weekExport("user-1"))
	if err != nil {
		t.Fatalf("WeeklyWorkbook failed: %v", err)
	}
	if filename != "E001_timesheet_from_2026-10-12To2026-10-16.xlsx" {
		t.Errorf("unexpected filename %s", filename)
	}

	wb, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("workbook does not open: %v", err)
	}
	defer wb.Close()

	sheets := wb.GetSheetList()
	if len(sheets) != 1 || sheets[0] != "E001 Dana Reyes" {
		t.Fatalf("unexpected sheets %v", sheets)
	}
	sheet := sheets[0]

	checks := map[string]string{
		"A1": "OCTOBER",
		"B2": "Dana Reyes",
		"B3": "12-10-2026 to 16-10-2026",
		"B4": "15.5",
		"A6": "Date (dd-mm-yyyy)",
		"F6": "Has Blocker",
		"A7": "12-10-2026",
		"B7": "7.5",
		"A8": "13-10-2026",
		"C8": "8",
	}
	for axis, want := range checks {
		got, _ := wb.GetCellValue(sheet, axis)
		if got != want {
			t.Errorf("%s: expected %q, got %q", axis, want, got)
		}
	}

	activity, _ := wb.GetCellValue(sheet, "D7")
	lines := strings.Split(activity, "\n")
	if len(lines) != 2 || lines[0] != "Apollo - seeded e1 (09:00-12:00)" || lines[1] != "Borealis - seeded e2" {
		t.Errorf("unexpected activity cell %q", activity)
	}
	if v, _ := wb.GetCellValue(sheet, "A9"); v != "" {
		t.Errorf("expected two day rows, found a third: %q", v)
	}
}

func TestExportService_WeeklyWorkbook_AllEmployees(t *testing.T) {
	svc, f := setupTestExportService()
	f.seed("e1", "user-1", "proj-1", "2026-10-12", 8, "", "", model.EntrySubmitted)
	f.seed("e2", "user-2", "proj-1", "2026-10-13", 6, "", "", model.EntrySubmitted)
	f.seed("e3", "user-2", "proj-1", "2026-10-14", 2, "", "", model.EntryDraft)

	req := weekExport("")
	req.Status = model.EntrySubmitted
	buf, filename, err := svc.WeeklyWorkbook(context.Background(), manager, req)
	if err != nil {
		t.Fatalf("WeeklyWorkbook failed: %v", err)
	}
	if filename != "timesheets_export_from_2026-10-12To2026-10-16.xlsx" {
		t.Errorf("unexpected filename %s", filename)
	}

	wb, err := excelize.OpenReader(buf)
	if err != nil {
		t.Fatalf("workbook does not open: %v", err)
	}
	defer wb.Close()

	sheets := wb.GetSheetList()
	if len(sheets) != 2 {
		t.Fatalf("expected one sheet per employee, got %v", sheets)
	}
	if total, _ := wb.GetCellValue("E002 Kim Park", "B4"); total != "6" {
		t.Errorf("expected only the submitted 6 hours for Kim, got %q", total)
	}
}

func TestExportService_WeeklyWorkbook_Rejections(t *testing.T) {
	svc, f := setupTestExportService()
	f.seed("e1", "user-2", "proj-1", "2026-10-12", 8, "", "", model.EntryDraft)
	ctx := context.Background()

	if _, _, err := svc.WeeklyWorkbook(ctx, employee, weekExport("")); !errors.Is(err, ErrForbiddenUser) {
		t.Errorf("employee exporting everyone: expected ErrForbiddenUser, got %v", err)
	}
	if _, _, err := svc.WeeklyWorkbook(ctx, employee, weekExport("user-2")); !errors.Is(err, ErrForbiddenUser) {
		t.Errorf("employee exporting a colleague: expected ErrForbiddenUser, got %v", err)
	}
	if _, _, err := svc.WeeklyWorkbook(ctx, employee, weekExport("user-1")); !errors.Is(err, ErrExportNoEntries) {
		t.Errorf("expected ErrExportNoEntries, got %v", err)
	}
	bad := weekExport("user-1")
	bad.EndDate = "2026-10-01"
	if _, _, err := svc.WeeklyWorkbook(ctx, employee, bad); !errors.Is(err, ErrInvalidDateRange) {
		t.Errorf("expected ErrInvalidDateRange, got %v", err)
	}
}

func TestSheetName(t *testing.T) {
	used := make(map[string]bool)
	u := &model.User{EmployeeID: "E9", FirstName: "Maximilian-Alexander", LastName: "Vandenberghe/Smith"}

	first := sheetName(u, "user-9", used)
	if len([]rune(first)) > 28 || strings.Contains(first, "/") {
		t.Errorf("invalid sheet name %q", first)
	}
	second := sheetName(u, "user-9", used)
	if second == first || !strings.HasSuffix(second, " 2") {
		t.Errorf("expected a numbered duplicate, got %q", second)
	}
	if got := sheetName(nil, "user-7", used); got != "user-7" {
		t.Errorf("expected the user id as fallback, got %q", got)
	}
}

// ── Calendar ──

func TestExportService_Calendar(t *testing.T) {
	svc, f := setupTestExportService()
	f.seed("e1", "user-1", "proj-1", "2026-10-12", 3, "09:00", "12:00", model.EntryDraft)
	f.seed("e2", "user-1", "proj-2", "2026-10-13", 4, "", "", model.EntrySubmitted)
	f.seed("e3", "user-2", "proj-1", "2026-10-12", 8, "", "", model.EntryDraft)

	data, filename, err := svc.Calendar(context.Background(), employee, &dto.DateRangeRequest{StartDate: "2026-10-12", EndDate: "2026-10-16"})
	if err != nil {
		t.Fatalf("Calendar failed: %v", err)
	}
	if filename != "timesheet_2026-10-12_2026-10-16.ics" {
		t.Errorf("unexpected filename %s", filename)
	}

	cal, err := ics.ParseCalendar(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("feed does not parse: %v", err)
	}
	events := cal.Events()
	if len(events) != 2 {
		t.Fatalf("expected the caller's 2 entries, got %d", len(events))
	}

	byID := make(map[string]*ics.VEvent)
	for _, ev := range events {
		byID[ev.Id()] = ev
	}
	timed, ok := byID["e1@timesheet"]
	if !ok {
		t.Fatal("missing e1 event")
	}
	if got := timed.GetProperty(ics.ComponentPropertySummary).Value; got != "Apollo - seeded e1 (09:00-12:00)" {
		t.Errorf("unexpected summary %q", got)
	}
	start, err := timed.GetStartAt()
	if err != nil || !start.Equal(time.Date(2026, 10, 12, 9, 0, 0, 0, time.UTC)) {
		t.Errorf("unexpected start %v %v", start, err)
	}

	allDay, ok := byID["e2@timesheet"]
	if !ok {
		t.Fatal("missing e2 event")
	}
	if got := allDay.GetProperty(ics.ComponentPropertyDtStart).Value; got != "20261013" {
		t.Errorf("expected an all-day start, got %q", got)
	}
}
