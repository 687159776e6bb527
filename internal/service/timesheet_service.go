package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/vinay0094k/myteamda-withroles-mobile/internal/dto"
	"github.com/vinay0094k/myteamda-withroles-mobile/internal/model"
	"github.com/vinay0094k/myteamda-withroles-mobile/internal/repository"
	"github.com/vinay0094k/myteamda-withroles-mobile/internal/timesheet"
	pkgerrors "github.com/vinay0094k/myteamda-withroles-mobile/pkg/errors"
	"github.com/vinay0094k/myteamda-withroles-mobile/pkg/redis"
)

// ── Timesheet errors ──

var (
	ErrEntryNotFound       = errors.New("Timesheet entry not found")
	ErrUpdateSubmitted     = errors.New("Cannot update submitted timesheet entry")
	ErrDeleteSubmitted     = errors.New("Cannot delete submitted timesheet entry")
	ErrEntryModified       = errors.New("Timesheet entry was modified concurrently, reload and retry")
	ErrWeekendDate         = errors.New("Time cannot be logged on a weekend")
	ErrFutureDate          = errors.New("Time cannot be logged for a future date")
	ErrInvalidDate         = errors.New("Invalid date format, expected YYYY-MM-DD")
	ErrInvalidDateRange    = errors.New("start_date must not be after end_date")
	ErrInvalidProject      = errors.New("Invalid or inactive project")
	ErrInvalidTimeRange    = errors.New("Invalid time range")
	ErrIncompleteTimeRange = errors.New("start_time and end_time must be given together")
	ErrDurationRequired    = errors.New("duration_hours is required without a time range")
	ErrDescriptionRequired = errors.New("task_description must not be blank")
	ErrNothingToSubmit     = errors.New("No draft entries to submit in this period")
	ErrForbiddenUser       = errors.New("Access denied to another user's timesheet")
	ErrUserNotFound        = errors.New("User not found")
	ErrTimeOverlap         = errors.New("Time overlap")
	ErrDailyLimitExceeded  = errors.New("Daily hour limit exceeded")
)

// OverlapError names the entry a new time range collides with.
type OverlapError struct {
	ProjectName string
	Start       string
	End         string
}

func (e *OverlapError) Error() string {
	return fmt.Sprintf("Time entry already existing in this %s (%s-%s)", e.ProjectName, e.Start, e.End)
}

func (e *OverlapError) Is(target error) bool { return target == ErrTimeOverlap }

// DailyLimitError reports the day total a write would have produced.
type DailyLimitError struct {
	CapHours float64
	Current  float64
	Adding   float64
}

func (e *DailyLimitError) Error() string {
	return fmt.Sprintf("Cannot exceed %s hours per day. Current: %.1f hours, Trying to add: %.1f hours",
		formatHours(e.CapHours), e.Current, e.Adding)
}

func (e *DailyLimitError) Is(target error) bool { return target == ErrDailyLimitExceeded }

func formatHours(h float64) string {
	return strings.TrimSuffix(strings.TrimSuffix(fmt.Sprintf("%.1f", h), "0"), ".")
}

// Actor is the authenticated caller.
type Actor struct {
	UserID string
	Role   string
}

// Rules are the accounting parameters shared with the terminal client.
type Rules struct {
	Clock             timesheet.Clock
	DailyCapHours     float64
	WeeklyTargetHours float64
	TrailingWeeks     int
	SummaryTTL        time.Duration
}

func (r Rules) withDefaults() Rules {
	if r.Clock == nil {
		r.Clock = timesheet.SystemClock{}
	}
	if r.DailyCapHours <= 0 {
		r.DailyCapHours = timesheet.DefaultDailyCapHours
	}
	if r.WeeklyTargetHours <= 0 {
		r.WeeklyTargetHours = timesheet.DefaultWeeklyTargetHours
	}
	if r.TrailingWeeks <= 0 {
		r.TrailingWeeks = 4
	}
	if r.SummaryTTL <= 0 {
		r.SummaryTTL = 5 * time.Minute
	}
	return r
}

// SummaryCache stores computed summaries; every write invalidates the
// writer's entries.
type SummaryCache interface {
	GetJSON(ctx context.Context, key string, dst any) (bool, error)
	SetJSON(ctx context.Context, key string, v any, ttl time.Duration) error
	InvalidateSummaries(ctx context.Context, userID string) error
}

// TimesheetService timesheet entry use cases
type TimesheetService interface {
	Create(ctx context.Context, actor Actor, req *dto.CreateTimesheetRequest) (*dto.TimesheetResponse, error)
	Update(ctx context.Context, actor Actor, id string, req *dto.UpdateTimesheetRequest) (*dto.TimesheetResponse, error)
	Delete(ctx context.Context, actor Actor, id string) error
	Submit(ctx context.Context, actor Actor, req *dto.DateRangeRequest) (*dto.SubmitResponse, error)
	List(ctx context.Context, actor Actor, req *dto.TimesheetListRequest) ([]dto.TimesheetResponse, int64, error)
	Summary(ctx context.Context, actor Actor, req *dto.SummaryRequest) (*dto.SummaryResponse, error)
	WeeklyReport(ctx context.Context, actor Actor, req *dto.WeeklyReportRequest) (*dto.WeeklyReportResponse, error)
}

type timesheetService struct {
	repo   *repository.Repository
	cache  SummaryCache
	rules  Rules
	logger *zap.Logger
}

// NewTimesheetService creates a TimesheetService. cache may be nil.
func NewTimesheetService(repo *repository.Repository, cache SummaryCache, rules Rules, logger *zap.Logger) TimesheetService {
	return &timesheetService{repo: repo, cache: cache, rules: rules.withDefaults(), logger: logger}
}

// ═══════════════════════════════════════════════════════════
// Create
// ═══════════════════════════════════════════════════════════

func (s *timesheetService) Create(ctx context.Context, actor Actor, req *dto.CreateTimesheetRequest) (*dto.TimesheetResponse, error) {
	date, err := s.loggableDate(req.EntryDate)
	if err != nil {
		return nil, err
	}

	description := strings.TrimSpace(req.TaskDescription)
	if description == "" {
		return nil, ErrDescriptionRequired
	}

	start, end, hours, err := resolveHours(req.StartTime, req.EndTime, req.DurationHours)
	if err != nil {
		return nil, err
	}

	project, err := s.repo.Project.GetByID(ctx, req.ProjectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidProject
		}
		s.logger.Error("load project failed", zap.String("project_id", req.ProjectID), zap.Error(err))
		return nil, err
	}
	if !project.IsActive() {
		return nil, ErrInvalidProject
	}

	entry := &model.TimesheetEntry{
		UserID:           actor.UserID,
		ProjectID:        project.ProjectID,
		TaskDescription:  description,
		EntryDate:        date,
		StartTime:        start,
		EndTime:          end,
		DurationHours:    hours,
		BreakTimeMinutes: req.BreakTimeMinutes,
		Status:           model.EntryDraft,
	}

	err = s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		if err := s.checkDay(ctx, tx, entry, ""); err != nil {
			return err
		}
		return tx.Timesheet.Create(ctx, entry)
	})
	if err != nil {
		return nil, s.writeError("create entry", actor, err)
	}

	s.invalidate(ctx, actor.UserID)
	s.logger.Info("timesheet entry created",
		zap.String("entry_id", entry.EntryID),
		zap.String("user_id", actor.UserID),
		zap.String("date", timesheet.FormatDate(date)),
		zap.Float64("hours", hours),
	)

	return s.reload(ctx, entry.EntryID)
}

// ═══════════════════════════════════════════════════════════
// Update
// ═══════════════════════════════════════════════════════════

func (s *timesheetService) Update(ctx context.Context, actor Actor, id string, req *dto.UpdateTimesheetRequest) (*dto.TimesheetResponse, error) {
	entry, err := s.ownedEntry(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if !entry.IsDraft() {
		return nil, ErrUpdateSubmitted
	}
	if timesheet.IsWeekend(entry.EntryDate) {
		return nil, ErrWeekendDate
	}

	if req.TaskDescription != nil {
		description := strings.TrimSpace(*req.TaskDescription)
		if description == "" {
			return nil, ErrDescriptionRequired
		}
		entry.TaskDescription = description
	}

	switch {
	case present(req.StartTime) || present(req.EndTime):
		start, end, hours, err := resolveHours(req.StartTime, req.EndTime, nil)
		if err != nil {
			return nil, err
		}
		entry.StartTime, entry.EndTime, entry.DurationHours = start, end, hours
	case req.ClearTimes:
		if req.DurationHours == nil {
			return nil, ErrDurationRequired
		}
		entry.StartTime, entry.EndTime = nil, nil
		entry.DurationHours = timesheet.RoundHours(*req.DurationHours)
	case req.DurationHours != nil && !entry.HasTimes():
		entry.DurationHours = timesheet.RoundHours(*req.DurationHours)
	}

	if req.BreakTimeMinutes != nil {
		entry.BreakTimeMinutes = *req.BreakTimeMinutes
	}

	err = s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		if err := s.checkDay(ctx, tx, entry, entry.EntryID); err != nil {
			return err
		}
		return tx.Timesheet.Update(ctx, entry)
	})
	if err != nil {
		return nil, s.writeError("update entry", actor, err)
	}

	s.invalidate(ctx, actor.UserID)
	return s.reload(ctx, entry.EntryID)
}

// ═══════════════════════════════════════════════════════════
// Delete
// ═══════════════════════════════════════════════════════════

func (s *timesheetService) Delete(ctx context.Context, actor Actor, id string) error {
	entry, err := s.ownedEntry(ctx, actor, id)
	if err != nil {
		return err
	}
	if !entry.IsDraft() {
		return ErrDeleteSubmitted
	}
	if timesheet.IsWeekend(entry.EntryDate) {
		return ErrWeekendDate
	}

	if err := s.repo.Timesheet.Delete(ctx, entry.EntryID); err != nil {
		return s.writeError("delete entry", actor, err)
	}

	s.invalidate(ctx, actor.UserID)
	s.logger.Info("timesheet entry deleted", zap.String("entry_id", id), zap.String("user_id", actor.UserID))
	return nil
}

// ═══════════════════════════════════════════════════════════
// Submit
// ═══════════════════════════════════════════════════════════
//
// Every weekday draft of the caller inside the range moves to submitted in
// one statement; a failure leaves all of them as drafts. Weekend entries are
// read-only and never submitted.

func (s *timesheetService) Submit(ctx context.Context, actor Actor, req *dto.DateRangeRequest) (*dto.SubmitResponse, error) {
	from, to, err := parseRange(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}
	if !hasWeekday(from, to) {
		return nil, ErrWeekendDate
	}

	var n int64
	err = s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		var err error
		n, err = tx.Timesheet.SubmitRange(ctx, actor.UserID, from, to, s.rules.Clock.Now().UTC())
		if err != nil {
			return err
		}
		if n == 0 {
			return ErrNothingToSubmit
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrNothingToSubmit) {
			return nil, err
		}
		s.logger.Error("submit entries failed", zap.String("user_id", actor.UserID), zap.Error(err))
		return nil, err
	}

	s.invalidate(ctx, actor.UserID)
	s.logger.Info("timesheet submitted",
		zap.String("user_id", actor.UserID),
		zap.String("from", req.StartDate),
		zap.String("to", req.EndDate),
		zap.Int64("entries", n),
	)
	return &dto.SubmitResponse{SubmittedEntries: int(n)}, nil
}

// ═══════════════════════════════════════════════════════════
// Reads
// ═══════════════════════════════════════════════════════════

func (s *timesheetService) List(ctx context.Context, actor Actor, req *dto.TimesheetListRequest) ([]dto.TimesheetResponse, int64, error) {
	userID, err := targetUser(actor, req.UserID)
	if err != nil {
		return nil, 0, err
	}

	filter := repository.TimesheetFilter{
		UserID: userID,
		Status: req.Status,
		Offset: req.Offset(),
		Limit:  req.GetLimit(),
	}
	if filter.From, err = parseOptionalDate(req.StartDate); err != nil {
		return nil, 0, err
	}
	if filter.To, err = parseOptionalDate(req.EndDate); err != nil {
		return nil, 0, err
	}
	if !filter.From.IsZero() && !filter.To.IsZero() && filter.From.After(filter.To) {
		return nil, 0, ErrInvalidDateRange
	}

	entries, total, err := s.repo.Timesheet.List(ctx, filter)
	if err != nil {
		s.logger.Error("list entries failed", zap.String("user_id", userID), zap.Error(err))
		return nil, 0, err
	}

	list := make([]dto.TimesheetResponse, 0, len(entries))
	for i := range entries {
		list = append(list, toTimesheetResponse(&entries[i]))
	}
	return list, total, nil
}

func (s *timesheetService) Summary(ctx context.Context, actor Actor, req *dto.SummaryRequest) (*dto.SummaryResponse, error) {
	userID, err := targetUser(actor, req.UserID)
	if err != nil {
		return nil, err
	}
	from, to, err := parseRange(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	key := redis.SummaryKey(userID, req.StartDate, req.EndDate)
	if s.cache != nil {
		var cached dto.SummaryResponse
		hit, err := s.cache.GetJSON(ctx, key, &cached)
		if err != nil {
			s.logger.Warn("summary cache read failed", zap.String("key", key), zap.Error(err))
		} else if hit {
			return &cached, nil
		}
	}

	totals, projects, err := s.repo.Timesheet.Summary(ctx, userID, from, to)
	if err != nil {
		s.logger.Error("summary failed", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	resp := &dto.SummaryResponse{
		Summary: dto.SummaryTotals{
			TotalHours:   timesheet.RoundHours(totals.TotalHours),
			TotalEntries: totals.TotalEntries,
		},
		ProjectSummary: make([]dto.ProjectSummary, 0, len(projects)),
	}
	for _, p := range projects {
		resp.ProjectSummary = append(resp.ProjectSummary, dto.ProjectSummary{
			ProjectID:   p.ProjectID,
			ProjectName: p.ProjectName,
			TotalHours:  timesheet.RoundHours(p.TotalHours),
			EntryCount:  p.EntryCount,
		})
	}

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, key, resp, s.rules.SummaryTTL); err != nil {
			s.logger.Warn("summary cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return resp, nil
}

// WeeklyReport returns the trailing weeks of one user, newest first.
func (s *timesheetService) WeeklyReport(ctx context.Context, actor Actor, req *dto.WeeklyReportRequest) (*dto.WeeklyReportResponse, error) {
	userID, err := targetUser(actor, req.UserID)
	if err != nil {
		return nil, err
	}
	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	anchor := timesheet.Today(s.rules.Clock)
	if req.Anchor != "" {
		if anchor, err = timesheet.ParseDate(req.Anchor); err != nil {
			return nil, ErrInvalidDate
		}
	}
	weeks := req.Weeks
	if weeks <= 0 {
		weeks = s.rules.TrailingWeeks
	}

	from := timesheet.AddWeeks(timesheet.WeekStart(anchor), -(weeks - 1))
	to := timesheet.WeekEnd(anchor)
	entries, _, err := s.repo.Timesheet.List(ctx, repository.TimesheetFilter{UserID: userID, From: from, To: to})
	if err != nil {
		s.logger.Error("weekly report failed", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	core := make([]timesheet.Entry, 0, len(entries))
	for i := range entries {
		core = append(core, toCoreEntry(&entries[i]))
	}
	weekly := timesheet.NewWeeklyAggregator(timesheet.NewDayAggregator(core), s.rules.WeeklyTargetHours)

	resp := &dto.WeeklyReportResponse{UserID: userID, UserName: user.FullName(), TargetHours: s.rules.WeeklyTargetHours}
	for _, row := range weekly.Trailing(anchor, weeks) {
		resp.Weeks = append(resp.Weeks, dto.WeekRow{
			WeekStart:      timesheet.FormatDate(row.Window.Start),
			WeekEnd:        timesheet.FormatDate(row.Window.End),
			TotalHours:     row.TotalHours,
			DraftCount:     row.DraftCount,
			SubmittedCount: row.SubmittedCount,
			TargetPercent:  row.TargetPercent,
			Status:         weekly.Status(row.Window).String(),
		})
	}
	return resp, nil
}

// ── helpers ──

// checkDay enforces the daily cap and the no-overlap rule for entry on its
// date, ignoring excludeID. It must run inside the write transaction.
func (s *timesheetService) checkDay(ctx context.Context, tx *repository.Repository, entry *model.TimesheetEntry, excludeID string) error {
	if err := tx.Timesheet.LockDay(ctx, entry.UserID, entry.EntryDate); err != nil {
		return err
	}

	current, err := tx.Timesheet.SumHours(ctx, entry.UserID, entry.EntryDate, excludeID)
	if err != nil {
		return err
	}
	current = timesheet.RoundHours(current)
	if timesheet.SumHours(current, entry.DurationHours) > s.rules.DailyCapHours {
		return &DailyLimitError{CapHours: s.rules.DailyCapHours, Current: current, Adding: entry.DurationHours}
	}

	if !entry.HasTimes() {
		return nil
	}
	newStart, _ := timesheet.ParseClock(*entry.StartTime)
	newEnd, _ := timesheet.ParseClock(*entry.EndTime)

	timed, err := tx.Timesheet.ListTimedOnDate(ctx, entry.UserID, entry.EntryDate, excludeID)
	if err != nil {
		return err
	}
	for i := range timed {
		ex := &timed[i]
		exStart, err1 := timesheet.ParseClock(*ex.StartTime)
		exEnd, err2 := timesheet.ParseClock(*ex.EndTime)
		if err1 != nil || err2 != nil {
			continue
		}
		if timesheet.RangesOverlap(newStart, newEnd, exStart, exEnd) {
			name := "project"
			if ex.Project != nil && ex.Project.Name != "" {
				name = ex.Project.Name
			}
			return &OverlapError{ProjectName: name, Start: *ex.StartTime, End: *ex.EndTime}
		}
	}
	return nil
}

// loggableDate parses a date the caller may still log time on.
func (s *timesheetService) loggableDate(raw string) (time.Time, error) {
	date, err := timesheet.ParseDate(raw)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	if timesheet.IsWeekend(date) {
		return time.Time{}, ErrWeekendDate
	}
	if timesheet.IsFuture(s.rules.Clock, date) {
		return time.Time{}, ErrFutureDate
	}
	return date, nil
}

func (s *timesheetService) ownedEntry(ctx context.Context, actor Actor, id string) (*model.TimesheetEntry, error) {
	entry, err := s.repo.Timesheet.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEntryNotFound
		}
		s.logger.Error("load entry failed", zap.String("entry_id", id), zap.Error(err))
		return nil, err
	}
	if entry.UserID != actor.UserID {
		return nil, ErrEntryNotFound
	}
	return entry, nil
}

func (s *timesheetService) reload(ctx context.Context, id string) (*dto.TimesheetResponse, error) {
	entry, err := s.repo.Timesheet.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("reload entry failed", zap.String("entry_id", id), zap.Error(err))
		return nil, err
	}
	resp := toTimesheetResponse(entry)
	return &resp, nil
}

// writeError maps persistence failures of a write to service errors and
// logs the unexpected ones.
func (s *timesheetService) writeError(op string, actor Actor, err error) error {
	switch {
	case errors.Is(err, ErrTimeOverlap), errors.Is(err, ErrDailyLimitExceeded):
		return err
	case errors.Is(err, pkgerrors.ErrOptimisticLock):
		return ErrEntryModified
	}
	s.logger.Error(op+" failed", zap.String("user_id", actor.UserID), zap.Error(err))
	return err
}

func (s *timesheetService) invalidate(ctx context.Context, userID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateSummaries(ctx, userID); err != nil {
		s.logger.Warn("summary cache invalidation failed", zap.String("user_id", userID), zap.Error(err))
	}
}

// resolveHours validates an optional clock range and returns the hours the
// entry books: derived from the range when present, else the given duration.
func resolveHours(start, end *string, duration *float64) (*string, *string, float64, error) {
	hasStart, hasEnd := present(start), present(end)

	switch {
	case hasStart && hasEnd:
		hours, err := timesheet.DurationFromRange(*start, *end)
		if err != nil {
			return nil, nil, 0, fmt.Errorf("%w: %v", ErrInvalidTimeRange, err)
		}
		st, en := strings.TrimSpace(*start), strings.TrimSpace(*end)
		return &st, &en, hours, nil
	case hasStart || hasEnd:
		return nil, nil, 0, ErrIncompleteTimeRange
	case duration == nil:
		return nil, nil, 0, ErrDurationRequired
	case *duration < 0:
		return nil, nil, 0, ErrDurationRequired
	}
	return nil, nil, timesheet.RoundHours(*duration), nil
}

func present(p *string) bool {
	return p != nil && strings.TrimSpace(*p) != ""
}

// targetUser resolves whose entries a read concerns.
func targetUser(actor Actor, requested string) (string, error) {
	if requested == "" || requested == actor.UserID {
		return actor.UserID, nil
	}
	if !model.CanReadOthers(actor.Role) {
		return "", ErrForbiddenUser
	}
	return requested, nil
}

func parseOptionalDate(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	d, err := timesheet.ParseDate(raw)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return d, nil
}

// hasWeekday reports whether [from, to] contains a Monday to Friday date.
func hasWeekday(from, to time.Time) bool {
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		if !timesheet.IsWeekend(d) {
			return true
		}
	}
	return false
}

func parseRange(start, end string) (time.Time, time.Time, error) {
	from, err := timesheet.ParseDate(start)
	if err != nil {
		return time.Time{}, time.Time{}, ErrInvalidDate
	}
	to, err := timesheet.ParseDate(end)
	if err != nil {
		return time.Time{}, time.Time{}, ErrInvalidDate
	}
	if from.After(to) {
		return time.Time{}, time.Time{}, ErrInvalidDateRange
	}
	return from, to, nil
}
