package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/vinay0094k/myteamda-withroles-mobile/internal/model"
	pkgerrors "github.com/vinay0094k/myteamda-withroles-mobile/pkg/errors"
)

const dateLayout = "2006-01-02"

// TimesheetFilter narrows a listing. Zero values do not filter.
type TimesheetFilter struct {
	UserID string
	From   time.Time
	To     time.Time
	Status string
	Offset int
	Limit  int
}

// SummaryTotals aggregate over a date range
type SummaryTotals struct {
	TotalHours   float64
	TotalEntries int64
}

// ProjectHours per-project aggregate over a date range
type ProjectHours struct {
	ProjectID   string
	ProjectName string
	TotalHours  float64
	EntryCount  int64
}

// TimesheetRepository timesheet entry data access
type TimesheetRepository interface {
	Create(ctx context.Context, entry *model.TimesheetEntry) error
	GetByID(ctx context.Context, id string) (*model.TimesheetEntry, error)
	List(ctx context.Context, filter TimesheetFilter) ([]model.TimesheetEntry, int64, error)
	ListForExport(ctx context.Context, filter TimesheetFilter) ([]model.TimesheetEntry, error)
	ListTimedOnDate(ctx context.Context, userID string, date time.Time, excludeID string) ([]model.TimesheetEntry, error)
	SumHours(ctx context.Context, userID string, date time.Time, excludeID string) (float64, error)
	LockDay(ctx context.Context, userID string, date time.Time) error
	Update(ctx context.Context, entry *model.TimesheetEntry) error
	Delete(ctx context.Context, id string) error
	SubmitRange(ctx context.Context, userID string, from, to, at time.Time) (int64, error)
	Summary(ctx context.Context, userID string, from, to time.Time) (*SummaryTotals, []ProjectHours, error)
}

type timesheetRepo struct {
	db *gorm.DB
}

func NewTimesheetRepo(db *gorm.DB) TimesheetRepository {
	return &timesheetRepo{db: db}
}

func (r *timesheetRepo) Create(ctx context.Context, entry *model.TimesheetEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *timesheetRepo) GetByID(ctx context.Context, id string) (*model.TimesheetEntry, error) {
	var entry model.TimesheetEntry
	err := r.db.WithContext(ctx).
		Preload("Project").
		Where("entry_id = ?", id).
		First(&entry).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *timesheetRepo) filtered(ctx context.Context, f TimesheetFilter) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&model.TimesheetEntry{})
	if f.UserID != "" {
		query = query.Where("timesheet_entries.user_id = ?", f.UserID)
	}
	if !f.From.IsZero() {
		query = query.Where("timesheet_entries.entry_date >= ?", f.From.Format(dateLayout))
	}
	if !f.To.IsZero() {
		query = query.Where("timesheet_entries.entry_date <= ?", f.To.Format(dateLayout))
	}
	if f.Status != "" {
		query = query.Where("timesheet_entries.status = ?", f.Status)
	}
	return query
}

func (r *timesheetRepo) List(ctx context.Context, f TimesheetFilter) ([]model.TimesheetEntry, int64, error) {
	var total int64
	if err := r.filtered(ctx, f).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var entries []model.TimesheetEntry
	query := r.filtered(ctx, f).
		Preload("Project").
		Order("entry_date DESC, created_at DESC").
		Offset(f.Offset)
	if f.Limit > 0 {
		query = query.Limit(f.Limit)
	}
	if err := query.Find(&entries).Error; err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}

func (r *timesheetRepo) ListForExport(ctx context.Context, f TimesheetFilter) ([]model.TimesheetEntry, error) {
	var entries []model.TimesheetEntry
	err := r.filtered(ctx, f).
		Preload("Project").
		Preload("User").
		Joins("JOIN users ON users.user_id = timesheet_entries.user_id").
		Order("timesheet_entries.entry_date ASC, users.first_name ASC, users.last_name ASC, timesheet_entries.start_time ASC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *timesheetRepo) ListTimedOnDate(ctx context.Context, userID string, date time.Time, excludeID string) ([]model.TimesheetEntry, error) {
	var entries []model.TimesheetEntry
	query := r.db.WithContext(ctx).
		Preload("Project").
		Where("user_id = ? AND entry_date = ? AND start_time IS NOT NULL AND end_time IS NOT NULL",
			userID, date.Format(dateLayout))
	if excludeID != "" {
		query = query.Where("entry_id <> ?", excludeID)
	}
	if err := query.Order("start_time ASC").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *timesheetRepo) SumHours(ctx context.Context, userID string, date time.Time, excludeID string) (float64, error) {
	var total float64
	query := r.db.WithContext(ctx).
		Model(&model.TimesheetEntry{}).
		Select("COALESCE(SUM(duration_hours), 0)").
		Where("user_id = ? AND entry_date = ?", userID, date.Format(dateLayout))
	if excludeID != "" {
		query = query.Where("entry_id <> ?", excludeID)
	}
	if err := query.Scan(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

// LockDay serialises writers of one (user, date) until the surrounding
// transaction ends. Outside a transaction the lock is released at once.
func (r *timesheetRepo) LockDay(ctx context.Context, userID string, date time.Time) error {
	return r.db.WithContext(ctx).
		Exec("SELECT pg_advisory_xact_lock(hashtext(?))", userID+"/"+date.Format(dateLayout)).
		Error
}

// Update writes the mutable columns of a draft entry guarded by its version.
func (r *timesheetRepo) Update(ctx context.Context, entry *model.TimesheetEntry) error {
	oldVersion := entry.Version
	result := r.db.WithContext(ctx).
		Model(&model.TimesheetEntry{}).
		Where("entry_id = ? AND version = ? AND status = ?", entry.EntryID, oldVersion, model.EntryDraft).
		Updates(map[string]interface{}{
			"task_description":   entry.TaskDescription,
			"start_time":         entry.StartTime,
			"end_time":           entry.EndTime,
			"duration_hours":     entry.DurationHours,
			"break_time_minutes": entry.BreakTimeMinutes,
			"version":            oldVersion + 1,
			"updated_at":         time.Now().UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.ErrOptimisticLock
	}
	entry.Version = oldVersion + 1
	return nil
}

// Delete removes a draft entry.
func (r *timesheetRepo) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).
		Where("entry_id = ? AND status = ?", id, model.EntryDraft).
		Delete(&model.TimesheetEntry{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.ErrOptimisticLock
	}
	return nil
}

// SubmitRange flips every weekday draft of userID within [from, to] to
// submitted in a single statement and returns how many rows changed.
func (r *timesheetRepo) SubmitRange(ctx context.Context, userID string, from, to, at time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&model.TimesheetEntry{}).
		Where("user_id = ? AND status = ? AND entry_date BETWEEN ? AND ?",
			userID, model.EntryDraft, from.Format(dateLayout), to.Format(dateLayout)).
		Where("EXTRACT(ISODOW FROM entry_date) < 6").
		Updates(map[string]interface{}{
			"status":       model.EntrySubmitted,
			"submitted_at": at,
			"updated_at":   at,
			"version":      gorm.Expr("version + 1"),
		})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

func (r *timesheetRepo) Summary(ctx context.Context, userID string, from, to time.Time) (*SummaryTotals, []ProjectHours, error) {
	var totals SummaryTotals
	err := r.db.WithContext(ctx).
		Model(&model.TimesheetEntry{}).
		Select("COALESCE(SUM(duration_hours), 0) AS total_hours, COUNT(*) AS total_entries").
		Where("user_id = ? AND entry_date BETWEEN ? AND ?", userID, from.Format(dateLayout), to.Format(dateLayout)).
		Scan(&totals).Error
	if err != nil {
		return nil, nil, err
	}

	var projects []ProjectHours
	err = r.db.WithContext(ctx).
		Table("timesheet_entries").
		Select("timesheet_entries.project_id, projects.name AS project_name, " +
			"COALESCE(SUM(timesheet_entries.duration_hours), 0) AS total_hours, COUNT(*) AS entry_count").
		Joins("LEFT JOIN projects ON projects.project_id = timesheet_entries.project_id").
		Where("timesheet_entries.user_id = ? AND timesheet_entries.entry_date BETWEEN ? AND ?",
			userID, from.Format(dateLayout), to.Format(dateLayout)).
		Group("timesheet_entries.project_id, projects.name").
		Order("total_hours DESC").
		Scan(&projects).Error
	if err != nil {
		return nil, nil, err
	}
	return &totals, projects, nil
}
