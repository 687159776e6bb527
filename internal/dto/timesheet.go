package dto

// ── Timesheet DTOs ──

// CreateTimesheetRequest body of POST /timesheets.
// With start/end times the duration is derived and DurationHours ignored.
type CreateTimesheetRequest struct {
	ProjectID        string   `json:"project_id"         binding:"required,uuid"`
	TaskDescription  string   `json:"task_description"   binding:"required,max=2000"`
	EntryDate        string   `json:"entry_date"         binding:"required,date"`
	StartTime        *string  `json:"start_time"         binding:"omitempty,hhmm"`
	EndTime          *string  `json:"end_time"           binding:"omitempty,hhmm"`
	DurationHours    *float64 `json:"duration_hours"     binding:"omitempty,gte=0,lte=24"`
	BreakTimeMinutes int      `json:"break_time_minutes" binding:"omitempty,gte=0,lte=720"`
}

// UpdateTimesheetRequest body of PUT /timesheets/:id; nil fields are kept.
type UpdateTimesheetRequest struct {
	TaskDescription  *string  `json:"task_description"   binding:"omitempty,min=1,max=2000"`
	StartTime        *string  `json:"start_time"         binding:"omitempty,hhmm"`
	EndTime          *string  `json:"end_time"           binding:"omitempty,hhmm"`
	DurationHours    *float64 `json:"duration_hours"     binding:"omitempty,gte=0,lte=24"`
	BreakTimeMinutes *int     `json:"break_time_minutes" binding:"omitempty,gte=0,lte=720"`
	ClearTimes       bool     `json:"clear_times"`
}

// TimesheetListRequest query of GET /timesheets
type TimesheetListRequest struct {
	UserID    string `form:"user_id"    binding:"omitempty,uuid"`
	StartDate string `form:"start_date" binding:"omitempty,date"`
	EndDate   string `form:"end_date"   binding:"omitempty,date"`
	Status    string `form:"status"     binding:"omitempty,oneof=draft submitted approved"`
	PaginationRequest
}

// SummaryRequest query of GET /timesheets/summary
type SummaryRequest struct {
	UserID string `form:"user_id" binding:"omitempty,uuid"`
	DateRangeRequest
}

// WeeklyReportRequest query of GET /timesheets/weekly
type WeeklyReportRequest struct {
	UserID string `form:"user_id" binding:"required,uuid"`
	Anchor string `form:"anchor"  binding:"omitempty,date"`
	Weeks  int    `form:"weeks"   binding:"omitempty,min=1,max=27"`
}

// ExportRequest query of GET /timesheets/export
type ExportRequest struct {
	UserID string `form:"user_id" binding:"omitempty,uuid"`
	Status string `form:"status"  binding:"omitempty,oneof=draft submitted approved"`
	DateRangeRequest
}

// ProjectRef embedded project
type ProjectRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// TimesheetResponse one entry on the wire
type TimesheetResponse struct {
	ID               string      `json:"id"`
	UserID           string      `json:"user_id"`
	ProjectID        string      `json:"project_id"`
	Project          *ProjectRef `json:"project,omitempty"`
	TaskDescription  string      `json:"task_description"`
	EntryDate        string      `json:"entry_date"`
	StartTime        *string     `json:"start_time"`
	EndTime          *string     `json:"end_time"`
	DurationHours    float64     `json:"duration_hours"`
	BreakTimeMinutes int         `json:"break_time_minutes"`
	Status           string      `json:"status"`
	SubmittedAt      *string     `json:"submitted_at,omitempty"`
	ApprovedBy       *string     `json:"approved_by,omitempty"`
	ApprovedAt       *string     `json:"approved_at,omitempty"`
	CreatedAt        string      `json:"created_at"`
	UpdatedAt        string      `json:"updated_at"`
}

// SubmitResponse result of POST /timesheets/submit
type SubmitResponse struct {
	SubmittedEntries int `json:"submitted_entries"`
}

// SummaryTotals overall figures
type SummaryTotals struct {
	TotalHours   float64 `json:"total_hours"`
	TotalEntries int64   `json:"total_entries"`
}

// ProjectSummary per-project figures
type ProjectSummary struct {
	ProjectID   string  `json:"project_id"`
	ProjectName string  `json:"project_name"`
	TotalHours  float64 `json:"total_hours"`
	EntryCount  int64   `json:"entry_count"`
}

// SummaryResponse result of GET /timesheets/summary
type SummaryResponse struct {
	Summary        SummaryTotals    `json:"summary"`
	ProjectSummary []ProjectSummary `json:"project_summary"`
}

// WeekRow one line of the trailing-week report
type WeekRow struct {
	WeekStart      string  `json:"week_start"`
	WeekEnd        string  `json:"week_end"`
	TotalHours     float64 `json:"total_hours"`
	DraftCount     int     `json:"draft_count"`
	SubmittedCount int     `json:"submitted_count"`
	TargetPercent  int     `json:"target_percent"`
	Status         string  `json:"status"`
}

// WeeklyReportResponse result of GET /timesheets/weekly
type WeeklyReportResponse struct {
	UserID      string    `json:"user_id"`
	UserName    string    `json:"user_name"`
	TargetHours float64   `json:"target_hours"`
	Weeks       []WeekRow `json:"weeks"`
}
