package model

import "time"

// Entry status values
const (
	EntryDraft     = "draft"
	EntrySubmitted = "submitted"
	EntryApproved  = "approved"
)

// TimesheetEntry maps timesheet_entries.
// StartTime/EndTime hold "HH:MM" and are both set or both nil.
type TimesheetEntry struct {
	EntryID          string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID           string     `gorm:"type:uuid;not null;index"                       json:"user_id"`
	ProjectID        string     `gorm:"type:uuid;not null"                             json:"project_id"`
	TaskDescription  string     `gorm:"type:text;not null"                             json:"task_description"`
	EntryDate        time.Time  `gorm:"type:date;not null"                             json:"entry_date"`
	StartTime        *string    `gorm:"type:varchar(5)"                                json:"start_time"`
	EndTime          *string    `gorm:"type:varchar(5)"                                json:"end_time"`
	DurationHours    float64    `gorm:"type:numeric(4,1);not null;default:0"           json:"duration_hours"`
	BreakTimeMinutes int        `gorm:"not null;default:0"                             json:"break_time_minutes"`
	Status           string     `gorm:"type:varchar(20);not null;default:'draft'"      json:"status"`
	SubmittedAt      *time.Time `                                                      json:"submitted_at,omitempty"`
	ApprovedBy       *string    `gorm:"type:uuid"                                      json:"approved_by,omitempty"`
	ApprovedAt       *time.Time `                                                      json:"approved_at,omitempty"`
	VersionedModel

	Project *Project `gorm:"foreignKey:ProjectID;references:ProjectID" json:"project,omitempty"`
	User    *User    `gorm:"foreignKey:UserID;references:UserID"       json:"user,omitempty"`
}

// TableName timesheet_entries
func (TimesheetEntry) TableName() string { return "timesheet_entries" }

// IsDraft reports whether the owner may still change the entry.
func (e *TimesheetEntry) IsDraft() bool { return e.Status == EntryDraft }

// HasTimes reports whether a clock range was recorded.
func (e *TimesheetEntry) HasTimes() bool { return e.StartTime != nil && e.EndTime != nil }
