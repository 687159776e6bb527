package model

import "time"

// Project status values
const (
	ProjectActive   = "active"
	ProjectInactive = "inactive"
)

// Project maps projects; only active projects accept new entries.
type Project struct {
	ProjectID   string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"project_id"`
	Name        string     `gorm:"type:varchar(200);not null"                     json:"name"`
	Description *string    `gorm:"type:text"                                      json:"description,omitempty"`
	ClientName  *string    `gorm:"type:varchar(200)"                              json:"client_name,omitempty"`
	Status      string     `gorm:"type:varchar(20);not null;default:'active'"     json:"status"`
	StartDate   *time.Time `gorm:"type:date"                                      json:"start_date,omitempty"`
	EndDate     *time.Time `gorm:"type:date"                                      json:"end_date,omitempty"`
	BaseModel
}

// TableName projects
func (Project) TableName() string { return "projects" }

// IsActive reports whether new entries may reference the project.
func (p *Project) IsActive() bool { return p.Status == ProjectActive }
