package model

// Roles allowed to read other users' timesheets.
const (
	RoleAdmin    = "admin"
	RoleHR       = "hr"
	RoleManager  = "manager"
	RoleEmployee = "employee"
)

// User maps users. Accounts are provisioned outside this service; the
// table is read for names on exports and reports.
type User struct {
	UserID     string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"user_id"`
	EmployeeID string `gorm:"type:varchar(32);not null"                      json:"employee_id"`
	FirstName  string `gorm:"type:varchar(100);not null"                     json:"first_name"`
	LastName   string `gorm:"type:varchar(100);not null;default:''"          json:"last_name"`
	Email      string `gorm:"type:varchar(255);not null"                     json:"email"`
	Role       string `gorm:"type:varchar(20);not null;default:'employee'"   json:"role"`
	IsActive   bool   `gorm:"not null;default:true"                          json:"is_active"`
	BaseModel
}

// TableName users
func (User) TableName() string { return "users" }

// FullName joins first and last name.
func (u *User) FullName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// CanReadOthers reports whether role may read another user's entries.
func CanReadOthers(role string) bool {
	switch role {
	case RoleAdmin, RoleHR, RoleManager:
		return true
	}
	return false
}
