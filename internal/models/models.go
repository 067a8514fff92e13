package models

import (
	"time"

	"gorm.io/gorm"
)

// Project categories
const (
	CategoryPMO = "PMO"
	CategorySDA = "SDA"
)

// Project lifecycle statuses
const (
	ProjectStatusProgress      = "Progress"
	ProjectStatusHold          = "Hold"
	ProjectStatusDrop          = "Drop"
	ProjectStatusPengujianDone = "Pengujian Done"
	ProjectStatusProjectDone   = "Project Done"
)

// ProjectStatuses lists every project status in presentation order.
// Dashboard breakdowns iterate this slice so the order is stable.
var ProjectStatuses = []string{
	ProjectStatusProgress,
	ProjectStatusHold,
	ProjectStatusDrop,
	ProjectStatusPengujianDone,
	ProjectStatusProjectDone,
}

// Issue lifecycle statuses
const (
	IssueStatusOpen       = "OPEN"
	IssueStatusInProgress = "IN_PROGRESS"
	IssueStatusClosed     = "CLOSED"
)

func IsValidCategory(c string) bool {
	return c == CategoryPMO || c == CategorySDA
}

func IsValidProjectStatus(s string) bool {
	for _, v := range ProjectStatuses {
		if v == s {
			return true
		}
	}
	return false
}

func IsValidIssueStatus(s string) bool {
	return s == IssueStatusOpen || s == IssueStatusInProgress || s == IssueStatusClosed
}

// User represents a portal account
type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Username  string         `gorm:"uniqueIndex;size:100;not null" json:"username"`
	Password  string         `gorm:"size:255" json:"-"` // bcrypt hash
	Role      string         `gorm:"size:50;default:user" json:"role"`
	LastLogin *time.Time     `json:"last_login"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// Project represents a tracked testing project
type Project struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"size:200;not null" json:"name"`
	Owner     string         `gorm:"size:100;index;not null" json:"owner"` // username of the owning account
	Category  string         `gorm:"size:20;not null" json:"category"`     // PMO, SDA
	Status    string         `gorm:"size:50;not null" json:"projectStatus"`
	Progress  int            `gorm:"default:0" json:"progress"` // 0-100
	StartDate string         `gorm:"size:10" json:"startDate"`  // YYYY-MM-DD
	Issues    []Issue        `gorm:"foreignKey:ProjectID" json:"issues"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// Issue represents a test finding recorded against a project.
// Date fields are stored as YYYY-MM-DD strings so ordering and
// display match the report templates exactly.
type Issue struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	ProjectID      uint           `gorm:"index;not null" json:"project_id"`
	Date           string         `gorm:"size:10;not null" json:"date"`
	CaseNumber     string         `gorm:"size:50" json:"caseNumber"`
	TestCase       string         `gorm:"size:200" json:"testCase"`
	Description    string         `gorm:"type:text" json:"description"`
	ActualResult   string         `gorm:"type:text" json:"actualResult"`
	ExpectedResult string         `gorm:"type:text" json:"expectedResult"`
	Correction     *string        `gorm:"type:text" json:"correction,omitempty"`
	Status         string         `gorm:"size:20;default:OPEN" json:"status"` // OPEN, IN_PROGRESS, CLOSED
	DateClosed     *string        `gorm:"size:10" json:"dateClosed,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

// SystemLog records audit events (logins, project changes, report exports)
type SystemLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Level     string    `gorm:"size:20;index" json:"level"` // info, warning, error
	Module    string    `gorm:"size:100;index" json:"module"`
	Action    string    `gorm:"size:200;index" json:"action"`
	Message   string    `gorm:"type:text" json:"message"`
	UserID    *uint     `json:"user_id"`
	IP        string    `gorm:"size:50" json:"ip"`
	UserAgent string    `gorm:"size:500" json:"user_agent"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

// TableName overrides
func (User) TableName() string      { return "users" }
func (Project) TableName() string   { return "projects" }
func (Issue) TableName() string     { return "issues" }
func (SystemLog) TableName() string { return "system_logs" }
