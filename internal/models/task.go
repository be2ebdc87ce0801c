package models

import "time"

type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusCompleted  TaskStatus = "completed"
)

// Valid reports whether s is one of the known task statuses.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted:
		return true
	}
	return false
}

// Task is a single dated entry on the work calendar. FillDate and
// ExpectedCompleteDate are date-only strings (YYYY-MM-DD); the calendar has no
// notion of time-of-day or timezone.
type Task struct {
	ID                   uint64     `gorm:"primarykey" json:"id"`
	FillDate             string     `gorm:"type:varchar(10);not null;index" json:"fill_date"`
	ExpectedCompleteDate *string    `gorm:"type:varchar(10)" json:"expected_complete_date"`
	CompanyID            *uint64    `gorm:"index" json:"company_id"`
	WorkItemID           uint64     `gorm:"not null" json:"work_item_id"`
	Description          string     `gorm:"type:text" json:"description"`
	Status               TaskStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	CompletedAt          *time.Time `json:"completed_at"`
	IsFromTemplate       bool       `gorm:"not null;default:false" json:"is_from_template"`
	TemplateID           *uint64    `gorm:"index" json:"template_id"`
	CreatedAt            time.Time  `json:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at"`

	// Relations
	Company  *Company `gorm:"foreignKey:CompanyID" json:"company,omitempty"`
	WorkItem WorkItem `gorm:"foreignKey:WorkItemID" json:"work_item,omitempty"`
}
