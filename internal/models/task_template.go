package models

import "time"

type RepeatType string

const (
	RepeatMonthly   RepeatType = "monthly"
	RepeatQuarterly RepeatType = "quarterly"
	RepeatYearly    RepeatType = "yearly"
)

// Valid reports whether t is one of the known repeat types.
func (t RepeatType) Valid() bool {
	switch t {
	case RepeatMonthly, RepeatQuarterly, RepeatYearly:
		return true
	}
	return false
}

// TaskTemplate is a recurring task definition. RepeatDay is the day of month
// an occurrence lands on (clamped to the month's length); RepeatMonth is only
// meaningful for yearly templates.
type TaskTemplate struct {
	ID           uint64     `gorm:"primarykey" json:"id"`
	Name         string     `gorm:"type:varchar(255);not null" json:"name"`
	CompanyID    *uint64    `gorm:"index" json:"company_id"`
	WorkItemID   uint64     `gorm:"not null" json:"work_item_id"`
	Description  string     `gorm:"type:text" json:"description"`
	RepeatType   RepeatType `gorm:"type:varchar(20);not null" json:"repeat_type"`
	RepeatDay    int        `gorm:"not null;default:1" json:"repeat_day"`
	RepeatMonth  *int       `json:"repeat_month"`
	DurationDays int        `gorm:"not null;default:1" json:"duration_days"`
	IsActive     bool       `gorm:"not null" json:"is_active"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`

	// Relations
	Company  *Company `gorm:"foreignKey:CompanyID" json:"company,omitempty"`
	WorkItem WorkItem `gorm:"foreignKey:WorkItemID" json:"work_item,omitempty"`
}
