package models

import (
	"time"
)

type Task struct {
	ID                uint64     `gorm:"primarykey" json:"id"`
	Title             string     `gorm:"not null" json:"title"`
	Description       string     `gorm:"type:text" json:"description"`
	Completed         bool       `gorm:"not null;default:false" json:"completed"`
	Daily             bool       `gorm:"not null;default:false" json:"daily"`
	LastCompletedDate *time.Time `gorm:"type:date" json:"last_completed_date"`
	RewardPoints      int        `gorm:"not null;default:0" json:"reward_points"`
	AssignedUserID    *uint64    `json:"assigned_user_id"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`

	// Relations
	AssignedUser *User `gorm:"foreignKey:AssignedUserID" json:"assigned_user,omitempty"`
}

// CompletedOn reports whether the task was last completed on the given
// calendar date. Tasks without a completion date never match.
func (t *Task) CompletedOn(date time.Time) bool {
	if t.LastCompletedDate == nil {
		return false
	}
	y1, m1, d1 := t.LastCompletedDate.Date()
	y2, m2, d2 := date.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
