package models

import (
	"time"
)

type User struct {
	ID           uint64    `gorm:"primarykey" json:"id"`
	Username     string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"username"`
	PasswordHash string    `gorm:"type:varchar(255)" json:"-"`
	Admin        bool      `gorm:"not null;default:false" json:"admin"`
	Points       int       `gorm:"not null;default:0" json:"points"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Relations
	Tasks   []Task   `gorm:"foreignKey:AssignedUserID" json:"-"`
	Rewards []Reward `gorm:"foreignKey:AssignedUserID" json:"-"`
}

// AddPoints credits points. Non-positive amounts are ignored.
func (u *User) AddPoints(points int) {
	if points > 0 {
		u.Points += points
	}
}

// SubtractPoints debits points. The balance never goes negative: a debit
// larger than the current balance is ignored.
func (u *User) SubtractPoints(points int) {
	if points > 0 && u.Points >= points {
		u.Points -= points
	}
}

// HasPassword reports whether the user carries a stored credential.
// Only the admin account ever does.
func (u *User) HasPassword() bool {
	return u.PasswordHash != ""
}
