package models

import (
	"time"
)

type Reward struct {
	ID             uint64    `gorm:"primarykey" json:"id"`
	Title          string    `gorm:"not null" json:"title"`
	Description    string    `gorm:"type:text" json:"description"`
	Price          int       `gorm:"not null;default:0" json:"price"`
	Redeemed       bool      `gorm:"not null;default:false" json:"redeemed"`
	AssignedUserID *uint64   `json:"assigned_user_id"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	// Relations
	AssignedUser *User `gorm:"foreignKey:AssignedUserID" json:"assigned_user,omitempty"`
}
