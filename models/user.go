package models

import "time"

// User is the guest a booking may point at.
type User struct {
	ID        uint      `gorm:"column:user_id;primaryKey" json:"user_id"`
	FullName  string    `gorm:"column:full_name;size:150;not null;default:''" json:"full_name"`
	Email     *string   `gorm:"column:email;size:190;uniqueIndex" json:"email,omitempty"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
}

func (User) TableName() string { return "users" }
