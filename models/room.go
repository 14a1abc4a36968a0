package models

import "time"

const (
	RoomStatusAvailable   = "available"
	RoomStatusBooked      = "booked"
	RoomStatusMaintenance = "maintenance"
)

// RoomStatuses lists every value Room.Status may hold.
var RoomStatuses = []string{RoomStatusAvailable, RoomStatusBooked, RoomStatusMaintenance}

type Room struct {
	ID         uint   `gorm:"column:room_id;primaryKey" json:"room_id"`
	RoomNumber string `gorm:"column:room_number;size:50;uniqueIndex;not null" json:"room_number"`
	RoomTypeID uint   `gorm:"column:room_type_id;index;not null" json:"room_type_id"`
	Status     string `gorm:"column:status;size:20;not null;default:available" json:"status"`

	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`

	RoomType *RoomType `gorm:"-" json:"room_type,omitempty"`
}

func (Room) TableName() string { return "rooms" }
