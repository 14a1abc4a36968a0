package models

import (
	"errors"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Log actions.
const (
	ActionPaid     = "Paid"
	ActionCheckIn  = "Check-in"
	ActionCheckOut = "Check-out"
	ActionCancel   = "Cancel"
)

var ErrLogImmutable = errors.New("booking logs are append-only")

// BookingLog snapshots a booking at the moment of a status change. BookingID is a plain
// reference so entries survive the booking and room they describe.
type BookingLog struct {
	ID              uint           `gorm:"column:log_id;primaryKey" json:"log_id"`
	BookingID       uint           `gorm:"column:booking_id;index;not null" json:"booking_id"`
	GuestName       string         `gorm:"column:guest_name;size:150;not null;default:''" json:"guest_name"`
	Email           string         `gorm:"column:email;size:190;not null;default:''" json:"email"`
	RoomNumber      string         `gorm:"column:room_number;size:50;not null;default:''" json:"room_number"`
	Room            string         `gorm:"column:room;size:150;not null;default:''" json:"room"`
	RoomType        string         `gorm:"column:room_type;size:100;not null;default:''" json:"room_type"`
	PaymentStatus   string         `gorm:"column:payment_status;size:32;not null;default:''" json:"payment_status"`
	Status          string         `gorm:"column:status;size:20;not null;default:''" json:"status"`
	CheckIn         *time.Time     `gorm:"column:check_in;type:date" json:"check_in"`
	CheckOut        *time.Time     `gorm:"column:check_out;type:date" json:"check_out"`
	LastAction      string         `gorm:"column:last_action;size:20;not null" json:"last_action"`
	ActionTimestamp time.Time      `gorm:"column:action_timestamp;index;not null" json:"action_timestamp"`
	PerformedBy     string         `gorm:"column:performed_by;size:100;not null;default:Admin" json:"performed_by"`
	Changes         datatypes.JSON `gorm:"column:changes" json:"changes,omitempty"`
}

func (BookingLog) TableName() string { return "booking_logs" }

func (l *BookingLog) BeforeUpdate(tx *gorm.DB) error {
	return ErrLogImmutable
}

func (l *BookingLog) BeforeDelete(tx *gorm.DB) error {
	return ErrLogImmutable
}
