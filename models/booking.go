package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Lifecycle statuses.
const (
	StatusConfirmed  = "Confirmed"
	StatusCheckedIn  = "Checked-in"
	StatusCheckedOut = "Checked-out"
	StatusCancelled  = "Cancelled"
	StatusPending    = "pending"
)

// Canonical payment statuses. The stored column may use a different vocabulary.
const (
	PaymentPending  = "Pending"
	PaymentPartial  = "Partial Payment"
	PaymentComplete = "Payment Complete"
)

// CanonicalPaymentStatuses is ordered from least to most paid.
var CanonicalPaymentStatuses = []string{PaymentPending, PaymentPartial, PaymentComplete}

type Booking struct {
	ID            uint            `gorm:"column:booking_id;primaryKey" json:"booking_id"`
	UserID        *uint           `gorm:"column:user_id;index" json:"user_id"`
	RoomTypeID    uint            `gorm:"column:room_type_id;not null" json:"room_type_id"`
	RoomNumber    string          `gorm:"column:room_number;size:50;not null;default:'';index:idx_bookings_room_dates,priority:1" json:"room_number"`
	CheckIn       time.Time       `gorm:"column:check_in;type:date;not null;index:idx_bookings_room_dates,priority:2" json:"check_in"`
	CheckOut      time.Time       `gorm:"column:check_out;type:date;not null;index:idx_bookings_room_dates,priority:3" json:"check_out"`
	Adults        uint            `gorm:"column:adults;not null;default:1" json:"adults"`
	Children      uint            `gorm:"column:children;not null;default:0" json:"children"`
	TotalPrice    decimal.Decimal `gorm:"column:total_price;type:decimal(10,2);not null;default:0" json:"total_price"`
	PaymentStatus string          `gorm:"column:payment_status;size:32;not null;default:Pending" json:"payment_status"`
	Status        string          `gorm:"column:status;size:20;not null;default:Confirmed;index" json:"status"`
	CheckInTime   *time.Time      `gorm:"column:check_in_time" json:"check_in_time,omitempty"`
	CheckOutTime  *time.Time      `gorm:"column:check_out_time" json:"check_out_time,omitempty"`
	Notes         string          `gorm:"column:notes;type:text" json:"notes,omitempty"`
	CreatedAt     time.Time       `gorm:"column:created_at" json:"created_at"`

	// Loaded by id in the services layer, not through gorm associations.
	User     *User     `gorm:"-" json:"user,omitempty"`
	RoomType *RoomType `gorm:"-" json:"room_type,omitempty"`
}

func (Booking) TableName() string { return "bookings" }

// Nights is the number of nights in [CheckIn, CheckOut).
func (b Booking) Nights() int {
	return int(b.CheckOut.Sub(b.CheckIn).Hours() / 24)
}
