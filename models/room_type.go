package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type RoomType struct {
	ID               uint            `gorm:"column:room_type_id;primaryKey" json:"room_type_id"`
	TypeName         string          `gorm:"column:type_name;size:100;uniqueIndex;not null" json:"type_name"`
	PricePerNight    decimal.Decimal `gorm:"column:price_per_night;type:decimal(10,2);not null;default:0" json:"price_per_night"`
	CapacityAdults   uint            `gorm:"column:capacity_adults;not null;default:0" json:"capacity_adults"`
	CapacityChildren uint            `gorm:"column:capacity_children;not null;default:0" json:"capacity_children"`

	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (RoomType) TableName() string { return "room_types" }
