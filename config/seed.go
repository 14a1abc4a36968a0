package config

import (
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"hotel-admin/models"
)

type seedRoomType struct {
	name     string
	price    string
	adults   uint
	children uint
	rooms    []string
}

var seedRoomTypes = []seedRoomType{
	{name: "Standard", price: "1500.00", adults: 2, children: 1, rooms: []string{"101", "102", "103"}},
	{name: "Superior", price: "2200.00", adults: 3, children: 1, rooms: []string{"201", "202"}},
	{name: "Deluxe", price: "3200.00", adults: 4, children: 2, rooms: []string{"301", "302"}},
	{name: "Connecting", price: "4500.00", adults: 5, children: 3, rooms: []string{"401"}},
}

// SeedDatabase fills an empty catalog with room types, rooms and a sample guest. Tables
// that already hold rows are left alone.
func SeedDatabase(db *gorm.DB) error {
	// ---------------- RoomTypes + Rooms ----------------
	var rtCount int64
	if err := db.Model(&models.RoomType{}).Count(&rtCount).Error; err != nil {
		return err
	}

	if rtCount == 0 {
		err := db.Transaction(func(tx *gorm.DB) error {
			for _, s := range seedRoomTypes {
				rt := models.RoomType{
					TypeName:         s.name,
					PricePerNight:    decimal.RequireFromString(s.price),
					CapacityAdults:   s.adults,
					CapacityChildren: s.children,
				}
				if err := tx.Create(&rt).Error; err != nil {
					return err
				}
				for _, number := range s.rooms {
					room := models.Room{RoomNumber: number, RoomTypeID: rt.ID, Status: models.RoomStatusAvailable}
					if err := tx.Create(&room).Error; err != nil {
						return err
					}
				}
			}
			return nil
		})
		if err != nil {
			return err
		}
		log.Info().Int("room_types", len(seedRoomTypes)).Msg("room types and rooms seeded")
	}

	// ---------------- Users ----------------
	var userCount int64
	if err := db.Model(&models.User{}).Count(&userCount).Error; err != nil {
		return err
	}
	if userCount == 0 {
		email := "guest@hotel.local"
		if err := db.Create(&models.User{FullName: "Sample Guest", Email: &email}).Error; err != nil {
			log.Warn().Err(err).Msg("failed to seed sample guest")
		} else {
			log.Info().Msg("sample guest seeded")
		}
	}

	return nil
}
