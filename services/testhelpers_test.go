package services

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"hotel-admin/models"
	"hotel-admin/utils"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:services_%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.RoomType{},
		&models.Room{},
		&models.Booking{},
		&models.BookingLog{},
	))
	return db
}

func day(t *testing.T, raw string) time.Time {
	t.Helper()
	d, err := utils.ParseDate(raw)
	require.NoError(t, err)
	return d
}

// Seeded room types, users and rooms take ids from separate ranges so a query that joins
// on the wrong key cannot find a matching row by accident. Bookings start at 1.
const (
	roomTypeIDBase = 20
	userIDBase     = 40
	roomIDBase     = 60
)

func nextID(t *testing.T, db *gorm.DB, model interface{}, column string, base uint) uint {
	t.Helper()
	var maxID uint
	require.NoError(t, db.Model(model).Select("COALESCE(MAX("+column+"), 0)").Scan(&maxID).Error)
	if maxID < base {
		maxID = base
	}
	return maxID + 1
}

func seedRoomType(t *testing.T, db *gorm.DB, name, price string, rooms ...string) models.RoomType {
	t.Helper()
	rt := models.RoomType{
		ID:               nextID(t, db, &models.RoomType{}, "room_type_id", roomTypeIDBase),
		TypeName:         name,
		PricePerNight:    decimal.RequireFromString(price),
		CapacityAdults:   2,
		CapacityChildren: 1,
	}
	require.NoError(t, db.Create(&rt).Error)
	for _, number := range rooms {
		require.NoError(t, db.Create(&models.Room{
			ID:         nextID(t, db, &models.Room{}, "room_id", roomIDBase),
			RoomNumber: number,
			RoomTypeID: rt.ID,
			Status:     models.RoomStatusAvailable,
		}).Error)
	}
	return rt
}

func seedUser(t *testing.T, db *gorm.DB, name, email string) models.User {
	t.Helper()
	u := models.User{ID: nextID(t, db, &models.User{}, "user_id", userIDBase), FullName: name}
	if email != "" {
		u.Email = &email
	}
	require.NoError(t, db.Create(&u).Error)
	return u
}

// seedBooking inserts b, filling payment and lifecycle status when blank.
func seedBooking(t *testing.T, db *gorm.DB, b models.Booking) models.Booking {
	t.Helper()
	if b.PaymentStatus == "" {
		b.PaymentStatus = models.PaymentPending
	}
	if b.Status == "" {
		b.Status = models.StatusConfirmed
	}
	if b.Adults == 0 {
		b.Adults = 1
	}
	require.NoError(t, db.Create(&b).Error)
	return b
}

func countLogs(t *testing.T, db *gorm.DB, bookingID uint) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&models.BookingLog{}).Where("booking_id = ?", bookingID).Count(&n).Error)
	return n
}
