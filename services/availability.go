package services

import (
	"context"
	"time"

	"gorm.io/gorm"

	"hotel-admin/failure"
	"hotel-admin/models"
	"hotel-admin/utils"
)

// ActiveBookingStatuses occupy a room; compared lower-cased.
var ActiveBookingStatuses = []string{"confirmed", "checked-in", "pending"}

// maxMatrixDays bounds a single availability request.
const maxMatrixDays = 366

// ComputeAvailability returns, per room type and per day (keyed YYYY-MM-DD), how many rooms
// of that type are not covered by any booking. A booking covers a day when
// check_in <= day < check_out. Callers filter bookings down to active ones.
func ComputeAvailability(roomsByType map[string][]string, bookings []models.Booking, dates []time.Time) map[string]map[string]int {
	typeOf := make(map[string]string)
	totals := make(map[string]int, len(roomsByType))
	for typeName, rooms := range roomsByType {
		seen := make(map[string]struct{}, len(rooms))
		for _, room := range rooms {
			if _, dup := seen[room]; dup {
				continue
			}
			seen[room] = struct{}{}
			typeOf[room] = typeName
		}
		totals[typeName] = len(seen)
	}

	result := make(map[string]map[string]int, len(roomsByType))
	for typeName := range roomsByType {
		result[typeName] = make(map[string]int, len(dates))
	}

	for _, date := range dates {
		day := utils.DayOf(date)
		key := day.Format(utils.DateLayout)

		occupied := make(map[string]struct{})
		for _, b := range bookings {
			if _, known := typeOf[b.RoomNumber]; !known {
				continue
			}
			if !day.Before(utils.DayOf(b.CheckIn)) && day.Before(utils.DayOf(b.CheckOut)) {
				occupied[b.RoomNumber] = struct{}{}
			}
		}

		used := make(map[string]int, len(roomsByType))
		for room := range occupied {
			used[typeOf[room]]++
		}
		for typeName, total := range totals {
			result[typeName][key] = total - used[typeName]
		}
	}

	return result
}

// DateRange lists every day from start to end, both included.
func DateRange(start, end time.Time) []time.Time {
	start, end = utils.DayOf(start), utils.DayOf(end)
	if end.Before(start) {
		return nil
	}
	days := make([]time.Time, 0, int(end.Sub(start).Hours()/24)+1)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// MonthDates lists every day of the given month.
func MonthDates(year int, month time.Month) []time.Time {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return DateRange(first, first.AddDate(0, 1, -1))
}

type AvailabilityService struct {
	DB    *gorm.DB
	Rooms *RoomService
}

func NewAvailabilityService(db *gorm.DB, rooms *RoomService) *AvailabilityService {
	return &AvailabilityService{DB: db, Rooms: rooms}
}

// Matrix computes free-room counts for every room type over [start, end].
func (s *AvailabilityService) Matrix(ctx context.Context, start, end time.Time) (map[string]map[string]int, error) {
	dates := DateRange(start, end)
	if len(dates) == 0 {
		return nil, failure.BadRequestFromString("end must not be before start")
	}
	if len(dates) > maxMatrixDays {
		return nil, failure.BadRequestFromString("date range is limited to one year")
	}

	grouped, err := s.Rooms.Grouped(ctx)
	if err != nil {
		return nil, err
	}

	var bookings []models.Booking
	err = s.DB.WithContext(ctx).
		Where("LOWER(status) IN ?", ActiveBookingStatuses).
		Where("check_in <= ? AND check_out > ?", dates[len(dates)-1], dates[0]).
		Find(&bookings).Error
	if err != nil {
		return nil, failure.InternalError("Failed to load bookings", err)
	}

	return ComputeAvailability(grouped, bookings, dates), nil
}

type AvailabilityQuery struct {
	RoomNumber string
	RoomTypeID uint
	CheckIn    time.Time
	CheckOut   time.Time
}

// IsAvailable reports whether the room, or any room of the type when no room number is
// given, is free for [CheckIn, CheckOut).
func (s *AvailabilityService) IsAvailable(ctx context.Context, q AvailabilityQuery) (bool, error) {
	if !q.CheckOut.After(q.CheckIn) {
		return false, ErrInvalidDateRange
	}
	db := s.DB.WithContext(ctx)

	if q.RoomNumber != "" {
		n, err := countOverlapping(db, q.RoomNumber, q.CheckIn, q.CheckOut)
		if err != nil {
			return false, failure.InternalError("Error checking room availability", err)
		}
		return n == 0, nil
	}

	if q.RoomTypeID == 0 {
		return false, failure.BadRequestFromString("room_number or room_type_id is required")
	}

	var rooms int64
	if err := db.Model(&models.Room{}).Where("room_type_id = ?", q.RoomTypeID).Count(&rooms).Error; err != nil {
		return false, failure.InternalError("Error checking room availability", err)
	}

	var busy int64
	err := db.Model(&models.Booking{}).
		Joins("JOIN rooms ON rooms.room_number = bookings.room_number").
		Where("rooms.room_type_id = ?", q.RoomTypeID).
		Where("LOWER(bookings.status) IN ?", ActiveBookingStatuses).
		Where("bookings.check_in < ? AND bookings.check_out > ?", q.CheckOut, q.CheckIn).
		Distinct("bookings.room_number").
		Count(&busy).Error
	if err != nil {
		return false, failure.InternalError("Error checking room availability", err)
	}

	return busy < rooms, nil
}

// countOverlapping counts active bookings on room that intersect [checkIn, checkOut).
func countOverlapping(db *gorm.DB, room string, checkIn, checkOut time.Time) (int64, error) {
	var n int64
	err := db.Model(&models.Booking{}).
		Where("room_number = ?", room).
		Where("LOWER(status) IN ?", ActiveBookingStatuses).
		Where("check_in < ? AND check_out > ?", checkOut, checkIn).
		Count(&n).Error
	return n, err
}
