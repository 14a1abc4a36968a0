package services

import (
	"errors"
	"strings"

	mysql "github.com/go-sql-driver/mysql"
	"gorm.io/gorm"

	"hotel-admin/failure"
)

var (
	ErrBookingNotFound  = failure.NotFound("Booking not found")
	ErrRoomNotFound     = failure.NotFound("Room not found")
	ErrRoomTypeNotFound = failure.NotFound("Room type not found")

	ErrInvalidAction     = failure.BadRequestFromString("Invalid action. Use paid, checkin, checkout or cancel.")
	ErrInvalidDateRange  = failure.BadRequestFromString("Check-out date must be after check-in date")
	ErrMissingRoomNumber = failure.BadRequestFromString("Room number is required")
	ErrMissingRoomType   = failure.BadRequestFromString("Room type is required")
	ErrNegativeValue     = failure.BadRequestFromString("Price and capacities must not be negative")
	ErrInvalidRoomStatus = failure.BadRequestFromString("Room status must be available, booked or maintenance")

	ErrBookingFinalized  = failure.Conflict("Booking already finalized")
	ErrRoomUnavailable   = failure.Conflict("This room is already booked for the selected dates.")
	ErrDuplicateRoom     = failure.Conflict("Room number already exists.")
	ErrDuplicateRoomType = failure.Conflict("Room type already exists.")
	ErrRoomTypeInUse     = failure.Conflict("Room type still has rooms assigned")
)

func isDuplicateKeyError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var merr *mysql.MySQLError
	if errors.As(err, &merr) {
		return merr.Number == 1062
	}
	msg := err.Error()
	return strings.Contains(msg, "Duplicate entry") || strings.Contains(msg, "UNIQUE constraint failed")
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
