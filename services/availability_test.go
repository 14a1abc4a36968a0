package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel-admin/failure"
	"hotel-admin/models"
)

func newBooking(t *testing.T, room, in, out, status string) models.Booking {
	return models.Booking{RoomNumber: room, CheckIn: day(t, in), CheckOut: day(t, out), Status: status}
}

func TestComputeAvailability_FullyBookedDay(t *testing.T) {
	rooms := map[string][]string{"Deluxe": {"301", "302", "303"}}
	bookings := []models.Booking{
		newBooking(t, "301", "2025-11-10", "2025-11-11", models.StatusConfirmed),
		newBooking(t, "302", "2025-11-10", "2025-11-12", models.StatusConfirmed),
		newBooking(t, "303", "2025-11-08", "2025-11-11", models.StatusCheckedIn),
	}
	dates := DateRange(day(t, "2025-11-09"), day(t, "2025-11-11"))

	got := ComputeAvailability(rooms, bookings, dates)

	assert.Equal(t, 2, got["Deluxe"]["2025-11-09"])
	assert.Equal(t, 0, got["Deluxe"]["2025-11-10"])
	assert.Equal(t, 2, got["Deluxe"]["2025-11-11"])
}

func TestComputeAvailability_ThreeRoomsBookedOnOneDay(t *testing.T) {
	rooms := map[string][]string{"Standard": {"101", "102", "103"}}
	bookings := []models.Booking{
		newBooking(t, "101", "2025-11-10", "2025-11-11", models.StatusConfirmed),
		newBooking(t, "102", "2025-11-10", "2025-11-11", models.StatusConfirmed),
		newBooking(t, "103", "2025-11-10", "2025-11-11", models.StatusConfirmed),
	}

	got := ComputeAvailability(rooms, bookings, DateRange(day(t, "2025-11-09"), day(t, "2025-11-10")))

	assert.Equal(t, 3, got["Standard"]["2025-11-09"])
	assert.Equal(t, 0, got["Standard"]["2025-11-10"])
}

func TestComputeAvailability_OverlappingBookingsOnOneRoomCountOnce(t *testing.T) {
	rooms := map[string][]string{"Standard": {"101", "102"}}
	bookings := []models.Booking{
		newBooking(t, "101", "2025-11-01", "2025-11-05", models.StatusConfirmed),
		newBooking(t, "101", "2025-11-03", "2025-11-04", models.StatusConfirmed),
	}

	got := ComputeAvailability(rooms, bookings, DateRange(day(t, "2025-11-03"), day(t, "2025-11-03")))

	assert.Equal(t, 1, got["Standard"]["2025-11-03"])
}

func TestComputeAvailability_EdgeCases(t *testing.T) {
	rooms := map[string][]string{
		"Suite":  {},
		"Single": {"501", "501"},
	}
	bookings := []models.Booking{
		newBooking(t, "999", "2025-01-01", "2025-01-10", models.StatusConfirmed),
		newBooking(t, "501", "2025-01-01", "2025-01-02", models.StatusConfirmed),
	}

	got := ComputeAvailability(rooms, bookings, DateRange(day(t, "2025-01-01"), day(t, "2025-01-02")))

	assert.Equal(t, 0, got["Suite"]["2025-01-01"])
	assert.Equal(t, 0, got["Single"]["2025-01-01"])
	// checkout day is free
	assert.Equal(t, 1, got["Single"]["2025-01-02"])
}

func TestDateRangeAndMonthDates(t *testing.T) {
	assert.Nil(t, DateRange(day(t, "2025-01-02"), day(t, "2025-01-01")))
	assert.Len(t, DateRange(day(t, "2025-01-01"), day(t, "2025-01-01")), 1)

	feb := MonthDates(2024, time.February)
	require.Len(t, feb, 29)
	assert.Equal(t, "2024-02-29", feb[28].Format("2006-01-02"))
}

func TestAvailabilityService_Matrix(t *testing.T) {
	db := newTestDB(t)
	seedRoomType(t, db, "Deluxe", "3200", "301", "302", "303")
	seedRoomType(t, db, "Suite", "9000")
	seedBooking(t, db, newBooking(t, "301", "2025-11-10", "2025-11-11", models.StatusConfirmed))
	seedBooking(t, db, newBooking(t, "302", "2025-11-10", "2025-11-11", "pending"))
	seedBooking(t, db, newBooking(t, "303", "2025-11-10", "2025-11-11", models.StatusCheckedIn))
	// inactive bookings do not occupy rooms
	seedBooking(t, db, newBooking(t, "301", "2025-11-09", "2025-11-10", models.StatusCancelled))

	svc := NewAvailabilityService(db, NewRoomService(db, NewRoomTypeService(db)))
	got, err := svc.Matrix(context.Background(), day(t, "2025-11-09"), day(t, "2025-11-10"))
	require.NoError(t, err)

	assert.Equal(t, 3, got["Deluxe"]["2025-11-09"])
	assert.Equal(t, 0, got["Deluxe"]["2025-11-10"])
	assert.Equal(t, 0, got["Suite"]["2025-11-10"])
}

func TestAvailabilityService_MatrixRejectsBadRange(t *testing.T) {
	db := newTestDB(t)
	svc := NewAvailabilityService(db, NewRoomService(db, NewRoomTypeService(db)))

	_, err := svc.Matrix(context.Background(), day(t, "2025-11-10"), day(t, "2025-11-09"))
	assert.Equal(t, 400, failure.GetCode(err))

	_, err = svc.Matrix(context.Background(), day(t, "2025-01-01"), day(t, "2026-06-01"))
	assert.Equal(t, 400, failure.GetCode(err))
}

func TestAvailabilityService_IsAvailable(t *testing.T) {
	db := newTestDB(t)
	rt := seedRoomType(t, db, "Standard", "1500", "101", "102")
	seedBooking(t, db, newBooking(t, "101", "2025-11-10", "2025-11-12", models.StatusConfirmed))
	svc := NewAvailabilityService(db, NewRoomService(db, NewRoomTypeService(db)))
	ctx := context.Background()

	ok, err := svc.IsAvailable(ctx, AvailabilityQuery{RoomNumber: "101", CheckIn: day(t, "2025-11-11"), CheckOut: day(t, "2025-11-13")})
	require.NoError(t, err)
	assert.False(t, ok)

	// half-open: leaving on the 12th frees the room that night
	ok, err = svc.IsAvailable(ctx, AvailabilityQuery{RoomNumber: "101", CheckIn: day(t, "2025-11-12"), CheckOut: day(t, "2025-11-13")})
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.IsAvailable(ctx, AvailabilityQuery{RoomTypeID: rt.ID, CheckIn: day(t, "2025-11-10"), CheckOut: day(t, "2025-11-11")})
	require.NoError(t, err)
	assert.True(t, ok)

	seedBooking(t, db, newBooking(t, "102", "2025-11-10", "2025-11-11", models.StatusConfirmed))
	ok, err = svc.IsAvailable(ctx, AvailabilityQuery{RoomTypeID: rt.ID, CheckIn: day(t, "2025-11-10"), CheckOut: day(t, "2025-11-11")})
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = svc.IsAvailable(ctx, AvailabilityQuery{RoomNumber: "101", CheckIn: day(t, "2025-11-12"), CheckOut: day(t, "2025-11-12")})
	assert.ErrorIs(t, err, ErrInvalidDateRange)
}
