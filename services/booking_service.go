// services/booking_service.go
package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"hotel-admin/failure"
	"hotel-admin/models"
	"hotel-admin/utils"
)

type CreateBookingInput struct {
	UserID     *uint
	RoomNumber string
	CheckIn    time.Time
	CheckOut   time.Time
	Adults     uint
	Children   uint
	// Nil means nights × the room type's nightly price.
	TotalPrice *decimal.Decimal
	Notes      string
}

// BookingRow is the admin listing shape.
type BookingRow struct {
	BookingID     uint            `json:"booking_id"`
	GuestName     string          `json:"guest_name"`
	Email         string          `json:"email"`
	RoomType      string          `json:"room_type"`
	RoomNumber    string          `json:"room_number"`
	CheckIn       string          `json:"check_in"`
	CheckOut      string          `json:"check_out"`
	CheckInTime   *time.Time      `json:"check_in_time"`
	CheckOutTime  *time.Time      `json:"check_out_time"`
	Guests        string          `json:"guests"`
	TotalPrice    decimal.Decimal `json:"total_price"`
	PaymentStatus string          `json:"payment_status"`
	BookingStatus string          `json:"booking_status"`
	CreatedAt     time.Time       `json:"created_at"`
}

// CalendarEntry feeds the room matrix.
type CalendarEntry struct {
	ID         uint   `json:"id"`
	RoomNumber string `json:"room_number"`
	CheckIn    string `json:"checkIn"`
	CheckOut   string `json:"checkOut"`
	Guest      string `json:"guest"`
	Source     string `json:"source"`
	Status     string `json:"status"`
}

// BookingService wraps *gorm.DB for booking reads and creation.
type BookingService struct {
	DB       *gorm.DB
	Payments *PaymentStatusTable
}

func NewBookingService(db *gorm.DB, payments *PaymentStatusTable) *BookingService {
	return &BookingService{DB: db, Payments: payments}
}

// Create inserts a Confirmed booking after checking, under a row lock, that no active
// booking on the same room overlaps [CheckIn, CheckOut).
func (s *BookingService) Create(ctx context.Context, in CreateBookingInput) (*models.Booking, error) {
	number := strings.TrimSpace(in.RoomNumber)
	if number == "" {
		return nil, ErrMissingRoomNumber
	}
	checkIn, checkOut := utils.DayOf(in.CheckIn), utils.DayOf(in.CheckOut)
	if !checkOut.After(checkIn) {
		return nil, ErrInvalidDateRange
	}
	if in.TotalPrice != nil && in.TotalPrice.IsNegative() {
		return nil, ErrNegativeValue
	}
	adults := in.Adults
	if adults == 0 {
		adults = 1
	}

	var booking models.Booking
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var room models.Room
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("room_number = ?", number).
			First(&room).Error
		if err != nil {
			if isNotFound(err) {
				return ErrRoomNotFound
			}
			return failure.InternalError("Error creating booking", err)
		}
		if room.Status == models.RoomStatusMaintenance {
			return failure.Conflict("Room is under maintenance")
		}

		var roomType models.RoomType
		if err := tx.First(&roomType, room.RoomTypeID).Error; err != nil {
			if isNotFound(err) {
				return ErrRoomTypeNotFound
			}
			return failure.InternalError("Error creating booking", err)
		}

		if in.UserID != nil {
			if err := tx.First(&models.User{}, *in.UserID).Error; err != nil {
				if isNotFound(err) {
					return failure.NotFound("Guest not found")
				}
				return failure.InternalError("Error creating booking", err)
			}
		}

		overlapping, err := countOverlapping(tx.Clauses(clause.Locking{Strength: "UPDATE"}), number, checkIn, checkOut)
		if err != nil {
			return failure.InternalError("Error creating booking", err)
		}
		if overlapping > 0 {
			return ErrRoomUnavailable
		}

		nights := decimal.NewFromInt(int64(checkOut.Sub(checkIn).Hours() / 24))
		total := roomType.PricePerNight.Mul(nights)
		if in.TotalPrice != nil {
			total = *in.TotalPrice
		}

		booking = models.Booking{
			UserID:        in.UserID,
			RoomTypeID:    room.RoomTypeID,
			RoomNumber:    number,
			CheckIn:       checkIn,
			CheckOut:      checkOut,
			Adults:        adults,
			Children:      in.Children,
			TotalPrice:    total.Round(2),
			PaymentStatus: s.Payments.Storable(models.PaymentPending),
			Status:        models.StatusConfirmed,
			Notes:         strings.TrimSpace(in.Notes),
		}
		if err := tx.Create(&booking).Error; err != nil {
			return failure.InternalError("Error creating booking", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().Uint("booking_id", booking.ID).Str("room_number", number).Msg("booking created")
	return &booking, nil
}

func (s *BookingService) Get(ctx context.Context, id uint) (*models.Booking, error) {
	var booking models.Booking
	db := s.DB.WithContext(ctx)
	if err := db.First(&booking, id).Error; err != nil {
		if isNotFound(err) {
			return nil, ErrBookingNotFound
		}
		return nil, failure.InternalError("Failed to fetch booking", err)
	}
	refs := []models.Booking{booking}
	if err := attachBookingRefs(db, refs); err != nil {
		return nil, failure.InternalError("Failed to fetch booking", err)
	}
	return &refs[0], nil
}

// ListAll returns every booking, newest first.
func (s *BookingService) ListAll(ctx context.Context) ([]BookingRow, error) {
	var bookings []models.Booking
	db := s.DB.WithContext(ctx)
	err := db.
		Order("created_at DESC").
		Order("booking_id DESC").
		Find(&bookings).Error
	if err != nil {
		return nil, failure.InternalError("Failed to fetch bookings", err)
	}
	if err := attachBookingRefs(db, bookings); err != nil {
		return nil, failure.InternalError("Failed to fetch bookings", err)
	}

	rows := make([]BookingRow, 0, len(bookings))
	for _, b := range bookings {
		row := BookingRow{
			BookingID:     b.ID,
			GuestName:     GuestName(b),
			RoomNumber:    b.RoomNumber,
			CheckIn:       utils.FormatDate(b.CheckIn),
			CheckOut:      utils.FormatDate(b.CheckOut),
			CheckInTime:   b.CheckInTime,
			CheckOutTime:  b.CheckOutTime,
			Guests:        guestsLabel(b),
			TotalPrice:    b.TotalPrice,
			PaymentStatus: s.Payments.Canonical(b.PaymentStatus),
			BookingStatus: b.Status,
			CreatedAt:     b.CreatedAt,
		}
		if b.User != nil && b.User.Email != nil {
			row.Email = *b.User.Email
		}
		if b.RoomType != nil {
			row.RoomType = b.RoomType.TypeName
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func guestsLabel(b models.Booking) string {
	return fmt.Sprintf("Adult %d | Child %d", b.Adults, b.Children)
}

// Calendar lists active bookings ordered by check-in.
func (s *BookingService) Calendar(ctx context.Context) ([]CalendarEntry, error) {
	var bookings []models.Booking
	db := s.DB.WithContext(ctx)
	err := db.
		Where("LOWER(status) IN ?", ActiveBookingStatuses).
		Order("check_in").
		Order("booking_id").
		Find(&bookings).Error
	if err != nil {
		return nil, failure.InternalError("Internal server error", err)
	}
	if err := attachBookingRefs(db, bookings); err != nil {
		return nil, failure.InternalError("Internal server error", err)
	}

	entries := make([]CalendarEntry, 0, len(bookings))
	for _, b := range bookings {
		guest := "Guest"
		if b.User != nil && strings.TrimSpace(b.User.FullName) != "" {
			guest = GuestName(b)
		} else if strings.TrimSpace(b.Notes) != "" {
			guest = strings.TrimSpace(b.Notes)
		}
		entries = append(entries, CalendarEntry{
			ID:         b.ID,
			RoomNumber: b.RoomNumber,
			CheckIn:    utils.FormatDate(b.CheckIn),
			CheckOut:   utils.FormatDate(b.CheckOut),
			Guest:      guest,
			Source:     "Direct",
			Status:     b.Status,
		})
	}
	return entries, nil
}
