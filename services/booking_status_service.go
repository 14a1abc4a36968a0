package services

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"hotel-admin/failure"
	"hotel-admin/models"
	"hotel-admin/utils"
)

// Action tokens accepted by ApplyTransition.
const (
	ActionTokenPaid     = "paid"
	ActionTokenCheckIn  = "checkin"
	ActionTokenCheckOut = "checkout"
	ActionTokenCancel   = "cancel"
)

type transition struct {
	status  string
	payment string // empty keeps the current payment status
	action  string
}

var transitions = map[string]transition{
	ActionTokenPaid:     {status: models.StatusConfirmed, payment: models.PaymentPartial, action: models.ActionPaid},
	ActionTokenCheckIn:  {status: models.StatusCheckedIn, payment: models.PaymentPartial, action: models.ActionCheckIn},
	ActionTokenCheckOut: {status: models.StatusCheckedOut, payment: models.PaymentComplete, action: models.ActionCheckOut},
	ActionTokenCancel:   {status: models.StatusCancelled, action: models.ActionCancel},
}

// IsTerminal reports whether no transition may leave status.
func IsTerminal(status string) bool {
	s := strings.TrimSpace(status)
	return strings.EqualFold(s, models.StatusCheckedOut) || strings.EqualFold(s, models.StatusCancelled)
}

type TransitionResult struct {
	BookingID     uint   `json:"booking_id"`
	Status        string `json:"status"`
	PaymentStatus string `json:"payment_status"`
	StoredPayment string `json:"-"`
	LogID         uint   `json:"log_id"`
}

type statusChange struct {
	From statusPair `json:"from"`
	To   statusPair `json:"to"`
}

type statusPair struct {
	Status        string `json:"status"`
	PaymentStatus string `json:"payment_status"`
}

// BookingStatusService moves bookings through their lifecycle. Each change and its log
// entry are written in one transaction.
type BookingStatusService struct {
	DB       *gorm.DB
	Logs     *BookingLogService
	Payments *PaymentStatusTable
	Location *time.Location
	Now      func() time.Time
}

func NewBookingStatusService(db *gorm.DB, logs *BookingLogService, payments *PaymentStatusTable, loc *time.Location) *BookingStatusService {
	if loc == nil {
		loc = time.UTC
	}
	return &BookingStatusService{DB: db, Logs: logs, Payments: payments, Location: loc, Now: time.Now}
}

func (s *BookingStatusService) now() time.Time {
	if s.Now != nil {
		return s.Now().In(s.Location)
	}
	return time.Now().In(s.Location)
}

// GuestName collapses whitespace in the guest's name, falling back to "Guest".
func GuestName(b models.Booking) string {
	if b.User != nil {
		if name := strings.Join(strings.Fields(b.User.FullName), " "); name != "" {
			return name
		}
	}
	return "Guest"
}

// RoomLabel is "Room <number>", else the room type name, else "—".
func RoomLabel(b models.Booking) string {
	if n := strings.TrimSpace(b.RoomNumber); n != "" {
		return "Room " + n
	}
	if b.RoomType != nil && strings.TrimSpace(b.RoomType.TypeName) != "" {
		return strings.TrimSpace(b.RoomType.TypeName)
	}
	return "—"
}

// ApplyTransition applies action to the booking. at is an optional front-desk timestamp
// used by checkin and checkout.
func (s *BookingStatusService) ApplyTransition(ctx context.Context, bookingID uint, action, at string) (*TransitionResult, error) {
	token := strings.ToLower(strings.TrimSpace(action))
	tr, ok := transitions[token]
	if !ok {
		return nil, ErrInvalidAction
	}
	if bookingID == 0 {
		return nil, failure.BadRequestFromString("Missing booking_id or action")
	}

	var stamp *time.Time
	if strings.TrimSpace(at) != "" && (token == ActionTokenCheckIn || token == ActionTokenCheckOut) {
		t, err := utils.ParseDateTime(at, s.Location)
		if err != nil {
			return nil, failure.BadRequestFromString("Invalid datetime")
		}
		stamp = &t
	}

	result := &TransitionResult{BookingID: bookingID}
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var booking models.Booking
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&booking, bookingID).Error
		if err != nil {
			if isNotFound(err) {
				return ErrBookingNotFound
			}
			return failure.InternalError("Update failed", err)
		}

		if IsTerminal(booking.Status) {
			return ErrBookingFinalized
		}

		refs := []models.Booking{booking}
		if err := attachBookingRefs(tx, refs); err != nil {
			return failure.InternalError("Update failed", err)
		}
		booking = refs[0]

		prevStatus, prevPayment := booking.Status, booking.PaymentStatus
		current := s.Payments.Canonical(prevPayment)
		target := current
		if tr.payment != "" && paymentRank(tr.payment) >= paymentRank(current) {
			target = tr.payment
		}
		stored := s.Payments.Storable(target)

		updates := map[string]interface{}{
			"status":         tr.status,
			"payment_status": stored,
		}
		if stamp != nil {
			switch token {
			case ActionTokenCheckIn:
				updates["check_in_time"] = *stamp
			case ActionTokenCheckOut:
				day := utils.DayOf(*stamp)
				if !day.After(utils.DayOf(booking.CheckIn)) {
					return ErrInvalidDateRange
				}
				updates["check_out_time"] = *stamp
				updates["check_out"] = day
				booking.CheckOut = day
			}
		}

		if err := tx.Model(&models.Booking{}).Where("booking_id = ?", booking.ID).Updates(updates).Error; err != nil {
			return failure.InternalError("Update failed", err)
		}

		actionAt := utils.WallClock(s.now())
		if stamp != nil {
			actionAt = *stamp
		}

		changes, err := json.Marshal(statusChange{
			From: statusPair{Status: prevStatus, PaymentStatus: prevPayment},
			To:   statusPair{Status: tr.status, PaymentStatus: stored},
		})
		if err != nil {
			return failure.InternalError("Update failed", err)
		}

		checkIn, checkOut := booking.CheckIn, booking.CheckOut
		entry := models.BookingLog{
			BookingID:       booking.ID,
			GuestName:       GuestName(booking),
			RoomNumber:      booking.RoomNumber,
			Room:            RoomLabel(booking),
			PaymentStatus:   prevPayment,
			Status:          tr.status,
			CheckIn:         &checkIn,
			CheckOut:        &checkOut,
			LastAction:      tr.action,
			ActionTimestamp: actionAt,
			PerformedBy:     "Admin",
			Changes:         datatypes.JSON(changes),
		}
		if booking.User != nil && booking.User.Email != nil {
			entry.Email = *booking.User.Email
		}
		if booking.RoomType != nil {
			entry.RoomType = booking.RoomType.TypeName
		}
		if err := s.Logs.Append(tx, &entry); err != nil {
			return err
		}

		result.Status = tr.status
		result.PaymentStatus = target
		result.StoredPayment = stored
		result.LogID = entry.ID
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Uint("booking_id", bookingID).
		Str("action", token).
		Str("status", result.Status).
		Str("payment_status", result.StoredPayment).
		Msg("booking status updated")
	return result, nil
}
