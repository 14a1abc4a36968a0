package services

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	"hotel-admin/failure"
	"hotel-admin/models"
	"hotel-admin/utils"
)

const defaultRecentLimit = 10

type DashboardStats struct {
	TotalBookings   int64 `json:"total_bookings"`
	PendingPayments int64 `json:"pending_payment_bookings"`
	Confirmed       int64 `json:"confirmed"`
	CheckedIn       int64 `json:"checked_in"`
	CheckedOut      int64 `json:"checked_out"`
	Cancelled       int64 `json:"cancelled"`
}

// DateWindow limits dashboard queries to bookings created within [From, To]. A nil bound is
// open.
type DateWindow struct {
	From *time.Time
	To   *time.Time
}

type RecentBooking struct {
	BookingID     uint   `json:"booking_id"`
	GuestName     string `json:"guest_name"`
	RoomType      string `json:"room_type"`
	RoomNumber    string `json:"room_number"`
	CheckIn       string `json:"check_in"`
	CheckOut      string `json:"check_out"`
	PaymentStatus string `json:"payment_status"`
	Status        string `json:"status"`
}

type DashboardService struct {
	DB       *gorm.DB
	Payments *PaymentStatusTable
}

func NewDashboardService(db *gorm.DB, payments *PaymentStatusTable) *DashboardService {
	return &DashboardService{DB: db, Payments: payments}
}

func (s *DashboardService) window(ctx context.Context, w DateWindow) *gorm.DB {
	q := s.DB.WithContext(ctx).Model(&models.Booking{})
	if w.From != nil {
		q = q.Where("created_at >= ?", utils.DayOf(*w.From))
	}
	if w.To != nil {
		q = q.Where("created_at < ?", utils.DayOf(*w.To).AddDate(0, 0, 1))
	}
	return q
}

func (s *DashboardService) Stats(ctx context.Context, w DateWindow) (*DashboardStats, error) {
	var rows []struct {
		Status        string
		PaymentStatus string
		Total         int64
	}
	err := s.window(ctx, w).
		Select("status, payment_status, COUNT(*) AS total").
		Group("status, payment_status").
		Scan(&rows).Error
	if err != nil {
		return nil, failure.InternalError("Failed to fetch stats", err)
	}

	stats := &DashboardStats{}
	for _, row := range rows {
		stats.TotalBookings += row.Total
		if s.Payments.Canonical(row.PaymentStatus) == models.PaymentPending {
			stats.PendingPayments += row.Total
		}
		switch {
		case strings.EqualFold(row.Status, models.StatusConfirmed):
			stats.Confirmed += row.Total
		case strings.EqualFold(row.Status, models.StatusCheckedIn):
			stats.CheckedIn += row.Total
		case strings.EqualFold(row.Status, models.StatusCheckedOut):
			stats.CheckedOut += row.Total
		case strings.EqualFold(row.Status, models.StatusCancelled):
			stats.Cancelled += row.Total
		}
	}
	return stats, nil
}

func (s *DashboardService) RecentBookings(ctx context.Context, w DateWindow, limit int) ([]RecentBooking, error) {
	if limit <= 0 || limit > 100 {
		limit = defaultRecentLimit
	}

	var bookings []models.Booking
	err := s.window(ctx, w).
		Order("created_at DESC").
		Order("booking_id DESC").
		Limit(limit).
		Find(&bookings).Error
	if err != nil {
		return nil, failure.InternalError("Failed to fetch recent bookings", err)
	}
	if err := attachBookingRefs(s.DB.WithContext(ctx), bookings); err != nil {
		return nil, failure.InternalError("Failed to fetch recent bookings", err)
	}

	out := make([]RecentBooking, 0, len(bookings))
	for _, b := range bookings {
		rb := RecentBooking{
			BookingID:     b.ID,
			GuestName:     GuestName(b),
			RoomType:      "—",
			RoomNumber:    b.RoomNumber,
			CheckIn:       utils.FormatDate(b.CheckIn),
			CheckOut:      utils.FormatDate(b.CheckOut),
			PaymentStatus: s.Payments.Canonical(b.PaymentStatus),
			Status:        b.Status,
		}
		if b.RoomType != nil && b.RoomType.TypeName != "" {
			rb.RoomType = b.RoomType.TypeName
		}
		if rb.RoomNumber == "" {
			rb.RoomNumber = "—"
		}
		out = append(out, rb)
	}
	return out, nil
}
