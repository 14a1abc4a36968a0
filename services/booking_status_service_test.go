package services

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"hotel-admin/failure"
	"hotel-admin/models"
)

type statusFixture struct {
	db      *gorm.DB
	svc     *BookingStatusService
	booking models.Booking
}

func newStatusFixture(t *testing.T, legal ...string) statusFixture {
	t.Helper()
	db := newTestDB(t)
	rt := seedRoomType(t, db, "Deluxe", "3200", "301")
	user := seedUser(t, db, "  Maria   Santos ", "maria@example.com")

	payments := NewPaymentStatusTable(legal)
	b := seedBooking(t, db, models.Booking{
		UserID:        &user.ID,
		RoomTypeID:    rt.ID,
		RoomNumber:    "301",
		CheckIn:       day(t, "2025-11-10"),
		CheckOut:      day(t, "2025-11-12"),
		PaymentStatus: payments.Storable(models.PaymentPending),
	})

	loc, err := time.LoadLocation("Asia/Manila")
	require.NoError(t, err)
	svc := NewBookingStatusService(db, NewBookingLogService(db), payments, loc)
	svc.Now = func() time.Time { return time.Date(2025, 11, 10, 6, 30, 0, 0, time.UTC) }

	return statusFixture{db: db, svc: svc, booking: b}
}

func (f statusFixture) reload(t *testing.T) models.Booking {
	t.Helper()
	var b models.Booking
	require.NoError(t, f.db.First(&b, f.booking.ID).Error)
	return b
}

func TestApplyTransition_CheckIn(t *testing.T) {
	f := newStatusFixture(t)

	res, err := f.svc.ApplyTransition(context.Background(), f.booking.ID, "checkin", "")
	require.NoError(t, err)
	assert.Equal(t, models.StatusCheckedIn, res.Status)
	assert.Equal(t, models.PaymentPartial, res.PaymentStatus)

	b := f.reload(t)
	assert.Equal(t, models.StatusCheckedIn, b.Status)
	assert.Equal(t, models.PaymentPartial, b.PaymentStatus)

	var logs []models.BookingLog
	require.NoError(t, f.db.Where("booking_id = ?", f.booking.ID).Find(&logs).Error)
	require.Len(t, logs, 1)
	entry := logs[0]
	assert.Equal(t, models.ActionCheckIn, entry.LastAction)
	assert.Equal(t, "Maria Santos", entry.GuestName)
	assert.Equal(t, "maria@example.com", entry.Email)
	assert.Equal(t, "Room 301", entry.Room)
	assert.Equal(t, "Deluxe", entry.RoomType)
	assert.Equal(t, models.StatusCheckedIn, entry.Status)
	assert.Equal(t, models.PaymentPending, entry.PaymentStatus)
	assert.Equal(t, "Admin", entry.PerformedBy)
	// 06:30 UTC is 14:30 in Manila
	assert.Equal(t, "2025-11-10 14:30:00", entry.ActionTimestamp.Format("2006-01-02 15:04:05"))

	var changes statusChange
	require.NoError(t, json.Unmarshal(entry.Changes, &changes))
	assert.Equal(t, models.StatusConfirmed, changes.From.Status)
	assert.Equal(t, models.StatusCheckedIn, changes.To.Status)
	assert.Equal(t, models.PaymentPartial, changes.To.PaymentStatus)
}

func TestApplyTransition_TokensAreCaseInsensitive(t *testing.T) {
	f := newStatusFixture(t)

	res, err := f.svc.ApplyTransition(context.Background(), f.booking.ID, "  PAID ", "")
	require.NoError(t, err)
	assert.Equal(t, models.StatusConfirmed, res.Status)
	assert.Equal(t, models.PaymentPartial, res.PaymentStatus)
}

func TestApplyTransition_NotFoundWritesNoLog(t *testing.T) {
	f := newStatusFixture(t)

	_, err := f.svc.ApplyTransition(context.Background(), 9999, "checkin", "")
	assert.ErrorIs(t, err, ErrBookingNotFound)
	assert.Equal(t, 404, failure.GetCode(err))
	assert.Zero(t, countLogs(t, f.db, 9999))

	var total int64
	require.NoError(t, f.db.Model(&models.BookingLog{}).Count(&total).Error)
	assert.Zero(t, total)
}

func TestApplyTransition_RejectsBadInput(t *testing.T) {
	f := newStatusFixture(t)
	ctx := context.Background()

	_, err := f.svc.ApplyTransition(ctx, f.booking.ID, "refund", "")
	assert.ErrorIs(t, err, ErrInvalidAction)

	_, err = f.svc.ApplyTransition(ctx, 0, "paid", "")
	assert.Equal(t, 400, failure.GetCode(err))

	_, err = f.svc.ApplyTransition(ctx, f.booking.ID, "checkin", "yesterday-ish")
	assert.Equal(t, 400, failure.GetCode(err))

	assert.Zero(t, countLogs(t, f.db, f.booking.ID))
}

func TestApplyTransition_FinalizedBookingConflicts(t *testing.T) {
	f := newStatusFixture(t)
	ctx := context.Background()

	_, err := f.svc.ApplyTransition(ctx, f.booking.ID, "cancel", "")
	require.NoError(t, err)

	_, err = f.svc.ApplyTransition(ctx, f.booking.ID, "checkin", "")
	assert.ErrorIs(t, err, ErrBookingFinalized)
	assert.Equal(t, 409, failure.GetCode(err))
	assert.Equal(t, int64(1), countLogs(t, f.db, f.booking.ID))
}

func TestApplyTransition_FailedAttemptLeavesStateUnchanged(t *testing.T) {
	f := newStatusFixture(t)
	ctx := context.Background()

	_, err := f.svc.ApplyTransition(ctx, f.booking.ID, "checkin", "")
	require.NoError(t, err)
	before := f.reload(t)

	// checkout dated on the check-in day is rejected inside the transaction
	_, err = f.svc.ApplyTransition(ctx, f.booking.ID, "checkout", "2025-11-10 11:00")
	assert.ErrorIs(t, err, ErrInvalidDateRange)

	after := f.reload(t)
	assert.Equal(t, before.Status, after.Status)
	assert.Equal(t, before.PaymentStatus, after.PaymentStatus)
	assert.True(t, before.CheckOut.Equal(after.CheckOut))
	assert.Nil(t, after.CheckOutTime)
	assert.Equal(t, int64(1), countLogs(t, f.db, f.booking.ID))
}

func TestApplyTransition_CheckoutWithDatetime(t *testing.T) {
	f := newStatusFixture(t)

	res, err := f.svc.ApplyTransition(context.Background(), f.booking.ID, "checkout", "2025-11-13 10:15")
	require.NoError(t, err)
	assert.Equal(t, models.StatusCheckedOut, res.Status)
	assert.Equal(t, models.PaymentComplete, res.PaymentStatus)

	b := f.reload(t)
	assert.Equal(t, "2025-11-13", b.CheckOut.Format("2006-01-02"))
	require.NotNil(t, b.CheckOutTime)
	assert.Equal(t, "2025-11-13 10:15:00", b.CheckOutTime.Format("2006-01-02 15:04:05"))

	logs, err := f.svc.Logs.ForBooking(context.Background(), f.booking.ID)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	require.NotNil(t, logs[0].CheckOut)
	assert.Equal(t, "2025-11-13", logs[0].CheckOut.Format("2006-01-02"))
	assert.Equal(t, "2025-11-13 10:15:00", logs[0].ActionTimestamp.Format("2006-01-02 15:04:05"))
}

func TestApplyTransition_PaymentNeverRegresses(t *testing.T) {
	f := newStatusFixture(t)
	require.NoError(t, f.db.Model(&models.Booking{}).
		Where("booking_id = ?", f.booking.ID).
		Update("payment_status", models.PaymentComplete).Error)

	res, err := f.svc.ApplyTransition(context.Background(), f.booking.ID, "checkin", "")
	require.NoError(t, err)
	assert.Equal(t, models.PaymentComplete, res.PaymentStatus)
	assert.Equal(t, models.PaymentComplete, f.reload(t).PaymentStatus)
}

func TestApplyTransition_LegacyPaymentVocabulary(t *testing.T) {
	f := newStatusFixture(t, "Pending", "Paid", "Completed")
	ctx := context.Background()

	res, err := f.svc.ApplyTransition(ctx, f.booking.ID, "paid", "")
	require.NoError(t, err)
	assert.Equal(t, models.PaymentPartial, res.PaymentStatus)
	assert.Equal(t, "Paid", res.StoredPayment)
	assert.Equal(t, "Paid", f.reload(t).PaymentStatus)

	res, err = f.svc.ApplyTransition(ctx, f.booking.ID, "checkout", "")
	require.NoError(t, err)
	assert.Equal(t, models.PaymentComplete, res.PaymentStatus)
	assert.Equal(t, "Completed", f.reload(t).PaymentStatus)
}

func TestBookingLogsAreImmutable(t *testing.T) {
	f := newStatusFixture(t)

	res, err := f.svc.ApplyTransition(context.Background(), f.booking.ID, "cancel", "")
	require.NoError(t, err)

	var entry models.BookingLog
	require.NoError(t, f.db.First(&entry, res.LogID).Error)

	err = f.db.Model(&entry).Update("guest_name", "someone else").Error
	assert.ErrorIs(t, err, models.ErrLogImmutable)
	err = f.db.Delete(&entry).Error
	assert.ErrorIs(t, err, models.ErrLogImmutable)

	var again models.BookingLog
	require.NoError(t, f.db.First(&again, res.LogID).Error)
	assert.Equal(t, "Maria Santos", again.GuestName)
}

func TestGuestNameAndRoomLabel(t *testing.T) {
	assert.Equal(t, "Guest", GuestName(models.Booking{}))
	assert.Equal(t, "Guest", GuestName(models.Booking{User: &models.User{FullName: "   "}}))
	assert.Equal(t, "Ana Cruz", GuestName(models.Booking{User: &models.User{FullName: " Ana \t Cruz "}}))

	assert.Equal(t, "Room 12", RoomLabel(models.Booking{RoomNumber: "12"}))
	assert.Equal(t, "Suite", RoomLabel(models.Booking{RoomType: &models.RoomType{TypeName: "Suite"}}))
	assert.Equal(t, "—", RoomLabel(models.Booking{}))
}

func TestApplyTransition_SnapshotsTheBookingsOwnGuestAndType(t *testing.T) {
	db := newTestDB(t)
	std := seedRoomType(t, db, "Standard", "1500", "101")
	dlx := seedRoomType(t, db, "Deluxe", "3200", "201")
	padOne := seedUser(t, db, "Pad One", "one@example.com")
	seedUser(t, db, "Pad Two", "two@example.com")
	ana := seedUser(t, db, "Ana Cruz", "ana@example.com")

	seedBooking(t, db, models.Booking{UserID: &padOne.ID, RoomTypeID: std.ID, RoomNumber: "101", CheckIn: day(t, "2025-11-10"), CheckOut: day(t, "2025-11-12")})
	target := seedBooking(t, db, models.Booking{UserID: &ana.ID, RoomTypeID: dlx.ID, RoomNumber: "201", CheckIn: day(t, "2025-11-10"), CheckOut: day(t, "2025-11-12")})
	require.NotEqual(t, target.ID, ana.ID)
	require.NotEqual(t, target.ID, dlx.ID)

	svc := NewBookingStatusService(db, NewBookingLogService(db), NewPaymentStatusTable(nil), time.UTC)
	res, err := svc.ApplyTransition(context.Background(), target.ID, "checkin", "")
	require.NoError(t, err)

	var entry models.BookingLog
	require.NoError(t, db.First(&entry, res.LogID).Error)
	assert.Equal(t, target.ID, entry.BookingID)
	assert.Equal(t, "Ana Cruz", entry.GuestName)
	assert.Equal(t, "ana@example.com", entry.Email)
	assert.Equal(t, "Deluxe", entry.RoomType)
	assert.Equal(t, "Room 201", entry.Room)
}

func TestApplyTransition_LogFailureRollsBackBooking(t *testing.T) {
	f := newStatusFixture(t)
	require.NoError(t, f.db.Migrator().DropTable(&models.BookingLog{}))

	_, err := f.svc.ApplyTransition(context.Background(), f.booking.ID, "checkin", "2025-11-10 15:00")
	require.Error(t, err)
	assert.Equal(t, 500, failure.GetCode(err))

	b := f.reload(t)
	assert.Equal(t, models.StatusConfirmed, b.Status)
	assert.Equal(t, models.PaymentPending, b.PaymentStatus)
	assert.Nil(t, b.CheckInTime)
}
