package services

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"hotel-admin/failure"
	"hotel-admin/models"
	"hotel-admin/utils"
)

// MaxLogRows caps Query. Exports are not capped.
const MaxLogRows = 500

const logSheetName = "Booking Logs"

// LogExportHeaders is the header row of every export, in column order.
var LogExportHeaders = []string{
	"Log ID",
	"Booking ID",
	"Guest Name",
	"Payment Status",
	"Status",
	"Room",
	"Check-In",
	"Check-Out",
	"Last Action",
	"Timestamp",
	"Performed By",
}

// LogFilter narrows the audit log. Empty strings and "All" disable a filter.
type LogFilter struct {
	Search        string
	Status        string
	RoomType      string
	PaymentStatus string
	DateFrom      *time.Time
	DateTo        *time.Time
}

type BookingLogService struct {
	DB *gorm.DB
}

func NewBookingLogService(db *gorm.DB) *BookingLogService {
	return &BookingLogService{DB: db}
}

// Append inserts entry using tx, so it commits or rolls back with the caller's change.
func (s *BookingLogService) Append(tx *gorm.DB, entry *models.BookingLog) error {
	if entry.PerformedBy == "" {
		entry.PerformedBy = "Admin"
	}
	if err := tx.Create(entry).Error; err != nil {
		return failure.InternalError("Failed to write booking log", err)
	}
	return nil
}

func filterValue(v string) (string, bool) {
	v = strings.TrimSpace(v)
	if v == "" || v == "All" {
		return "", false
	}
	return v, true
}

func (s *BookingLogService) filtered(ctx context.Context, f LogFilter) *gorm.DB {
	q := s.DB.WithContext(ctx).Model(&models.BookingLog{})

	if search, ok := filterValue(f.Search); ok {
		like := "%" + strings.ToLower(search) + "%"
		q = q.Where(`(CAST(log_id AS CHAR) LIKE ? OR CAST(booking_id AS CHAR) LIKE ?
			OR LOWER(guest_name) LIKE ? OR LOWER(room) LIKE ?)`, like, like, like, like)
	}
	if status, ok := filterValue(f.Status); ok {
		q = q.Where("status = ?", status)
	}
	if roomType, ok := filterValue(f.RoomType); ok {
		like := "%" + strings.ToLower(roomType) + "%"
		q = q.Where("(LOWER(room) LIKE ? OR LOWER(room_type) LIKE ?)", like, like)
	}
	if payment, ok := filterValue(f.PaymentStatus); ok {
		q = q.Where("payment_status = ?", payment)
	}
	if f.DateFrom != nil {
		q = q.Where("check_in >= ?", utils.DayOf(*f.DateFrom))
	}
	if f.DateTo != nil {
		q = q.Where("check_in < ?", utils.DayOf(*f.DateTo).AddDate(0, 0, 1))
	}

	return q.Order("action_timestamp DESC").Order("log_id DESC")
}

// Query returns matching entries, newest action first, at most MaxLogRows.
func (s *BookingLogService) Query(ctx context.Context, f LogFilter) ([]models.BookingLog, error) {
	logs := []models.BookingLog{}
	if err := s.filtered(ctx, f).Limit(MaxLogRows).Find(&logs).Error; err != nil {
		return nil, failure.InternalError("Failed to fetch booking logs", err)
	}
	return logs, nil
}

// ForBooking returns every entry recorded for one booking, oldest first.
func (s *BookingLogService) ForBooking(ctx context.Context, bookingID uint) ([]models.BookingLog, error) {
	logs := []models.BookingLog{}
	err := s.DB.WithContext(ctx).
		Where("booking_id = ?", bookingID).
		Order("action_timestamp, log_id").
		Find(&logs).Error
	if err != nil {
		return nil, failure.InternalError("Failed to fetch booking logs", err)
	}
	return logs, nil
}

func (s *BookingLogService) each(ctx context.Context, f LogFilter, fn func(models.BookingLog) error) error {
	q := s.filtered(ctx, f)
	rows, err := q.Rows()
	if err != nil {
		return failure.InternalError("Failed to export booking logs", err)
	}
	defer rows.Close()

	for rows.Next() {
		var entry models.BookingLog
		if err := q.ScanRows(rows, &entry); err != nil {
			return failure.InternalError("Failed to export booking logs", err)
		}
		if err := fn(entry); err != nil {
			return err
		}
	}
	if err := rows.Err(); err != nil {
		return failure.InternalError("Failed to export booking logs", err)
	}
	return nil
}

func logRecord(l models.BookingLog) []string {
	var checkIn, checkOut string
	if l.CheckIn != nil {
		checkIn = utils.FormatDate(*l.CheckIn)
	}
	if l.CheckOut != nil {
		checkOut = utils.FormatDate(*l.CheckOut)
	}
	return []string{
		strconv.FormatUint(uint64(l.ID), 10),
		strconv.FormatUint(uint64(l.BookingID), 10),
		l.GuestName,
		l.PaymentStatus,
		l.Status,
		l.Room,
		checkIn,
		checkOut,
		l.LastAction,
		l.ActionTimestamp.Format(utils.TimestampLayout),
		l.PerformedBy,
	}
}

// ExportCSV writes every matching entry as CSV. Fields holding a comma, quote or newline
// are quoted with inner quotes doubled.
func (s *BookingLogService) ExportCSV(ctx context.Context, f LogFilter, w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(LogExportHeaders); err != nil {
		return failure.InternalError("Failed to export booking logs", err)
	}

	err := s.each(ctx, f, func(l models.BookingLog) error {
		if err := cw.Write(logRecord(l)); err != nil {
			return failure.InternalError("Failed to export booking logs", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return failure.InternalError("Failed to export booking logs", err)
	}
	return nil
}

// ExportXLSX writes the same columns as ExportCSV into a single-sheet workbook.
func (s *BookingLogService) ExportXLSX(ctx context.Context, f LogFilter, w io.Writer) error {
	book := excelize.NewFile()
	defer book.Close()

	if err := book.SetSheetName("Sheet1", logSheetName); err != nil {
		return failure.InternalError("Failed to export booking logs", err)
	}
	for i, header := range LogExportHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := book.SetCellValue(logSheetName, cell, header); err != nil {
			return failure.InternalError("Failed to export booking logs", err)
		}
	}

	row := 2
	err := s.each(ctx, f, func(l models.BookingLog) error {
		record := logRecord(l)
		for i, value := range record {
			cell, _ := excelize.CoordinatesToCellName(i+1, row)
			var v interface{} = value
			// IDs stay numeric in the sheet.
			switch i {
			case 0:
				v = l.ID
			case 1:
				v = l.BookingID
			}
			if err := book.SetCellValue(logSheetName, cell, v); err != nil {
				return failure.InternalError("Failed to export booking logs", err)
			}
		}
		row++
		return nil
	})
	if err != nil {
		return err
	}

	_ = book.SetColWidth(logSheetName, "A", "B", 10)
	_ = book.SetColWidth(logSheetName, "C", "C", 24)
	_ = book.SetColWidth(logSheetName, "D", "I", 16)
	_ = book.SetColWidth(logSheetName, "J", "J", 20)
	_ = book.SetColWidth(logSheetName, "K", "K", 14)

	if _, err := book.WriteTo(w); err != nil {
		return failure.InternalError("Failed to export booking logs", err)
	}
	return nil
}

// ExportFilename names an export after the UTC time it was produced, without colons.
func ExportFilename(now time.Time, ext string) string {
	return fmt.Sprintf("booking_logs_%s.%s", now.UTC().Format("2006-01-02T15-04-05"), ext)
}
