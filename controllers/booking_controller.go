// controllers/booking_controller.go
package controllers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"hotel-admin/failure"
	"hotel-admin/services"
	"hotel-admin/utils"
)

// ---------------------------
// Payload / DTOs
// ---------------------------

type UpdateStatusRequest struct {
	BookingID uint   `json:"booking_id" binding:"required"`
	Action    string `json:"action" binding:"required,notblank"`
	Datetime  string `json:"datetime"`
}

type CheckAvailabilityRequest struct {
	RoomNumber   string `json:"roomNumber"`
	RoomTypeID   uint   `json:"roomId"`
	CheckInDate  string `json:"checkInDate" binding:"required"`
	CheckOutDate string `json:"checkOutDate" binding:"required"`
}

type GuestCount struct {
	Adults   uint `json:"adults"`
	Children uint `json:"children"`
}

type CreateBookingRequest struct {
	UserID       *uint            `json:"user_id"`
	RoomNumber   string           `json:"roomNumber" binding:"required,notblank"`
	CheckInDate  string           `json:"checkInDate" binding:"required"`
	CheckOutDate string           `json:"checkOutDate" binding:"required"`
	Guests       GuestCount       `json:"guests"`
	TotalPrice   *decimal.Decimal `json:"totalPrice"`
	Notes        string           `json:"notes"`
}

// ---------------------------
// Controller
// ---------------------------

type BookingController struct {
	Bookings     *services.BookingService
	Status       *services.BookingStatusService
	Availability *services.AvailabilityService
}

func NewBookingController(
	bookings *services.BookingService,
	status *services.BookingStatusService,
	availability *services.AvailabilityService,
) *BookingController {
	return &BookingController{Bookings: bookings, Status: status, Availability: availability}
}

// UpdateStatus POST /api/bookings/admin/update-status
func (ctrl *BookingController) UpdateStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Missing booking_id or action")
		return
	}

	result, err := ctrl.Status.ApplyTransition(c.Request.Context(), req.BookingID, req.Action, req.Datetime)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"message":        "Booking status updated successfully.",
		"status":         result.Status,
		"payment_status": result.PaymentStatus,
	})
}

// GetAllBookings GET /api/bookings/admin/all
func (ctrl *BookingController) GetAllBookings(c *gin.Context) {
	rows, err := ctrl.Bookings.ListAll(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, rows)
}

// Calendar GET /api/bookings/admin/calendar
func (ctrl *BookingController) Calendar(c *gin.Context) {
	entries, err := ctrl.Bookings.Calendar(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

// AvailabilityMatrix GET /api/bookings/admin/availability?start=&end= or ?month=YYYY-MM
func (ctrl *BookingController) AvailabilityMatrix(c *gin.Context) {
	var start, end time.Time
	if month := strings.TrimSpace(c.Query("month")); month != "" {
		m, err := time.Parse("2006-01", month)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "month must be YYYY-MM")
			return
		}
		days := services.MonthDates(m.Year(), m.Month())
		start, end = days[0], days[len(days)-1]
	} else {
		var err error
		if start, err = utils.ParseDate(c.Query("start")); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "start must be YYYY-MM-DD")
			return
		}
		if end, err = utils.ParseDate(c.Query("end")); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "end must be YYYY-MM-DD")
			return
		}
	}

	matrix, err := ctrl.Availability.Matrix(c.Request.Context(), start, end)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	dates := services.DateRange(start, end)
	keys := make([]string, 0, len(dates))
	for _, d := range dates {
		keys = append(keys, utils.FormatDate(d))
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"dates": keys, "availability": matrix})
}

// CheckAvailability POST /api/bookings/check-availability
func (ctrl *BookingController) CheckAvailability(c *gin.Context) {
	var req CheckAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, utils.BindErrorMessage(err))
		return
	}

	checkIn, checkOut, err := parseStay(req.CheckInDate, req.CheckOutDate)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	ok, err := ctrl.Availability.IsAvailable(c.Request.Context(), services.AvailabilityQuery{
		RoomNumber: strings.TrimSpace(req.RoomNumber),
		RoomTypeID: req.RoomTypeID,
		CheckIn:    checkIn,
		CheckOut:   checkOut,
	})
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "isAvailable": ok})
}

// CreateBooking POST /api/bookings/book
func (ctrl *BookingController) CreateBooking(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, utils.BindErrorMessage(err))
		return
	}

	checkIn, checkOut, err := parseStay(req.CheckInDate, req.CheckOutDate)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	booking, err := ctrl.Bookings.Create(c.Request.Context(), services.CreateBookingInput{
		UserID:     req.UserID,
		RoomNumber: req.RoomNumber,
		CheckIn:    checkIn,
		CheckOut:   checkOut,
		Adults:     req.Guests.Adults,
		Children:   req.Guests.Children,
		TotalPrice: req.TotalPrice,
		Notes:      req.Notes,
	})
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Booking created successfully!",
		"booking": gin.H{
			"booking_id":     booking.ID,
			"user_id":        booking.UserID,
			"room_type_id":   booking.RoomTypeID,
			"room_number":    booking.RoomNumber,
			"check_in":       utils.FormatDate(booking.CheckIn),
			"check_out":      utils.FormatDate(booking.CheckOut),
			"adults":         booking.Adults,
			"children":       booking.Children,
			"total_price":    booking.TotalPrice,
			"payment_status": booking.PaymentStatus,
			"status":         booking.Status,
		},
	})
}

// GetBooking GET /api/bookings/:id
func (ctrl *BookingController) GetBooking(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		utils.JSONError(c, http.StatusBadRequest, "Invalid booking id")
		return
	}

	booking, err := ctrl.Bookings.Get(c.Request.Context(), uint(id))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, booking)
}

func parseStay(rawIn, rawOut string) (time.Time, time.Time, error) {
	checkIn, err := utils.ParseDate(rawIn)
	if err != nil {
		return time.Time{}, time.Time{}, failure.BadRequestFromString("Invalid check-in date")
	}
	checkOut, err := utils.ParseDate(rawOut)
	if err != nil {
		return time.Time{}, time.Time{}, failure.BadRequestFromString("Invalid check-out date")
	}
	if !checkOut.After(checkIn) {
		return time.Time{}, time.Time{}, services.ErrInvalidDateRange
	}
	return checkIn, checkOut, nil
}
