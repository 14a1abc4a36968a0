package controllers

import (
	"bytes"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"hotel-admin/services"
	"hotel-admin/utils"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type BookingLogController struct {
	Logs *services.BookingLogService
	Now  func() time.Time
}

func NewBookingLogController(logs *services.BookingLogService) *BookingLogController {
	return &BookingLogController{Logs: logs, Now: time.Now}
}

func optionalDate(c *gin.Context, key string) (*time.Time, bool) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, true
	}
	d, err := utils.ParseDate(raw)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, key+" must be YYYY-MM-DD")
		return nil, false
	}
	return &d, true
}

func (ctrl *BookingLogController) filterFromQuery(c *gin.Context) (services.LogFilter, bool) {
	f := services.LogFilter{
		Search:        c.Query("search"),
		Status:        c.Query("status"),
		RoomType:      c.Query("room_type"),
		PaymentStatus: c.Query("payment_status"),
	}
	var ok bool
	if f.DateFrom, ok = optionalDate(c, "date_from"); !ok {
		return f, false
	}
	if f.DateTo, ok = optionalDate(c, "date_to"); !ok {
		return f, false
	}
	return f, true
}

// GetLogs GET /api/bookings/admin/logs
func (ctrl *BookingLogController) GetLogs(c *gin.Context) {
	f, ok := ctrl.filterFromQuery(c)
	if !ok {
		return
	}
	logs, err := ctrl.Logs.Query(c.Request.Context(), f)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, logs)
}

// GetBookingLogs GET /api/bookings/admin/:id/logs
func (ctrl *BookingLogController) GetBookingLogs(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		utils.JSONError(c, http.StatusBadRequest, "Invalid booking id")
		return
	}
	logs, err := ctrl.Logs.ForBooking(c.Request.Context(), uint(id))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, logs)
}

// Export GET /api/bookings/admin/logs/export?format=csv|xlsx
func (ctrl *BookingLogController) Export(c *gin.Context) {
	f, ok := ctrl.filterFromQuery(c)
	if !ok {
		return
	}

	format := strings.ToLower(strings.TrimSpace(c.DefaultQuery("format", "csv")))
	var (
		buf         bytes.Buffer
		err         error
		contentType string
	)
	switch format {
	case "csv":
		contentType = "text/csv; charset=utf-8"
		err = ctrl.Logs.ExportCSV(c.Request.Context(), f, &buf)
	case "xlsx":
		contentType = xlsxContentType
		err = ctrl.Logs.ExportXLSX(c.Request.Context(), f, &buf)
	default:
		utils.JSONError(c, http.StatusBadRequest, "format must be csv or xlsx")
		return
	}
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	filename := services.ExportFilename(ctrl.Now(), format)
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, contentType, buf.Bytes())
}
