package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"hotel-admin/services"
	"hotel-admin/utils"
)

type DashboardController struct {
	Dashboard *services.DashboardService
}

func NewDashboardController(dashboard *services.DashboardService) *DashboardController {
	return &DashboardController{Dashboard: dashboard}
}

func windowFromQuery(c *gin.Context) (services.DateWindow, bool) {
	var w services.DateWindow
	var ok bool
	if w.From, ok = optionalDate(c, "start"); !ok {
		return w, false
	}
	if w.To, ok = optionalDate(c, "end"); !ok {
		return w, false
	}
	return w, true
}

// Stats GET /api/dashboard/stats
func (ctrl *DashboardController) Stats(c *gin.Context) {
	w, ok := windowFromQuery(c)
	if !ok {
		return
	}
	stats, err := ctrl.Dashboard.Stats(c.Request.Context(), w)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, stats)
}

// RecentBookings GET /api/dashboard/recent-bookings
func (ctrl *DashboardController) RecentBookings(c *gin.Context) {
	w, ok := windowFromQuery(c)
	if !ok {
		return
	}
	limit, _ := strconv.Atoi(c.Query("limit"))

	rows, err := ctrl.Dashboard.RecentBookings(c.Request.Context(), w, limit)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, rows)
}
