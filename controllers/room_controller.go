package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"hotel-admin/failure"
	"hotel-admin/models"
	"hotel-admin/services"
	"hotel-admin/utils"
)

type AddRoomRequest struct {
	RoomNumber       string           `json:"room_number" binding:"required,notblank"`
	RoomType         string           `json:"room_type"`
	RoomTypeID       uint             `json:"room_type_id"`
	Status           string           `json:"status"`
	PricePerNight    *decimal.Decimal `json:"price_per_night"`
	CapacityAdults   *int             `json:"capacity_adults"`
	CapacityChildren *int             `json:"capacity_children"`
}

type UpdateRoomRequest struct {
	RoomID           uint             `json:"room_id" binding:"required"`
	RoomNumber       *string          `json:"room_number"`
	RoomTypeID       *uint            `json:"room_type_id"`
	TypeName         string           `json:"type_name"`
	Status           *string          `json:"status"`
	PricePerNight    *decimal.Decimal `json:"price_per_night"`
	CapacityAdults   *int             `json:"capacity_adults"`
	CapacityChildren *int             `json:"capacity_children"`
}

// DeleteRoomRequest accepts a single id or a list.
type DeleteRoomRequest struct {
	RoomID  uint   `json:"room_id"`
	RoomIDs []uint `json:"room_ids"`
}

type RoomController struct {
	Rooms *services.RoomService
	Types *services.RoomTypeService
}

func NewRoomController(rooms *services.RoomService, types *services.RoomTypeService) *RoomController {
	return &RoomController{Rooms: rooms, Types: types}
}

// ----------------------------------------------------
// GET /api/rooms/admin/getRooms
// ----------------------------------------------------

func (ctrl *RoomController) GetRooms(c *gin.Context) {
	rows, err := ctrl.Rooms.List(c.Request.Context(), services.RoomFilter{
		Search:   c.Query("search"),
		RoomType: c.Query("room_type"),
		Status:   c.Query("status"),
	})
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(rows), "data": rows})
}

// ----------------------------------------------------
// GET /api/rooms/admin/getRoomTypes
// ----------------------------------------------------

func (ctrl *RoomController) GetRoomTypes(c *gin.Context) {
	types, err := ctrl.Types.GetAll(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	out := make([]gin.H, 0, len(types))
	for _, t := range types {
		out = append(out, gin.H{
			"id":                t.ID,
			"name":              t.TypeName,
			"price_per_night":   t.PricePerNight,
			"capacity_adults":   t.CapacityAdults,
			"capacity_children": t.CapacityChildren,
		})
	}
	utils.JSONSuccess(c, http.StatusOK, out)
}

// ----------------------------------------------------
// POST /api/rooms/admin/addRoom
// ----------------------------------------------------

func (ctrl *RoomController) AddRoom(c *gin.Context) {
	var req AddRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, utils.BindErrorMessage(err))
		return
	}

	room, err := ctrl.Rooms.Add(c.Request.Context(), services.AddRoomInput{
		RoomNumber: req.RoomNumber,
		RoomType:   req.RoomType,
		RoomTypeID: req.RoomTypeID,
		Status:     req.Status,
		Defaults: services.RoomTypeDefaults{
			PricePerNight:    req.PricePerNight,
			CapacityAdults:   req.CapacityAdults,
			CapacityChildren: req.CapacityChildren,
		},
	})
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":      true,
		"message":      "Room added successfully",
		"room_type_id": room.RoomTypeID,
		"data":         room,
	})
}

// ----------------------------------------------------
// POST /api/rooms/admin/updateRoom
// ----------------------------------------------------

func (ctrl *RoomController) UpdateRoom(c *gin.Context) {
	var req UpdateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, utils.BindErrorMessage(err))
		return
	}

	err := ctrl.Rooms.Update(c.Request.Context(), services.UpdateRoomInput{
		RoomID:     req.RoomID,
		RoomNumber: req.RoomNumber,
		RoomTypeID: req.RoomTypeID,
		TypeName:   req.TypeName,
		Status:     req.Status,
		Defaults: services.RoomTypeDefaults{
			PricePerNight:    req.PricePerNight,
			CapacityAdults:   req.CapacityAdults,
			CapacityChildren: req.CapacityChildren,
		},
	})
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Room updated successfully"})
}

// ----------------------------------------------------
// POST /api/rooms/admin/deleteRoom
// ----------------------------------------------------

func (ctrl *RoomController) DeleteRoom(c *gin.Context) {
	var req DeleteRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	ids := req.RoomIDs
	if req.RoomID != 0 {
		ids = append(ids, req.RoomID)
	}

	result, err := ctrl.Rooms.Delete(c.Request.Context(), ids)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	message := "Room(s) deleted successfully"
	if len(result.Skipped) > 0 {
		message = "Some rooms have active bookings and were not deleted: " + strings.Join(result.Skipped, ", ")
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": message,
		"deleted": result.Deleted,
		"skipped": result.Skipped,
	})
}

// ----------------------------------------------------
// GET /api/rooms/admin/grouped
// ----------------------------------------------------

func (ctrl *RoomController) Grouped(c *gin.Context) {
	grouped, err := ctrl.Rooms.Grouped(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, grouped)
}

// ----------------------------------------------------
// GET /api/rooms/check/:room_number
// ----------------------------------------------------

func (ctrl *RoomController) CheckRoom(c *gin.Context) {
	number := strings.TrimSpace(c.Param("room_number"))
	if number == "" {
		utils.RespondError(c, failure.BadRequestFromString("Room number is required"))
		return
	}

	room, err := ctrl.Rooms.CheckByNumber(c.Request.Context(), number)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	if room.Status != models.RoomStatusAvailable {
		c.JSON(http.StatusOK, gin.H{
			"success": false,
			"message": "This room is not available for the following days.",
			"status":  room.Status,
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Room is available", "room": room})
}
