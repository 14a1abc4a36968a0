package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"hotel-admin/services"
	"hotel-admin/utils"
)

type CreateRoomTypeRequest struct {
	TypeName         string           `json:"type_name" binding:"required,notblank"`
	PricePerNight    *decimal.Decimal `json:"price_per_night"`
	CapacityAdults   *int             `json:"capacity_adults"`
	CapacityChildren *int             `json:"capacity_children"`
}

type RoomTypeController struct {
	Types *services.RoomTypeService
}

func NewRoomTypeController(types *services.RoomTypeService) *RoomTypeController {
	return &RoomTypeController{Types: types}
}

func (ctrl *RoomTypeController) GetRoomTypes(c *gin.Context) {
	types, err := ctrl.Types.GetAll(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, types)
}

func (ctrl *RoomTypeController) GetRoomType(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	rt, err := ctrl.Types.GetByID(c.Request.Context(), id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, rt)
}

func (ctrl *RoomTypeController) CreateRoomType(c *gin.Context) {
	var req CreateRoomTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, utils.BindErrorMessage(err))
		return
	}

	rt, err := ctrl.Types.Create(c.Request.Context(), req.TypeName, services.RoomTypeDefaults{
		PricePerNight:    req.PricePerNight,
		CapacityAdults:   req.CapacityAdults,
		CapacityChildren: req.CapacityChildren,
	})
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, rt)
}

func (ctrl *RoomTypeController) DeleteRoomType(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := ctrl.Types.Delete(c.Request.Context(), id); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Room type deleted"})
}

func pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		utils.JSONError(c, http.StatusBadRequest, "Invalid id")
		return 0, false
	}
	return uint(id), true
}
