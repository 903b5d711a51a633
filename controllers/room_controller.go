package controllers

import (
	"net/http"

	"hotel-booking-backend/models"
	"hotel-booking-backend/services"
	"hotel-booking-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type RoomController struct {
	RoomSvc *services.RoomService
}

func NewRoomController(svc *services.RoomService) *RoomController {
	return &RoomController{RoomSvc: svc}
}

type roomPayload struct {
	RoomNumber    string          `json:"room_number" binding:"required"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	PricePerNight decimal.Decimal `json:"price_per_night" binding:"required"`
	MaxGuests     int             `json:"max_guests" binding:"required"`
	Active        *bool           `json:"active"`
}

func (ctrl *RoomController) CreateRoom(c *gin.Context) {
	var payload roomPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindError(c, err)
		return
	}

	room := models.Room{
		RoomNumber:    payload.RoomNumber,
		Name:          payload.Name,
		Description:   payload.Description,
		PricePerNight: payload.PricePerNight,
		MaxGuests:     payload.MaxGuests,
		Active:        true,
	}
	if payload.Active != nil {
		room.Active = *payload.Active
	}

	if err := ctrl.RoomSvc.Create(&room); err != nil {
		respondServiceError(c, "controllers", "CreateRoom", err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, room)
}

func (ctrl *RoomController) GetRooms(c *gin.Context) {
	activeOnly := c.Query("active") == "true"
	rooms, err := ctrl.RoomSvc.List(activeOnly)
	if err != nil {
		respondServiceError(c, "controllers", "GetRooms", err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, rooms)
}

func (ctrl *RoomController) GetRoom(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	room, err := ctrl.RoomSvc.GetByID(id)
	if err != nil {
		respondServiceError(c, "controllers", "GetRoom", err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, room)
}

func (ctrl *RoomController) UpdateRoom(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	var payload roomPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindError(c, err)
		return
	}

	room, err := ctrl.RoomSvc.GetByID(id)
	if err != nil {
		respondServiceError(c, "controllers", "UpdateRoom", err)
		return
	}

	room.RoomNumber = payload.RoomNumber
	room.Name = payload.Name
	room.Description = payload.Description
	room.PricePerNight = payload.PricePerNight
	room.MaxGuests = payload.MaxGuests
	if payload.Active != nil {
		room.Active = *payload.Active
	}

	if err := ctrl.RoomSvc.Update(room); err != nil {
		respondServiceError(c, "controllers", "UpdateRoom", err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, room)
}

func (ctrl *RoomController) DeleteRoom(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	if err := ctrl.RoomSvc.Delete(id); err != nil {
		respondServiceError(c, "controllers", "DeleteRoom", err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"deleted": true})
}
