package controllers

import (
	"net/http"
	"strconv"

	"hotel-booking-backend/services"
	"hotel-booking-backend/utils"

	"github.com/gin-gonic/gin"
)

type AvailabilityController struct {
	AvailabilitySvc *services.AvailabilityService
}

func NewAvailabilityController(svc *services.AvailabilityService) *AvailabilityController {
	return &AvailabilityController{AvailabilitySvc: svc}
}

// CheckAvailability answers GET /api/availability with a yes/no plus the
// conflicting bookings so clients can offer alternative dates.
func (ctrl *AvailabilityController) CheckAvailability(c *gin.Context) {
	rawRoom := c.Query("room_id")
	roomID, err := strconv.ParseUint(rawRoom, 10, 32)
	if err != nil || roomID == 0 {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidId", "room_id is required", nil)
		return
	}

	checkIn, err := utils.ParseDate(c.Query("check_in"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidDate", err.Error(), nil)
		return
	}
	checkOut, err := utils.ParseDate(c.Query("check_out"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidDate", err.Error(), nil)
		return
	}
	if !checkOut.After(checkIn) {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidDate", "check_out must be after check_in", nil)
		return
	}

	available, err := ctrl.AvailabilitySvc.IsAvailable(uint(roomID), checkIn, checkOut)
	if err != nil {
		respondServiceError(c, "controllers", "CheckAvailability", err)
		return
	}

	response := gin.H{"available": available}
	if !available {
		conflicts, err := ctrl.AvailabilitySvc.Conflicts(uint(roomID), checkIn, checkOut)
		if err != nil {
			respondServiceError(c, "controllers", "CheckAvailability", err)
			return
		}
		response["conflicts"] = conflicts
	}
	utils.JSONSuccess(c, http.StatusOK, response)
}
