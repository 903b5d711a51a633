package controllers

import (
	"net/http"
	"strconv"

	"hotel-booking-backend/models"
	"hotel-booking-backend/repositories"
	"hotel-booking-backend/services"
	"hotel-booking-backend/utils"

	"github.com/gin-gonic/gin"
)

type BookingController struct {
	BookingSvc *services.BookingService
}

func NewBookingController(svc *services.BookingService) *BookingController {
	return &BookingController{BookingSvc: svc}
}

func parseUintParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidId", "invalid "+name, nil)
		return 0, false
	}
	return uint(id), true
}

// CreateBooking is the public reservation endpoint. Notification results
// ride along as metadata; an email failure never fails the booking.
func (ctrl *BookingController) CreateBooking(c *gin.Context) {
	var req services.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	booking, err := ctrl.BookingSvc.CreateBooking(req)
	if err != nil {
		respondServiceError(c, "controllers", "CreateBooking", err)
		return
	}

	guestEmail := utils.SendBookingReceivedEmail(booking, &booking.Room)
	adminEmail := utils.SendAdminNotificationEmail(booking, &booking.Room)

	c.JSON(http.StatusCreated, gin.H{
		"status": "success",
		"data":   booking,
		"notifications": gin.H{
			"guest_email": guestEmail,
			"admin_email": adminEmail,
		},
	})
}

func (ctrl *BookingController) GetBookings(c *gin.Context) {
	var filter repositories.BookingFilter

	if raw := c.Query("room_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "error.invalidId", "invalid room_id", nil)
			return
		}
		roomID := uint(id)
		filter.RoomID = &roomID
	}
	filter.Status = c.Query("status")
	if raw := c.Query("from"); raw != "" {
		from, err := utils.ParseDate(raw)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "error.invalidDate", err.Error(), nil)
			return
		}
		filter.From = &from
	}
	if raw := c.Query("to"); raw != "" {
		to, err := utils.ParseDate(raw)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "error.invalidDate", err.Error(), nil)
			return
		}
		filter.To = &to
	}

	bookings, err := ctrl.BookingSvc.ListBookings(filter)
	if err != nil {
		respondServiceError(c, "controllers", "GetBookings", err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, bookings)
}

func (ctrl *BookingController) GetBooking(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	booking, err := ctrl.BookingSvc.GetBooking(id)
	if err != nil {
		respondServiceError(c, "controllers", "GetBooking", err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, booking)
}

func (ctrl *BookingController) GetBookingByReference(c *gin.Context) {
	booking, err := ctrl.BookingSvc.GetByReference(c.Param("ref"))
	if err != nil {
		respondServiceError(c, "controllers", "GetBookingByReference", err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, booking)
}

type updateStatusPayload struct {
	Status string `json:"status" binding:"required"`
}

func (ctrl *BookingController) UpdateStatus(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	var payload updateStatusPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindError(c, err)
		return
	}

	booking, err := ctrl.BookingSvc.UpdateStatus(id, payload.Status)
	if err != nil {
		respondServiceError(c, "controllers", "UpdateStatus", err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, booking)
}

func (ctrl *BookingController) CancelBooking(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	booking, err := ctrl.BookingSvc.CancelBooking(id)
	if err != nil {
		respondServiceError(c, "controllers", "CancelBooking", err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{
		"booking_reference": booking.BookingReference,
		"status":            models.BookingStatusCancelled,
	})
}
