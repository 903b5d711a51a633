package controllers

import (
	"net/http"
	"strconv"

	"hotel-booking-backend/models"
	"hotel-booking-backend/services"
	"hotel-booking-backend/utils"

	"github.com/gin-gonic/gin"
)

type PaymentController struct {
	PaymentSvc *services.PaymentService
}

func NewPaymentController(svc *services.PaymentService) *PaymentController {
	return &PaymentController{PaymentSvc: svc}
}

func (ctrl *PaymentController) CreatePayment(c *gin.Context) {
	var req services.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	payment, err := ctrl.PaymentSvc.CreatePayment(req)
	if err != nil {
		respondServiceError(c, "controllers", "CreatePayment", err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, payment)
}

func (ctrl *PaymentController) GetPayment(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	payment, err := ctrl.PaymentSvc.GetPayment(id)
	if err != nil {
		respondServiceError(c, "controllers", "GetPayment", err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, payment)
}

// GetPayments lists the ledger for one owner, e.g.
// GET /api/payments?booking_type=room&booking_id=12.
func (ctrl *PaymentController) GetPayments(c *gin.Context) {
	ownerType := c.Query("booking_type")
	if ownerType == "" {
		ownerType = models.PaymentOwnerRoom
	}
	rawID := c.Query("booking_id")
	ownerID, err := strconv.ParseUint(rawID, 10, 32)
	if err != nil || ownerID == 0 {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidId", "booking_id is required", nil)
		return
	}

	payments, err := ctrl.PaymentSvc.ListPayments(ownerType, uint(ownerID))
	if err != nil {
		respondServiceError(c, "controllers", "GetPayments", err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, payments)
}

func (ctrl *PaymentController) UpdatePayment(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	var req services.UpdatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	payment, err := ctrl.PaymentSvc.UpdatePayment(id, req)
	if err != nil {
		respondServiceError(c, "controllers", "UpdatePayment", err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, payment)
}

func (ctrl *PaymentController) DeletePayment(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	if err := ctrl.PaymentSvc.DeletePayment(id); err != nil {
		respondServiceError(c, "controllers", "DeletePayment", err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"deleted": true})
}
