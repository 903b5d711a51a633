package controllers

import (
	"net/http"

	"hotel-booking-backend/services"
	"hotel-booking-backend/utils"

	"github.com/gin-gonic/gin"
)

type EnquiryController struct {
	EnquirySvc *services.EnquiryService
}

func NewEnquiryController(svc *services.EnquiryService) *EnquiryController {
	return &EnquiryController{EnquirySvc: svc}
}

func (ctrl *EnquiryController) CreateEnquiry(c *gin.Context) {
	var req services.CreateEnquiryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	enquiry, err := ctrl.EnquirySvc.Create(req)
	if err != nil {
		respondServiceError(c, "controllers", "CreateEnquiry", err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, enquiry)
}

func (ctrl *EnquiryController) GetEnquiries(c *gin.Context) {
	enquiries, err := ctrl.EnquirySvc.List()
	if err != nil {
		respondServiceError(c, "controllers", "GetEnquiries", err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, enquiries)
}

func (ctrl *EnquiryController) GetEnquiry(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	enquiry, err := ctrl.EnquirySvc.GetByID(id)
	if err != nil {
		respondServiceError(c, "controllers", "GetEnquiry", err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, enquiry)
}
