package controllers

import (
	"net/http"
	"strconv"

	"hotel-booking-backend/models"
	"hotel-booking-backend/services"
	"hotel-booking-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type SettingsController struct {
	SettingsSvc *services.SettingsService
}

func NewSettingsController(svc *services.SettingsService) *SettingsController {
	return &SettingsController{SettingsSvc: svc}
}

func (ctrl *SettingsController) GetSettings(c *gin.Context) {
	settings, err := ctrl.SettingsSvc.All()
	if err != nil {
		respondServiceError(c, "controllers", "GetSettings", err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, settings)
}

type settingPayload struct {
	Key   string `json:"key" binding:"required"`
	Value string `json:"value" binding:"required"`
}

// UpdateSetting validates the handful of typed keys before writing so a
// bad vat_rate never reaches the ledger math.
func (ctrl *SettingsController) UpdateSetting(c *gin.Context) {
	var payload settingPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindError(c, err)
		return
	}

	switch payload.Key {
	case models.SettingVatRate:
		rate, err := decimal.NewFromString(payload.Value)
		if err != nil || rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(100)) {
			utils.JSONError(c, http.StatusBadRequest, "error.invalidSetting", "vat_rate must be a number between 0 and 100", nil)
			return
		}
	case models.SettingVatEnabled:
		if _, err := strconv.ParseBool(payload.Value); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "error.invalidSetting", "vat_enabled must be true or false", nil)
			return
		}
	case models.SettingMaxAdvanceBookingDays:
		days, err := strconv.Atoi(payload.Value)
		if err != nil || days < 1 {
			utils.JSONError(c, http.StatusBadRequest, "error.invalidSetting", "max_advance_booking_days must be a positive integer", nil)
			return
		}
	}

	if err := ctrl.SettingsSvc.Set(payload.Key, payload.Value); err != nil {
		respondServiceError(c, "controllers", "UpdateSetting", err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"key": payload.Key, "value": payload.Value})
}
