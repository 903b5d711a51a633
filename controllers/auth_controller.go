package controllers

import (
	"errors"
	"net/http"

	"hotel-booking-backend/middleware"
	"hotel-booking-backend/services"
	"hotel-booking-backend/utils"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	AuthSvc *services.AuthService
}

func NewAuthController(svc *services.AuthService) *AuthController {
	return &AuthController{AuthSvc: svc}
}

type loginPayload struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (ctrl *AuthController) Login(c *gin.Context) {
	var payload loginPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindError(c, err)
		return
	}

	token, admin, err := ctrl.AuthSvc.Login(payload.Username, payload.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			utils.JSONError(c, http.StatusUnauthorized, "error.invalidCredentials", "invalid username or password", nil)
			return
		}
		respondServiceError(c, "controllers", "Login", err)
		return
	}

	utils.JSONSuccess(c, http.StatusOK, gin.H{
		"token": token,
		"admin": gin.H{
			"id":       admin.ID,
			"username": admin.Username,
			"name":     admin.FullName,
		},
	})
}

func (ctrl *AuthController) Logout(c *gin.Context) {
	token := middleware.BearerToken(c)
	if token == "" {
		utils.JSONError(c, http.StatusBadRequest, "error.missingToken", "no token supplied", nil)
		return
	}
	if err := ctrl.AuthSvc.Logout(token); err != nil {
		respondServiceError(c, "controllers", "Logout", err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"logged_out": true})
}

func (ctrl *AuthController) Me(c *gin.Context) {
	admin := middleware.CurrentAdmin(c)
	if admin == nil {
		utils.JSONError(c, http.StatusUnauthorized, "error.unauthorized", "not authenticated", nil)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{
		"id":       admin.ID,
		"username": admin.Username,
		"name":     admin.FullName,
	})
}
