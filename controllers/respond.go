package controllers

import (
	"errors"
	"net/http"

	"hotel-booking-backend/config"
	"hotel-booking-backend/services"
	"hotel-booking-backend/utils"

	"github.com/gin-gonic/gin"
)

// respondServiceError maps the service error taxonomy onto HTTP. Internal
// errors are logged with full detail and surfaced opaquely.
func respondServiceError(c *gin.Context, module, funcName string, err error) {
	var (
		verr *services.ValidationError
		cerr *services.ConflictError
		nerr *services.NotFoundError
		perr *services.PermissionError
	)
	switch {
	case errors.As(err, &verr):
		utils.JSONError(c, http.StatusBadRequest, "error.validation", "request validation failed", verr.Fields)
	case errors.As(err, &cerr):
		utils.JSONError(c, http.StatusConflict, "error.conflict", cerr.Message, nil)
	case errors.As(err, &nerr):
		utils.JSONError(c, http.StatusNotFound, "error.notFound", nerr.Error(), nil)
	case errors.As(err, &perr):
		utils.JSONError(c, http.StatusForbidden, "error.forbidden", perr.Error(), nil)
	default:
		config.LogError(config.GetLogger(), module, funcName, c.Request.URL.Path, nil, err)
		utils.JSONError(c, http.StatusInternalServerError, "error.internal", "internal server error", nil)
	}
}

func respondBindError(c *gin.Context, err error) {
	utils.JSONError(c, http.StatusBadRequest, "error.invalidPayload", "invalid request payload", err.Error())
}
