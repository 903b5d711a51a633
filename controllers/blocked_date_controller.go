package controllers

import (
	"net/http"
	"strconv"
	"time"

	"hotel-booking-backend/middleware"
	"hotel-booking-backend/services"
	"hotel-booking-backend/utils"

	"github.com/gin-gonic/gin"
)

type BlockedDateController struct {
	BlockedDateSvc *services.BlockedDateService
}

func NewBlockedDateController(svc *services.BlockedDateService) *BlockedDateController {
	return &BlockedDateController{BlockedDateSvc: svc}
}

type blockPayload struct {
	RoomID    *uint  `json:"room_id"`
	Date      string `json:"date" binding:"required"`
	BlockType string `json:"block_type" binding:"required"`
	Reason    string `json:"reason"`
}

type bulkBlockPayload struct {
	RoomID    *uint    `json:"room_id"`
	Dates     []string `json:"dates" binding:"required,min=1"`
	BlockType string   `json:"block_type" binding:"required"`
	Reason    string   `json:"reason"`
}

type unblockPayload struct {
	RoomID *uint  `json:"room_id"`
	Date   string `json:"date" binding:"required"`
}

type bulkUnblockPayload struct {
	RoomID *uint    `json:"room_id"`
	Dates  []string `json:"dates" binding:"required,min=1"`
}

func creatorName(c *gin.Context) string {
	if admin := middleware.CurrentAdmin(c); admin != nil {
		return admin.Username
	}
	return ""
}

func parseDates(c *gin.Context, raw []string) ([]time.Time, bool) {
	dates := make([]time.Time, 0, len(raw))
	for _, s := range raw {
		d, err := utils.ParseDate(s)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "error.invalidDate", err.Error(), nil)
			return nil, false
		}
		dates = append(dates, d)
	}
	return dates, true
}

func (ctrl *BlockedDateController) Create(c *gin.Context) {
	var payload blockPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindError(c, err)
		return
	}
	date, err := utils.ParseDate(payload.Date)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidDate", err.Error(), nil)
		return
	}

	block, err := ctrl.BlockedDateSvc.Block(payload.RoomID, date, payload.BlockType, payload.Reason, creatorName(c))
	if err != nil {
		respondServiceError(c, "controllers", "CreateBlockedDate", err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, block)
}

func (ctrl *BlockedDateController) CreateBulk(c *gin.Context) {
	var payload bulkBlockPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindError(c, err)
		return
	}
	dates, ok := parseDates(c, payload.Dates)
	if !ok {
		return
	}

	result, err := ctrl.BlockedDateSvc.BlockMany(payload.RoomID, dates, payload.BlockType, payload.Reason, creatorName(c))
	if err != nil {
		respondServiceError(c, "controllers", "CreateBlockedDatesBulk", err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, result)
}

func (ctrl *BlockedDateController) Delete(c *gin.Context) {
	var payload unblockPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindError(c, err)
		return
	}
	date, err := utils.ParseDate(payload.Date)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidDate", err.Error(), nil)
		return
	}

	removed, err := ctrl.BlockedDateSvc.Unblock(payload.RoomID, date)
	if err != nil {
		respondServiceError(c, "controllers", "DeleteBlockedDate", err)
		return
	}
	if !removed {
		utils.JSONError(c, http.StatusNotFound, "error.notFound", "no block exists for that room and date", nil)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"removed": true})
}

func (ctrl *BlockedDateController) DeleteBulk(c *gin.Context) {
	var payload bulkUnblockPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindError(c, err)
		return
	}
	dates, ok := parseDates(c, payload.Dates)
	if !ok {
		return
	}

	result, err := ctrl.BlockedDateSvc.UnblockMany(payload.RoomID, dates)
	if err != nil {
		respondServiceError(c, "controllers", "DeleteBlockedDatesBulk", err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, result)
}

// List answers GET /api/blocked-dates?room_id=&from=&to=. Without a
// range it defaults to the next twelve months.
func (ctrl *BlockedDateController) List(c *gin.Context) {
	var roomID *uint
	if raw := c.Query("room_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil || id == 0 {
			utils.JSONError(c, http.StatusBadRequest, "error.invalidId", "invalid room_id", nil)
			return
		}
		parsed := uint(id)
		roomID = &parsed
	}

	from := utils.Today()
	to := from.AddDate(1, 0, 0)
	var err error
	if raw := c.Query("from"); raw != "" {
		if from, err = utils.ParseDate(raw); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "error.invalidDate", err.Error(), nil)
			return
		}
	}
	if raw := c.Query("to"); raw != "" {
		if to, err = utils.ParseDate(raw); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "error.invalidDate", err.Error(), nil)
			return
		}
	}

	blocks, err := ctrl.BlockedDateSvc.List(roomID, from, to)
	if err != nil {
		respondServiceError(c, "controllers", "ListBlockedDates", err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, blocks)
}
