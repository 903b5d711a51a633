package services

import (
	"errors"
	"strings"
	"time"

	"hotel-booking-backend/models"
	"hotel-booking-backend/repositories"
	"hotel-booking-backend/utils"
)

// BlockedDateService manages admin-declared exclusions. A nil room id
// means hotel-wide: the block applies to every room.
type BlockedDateService struct {
	store repositories.Store
}

func NewBlockedDateService(store repositories.Store) *BlockedDateService {
	return &BlockedDateService{store: store}
}

// BulkResult is the partial-success report for bulk block operations.
type BulkResult struct {
	Count    int      `json:"count"`
	Rejected []string `json:"rejected,omitempty"`
}

func (s *BlockedDateService) validateBlock(roomID *uint, date time.Time, blockType string) error {
	if !models.IsValidBlockType(blockType) {
		return newValidationError("block_type", "unknown block type")
	}
	if date.Before(utils.Today()) {
		return newValidationError("date", "cannot block a date in the past")
	}
	if roomID != nil {
		if _, err := s.store.Rooms().GetByID(*roomID); err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return &NotFoundError{Resource: "room"}
			}
			return err
		}
	}
	return nil
}

func (s *BlockedDateService) Block(roomID *uint, date time.Time, blockType, reason, createdBy string) (*models.BlockedDate, error) {
	date = utils.DateOnly(date)
	if err := s.validateBlock(roomID, date, blockType); err != nil {
		return nil, err
	}

	block := &models.BlockedDate{
		RoomID:    roomID,
		Date:      date,
		BlockType: blockType,
		Reason:    strings.TrimSpace(reason),
		CreatedBy: strings.TrimSpace(createdBy),
	}
	if err := s.store.BlockedDates().Create(block); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, &ConflictError{Message: "date is already blocked"}
		}
		return nil, err
	}
	return block, nil
}

// BlockMany blocks a list of dates, skipping (not failing on) dates in
// the past and dates already blocked. Rejected dates come back so the
// caller can show what was skipped.
func (s *BlockedDateService) BlockMany(roomID *uint, dates []time.Time, blockType, reason, createdBy string) (*BulkResult, error) {
	if !models.IsValidBlockType(blockType) {
		return nil, newValidationError("block_type", "unknown block type")
	}
	if roomID != nil {
		if _, err := s.store.Rooms().GetByID(*roomID); err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return nil, &NotFoundError{Resource: "room"}
			}
			return nil, err
		}
	}

	result := &BulkResult{}
	today := utils.Today()
	for _, raw := range dates {
		date := utils.DateOnly(raw)
		if date.Before(today) {
			result.Rejected = append(result.Rejected, date.Format(utils.DateLayout))
			continue
		}
		block := &models.BlockedDate{
			RoomID:    roomID,
			Date:      date,
			BlockType: blockType,
			Reason:    strings.TrimSpace(reason),
			CreatedBy: strings.TrimSpace(createdBy),
		}
		if err := s.store.BlockedDates().Create(block); err != nil {
			if errors.Is(err, repositories.ErrDuplicate) {
				result.Rejected = append(result.Rejected, date.Format(utils.DateLayout))
				continue
			}
			return nil, err
		}
		result.Count++
	}
	return result, nil
}

// Unblock removes the block for (roomID, date); false means there was
// nothing to remove.
func (s *BlockedDateService) Unblock(roomID *uint, date time.Time) (bool, error) {
	return s.store.BlockedDates().Delete(roomID, utils.DateOnly(date))
}

// UnblockMany removes a list of blocks, reporting dates that were not
// blocked in the first place.
func (s *BlockedDateService) UnblockMany(roomID *uint, dates []time.Time) (*BulkResult, error) {
	result := &BulkResult{}
	for _, raw := range dates {
		date := utils.DateOnly(raw)
		removed, err := s.store.BlockedDates().Delete(roomID, date)
		if err != nil {
			return nil, err
		}
		if removed {
			result.Count++
		} else {
			result.Rejected = append(result.Rejected, date.Format(utils.DateLayout))
		}
	}
	return result, nil
}

// List returns blocks in [from, to). Nil roomID lists every block;
// otherwise blocks for that room plus hotel-wide ones.
func (s *BlockedDateService) List(roomID *uint, from, to time.Time) ([]models.BlockedDate, error) {
	from = utils.DateOnly(from)
	to = utils.DateOnly(to)
	if !to.After(from) {
		return nil, newValidationError("to", "end of range must be after its start")
	}
	return s.store.BlockedDates().List(roomID, from, to)
}
