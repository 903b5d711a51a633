package services

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"hotel-booking-backend/models"
	"hotel-booking-backend/repositories"
	"hotel-booking-backend/utils"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type CreateEnquiryRequest struct {
	ContactName       string          `json:"contact_name" binding:"required"`
	ContactEmail      string          `json:"contact_email" binding:"required"`
	ContactPhone      string          `json:"contact_phone"`
	Company           string          `json:"company"`
	EventDate         string          `json:"event_date" binding:"required,dateformat"`
	ExpectedAttendees int             `json:"expected_attendees"`
	Equipment         datatypes.JSON  `json:"equipment"`
	Notes             string          `json:"notes"`
	TotalAmount       decimal.Decimal `json:"total_amount"`
	DepositRequired   decimal.Decimal `json:"deposit_required"`
}

// EnquiryService manages conference enquiries, the payment ledger's
// second owner type.
type EnquiryService struct {
	store repositories.Store
}

func NewEnquiryService(store repositories.Store) *EnquiryService {
	return &EnquiryService{store: store}
}

func (s *EnquiryService) Create(req CreateEnquiryRequest) (*models.ConferenceEnquiry, error) {
	fields := map[string]string{}
	if strings.TrimSpace(req.ContactName) == "" {
		fields["contact_name"] = "contact name is required"
	}
	email := strings.TrimSpace(req.ContactEmail)
	if email == "" {
		fields["contact_email"] = "contact email is required"
	} else if _, err := mail.ParseAddress(email); err != nil {
		fields["contact_email"] = "contact email is not a valid address"
	}
	eventDate, err := utils.ParseDate(req.EventDate)
	if err != nil {
		fields["event_date"] = err.Error()
	}
	if req.TotalAmount.IsNegative() || req.DepositRequired.IsNegative() {
		fields["total_amount"] = "amounts cannot be negative"
	}
	if len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	enquiry := &models.ConferenceEnquiry{
		ContactName:       strings.TrimSpace(req.ContactName),
		ContactEmail:      email,
		ContactPhone:      strings.TrimSpace(req.ContactPhone),
		Company:           strings.TrimSpace(req.Company),
		EventDate:         eventDate,
		ExpectedAttendees: req.ExpectedAttendees,
		Equipment:         req.Equipment,
		Notes:             strings.TrimSpace(req.Notes),
		Status:            models.EnquiryStatusNew,
		TotalAmount:       req.TotalAmount,
		DepositRequired:   req.DepositRequired,
		AmountDue:         req.TotalAmount,
	}

	err = s.store.Transaction(func(tx repositories.Store) error {
		ref, err := s.generateReference(tx)
		if err != nil {
			return err
		}
		enquiry.EnquiryReference = ref
		return tx.Enquiries().Create(enquiry)
	})
	if err != nil {
		return nil, err
	}
	return enquiry, nil
}

func (s *EnquiryService) generateReference(tx repositories.Store) (string, error) {
	for attempt := 0; attempt < referenceMaxAttempts; attempt++ {
		candidate, err := utils.GenerateBookingReference("CNF", time.Now())
		if err != nil {
			return "", err
		}
		exists, err := tx.Enquiries().ReferenceExists(candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("could not generate a unique enquiry reference after %d attempts", referenceMaxAttempts)
}

func (s *EnquiryService) GetByID(id uint) (*models.ConferenceEnquiry, error) {
	enquiry, err := s.store.Enquiries().GetByID(id)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, &NotFoundError{Resource: "conference enquiry"}
	}
	return enquiry, err
}

func (s *EnquiryService) List() ([]models.ConferenceEnquiry, error) {
	return s.store.Enquiries().List()
}
