package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"hotel-booking-backend/models"
	"hotel-booking-backend/repositories"
	"hotel-booking-backend/utils"

	"github.com/shopspring/decimal"
)

type CreatePaymentRequest struct {
	BookingType    string           `json:"booking_type" binding:"required"`
	BookingID      uint             `json:"booking_id" binding:"required"`
	Amount         decimal.Decimal  `json:"payment_amount" binding:"required"`
	VatRate        *decimal.Decimal `json:"vat_rate"`
	PaymentDate    string           `json:"payment_date"`
	PaymentMethod  string           `json:"payment_method" binding:"required"`
	Status         string           `json:"payment_status" binding:"required"`
	TransactionRef string           `json:"transaction_ref"`
	Notes          string           `json:"notes"`
}

type UpdatePaymentRequest struct {
	Amount         *decimal.Decimal `json:"payment_amount"`
	VatRate        *decimal.Decimal `json:"vat_rate"`
	PaymentDate    *string          `json:"payment_date"`
	PaymentMethod  *string          `json:"payment_method"`
	Status         *string          `json:"payment_status"`
	TransactionRef *string          `json:"transaction_ref"`
	Notes          *string          `json:"notes"`
}

// PaymentService is the ledger of discrete payment events against room
// bookings and conference enquiries. Aggregates on the owner are never
// incremented: every mutation re-derives them from the full set of
// completed, non-deleted payments inside the same transaction as the
// payment write, with the owner row locked.
type PaymentService struct {
	store    repositories.Store
	settings *SettingsService
}

func NewPaymentService(store repositories.Store, settings *SettingsService) *PaymentService {
	return &PaymentService{store: store, settings: settings}
}

// ---------------------------------------------------------------------
// Owner variants
// ---------------------------------------------------------------------

// ledgerAggregates is what a recompute derives from the payment set.
type ledgerAggregates struct {
	amountPaid      decimal.Decimal
	amountDue       decimal.Decimal
	vatRate         decimal.Decimal
	vatAmount       decimal.Decimal
	totalWithVat    decimal.Decimal
	lastPaymentDate *time.Time
}

// paymentOwner is the tagged variant over the two owner kinds. One
// recompute path works against either through this interface.
type paymentOwner interface {
	kind() string
	id() uint
	totalAmount() decimal.Decimal
	apply(agg ledgerAggregates)
	save(tx repositories.Store) error
}

type bookingOwner struct{ b *models.Booking }

func (o *bookingOwner) kind() string                 { return models.PaymentOwnerRoom }
func (o *bookingOwner) id() uint                     { return o.b.ID }
func (o *bookingOwner) totalAmount() decimal.Decimal { return o.b.TotalAmount }

func (o *bookingOwner) apply(agg ledgerAggregates) {
	o.b.AmountPaid = agg.amountPaid
	o.b.AmountDue = agg.amountDue
	o.b.VatRate = agg.vatRate
	o.b.VatAmount = agg.vatAmount
	o.b.TotalWithVat = agg.totalWithVat
	o.b.LastPaymentDate = agg.lastPaymentDate
}

func (o *bookingOwner) save(tx repositories.Store) error {
	return tx.Bookings().Update(o.b)
}

type conferenceOwner struct{ e *models.ConferenceEnquiry }

func (o *conferenceOwner) kind() string                 { return models.PaymentOwnerConference }
func (o *conferenceOwner) id() uint                     { return o.e.ID }
func (o *conferenceOwner) totalAmount() decimal.Decimal { return o.e.TotalAmount }

func (o *conferenceOwner) apply(agg ledgerAggregates) {
	o.e.AmountPaid = agg.amountPaid
	o.e.AmountDue = agg.amountDue
	o.e.VatRate = agg.vatRate
	o.e.VatAmount = agg.vatAmount
	o.e.TotalWithVat = agg.totalWithVat
	o.e.LastPaymentDate = agg.lastPaymentDate
	// Deposit is covered by whatever has been paid, up to the required
	// amount.
	if agg.amountPaid.LessThan(o.e.DepositRequired) {
		o.e.DepositPaid = agg.amountPaid
	} else {
		o.e.DepositPaid = o.e.DepositRequired
	}
}

func (o *conferenceOwner) save(tx repositories.Store) error {
	return tx.Enquiries().Update(o.e)
}

// lockOwner loads the owner row with a FOR UPDATE lock so concurrent
// recomputes for the same owner serialize.
func lockOwner(tx repositories.Store, ownerType string, ownerID uint) (paymentOwner, error) {
	switch ownerType {
	case models.PaymentOwnerRoom:
		b, err := tx.Bookings().GetForUpdate(ownerID)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return nil, &NotFoundError{Resource: "booking"}
			}
			return nil, err
		}
		return &bookingOwner{b: b}, nil
	case models.PaymentOwnerConference:
		e, err := tx.Enquiries().GetForUpdate(ownerID)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return nil, &NotFoundError{Resource: "conference enquiry"}
			}
			return nil, err
		}
		return &conferenceOwner{e: e}, nil
	default:
		return nil, newValidationError("booking_type", "must be \"room\" or \"conference\"")
	}
}

// ---------------------------------------------------------------------
// Recompute
// ---------------------------------------------------------------------

// recompute derives the owner's aggregates from scratch. Idempotent:
// any number of calls over the same payment set yields the same result,
// which also makes the aggregates self-healing after edits or deletes.
//
// The owner's VAT fields are derived from the current hotel-wide VAT
// rate, not a rate frozen at booking time; individual payments keep the
// rate they were created with.
func (s *PaymentService) recompute(tx repositories.Store, owner paymentOwner) error {
	payments, err := tx.Payments().CompletedByOwner(owner.kind(), owner.id())
	if err != nil {
		return err
	}

	agg := ledgerAggregates{
		amountPaid: decimal.Zero,
	}
	for i := range payments {
		p := &payments[i]
		agg.amountPaid = agg.amountPaid.Add(p.Total)
		if agg.lastPaymentDate == nil || p.PaymentDate.After(*agg.lastPaymentDate) {
			d := p.PaymentDate
			agg.lastPaymentDate = &d
		}
	}

	total := owner.totalAmount()
	agg.vatRate = s.settings.VatRate()
	agg.vatAmount = total.Mul(agg.vatRate).Div(decimal.NewFromInt(100)).Round(2)
	agg.totalWithVat = total.Add(agg.vatAmount)

	agg.amountDue = total.Sub(agg.amountPaid)
	if agg.amountDue.IsNegative() {
		agg.amountDue = decimal.Zero
	}

	owner.apply(agg)
	return owner.save(tx)
}

// ---------------------------------------------------------------------
// Operations
// ---------------------------------------------------------------------

func validatePaymentEnums(method, status string) *ValidationError {
	fields := map[string]string{}
	if !models.IsValidPaymentMethod(method) {
		fields["payment_method"] = "unknown payment method"
	}
	if !models.IsValidPaymentStatus(status) {
		fields["payment_status"] = "unknown payment status"
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// vatFor computes a payment's frozen VAT breakdown.
func vatFor(amount, rate decimal.Decimal) (vatAmount, total decimal.Decimal) {
	vatAmount = amount.Mul(rate).Div(decimal.NewFromInt(100)).Round(2)
	return vatAmount, amount.Add(vatAmount)
}

func (s *PaymentService) CreatePayment(req CreatePaymentRequest) (*models.Payment, error) {
	if !models.IsValidPaymentOwnerType(req.BookingType) {
		return nil, newValidationError("booking_type", "must be \"room\" or \"conference\"")
	}
	if verr := validatePaymentEnums(req.PaymentMethod, req.Status); verr != nil {
		return nil, verr
	}
	if !req.Amount.IsPositive() {
		return nil, newValidationError("payment_amount", "amount must be greater than zero")
	}

	paymentDate := utils.Today()
	if strings.TrimSpace(req.PaymentDate) != "" {
		parsed, err := utils.ParseDate(req.PaymentDate)
		if err != nil {
			return nil, newValidationError("payment_date", err.Error())
		}
		paymentDate = parsed
	}

	vatRate := s.settings.VatRate()
	if req.VatRate != nil {
		if req.VatRate.IsNegative() {
			return nil, newValidationError("vat_rate", "VAT rate cannot be negative")
		}
		vatRate = *req.VatRate
	}
	vatAmount, total := vatFor(req.Amount, vatRate)

	payment := &models.Payment{
		BookingType:    req.BookingType,
		BookingID:      req.BookingID,
		PaymentDate:    paymentDate,
		Amount:         req.Amount,
		VatRate:        vatRate,
		VatAmount:      vatAmount,
		Total:          total,
		PaymentMethod:  req.PaymentMethod,
		Status:         req.Status,
		TransactionRef: strings.TrimSpace(req.TransactionRef),
		Notes:          strings.TrimSpace(req.Notes),
	}

	err := s.store.Transaction(func(tx repositories.Store) error {
		owner, err := lockOwner(tx, req.BookingType, req.BookingID)
		if err != nil {
			return err
		}

		ref, err := s.generatePaymentReference(tx)
		if err != nil {
			return err
		}
		payment.PaymentReference = ref

		if payment.Status == models.PaymentStatusCompleted {
			receipt, err := s.generateReceiptNumber(tx)
			if err != nil {
				return err
			}
			payment.ReceiptNumber = &receipt
		}

		if err := tx.Payments().Create(payment); err != nil {
			return err
		}
		return s.recompute(tx, owner)
	})
	if err != nil {
		return nil, err
	}
	return payment, nil
}

func (s *PaymentService) UpdatePayment(id uint, req UpdatePaymentRequest) (*models.Payment, error) {
	var updated *models.Payment
	err := s.store.Transaction(func(tx repositories.Store) error {
		payment, err := tx.Payments().GetByID(id)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return &NotFoundError{Resource: "payment"}
			}
			return err
		}

		owner, err := lockOwner(tx, payment.BookingType, payment.BookingID)
		if err != nil {
			return err
		}

		if req.PaymentMethod != nil && !models.IsValidPaymentMethod(*req.PaymentMethod) {
			return newValidationError("payment_method", "unknown payment method")
		}
		if req.Status != nil && !models.IsValidPaymentStatus(*req.Status) {
			return newValidationError("payment_status", "unknown payment status")
		}
		if req.Amount != nil && !req.Amount.IsPositive() {
			return newValidationError("payment_amount", "amount must be greater than zero")
		}
		if req.VatRate != nil && req.VatRate.IsNegative() {
			return newValidationError("vat_rate", "VAT rate cannot be negative")
		}

		if req.PaymentDate != nil {
			parsed, err := utils.ParseDate(*req.PaymentDate)
			if err != nil {
				return newValidationError("payment_date", err.Error())
			}
			payment.PaymentDate = parsed
		}
		if req.Amount != nil {
			payment.Amount = *req.Amount
		}
		if req.VatRate != nil {
			// Rate defaults to the payment's existing rate when absent.
			payment.VatRate = *req.VatRate
		}
		payment.VatAmount, payment.Total = vatFor(payment.Amount, payment.VatRate)

		if req.PaymentMethod != nil {
			payment.PaymentMethod = *req.PaymentMethod
		}
		if req.Status != nil {
			payment.Status = *req.Status
		}
		if req.TransactionRef != nil {
			payment.TransactionRef = strings.TrimSpace(*req.TransactionRef)
		}
		if req.Notes != nil {
			payment.Notes = strings.TrimSpace(*req.Notes)
		}

		// First transition into completed mints the receipt; it is never
		// regenerated afterwards.
		if payment.Status == models.PaymentStatusCompleted && payment.ReceiptNumber == nil {
			receipt, err := s.generateReceiptNumber(tx)
			if err != nil {
				return err
			}
			payment.ReceiptNumber = &receipt
		}

		if err := tx.Payments().Update(payment); err != nil {
			return err
		}
		if err := s.recompute(tx, owner); err != nil {
			return err
		}
		updated = payment
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeletePayment soft-deletes the payment and re-derives the owner's
// aggregates without it. The row is never physically removed.
func (s *PaymentService) DeletePayment(id uint) error {
	return s.store.Transaction(func(tx repositories.Store) error {
		payment, err := tx.Payments().GetByID(id)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return &NotFoundError{Resource: "payment"}
			}
			return err
		}

		owner, err := lockOwner(tx, payment.BookingType, payment.BookingID)
		if err != nil {
			return err
		}
		if err := tx.Payments().SoftDelete(payment.ID); err != nil {
			return err
		}
		return s.recompute(tx, owner)
	})
}

func (s *PaymentService) GetPayment(id uint) (*models.Payment, error) {
	payment, err := s.store.Payments().GetByID(id)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, &NotFoundError{Resource: "payment"}
	}
	return payment, err
}

func (s *PaymentService) ListPayments(ownerType string, ownerID uint) ([]models.Payment, error) {
	if !models.IsValidPaymentOwnerType(ownerType) {
		return nil, newValidationError("booking_type", "must be \"room\" or \"conference\"")
	}
	return s.store.Payments().ListByOwner(ownerType, ownerID)
}

func (s *PaymentService) generatePaymentReference(tx repositories.Store) (string, error) {
	for attempt := 0; attempt < referenceMaxAttempts; attempt++ {
		candidate := utils.GeneratePaymentReference(time.Now())
		exists, err := tx.Payments().ReferenceExists(candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("could not generate a unique payment reference after %d attempts", referenceMaxAttempts)
}

func (s *PaymentService) generateReceiptNumber(tx repositories.Store) (string, error) {
	for attempt := 0; attempt < referenceMaxAttempts; attempt++ {
		candidate, err := utils.GenerateReceiptNumber(time.Now())
		if err != nil {
			return "", err
		}
		exists, err := tx.Payments().ReceiptNumberExists(candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("could not generate a unique receipt number after %d attempts", referenceMaxAttempts)
}
