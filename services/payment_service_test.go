package services

import (
	"testing"

	"hotel-booking-backend/models"
	"hotel-booking-backend/utils"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func disableVat(t *testing.T, env *testEnv) {
	t.Helper()
	require.NoError(t, env.settings.Set(models.SettingVatEnabled, "false"))
}

func completedPayment(ownerType string, ownerID uint, amount int64) CreatePaymentRequest {
	return CreatePaymentRequest{
		BookingType:   ownerType,
		BookingID:     ownerID,
		Amount:        decimal.NewFromInt(amount),
		PaymentMethod: models.PaymentMethodCard,
		Status:        models.PaymentStatusCompleted,
	}
}

func TestCreatePaymentCompleted(t *testing.T) {
	env := newTestEnv(t)
	disableVat(t, env)
	room := env.addRoom(t, "101", 100, 2)
	booking := env.addBooking(t, room.ID, "HTL20260001", models.BookingStatusConfirmed,
		daysAhead(10), daysAhead(14), 1000)

	payment, err := env.payments.CreatePayment(completedPayment(models.PaymentOwnerRoom, booking.ID, 400))
	require.NoError(t, err)

	assert.True(t, utils.IsValidPaymentReference(payment.PaymentReference),
		"bad payment reference %q", payment.PaymentReference)
	require.NotNil(t, payment.ReceiptNumber)
	assert.True(t, utils.IsValidReceiptNumber(*payment.ReceiptNumber),
		"bad receipt %q", *payment.ReceiptNumber)
	assert.True(t, payment.Total.Equal(decimal.NewFromInt(400)))

	updated, err := env.store.Bookings().GetByID(booking.ID)
	require.NoError(t, err)
	assert.True(t, updated.AmountPaid.Equal(decimal.NewFromInt(400)))
	assert.True(t, updated.AmountDue.Equal(decimal.NewFromInt(600)))
	require.NotNil(t, updated.LastPaymentDate)
}

func TestCreatePaymentPendingHasNoReceipt(t *testing.T) {
	env := newTestEnv(t)
	disableVat(t, env)
	room := env.addRoom(t, "101", 100, 2)
	booking := env.addBooking(t, room.ID, "HTL20260001", models.BookingStatusConfirmed,
		daysAhead(10), daysAhead(14), 1000)

	req := completedPayment(models.PaymentOwnerRoom, booking.ID, 400)
	req.Status = models.PaymentStatusPending
	payment, err := env.payments.CreatePayment(req)
	require.NoError(t, err)
	assert.Nil(t, payment.ReceiptNumber)

	// Pending payments never count toward the aggregates.
	updated, err := env.store.Bookings().GetByID(booking.ID)
	require.NoError(t, err)
	assert.True(t, updated.AmountPaid.IsZero())
	assert.True(t, updated.AmountDue.Equal(decimal.NewFromInt(1000)))
}

func TestPaymentVatFrozenPerPayment(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.settings.Set(models.SettingVatRate, "10"))
	room := env.addRoom(t, "101", 100, 2)
	booking := env.addBooking(t, room.ID, "HTL20260001", models.BookingStatusConfirmed,
		daysAhead(10), daysAhead(14), 1000)

	payment, err := env.payments.CreatePayment(completedPayment(models.PaymentOwnerRoom, booking.ID, 200))
	require.NoError(t, err)
	assert.True(t, payment.VatRate.Equal(decimal.NewFromInt(10)))
	assert.True(t, payment.VatAmount.Equal(decimal.NewFromInt(20)), "got %s", payment.VatAmount)
	assert.True(t, payment.Total.Equal(decimal.NewFromInt(220)))

	// Changing the hotel rate later leaves the stored payment untouched.
	require.NoError(t, env.settings.Set(models.SettingVatRate, "20"))
	stored, err := env.payments.GetPayment(payment.ID)
	require.NoError(t, err)
	assert.True(t, stored.VatRate.Equal(decimal.NewFromInt(10)))
}

func TestPaymentVatRounding(t *testing.T) {
	env := newTestEnv(t)
	room := env.addRoom(t, "101", 100, 2)
	booking := env.addBooking(t, room.ID, "HTL20260001", models.BookingStatusConfirmed,
		daysAhead(10), daysAhead(14), 1000)

	rate := decimal.NewFromFloat(7.5)
	req := completedPayment(models.PaymentOwnerRoom, booking.ID, 0)
	req.Amount = decimal.RequireFromString("333.33")
	req.VatRate = &rate

	payment, err := env.payments.CreatePayment(req)
	require.NoError(t, err)
	// 333.33 * 7.5% = 24.99975, rounded to 25.00.
	assert.True(t, payment.VatAmount.Equal(decimal.NewFromInt(25)), "got %s", payment.VatAmount)
	assert.True(t, payment.Total.Equal(decimal.RequireFromString("358.33")), "got %s", payment.Total)
}

func TestUpdatePaymentMintsReceiptOnce(t *testing.T) {
	env := newTestEnv(t)
	disableVat(t, env)
	room := env.addRoom(t, "101", 100, 2)
	booking := env.addBooking(t, room.ID, "HTL20260001", models.BookingStatusConfirmed,
		daysAhead(10), daysAhead(14), 1000)

	req := completedPayment(models.PaymentOwnerRoom, booking.ID, 300)
	req.Status = models.PaymentStatusPending
	payment, err := env.payments.CreatePayment(req)
	require.NoError(t, err)
	require.Nil(t, payment.ReceiptNumber)

	completed := models.PaymentStatusCompleted
	payment, err = env.payments.UpdatePayment(payment.ID, UpdatePaymentRequest{Status: &completed})
	require.NoError(t, err)
	require.NotNil(t, payment.ReceiptNumber)
	receipt := *payment.ReceiptNumber

	// Later edits keep the same receipt.
	newAmount := decimal.NewFromInt(350)
	payment, err = env.payments.UpdatePayment(payment.ID, UpdatePaymentRequest{Amount: &newAmount})
	require.NoError(t, err)
	require.NotNil(t, payment.ReceiptNumber)
	assert.Equal(t, receipt, *payment.ReceiptNumber)

	updated, err := env.store.Bookings().GetByID(booking.ID)
	require.NoError(t, err)
	assert.True(t, updated.AmountPaid.Equal(decimal.NewFromInt(350)))
}

func TestUpdatePaymentStatusChangeRecomputes(t *testing.T) {
	env := newTestEnv(t)
	disableVat(t, env)
	room := env.addRoom(t, "101", 100, 2)
	booking := env.addBooking(t, room.ID, "HTL20260001", models.BookingStatusConfirmed,
		daysAhead(10), daysAhead(14), 1000)

	payment, err := env.payments.CreatePayment(completedPayment(models.PaymentOwnerRoom, booking.ID, 400))
	require.NoError(t, err)

	refunded := models.PaymentStatusRefunded
	_, err = env.payments.UpdatePayment(payment.ID, UpdatePaymentRequest{Status: &refunded})
	require.NoError(t, err)

	updated, err := env.store.Bookings().GetByID(booking.ID)
	require.NoError(t, err)
	assert.True(t, updated.AmountPaid.IsZero(), "refunded payments leave the aggregate")
	assert.True(t, updated.AmountDue.Equal(decimal.NewFromInt(1000)))
}

func TestDeletePaymentSoftDeletesAndRecomputes(t *testing.T) {
	env := newTestEnv(t)
	disableVat(t, env)
	room := env.addRoom(t, "101", 100, 2)
	booking := env.addBooking(t, room.ID, "HTL20260001", models.BookingStatusConfirmed,
		daysAhead(10), daysAhead(14), 1000)

	first, err := env.payments.CreatePayment(completedPayment(models.PaymentOwnerRoom, booking.ID, 400))
	require.NoError(t, err)
	_, err = env.payments.CreatePayment(completedPayment(models.PaymentOwnerRoom, booking.ID, 300))
	require.NoError(t, err)

	require.NoError(t, env.payments.DeletePayment(first.ID))

	updated, err := env.store.Bookings().GetByID(booking.ID)
	require.NoError(t, err)
	assert.True(t, updated.AmountPaid.Equal(decimal.NewFromInt(300)))
	assert.True(t, updated.AmountDue.Equal(decimal.NewFromInt(700)))

	_, err = env.payments.GetPayment(first.ID)
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)

	listed, err := env.payments.ListPayments(models.PaymentOwnerRoom, booking.ID)
	require.NoError(t, err)
	assert.Len(t, listed, 1)
}

func TestOverpaymentClampsAmountDue(t *testing.T) {
	env := newTestEnv(t)
	disableVat(t, env)
	room := env.addRoom(t, "101", 100, 2)
	booking := env.addBooking(t, room.ID, "HTL20260001", models.BookingStatusConfirmed,
		daysAhead(10), daysAhead(14), 500)

	_, err := env.payments.CreatePayment(completedPayment(models.PaymentOwnerRoom, booking.ID, 700))
	require.NoError(t, err)

	updated, err := env.store.Bookings().GetByID(booking.ID)
	require.NoError(t, err)
	assert.True(t, updated.AmountDue.IsZero(), "amount due never goes negative, got %s", updated.AmountDue)
}

func TestConferenceDepositDerivation(t *testing.T) {
	env := newTestEnv(t)
	disableVat(t, env)
	enquiry := env.addEnquiry(t, "CNF20260001", 2000, 500)

	_, err := env.payments.CreatePayment(completedPayment(models.PaymentOwnerConference, enquiry.ID, 300))
	require.NoError(t, err)

	updated, err := env.store.Enquiries().GetByID(enquiry.ID)
	require.NoError(t, err)
	assert.True(t, updated.DepositPaid.Equal(decimal.NewFromInt(300)), "partial deposit, got %s", updated.DepositPaid)

	_, err = env.payments.CreatePayment(completedPayment(models.PaymentOwnerConference, enquiry.ID, 400))
	require.NoError(t, err)

	updated, err = env.store.Enquiries().GetByID(enquiry.ID)
	require.NoError(t, err)
	assert.True(t, updated.DepositPaid.Equal(decimal.NewFromInt(500)), "deposit caps at the required amount")
	assert.True(t, updated.AmountPaid.Equal(decimal.NewFromInt(700)))
	assert.True(t, updated.AmountDue.Equal(decimal.NewFromInt(1300)))
}

func TestCreatePaymentRejections(t *testing.T) {
	env := newTestEnv(t)
	room := env.addRoom(t, "101", 100, 2)
	booking := env.addBooking(t, room.ID, "HTL20260001", models.BookingStatusConfirmed,
		daysAhead(10), daysAhead(14), 1000)

	t.Run("unknown owner type", func(t *testing.T) {
		req := completedPayment("spa", booking.ID, 100)
		_, err := env.payments.CreatePayment(req)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
	})

	t.Run("owner does not exist", func(t *testing.T) {
		req := completedPayment(models.PaymentOwnerRoom, 999, 100)
		_, err := env.payments.CreatePayment(req)
		var nf *NotFoundError
		require.ErrorAs(t, err, &nf)
	})

	t.Run("bad method", func(t *testing.T) {
		req := completedPayment(models.PaymentOwnerRoom, booking.ID, 100)
		req.PaymentMethod = "iou"
		_, err := env.payments.CreatePayment(req)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Fields, "payment_method")
	})

	t.Run("bad status", func(t *testing.T) {
		req := completedPayment(models.PaymentOwnerRoom, booking.ID, 100)
		req.Status = "maybe"
		_, err := env.payments.CreatePayment(req)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Fields, "payment_status")
	})

	t.Run("non-positive amount", func(t *testing.T) {
		req := completedPayment(models.PaymentOwnerRoom, booking.ID, 0)
		_, err := env.payments.CreatePayment(req)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Fields, "payment_amount")
	})

	t.Run("negative vat rate", func(t *testing.T) {
		rate := decimal.NewFromInt(-5)
		req := completedPayment(models.PaymentOwnerRoom, booking.ID, 100)
		req.VatRate = &rate
		_, err := env.payments.CreatePayment(req)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Fields, "vat_rate")
	})

	// A rejected payment leaves the ledger untouched.
	payments, err := env.payments.ListPayments(models.PaymentOwnerRoom, booking.ID)
	require.NoError(t, err)
	assert.Empty(t, payments)
}

func TestOwnerVatAggregatesFollowCurrentRate(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.settings.Set(models.SettingVatRate, "10"))
	room := env.addRoom(t, "101", 100, 2)
	booking := env.addBooking(t, room.ID, "HTL20260001", models.BookingStatusConfirmed,
		daysAhead(10), daysAhead(14), 1000)

	_, err := env.payments.CreatePayment(completedPayment(models.PaymentOwnerRoom, booking.ID, 100))
	require.NoError(t, err)

	updated, err := env.store.Bookings().GetByID(booking.ID)
	require.NoError(t, err)
	assert.True(t, updated.VatRate.Equal(decimal.NewFromInt(10)))
	assert.True(t, updated.VatAmount.Equal(decimal.NewFromInt(100)), "10%% of 1000, got %s", updated.VatAmount)
	assert.True(t, updated.TotalWithVat.Equal(decimal.NewFromInt(1100)))
}
