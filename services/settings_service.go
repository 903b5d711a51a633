package services

import (
	"strconv"
	"strings"

	"hotel-booking-backend/models"
	"hotel-booking-backend/repositories"

	"github.com/shopspring/decimal"
)

// SettingsService is the read-mostly key/value lookup the core consults
// for booking windows, VAT and currency. Missing keys fall back to the
// supplied default; store errors also fall back so a flaky settings read
// never takes bookings down.
type SettingsService struct {
	store repositories.Store
}

func NewSettingsService(store repositories.Store) *SettingsService {
	return &SettingsService{store: store}
}

func (s *SettingsService) Get(key, def string) string {
	value, found, err := s.store.Settings().Get(key)
	if err != nil || !found || strings.TrimSpace(value) == "" {
		return def
	}
	return value
}

func (s *SettingsService) GetInt(key string, def int) int {
	v, err := strconv.Atoi(strings.TrimSpace(s.Get(key, strconv.Itoa(def))))
	if err != nil {
		return def
	}
	return v
}

func (s *SettingsService) GetBool(key string, def bool) bool {
	v, err := strconv.ParseBool(strings.TrimSpace(s.Get(key, strconv.FormatBool(def))))
	if err != nil {
		return def
	}
	return v
}

func (s *SettingsService) GetDecimal(key string, def decimal.Decimal) decimal.Decimal {
	v, err := decimal.NewFromString(strings.TrimSpace(s.Get(key, def.String())))
	if err != nil {
		return def
	}
	return v
}

func (s *SettingsService) Set(key, value string) error {
	if strings.TrimSpace(key) == "" {
		return newValidationError("key", "setting key is required")
	}
	return s.store.Settings().Set(key, value)
}

func (s *SettingsService) All() ([]models.Setting, error) {
	return s.store.Settings().All()
}

// VatRate returns the hotel-wide VAT rate, zero when VAT is disabled.
func (s *SettingsService) VatRate() decimal.Decimal {
	if !s.GetBool(models.SettingVatEnabled, true) {
		return decimal.Zero
	}
	return s.GetDecimal(models.SettingVatRate, decimal.NewFromFloat(7.5))
}
