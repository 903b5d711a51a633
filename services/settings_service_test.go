package services

import (
	"testing"

	"hotel-booking-backend/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingsDefaults(t *testing.T) {
	env := newTestEnv(t)

	assert.Equal(t, "HTL", env.settings.Get(models.SettingBookingRefPrefix, "HTL"))
	assert.Equal(t, 365, env.settings.GetInt(models.SettingMaxAdvanceBookingDays, 365))
	assert.True(t, env.settings.GetBool(models.SettingVatEnabled, true))
	assert.True(t, env.settings.VatRate().Equal(decimal.NewFromFloat(7.5)))
}

func TestSettingsOverrides(t *testing.T) {
	env := newTestEnv(t)

	require.NoError(t, env.settings.Set(models.SettingMaxAdvanceBookingDays, "90"))
	assert.Equal(t, 90, env.settings.GetInt(models.SettingMaxAdvanceBookingDays, 365))

	require.NoError(t, env.settings.Set(models.SettingVatRate, "12.5"))
	assert.True(t, env.settings.VatRate().Equal(decimal.RequireFromString("12.5")))
}

func TestVatRateZeroWhenDisabled(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.settings.Set(models.SettingVatRate, "12.5"))
	require.NoError(t, env.settings.Set(models.SettingVatEnabled, "false"))
	assert.True(t, env.settings.VatRate().IsZero())
}

func TestSettingsBadValuesFallBack(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.settings.Set(models.SettingMaxAdvanceBookingDays, "soon"))
	assert.Equal(t, 365, env.settings.GetInt(models.SettingMaxAdvanceBookingDays, 365))

	require.NoError(t, env.settings.Set(models.SettingVatRate, "lots"))
	assert.True(t, env.settings.VatRate().Equal(decimal.NewFromFloat(7.5)))
}

func TestSetRejectsEmptyKey(t *testing.T) {
	env := newTestEnv(t)
	err := env.settings.Set("  ", "x")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
}
