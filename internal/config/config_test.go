package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 300, cfg.Market.RefreshSeconds)
	assert.Equal(t, 300, cfg.Demand.CacheTTLSeconds)
	assert.Equal(t, 5.00, cfg.Pricing.MinPrice)
	assert.Equal(t, 150.00, cfg.Pricing.MaxPrice)
	assert.Equal(t, "USD", cfg.Pricing.Currency)
	assert.InDelta(t, 1.0,
		cfg.Matching.DistanceWeight+cfg.Matching.RatingWeight+cfg.Matching.AvailabilityWeight+
			cfg.Matching.VehicleTypeWeight+cfg.Matching.PreferencesWeight, 1e-9)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("PULSE_SERVER_ADDR", ":9999")
	t.Setenv("PULSE_PRICING_CURRENCY", "EUR")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9999", cfg.Server.Addr)
	assert.Equal(t, "EUR", cfg.Pricing.Currency)
}

func TestValidateRejectsInvertedPriceBounds(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	cfg.Pricing.MinPrice = 200
	cfg.Pricing.MaxPrice = 100
	assert.Error(t, cfg.Validate())
}

func TestValidateRejectsNonPositiveRefresh(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	cfg.Market.RefreshSeconds = 0
	assert.Error(t, cfg.Validate())
}
