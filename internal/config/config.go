// README: Viper config loader with defaults, env override, and validation.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config aggregates all settings for the engine binary.
type Config struct {
	// Environment indicates the running environment ("development", "production").
	Environment string `mapstructure:"environment"`
	// LogLevel sets the global logging verbosity.
	LogLevel string `mapstructure:"log_level"`
	// Server holds HTTP server settings.
	Server ServerConfig `mapstructure:"server"`
	// Database holds the Postgres connection for the demand-history provider.
	Database DatabaseConfig `mapstructure:"database"`
	// Redis holds the connection for the driver-supply provider.
	Redis RedisConfig `mapstructure:"redis"`
	// Maps holds the optional Google Maps integration.
	Maps MapsConfig `mapstructure:"maps"`
	// Market holds snapshot refresh settings.
	Market MarketConfig `mapstructure:"market"`
	// Demand holds demand-forecast settings.
	Demand DemandConfig `mapstructure:"demand"`
	// Pricing holds fare quote settings.
	Pricing PricingConfig `mapstructure:"pricing"`
	// Matching holds driver-ranking weights.
	Matching MatchingConfig `mapstructure:"matching"`
}

type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

type DatabaseConfig struct {
	// URL is the Postgres connection string. Empty disables the history
	// provider; the engine falls back to offline defaults.
	URL string `mapstructure:"url"`
}

type RedisConfig struct {
	// Addr is the Redis host:port. Empty disables the supply provider.
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type MapsConfig struct {
	// APIKey enables the route-estimate endpoint when set.
	APIKey string `mapstructure:"api_key"`
}

type MarketConfig struct {
	// RefreshSeconds is the snapshot refresh interval.
	RefreshSeconds int `mapstructure:"refresh_seconds"`
	// RefreshTimeoutSeconds bounds the upstream fetches of one refresh.
	RefreshTimeoutSeconds int `mapstructure:"refresh_timeout_seconds"`
	// CenterLat/CenterLng and SupplyRadiusKm define the serviced area the
	// supply provider counts drivers in.
	CenterLat      float64 `mapstructure:"center_lat"`
	CenterLng      float64 `mapstructure:"center_lng"`
	SupplyRadiusKm float64 `mapstructure:"supply_radius_km"`
}

type DemandConfig struct {
	CacheTTLSeconds int `mapstructure:"cache_ttl_seconds"`
}

type PricingConfig struct {
	CacheTTLSeconds int     `mapstructure:"cache_ttl_seconds"`
	FlatRate        float64 `mapstructure:"flat_rate"`
	PerKmRate       float64 `mapstructure:"per_km_rate"`
	PerMinuteRate   float64 `mapstructure:"per_minute_rate"`
	AvgSpeedKmH     float64 `mapstructure:"avg_speed_kmh"`
	MinPrice        float64 `mapstructure:"min_price"`
	MaxPrice        float64 `mapstructure:"max_price"`
	BaseCommission  float64 `mapstructure:"base_commission"`
	Currency        string  `mapstructure:"currency"`
}

type MatchingConfig struct {
	DistanceWeight     float64 `mapstructure:"distance_weight"`
	RatingWeight       float64 `mapstructure:"rating_weight"`
	AvailabilityWeight float64 `mapstructure:"availability_weight"`
	VehicleTypeWeight  float64 `mapstructure:"vehicle_type_weight"`
	PreferencesWeight  float64 `mapstructure:"preferences_weight"`
}

// Load reads config.yaml if present, then applies PULSE_* environment
// overrides on top of the defaults.
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.SetEnvPrefix("PULSE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("environment", "development")
	v.SetDefault("log_level", "info")
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("database.url", "")
	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("maps.api_key", "")
	v.SetDefault("market.refresh_seconds", 300)
	v.SetDefault("market.refresh_timeout_seconds", 10)
	v.SetDefault("market.center_lat", 40.7580)
	v.SetDefault("market.center_lng", -73.9855)
	v.SetDefault("market.supply_radius_km", 15.0)
	v.SetDefault("demand.cache_ttl_seconds", 300)
	v.SetDefault("pricing.cache_ttl_seconds", 300)
	v.SetDefault("pricing.flat_rate", 2.50)
	v.SetDefault("pricing.per_km_rate", 1.20)
	v.SetDefault("pricing.per_minute_rate", 0.35)
	v.SetDefault("pricing.avg_speed_kmh", 30.0)
	v.SetDefault("pricing.min_price", 5.00)
	v.SetDefault("pricing.max_price", 150.00)
	v.SetDefault("pricing.base_commission", 0.20)
	v.SetDefault("pricing.currency", "USD")
	v.SetDefault("matching.distance_weight", 0.30)
	v.SetDefault("matching.rating_weight", 0.25)
	v.SetDefault("matching.availability_weight", 0.20)
	v.SetDefault("matching.vehicle_type_weight", 0.15)
	v.SetDefault("matching.preferences_weight", 0.10)
}

// Validate rejects settings the engine cannot run with. Deeper invariants
// (pattern-table coverage, weight sums) are enforced by the module
// constructors at wiring time.
func (c *Config) Validate() error {
	switch {
	case c.Server.Addr == "":
		return fmt.Errorf("server.addr is required")
	case c.Market.RefreshSeconds <= 0:
		return fmt.Errorf("market.refresh_seconds must be positive, got %d", c.Market.RefreshSeconds)
	case c.Market.RefreshTimeoutSeconds <= 0:
		return fmt.Errorf("market.refresh_timeout_seconds must be positive, got %d", c.Market.RefreshTimeoutSeconds)
	case c.Market.SupplyRadiusKm <= 0:
		return fmt.Errorf("market.supply_radius_km must be positive, got %v", c.Market.SupplyRadiusKm)
	case c.Demand.CacheTTLSeconds <= 0:
		return fmt.Errorf("demand.cache_ttl_seconds must be positive, got %d", c.Demand.CacheTTLSeconds)
	case c.Pricing.CacheTTLSeconds <= 0:
		return fmt.Errorf("pricing.cache_ttl_seconds must be positive, got %d", c.Pricing.CacheTTLSeconds)
	case c.Pricing.MinPrice > c.Pricing.MaxPrice:
		return fmt.Errorf("pricing.min_price %v exceeds pricing.max_price %v", c.Pricing.MinPrice, c.Pricing.MaxPrice)
	}
	return nil
}
