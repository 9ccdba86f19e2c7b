package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/i474232898/potato-farm-advisor/internal/advisor"
	"github.com/i474232898/potato-farm-advisor/internal/common"
	"github.com/i474232898/potato-farm-advisor/internal/weather"
	"github.com/i474232898/potato-farm-advisor/internal/weather/providers"
)

type AppConfig struct {
	PowerAPIKey  string
	PowerBaseURL string

	// HTTPTimeout bounds the single climate API round trip.
	HTTPTimeout time.Duration

	// Field is the default analysis request (location, planting date, range).
	Field advisor.Request

	// RefreshInterval re-runs the analysis for Field periodically (0 = disabled).
	RefreshInterval time.Duration

	// In-memory store retention: max number of analyses kept (0 = unlimited).
	StoreMaxHistory int

	Port string
}

// Load reads configuration from the environment with sensible defaults.
// The caller is expected to have loaded any .env file already.
func Load() (*AppConfig, error) {
	cfg := &AppConfig{}

	cfg.PowerAPIKey = os.Getenv("POWER_API_KEY")
	cfg.PowerBaseURL = getenvDefault("POWER_BASE_URL", providers.DefaultPowerBaseURL)

	timeout, err := time.ParseDuration(getenvDefault("HTTP_TIMEOUT", "30s"))
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}
	if timeout <= 0 {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: must be positive")
	}
	cfg.HTTPTimeout = timeout

	refresh, err := time.ParseDuration(getenvDefault("REFRESH_INTERVAL", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REFRESH_INTERVAL: %w", err)
	}
	cfg.RefreshInterval = refresh

	cfg.StoreMaxHistory = getenvInt("STORE_MAX_HISTORY", 20)
	cfg.Port = getenvDefault("PORT", "8080")

	field, err := loadField()
	if err != nil {
		return nil, err
	}
	field.APIKey = cfg.PowerAPIKey
	if err := field.Validate(time.Now()); err != nil {
		return nil, fmt.Errorf("invalid field configuration: %w", err)
	}
	cfg.Field = field

	return cfg, nil
}

func loadField() (advisor.Request, error) {
	lat, err := getenvFloat("FARM_LATITUDE", 43.06)
	if err != nil {
		return advisor.Request{}, err
	}
	lon, err := getenvFloat("FARM_LONGITUDE", 141.35)
	if err != nil {
		return advisor.Request{}, err
	}

	plantingStr := getenvDefault("PLANTING_DATE", "2025-04-15")
	planting, err := common.ParseISODate(plantingStr)
	if err != nil {
		return advisor.Request{}, fmt.Errorf("invalid PLANTING_DATE: %w", err)
	}

	days, err := strconv.Atoi(getenvDefault("DAYS_RANGE", "130"))
	if err != nil {
		return advisor.Request{}, fmt.Errorf("invalid DAYS_RANGE: %w", err)
	}

	return advisor.Request{
		Coordinate:   weather.Coordinate{Latitude: lat, Longitude: lon},
		PlantingDate: planting,
		Days:         days,
	}, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

func getenvFloat(key string, def float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return f, nil
}
