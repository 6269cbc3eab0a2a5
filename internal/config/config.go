// Package config reads service settings from the environment. Call
// godotenv.Load before Load to pick up a local .env file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	"trip-logbook-service/internal/domain"
)

type Config struct {
	Port string

	// Postgres wins over SQLite when DatabaseURL is set.
	DatabaseURL string
	DBPath      string

	RedisAddr  string
	SessionTTL time.Duration

	RouteProvider    string
	ORSAPIKey        string
	ORSBaseURL       string
	GoogleMapsAPIKey string
	GeocodeAddresses bool

	JWTSecret      string
	AllowedOrigins []string

	Rules domain.RuleSet
}

// Get returns the environment value for key, or fallback when unset or blank.
func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func GetFloat(key string, fallback float64) (float64, error) {
	v := Get(key, "")
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("config: %s=%q is not a number: %w", key, v, err)
	}
	return f, nil
}

func GetBool(key string, fallback bool) (bool, error) {
	v := Get(key, "")
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("config: %s=%q is not a boolean: %w", key, v, err)
	}
	return b, nil
}

func GetDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := Get(key, "")
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s=%q is not a duration: %w", key, v, err)
	}
	return d, nil
}

func Load() (Config, error) {
	cfg := Config{
		Port:             Get("PORT", "8080"),
		DatabaseURL:      Get("DATABASE_URL", ""),
		DBPath:           Get("DB_PATH", "data/app.db"),
		RedisAddr:        Get("REDIS_ADDR", ""),
		RouteProvider:    strings.ToLower(Get("ROUTE_PROVIDER", "ors")),
		ORSAPIKey:        Get("ORS_API_KEY", ""),
		ORSBaseURL:       Get("ORS_BASE_URL", ""),
		GoogleMapsAPIKey: Get("GOOGLE_MAPS_API_KEY", ""),
		JWTSecret:        Get("JWT_SECRET", ""),
		AllowedOrigins:   splitList(Get("CORS_ALLOWED_ORIGINS", "http://localhost:5173")),
	}

	var err error
	if cfg.SessionTTL, err = GetDuration("SESSION_TTL", 14*24*time.Hour); err != nil {
		return Config{}, err
	}
	if cfg.GeocodeAddresses, err = GetBool("GEOCODE_ADDRESSES", false); err != nil {
		return Config{}, err
	}
	if cfg.Rules, err = LoadRules(); err != nil {
		return Config{}, err
	}

	switch cfg.RouteProvider {
	case "ors":
		if cfg.ORSAPIKey == "" {
			return Config{}, errors.New("config: ORS_API_KEY is required")
		}
	case "google":
		if cfg.GoogleMapsAPIKey == "" {
			return Config{}, errors.New("config: GOOGLE_MAPS_API_KEY is required")
		}
	default:
		return Config{}, fmt.Errorf("config: unknown ROUTE_PROVIDER %q (want ors or google)", cfg.RouteProvider)
	}

	return cfg, nil
}

// LoadRules starts from the 70-hour/8-day rule set and applies any HOS_*
// overrides, so alternate rule sets need no code change.
func LoadRules() (domain.RuleSet, error) {
	rules := domain.Property70Hour8Day()

	overrides := []struct {
		key string
		dst *float64
	}{
		{"HOS_MAX_CYCLE_HOURS", &rules.MaxCycleHours},
		{"HOS_MAX_DRIVING_HOURS", &rules.MaxDrivingHours},
		{"HOS_MAX_DRIVING_BEFORE_BREAK", &rules.MaxDrivingBeforeBreak},
		{"HOS_MIN_MANDATORY_BREAK", &rules.MinMandatoryBreak},
		{"HOS_DAILY_SHIFT_LIMIT", &rules.DailyShiftLimit},
		{"HOS_DAILY_REST_BREAK", &rules.DailyRestBreak},
		{"HOS_TRIP_START_HOUR", &rules.TripStartHour},
	}
	for _, o := range overrides {
		v, err := GetFloat(o.key, *o.dst)
		if err != nil {
			return domain.RuleSet{}, err
		}
		*o.dst = v
	}

	if err := rules.Validate(); err != nil {
		return domain.RuleSet{}, fmt.Errorf("config: %w", err)
	}
	return rules, nil
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
