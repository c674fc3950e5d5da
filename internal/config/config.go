package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	pkgauth "github.com/BradenHooton/valentine/pkg/auth"
)

// localLayout is accepted for VALENTINE_TARGET in addition to RFC3339
// and is interpreted in the local time zone.
const localLayout = "2006-01-02T15:04:05"

type Config struct {
	App   AppConfig
	Gate  GateConfig
	Greet GreetingConfig
}

type AppConfig struct {
	Env      string `validate:"required,oneof=development production test"`
	LogLevel string `validate:"required,oneof=debug info warn warning error"`
	LogFile  string
}

type GateConfig struct {
	Target            time.Time     `validate:"required"`
	AllowedIdentities []string      `validate:"required,min=1,dive,required"`
	AllowedSecrets    []string      `validate:"required,min=1,dive,required"`
	BypassSecret      string
	DevMode           bool
	TickInterval      time.Duration `validate:"gt=0"`
	DeniedTimeout     time.Duration `validate:"gt=0"`
	SettleDelay       time.Duration `validate:"gt=0"`
}

type GreetingConfig struct {
	Recipient   string `validate:"required,max=64"`
	ContentFile string
}

// Load reads configuration from the environment, after applying any
// .env file found in the working directory.
func Load() (*Config, error) {
	return LoadFile("")
}

// LoadFile is Load with an explicit env file. An empty path loads ".env"
// if present; a non-empty path must exist.
//
// Env files expand "$NAME" in unquoted and double-quoted values, so
// bcrypt hashes in VALENTINE_SECRETS must be single-quoted there.
func LoadFile(envFile string) (*Config, error) {
	if envFile == "" {
		_ = godotenv.Load()
	} else if err := godotenv.Load(envFile); err != nil {
		return nil, fmt.Errorf("failed to load env file %s: %w", envFile, err)
	}

	target, err := parseTarget(getEnv("VALENTINE_TARGET", "2026-02-14T00:00:00"))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		App: AppConfig{
			Env:      getEnv("ENV", "development"),
			LogLevel: strings.ToLower(getEnv("LOG_LEVEL", "info")),
			LogFile:  getEnv("LOG_FILE", "valentine.log"),
		},
		Gate: GateConfig{
			Target:            target,
			AllowedIdentities: getEnvAsList("VALENTINE_IDENTITIES", []string{"valentine", "love", "you"}),
			AllowedSecrets:    getEnvAsList("VALENTINE_SECRETS", []string{"rose", "love"}),
			BypassSecret:      getEnv("VALENTINE_BYPASS_SECRET", "testing"),
			DevMode:           getEnvAsBool("VALENTINE_DEV_MODE", false),
			TickInterval:      getEnvAsDuration("GATE_TICK_INTERVAL", 1*time.Second),
			DeniedTimeout:     getEnvAsDuration("GATE_DENIED_TIMEOUT", 3*time.Second),
			SettleDelay:       getEnvAsDuration("GATE_SETTLE_DELAY", 1500*time.Millisecond),
		},
		Greet: GreetingConfig{
			Recipient:   getEnv("VALENTINE_RECIPIENT", "Tamanna"),
			ContentFile: getEnv("CONTENT_FILE", ""),
		},
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	for _, secret := range cfg.Gate.AllowedSecrets {
		if pkgauth.MalformedHash(secret) {
			return nil, fmt.Errorf("VALENTINE_SECRETS holds an incomplete bcrypt hash; in an env file, wrap hashes in single quotes")
		}
	}

	if cfg.Gate.DevMode && cfg.App.Env == "production" {
		return nil, fmt.Errorf("VALENTINE_DEV_MODE cannot be enabled in production")
	}

	return cfg, nil
}

// parseTarget accepts RFC3339 or a zone-less local datetime.
func parseTarget(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation(localLayout, value, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("VALENTINE_TARGET must be RFC3339 or %s: %w", localLayout, err)
	}
	return t, nil
}

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsBool(key string, defaultVal bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultVal
}

func getEnvAsDuration(key string, defaultVal time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultVal
}

// getEnvAsList splits a comma-separated value, dropping blank entries.
func getEnvAsList(key string, defaultVal []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultVal
	}
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
