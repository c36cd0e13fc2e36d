// Package config loads and validates the booking configuration from a local
// YAML file or a Redis key/value store.
package config

import (
	"encoding/base64"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// UserConfig holds one set of remote-service credentials. Passwords are
// secrets: they must never appear in logs or error messages.
type UserConfig struct {
	Username string `yaml:"username" validate:"required"`
	Password string `yaml:"password" validate:"required"`
}

// ClassConfig describes one recurring class to book and who wants it.
type ClassConfig struct {
	Name        string   `yaml:"name" validate:"required"`
	Weekday     string   `yaml:"weekday" validate:"required,weekday"`
	OpeningHour string   `yaml:"opening_hour"`
	UserNames   []string `yaml:"user_names" validate:"min=1,dive,required"`
}

// AppConfig is the immutable snapshot one run operates on.
type AppConfig struct {
	AppID         string `yaml:"app_id" validate:"required"`
	Client        string `yaml:"client" validate:"required"`
	ClientVersion string `yaml:"client_version" validate:"required"`
	FacilityID    string `yaml:"facility_id" validate:"required"`

	// LookaheadDays bounds the catalog fetch window [today, today+N].
	// Defaults to 7, matching the remote service's usual booking horizon.
	LookaheadDays int `yaml:"lookahead_days" validate:"omitempty,min=1,max=60"`

	Users   []UserConfig  `yaml:"users" validate:"min=1,dive"`
	Classes []ClassConfig `yaml:"classes" validate:"min=1,dive"`
}

const DefaultLookaheadDays = 7

// User resolves a username referenced by a ClassConfig. The second return is
// false when the user is not configured; callers skip that pairing.
func (c AppConfig) User(username string) (UserConfig, bool) {
	for _, u := range c.Users {
		if u.Username == username {
			return u, true
		}
	}
	return UserConfig{}, false
}

func (c *AppConfig) applyDefaults() {
	if c.LookaheadDays == 0 {
		c.LookaheadDays = DefaultLookaheadDays
	}
}

func newValidator() *validator.Validate {
	v := validator.New()
	// Weekday names are matched case-insensitively at selection time, so the
	// config only has to name a real day.
	_ = v.RegisterValidation("weekday", func(fl validator.FieldLevel) bool {
		_, ok := parseWeekday(fl.Field().String())
		return ok
	})
	return v
}

func parseWeekday(s string) (time.Weekday, bool) {
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.EqualFold(s, d.String()) {
			return d, true
		}
	}
	return 0, false
}

// Validate checks the snapshot after loading from any source.
func (c AppConfig) Validate() error {
	if err := newValidator().Struct(c); err != nil {
		return fmt.Errorf("config validation: %w", err)
	}
	return nil
}

// Settings carries process-level knobs read from the environment, as opposed
// to AppConfig which describes what to book.
type Settings struct {
	// ConfigPath is the local YAML file, used when RedisURL is empty.
	ConfigPath string
	// RedisURL selects the remote key/value configuration source.
	RedisURL string
	// RunAt is the local wall-clock time ("HH:MM") the daemon fires at.
	RunAt string
	// Timezone used for daemon scheduling and weekday selection.
	Timezone string
	// CredKey decrypts "enc:" password values; empty disables decryption.
	CredKey []byte
}

// SettingsFromEnv reads process settings, loading a .env file first when one
// exists.
func SettingsFromEnv() (Settings, error) {
	_ = godotenv.Load()

	s := Settings{
		ConfigPath: getenv("GYMSCHED_CONFIG", "config.yaml"),
		RedisURL:   strings.TrimSpace(os.Getenv("CONFIG_REDIS_URL")),
		RunAt:      getenv("GYMSCHED_RUN_AT", "08:00"),
		Timezone:   getenv("GYMSCHED_TZ", "Local"),
	}

	if _, err := time.Parse("15:04", s.RunAt); err != nil {
		return Settings{}, fmt.Errorf("invalid GYMSCHED_RUN_AT (want HH:MM): %q", s.RunAt)
	}

	if raw := strings.TrimSpace(os.Getenv("GYMSCHED_CRED_KEY")); raw != "" {
		key, err := decodeB64(raw)
		if err != nil {
			return Settings{}, fmt.Errorf("GYMSCHED_CRED_KEY: %w", err)
		}
		if len(key) != 32 {
			return Settings{}, fmt.Errorf("GYMSCHED_CRED_KEY must decode to 32 bytes (got %d)", len(key))
		}
		s.CredKey = key
	}

	return s, nil
}

// Location resolves the configured timezone.
func (s Settings) Location() (*time.Location, error) {
	if s.Timezone == "" || strings.EqualFold(s.Timezone, "Local") {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid GYMSCHED_TZ: %w", err)
	}
	return loc, nil
}

func decodeB64(s string) ([]byte, error) {
	if b, err := base64.StdEncoding.DecodeString(s); err == nil {
		return b, nil
	}
	return base64.RawStdEncoding.DecodeString(s)
}

func getenv(k, def string) string {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	return v
}

// atoiDefault parses optional integer settings from the remote source.
func atoiDefault(s string, def int) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
