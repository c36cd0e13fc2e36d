package config

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/example/gym-scheduler/internal/crypto"
)

// Loader resolves an AppConfig from whichever source the settings select:
// a Redis key/value store when RedisURL is set, a local YAML file otherwise.
// Credential placeholders and encrypted values are resolved to literals
// before the snapshot leaves this package.
type Loader struct {
	Settings Settings
	Log      *slog.Logger
}

func NewLoader(settings Settings, log *slog.Logger) *Loader {
	return &Loader{Settings: settings, Log: log}
}

func (l *Loader) Load(ctx context.Context) (AppConfig, error) {
	var (
		cfg AppConfig
		err error
	)
	if l.Settings.RedisURL != "" {
		l.Log.Info("loading configuration from redis", "url", redactURL(l.Settings.RedisURL))
		cfg, err = l.loadRemote(ctx)
	} else {
		l.Log.Info("loading configuration from file", "path", l.Settings.ConfigPath)
		cfg, err = l.loadLocal()
	}
	if err != nil {
		return AppConfig{}, err
	}

	if err := l.resolveCredentials(&cfg); err != nil {
		return AppConfig{}, err
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return AppConfig{}, err
	}
	return cfg, nil
}

func (l *Loader) loadLocal() (AppConfig, error) {
	raw, err := os.ReadFile(l.Settings.ConfigPath)
	if err != nil {
		return AppConfig{}, fmt.Errorf("read config: %w", err)
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return AppConfig{}, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// resolveCredentials rewrites every username and password to its literal
// value: ${VAR} placeholders are read from the environment and enc: values
// are decrypted with the configured key.
func (l *Loader) resolveCredentials(cfg *AppConfig) error {
	var sealer *crypto.Sealer
	if len(l.Settings.CredKey) > 0 {
		var err error
		sealer, err = crypto.New(l.Settings.CredKey)
		if err != nil {
			return err
		}
	}

	for i := range cfg.Users {
		u := &cfg.Users[i]
		u.Username = l.expandEnv(u.Username)
		u.Password = l.expandEnv(u.Password)

		if enc, ok := strings.CutPrefix(u.Password, "enc:"); ok {
			if sealer == nil {
				return fmt.Errorf("user %q has an encrypted password but GYMSCHED_CRED_KEY is not set", u.Username)
			}
			pw, err := sealer.Open(enc)
			if err != nil {
				return fmt.Errorf("decrypt password for user %q: %w", u.Username, err)
			}
			u.Password = pw
		}
	}
	return nil
}

// expandEnv substitutes a ${VAR} placeholder. An unset variable keeps the
// placeholder so that the failure surfaces later as a per-user login skip
// instead of aborting the whole load.
func (l *Loader) expandEnv(value string) string {
	if !strings.HasPrefix(value, "${") || !strings.HasSuffix(value, "}") {
		return value
	}
	name := value[2 : len(value)-1]
	v, ok := os.LookupEnv(name)
	if !ok {
		l.Log.Warn("environment variable not set, keeping placeholder", "var", name)
		return value
	}
	return v
}

// redactURL strips userinfo from a connection URL before logging.
func redactURL(u string) string {
	if at := strings.LastIndex(u, "@"); at != -1 {
		if scheme := strings.Index(u, "://"); scheme != -1 {
			return u[:scheme+3] + "***" + u[at:]
		}
	}
	return u
}
