package config

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"gopkg.in/yaml.v3"
)

// Remote key/value layout: scalar settings live under plain string keys,
// users and classes are stored as YAML documents.
const (
	keyAppID         = "app_id"
	keyClient        = "client"
	keyClientVersion = "client_version"
	keyFacilityID    = "facility_id"
	keyLookaheadDays = "lookahead_days"
	keyUsers         = "users"
	keyClasses       = "classes"
)

func (l *Loader) loadRemote(ctx context.Context) (AppConfig, error) {
	opt, err := redis.ParseURL(l.Settings.RedisURL)
	if err != nil {
		return AppConfig{}, fmt.Errorf("parse CONFIG_REDIS_URL: %w", err)
	}
	rdb := redis.NewClient(opt)
	defer rdb.Close()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return AppConfig{}, fmt.Errorf("redis ping: %w", err)
	}

	var cfg AppConfig
	required := map[string]*string{
		keyAppID:         &cfg.AppID,
		keyClient:        &cfg.Client,
		keyClientVersion: &cfg.ClientVersion,
		keyFacilityID:    &cfg.FacilityID,
	}
	for key, dst := range required {
		v, err := rdb.Get(ctx, key).Result()
		if err != nil {
			return AppConfig{}, fmt.Errorf("redis get %q: %w", key, err)
		}
		*dst = v
	}

	if v, err := rdb.Get(ctx, keyLookaheadDays).Result(); err == nil {
		cfg.LookaheadDays = atoiDefault(v, 0)
	} else if !errors.Is(err, redis.Nil) {
		return AppConfig{}, fmt.Errorf("redis get %q: %w", keyLookaheadDays, err)
	}

	usersDoc, err := rdb.Get(ctx, keyUsers).Result()
	if err != nil {
		return AppConfig{}, fmt.Errorf("redis get %q: %w", keyUsers, err)
	}
	if err := yaml.Unmarshal([]byte(usersDoc), &cfg.Users); err != nil {
		return AppConfig{}, fmt.Errorf("parse users document: %w", err)
	}

	classesDoc, err := rdb.Get(ctx, keyClasses).Result()
	if err != nil {
		return AppConfig{}, fmt.Errorf("redis get %q: %w", keyClasses, err)
	}
	if err := yaml.Unmarshal([]byte(classesDoc), &cfg.Classes); err != nil {
		return AppConfig{}, fmt.Errorf("parse classes document: %w", err)
	}

	return cfg, nil
}
