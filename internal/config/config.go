// Package config loads the timescript CLI configuration from a YAML or JSON
// file and the environment.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/timescript/pkg/validator"
)

// Cache drivers.
const (
	CacheNone   = "none"
	CacheMemory = "memory"
	CacheRedis  = "redis"
)

// EnvPrefix is prepended to every environment override.
const EnvPrefix = "TIMESCRIPT_"

type Config struct {
	Log       LogConfig        `mapstructure:"log"`
	Cache     CacheConfig      `mapstructure:"cache"`
	Server    ServerConfig     `mapstructure:"server"`
	Validator validator.Config `mapstructure:"validator"`
}

type LogConfig struct {
	Level     string `mapstructure:"level"`
	Format    string `mapstructure:"format"`
	File      string `mapstructure:"file"`
	MaxSizeMB int    `mapstructure:"max_size_mb"`
}

type CacheConfig struct {
	Driver string        `mapstructure:"driver"`
	TTL    time.Duration `mapstructure:"ttl"`
	Redis  RedisConfig   `mapstructure:"redis"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Prefix   string `mapstructure:"prefix"`
}

type ServerConfig struct {
	Addr            string        `mapstructure:"addr"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Log:   LogConfig{Level: "info", Format: "text"},
		Cache: CacheConfig{Driver: CacheMemory, Redis: RedisConfig{Addr: "localhost:6379"}},
		Server: ServerConfig{
			Addr:            ":8080",
			ShutdownTimeout: 5 * time.Second,
		},
		Validator: validator.DefaultConfig(),
	}
}

// Load reads path over the defaults and then applies environment overrides.
// An empty path or a missing file yields the defaults.
func Load(path string) (Config, error) {
	return load(path, os.LookupEnv)
}

func load(path string, lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()
	if path != "" {
		raw, err := readFile(path)
		if err != nil {
			return cfg, err
		}
		if raw != nil {
			if err := decode(raw, &cfg); err != nil {
				return cfg, fmt.Errorf("config %s: %w", path, err)
			}
		}
	}
	if err := applyEnv(&cfg, lookup); err != nil {
		return cfg, err
	}
	return cfg, cfg.Check()
}

func readFile(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	raw := map[string]any{}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		err = json.Unmarshal(data, &raw)
	} else {
		err = yaml.Unmarshal(data, &raw)
	}
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return raw, nil
}

// dropNulls removes keys with no value, such as a bare "validator:" line,
// so they keep their defaults instead of being zeroed.
func dropNulls(raw map[string]any) {
	for k, v := range raw {
		switch v := v.(type) {
		case nil:
			delete(raw, k)
		case map[string]any:
			dropNulls(v)
		}
	}
}

func decode(raw map[string]any, cfg *Config) error {
	dropNulls(raw)
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
		WeaklyTypedInput: true,
		ZeroFields:       true,
		ErrorUnused:      true,
		Result:           cfg,
	})
	if err != nil {
		return err
	}
	return dec.Decode(raw)
}

func applyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	str := func(name string, dst *string) {
		if v, ok := lookup(EnvPrefix + name); ok && v != "" {
			*dst = v
		}
	}
	str("LOG_LEVEL", &cfg.Log.Level)
	str("LOG_FORMAT", &cfg.Log.Format)
	str("LOG_FILE", &cfg.Log.File)
	str("CACHE", &cfg.Cache.Driver)
	str("REDIS_ADDR", &cfg.Cache.Redis.Addr)
	str("ADDR", &cfg.Server.Addr)

	if v, ok := lookup(EnvPrefix + "CACHE_TTL"); ok && v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%sCACHE_TTL: %w", EnvPrefix, err)
		}
		cfg.Cache.TTL = ttl
	}
	if v, ok := lookup(EnvPrefix + "REDIS_DB"); ok && v != "" {
		db, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%sREDIS_DB: %w", EnvPrefix, err)
		}
		cfg.Cache.Redis.DB = db
	}
	return nil
}

// Check reports values no component can use.
func (c Config) Check() error {
	switch c.Cache.Driver {
	case CacheNone, CacheMemory, CacheRedis:
	default:
		return fmt.Errorf("unknown cache driver %q", c.Cache.Driver)
	}
	if c.Validator.OptionID.Max >= 0 && c.Validator.OptionID.Max < c.Validator.OptionID.Min {
		return fmt.Errorf("validator option_id range is empty: %+v", c.Validator.OptionID)
	}
	if c.Validator.QID.Max >= 0 && c.Validator.QID.Max < c.Validator.QID.Min {
		return fmt.Errorf("validator qid range is empty: %+v", c.Validator.QID)
	}
	return nil
}
