// Package config lê a configuração do habitd a partir de variáveis de
// ambiente (e, opcionalmente, de um arquivo apontado por HABITD_CONFIG).
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	StatsMemory = "memory"
	StatsRedis  = "redis"
	StatsNone   = "none"
)

type Config struct {
	ListenAddr      string
	LogLevel        string
	MutationTimeout time.Duration

	RateEnabled bool
	RateRPS     float64
	RateBurst   int
	RateKeyHdr  string
	TrustXFF    bool
	RetryAfter  time.Duration
	AddRateHdrs bool
	RateIdleTTL time.Duration
	RateCleanup time.Duration

	StatsBackend       string
	StatsRedisAddr     string
	StatsRedisPassword string
	StatsRedisDB       int
	StatsPrefix        string
	StatsTTL           time.Duration
	StatsBucket        string
}

func defaults(v *viper.Viper) {
	v.SetDefault("LISTEN_ADDR", "")
	v.SetDefault("PORT", "4000")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("MUTATION_TIMEOUT", 2*time.Second)

	v.SetDefault("RATE_ENABLED", true)
	v.SetDefault("RATE_RPS", 5.0)
	v.SetDefault("RATE_BURST", 10)
	v.SetDefault("RATE_KEY_HEADER", "")
	v.SetDefault("TRUST_XFF", false)
	v.SetDefault("RETRY_AFTER", time.Second)
	v.SetDefault("ADD_RATELIMIT_HEADERS", false)
	v.SetDefault("RATE_IDLE_TTL", 15*time.Minute)
	v.SetDefault("RATE_CLEANUP_EVERY", 2*time.Minute)

	v.SetDefault("STATS_BACKEND", StatsMemory)
	v.SetDefault("STATS_REDIS_ADDR", "")
	v.SetDefault("STATS_REDIS_PASSWORD", "")
	v.SetDefault("STATS_REDIS_DB", 0)
	v.SetDefault("STATS_PREFIX", "habits:stats")
	v.SetDefault("STATS_TTL", 24*time.Hour)
	v.SetDefault("STATS_BUCKET", "minute")
}

// Load lê o ambiente do processo.
func Load() (Config, error) {
	return LoadFrom(viper.New())
}

// LoadFrom lê a partir de um viper já criado (útil em testes com v.Set).
func LoadFrom(v *viper.Viper) (Config, error) {
	defaults(v)
	v.AutomaticEnv()

	if path := v.GetString("HABITD_CONFIG"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config file %q: %w", path, err)
		}
	}

	cfg := Config{
		ListenAddr:      v.GetString("LISTEN_ADDR"),
		LogLevel:        v.GetString("LOG_LEVEL"),
		MutationTimeout: v.GetDuration("MUTATION_TIMEOUT"),

		RateEnabled: v.GetBool("RATE_ENABLED"),
		RateRPS:     v.GetFloat64("RATE_RPS"),
		RateBurst:   v.GetInt("RATE_BURST"),
		RateKeyHdr:  v.GetString("RATE_KEY_HEADER"),
		TrustXFF:    v.GetBool("TRUST_XFF"),
		RetryAfter:  v.GetDuration("RETRY_AFTER"),
		AddRateHdrs: v.GetBool("ADD_RATELIMIT_HEADERS"),
		RateIdleTTL: v.GetDuration("RATE_IDLE_TTL"),
		RateCleanup: v.GetDuration("RATE_CLEANUP_EVERY"),

		StatsBackend:       strings.ToLower(strings.TrimSpace(v.GetString("STATS_BACKEND"))),
		StatsRedisAddr:     v.GetString("STATS_REDIS_ADDR"),
		StatsRedisPassword: v.GetString("STATS_REDIS_PASSWORD"),
		StatsRedisDB:       v.GetInt("STATS_REDIS_DB"),
		StatsPrefix:        v.GetString("STATS_PREFIX"),
		StatsTTL:           v.GetDuration("STATS_TTL"),
		StatsBucket:        v.GetString("STATS_BUCKET"),
	}
	// Mesmo contrato do servidor original: PORT quando LISTEN_ADDR não vier.
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = ":" + v.GetString("PORT")
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.RateEnabled {
		if c.RateRPS <= 0 {
			return errors.New("RATE_RPS must be > 0")
		}
		if c.RateBurst <= 0 {
			return errors.New("RATE_BURST must be > 0")
		}
	}
	if c.MutationTimeout < 0 {
		return errors.New("MUTATION_TIMEOUT must be >= 0")
	}
	switch c.StatsBackend {
	case StatsMemory, StatsNone:
	case StatsRedis:
		if strings.TrimSpace(c.StatsRedisAddr) == "" {
			return errors.New("STATS_REDIS_ADDR is required when STATS_BACKEND=redis")
		}
	default:
		return fmt.Errorf("STATS_BACKEND must be one of memory, redis, none (got %q)", c.StatsBackend)
	}
	return nil
}
