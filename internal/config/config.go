// Package config loads application configuration from defaults, an
// optional conf.toml, a .env file, and the environment, in increasing
// order of precedence. Grounded on the teacher's Viper-based
// internal/config, trimmed of database/OAuth settings and extended with
// the cache-directory, logging, and rate-limit settings this domain needs.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/gridironlabs/nflsim/internal/cache"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Cache     CacheConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
	Log       LogConfig
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Host      string
	Port      int
	DebugMode bool
	Season    int
}

// CacheConfig contains on-disk persistence and Redis-key-namespace
// settings. Directory is the root for teams.json, schedule_<season>.json,
// results_current.json, and user_overrides.json.
type CacheConfig struct {
	Directory string
	Enabled   bool
	Version   string
	TTLs      CacheTTLConfig
}

// CacheTTLConfig defines TTL durations (seconds) for different cache
// categories in the Redis-backed response cache.
type CacheTTLConfig struct {
	List     int
	Negative int
}

// RedisConfig contains the optional Redis connection used for rate
// limiting, response caching, and the job progress mirror.
type RedisConfig struct {
	URL string
}

// RateLimitConfig controls the per-minute, per-IP request budget applied to
// every HTTP request.
type RateLimitConfig struct {
	PerMinute int
}

// LogConfig controls the structured logger's verbosity.
type LogConfig struct {
	Level string
}

var globalConfig *Config

// Load reads configuration from the given TOML file (or conf.toml in the
// working directory / $HOME/.nflsim / /etc/nflsim if configPath is empty),
// a .env file if present, and the environment, with environment variables
// taking precedence over the file.
func Load(configPath string) (*Config, error) {
	_ = godotenv.Load(".env")

	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("conf")
		v.SetConfigType("toml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.nflsim")
		v.AddConfigPath("/etc/nflsim")
	}

	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.debug_mode", false)
	v.SetDefault("server.season", time.Now().Year())

	cacheTTLDefaults := cache.DefaultTTLConfig()
	v.SetDefault("cache.directory", "./data")
	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.version", "v1")
	v.SetDefault("cache.ttls.list", int(cacheTTLDefaults.List/time.Second))
	v.SetDefault("cache.ttls.negative", int(cacheTTLDefaults.Negative/time.Second))

	v.SetDefault("redis.url", "")
	v.SetDefault("ratelimit.per_minute", 60)
	v.SetDefault("log.level", "info")

	v.AutomaticEnv()
	v.BindEnv("server.port", "PORT")
	v.BindEnv("server.debug_mode", "DEBUG_MODE")
	v.BindEnv("server.season", "SEASON")
	v.BindEnv("cache.directory", "CACHE_DIRECTORY")
	v.BindEnv("redis.url", "REDIS_URL")
	v.BindEnv("ratelimit.per_minute", "RATE_LIMIT_PER_MINUTE")
	v.BindEnv("log.level", "LOG_LEVEL")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		fmt.Fprintln(os.Stderr, "no config file found, using defaults and environment variables")
	}

	cfg := &Config{
		Server: ServerConfig{
			Host:      v.GetString("server.host"),
			Port:      v.GetInt("server.port"),
			DebugMode: v.GetBool("server.debug_mode"),
			Season:    v.GetInt("server.season"),
		},
		Cache: CacheConfig{
			Directory: v.GetString("cache.directory"),
			Enabled:   v.GetBool("cache.enabled"),
			Version:   v.GetString("cache.version"),
			TTLs: CacheTTLConfig{
				List:     v.GetInt("cache.ttls.list"),
				Negative: v.GetInt("cache.ttls.negative"),
			},
		},
		Redis: RedisConfig{
			URL: v.GetString("redis.url"),
		},
		RateLimit: RateLimitConfig{
			PerMinute: v.GetInt("ratelimit.per_minute"),
		},
		Log: LogConfig{
			Level: v.GetString("log.level"),
		},
	}

	globalConfig = cfg
	return cfg, nil
}

// Get returns the global configuration set by the most recent Load call.
func Get() *Config {
	if globalConfig == nil {
		panic("config not loaded; call config.Load() first")
	}
	return globalConfig
}

// MustLoad loads configuration or panics.
func MustLoad(configPath string) *Config {
	cfg, err := Load(configPath)
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}
	return cfg
}
