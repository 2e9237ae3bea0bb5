package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	// Common
	Env      string `yaml:"env"`
	LogLevel string `yaml:"log_level"`
	// API
	Port string `yaml:"port"`
	// Sync
	Symbol         string `yaml:"symbol"`
	StartDate      string `yaml:"start_date"`
	RunOnStart     bool   `yaml:"run_on_start"`
	ResumeFromLast bool   `yaml:"resume_from_last"`
	// Provider
	Provider       string        `yaml:"provider"`
	BinanceBaseURL string        `yaml:"binance_base_url"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
	// Storage
	Storage     string `yaml:"storage"`
	StoreKey    string `yaml:"store_key"`
	SQLitePath  string `yaml:"sqlite_path"`
	DatabaseURL string `yaml:"database_url"`
	// Redis (storage and lock)
	RedisAddr     string        `yaml:"redis_addr"`
	RedisPassword string        `yaml:"redis_password"`
	RedisDB       int           `yaml:"redis_db"`
	LockBackend   string        `yaml:"lock_backend"`
	LockTTL       time.Duration `yaml:"lock_ttl"`
}

func defaults() Config {
	return Config{
		Env:            "local",
		LogLevel:       "info",
		Port:           "8080",
		Symbol:         "BTCUSDT",
		StartDate:      "2017-08-17",
		Provider:       "binance",
		BinanceBaseURL: "https://api.binance.com",
		RequestTimeout: 10 * time.Second,
		Storage:        "sqlite",
		StoreKey:       "price-history",
		SQLitePath:     "data/pricehistory.db",
		RedisAddr:      "localhost:6379",
		LockBackend:    "local",
		LockTTL:        30 * time.Minute,
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func atoiDef(s string, def int) int {
	i, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return i
}

func boolDef(s string, def bool) bool {
	b, err := strconv.ParseBool(s)
	if err != nil {
		return def
	}
	return b
}

func msDef(key string, def time.Duration) time.Duration {
	ms := atoiDef(getEnv(key, ""), int(def/time.Millisecond))
	if ms <= 0 {
		return def
	}
	return time.Duration(ms) * time.Millisecond
}

// Load reads environment variables and applies defaults.
func Load() Config {
	return fromEnv(defaults())
}

// LoadFile reads a YAML file as the base layer, then applies environment
// overrides. A missing file is not an error.
func LoadFile(path string) (Config, error) {
	base := defaults()
	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, &base); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
	}
	return fromEnv(base), nil
}

func fromEnv(base Config) Config {
	return Config{
		Env:            getEnv("ENV", base.Env),
		LogLevel:       getEnv("LOG_LEVEL", base.LogLevel),
		Port:           getEnv("PORT", base.Port),
		Symbol:         getEnv("SYMBOL", base.Symbol),
		StartDate:      getEnv("START_DATE", base.StartDate),
		RunOnStart:     boolDef(getEnv("RUN_ON_START", ""), base.RunOnStart),
		ResumeFromLast: boolDef(getEnv("RESUME_FROM_LAST", ""), base.ResumeFromLast),
		Provider:       getEnv("PROVIDER", base.Provider),
		BinanceBaseURL: getEnv("BINANCE_BASE_URL", base.BinanceBaseURL),
		RequestTimeout: msDef("REQUEST_TIMEOUT_MS", base.RequestTimeout),
		Storage:        getEnv("STORAGE", base.Storage),
		StoreKey:       getEnv("STORE_KEY", base.StoreKey),
		SQLitePath:     getEnv("SQLITE_PATH", base.SQLitePath),
		DatabaseURL:    getEnv("DATABASE_URL", base.DatabaseURL),
		RedisAddr:      getEnv("REDIS_ADDR", base.RedisAddr),
		RedisPassword:  getEnv("REDIS_PASSWORD", base.RedisPassword),
		RedisDB:        atoiDef(getEnv("REDIS_DB", ""), base.RedisDB),
		LockBackend:    getEnv("LOCK_BACKEND", base.LockBackend),
		LockTTL:        msDef("LOCK_TTL_MS", base.LockTTL),
	}
}
