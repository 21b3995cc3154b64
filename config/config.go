package config

import (
	"encoding/json"
	"log"
	"os"
	"strconv"
)

// Config holds all configurable host and game parameters.
type Config struct {
	HostPort int `json:"host_port"`
	// APIPort serves the read-only history API; 0 disables it.
	APIPort int `json:"api_port"`

	Edition     string `json:"edition"`
	CatalogPath string `json:"catalog_path"`
	// Rounds overrides the edition's round count when positive.
	Rounds int `json:"rounds"`

	BotBehavior string `json:"bot_behavior"`
	// BotSeed seeds computer players; 0 seeds from the clock.
	BotSeed int64 `json:"bot_seed"`

	MaxNameLength        int  `json:"max_name_length"`
	JoinTimeoutSec       int  `json:"join_timeout_sec"`
	ResponseTimeoutSec   int  `json:"response_timeout_sec"`
	MaxTransportFailures int  `json:"max_transport_failures"`
	AbortOnDisconnect    bool `json:"abort_on_disconnect"`

	DatabaseURL string `json:"database_url"`
	JoinSecret  string `json:"join_secret"`
	JWKSURL     string `json:"jwks_url"`
	LogLevel    string `json:"log_level"`
}

// Defaults returns a Config with all default values.
func Defaults() *Config {
	return &Config{
		HostPort:             2048,
		APIPort:              0,
		Edition:              "australia",
		BotBehavior:          "standard",
		MaxNameLength:        24,
		JoinTimeoutSec:       300,
		ResponseTimeoutSec:   300,
		MaxTransportFailures: 3,
		LogLevel:             "info",
	}
}

// Load reads configuration from an optional config.json file,
// then applies environment variable overrides. Fields not set
// in either source retain their default values.
func Load() *Config {
	cfg := Defaults()

	if f, err := os.Open("config.json"); err == nil {
		defer f.Close()
		if err := json.NewDecoder(f).Decode(cfg); err != nil {
			log.Printf("Warning: failed to parse config.json: %v", err)
		}
	}

	overrideInt(&cfg.HostPort, "HOST_PORT")
	overrideInt(&cfg.APIPort, "API_PORT")
	overrideString(&cfg.Edition, "EDITION")
	overrideString(&cfg.CatalogPath, "CATALOG_PATH")
	overrideInt(&cfg.Rounds, "ROUNDS")
	overrideString(&cfg.BotBehavior, "BOT_BEHAVIOR")
	overrideInt64(&cfg.BotSeed, "BOT_SEED")
	overrideInt(&cfg.MaxNameLength, "MAX_NAME_LENGTH")
	overrideInt(&cfg.JoinTimeoutSec, "JOIN_TIMEOUT_SEC")
	overrideInt(&cfg.ResponseTimeoutSec, "RESPONSE_TIMEOUT_SEC")
	overrideInt(&cfg.MaxTransportFailures, "MAX_TRANSPORT_FAILURES")
	overrideBool(&cfg.AbortOnDisconnect, "ABORT_ON_DISCONNECT")
	overrideString(&cfg.DatabaseURL, "DATABASE_URL")
	overrideString(&cfg.JoinSecret, "JOIN_SECRET")
	overrideString(&cfg.JWKSURL, "JWKS_URL")
	overrideString(&cfg.LogLevel, "LOG_LEVEL")

	return cfg
}

func overrideInt(field *int, envKey string) {
	if val := os.Getenv(envKey); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			*field = n
		} else {
			log.Printf("Warning: invalid value for %s: %q", envKey, val)
		}
	}
}

func overrideInt64(field *int64, envKey string) {
	if val := os.Getenv(envKey); val != "" {
		if n, err := strconv.ParseInt(val, 10, 64); err == nil {
			*field = n
		} else {
			log.Printf("Warning: invalid value for %s: %q", envKey, val)
		}
	}
}

func overrideBool(field *bool, envKey string) {
	if val := os.Getenv(envKey); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			*field = b
		} else {
			log.Printf("Warning: invalid value for %s: %q", envKey, val)
		}
	}
}

func overrideString(field *string, envKey string) {
	if val := os.Getenv(envKey); val != "" {
		*field = val
	}
}
