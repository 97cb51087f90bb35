// Package config manages environment variables.
//
// It reads variables from the `.env` file and the process environment,
// overlays them on the built-in defaults, and validates the result so the
// server fails fast on bad configuration.
//
// Responsibilities:
//   - Load environment variables (optionally from a `.env` file).
//   - Map env vars into a structured Go config (structs).
//   - Validate required values so the app fails fast on bad/missing config.
package config

import (
	"strings"

	"github.com/go-playground/validator/v10"
	// Side-effect import: if a `.env` file exists, it is loaded into the
	// process env before anything below reads it.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

/*
	Env vars are read using the prefix HELLO_. Keys are lowercased, the prefix
	is removed and a double underscore marks nesting:

		HELLO_SERVER__PORT=9000               -> server.port
		HELLO_UPLOAD__MEMORY_THRESHOLD=1024   -> upload.memory_threshold
		HELLO_OBSERVABILITY__LOGGING__LEVEL=debug
*/

const envPrefix = "HELLO_"

// Config is the root configuration object for the application.
type Config struct {
	Primary       Primary             `koanf:"primary" validate:"required"`
	Server        ServerConfig        `koanf:"server" validate:"required"`
	Upload        UploadConfig        `koanf:"upload" validate:"required"`
	Observability ObservabilityConfig `koanf:"observability" validate:"required"`
}

// Primary holds top-level information about the runtime environment.
type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

// ServerConfig groups settings for the HTTP server runtime.
// Timeouts are in seconds.
type ServerConfig struct {
	Port               string          `koanf:"port" validate:"required"`
	ReadTimeout        int             `koanf:"read_timeout" validate:"required,min=1"`
	WriteTimeout       int             `koanf:"write_timeout" validate:"required,min=1"`
	IdleTimeout        int             `koanf:"idle_timeout" validate:"required,min=1"`
	CORSAllowedOrigins []string        `koanf:"cors_allowed_origins" validate:"required,min=1"`
	BodyLimit          string          `koanf:"body_limit" validate:"required"`
	RateLimit          RateLimitConfig `koanf:"rate_limit"`
}

// RateLimitConfig configures the per-client request limiter. Disabled by default.
type RateLimitConfig struct {
	Enabled           bool    `koanf:"enabled"`
	RequestsPerSecond float64 `koanf:"requests_per_second" validate:"gte=0"`
	Burst             int     `koanf:"burst" validate:"gte=0"`
	ExpiresIn         int     `koanf:"expires_in" validate:"gte=0"`
}

// UploadConfig controls multipart parsing.
type UploadConfig struct {
	// MemoryThreshold is how many bytes of a multipart body stay in memory;
	// the rest spills to temporary files removed at the end of the request.
	MemoryThreshold int64 `koanf:"memory_threshold" validate:"required,min=1"`
}

// Default returns the configuration used when no variable overrides it.
func Default() *Config {
	return &Config{
		Primary: Primary{Env: "development"},
		Server: ServerConfig{
			Port:               "8000",
			ReadTimeout:        30,
			WriteTimeout:       30,
			IdleTimeout:        60,
			CORSAllowedOrigins: []string{"*"},
			BodyLimit:          "32M",
			RateLimit: RateLimitConfig{
				Enabled:           false,
				RequestsPerSecond: 20,
				Burst:             40,
				ExpiresIn:         180,
			},
		},
		Upload: UploadConfig{
			MemoryThreshold: 1 << 20,
		},
		Observability: *DefaultObservabilityConfig(),
	}
}

// LoadConfig overlays environment variables on Default, validates the result
// and returns it.
func LoadConfig() (*Config, error) {
	k := koanf.New(".")

	err := k.Load(env.ProviderWithValue(envPrefix, ".", func(key, value string) (string, any) {
		key = strings.ToLower(strings.TrimPrefix(key, envPrefix))
		key = strings.ReplaceAll(key, "__", ".")

		// Lists are comma separated, e.g. HELLO_SERVER__CORS_ALLOWED_ORIGINS=a,b
		if strings.HasSuffix(key, "cors_allowed_origins") {
			return key, splitList(value)
		}
		return key, value
	}), nil)
	if err != nil {
		return nil, errors.Wrap(err, "could not load env variables")
	}

	cfg := Default()

	// Unmarshal only touches keys that were set, so defaults survive.
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, errors.Wrap(err, "could not unmarshal config")
	}

	// Service name is fixed and the environment always follows primary.env,
	// so logs and traces see consistent values.
	cfg.Observability.ServiceName = DefaultServiceName
	cfg.Observability.Environment = cfg.Primary.Env

	if err := validator.New().Struct(cfg); err != nil {
		return nil, errors.Wrap(err, "config validation failed")
	}

	if err := cfg.Observability.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid observability config")
	}

	return cfg, nil
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
