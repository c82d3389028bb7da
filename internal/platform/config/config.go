package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Server captures process level configuration.
type Server struct {
	Addr            string
	LogLevel        slog.Level
	LogFormat       string
	MaxBodyBytes    int64
	ShutdownTimeout time.Duration
}

// Defaults used when the environment does not override them.
const (
	DefaultAddr            = ":8080"
	DefaultLogFormat       = "json"
	DefaultMaxBodyBytes    = 1 << 20
	DefaultShutdownTimeout = 10 * time.Second
)

// FromEnv builds a Server config from environment variables so main stays lean.
// A .env file in the working directory is loaded first when present; real
// environment variables win over it.
func FromEnv() Server {
	_ = godotenv.Load()

	cfg := Server{
		Addr:            DefaultAddr,
		LogLevel:        slog.LevelInfo,
		LogFormat:       DefaultLogFormat,
		MaxBodyBytes:    DefaultMaxBodyBytes,
		ShutdownTimeout: DefaultShutdownTimeout,
	}

	if addr := os.Getenv("RECEIPTS_ADDR"); addr != "" {
		cfg.Addr = addr
	}
	if lvl := os.Getenv("RECEIPTS_LOG_LEVEL"); lvl != "" {
		var level slog.Level
		if err := level.UnmarshalText([]byte(lvl)); err == nil {
			cfg.LogLevel = level
		}
	}
	if format := strings.ToLower(os.Getenv("RECEIPTS_LOG_FORMAT")); format == "text" || format == "json" {
		cfg.LogFormat = format
	}
	if n, err := strconv.ParseInt(os.Getenv("RECEIPTS_MAX_BODY_BYTES"), 10, 64); err == nil && n > 0 {
		cfg.MaxBodyBytes = n
	}
	if d, err := time.ParseDuration(os.Getenv("RECEIPTS_SHUTDOWN_TIMEOUT")); err == nil && d > 0 {
		cfg.ShutdownTimeout = d
	}
	return cfg
}
