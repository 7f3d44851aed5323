package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/Netflix/go-env"
	"github.com/joho/godotenv"
)

const (
	BackendMemory   = "memory"
	BackendBadger   = "badger"
	BackendPostgres = "postgres"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Addr              string        `env:"CHAT_ADDR,default=:5000"`
	ChatFile          string        `env:"CHAT_FILE,default=chat.txt"`
	SessionBackend    string        `env:"SESSION_BACKEND,default=memory"`
	SessionDuration   time.Duration `env:"SESSION_DURATION,default=5h"`
	CleanupInterval   time.Duration `env:"CLEANUP_INTERVAL,default=30s"`
	BadgerPath        string        `env:"BADGER_PATH,default=chat_sessions"`
	DatabaseURL       string        `env:"DATABASE_URL"`
	CookieSecure      bool          `env:"COOKIE_SECURE,default=false"`
	MaxUsernameLength int           `env:"MAX_USERNAME_LENGTH,default=64"`
	MaxMessageLength  int           `env:"MAX_MESSAGE_LENGTH,default=2000"`
	AllowedOrigins    string        `env:"ALLOWED_ORIGINS,default=*"`
	LogLevel          string        `env:"LOG_LEVEL,default=info"`
}

// Load reads an optional .env file and then the process environment. A
// missing .env is fine; an unreadable or malformed one is an error.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	var cfg Config
	if _, err := env.UnmarshalFromEnviron(&cfg); err != nil {
		return Config{}, fmt.Errorf("config error: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.SessionBackend {
	case BackendMemory, BackendBadger:
	case BackendPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("%w: DATABASE_URL is required for the postgres session backend", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown SESSION_BACKEND %q", ErrInvalidConfig, c.SessionBackend)
	}
	if c.ChatFile == "" {
		return fmt.Errorf("%w: CHAT_FILE must not be empty", ErrInvalidConfig)
	}
	if c.MaxUsernameLength <= 0 || c.MaxMessageLength <= 0 {
		return fmt.Errorf("%w: length limits must be positive", ErrInvalidConfig)
	}
	if c.SessionDuration <= 0 || c.CleanupInterval <= 0 {
		return fmt.Errorf("%w: durations must be positive", ErrInvalidConfig)
	}
	return nil
}

// Origins splits ALLOWED_ORIGINS on commas and drops blanks.
func (c Config) Origins() []string {
	var origins []string
	for _, o := range strings.Split(c.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

// Logger builds the process logger. Unknown levels fall back to info.
func (c Config) Logger() *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
