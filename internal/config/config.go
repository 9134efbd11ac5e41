// Package config reads server settings from flags, falling back to
// environment variables and then to built-in defaults.
package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap/zapcore"
)

var ErrInvalidConfig = errors.New("invalid configuration")

type Config struct {
	// Addr is the listen address, e.g. ":3000".
	Addr string
	// AllowOrigins is the comma separated CORS origin list, also used for websocket origins.
	AllowOrigins string
	LogLevel     zapcore.Level
	// Development switches to the human readable zap development logger.
	Development bool
}

// Origins splits AllowOrigins into its entries.
func (c Config) Origins() []string {
	var out []string
	for _, o := range strings.Split(c.AllowOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

// Load parses args (without the program name) on a fresh FlagSet.
func Load(args []string) (Config, error) {
	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	addr := fs.String("addr", getenv("CHESS_ADDR", ":3000"), "listen address")
	origins := fs.String("allow-origins", getenv("CHESS_ALLOW_ORIGINS", "http://localhost:5173"), "comma-separated allowed origins")
	level := fs.String("log-level", getenv("CHESS_LOG_LEVEL", "info"), "log level (debug, info, warn, error)")
	dev := fs.Bool("dev", getenb("CHESS_DEV", false), "development logging")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	cfg := Config{
		Addr:         strings.TrimSpace(*addr),
		AllowOrigins: *origins,
		Development:  *dev,
	}
	if cfg.Addr == "" {
		return Config{}, fmt.Errorf("empty listen address: %w", ErrInvalidConfig)
	}
	if len(cfg.Origins()) == 0 {
		return Config{}, fmt.Errorf("no allowed origins: %w", ErrInvalidConfig)
	}
	lvl, err := zapcore.ParseLevel(*level)
	if err != nil {
		return Config{}, fmt.Errorf("log level %q: %w", *level, ErrInvalidConfig)
	}
	cfg.LogLevel = lvl
	return cfg, nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenb(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "1", "true", "t", "yes", "y", "on":
			return true
		case "0", "false", "f", "no", "n", "off":
			return false
		}
	}
	return def
}
