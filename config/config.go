// Package config assembles process configuration the way the teacher's
// own Config struct composes shared settings for reuse across tools:
// layered defaults, an optional TOML file, environment variables, and
// command-line flags, in increasing priority order.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/spf13/pflag"
)

// Config holds the settings cmd/traceserver needs to wire up the HTTP
// server, the compiler validator, and the shared logger (spec §6
// "Environment").
type Config struct {
	// Port is the HTTP listen port (spec §6: "PORT (default 5001)").
	Port int `toml:"port"`

	// CompilerPath overrides PATH lookup for the C++ toolchain.
	CompilerPath string `toml:"compiler_path"`

	// CompileTimeoutSeconds bounds the native validator call (spec §4.5
	// "30s wall-clock timeout"); overridable for slower environments.
	CompileTimeoutSeconds int `toml:"compile_timeout_seconds"`

	// Logger is the shared structured logger threaded into every
	// component (mirrors the teacher's Config.Logger field).
	Logger *slog.Logger `toml:"-"`
}

func defaults() Config {
	return Config{
		Port:                  5001,
		CompileTimeoutSeconds: 30,
	}
}

// Load builds a Config by layering, in increasing priority: built-in
// defaults, an optional TOML file, environment variables, then
// command-line flags (args, excluding argv[0]). Flags are parsed with
// pflag, the CLI library the teacher's own toolchain already pulls in.
func Load(args []string) (Config, error) {
	cfg := defaults()

	fs := pflag.NewFlagSet("traceserver", pflag.ContinueOnError)
	configPath := fs.String("config", "", "path to an optional TOML config file")
	port := fs.Int("port", 0, "HTTP listen port")
	compilerPath := fs.String("compiler-path", "", "path to a C++ compiler binary")
	if err := fs.Parse(args); err != nil {
		return Config{}, fmt.Errorf("config: parsing flags: %w", err)
	}

	if *configPath != "" {
		if _, err := toml.DecodeFile(*configPath, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: reading %s: %w", *configPath, err)
		}
	}

	if v := os.Getenv("PORT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("config: PORT=%q: %w", v, err)
		}
		cfg.Port = n
	}
	if v := os.Getenv("COMPILER_PATH"); v != "" {
		cfg.CompilerPath = v
	}
	if v := os.Getenv("COMPILE_TIMEOUT_SECONDS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("config: COMPILE_TIMEOUT_SECONDS=%q: %w", v, err)
		}
		cfg.CompileTimeoutSeconds = n
	}

	if *port != 0 {
		cfg.Port = *port
	}
	if *compilerPath != "" {
		cfg.CompilerPath = *compilerPath
	}

	cfg.Logger = slog.New(slog.NewJSONHandler(os.Stderr, nil))
	return cfg, nil
}

// CompileTimeout returns CompileTimeoutSeconds as a time.Duration.
func (c Config) CompileTimeout() time.Duration {
	return time.Duration(c.CompileTimeoutSeconds) * time.Second
}
