package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config captures runtime configuration for the application.
type Config struct {
	App     App
	Logging Logging
	Flags   map[string]string
	Args    []string
}

// App holds the knobs the update loop and UI consume directly.
type App struct {
	GlazeWMPath  string
	RefreshRate  time.Duration
	QueryTimeout time.Duration
	Demo         bool
	Compact      bool
	Quiet        bool
	Width        int
	Height       int
}

type Logging struct {
	FilePath string
	Trace    bool
}

const (
	envGlazeWMPath = "GLAZEWM_TOP_GLAZEWM_PATH"
	envRefreshRate = "GLAZEWM_TOP_REFRESH_RATE"
	envTimeout     = "GLAZEWM_TOP_TIMEOUT"
	envDemo        = "GLAZEWM_TOP_DEMO"
	envCompact     = "GLAZEWM_TOP_COMPACT"
	envQuiet       = "GLAZEWM_TOP_QUIET"
	envWidth       = "GLAZEWM_TOP_WIDTH"
	envHeight      = "GLAZEWM_TOP_HEIGHT"
	envTrace       = "GLAZEWM_TOP_TRACE"
	envLogFile     = "GLAZEWM_TOP_LOG_FILE"
)

const (
	minRefreshMillis = 100
	maxRefreshMillis = 10000
)

// Load parses configuration from CLI arguments and environment variables.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)

	fs := flag.NewFlagSet("glazewm-top", flag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))

	glazewmPath := fs.String("glazewm-path", envOrDefault(env, envGlazeWMPath, "glazewm"), "glazewm binary to invoke for queries")
	refreshRate := fs.Int("refresh-rate", envOrInt(env, envRefreshRate, 1000), "poll interval in milliseconds")
	timeout := fs.Int("timeout", envOrInt(env, envTimeout, 5000), "per-query timeout in milliseconds")
	demo := fs.Bool("demo", envOrBool(env, envDemo, false), "run against a built-in demo data source instead of glazewm")
	compact := fs.Bool("compact", envOrBool(env, envCompact, false), "start in compact tree mode")
	quiet := fs.Bool("quiet", envOrBool(env, envQuiet, false), "suppress the footer hint row")
	width := fs.Int("width", envOrInt(env, envWidth, 0), "viewport width in cells (0 uses terminal width)")
	height := fs.Int("height", envOrInt(env, envHeight, 0), "viewport height in rows (0 uses terminal height)")
	trace := fs.Bool("trace", envOrBool(env, envTrace, false), "enable verbose JSON trace logging")
	logFile := fs.String("log-file", envOrDefault(env, envLogFile, ""), "path to the log file")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	cfg := Config{
		App: App{
			GlazeWMPath:  *glazewmPath,
			RefreshRate:  time.Duration(*refreshRate) * time.Millisecond,
			QueryTimeout: time.Duration(*timeout) * time.Millisecond,
			Demo:         *demo,
			Compact:      *compact,
			Quiet:        *quiet,
			Width:        *width,
			Height:       *height,
		},
		Logging: Logging{
			FilePath: *logFile,
			Trace:    *trace,
		},
		Flags: map[string]string{
			"glazewmPath": *glazewmPath,
			"refreshRate": strconv.Itoa(*refreshRate),
			"timeout":     strconv.Itoa(*timeout),
			"demo":        strconv.FormatBool(*demo),
			"compact":     strconv.FormatBool(*compact),
			"quiet":       strconv.FormatBool(*quiet),
			"width":       strconv.Itoa(*width),
			"height":      strconv.Itoa(*height),
			"trace":       strconv.FormatBool(*trace),
			"logFile":     *logFile,
		},
		Args: append([]string(nil), args...),
	}

	if err := Validate(cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate ensures the parsed configuration is usable.
func Validate(cfg Config) error {
	millis := int(cfg.App.RefreshRate / time.Millisecond)
	if millis < minRefreshMillis || millis > maxRefreshMillis {
		return fmt.Errorf("refresh-rate must be between %d and %d ms (got %d)", minRefreshMillis, maxRefreshMillis, millis)
	}
	if cfg.App.QueryTimeout <= 0 {
		return fmt.Errorf("timeout must be > 0 ms (got %d)", cfg.App.QueryTimeout/time.Millisecond)
	}
	if strings.TrimSpace(cfg.App.GlazeWMPath) == "" {
		return fmt.Errorf("glazewm-path must not be empty")
	}
	if cfg.App.Width < 0 {
		return fmt.Errorf("width must be >= 0 (got %d)", cfg.App.Width)
	}
	if cfg.App.Height < 0 {
		return fmt.Errorf("height must be >= 0 (got %d)", cfg.App.Height)
	}
	return nil
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
}

func envOrInt(env map[string]string, key string, fallback int) int {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

// MustLoad returns configuration or exits with the configuration error code.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}
