// Package config resolves the simulator configuration: embedded JSON
// defaults, overridable per key through EECSIM_* environment variables.
package config

import (
	"errors"
	"os"
	"strconv"

	"github.com/andreyvit/tinyjson"
)

// Config is the resolved simulator configuration.
type Config struct {
	QueueSize      int    // event bus queue capacity
	MaxSubscribers int    // per event kind
	TickMS         int    // frame interval
	DiagAddr       string // diagnostics HTTP listen address, "" disables
	Demo           string // default demo screen
	LogLevel       string // error|warn|info|debug|verbose
}

var embeddedDefaults = []byte(`{
	"queue_size": 32,
	"max_subscribers": 8,
	"tick_ms": 50,
	"diag_addr": "",
	"demo": "sensor-dashboard",
	"log_level": "info"
}`)

// EmbeddedLookup allows tests to substitute the embedded defaults.
var EmbeddedLookup = func() []byte { return embeddedDefaults }

// Load parses the embedded defaults and applies environment overrides.
func Load() (Config, error) {
	raw := EmbeddedLookup()
	if len(raw) == 0 {
		return Config{}, errors.New("config: no embedded defaults")
	}

	r := tinyjson.Raw(raw)
	val := r.Value()
	r.EnsureEOF()

	m, ok := val.(map[string]any)
	if !ok {
		return Config{}, errors.New("config: embedded defaults are not a JSON object")
	}

	cfg := Config{
		QueueSize:      intfield(m, "queue_size", 32),
		MaxSubscribers: intfield(m, "max_subscribers", 8),
		TickMS:         intfield(m, "tick_ms", 50),
		DiagAddr:       strfield(m, "diag_addr", ""),
		Demo:           strfield(m, "demo", "sensor-dashboard"),
		LogLevel:       strfield(m, "log_level", "info"),
	}

	overrideInt(&cfg.QueueSize, "EECSIM_QUEUE_SIZE")
	overrideInt(&cfg.MaxSubscribers, "EECSIM_MAX_SUBSCRIBERS")
	overrideInt(&cfg.TickMS, "EECSIM_TICK_MS")
	overrideStr(&cfg.DiagAddr, "EECSIM_DIAG_ADDR")
	overrideStr(&cfg.Demo, "EECSIM_DEMO")
	overrideStr(&cfg.LogLevel, "EECSIM_LOG_LEVEL")

	if cfg.QueueSize < 1 || cfg.MaxSubscribers < 1 || cfg.TickMS < 1 {
		return Config{}, errors.New("config: sizes and intervals must be positive")
	}
	return cfg, nil
}

func intfield(m map[string]any, key string, def int) int {
	if v, ok := m[key].(float64); ok {
		return int(v)
	}
	return def
}

func strfield(m map[string]any, key, def string) string {
	if v, ok := m[key].(string); ok {
		return v
	}
	return def
}

func overrideInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func overrideStr(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
