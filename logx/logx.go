// Package logx is the simulator's logging front end. Messages go to a
// zerolog console writer and into a bounded in-memory ring that the UI log
// panel reads, mirroring the firmware logger's dual printf/display targets.
package logx

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Level mirrors the firmware log levels.
type Level int8

const (
	LevelNone Level = iota
	LevelError
	LevelWarn
	LevelInfo
	LevelDebug
	LevelVerbose
)

func (l Level) String() string {
	switch l {
	case LevelError:
		return "E"
	case LevelWarn:
		return "W"
	case LevelInfo:
		return "I"
	case LevelDebug:
		return "D"
	case LevelVerbose:
		return "V"
	}
	return "-"
}

// ParseLevel maps a config string to a Level. Unknown strings give Info.
func ParseLevel(s string) Level {
	switch s {
	case "error":
		return LevelError
	case "warn":
		return LevelWarn
	case "info":
		return LevelInfo
	case "debug":
		return LevelDebug
	case "verbose", "trace":
		return LevelVerbose
	}
	return LevelInfo
}

func (l Level) zerolog() zerolog.Level {
	switch l {
	case LevelError:
		return zerolog.ErrorLevel
	case LevelWarn:
		return zerolog.WarnLevel
	case LevelInfo:
		return zerolog.InfoLevel
	case LevelDebug:
		return zerolog.DebugLevel
	case LevelVerbose:
		return zerolog.TraceLevel
	}
	return zerolog.Disabled
}

// Entry is one retained log line.
type Entry struct {
	Level Level
	Msg   string
	At    time.Time
}

// Config sizes a Logger. Zero values pick the defaults.
type Config struct {
	Level    Level     // threshold; messages above it are discarded (default Info)
	RingSize int       // retained entries for the UI panel (default 64)
	Writer   io.Writer // console target (default stderr)
}

// Logger is safe for use from the frame loop and the diagnostics server.
type Logger struct {
	mu      sync.Mutex
	zl      zerolog.Logger
	level   Level
	ring    []Entry
	head    int
	count   int
	evicted uint64
}

// New creates a logger with a zerolog console writer target.
func New(cfg Config) *Logger {
	if cfg.Level == LevelNone {
		cfg.Level = LevelInfo
	}
	if cfg.RingSize <= 0 {
		cfg.RingSize = 64
	}
	w := cfg.Writer
	if w == nil {
		w = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}
	}
	return &Logger{
		zl:    zerolog.New(w).With().Timestamp().Logger(),
		level: cfg.Level,
		ring:  make([]Entry, cfg.RingSize),
	}
}

// SetLevel adjusts the threshold at runtime.
func (l *Logger) SetLevel(lv Level) {
	l.mu.Lock()
	l.level = lv
	l.mu.Unlock()
}

func (l *Logger) Errorf(format string, args ...any) { l.logf(LevelError, format, args...) }
func (l *Logger) Warnf(format string, args ...any)  { l.logf(LevelWarn, format, args...) }
func (l *Logger) Infof(format string, args ...any)  { l.logf(LevelInfo, format, args...) }
func (l *Logger) Debugf(format string, args ...any) { l.logf(LevelDebug, format, args...) }
func (l *Logger) Tracef(format string, args ...any) { l.logf(LevelVerbose, format, args...) }

func (l *Logger) logf(lv Level, format string, args ...any) {
	l.mu.Lock()
	if lv > l.level || lv == LevelNone {
		l.mu.Unlock()
		return
	}
	msg := fmt.Sprintf(format, args...)
	if l.count == len(l.ring) {
		l.evicted++
	} else {
		l.count++
	}
	l.ring[l.head] = Entry{Level: lv, Msg: msg, At: time.Now()}
	l.head = (l.head + 1) % len(l.ring)
	l.mu.Unlock()

	l.zl.WithLevel(lv.zerolog()).Msg(msg)
}

// Recent returns up to n retained entries, oldest first.
func (l *Logger) Recent(n int) []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	if n <= 0 || n > l.count {
		n = l.count
	}
	out := make([]Entry, 0, n)
	start := l.head - n
	if start < 0 {
		start += len(l.ring)
	}
	for i := 0; i < n; i++ {
		out = append(out, l.ring[(start+i)%len(l.ring)])
	}
	return out
}

// Evicted returns how many retained entries the ring has overwritten.
func (l *Logger) Evicted() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.evicted
}
