// Package logger provides structured logging using zap.
//
// Every package logs through a child of the global logger obtained with
// Named. Levels can be set per component, so the panel registry can log at
// debug while the network stays at info.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Log is the global logger instance. It discards everything until Init runs.
var Log = zap.NewNop()

// Sugar is the sugared logger for convenient logging.
var Sugar = Log.Sugar()

// FileConfig holds file logging configuration.
type FileConfig struct {
	Path       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// DefaultFileConfig returns default file logging settings.
func DefaultFileConfig(path string) FileConfig {
	return FileConfig{
		Path:       path,
		MaxSizeMB:  50,
		MaxBackups: 3,
		MaxAgeDays: 7,
		Compress:   true,
	}
}

// Options configure New.
type Options struct {
	Level string
	// Components overrides Level for named loggers. A key matches the
	// component and its children ("ui" matches "ui.panels").
	Components map[string]string
	File       FileConfig
	// Console is where console output goes. Nil disables the console.
	Console io.Writer
}

// New builds a logger without touching the global one.
func New(opts Options) (*zap.Logger, error) {
	levels := newComponentLevels(parseLevel(opts.Level), opts.Components)

	var cores []zapcore.Core
	if opts.Console != nil {
		enc := zapcore.NewConsoleEncoder(encoderConfig(zapcore.TimeEncoderOfLayout("15:04:05"), zapcore.CapitalColorLevelEncoder))
		cores = append(cores, zapcore.NewCore(enc, zapcore.AddSync(opts.Console), levels.min))
	}
	if opts.File.Path != "" {
		w := &lumberjack.Logger{
			Filename:   opts.File.Path,
			MaxSize:    opts.File.MaxSizeMB,
			MaxBackups: opts.File.MaxBackups,
			MaxAge:     opts.File.MaxAgeDays,
			Compress:   opts.File.Compress,
			LocalTime:  true,
		}
		enc := zapcore.NewConsoleEncoder(encoderConfig(zapcore.ISO8601TimeEncoder, zapcore.CapitalLevelEncoder))
		cores = append(cores, zapcore.NewCore(enc, zapcore.AddSync(w), levels.min))
	}
	if len(cores) == 0 {
		return nil, fmt.Errorf("logger: no output configured")
	}

	core := zapcore.NewTee(cores...)
	if len(levels.byName) > 0 {
		core = &filterCore{Core: core, levels: levels}
	}
	return zap.New(core, zap.AddCaller()), nil
}

func encoderConfig(timeEnc zapcore.TimeEncoder, levelEnc zapcore.LevelEncoder) zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:          "time",
		LevelKey:         "level",
		NameKey:          "logger",
		MessageKey:       "msg",
		CallerKey:        "caller",
		EncodeTime:       timeEnc,
		EncodeLevel:      levelEnc,
		EncodeCaller:     zapcore.ShortCallerEncoder,
		EncodeName:       zapcore.FullNameEncoder,
		ConsoleSeparator: " ",
	}
}

// InitWithFileConfig initializes the logger with custom file configuration.
// Set consoleOutput to false to disable console logging (useful for tests).
func InitWithFileConfig(level string, fileCfg FileConfig, consoleOutput bool) error {
	opts := Options{Level: level, File: fileCfg}
	if consoleOutput {
		opts.Console = os.Stdout
	}
	return InitWithOptions(opts)
}

// InitWithOptions builds a logger and makes it the global one.
func InitWithOptions(opts Options) error {
	l, err := New(opts)
	if err != nil {
		return err
	}
	Use(l)
	return nil
}

// Named returns a child of the global logger tagged with a component name.
// The child is resolved at call time, so keep the result only after Init.
func Named(component string) *zap.Logger {
	return Log.Named(component)
}

// Use replaces the global logger. Tests use it with zaptest/observer cores.
func Use(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	Log = l
	Sugar = l.Sugar()
}

// parseLevel converts a string level to zapcore.Level.
func parseLevel(level string) zapcore.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// componentLevels resolves the level of a named logger.
type componentLevels struct {
	base   zapcore.Level
	min    zapcore.Level
	byName map[string]zapcore.Level
}

func newComponentLevels(base zapcore.Level, overrides map[string]string) componentLevels {
	c := componentLevels{base: base, min: base, byName: make(map[string]zapcore.Level, len(overrides))}
	for name, lvl := range overrides {
		l := parseLevel(lvl)
		c.byName[name] = l
		if l < c.min {
			c.min = l
		}
	}
	return c
}

// levelFor walks up the dotted name until an override matches.
func (c componentLevels) levelFor(name string) zapcore.Level {
	for name != "" {
		if l, ok := c.byName[name]; ok {
			return l
		}
		i := strings.LastIndexByte(name, '.')
		if i < 0 {
			break
		}
		name = name[:i]
	}
	return c.base
}

// filterCore drops entries below the level of their component.
type filterCore struct {
	zapcore.Core
	levels componentLevels
}

func (f *filterCore) With(fields []zapcore.Field) zapcore.Core {
	return &filterCore{Core: f.Core.With(fields), levels: f.levels}
}

func (f *filterCore) Check(e zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if e.Level < f.levels.levelFor(e.LoggerName) {
		return ce
	}
	return f.Core.Check(e, ce)
}

// Sync flushes any buffered log entries.
func Sync() {
	_ = Log.Sync()
}

// Debug logs a debug message.
func Debug(msg string, fields ...zap.Field) {
	Log.Debug(msg, fields...)
}

// Info logs an info message.
func Info(msg string, fields ...zap.Field) {
	Log.Info(msg, fields...)
}

// Warn logs a warning message.
func Warn(msg string, fields ...zap.Field) {
	Log.Warn(msg, fields...)
}

// Error logs an error message.
func Error(msg string, fields ...zap.Field) {
	Log.Error(msg, fields...)
}

// Fatal logs a fatal message and exits.
func Fatal(msg string, fields ...zap.Field) {
	Log.Fatal(msg, fields...)
}
