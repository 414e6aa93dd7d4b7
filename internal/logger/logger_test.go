package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogRotation(t *testing.T) {
	dir := t.TempDir()
	logFile := filepath.Join(dir, "client.log")

	// 1MB is the smallest size lumberjack rotates at.
	cfg := FileConfig{
		Path:       logFile,
		MaxSizeMB:  1,
		MaxBackups: 2,
		MaxAgeDays: 1,
	}
	require.NoError(t, InitWithFileConfig("debug", cfg, false))
	defer Use(nil)

	long := strings.Repeat("x", 200)
	for i := 0; i < 15000; i++ {
		Sugar.Infof("panel event %d: %s", i, long)
	}
	Sync()

	assert.FileExists(t, logFile)

	files, err := os.ReadDir(dir)
	require.NoError(t, err)
	var rotated []string
	for _, f := range files {
		if f.Name() != "client.log" && strings.HasPrefix(f.Name(), "client") {
			rotated = append(rotated, f.Name())
		}
	}
	require.NotEmpty(t, rotated)
	for _, name := range rotated {
		// client-YYYY-MM-DDTHH-MM-SS.SSS.log
		assert.Contains(t, name, "-20")
	}
}

func TestLogLevels(t *testing.T) {
	tests := []struct {
		level    string
		expected []string
		excluded []string
	}{
		{"error", []string{"ERROR"}, []string{"WARN", "INFO", "DEBUG"}},
		{"warn", []string{"ERROR", "WARN"}, []string{"INFO", "DEBUG"}},
		{"info", []string{"ERROR", "WARN", "INFO"}, []string{"DEBUG"}},
		{"debug", []string{"ERROR", "WARN", "INFO", "DEBUG"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			var buf bytes.Buffer
			l, err := New(Options{Level: tt.level, Console: &buf})
			require.NoError(t, err)

			l.Debug("debug message")
			l.Info("info message")
			l.Warn("warn message")
			l.Error("error message")

			out := buf.String()
			for _, exp := range tt.expected {
				assert.Contains(t, out, exp)
			}
			for _, exc := range tt.excluded {
				assert.NotContains(t, out, exc)
			}
		})
	}
}

func TestComponentLevels(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(Options{
		Level:      "warn",
		Components: map[string]string{"ui": "debug", "network": "error"},
		Console:    &buf,
	})
	require.NoError(t, err)

	l.Named("ui").Debug("panel created")
	l.Named("ui").Named("panels").Debug("notice answered")
	l.Named("network").Warn("packet dropped")
	l.Named("handlers").Info("login result")
	l.Named("handlers").Warn("malformed packet")
	l.Named("ui").With(zap.String("type", "LOGIN")).Debug("focus changed")

	out := buf.String()
	assert.Contains(t, out, "panel created")
	assert.Contains(t, out, "notice answered")
	assert.Contains(t, out, "focus changed")
	assert.NotContains(t, out, "packet dropped")
	assert.NotContains(t, out, "login result")
	assert.Contains(t, out, "malformed packet")
}

func TestLevelFor(t *testing.T) {
	c := newComponentLevels(zapcore.InfoLevel, map[string]string{
		"ui":        "debug",
		"ui.panels": "error",
	})
	assert.Equal(t, zapcore.DebugLevel, c.min)
	assert.Equal(t, zapcore.DebugLevel, c.levelFor("ui"))
	assert.Equal(t, zapcore.DebugLevel, c.levelFor("ui.input"))
	assert.Equal(t, zapcore.ErrorLevel, c.levelFor("ui.panels.notice"))
	assert.Equal(t, zapcore.InfoLevel, c.levelFor("network"))
	assert.Equal(t, zapcore.InfoLevel, c.levelFor(""))
}

func TestUseAndNamed(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	Use(zap.New(core))
	defer Use(nil)

	Named("registry").Debug("panel created", zap.String("type", "LOGIN"))
	Warn("packet dropped")

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "registry", entries[0].LoggerName)
	assert.Equal(t, "LOGIN", entries[0].ContextMap()["type"])
	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
}

func TestNopBeforeInit(t *testing.T) {
	Use(nil)
	assert.NotPanics(t, func() {
		Named("ui").Info("dropped")
		Sugar.Debugf("dropped %d", 1)
	})
}

func TestInitWithoutOutputs(t *testing.T) {
	assert.Error(t, InitWithFileConfig("info", FileConfig{}, false))
	_, err := New(Options{Level: "debug"})
	assert.Error(t, err)
}

func TestParseLevel(t *testing.T) {
	cases := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"DEBUG":   zapcore.DebugLevel,
		"warn":    zapcore.WarnLevel,
		"warning": zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"":        zapcore.InfoLevel,
		"bogus":   zapcore.InfoLevel,
	}
	for in, want := range cases {
		assert.Equal(t, want, parseLevel(in), in)
	}
}

func TestDefaultFileConfig(t *testing.T) {
	cfg := DefaultFileConfig("/tmp/client.log")
	assert.Equal(t, FileConfig{
		Path:       "/tmp/client.log",
		MaxSizeMB:  50,
		MaxBackups: 3,
		MaxAgeDays: 7,
		Compress:   true,
	}, cfg)
}
