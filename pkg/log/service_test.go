package log

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mwantia/gopay/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fileLogger(t *testing.T, cfg config.LogConfig) (LoggerService, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "gopay.log")
	cfg.File = path
	cfg.NoTerminal = true
	if cfg.TimeFormat == "" {
		cfg.TimeFormat = "2006-01-02 15:04:05"
	}

	logger := NewLoggerService("gopay", cfg)
	t.Cleanup(func() { _ = logger.(*LoggerServiceImpl).Close() })
	return logger, path
}

func readLines(t *testing.T, path string) []string {
	t.Helper()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return strings.Split(strings.TrimSpace(string(data)), "\n")
}

func TestLoggerFiltersByLevel(t *testing.T) {
	logger, path := fileLogger(t, config.LogConfig{Level: "warn"})

	logger.Debug("hidden")
	logger.Info("hidden")
	logger.Warn("shown %d", 1)
	logger.Error("shown %d", 2)

	lines := readLines(t, path)
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "WARN")
	assert.Contains(t, lines[0], "[gopay] shown 1")
	assert.Contains(t, lines[1], "ERROR")
	assert.NotContains(t, lines[0], "\033[")
}

func TestLoggerJSON(t *testing.T) {
	logger, path := fileLogger(t, config.LogConfig{Level: "debug", JSON: true})

	logger.Named("payments").Warn("deprecated %s", "query")

	lines := readLines(t, path)
	require.Len(t, lines, 1)

	var entry logEntry
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "WARN", entry.Level)
	assert.Equal(t, "gopay/payments", entry.Service)
	assert.Equal(t, "deprecated query", entry.Message)
}

func TestLoggerFatalExits(t *testing.T) {
	logger, path := fileLogger(t, config.LogConfig{Level: "info"})

	code := -1
	exit = func(c int) { code = c }
	t.Cleanup(func() { exit = os.Exit })

	logger.Fatal("boom")

	assert.Equal(t, 1, code)
	assert.Contains(t, readLines(t, path)[0], "FATAL")
}

func TestNopLogger(t *testing.T) {
	logger := NewNopLogger()

	assert.NotPanics(t, func() {
		logger.Error("dropped")
		logger.Named("child").Warn("dropped")
	})
}

func TestParse(t *testing.T) {
	tests := map[string]LogLevel{
		"debug":   Debug,
		"INFO":    Info,
		"":        Info,
		"warning": Warn,
		" error ": Error,
		"fatal":   Fatal,
		"verbose": Info,
	}

	for in, want := range tests {
		assert.Equal(t, want, Parse(in), in)
	}
}
