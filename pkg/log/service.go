package log

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mwantia/gopay/internal/config"
	"gopkg.in/natefinch/lumberjack.v2"
)

// LoggerService is the leveled logger shared by every component. Messages are
// printf-style format strings.
type LoggerService interface {
	Debug(msg string, args ...any)

	Info(msg string, args ...any)

	Warn(msg string, args ...any)

	Error(msg string, args ...any)

	Fatal(msg string, args ...any)

	Named(name string) LoggerService
}

type LoggerServiceImpl struct {
	LoggerService

	cfg    config.LogConfig
	name   string
	level  LogLevel
	writer io.Writer
	file   *lumberjack.Logger
}

type logEntry struct {
	Timestamp string `json:"timestamp"`
	Level     string `json:"level"`
	Service   string `json:"service,omitempty"`
	Message   string `json:"message"`
}

// exit is replaced in tests
var exit = os.Exit

func NewLoggerService(name string, cfg config.LogConfig) LoggerService {
	impl := &LoggerServiceImpl{
		cfg:   cfg,
		name:  name,
		level: Parse(cfg.Level),
	}

	impl.setupWriter()
	return impl
}

// NewNopLogger returns a logger that drops every message.
func NewNopLogger() LoggerService {
	return &LoggerServiceImpl{
		cfg:    config.LogConfig{NoColor: true},
		level:  Fatal + 1,
		writer: io.Discard,
	}
}

func (impl *LoggerServiceImpl) setupWriter() {
	var writers []io.Writer

	if !impl.cfg.NoTerminal {
		writers = append(writers, os.Stderr)
	}

	if impl.cfg.File != "" {
		impl.file = &lumberjack.Logger{
			Filename:   impl.cfg.File,
			MaxSize:    impl.cfg.Rotation.MaxSize,
			MaxBackups: impl.cfg.Rotation.MaxBackups,
			MaxAge:     impl.cfg.Rotation.MaxAge,
			Compress:   impl.cfg.Rotation.Compress,
		}
		writers = append(writers, impl.file)
	}

	if len(writers) == 0 {
		writers = append(writers, os.Stderr)
	}

	impl.writer = io.MultiWriter(writers...)
}

func (impl *LoggerServiceImpl) log(level LogLevel, msg string, args ...any) {
	if level < impl.level {
		return
	}

	timestamp := time.Now().Format(impl.cfg.TimeFormat)
	formattedMsg := fmt.Sprintf(msg, args...)

	if impl.cfg.JSON {
		entry := logEntry{
			Timestamp: timestamp,
			Level:     level.String(),
			Service:   impl.name,
			Message:   formattedMsg,
		}

		jsonBytes, _ := json.Marshal(entry)
		fmt.Fprintf(impl.writer, "%s\n", jsonBytes)
	} else {
		prefix := fmt.Sprintf("[%s] %-5s", timestamp, level)
		if impl.name != "" {
			prefix = fmt.Sprintf("%s [%s]", prefix, impl.name)
		}

		// Colors only make sense when nothing but the terminal is written
		if !impl.cfg.NoTerminal && !impl.cfg.NoColor && impl.file == nil {
			fmt.Fprintf(impl.writer, "%s%s %s%s\n", Color(level), prefix, formattedMsg, colorReset)
		} else {
			fmt.Fprintf(impl.writer, "%s %s\n", prefix, formattedMsg)
		}
	}

	if level == Fatal {
		exit(1)
	}
}

func (impl *LoggerServiceImpl) Debug(msg string, args ...any) {
	impl.log(Debug, msg, args...)
}

func (impl *LoggerServiceImpl) Info(msg string, args ...any) {
	impl.log(Info, msg, args...)
}

func (impl *LoggerServiceImpl) Warn(msg string, args ...any) {
	impl.log(Warn, msg, args...)
}

func (impl *LoggerServiceImpl) Error(msg string, args ...any) {
	impl.log(Error, msg, args...)
}

func (impl *LoggerServiceImpl) Fatal(msg string, args ...any) {
	impl.log(Fatal, msg, args...)
}

// Named returns a child logger whose service name is nested under this one.
// Children share the parent's writer.
func (impl *LoggerServiceImpl) Named(name string) LoggerService {
	if impl.name != "" {
		name = fmt.Sprintf("%s/%s", impl.name, name)
	}
	return &LoggerServiceImpl{
		cfg:    impl.cfg,
		name:   name,
		level:  impl.level,
		writer: impl.writer,
		file:   impl.file,
	}
}

// Close releases the rotated log file, if any.
func (impl *LoggerServiceImpl) Close() error {
	if impl.file == nil {
		return nil
	}
	return impl.file.Close()
}
