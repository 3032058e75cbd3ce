package log

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"github.com/mwantia/fabric/pkg/container"
)

var loggerServiceType = reflect.TypeOf((*LoggerService)(nil)).Elem()

// LoggerTagProcessor handles fabric:"logger" and fabric:"logger:<name>" tags.
//
// Supported tag formats:
//   - `fabric:"logger"` - Injects the base logger service
//   - `fabric:"logger:<name>"` - Injects a named logger (e.g., logger.Named("payments"))
type LoggerTagProcessor struct{}

func NewLoggerTagProcessor() *LoggerTagProcessor {
	return &LoggerTagProcessor{}
}

// GetPriority runs this processor before the default inject processor (priority 0).
func (ltp *LoggerTagProcessor) GetPriority() int {
	return 50
}

// CanProcess matches "logger" and "logger:<name>", case-insensitively.
func (ltp *LoggerTagProcessor) CanProcess(value string) bool {
	return strings.EqualFold(value, "logger") || strings.HasPrefix(strings.ToLower(value), "logger:")
}

// Process resolves the registered LoggerService and names it after the tag.
func (ltp *LoggerTagProcessor) Process(ctx context.Context, sc *container.ServiceContainer, field reflect.StructField, value string) (any, error) {
	base, err := resolveLogger(ctx, sc)
	if err != nil {
		return nil, fmt.Errorf("field '%s': %w", field.Name, err)
	}

	if name := loggerName(value); name != "" {
		return base.Named(name), nil
	}
	return base, nil
}

// Resolve returns the container's logger, named after the given component.
func Resolve(ctx context.Context, sc *container.ServiceContainer, component string) (LoggerService, error) {
	tag := "logger"
	if component != "" {
		tag = "logger:" + component
	}

	resolved, err := NewLoggerTagProcessor().Process(ctx, sc, reflect.StructField{Name: component}, tag)
	if err != nil {
		return nil, err
	}
	return resolved.(LoggerService), nil
}

func resolveLogger(ctx context.Context, sc *container.ServiceContainer) (LoggerService, error) {
	ok, resolved := sc.ResolveByType(ctx, loggerServiceType)
	if !ok {
		return nil, fmt.Errorf("failed to resolve LoggerService: no logger service registered")
	}

	logger, ok := resolved.(LoggerService)
	if !ok {
		return nil, fmt.Errorf("resolved logger is not a LoggerService")
	}
	return logger, nil
}

func loggerName(value string) string {
	_, name, found := strings.Cut(value, ":")
	if !found {
		return ""
	}
	return strings.TrimSpace(name)
}
