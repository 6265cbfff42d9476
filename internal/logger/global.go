package logger

import (
	"fmt"
	"os"
	"strings"
	"sync/atomic"
)

var globalLogger atomic.Pointer[Logger]

func init() {
	globalLogger.Store(NewDefault())

	// Configure from environment variables; invalid values keep the defaults
	_ = Configure(os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT"))
}

// Configure applies a level and format name to the global logger. Empty
// values leave the current setting unchanged.
func Configure(level, format string) error {
	l := GetGlobalLogger()
	if level != "" {
		lvl, err := ParseLevel(level)
		if err != nil {
			return err
		}
		l.SetLevel(lvl)
	}
	if format != "" {
		f, err := ParseFormat(format)
		if err != nil {
			return err
		}
		l.SetFormat(f)
	}
	return nil
}

// ParseLevel parses a log level name
func ParseLevel(level string) (LogLevel, error) {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "DEBUG":
		return DEBUG, nil
	case "INFO":
		return INFO, nil
	case "WARN", "WARNING":
		return WARN, nil
	case "ERROR":
		return ERROR, nil
	case "FATAL":
		return FATAL, nil
	default:
		return INFO, fmt.Errorf("unknown log level %q", level)
	}
}

// ParseFormat parses a log format name
func ParseFormat(format string) (LogFormat, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json":
		return JSONFormat, nil
	case "text":
		return TextFormat, nil
	default:
		return JSONFormat, fmt.Errorf("unknown log format %q", format)
	}
}

// GetGlobalLogger returns the global logger instance
func GetGlobalLogger() *Logger {
	return globalLogger.Load()
}

// SetGlobalLogger sets the global logger instance
func SetGlobalLogger(logger *Logger) {
	globalLogger.Store(logger)
}

// Info logs an info message using the global logger
func Info(message string, fields ...map[string]interface{}) {
	GetGlobalLogger().Info(message, fields...)
}

// Warn logs a warning message using the global logger
func Warn(message string, fields ...map[string]interface{}) {
	GetGlobalLogger().Warn(message, fields...)
}

// Error logs an error message using the global logger
func Error(message string, err error, fields ...map[string]interface{}) {
	GetGlobalLogger().Error(message, err, fields...)
}

// Fatal logs a fatal message using the global logger and exits
func Fatal(message string, err error, fields ...map[string]interface{}) {
	GetGlobalLogger().Fatal(message, err, fields...)
}
