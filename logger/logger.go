// Package logger provides the leveled logger used across the replica
// toolkit, with text and JSON output formats.
package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"
)

const (
	ansiReset  = "\033[0m"
	ansiRed    = "\033[31m"
	ansiYellow = "\033[33m"
)

// LogLevel defines the severity of the log
type LogLevel int

const (
	LogLevelSilent LogLevel = iota
	LogLevelError
	LogLevelWarn
	LogLevelInfo
)

// LogFormat defines the output format of the log
type LogFormat string

const (
	LogFormatText LogFormat = "text"
	LogFormatJSON LogFormat = "json"
)

// Logger is the interface for logging pool and SQL generation events
type Logger interface {
	SetLevel(level LogLevel)
	SetFormat(format LogFormat)
	SetOutput(w io.Writer)
	WithFields(fields map[string]any) Logger
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
	SQL(sql string, duration time.Duration, args ...any)
}

// stdLogger is the default implementation of Logger
type stdLogger struct {
	level  LogLevel
	format LogFormat
	writer io.Writer
	fields map[string]any
}

// NewStdLogger creates a new standard logger writing to stdout at Info level
func NewStdLogger() Logger {
	return &stdLogger{
		level:  LogLevelInfo,
		format: LogFormatText,
		writer: os.Stdout,
		fields: make(map[string]any),
	}
}

func (l *stdLogger) SetLevel(level LogLevel) {
	l.level = level
}

func (l *stdLogger) SetFormat(format LogFormat) {
	l.format = format
}

func (l *stdLogger) SetOutput(w io.Writer) {
	l.writer = w
}

func (l *stdLogger) WithFields(fields map[string]any) Logger {
	merged := make(map[string]any, len(l.fields)+len(fields))
	for k, v := range l.fields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	return &stdLogger{
		level:  l.level,
		format: l.format,
		writer: l.writer,
		fields: merged,
	}
}

func (l *stdLogger) Info(format string, args ...any) {
	if l.level >= LogLevelInfo {
		l.log("INFO", "", format, args...)
	}
}

func (l *stdLogger) Warn(format string, args ...any) {
	if l.level >= LogLevelWarn {
		l.log("WARN", ansiYellow, format, args...)
	}
}

func (l *stdLogger) Error(format string, args ...any) {
	if l.level >= LogLevelError {
		l.log("ERROR", ansiRed, format, args...)
	}
}

func (l *stdLogger) SQL(sql string, duration time.Duration, args ...any) {
	if l.level < LogLevelInfo {
		return
	}
	if l.format == LogFormatJSON {
		l.logJSON("SQL", map[string]any{
			"sql":      sql,
			"duration": duration.String(),
			"args":     args,
		})
		return
	}
	l.log("SQL", "", "[%v] %s | args: %v", duration, sql, args)
}

func (l *stdLogger) log(level, color, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if l.format == LogFormatJSON {
		l.logJSON(level, map[string]any{"msg": msg})
		return
	}
	if color != "" {
		msg = color + msg + ansiReset
	}
	fieldStr := ""
	if len(l.fields) > 0 {
		fieldStr = fmt.Sprintf(" fields: %v", l.fields)
	}
	fmt.Fprintf(l.writer, "[REPLICA] %s %s: %s%s\n",
		time.Now().Format("2006-01-02 15:04:05"), level, msg, fieldStr)
}

func (l *stdLogger) logJSON(level string, data map[string]any) {
	out := make(map[string]any, len(l.fields)+len(data)+2)
	for k, v := range l.fields {
		out[k] = v
	}
	for k, v := range data {
		out[k] = v
	}
	out["time"] = time.Now().Format(time.RFC3339)
	out["level"] = level
	json.NewEncoder(l.writer).Encode(out)
}
