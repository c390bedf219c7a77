// Package logger provides leveled logging on stderr. The run summary itself
// goes to stdout and never through the logger.
package logger

import (
	"fmt"
	"log"
	"os"
	"strings"
)

// Level represents a logging level.
type Level int

const (
	DebugLevel Level = iota
	InfoLevel
	WarnLevel
	ErrorLevel
)

var levelNames = map[string]Level{
	"debug": DebugLevel,
	"info":  InfoLevel,
	"warn":  WarnLevel,
	"error": ErrorLevel,
}

var (
	minLevel      = InfoLevel
	defaultLogger *log.Logger
)

// Init initializes the default logger with the specified level and format.
// Unknown levels fall back to info.
func Init(level string, format string) {
	l, ok := levelNames[strings.ToLower(level)]
	if !ok {
		l = InfoLevel
	}
	minLevel = l

	flags := log.LstdFlags | log.Lmicroseconds
	if strings.ToLower(format) == "text" {
		flags |= log.Lshortfile
	}
	defaultLogger = log.New(os.Stderr, "", flags)
}

func output(l Level, tag, format string, args ...interface{}) {
	if defaultLogger == nil || l < minLevel {
		return
	}
	_ = defaultLogger.Output(3, fmt.Sprintf(tag+format, args...))
}

func Debug(format string, args ...interface{}) {
	output(DebugLevel, "[DEBUG] ", format, args...)
}

func Info(format string, args ...interface{}) {
	output(InfoLevel, "[INFO] ", format, args...)
}

func Warn(format string, args ...interface{}) {
	output(WarnLevel, "[WARN] ", format, args...)
}

func Error(format string, args ...interface{}) {
	output(ErrorLevel, "[ERROR] ", format, args...)
}

func Fatal(format string, args ...interface{}) {
	if defaultLogger != nil {
		_ = defaultLogger.Output(2, fmt.Sprintf("[FATAL] "+format, args...))
	}
	os.Exit(1)
}
