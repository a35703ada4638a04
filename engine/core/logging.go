package core

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

type LogLevel = log.Level

const (
	LogLevelDebug LogLevel = log.DebugLevel
	LogLevelInfo  LogLevel = log.InfoLevel
	LogLevelWarn  LogLevel = log.WarnLevel
	LogLevelError LogLevel = log.ErrorLevel
	LogLevelFatal LogLevel = log.FatalLevel
)

var once sync.Once

type logger struct {
	*log.Logger
}

var singleton *logger

func getLogger() *logger {
	once.Do(
		func() {
			l := log.NewWithOptions(os.Stderr, log.Options{
				ReportCaller:    true,
				ReportTimestamp: true,
				TimeFormat:      time.RFC3339,
				Prefix:          "Importer 📦",
				CallerOffset:    1,
			})
			l.SetLevel(log.InfoLevel)
			singleton = &logger{l}
		})
	return singleton
}

// SetLogLevel changes the verbosity of the importer logger.
func SetLogLevel(level LogLevel) {
	getLogger().SetLevel(level)
}

// SetLogOutput redirects the importer logger to w.
func SetLogOutput(w io.Writer) {
	getLogger().SetOutput(w)
}

// ParseLogLevel accepts debug, info, warn, error and fatal.
func ParseLogLevel(level string) (LogLevel, error) {
	l, err := log.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return LogLevelInfo, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return l, nil
}

func LogDebug(msg string, args ...interface{}) {
	getLogger().Debugf(msg, args...)
}

func LogInfo(msg string, args ...interface{}) {
	getLogger().Infof(msg, args...)
}

func LogWarn(msg string, args ...interface{}) {
	getLogger().Warnf(msg, args...)
}

func LogError(msg string, args ...interface{}) {
	getLogger().Errorf(msg, args...)
}

func LogFatal(msg string, args ...interface{}) {
	getLogger().Fatalf(msg, args...)
}

// LogAt logs msg verbatim at the given level. Used to forward lines that
// were already formatted elsewhere.
func LogAt(level LogLevel, msg string) {
	getLogger().Log(level, msg)
}
