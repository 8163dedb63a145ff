// Package log provides structured logging for campaignml built on zerolog.
//
// Components obtain named loggers through GetLoggerWithName and attach
// structured context with With. The default provider writes JSON to stderr at
// info level; SetProvider swaps the backend (tests typically install a
// provider at a higher threshold or around a buffer).
package log

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// Structured logging keys shared across the pipeline.
const (
	ComponentKey  = "component"
	ModelNameKey  = "model"
	OperationKey  = "operation"
	PhaseKey      = "phase"
	SamplesKey    = "samples"
	FeaturesKey   = "features"
	DurationMsKey = "duration_ms"
	VersionKey    = "version"
	PathKey       = "path"
	MetricKey     = "metric"
)

// Common operation and phase values.
const (
	OperationFit     = "fit"
	OperationPredict = "predict"
	OperationSearch  = "grid_search"
	OperationPersist = "persist"
	PhaseTraining    = "training"
	PhaseInference   = "inference"
	PhaseSelection   = "selection"
)

// Logger is the logging interface used throughout the pipeline. Fields are
// passed as alternating key/value pairs.
type Logger interface {
	Debug(msg string, fields ...interface{})
	Info(msg string, fields ...interface{})
	Warn(msg string, fields ...interface{})
	Error(msg string, fields ...interface{})
	With(fields ...interface{}) Logger
}

// LoggerProvider creates named loggers.
type LoggerProvider interface {
	GetLoggerWithName(name string) Logger
}

// Level mirrors zerolog's level set.
type Level = zerolog.Level

// ToLogLevel parses a level name, defaulting to info.
func ToLogLevel(s string) Level {
	switch strings.ToLower(s) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "disabled", "off":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}

var globalProvider LoggerProvider = NewZerologProvider(zerolog.InfoLevel)

// SetProvider replaces the global logger provider.
func SetProvider(p LoggerProvider) {
	if p != nil {
		globalProvider = p
	}
}

// GetLoggerWithName returns a named logger from the global provider.
func GetLoggerWithName(name string) Logger {
	return globalProvider.GetLoggerWithName(name)
}

// ZerologProvider builds Loggers backed by a shared zerolog.Logger.
type ZerologProvider struct {
	base zerolog.Logger
}

// NewZerologProvider creates a provider writing JSON to stderr.
func NewZerologProvider(level Level) *ZerologProvider {
	return NewZerologProviderWithWriter(os.Stderr, level)
}

// NewZerologProviderWithWriter creates a provider writing to w.
func NewZerologProviderWithWriter(w io.Writer, level Level) *ZerologProvider {
	base := zerolog.New(w).Level(level).With().Timestamp().Logger()
	return &ZerologProvider{base: base}
}

// GetLoggerWithName returns a logger tagged with the given name.
func (p *ZerologProvider) GetLoggerWithName(name string) Logger {
	return &zerologLogger{logger: p.base.With().Str("logger", name).Logger()}
}

type zerologLogger struct {
	logger zerolog.Logger
}

func (l *zerologLogger) Debug(msg string, fields ...interface{}) {
	emit(l.logger.Debug(), msg, fields)
}

func (l *zerologLogger) Info(msg string, fields ...interface{}) {
	emit(l.logger.Info(), msg, fields)
}

func (l *zerologLogger) Warn(msg string, fields ...interface{}) {
	emit(l.logger.Warn(), msg, fields)
}

func (l *zerologLogger) Error(msg string, fields ...interface{}) {
	emit(l.logger.Error(), msg, fields)
}

func (l *zerologLogger) With(fields ...interface{}) Logger {
	ctx := l.logger.With()
	for i := 0; i+1 < len(fields); i += 2 {
		key, ok := fields[i].(string)
		if !ok {
			continue
		}
		ctx = ctx.Interface(key, fields[i+1])
	}
	return &zerologLogger{logger: ctx.Logger()}
}

func emit(ev *zerolog.Event, msg string, fields []interface{}) {
	for i := 0; i+1 < len(fields); i += 2 {
		key, ok := fields[i].(string)
		if !ok {
			continue
		}
		switch v := fields[i+1].(type) {
		case error:
			ev = ev.AnErr(key, v)
		default:
			ev = ev.Interface(key, v)
		}
	}
	ev.Msg(msg)
}
