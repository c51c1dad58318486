package jwtdecoder

import (
	"log"

	"github.com/rs/zerolog"
	"github.com/sirupsen/logrus"
	"go.uber.org/zap"
)

// Logger is a generic logging interface for the decoder. The decoder logs
// key resolution at debug level and decode failures at warn level.
type Logger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

// DefaultLogger writes through the standard library log package with a
// level prefix on each line.
type DefaultLogger struct {
	// Log receives the formatted lines. When nil, log.Default() is used.
	Log *log.Logger
}

func (l *DefaultLogger) printf(level, format string, args ...interface{}) {
	out := l.Log
	if out == nil {
		out = log.Default()
	}
	out.Printf(level+": "+format, args...)
}

func (l *DefaultLogger) Debugf(format string, args ...interface{}) { l.printf("DEBUG", format, args...) }
func (l *DefaultLogger) Infof(format string, args ...interface{})  { l.printf("INFO", format, args...) }
func (l *DefaultLogger) Warnf(format string, args ...interface{})  { l.printf("WARN", format, args...) }
func (l *DefaultLogger) Errorf(format string, args ...interface{}) { l.printf("ERROR", format, args...) }

// NewZapLogger returns a Logger backed by a zap.SugaredLogger.
func NewZapLogger(l *zap.SugaredLogger) Logger {
	return &zapLogger{sugar: l}
}

type zapLogger struct {
	sugar *zap.SugaredLogger
}

func (z *zapLogger) Debugf(format string, args ...interface{}) { z.sugar.Debugf(format, args...) }
func (z *zapLogger) Infof(format string, args ...interface{})  { z.sugar.Infof(format, args...) }
func (z *zapLogger) Warnf(format string, args ...interface{})  { z.sugar.Warnf(format, args...) }
func (z *zapLogger) Errorf(format string, args ...interface{}) { z.sugar.Errorf(format, args...) }

// NewZerologLogger returns a Logger backed by a zerolog.Logger.
func NewZerologLogger(l zerolog.Logger) Logger {
	return &zerologLogger{log: l}
}

type zerologLogger struct {
	log zerolog.Logger
}

func (z *zerologLogger) Debugf(format string, args ...interface{}) {
	z.log.Debug().Msgf(format, args...)
}

func (z *zerologLogger) Infof(format string, args ...interface{}) {
	z.log.Info().Msgf(format, args...)
}

func (z *zerologLogger) Warnf(format string, args ...interface{}) {
	z.log.Warn().Msgf(format, args...)
}

func (z *zerologLogger) Errorf(format string, args ...interface{}) {
	z.log.Error().Msgf(format, args...)
}

// NewLogrusLogger returns a Logger backed by a logrus.FieldLogger.
func NewLogrusLogger(l logrus.FieldLogger) Logger {
	return &logrusLogger{log: l}
}

type logrusLogger struct {
	log logrus.FieldLogger
}

func (l *logrusLogger) Debugf(format string, args ...interface{}) { l.log.Debugf(format, args...) }
func (l *logrusLogger) Infof(format string, args ...interface{})  { l.log.Infof(format, args...) }
func (l *logrusLogger) Warnf(format string, args ...interface{})  { l.log.Warnf(format, args...) }
func (l *logrusLogger) Errorf(format string, args ...interface{}) { l.log.Errorf(format, args...) }
