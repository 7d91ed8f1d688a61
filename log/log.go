// Package log is the minimal leveled-logging port the library depends
// on (spec §7): DEBUG/INFO/WARN/ERROR with lazily evaluated messages, so
// a call site that never logs at DEBUG never pays for building the
// message. The default implementation is built on zap's zapcore
// (encoder, sink and atomic level), the structured logger used across
// the pack (uber-go-fx, istio-ecosystem controllers) rather than a
// hand-rolled stdlib log.Logger wrapper.
package log

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// MsgFunc lazily builds a log message; it is only invoked if the level
// is enabled, so callers can defer formatting cost.
type MsgFunc func() string

// Logger is the port the library's components depend on.
type Logger interface {
	Debug(msg MsgFunc, fields ...Field)
	Info(msg MsgFunc, fields ...Field)
	Warn(msg MsgFunc, fields ...Field)
	Error(msg MsgFunc, fields ...Field)
	// WithLevel returns a derived Logger whose minimum enabled level is
	// lvl; used to implement ResourceLocation's verbose flag (WARN by
	// default, DEBUG when verbose) for the duration of one load.
	WithLevel(lvl Level) Logger
}

// Field is a structured key/value attached to a log line.
type Field struct {
	Key   string
	Value any
}

func F(key string, value any) Field { return Field{Key: key, Value: value} }

// Level mirrors the spec's four levels.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func toZapLevel(lvl Level) zapcore.Level {
	switch lvl {
	case LevelDebug:
		return zapcore.DebugLevel
	case LevelInfo:
		return zapcore.InfoLevel
	case LevelWarn:
		return zapcore.WarnLevel
	default:
		return zapcore.ErrorLevel
	}
}

// zapLogger is the default Logger backed by zap, with its own
// zap.AtomicLevel so WithLevel can hand back a cheap derived view that
// shares the same sink but gates independently.
type zapLogger struct {
	sink zapcore.WriteSyncer
	enc  zapcore.Encoder
	lvl  zap.AtomicLevel
}

// New builds a default Logger writing structured, leveled console
// output to stderr at a given initial minimum level.
func New(initial Level) Logger {
	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = "ts"
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	return &zapLogger{
		sink: zapcore.Lock(zapcore.AddSync(os.Stderr)),
		enc:  zapcore.NewConsoleEncoder(cfg),
		lvl:  zap.NewAtomicLevelAt(toZapLevel(initial)),
	}
}

func (l *zapLogger) core() zapcore.Core {
	return zapcore.NewCore(l.enc, l.sink, l.lvl)
}

func (l *zapLogger) log(lvl Level, msg MsgFunc, fields []Field) {
	zl := toZapLevel(lvl)
	if !l.lvl.Enabled(zl) {
		return
	}
	zfields := make([]zap.Field, len(fields))
	for i, f := range fields {
		zfields[i] = zap.Any(f.Key, f.Value)
	}
	ent := zapcore.Entry{Level: zl, Message: msg()}
	_ = l.core().Write(ent, zfields)
}

func (l *zapLogger) Debug(msg MsgFunc, fields ...Field) { l.log(LevelDebug, msg, fields) }
func (l *zapLogger) Info(msg MsgFunc, fields ...Field)  { l.log(LevelInfo, msg, fields) }
func (l *zapLogger) Warn(msg MsgFunc, fields ...Field)  { l.log(LevelWarn, msg, fields) }
func (l *zapLogger) Error(msg MsgFunc, fields ...Field) { l.log(LevelError, msg, fields) }

func (l *zapLogger) WithLevel(lvl Level) Logger {
	return &zapLogger{sink: l.sink, enc: l.enc, lvl: zap.NewAtomicLevelAt(toZapLevel(lvl))}
}

// Nop returns a Logger that discards everything, for tests and for
// hosts that don't want library logging.
func Nop() Logger { return nopLogger{} }

type nopLogger struct{}

func (nopLogger) Debug(MsgFunc, ...Field) {}
func (nopLogger) Info(MsgFunc, ...Field)  {}
func (nopLogger) Warn(MsgFunc, ...Field)  {}
func (nopLogger) Error(MsgFunc, ...Field) {}
func (nopLogger) WithLevel(Level) Logger  { return nopLogger{} }
