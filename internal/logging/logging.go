package logging

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type StatementID string

func NewStatementID() StatementID {
	return StatementID(uuid.New().String())
}

type Logger struct {
	*zap.SugaredLogger
	id StatementID
}

func (logger Logger) WithStatementID(id StatementID) Logger {
	return Logger{
		SugaredLogger: logger.With("statement-id", id),
		id:            id,
	}
}

func (logger Logger) StatementID() StatementID {
	return logger.id
}

func (logger Logger) WithTable(schema, table string) Logger {
	return Logger{
		SugaredLogger: logger.With("schema", schema, "table", table),
		id:            logger.id,
	}
}

// NewConfiguredLogger builds a logger at the given level. Development mode
// uses the console encoder; otherwise output is JSON on stderr.
func NewConfiguredLogger(service, level string, development bool) (Logger, error) {
	atom, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return Logger{}, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	cfg := zap.NewProductionConfig()
	if development {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = atom
	cfg.OutputPaths = []string{"stderr"}
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	baseLogger, err := cfg.Build(zap.AddStacktrace(zap.ErrorLevel))
	if err != nil {
		return Logger{}, err
	}
	return Logger{
		SugaredLogger: baseLogger.Sugar().Named(service),
	}, nil
}

func NewNopLogger() Logger {
	return Logger{
		SugaredLogger: zap.NewNop().Sugar(),
	}
}

type contextKey string

const loggerKey contextKey = "logger"

func AttachLogger(ctx context.Context, logger Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// GetLoggerFromContext returns the attached logger, or a no-op logger.
func GetLoggerFromContext(ctx context.Context) Logger {
	if logger, ok := ctx.Value(loggerKey).(Logger); ok {
		return logger
	}
	return NewNopLogger()
}
