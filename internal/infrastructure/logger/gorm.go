package logger

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"
)

const (
	defaultSlowQuery = 200 * time.Millisecond
	maxLoggedSQL     = 2048
)

// GormLogger routes gorm's statement log through zap. Query lines carry the
// request and admin ids stored on the context by the HTTP middleware.
type GormLogger struct {
	log      *zap.Logger
	level    gormlogger.LogLevel
	slow     time.Duration
	fullSQL  bool
	notFound bool
}

// GormLoggerOption tweaks a GormLogger
type GormLoggerOption func(*GormLogger)

// WithSlowThreshold sets the duration above which a statement is logged as
// slow. Zero disables slow query warnings.
func WithSlowThreshold(threshold time.Duration) GormLoggerOption {
	return func(l *GormLogger) { l.slow = threshold }
}

// WithFullSQL disables truncation of long statements.
func WithFullSQL(full bool) GormLoggerOption {
	return func(l *GormLogger) { l.fullSQL = full }
}

// WithRecordNotFound makes gorm.ErrRecordNotFound show up as an error line.
// Lookups by slug or email miss routinely, so it is off by default.
func WithRecordNotFound(log bool) GormLoggerOption {
	return func(l *GormLogger) { l.notFound = log }
}

// NewGormLogger creates a gorm logger backed by zap
func NewGormLogger(zapLogger *zap.Logger, level gormlogger.LogLevel, opts ...GormLoggerOption) *GormLogger {
	l := &GormLogger{
		log:   zapLogger.Named("gorm").WithOptions(zap.AddCallerSkip(3)),
		level: level,
		slow:  defaultSlowQuery,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// LogMode returns a copy at the given level
func (l *GormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	clone := *l
	clone.level = level
	return &clone
}

func (l *GormLogger) Info(ctx context.Context, msg string, data ...any) {
	if l.level >= gormlogger.Info {
		l.withContext(ctx).Sugar().Infof(msg, data...)
	}
}

func (l *GormLogger) Warn(ctx context.Context, msg string, data ...any) {
	if l.level >= gormlogger.Warn {
		l.withContext(ctx).Sugar().Warnf(msg, data...)
	}
}

func (l *GormLogger) Error(ctx context.Context, msg string, data ...any) {
	if l.level >= gormlogger.Error {
		l.withContext(ctx).Sugar().Errorf(msg, data...)
	}
}

// Trace logs one executed statement. Failures log at error, statements over
// the slow threshold at warn and everything else at debug when the level is
// Info.
func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (sql string, rowsAffected int64), err error) {
	if l.level <= gormlogger.Silent {
		return
	}
	elapsed := time.Since(begin)

	failed := err != nil && (l.notFound || !errors.Is(err, gormlogger.ErrRecordNotFound))
	slow := l.slow > 0 && elapsed > l.slow
	switch {
	case failed && l.level >= gormlogger.Error:
		l.withContext(ctx).Error("Query failed", append(l.statementFields(fc, elapsed), zap.Error(err))...)
	case slow && l.level >= gormlogger.Warn:
		l.withContext(ctx).Warn("Slow query",
			append(l.statementFields(fc, elapsed), zap.Duration("threshold", l.slow))...)
	case l.level >= gormlogger.Info:
		l.withContext(ctx).Debug("Query", l.statementFields(fc, elapsed)...)
	}
}

func (l *GormLogger) statementFields(fc func() (string, int64), elapsed time.Duration) []zap.Field {
	sql, rows := fc()
	if !l.fullSQL && len(sql) > maxLoggedSQL {
		sql = sql[:maxLoggedSQL] + "..."
	}
	return []zap.Field{
		zap.String("sql", sql),
		zap.Int64("rows", rows),
		zap.Duration("elapsed", elapsed),
	}
}

func (l *GormLogger) withContext(ctx context.Context) *zap.Logger {
	if ctx == nil {
		return l.log
	}
	out := l.log
	if id := GetRequestID(ctx); id != "" {
		out = out.With(zap.String("request_id", id))
	}
	if id := GetAdminUserID(ctx); id != "" {
		out = out.With(zap.String("admin_user_id", id))
	}
	return out
}

var gormLevels = map[string]gormlogger.LogLevel{
	"silent": gormlogger.Silent,
	"error":  gormlogger.Error,
	"warn":   gormlogger.Warn,
	"info":   gormlogger.Info,
	"debug":  gormlogger.Info,
}

// MapGormLogLevel converts an application log level name; unknown names map
// to warn.
func MapGormLogLevel(level string) gormlogger.LogLevel {
	if lvl, ok := gormLevels[level]; ok {
		return lvl
	}
	return gormlogger.Warn
}
