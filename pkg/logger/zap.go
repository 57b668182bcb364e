package logger

import (
	"context"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Logger interface {
	Debug(ctx context.Context, arg ...any)
	Debugf(ctx context.Context, template string, arg ...any)
	Info(ctx context.Context, arg ...any)
	Infof(ctx context.Context, template string, arg ...any)
	Warn(ctx context.Context, arg ...any)
	Warnf(ctx context.Context, template string, arg ...any)
	Error(ctx context.Context, arg ...any)
	Errorf(ctx context.Context, template string, arg ...any)
	Fatal(ctx context.Context, arg ...any)
	Fatalf(ctx context.Context, template string, arg ...any)
	// With returns a context whose log lines carry the given key/value pairs.
	With(ctx context.Context, keysAndValues ...any) context.Context
	Sync() error
}

type ZapConfig struct {
	Level    string
	Mode     string
	Encoding string
}

type zapLogger struct {
	base *zap.SugaredLogger
}

// InitializeTestZapLogger logs everything to stderr in console form.
func InitializeTestZapLogger() Logger {
	return InitializeZapLogger(ZapConfig{Level: "debug", Mode: "testing", Encoding: "console"})
}

func InitializeZapLogger(cfg ZapConfig) Logger {
	return &zapLogger{base: build(cfg)}
}

// NewNop discards everything.
func NewNop() Logger {
	return &zapLogger{base: zap.NewNop().Sugar()}
}

func build(cfg ZapConfig) *zap.SugaredLogger {
	level, ok := levels[cfg.Level]
	if !ok {
		level = zapcore.DebugLevel
	}

	production := cfg.Mode == "production"

	encCfg := zap.NewDevelopmentEncoderConfig()
	if production {
		encCfg = zap.NewProductionEncoderConfig()
	}
	encCfg.TimeKey, encCfg.LevelKey, encCfg.NameKey = "TIME", "LEVEL", "NAME"
	encCfg.CallerKey, encCfg.MessageKey = "CALLER", "MESSAGE"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	enc := zapcore.NewJSONEncoder(encCfg)
	if cfg.Encoding == "console" {
		enc = zapcore.NewConsoleEncoder(encCfg)
	}

	opts := []zap.Option{zap.AddCaller(), zap.AddCallerSkip(1)}
	if production {
		opts = append(opts, zap.AddStacktrace(zapcore.ErrorLevel))
	}

	core := zapcore.NewCore(enc, zapcore.Lock(os.Stderr), zap.NewAtomicLevelAt(level))
	return zap.New(core, opts...).Sugar()
}

var levels = map[string]zapcore.Level{
	"debug":  zapcore.DebugLevel,
	"info":   zapcore.InfoLevel,
	"warn":   zapcore.WarnLevel,
	"error":  zapcore.ErrorLevel,
	"dpanic": zapcore.DPanicLevel,
	"panic":  zapcore.PanicLevel,
	"fatal":  zapcore.FatalLevel,
}

type loggerKey struct{}

// from returns the logger stored by With, or the base logger.
func (l *zapLogger) from(ctx context.Context) *zap.SugaredLogger {
	if ctx == nil {
		panic("logger: nil context")
	}
	if scoped, ok := ctx.Value(loggerKey{}).(*zap.SugaredLogger); ok {
		return scoped
	}
	return l.base
}

func (l *zapLogger) With(ctx context.Context, keysAndValues ...any) context.Context {
	return context.WithValue(ctx, loggerKey{}, l.from(ctx).With(keysAndValues...))
}

func (l *zapLogger) Sync() error {
	return l.base.Sync()
}

func (l *zapLogger) Debug(ctx context.Context, args ...any) {
	l.from(ctx).Debug(args...)
}

func (l *zapLogger) Debugf(ctx context.Context, template string, args ...any) {
	l.from(ctx).Debugf(template, args...)
}

func (l *zapLogger) Info(ctx context.Context, args ...any) {
	l.from(ctx).Info(args...)
}

func (l *zapLogger) Infof(ctx context.Context, template string, args ...any) {
	l.from(ctx).Infof(template, args...)
}

func (l *zapLogger) Warn(ctx context.Context, args ...any) {
	l.from(ctx).Warn(args...)
}

func (l *zapLogger) Warnf(ctx context.Context, template string, args ...any) {
	l.from(ctx).Warnf(template, args...)
}

func (l *zapLogger) Error(ctx context.Context, args ...any) {
	l.from(ctx).Error(args...)
}

func (l *zapLogger) Errorf(ctx context.Context, template string, args ...any) {
	l.from(ctx).Errorf(template, args...)
}

func (l *zapLogger) Fatal(ctx context.Context, args ...any) {
	l.from(ctx).Fatal(args...)
}

func (l *zapLogger) Fatalf(ctx context.Context, template string, args ...any) {
	l.from(ctx).Fatalf(template, args...)
}
