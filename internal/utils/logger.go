// utils/logger.go
package utils

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/misinform-app/articles/internal/config"
)

// Zlog is the process logger. It is a no-op until InitLogger runs.
var Zlog = zap.NewNop()

func InitLogger(cfg *config.Config) func() {
	logLevel := cfg.LogLevel
	if logLevel == "" {
		logLevel = "info"
	}

	var lvl zapcore.Level
	if err := lvl.Set(logLevel); err != nil {
		lvl = zapcore.InfoLevel
	}
	if cfg.Debug {
		lvl = zapcore.DebugLevel
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "timestamp"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder

	stdoutCore := zapcore.NewCore(
		zapcore.NewJSONEncoder(encCfg),
		zapcore.AddSync(os.Stdout),
		lvl,
	)

	Zlog = zap.New(stdoutCore, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel)).
		With(zap.String("service", cfg.ServiceName))

	RouteLogrus()

	return func() { _ = Zlog.Sync() }
}

var routeLogrusOnce sync.Once

// RouteLogrus sends the standard logrus logger, which the template engine
// writes to, through Zlog instead of stderr.
func RouteLogrus() {
	routeLogrusOnce.Do(func() {
		std := logrus.StandardLogger()
		std.SetOutput(io.Discard)
		std.AddHook(zapHook{})
	})
}

type zapHook struct{}

func (zapHook) Levels() []logrus.Level { return logrus.AllLevels }

// Fire reads Zlog on every entry so a logger installed later still receives it.
func (zapHook) Fire(e *logrus.Entry) error {
	fields := make([]zap.Field, 0, len(e.Data)+1)
	fields = append(fields, zap.String("logger", "logrus"))
	for k, v := range e.Data {
		fields = append(fields, zap.Any(k, v))
	}

	msg := strings.TrimSpace(e.Message)
	switch e.Level {
	case logrus.TraceLevel, logrus.DebugLevel:
		Zlog.Debug(msg, fields...)
	case logrus.InfoLevel:
		Zlog.Info(msg, fields...)
	case logrus.WarnLevel:
		Zlog.Warn(msg, fields...)
	default:
		// Fatal and panic stay with logrus; zap only records them.
		Zlog.Error(msg, fields...)
	}
	return nil
}
