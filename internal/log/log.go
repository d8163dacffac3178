package log

import (
	"os"
	"strings"
	"sync/atomic"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Options struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	File   string // optional extra sink, appended to
}

var current atomic.Pointer[zap.Logger]

func init() { current.Store(zap.NewNop()) }

// Setup builds the process logger. Output always goes to stdout; File adds a
// second sink when it can be opened. The returned func flushes the logger and
// closes the file sink; call it once on shutdown.
func Setup(o Options) (*zap.Logger, func() error, error) {
	enc := zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "level",
		MessageKey:     "action",
		CallerKey:      "caller",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.RFC3339TimeEncoder,
		EncodeDuration: zapcore.MillisDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
	var encoder zapcore.Encoder
	if strings.EqualFold(o.Format, "console") {
		encoder = zapcore.NewConsoleEncoder(enc)
	} else {
		encoder = zapcore.NewJSONEncoder(enc)
	}

	sinks := []zapcore.WriteSyncer{zapcore.AddSync(os.Stdout)}
	var file *os.File
	if o.File != "" {
		f, err := os.OpenFile(o.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return nil, nil, err
		}
		file = f
		sinks = append(sinks, zapcore.AddSync(f))
	}

	core := zapcore.NewCore(encoder, zapcore.NewMultiWriteSyncer(sinks...), parseLevel(o.Level))
	l := zap.New(core, zap.AddStacktrace(zapcore.ErrorLevel))
	current.Store(l)

	closer := func() error {
		// stdout sync fails on terminals and pipes; only the file matters.
		_ = l.Sync()
		if file == nil {
			return nil
		}
		return file.Close()
	}
	return l, closer, nil
}

// SetLogger swaps the process logger; tests use it with zaptest/observer.
func SetLogger(l *zap.Logger) { current.Store(l) }

// L returns the process logger (a no-op logger until Setup runs).
func L() *zap.Logger { return current.Load() }

func parseLevel(s string) zapcore.Level {
	switch strings.ToLower(s) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	}
	return zapcore.InfoLevel
}

func requestFields(c *fiber.Ctx, fields map[string]any) []zap.Field {
	out := make([]zap.Field, 0, 6+len(fields))
	if c != nil {
		out = append(out,
			zap.String("ip", c.IP()),
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", c.Response().StatusCode()),
		)
		if rid, ok := c.Locals("requestid").(string); ok && rid != "" {
			out = append(out, zap.String("req_id", rid))
		}
		if sid, ok := c.Locals("sid").(string); ok && sid != "" {
			out = append(out, zap.String("sid", sid))
		}
	}
	if len(fields) > 0 {
		out = append(out, zap.Any("fields", fields))
	}
	return out
}

func Info(c *fiber.Ctx, action string, fields map[string]any) {
	L().Info(action, requestFields(c, fields)...)
}

// Audit records a state change made on behalf of a session.
func Audit(c *fiber.Ctx, action string, fields map[string]any) {
	L().Info(action, append(requestFields(c, fields), zap.Bool("audit", true))...)
}

func Security(c *fiber.Ctx, action string, fields map[string]any) {
	L().Warn(action, requestFields(c, fields)...)
}

func Error(c *fiber.Ctx, action string, err error, fields map[string]any) {
	L().Error(action, append(requestFields(c, fields), zap.Error(err))...)
}
