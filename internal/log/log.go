package log

import (
	"io"
	"os"
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu   sync.RWMutex
	base = zap.NewNop()
)

func encoderConfig() zapcore.EncoderConfig {
	ec := zap.NewProductionEncoderConfig()
	ec.TimeKey = "ts"
	ec.MessageKey = "msg"
	ec.EncodeTime = zapcore.RFC3339TimeEncoder
	return ec
}

// Setup builds the process logger: JSON to stdout, teed to file when set.
func Setup(level, file string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}
	enc := zapcore.NewJSONEncoder(encoderConfig())
	cores := []zapcore.Core{zapcore.NewCore(enc, zapcore.Lock(os.Stdout), lvl)}
	if file != "" {
		f, err := os.OpenFile(file, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return nil, errors.Wrapf(err, "open log file %s", file)
		}
		cores = append(cores, zapcore.NewCore(enc, zapcore.AddSync(f), lvl))
	}
	l := zap.New(zapcore.NewTee(cores...))
	set(l)
	return l, nil
}

// SetForTest routes all entries to w and returns a restore func.
func SetForTest(w io.Writer) func() {
	l := zap.New(zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig()), zapcore.AddSync(w), zapcore.DebugLevel))
	mu.Lock()
	old := base
	base = l
	mu.Unlock()
	return func() { set(old) }
}

func set(l *zap.Logger) {
	mu.Lock()
	base = l
	mu.Unlock()
}

// L returns the process logger for code that has no request context.
func L() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return base
}

func write(level zapcore.Level, kind string, c *fiber.Ctx, action string, err error, fields map[string]any) {
	fs := []zap.Field{zap.String("action", action), zap.String("kind", kind)}
	if c != nil {
		fs = append(fs,
			zap.String("ip", c.IP()),
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", c.Response().StatusCode()),
		)
		if rid, ok := c.Locals("requestid").(string); ok && rid != "" {
			fs = append(fs, zap.String("req_id", rid))
		}
		if uid, ok := c.Locals("userID").(string); ok && uid != "" {
			fs = append(fs, zap.String("user_id", uid))
		}
	}
	if err != nil {
		fs = append(fs, zap.String("err", err.Error()))
	}
	if len(fields) > 0 {
		fs = append(fs, zap.Any("fields", fields))
	}
	if ce := L().Check(level, action); ce != nil {
		ce.Write(fs...)
	}
}

func Info(c *fiber.Ctx, action string, fields map[string]any) {
	write(zapcore.InfoLevel, "info", c, action, nil, fields)
}

func Audit(c *fiber.Ctx, action string, fields map[string]any) {
	write(zapcore.InfoLevel, "audit", c, action, nil, fields)
}

func Security(c *fiber.Ctx, action string, fields map[string]any) {
	write(zapcore.WarnLevel, "security", c, action, nil, fields)
}

func Error(c *fiber.Ctx, action string, err error, fields map[string]any) {
	write(zapcore.ErrorLevel, "error", c, action, err, fields)
}
