package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	FormatConsole = "console"
	FormatJSON    = "json"

	fileName   = "raydium.log"
	maxSizeMB  = 100
	maxBackups = 10
	maxAgeDays = 30
)

// LogOption configures New.
type LogOption struct {
	Format   string // console or json
	LogDir   string // empty logs to stdout only
	Level    string // debug / info / warn / error
	Compress bool   // gzip rotated files
}

func encoder(format string) (zapcore.Encoder, error) {
	cfg := zap.NewProductionEncoderConfig()
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder

	switch strings.ToLower(format) {
	case "", FormatConsole:
		cfg.EncodeLevel = zapcore.CapitalLevelEncoder
		return zapcore.NewConsoleEncoder(cfg), nil
	case FormatJSON:
		return zapcore.NewJSONEncoder(cfg), nil
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}
}

// New builds a logger writing to stdout and, when LogDir is set, to a rotated file in LogDir.
func New(opt LogOption) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if opt.Level != "" {
		var err error
		if level, err = zapcore.ParseLevel(opt.Level); err != nil {
			return nil, err
		}
	}

	enc, err := encoder(opt.Format)
	if err != nil {
		return nil, err
	}

	sinks := []zapcore.WriteSyncer{zapcore.Lock(os.Stdout)}
	if opt.LogDir != "" {
		if err := os.MkdirAll(opt.LogDir, 0o755); err != nil {
			return nil, fmt.Errorf("create log dir: %w", err)
		}
		sinks = append(sinks, zapcore.AddSync(&lumberjack.Logger{
			Filename:   filepath.Join(opt.LogDir, fileName),
			MaxSize:    maxSizeMB,
			MaxBackups: maxBackups,
			MaxAge:     maxAgeDays,
			Compress:   opt.Compress,
			LocalTime:  true,
		}))
	}

	core := zapcore.NewCore(enc, zapcore.NewMultiWriteSyncer(sinks...), level)
	return zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel)), nil
}

// MustNew is New that panics on a bad option.
func MustNew(opt LogOption) *zap.Logger {
	l, err := New(opt)
	if err != nil {
		panic(err)
	}
	return l
}
