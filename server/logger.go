package server

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Log 是全局可用的 SugaredLogger；InitLogger 之前为 no-op，测试中可直接使用
var Log = zap.NewNop().Sugar()

// LogOptions 日志文件与滚动策略
type LogOptions struct {
	File       string // 日志文件路径，如 "tron.log"
	Level      string // debug / info / warn / error
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// DefaultLogOptions 10MB 每文件，保留 3 个备份，7 天
func DefaultLogOptions(file string) LogOptions {
	return LogOptions{File: file, Level: "info", MaxSizeMB: 10, MaxBackups: 3, MaxAgeDays: 7}
}

// InitLogger 初始化 zap 日志到本地文件（lumberjack 负责滚动）
func InitLogger(opts LogOptions) error {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(opts.Level)); err != nil {
		return fmt.Errorf("log level %q: %w", opts.Level, err)
	}

	lj := &lumberjack.Logger{
		Filename:   opts.File,
		MaxSize:    opts.MaxSizeMB,
		MaxBackups: opts.MaxBackups,
		MaxAge:     opts.MaxAgeDays,
	}

	encCfg := zapcore.EncoderConfig{
		TimeKey:       "ts",
		LevelKey:      "level",
		NameKey:       "logger",
		CallerKey:     "caller",
		MessageKey:    "msg",
		StacktraceKey: "stack",
		LineEnding:    zapcore.DefaultLineEnding,
		EncodeLevel:   zapcore.CapitalLevelEncoder,
		EncodeTime:    zapcore.ISO8601TimeEncoder,
		EncodeCaller:  zapcore.ShortCallerEncoder,
	}
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(lj), level)

	Log = zap.New(core, zap.AddCaller()).Sugar()
	return nil
}

// SyncLogger 清理和同步缓冲
func SyncLogger() {
	if Log != nil {
		_ = Log.Sync()
	}
}
