package logger

import (
	"io"
	"os"
	"time"

	"github.com/miajio/abbrev/pkg/config"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// New 按配置创建日志器
func New(cfg config.LogConfig, out io.Writer) (zerolog.Logger, error) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		return zerolog.Nop(), err
	}
	if cfg.Console {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.TimeOnly}
	}
	return zerolog.New(out).Level(level).With().Timestamp().Logger(), nil
}

// Setup 按配置设置全局日志器, 输出到标准错误
func Setup(cfg config.LogConfig) error {
	logger, err := New(cfg, os.Stderr)
	if err != nil {
		return err
	}
	log.Logger = logger
	zerolog.DefaultContextLogger = &logger
	return nil
}
