package badger

import (
	"fmt"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// zeroLogger 将badger日志输出到zerolog
type zeroLogger struct {
	logger zerolog.Logger
}

var _ badger.Logger = (*zeroLogger)(nil)

func newLogger() *zeroLogger {
	return &zeroLogger{logger: log.With().Str("component", "badger").Logger()}
}

func (l *zeroLogger) Errorf(format string, args ...interface{}) {
	l.logger.Error().Msg(message(format, args))
}

func (l *zeroLogger) Warningf(format string, args ...interface{}) {
	l.logger.Warn().Msg(message(format, args))
}

func (l *zeroLogger) Infof(format string, args ...interface{}) {
	l.logger.Debug().Msg(message(format, args))
}

func (l *zeroLogger) Debugf(format string, args ...interface{}) {
	l.logger.Trace().Msg(message(format, args))
}

func message(format string, args []interface{}) string {
	return strings.TrimSpace(fmt.Sprintf(format, args...))
}
