package log

import (
	"github.com/rs/zerolog"
	"go.temporal.io/sdk/log"
)

// TemporalAdapter lets the Temporal SDK log through zerolog
type TemporalAdapter struct {
	logger zerolog.Logger
}

// NewTemporalAdapter creates a new TemporalAdapter
func NewTemporalAdapter(logger zerolog.Logger) *TemporalAdapter {
	return &TemporalAdapter{logger: logger.With().Str("component", "temporal").Logger()}
}

func (t *TemporalAdapter) Debug(msg string, keyvals ...interface{}) {
	t.logger.Debug().Fields(pairs(keyvals)).Msg(msg)
}

func (t *TemporalAdapter) Info(msg string, keyvals ...interface{}) {
	t.logger.Info().Fields(pairs(keyvals)).Msg(msg)
}

func (t *TemporalAdapter) Warn(msg string, keyvals ...interface{}) {
	t.logger.Warn().Fields(pairs(keyvals)).Msg(msg)
}

func (t *TemporalAdapter) Error(msg string, keyvals ...interface{}) {
	t.logger.Error().Fields(pairs(keyvals)).Msg(msg)
}

// With returns a new logger with the given keyvals
func (t *TemporalAdapter) With(keyvals ...interface{}) log.Logger {
	return &TemporalAdapter{logger: t.logger.With().Fields(pairs(keyvals)).Logger()}
}

// pairs pads an odd key/value list so the last key is not dropped
func pairs(keyvals []interface{}) []interface{} {
	if len(keyvals)%2 == 1 {
		return append(keyvals, "(MISSING)")
	}
	return keyvals
}

var _ log.Logger = (*TemporalAdapter)(nil)
