package testlog

import (
	"testing"

	"github.com/danmuck/cotyledon/internal/logging"
	"github.com/rs/zerolog/log"
)

func Start(t *testing.T) {
	t.Helper()
	logging.ConfigureTests()
	log.Info().Str("test", t.Name()).Msg("start")
}

// Logf records a test narration line at debug level.
func Logf(format string, args ...any) {
	log.Debug().Msgf(format, args...)
}
