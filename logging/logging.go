// File: logging.go
// Role: package-level logger, setup, and component child loggers.

package logging

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

var (
	mu     sync.RWMutex
	logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
)

// Logger returns the current package-level logger.
func Logger() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// SetLogger replaces the package-level logger.  Tests use this to capture
// emitted events.
func SetLogger(l zerolog.Logger) {
	mu.Lock()
	defer mu.Unlock()
	logger = l
}

// Setup configures the package-level logger: level is a zerolog level name
// ("debug", "info", "warn", ...; unknown names fall back to info), and
// console selects human-readable console rendering instead of JSON.
func Setup(level string, console bool) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	var out io.Writer = os.Stderr
	if console {
		out = zerolog.ConsoleWriter{Out: os.Stderr}
	}
	SetLogger(zerolog.New(out).Level(lvl).With().Timestamp().Logger())
}

// WithComponent returns a child of the package-level logger tagged with a
// component name.
//
//	log := logging.WithComponent("movielens")
//	log.Debug().Str("dir", path).Msg("loading from directory")
func WithComponent(name string) zerolog.Logger {
	return Logger().With().Str("component", name).Logger()
}
