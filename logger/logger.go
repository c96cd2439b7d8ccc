// Package logger holds the package-wide fallback loggers,
// used by components constructed without an explicit *zap.Logger.
package logger

import (
	"sync/atomic"

	"go.uber.org/zap"
)

var current atomic.Pointer[zap.Logger]

func init() { current.Store(zap.NewNop()) }

// Default returns the package-wide logger. It discards everything
// until SetDefault is called.
func Default() *zap.Logger { return current.Load() }

// SetDefault replaces the package-wide logger. A nil logger
// restores the discarding one.
func SetDefault(log *zap.Logger) {
	if log == nil {
		log = zap.NewNop()
	}
	current.Store(log)
}

// Or returns `log`, or the package-wide logger if `log` is nil.
func Or(log *zap.Logger) *zap.Logger {
	if log != nil {
		return log
	}
	return Default()
}

// Progress logs the main steps of the styling of a document.
func Progress() *zap.Logger { return Default().Named("progress") }

// Warning emits a warning for each non fatal error, like unsupported CSS
// properties or unresolved proportional values.
func Warning() *zap.Logger { return Default().Named("warning") }
