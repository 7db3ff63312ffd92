// Package-level structured logging, via logiface.
//
// Logging is an infrastructure cross-cutting concern shared by every
// directory and loop in the process, so a single package-level logger is
// used, configured once at startup. A nil logger is valid and disables all
// output (logiface builders no-op on a nil logger).

package eventloop

import (
	"sync"

	"github.com/joeycumines/logiface"
)

var globalLogger struct {
	sync.RWMutex
	logger *logiface.Logger[logiface.Event]
}

// SetLogger sets the package-level structured logger. It is used wherever a
// more specific logger has not been configured (see [WithLogger]), including
// by the invalidation path. Pass nil to disable.
//
// Intended to be called once, by the composition root, before any loops or
// directories are created.
func SetLogger(logger *logiface.Logger[logiface.Event]) {
	globalLogger.Lock()
	defer globalLogger.Unlock()
	globalLogger.logger = logger
}

func getLogger() *logiface.Logger[logiface.Event] {
	globalLogger.RLock()
	defer globalLogger.RUnlock()
	return globalLogger.logger
}
