package log

import "sync"

var (
	globalMu sync.RWMutex
	global   *Logger
)

// SetDefaultLogger installs the process-wide logger. The root command calls
// this once after reading the logging configuration.
func SetDefaultLogger(logger *Logger) {
	globalMu.Lock()
	defer globalMu.Unlock()
	global = logger
}

// DefaultLogger returns the process-wide logger, initializing it lazily
// with the standard defaults for code paths that run before the root
// command configures logging.
func DefaultLogger() *Logger {
	globalMu.RLock()
	if global != nil {
		defer globalMu.RUnlock()
		return global
	}
	globalMu.RUnlock()

	logger := Default().With("app", "campusctl")
	SetDefaultLogger(logger)
	return logger
}
