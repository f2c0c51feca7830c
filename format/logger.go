package format

import (
	"sync"

	"go.uber.org/zap"
)

var (
	logger     *zap.Logger
	loggerOnce sync.Once
)

// Logger returns the format package's logger instance.
// It uses a no-op logger by default.
func Logger() *zap.Logger {
	loggerOnce.Do(func() {
		if logger == nil {
			logger = zap.NewNop()
		}
	})
	return logger
}

// SetLogger configures the format package's logger. Recoverable anomalies
// (skipped blocks, truncated runs, undersized planes) are reported here
// and nowhere else. This must be called before parsing starts.
func SetLogger(l *zap.Logger) {
	logger = l
}
