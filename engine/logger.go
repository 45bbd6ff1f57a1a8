package engine

import (
	"log/slog"

	"github.com/Carmen-Shannon/oxy-raster/common"
)

// SetLogger installs the logger used by every engine package. Passing nil silences logging.
func SetLogger(l *slog.Logger) {
	common.SetLogger(l)
}

// Logger returns the logger installed with SetLogger.
func Logger() *slog.Logger {
	return common.Logger()
}
