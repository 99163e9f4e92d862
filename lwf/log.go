package lwf

import (
	"io"
	"sync/atomic"

	"github.com/sirupsen/logrus"
)

// loggerPtr stores the active logger. Accessed atomically so SetLogger can
// run from init code while another package already holds a reference.
var loggerPtr atomic.Pointer[logrus.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// newNopLogger creates a logger that discards everything.
func newNopLogger() *logrus.Logger {
	l := logrus.New()
	l.Out = io.Discard
	l.Level = logrus.PanicLevel
	return l
}

// SetLogger configures the logger used by lwf and lwftext. By default
// nothing is logged. Pass nil to restore the silent default.
//
// Levels used:
//   - Debug: renderer lifecycle, render pass summaries
//   - Warn: text renderers that could not create their surface
func SetLogger(l *logrus.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the current logger.
func Logger() *logrus.Logger {
	return loggerPtr.Load()
}
