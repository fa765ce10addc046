package monitoring

import (
	"fmt"
	"log"
	"time"
)

// Logf is the package-level diagnostic logger. It defaults to log.Printf,
// which writes to stderr, so report lines on stdout are never interleaved
// with diagnostics. Tests can redirect or mute it with SetLogger.
var Logf func(format string, v ...interface{}) = log.Printf

// SetLogger replaces the package logger. Passing nil will set a no-op logger.
func SetLogger(f func(format string, v ...interface{})) {
	if f == nil {
		Logf = func(string, ...interface{}) {}
		return
	}
	Logf = f
}

// Timer measures the wall time of one load or compute step.
type Timer struct {
	start time.Time
	now   func() time.Time
}

// Tic starts a timer.
func Tic() Timer {
	return Timer{start: time.Now(), now: time.Now}
}

// Elapsed returns the time since Tic.
func (t Timer) Elapsed() time.Duration {
	now := t.now
	if now == nil {
		now = time.Now
	}
	return now().Sub(t.start)
}

// Toc logs the elapsed time after a formatted label, e.g.
// "loaded transfer matrix ... in 0.012s".
func (t Timer) Toc(format string, v ...interface{}) {
	Logf("%s ... in %.3fs", fmt.Sprintf(format, v...), t.Elapsed().Seconds())
}
