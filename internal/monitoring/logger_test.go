package monitoring

import (
	"fmt"
	"testing"
	"time"
)

func TestSetLogger(t *testing.T) {
	orig := Logf
	t.Cleanup(func() { Logf = orig })

	var got []string
	SetLogger(func(format string, v ...interface{}) {
		got = append(got, fmt.Sprintf(format, v...))
	})
	Logf("case %s", "b2019_0z_0az_os_2ms")
	if len(got) != 1 || got[0] != "case b2019_0z_0az_os_2ms" {
		t.Fatalf("unexpected log lines: %v", got)
	}

	SetLogger(nil)
	Logf("muted")
	if len(got) != 1 {
		t.Errorf("expected muted logger to drop lines, got %v", got)
	}
}

func TestTimerToc(t *testing.T) {
	orig := Logf
	t.Cleanup(func() { Logf = orig })

	var line string
	SetLogger(func(format string, v ...interface{}) {
		line = fmt.Sprintf(format, v...)
	})

	start := time.Date(2021, 3, 1, 0, 0, 0, 0, time.UTC)
	timer := Timer{start: start, now: func() time.Time { return start.Add(1500 * time.Millisecond) }}

	if got := timer.Elapsed(); got != 1500*time.Millisecond {
		t.Errorf("expected 1.5s elapsed, got %v", got)
	}

	timer.Toc("loaded %d cases", 3)
	if line != "loaded 3 cases ... in 1.500s" {
		t.Errorf("unexpected toc line %q", line)
	}
}

func TestTicUsesWallClock(t *testing.T) {
	timer := Tic()
	if timer.Elapsed() < 0 {
		t.Error("expected non-negative elapsed time")
	}
	if noClock := (Timer{start: time.Now()}); noClock.Elapsed() < 0 {
		t.Error("expected a timer without a clock to fall back to time.Now")
	}
}
