package profiler

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
	"time"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time {
	return c.t
}

func (c *fakeClock) advance(d time.Duration) {
	c.t = c.t.Add(d)
}

func TestFrameTimer(t *testing.T) {
	clock := &fakeClock{t: time.Unix(0, 0)}
	timer := NewFrameTimer(clock.now)

	clock.advance(16 * time.Millisecond)
	if d := timer.Mark(); d != 16*time.Millisecond {
		t.Errorf("first Mark = %v, want 16ms", d)
	}
	clock.advance(33*time.Millisecond + 400*time.Microsecond)
	timer.Mark()
	if ms := timer.Milliseconds(); ms != 33 {
		t.Errorf("Milliseconds = %d, want 33", ms)
	}
	if got := timer.Label(); got != "Frametime: 33ms" {
		t.Errorf("Label = %q", got)
	}
	if timer.Delta() != 33*time.Millisecond+400*time.Microsecond {
		t.Errorf("Delta = %v", timer.Delta())
	}
}

func TestFrameTimerNilClock(t *testing.T) {
	timer := NewFrameTimer(nil)
	if d := timer.Mark(); d < 0 {
		t.Errorf("Mark = %v, want non-negative", d)
	}
}

func TestProfilerLogsOncePerInterval(t *testing.T) {
	var buf bytes.Buffer
	clock := &fakeClock{t: time.Unix(0, 0)}
	p := NewProfiler(
		WithLogger(slog.New(slog.NewTextHandler(&buf, nil))),
		WithClock(clock.now),
		WithUpdateInterval(time.Second),
	)

	for range 59 {
		clock.advance(10 * time.Millisecond)
		if p.Tick() {
			t.Fatal("logged before the interval elapsed")
		}
	}
	clock.advance(410 * time.Millisecond)
	if !p.Tick() {
		t.Fatal("expected a log line after one second")
	}

	out := buf.String()
	if !strings.Contains(out, "fps=60.00") {
		t.Errorf("log line %q does not report 60 fps", out)
	}
	if strings.Count(out, "\n") != 1 {
		t.Errorf("expected one log line, got %q", out)
	}
}

func TestWithUpdateIntervalIgnoresNonPositive(t *testing.T) {
	p := NewProfiler(WithUpdateInterval(0))
	if p.updateInterval != time.Second {
		t.Errorf("updateInterval = %v, want 1s", p.updateInterval)
	}
}
