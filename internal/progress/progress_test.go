package progress

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func TestReporterThrottlesAndSummarizes(t *testing.T) {
	var buf bytes.Buffer
	clock := &fakeClock{t: time.Unix(1700000000, 0)}
	r := newReporter(&buf, "in.bin", 4096, clock.now)

	clock.t = clock.t.Add(200 * time.Millisecond)
	r.Update(1024)
	if !strings.Contains(buf.String(), "in.bin 1.0 KiB/4.0 KiB") {
		t.Fatalf("expected first update to print, got %q", buf.String())
	}

	printed := buf.Len()
	clock.t = clock.t.Add(50 * time.Millisecond)
	r.Update(2048)
	if buf.Len() != printed {
		t.Fatalf("expected throttled update to print nothing, got %q", buf.String()[printed:])
	}

	clock.t = clock.t.Add(1750 * time.Millisecond)
	r.Done(4096)
	if !strings.HasSuffix(buf.String(), "in.bin hashed 4.0 KiB in 2s avg:2.0 KiB/s\n") {
		t.Fatalf("unexpected summary %q", buf.String())
	}
}

func TestReporterFailEndsLine(t *testing.T) {
	var buf bytes.Buffer
	clock := &fakeClock{t: time.Unix(1700000000, 0)}
	r := newReporter(&buf, "in.bin", 4096, clock.now)

	clock.t = clock.t.Add(time.Second)
	r.Update(1024)
	clock.t = clock.t.Add(2 * time.Second)
	r.Fail(2048)
	if !strings.HasSuffix(buf.String(), "\rin.bin stopped after 2.0 KiB in 3s\n") {
		t.Fatalf("unexpected failure line %q", buf.String())
	}
}

func TestReporterUnknownTotalOmitsETA(t *testing.T) {
	var buf bytes.Buffer
	clock := &fakeClock{t: time.Unix(1700000000, 0)}
	r := newReporter(&buf, "-", 0, clock.now)
	clock.t = clock.t.Add(time.Second)
	r.Update(1 << 20)
	if strings.Contains(buf.String(), "eta:") || !strings.Contains(buf.String(), "- 1.0 MiB") {
		t.Fatalf("unexpected unknown-size output %q", buf.String())
	}
}

func TestIsTerminalFalseForBuffers(t *testing.T) {
	if IsTerminal(&bytes.Buffer{}) {
		t.Fatal("a buffer is never a terminal")
	}
}
