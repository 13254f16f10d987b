// Package progress provides hashing throughput and ETA reporting helpers.
package progress

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"golang.org/x/term"
)

// Event describes hashing status at a point in time.
type Event struct {
	Bytes      uint64
	Total      uint64
	InstantBps float64
	AverageBps float64
	ETA        time.Duration
	Elapsed    time.Duration
	Label      string
}

// Reporter emits human-readable progress updates. A zero Total means the
// input size is unknown and no ETA is shown.
type Reporter struct {
	w          io.Writer
	total      uint64
	label      string
	start      time.Time
	lastTick   time.Time
	lastBytes  uint64
	minTickGap time.Duration
	now        func() time.Time
}

// NewReporter creates a reporter with update throttling.
func NewReporter(w io.Writer, label string, total uint64) *Reporter {
	return newReporter(w, label, total, time.Now)
}

func newReporter(w io.Writer, label string, total uint64, now func() time.Time) *Reporter {
	start := now()
	return &Reporter{w: w, total: total, label: label, start: start, lastTick: start, minTickGap: 150 * time.Millisecond, now: now}
}

// IsTerminal reports whether w is an interactive terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Update prints progress at throttled intervals.
func (r *Reporter) Update(bytes uint64) {
	now := r.now()
	if now.Sub(r.lastTick) < r.minTickGap && (r.total == 0 || bytes < r.total) {
		return
	}
	e := r.buildEvent(bytes, now)
	if r.total > 0 {
		_, _ = fmt.Fprintf(r.w, "\r%s %s/%s inst:%s avg:%s eta:%s", e.Label, humanize.IBytes(e.Bytes), humanize.IBytes(e.Total), humanRate(e.InstantBps), humanRate(e.AverageBps), humanDuration(e.ETA))
	} else {
		_, _ = fmt.Fprintf(r.w, "\r%s %s inst:%s avg:%s", e.Label, humanize.IBytes(e.Bytes), humanRate(e.InstantBps), humanRate(e.AverageBps))
	}
	r.lastTick = now
	r.lastBytes = bytes
}

// Done prints final summary and ends the progress line.
func (r *Reporter) Done(bytes uint64) {
	e := r.buildEvent(bytes, r.now())
	_, _ = fmt.Fprintf(r.w, "\r%s hashed %s in %s avg:%s\n", e.Label, humanize.IBytes(e.Bytes), humanDuration(e.Elapsed), humanRate(e.AverageBps))
}

// Fail ends the progress line after an aborted read so that later
// diagnostics start on a fresh line.
func (r *Reporter) Fail(bytes uint64) {
	e := r.buildEvent(bytes, r.now())
	_, _ = fmt.Fprintf(r.w, "\r%s stopped after %s in %s\n", e.Label, humanize.IBytes(e.Bytes), humanDuration(e.Elapsed))
}

func (r *Reporter) buildEvent(bytes uint64, now time.Time) Event {
	elapsed := now.Sub(r.start)
	if elapsed <= 0 {
		elapsed = time.Millisecond
	}
	chunkDur := now.Sub(r.lastTick)
	if chunkDur <= 0 {
		chunkDur = time.Millisecond
	}
	inst := float64(bytes-r.lastBytes) / chunkDur.Seconds()
	avg := float64(bytes) / elapsed.Seconds()
	remaining := uint64(0)
	if bytes < r.total {
		remaining = r.total - bytes
	}
	eta := time.Duration(0)
	if avg > 0 && remaining > 0 {
		eta = time.Duration(float64(remaining)/avg) * time.Second
	}
	return Event{Bytes: bytes, Total: r.total, InstantBps: inst, AverageBps: avg, ETA: eta, Elapsed: elapsed, Label: r.label}
}

func humanRate(bps float64) string {
	if bps < 0 {
		bps = 0
	}
	return humanize.IBytes(uint64(bps)) + "/s"
}

func humanDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	return d.Truncate(time.Second).String()
}
