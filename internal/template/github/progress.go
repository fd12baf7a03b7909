package github

import (
	"time"

	"github.com/sddkit/sddkit/internal/template/model"
)

// Callback throttling thresholds. Reports are emitted when either the
// time or byte threshold since the last report is crossed, plus one
// final report at completion.
const (
	reportMinInterval = 100 * time.Millisecond
	reportMinBytes    = 256 * 1024
)

// progressTracker turns raw byte counts into throttled ProgressInfo
// callbacks with speed and ETA estimates.
type progressTracker struct {
	phase    model.ProgressPhase
	total    int64
	callback model.ProgressFunc

	started    time.Time
	bytes      int64
	lastReport time.Time
	lastBytes  int64
}

// newProgressTracker creates a tracker for one phase. total may be -1
// when the expected size is unknown. callback may be nil.
func newProgressTracker(phase model.ProgressPhase, total int64, callback model.ProgressFunc) *progressTracker {
	now := time.Now()
	return &progressTracker{
		phase:    phase,
		total:    total,
		callback: callback,
		started:  now,
	}
}

// Add records n transferred bytes and emits a report when a threshold
// is crossed.
func (p *progressTracker) Add(n int64) {
	p.bytes += n
	if p.callback == nil {
		return
	}
	now := time.Now()
	if now.Sub(p.lastReport) < reportMinInterval && p.bytes-p.lastBytes < reportMinBytes {
		return
	}
	p.report(now)
}

// Finish emits the final report for the phase.
func (p *progressTracker) Finish() {
	if p.callback == nil {
		return
	}
	p.report(time.Now())
}

// report builds a snapshot and invokes the callback.
func (p *progressTracker) report(now time.Time) {
	info := model.ProgressInfo{
		Phase:      p.phase,
		Bytes:      p.bytes,
		TotalBytes: p.total,
		Percent:    -1,
		ETASeconds: -1,
	}

	elapsed := now.Sub(p.started).Seconds()
	if elapsed > 0 {
		info.BytesPerSec = float64(p.bytes) / elapsed
	}
	if p.total > 0 {
		info.Percent = float64(p.bytes) / float64(p.total) * 100
		if info.BytesPerSec > 0 {
			info.ETASeconds = float64(p.total-p.bytes) / info.BytesPerSec
		}
	}

	p.callback(info)
	p.lastReport = now
	p.lastBytes = p.bytes
}

// progressWriter counts bytes through an io.Writer chain into a tracker.
type progressWriter struct {
	tracker *progressTracker
}

// Write implements io.Writer.
func (w *progressWriter) Write(b []byte) (int, error) {
	w.tracker.Add(int64(len(b)))
	return len(b), nil
}
