package model

// ProgressPhase identifies which stage of a download a progress report
// belongs to.
type ProgressPhase string

const (
	// PhaseDownload covers the HTTP transfer of the archive.
	PhaseDownload ProgressPhase = "download"
	// PhaseExtract covers unpacking the archive to disk.
	PhaseExtract ProgressPhase = "extract"
)

// ProgressInfo is a transient snapshot of download/extraction progress.
// Emitted at a bounded rate; never persisted.
type ProgressInfo struct {
	// Phase is the current stage (download or extract).
	Phase ProgressPhase
	// Bytes is the number of bytes transferred or extracted so far.
	Bytes int64
	// TotalBytes is the expected total, or -1 when unknown.
	TotalBytes int64
	// Percent is Bytes/TotalBytes*100, or -1 when TotalBytes is unknown.
	Percent float64
	// BytesPerSec is the observed transfer speed.
	BytesPerSec float64
	// ETASeconds is the estimated remaining time, or -1 when unknown.
	ETASeconds float64
}

// ProgressFunc receives progress snapshots during download and extraction.
// Implementations must be fast; they are called on the transfer path.
type ProgressFunc func(info ProgressInfo)
