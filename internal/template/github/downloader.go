// Package github fetches a template subfolder of a GitHub repository as
// a validated, extracted local directory. One Downloader call owns one
// download+extract operation; nothing is shared across calls.
package github

import (
	"archive/tar"
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/sddkit/sddkit/internal/debug"
	"github.com/sddkit/sddkit/internal/template/model"
)

const (
	// requestTimeout covers connect plus read for the archive request.
	requestTimeout = 30 * time.Second

	// defaultArchiveBaseURL is the HTTPS endpoint archives are fetched
	// from. There is no plaintext fallback.
	defaultArchiveBaseURL = "https://github.com"
)

// Downloader fetches and extracts GitHub repository archives.
type Downloader struct {
	// HTTPClient is the HTTP client for archive requests.
	HTTPClient *http.Client
	// Token is the optional GitHub personal access token for private repos.
	Token string
	// ArchiveBaseURL overrides the archive endpoint. Tests only; the
	// default is the HTTPS GitHub endpoint.
	ArchiveBaseURL string
}

// NewDownloader creates a downloader with the default 30s timeout.
func NewDownloader() *Downloader {
	return &Downloader{
		HTTPClient: &http.Client{
			Timeout: requestTimeout,
		},
	}
}

// NewDownloaderWithToken creates a downloader that authenticates with a
// GitHub personal access token.
func NewDownloaderWithToken(token string) *Downloader {
	d := NewDownloader()
	d.Token = token
	return d
}

// DownloadTemplates downloads the repository archive for ref, extracts it
// into destDir, and returns the path of the template subfolder inside the
// extracted tree. progressFn (may be nil) receives throttled progress
// snapshots for the download and extract phases. The temporary archive
// file is removed on every exit path.
func (d *Downloader) DownloadTemplates(ctx context.Context, ref model.RepoRef, destDir string, progressFn model.ProgressFunc) (string, error) {
	archiveURL := d.archiveURL(ref)
	debug.DebugSection("[github] download templates")
	debug.DebugValue("[github] archive URL", archiveURL)
	debug.DebugValue("[github] dest dir", destDir)

	archivePath, err := d.downloadArchive(ctx, archiveURL, progressFn)
	if err != nil {
		return "", err
	}
	defer os.Remove(archivePath)

	if err := verifyArchive(archivePath, archiveURL); err != nil {
		return "", err
	}

	if err := d.extractArchive(archivePath, archiveURL, destDir, progressFn); err != nil {
		return "", err
	}

	extracted, err := validateTemplates(destDir, ref.Subfolder, archiveURL)
	if err != nil {
		return "", err
	}

	debug.DebugValue("[github] extracted path", extracted)
	return extracted, nil
}

// archiveURL builds the tarball URL for a repository ref.
// Format: <base>/owner/repo/archive/<ref>.tar.gz
func (d *Downloader) archiveURL(ref model.RepoRef) string {
	base := d.ArchiveBaseURL
	if base == "" {
		base = defaultArchiveBaseURL
	}
	gitRef := ref.Ref
	if gitRef == "" {
		gitRef = "main"
	}
	return fmt.Sprintf("%s/%s/%s/archive/%s.tar.gz", base, ref.Owner, ref.Repo, gitRef)
}

// downloadArchive streams the archive to a temporary file, reporting
// progress at a bounded cadence. Returns the temp file path.
func (d *Downloader) downloadArchive(ctx context.Context, archiveURL string, progressFn model.ProgressFunc) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, archiveURL, nil)
	if err != nil {
		return "", NewNetworkError(archiveURL, err)
	}
	if d.Token != "" {
		req.Header.Set("Authorization", "token "+d.Token)
	}

	resp, err := d.HTTPClient.Do(req)
	if err != nil {
		return "", classifyTransportError(archiveURL, err)
	}
	defer resp.Body.Close()

	if err := checkResponseStatus(archiveURL, resp); err != nil {
		return "", err
	}

	tmpFile, err := os.CreateTemp("", "sddkit-archive-*.tar.gz")
	if err != nil {
		return "", NewNetworkError(archiveURL, fmt.Errorf("failed to create temp file: %w", err))
	}
	defer tmpFile.Close()

	total := resp.ContentLength // -1 when the server does not announce it
	tracker := newProgressTracker(model.PhaseDownload, total, progressFn)

	if _, err := io.Copy(io.MultiWriter(tmpFile, &progressWriter{tracker}), resp.Body); err != nil {
		os.Remove(tmpFile.Name())
		return "", classifyTransportError(archiveURL, err)
	}
	tracker.Finish()

	return tmpFile.Name(), nil
}

// checkResponseStatus maps non-success HTTP statuses onto the error
// taxonomy: 404 is a missing repo/ref, 403 with exhausted rate-limit
// headers is a rate limit, everything else non-2xx is an API error.
func checkResponseStatus(archiveURL string, resp *http.Response) error {
	switch {
	case resp.StatusCode == http.StatusOK:
		return nil
	case resp.StatusCode == http.StatusNotFound:
		return NewAPIError(archiveURL, resp.StatusCode, "repository or ref not found")
	case resp.StatusCode == http.StatusForbidden && resp.Header.Get("X-RateLimit-Remaining") == "0":
		return NewRateLimitError(archiveURL, rateLimitDelay(resp))
	default:
		return NewAPIError(archiveURL, resp.StatusCode,
			fmt.Sprintf("unexpected status code: %d", resp.StatusCode))
	}
}

// rateLimitDelay computes how long to wait from the rate-limit headers.
func rateLimitDelay(resp *http.Response) time.Duration {
	if retryAfter := resp.Header.Get("Retry-After"); retryAfter != "" {
		if secs, err := strconv.Atoi(retryAfter); err == nil && secs > 0 {
			return time.Duration(secs) * time.Second
		}
	}
	if reset := resp.Header.Get("X-RateLimit-Reset"); reset != "" {
		if unix, err := strconv.ParseInt(reset, 10, 64); err == nil {
			if delay := time.Until(time.Unix(unix, 0)); delay > 0 {
				return delay
			}
		}
	}
	return time.Minute
}

// classifyTransportError distinguishes timeouts from other connection
// failures.
func classifyTransportError(archiveURL string, err error) *DownloadError {
	if errors.Is(err, context.DeadlineExceeded) {
		return NewTimeoutError(archiveURL, err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return NewTimeoutError(archiveURL, err)
	}
	return NewNetworkError(archiveURL, err)
}

// verifyArchive walks the whole gzip/tar stream before extraction to
// confirm the archive is well-formed and non-empty. A corrupt or empty
// archive fails here, before anything is written to the destination.
func verifyArchive(archivePath, archiveURL string) error {
	info, err := os.Stat(archivePath)
	if err != nil {
		return NewValidationError(archiveURL, "validate", "downloaded archive is missing", err)
	}
	if info.Size() == 0 {
		return NewValidationError(archiveURL, "validate", "downloaded archive is empty", nil)
	}

	file, err := os.Open(archivePath)
	if err != nil {
		return NewValidationError(archiveURL, "validate", "failed to open downloaded archive", err)
	}
	defer file.Close()

	gzr, err := gzip.NewReader(file)
	if err != nil {
		return NewValidationError(archiveURL, "validate", "downloaded archive is not valid gzip", err)
	}
	defer gzr.Close()

	tr := tar.NewReader(gzr)
	entries := 0
	for {
		_, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return NewValidationError(archiveURL, "validate", "downloaded archive is corrupt", err)
		}
		if _, err := io.Copy(io.Discard, tr); err != nil {
			return NewValidationError(archiveURL, "validate", "downloaded archive is corrupt", err)
		}
		entries++
	}
	if entries == 0 {
		return NewValidationError(archiveURL, "validate", "downloaded archive contains no entries", nil)
	}

	return nil
}

// extractArchive unpacks the tar.gz into destDir, stripping the
// "repo-ref/" root directory GitHub archives carry. Every entry path is
// normalized and containment-checked against destDir before any write;
// an escaping entry fails the whole operation. Files are streamed with
// a bounded copy buffer, never loaded whole into memory.
func (d *Downloader) extractArchive(archivePath, archiveURL, destDir string, progressFn model.ProgressFunc) error {
	file, err := os.Open(archivePath)
	if err != nil {
		return NewValidationError(archiveURL, "extract", "failed to open downloaded archive", err)
	}
	defer file.Close()

	gzr, err := gzip.NewReader(file)
	if err != nil {
		return NewValidationError(archiveURL, "extract", "downloaded archive is not valid gzip", err)
	}
	defer gzr.Close()

	// Extracted size is unknown up front; report with total -1.
	tracker := newProgressTracker(model.PhaseExtract, -1, progressFn)

	tr := tar.NewReader(gzr)
	for {
		header, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return NewValidationError(archiveURL, "extract", "failed to read archive entry", err)
		}

		// GitHub archives wrap everything in a "repo-ref/" root directory.
		parts := strings.SplitN(header.Name, "/", 2)
		if len(parts) < 2 || parts[1] == "" {
			continue
		}
		relPath := parts[1]

		target, err := safeTarget(destDir, relPath)
		if err != nil {
			return NewValidationError(archiveURL, "extract",
				fmt.Sprintf("archive entry '%s' escapes the destination directory", header.Name), err)
		}

		switch header.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, 0o755); err != nil {
				return NewValidationError(archiveURL, "extract",
					fmt.Sprintf("failed to create directory '%s'", relPath), err)
			}
		case tar.TypeReg:
			if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
				return NewValidationError(archiveURL, "extract",
					fmt.Sprintf("failed to create parent directory for '%s'", relPath), err)
			}
			if err := writeEntry(target, tr, header.FileInfo().Mode(), tracker); err != nil {
				return NewValidationError(archiveURL, "extract",
					fmt.Sprintf("failed to write file '%s'", relPath), err)
			}
		default:
			// Symlinks, devices and other special entries are never
			// extracted; they have no place in a template set and a
			// symlink can point outside the destination.
			debug.Debug("[github] skipping non-regular archive entry: %s", header.Name)
		}
	}
	tracker.Finish()

	return nil
}

// safeTarget joins relPath onto destDir and rejects any result outside
// destDir once ".." segments are resolved.
func safeTarget(destDir, relPath string) (string, error) {
	if filepath.IsAbs(relPath) {
		return "", fmt.Errorf("absolute path in archive entry")
	}
	clean := filepath.Clean(filepath.FromSlash(relPath))
	if clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("path traversal in archive entry")
	}

	target := filepath.Join(destDir, clean)
	base := filepath.Clean(destDir)
	if target != base && !strings.HasPrefix(target, base+string(filepath.Separator)) {
		return "", fmt.Errorf("resolved path lies outside destination")
	}
	return target, nil
}

// writeEntry streams one tar entry to disk with a bounded buffer.
func writeEntry(target string, r io.Reader, mode os.FileMode, tracker *progressTracker) error {
	out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode.Perm())
	if err != nil {
		return err
	}

	buf := make([]byte, 32*1024)
	for {
		n, readErr := r.Read(buf)
		if n > 0 {
			if _, writeErr := out.Write(buf[:n]); writeErr != nil {
				out.Close()
				return writeErr
			}
			tracker.Add(int64(n))
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			out.Close()
			return readErr
		}
	}

	return out.Close()
}

// validateTemplates checks the extracted template structure: the target
// subfolder must exist, contain at least one file, and contain no
// zero-byte files masquerading as templates. Returns the template root.
func validateTemplates(destDir, subfolder, archiveURL string) (string, error) {
	root := destDir
	if subfolder != "" {
		root = filepath.Join(destDir, filepath.FromSlash(subfolder))
		if info, err := os.Stat(root); err != nil || !info.IsDir() {
			return "", NewValidationError(archiveURL, "validate",
				fmt.Sprintf("template subfolder '%s' not found in archive", subfolder), err)
		}
	}

	fileCount := 0
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		if info.Size() == 0 {
			rel, relErr := filepath.Rel(root, path)
			if relErr != nil {
				rel = path
			}
			return fmt.Errorf("template file '%s' is empty", rel)
		}
		fileCount++
		return nil
	})
	if err != nil {
		return "", NewValidationError(archiveURL, "validate", err.Error(), nil)
	}
	if fileCount == 0 {
		target := subfolder
		if target == "" {
			target = "."
		}
		return "", NewValidationError(archiveURL, "validate",
			fmt.Sprintf("template subfolder '%s' contains no files", target), nil)
	}

	return root, nil
}
