package dataset

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

// Fetcher downloads a dataset file from a remote URL when it is missing
// locally. Concurrent instances coordinate through an exclusive lock file so
// only one of them downloads.
type Fetcher struct {
	url      string
	path     string
	lockPath string
	log      *slog.Logger
}

// NewFetcher creates a dataset fetcher.
func NewFetcher(url, path, lockPath string, logger *slog.Logger) *Fetcher {
	return &Fetcher{
		url:      url,
		path:     path,
		lockPath: lockPath,
		log:      logger,
	}
}

// EnsureLocal makes sure the dataset file exists locally, downloading it when
// a remote URL is configured. A missing file with no URL is not an error here;
// callers degrade to their built-in fallback tables.
func (f *Fetcher) EnsureLocal(ctx context.Context) error {
	if _, err := os.Stat(f.path); err == nil {
		f.log.Debug("Dataset present locally", "path", f.path)
		return nil
	}
	if f.url == "" {
		f.log.Debug("No dataset URL configured, skipping fetch", "path", f.path)
		return nil
	}

	lockFile, err := acquireLock(f.lockPath)
	if err != nil {
		f.log.Info("Another instance is downloading, waiting", "lock_path", f.lockPath)
		return f.waitForDownload(ctx)
	}
	defer releaseLock(lockFile, f.lockPath)

	return f.download(ctx)
}

// download fetches the file to a temporary path and renames it into place so
// readers never observe a partial file.
func (f *Fetcher) download(ctx context.Context) error {
	start := time.Now()
	f.log.Info("Downloading dataset", "url", f.url, "path", f.path)

	if err := os.MkdirAll(filepath.Dir(f.path), 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return err
	}

	client := &http.Client{Timeout: 10 * time.Minute}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download failed with status: %d", resp.StatusCode)
	}

	tmpPath := f.path + ".tmp"
	file, err := os.Create(tmpPath)
	if err != nil {
		return err
	}

	written, err := io.Copy(file, resp.Body)
	file.Close()
	if err != nil {
		os.Remove(tmpPath)
		return err
	}

	if err := os.Rename(tmpPath, f.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to move dataset into place: %w", err)
	}

	f.log.Info("Download completed", "bytes", written, "duration", time.Since(start))
	return nil
}

// waitForDownload polls until another instance finishes downloading.
func (f *Fetcher) waitForDownload(ctx context.Context) error {
	ticker := time.NewTicker(2 * time.Second)
	defer ticker.Stop()

	timeout := time.After(5 * time.Minute)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timeout:
			return fmt.Errorf("timeout waiting for download by other instance")
		case <-ticker.C:
			if _, err := os.Stat(f.path); err == nil {
				f.log.Info("Dataset now available after other instance completed")
				return nil
			}
		}
	}
}

// acquireLock attempts to acquire an exclusive lock file.
func acquireLock(lockPath string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(lockPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create lock directory: %w", err)
	}

	// O_CREATE|O_EXCL fails if the file exists
	f, err := os.OpenFile(lockPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}
	return f, nil
}

func releaseLock(f *os.File, lockPath string) {
	f.Close()
	os.Remove(lockPath)
}
