package archive

import (
	"archive/tar"
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"steamtab/internal/fileutil"
	"steamtab/internal/logging"
)

// HTTPDoer describes the HTTP client used for the archive download.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Options configures one fetch.
type Options struct {
	URL         string
	ArchivePath string
	ExtractDir  string
	Timeout     time.Duration
	Client      HTTPDoer
	Logger      *slog.Logger
}

// Fetch acquires the catalog archive and unpacks it. Both steps are
// skip-if-present: an archive already on disk is not re-downloaded, and an
// existing extraction directory is left untouched.
func Fetch(ctx context.Context, opts Options) error {
	logger := logging.NewComponentLogger(opts.Logger, "fetch")
	client := opts.Client
	if client == nil {
		client = &http.Client{Timeout: opts.Timeout}
	}

	if fileutil.Exists(opts.ArchivePath) {
		logger.Info("archive already downloaded", logging.String("path", opts.ArchivePath))
	} else {
		if opts.URL == "" {
			return errors.New("no archive URL configured")
		}
		logger.Info("downloading catalog archive",
			logging.String("url", opts.URL),
			logging.String("path", opts.ArchivePath),
		)
		if err := download(ctx, client, opts.URL, opts.ArchivePath); err != nil {
			return err
		}
		logger.Info("archive download complete")
	}

	if fileutil.Exists(opts.ExtractDir) {
		logger.Info("archive already extracted", logging.String("dir", opts.ExtractDir))
		return nil
	}
	logger.Info("extracting catalog archive", logging.String("dir", opts.ExtractDir))
	if err := Extract(opts.ArchivePath, opts.ExtractDir); err != nil {
		return err
	}
	logger.Info("archive extraction complete")
	return nil
}

// download streams url into dest, removing the partial file on failure.
func download(ctx context.Context, client HTTPDoer, url, dest string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("build archive request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("download archive: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("download archive: unexpected status %d", resp.StatusCode)
	}

	if err := fileutil.EnsureDir(filepath.Dir(dest)); err != nil {
		return err
	}
	file, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("create archive file: %w", err)
	}

	_, copyErr := io.Copy(file, resp.Body)
	closeErr := file.Close()
	if copyErr != nil || closeErr != nil {
		_ = os.Remove(dest)
		if copyErr != nil {
			return fmt.Errorf("write archive: %w", copyErr)
		}
		return fmt.Errorf("close archive file: %w", closeErr)
	}
	return nil
}

// Extract unpacks a tar.gz archive into dir. Entry names are confined to
// dir; entries that would escape it are rejected.
func Extract(archivePath, dir string) error {
	file, err := os.Open(archivePath)
	if err != nil {
		return fmt.Errorf("open archive: %w", err)
	}
	defer file.Close()

	gz, err := gzip.NewReader(file)
	if err != nil {
		return fmt.Errorf("read gzip: %w", err)
	}
	defer gz.Close()

	if err := fileutil.EnsureDir(dir); err != nil {
		return err
	}

	reader := tar.NewReader(gz)
	for {
		header, err := reader.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read tar: %w", err)
		}

		target, err := securePath(dir, header.Name)
		if err != nil {
			return err
		}

		switch header.Typeflag {
		case tar.TypeDir:
			if err := fileutil.EnsureDir(target); err != nil {
				return err
			}
		case tar.TypeReg:
			if err := extractFile(reader, target, header.Mode); err != nil {
				return err
			}
		default:
			// Symlinks and special entries are not expected in the catalog
			// archive; skip rather than fail.
		}
	}
}

func extractFile(reader io.Reader, target string, mode int64) error {
	if err := fileutil.EnsureDir(filepath.Dir(target)); err != nil {
		return err
	}
	file, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, os.FileMode(mode)&0o777)
	if err != nil {
		return fmt.Errorf("create %s: %w", target, err)
	}
	_, copyErr := io.Copy(file, reader)
	closeErr := file.Close()
	if copyErr != nil {
		_ = os.Remove(target)
		return fmt.Errorf("extract %s: %w", target, copyErr)
	}
	if closeErr != nil {
		_ = os.Remove(target)
		return fmt.Errorf("close %s: %w", target, closeErr)
	}
	return nil
}

func securePath(dir, name string) (string, error) {
	target := filepath.Join(dir, filepath.Clean("/"+name))
	rel, err := filepath.Rel(dir, target)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("archive entry %q escapes extraction dir", name)
	}
	return target, nil
}
