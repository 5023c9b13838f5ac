package config

import (
	"fmt"
	"path/filepath"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizeSource(); err != nil {
		return err
	}
	c.normalizeIngest()
	c.normalizeDownload()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}

	if strings.TrimSpace(c.Paths.RecordStore) == "" {
		c.Paths.RecordStore = filepath.Join(c.ExtractDir(), defaultRecordStoreFileName)
	}
	if c.Paths.RecordStore, err = expandPath(c.Paths.RecordStore); err != nil {
		return fmt.Errorf("paths.record_store: %w", err)
	}

	if strings.TrimSpace(c.Paths.ExportFile) == "" {
		c.Paths.ExportFile = filepath.Join(c.Paths.DataDir, defaultExportFileName)
	}
	if c.Paths.ExportFile, err = expandPath(c.Paths.ExportFile); err != nil {
		return fmt.Errorf("paths.export_file: %w", err)
	}

	if strings.TrimSpace(c.Paths.ImageDir) == "" {
		c.Paths.ImageDir = filepath.Join(c.Paths.DataDir, defaultImageDirName)
	}
	if c.Paths.ImageDir, err = expandPath(c.Paths.ImageDir); err != nil {
		return fmt.Errorf("paths.image_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeSource() error {
	c.Source.ArchiveURL = strings.TrimSpace(c.Source.ArchiveURL)
	if strings.TrimSpace(c.Source.ArchivePath) == "" {
		c.Source.ArchivePath = filepath.Join(c.Paths.DataDir, "steam-data.tar.gz")
	}
	var err error
	if c.Source.ArchivePath, err = expandPath(c.Source.ArchivePath); err != nil {
		return fmt.Errorf("source.archive_path: %w", err)
	}
	if c.Source.DownloadTimeout <= 0 {
		c.Source.DownloadTimeout = defaultDownloadTimeout
	}
	return nil
}

func (c *Config) normalizeIngest() {
	c.Ingest.OnMalformed = strings.ToLower(strings.TrimSpace(c.Ingest.OnMalformed))
	if c.Ingest.OnMalformed == "" {
		c.Ingest.OnMalformed = defaultOnMalformed
	}
}

func (c *Config) normalizeDownload() {
	if c.Download.Concurrency <= 0 {
		c.Download.Concurrency = defaultConcurrency
	}
	if c.Download.RequestTimeout <= 0 {
		c.Download.RequestTimeout = defaultRequestTimeout
	}
	if strings.TrimSpace(c.Download.UserAgent) == "" {
		c.Download.UserAgent = defaultUserAgent
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
