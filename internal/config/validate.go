package config

import (
	"errors"
	"fmt"
	"net/url"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateSource(); err != nil {
		return err
	}
	if err := c.validateIngest(); err != nil {
		return err
	}
	if err := c.validateDownload(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validatePaths() error {
	if c.Paths.DataDir == "" {
		return errors.New("paths.data_dir must be set")
	}
	if c.Paths.RecordStore == "" {
		return errors.New("paths.record_store must be set")
	}
	return nil
}

func (c *Config) validateSource() error {
	if c.Source.ArchiveURL == "" {
		return nil
	}
	parsed, err := url.Parse(c.Source.ArchiveURL)
	if err != nil {
		return fmt.Errorf("source.archive_url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("source.archive_url: unsupported scheme %q", parsed.Scheme)
	}
	return nil
}

func (c *Config) validateIngest() error {
	switch c.Ingest.OnMalformed {
	case MalformedAbort, MalformedSkip:
		return nil
	default:
		return fmt.Errorf("ingest.on_malformed must be %q or %q, got %q",
			MalformedAbort, MalformedSkip, c.Ingest.OnMalformed)
	}
}

func (c *Config) validateDownload() error {
	if c.Download.Concurrency < 1 {
		return errors.New("download.concurrency must be at least 1")
	}
	if c.Download.RequestTimeout < 1 {
		return errors.New("download.request_timeout must be at least 1 second")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be \"console\" or \"json\", got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
		return nil
	default:
		return fmt.Errorf("logging.level: unknown level %q", c.Logging.Level)
	}
}
