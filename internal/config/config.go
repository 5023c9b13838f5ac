package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Malformed-record policies for ingestion.
const (
	MalformedAbort = "abort"
	MalformedSkip  = "skip"
)

// Paths contains directory and file locations used by the pipeline.
type Paths struct {
	DataDir     string `toml:"data_dir"`
	RecordStore string `toml:"record_store"`
	ExportFile  string `toml:"export_file"`
	ImageDir    string `toml:"image_dir"`
	LogDir      string `toml:"log_dir"`
}

// Source contains configuration for acquiring the catalog archive.
type Source struct {
	ArchiveURL      string `toml:"archive_url"`
	ArchivePath     string `toml:"archive_path"`
	DownloadTimeout int    `toml:"download_timeout"`
}

// Ingest contains configuration for record-store parsing.
type Ingest struct {
	// OnMalformed selects what happens when a record unit fails to parse:
	// "abort" stops the run, "skip" logs the unit and continues.
	OnMalformed string `toml:"on_malformed"`
}

// Download contains configuration for the image download queue.
type Download struct {
	Concurrency       int    `toml:"concurrency"`
	RequestTimeout    int    `toml:"request_timeout"`
	UserAgent         string `toml:"user_agent"`
	OverwriteExisting bool   `toml:"overwrite_existing"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for steamtab.
//
// Configuration sections by subsystem:
//   - Paths: data directory, record store, export file, image directory
//   - Source: catalog archive acquisition
//   - Ingest: malformed-record policy
//   - Download: image queue concurrency and HTTP settings
//   - Logging: log format and level
type Config struct {
	Paths    Paths    `toml:"paths"`
	Source   Source   `toml:"source"`
	Ingest   Ingest   `toml:"ingest"`
	Download Download `toml:"download"`
	Logging  Logging  `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/steamtab/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and derived defaults resolved.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("steamtab.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the directories a pipeline run writes into.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.DataDir, c.Paths.LogDir, c.Paths.ImageDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// ExtractDir returns the directory the catalog archive is unpacked into.
func (c *Config) ExtractDir() string {
	return filepath.Join(c.Paths.DataDir, "steam-data")
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
