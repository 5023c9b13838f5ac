package config

const (
	defaultDataDir             = "~/.local/share/steamtab"
	defaultLogDir              = "~/.local/share/steamtab/logs"
	defaultArchiveURL          = "http://s3.amazonaws.com/public-service/steam-data.tar.gz"
	defaultDownloadTimeout     = 600
	defaultOnMalformed         = MalformedAbort
	defaultConcurrency         = 1
	defaultRequestTimeout      = 60
	defaultUserAgent           = "steamtab/1.0"
	defaultLogFormat           = "console"
	defaultLogLevel            = "info"
	defaultRecordStoreFileName = "games.json"
	defaultExportFileName      = "steamstore.tsv"
	defaultImageDirName        = "images"
)

// Default returns a Config populated with repository defaults. Path fields
// left empty here are derived from the data directory during normalization.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
		},
		Source: Source{
			ArchiveURL:      defaultArchiveURL,
			DownloadTimeout: defaultDownloadTimeout,
		},
		Ingest: Ingest{
			OnMalformed: defaultOnMalformed,
		},
		Download: Download{
			Concurrency:    defaultConcurrency,
			RequestTimeout: defaultRequestTimeout,
			UserAgent:      defaultUserAgent,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
