package domain

import "time"

// Config represents the application configuration
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Library  LibraryConfig  `mapstructure:"library"`
	Database DatabaseConfig `mapstructure:"database"`
	Search   SearchConfig   `mapstructure:"search"`
	YTDLP    YTDLPConfig    `mapstructure:"ytdlp"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// ServerConfig contains server-related configuration
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// LibraryConfig contains the initial path settings. Both paths are mutable
// at runtime through the config endpoint.
type LibraryConfig struct {
	BooksDir    string `mapstructure:"books_dir"`
	DownloadDir string `mapstructure:"download_dir"`
}

// DatabaseConfig contains the history store configuration
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// SearchConfig contains search provider configuration
type SearchConfig struct {
	MaxResults int           `mapstructure:"max_results"`
	CacheTTL   time.Duration `mapstructure:"cache_ttl"`
}

// YTDLPConfig contains the download/transcode tool configuration
type YTDLPConfig struct {
	Binary string `mapstructure:"binary"`
}

// LoggingConfig contains logging-related configuration
type LoggingConfig struct {
	Level      string `mapstructure:"level"`       // debug, info, warn, error
	Format     string `mapstructure:"format"`      // json, console
	OutputPath string `mapstructure:"output_path"` // stdout, stderr, or file path
	MaxSizeMB  int    `mapstructure:"max_size_mb"` // rotation threshold for file output
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	Compress   bool   `mapstructure:"compress"`
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Library: LibraryConfig{
			BooksDir:    "./books",
			DownloadDir: "./downloads",
		},
		Database: DatabaseConfig{
			Path: "./history.db",
		},
		Search: SearchConfig{
			MaxResults: 10,
			CacheTTL:   10 * time.Minute,
		},
		YTDLP: YTDLPConfig{
			Binary: "yt-dlp",
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "console",
			OutputPath: "stdout",
			MaxSizeMB:  100,
			MaxBackups: 3,
			MaxAgeDays: 28,
			Compress:   true,
		},
	}
}
