package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Cache     CacheConfig     `yaml:"cache"`
	Streaming StreamingConfig `yaml:"streaming"`
	Transcode TranscodeConfig `yaml:"transcode"`
}

type ServerConfig struct {
	HTTPPort    int `yaml:"http_port"`
	MetricsPort int `yaml:"metrics_port"`
}

type DatabaseConfig struct {
	// Driver is either "sqlite" or "pgx".
	Driver string `yaml:"driver"`
	// Path is the SQLite database file (sqlite driver only).
	Path string `yaml:"path"`
	// URL is the PostgreSQL connection URL (pgx driver only).
	URL string `yaml:"url"`
}

type CacheConfig struct {
	Path string `yaml:"path"`
	TTL  int    `yaml:"ttl"` // seconds
}

type StreamingConfig struct {
	// UpstreamTimeout bounds the metadata query, in seconds. The byte
	// fetch itself ends on client disconnect, not on a timeout.
	UpstreamTimeout int `yaml:"upstream_timeout"`
}

type TranscodeConfig struct {
	FFmpegPath       string `yaml:"ffmpeg_path"`
	KeyframeInterval int    `yaml:"keyframe_interval"`
	Profile          string `yaml:"profile"`
	VideoBitrate     string `yaml:"video_bitrate"`
	Resolution       string `yaml:"resolution"`
	FrameRate        int    `yaml:"frame_rate"`
	// Format selects the packaging: "dash" or "hls".
	Format string `yaml:"format"`
	// MaxConcurrent caps simultaneous transcode processes.
	MaxConcurrent int `yaml:"max_concurrent"`
}

// DefaultConfig returns configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:    4545,
			MetricsPort: 9545,
		},
		Database: DatabaseConfig{
			Driver: "sqlite",
			Path:   "./data/vidrelay.db",
		},
		Cache: CacheConfig{
			Path: "./data/cache",
			TTL:  1800,
		},
		Streaming: StreamingConfig{
			UpstreamTimeout: 30,
		},
		Transcode: TranscodeConfig{
			FFmpegPath:       "ffmpeg",
			KeyframeInterval: 48,
			Profile:          "main",
			VideoBitrate:     "1000k",
			Resolution:       "640x360",
			FrameRate:        30,
			Format:           "dash",
			MaxConcurrent:    2,
		},
	}
}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil // Use defaults if no config file
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Database.Driver {
	case "sqlite", "pgx":
	default:
		return fmt.Errorf("unknown database driver %q", c.Database.Driver)
	}

	switch c.Transcode.Format {
	case "dash", "hls":
	default:
		return fmt.Errorf("unknown transcode format %q", c.Transcode.Format)
	}

	if c.Transcode.MaxConcurrent < 1 {
		return fmt.Errorf("transcode max_concurrent must be at least 1, got %d", c.Transcode.MaxConcurrent)
	}

	return nil
}

// EnsureDirectories creates required directories
func (c *Config) EnsureDirectories() error {
	dirs := []string{c.Cache.Path}
	if c.Database.Driver == "sqlite" {
		dirs = append(dirs, filepath.Dir(c.Database.Path))
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	return nil
}
