package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server" yaml:"server"`
	Download  DownloadConfig  `mapstructure:"download" yaml:"download"`
	Engine    EngineConfig    `mapstructure:"engine" yaml:"engine"`
	Cookies   CookiesConfig   `mapstructure:"cookies" yaml:"cookies"`
	Retention RetentionConfig `mapstructure:"retention" yaml:"retention"`
	History   HistoryConfig   `mapstructure:"history" yaml:"history"`
	Log       LogConfig       `mapstructure:"log" yaml:"log"`
}

type ServerConfig struct {
	Port string `mapstructure:"port" yaml:"port"`
}

type DownloadConfig struct {
	Dir string `mapstructure:"dir" yaml:"dir"`
	// CacheDir holds per-request temp cookie files, never downloads
	CacheDir string `mapstructure:"cache_dir" yaml:"cache_dir"`
	// GraceDelay is how long after the response finishes before the output
	// file is deleted, so the final transport flush is never raced
	GraceDelay time.Duration `mapstructure:"grace_delay" yaml:"grace_delay"`
}

type EngineConfig struct {
	Binary        string        `mapstructure:"binary" yaml:"binary"`
	SocketTimeout time.Duration `mapstructure:"socket_timeout" yaml:"socket_timeout"`
}

type CookiesConfig struct {
	FilePath string `mapstructure:"file_path" yaml:"file_path"`
}

type RetentionConfig struct {
	// Enabled toggles the background sweep; some deployments keep files forever
	Enabled  bool          `mapstructure:"enabled" yaml:"enabled"`
	Interval time.Duration `mapstructure:"interval" yaml:"interval"`
	MaxAge   time.Duration `mapstructure:"max_age" yaml:"max_age"`
}

type HistoryConfig struct {
	Enabled    bool   `mapstructure:"enabled" yaml:"enabled"`
	SQLitePath string `mapstructure:"sqlite_path" yaml:"sqlite_path"`
}

type LogConfig struct {
	Path          string `mapstructure:"path" yaml:"path"`
	Level         string `mapstructure:"level" yaml:"level"`
	IncludeStdout bool   `mapstructure:"include_stdout" yaml:"include_stdout"`
}

func Load(path string) (*Config, error) {
	v := viper.New()

	// Set Defaults
	v.SetDefault("server.port", "5000")
	v.SetDefault("download.dir", "./downloads")
	v.SetDefault("download.cache_dir", "./cache")
	v.SetDefault("download.grace_delay", time.Second)
	v.SetDefault("engine.binary", "yt-dlp")
	v.SetDefault("engine.socket_timeout", 15*time.Second)
	v.SetDefault("cookies.file_path", "./cookies/cookies.txt")
	v.SetDefault("retention.enabled", true)
	v.SetDefault("retention.interval", 30*time.Minute)
	v.SetDefault("retention.max_age", time.Hour)
	v.SetDefault("history.enabled", true)
	v.SetDefault("history.sqlite_path", "./data/tubegrab.db")
	v.SetDefault("log.path", "tubegrab.log")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.include_stdout", true)

	// The config file is optional; defaults plus env vars are a full setup
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config file not found: %s", path)
		}

		v.SetConfigFile(path)
		v.SetConfigType("yaml")

		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", path, err)
		}
	}

	// Support Environment Variables
	v.SetEnvPrefix("TUBEGRAB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Server.Port == "" {
		c.Server.Port = "5000"
	}

	if c.Download.Dir == "" {
		c.Download.Dir = "./downloads"
	}

	if c.Engine.Binary == "" {
		c.Engine.Binary = "yt-dlp"
	}

	if c.Retention.Enabled {
		if c.Retention.Interval <= 0 {
			return fmt.Errorf("retention.interval must be positive, got %s", c.Retention.Interval)
		}
		if c.Retention.MaxAge <= 0 {
			return fmt.Errorf("retention.max_age must be positive, got %s", c.Retention.MaxAge)
		}
	}

	if c.History.Enabled && c.History.SQLitePath == "" {
		return fmt.Errorf("history.sqlite_path is required when history is enabled")
	}

	return nil
}
