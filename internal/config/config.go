// Package config loads the kyuko API configuration.
//
// Configuration hierarchy, highest priority first: CLI flags, environment
// variables (KYUKO_*), a YAML config file, built-in defaults. The file is
// optional; an explicit --config path that does not exist is an error,
// while the default search locations are allowed to be empty.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/fukayatti/api.fukayatti0.dev/internal/scraper"
)

// Config is the full service configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" yaml:"server"`
	Upstream UpstreamConfig `mapstructure:"upstream" yaml:"upstream"`
	Watch    WatchConfig    `mapstructure:"watch" yaml:"watch"`
	Notify   NotifyConfig   `mapstructure:"notify" yaml:"notify"`
}

// ServerConfig controls the HTTP API.
type ServerConfig struct {
	Addr     string `mapstructure:"addr" yaml:"addr"`
	LogLevel string `mapstructure:"log_level" yaml:"log_level"`

	// FetchTimeout bounds one upstream fetch issued on behalf of an API
	// request, including the politeness wait.
	FetchTimeout time.Duration `mapstructure:"fetch_timeout" yaml:"fetch_timeout"`

	// CORSOrigins is the comma-separated allow list handed to the CORS
	// middleware. "*" serves browsers from any origin.
	CORSOrigins string `mapstructure:"cors_origins" yaml:"cors_origins"`
}

// UpstreamConfig controls the bulletin scraper.
type UpstreamConfig struct {
	URL            string        `mapstructure:"url" yaml:"url"`
	UserAgent      string        `mapstructure:"user_agent" yaml:"user_agent"`
	Timeout        time.Duration `mapstructure:"timeout" yaml:"timeout"`
	MaxBodyBytes   int64         `mapstructure:"max_body_bytes" yaml:"max_body_bytes"`
	RequestsPerSec float64       `mapstructure:"requests_per_sec" yaml:"requests_per_sec"`
}

// WatchConfig controls the watch loop that polls the bulletin and pushes
// notifications for new records.
type WatchConfig struct {
	Interval time.Duration `mapstructure:"interval" yaml:"interval"`
	DataDir  string        `mapstructure:"data_dir" yaml:"data_dir"`
}

// NotifyConfig selects the notification channel used by the watch loop.
// Credentials are taken from channel-specific environment variables, never
// from the config file.
type NotifyConfig struct {
	Channel        string `mapstructure:"channel" yaml:"channel"`
	TelegramChatID string `mapstructure:"telegram_chat_id" yaml:"telegram_chat_id"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:         ":8080",
			LogLevel:     "info",
			FetchTimeout: 35 * time.Second,
			CORSOrigins:  "*",
		},
		Upstream: UpstreamConfig{
			URL:            scraper.DefaultBulletinURL,
			UserAgent:      scraper.DefaultUserAgent,
			Timeout:        scraper.DefaultTimeout,
			MaxBodyBytes:   scraper.DefaultMaxBodyBytes,
			RequestsPerSec: scraper.DefaultRequestsPerSec,
		},
		Watch: WatchConfig{
			Interval: 10 * time.Minute,
			DataDir:  "data",
		},
		Notify: NotifyConfig{
			Channel: "dryrun",
		},
	}
}

// Load resolves the configuration from defaults, an optional YAML file and
// KYUKO_* environment variables. path selects an explicit config file;
// when empty, ~/.kyuko-api/config.yaml and /etc/kyuko-api/config.yaml are
// tried in that order.
func Load(path string) (Config, error) {
	v := viper.New()

	setDefaults(v, Default())

	if path != "" {
		v.SetConfigFile(path)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".kyuko-api"))
		}
		v.AddConfigPath("/etc/kyuko-api")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("KYUKO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// setDefaults registers every key with viper so that environment overrides
// resolve even without a config file.
func setDefaults(v *viper.Viper, cfg Config) {
	v.SetDefault("server.addr", cfg.Server.Addr)
	v.SetDefault("server.log_level", cfg.Server.LogLevel)
	v.SetDefault("server.fetch_timeout", cfg.Server.FetchTimeout)
	v.SetDefault("server.cors_origins", cfg.Server.CORSOrigins)
	v.SetDefault("upstream.url", cfg.Upstream.URL)
	v.SetDefault("upstream.user_agent", cfg.Upstream.UserAgent)
	v.SetDefault("upstream.timeout", cfg.Upstream.Timeout)
	v.SetDefault("upstream.max_body_bytes", cfg.Upstream.MaxBodyBytes)
	v.SetDefault("upstream.requests_per_sec", cfg.Upstream.RequestsPerSec)
	v.SetDefault("watch.interval", cfg.Watch.Interval)
	v.SetDefault("watch.data_dir", cfg.Watch.DataDir)
	v.SetDefault("notify.channel", cfg.Notify.Channel)
	v.SetDefault("notify.telegram_chat_id", cfg.Notify.TelegramChatID)
}
