package config

import (
	"fmt"
	"strings"

	"github.com/kitestore-next/internal/logger"

	"github.com/spf13/viper"
)

// Config is the application configuration tree.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Log     LogConfig     `mapstructure:"log"`
	Bot     BotConfig     `mapstructure:"bot"`
	Catalog CatalogConfig `mapstructure:"catalog"`
	Photos  PhotosConfig  `mapstructure:"photos"`
	Session SessionConfig `mapstructure:"session"`
	CORS    CORSConfig    `mapstructure:"cors"`
}

// ServerConfig configures the storefront HTTP server.
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // debug / release
}

// LogConfig configures log output and rotation.
type LogConfig struct {
	Dir        string `mapstructure:"dir"`
	Filename   string `mapstructure:"filename"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	Compress   bool   `mapstructure:"compress"`
}

// ToLoggerOptions converts the log section into logger options.
func (c LogConfig) ToLoggerOptions() logger.Options {
	return logger.Options{
		Dir:        c.Dir,
		Filename:   c.Filename,
		MaxSizeMB:  c.MaxSizeMB,
		MaxBackups: c.MaxBackups,
		MaxAgeDays: c.MaxAgeDays,
		Compress:   c.Compress,
	}
}

// BotConfig configures the chat transport.
type BotConfig struct {
	Token              string `mapstructure:"token"`
	APIBaseURL         string `mapstructure:"api_base_url"`
	AdminChatID        int64  `mapstructure:"admin_chat_id"`
	WebAppURL          string `mapstructure:"webapp_url"`
	PollTimeoutSeconds int    `mapstructure:"poll_timeout_seconds"`
}

// CatalogConfig configures the flat-file catalog store.
type CatalogConfig struct {
	File string `mapstructure:"file"`
}

// PhotosConfig configures photo asset storage.
type PhotosConfig struct {
	Dir       string `mapstructure:"dir"`        // asset directory tree root
	BaseURL   string `mapstructure:"base_url"`   // public prefix for served photos
	Extension string `mapstructure:"extension"`  // index file extension
	MaxSize   int64  `mapstructure:"max_size"`   // max accepted photo bytes
}

// SessionConfig configures admin dialog session housekeeping.
type SessionConfig struct {
	IdleTimeoutMinutes   int `mapstructure:"idle_timeout_minutes"`
	SweepIntervalMinutes int `mapstructure:"sweep_interval_minutes"`
}

// CORSConfig configures cross-origin access for the storefront API.
type CORSConfig struct {
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
	AllowedMethods   []string `mapstructure:"allowed_methods"`
	AllowedHeaders   []string `mapstructure:"allowed_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	MaxAge           int      `mapstructure:"max_age"`
}

// Load reads configuration from config.yml and the environment.
func Load() *Config {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("../")   // when run from cmd/server
	viper.AddConfigPath("./etc")

	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("server.mode", "debug")
	viper.SetDefault("log.dir", "")
	viper.SetDefault("log.filename", "kitestore.log")
	viper.SetDefault("log.max_size_mb", 100)
	viper.SetDefault("log.max_backups", 7)
	viper.SetDefault("log.max_age_days", 30)
	viper.SetDefault("log.compress", true)
	viper.SetDefault("bot.token", "")
	viper.SetDefault("bot.api_base_url", "https://api.telegram.org")
	viper.SetDefault("bot.admin_chat_id", 0)
	viper.SetDefault("bot.webapp_url", "")
	viper.SetDefault("bot.poll_timeout_seconds", 30)
	viper.SetDefault("catalog.file", "./data/products.json")
	viper.SetDefault("photos.dir", "./data/photos")
	viper.SetDefault("photos.base_url", "http://127.0.0.1:8080/photos")
	viper.SetDefault("photos.extension", "jpg")
	viper.SetDefault("photos.max_size", 10485760)
	viper.SetDefault("session.idle_timeout_minutes", 60)
	viper.SetDefault("session.sweep_interval_minutes", 10)
	viper.SetDefault("cors.allowed_origins", []string{"*"})
	viper.SetDefault("cors.allowed_methods", []string{"GET", "POST", "OPTIONS"})
	viper.SetDefault("cors.allowed_headers", []string{
		"Content-Type",
		"Content-Length",
		"Accept-Encoding",
		"Cache-Control",
		"X-Requested-With",
	})
	viper.SetDefault("cors.allow_credentials", false)
	viper.SetDefault("cors.max_age", 600)

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // server.port -> SERVER_PORT

	if err := viper.ReadInConfig(); err != nil {
		logger.Warnw("config_file_read_failed",
			"error", err,
			"fallback", "env_or_defaults",
		)
	} else {
		logger.Infow("config_file_loaded", "file", viper.ConfigFileUsed())
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		logger.Errorw("config_unmarshal_failed", "error", err)
		panic(fmt.Errorf("config parse failed: %w", err))
	}

	return &cfg
}
