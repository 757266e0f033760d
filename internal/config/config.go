// =================================
// File: internal/config/config.go
// =================================
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/rovshanmuradov/token-monitor/internal/format"
	"github.com/rovshanmuradov/token-monitor/internal/token"
)

type Config struct {
	APIBaseURL      string        `mapstructure:"api_base_url"`
	RefreshInterval time.Duration `mapstructure:"refresh_interval"`
	TickInterval    time.Duration `mapstructure:"tick_interval"`
	RequestTimeout  time.Duration `mapstructure:"request_timeout"`
	RequestsPerSec  float64       `mapstructure:"requests_per_sec"`
	PriceDecimals   int           `mapstructure:"price_decimals"`
	AddressFormat   string        `mapstructure:"address_format"`
	Timezone        string        `mapstructure:"timezone"`
	DebugLogging    bool          `mapstructure:"debug_logging"`
	LogFile         string        `mapstructure:"log_file"`
	LogBufferSize   int           `mapstructure:"log_buffer_size"`
	ExportDir       string        `mapstructure:"export_dir"`
	HistoryFile     string        `mapstructure:"history_file"`

	location      *time.Location
	addressFormat token.AddressFormat
}

const (
	EnvPrefix = "TOKEN_MONITOR"

	DefaultRefreshInterval = 60 * time.Second
	DefaultTickInterval    = time.Second
	DefaultRequestTimeout  = 10 * time.Second
	DefaultRequestsPerSec  = 2.0
	DefaultPriceDecimals   = format.DefaultPriceDecimals
	DefaultTimezone        = "UTC"
	DefaultLogFile         = "logs/token-monitor.log"
	DefaultLogBufferSize   = 1000
	DefaultExportDir       = "exports"
)

var defaults = map[string]interface{}{
	"api_base_url":     "",
	"refresh_interval": DefaultRefreshInterval,
	"tick_interval":    DefaultTickInterval,
	"request_timeout":  DefaultRequestTimeout,
	"requests_per_sec": DefaultRequestsPerSec,
	"price_decimals":   DefaultPriceDecimals,
	"address_format":   string(token.AddressAny),
	"timezone":         DefaultTimezone,
	"debug_logging":    false,
	"log_file":         DefaultLogFile,
	"log_buffer_size":  DefaultLogBufferSize,
	"export_dir":       DefaultExportDir,
	"history_file":     "",
}

// LoadConfig reads the JSON config at path, applies defaults and
// TOKEN_MONITOR_* environment overrides (a .env file in the working
// directory is loaded first). A missing file is not an error as long as the
// environment supplies the required keys.
func LoadConfig(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	loadEnvironmentVariables(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, err
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, validateConfig(&cfg)
}

func loadEnvironmentVariables(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// Location returns the display timezone.
func (c *Config) Location() *time.Location {
	if c.location == nil {
		return time.UTC
	}
	return c.location
}

// Addresses returns the parsed address validation mode.
func (c *Config) Addresses() token.AddressFormat {
	if c.addressFormat == "" {
		return token.AddressAny
	}
	return c.addressFormat
}

func validateConfig(cfg *Config) error {
	if cfg.APIBaseURL == "" {
		return errors.New("missing api_base_url in configuration")
	}
	if err := validateURLWithCache(cfg.APIBaseURL, "http"); err != nil {
		return errors.New("api_base_url must be an http or https URL")
	}
	if err := validateNumericParams(cfg); err != nil {
		return err
	}

	addrFormat, err := token.ParseAddressFormat(cfg.AddressFormat)
	if err != nil {
		return fmt.Errorf("invalid address_format: %w", err)
	}
	cfg.addressFormat = addrFormat

	tz := cfg.Timezone
	if tz == "" {
		tz = DefaultTimezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return fmt.Errorf("invalid timezone %q: %w", cfg.Timezone, err)
	}
	cfg.location = loc
	return nil
}

func validateNumericParams(cfg *Config) error {
	if cfg.RefreshInterval <= 0 {
		return errors.New("invalid refresh_interval")
	}
	if cfg.TickInterval <= 0 {
		return errors.New("invalid tick_interval")
	}
	if cfg.TickInterval > cfg.RefreshInterval {
		return errors.New("tick_interval must not exceed refresh_interval")
	}
	if cfg.RequestTimeout <= 0 {
		return errors.New("invalid request_timeout")
	}
	if cfg.RequestsPerSec < 0 {
		return errors.New("invalid requests_per_sec")
	}
	if cfg.PriceDecimals < 1 || cfg.PriceDecimals > format.MaxPriceDecimals {
		return fmt.Errorf("price_decimals must be between 1 and %d", format.MaxPriceDecimals)
	}
	if cfg.LogBufferSize <= 0 {
		return errors.New("invalid log_buffer_size")
	}
	return nil
}

var urlCache sync.Map

func validateURLWithCache(rawURL string, protocol string) error {
	if _, ok := urlCache.Load(rawURL); ok {
		return nil
	}
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return errors.New("invalid URL format")
	}
	if !strings.HasPrefix(parsed.Scheme, protocol) || parsed.Host == "" {
		return errors.New("invalid URL protocol")
	}
	urlCache.Store(rawURL, parsed)
	return nil
}
