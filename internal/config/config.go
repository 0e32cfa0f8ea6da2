// Package config loads the site host configuration from an optional JSON
// file and LANDING_* environment overrides.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

const (
	defaultListen             = "127.0.0.1:4173"
	defaultDir                = "ui"
	defaultIndex              = "index.html"
	defaultFormEndpoint       = "https://formspree.io/f/yourFormId"
	defaultCarouselIntervalMS = 4000
	defaultRelayTimeoutMS     = 10000
	defaultLogLevel           = "info"
	defaultLogFile            = "site.log"
)

// Config is the runtime configuration for the site host.
type Config struct {
	Listen             string `json:"listen" env:"LANDING_LISTEN"`
	Dir                string `json:"dir" env:"LANDING_DIR"`
	Index              string `json:"index" env:"LANDING_INDEX"`
	FormEndpoint       string `json:"form_endpoint" env:"LANDING_FORM_ENDPOINT"`
	CarouselIntervalMS int    `json:"carousel_interval_ms" env:"LANDING_CAROUSEL_INTERVAL_MS"`
	RelayTimeoutMS     int    `json:"relay_timeout_ms" env:"LANDING_RELAY_TIMEOUT_MS"`
	LogLevel           string `json:"log_level" env:"LANDING_LOG_LEVEL"`
	LogDir             string `json:"log_dir" env:"LANDING_LOG_DIR"`
	LogFile            string `json:"log_file" env:"LANDING_LOG_FILE"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Listen:             defaultListen,
		Dir:                defaultDir,
		Index:              defaultIndex,
		FormEndpoint:       defaultFormEndpoint,
		CarouselIntervalMS: defaultCarouselIntervalMS,
		RelayTimeoutMS:     defaultRelayTimeoutMS,
		LogLevel:           defaultLogLevel,
		LogFile:            defaultLogFile,
	}
}

// Load reads path (when non-empty), applies environment overrides and
// normalises the result.
func Load(path string) (Config, error) {
	cfg := Default()
	if path = strings.TrimSpace(path); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := json.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("decode config: %w", err)
		}
	}
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	cfg.normalise()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) normalise() {
	def := Default()
	c.Listen = strings.TrimSpace(c.Listen)
	if c.Listen == "" {
		c.Listen = def.Listen
	}
	c.Dir = strings.TrimSpace(c.Dir)
	if c.Dir == "" {
		c.Dir = def.Dir
	}
	c.Index = strings.TrimSpace(c.Index)
	if c.Index == "" {
		c.Index = def.Index
	}
	c.FormEndpoint = strings.TrimSpace(c.FormEndpoint)
	if c.FormEndpoint == "" {
		c.FormEndpoint = def.FormEndpoint
	}
	if c.CarouselIntervalMS <= 0 {
		c.CarouselIntervalMS = def.CarouselIntervalMS
	}
	if c.RelayTimeoutMS <= 0 {
		c.RelayTimeoutMS = def.RelayTimeoutMS
	}
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	if c.LogLevel == "" {
		c.LogLevel = def.LogLevel
	}
	c.LogDir = strings.TrimSpace(c.LogDir)
	c.LogFile = strings.TrimSpace(c.LogFile)
	if c.LogFile == "" {
		c.LogFile = def.LogFile
	}
}

// Validate checks the values that cannot be defaulted.
func (c Config) Validate() error {
	u, err := url.Parse(c.FormEndpoint)
	if err != nil {
		return fmt.Errorf("form endpoint: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return errors.New("form endpoint must be an absolute http(s) URL")
	}
	return nil
}

// CarouselInterval is the slide period as a duration.
func (c Config) CarouselInterval() time.Duration {
	return time.Duration(c.CarouselIntervalMS) * time.Millisecond
}

// RelayTimeout bounds one form relay request.
func (c Config) RelayTimeout() time.Duration {
	return time.Duration(c.RelayTimeoutMS) * time.Millisecond
}
