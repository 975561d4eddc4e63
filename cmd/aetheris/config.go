package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"github.com/tinytelemetry/aetheris/internal/carousel"
	"github.com/tinytelemetry/aetheris/internal/logging"
	"github.com/tinytelemetry/aetheris/internal/model"
)

const (
	defaultLogFile = "~/.local/state/aetheris/aetheris.log"
	minCardWidth   = 12
	configDirName  = "aetheris"
	configFileName = "config.yml"
	envPrefix      = "AETHERIS"
)

// appConfig is the runtime configuration shared by the TUI and the
// one-shot subcommands.
type appConfig struct {
	APIBaseURL         string        `mapstructure:"api-base-url"`
	RequestTimeout     time.Duration `mapstructure:"request-timeout"`
	RateLimit          float64       `mapstructure:"rate-limit"`
	RateBurst          int           `mapstructure:"rate-burst"`
	CacheSize          int           `mapstructure:"cache-size"`
	CacheTTL           time.Duration `mapstructure:"cache-ttl"`
	UserAgent          string        `mapstructure:"user-agent"`
	Skin               string        `mapstructure:"skin"`
	LogFile            string        `mapstructure:"log-file"`
	LogLevel           string        `mapstructure:"log-level"`
	ReverseScrollWheel bool          `mapstructure:"reverse-scroll-wheel"`

	CarouselTickInterval time.Duration `mapstructure:"carousel-tick-interval"`
	CarouselStep         int           `mapstructure:"carousel-step"`
	CarouselSensitivity  float64       `mapstructure:"carousel-sensitivity"`
	CarouselCooldown     time.Duration `mapstructure:"carousel-cooldown"`
	CarouselStepDistance int           `mapstructure:"carousel-step-distance"`
	CarouselStepDuration time.Duration `mapstructure:"carousel-step-duration"`
	CarouselCardWidth    int           `mapstructure:"carousel-card-width"`
	CarouselPauseOnHover bool          `mapstructure:"carousel-pause-on-hover"`

	ConfigDir  string `mapstructure:"-"`
	ConfigPath string `mapstructure:"-"`
}

func loadConfig(configPath string) (appConfig, error) {
	var cfg appConfig

	home, err := os.UserHomeDir()
	if err != nil {
		return cfg, fmt.Errorf("finding home directory: %w", err)
	}
	configDir := filepath.Join(home, ".config", configDirName)

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	cd := carousel.DefaultConfig()
	v.SetDefault("api-base-url", model.DefaultAPIBaseURL)
	v.SetDefault("request-timeout", model.DefaultRequestTimeout)
	v.SetDefault("rate-limit", model.DefaultRateLimit)
	v.SetDefault("rate-burst", model.DefaultRateBurst)
	v.SetDefault("cache-size", model.DefaultCacheSize)
	v.SetDefault("cache-ttl", model.DefaultCacheTTL)
	v.SetDefault("user-agent", model.DefaultUserAgent)
	v.SetDefault("skin", model.DefaultSkin)
	v.SetDefault("log-file", defaultLogFile)
	v.SetDefault("log-level", model.DefaultLogLevel)
	v.SetDefault("reverse-scroll-wheel", false)
	v.SetDefault("carousel-tick-interval", cd.TickInterval)
	v.SetDefault("carousel-step", cd.Step)
	v.SetDefault("carousel-sensitivity", cd.Sensitivity)
	v.SetDefault("carousel-cooldown", cd.Cooldown)
	v.SetDefault("carousel-step-distance", cd.StepDistance)
	v.SetDefault("carousel-step-duration", cd.StepDuration)
	v.SetDefault("carousel-card-width", cd.CardWidth)
	v.SetDefault("carousel-pause-on-hover", cd.PauseOnHover)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigFile(filepath.Join(configDir, configFileName))
	}

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFound) && !os.IsNotExist(err) {
			return cfg, err
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, err
	}
	cfg.ConfigDir = configDir
	cfg.ConfigPath = v.ConfigFileUsed()
	cfg.LogFile = logging.ExpandHome(cfg.LogFile)

	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c appConfig) validate() error {
	durations := []struct {
		key string
		d   time.Duration
	}{
		{"request-timeout", c.RequestTimeout},
		{"cache-ttl", c.CacheTTL},
		{"carousel-tick-interval", c.CarouselTickInterval},
		{"carousel-cooldown", c.CarouselCooldown},
		{"carousel-step-duration", c.CarouselStepDuration},
	}
	for _, d := range durations {
		if d.d <= 0 {
			return fmt.Errorf("invalid %s: %s", d.key, d.d)
		}
	}
	if c.RateLimit <= 0 {
		return fmt.Errorf("invalid rate-limit: %v", c.RateLimit)
	}
	if c.RateBurst <= 0 {
		return fmt.Errorf("invalid rate-burst: %d", c.RateBurst)
	}
	if c.CacheSize < 0 {
		return fmt.Errorf("invalid cache-size: %d", c.CacheSize)
	}
	if c.CarouselStep <= 0 {
		return fmt.Errorf("invalid carousel-step: %d", c.CarouselStep)
	}
	if c.CarouselSensitivity <= 0 {
		return fmt.Errorf("invalid carousel-sensitivity: %v", c.CarouselSensitivity)
	}
	if c.CarouselStepDistance <= 0 {
		return fmt.Errorf("invalid carousel-step-distance: %d", c.CarouselStepDistance)
	}
	if c.CarouselCardWidth < minCardWidth {
		return fmt.Errorf("invalid carousel-card-width: %d (minimum %d)", c.CarouselCardWidth, minCardWidth)
	}
	return nil
}

// carousel maps the carousel-* keys onto the controller configuration.
func (c appConfig) carousel() carousel.Config {
	cc := carousel.DefaultConfig()
	cc.TickInterval = c.CarouselTickInterval
	cc.Step = c.CarouselStep
	cc.Sensitivity = c.CarouselSensitivity
	cc.Cooldown = c.CarouselCooldown
	cc.StepDistance = c.CarouselStepDistance
	cc.StepDuration = c.CarouselStepDuration
	cc.CardWidth = c.CarouselCardWidth
	cc.PauseOnHover = c.CarouselPauseOnHover
	return cc
}
