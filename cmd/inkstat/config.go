package main

import (
	"fmt"
	"time"
)

const (
	defaultDisplay       = "epd"
	defaultDiskPath      = "/"
	defaultWifiInterface = "wlan0"
	defaultPreviewPort   = 3000
)

// Display sink names accepted by the "display" key.
const (
	displayEPD  = "epd"
	displayPNG  = "png"
	displayNull = "null"
)

// appConfig is internal runtime configuration, read once at startup and
// immutable for the process lifetime.
type appConfig struct {
	UpdateInterval   time.Duration `mapstructure:"update-interval"`
	FullRefreshEvery int           `mapstructure:"full-refresh-every"`
	MaxRetryAttempts int           `mapstructure:"max-retry-attempts"`
	RetryDelay       time.Duration `mapstructure:"retry-delay"`

	Display string `mapstructure:"display"`
	PNGPath string `mapstructure:"png-path"`
	SPIPort string `mapstructure:"spi-port"`

	DiskPath      string `mapstructure:"disk-path"`
	WifiInterface string `mapstructure:"wifi-interface"`

	PreviewEnabled bool   `mapstructure:"preview-enabled"`
	PreviewPort    int    `mapstructure:"preview-port"`
	PreviewAddr    string `mapstructure:"preview-addr"`

	ConfigPath string `mapstructure:"-"` // not from config file
}

func validateConfig(cfg appConfig) error {
	if cfg.UpdateInterval <= 0 {
		return fmt.Errorf("invalid update-interval: %v", cfg.UpdateInterval)
	}
	if cfg.FullRefreshEvery <= 0 {
		return fmt.Errorf("invalid full-refresh-every: %d", cfg.FullRefreshEvery)
	}
	if cfg.MaxRetryAttempts < 0 {
		return fmt.Errorf("invalid max-retry-attempts: %d", cfg.MaxRetryAttempts)
	}
	if cfg.RetryDelay < 0 {
		return fmt.Errorf("invalid retry-delay: %v", cfg.RetryDelay)
	}
	switch cfg.Display {
	case displayEPD, displayPNG, displayNull:
	default:
		return fmt.Errorf("invalid display %q (want %s, %s or %s)",
			cfg.Display, displayEPD, displayPNG, displayNull)
	}
	if cfg.PreviewEnabled && (cfg.PreviewPort <= 0 || cfg.PreviewPort > 65535) {
		return fmt.Errorf("invalid preview-port: %d", cfg.PreviewPort)
	}
	return nil
}
