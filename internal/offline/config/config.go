package config

import (
	"sp500-screener/pkg/config"
)

// Offline holds the cache-first proxy configuration.
type Offline struct {
	OriginURL           string   `mapstructure:"origin_url"`
	CacheName           string   `mapstructure:"cache_name"`
	Store               string   `mapstructure:"store"` // "redis" or "memory"
	Assets              []string `mapstructure:"assets"`
	MaxRequestPerMinute int      `mapstructure:"max_request_per_minute"`
}

// Config holds the full configuration for the offline proxy.
type Config struct {
	App     config.App    `mapstructure:"app"`
	Logger  config.Logger `mapstructure:"logger"`
	Redis   config.Redis  `mapstructure:"redis"`
	API     config.API    `mapstructure:"api"`
	Offline Offline       `mapstructure:"offline"`
}

// Load loads the offline proxy configuration from the given path.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := config.Load(path, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
