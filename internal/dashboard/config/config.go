package config

import (
	"time"

	"sp500-screener/pkg/config"
)

// Data holds the dataset location and refresh settings.
type Data struct {
	SourceURL       string        `mapstructure:"source_url"`
	Timeout         time.Duration `mapstructure:"timeout"`
	RefreshSchedule string        `mapstructure:"refresh_schedule"`
}

// Static holds the directories served as-is by the screener service.
type Static struct {
	DataDir string `mapstructure:"data_dir"`
}

// Config holds the full configuration for the screener service.
type Config struct {
	App    config.App    `mapstructure:"app"`
	Logger config.Logger `mapstructure:"logger"`
	API    config.API    `mapstructure:"api"`
	Data   Data          `mapstructure:"data"`
	Static Static        `mapstructure:"static"`
}

// Load loads the screener configuration from the given path.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := config.Load(path, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
