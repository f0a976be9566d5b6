package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type WatchConfig struct {
	Interval       time.Duration `mapstructure:"interval"`
	MetricsAddress string        `mapstructure:"metrics_address"`
}

func setWatchDefaults() {
	viper.SetDefault("watch.interval", 3*time.Hour)
	viper.SetDefault("watch.metrics_address", ":8080")
}

func (config WatchConfig) validate() error {

	if config.Interval < time.Minute {
		return fmt.Errorf("interval must be at least one minute")
	}

	return nil
}

func (config WatchConfig) bindEnvironmentVariables() error {

	if err := viper.BindEnv("watch.interval", "WATCH_INTERVAL"); err != nil {
		return err
	}

	return viper.BindEnv("watch.metrics_address", "METRICS_ADDRESS")
}
