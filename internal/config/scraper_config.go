package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type ScraperConfig struct {
	BaseURL            string        `mapstructure:"base_url"`
	UserAgent          string        `mapstructure:"user_agent"`
	Timeout            time.Duration `mapstructure:"timeout"`
	MaxRetries         int           `mapstructure:"max_retries"`
	RetryBaseDelay     time.Duration `mapstructure:"retry_base_delay"`
	MinRequestInterval time.Duration `mapstructure:"min_request_interval"`
	MaxJitter          time.Duration `mapstructure:"max_jitter"`
}

func setScraperDefaults() {
	viper.SetDefault("scraper.timeout", 30*time.Second)
	viper.SetDefault("scraper.max_retries", 3)
	viper.SetDefault("scraper.retry_base_delay", time.Second)
	viper.SetDefault("scraper.min_request_interval", 1500*time.Millisecond)
	viper.SetDefault("scraper.max_jitter", 500*time.Millisecond)
}

func (config ScraperConfig) validate() error {

	if config.MaxRetries < 1 {
		return fmt.Errorf("max_retries must be at least 1")
	}

	if config.MinRequestInterval <= 0 {
		return fmt.Errorf("min_request_interval must be positive")
	}

	if config.MaxJitter < 0 {
		return fmt.Errorf("max_jitter must be non-negative")
	}

	return nil
}

func (config ScraperConfig) bindEnvironmentVariables() error {
	var errs []error

	if err := viper.BindEnv("scraper.base_url", "SCRAPER_BASE_URL"); err != nil {
		errs = append(errs, err)
	}

	if err := viper.BindEnv("scraper.user_agent", "SCRAPER_USER_AGENT"); err != nil {
		errs = append(errs, err)
	}

	if err := viper.BindEnv("scraper.min_request_interval", "SCRAPER_MIN_REQUEST_INTERVAL"); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return createMultiError(errs)
	}

	return nil
}
