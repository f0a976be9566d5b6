package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type StorageConfig struct {
	DbPath           string `mapstructure:"db_path"`
	OutputDir        string `mapstructure:"output_dir"`
	AlertsFile       string `mapstructure:"alerts_file"`
	ExpirationInDays int    `mapstructure:"expiration_in_days"`
}

func setStorageDefaults() {
	viper.SetDefault("storage.db_path", "linkedscout.db")
	viper.SetDefault("storage.output_dir", "output")
	viper.SetDefault("storage.alerts_file", "alerts.yaml")
	viper.SetDefault("storage.expiration_in_days", 90)
}

func (config StorageConfig) validate() error {

	if config.DbPath == "" {
		return fmt.Errorf("missing variable: db_path")
	}

	if config.AlertsFile == "" {
		return fmt.Errorf("missing variable: alerts_file")
	}

	if config.ExpirationInDays <= 0 {
		return fmt.Errorf("expiration_in_days must be greater than zero")
	}

	return nil
}

func (config StorageConfig) bindEnvironmentVariables() error {
	var errs []error

	if err := viper.BindEnv("storage.db_path", "DB_PATH"); err != nil {
		errs = append(errs, err)
	}

	if err := viper.BindEnv("storage.output_dir", "OUTPUT_DIR"); err != nil {
		errs = append(errs, err)
	}

	if err := viper.BindEnv("storage.alerts_file", "ALERTS_FILE"); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return createMultiError(errs)
	}

	return nil
}
