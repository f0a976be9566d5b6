package config

import "github.com/spf13/viper"

type logLevel string

const (
	LevelInfo    logLevel = "INFO"
	LevelDebug   logLevel = "DEBUG"
	LevelWarning logLevel = "WARNING"
	LevelError   logLevel = "ERROR"
)

type LoggerConfig struct {
	LogLevel   logLevel `mapstructure:"log_level"`
	OutputFile string   `mapstructure:"output_file"`
}

func setLoggerDefaults() {
	viper.SetDefault("logger.log_level", string(LevelInfo))
}

func (config LoggerConfig) bindEnvironmentVariables() error {

	if err := viper.BindEnv("logger.log_level", "LOG_LEVEL"); err != nil {
		return err
	}

	return viper.BindEnv("logger.output_file", "LOG_FILE")
}
