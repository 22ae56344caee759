package providers

import (
	"fmt"
	"github.com/spf13/viper"
	"memento/internal/structures"
	"path/filepath"
	"strings"
	"time"
)

func setConfigDefaults() {
	viper.SetDefault("webServer.host", "127.0.0.1")
	viper.SetDefault("webServer.port", 8080)
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.mode", 0644)
	viper.SetDefault("logger.dir", "/tmp")
	viper.SetDefault("generator.mode", "countdown")
	viper.SetDefault("generator.minYears", 1)
	viper.SetDefault("generator.maxYears", 61)
	viper.SetDefault("sequence.disturbance1", 700*time.Millisecond)
	viper.SetDefault("sequence.disturbance2", 1400*time.Millisecond)
	viper.SetDefault("sequence.reveal", 2000*time.Millisecond)
	viper.SetDefault("countdown.interval", time.Second)
	viper.SetDefault("export.size", 1200)
	viper.SetDefault("sound.enabled", true)
	viper.SetDefault("sound.sampleRate", 44100)
	viper.SetDefault("sound.volume", 0.5)
	viper.SetDefault("cache.ttl", 10*time.Minute)
}

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	filename := filepath.Base(flags.ConfigPath)
	viper.AddConfigPath(filepath.Dir(flags.ConfigPath))
	viper.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	viper.SetConfigType("yaml")
	setConfigDefaults()

	viper.BindEnv("logger.level", "MEMENTO_LOG_LEVEL")
	viper.BindEnv("webServer.port", "MEMENTO_PORT")
	viper.BindEnv("generator.mode", "MEMENTO_GENERATOR_MODE")
	viper.BindEnv("cache.enabled", "MEMENTO_CACHE_ENABLED")
	viper.BindEnv("metrics.enabled", "MEMENTO_METRICS_ENABLED")

	err := viper.ReadInConfig()
	if err != nil {
		return nil, err
	}

	err = viper.Unmarshal(&conf)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	cnfValidator := NewCnfValidator(&conf)
	err = cnfValidator.Validate()
	if err != nil {
		return nil, err
	}

	conf.AppName = "MementoMori"
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}
