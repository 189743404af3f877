package providers

import (
	"fmt"
	"path/filepath"
	"smsgate/internal/structures"
	"strings"

	"github.com/spf13/viper"
)

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	filename := filepath.Base(flags.ConfigPath)
	viper.AddConfigPath(filepath.Dir(flags.ConfigPath))
	viper.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	viper.SetConfigType("yaml")

	viper.BindEnv("logger.level", "SMSGATE_LOG_LEVEL")
	viper.BindEnv("poller.stateDir", "SMSGATE_STATE_DIR")
	viper.BindEnv("poller.pollInterval", "SMSGATE_POLL_INTERVAL")
	viper.BindEnv("device.host", "NETGEAR_IP")
	viper.BindEnv("device.password", "NETGEAR_ADMIN_PASSWORD")
	viper.BindEnv("cache.enabled", "SMSGATE_CACHE_ENABLED")
	viper.BindEnv("cache.size", "SMSGATE_CACHE_SIZE")

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

	conf.AppName = "smsgate"
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}
