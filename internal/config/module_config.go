package config

import (
	"errors"
	"fmt"
	"sync"

	"github.com/spf13/viper"
)

// ModuleConfig holds the configuration for a single module process.
type ModuleConfig struct {
	ModuleName    string `mapstructure:"module_name"`
	ListenAddress string `mapstructure:"listen_address"`
	Debug         bool   `mapstructure:"debug"`
}

var (
	moduleCfg  *ModuleConfig
	moduleOnce sync.Once
)

// LoadModule reads the module config file, applies env overrides and
// initializes the global config. It ensures the configuration is set only once.
func LoadModule(configFile string) (*ModuleConfig, error) {
	var err error
	moduleOnce.Do(func() {
		viper.SetDefault("listen_address", "0.0.0.0:8001")
		viper.SetDefault("debug", false)

		// SAFE_MODULE_NAME 등 환경변수 우선 적용
		viper.SetEnvPrefix("SAFE")
		viper.AutomaticEnv()
		_ = viper.BindEnv("module_name", "SAFE_MODULE_NAME")
		_ = viper.BindEnv("listen_address", "SAFE_MODULE_LISTEN_ADDR")

		if configFile != "" {
			viper.SetConfigFile(configFile)
			viper.SetConfigType("yaml")
			if err = viper.ReadInConfig(); err != nil {
				err = fmt.Errorf("error reading config file: %w", err)
				return
			}
		}

		var configuration ModuleConfig
		if err = viper.Unmarshal(&configuration); err != nil {
			err = fmt.Errorf("error unmarshaling config: %w", err)
			return
		}

		if configuration.ModuleName == "" {
			err = errors.New("module_name is required")
			return
		}

		moduleCfg = &configuration
	})

	if err != nil {
		return nil, err
	}
	if moduleCfg == nil {
		return nil, errors.New("configuration was not set")
	}
	return moduleCfg, nil
}
