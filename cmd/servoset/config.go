package main

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/calvinmclean/servoset/controller"
)

const envPrefix = "SERVOSET"

// loadConfig layers the config file, SERVOSET_* environment variables and flags into v
func loadConfig(v *viper.Viper, cmd *cobra.Command) error {
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	err := v.BindPFlags(cmd.Flags())
	if err != nil {
		return errors.Wrap(err, "error binding flags")
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
		err = v.ReadInConfig()
		if err != nil {
			return errors.Wrapf(err, "error reading config file %s", configPath)
		}
	}

	return nil
}

func getConfig(v *viper.Viper) (controller.Config, error) {
	var cfg controller.Config
	err := v.Unmarshal(&cfg)
	if err != nil {
		return controller.Config{}, errors.Wrap(err, "error decoding config")
	}
	return cfg, nil
}
