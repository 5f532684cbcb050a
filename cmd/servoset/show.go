package main

import (
	"errors"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/calvinmclean/servoset/console"
	"github.com/calvinmclean/servoset/frame"
)

func NewShowCommand(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the levers in the frame file",
		RunE: func(*cobra.Command, []string) error {
			cfg, err := getConfig(v)
			if err != nil {
				return err
			}
			if cfg.FrameFile == "" {
				return errors.New("frame file is required")
			}

			configs, err := frame.NewStore(cfg.FrameFile).Load()
			if err != nil {
				return err
			}
			return console.PrintFrame(os.Stdout, configs)
		},
	}
}
