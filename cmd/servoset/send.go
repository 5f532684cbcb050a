package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/calvinmclean/servoset"
	"github.com/calvinmclean/servoset/lever"
)

func NewSendCommand(v *viper.Viper) *cobra.Command {
	var (
		channel  int
		modeName string
		activate bool
	)

	cmd := &cobra.Command{
		Use:   "send VALUE",
		Short: "Send a single value to one servo channel",
		Long: `Send a single value to one servo channel.

The mode picks the command: normal and reversed set a position, return and pull
set a speed. With --activate the board also saves its working settings.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := getConfig(v)
			if err != nil {
				return err
			}

			value, err := strconv.ParseUint(args[0], 10, 8)
			if err != nil {
				return fmt.Errorf("invalid value %q: must be 0-255", args[0])
			}

			mode, err := lever.ParseMode(modeName)
			if err != nil {
				return err
			}

			if channel < 0 || channel >= servoset.Channels {
				return fmt.Errorf("invalid channel %d: must be 0-%d", channel, servoset.Channels-1)
			}

			command, _ := lever.ModeCommand(channel, mode)

			frames := []servoset.Frame{servoset.Encode(command, byte(value))}
			if activate {
				frames = append(frames, servoset.Activate())
			}
			return sendFrames(cmd, cfg.Link(), frames...)
		},
	}

	cmd.Flags().IntVarP(&channel, "channel", "c", 0, "servo channel on the board")
	cmd.Flags().StringVarP(&modeName, "mode", "m", lever.ModeNormal.String(), "normal, reversed, return or pull")
	cmd.Flags().BoolVar(&activate, "activate", false, "send the activate command after the value")

	return cmd
}
