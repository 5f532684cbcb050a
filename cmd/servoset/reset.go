package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/calvinmclean/servoset"
	"github.com/calvinmclean/servoset/servolink"
)

func NewResetCommand(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Reset every servo on the board to its default position",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := getConfig(v)
			if err != nil {
				return err
			}
			return sendFrames(cmd, cfg.Link(), servoset.ResetAll())
		},
	}
}

// sendFrames writes frames to the board, printing each one as it goes
func sendFrames(cmd *cobra.Command, cfg servolink.Config, frames ...servoset.Frame) error {
	out := cmd.OutOrStdout()
	link, err := servolink.Open(cfg, servolink.TraceFunc(func(f servoset.Frame) {
		fmt.Fprintln(out, f)
	}))
	if err != nil {
		return err
	}
	defer link.Close()

	for _, f := range frames {
		err = link.Send(f)
		if err != nil {
			return err
		}
	}
	return nil
}
