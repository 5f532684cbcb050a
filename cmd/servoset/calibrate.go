package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/calvinmclean/servoset/console"
	"github.com/calvinmclean/servoset/controller"
	"github.com/calvinmclean/servoset/servolink"
)

func NewCalibrateCommand(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "calibrate",
		Short: "Calibrate levers from the terminal",
		Long: `Calibrate levers from the terminal.

Keys: w/Up raise the value, y/Down lower it, g/Right moves to the next mode,
n/p select a lever while idle and q saves and quits. Press h for help.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCalibrate(cmd.Context(), v)
		},
	}
}

func runCalibrate(ctx context.Context, v *viper.Viper) error {
	cfg, err := getConfig(v)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	restore, err := console.MakeRaw(os.Stdin)
	if err != nil {
		return err
	}
	defer restore()

	logrus.SetOutput(console.NewCRLFWriter(os.Stderr))

	c, err := controller.NewFromConfig(cfg, console.NewRenderer(os.Stdout), servolink.LogTracer{})
	if err != nil {
		return err
	}
	defer c.Close()

	console.PrintHelp(os.Stdout)

	events := make(chan controller.Event)
	go func() {
		err := console.ReadEvents(ctx, os.Stdin, os.Stdout, events)
		if err != nil && ctx.Err() == nil {
			logrus.WithError(err).Error("error reading input")
		}
	}()

	return c.Run(ctx, events)
}
