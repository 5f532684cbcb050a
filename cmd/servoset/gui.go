package main

import (
	"context"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/calvinmclean/servoset/controller"
	"github.com/calvinmclean/servoset/servolink"
	"github.com/calvinmclean/servoset/ui"
)

const appID = "com.calvinmclean.servoset"

func NewGUICommand(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "gui",
		Short: "Calibrate levers in a desktop window",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := getConfig(v)
			if err != nil {
				return err
			}
			return runGUI(cmd.Context(), cfg)
		},
	}
}

func runGUI(ctx context.Context, cfg controller.Config) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	a := app.NewWithID(appID)
	frameUI := ui.New(a)

	var (
		runErr  error
		started bool
	)
	done := make(chan struct{})
	start := func() {
		started = true
		c, err := controller.NewFromConfig(cfg, frameUI, servolink.Tracers(servolink.LogTracer{}, frameUI))
		if err != nil {
			runErr = err
			close(done)
			frameUI.ShowError(err)
			return
		}

		events := make(chan controller.Event, 16)
		go func() {
			defer close(done)
			defer cancel()
			defer c.Close()

			runErr = c.Run(ctx, events)
			if runErr != nil {
				logrus.WithError(runErr).Error("error saving frame")
			}
		}()

		frameUI.Show(ctx, events)
	}

	if cfg.SerialPort == "" || cfg.FrameFile == "" {
		configWindow := ui.NewConfigWindow(a)
		configWindow.OnSubmit = start
		configWindow.Show(&cfg)
	} else {
		start()
	}

	go func() {
		<-ctx.Done()
		fyne.Do(a.Quit)
	}()

	a.Run()
	cancel()

	// wait for the frame to be saved
	if started {
		<-done
	}
	return runErr
}
