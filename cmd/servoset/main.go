package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/calvinmclean/servoset/frame"
	"github.com/calvinmclean/servoset/servolink"
)

var (
	logLevel   = "info"
	configPath = ""
)

func setupLogger() error {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		return fmt.Errorf("failed to parse log level: %v", err)
	}
	logrus.SetLevel(level)
	logrus.SetFormatter(&logrus.TextFormatter{})
	if term.IsTerminal(int(os.Stderr.Fd())) {
		logrus.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: time.Kitchen,
		})
	}

	return nil
}

func handleCmdError(err error) {
	if errors.Is(err, frame.ErrEmptyConfiguration) {
		fmt.Fprintln(os.Stderr, "\nError: the frame file has no valid levers")
		fmt.Fprintln(os.Stderr, "Each lever line needs 9 fields: index,board,connector,kind,normal,reversed,pull,return,description")
	} else if errors.Is(err, servolink.ErrNoUSBSerial) {
		fmt.Fprintln(os.Stderr, "\nError: no serial ports found")
		fmt.Fprintln(os.Stderr, "Is the servo board connected?")
	}
}

func main() {
	cmd := NewCommand()
	if err := cmd.Execute(); err != nil {
		handleCmdError(err)
		os.Exit(1)
	}
}

func NewCommand() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "servoset",
		Short: "servoset calibrates the servos behind a model railway lever frame",
		Long: `servoset calibrates the servos behind a model railway lever frame.

Each lever is stepped through its normal and reversed positions and its return
and pull speeds. Values are sent to the servo board as they change and saved
back to the frame file on exit.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			err := loadConfig(v, cmd)
			if err != nil {
				return err
			}
			logLevel = v.GetString("log-level")
			return setupLogger()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCalibrate(cmd.Context(), v)
		},
	}

	globalFlags := cmd.PersistentFlags()
	globalFlags.StringVarP(&logLevel, "log-level", "l", "info", "log level (trace, debug, info, warn, error, fatal, panic)")
	globalFlags.StringVar(&configPath, "config", "", "config file path (yaml, toml or json)")
	globalFlags.String("serial-port", "", "serial port of the servo board, empty or 'none' for a dry run")
	globalFlags.Int("baud-rate", servolink.DefaultBaudRate, "serial baud rate")
	globalFlags.Duration("write-timeout", servolink.DefaultWriteTimeout, "give up on the board when a write takes longer than this")
	globalFlags.StringP("frame-file", "f", "", "lever frame file")

	cmd.AddCommand(
		NewCalibrateCommand(v),
		NewGUICommand(v),
		NewPortsCommand(),
		NewResetCommand(v),
		NewSendCommand(v),
		NewShowCommand(v),
		NewVersionCommand(),
	)

	return cmd
}
