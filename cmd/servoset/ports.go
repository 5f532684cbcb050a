package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/calvinmclean/servoset/servolink"
)

func NewPortsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "ports",
		Short: "List serial ports that could be the servo board",
		RunE: func(*cobra.Command, []string) error {
			ports, err := servolink.GetPortDetails()
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "PORT\tUSB\tVID\tPID\tSERIAL\tPRODUCT")
			for _, p := range ports {
				fmt.Fprintf(w, "%s\t%t\t%s\t%s\t%s\t%s\n", p.Name, p.IsUSB, p.VID, p.PID, p.SerialNumber, p.Product)
			}
			return w.Flush()
		},
	}
}
