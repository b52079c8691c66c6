package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tessro/keyglow/internal/input"
)

var devicesCmd = &cobra.Command{
	Use:   "devices",
	Short: "List MIDI devices",
	Long:  `Lists the MIDI input and output ports. Configured devices are marked.`,
	RunE:  runDevices,
}

func init() {
	rootCmd.AddCommand(devicesCmd)
}

type deviceInfo struct {
	Name       string `json:"name"`
	Direction  string `json:"direction"`
	Configured bool   `json:"configured"`
}

func runDevices(cmd *cobra.Command, args []string) error {
	ins, outs := input.Ports()
	devices := doc.Devices.Latest()

	var all []deviceInfo
	for _, name := range ins {
		all = append(all, deviceInfo{
			Name:       name,
			Direction:  "input",
			Configured: devices.Input != nil && *devices.Input == name,
		})
	}
	for _, name := range outs {
		all = append(all, deviceInfo{
			Name:       name,
			Direction:  "output",
			Configured: devices.Output != nil && *devices.Output == name,
		})
	}

	out := cmd.OutOrStdout()
	if JSONOutput() {
		if all == nil {
			all = []deviceInfo{}
		}
		return writeJSON(out, all)
	}

	if len(all) == 0 {
		fmt.Fprintln(out, "No MIDI devices found")
		return nil
	}

	printGroup := func(title, direction string) {
		fmt.Fprintf(out, "[%s]\n", title)
		for _, d := range all {
			if d.Direction == direction {
				fmt.Fprintf(out, "  %s %s\n", StatusIcon(d.Configured), d.Name)
			}
		}
	}
	if len(ins) > 0 {
		printGroup("INPUT", "input")
	}
	if len(outs) > 0 {
		if len(ins) > 0 {
			fmt.Fprintln(out)
		}
		printGroup("OUTPUT", "output")
	}
	return nil
}
