package main

import (
	"github.com/tessro/keyglow/internal/cli"

	// Registers the system MIDI driver.
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv"
)

func main() {
	cli.Execute()
}
