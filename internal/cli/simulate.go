package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"github.com/tessro/keyglow/internal/render"
	"github.com/tessro/keyglow/internal/render/glow"
)

var (
	simNotes   []uint
	simFrames  int
	simDelta   time.Duration
	simStyle   string
	simRelease int
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run the glow engine headless",
	Long: `Hold notes for a number of frames and print every glow instance the
engine emits.

Examples:
  keyglow simulate --keys 60,64,67 --frames 5
  keyglow simulate --keys 60 --frames 8 --release 4 --style pulse -j`,
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().UintSliceVarP(&simNotes, "keys", "k", []uint{60}, "MIDI notes to hold")
	simulateCmd.Flags().IntVarP(&simFrames, "frames", "n", 10, "number of frames")
	simulateCmd.Flags().DurationVarP(&simDelta, "delta", "d", 100*time.Millisecond, "time per frame")
	simulateCmd.Flags().StringVarP(&simStyle, "style", "s", glow.StyleBurst, "glow style: burst or pulse")
	simulateCmd.Flags().IntVar(&simRelease, "release", 0, "release the keys from this frame on (0 holds to the end)")
	rootCmd.AddCommand(simulateCmd)
}

type simFrame struct {
	Frame int          `json:"frame"`
	Glows []render.Lit `json:"glows"`
}

func runSimulate(cmd *cobra.Command, args []string) error {
	if simFrames < 0 {
		return fmt.Errorf("frames must be >= 0, got %d", simFrames)
	}
	if simDelta < 0 {
		return fmt.Errorf("delta must be >= 0, got %s", simDelta)
	}

	notes := make([]uint8, 0, len(simNotes))
	for _, n := range simNotes {
		if n > 127 {
			return fmt.Errorf("note %d is not a MIDI note", n)
		}
		notes = append(notes, uint8(n))
	}

	scene, err := render.NewScene(doc, simStyle, render.DefaultKeyWidth)
	if err != nil {
		return err
	}

	frames := make([]simFrame, 0, simFrames)
	for i := range simFrames {
		held := notes
		if simRelease > 0 && i >= simRelease {
			held = nil
		}
		frames = append(frames, simFrame{Frame: i, Glows: scene.Frame(simDelta, held)})
	}

	if JSONOutput() {
		return writeJSON(cmd.OutOrStdout(), frames)
	}

	table := NewTableWriter(cmd.OutOrStdout(), "FRAME", "NOTE", "TIME", "SIZE", "POSITION", "COLOR")
	for _, f := range frames {
		if len(f.Glows) == 0 {
			table.Row(strconv.Itoa(f.Frame), "-", "-", "-", "-", "-")
			continue
		}
		for _, g := range f.Glows {
			in := g.Instance
			table.Row(
				strconv.Itoa(f.Frame),
				strconv.Itoa(int(g.Note)),
				FormatVec(in.Time),
				FormatVec(in.Size[0]),
				FormatVec(in.Position[:]...),
				FormatVec(in.Color[:]...),
			)
		}
	}
	table.Flush()
	return nil
}
