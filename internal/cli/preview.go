package cli

import (
	"errors"
	"os"

	"github.com/spf13/cobra"
	kgerrors "github.com/tessro/keyglow/internal/errors"
	"github.com/tessro/keyglow/internal/render/glow"
	"github.com/tessro/keyglow/internal/tui"
	"golang.org/x/term"
)

var previewStyle string

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Play the glow in the terminal",
	Long: `Opens a live glow view. The home-row keys toggle an octave and a half
of piano keys starting at middle C.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			return kgerrors.WithSuggestion(
				errors.New("preview needs an interactive terminal"),
				"Use 'keyglow simulate' for headless output",
			)
		}
		return tui.Run(doc, previewStyle)
	},
}

func init() {
	previewCmd.Flags().StringVarP(&previewStyle, "style", "s", glow.StyleBurst, "glow style: burst or pulse")
	rootCmd.AddCommand(previewCmd)
}
