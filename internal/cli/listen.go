package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"
	"github.com/tessro/keyglow/internal/input"
	"github.com/tessro/keyglow/internal/render"
	"github.com/tessro/keyglow/internal/render/glow"
	"go.uber.org/zap"
)

var (
	listenDevice string
	listenFrames int
	listenFPS    int
	listenStyle  string
)

var listenCmd = &cobra.Command{
	Use:   "listen",
	Short: "Drive the glow engine from a MIDI keyboard",
	Long: `Opens a MIDI input and runs the glow engine at a fixed frame rate,
logging the glow of every held key.

The device defaults to the configured input, then the first port.`,
	RunE: runListen,
}

func init() {
	listenCmd.Flags().StringVarP(&listenDevice, "device", "d", "", "input port name or substring")
	listenCmd.Flags().IntVarP(&listenFrames, "frames", "n", 0, "stop after this many frames (0 runs until interrupted)")
	listenCmd.Flags().IntVar(&listenFPS, "fps", 60, "frames per second")
	listenCmd.Flags().StringVarP(&listenStyle, "style", "s", glow.StyleBurst, "glow style: burst or pulse")
	rootCmd.AddCommand(listenCmd)
}

func runListen(cmd *cobra.Command, args []string) error {
	if listenFPS <= 0 {
		return fmt.Errorf("fps must be > 0, got %d", listenFPS)
	}

	scene, err := render.NewScene(doc, listenStyle, render.DefaultKeyWidth)
	if err != nil {
		return err
	}

	device := listenDevice
	if in := doc.Devices.Latest().Input; device == "" && in != nil {
		device = *in
	}

	tracker := input.NewTracker()
	port, stop, err := input.Listen(device, tracker, logger)
	if err != nil {
		return err
	}
	defer stop()
	logger.Info("Listening", zap.String("device", port), zap.Int("fps", listenFPS))

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer cancel()

	return runFrames(ctx, scene, tracker, time.Second/time.Duration(listenFPS), listenFrames)
}

// runFrames steps scene at a fixed interval with the tracker's held notes
// until ctx ends or limit frames have run.
func runFrames(ctx context.Context, scene *render.Scene, tracker *input.Tracker, interval time.Duration, limit int) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	last := time.Now()
	for frame := 0; limit == 0 || frame < limit; frame++ {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.C:
			lit := scene.Frame(now.Sub(last), tracker.Pressed())
			last = now
			for _, g := range lit {
				logger.Debug("Glow",
					zap.Int("frame", frame),
					zap.Uint8("note", g.Note),
					zap.Float32("time", g.Instance.Time),
					zap.Float32("size", g.Instance.Size[0]))
			}
		}
	}
	return nil
}
