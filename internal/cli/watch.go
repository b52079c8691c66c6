package cli

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/tessro/keyglow/internal/config"
	"github.com/tessro/keyglow/internal/render"
	"github.com/tessro/keyglow/internal/render/glow"
	"go.uber.org/zap"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Reload the configuration when it changes",
	Long: `Watches the configuration file and applies every valid change to a
running glow engine. Invalid edits are logged and the last good
configuration stays in effect.`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	path := targetPath()

	scene, err := render.NewScene(doc, glow.StyleBurst, render.DefaultKeyWidth)
	if err != nil {
		return err
	}

	w, err := config.NewWatcher(path, theme, logger)
	if err != nil {
		return err
	}
	defer func() { _ = w.Close() }()

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer cancel()

	logger.Info("Watching config", zap.String("path", path), zap.Int("keys", scene.Renderer().Len()))
	return watchLoop(ctx, w, scene)
}

// watchLoop applies reloaded documents to scene until the watcher stops.
func watchLoop(ctx context.Context, w *config.Watcher, scene *render.Scene) error {
	errc := make(chan error, 1)
	go func() { errc <- w.Start(ctx) }()

	for next := range w.Updates() {
		doc = next
		resized := scene.Reconfigure(next)
		layout := scene.Layout()
		logger.Info("Config reloaded",
			zap.Bool("resized", resized),
			zap.Uint8("low", layout.Low),
			zap.Uint8("high", layout.High),
			zap.Int("keys", scene.Renderer().Len()))
	}

	if err := <-errc; err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}
