package cli

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/huh"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/tessro/keyglow/internal/config"
	kgerrors "github.com/tessro/keyglow/internal/errors"
	"github.com/tessro/keyglow/internal/tui/styles"
	"go.uber.org/zap"
)

var (
	configShowCopy  bool
	configInitForce bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long:  `Commands for viewing and editing keyglow configuration.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long:  `Display the effective configuration, with defaults filled in.`,
	RunE:  runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration",
	Long:  `Create a new configuration file with default values.`,
	RunE:  runConfigInit,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show the configuration file path",
	RunE:  runConfigPath,
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the configuration file",
	Long:  `Parse the configuration file strictly and check field ranges.`,
	RunE:  runConfigValidate,
}

var configThemesCmd = &cobra.Command{
	Use:   "themes",
	Short: "List palette themes",
	RunE:  runConfigThemes,
}

var configSetThemeCmd = &cobra.Command{
	Use:   "set-theme [name]",
	Short: "Replace the key palette with a theme",
	Long: `Replace the appearance color schema with a theme palette.

Without a name, shows a picker.

Examples:
  keyglow config set-theme inferno
  keyglow config set-theme`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConfigSetTheme,
}

func init() {
	configShowCmd.Flags().BoolVar(&configShowCopy, "copy", false, "also copy the output to the clipboard")
	configInitCmd.Flags().BoolVarP(&configInitForce, "force", "f", false, "overwrite an existing file")

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configValidateCmd)
	configCmd.AddCommand(configThemesCmd)
	configCmd.AddCommand(configSetThemeCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	var buf bytes.Buffer
	if JSONOutput() {
		if err := writeJSON(&buf, doc); err != nil {
			return err
		}
	} else if err := config.Save(&buf, doc); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	_, _ = out.Write(buf.Bytes())

	if configShowCopy {
		if err := clipboard.WriteAll(buf.String()); err != nil {
			return fmt.Errorf("failed to copy to clipboard: %w", err)
		}
		if !JSONOutput() {
			fmt.Fprintln(cmd.ErrOrStderr(), "Copied to clipboard")
		}
	}
	return nil
}

// targetPath is the file config commands write to.
func targetPath() string {
	if cfgPath != "" {
		return cfgPath
	}
	return config.DefaultPath()
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := targetPath()

	if _, err := os.Stat(path); err == nil && !configInitForce {
		return kgerrors.WithSuggestion(
			fmt.Errorf("config file already exists at %s", path),
			"Use --force to overwrite it",
		)
	}

	if err := config.SaveFile(path, config.Default(theme)); err != nil {
		return err
	}
	logger.Info("Created config file", zap.String("path", path), zap.String("theme", theme))

	out := cmd.OutOrStdout()
	if JSONOutput() {
		return writeJSON(out, map[string]string{
			"status": "created",
			"path":   path,
		})
	}
	fmt.Fprintf(out, "Created config file: %s\n", path)
	fmt.Fprintln(out, "\nNext steps:")
	fmt.Fprintln(out, "  1. Pick a palette with 'keyglow config set-theme'")
	fmt.Fprintln(out, "  2. Run 'keyglow preview' to try the glow")
	return nil
}

type pathInfo struct {
	Path     string `json:"path"`
	Exists   bool   `json:"exists"`
	Size     uint64 `json:"size,omitempty"`
	Modified string `json:"modified,omitempty"`
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	info := pathInfo{Path: targetPath()}

	st, err := os.Stat(info.Path)
	switch {
	case err == nil:
		info.Exists = true
		info.Size = uint64(st.Size())
		info.Modified = st.ModTime().Format(time.RFC3339)
	case !errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("failed to stat config: %w", err)
	}

	out := cmd.OutOrStdout()
	if JSONOutput() {
		return writeJSON(out, info)
	}
	if !info.Exists {
		fmt.Fprintf(out, "%s (not created, using defaults)\n", info.Path)
		return nil
	}
	fmt.Fprintf(out, "%s (%s, modified %s)\n", info.Path, humanize.Bytes(info.Size), humanize.Time(st.ModTime()))
	return nil
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	if loadErr != nil {
		return loadErr
	}
	if err := doc.Validate(); err != nil {
		return fmt.Errorf("%w: %w", kgerrors.ErrInvalidConfig, err)
	}

	out := cmd.OutOrStdout()
	if JSONOutput() {
		return writeJSON(out, map[string]any{
			"valid": true,
			"path":  cfgPath,
		})
	}
	if cfgPath == "" {
		fmt.Fprintln(out, "No config file, defaults are valid")
		return nil
	}
	fmt.Fprintf(out, "%s is valid\n", cfgPath)
	return nil
}

func activeTheme() string {
	if slices.Contains(config.ThemeNames(), theme) {
		return theme
	}
	return config.ThemeDefault
}

func runConfigThemes(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	if JSONOutput() {
		themes := make(map[string][]config.ColorSchemaV1)
		for _, name := range config.ThemeNames() {
			themes[name] = config.ResolveTheme(name)
		}
		return writeJSON(out, themes)
	}

	current := activeTheme()
	for _, name := range config.ThemeNames() {
		label := fmt.Sprintf("%s %s", StatusIcon(name == current), name)
		if name == current {
			label = styles.Highlight.Render(label)
		}
		fmt.Fprintln(out, label)
		fmt.Fprintln(out, styles.PaletteRow(config.ResolveTheme(name), 4))
	}
	fmt.Fprintf(out, "\nDefault theme comes from %s\n", config.ThemeEnvVar)
	return nil
}

func runConfigSetTheme(cmd *cobra.Command, args []string) error {
	var name string
	if len(args) == 1 {
		name = args[0]
	} else {
		picked, err := pickTheme()
		if err != nil {
			return err
		}
		name = picked
	}

	if !slices.Contains(config.ThemeNames(), name) {
		return kgerrors.WithSuggestion(
			fmt.Errorf("unknown theme %q", name),
			"Run 'keyglow config themes' to list themes",
		)
	}

	path := targetPath()
	current, err := config.LoadFile(path, theme)
	switch {
	case errors.Is(err, kgerrors.ErrConfigNotFound):
		current = config.Default(theme)
	case err != nil:
		return err
	}

	appearance := current.Appearance.Latest()
	appearance.ColorSchema = config.ResolveTheme(name)
	current.Appearance.V1 = &appearance

	if err := config.SaveFile(path, current); err != nil {
		return err
	}
	logger.Info("Theme applied", zap.String("theme", name), zap.String("path", path))

	out := cmd.OutOrStdout()
	if JSONOutput() {
		return writeJSON(out, map[string]string{
			"theme": name,
			"path":  path,
		})
	}
	fmt.Fprintf(out, "Theme set to %s in %s\n", name, path)
	return nil
}

func pickTheme() (string, error) {
	var options []huh.Option[string]
	for _, name := range config.ThemeNames() {
		options = append(options, huh.NewOption(name, name))
	}

	selected := activeTheme()
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Select palette theme").
				Description("Replaces the key colors in the config file").
				Options(options...).
				Value(&selected),
		),
	)

	if err := form.Run(); err != nil {
		return "", fmt.Errorf("selection cancelled: %w", err)
	}
	return selected, nil
}
