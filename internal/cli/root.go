package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tessro/keyglow/internal/config"
	kgerrors "github.com/tessro/keyglow/internal/errors"
	"github.com/tessro/keyglow/internal/logging"
	"go.uber.org/zap"
)

var (
	cfgFile  string
	jsonOut  bool
	verbose  bool
	logLevel string
	logFile  string

	cfgPath string
	theme   string
	doc     *config.Document
	loadErr error
	logger  = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "keyglow",
	Short: "Piano visualizer configuration and key glow engine",
	Long: `Keyglow manages the piano visualizer's configuration file and drives
the key glow animation from a MIDI keyboard, the terminal, or a headless
simulation.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig()
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default: $XDG_CONFIG_HOME/keyglow/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&jsonOut, "json", "j", false, "output as JSON")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error (default: info)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "write logs to a file instead of stderr")
}

// applyEnvOverrides fills flags left unset from the environment.
func applyEnvOverrides() {
	if logLevel == "" {
		logLevel = os.Getenv(config.LogLevelEnvVar)
	}
	if logFile == "" {
		logFile = os.Getenv(config.LogFileEnvVar)
	}
}

// loggingOptions writes JSON lines to a log file and colored console
// output to a terminal.
func loggingOptions() logging.Options {
	return logging.Options{
		Level:   logLevel,
		File:    logFile,
		Verbose: verbose,
		JSON:    logFile != "",
	}
}

func initConfig() error {
	applyEnvOverrides()

	l, err := logging.New(loggingOptions())
	if err != nil {
		return err
	}
	logger = l

	theme = config.ThemeFromEnv()
	cfgPath = cfgFile
	if cfgPath == "" {
		cfgPath = config.FindConfigFile()
	}

	// A bad file never stops the program: the defaults are used and the
	// load error is kept for `config validate`.
	doc, loadErr = config.LoadOrDefault(cfgPath, theme, logger)
	return nil
}

// Execute runs the root command.
func Execute() {
	err := rootCmd.Execute()
	_ = logger.Sync()
	if err != nil {
		fmt.Fprintln(os.Stderr, kgerrors.Format(err))
		os.Exit(1)
	}
}

// JSONOutput returns true if JSON output is requested.
func JSONOutput() bool {
	return jsonOut
}

// Verbose returns true if verbose output is requested.
func Verbose() bool {
	return verbose
}
