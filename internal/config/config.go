package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	kgerrors "github.com/tessro/keyglow/internal/errors"
	"go.uber.org/zap"
)

// Environment variables read at the CLI boundary.
const (
	ConfigEnvVar   = "KEYGLOW_CONFIG"
	LogLevelEnvVar = "KEYGLOW_LOG_LEVEL"
	LogFileEnvVar  = "KEYGLOW_LOG_FILE"
)

const fileHeader = "# keyglow configuration\n# Sections are versioned: edit the fields under [section.V1].\n\n"

// FindConfigFile returns the first existing config file path.
// Search order: $KEYGLOW_CONFIG, $XDG_CONFIG_HOME/keyglow/config.toml,
// ~/.config/keyglow/config.toml, ~/.keyglowrc
func FindConfigFile() string {
	for _, p := range searchPaths() {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// DefaultPath is where a new config file is created.
func DefaultPath() string {
	if v := os.Getenv(ConfigEnvVar); v != "" {
		return v
	}
	paths := searchPaths()
	if len(paths) == 0 {
		return "keyglow.toml"
	}
	return paths[0]
}

func searchPaths() []string {
	var paths []string
	if v := os.Getenv(ConfigEnvVar); v != "" {
		paths = append(paths, v)
	}

	xdgConfig := os.Getenv("XDG_CONFIG_HOME")
	home, err := os.UserHomeDir()
	if xdgConfig == "" && err == nil {
		xdgConfig = filepath.Join(home, ".config")
	}
	if xdgConfig != "" {
		paths = append(paths, filepath.Join(xdgConfig, "keyglow", "config.toml"))
	}
	if err == nil {
		paths = append(paths, filepath.Join(home, ".keyglowrc"))
	}
	return paths
}

// LoadFile reads a document from a specific file path.
func LoadFile(path, theme string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", path, kgerrors.ErrConfigNotFound)
		}
		return nil, fmt.Errorf("failed to open config: %w", err)
	}
	defer func() { _ = f.Close() }()

	doc, err := Load(f, theme)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// SaveFile writes doc to path, creating parent directories.
func SaveFile(path string, doc *Document) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer func() { _ = f.Close() }()

	if _, err := f.WriteString(fileHeader); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	if err := Save(f, doc); err != nil {
		return err
	}
	return f.Close()
}

// LoadOrDefault loads path and falls back to defaults when the file is
// missing or unreadable. Schema drift and syntax errors are logged
// separately so that a downgrade is not mistaken for an empty config.
// The returned error is the load failure, if any, for the caller to surface.
func LoadOrDefault(path, theme string, logger *zap.Logger) (*Document, error) {
	if path == "" {
		logger.Debug("No config file found, using defaults", zap.String("theme", theme))
		return Default(theme), nil
	}

	doc, err := LoadFile(path, theme)
	if err == nil {
		logger.Debug("Loaded config", zap.String("path", path))
		return doc, nil
	}

	var parseErr *ParseError
	switch {
	case errors.Is(err, kgerrors.ErrConfigNotFound):
		logger.Debug("Config file missing, using defaults", zap.String("path", path))
		return Default(theme), nil
	case errors.As(err, &parseErr) && parseErr.Kind == UnknownField:
		logger.Warn("Config has unknown fields, using defaults",
			zap.String("path", path),
			zap.Strings("fields", parseErr.Fields))
	default:
		logger.Error("Config could not be parsed, using defaults",
			zap.String("path", path),
			zap.Error(err))
	}
	return Default(theme), err
}
