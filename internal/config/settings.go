package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	barerrors "github.com/alexisbeaulieu97/barbar/pkg/errors"
)

const (
	// DefaultIconSize is the edge length icons are displayed at.
	DefaultIconSize = 64

	DefaultSheetCacheSize = 10
	DefaultIconCacheSize  = 200
	DefaultExprCacheSize  = 100

	DefaultButtonsFile = "buttons.yaml"
	DefaultVarsFile    = "vars.yaml"
	DefaultLogLevel    = "info"
)

// Settings are the user-adjustable runtime options stored in barbar.yaml.
type Settings struct {
	AssetDir       string `yaml:"asset_dir"`
	CacheDir       string `yaml:"cache_dir,omitempty"`
	IconSize       int    `yaml:"icon_size" validate:"min=8,max=512"`
	ShowTimers     bool   `yaml:"show_timers"`
	LogLevel       string `yaml:"log_level" validate:"log_level"`
	SheetCacheSize int    `yaml:"sheet_cache_size" validate:"min=1"`
	IconCacheSize  int    `yaml:"icon_cache_size" validate:"min=1"`
	ExprCacheSize  int    `yaml:"expr_cache_size" validate:"min=1"`
	ButtonsFile    string `yaml:"buttons_file"`
	VarsFile       string `yaml:"vars_file"`
}

// DefaultSettings returns the settings used when no file exists.
func DefaultSettings() Settings {
	return Settings{
		AssetDir:       "assets",
		IconSize:       DefaultIconSize,
		ShowTimers:     true,
		LogLevel:       DefaultLogLevel,
		SheetCacheSize: DefaultSheetCacheSize,
		IconCacheSize:  DefaultIconCacheSize,
		ExprCacheSize:  DefaultExprCacheSize,
		ButtonsFile:    DefaultButtonsFile,
		VarsFile:       DefaultVarsFile,
	}
}

// ResolvedCacheDir returns the variant cache directory, defaulting to
// "cache/variants" inside the asset directory.
func (s Settings) ResolvedCacheDir() string {
	if s.CacheDir != "" {
		return s.CacheDir
	}
	return filepath.Join(s.AssetDir, "cache", "variants")
}

// Resolve makes relative file settings relative to baseDir.
func (s Settings) Resolve(baseDir string) Settings {
	join := func(p string) string {
		if p == "" || filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(baseDir, p)
	}
	s.AssetDir = join(s.AssetDir)
	s.CacheDir = join(s.CacheDir)
	s.ButtonsFile = join(s.ButtonsFile)
	s.VarsFile = join(s.VarsFile)
	return s
}

// LoadSettings reads settings from path. Keys absent from the file keep their
// defaults, and a missing file yields DefaultSettings.
func LoadSettings(path string) (Settings, error) {
	settings := DefaultSettings()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return settings, barerrors.NewParseError(path, 0, err)
	}

	if err := yaml.Unmarshal(data, &settings); err != nil {
		return DefaultSettings(), barerrors.NewParseError(path, extractLine(err), err)
	}

	if err := ValidateSettings(&settings); err != nil {
		return DefaultSettings(), err
	}

	return settings, nil
}

// SaveSettings writes settings to path atomically.
func SaveSettings(path string, settings Settings) error {
	if err := ValidateSettings(&settings); err != nil {
		return err
	}

	data, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create settings directory: %w", err)
		}
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write temporary file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to rename temporary file: %w", err)
	}

	return nil
}
