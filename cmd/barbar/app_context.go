package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/alexisbeaulieu97/barbar/internal/app/icons"
	"github.com/alexisbeaulieu97/barbar/internal/config"
	"github.com/alexisbeaulieu97/barbar/internal/logger"
)

// appContext carries everything a command needs after settings are loaded.
type appContext struct {
	settingsPath string
	// stored is the settings file as written, before flag overrides and path
	// resolution, so it can be saved back unchanged.
	stored   config.Settings
	settings config.Settings
	service  *icons.Service
	log      *logger.Logger
}

// loadApp reads barbar.yaml, applies flag overrides and builds the icon
// service. Logs go to logOut, or the command's stderr when nil.
func loadApp(cmd *cobra.Command, flags *rootFlags, logOut io.Writer) (*appContext, error) {
	configDir := flags.configDir
	if configDir == "" {
		dir, err := defaultConfigDir()
		if err != nil {
			return nil, fmt.Errorf("failed to determine config directory: %w", err)
		}
		configDir = dir
	}

	settingsPath := filepath.Join(configDir, settingsFileName)
	stored, err := config.LoadSettings(settingsPath)
	if err != nil {
		return nil, err
	}

	settings := stored
	if flags.assetDir != "" {
		if settings.AssetDir, err = filepath.Abs(flags.assetDir); err != nil {
			return nil, err
		}
	}
	if flags.cacheDir != "" {
		if settings.CacheDir, err = filepath.Abs(flags.cacheDir); err != nil {
			return nil, err
		}
	}
	if flags.logLevel != "" {
		settings.LogLevel = flags.logLevel
	}
	if flags.verbose {
		settings.LogLevel = "debug"
	}
	settings = settings.Resolve(configDir)

	if logOut == nil {
		logOut = cmd.ErrOrStderr()
	}
	log, err := logger.New(logger.Options{
		Level:         settings.LogLevel,
		HumanReadable: isTerminal(logOut),
		Writer:        logOut,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	service, err := icons.NewService(settings, icons.Options{}, log)
	if err != nil {
		return nil, err
	}

	return &appContext{
		settingsPath: settingsPath,
		stored:       stored,
		settings:     settings,
		service:      service,
		log:          log,
	}, nil
}

func (a *appContext) buttons() ([]config.ButtonDefinition, error) {
	return config.LoadButtons(a.settings.ButtonsFile)
}

func (a *appContext) vars() (map[string]any, error) {
	return config.LoadVars(a.settings.VarsFile)
}

func isTerminal(writer any) bool {
	if file, ok := writer.(*os.File); ok {
		return term.IsTerminal(int(file.Fd()))
	}
	return false
}
