package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/barbar/internal/config"
	"github.com/alexisbeaulieu97/barbar/internal/tui/dashboard"
)

var errNotInteractive = errors.New("watch requires an interactive terminal")

func newWatchCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Run the live button bar in the terminal",
		Long: `Run the button bar as a terminal dashboard. Button states and timers are
re-evaluated as the variables file changes; pressing a button prints its
command when the dashboard exits.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, flags)
		},
	}
}

func runWatch(cmd *cobra.Command, flags *rootFlags) error {
	if !isTerminal(cmd.OutOrStdout()) {
		return errNotInteractive
	}

	configDir := flags.configDir
	if configDir == "" {
		dir, err := defaultConfigDir()
		if err != nil {
			return fmt.Errorf("failed to determine config directory: %w", err)
		}
		configDir = dir
	}
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return err
	}

	// The dashboard owns the terminal, so logs go to a file.
	logFile, err := os.OpenFile(filepath.Join(configDir, watchLogFileName), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer logFile.Close()

	watchFlags := *flags
	watchFlags.configDir = configDir
	app, err := loadApp(cmd, &watchFlags, logFile)
	if err != nil {
		return err
	}

	defs, err := app.buttons()
	if err != nil {
		return err
	}

	store := config.NewSettingsStore(app.settingsPath, app.stored, config.SaveDebounceDelay, app.log)
	vars := newVarsSource(app.settings.VarsFile, app.log)

	var pressed []string
	model := dashboard.NewModel(app.service.NewBar(defs, vars.Get), defs, app.service, dashboard.Options{
		Settings: store,
		OnPress: func(command string) {
			app.log.WithFields(map[string]any{"command": command}).Info("button pressed")
			pressed = append(pressed, command)
		},
	})

	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	_, runErr := program.Run()

	if err := store.Close(); err != nil {
		app.log.Error(err, "failed to save settings")
	}

	out := cmd.OutOrStdout()
	for _, command := range pressed {
		fmt.Fprintf(out, "> %s\n", command)
	}

	if runErr != nil && !errors.Is(runErr, tea.ErrProgramKilled) {
		return fmt.Errorf("dashboard failed: %w", runErr)
	}
	return nil
}
