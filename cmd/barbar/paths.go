package main

import (
	"os"
	"path/filepath"
)

const (
	configDirEnv     = "BARBAR_CONFIG_DIR"
	settingsFileName = "barbar.yaml"
	watchLogFileName = "barbar.log"
)

func defaultConfigDir() (string, error) {
	if dir := os.Getenv(configDirEnv); dir != "" {
		return dir, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(home, ".barbar"), nil
}
