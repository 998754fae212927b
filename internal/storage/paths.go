// Package storage provides persistent storage for analysed positions and game statistics.
package storage

import (
	"os"
	"path/filepath"
	"runtime"
)

const appName = "othelloplay"

// EnvDataDir overrides the platform data directory when set.
const EnvDataDir = "OTHELLOPLAY_DATA"

// GetDataDir returns the data directory of the application, creating it if needed:
// - $OTHELLOPLAY_DATA when set
// - macOS: ~/Library/Application Support/othelloplay/
// - Linux: $XDG_DATA_HOME/othelloplay/ or ~/.local/share/othelloplay/
// - Windows: %APPDATA%/othelloplay/
func GetDataDir() (string, error) {
	dataDir := os.Getenv(EnvDataDir)
	if dataDir == "" {
		baseDir, err := platformBaseDir()
		if err != nil {
			return "", err
		}
		dataDir = filepath.Join(baseDir, appName)
	}

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return "", err
	}
	return dataDir, nil
}

func platformBaseDir() (string, error) {
	var env string
	var fallback []string

	switch runtime.GOOS {
	case "darwin":
		fallback = []string{"Library", "Application Support"}
	case "windows":
		env, fallback = "APPDATA", []string{"AppData", "Roaming"}
	default:
		env, fallback = "XDG_DATA_HOME", []string{".local", "share"}
	}

	if env != "" {
		if dir := os.Getenv(env); dir != "" {
			return dir, nil
		}
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(append([]string{homeDir}, fallback...)...), nil
}

// GetDatabaseDir returns the directory for storing the BadgerDB database.
func GetDatabaseDir() (string, error) {
	dataDir, err := GetDataDir()
	if err != nil {
		return "", err
	}

	dbDir := filepath.Join(dataDir, "db")
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return "", err
	}
	return dbDir, nil
}
