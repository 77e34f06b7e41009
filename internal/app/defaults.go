package app

import (
	"fmt"
	"os"
	"path/filepath"

	"wordtrack/internal/config"
)

// GetDefaults returns application default paths, checking environment variables first.
// Environment variables:
//   - WORDTRACK_CONFIG_PATH: config file location (default: ~/.config/wordtrack.toml)
//   - WORDTRACK_HOME: base directory for wordtrack data (default: ~/.local/share/wordtrack)
func GetDefaults() (map[string]string, error) {
	configPath, err := getConfigPath()
	if err != nil {
		return nil, err
	}

	baseDir, err := getBaseDir()
	if err != nil {
		return nil, err
	}

	return map[string]string{
		"config_path": configPath,
		"base_dir":    baseDir,
		"log_dir":     filepath.Join(baseDir, "log"),
	}, nil
}

// getConfigPath returns the config file path, checking WORDTRACK_CONFIG_PATH first,
// then falling back to the default ~/.config/wordtrack.toml.
func getConfigPath() (string, error) {
	if path := os.Getenv("WORDTRACK_CONFIG_PATH"); path != "" {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "wordtrack.toml"), nil
}

// getBaseDir returns the base directory for wordtrack data, checking WORDTRACK_HOME first,
// then falling back to the XDG default ~/.local/share/wordtrack.
func getBaseDir() (string, error) {
	if path := os.Getenv("WORDTRACK_HOME"); path != "" {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(homeDir, ".local", "share", "wordtrack"), nil
}

// LoadConfig reads the config file after loading optional .env files from
// the working directory and the base directory, then applies environment
// overrides.
func LoadConfig() (*config.Config, string, error) {
	for _, dir := range []string{".", os.Getenv("WORDTRACK_HOME")} {
		if dir == "" {
			continue
		}
		if err := config.LoadEnv(dir); err != nil {
			return nil, "", err
		}
	}

	defaults, err := GetDefaults()
	if err != nil {
		return nil, "", fmt.Errorf("getting defaults: %w", err)
	}

	cfg, err := config.ReadFromFile(defaults["config_path"])
	if err != nil {
		return nil, "", fmt.Errorf("reading config: %w", err)
	}
	cfg.ApplyEnv(os.Getenv)
	return cfg, defaults["config_path"], nil
}
