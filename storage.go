package main

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"github.com/kaiquegovani/tetrigo/highscore"
)

type Config struct {
	Theme string `json:"theme"`
	Sound bool   `json:"sound"`
	Scale int    `json:"scale"`
}

func defaultConfig() Config {
	return Config{
		Theme: themes[0].Name,
		Sound: true,
		Scale: 1,
	}
}

func loadConfig() (Config, error) {
	config := defaultConfig()
	path, err := configPath()
	if err != nil {
		return config, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return config, nil
	}
	if err := json.Unmarshal(data, &config); err != nil {
		return defaultConfig(), err
	}
	return normalizeConfig(config), nil
}

func normalizeConfig(config Config) Config {
	if themeIndexByName(config.Theme) < 0 {
		config.Theme = themes[0].Name
	}
	config.Scale = clampScale(config.Scale)
	return config
}

func saveConfig(config Config) error {
	path, err := configPath()
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// persistConfig saves the config and logs, rather than surfaces, a failure.
func persistConfig(config Config) {
	if err := saveConfig(config); err != nil {
		log.Warn().Err(err).Msg("save config")
	}
}

func configPath() (string, error) {
	dir, err := appDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// scoresPath resolves the high-score file, preferring the environment override.
func scoresPath(env Env) (string, error) {
	if env.ScoresFile != "" {
		return env.ScoresFile, nil
	}
	return highscore.DefaultPath()
}

func appDir() (string, error) {
	root, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(root, "tetrigo")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return dir, nil
}
