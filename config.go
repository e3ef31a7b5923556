package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const defaultPollInterval = 100 * time.Millisecond

type Config struct {
	SaveDirectory string
	Confirmations bool
	PollInterval  time.Duration
	LogFile       string
	LogLevel      slog.Level
	MetricsAddr   string
}

func defaultConfig() *Config {
	return &Config{
		Confirmations: true,
		PollInterval:  defaultPollInterval,
		LogLevel:      slog.LevelInfo,
	}
}

// loadConfig reads ~/.arrowsrc. A missing or unreadable file yields the
// defaults.
func loadConfig() *Config {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return defaultConfig()
	}
	config, err := readConfig(filepath.Join(homeDir, ".arrowsrc"), homeDir)
	if err != nil {
		return defaultConfig()
	}
	return config
}

func readConfig(path, homeDir string) (*Config, error) {
	config := defaultConfig()

	values, err := godotenv.Read(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	for key, value := range values {
		value = strings.TrimSpace(value)
		switch strings.ToLower(strings.TrimSpace(key)) {
		case "savedirectory", "save_directory", "savedir":
			config.SaveDirectory = expandPath(value, homeDir)
		case "confirmations", "confirm":
			config.Confirmations = strings.ToLower(value) == "true"
		case "pollinterval", "poll_interval":
			if d, err := time.ParseDuration(value); err == nil && d > 0 {
				config.PollInterval = d
			}
		case "logfile", "log_file":
			config.LogFile = expandPath(value, homeDir)
		case "loglevel", "log_level":
			var level slog.Level
			if err := level.UnmarshalText([]byte(value)); err == nil {
				config.LogLevel = level
			}
		case "metricsaddr", "metrics_addr":
			config.MetricsAddr = value
		}
	}

	return config, nil
}

func expandPath(value, homeDir string) string {
	if value == "" {
		return ""
	}
	if strings.HasPrefix(value, "~") {
		value = filepath.Join(homeDir, strings.TrimPrefix(value, "~"))
	}
	if !filepath.IsAbs(value) {
		if absPath, err := filepath.Abs(value); err == nil {
			value = absPath
		}
	}
	return value
}

func (c *Config) GetSavePath(filename string) string {
	if c.SaveDirectory == "" {
		return filename
	}
	os.MkdirAll(c.SaveDirectory, 0755)
	return filepath.Join(c.SaveDirectory, filename)
}

// openLog installs a text logger writing to LogFile. The returned closer
// must be called on exit.
func (c *Config) openLog() (io.Closer, error) {
	if c.LogFile == "" {
		return io.NopCloser(nil), nil
	}
	f, err := os.OpenFile(c.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	SetLogger(slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: c.LogLevel})))
	return f, nil
}
