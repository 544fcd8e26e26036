package main

import (
	"bufio"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	APIBase       string
	Limit         int
	Timeout       time.Duration
	Store         string // sqlite, file or memory
	StorePath     string
	SaveDirectory string
	LogFile       string
	LogLevel      slog.Level
	SeqURL        string
}

func defaultConfig(home string) *Config {
	return &Config{
		APIBase:   "http://localhost:5000",
		Limit:     defaultResultLimit,
		Timeout:   30 * time.Second,
		Store:     "sqlite",
		StorePath: filepath.Join(home, ".bidgrid", "layout.db"),
		LogFile:   filepath.Join(home, ".bidgrid", "bidgrid.log"),
		LogLevel:  slog.LevelInfo,
	}
}

func loadConfig() *Config {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}
	config := defaultConfig(homeDir)

	if file, err := os.Open(filepath.Join(homeDir, ".bidgridrc")); err == nil {
		parseConfig(file, homeDir, config)
		file.Close()
	}

	if base := os.Getenv("BIDGRID_API_BASE"); base != "" {
		config.APIBase = base
	}
	return config
}

// parseConfig reads key=value lines into config. Unknown keys and bad
// values are skipped.
func parseConfig(r io.Reader, homeDir string, config *Config) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		switch strings.ToLower(key) {
		case "api_base", "apibase", "api":
			config.APIBase = strings.TrimRight(value, "/")
		case "limit":
			if n, err := strconv.Atoi(value); err == nil && n > 0 {
				config.Limit = n
			}
		case "timeout":
			if d, err := time.ParseDuration(value); err == nil && d > 0 {
				config.Timeout = d
			} else if n, err := strconv.Atoi(value); err == nil && n > 0 {
				config.Timeout = time.Duration(n) * time.Second
			}
		case "store":
			switch v := strings.ToLower(value); v {
			case "sqlite", "file", "memory":
				config.Store = v
			}
		case "store_path", "storepath":
			config.StorePath = expandPath(value, homeDir)
		case "savedirectory", "save_directory", "savedir":
			config.SaveDirectory = expandPath(value, homeDir)
		case "log_file", "logfile":
			config.LogFile = expandPath(value, homeDir)
		case "log_level", "loglevel":
			var level slog.Level
			if err := level.UnmarshalText([]byte(value)); err == nil {
				config.LogLevel = level
			}
		case "seq_url", "sequrl":
			config.SeqURL = value
		}
	}
}

func expandPath(value, homeDir string) string {
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
