// Package config holds the embedder-facing settings for a run: execution
// limits, memory segment sizing, and trace/monitor toggles, loaded from
// and saved to TOML.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/BurntSushi/toml"
)

// Config is the full set of settings an embedder may tune before starting
// a machine.
type Config struct {
	// Execution settings
	Execution struct {
		MaxRetirements uint64 `toml:"max_retirements"`
		DefaultEntry   string `toml:"default_entry"`
		EnableTrace    bool   `toml:"enable_trace"`
		EnableStats    bool   `toml:"enable_stats"`
	} `toml:"execution"`

	// Memory settings
	Memory struct {
		CodeSize  uint32 `toml:"code_size"`
		DataSize  uint32 `toml:"data_size"`
		HeapSize  uint32 `toml:"heap_size"`
		StackSize uint32 `toml:"stack_size"`
	} `toml:"memory"`

	// Trace settings
	Trace struct {
		OutputFile  string `toml:"output_file"`
		FilterRegs  string `toml:"filter_registers"` // comma-separated, e.g. "x1,x2,pc"
		MaxEntries  int    `toml:"max_entries"`
		TrackBranch bool   `toml:"track_branches"`
	} `toml:"trace"`

	// Statistics settings
	Statistics struct {
		OutputFile  string `toml:"output_file"`
		Format      string `toml:"format"` // json, csv
		CollectMix  bool   `toml:"collect_instruction_mix"`
		TrackBranch bool   `toml:"track_branch_outcomes"`
	} `toml:"statistics"`
}

// DefaultConfig returns a configuration with default values.
func DefaultConfig() *Config {
	cfg := &Config{}

	cfg.Execution.MaxRetirements = 1000000
	cfg.Execution.DefaultEntry = "0x00000000"
	cfg.Execution.EnableTrace = false
	cfg.Execution.EnableStats = false

	cfg.Memory.CodeSize = 0x10000
	cfg.Memory.DataSize = 0x10000
	cfg.Memory.HeapSize = 0x10000
	cfg.Memory.StackSize = 0x10000

	cfg.Trace.OutputFile = "trace.log"
	cfg.Trace.FilterRegs = ""
	cfg.Trace.MaxEntries = 100000
	cfg.Trace.TrackBranch = true

	cfg.Statistics.OutputFile = "stats.json"
	cfg.Statistics.Format = "json"
	cfg.Statistics.CollectMix = true
	cfg.Statistics.TrackBranch = true

	return cfg
}

// GetConfigPath returns the platform-specific config file path.
func GetConfigPath() string {
	var configDir string

	switch runtime.GOOS {
	case "windows":
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		configDir = filepath.Join(configDir, "rv32icore")

	case "darwin", "linux":
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "config.toml"
		}
		configDir = filepath.Join(homeDir, ".config", "rv32icore")

	default:
		return "config.toml"
	}

	if err := os.MkdirAll(configDir, 0750); err != nil {
		return "config.toml"
	}

	return filepath.Join(configDir, "config.toml")
}

// GetLogPath returns the platform-specific log directory path.
func GetLogPath() string {
	var logDir string

	switch runtime.GOOS {
	case "windows":
		logDir = os.Getenv("APPDATA")
		if logDir == "" {
			logDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		logDir = filepath.Join(logDir, "rv32icore", "logs")

	case "darwin", "linux":
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "logs"
		}
		logDir = filepath.Join(homeDir, ".local", "share", "rv32icore", "logs")

	default:
		return "logs"
	}

	if err := os.MkdirAll(logDir, 0750); err != nil {
		return "logs"
	}

	return logDir
}

// Load loads configuration from the default config file.
func Load() (*Config, error) {
	return LoadFrom(GetConfigPath())
}

// LoadFrom loads configuration from the specified file. A missing file is
// not an error — it yields the default configuration.
func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// Save saves configuration to the default config file.
func (c *Config) Save() error {
	return c.SaveTo(GetConfigPath())
}

// SaveTo saves configuration to the specified file, creating its parent
// directory if necessary.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path) // #nosec G304 -- user config file path
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	encoder := toml.NewEncoder(f)
	if err := encoder.Encode(c); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	return nil
}
