// Package config loads the daemon's TOML configuration. The format mirrors
// greetd's own config.toml; every field has a default so the daemon runs
// without any file present.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// DefaultPath is where the daemon looks for its config when --config is not
// given.
const DefaultPath = "/etc/greetd-game-mode/config.toml"

type Config struct {
	Greetd   Greetd   `toml:"greetd"`
	Input    Input    `toml:"input"`
	Terminal Terminal `toml:"terminal"`
	Service  Service  `toml:"service"`
	Log      Log      `toml:"log"`
}

// Greetd locates the login manager's configuration directory and the three
// files inside it: the active pointer and the two static mode configs.
type Greetd struct {
	Dir           string `toml:"dir"`
	ConfigFile    string `toml:"config_file"`
	DesktopConfig string `toml:"desktop_config"`
	GameConfig    string `toml:"game_config"`
}

type Input struct {
	// ModeButtons are the key codes treated as the Mode/Guide button,
	// by kernel name (BTN_MODE, KEY_MENU) or numeric code.
	ModeButtons []string `toml:"mode_buttons"`
	PollMillis  int      `toml:"poll_interval_ms"`
	ScanMillis  int      `toml:"scan_interval_ms"`
}

type Terminal struct {
	// VT is the virtual terminal greetd runs on.
	VT int `toml:"vt"`
	// Switch runs chvt to that terminal after entering game mode.
	Switch bool `toml:"switch"`
	// Guard ignores gamepad input while a user session owns the terminal.
	Guard bool `toml:"guard"`
}

type Service struct {
	Unit    string `toml:"unit"`
	UseSudo bool   `toml:"use_sudo"`
}

type Log struct {
	File  string `toml:"file"`
	Debug bool   `toml:"debug"`
}

// Default returns the built-in configuration for a standard greetd install.
func Default() *Config {
	return &Config{
		Greetd: Greetd{
			Dir:           "/etc/greetd",
			ConfigFile:    "config.toml",
			DesktopConfig: "config_default.toml",
			GameConfig:    "game_mode_login.toml",
		},
		Input: Input{
			ModeButtons: []string{"BTN_MODE"},
			PollMillis:  10,
			ScanMillis:  2000,
		},
		Terminal: Terminal{
			VT:    1,
			Guard: true,
		},
		Service: Service{
			Unit:    "greetd",
			UseSudo: true,
		},
		Log: Log{
			File: "/var/log/greetd-game-mode.log",
		},
	}
}

// Load reads the config at path, or the default path when path is empty. A
// missing file at the default path yields the defaults; an explicitly named
// file must exist.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg := Default()
	if _, err := toml.Decode(string(data), cfg); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Greetd.Dir == "" || c.Greetd.ConfigFile == "" {
		return fmt.Errorf("greetd dir and config_file must be set")
	}
	if len(c.Input.ModeButtons) == 0 {
		return fmt.Errorf("input.mode_buttons must not be empty")
	}
	if c.Terminal.VT < 0 {
		return fmt.Errorf("terminal.vt must be >= 0")
	}
	if c.Service.Unit == "" {
		return fmt.Errorf("service.unit must be set")
	}
	return nil
}

// ConfigPath is the active-config pointer greetd reads.
func (c *Config) ConfigPath() string {
	return filepath.Join(c.Greetd.Dir, c.Greetd.ConfigFile)
}

// DesktopConfigPath is the static desktop-mode config.
func (c *Config) DesktopConfigPath() string {
	return filepath.Join(c.Greetd.Dir, c.Greetd.DesktopConfig)
}

// GameConfigPath is the static game-mode config.
func (c *Config) GameConfigPath() string {
	return filepath.Join(c.Greetd.Dir, c.Greetd.GameConfig)
}

// PollInterval is the loop's bounded wait between empty polls.
func (c *Config) PollInterval() time.Duration {
	if c.Input.PollMillis <= 0 {
		return 10 * time.Millisecond
	}
	return time.Duration(c.Input.PollMillis) * time.Millisecond
}

// ScanInterval is the device hot-plug rescan cadence.
func (c *Config) ScanInterval() time.Duration {
	if c.Input.ScanMillis <= 0 {
		return 2 * time.Second
	}
	return time.Duration(c.Input.ScanMillis) * time.Millisecond
}
