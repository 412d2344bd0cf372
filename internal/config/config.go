// Package config loads runtime settings from defaults, MUDRA_* environment
// variables and command-line flags.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "MUDRA"

// DatabaseFile is the history database name inside DataDir.
const DatabaseFile = "mudra.db"

// Config holds the resolved application settings.
type Config struct {
	Addr                   string  `mapstructure:"addr"`
	CameraID               int     `mapstructure:"camera_id"`
	FrameWidth             int     `mapstructure:"frame_width"`
	FrameHeight            int     `mapstructure:"frame_height"`
	DataDir                string  `mapstructure:"data_dir"`
	History                bool    `mapstructure:"history"`
	PluginDir              string  `mapstructure:"plugin_dir"`
	StaticDir              string  `mapstructure:"static_dir"`
	Tray                   bool    `mapstructure:"tray"`
	VolumePlugin           string  `mapstructure:"volume_plugin"`
	MaxHands               int     `mapstructure:"max_hands"`
	MinDetectionConfidence float64 `mapstructure:"min_detection_confidence"`
	MinTrackingConfidence  float64 `mapstructure:"min_tracking_confidence"`
}

// DatabasePath returns the location of the history database.
func (c Config) DatabasePath() string {
	return filepath.Join(c.DataDir, DatabaseFile)
}

type flagSpec struct {
	key   string
	value any
	usage string
}

var flags = []flagSpec{
	{"addr", ":5000", "HTTP listen address"},
	{"camera_id", 0, "camera device index"},
	{"frame_width", 640, "capture width in pixels"},
	{"frame_height", 480, "capture height in pixels"},
	{"data_dir", "~/.mudra", "directory for the database and helper scripts"},
	{"history", true, "record sessions and volume changes"},
	{"plugin_dir", "", "plugin directory (default ./plugins, else <data-dir>/plugins)"},
	{"static_dir", "", "serve the UI from this directory instead of the built-in page"},
	{"tray", false, "show a system tray icon"},
	{"volume_plugin", "volume-control", "plugin used to drive the system mixer"},
	{"max_hands", 1, "maximum number of hands to detect"},
	{"min_detection_confidence", 0.6, "minimum hand detection confidence"},
	{"min_tracking_confidence", 0.6, "minimum hand tracking confidence"},
}

// flagName turns a config key into its command-line flag name.
func flagName(key string) string {
	return strings.ReplaceAll(key, "_", "-")
}

// NewFlagSet declares one flag per config key.
func NewFlagSet(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	for _, f := range flags {
		switch v := f.value.(type) {
		case string:
			fs.String(flagName(f.key), v, f.usage)
		case int:
			fs.Int(flagName(f.key), v, f.usage)
		case bool:
			fs.Bool(flagName(f.key), v, f.usage)
		case float64:
			fs.Float64(flagName(f.key), v, f.usage)
		}
	}
	return fs
}

// Load parses args and resolves the configuration. Flags override
// environment variables, which override defaults.
func Load(args []string) (Config, error) {
	fs := NewFlagSet("mudra")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return FromFlags(fs)
}

// FromFlags resolves the configuration from an already parsed flag set.
func FromFlags(fs *pflag.FlagSet) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	for _, f := range flags {
		v.SetDefault(f.key, f.value)
		if pf := fs.Lookup(flagName(f.key)); pf != nil {
			if err := v.BindPFlag(f.key, pf); err != nil {
				return Config{}, fmt.Errorf("bind flag %s: %w", pf.Name, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	if err := cfg.resolve(); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// resolve expands paths and fills in derived defaults.
func (c *Config) resolve() error {
	dir, err := expandHome(c.DataDir)
	if err != nil {
		return err
	}
	c.DataDir = dir

	if c.PluginDir == "" {
		c.PluginDir = defaultPluginDir(c.DataDir)
	} else if c.PluginDir, err = expandHome(c.PluginDir); err != nil {
		return err
	}

	if c.StaticDir != "" {
		if c.StaticDir, err = expandHome(c.StaticDir); err != nil {
			return err
		}
	}
	return nil
}

// Validate reports settings that cannot work.
func (c Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("addr must not be empty")
	}
	if c.CameraID < 0 {
		return fmt.Errorf("camera_id must not be negative, got %d", c.CameraID)
	}
	if c.FrameWidth <= 0 || c.FrameHeight <= 0 {
		return fmt.Errorf("frame size must be positive, got %dx%d", c.FrameWidth, c.FrameHeight)
	}
	if c.MaxHands < 1 {
		return fmt.Errorf("max_hands must be at least 1, got %d", c.MaxHands)
	}
	for name, val := range map[string]float64{
		"min_detection_confidence": c.MinDetectionConfidence,
		"min_tracking_confidence":  c.MinTrackingConfidence,
	} {
		if val < 0 || val > 1 {
			return fmt.Errorf("%s must be within [0,1], got %g", name, val)
		}
	}
	return nil
}

func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

// defaultPluginDir prefers a plugins directory in the working directory,
// which is where the repository keeps the bundled plugins.
func defaultPluginDir(dataDir string) string {
	if info, err := os.Stat("plugins"); err == nil && info.IsDir() {
		if abs, err := filepath.Abs("plugins"); err == nil {
			return abs
		}
		return "plugins"
	}
	return filepath.Join(dataDir, "plugins")
}
