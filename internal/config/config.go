package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

const (
	// EnvPrefix prefixes every environment override (root -> DEMOLAUNCHER_ROOT).
	EnvPrefix = "DEMOLAUNCHER"
	// ConfigEnv names an explicit config file.
	ConfigEnv = "DEMOLAUNCHER_CONFIG"
	// DefaultRoot is the demos folder used when none is configured.
	DefaultRoot = "demos"
)

// executable is swapped in tests.
var executable = os.Executable

// Launch modes.
const (
	ModeExec = "exec" // hand the terminal to the child
	ModePTY  = "pty"  // capture child output in a pseudo-terminal
)

// Config holds application configuration.
type Config struct {
	Root   string
	Launch LaunchConfig
	UI     UIConfig
	Log    LogConfig
}

// LaunchConfig holds the external executables and how they are run.
type LaunchConfig struct {
	Python   string
	Notebook string
	Mode     string
	PTYRows  int `mapstructure:"pty_rows"`
	PTYCols  int `mapstructure:"pty_cols"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	Flash         time.Duration
	ShowHidden    bool   `mapstructure:"show_hidden"`
	MarkdownStyle string `mapstructure:"markdown_style"`
	TileWidth     int    `mapstructure:"tile_width"`
}

// LogConfig holds the log file location. The terminal belongs to the UI.
type LogConfig struct {
	File string
}

// Load reads configuration from defaults, an optional config file and env.
// Env var overrides use prefix DEMOLAUNCHER_. An explicit path (or
// $DEMOLAUNCHER_CONFIG) must exist; the default location is optional.
func Load(path string) (Config, error) {
	v := viper.New()

	v.SetDefault("root", DefaultRoot)
	v.SetDefault("launch.python", "python3")
	v.SetDefault("launch.notebook", "jupyter-lab")
	v.SetDefault("launch.mode", ModeExec)
	v.SetDefault("launch.pty_rows", 40)
	v.SetDefault("launch.pty_cols", 120)
	v.SetDefault("ui.flash", 2*time.Second)
	v.SetDefault("ui.show_hidden", false)
	v.SetDefault("ui.markdown_style", "auto")
	v.SetDefault("ui.tile_width", 18)
	v.SetDefault("log.file", filepath.Join(os.TempDir(), "demolauncher.log"))

	if path == "" {
		path = os.Getenv(ConfigEnv)
	}
	explicit := path != ""
	if explicit {
		expanded, err := homedir.Expand(path)
		if err != nil {
			return Config{}, fmt.Errorf("expand config path: %w", err)
		}
		v.SetConfigFile(expanded)
	} else {
		if home, err := homedir.Dir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "demolauncher"))
		}
		v.SetConfigName("config")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.expandPaths(); err != nil {
		return Config{}, err
	}
	if c.Root == DefaultRoot {
		c.Root = resolveDefaultRoot()
	}
	return c, nil
}

// resolveDefaultRoot prefers ./demos and falls back to the demos folder next
// to the installed binary. If neither exists the relative name is kept so the
// error names what was looked for.
func resolveDefaultRoot() string {
	if isDir(DefaultRoot) {
		return DefaultRoot
	}
	exe, err := executable()
	if err != nil {
		return DefaultRoot
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	if dir := filepath.Join(filepath.Dir(exe), DefaultRoot); isDir(dir) {
		return dir
	}
	return DefaultRoot
}

func isDir(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.IsDir()
}

func (c *Config) expandPaths() error {
	var err error
	if c.Root, err = homedir.Expand(c.Root); err != nil {
		return fmt.Errorf("expand root: %w", err)
	}
	if c.Log.File, err = homedir.Expand(c.Log.File); err != nil {
		return fmt.Errorf("expand log file: %w", err)
	}
	return nil
}

// Override applies non-empty flag values on top of the loaded config.
func (c *Config) Override(root, mode, python, notebook string) error {
	if root != "" {
		expanded, err := homedir.Expand(root)
		if err != nil {
			return fmt.Errorf("expand root: %w", err)
		}
		c.Root = expanded
	}
	if mode != "" {
		c.Launch.Mode = mode
	}
	if python != "" {
		c.Launch.Python = python
	}
	if notebook != "" {
		c.Launch.Notebook = notebook
	}
	return nil
}

// Validate rejects settings the launcher cannot run with.
func (c Config) Validate() error {
	switch c.Launch.Mode {
	case ModeExec, ModePTY:
	default:
		return fmt.Errorf("launch.mode %q: must be %q or %q", c.Launch.Mode, ModeExec, ModePTY)
	}
	if strings.TrimSpace(c.Launch.Python) == "" {
		return errors.New("launch.python must not be empty")
	}
	if c.Root == "" {
		return errors.New("root must not be empty")
	}
	if c.UI.Flash <= 0 {
		return fmt.Errorf("ui.flash %s: must be positive", c.UI.Flash)
	}
	if c.UI.TileWidth < 8 {
		return fmt.Errorf("ui.tile_width %d: must be at least 8", c.UI.TileWidth)
	}
	if c.Launch.Mode == ModePTY && (c.Launch.PTYRows <= 0 || c.Launch.PTYCols <= 0) {
		return fmt.Errorf("launch.pty_rows/pty_cols %dx%d: must be positive", c.Launch.PTYRows, c.Launch.PTYCols)
	}
	switch c.UI.MarkdownStyle {
	case "auto", "dark", "light":
	default:
		return fmt.Errorf("ui.markdown_style %q: must be auto, dark or light", c.UI.MarkdownStyle)
	}
	return nil
}
