package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config contains global tool configuration resolved from (in priority order):
//  1. Explicit CLI flags (wired in cmd layer)
//  2. Environment variables
//  3. The global config file (TOML)
//  4. Defaults
//
// Project documents never read this directly; it reaches a project through
// Project.Prepare after decoding.
type Config struct {
	// TmuxCommand, when set, overrides the tmux_command of every project.
	// It may be a multi-word command such as "ssh devbox tmux".
	TmuxCommand string

	// ProjectsDir is where project files (<name>.yml/.yaml/.json) are looked up.
	ProjectsDir string

	// Debug enables debug level logging.
	Debug bool

	// LogPath, when set, sends logs to a file instead of stderr.
	LogPath string
}

// EnvKeys groups supported env variables.
type EnvKeys struct {
	TmuxCommand string
	ProjectsDir string
	Debug       string
	LogPath     string
}

// DefaultEnvKeys returns the canonical env variable names.
func DefaultEnvKeys() EnvKeys {
	return EnvKeys{
		TmuxCommand: "TMUX_PROJECT_TMUX_COMMAND",
		ProjectsDir: "TMUX_PROJECT_DIR",
		Debug:       "TMUX_PROJECT_DEBUG",
		LogPath:     "TMUX_PROJECT_LOG",
	}
}

// fileConfig mirrors the TOML file. Pointers distinguish "unset" from zero values.
type fileConfig struct {
	TmuxCommand *string `toml:"tmux_command"`
	ProjectsDir *string `toml:"projects_dir"`
	Debug       *bool   `toml:"debug"`
	LogPath     *string `toml:"log_path"`
}

// DefaultFilePath returns ~/.config/tmux-project/config.toml, honoring XDG_CONFIG_HOME.
func DefaultFilePath() string {
	return filepath.Join(configHome(), "tmux-project", "config.toml")
}

// Resolve builds a Config from the default config file and env.
func Resolve() (Config, error) {
	return ResolveWithEnv("", DefaultEnvKeys())
}

// ResolveWithEnv builds Config from the config file at path and the given env keys.
// An empty path means DefaultFilePath, which may be absent; an explicit path must exist.
func ResolveWithEnv(path string, keys EnvKeys) (Config, error) {
	cfg := defaultConfig()

	explicit := strings.TrimSpace(path) != ""
	if !explicit {
		path = DefaultFilePath()
	}
	fc, err := loadFile(expandHome(path))
	switch {
	case err == nil:
		cfg = cfg.applyFile(fc)
	case !explicit && errors.Is(err, fs.ErrNotExist):
		// No global config file; defaults apply.
	default:
		return Config{}, err
	}

	if v := strings.TrimSpace(os.Getenv(keys.TmuxCommand)); v != "" {
		cfg.TmuxCommand = v
	}
	if v := strings.TrimSpace(os.Getenv(keys.ProjectsDir)); v != "" {
		cfg.ProjectsDir = v
	}
	if v := strings.TrimSpace(os.Getenv(keys.Debug)); v != "" {
		cfg.Debug = parseBool(v, cfg.Debug)
	}
	if v := strings.TrimSpace(os.Getenv(keys.LogPath)); v != "" {
		cfg.LogPath = v
	}

	return cfg.withDerivedDefaults(), nil
}

// loadFile decodes a TOML config file. Unknown keys are rejected.
func loadFile(path string) (*fileConfig, error) {
	var fc fileConfig
	md, err := toml.DecodeFile(path, &fc)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return nil, fmt.Errorf("config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	return &fc, nil
}

func defaultConfig() Config {
	return Config{
		ProjectsDir: filepath.Join(configHome(), "tmux-project"),
	}
}

func (c Config) applyFile(fc *fileConfig) Config {
	out := c
	if fc.TmuxCommand != nil {
		out.TmuxCommand = strings.TrimSpace(*fc.TmuxCommand)
	}
	if fc.ProjectsDir != nil && strings.TrimSpace(*fc.ProjectsDir) != "" {
		out.ProjectsDir = *fc.ProjectsDir
	}
	if fc.Debug != nil {
		out.Debug = *fc.Debug
	}
	if fc.LogPath != nil {
		out.LogPath = strings.TrimSpace(*fc.LogPath)
	}
	return out
}

func (c Config) withDerivedDefaults() Config {
	out := c
	out.TmuxCommand = strings.TrimSpace(out.TmuxCommand)
	out.ProjectsDir = expandHome(out.ProjectsDir)
	if out.ProjectsDir == "" {
		out.ProjectsDir = defaultConfig().ProjectsDir
	}
	out.LogPath = expandHome(out.LogPath)
	return out
}

// Helpers

func configHome() string {
	if v := strings.TrimSpace(os.Getenv("XDG_CONFIG_HOME")); v != "" {
		return v
	}
	home, _ := os.UserHomeDir()
	if home == "" {
		home = os.Getenv("HOME")
	}
	return filepath.Join(home, ".config")
}

func expandHome(p string) string {
	p = strings.TrimSpace(p)
	if p == "" {
		return p
	}
	if p == "~" {
		if home, err := os.UserHomeDir(); err == nil && home != "" {
			return home
		}
		return p
	}
	if strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil && home != "" {
			return filepath.Join(home, p[2:])
		}
	}
	return p
}

func parseBool(v string, def bool) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "y", "on":
		return true
	case "0", "false", "no", "n", "off":
		return false
	default:
		return def
	}
}
