package config

import (
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/mod/modfile"
	"golang.org/x/mod/module"
	"gopkg.in/yaml.v3"

	"github.com/go-drift/ecstree/pkg/errors"
)

// FileName is the optional per-project configuration file.
const FileName = "ecstree.yaml"

// EnvLogLevel overrides log.level from the configuration file.
const EnvLogLevel = "ECSTREE_LOG_LEVEL"

// Config represents the optional ecstree.yaml configuration.
type Config struct {
	App AppConfig `yaml:"app"`
	Log LogConfig `yaml:"log"`
}

// AppConfig contains application metadata.
type AppConfig struct {
	Name string `yaml:"name,omitempty"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level   string `yaml:"level,omitempty"`
	Verbose bool   `yaml:"verbose,omitempty"`
}

// Resolved contains resolved configuration values.
type Resolved struct {
	Root       string
	ModulePath string
	AppName    string
	LogLevel   zerolog.Level
	Verbose    bool
}

// LoadOptional reads ecstree.yaml if present.
func LoadOptional(dir string) (*Config, error) {
	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if stderrors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", FileName, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", FileName, err)
	}

	return &cfg, nil
}

// Resolve loads ecstree.yaml (if present) and resolves defaults.
// A go.mod in dir is optional; when present its module path names the app.
// Failures are reported as *errors.ReconcileError of kind config.
func Resolve(dir string) (*Resolved, error) {
	modulePath, err := modulePath(dir)
	if err != nil {
		return nil, errors.Config("config.Resolve", err)
	}

	cfg, err := LoadOptional(dir)
	if err != nil {
		return nil, errors.Config("config.Resolve", err)
	}

	appName := strings.TrimSpace(cfg.App.Name)
	if appName == "" {
		appName = defaultAppName(modulePath, dir)
	}

	levelName := strings.TrimSpace(cfg.Log.Level)
	if env := strings.TrimSpace(os.Getenv(EnvLogLevel)); env != "" {
		levelName = env
	}
	level := zerolog.WarnLevel
	if levelName != "" {
		level, err = zerolog.ParseLevel(strings.ToLower(levelName))
		if err != nil {
			return nil, errors.Config("config.Resolve", fmt.Errorf("invalid log level %q: %w", levelName, err))
		}
	}

	return &Resolved{
		Root:       dir,
		ModulePath: modulePath,
		AppName:    appName,
		LogLevel:   level,
		Verbose:    cfg.Log.Verbose,
	}, nil
}

func modulePath(dir string) (string, error) {
	data, err := os.ReadFile(filepath.Join(dir, "go.mod"))
	if err != nil {
		if stderrors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read go.mod: %w", err)
	}
	path := modfile.ModulePath(data)
	if path == "" {
		return "", fmt.Errorf("could not determine module path from go.mod")
	}
	return path, nil
}

func defaultAppName(modulePath, dir string) string {
	base := filepath.Base(dir)
	if modulePath != "" {
		modName, _, ok := module.SplitPathVersion(modulePath)
		if ok {
			parts := strings.Split(modName, "/")
			base = parts[len(parts)-1]
		}
	}
	if base == "" || base == "." || base == string(filepath.Separator) {
		return "ecstree"
	}
	return base
}
