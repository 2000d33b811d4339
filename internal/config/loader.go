package config

import (
	"os"
	"path/filepath"

	"github.com/rileyhilliard/beacon/internal/errors"
	"github.com/spf13/viper"
)

const (
	// ConfigFileName is the default config file name.
	ConfigFileName = ".beacon.yaml"
	// GlobalConfigDir is the directory for the global page.
	GlobalConfigDir = ".config/beacon"
	// GlobalConfigFile is the global config file name.
	GlobalConfigFile = "config.yaml"
)

// Load reads config from the specified path.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if os.IsNotExist(err) {
			return nil, errors.WrapWithCode(err, errors.ErrConfig,
				"Config file not found",
				"Create "+ConfigFileName+" or point at one with --config")
		}
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to read config file",
			"Check the file exists and is valid YAML")
	}

	return parseConfig(v, path)
}

// Find locates the config file using the search order:
// 1. Explicit path (from --config flag)
// 2. .beacon.yaml in current directory
// 3. .beacon.yaml in parent directories (stops at git root or home)
// 4. ~/.config/beacon/config.yaml
//
// Returns the path to the config file, or empty string if not found.
func Find(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			if os.IsNotExist(err) {
				return "", errors.WrapWithCode(err, errors.ErrConfig,
					"Specified config file not found: "+explicit,
					"Check the path is correct")
			}
			return "", errors.WrapWithCode(err, errors.ErrConfig,
				"Cannot access config file: "+explicit,
				"Check file permissions")
		}
		return explicit, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", errors.WrapWithCode(err, errors.ErrConfig,
			"Cannot determine current directory",
			"Check directory permissions")
	}

	if p := findUpward(cwd); p != "" {
		return p, nil
	}

	if home, _ := os.UserHomeDir(); home != "" {
		global := filepath.Join(home, GlobalConfigDir, GlobalConfigFile)
		if _, err := os.Stat(global); err == nil {
			return global, nil
		}
	}

	return "", nil
}

// findUpward checks dir and its parents for ConfigFileName, stopping after a
// git root and never climbing above home.
func findUpward(dir string) string {
	home, _ := os.UserHomeDir()
	for {
		candidate := filepath.Join(dir, ConfigFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
		if isGitRoot(dir) {
			return ""
		}
		parent := filepath.Dir(dir)
		if parent == dir || (home != "" && parent == home) {
			return ""
		}
		dir = parent
	}
}

// LoadOrDefault loads the config found from explicit, or returns an empty
// page when none exists. The returned path is empty in that case.
func LoadOrDefault(explicit string) (*Config, string, error) {
	path, err := Find(explicit)
	if err != nil {
		return nil, "", err
	}
	if path == "" {
		return DefaultConfig(), "", nil
	}
	cfg, err := Load(path)
	if err != nil {
		return nil, path, err
	}
	return cfg, path, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("version", CurrentConfigVersion)
	v.SetDefault("interval", DefaultInterval.String())
	v.SetDefault("timeout", DefaultTimeout.String())
	v.SetDefault("log.level", "info")
}

// parseConfig converts viper config to our Config struct and expands paths
// relative to the config file.
func parseConfig(v *viper.Viper, path string) (*Config, error) {
	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Invalid config format",
			"Check the YAML syntax in "+path)
	}

	base := configDir(path)
	cfg.Log.File = resolvePath(base, cfg.Log.File)
	for i := range cfg.Widgets {
		cfg.Widgets[i] = expandWidget(base, cfg.Widgets[i])
	}
	return cfg, nil
}

// expandWidget expands variables in fields that name local resources.
// Commands and queries are left alone; the shell or database handles them.
func expandWidget(base string, w Widget) Widget {
	switch w.Type {
	case TypeFile, TypeSQLite:
		w.Path = resolvePath(base, w.Path)
	case TypeHTTP, TypePrometheus:
		w.URL = Expand(w.URL)
	case TypePostgres:
		w.DSN = Expand(w.DSN)
	case TypeSSH:
		w.Host = Expand(w.Host)
	}
	return w
}

func resolvePath(base, p string) string {
	if p == "" {
		return p
	}
	p = ExpandTilde(Expand(p))
	if !filepath.IsAbs(p) {
		p = filepath.Join(base, p)
	}
	return p
}

// configDir returns the directory containing the config file.
func configDir(configPath string) string {
	if configPath == "" {
		cwd, _ := os.Getwd()
		return cwd
	}
	return filepath.Dir(configPath)
}

// isGitRoot checks if a directory is a git repository root.
func isGitRoot(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ".git"))
	return err == nil
}
