// SPDX-License-Identifier: MPL-2.0

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"checkgate/internal/issue"

	"github.com/spf13/viper"
)

const (
	// AppName is the application name.
	AppName = "checkgate"
	// ConfigFileName is the name of the config file (without extension).
	ConfigFileName = "checkgate"
	// ConfigFileExt is the config file extension.
	ConfigFileExt = "toml"
	// EnvPrefix namespaces environment variable overrides, e.g.
	// CHECKGATE_PACKAGE_MANAGER or CHECKGATE_JOBS.
	EnvPrefix = "CHECKGATE"
)

// LoadOptions controls where Load looks for the configuration file.
type LoadOptions struct {
	// ConfigFilePath, when set, is used exclusively; a missing file is an
	// error rather than a fallback to defaults.
	ConfigFilePath string
	// ConfigDirPath overrides the platform configuration directory.
	ConfigDirPath string
}

// ConfigDir returns the checkgate configuration directory using
// platform-specific conventions: Windows uses %APPDATA%, macOS uses
// ~/Library/Application Support, and Linux/others use $XDG_CONFIG_HOME
// (defaulting to ~/.config).
func ConfigDir() (string, error) {
	var configDir string

	switch runtime.GOOS {
	case "windows":
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, "Library", "Application Support")
	default: // Linux and others
		configDir = os.Getenv("XDG_CONFIG_HOME")
		if configDir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("failed to get home directory: %w", err)
			}
			configDir = filepath.Join(home, ".config")
		}
	}

	return filepath.Join(configDir, AppName), nil
}

// Load reads the configuration, layering environment overrides over the
// file over defaults. It returns the effective config and the path of the
// file it loaded, "" when only defaults and environment applied.
func Load(opts LoadOptions) (*Config, string, error) {
	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("package_manager", string(defaults.PackageManager))
	v.SetDefault("backend", string(defaults.Backend))
	v.SetDefault("jobs", defaults.Jobs)
	v.SetDefault("work_root", defaults.WorkRoot)
	v.SetDefault("ui.color_scheme", string(defaults.UI.ColorScheme))
	v.SetDefault("ui.verbose", defaults.UI.Verbose)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	resolvedPath := ""

	if opts.ConfigFilePath != "" {
		if !fileExists(opts.ConfigFilePath) {
			return nil, "", issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(opts.ConfigFilePath).
				WithSuggestion("Verify the file path is correct").
				WithSuggestion("Use 'checkgate config show' to see the default configuration").
				Wrap(fmt.Errorf("config file not found: %s", opts.ConfigFilePath)).
				BuildError()
		}
		if err := readFileIntoViper(v, opts.ConfigFilePath); err != nil {
			return nil, "", err
		}
		resolvedPath = opts.ConfigFilePath
	} else {
		cfgDir, err := configDirWithOverride(opts.ConfigDirPath)
		if err != nil {
			return nil, "", err
		}

		for _, path := range []string{
			filepath.Join(cfgDir, ConfigFileName+"."+ConfigFileExt),
			ConfigFileName + "." + ConfigFileExt,
		} {
			if !fileExists(path) {
				continue
			}
			if err := readFileIntoViper(v, path); err != nil {
				return nil, "", err
			}
			resolvedPath = path
			break
		}
		// No config file found: defaults plus environment apply.
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, "", fmt.Errorf("failed to parse config: %w", err)
	}

	if ok, errs := cfg.IsValid(); !ok {
		return nil, "", issue.NewErrorContext().
			WithOperation("validate configuration").
			WithResource(resolvedPath).
			WithSuggestion("Check the field values against 'checkgate config show'").
			Wrap(errs[0]).
			BuildError()
	}

	return &cfg, resolvedPath, nil
}

// configDirWithOverride resolves the configuration directory, honoring
// explicit options before platform defaults.
func configDirWithOverride(configDirPath string) (string, error) {
	if configDirPath != "" {
		return configDirPath, nil
	}
	return ConfigDir()
}

// readFileIntoViper merges a TOML config file into Viper.
func readFileIntoViper(v *viper.Viper, path string) error {
	v.SetConfigFile(path)
	v.SetConfigType(ConfigFileExt)
	if err := v.MergeInConfig(); err != nil {
		return issue.NewErrorContext().
			WithOperation("load configuration").
			WithResource(path).
			WithSuggestion("Check that the file contains valid TOML syntax").
			WithSuggestion("Verify the configuration values match the documented fields").
			Wrap(err).
			BuildError()
	}
	return nil
}

// fileExists checks if a file exists and is not a directory.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false
	}
	return err == nil && !info.IsDir()
}

// EnsureConfigDir creates the config directory if it doesn't exist.
func EnsureConfigDir() error {
	cfgDir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(cfgDir, 0o755)
}

// GenerateTOML generates a TOML representation of the configuration,
// used by 'checkgate config show' and when writing a starter file.
func GenerateTOML(cfg *Config) string {
	var sb strings.Builder

	sb.WriteString("# checkgate configuration file\n\n")
	sb.WriteString(fmt.Sprintf("package_manager = %q\n", cfg.PackageManager))
	sb.WriteString(fmt.Sprintf("backend = %q\n", cfg.Backend))
	sb.WriteString(fmt.Sprintf("jobs = %d\n", cfg.Jobs))
	if cfg.WorkRoot != "" {
		sb.WriteString(fmt.Sprintf("work_root = %q\n", cfg.WorkRoot))
	}
	sb.WriteString("\n[ui]\n")
	sb.WriteString(fmt.Sprintf("color_scheme = %q\n", cfg.UI.ColorScheme))
	sb.WriteString(fmt.Sprintf("verbose = %v\n", cfg.UI.Verbose))

	return sb.String()
}
