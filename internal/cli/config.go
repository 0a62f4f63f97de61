package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/mesh-intelligence/semprops/internal/namespace"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"

	cfgKeyDataDir            = "data_dir"
	cfgKeyRegistryFile       = "registry_file"
	cfgKeyLanguage           = "language"
	cfgKeyCapitalLinks       = "capital_links"
	cfgKeyNamespaceCanonical = "namespace.canonical"
	cfgKeyNamespaceAliases   = "namespace.aliases"
	cfgKeyCaller             = "caller"
	cfgKeyLogLevel           = "log_level"
)

// defaultConfigYAML is written to config.yaml on first run.
const defaultConfigYAML = `# semprops configuration

# Data directory (overridable by --data-dir)
# data_dir:

# Extra property definitions loaded on top of the builtin set.
# Relative paths are resolved against this directory.
# registry_file: properties.yaml

# Content language used for capitalization (BCP 47).
language: en

# Uppercase the first letter of property names.
capital_links: true

namespace:
  canonical: Property
  # Localized names of the property namespace.
  aliases: []

# Name prefixed to error messages.
caller: semprops

# debug, info, warn, or error
log_level: warn
`

// settings is the resolved CLI configuration.
type settings struct {
	DataDir      string
	RegistryFile string
	Caller       string
	LogLevel     slog.Level
	Namespace    namespace.Options
}

// loadConfig reads config.yaml from configDir, creating the directory and a
// default file on first run. A missing config.yaml is not an error.
func loadConfig(configDir string) (*viper.Viper, error) {
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return nil, fmt.Errorf("ensure config dir: %w", err)
	}
	if err := ensureDefaultConfigFile(configDir); err != nil {
		return nil, fmt.Errorf("ensure default config: %w", err)
	}

	v := viper.New()
	v.SetDefault(cfgKeyLanguage, "en")
	v.SetDefault(cfgKeyCapitalLinks, true)
	v.SetDefault(cfgKeyNamespaceCanonical, namespace.DefaultCanonical)
	v.SetDefault(cfgKeyCaller, "semprops")
	v.SetDefault(cfgKeyLogLevel, "warn")
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return v, nil
}

// ensureDefaultConfigFile writes defaultConfigYAML unless config.yaml exists.
func ensureDefaultConfigFile(configDir string) error {
	path := filepath.Join(configDir, configFileExt)
	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}
	return os.WriteFile(path, []byte(defaultConfigYAML), 0o644)
}

// settingsFrom extracts typed settings from v.
func settingsFrom(v *viper.Viper) (settings, error) {
	level, err := parseLevel(v.GetString(cfgKeyLogLevel))
	if err != nil {
		return settings{}, err
	}
	return settings{
		DataDir:      v.GetString(cfgKeyDataDir),
		RegistryFile: v.GetString(cfgKeyRegistryFile),
		Caller:       v.GetString(cfgKeyCaller),
		LogLevel:     level,
		Namespace: namespace.Options{
			Canonical:    v.GetString(cfgKeyNamespaceCanonical),
			Aliases:      v.GetStringSlice(cfgKeyNamespaceAliases),
			Language:     v.GetString(cfgKeyLanguage),
			CapitalLinks: v.GetBool(cfgKeyCapitalLinks),
		},
	}, nil
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return 0, fmt.Errorf("log_level %q: %w", s, err)
	}
	return level, nil
}
