// Package config loads ctxtree's layered application configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/temirov/ctxtree/internal/utils"
)

// LoadOptions controls how application configuration is discovered.
type LoadOptions struct {
	WorkingDirectory string
	ExplicitFilePath string
}

// ApplicationConfiguration holds defaults read from configuration files.
// Pointer fields stay nil when a file does not mention them so that merging can tell unset from false.
type ApplicationConfiguration struct {
	Format      string               `mapstructure:"format" yaml:"format,omitempty"`
	Output      string               `mapstructure:"output" yaml:"output,omitempty"`
	Concurrency *int                 `mapstructure:"concurrency" yaml:"concurrency,omitempty"`
	Copy        *bool                `mapstructure:"copy" yaml:"copy,omitempty"`
	Ignore      IgnoreConfiguration  `mapstructure:"ignore" yaml:"ignore,omitempty"`
	Imports     ImportsConfiguration `mapstructure:"imports" yaml:"imports,omitempty"`
	Tokens      TokenConfiguration   `mapstructure:"tokens" yaml:"tokens,omitempty"`
}

// IgnoreConfiguration configures the ignore rule file and its semantics.
type IgnoreConfiguration struct {
	Enabled         *bool  `mapstructure:"enabled" yaml:"enabled,omitempty"`
	File            string `mapstructure:"file" yaml:"file,omitempty"`
	Semantics       string `mapstructure:"semantics" yaml:"semantics,omitempty"`
	CaseInsensitive *bool  `mapstructure:"case_insensitive" yaml:"case_insensitive,omitempty"`
}

// ImportsConfiguration configures local import tracking.
type ImportsConfiguration struct {
	Enabled *bool `mapstructure:"enabled" yaml:"enabled,omitempty"`
}

// TokenConfiguration controls token estimation of the rendered report.
type TokenConfiguration struct {
	Enabled *bool  `mapstructure:"enabled" yaml:"enabled,omitempty"`
	Model   string `mapstructure:"model" yaml:"model,omitempty"`
}

// LoadApplicationConfiguration loads configuration from the global file and then the local one.
// Missing files contribute nothing.
func LoadApplicationConfiguration(options LoadOptions) (ApplicationConfiguration, error) {
	workingDirectory := options.WorkingDirectory
	if workingDirectory == "" {
		currentDirectory, err := os.Getwd()
		if err != nil {
			return ApplicationConfiguration{}, fmt.Errorf("determine working directory: %w", err)
		}
		workingDirectory = currentDirectory
	}

	var merged ApplicationConfiguration

	if homeDirectory, err := os.UserHomeDir(); err == nil && homeDirectory != "" {
		globalPath := filepath.Join(homeDirectory, utils.GlobalConfigDirectoryName, utils.GlobalConfigFileName)
		globalConfig, loadErr := loadConfigurationFromPath(globalPath)
		if loadErr != nil {
			return ApplicationConfiguration{}, loadErr
		}
		merged = merged.Merge(globalConfig)
	}

	localConfig, loadErr := loadConfigurationFromPath(resolveLocalConfigPath(workingDirectory, options.ExplicitFilePath))
	if loadErr != nil {
		return ApplicationConfiguration{}, loadErr
	}
	return merged.Merge(localConfig), nil
}

func resolveLocalConfigPath(workingDirectory, explicitPath string) string {
	if explicitPath == "" {
		return filepath.Join(workingDirectory, utils.ConfigFileName)
	}
	if filepath.IsAbs(explicitPath) {
		return explicitPath
	}
	return filepath.Join(workingDirectory, explicitPath)
}

func loadConfigurationFromPath(path string) (ApplicationConfiguration, error) {
	info, statErr := os.Stat(path)
	if statErr != nil {
		if os.IsNotExist(statErr) {
			return ApplicationConfiguration{}, nil
		}
		return ApplicationConfiguration{}, fmt.Errorf("stat configuration %s: %w", path, statErr)
	}
	if info.IsDir() {
		return ApplicationConfiguration{}, fmt.Errorf("configuration path %s is a directory", path)
	}

	reader := viper.New()
	reader.SetConfigFile(path)
	if filepath.Ext(path) == "" {
		reader.SetConfigType("yaml")
	}
	if readErr := reader.ReadInConfig(); readErr != nil {
		return ApplicationConfiguration{}, fmt.Errorf("read configuration from %s: %w", path, readErr)
	}
	var config ApplicationConfiguration
	if decodeErr := reader.Unmarshal(&config); decodeErr != nil {
		return ApplicationConfiguration{}, fmt.Errorf("decode configuration from %s: %w", path, decodeErr)
	}
	return config, nil
}

// Merge overlays override onto the receiver returning the combined configuration.
func (config ApplicationConfiguration) Merge(override ApplicationConfiguration) ApplicationConfiguration {
	result := config
	if override.Format != "" {
		result.Format = override.Format
	}
	if override.Output != "" {
		result.Output = override.Output
	}
	if override.Concurrency != nil {
		result.Concurrency = cloneInt(override.Concurrency)
	}
	if override.Copy != nil {
		result.Copy = cloneBool(override.Copy)
	}
	result.Ignore = result.Ignore.merge(override.Ignore)
	if override.Imports.Enabled != nil {
		result.Imports.Enabled = cloneBool(override.Imports.Enabled)
	}
	result.Tokens = result.Tokens.merge(override.Tokens)
	return result
}

func (config IgnoreConfiguration) merge(override IgnoreConfiguration) IgnoreConfiguration {
	result := config
	if override.Enabled != nil {
		result.Enabled = cloneBool(override.Enabled)
	}
	if override.File != "" {
		result.File = override.File
	}
	if override.Semantics != "" {
		result.Semantics = override.Semantics
	}
	if override.CaseInsensitive != nil {
		result.CaseInsensitive = cloneBool(override.CaseInsensitive)
	}
	return result
}

func (config TokenConfiguration) merge(override TokenConfiguration) TokenConfiguration {
	result := config
	if override.Enabled != nil {
		result.Enabled = cloneBool(override.Enabled)
	}
	if override.Model != "" {
		result.Model = override.Model
	}
	return result
}

func cloneBool(value *bool) *bool {
	if value == nil {
		return nil
	}
	cloned := *value
	return &cloned
}

func cloneInt(value *int) *int {
	if value == nil {
		return nil
	}
	cloned := *value
	return &cloned
}
