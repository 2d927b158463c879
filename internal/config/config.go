package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Supported report formats
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Configuration provides type-safe access to application settings
type Configuration struct {
	viper *viper.Viper
}

// NewConfiguration creates a new Configuration instance with default settings
func NewConfiguration() *Configuration {
	v := viper.New()
	setDefaults(v)
	return &Configuration{viper: v}
}

// NewConfigurationFromFile creates a Configuration instance from a config file
func NewConfigurationFromFile(configFile string) (*Configuration, error) {
	v := viper.New()
	v.SetConfigFile(configFile)
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
	}

	cfg := &Configuration{viper: v}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", configFile, err)
	}
	return cfg, nil
}

// NewConfigurationFromEnv creates a Configuration instance that reads from environment variables
func NewConfigurationFromEnv() (*Configuration, error) {
	v := viper.New()
	setDefaults(v)

	// SRTRATE_OUTPUT_FORMAT maps to output.format
	v.SetEnvPrefix("SRTRATE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Configuration{viper: v}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid environment configuration: %w", err)
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("parser.flush_trailing", false)
	v.SetDefault("output.format", FormatText)
	v.SetDefault("output.encode", false)
	v.SetDefault("app.workers", 4)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.debug", false)
}

// Validate checks that every setting holds a supported value
func (c *Configuration) Validate() error {
	switch c.GetOutputFormat() {
	case FormatText, FormatJSON, FormatYAML:
	default:
		return fmt.Errorf("unsupported output format %q", c.GetOutputFormat())
	}

	if c.GetWorkers() < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.GetWorkers())
	}

	return nil
}

// GetFlushTrailing returns whether a caption left open at end of input is kept
func (c *Configuration) GetFlushTrailing() bool {
	return c.viper.GetBool("parser.flush_trailing")
}

// SetFlushTrailing updates the trailing caption setting
func (c *Configuration) SetFlushTrailing(enabled bool) {
	c.viper.Set("parser.flush_trailing", enabled)
}

// GetOutputFormat returns the report format
func (c *Configuration) GetOutputFormat() string {
	return strings.ToLower(c.viper.GetString("output.format"))
}

// SetOutputFormat updates the report format
func (c *Configuration) SetOutputFormat(format string) {
	c.viper.Set("output.format", format)
}

// GetEncode returns whether parsed documents are written back as SubRip instead of a rate report
func (c *Configuration) GetEncode() bool {
	return c.viper.GetBool("output.encode")
}

// SetEncode updates the encode setting
func (c *Configuration) SetEncode(enabled bool) {
	c.viper.Set("output.encode", enabled)
}

// GetWorkers returns how many files are parsed concurrently
func (c *Configuration) GetWorkers() int {
	return c.viper.GetInt("app.workers")
}

// SetWorkers updates the worker count
func (c *Configuration) SetWorkers(n int) {
	c.viper.Set("app.workers", n)
}

// GetLogLevel returns the configured log level
func (c *Configuration) GetLogLevel() string {
	return c.viper.GetString("log.level")
}

// GetDebugMode returns whether debug logging is enabled
func (c *Configuration) GetDebugMode() bool {
	return c.viper.GetBool("log.debug")
}

// SetDebugMode updates the debug mode setting
func (c *Configuration) SetDebugMode(enabled bool) {
	c.viper.Set("log.debug", enabled)
}
