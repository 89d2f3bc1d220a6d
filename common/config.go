package common

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/birmacher/prompt-guide/logger"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	// ConfigFileName is the config file base name, looked up as prompt-guide.yml
	ConfigFileName = "prompt-guide"
	// EnvPrefix prefixes environment overrides, e.g. PROMPT_GUIDE_MODEL
	EnvPrefix = "PROMPT_GUIDE"

	DefaultProvider  = "openai"
	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
)

// Config is the effective configuration of the CLI
type Config struct {
	Provider  string `mapstructure:"provider" yaml:"provider"`
	Model     string `mapstructure:"model" yaml:"model"`
	BaseURL   string `mapstructure:"base_url" yaml:"base_url,omitempty"`
	MaxTokens int    `mapstructure:"max_tokens" yaml:"max_tokens"`
	// APITimeout in seconds, zero means no deadline
	APITimeout int    `mapstructure:"api_timeout" yaml:"api_timeout"`
	RetryMax   int    `mapstructure:"retry_max" yaml:"retry_max"`
	LogLevel   string `mapstructure:"log_level" yaml:"log_level"`
	LogFormat  string `mapstructure:"log_format" yaml:"log_format"`
}

// WithDefaultConfig returns the built-in defaults. Model is left empty so the
// provider's own default model applies.
func WithDefaultConfig() Config {
	return Config{
		Provider:  DefaultProvider,
		LogLevel:  DefaultLogLevel,
		LogFormat: DefaultLogFormat,
	}
}

// NewViper returns a viper instance seeded with the defaults and bound to
// PROMPT_GUIDE_* environment variables.
func NewViper() *viper.Viper {
	defaults := WithDefaultConfig()

	v := viper.New()
	v.SetDefault("provider", defaults.Provider)
	v.SetDefault("model", defaults.Model)
	v.SetDefault("base_url", defaults.BaseURL)
	v.SetDefault("max_tokens", defaults.MaxTokens)
	v.SetDefault("api_timeout", defaults.APITimeout)
	v.SetDefault("retry_max", defaults.RetryMax)
	v.SetDefault("log_level", defaults.LogLevel)
	v.SetDefault("log_format", defaults.LogFormat)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	return v
}

// LoadDotEnv loads the given .env files, defaulting to ./.env.
// Missing files are skipped and variables already set in the environment win.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("failed to load env file %s: %w", path, err)
		}
		logger.Debugf("Loaded environment from %s", path)
	}
	return nil
}

// LoadConfig reads configFile, or discovers prompt-guide.yml in the working
// directory and ~/.config/prompt-guide, and unmarshals the merged result.
// A discovered file is optional, an explicit one is not.
func LoadConfig(v *viper.Viper, configFile string) (Config, error) {
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(ConfigFileName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", ConfigFileName))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
		logger.Debug("No config file found, using defaults")
	} else {
		logger.Infof("Using config file: %s", v.ConfigFileUsed())
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return cfg, nil
}
