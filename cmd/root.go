package cmd

import (
	"fmt"
	"os"

	"github.com/birmacher/prompt-guide/common"
	"github.com/birmacher/prompt-guide/llm"
	"github.com/birmacher/prompt-guide/logger"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	// Command line flags
	configFile string
	logLevel   string
	logFormat  string
	provider   string
	model      string
	noColor    bool

	// cfg is the effective configuration, loaded before every command runs
	cfg = common.WithDefaultConfig()
)

// flagKeys maps persistent flags onto their configuration keys
var flagKeys = map[string]string{
	"log-level":  "log_level",
	"log-format": "log_format",
	"provider":   "provider",
	"model":      "model",
}

// newLLMClient builds the completion client for the effective configuration.
// Tests replace it with a mock.
var newLLMClient = func(cfg common.Config) (llm.LLM, error) {
	opts := []llm.Option{
		llm.WithModel(cfg.Model),
		llm.WithMaxTokens(cfg.MaxTokens),
		llm.WithAPITimeout(cfg.APITimeout),
		llm.WithRetryMax(cfg.RetryMax),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, llm.WithBaseURL(cfg.BaseURL))
	}
	return llm.NewLLM(cfg.Provider, opts...)
}

var rootCmd = &cobra.Command{
	Use:   "prompt-guide",
	Short: "Prompt engineering examples backed by a chat completion API",
	Long: `prompt-guide sends single-turn prompts to a chat completion service at temperature 0
and prints the first choice verbatim.

It ships the prompt engineering examples for summarizing, inferring, transforming
and expanding text, and can run any of them against OpenAI or Anthropic.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if noColor {
			color.NoColor = true
		}
		return loadConfig(cmd)
	},
	Run: func(cmd *cobra.Command, args []string) {
		// Default behavior when no subcommands are provided
		_ = cmd.Help()
	},
}

// loadConfig merges defaults, .env, the config file, PROMPT_GUIDE_* variables
// and flags into cfg and reinitializes the logger from the result.
// An empty model resolves to the configured provider's default.
func loadConfig(cmd *cobra.Command) error {
	// Flags first so config loading itself logs at the requested level
	logger.Init(logLevel, logFormat)

	if err := common.LoadDotEnv(); err != nil {
		return err
	}

	v := common.NewViper()
	for name, key := range flagKeys {
		if err := v.BindPFlag(key, cmd.Root().PersistentFlags().Lookup(name)); err != nil {
			return fmt.Errorf("failed to bind flag %s: %w", name, err)
		}
	}

	loaded, err := common.LoadConfig(v, configFile)
	if err != nil {
		return err
	}
	if loaded.Model == "" {
		loaded.Model = llm.DefaultModel(loaded.Provider)
	}
	cfg = loaded

	logger.Init(cfg.LogLevel, cfg.LogFormat)
	logger.Debugf("Using provider %s with model %s", cfg.Provider, cfg.Model)
	return nil
}

// Execute runs the root command and handles errors
func Execute() error {
	// Subcommands are added in their respective init() functions
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", redactError(err))
	}
	logger.Sync()
	return err
}

// redactError renders err with any API key taken from the environment masked
func redactError(err error) string {
	var secrets []string
	for _, name := range common.SecretEnvVars {
		if value := os.Getenv(name); value != "" {
			secrets = append(secrets, value)
		}
	}
	return common.RedactString(err.Error(), secrets...)
}

func init() {
	// Add persistent flags that will be available to all subcommands
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "",
		"Config file (default: prompt-guide.yml in the working directory or ~/.config/prompt-guide)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", common.DefaultLogLevel,
		"Set the logging level (debug, info, warn, error, dpanic, panic, fatal)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", common.DefaultLogFormat,
		"Set the log output format (json, console)")
	rootCmd.PersistentFlags().StringVarP(&provider, "provider", "p", common.DefaultProvider,
		"LLM provider to use (openai, anthropic)")
	rootCmd.PersistentFlags().StringVarP(&model, "model", "m", "",
		"Model to send prompts to (default: the provider's default model)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
}
