package cmd

import (
	"fmt"
	"os"

	"github.com/birmacher/prompt-guide/common"
	"github.com/birmacher/prompt-guide/llm"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the configuration after merging defaults, the config file, .env,
PROMPT_GUIDE_* environment variables and flags. API keys are redacted.`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

// credential reports where an API key would be read from
type credential struct {
	Name  string `yaml:"name"`
	Value string `yaml:"value"`
}

type effectiveConfig struct {
	common.Config `yaml:",inline"`
	// Credentials lists the key variables consulted for the configured provider
	Credentials []credential `yaml:"credentials"`
}

func runConfig(cmd *cobra.Command, _ []string) error {
	out := effectiveConfig{Config: cfg}
	for _, name := range llm.APIKeyEnvVars(cfg.Provider) {
		value := common.Redact(os.Getenv(name))
		if value == "" {
			value = "(not set)"
		}
		out.Credentials = append(out.Credentials, credential{Name: name, Value: value})
	}

	enc := yaml.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent(2)
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return enc.Close()
}

func init() {
	rootCmd.AddCommand(configCmd)
}
