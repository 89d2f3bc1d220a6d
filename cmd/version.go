package cmd

import (
	"fmt"

	"github.com/birmacher/prompt-guide/version"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  `Display the version of prompt-guide`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "prompt-guide v%s\n", version.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
