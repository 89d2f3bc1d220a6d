package cmd

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/birmacher/prompt-guide/guide"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	examplesSection   string
	examplesInputFile string
	examplesParams    []string
)

var examplesCmd = &cobra.Command{
	Use:     "examples",
	Aliases: []string{"example", "ex"},
	Short:   "Browse and run the prompt engineering examples",
}

var examplesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the available examples",
	Args:  cobra.NoArgs,
	RunE:  runExamplesList,
}

var examplesShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Print the prompt an example sends, without calling the model",
	Args:  cobra.ExactArgs(1),
	RunE:  runExamplesShow,
}

var examplesRunCmd = &cobra.Command{
	Use:   "run <name>",
	Short: "Send an example prompt to the model and print the completion",
	Args:  cobra.ExactArgs(1),
	Example: `  prompt-guide examples run sentiment
  prompt-guide examples run translate --param language=German --input-file note.txt`,
	RunE: runExamplesRun,
}

func runExamplesList(cmd *cobra.Command, _ []string) error {
	w := cmd.OutOrStdout()

	sections := guide.Sections()
	if examplesSection != "" {
		if len(guide.BySection(examplesSection)) == 0 {
			return fmt.Errorf("unknown section %q; sections: %s",
				examplesSection, strings.Join(sections, ", "))
		}
		sections = []string{examplesSection}
	}

	bold := color.New(color.Bold)
	cyan := color.New(color.FgCyan)

	for i, section := range sections {
		if i > 0 {
			_, _ = fmt.Fprintln(w)
		}
		_, _ = fmt.Fprintln(w, bold.Sprint(section))

		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		for _, ex := range guide.BySection(section) {
			_, _ = fmt.Fprintf(tw, "  %s\t%s\n", cyan.Sprint(ex.Name), ex.Description)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}
	return nil
}

func runExamplesShow(cmd *cobra.Command, args []string) error {
	ex, input, overrides, err := resolveExample(args[0])
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), ex.BuildWith(input, overrides))
	return err
}

func runExamplesRun(cmd *cobra.Command, args []string) error {
	ex, input, overrides, err := resolveExample(args[0])
	if err != nil {
		return err
	}

	client, err := newLLMClient(cfg)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}

	completion, err := guide.Run(cmd.Context(), client, cfg.Model, ex, input, overrides)
	if err != nil {
		return err
	}

	return printCompletion(cmd.OutOrStdout(), completion, 0)
}

// resolveExample looks up the named example together with the input and
// parameter overrides given on the command line.
func resolveExample(name string) (guide.Example, string, map[string]string, error) {
	ex, err := guide.Lookup(name)
	if err != nil {
		return guide.Example{}, "", nil, fmt.Errorf("%w; run 'prompt-guide examples list' to see them", err)
	}

	var input string
	if examplesInputFile != "" {
		data, err := os.ReadFile(examplesInputFile)
		if err != nil {
			return guide.Example{}, "", nil, fmt.Errorf("failed to read input file: %w", err)
		}
		// An empty input would silently fall back to the sample
		if strings.TrimSpace(string(data)) == "" {
			return guide.Example{}, "", nil, fmt.Errorf("input file %s is empty", examplesInputFile)
		}
		input = string(data)
	}

	overrides, err := parseParams(examplesParams)
	if err != nil {
		return guide.Example{}, "", nil, err
	}

	for key := range overrides {
		if _, ok := ex.Params[key]; !ok {
			return guide.Example{}, "", nil, fmt.Errorf("example %s has no parameter %q", ex.Name, key)
		}
	}

	return ex, input, overrides, nil
}

// parseParams turns key=value pairs into a map. Values may contain '='.
func parseParams(pairs []string) (map[string]string, error) {
	params := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || strings.TrimSpace(key) == "" {
			return nil, fmt.Errorf("invalid parameter %q, expected key=value", pair)
		}
		params[strings.TrimSpace(key)] = value
	}
	return params, nil
}

func init() {
	examplesListCmd.Flags().StringVar(&examplesSection, "section", "", "Only list examples of this section")

	for _, c := range []*cobra.Command{examplesShowCmd, examplesRunCmd} {
		c.Flags().StringVar(&examplesInputFile, "input-file", "", "Use the contents of this file instead of the sample input")
		c.Flags().StringArrayVar(&examplesParams, "param", nil, "Override an example parameter, as key=value (repeatable)")
	}

	examplesCmd.AddCommand(examplesListCmd, examplesShowCmd, examplesRunCmd)
	rootCmd.AddCommand(examplesCmd)
}
