package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/birmacher/prompt-guide/common"
	"github.com/birmacher/prompt-guide/llm"
	"github.com/spf13/cobra"
)

var (
	completeFile string
	completeWrap int
)

// ErrEmptyPrompt is returned when no prompt text was given
var ErrEmptyPrompt = errors.New("prompt is empty")

var completeCmd = &cobra.Command{
	Use:   "complete [prompt...]",
	Short: "Send a single prompt and print the completion",
	Long: `Send one user message to the configured model at temperature 0 and print
the text of the first choice exactly as returned.

The prompt is taken from the arguments, from --file (use - for stdin), or from
stdin when neither is given.`,
	Example: `  prompt-guide complete "Summarize the text delimited by triple backticks into a single sentence. `+"```"+`...`+"```"+`"
  prompt-guide complete --file prompt.txt --provider anthropic
  echo "Translate to French: Hello" | prompt-guide complete`,
	RunE: runComplete,
}

func runComplete(cmd *cobra.Command, args []string) error {
	text, err := readPrompt(cmd, args)
	if err != nil {
		return err
	}

	client, err := newLLMClient(cfg)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}

	completion, err := llm.GetCompletion(cmd.Context(), client, text, cfg.Model)
	if err != nil {
		return err
	}

	return printCompletion(cmd.OutOrStdout(), completion, completeWrap)
}

// readPrompt resolves the prompt text from args, --file or stdin
func readPrompt(cmd *cobra.Command, args []string) (string, error) {
	if len(args) > 0 && completeFile != "" {
		return "", errors.New("pass the prompt either as arguments or with --file, not both")
	}

	var text string
	switch {
	case len(args) > 0:
		text = strings.Join(args, " ")
	case completeFile != "" && completeFile != "-":
		data, err := os.ReadFile(completeFile)
		if err != nil {
			return "", fmt.Errorf("failed to read prompt file: %w", err)
		}
		text = string(data)
	default:
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("failed to read prompt from stdin: %w", err)
		}
		text = string(data)
	}

	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyPrompt
	}
	return text, nil
}

// printCompletion writes the completion unchanged unless wrapping was asked for.
// A trailing newline is only added when the completion has none.
func printCompletion(w io.Writer, completion string, wrap int) error {
	if wrap > 0 {
		completion = common.WrapString(completion, wrap)
	}
	if _, err := io.WriteString(w, completion); err != nil {
		return err
	}
	if !strings.HasSuffix(completion, "\n") {
		_, err := io.WriteString(w, "\n")
		return err
	}
	return nil
}

func init() {
	completeCmd.Flags().StringVarP(&completeFile, "file", "f", "", "Read the prompt from a file, - for stdin")
	completeCmd.Flags().IntVar(&completeWrap, "wrap", 0, "Word-wrap the printed completion at this width, 0 disables")

	rootCmd.AddCommand(completeCmd)
}
