package prompt

import (
	"fmt"
	"strings"
)

// SummarizeOptions narrows a summary down to what a reader needs.
type SummarizeOptions struct {
	// Subject describes the text, e.g. "a product review from an ecommerce site"
	Subject string
	// Audience receives the summary, e.g. "the Shipping department"
	Audience string
	// Focus names the aspects to concentrate on
	Focus string
	// MaxWords caps the length when positive
	MaxWords int
	// Extract asks for the relevant information only instead of a summary
	Extract bool
}

// Summarize builds a summary (or extraction) prompt for text fenced in backticks.
func Summarize(text string, opts SummarizeOptions) string {
	subject := opts.Subject
	if subject == "" {
		subject = "a text"
	}

	var b strings.Builder
	if opts.Extract {
		fmt.Fprintf(&b, "Your task is to extract relevant information from %s", subject)
	} else {
		fmt.Fprintf(&b, "Your task is to generate a short summary of %s", subject)
	}
	if opts.Audience != "" {
		fmt.Fprintf(&b, " to give feedback to %s", opts.Audience)
	}
	b.WriteString(".\n\n")

	if opts.Extract {
		b.WriteString("From the text below, delimited by triple backticks, extract the information relevant")
		if opts.Focus != "" {
			fmt.Fprintf(&b, " to %s", opts.Focus)
		}
		b.WriteString(".")
		if opts.MaxWords > 0 {
			fmt.Fprintf(&b, " Limit to %d words.", opts.MaxWords)
		}
	} else {
		b.WriteString("Summarize the text below, delimited by triple backticks")
		if opts.MaxWords > 0 {
			fmt.Fprintf(&b, ", in at most %d words", opts.MaxWords)
		}
		if opts.Focus != "" {
			fmt.Fprintf(&b, ", and focusing on any aspects that mention %s", opts.Focus)
		}
		b.WriteString(".")
	}

	b.WriteString("\n\nText: ")
	b.WriteString(Fence(Backticks, text))
	return b.String()
}
