package prompt

import (
	"strings"

	"github.com/birmacher/prompt-guide/logger"
)

// Delimiter marks where caller-supplied text starts and ends inside a prompt.
// Text between the markers is data for the model, never instructions.
type Delimiter struct {
	Name  string
	Open  string
	Close string
}

var (
	Backticks     = Delimiter{Name: "triple backticks", Open: "```", Close: "```"}
	Quotes        = Delimiter{Name: "triple quotes", Open: `"""`, Close: `"""`}
	AngleBrackets = Delimiter{Name: "angle brackets", Open: "<", Close: ">"}
)

// XMLTag delimits text with <name> and </name>.
func XMLTag(name string) Delimiter {
	return Delimiter{Name: "<" + name + "> tags", Open: "<" + name + ">", Close: "</" + name + ">"}
}

// Fence wraps text in d. The payload is kept byte for byte; a payload that
// contains the closing marker is logged so the boundary stays auditable.
// Single-character markers such as AngleBrackets are not checked, since '>'
// turns up in ordinary text.
func Fence(d Delimiter, text string) string {
	if len(d.Close) > 1 && ContainsDelimiter(d, text) {
		logger.Warnf("Fenced text contains its own closing delimiter (%s), the model may read part of it as instructions", d.Name)
	}
	return d.Open + text + d.Close
}

// ContainsDelimiter reports whether text could close the fence early.
func ContainsDelimiter(d Delimiter, text string) bool {
	return d.Close != "" && strings.Contains(text, d.Close)
}
