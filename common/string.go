package common

import "strings"

// WrapString wraps every line of s at width, splitting on the last space
// that fits. Existing line breaks are kept and a width below 1 disables wrapping.
func WrapString(s string, width int) string {
	if width < 1 {
		return s
	}

	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = wrapLine(line, width)
	}
	return strings.Join(lines, "\n")
}

func wrapLine(s string, width int) string {
	var lines []string
	for len(s) > width {
		splitAt := width
		// Try to split at the last space before the specified width
		for i := width; i > 0; i-- {
			if s[i] == ' ' {
				splitAt = i
				break
			}
		}
		lines = append(lines, s[:splitAt])
		s = s[splitAt:]
		// Remove leading space
		s = strings.TrimLeft(s, " ")
	}
	if len(s) > 0 || len(lines) == 0 {
		lines = append(lines, s)
	}
	return strings.Join(lines, "\n")
}
