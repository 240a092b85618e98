package logger

import (
	"fmt"
	"strings"
)

// RedactDescription hides the content of an expense description while
// preserving length information for debugging.
func RedactDescription(desc string) string {
	if desc == "" {
		return "<empty>"
	}

	words := strings.Fields(desc)
	return fmt.Sprintf("<redacted: %d words, %d chars>", len(words), len(desc))
}

// RedactText is a general-purpose redactor for any user-provided text. Short
// values are reduced to a length marker, longer ones keep a small prefix.
func RedactText(text string) string {
	if text == "" {
		return "<empty>"
	}

	if len(text) <= 10 {
		return fmt.Sprintf("<%d chars>", len(text))
	}

	return fmt.Sprintf("%s...<%d chars>", text[:3], len(text))
}
