package generation

import (
	"regexp"
	"strings"
)

var apostrophePattern = regexp.MustCompile(`(\w)"(\w)`)

// NormalizeResponse repairs the quoting of raw model output so that it has a
// chance to decode as JSON. Single quotes become double quotes, except where
// the quote sits between two word characters (an apostrophe as in "don't").
// Residual damage is left for the decoder to report.
func NormalizeResponse(raw string) string {
	text := stripReasoning(strings.TrimSpace(raw))
	text = stripCodeFence(text)
	text = strings.ReplaceAll(text, "'", `"`)
	return apostrophePattern.ReplaceAllString(text, "$1'$2")
}

// stripReasoning drops a <think>...</think> block emitted by reasoning models.
func stripReasoning(text string) string {
	start := strings.Index(text, "<think>")
	if start == -1 {
		return text
	}
	end := strings.Index(text, "</think>")
	if end == -1 || end < start {
		return text
	}
	return strings.TrimSpace(text[:start] + text[end+len("</think>"):])
}

func stripCodeFence(text string) string {
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}
