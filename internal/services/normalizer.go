package services

import (
	"regexp"
	"strings"
)

var openingFence = regexp.MustCompile("^```[A-Za-z0-9_+-]*")

// NormalizeResponse prepares raw model output for structured parsing. It
// strips a surrounding ``` fence, drops newline characters and, when the
// text is wrapped in commentary, keeps only the outermost [...] span.
// The result is not guaranteed to be valid JSON.
func NormalizeResponse(raw string) string {
	current := raw
	for {
		next := normalizeOnce(current)
		if next == current {
			return next
		}
		current = next
	}
}

// every step only removes characters, so NormalizeResponse terminates
func normalizeOnce(text string) string {
	text = strings.TrimSpace(text)
	text = openingFence.ReplaceAllString(text, "")
	text = strings.TrimSpace(text)
	text = strings.TrimSuffix(text, "```")

	text = strings.ReplaceAll(text, "\r", "")
	text = strings.ReplaceAll(text, "\n", "")

	if !strings.HasPrefix(text, "[") && !strings.HasPrefix(text, "{") {
		start := strings.Index(text, "[")
		end := strings.LastIndex(text, "]")
		if start != -1 && end > start {
			text = text[start : end+1]
		}
	}

	return strings.TrimSpace(text)
}
