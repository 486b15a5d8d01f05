package services

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// TrimToBoundary shortens text to at most maxChars runes. Whole paragraphs
// are kept first, then whole sentences of the paragraph that overflowed.
// Text without a usable boundary is cut at maxChars.
func TrimToBoundary(text string, maxChars int) string {
	if maxChars <= 0 || utf8.RuneCountInString(text) <= maxChars {
		return text
	}

	var b strings.Builder
	used := 0
	appendPart := func(part, sep string) bool {
		n := utf8.RuneCountInString(part)
		if used > 0 {
			n += utf8.RuneCountInString(sep)
		}
		if used+n > maxChars {
			return false
		}
		if used > 0 {
			b.WriteString(sep)
		}
		b.WriteString(part)
		used += n
		return true
	}

	for _, para := range splitParagraphs(text) {
		if appendPart(para, "\n\n") {
			continue
		}

		sep := "\n\n"
		for _, sentence := range splitSentences(para) {
			if !appendPart(sentence, sep) {
				break
			}
			sep = " "
		}
		break
	}

	if used == 0 {
		return strings.TrimSpace(string([]rune(text)[:maxChars]))
	}
	return b.String()
}

func splitParagraphs(text string) []string {
	var paragraphs []string
	for _, para := range strings.Split(text, "\n\n") {
		if para = strings.TrimSpace(para); para != "" {
			paragraphs = append(paragraphs, para)
		}
	}
	return paragraphs
}

// splitSentences splits after '.', '!' or '?' followed by whitespace and
// keeps the punctuation with its sentence.
func splitSentences(text string) []string {
	var sentences []string
	runes := []rune(text)
	start := 0

	for i, r := range runes {
		if r != '.' && r != '!' && r != '?' {
			continue
		}
		if i+1 < len(runes) && !unicode.IsSpace(runes[i+1]) {
			continue
		}
		if s := strings.TrimSpace(string(runes[start : i+1])); s != "" {
			sentences = append(sentences, s)
		}
		start = i + 1
	}

	if s := strings.TrimSpace(string(runes[start:])); s != "" {
		sentences = append(sentences, s)
	}
	return sentences
}
