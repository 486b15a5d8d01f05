package services

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestTrimToBoundary(t *testing.T) {
	testCases := []struct {
		name     string
		text     string
		maxChars int
		want     string
	}{
		{
			name:     "short text untouched",
			text:     "Go developer.",
			maxChars: 100,
			want:     "Go developer.",
		},
		{
			name:     "no limit",
			text:     strings.Repeat("a", 50),
			maxChars: 0,
			want:     strings.Repeat("a", 50),
		},
		{
			name:     "keeps whole paragraphs",
			text:     "Experience\n\nBackend at Acme.\n\nSkills: Go, Kafka, Postgres and a lot more",
			maxChars: 30,
			want:     "Experience\n\nBackend at Acme.",
		},
		{
			name:     "fills with sentences",
			text:     "Summary\n\nBuilt APIs. Led a team. Migrated to Kubernetes clusters in production.",
			maxChars: 40,
			want:     "Summary\n\nBuilt APIs. Led a team.",
		},
		{
			name:     "decimal points are not sentence ends",
			text:     "Improved latency by 2.5x. Shipped v1.0 on time and under budget for everyone.",
			maxChars: 30,
			want:     "Improved latency by 2.5x.",
		},
		{
			name:     "hard cut without boundary",
			text:     strings.Repeat("é", 30),
			maxChars: 10,
			want:     strings.Repeat("é", 10),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := TrimToBoundary(tc.text, tc.maxChars)
			assert.Equal(t, tc.want, got)
			if tc.maxChars > 0 {
				assert.LessOrEqual(t, utf8.RuneCountInString(got), tc.maxChars)
			}
		})
	}
}
