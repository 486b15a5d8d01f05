package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeResponse(t *testing.T) {
	testCases := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "plain array",
			raw:  `[{"question":"q","answer":"a"}]`,
			want: `[{"question":"q","answer":"a"}]`,
		},
		{
			name: "fenced with language tag",
			raw:  "```json\n[\n  {\"question\":\"q\",\"answer\":\"a\"}\n]\n```",
			want: `[  {"question":"q","answer":"a"}]`,
		},
		{
			name: "fenced without language tag",
			raw:  "```\n[1,2]\n```\n",
			want: `[1,2]`,
		},
		{
			name: "surrounding whitespace and carriage returns",
			raw:  "  \r\n[\r\n1\r\n]  ",
			want: `[1]`,
		},
		{
			name: "commentary around the array",
			raw:  "Here are your questions:\n[\"a\", \"b\"]\nGood luck!",
			want: `["a", "b"]`,
		},
		{
			name: "no json at all",
			raw:  "Sorry, I cannot help with that.",
			want: "Sorry, I cannot help with that.",
		},
		{
			name: "empty",
			raw:  "",
			want: "",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, NormalizeResponse(tc.raw))
		})
	}
}

func TestNormalizeResponseIsIdempotent(t *testing.T) {
	inputs := []string{
		"```json\n[{\"question\":\"q\"}]\n```",
		"``````json\n```\n[1]\n```\n```",
		"text before ```json\n[1]``` text after",
		"\n\n   {\"a\": 1}\n",
		"[unbalanced",
		"``` ```",
	}

	for _, in := range inputs {
		once := NormalizeResponse(in)
		assert.Equal(t, once, NormalizeResponse(once), "input %q", in)
	}
}
