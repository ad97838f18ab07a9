package llm

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithConfig(t *testing.T) {
	config := ChatConfig{
		Model:       "gpt-4o-mini",
		Temperature: 0.5,
		MaxTokens:   1000,
		APIKey:      "test-key",
		Language:    "es",
	}
	engine, err := NewWithConfig(config)
	require.NoError(t, err)
	assert.NotNil(t, engine)
}

func TestNewWithConfigRejectsBadValues(t *testing.T) {
	_, err := NewWithConfig(ChatConfig{Temperature: 3.0, APIKey: "test-key"})
	assert.Error(t, err)

	_, err = NewWithConfig(ChatConfig{MaxTokens: -1, APIKey: "test-key"})
	assert.Error(t, err)
}

func TestClipToRuneBoundary(t *testing.T) {
	// "á" is two bytes; a byte-index clip at 2 would split it
	assert.Equal(t, "a", clipToRuneBoundary("aá", 2))
	assert.Equal(t, "aá", clipToRuneBoundary("aá", 3))
	assert.Equal(t, "ab", clipToRuneBoundary("abc", 2))
	assert.Equal(t, "corto", clipToRuneBoundary("corto", 4000))

	clipped := clipToRuneBoundary(strings.Repeat("ñ", 3000), 4000)
	assert.True(t, utf8.ValidString(clipped))
	assert.LessOrEqual(t, len(clipped), 4000)
}

func TestParseMatchDecision(t *testing.T) {
	tests := []struct {
		name string
		text string
		want matchDecision
	}{
		{
			name: "plain json",
			text: `{"id": "Q7747", "reason": "same name and role"}`,
			want: matchDecision{ID: "Q7747", Reason: "same name and role"},
		},
		{
			name: "fenced json",
			text: "```json\n{\"id\": \"Q7747\", \"reason\": \"match\"}\n```",
			want: matchDecision{ID: "Q7747", Reason: "match"},
		},
		{
			name: "json surrounded by prose",
			text: "The best candidate is:\n{\"id\": \"NONE\", \"reason\": \"no overlap\"}\nHope that helps.",
			want: matchDecision{ID: "NONE", Reason: "no overlap"},
		},
		{
			name: "garbage",
			text: "I cannot decide.",
			want: matchDecision{},
		},
		{
			name: "empty",
			text: "",
			want: matchDecision{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseMatchDecision(tt.text))
		})
	}
}
