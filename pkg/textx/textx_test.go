package textx

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripTags(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no tags", "plain text", "plain text"},
		{"bold", "<b>AAPL</b> buy", "AAPL buy"},
		{"unbalanced", "broken <b>tag", "broken tag"},
		{"nested-ish", "<a href=\"x\"><b>link</b></a>", "link"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripTags(tt.in))
		})
	}
}

func TestStripTags_Idempotent(t *testing.T) {
	in := "🚨 <b>Alert</b>\n<i>detail</i> & <broken"
	once := StripTags(in)
	assert.Equal(t, once, StripTags(once))
}

func TestSplitMessage_ShortText(t *testing.T) {
	chunks := SplitMessage("hello", 100)
	assert.Equal(t, []string{"hello"}, chunks)
}

func TestSplitMessage_SplitsAtNewline(t *testing.T) {
	text := strings.Repeat("line one\n", 20)
	chunks := SplitMessage(text, 50)

	require.Greater(t, len(chunks), 1)
	for _, c := range chunks {
		assert.LessOrEqual(t, len(c), 50)
	}
	// Splits land on line boundaries, never mid-line.
	for _, c := range chunks[:len(chunks)-1] {
		assert.False(t, strings.HasSuffix(c, "line"), "chunk cut mid-line: %q", c)
	}
}

func TestSplitMessage_HardSplitWithoutNewline(t *testing.T) {
	text := strings.Repeat("a", 120)
	chunks := SplitMessage(text, 50)

	require.Len(t, chunks, 3)
	assert.Equal(t, strings.Repeat("a", 50), chunks[0])
	assert.Equal(t, strings.Repeat("a", 50), chunks[1])
	assert.Equal(t, strings.Repeat("a", 20), chunks[2])
}

// Concatenating the chunks with the stripped newlines re-inserted must
// reconstruct the original content.
func TestSplitMessage_Reconstructs(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		limit int
	}{
		{"newline heavy", strings.Repeat("alpha beta\ngamma\n", 40), 64},
		{"no newlines", strings.Repeat("x", 300), 99},
		{"mixed", "short\n" + strings.Repeat("y", 150) + "\ntail", 60},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chunks := SplitMessage(tt.text, tt.limit)
			for _, c := range chunks {
				assert.LessOrEqual(t, len(c), tt.limit)
			}
			joined := strings.Join(chunks, "\n")
			// Newline runs at chunk borders may collapse; compare modulo them.
			normalize := func(s string) string {
				return strings.Join(strings.FieldsFunc(s, func(r rune) bool { return r == '\n' }), "\n")
			}
			assert.Equal(t, normalize(tt.text), normalize(joined))
		})
	}
}
