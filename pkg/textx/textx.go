package textx

import (
	"regexp"
	"strings"
)

var tagRe = regexp.MustCompile(`<[^>]+>`)

// StripTags removes HTML-subset markup from s. It is a greedy tag strip,
// not an HTML parser, so unbalanced or malformed tags degrade to plain text
// instead of failing. Idempotent.
func StripTags(s string) string {
	return tagRe.ReplaceAllString(s, "")
}

// SplitMessage splits text into chunks of at most limit bytes.
// Each split happens at the last newline at or before the limit; if a
// single line exceeds the limit it is hard-split. Leading newlines are
// stripped from the remainder before computing the next chunk.
func SplitMessage(text string, limit int) []string {
	if len(text) <= limit {
		return []string{text}
	}

	var chunks []string
	for len(text) > 0 {
		if len(text) <= limit {
			chunks = append(chunks, text)
			break
		}
		cut := strings.LastIndex(text[:limit], "\n")
		if cut == -1 {
			cut = limit
		}
		chunks = append(chunks, text[:cut])
		text = strings.TrimLeft(text[cut:], "\n")
	}
	return chunks
}
