package analyst

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// Extraction strategies for structured data buried in free-form LLM text,
// tried in order. Each yields a candidate substring; the first candidate
// that unmarshals cleanly wins.

type extractStrategy func(text string) (string, bool)

var fencedRe = regexp.MustCompile("(?s)```(?:json)?\\s*(.+?)```")

func wholeText(text string) (string, bool) {
	return text, true
}

func fencedBlock(text string) (string, bool) {
	m := fencedRe.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return m[1], true
}

func braceSpan(text string) (string, bool) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end == -1 || end < start {
		return "", false
	}
	return text[start : end+1], true
}

var strategies = []extractStrategy{wholeText, fencedBlock, braceSpan}

// extractJSON unmarshals the first JSON object any strategy can dig out of
// text into v. Returns an error only when every strategy fails; callers
// treat that as "no result", not a fault.
func extractJSON(text string, v any) error {
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("empty response")
	}
	for _, strat := range strategies {
		candidate, ok := strat(text)
		if !ok {
			continue
		}
		if err := json.Unmarshal([]byte(candidate), v); err == nil {
			return nil
		}
	}
	return fmt.Errorf("no parseable JSON in response")
}
