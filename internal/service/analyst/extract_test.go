package analyst

import (
	"testing"

	"github.com/bernhardbrugger/deepstock-bot/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSON_WholeText(t *testing.T) {
	var analysis entity.Analysis
	err := extractJSON(`{"significance_score": 7.5, "sentiment": "bullish", "headline": "h"}`, &analysis)
	require.NoError(t, err)
	assert.Equal(t, 7.5, analysis.SignificanceScore)
	assert.Equal(t, entity.SentimentBullish, analysis.Sentiment)
}

func TestExtractJSON_FencedBlock(t *testing.T) {
	text := "Here is my assessment:\n```json\n{\"significance_score\": 4, \"sentiment\": \"neutral\"}\n```\nHope that helps."
	var analysis entity.Analysis
	require.NoError(t, extractJSON(text, &analysis))
	assert.Equal(t, 4.0, analysis.SignificanceScore)
}

func TestExtractJSON_FencedBlockNoLanguageTag(t *testing.T) {
	text := "```\n{\"sentiment\": \"bearish\"}\n```"
	var analysis entity.Analysis
	require.NoError(t, extractJSON(text, &analysis))
	assert.Equal(t, entity.SentimentBearish, analysis.Sentiment)
}

func TestExtractJSON_BraceSpan(t *testing.T) {
	text := "Sure! Based on the trade, {\"significance_score\": 9, \"sentiment\": \"bullish\"} is my verdict."
	var analysis entity.Analysis
	require.NoError(t, extractJSON(text, &analysis))
	assert.Equal(t, 9.0, analysis.SignificanceScore)
}

func TestExtractJSON_PlainProse(t *testing.T) {
	var analysis entity.Analysis
	err := extractJSON("This trade looks significant because the CEO bought heavily.", &analysis)
	assert.Error(t, err)
}

func TestExtractJSON_Empty(t *testing.T) {
	var analysis entity.Analysis
	assert.Error(t, extractJSON("", &analysis))
	assert.Error(t, extractJSON("   \n", &analysis))
}

func TestExtractJSON_MalformedEverywhere(t *testing.T) {
	text := "```json\n{broken\n```\nand also {still broken"
	var report entity.PatternReport
	assert.Error(t, extractJSON(text, &report))
}

func TestExtractJSON_FirstStrategyWins(t *testing.T) {
	// Whole text parses, so the fenced block inside must not be consulted.
	text := `{"summary": "outer"}`
	var report entity.PatternReport
	require.NoError(t, extractJSON(text, &report))
	assert.Equal(t, "outer", report.Summary)
}
