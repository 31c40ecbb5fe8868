package alert

import (
	"fmt"
	"strings"
	"testing"

	"github.com/bernhardbrugger/deepstock-bot/internal/entity"
	"github.com/bernhardbrugger/deepstock-bot/pkg/textx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func buyTrade() entity.TradeRecord {
	return entity.TradeRecord{
		Source:          "fmp",
		Ticker:          "AAPL",
		InsiderName:     "Tim Cook",
		InsiderTitle:    "CEO",
		TransactionType: "P",
		Shares:          50000,
		Price:           decimal.NewFromFloat(190.25),
		Value:           decimal.NewFromInt(9_512_500),
		Date:            "2026-08-25",
		Score:           7.4,
	}
}

func TestFormatBreakingAlert_Fields(t *testing.T) {
	msg := FormatBreakingAlert(buyTrade(), nil)

	assert.Contains(t, msg, "🟢 BUY")
	assert.Contains(t, msg, "<b>Tim Cook</b>")
	assert.Contains(t, msg, "<b>AAPL</b>")
	assert.Contains(t, msg, "50,000 shares @ $190.25")
	assert.Contains(t, msg, "$9,512,500")
	assert.Contains(t, msg, "7.4/10")
}

func TestFormatBreakingAlert_SellMarker(t *testing.T) {
	trade := buyTrade()
	trade.TransactionType = "S"
	assert.Contains(t, FormatBreakingAlert(trade, nil), "🔴 SELL")
}

func TestFormatBreakingAlert_NoAnalysisSection(t *testing.T) {
	msg := FormatBreakingAlert(buyTrade(), nil)
	assert.NotContains(t, msg, "AI Analysis")
}

func TestFormatBreakingAlert_WithAnalysis(t *testing.T) {
	analysis := &entity.Analysis{
		SignificanceScore: 8.0,
		Sentiment:         entity.SentimentBullish,
		Headline:          "CEO doubles down",
		Analysis:          "Meaningful conviction buy.",
		HistoricalNote:    "Largest since 2021.",
	}
	msg := FormatBreakingAlert(buyTrade(), analysis)

	assert.Contains(t, msg, "AI Analysis")
	assert.Contains(t, msg, "8.0/10 — BULLISH")
	assert.Contains(t, msg, "CEO doubles down")
	assert.Contains(t, msg, "Largest since 2021.")
}

func TestScoreBar_RoundsAndPads(t *testing.T) {
	tests := []struct {
		score  float64
		filled int
	}{
		{0, 0},
		{7.4, 7},
		{7.5, 8},
		{10, 10},
	}
	for _, tt := range tests {
		bar := scoreBar(tt.score)
		assert.Equal(t, tt.filled, strings.Count(bar, "█"), "score %.1f", tt.score)
		assert.Equal(t, 10-tt.filled, strings.Count(bar, "░"), "score %.1f", tt.score)
	}
}

func TestFormatDailyDigest_TopTenCap(t *testing.T) {
	trades := make([]entity.TradeRecord, 15)
	for i := range trades {
		trades[i] = buyTrade()
		trades[i].Ticker = fmt.Sprintf("T%02d", i)
	}

	msg := FormatDailyDigest(trades, nil)
	assert.Contains(t, msg, "Found <b>15</b> notable insider trades")
	assert.Contains(t, msg, "10. ")
	assert.NotContains(t, msg, "11. ")
	assert.NotContains(t, msg, "T10") // rank 11 trade is cut
}

func TestFormatDailyDigest_PatternsAndSentiment(t *testing.T) {
	report := &entity.PatternReport{
		PatternsFound: 1,
		Patterns: []entity.Pattern{
			{Type: "cluster_buy", Tickers: []string{"AAPL", "MSFT"}, Description: "Multiple execs buying.", Confidence: 0.9},
		},
		Summary: "Insiders leaning bullish.",
	}
	msg := FormatDailyDigest([]entity.TradeRecord{buyTrade(), buyTrade()}, report)

	assert.Contains(t, msg, "Patterns Detected")
	assert.Contains(t, msg, "[cluster_buy] AAPL, MSFT")
	assert.Contains(t, msg, "Market Sentiment:</b> Insiders leaning bullish.")
}

func TestFormatDailyDigest_NoReportOmitsSections(t *testing.T) {
	msg := FormatDailyDigest([]entity.TradeRecord{buyTrade()}, nil)
	assert.NotContains(t, msg, "Patterns Detected")
	assert.NotContains(t, msg, "Market Sentiment")
}

func TestFormatPatternAlert(t *testing.T) {
	report := entity.PatternReport{
		PatternsFound: 2,
		Patterns: []entity.Pattern{
			{Type: "unusual_size", Tickers: []string{"NVDA"}, Description: "Outsized sale.", Confidence: 0.75},
		},
		Summary: "Mixed signals.",
	}
	msg := FormatPatternAlert(report)

	assert.Contains(t, msg, "Detected <b>2</b> notable patterns")
	assert.Contains(t, msg, "UNUSUAL_SIZE")
	assert.Contains(t, msg, "75%")
	assert.Contains(t, msg, "📈 Mixed signals.")
}

// The plain variant of any formatted message must strip cleanly and stay
// stable under a second strip.
func TestPlainVariantDegradesGracefully(t *testing.T) {
	msg := FormatDailyDigest([]entity.TradeRecord{buyTrade()}, nil)
	plain := textx.StripTags(msg)

	assert.NotContains(t, plain, "<b>")
	assert.NotContains(t, plain, "</b>")
	assert.Equal(t, plain, textx.StripTags(plain))
	assert.Contains(t, plain, "Tim Cook")
}

func TestAlertSubject(t *testing.T) {
	trade := buyTrade()
	assert.Equal(t, "🚨 Insider Trade: AAPL — Notable Activity", AlertSubject(trade))

	trade.Analysis = &entity.Analysis{Headline: "Big conviction buy"}
	assert.Equal(t, "🚨 Insider Trade: AAPL — Big conviction buy", AlertSubject(trade))
}
