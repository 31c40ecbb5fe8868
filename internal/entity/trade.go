package entity

import (
	"strings"

	"github.com/shopspring/decimal"
)

// TradeRecord 标准化后的内部交易披露记录
// One disclosed insider transaction or filing, normalized across data sources.
type TradeRecord struct {
	Source          string          `json:"source"`
	Ticker          string          `json:"ticker"`
	InsiderName     string          `json:"insider_name"`
	InsiderTitle    string          `json:"insider_title"`
	TransactionType string          `json:"transaction_type"`
	Shares          int64           `json:"shares"`
	Price           decimal.Decimal `json:"price"`
	Value           decimal.Decimal `json:"value"`
	Date            string          `json:"date"`
	FilingDate      string          `json:"filing_date"`
	Raw             any             `json:"raw,omitempty"`

	// Score is attached by the scoring engine, 0-10.
	Score float64 `json:"score"`
	// Analysis is nil unless LLM enrichment produced a result.
	Analysis *Analysis `json:"ai_analysis,omitempty"`
}

// IsBuy reports whether the transaction code marks an acquisition.
func (t TradeRecord) IsBuy() bool {
	switch strings.ToUpper(t.TransactionType) {
	case "P", "BUY", "A":
		return true
	}
	return false
}

// IsSell reports whether the transaction code marks a disposition.
func (t TradeRecord) IsSell() bool {
	switch strings.ToUpper(t.TransactionType) {
	case "S", "SELL", "D":
		return true
	}
	return false
}

type Sentiment string

const (
	SentimentBullish Sentiment = "bullish"
	SentimentBearish Sentiment = "bearish"
	SentimentNeutral Sentiment = "neutral"
)

// Analysis LLM 对单笔交易的评估结果
type Analysis struct {
	SignificanceScore float64   `json:"significance_score"`
	Sentiment         Sentiment `json:"sentiment"`
	Headline          string    `json:"headline"`
	Analysis          string    `json:"analysis"`
	HistoricalNote    string    `json:"historical_note,omitempty"`
}

type Pattern struct {
	Type        string   `json:"type"`
	Tickers     []string `json:"tickers"`
	Description string   `json:"description"`
	Confidence  float64  `json:"confidence"`
}

// PatternReport 跨交易批量模式检测结果
type PatternReport struct {
	PatternsFound int       `json:"patterns_found"`
	Patterns      []Pattern `json:"patterns"`
	Summary       string    `json:"summary"`
}
