package analyst

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/bernhardbrugger/deepstock-bot/internal/entity"
	"github.com/bernhardbrugger/deepstock-bot/internal/service/llm"
	"github.com/dustin/go-humanize"
	"github.com/samber/lo"
)

const tradeAnalysisPrompt = `You are an expert financial analyst specializing in insider trading patterns. Analyze the following insider trade and provide a concise, actionable assessment.

TRADE DETAILS:
- Insider: %s (%s)
- Company: %s
- Action: %s
- Shares: %s
- Price: $%s
- Total Value: $%s
- Date: %s

%s

Provide your analysis in this exact JSON format:
{
    "significance_score": <1-10 float>,
    "sentiment": "<bullish|bearish|neutral>",
    "headline": "<one-line punchy headline, max 100 chars>",
    "analysis": "<2-3 sentence analysis explaining why this trade matters>",
    "historical_note": "<brief comparison to past similar trades if relevant, otherwise null>"
}

Be direct, specific, and avoid generic statements. If this is a notable insider (CEO, Congress member, famous investor), emphasize that.`

const patternDetectionPrompt = `You are an expert financial analyst. Analyze these insider trades for patterns, clusters, or unusual activity.

TRADES (last 7 days):
%s

Look for:
1. Multiple insiders buying/selling the same stock (cluster trades)
2. Unusual timing (before earnings, before announcements)
3. Congress members trading similar sectors
4. Abnormally large positions

Provide your analysis in this JSON format:
{
    "patterns_found": <number of patterns>,
    "patterns": [
        {
            "type": "<cluster_buy|cluster_sell|pre_earnings|sector_trend|unusual_size>",
            "tickers": ["<ticker1>", "<ticker2>"],
            "description": "<1-2 sentence description>",
            "confidence": <0.0-1.0>
        }
    ],
    "summary": "<brief overall market insider sentiment summary>"
}`

// maxPatternTrades caps the batch projected into the pattern prompt.
const maxPatternTrades = 50

const maxHeadlineLen = 100

// Service 封装 LLM 富化: 构造提示词, 解析自由文本回复
type Service struct {
	llmSvc llm.Service
}

func NewService(llmSvc llm.Service) *Service {
	return &Service{
		llmSvc: llmSvc,
	}
}

// AnalyzeTrade asks the LLM for an assessment of a single trade. Any
// failure (transport, provider, unparseable reply) degrades to nil.
func (s *Service) AnalyzeTrade(ctx context.Context, trade entity.TradeRecord, extra string) *entity.Analysis {
	contextBlock := ""
	if extra != "" {
		contextBlock = "ADDITIONAL CONTEXT:\n" + extra
	}

	prompt := fmt.Sprintf(tradeAnalysisPrompt,
		orUnknown(trade.InsiderName),
		orUnknown(trade.InsiderTitle),
		orPlaceholder(trade.Ticker),
		orUnknown(trade.TransactionType),
		humanize.Comma(trade.Shares),
		trade.Price.StringFixed(2),
		humanize.Comma(trade.Value.Round(0).IntPart()),
		orUnknown(trade.Date),
		contextBlock,
	)

	answer, err := s.llmSvc.AskOnce(ctx, llm.Question{Content: prompt})
	if err != nil {
		slog.Error("trade analysis call failed", "ticker", trade.Ticker, "error", err)
		return nil
	}

	var analysis entity.Analysis
	if err = extractJSON(answer.Content, &analysis); err != nil {
		slog.Warn("failed to parse analysis response", "ticker", trade.Ticker, "error", err)
		return nil
	}

	if len(analysis.Headline) > maxHeadlineLen {
		analysis.Headline = analysis.Headline[:maxHeadlineLen]
	}

	slog.Info("trade analysis complete",
		"ticker", trade.Ticker,
		"significance", analysis.SignificanceScore,
		"sentiment", analysis.Sentiment)
	return &analysis
}

// reducedTrade bounds the pattern prompt size.
type reducedTrade struct {
	Ticker  string `json:"ticker"`
	Insider string `json:"insider"`
	Title   string `json:"title"`
	Type    string `json:"type"`
	Value   string `json:"value"`
	Date    string `json:"date"`
	Source  string `json:"source"`
}

// DetectPatterns runs the batch analogue over at most the first 50 trades.
// Nil means no result, same degradation policy as AnalyzeTrade.
func (s *Service) DetectPatterns(ctx context.Context, trades []entity.TradeRecord) *entity.PatternReport {
	if len(trades) > maxPatternTrades {
		trades = trades[:maxPatternTrades]
	}

	reduced := lo.Map(trades, func(t entity.TradeRecord, _ int) reducedTrade {
		return reducedTrade{
			Ticker:  t.Ticker,
			Insider: t.InsiderName,
			Title:   t.InsiderTitle,
			Type:    t.TransactionType,
			Value:   t.Value.Round(0).String(),
			Date:    t.Date,
			Source:  t.Source,
		}
	})

	payload, err := json.MarshalIndent(reduced, "", "  ")
	if err != nil {
		slog.Error("failed to marshal trades for pattern prompt", "error", err)
		return nil
	}

	answer, err := s.llmSvc.AskOnce(ctx, llm.Question{
		Content: fmt.Sprintf(patternDetectionPrompt, payload),
	})
	if err != nil {
		slog.Error("pattern detection call failed", "error", err)
		return nil
	}

	var report entity.PatternReport
	if err = extractJSON(answer.Content, &report); err != nil {
		slog.Warn("failed to parse pattern response", "error", err)
		return nil
	}

	slog.Info("pattern detection complete", "patterns_found", report.PatternsFound)
	return &report
}

func orUnknown(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}

func orPlaceholder(s string) string {
	if s == "" {
		return "???"
	}
	return s
}
