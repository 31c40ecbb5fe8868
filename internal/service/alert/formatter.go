package alert

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/bernhardbrugger/deepstock-bot/internal/entity"
	"github.com/bernhardbrugger/deepstock-bot/pkg/textx"
	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// Pure formatters producing channel-agnostic HTML-subset messages.
// Use textx.StripTags for the plain-text variant.

const signature = "— deepstock-bot 🤖"

const digestTopTrades = 10

func actionMarker(trade entity.TradeRecord) string {
	if trade.IsBuy() {
		return "🟢 BUY"
	}
	return "🔴 SELL"
}

func directionEmoji(trade entity.TradeRecord) string {
	if trade.IsBuy() {
		return "🟢"
	}
	return "🔴"
}

// scoreBar renders a fixed-width bar: round(score) filled cells out of 10.
func scoreBar(score float64) string {
	filled := int(math.Round(score))
	if filled < 0 {
		filled = 0
	}
	if filled > 10 {
		filled = 10
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", 10-filled)
}

func money(v decimal.Decimal) string {
	return "$" + humanize.Comma(v.Round(0).IntPart())
}

// FormatBreakingAlert renders a single-trade alert. The analysis section is
// omitted entirely when analysis is nil.
func FormatBreakingAlert(trade entity.TradeRecord, analysis *entity.Analysis) string {
	lines := []string{
		"🚨 <b>DEEPSTOCK ALERT — Insider Trade Detected</b>",
		"",
		"📋 <b>Trade Details</b>",
		fmt.Sprintf("  Insider: <b>%s</b> (%s)", orUnknown(trade.InsiderName), trade.InsiderTitle),
		fmt.Sprintf("  Company: <b>%s</b>", orPlaceholder(trade.Ticker)),
		fmt.Sprintf("  Action:  %s · %s shares @ $%s", actionMarker(trade), humanize.Comma(trade.Shares), trade.Price.StringFixed(2)),
		fmt.Sprintf("  Value:   <b>%s</b>", money(trade.Value)),
		fmt.Sprintf("  Date:    %s", orUnknown(trade.Date)),
		fmt.Sprintf("  Score:   %s %.1f/10", scoreBar(trade.Score), trade.Score),
	}

	if analysis != nil {
		lines = append(lines,
			"",
			"🧠 <b>AI Analysis</b>",
			fmt.Sprintf("  Significance: %.1f/10 — %s", analysis.SignificanceScore, strings.ToUpper(string(analysis.Sentiment))),
			fmt.Sprintf("  💬 %s", analysis.Headline),
			fmt.Sprintf("  %s", analysis.Analysis),
		)
		if analysis.HistoricalNote != "" {
			lines = append(lines, fmt.Sprintf("  📊 %s", analysis.HistoricalNote))
		}
	}

	lines = append(lines, "", signature)
	return strings.Join(lines, "\n")
}

// FormatBreakingAlertText is the plain-text variant of FormatBreakingAlert.
func FormatBreakingAlertText(trade entity.TradeRecord, analysis *entity.Analysis) string {
	return textx.StripTags(FormatBreakingAlert(trade, analysis))
}

// FormatDailyDigest renders a ranked digest of the whole filtered batch,
// with the pattern section and sentiment line when a report is present.
func FormatDailyDigest(trades []entity.TradeRecord, report *entity.PatternReport) string {
	today := time.Now().UTC().Format("2006-01-02")
	lines := []string{
		fmt.Sprintf("📊 <b>DEEPSTOCK DAILY DIGEST — %s</b>", today),
		fmt.Sprintf("Found <b>%d</b> notable insider trades today.", len(trades)),
		"",
	}

	if report != nil && len(report.Patterns) > 0 {
		lines = append(lines, "🔍 <b>Patterns Detected:</b>")
		for _, p := range report.Patterns {
			lines = append(lines, fmt.Sprintf("  • [%s] %s: %s", p.Type, strings.Join(p.Tickers, ", "), p.Description))
		}
		lines = append(lines, "")
	}

	lines = append(lines, "<b>Top Trades:</b>")
	top := trades
	if len(top) > digestTopTrades {
		top = top[:digestTopTrades]
	}
	for i, trade := range top {
		lines = append(lines, fmt.Sprintf("  %d. %s <b>%s</b> — %s — %s — Score: %.1f/10",
			i+1,
			directionEmoji(trade),
			orPlaceholder(trade.Ticker),
			orUnknown(trade.InsiderName),
			money(trade.Value),
			trade.Score,
		))
	}

	if report != nil && report.Summary != "" {
		lines = append(lines, "", fmt.Sprintf("📈 <b>Market Sentiment:</b> %s", report.Summary))
	}

	lines = append(lines, "", signature)
	return strings.Join(lines, "\n")
}

// FormatPatternAlert renders a standalone pattern detection report.
func FormatPatternAlert(report entity.PatternReport) string {
	lines := []string{
		"🔍 <b>DEEPSTOCK — Pattern Detection Alert</b>",
		fmt.Sprintf("Detected <b>%d</b> notable patterns.", report.PatternsFound),
		"",
	}

	for _, p := range report.Patterns {
		bar := strings.Repeat("█", int(p.Confidence*10))
		lines = append(lines,
			fmt.Sprintf("<b>%s</b> — %s", strings.ToUpper(p.Type), strings.Join(p.Tickers, ", ")),
			fmt.Sprintf("  Confidence: %s %.0f%%", bar, p.Confidence*100),
			fmt.Sprintf("  %s", p.Description),
			"",
		)
	}

	if report.Summary != "" {
		lines = append(lines, fmt.Sprintf("📈 %s", report.Summary))
	}

	lines = append(lines, "", signature)
	return strings.Join(lines, "\n")
}

// AlertSubject builds the email subject line for a single-trade alert.
func AlertSubject(trade entity.TradeRecord) string {
	headline := "Notable Activity"
	if trade.Analysis != nil && trade.Analysis.Headline != "" {
		headline = trade.Analysis.Headline
	}
	return fmt.Sprintf("🚨 Insider Trade: %s — %s", orPlaceholder(trade.Ticker), headline)
}

// DigestSubject builds the email subject line for the daily digest.
func DigestSubject(count int) string {
	return fmt.Sprintf("📊 DeepStock Daily Digest — %d Notable Trades", count)
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
