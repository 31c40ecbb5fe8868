package scanner

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/bernhardbrugger/deepstock-bot/internal/entity"
	"github.com/bernhardbrugger/deepstock-bot/internal/repo"
	"github.com/bernhardbrugger/deepstock-bot/internal/schedule"
	"github.com/bernhardbrugger/deepstock-bot/internal/service/alert"
	"github.com/bernhardbrugger/deepstock-bot/internal/service/analyst"
	"github.com/bernhardbrugger/deepstock-bot/internal/service/notification"
	"github.com/bernhardbrugger/deepstock-bot/internal/service/scoring"
	"github.com/bernhardbrugger/deepstock-bot/internal/service/source"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// topN is how many trades get individual alerts (and enrichment).
const topN = 5

// patternMinBatch gates batch pattern detection.
const patternMinBatch = 3

// digestMinBatch gates the digest message.
const digestMinBatch = 2

type Config struct {
	MinTradeValue decimal.Decimal
	MinScore      float64
	Watchlist     []string
	LookbackDays  int
	SeenRetention time.Duration
}

// Result is the scan cycle summary.
type Result struct {
	TradesFetched  int `json:"trades_fetched"`
	TradesFiltered int `json:"trades_filtered"`
	TradesAnalyzed int `json:"trades_analyzed"`
	PatternsFound  int `json:"patterns_found"`
	AlertsSent     int `json:"alerts_sent"`
}

// Scanner 扫描管线: fetch → filter → analyze → alert
type Scanner struct {
	sources  []source.Service
	engine   *scoring.Engine
	channels []notification.Channel
	cfg      Config

	// analystSvc is nil when no LLM provider is configured; enrichment
	// and pattern detection are skipped in that case.
	analystSvc *analyst.Service
	// seenRepo is nil unless dedup is enabled.
	seenRepo repo.SeenRepo
}

type Option func(s *Scanner)

func WithAnalyst(svc *analyst.Service) Option {
	return func(s *Scanner) {
		s.analystSvc = svc
	}
}

func WithSeenRepo(r repo.SeenRepo) Option {
	return func(s *Scanner) {
		s.seenRepo = r
	}
}

func NewScanner(sources []source.Service, engine *scoring.Engine, channels []notification.Channel, cfg Config, opts ...Option) *Scanner {
	scanner := &Scanner{
		sources:  sources,
		engine:   engine,
		channels: channels,
		cfg:      cfg,
	}
	for _, opt := range opts {
		opt(scanner)
	}
	return scanner
}

// Scan runs one complete cycle. It has no failure mode of its own: every
// collaborator failure degrades to an empty result or a skipped send.
func (s *Scanner) Scan(ctx context.Context) Result {
	slog.Info("starting deepstock scan", "sources", len(s.sources), "channels", len(s.channels))

	s.pruneSeen(ctx)

	all := s.fetchAll(ctx)

	filtered := s.engine.Filter(all, scoring.Thresholds{
		MinValue:  s.cfg.MinTradeValue,
		MinScore:  s.cfg.MinScore,
		Watchlist: s.cfg.Watchlist,
	})

	if len(filtered) == 0 {
		slog.Info("no notable trades found this scan")
		return Result{TradesFetched: len(all)}
	}
	slog.Info("found notable trades", "count", len(filtered))

	top := filtered
	if len(top) > topN {
		top = top[:topN]
	}

	var report *entity.PatternReport
	if s.analystSvc != nil {
		for i := range top {
			top[i].Analysis = s.analystSvc.AnalyzeTrade(ctx, top[i], "")
		}
		if len(filtered) >= patternMinBatch {
			report = s.analystSvc.DetectPatterns(ctx, filtered)
		}
	} else {
		slog.Warn("no LLM provider configured, skipping analysis")
	}

	alertsSent := s.dispatchAlerts(ctx, top)
	if len(filtered) >= digestMinBatch {
		s.dispatchDigest(ctx, filtered, report)
	}

	result := Result{
		TradesFetched:  len(all),
		TradesFiltered: len(filtered),
		TradesAnalyzed: len(top),
		AlertsSent:     alertsSent,
	}
	if report != nil {
		result.PatternsFound = report.PatternsFound
	}

	slog.Info("scan complete",
		"trades_fetched", result.TradesFetched,
		"trades_filtered", result.TradesFiltered,
		"trades_analyzed", result.TradesAnalyzed,
		"patterns_found", result.PatternsFound,
		"alerts_sent", result.AlertsSent)
	return result
}

// fetchAll queries every source concurrently and merges the results in
// configured source order, so the downstream tie-break order is stable
// regardless of which fetch finishes first.
func (s *Scanner) fetchAll(ctx context.Context) []entity.TradeRecord {
	results := make([][]entity.TradeRecord, len(s.sources))

	var wg sync.WaitGroup
	for i, src := range s.sources {
		wg.Add(1)
		go func(i int, src source.Service) {
			defer wg.Done()
			trades, err := src.Fetch(ctx, s.cfg.LookbackDays)
			if err != nil {
				slog.Error("source fetch failed", "source", src.Name(), "error", err)
				return
			}
			results[i] = trades
		}(i, src)
	}
	wg.Wait()

	all := lo.Flatten(results)
	slog.Info("total trades fetched", "count", len(all))
	return all
}

// dispatchAlerts sends one individual alert per top trade over every
// channel. Channel failures are isolated; the return value counts
// successful sends across trades and channels.
func (s *Scanner) dispatchAlerts(ctx context.Context, trades []entity.TradeRecord) int {
	sent := 0
	for _, trade := range trades {
		fp := fingerprint(trade)
		if s.alreadySeen(ctx, fp) {
			slog.Info("skipping already-alerted trade", "ticker", trade.Ticker, "insider", trade.InsiderName)
			continue
		}

		msg := notification.Message{
			Subject: alert.AlertSubject(trade),
			HTML:    alert.FormatBreakingAlert(trade, trade.Analysis),
			Text:    alert.FormatBreakingAlertText(trade, trade.Analysis),
		}

		delivered := 0
		for _, ch := range s.channels {
			if err := ch.Send(ctx, msg); err != nil {
				slog.Error("alert send failed", "channel", ch.Name(), "ticker", trade.Ticker, "error", err)
				continue
			}
			delivered++
		}
		sent += delivered

		if delivered > 0 {
			s.markSeen(ctx, fp, trade)
		}
	}
	return sent
}

func (s *Scanner) dispatchDigest(ctx context.Context, filtered []entity.TradeRecord, report *entity.PatternReport) {
	msg := notification.Message{
		Subject: alert.DigestSubject(len(filtered)),
		HTML:    alert.FormatDailyDigest(filtered, report),
	}
	for _, ch := range s.channels {
		if err := ch.Send(ctx, msg); err != nil {
			slog.Error("digest send failed", "channel", ch.Name(), "error", err)
		}
	}
}

// Watch runs Scan on a fixed interval until ctx is cancelled. A cycle is
// never aborted mid-flight; cancellation takes effect between cycles.
func (s *Scanner) Watch(ctx context.Context, interval time.Duration) error {
	slog.Info("starting continuous monitoring", "interval", interval)
	return schedule.RunEvery(ctx, s, interval)
}

// Run makes Scanner a schedule.Task.
func (s *Scanner) Run(ctx context.Context) error {
	s.Scan(ctx)
	return nil
}

func (s *Scanner) Name() string {
	return "deepstock scan task"
}

// fingerprint identifies a disclosure across cycles.
func fingerprint(trade entity.TradeRecord) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s|%s|%s|%s|%s",
		trade.Source, trade.Ticker, trade.InsiderName, trade.Date, trade.Value.String())))
	return hex.EncodeToString(sum[:])
}

func (s *Scanner) alreadySeen(ctx context.Context, fp string) bool {
	if s.seenRepo == nil {
		return false
	}
	seen, err := s.seenRepo.Exists(ctx, fp)
	if err != nil {
		slog.Error("seen lookup failed", "error", err)
		return false
	}
	return seen
}

func (s *Scanner) markSeen(ctx context.Context, fp string, trade entity.TradeRecord) {
	if s.seenRepo == nil {
		return
	}
	_, err := s.seenRepo.Create(ctx, entity.SeenTrade{
		Fingerprint: fp,
		Source:      trade.Source,
		Ticker:      trade.Ticker,
		CreatedAt:   time.Now(),
	})
	if err != nil {
		slog.Error("failed to record seen trade", "error", err)
	}
}

func (s *Scanner) pruneSeen(ctx context.Context) {
	if s.seenRepo == nil || s.cfg.SeenRetention <= 0 {
		return
	}
	n, err := s.seenRepo.DeleteOlderThan(ctx, time.Now().Add(-s.cfg.SeenRetention))
	if err != nil {
		slog.Error("failed to prune seen trades", "error", err)
		return
	}
	if n > 0 {
		slog.Info("pruned seen trades", "count", n)
	}
}
