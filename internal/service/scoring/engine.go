package scoring

import (
	"log/slog"
	"sort"
	"strings"

	"github.com/bernhardbrugger/deepstock-bot/internal/entity"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// Value ladder, highest tier first.
var valueTiers = []struct {
	min    decimal.Decimal
	points float64
}{
	{decimal.NewFromInt(10_000_000), 4.0},
	{decimal.NewFromInt(1_000_000), 3.0},
	{decimal.NewFromInt(500_000), 2.0},
	{decimal.NewFromInt(100_000), 1.0},
	{decimal.NewFromInt(50_000), 0.5},
}

const maxScore = 10.0

type Thresholds struct {
	MinValue  decimal.Decimal
	MinScore  float64
	Watchlist []string
}

// Engine 交易打分与过滤引擎
type Engine struct {
	notableInsiders  []string
	highSignalTitles []string
}

type Option func(e *Engine)

func WithNotableInsiders(names []string) Option {
	return func(e *Engine) {
		e.notableInsiders = names
	}
}

func WithHighSignalTitles(titles []string) Option {
	return func(e *Engine) {
		e.highSignalTitles = titles
	}
}

func NewEngine(opts ...Option) *Engine {
	engine := &Engine{
		notableInsiders:  defaultNotableInsiders,
		highSignalTitles: defaultHighSignalTitles,
	}
	for _, opt := range opts {
		opt(engine)
	}
	return engine
}

// Score rates a trade by interestingness on a 0-10 scale. Pure and total:
// empty or zero fields simply contribute no points.
func (e *Engine) Score(trade entity.TradeRecord) float64 {
	score := 0.0

	for _, tier := range valueTiers {
		if trade.Value.GreaterThanOrEqual(tier.min) {
			score += tier.points
			break
		}
	}

	if e.isNotableInsider(trade.InsiderName) {
		score += 2.0
	}
	if e.isHighSignalTitle(trade.InsiderTitle) {
		score += 1.5
	}

	if trade.IsBuy() {
		score += 1.5
	} else if trade.IsSell() {
		score += 0.5
	}

	if strings.Contains(strings.ToLower(trade.Source), "congress") {
		score += 1.0
	}

	if score > maxScore {
		score = maxScore
	}
	return score
}

// Filter scores every record (the score is written back onto the input
// slice, including records that end up excluded), retains records clearing
// both thresholds or matching the watchlist, and returns them sorted by
// score descending. The sort is stable: equal scores keep fetch order.
func (e *Engine) Filter(trades []entity.TradeRecord, th Thresholds) []entity.TradeRecord {
	watch := make(map[string]struct{}, len(th.Watchlist))
	for _, t := range th.Watchlist {
		watch[strings.ToUpper(t)] = struct{}{}
	}

	for i := range trades {
		trades[i].Score = e.Score(trades[i])
	}

	retained := lo.Filter(trades, func(trade entity.TradeRecord, _ int) bool {
		if _, ok := watch[strings.ToUpper(trade.Ticker)]; ok {
			return true
		}
		return trade.Value.GreaterThanOrEqual(th.MinValue) && trade.Score >= th.MinScore
	})

	sort.SliceStable(retained, func(i, j int) bool {
		return retained[i].Score > retained[j].Score
	})

	slog.Info("filtered trades",
		"in", len(trades), "out", len(retained),
		"min_value", th.MinValue, "min_score", th.MinScore)
	return retained
}

func (e *Engine) isNotableInsider(name string) bool {
	nameLower := strings.ToLower(strings.TrimSpace(name))
	if nameLower == "" {
		return false
	}
	return lo.SomeBy(e.notableInsiders, func(notable string) bool {
		notableLower := strings.ToLower(notable)
		return strings.Contains(nameLower, notableLower) || strings.Contains(notableLower, nameLower)
	})
}

func (e *Engine) isHighSignalTitle(title string) bool {
	titleLower := strings.ToLower(title)
	if titleLower == "" {
		return false
	}
	return lo.SomeBy(e.highSignalTitles, func(t string) bool {
		return strings.Contains(titleLower, t)
	})
}
