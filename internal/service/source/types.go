package source

import (
	"context"

	"github.com/bernhardbrugger/deepstock-bot/internal/entity"
)

// Service is one data provider. Fetch returns normalized trade records;
// the caller treats any error as an empty result, so a failing provider
// degrades the scan instead of aborting it. Implementations hold their
// own rate limiter: two adapters must never block each other.
type Service interface {
	Name() string
	Fetch(ctx context.Context, lookbackDays int) ([]entity.TradeRecord, error)
}
