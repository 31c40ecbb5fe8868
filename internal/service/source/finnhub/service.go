package finnhub

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/bernhardbrugger/deepstock-bot/internal/entity"
	"github.com/bernhardbrugger/deepstock-bot/internal/service/source"
	"github.com/bernhardbrugger/deepstock-bot/pkg/decimalx"
	"github.com/go-resty/resty/v2"
	"github.com/samber/lo"
	"golang.org/x/time/rate"
)

const defaultBaseURL = "https://finnhub.io/api/v1"

const minRequestInterval = time.Second

type congressTrade struct {
	Symbol          string `json:"symbol"`
	Name            string `json:"name"`
	Chamber         string `json:"chamber"`
	TransactionType string `json:"transactionType"`
	// Finnhub reports a bracket, not an exact amount; sometimes a number,
	// sometimes a "$1,001 - $15,000" style string.
	AmountFrom      any    `json:"amountFrom"`
	TransactionDate string `json:"transactionDate"`
	FilingDate      string `json:"filingDate"`
}

type congressResponse struct {
	Data []congressTrade `json:"data"`
}

type Service struct {
	apiKey  string
	cli     *resty.Client
	limiter *rate.Limiter
}

type Option func(service *Service)

func WithBaseURL(url string) Option {
	return func(service *Service) {
		service.cli.SetBaseURL(url)
	}
}

func NewService(apiKey string, opts ...Option) source.Service {
	svc := &Service{
		apiKey: apiKey,
		cli: resty.New().
			SetBaseURL(defaultBaseURL).
			SetTimeout(30 * time.Second).
			SetRetryCount(2).
			SetRetryWaitTime(500 * time.Millisecond).
			SetRetryMaxWaitTime(4 * time.Second),
		limiter: rate.NewLimiter(rate.Every(minRequestInterval), 1),
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

func (s *Service) Name() string {
	return "finnhub_congress"
}

func (s *Service) Fetch(ctx context.Context, lookbackDays int) ([]entity.TradeRecord, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	var result congressResponse
	resp, err := s.cli.R().
		SetContext(ctx).
		SetQueryParam("token", s.apiKey).
		SetResult(&result).
		Get("/stock/congressional-trading")
	if err != nil {
		return nil, fmt.Errorf("finnhub congress trades request failed: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("finnhub congress trades http %d", resp.StatusCode())
	}

	trades := lo.Map(result.Data, func(item congressTrade, _ int) entity.TradeRecord {
		return entity.TradeRecord{
			Source:          "finnhub_congress",
			Ticker:          item.Symbol,
			InsiderName:     item.Name,
			InsiderTitle:    "Congress - " + item.Chamber,
			TransactionType: item.TransactionType,
			Value:           decimalx.ParseAmount(fmt.Sprint(item.AmountFrom)),
			Date:            item.TransactionDate,
			FilingDate:      item.FilingDate,
			Raw:             item,
		}
	})

	slog.Info("fetched congress trades from finnhub", "count", len(trades))
	return trades, nil
}
