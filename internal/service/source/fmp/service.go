package fmp

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/bernhardbrugger/deepstock-bot/internal/entity"
	"github.com/bernhardbrugger/deepstock-bot/internal/service/source"
	"github.com/go-resty/resty/v2"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"golang.org/x/time/rate"
)

const defaultBaseURL = "https://financialmodelingprep.com/api/v4"

// minRequestInterval spaces out calls against the FMP free-tier limit.
const minRequestInterval = 500 * time.Millisecond

type insiderTrade struct {
	Symbol                  string  `json:"symbol"`
	ReportingName           string  `json:"reportingName"`
	TypeOfOwner             string  `json:"typeOfOwner"`
	AcquistionOrDisposition string  `json:"acquistionOrDisposition"` // sic, FMP spells it this way
	SecuritiesTransacted    float64 `json:"securitiesTransacted"`
	Price                   float64 `json:"price"`
	TransactionDate         string  `json:"transactionDate"`
	FilingDate              string  `json:"filingDate"`
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
	return "fmp"
}

func (s *Service) Fetch(ctx context.Context, lookbackDays int) ([]entity.TradeRecord, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	var items []insiderTrade
	resp, err := s.cli.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"apikey":              s.apiKey,
			"page":                "0",
			"transactionDateFrom": now.AddDate(0, 0, -lookbackDays).Format("2006-01-02"),
			"transactionDateTo":   now.Format("2006-01-02"),
		}).
		SetResult(&items).
		Get("/insider-trading")
	if err != nil {
		return nil, fmt.Errorf("fmp insider trades request failed: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("fmp insider trades http %d", resp.StatusCode())
	}

	trades := lo.Map(items, func(item insiderTrade, _ int) entity.TradeRecord {
		price := decimal.NewFromFloat(item.Price)
		shares := decimal.NewFromFloat(item.SecuritiesTransacted)
		return entity.TradeRecord{
			Source:          "fmp",
			Ticker:          item.Symbol,
			InsiderName:     item.ReportingName,
			InsiderTitle:    item.TypeOfOwner,
			TransactionType: item.AcquistionOrDisposition,
			Shares:          shares.IntPart(),
			Price:           price,
			Value:           shares.Mul(price),
			Date:            item.TransactionDate,
			FilingDate:      item.FilingDate,
			Raw:             item,
		}
	})

	slog.Info("fetched insider trades from fmp", "count", len(trades), "days", lookbackDays)
	return trades, nil
}
