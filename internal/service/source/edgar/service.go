package edgar

import (
	"context"
	"encoding/xml"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/bernhardbrugger/deepstock-bot/internal/entity"
	"github.com/bernhardbrugger/deepstock-bot/internal/service/source"
	"github.com/go-resty/resty/v2"
	"github.com/samber/lo"
	"golang.org/x/time/rate"
)

const defaultBaseURL = "https://www.sec.gov"

// SEC EDGAR needs a descriptive User-Agent; no API key.
const userAgent = "deepstock-bot/0.1.0 (https://github.com/bernhardbrugger/deepstock-bot)"

const minRequestInterval = time.Second

// feedCount is capped at 40 by EDGAR per request.
const feedCount = 40

type atomFeed struct {
	Entries []atomEntry `xml:"entry"`
}

type atomEntry struct {
	Title   string   `xml:"title"`
	Link    atomLink `xml:"link"`
	Updated string   `xml:"updated"`
	Summary string   `xml:"summary"`
}

type atomLink struct {
	Href string `xml:"href,attr"`
}

// Filing is a Form 4 feed entry before trade normalization.
type Filing struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Updated string `json:"updated"`
	Summary string `json:"summary"`
	Ticker  string `json:"ticker"`
	Company string `json:"company"`
}

var (
	tickerRe  = regexp.MustCompile(`\(([A-Z]{1,5})\)`)
	companyRe = regexp.MustCompile(`4\s*-\s*(.+?)\s*\(`)
)

type Service struct {
	cli     *resty.Client
	limiter *rate.Limiter
}

type Option func(service *Service)

func WithBaseURL(url string) Option {
	return func(service *Service) {
		service.cli.SetBaseURL(url)
	}
}

func NewService(opts ...Option) *Service {
	svc := &Service{
		cli: resty.New().
			SetBaseURL(defaultBaseURL).
			SetTimeout(30 * time.Second).
			SetRetryCount(2).
			SetRetryWaitTime(500 * time.Millisecond).
			SetRetryMaxWaitTime(4 * time.Second).
			SetHeader("User-Agent", userAgent),
		limiter: rate.NewLimiter(rate.Every(minRequestInterval), 1),
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

var _ source.Service = (*Service)(nil)

func (s *Service) Name() string {
	return "edgar"
}

// Fetch pulls the latest Form 4 filings from the EDGAR atom feed. Feed
// entries carry no structured transaction data, so shares/price/value stay
// zero; the record is still valid for scoring and the digest.
func (s *Service) Fetch(ctx context.Context, lookbackDays int) ([]entity.TradeRecord, error) {
	filings, err := s.FetchLatestForm4(ctx)
	if err != nil {
		return nil, err
	}

	trades := lo.Map(filings, func(f Filing, _ int) entity.TradeRecord {
		return entity.TradeRecord{
			Source:      "edgar",
			Ticker:      f.Ticker,
			InsiderName: f.Title,
			Date:        f.Updated,
			FilingDate:  f.Updated,
			Raw:         f,
		}
	})
	return trades, nil
}

// FetchLatestForm4 returns the raw feed entries.
func (s *Service) FetchLatestForm4(ctx context.Context) ([]Filing, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	resp, err := s.cli.R().
		SetContext(ctx).
		SetHeader("Accept", "application/atom+xml").
		SetQueryParams(map[string]string{
			"action": "getcurrent",
			"type":   "4",
			"owner":  "include",
			"count":  fmt.Sprint(feedCount),
			"output": "atom",
		}).
		Get("/cgi-bin/browse-edgar")
	if err != nil {
		return nil, fmt.Errorf("edgar feed request failed: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("edgar feed http %d", resp.StatusCode())
	}

	filings, err := parseFeed(resp.Body())
	if err != nil {
		return nil, err
	}

	slog.Info("fetched form 4 filings from edgar", "count", len(filings))
	return filings, nil
}

func parseFeed(data []byte) ([]Filing, error) {
	var feed atomFeed
	if err := xml.Unmarshal(data, &feed); err != nil {
		return nil, fmt.Errorf("failed to parse edgar feed: %w", err)
	}

	filings := lo.Map(feed.Entries, func(e atomEntry, _ int) Filing {
		f := Filing{
			Title:   strings.TrimSpace(e.Title),
			Link:    e.Link.Href,
			Updated: e.Updated,
			Summary: strings.TrimSpace(e.Summary),
		}
		if m := tickerRe.FindStringSubmatch(e.Title); m != nil {
			f.Ticker = m[1]
		}
		if m := companyRe.FindStringSubmatch(e.Title); m != nil {
			f.Company = strings.TrimSpace(m[1])
		}
		return f
	})
	return filings, nil
}
