package edgar

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// FilingDetail is a parsed Form 4 filing page.
type FilingDetail struct {
	URL          string
	InsiderName  string
	Ticker       string
	Transactions []FilingTransaction
}

type FilingTransaction struct {
	Date   string
	Code   string
	Shares int64
	Price  decimal.Decimal
	Value  decimal.Decimal
}

var (
	insiderFieldRe = regexp.MustCompile(`(?s)<span class="FormData">\s*1\.\s*Name.*?</span>.*?<span class="FormData">(.+?)</span>`)
	tickerFieldRe  = regexp.MustCompile(`(?s)<span class="FormData">\s*3\.\s*Ticker.*?</span>.*?<span class="FormData">(.+?)</span>`)
	txRowRe        = regexp.MustCompile(`(?s)<td.*?>\s*(\d{2}/\d{2}/\d{4})\s*</td>.*?<td.*?>\s*([PSMADFGCW])\s*</td>.*?<td.*?>\s*([\d,]+)\s*</td>.*?<td.*?>\s*\$?([\d,.]+)\s*</td>`)
)

// ParseFiling fetches a Form 4 filing page and scrapes out insider name,
// ticker and transaction rows. EDGAR's form pages are stable enough for
// regex extraction; anything that does not match is skipped.
func (s *Service) ParseFiling(ctx context.Context, url string) (FilingDetail, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return FilingDetail{}, err
	}

	resp, err := s.cli.R().
		SetContext(ctx).
		SetHeader("Accept", "text/html").
		Get(url)
	if err != nil {
		return FilingDetail{}, fmt.Errorf("failed to fetch filing %s: %w", url, err)
	}
	if resp.IsError() {
		return FilingDetail{}, fmt.Errorf("filing %s http %d", url, resp.StatusCode())
	}

	detail := parseFilingHTML(string(resp.Body()))
	detail.URL = url
	return detail, nil
}

func parseFilingHTML(html string) FilingDetail {
	var detail FilingDetail

	if m := insiderFieldRe.FindStringSubmatch(html); m != nil {
		detail.InsiderName = strings.TrimSpace(m[1])
	}
	if m := tickerFieldRe.FindStringSubmatch(html); m != nil {
		detail.Ticker = strings.TrimSpace(m[1])
	}

	for _, row := range txRowRe.FindAllStringSubmatch(html, -1) {
		shares, err := strconv.ParseInt(strings.ReplaceAll(row[3], ",", ""), 10, 64)
		if err != nil {
			continue
		}
		price, err := decimal.NewFromString(strings.ReplaceAll(row[4], ",", ""))
		if err != nil {
			continue
		}
		detail.Transactions = append(detail.Transactions, FilingTransaction{
			Date:   row[1],
			Code:   row[2],
			Shares: shares,
			Price:  price,
			Value:  price.Mul(decimal.NewFromInt(shares)),
		})
	}
	return detail
}
