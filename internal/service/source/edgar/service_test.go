package edgar

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleFeed = `<?xml version="1.0" encoding="ISO-8859-1" ?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <title>Latest Filings</title>
  <entry>
    <title>4 - COOK TIMOTHY D (AAPL) (Reporting)</title>
    <link rel="alternate" type="text/html" href="https://www.sec.gov/Archives/edgar/data/1/filing-index.htm"/>
    <updated>2026-08-27T16:05:31-04:00</updated>
    <summary> Filed: 2026-08-27 AccNo: 0001-26-000001 </summary>
  </entry>
  <entry>
    <title>4 - Some Private Person (Reporting)</title>
    <link rel="alternate" type="text/html" href="https://www.sec.gov/Archives/edgar/data/2/filing-index.htm"/>
    <updated>2026-08-27T16:04:00-04:00</updated>
    <summary> Filed: 2026-08-27 </summary>
  </entry>
</feed>`

func TestParseFeed(t *testing.T) {
	filings, err := parseFeed([]byte(sampleFeed))
	require.NoError(t, err)
	require.Len(t, filings, 2)

	assert.Equal(t, "4 - COOK TIMOTHY D (AAPL) (Reporting)", filings[0].Title)
	assert.Equal(t, "AAPL", filings[0].Ticker)
	assert.Equal(t, "COOK TIMOTHY D", filings[0].Company)
	assert.Equal(t, "https://www.sec.gov/Archives/edgar/data/1/filing-index.htm", filings[0].Link)

	// No all-caps parenthesized ticker present.
	assert.Empty(t, filings[1].Ticker)
}

func TestParseFeed_Malformed(t *testing.T) {
	_, err := parseFeed([]byte("this is not xml <"))
	assert.Error(t, err)
}

func TestFetch_NormalizesFilings(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.Header.Get("User-Agent"), "deepstock-bot")
		assert.Equal(t, "4", r.URL.Query().Get("type"))
		w.Header().Set("Content-Type", "application/atom+xml")
		_, _ = w.Write([]byte(sampleFeed))
	}))
	defer srv.Close()

	svc := NewService(WithBaseURL(srv.URL))
	trades, err := svc.Fetch(context.Background(), 7)

	require.NoError(t, err)
	require.Len(t, trades, 2)
	assert.Equal(t, "edgar", trades[0].Source)
	assert.Equal(t, "AAPL", trades[0].Ticker)
	// Feed entries carry no transaction economics.
	assert.True(t, trades[0].Value.IsZero())
	assert.Zero(t, trades[0].Shares)
}

func TestParseFilingHTML(t *testing.T) {
	html := `
<span class="FormData"> 1. Name and Address of Reporting Person </span>
<span class="FormData">MUSK ELON</span>
<span class="FormData"> 3. Ticker or Trading Symbol </span>
<span class="FormData">TSLA</span>
<table>
<tr>
  <td>08/20/2026</td>
  <td>P</td>
  <td>10,000</td>
  <td>$250.50</td>
</tr>
</table>`

	detail := parseFilingHTML(html)
	assert.Equal(t, "MUSK ELON", detail.InsiderName)
	assert.Equal(t, "TSLA", detail.Ticker)
	require.Len(t, detail.Transactions, 1)
	tx := detail.Transactions[0]
	assert.Equal(t, "08/20/2026", tx.Date)
	assert.Equal(t, "P", tx.Code)
	assert.Equal(t, int64(10000), tx.Shares)
	assert.Equal(t, "2505000", tx.Value.String())
}
