package taxsync

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// RateQuote is what the tax-data source yields per category: a rate, the
// date it became effective, and an attribution string.
type RateQuote struct {
	Category    string
	Name        string
	Description string
	Rate        float64
	Effective   time.Time
	Source      string
}

// Fetcher retrieves the current VAT rates from an external source.
type Fetcher interface {
	FetchRates(ctx context.Context) ([]RateQuote, error)
}

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// PoreznaFetcher fetches the Croatian tax authority page. Rate extraction
// from the page markup is not implemented; after a successful fetch the
// statutory rates are returned as constants. A failed fetch still aborts
// the refresh, so the source being reachable stays a precondition.
type PoreznaFetcher struct {
	URL     string
	Client  *http.Client
	Timeout time.Duration
}

func NewPoreznaFetcher(url string, timeout time.Duration) *PoreznaFetcher {
	return &PoreznaFetcher{
		URL:     url,
		Client:  &http.Client{Timeout: timeout},
		Timeout: timeout,
	}
}

func (f *PoreznaFetcher) FetchRates(ctx context.Context) ([]RateQuote, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("build tax source request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch tax source: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("tax source returned status %d", resp.StatusCode)
	}
	// Drain so the connection can be reused; the body is not parsed yet.
	if _, err := io.Copy(io.Discard, io.LimitReader(resp.Body, 1<<20)); err != nil {
		return nil, fmt.Errorf("read tax source response: %w", err)
	}

	now := time.Now()
	return []RateQuote{
		{Category: "standard", Name: "Standard VAT Rate", Description: "Standard VAT rate for Croatia", Rate: 25.0, Effective: now, Source: "Porezna uprava"},
		{Category: "reduced", Name: "Reduced VAT Rate", Description: "Reduced VAT rate for Croatia", Rate: 13.0, Effective: now, Source: "Porezna uprava"},
		{Category: "super-reduced", Name: "Super Reduced VAT Rate", Description: "Super reduced VAT rate for Croatia", Rate: 5.0, Effective: now, Source: "Porezna uprava"},
	}, nil
}
