package yahoo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/sandeepanandm7-code/invest-ai/internal/quote"
)

// DefaultEndpoint is the Yahoo Finance v7 quote endpoint, the most reliable
// of the public quote APIs.
const DefaultEndpoint = "https://query2.finance.yahoo.com/v7/finance/quote"

// DefaultFields is the field list requested for every symbol.
var DefaultFields = []string{
	"symbol", "longName", "shortName",
	"regularMarketPrice", "regularMarketChange", "regularMarketChangePercent",
	"regularMarketDayHigh", "regularMarketDayLow", "regularMarketVolume",
	"regularMarketPreviousClose", "currency", "fullExchangeName",
	"marketCap", "trailingPE", "forwardPE", "priceToBook", "dividendYield",
	"trailingEps", "bookValue", "fiftyTwoWeekHigh", "fiftyTwoWeekLow",
	"averageAnalystRating", "totalCash", "totalDebt",
	"revenueQuarterlyGrowth", "earningsQuarterlyGrowth",
	"profitMargins", "operatingMargins", "grossMargins",
	"returnOnAssets", "returnOnEquity",
	"freeCashflow", "operatingCashflow", "ebitda", "revenue", "totalRevenue",
	"sharesOutstanding", "beta", "currentPrice", "targetMeanPrice",
}

// HTTPClient describes an HTTP client.
//
//go:generate mockgen -package=yahoo_test -destination=mock_http_client_test.go -source=yahoo.go HTTPClient
type HTTPClient interface {
	Do(ctx context.Context, req *http.Request) (*http.Response, error)
}

type Config struct {
	Name     string
	Endpoint string
	Fields   []string
	// MaxAttempts is the total request budget per symbol, not the retry count.
	MaxAttempts int
	// RetryDelay is the constant pause between attempts.
	RetryDelay time.Duration
	// Timeout bounds each individual attempt.
	Timeout time.Duration
	Logger  zerolog.Logger
}

// Client fetches one symbol's quote from Yahoo Finance.
type Client struct {
	cfg  Config
	http HTTPClient
}

func New(cfg Config, hc HTTPClient) *Client {
	if cfg.Name == "" {
		cfg.Name = "Yahoo Finance v7 API"
	}
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint
	}
	if len(cfg.Fields) == 0 {
		cfg.Fields = DefaultFields
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 3
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = 2 * time.Second
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 20 * time.Second
	}
	return &Client{cfg: cfg, http: hc}
}

func (c *Client) Name() string { return c.cfg.Name }

// errNoEntry means the response parsed fine but carried no quote for the
// symbol. Retrying would fetch the same answer, so it ends the loop early.
var errNoEntry = errors.New("no quote entry in response")

// Fetch returns the raw quote payload for symbol. Every failure path, from
// transport errors through missing entries, collapses into quote.ErrNoData;
// callers never see the underlying cause.
func (c *Client) Fetch(ctx context.Context, symbol string) (quote.Raw, error) {
	if strings.TrimSpace(symbol) == "" {
		return nil, quote.ErrNoData
	}

	log := c.cfg.Logger.With().Str("symbol", symbol).Logger()
	for attempt := 1; attempt <= c.cfg.MaxAttempts; attempt++ {
		raw, err := c.attempt(ctx, symbol)
		if err == nil {
			return raw, nil
		}
		log.Warn().Int("attempt", attempt).Err(err).Msg("quote fetch failed")
		if errors.Is(err, errNoEntry) {
			return nil, quote.ErrNoData
		}
		if attempt == c.cfg.MaxAttempts {
			break
		}
		t := time.NewTimer(c.cfg.RetryDelay)
		select {
		case <-ctx.Done():
			t.Stop()
			return nil, quote.ErrNoData
		case <-t.C:
		}
	}
	return nil, quote.ErrNoData
}

func (c *Client) attempt(ctx context.Context, symbol string) (quote.Raw, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	q := url.Values{}
	q.Set("symbols", symbol)
	q.Set("fields", strings.Join(c.cfg.Fields, ","))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.Endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(ctx, req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<10))
		return nil, fmt.Errorf("GET %s -> %d: %s", c.cfg.Endpoint, resp.StatusCode, string(b))
	}

	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	var api apiResponse
	if err := dec.Decode(&api); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if len(api.QuoteResponse.Result) == 0 || api.QuoteResponse.Result[0] == nil {
		return nil, errNoEntry
	}
	return api.QuoteResponse.Result[0], nil
}

type apiResponse struct {
	QuoteResponse struct {
		Result []quote.Raw `json:"result"`
		Error  any         `json:"error"`
	} `json:"quoteResponse"`
}
