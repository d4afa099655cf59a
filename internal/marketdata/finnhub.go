// Package marketdata is a stateless client for the Finnhub market-data API.
// Responses are reshaped into the field names the stock trading API serves.
package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	apperrors "stocktrader/internal/errors"
	"stocktrader/internal/logger"
	"stocktrader/internal/validator"
)

const (
	// DefaultBaseURL is the public Finnhub REST endpoint.
	DefaultBaseURL = "https://finnhub.io/api/v1"

	// MaxBatchSymbols bounds a GetQuotes call.
	MaxBatchSymbols = 100
	// MaxNewsArticles bounds a GetCompanyNews response.
	MaxNewsArticles = 20

	defaultTimeout       = 5 * time.Second
	defaultCandleTimeout = 30 * time.Second
)

// Config configures a Client.
type Config struct {
	BaseURL       string
	APIKey        string
	Timeout       time.Duration // quote, profile, news and stats
	CandleTimeout time.Duration
	HTTPClient    *http.Client
}

// Client calls Finnhub. It keeps no state between calls.
type Client struct {
	httpClient    *http.Client
	baseURL       string // overridable for tests
	apiKey        string
	timeout       time.Duration
	candleTimeout time.Duration
}

// NewClient creates a Finnhub client. Zero-valued fields fall back to defaults.
func NewClient(cfg Config) *Client {
	c := &Client{
		httpClient:    cfg.HTTPClient,
		baseURL:       strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:        cfg.APIKey,
		timeout:       cfg.Timeout,
		candleTimeout: cfg.CandleTimeout,
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{}
	}
	if c.baseURL == "" {
		c.baseURL = DefaultBaseURL
	}
	if c.timeout <= 0 {
		c.timeout = defaultTimeout
	}
	if c.candleTimeout <= 0 {
		c.candleTimeout = defaultCandleTimeout
	}
	return c
}

// finnhubQuote is the /quote payload.
type finnhubQuote struct {
	C  *float64 `json:"c"`
	D  *float64 `json:"d"`
	DP *float64 `json:"dp"`
	H  *float64 `json:"h"`
	L  *float64 `json:"l"`
	O  *float64 `json:"o"`
	PC *float64 `json:"pc"`
	T  *int64   `json:"t"`
}

// finnhubProfile is the /stock/profile2 payload.
type finnhubProfile struct {
	Name             *string  `json:"name"`
	Country          *string  `json:"country"`
	Currency         *string  `json:"currency"`
	Exchange         *string  `json:"exchange"`
	Industry         *string  `json:"finnhubIndustry"`
	Logo             *string  `json:"logo"`
	MarketCap        *float64 `json:"marketCapitalization"`
	Phone            *string  `json:"phone"`
	ShareOutstanding *float64 `json:"shareOutstanding"`
	Ticker           *string  `json:"ticker"`
	WebURL           *string  `json:"weburl"`
}

// finnhubCandles is the /stock/candle payload.
type finnhubCandles struct {
	S string    `json:"s"`
	T []int64   `json:"t"`
	O []float64 `json:"o"`
	H []float64 `json:"h"`
	L []float64 `json:"l"`
	C []float64 `json:"c"`
	V []float64 `json:"v"`
}

// finnhubMetrics is the /stock/metric payload, limited to the fields served.
type finnhubMetrics struct {
	Metric struct {
		WeekHigh52     *float64 `json:"52WeekHigh"`
		WeekLow52      *float64 `json:"52WeekLow"`
		AvgVolume10Day *float64 `json:"10DayAverageTradingVolume"`
	} `json:"metric"`
}

// FetchQuote returns the quote as reported, without checking that it carries a price.
func (c *Client) FetchQuote(ctx context.Context, symbol string) (*Quote, error) {
	symbol = normalizeSymbol(symbol)

	var q finnhubQuote
	if err := c.get(ctx, c.timeout, "/quote", url.Values{"symbol": {symbol}}, &q); err != nil {
		return nil, apperrors.WithDetails(apperrors.ErrUpstreamUnavailable, "Quote service unavailable", err)
	}

	return &Quote{
		Symbol:        symbol,
		CurrentPrice:  q.C,
		Change:        q.D,
		ChangePercent: q.DP,
		High:          q.H,
		Low:           q.L,
		Open:          q.O,
		PreviousClose: q.PC,
		Timestamp:     q.T,
	}, nil
}

// GetQuote returns the live quote for symbol. A quote without a current
// price (absent or zero) means the provider has no data for the symbol.
func (c *Client) GetQuote(ctx context.Context, symbol string) (*Quote, error) {
	q, err := c.FetchQuote(ctx, symbol)
	if err != nil {
		return nil, err
	}
	if !hasPrice(q) {
		return nil, apperrors.WithMessage(apperrors.ErrQuoteNotFound,
			fmt.Sprintf("No valid data for symbol '%s'", q.Symbol))
	}
	return q, nil
}

// GetQuotes fetches quotes one symbol at a time. Malformed symbols, symbols
// without data and symbols whose request fails are left out of the result.
func (c *Client) GetQuotes(ctx context.Context, symbols []string) (map[string]QuoteSnapshot, error) {
	if len(symbols) == 0 || len(symbols) > MaxBatchSymbols {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Provide 1-100 symbols")
	}

	quotes := make(map[string]QuoteSnapshot, len(symbols))
	for _, symbol := range symbols {
		if !validator.IsTicker(strings.TrimSpace(symbol)) {
			logger.Get().Debugw("Skipping malformed symbol in batch quote", "symbol", symbol)
			continue
		}
		q, err := c.FetchQuote(ctx, symbol)
		if err != nil {
			logger.Get().Debugw("Skipping symbol in batch quote", "symbol", symbol, "error", err)
			continue
		}
		if !hasPrice(q) {
			continue
		}
		quotes[q.Symbol] = q.Snapshot()
	}
	return quotes, nil
}

// GetCompanyProfile returns the company profile for symbol. The provider
// answers an unknown symbol with an empty object.
func (c *Client) GetCompanyProfile(ctx context.Context, symbol string) (*CompanyProfile, error) {
	symbol = normalizeSymbol(symbol)

	var raw json.RawMessage
	if err := c.get(ctx, c.timeout, "/stock/profile2", url.Values{"symbol": {symbol}}, &raw); err != nil {
		return nil, apperrors.WithDetails(apperrors.ErrUpstreamUnavailable, "Company data service unavailable", err)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil || len(fields) == 0 {
		return nil, apperrors.ErrCompanyNotFound
	}

	var p finnhubProfile
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, apperrors.WithDetails(apperrors.ErrUpstreamUnavailable, "Company data service unavailable",
			fmt.Errorf("decoding response: %w", err))
	}

	return &CompanyProfile{
		Symbol:           symbol,
		Name:             p.Name,
		Country:          p.Country,
		Currency:         p.Currency,
		Exchange:         p.Exchange,
		Industry:         p.Industry,
		Logo:             p.Logo,
		MarketCap:        p.MarketCap,
		Phone:            p.Phone,
		ShareOutstanding: p.ShareOutstanding,
		Ticker:           p.Ticker,
		Website:          p.WebURL,
	}, nil
}

// GetCandles returns the OHLCV series for symbol. The provider flags an
// empty range with a status other than "ok".
func (c *Client) GetCandles(ctx context.Context, symbol string, query CandleQuery) (*Candles, error) {
	symbol = normalizeSymbol(symbol)
	if query.Resolution == "" {
		query.Resolution = "D"
	}

	params := url.Values{
		"symbol":     {symbol},
		"resolution": {query.Resolution},
		"from":       {strconv.FormatInt(query.From, 10)},
		"to":         {strconv.FormatInt(query.To, 10)},
	}

	var data finnhubCandles
	if err := c.get(ctx, c.candleTimeout, "/stock/candle", params, &data); err != nil {
		return nil, apperrors.WithDetails(apperrors.ErrUpstreamUnavailable, "Candle data service unavailable", err)
	}
	if data.S != "ok" {
		return nil, apperrors.ErrCandlesNotFound
	}

	return &Candles{
		Symbol:     symbol,
		Resolution: query.Resolution,
		Timestamps: data.T,
		Open:       data.O,
		High:       data.H,
		Low:        data.L,
		Close:      data.C,
		Volume:     data.V,
	}, nil
}

// GetCompanyNews returns at most MaxNewsArticles articles for symbol.
// from and to are passed to the provider as given.
func (c *Client) GetCompanyNews(ctx context.Context, symbol, from, to string) (*CompanyNews, error) {
	symbol = normalizeSymbol(symbol)

	var articles []NewsArticle
	params := url.Values{"symbol": {symbol}, "from": {from}, "to": {to}}
	if err := c.get(ctx, c.timeout, "/company-news", params, &articles); err != nil {
		return nil, apperrors.WithDetails(apperrors.ErrUpstreamUnavailable, "News service unavailable", err)
	}

	if len(articles) > MaxNewsArticles {
		articles = articles[:MaxNewsArticles]
	}
	if articles == nil {
		articles = []NewsArticle{}
	}
	return &CompanyNews{Symbol: symbol, News: articles}, nil
}

// GetStats returns the 52-week range and 10-day average volume for symbol.
func (c *Client) GetStats(ctx context.Context, symbol string) (*Stats, error) {
	symbol = normalizeSymbol(symbol)

	var m finnhubMetrics
	params := url.Values{"symbol": {symbol}, "metric": {"all"}}
	if err := c.get(ctx, c.timeout, "/stock/metric", params, &m); err != nil {
		return nil, apperrors.WithDetails(apperrors.ErrUpstreamUnavailable, "Stats service unavailable", err)
	}

	return &Stats{
		Symbol:         symbol,
		WeekHigh52:     m.Metric.WeekHigh52,
		WeekLow52:      m.Metric.WeekLow52,
		AvgVolume10Day: m.Metric.AvgVolume10Day,
	}, nil
}

// get issues a GET to path with params plus the API token and decodes the
// JSON body into out. Any non-2xx status is an error.
func (c *Client) get(ctx context.Context, timeout time.Duration, path string, params url.Values, out any) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	params.Set("token", c.apiKey)
	endpoint := c.baseURL + path + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		// The error text embeds the URL, which carries the token.
		return fmt.Errorf("http request: %s", redact(err.Error(), c.apiKey))
	}
	defer func() { _ = resp.Body.Close() }()

	logger.Get().Debugw("Finnhub request",
		"path", path,
		"symbol", params.Get("symbol"),
		"status", resp.StatusCode,
		"duration", time.Since(start),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

func normalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

func hasPrice(q *Quote) bool {
	return q.CurrentPrice != nil && *q.CurrentPrice != 0
}

func redact(s, secret string) string {
	if secret == "" {
		return s
	}
	return strings.ReplaceAll(s, secret, "REDACTED")
}
