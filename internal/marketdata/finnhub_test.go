package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	apperrors "stocktrader/internal/errors"
	"stocktrader/internal/logger"
	"stocktrader/internal/testutil"
)

const testToken = "test-token"

func init() {
	logger.Init("test")
}

// newFinnhubServer serves the given handlers by path and checks that every
// request carries the API token.
func newFinnhubServer(t *testing.T, routes map[string]http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("token"); got != testToken {
			t.Errorf("expected token %q, got %q", testToken, got)
		}
		h, ok := routes[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		h(w, r)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestClient(srv *httptest.Server) *Client {
	return NewClient(Config{BaseURL: srv.URL, APIKey: testToken, HTTPClient: srv.Client()})
}

func writeJSON(w http.ResponseWriter, v any) {
	_ = json.NewEncoder(w).Encode(v)
}

// quoteBySymbol serves /quote from a symbol → current/previous close map.
// Symbols not in the map get an all-zero quote, as the provider does.
func quoteBySymbol(prices map[string][2]float64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := prices[r.URL.Query().Get("symbol")]
		if !ok {
			writeJSON(w, map[string]any{"c": 0, "d": nil, "dp": nil, "h": 0, "l": 0, "o": 0, "pc": 0, "t": 0})
			return
		}
		writeJSON(w, map[string]any{
			"c": p[0], "d": p[0] - p[1], "dp": 1.5, "h": p[0] + 1, "l": p[1] - 1, "o": p[1], "pc": p[1], "t": 1700000000,
		})
	}
}

func TestNewClient_Defaults(t *testing.T) {
	c := NewClient(Config{APIKey: "k"})
	if c.baseURL != DefaultBaseURL {
		t.Errorf("expected base URL %s, got %s", DefaultBaseURL, c.baseURL)
	}
	if c.timeout != 5*time.Second || c.candleTimeout != 30*time.Second {
		t.Errorf("unexpected timeouts %v / %v", c.timeout, c.candleTimeout)
	}

	c = NewClient(Config{BaseURL: "http://example.test/api/", Timeout: time.Second})
	if c.baseURL != "http://example.test/api" {
		t.Errorf("expected trailing slash trimmed, got %s", c.baseURL)
	}
	if c.timeout != time.Second {
		t.Errorf("expected timeout 1s, got %v", c.timeout)
	}
}

func TestGetQuote(t *testing.T) {
	t.Run("projects_fields", func(t *testing.T) {
		srv := newFinnhubServer(t, map[string]http.HandlerFunc{
			"/quote": quoteBySymbol(map[string][2]float64{"AAPL": {190.5, 188}}),
		})
		c := newTestClient(srv)

		q, err := c.GetQuote(context.Background(), "aapl")
		testutil.AssertNoError(t, err)

		if q.Symbol != "AAPL" {
			t.Errorf("expected symbol AAPL, got %s", q.Symbol)
		}
		if q.CurrentPrice == nil || *q.CurrentPrice != 190.5 {
			t.Errorf("expected current price 190.5, got %v", q.CurrentPrice)
		}
		if q.PreviousClose == nil || *q.PreviousClose != 188 {
			t.Errorf("expected previous close 188, got %v", q.PreviousClose)
		}
		if q.Change == nil || *q.Change != 2.5 {
			t.Errorf("expected change 2.5, got %v", q.Change)
		}
		if q.Timestamp == nil || *q.Timestamp != 1700000000 {
			t.Errorf("expected timestamp 1700000000, got %v", q.Timestamp)
		}
	})

	t.Run("zero_price_is_not_found", func(t *testing.T) {
		srv := newFinnhubServer(t, map[string]http.HandlerFunc{"/quote": quoteBySymbol(nil)})
		c := newTestClient(srv)

		_, err := c.GetQuote(context.Background(), "zzzz")
		testutil.AssertAppError(t, err, "QUOTE_NOT_FOUND")
		if !strings.Contains(err.Error(), "'ZZZZ'") {
			t.Errorf("expected message to name the symbol, got %q", err.Error())
		}
	})

	t.Run("missing_price_is_not_found", func(t *testing.T) {
		srv := newFinnhubServer(t, map[string]http.HandlerFunc{
			"/quote": func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte(`{}`)) },
		})
		c := newTestClient(srv)

		_, err := c.GetQuote(context.Background(), "AAPL")
		testutil.AssertAppError(t, err, "QUOTE_NOT_FOUND")
	})

	t.Run("upstream_error", func(t *testing.T) {
		srv := newFinnhubServer(t, map[string]http.HandlerFunc{
			"/quote": func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusTooManyRequests) },
		})
		c := newTestClient(srv)

		_, err := c.GetQuote(context.Background(), "AAPL")
		testutil.AssertAppError(t, err, "UPSTREAM_UNAVAILABLE")
		testutil.AssertStatus(t, err, http.StatusServiceUnavailable)

		appErr := err.(*apperrors.AppError)
		if !strings.Contains(appErr.Details, "429") {
			t.Errorf("expected details to carry the status, got %q", appErr.Details)
		}
	})

	t.Run("malformed_body", func(t *testing.T) {
		srv := newFinnhubServer(t, map[string]http.HandlerFunc{
			"/quote": func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte(`<html>`)) },
		})
		c := newTestClient(srv)

		_, err := c.GetQuote(context.Background(), "AAPL")
		testutil.AssertAppError(t, err, "UPSTREAM_UNAVAILABLE")
	})
}

func TestFetchQuote_KeepsZeroPrice(t *testing.T) {
	srv := newFinnhubServer(t, map[string]http.HandlerFunc{"/quote": quoteBySymbol(nil)})
	c := newTestClient(srv)

	q, err := c.FetchQuote(context.Background(), "zzzz")
	testutil.AssertNoError(t, err)
	if q.CurrentPrice == nil || *q.CurrentPrice != 0 {
		t.Errorf("expected raw zero price, got %v", q.CurrentPrice)
	}
}

func TestFetchQuote_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL, APIKey: testToken, Timeout: 50 * time.Millisecond})
	_, err := c.FetchQuote(context.Background(), "AAPL")
	testutil.AssertAppError(t, err, "UPSTREAM_UNAVAILABLE")
	if strings.Contains(err.(*apperrors.AppError).Details, testToken) {
		t.Error("expected API token to be redacted from details")
	}
}

func TestGetQuotes(t *testing.T) {
	t.Run("omits_symbols_without_data", func(t *testing.T) {
		srv := newFinnhubServer(t, map[string]http.HandlerFunc{
			"/quote": quoteBySymbol(map[string][2]float64{"AAPL": {100, 90}}),
		})
		c := newTestClient(srv)

		quotes, err := c.GetQuotes(context.Background(), []string{"AAPL", "ZZZZ"})
		testutil.AssertNoError(t, err)

		if len(quotes) != 1 {
			t.Fatalf("expected 1 quote, got %d: %v", len(quotes), quotes)
		}
		if _, ok := quotes["AAPL"]; !ok {
			t.Error("expected AAPL in result")
		}
	})

	t.Run("swallows_individual_failures", func(t *testing.T) {
		srv := newFinnhubServer(t, map[string]http.HandlerFunc{
			"/quote": func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Query().Get("symbol") == "MSFT" {
					w.WriteHeader(http.StatusInternalServerError)
					return
				}
				quoteBySymbol(map[string][2]float64{"AAPL": {100, 90}})(w, r)
			},
		})
		c := newTestClient(srv)

		quotes, err := c.GetQuotes(context.Background(), []string{"msft", "aapl"})
		testutil.AssertNoError(t, err)
		if len(quotes) != 1 || quotes["AAPL"].CurrentPrice == nil {
			t.Errorf("expected only AAPL, got %v", quotes)
		}
	})

	t.Run("skips_malformed_symbols", func(t *testing.T) {
		var seen []string
		srv := newFinnhubServer(t, map[string]http.HandlerFunc{
			"/quote": func(w http.ResponseWriter, r *http.Request) {
				seen = append(seen, r.URL.Query().Get("symbol"))
				quoteBySymbol(map[string][2]float64{"AAPL": {100, 90}})(w, r)
			},
		})
		c := newTestClient(srv)

		quotes, err := c.GetQuotes(context.Background(), []string{"AAPL", "BRK B", "A$PL"})
		testutil.AssertNoError(t, err)
		if len(quotes) != 1 || quotes["AAPL"].CurrentPrice == nil {
			t.Errorf("expected only AAPL, got %v", quotes)
		}
		if len(seen) != 1 || seen[0] != "AAPL" {
			t.Errorf("expected only AAPL to be requested, got %v", seen)
		}
	})

	t.Run("sequential", func(t *testing.T) {
		var inFlight, maxInFlight atomic.Int32
		srv := newFinnhubServer(t, map[string]http.HandlerFunc{
			"/quote": func(w http.ResponseWriter, r *http.Request) {
				n := inFlight.Add(1)
				defer inFlight.Add(-1)
				if n > maxInFlight.Load() {
					maxInFlight.Store(n)
				}
				time.Sleep(5 * time.Millisecond)
				quoteBySymbol(map[string][2]float64{"A": {1, 1}, "B": {2, 2}, "C": {3, 3}})(w, r)
			},
		})
		c := newTestClient(srv)

		quotes, err := c.GetQuotes(context.Background(), []string{"A", "B", "C"})
		testutil.AssertNoError(t, err)
		if len(quotes) != 3 {
			t.Errorf("expected 3 quotes, got %d", len(quotes))
		}
		if maxInFlight.Load() != 1 {
			t.Errorf("expected one request at a time, saw %d", maxInFlight.Load())
		}
	})

	t.Run("bounds", func(t *testing.T) {
		c := NewClient(Config{APIKey: testToken})

		_, err := c.GetQuotes(context.Background(), nil)
		testutil.AssertAppError(t, err, "INVALID_INPUT")

		many := make([]string, MaxBatchSymbols+1)
		for i := range many {
			many[i] = fmt.Sprintf("S%d", i)
		}
		_, err = c.GetQuotes(context.Background(), many)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestGetCompanyProfile(t *testing.T) {
	t.Run("projects_fields", func(t *testing.T) {
		srv := newFinnhubServer(t, map[string]http.HandlerFunc{
			"/stock/profile2": func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, map[string]any{
					"name": "Apple Inc", "country": "US", "currency": "USD", "exchange": "NASDAQ NMS",
					"finnhubIndustry": "Technology", "logo": "https://logo", "marketCapitalization": 2900000.5,
					"phone": "14089961010", "shareOutstanding": 15550.06, "ticker": "AAPL", "weburl": "https://www.apple.com/",
				})
			},
		})
		c := newTestClient(srv)

		p, err := c.GetCompanyProfile(context.Background(), "aapl")
		testutil.AssertNoError(t, err)

		if p.Symbol != "AAPL" {
			t.Errorf("expected symbol AAPL, got %s", p.Symbol)
		}
		if p.Industry == nil || *p.Industry != "Technology" {
			t.Errorf("expected industry Technology, got %v", p.Industry)
		}
		if p.Website == nil || *p.Website != "https://www.apple.com/" {
			t.Errorf("expected website, got %v", p.Website)
		}
		if p.MarketCap == nil || *p.MarketCap != 2900000.5 {
			t.Errorf("expected market cap, got %v", p.MarketCap)
		}
		if p.ShareOutstanding == nil || *p.ShareOutstanding != 15550.06 {
			t.Errorf("expected share outstanding, got %v", p.ShareOutstanding)
		}
	})

	t.Run("empty_body_is_not_found", func(t *testing.T) {
		srv := newFinnhubServer(t, map[string]http.HandlerFunc{
			"/stock/profile2": func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte(`{}`)) },
		})
		c := newTestClient(srv)

		_, err := c.GetCompanyProfile(context.Background(), "ZZZZ")
		testutil.AssertAppError(t, err, "COMPANY_NOT_FOUND")
	})

	t.Run("upstream_error", func(t *testing.T) {
		srv := newFinnhubServer(t, map[string]http.HandlerFunc{
			"/stock/profile2": func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusBadGateway) },
		})
		c := newTestClient(srv)

		_, err := c.GetCompanyProfile(context.Background(), "AAPL")
		testutil.AssertAppError(t, err, "UPSTREAM_UNAVAILABLE")
		if err.Error() != "Company data service unavailable" {
			t.Errorf("unexpected message %q", err.Error())
		}
	})
}

func TestGetCandles(t *testing.T) {
	t.Run("projects_series", func(t *testing.T) {
		srv := newFinnhubServer(t, map[string]http.HandlerFunc{
			"/stock/candle": func(w http.ResponseWriter, r *http.Request) {
				q := r.URL.Query()
				if q.Get("resolution") != "W" || q.Get("from") != "1600000000" || q.Get("to") != "1700000000" {
					t.Errorf("unexpected query %s", r.URL.RawQuery)
				}
				writeJSON(w, map[string]any{
					"s": "ok",
					"t": []int64{1, 2}, "o": []float64{10, 11}, "h": []float64{12, 13},
					"l": []float64{9, 10}, "c": []float64{11, 12}, "v": []float64{1000, 2000},
				})
			},
		})
		c := newTestClient(srv)

		candles, err := c.GetCandles(context.Background(), "msft", CandleQuery{Resolution: "W", From: 1600000000, To: 1700000000})
		testutil.AssertNoError(t, err)

		if candles.Symbol != "MSFT" || candles.Resolution != "W" {
			t.Errorf("unexpected header %s/%s", candles.Symbol, candles.Resolution)
		}
		if len(candles.Timestamps) != 2 || candles.Close[1] != 12 || candles.Volume[0] != 1000 {
			t.Errorf("unexpected series %+v", candles)
		}
	})

	t.Run("default_resolution", func(t *testing.T) {
		srv := newFinnhubServer(t, map[string]http.HandlerFunc{
			"/stock/candle": func(w http.ResponseWriter, r *http.Request) {
				if got := r.URL.Query().Get("resolution"); got != "D" {
					t.Errorf("expected resolution D, got %q", got)
				}
				writeJSON(w, map[string]any{"s": "ok", "t": []int64{}, "o": []float64{}, "h": []float64{}, "l": []float64{}, "c": []float64{}, "v": []float64{}})
			},
		})
		c := newTestClient(srv)

		candles, err := c.GetCandles(context.Background(), "AAPL", CandleQuery{From: 1, To: 2})
		testutil.AssertNoError(t, err)
		if candles.Resolution != "D" {
			t.Errorf("expected resolution D, got %s", candles.Resolution)
		}
	})

	t.Run("no_data", func(t *testing.T) {
		srv := newFinnhubServer(t, map[string]http.HandlerFunc{
			"/stock/candle": func(w http.ResponseWriter, r *http.Request) { writeJSON(w, map[string]any{"s": "no_data"}) },
		})
		c := newTestClient(srv)

		_, err := c.GetCandles(context.Background(), "AAPL", CandleQuery{From: 1, To: 2})
		testutil.AssertAppError(t, err, "CANDLES_NOT_FOUND")
	})

	t.Run("uses_candle_timeout", func(t *testing.T) {
		srv := newFinnhubServer(t, map[string]http.HandlerFunc{
			"/stock/candle": func(w http.ResponseWriter, r *http.Request) {
				time.Sleep(100 * time.Millisecond)
				writeJSON(w, map[string]any{"s": "ok"})
			},
		})
		c := NewClient(Config{
			BaseURL: srv.URL, APIKey: testToken, HTTPClient: srv.Client(),
			Timeout: 10 * time.Millisecond, CandleTimeout: 5 * time.Second,
		})

		_, err := c.GetCandles(context.Background(), "AAPL", CandleQuery{From: 1, To: 2})
		testutil.AssertNoError(t, err)
	})

	t.Run("upstream_error", func(t *testing.T) {
		srv := newFinnhubServer(t, map[string]http.HandlerFunc{
			"/stock/candle": func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusForbidden) },
		})
		c := newTestClient(srv)

		_, err := c.GetCandles(context.Background(), "AAPL", CandleQuery{From: 1, To: 2})
		testutil.AssertAppError(t, err, "UPSTREAM_UNAVAILABLE")
		if err.Error() != "Candle data service unavailable" {
			t.Errorf("unexpected message %q", err.Error())
		}
	})
}

func TestGetCompanyNews(t *testing.T) {
	t.Run("truncates_to_limit", func(t *testing.T) {
		srv := newFinnhubServer(t, map[string]http.HandlerFunc{
			"/company-news": func(w http.ResponseWriter, r *http.Request) {
				q := r.URL.Query()
				if q.Get("from") != "2024-01-01" || q.Get("to") != "2024-01-31" {
					t.Errorf("expected dates forwarded, got %s", r.URL.RawQuery)
				}
				articles := make([]NewsArticle, 35)
				for i := range articles {
					articles[i] = NewsArticle{ID: int64(i), Headline: fmt.Sprintf("headline %d", i)}
				}
				writeJSON(w, articles)
			},
		})
		c := newTestClient(srv)

		news, err := c.GetCompanyNews(context.Background(), "tsla", "2024-01-01", "2024-01-31")
		testutil.AssertNoError(t, err)

		if news.Symbol != "TSLA" {
			t.Errorf("expected symbol TSLA, got %s", news.Symbol)
		}
		if len(news.News) != MaxNewsArticles {
			t.Fatalf("expected %d articles, got %d", MaxNewsArticles, len(news.News))
		}
		if news.News[0].ID != 0 || news.News[19].ID != 19 {
			t.Error("expected the first articles in provider order")
		}
	})

	t.Run("empty", func(t *testing.T) {
		srv := newFinnhubServer(t, map[string]http.HandlerFunc{
			"/company-news": func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte(`[]`)) },
		})
		c := newTestClient(srv)

		news, err := c.GetCompanyNews(context.Background(), "AAPL", "", "")
		testutil.AssertNoError(t, err)
		if news.News == nil || len(news.News) != 0 {
			t.Errorf("expected empty non-nil list, got %v", news.News)
		}
	})

	t.Run("upstream_error", func(t *testing.T) {
		srv := newFinnhubServer(t, map[string]http.HandlerFunc{
			"/company-news": func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusInternalServerError) },
		})
		c := newTestClient(srv)

		_, err := c.GetCompanyNews(context.Background(), "AAPL", "2024-01-01", "2024-01-31")
		testutil.AssertAppError(t, err, "UPSTREAM_UNAVAILABLE")
	})
}

func TestGetStats(t *testing.T) {
	srv := newFinnhubServer(t, map[string]http.HandlerFunc{
		"/stock/metric": func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Query().Get("metric") != "all" {
				t.Errorf("expected metric=all, got %s", r.URL.RawQuery)
			}
			writeJSON(w, map[string]any{
				"metric": map[string]any{"52WeekHigh": 199.62, "52WeekLow": 164.08, "10DayAverageTradingVolume": 52.3, "beta": 1.2},
			})
		},
	})
	c := newTestClient(srv)

	stats, err := c.GetStats(context.Background(), "aapl")
	testutil.AssertNoError(t, err)

	if stats.Symbol != "AAPL" {
		t.Errorf("expected symbol AAPL, got %s", stats.Symbol)
	}
	if stats.WeekHigh52 == nil || *stats.WeekHigh52 != 199.62 {
		t.Errorf("unexpected 52-week high %v", stats.WeekHigh52)
	}
	if stats.WeekLow52 == nil || *stats.WeekLow52 != 164.08 {
		t.Errorf("unexpected 52-week low %v", stats.WeekLow52)
	}
	if stats.AvgVolume10Day == nil || *stats.AvgVolume10Day != 52.3 {
		t.Errorf("unexpected 10-day volume %v", stats.AvgVolume10Day)
	}

	body, _ := json.Marshal(stats)
	for _, key := range []string{`"52WeekHigh"`, `"52WeekLow"`, `"10DayAvgVolume"`} {
		if !strings.Contains(string(body), key) {
			t.Errorf("expected key %s in %s", key, body)
		}
	}
}
