package handlers

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "stocktrader/internal/errors"
	"stocktrader/internal/marketdata"
	"stocktrader/internal/services"
)

// --- mock market data service ---

type mockMarketService struct {
	fetchQuoteFn        func(symbol string) (*marketdata.Quote, error)
	getQuoteFn          func(symbol string) (*marketdata.Quote, error)
	getQuotesFn         func(symbols []string) (map[string]marketdata.QuoteSnapshot, error)
	getCompanyProfileFn func(symbol string) (*marketdata.CompanyProfile, error)
	getCandlesFn        func(symbol string, query marketdata.CandleQuery) (*marketdata.Candles, error)
	getCompanyNewsFn    func(symbol, from, to string) (*marketdata.CompanyNews, error)
	getStatsFn          func(symbol string) (*marketdata.Stats, error)
}

func (m *mockMarketService) FetchQuote(_ context.Context, symbol string) (*marketdata.Quote, error) {
	if m.fetchQuoteFn != nil {
		return m.fetchQuoteFn(symbol)
	}
	return &marketdata.Quote{Symbol: symbol}, nil
}

func (m *mockMarketService) GetQuote(_ context.Context, symbol string) (*marketdata.Quote, error) {
	if m.getQuoteFn != nil {
		return m.getQuoteFn(symbol)
	}
	return &marketdata.Quote{Symbol: symbol}, nil
}

func (m *mockMarketService) GetQuotes(_ context.Context, symbols []string) (map[string]marketdata.QuoteSnapshot, error) {
	if m.getQuotesFn != nil {
		return m.getQuotesFn(symbols)
	}
	return map[string]marketdata.QuoteSnapshot{}, nil
}

func (m *mockMarketService) GetCompanyProfile(_ context.Context, symbol string) (*marketdata.CompanyProfile, error) {
	if m.getCompanyProfileFn != nil {
		return m.getCompanyProfileFn(symbol)
	}
	return &marketdata.CompanyProfile{Symbol: symbol}, nil
}

func (m *mockMarketService) GetCandles(_ context.Context, symbol string, query marketdata.CandleQuery) (*marketdata.Candles, error) {
	if m.getCandlesFn != nil {
		return m.getCandlesFn(symbol, query)
	}
	return &marketdata.Candles{Symbol: symbol, Resolution: query.Resolution}, nil
}

func (m *mockMarketService) GetCompanyNews(_ context.Context, symbol, from, to string) (*marketdata.CompanyNews, error) {
	if m.getCompanyNewsFn != nil {
		return m.getCompanyNewsFn(symbol, from, to)
	}
	return &marketdata.CompanyNews{Symbol: symbol, News: []marketdata.NewsArticle{}}, nil
}

func (m *mockMarketService) GetStats(_ context.Context, symbol string) (*marketdata.Stats, error) {
	if m.getStatsFn != nil {
		return m.getStatsFn(symbol)
	}
	return &marketdata.Stats{Symbol: symbol}, nil
}

var _ services.MarketDataServicer = (*mockMarketService)(nil)

// --- mock prediction service ---

type mockPredictionService struct {
	predictFn func(symbol string) (*services.Prediction, error)
}

func (m *mockPredictionService) Predict(_ context.Context, symbol string) (*services.Prediction, error) {
	if m.predictFn != nil {
		return m.predictFn(symbol)
	}
	return &services.Prediction{Symbol: symbol}, nil
}

var _ services.PredictionServicer = (*mockPredictionService)(nil)

func setupMarketRouter(handler *MarketHandler) *gin.Engine {
	r := gin.New()
	r.GET("/market/quote/:symbol", handler.GetQuote)
	r.POST("/market/quotes", handler.GetQuotes)
	r.GET("/market/company/:symbol", handler.GetCompanyProfile)
	r.GET("/market/candles/:symbol", handler.GetCandles)
	r.GET("/market/news/:symbol", handler.GetCompanyNews)
	r.GET("/market/stats/:symbol", handler.GetStats)
	r.GET("/market/predict/:symbol", handler.Predict)
	return r
}

func floatPtr(f float64) *float64 { return &f }

func TestMarketHandler_GetQuote(t *testing.T) {
	t.Run("returns quote", func(t *testing.T) {
		svc := &mockMarketService{
			getQuoteFn: func(symbol string) (*marketdata.Quote, error) {
				return &marketdata.Quote{Symbol: "AAPL", CurrentPrice: floatPtr(190.5)}, nil
			},
		}
		r := setupMarketRouter(NewMarketHandler(svc, &mockPredictionService{}))

		rec := doRequest(r, http.MethodGet, "/market/quote/aapl", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		result := parseJSON(t, rec)
		if result["current_price"] != 190.5 {
			t.Errorf("expected 190.5, got %v", result["current_price"])
		}
		if _, ok := result["previous_close"]; !ok {
			t.Error("expected null previous_close key to be present")
		}
	})

	t.Run("returns 404 when no data", func(t *testing.T) {
		svc := &mockMarketService{
			getQuoteFn: func(string) (*marketdata.Quote, error) {
				return nil, apperrors.WithMessage(apperrors.ErrQuoteNotFound, "No valid data for symbol 'ZZZZ'")
			},
		}
		r := setupMarketRouter(NewMarketHandler(svc, &mockPredictionService{}))

		rec := doRequest(r, http.MethodGet, "/market/quote/ZZZZ", "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		result := parseJSON(t, rec)
		assertErrorCode(t, result, "QUOTE_NOT_FOUND")
		assertErrorMessage(t, result, "No valid data for symbol 'ZZZZ'")
	})

	t.Run("returns 503 with details when upstream fails", func(t *testing.T) {
		svc := &mockMarketService{
			getQuoteFn: func(string) (*marketdata.Quote, error) {
				return nil, apperrors.WithDetails(apperrors.ErrUpstreamUnavailable, "Quote service unavailable", errors.New("unexpected status 502"))
			},
		}
		r := setupMarketRouter(NewMarketHandler(svc, &mockPredictionService{}))

		rec := doRequest(r, http.MethodGet, "/market/quote/AAPL", "")

		if rec.Code != http.StatusServiceUnavailable {
			t.Fatalf("expected 503, got %d", rec.Code)
		}
		result := parseJSON(t, rec)
		assertErrorCode(t, result, "UPSTREAM_UNAVAILABLE")
		if result["details"] != "unexpected status 502" {
			t.Errorf("expected details, got %v", result["details"])
		}
	})
}

func TestMarketHandler_GetQuotes(t *testing.T) {
	t.Run("wraps map under quotes", func(t *testing.T) {
		var got []string
		svc := &mockMarketService{
			getQuotesFn: func(symbols []string) (map[string]marketdata.QuoteSnapshot, error) {
				got = symbols
				return map[string]marketdata.QuoteSnapshot{"AAPL": {CurrentPrice: floatPtr(190)}}, nil
			},
		}
		r := setupMarketRouter(NewMarketHandler(svc, &mockPredictionService{}))

		rec := doRequest(r, http.MethodPost, "/market/quotes", `{"symbols":["AAPL","ZZZZ"]}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if len(got) != 2 {
			t.Errorf("expected both symbols forwarded, got %v", got)
		}
		quotes := parseJSON(t, rec)["quotes"].(map[string]interface{})
		if _, ok := quotes["AAPL"]; !ok || len(quotes) != 1 {
			t.Errorf("expected only AAPL, got %v", quotes)
		}
	})

	t.Run("forwards empty list for service validation", func(t *testing.T) {
		svc := &mockMarketService{
			getQuotesFn: func(symbols []string) (map[string]marketdata.QuoteSnapshot, error) {
				if len(symbols) == 0 {
					return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Provide 1-100 symbols")
				}
				return nil, nil
			},
		}
		r := setupMarketRouter(NewMarketHandler(svc, &mockPredictionService{}))

		rec := doRequest(r, http.MethodPost, "/market/quotes", `{}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorMessage(t, parseJSON(t, rec), "Provide 1-100 symbols")
	})

	t.Run("forwards malformed symbols to the service", func(t *testing.T) {
		var got []string
		svc := &mockMarketService{
			getQuotesFn: func(symbols []string) (map[string]marketdata.QuoteSnapshot, error) {
				got = symbols
				return map[string]marketdata.QuoteSnapshot{"AAPL": {CurrentPrice: floatPtr(190)}}, nil
			},
		}
		r := setupMarketRouter(NewMarketHandler(svc, &mockPredictionService{}))

		rec := doRequest(r, http.MethodPost, "/market/quotes", `{"symbols":["AAPL","BRK B"]}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if len(got) != 2 || got[1] != "BRK B" {
			t.Errorf("expected both symbols forwarded, got %v", got)
		}
		quotes := parseJSON(t, rec)["quotes"].(map[string]interface{})
		if _, ok := quotes["AAPL"]; !ok || len(quotes) != 1 {
			t.Errorf("expected only AAPL, got %v", quotes)
		}
	})
}

func TestMarketHandler_GetCompanyProfile(t *testing.T) {
	svc := &mockMarketService{
		getCompanyProfileFn: func(symbol string) (*marketdata.CompanyProfile, error) {
			if symbol == "ZZZZ" {
				return nil, apperrors.ErrCompanyNotFound
			}
			name := "Apple Inc"
			return &marketdata.CompanyProfile{Symbol: symbol, Name: &name}, nil
		},
	}
	r := setupMarketRouter(NewMarketHandler(svc, &mockPredictionService{}))

	rec := doRequest(r, http.MethodGet, "/market/company/AAPL", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if result := parseJSON(t, rec); result["name"] != "Apple Inc" {
		t.Errorf("expected name, got %v", result["name"])
	}

	rec = doRequest(r, http.MethodGet, "/market/company/ZZZZ", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	assertErrorCode(t, parseJSON(t, rec), "COMPANY_NOT_FOUND")
}

func TestMarketHandler_GetCandles(t *testing.T) {
	t.Run("forwards query", func(t *testing.T) {
		var got marketdata.CandleQuery
		svc := &mockMarketService{
			getCandlesFn: func(symbol string, query marketdata.CandleQuery) (*marketdata.Candles, error) {
				got = query
				return &marketdata.Candles{Symbol: symbol, Resolution: "60", Timestamps: []int64{1}, Close: []float64{2}}, nil
			},
		}
		r := setupMarketRouter(NewMarketHandler(svc, &mockPredictionService{}))

		rec := doRequest(r, http.MethodGet, "/market/candles/AAPL?resolution=60&from=1700000000&to=1700086400", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if got.Resolution != "60" || got.From != 1700000000 || got.To != 1700086400 {
			t.Errorf("unexpected query %+v", got)
		}
	})

	missing := []string{
		"/market/candles/AAPL",
		"/market/candles/AAPL?from=1700000000",
		"/market/candles/AAPL?to=1700086400&resolution=D",
	}
	for _, path := range missing {
		t.Run("missing range "+path, func(t *testing.T) {
			r := setupMarketRouter(NewMarketHandler(&mockMarketService{}, &mockPredictionService{}))

			rec := doRequest(r, http.MethodGet, path, "")

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", rec.Code)
			}
			assertErrorMessage(t, parseJSON(t, rec), "from and to timestamps required")
		})
	}

	t.Run("returns 400 on non-integer timestamp", func(t *testing.T) {
		r := setupMarketRouter(NewMarketHandler(&mockMarketService{}, &mockPredictionService{}))

		rec := doRequest(r, http.MethodGet, "/market/candles/AAPL?from=yesterday&to=1700086400", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 400 on unknown resolution", func(t *testing.T) {
		r := setupMarketRouter(NewMarketHandler(&mockMarketService{}, &mockPredictionService{}))

		rec := doRequest(r, http.MethodGet, "/market/candles/AAPL?resolution=2&from=1&to=2", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 404 when no data", func(t *testing.T) {
		svc := &mockMarketService{
			getCandlesFn: func(string, marketdata.CandleQuery) (*marketdata.Candles, error) {
				return nil, apperrors.ErrCandlesNotFound
			},
		}
		r := setupMarketRouter(NewMarketHandler(svc, &mockPredictionService{}))

		rec := doRequest(r, http.MethodGet, "/market/candles/AAPL?from=1&to=2", "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})
}

func TestMarketHandler_GetCompanyNews(t *testing.T) {
	var gotFrom, gotTo string
	svc := &mockMarketService{
		getCompanyNewsFn: func(symbol, from, to string) (*marketdata.CompanyNews, error) {
			gotFrom, gotTo = from, to
			return &marketdata.CompanyNews{Symbol: symbol, News: []marketdata.NewsArticle{{Headline: "Earnings"}}}, nil
		},
	}
	r := setupMarketRouter(NewMarketHandler(svc, &mockPredictionService{}))

	rec := doRequest(r, http.MethodGet, "/market/news/AAPL?from=2024-01-01&to=2024-01-31", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if gotFrom != "2024-01-01" || gotTo != "2024-01-31" {
		t.Errorf("expected dates forwarded, got %q %q", gotFrom, gotTo)
	}
	result := parseJSON(t, rec)
	if result["symbol"] != "AAPL" || len(result["news"].([]interface{})) != 1 {
		t.Errorf("unexpected news payload %v", result)
	}
}

func TestMarketHandler_GetStats(t *testing.T) {
	svc := &mockMarketService{
		getStatsFn: func(symbol string) (*marketdata.Stats, error) {
			return &marketdata.Stats{Symbol: symbol, WeekHigh52: floatPtr(199.62)}, nil
		},
	}
	r := setupMarketRouter(NewMarketHandler(svc, &mockPredictionService{}))

	rec := doRequest(r, http.MethodGet, "/market/stats/AAPL", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if result := parseJSON(t, rec); result["52WeekHigh"] != 199.62 {
		t.Errorf("expected 52WeekHigh, got %v", result)
	}
}

func TestMarketHandler_Predict(t *testing.T) {
	t.Run("returns prediction", func(t *testing.T) {
		pred := &mockPredictionService{
			predictFn: func(symbol string) (*services.Prediction, error) {
				return &services.Prediction{Symbol: "AAPL", CurrentPrice: floatPtr(100), PredictedNextDayPrice: 105}, nil
			},
		}
		r := setupMarketRouter(NewMarketHandler(&mockMarketService{}, pred))

		rec := doRequest(r, http.MethodGet, "/market/predict/AAPL", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		result := parseJSON(t, rec)
		if result["predicted_next_day_price"] != float64(105) || result["current_price"] != float64(100) {
			t.Errorf("unexpected prediction %v", result)
		}
	})

	t.Run("returns 500 on failure", func(t *testing.T) {
		pred := &mockPredictionService{
			predictFn: func(string) (*services.Prediction, error) {
				return nil, apperrors.WithMessage(apperrors.ErrPredictionFailed, "missing previous close")
			},
		}
		r := setupMarketRouter(NewMarketHandler(&mockMarketService{}, pred))

		rec := doRequest(r, http.MethodGet, "/market/predict/AAPL", "")

		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "PREDICTION_FAILED")
	})
}
