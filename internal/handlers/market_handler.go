package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "stocktrader/internal/errors"
	"stocktrader/internal/marketdata"
	"stocktrader/internal/services"
)

// MarketHandler serves live market data and price predictions.
type MarketHandler struct {
	marketService     services.MarketDataServicer
	predictionService services.PredictionServicer
}

// NewMarketHandler creates a new MarketHandler.
func NewMarketHandler(marketService services.MarketDataServicer, predictionService services.PredictionServicer) *MarketHandler {
	return &MarketHandler{
		marketService:     marketService,
		predictionService: predictionService,
	}
}

// QuotesRequest represents the request payload for a batch quote lookup.
type QuotesRequest struct {
	Symbols []string `json:"symbols"`
}

// QuotesResponse maps each symbol with data to its snapshot.
type QuotesResponse struct {
	Quotes map[string]marketdata.QuoteSnapshot `json:"quotes"`
}

// CandlesQuery holds the candle series parameters.
type CandlesQuery struct {
	Resolution string `form:"resolution" binding:"omitempty,candle_resolution"`
	From       *int64 `form:"from"`
	To         *int64 `form:"to"`
}

// NewsQuery holds the news date range. Dates are passed through as given.
type NewsQuery struct {
	From string `form:"from"`
	To   string `form:"to"`
}

// GetQuote handles a single real-time quote.
// @Summary     Get quote
// @Tags        market
// @Produce     json
// @Param       symbol path string true "Ticker symbol"
// @Success     200 {object} marketdata.Quote
// @Failure     404 {object} ErrorResponse "No data for symbol"
// @Failure     503 {object} ErrorResponse "Provider unavailable"
// @Router      /market/quote/{symbol} [get]
func (h *MarketHandler) GetQuote(c *gin.Context) {
	symbol, err := pathSymbol(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	quote, err := h.marketService.GetQuote(c.Request.Context(), symbol)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, quote)
}

// GetQuotes handles a batch quote lookup. Malformed symbols and symbols
// without data are omitted.
// @Summary     Get quotes
// @Tags        market
// @Accept      json
// @Produce     json
// @Param       request body QuotesRequest true "Between 1 and 100 symbols"
// @Success     200 {object} QuotesResponse
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /market/quotes [post]
func (h *MarketHandler) GetQuotes(c *gin.Context) {
	var req QuotesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	quotes, err := h.marketService.GetQuotes(c.Request.Context(), req.Symbols)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, QuotesResponse{Quotes: quotes})
}

// GetCompanyProfile handles a company profile lookup.
// @Summary     Get company profile
// @Tags        market
// @Produce     json
// @Param       symbol path string true "Ticker symbol"
// @Success     200 {object} marketdata.CompanyProfile
// @Failure     404 {object} ErrorResponse "Company not found"
// @Failure     503 {object} ErrorResponse "Provider unavailable"
// @Router      /market/company/{symbol} [get]
func (h *MarketHandler) GetCompanyProfile(c *gin.Context) {
	symbol, err := pathSymbol(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	profile, err := h.marketService.GetCompanyProfile(c.Request.Context(), symbol)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

// GetCandles handles an OHLCV series lookup.
// @Summary     Get candles
// @Tags        market
// @Produce     json
// @Param       symbol     path  string true  "Ticker symbol"
// @Param       resolution query string false "1, 5, 15, 30, 60, D, W or M (default D)"
// @Param       from       query int    true  "Start, UNIX seconds"
// @Param       to         query int    true  "End, UNIX seconds"
// @Success     200 {object} marketdata.Candles
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "No candle data"
// @Failure     503 {object} ErrorResponse "Provider unavailable"
// @Router      /market/candles/{symbol} [get]
func (h *MarketHandler) GetCandles(c *gin.Context) {
	symbol, err := pathSymbol(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if c.Query("from") == "" || c.Query("to") == "" {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "from and to timestamps required"))
		return
	}

	var q CandlesQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err)
		return
	}

	candles, err := h.marketService.GetCandles(c.Request.Context(), symbol, marketdata.CandleQuery{
		Resolution: q.Resolution,
		From:       *q.From,
		To:         *q.To,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, candles)
}

// GetCompanyNews handles a company news lookup.
// @Summary     Get company news
// @Tags        market
// @Produce     json
// @Param       symbol path  string true  "Ticker symbol"
// @Param       from   query string false "Start date, YYYY-MM-DD"
// @Param       to     query string false "End date, YYYY-MM-DD"
// @Success     200 {object} marketdata.CompanyNews
// @Failure     503 {object} ErrorResponse "Provider unavailable"
// @Router      /market/news/{symbol} [get]
func (h *MarketHandler) GetCompanyNews(c *gin.Context) {
	symbol, err := pathSymbol(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var q NewsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err)
		return
	}

	news, err := h.marketService.GetCompanyNews(c.Request.Context(), symbol, q.From, q.To)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, news)
}

// GetStats handles a key statistics lookup.
// @Summary     Get stats
// @Tags        market
// @Produce     json
// @Param       symbol path string true "Ticker symbol"
// @Success     200 {object} marketdata.Stats
// @Failure     503 {object} ErrorResponse "Provider unavailable"
// @Router      /market/stats/{symbol} [get]
func (h *MarketHandler) GetStats(c *gin.Context) {
	symbol, err := pathSymbol(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	stats, err := h.marketService.GetStats(c.Request.Context(), symbol)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// Predict handles a next-day price forecast.
// @Summary     Predict next-day price
// @Description current + 0.5 * (current - previous close), rounded to cents
// @Tags        market
// @Produce     json
// @Param       symbol path string true "Ticker symbol"
// @Success     200 {object} services.Prediction
// @Failure     500 {object} ErrorResponse "Prediction failed"
// @Router      /market/predict/{symbol} [get]
func (h *MarketHandler) Predict(c *gin.Context) {
	symbol, err := pathSymbol(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	prediction, err := h.predictionService.Predict(c.Request.Context(), symbol)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, prediction)
}
