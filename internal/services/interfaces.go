package services

import (
	"context"

	"stocktrader/internal/marketdata"
	"stocktrader/internal/models"
	"stocktrader/internal/pagination"
)

// InstrumentFilter holds optional filters for listing instruments. Empty
// fields do not filter.
type InstrumentFilter struct {
	Search string // substring of symbol or name
	Sector string // substring of sector
}

// InstrumentInput carries the writable fields of an instrument.
type InstrumentInput struct {
	Symbol    string
	Name      string
	Exchange  string
	Sector    *string
	MarketCap *float64
}

// InstrumentServicer defines the contract for the instrument catalog.
type InstrumentServicer interface {
	ListInstruments(ctx context.Context, filter InstrumentFilter, page pagination.PageRequest) (*pagination.Page[models.Instrument], error)
	GetInstrument(ctx context.Context, symbol string, includeInactive bool) (*models.Instrument, error)
	CreateInstrument(ctx context.Context, input InstrumentInput) (*models.Instrument, error)
	UpdateInstrument(ctx context.Context, symbol string, input InstrumentInput) (*models.Instrument, error)
	DeleteInstrument(ctx context.Context, symbol string) error
}

// UserServicer defines the contract for user accounts, watchlists and portfolios.
type UserServicer interface {
	Register(ctx context.Context, username, email, password string) (*models.User, error)
	Login(ctx context.Context, username, password string) (*models.User, error)
	GetWatchlist(ctx context.Context, userID uint) ([]models.WatchlistItem, error)
	AddToWatchlist(ctx context.Context, userID uint, symbol string) error
	RemoveFromWatchlist(ctx context.Context, userID uint, symbol string) error
	GetPortfolio(ctx context.Context, userID uint) ([]models.PortfolioHolding, error)
	GetBalance(ctx context.Context, userID uint) (float64, error)
}

// MarketDataServicer defines the contract for live market data.
// *marketdata.Client satisfies it.
type MarketDataServicer interface {
	QuoteFetcher
	GetQuote(ctx context.Context, symbol string) (*marketdata.Quote, error)
	GetQuotes(ctx context.Context, symbols []string) (map[string]marketdata.QuoteSnapshot, error)
	GetCompanyProfile(ctx context.Context, symbol string) (*marketdata.CompanyProfile, error)
	GetCandles(ctx context.Context, symbol string, query marketdata.CandleQuery) (*marketdata.Candles, error)
	GetCompanyNews(ctx context.Context, symbol, from, to string) (*marketdata.CompanyNews, error)
	GetStats(ctx context.Context, symbol string) (*marketdata.Stats, error)
}

// QuoteFetcher returns a raw quote with no presence checks.
type QuoteFetcher interface {
	FetchQuote(ctx context.Context, symbol string) (*marketdata.Quote, error)
}

// Prediction is a next-day price forecast.
type Prediction struct {
	Symbol                string   `json:"symbol"`
	CurrentPrice          *float64 `json:"current_price"`
	PredictedNextDayPrice float64  `json:"predicted_next_day_price"`
}

// PredictionServicer defines the contract for price forecasts.
type PredictionServicer interface {
	Predict(ctx context.Context, symbol string) (*Prediction, error)
}

var _ MarketDataServicer = (*marketdata.Client)(nil)
