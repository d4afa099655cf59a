package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	apperrors "stocktrader/internal/errors"
)

// momentumWeight is the share of today's move carried into tomorrow.
var momentumWeight = decimal.NewFromFloat(0.5)

// predictionService forecasts next-day prices from the live quote.
type predictionService struct {
	quotes QuoteFetcher
}

// NewPredictionService creates a new PredictionServicer.
func NewPredictionService(quotes QuoteFetcher) PredictionServicer {
	return &predictionService{quotes: quotes}
}

// Predict extrapolates half of today's change: c + 0.5*(c - pc), rounded to
// cents. Every failure, upstream or arithmetic, is reported as PREDICTION_FAILED.
func (s *predictionService) Predict(ctx context.Context, symbol string) (*Prediction, error) {
	q, err := s.quotes.FetchQuote(ctx, symbol)
	if err != nil {
		return nil, predictionFailed(err)
	}
	if q.CurrentPrice == nil || q.PreviousClose == nil {
		return nil, predictionFailed(fmt.Errorf("quote for %s has no current price or previous close", normalizeSymbol(symbol)))
	}

	forecast, _ := PredictNextDay(*q.CurrentPrice, *q.PreviousClose).Float64()
	return &Prediction{
		Symbol:                normalizeSymbol(symbol),
		CurrentPrice:          q.CurrentPrice,
		PredictedNextDayPrice: forecast,
	}, nil
}

// PredictNextDay returns current + 0.5*(current - previousClose) rounded half
// away from zero to two decimal places.
func PredictNextDay(current, previousClose float64) decimal.Decimal {
	c := decimal.NewFromFloat(current)
	change := c.Sub(decimal.NewFromFloat(previousClose))
	return c.Add(change.Mul(momentumWeight)).Round(2)
}

func predictionFailed(cause error) *apperrors.AppError {
	msg := cause.Error()
	var appErr *apperrors.AppError
	if errors.As(cause, &appErr) && appErr.Details != "" {
		msg = appErr.Message + ": " + appErr.Details
	}
	e := apperrors.Wrap(apperrors.ErrPredictionFailed, cause)
	e.Message = msg
	return e
}
