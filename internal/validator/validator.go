// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// tickerRegex accepts exchange tickers such as BRK.B, RDS-A, ^GSPC or EURUSD=X.
var tickerRegex = regexp.MustCompile(`^[A-Za-z0-9.\-^=]{1,20}$`)

// candleResolutions are the bar sizes the market-data provider serves.
var candleResolutions = map[string]bool{
	"1": true, "5": true, "15": true, "30": true, "60": true,
	"D": true, "W": true, "M": true,
}

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("ticker", validateTicker)
		_ = v.RegisterValidation("candle_resolution", validateCandleResolution)
	}
}

// IsTicker reports whether s is a well-formed ticker symbol.
func IsTicker(s string) bool {
	return tickerRegex.MatchString(s)
}

// IsCandleResolution reports whether s is a supported candle resolution.
func IsCandleResolution(s string) bool {
	return candleResolutions[s]
}

func validateTicker(fl validator.FieldLevel) bool {
	return IsTicker(fl.Field().String())
}

func validateCandleResolution(fl validator.FieldLevel) bool {
	return IsCandleResolution(fl.Field().String())
}
