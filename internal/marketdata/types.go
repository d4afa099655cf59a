package marketdata

// Quote is the latest price snapshot for one symbol. Fields the provider
// leaves out are reported as null.
type Quote struct {
	Symbol        string   `json:"symbol"`
	CurrentPrice  *float64 `json:"current_price"`
	Change        *float64 `json:"change"`
	ChangePercent *float64 `json:"change_percent"`
	High          *float64 `json:"high"`
	Low           *float64 `json:"low"`
	Open          *float64 `json:"open"`
	PreviousClose *float64 `json:"previous_close"`
	Timestamp     *int64   `json:"timestamp"`
}

// QuoteSnapshot is one entry of a batch quote response, keyed by symbol.
type QuoteSnapshot struct {
	CurrentPrice  *float64 `json:"current_price"`
	Change        *float64 `json:"change"`
	ChangePercent *float64 `json:"change_percent"`
	High          *float64 `json:"high"`
	Low           *float64 `json:"low"`
	Open          *float64 `json:"open"`
	PreviousClose *float64 `json:"previous_close"`
}

// Snapshot drops the symbol and timestamp from q.
func (q *Quote) Snapshot() QuoteSnapshot {
	return QuoteSnapshot{
		CurrentPrice:  q.CurrentPrice,
		Change:        q.Change,
		ChangePercent: q.ChangePercent,
		High:          q.High,
		Low:           q.Low,
		Open:          q.Open,
		PreviousClose: q.PreviousClose,
	}
}

// CompanyProfile describes the company behind a symbol.
type CompanyProfile struct {
	Symbol           string   `json:"symbol"`
	Name             *string  `json:"name"`
	Country          *string  `json:"country"`
	Currency         *string  `json:"currency"`
	Exchange         *string  `json:"exchange"`
	Industry         *string  `json:"industry"`
	Logo             *string  `json:"logo"`
	MarketCap        *float64 `json:"market_cap"`
	Phone            *string  `json:"phone"`
	ShareOutstanding *float64 `json:"share_outstanding"`
	Ticker           *string  `json:"ticker"`
	Website          *string  `json:"website"`
}

// Candles is an OHLCV series. All slices share the same index.
type Candles struct {
	Symbol     string    `json:"symbol"`
	Resolution string    `json:"resolution"`
	Timestamps []int64   `json:"timestamps"`
	Open       []float64 `json:"open"`
	High       []float64 `json:"high"`
	Low        []float64 `json:"low"`
	Close      []float64 `json:"close"`
	Volume     []float64 `json:"volume"`
}

// CandleQuery selects a candle series. From and To are UNIX seconds.
type CandleQuery struct {
	Resolution string
	From       int64
	To         int64
}

// NewsArticle is a company news item as the provider reports it.
type NewsArticle struct {
	Category string `json:"category"`
	Datetime int64  `json:"datetime"`
	Headline string `json:"headline"`
	ID       int64  `json:"id"`
	Image    string `json:"image"`
	Related  string `json:"related"`
	Source   string `json:"source"`
	Summary  string `json:"summary"`
	URL      string `json:"url"`
}

// CompanyNews wraps the most recent articles for a symbol.
type CompanyNews struct {
	Symbol string        `json:"symbol"`
	News   []NewsArticle `json:"news"`
}

// Stats holds the 52-week range and short-term average volume.
type Stats struct {
	Symbol         string   `json:"symbol"`
	WeekHigh52     *float64 `json:"52WeekHigh"`
	WeekLow52      *float64 `json:"52WeekLow"`
	AvgVolume10Day *float64 `json:"10DayAvgVolume"`
}
