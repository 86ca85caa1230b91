package core

// Quote is the normalized snapshot for one symbol. The same type serves the
// success and fallback variants: Success discriminates, and Error is only
// present on fallback records. Field names follow the external snake_case
// schema consumed by the dashboard.
type Quote struct {
	Symbol          string   `json:"symbol"`
	CompanyName     string   `json:"company_name"`
	Market          string   `json:"market"`
	Currency        string   `json:"currency"`
	CurrentPrice    float64  `json:"current_price"`
	PreviousClose   float64  `json:"previous_close"`
	Change          float64  `json:"change"`
	ChangePercent   float64  `json:"change_percent"`
	OpenPrice       float64  `json:"open_price"`
	DayHigh         float64  `json:"day_high"`
	DayLow          float64  `json:"day_low"`
	Volume          int64    `json:"volume"`
	MarketCap       float64  `json:"market_cap"`
	PERatio         float64  `json:"pe_ratio"`
	EPS             float64  `json:"eps"`
	DividendYield   float64  `json:"dividend_yield"`
	DividendRate    float64  `json:"dividend_rate"`
	ExDividendDate  *string  `json:"ex_dividend_date"`
	DividendDate    *string  `json:"dividend_date"`
	PayoutRatio     *float64 `json:"payout_ratio"`
	BookValue       float64  `json:"book_value"`
	PriceToBook     float64  `json:"price_to_book"`
	WeekHigh52      float64  `json:"week_high_52"`
	WeekLow52       float64  `json:"week_low_52"`
	Beta            float64  `json:"beta"`
	ROE             float64  `json:"roe"`
	ProfitMargin    float64  `json:"profit_margin"`
	OperatingMargin float64  `json:"operating_margin"`
	DebtToEquity    float64  `json:"debt_to_equity"`
	CurrentRatio    float64  `json:"current_ratio"`
	RevenueGrowth   float64  `json:"revenue_growth"`
	EarningsGrowth  float64  `json:"earnings_growth"`
	LastUpdated     string   `json:"last_updated"`
	Success         bool     `json:"success"`
	Error           string   `json:"error,omitempty"`
}

// HistoryPoint is one OHLCV bar of a historical series.
type HistoryPoint struct {
	Date   string  `json:"date"`
	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Close  float64 `json:"close"`
	Volume int64   `json:"volume"`
}

// BatchResult aggregates a multi-symbol fetch. Data preserves the order of
// the requested symbols; FailedSymbols lists the symbols whose entry is a
// fallback record.
type BatchResult struct {
	Success         bool     `json:"success"`
	Data            []Quote  `json:"data"`
	TotalRequested  int      `json:"total_requested"`
	TotalSuccessful int      `json:"total_successful"`
	TotalFailed     int      `json:"total_failed"`
	FailedSymbols   []string `json:"failed_symbols"`
	Timestamp       string   `json:"timestamp"`
}
