package provider

import (
	"context"
	"time"
)

// Info is the fundamentals/price bundle returned by the upstream source for
// one symbol. Every numeric field is optional: a nil pointer means the
// provider omitted or nulled the value, and the normalizer substitutes a
// field-specific default.
type Info struct {
	CurrentPrice       *float64
	RegularMarketPrice *float64
	PreviousClose      *float64

	Exchange  string
	Currency  string
	LongName  string
	ShortName string

	MarketCap   *float64
	ForwardPE   *float64
	TrailingPE  *float64
	TrailingEPS *float64
	BookValue   *float64
	PriceToBook *float64

	DividendYield  *float64
	DividendRate   *float64
	ExDividendDate *DateValue
	DividendDate   *DateValue
	PayoutRatio    *float64

	FiftyTwoWeekHigh *float64
	FiftyTwoWeekLow  *float64

	Beta            *float64
	ReturnOnEquity  *float64
	ProfitMargin    *float64
	OperatingMargin *float64
	DebtToEquity    *float64
	CurrentRatio    *float64
	RevenueGrowth   *float64
	EarningsGrowth  *float64
}

// DateValue holds a provider date that arrives either as a Unix epoch or as
// a preformatted string.
type DateValue struct {
	Epoch *int64
	Text  string
}

// EpochDate wraps an epoch timestamp as a DateValue.
func EpochDate(ts int64) *DateValue {
	return &DateValue{Epoch: &ts}
}

// TextDate wraps a preformatted date string as a DateValue.
func TextDate(s string) *DateValue {
	return &DateValue{Text: s}
}

// Bar is one OHLCV observation.
type Bar struct {
	Date   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume int64
}

// Provider defines the upstream market-data source.
type Provider interface {
	Name() string

	// FetchInfo returns the fundamentals bundle for a symbol.
	FetchInfo(ctx context.Context, symbol string) (*Info, error)

	// FetchSnapshot returns the most recent daily bars, newest first.
	// Bars[0] is the latest session and Bars[1] the one before it.
	FetchSnapshot(ctx context.Context, symbol string) ([]Bar, error)

	// FetchHistory returns bars for a period/interval pair in
	// chronological order.
	FetchHistory(ctx context.Context, symbol, period, interval string) ([]Bar, error)
}

// Float returns a pointer to v, for building Info literals.
func Float(v float64) *float64 { return &v }
