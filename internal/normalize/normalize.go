// Package normalize reshapes partially-missing provider responses into the
// stable external schema. Callers always get a well-formed Quote: when the
// provider yields nothing usable the record is a deterministic fallback
// derived from the symbol alone.
package normalize

import (
	"strings"
	"time"

	"github.com/prasertk/stockd/internal/core"
	"github.com/prasertk/stockd/internal/provider"
)

// Field defaults applied when the provider omits a value. The dashboard's
// analysis scoring assumes these exact numbers.
const (
	defaultPERatio         = 15.0
	defaultDividendYield   = 0.03
	defaultPriceToBook     = 1.5
	fallbackPriceToBook    = 1.25
	defaultBeta            = 1.0
	defaultROE             = 0.15
	defaultProfitMargin    = 0.15
	defaultOperatingMargin = 0.20
	defaultDebtToEquity    = 0.5
	defaultCurrentRatio    = 2.0
	defaultGrowth          = 0.1

	thaiFallbackPrice = 10.0
	usFallbackPrice   = 100.0
)

// IsThai reports whether a ticker is Thai-classified: it contains ".BK" or
// ".SET" case-insensitively. The same rule drives market, currency and the
// fallback base price on both the success and fallback paths.
func IsThai(symbol string) bool {
	s := strings.ToUpper(symbol)
	return strings.Contains(s, ".BK") || strings.Contains(s, ".SET")
}

// Normalize builds a Quote from a provider info bundle and recent daily bars
// (newest first). A missing bundle, an empty series or an unusable price all
// route to the fallback record; Normalize never fails.
func Normalize(symbol string, info *provider.Info, bars []provider.Bar) core.Quote {
	if info == nil {
		return BuildFallback(symbol, "no provider data")
	}
	if len(bars) == 0 {
		return BuildFallback(symbol, "no price data available")
	}

	latest := bars[0]

	currentPrice, ok := resolvePrice(info, latest)
	if !ok {
		return BuildFallback(symbol, "no price data")
	}

	previousClose := currentPrice
	switch {
	case info.PreviousClose != nil:
		previousClose = *info.PreviousClose
	case len(bars) > 1:
		previousClose = bars[1].Close
	}

	change := currentPrice - previousClose
	changePercent := 0.0
	if previousClose > 0 {
		changePercent = change / previousClose * 100
	}

	market, currency := classify(symbol, info)

	peRatio := firstNonzero(info.ForwardPE, info.TrailingPE, defaultPERatio)
	eps := nonzeroOr(info.TrailingEPS, currentPrice/peRatio)
	dividendYield := orDefault(info.DividendYield, defaultDividendYield)

	return core.Quote{
		Symbol:          symbol,
		CompanyName:     companyName(symbol, info),
		Market:          market,
		Currency:        currency,
		CurrentPrice:    currentPrice,
		PreviousClose:   previousClose,
		Change:          change,
		ChangePercent:   changePercent,
		OpenPrice:       latest.Open,
		DayHigh:         latest.High,
		DayLow:          latest.Low,
		Volume:          latest.Volume,
		MarketCap:       orDefault(info.MarketCap, currentPrice*1_000_000_000),
		PERatio:         peRatio,
		EPS:             eps,
		DividendYield:   dividendYield,
		DividendRate:    orDefault(info.DividendRate, currentPrice*dividendYield),
		ExDividendDate:  formatDate(info.ExDividendDate),
		DividendDate:    formatDate(info.DividendDate),
		PayoutRatio:     info.PayoutRatio,
		BookValue:       orDefault(info.BookValue, currentPrice*0.8),
		PriceToBook:     orDefault(info.PriceToBook, defaultPriceToBook),
		WeekHigh52:      orDefault(info.FiftyTwoWeekHigh, currentPrice*1.3),
		WeekLow52:       orDefault(info.FiftyTwoWeekLow, currentPrice*0.7),
		Beta:            orDefault(info.Beta, defaultBeta),
		ROE:             orDefault(info.ReturnOnEquity, defaultROE),
		ProfitMargin:    orDefault(info.ProfitMargin, defaultProfitMargin),
		OperatingMargin: orDefault(info.OperatingMargin, defaultOperatingMargin),
		DebtToEquity:    orDefault(info.DebtToEquity, defaultDebtToEquity),
		CurrentRatio:    orDefault(info.CurrentRatio, defaultCurrentRatio),
		RevenueGrowth:   orDefault(info.RevenueGrowth, defaultGrowth),
		EarningsGrowth:  orDefault(info.EarningsGrowth, defaultGrowth),
		LastUpdated:     time.Now().UTC().Format(time.RFC3339),
		Success:         true,
	}
}

// BuildFallback builds the synthetic placeholder record for a symbol. Apart
// from LastUpdated the output is a pure function of symbol and reason.
func BuildFallback(symbol, reason string) core.Quote {
	price := usFallbackPrice
	market, currency := "NASDAQ", "USD"
	if IsThai(symbol) {
		price = thaiFallbackPrice
		market, currency = "SET", "THB"
	}

	return core.Quote{
		Symbol:          symbol,
		CompanyName:     symbol,
		Market:          market,
		Currency:        currency,
		CurrentPrice:    price,
		PreviousClose:   price,
		Change:          0,
		ChangePercent:   0,
		OpenPrice:       price,
		DayHigh:         price * 1.02,
		DayLow:          price * 0.98,
		Volume:          0,
		MarketCap:       price * 1_000_000_000,
		PERatio:         defaultPERatio,
		EPS:             price / defaultPERatio,
		DividendYield:   defaultDividendYield,
		DividendRate:    price * defaultDividendYield,
		BookValue:       price * 0.8,
		PriceToBook:     fallbackPriceToBook,
		WeekHigh52:      price * 1.3,
		WeekLow52:       price * 0.7,
		Beta:            defaultBeta,
		ROE:             defaultROE,
		ProfitMargin:    defaultProfitMargin,
		OperatingMargin: defaultOperatingMargin,
		DebtToEquity:    defaultDebtToEquity,
		CurrentRatio:    defaultCurrentRatio,
		RevenueGrowth:   defaultGrowth,
		EarningsGrowth:  defaultGrowth,
		LastUpdated:     time.Now().UTC().Format(time.RFC3339),
		Success:         false,
		Error:           reason,
	}
}

// History maps provider bars (chronological) onto the external series. There
// is no fallback series: an empty input is a hard failure.
func History(bars []provider.Bar) ([]core.HistoryPoint, error) {
	if len(bars) == 0 {
		return nil, core.ErrNoHistoryData
	}

	points := make([]core.HistoryPoint, 0, len(bars))
	for _, b := range bars {
		points = append(points, core.HistoryPoint{
			Date:   b.Date.Format("2006-01-02"),
			Open:   b.Open,
			High:   b.High,
			Low:    b.Low,
			Close:  b.Close,
			Volume: b.Volume,
		})
	}
	return points, nil
}

// resolvePrice walks the price cascade: currentPrice, regularMarketPrice,
// previousClose, then the most recent close. Only positive values are usable.
func resolvePrice(info *provider.Info, latest provider.Bar) (float64, bool) {
	for _, p := range []*float64{info.CurrentPrice, info.RegularMarketPrice, info.PreviousClose} {
		if p != nil && *p > 0 {
			return *p, true
		}
	}
	if latest.Close > 0 {
		return latest.Close, true
	}
	return 0, false
}

func classify(symbol string, info *provider.Info) (market, currency string) {
	if IsThai(symbol) {
		return "SET", "THB"
	}
	market = info.Exchange
	if market == "" {
		market = "NASDAQ"
	}
	currency = info.Currency
	if currency == "" {
		currency = "USD"
	}
	return market, currency
}

func companyName(symbol string, info *provider.Info) string {
	if info.LongName != "" {
		return info.LongName
	}
	if info.ShortName != "" {
		return info.ShortName
	}
	return symbol
}

// formatDate renders a provider date as YYYY-MM-DD: epoch values are
// converted, preformatted strings pass through, absent values stay nil.
func formatDate(d *provider.DateValue) *string {
	if d == nil {
		return nil
	}
	if d.Epoch != nil {
		s := time.Unix(*d.Epoch, 0).UTC().Format("2006-01-02")
		return &s
	}
	if d.Text != "" {
		s := d.Text
		return &s
	}
	return nil
}

func orDefault(v *float64, def float64) float64 {
	if v != nil {
		return *v
	}
	return def
}

// firstNonzero picks the first pointer holding a nonzero value, else def.
// Only nil and zero fall through: a negative value is reported data (a
// loss-making company) and passes through unchanged.
func firstNonzero(a, b *float64, def float64) float64 {
	if a != nil && *a != 0 {
		return *a
	}
	if b != nil && *b != 0 {
		return *b
	}
	return def
}

// nonzeroOr returns *v unless it is nil or zero.
func nonzeroOr(v *float64, def float64) float64 {
	if v != nil && *v != 0 {
		return *v
	}
	return def
}
