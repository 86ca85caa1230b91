package yahoo

import "github.com/prasertk/stockd/internal/provider"

// Yahoo API response types.
//
// quoteSummary wraps every numeric value as {"raw": n, "fmt": "..."}; rawNumber
// keeps only the machine-readable half. An empty object means the value is
// missing, which decodes to a nil Raw.

type rawNumber struct {
	Raw *float64 `json:"raw"`
	Fmt string   `json:"fmt"`
}

func (n *rawNumber) value() *float64 {
	if n == nil {
		return nil
	}
	return n.Raw
}

func (n *rawNumber) date() *provider.DateValue {
	if n == nil {
		return nil
	}
	if n.Raw != nil {
		return provider.EpochDate(int64(*n.Raw))
	}
	if n.Fmt != "" {
		return provider.TextDate(n.Fmt)
	}
	return nil
}

type summaryResponse struct {
	QuoteSummary struct {
		Result []summaryResult `json:"result"`
		Error  *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"quoteSummary"`
}

type summaryResult struct {
	Price struct {
		RegularMarketPrice         *rawNumber `json:"regularMarketPrice"`
		RegularMarketPreviousClose *rawNumber `json:"regularMarketPreviousClose"`
		MarketCap                  *rawNumber `json:"marketCap"`
		ExchangeName               string     `json:"exchangeName"`
		Currency                   string     `json:"currency"`
		LongName                   string     `json:"longName"`
		ShortName                  string     `json:"shortName"`
	} `json:"price"`
	SummaryDetail struct {
		PreviousClose    *rawNumber `json:"previousClose"`
		ForwardPE        *rawNumber `json:"forwardPE"`
		TrailingPE       *rawNumber `json:"trailingPE"`
		DividendYield    *rawNumber `json:"dividendYield"`
		DividendRate     *rawNumber `json:"dividendRate"`
		ExDividendDate   *rawNumber `json:"exDividendDate"`
		PayoutRatio      *rawNumber `json:"payoutRatio"`
		FiftyTwoWeekHigh *rawNumber `json:"fiftyTwoWeekHigh"`
		FiftyTwoWeekLow  *rawNumber `json:"fiftyTwoWeekLow"`
		Beta             *rawNumber `json:"beta"`
	} `json:"summaryDetail"`
	DefaultKeyStatistics struct {
		TrailingEps *rawNumber `json:"trailingEps"`
		BookValue   *rawNumber `json:"bookValue"`
		PriceToBook *rawNumber `json:"priceToBook"`
	} `json:"defaultKeyStatistics"`
	FinancialData struct {
		CurrentPrice     *rawNumber `json:"currentPrice"`
		ReturnOnEquity   *rawNumber `json:"returnOnEquity"`
		ProfitMargins    *rawNumber `json:"profitMargins"`
		OperatingMargins *rawNumber `json:"operatingMargins"`
		DebtToEquity     *rawNumber `json:"debtToEquity"`
		CurrentRatio     *rawNumber `json:"currentRatio"`
		RevenueGrowth    *rawNumber `json:"revenueGrowth"`
		EarningsGrowth   *rawNumber `json:"earningsGrowth"`
	} `json:"financialData"`
	CalendarEvents struct {
		ExDividendDate *rawNumber `json:"exDividendDate"`
		DividendDate   *rawNumber `json:"dividendDate"`
	} `json:"calendarEvents"`
}

func (r *summaryResult) toInfo() *provider.Info {
	info := &provider.Info{
		CurrentPrice:       r.FinancialData.CurrentPrice.value(),
		RegularMarketPrice: r.Price.RegularMarketPrice.value(),
		Exchange:           r.Price.ExchangeName,
		Currency:           r.Price.Currency,
		LongName:           r.Price.LongName,
		ShortName:          r.Price.ShortName,
		MarketCap:          r.Price.MarketCap.value(),
		ForwardPE:          r.SummaryDetail.ForwardPE.value(),
		TrailingPE:         r.SummaryDetail.TrailingPE.value(),
		TrailingEPS:        r.DefaultKeyStatistics.TrailingEps.value(),
		BookValue:          r.DefaultKeyStatistics.BookValue.value(),
		PriceToBook:        r.DefaultKeyStatistics.PriceToBook.value(),
		DividendYield:      r.SummaryDetail.DividendYield.value(),
		DividendRate:       r.SummaryDetail.DividendRate.value(),
		PayoutRatio:        r.SummaryDetail.PayoutRatio.value(),
		FiftyTwoWeekHigh:   r.SummaryDetail.FiftyTwoWeekHigh.value(),
		FiftyTwoWeekLow:    r.SummaryDetail.FiftyTwoWeekLow.value(),
		Beta:               r.SummaryDetail.Beta.value(),
		ReturnOnEquity:     r.FinancialData.ReturnOnEquity.value(),
		ProfitMargin:       r.FinancialData.ProfitMargins.value(),
		OperatingMargin:    r.FinancialData.OperatingMargins.value(),
		DebtToEquity:       r.FinancialData.DebtToEquity.value(),
		CurrentRatio:       r.FinancialData.CurrentRatio.value(),
		RevenueGrowth:      r.FinancialData.RevenueGrowth.value(),
		EarningsGrowth:     r.FinancialData.EarningsGrowth.value(),
	}

	info.PreviousClose = r.SummaryDetail.PreviousClose.value()
	if info.PreviousClose == nil {
		info.PreviousClose = r.Price.RegularMarketPreviousClose.value()
	}

	info.ExDividendDate = r.SummaryDetail.ExDividendDate.date()
	if info.ExDividendDate == nil {
		info.ExDividendDate = r.CalendarEvents.ExDividendDate.date()
	}
	info.DividendDate = r.CalendarEvents.DividendDate.date()

	return info
}

type chartResponse struct {
	Chart struct {
		Result []chartResult `json:"result"`
		Error  *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

type chartResult struct {
	Timestamp  []int      `json:"timestamp"`
	Indicators indicators `json:"indicators"`
}

type indicators struct {
	Quote []quoteIndicator `json:"quote"`
}

type quoteIndicator struct {
	Open   []*float64 `json:"open"`
	High   []*float64 `json:"high"`
	Low    []*float64 `json:"low"`
	Close  []*float64 `json:"close"`
	Volume []*int     `json:"volume"`
}
