package core

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestQuote_ErrorOmittedOnSuccess(t *testing.T) {
	q := Quote{Symbol: "AAPL", CurrentPrice: 189.5, Success: true}

	data, err := json.Marshal(q)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if strings.Contains(string(data), `"error"`) {
		t.Error("success record should not carry an error field")
	}
}

func TestQuote_ErrorPresentOnFallback(t *testing.T) {
	q := Quote{Symbol: "XYZ", CurrentPrice: 100.0, Success: false, Error: "no provider data"}

	data, err := json.Marshal(q)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if !strings.Contains(string(data), `"error":"no provider data"`) {
		t.Errorf("fallback record should carry the error field, got %s", data)
	}
}

func TestQuote_NullableFieldsSerializeAsNull(t *testing.T) {
	q := Quote{Symbol: "AAPL"}

	data, err := json.Marshal(q)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	for _, field := range []string{`"ex_dividend_date":null`, `"dividend_date":null`, `"payout_ratio":null`} {
		if !strings.Contains(string(data), field) {
			t.Errorf("expected %s in output, got %s", field, data)
		}
	}
}

func TestQuote_SnakeCaseSchema(t *testing.T) {
	q := Quote{Symbol: "PTT.BK", CurrentPrice: 35.0, WeekHigh52: 45.5}

	data, err := json.Marshal(q)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	for _, field := range []string{`"current_price"`, `"company_name"`, `"open_price"`, `"week_high_52"`, `"week_low_52"`} {
		if !strings.Contains(string(data), field) {
			t.Errorf("expected %s in output", field)
		}
	}
}
