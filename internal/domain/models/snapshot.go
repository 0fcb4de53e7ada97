package models

import (
	"encoding/json"
	"time"
)

// OptionalFloat is a numeric field that may be absent. Absence is explicit:
// a missing value never degrades to zero. JSON renders invalid values as null.
type OptionalFloat struct {
	Value float64
	Valid bool
}

// Float returns a present OptionalFloat.
func Float(v float64) OptionalFloat {
	return OptionalFloat{Value: v, Valid: true}
}

// FloatPtr converts a provider pointer field; nil means missing.
func FloatPtr(p *float64) OptionalFloat {
	if p == nil {
		return OptionalFloat{}
	}
	return OptionalFloat{Value: *p, Valid: true}
}

func (o OptionalFloat) MarshalJSON() ([]byte, error) {
	if !o.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

func (o *OptionalFloat) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*o = OptionalFloat{}
		return nil
	}
	if err := json.Unmarshal(data, &o.Value); err != nil {
		return err
	}
	o.Valid = true
	return nil
}

// RawMarketSnapshot is the provider response for one ticker at one point in
// time. Immutable once fetched; owned exclusively by the pipeline run that
// produced it.
type RawMarketSnapshot struct {
	Ticker         string        `json:"ticker"`
	Name           string        `json:"name,omitempty"`
	Source         string        `json:"source"`
	Price          OptionalFloat `json:"price"`
	TrailingPE     OptionalFloat `json:"trailing_pe"`
	ForwardPE      OptionalFloat `json:"forward_pe"`
	EVToEBITDA     OptionalFloat `json:"ev_to_ebitda"`
	ReturnOnEquity OptionalFloat `json:"return_on_equity"`
	DebtToEquity   OptionalFloat `json:"debt_to_equity"`
	ProfitMargin   OptionalFloat `json:"profit_margin"`
	NetIncome      OptionalFloat `json:"net_income"`
	TotalRevenue   OptionalFloat `json:"total_revenue"`
	EPS            OptionalFloat `json:"eps"`
	EarningsGrowth OptionalFloat `json:"earnings_growth"`
	RevenueGrowth  OptionalFloat `json:"revenue_growth"`
	MarketCap      OptionalFloat `json:"market_cap"`
	Beta           OptionalFloat `json:"beta"`
	DividendYield  OptionalFloat `json:"dividend_yield"`
	Sector         string        `json:"sector,omitempty"`
	Industry       string        `json:"industry,omitempty"`
	RetrievedAt    time.Time     `json:"retrieved_at"`
}

// HasSector reports whether sector context is available for enrichment.
func (s *RawMarketSnapshot) HasSector() bool {
	return s != nil && s.Sector != ""
}
