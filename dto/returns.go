package dto

import "time"

// TrailingReturns holds annualized trailing returns for one scheme, as
// reported by the quote provider. Pointers distinguish "not reported" from
// zero.
type TrailingReturns struct {
	ISIN     string     `json:"isin"`
	OneYear  *float64   `json:"1y"`
	ThreeYr  *float64   `json:"3y"`
	FiveYr   *float64   `json:"5y"`
	TenYr    *float64   `json:"10y"`
	Currency string     `json:"currency"`
	AsOfDate *time.Time `json:"as_of_date,omitempty"`
}
