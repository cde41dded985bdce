package dto

import "github.com/shopspring/decimal"

// ParseRequest is the single entry contract of the parsing core. Document
// holds the raw file bytes; the caller owns reading them from wherever the
// upload landed.
type ParseRequest struct {
	Document   []byte
	Password   string
	Issuer     IssuerType
	SourceFile string
	MemberID   *int64
}

// ParseResult is everything the core hands back: accepted holdings, the
// quarantined duplicate stream, and the total over accepted valuations only.
// Persisting both streams is the caller's job.
type ParseResult struct {
	Holdings   []Holding         `json:"holdings"`
	Duplicates []DuplicateRecord `json:"duplicates,omitempty"`
	TotalValue decimal.Decimal   `json:"total_value"`
}
