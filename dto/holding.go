package dto

import "github.com/shopspring/decimal"

type IssuerType string

const (
	IssuerNSDL IssuerType = "NSDL"
	IssuerCDSL IssuerType = "CDSL"
	IssuerCAMS IssuerType = "CAMS"
)

type InstrumentType string

const (
	InstrumentMutualFund      InstrumentType = "Mutual Fund"
	InstrumentMutualFundFolio InstrumentType = "Mutual Fund Folio"
	InstrumentEquity          InstrumentType = "Equity"
	InstrumentGovtSecurity    InstrumentType = "Govt Security"
	InstrumentCorporateBond   InstrumentType = "Corporate Bond"
	InstrumentNPS             InstrumentType = "NPS"
)

// Holding is one normalized position recovered from a statement. ISIN may
// carry a synthetic "_n" suffix for repeated folios of the same scheme; NPS
// holdings have no ISIN at all.
type Holding struct {
	Type           InstrumentType  `json:"type"`
	FundName       string          `json:"fund_name"`
	ISIN           string          `json:"isin_no,omitempty"`
	FolioNo        string          `json:"folio_no,omitempty"`
	Units          decimal.Decimal `json:"units"`
	NAV            decimal.Decimal `json:"nav"`
	InvestedAmount decimal.Decimal `json:"invested_amount"`
	Valuation      decimal.Decimal `json:"valuation"`
	Category       string          `json:"category"`
	SubCategory    string          `json:"sub_category"`
	SourceFile     string          `json:"source_file,omitempty"`
	MemberID       *int64          `json:"member_id,omitempty"`
}

// DuplicateRecord is a holding diverted by the dedup engine. It keeps the
// full holding metadata so the caller can audit it; it is never merged back
// into the accepted stream.
type DuplicateRecord struct {
	Holding
	FileType IssuerType `json:"file_type"`
}
