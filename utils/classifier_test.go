package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyInstrument(t *testing.T) {
	tests := []struct {
		name        string
		category    string
		subCategory string
	}{
		{"SBI Small Cap Fund", "Equity", "Small Cap"},
		{"HDFC Flexi Cap Fund", "Equity", "Flexi Cap"},
		{"Mirae Asset Large Cap Fund", "Equity", "Large Cap"},
		{"Axis Bluechip Fund", "Equity", "Large Cap"},
		{"Kotak Emerging Equity Mid Cap Fund", "Equity", "Mid Cap"},
		{"Axis Long Term Equity ELSS Fund", "Equity", "ELSS"},
		{"Parag Parikh Tax Saver Fund", "Equity", "ELSS"},
		{"SBI Focused Equity Fund", "Equity", "Focused"},
		{"Invesco India Contra Fund", "Equity", "Contra"},
		{"ICICI Prudential Value Discovery Fund", "Equity", "Value"},
		{"UTI Dividend Yield Fund", "Equity", "Dividend Yield"},
		{"Nippon India Pharma Fund", "Equity", "Sectoral - Pharma & Healthcare"},
		{"ICICI Prudential Technology Fund", "Equity", "Sectoral - Technology"},
		{"SBI PSU Bank Fund", "Equity", "Sectoral - Banking & Financial Services"},
		{"UTI Nifty 50 Index Fund", "Equity", "Index"},
		{"Kotak Equity Arbitrage Fund", "Hybrid", "Arbitrage"},
		{"HDFC Balanced Advantage Fund", "Hybrid", "Balanced Advantage"},
		{"ICICI Prudential Multi Asset Fund", "Hybrid", "Multi Asset Allocation"},
		{"SBI Equity Savings Fund", "Hybrid", "Equity Savings"},
		{"SBI Liquid Fund", "Debt", "Liquid"},
		{"HDFC Overnight Fund", "Debt", "Overnight"},
		{"Axis Money Market Fund", "Debt", "Money Market"},
		{"SBI Magnum Gilt Fund", "Debt", "Gilt"},
		{"HDFC Corporate Bond Fund", "Debt", "Corporate Bond"},
		{"Nippon India Floating Rate Fund", "Debt", "Floating Rate"},
		{"SBI Gold Fund", "Commodity", "Gold"},
		{"ICICI Prudential Silver ETF", "Commodity", "Silver"},
		{"Embassy Office Parks REIT", "Alternative", "REIT / InvIT"},
		{"Motilal Oswal S&P 500 Fund", "International", "US Focused"},
		{"TATA STEEL LIMITED", "Unclassified", "Unknown"},
	}

	for _, tt := range tests {
		category, subCategory := ClassifyInstrument(tt.name)
		assert.Equal(t, tt.category, category, tt.name)
		assert.Equal(t, tt.subCategory, subCategory, tt.name)
	}
}

// Rule order is part of the contract: market-cap tiers outrank the sectoral
// table, the sectoral table outranks the debt ladder.
func TestClassifyInstrumentOrder(t *testing.T) {
	category, subCategory := ClassifyInstrument("SBI Banking & Financial Services Small Cap Fund")
	assert.Equal(t, "Equity", category)
	assert.Equal(t, "Small Cap", subCategory)

	category, subCategory = ClassifyInstrument("Axis Banking & PSU Debt Fund")
	assert.Equal(t, "Equity", category)
	assert.Equal(t, "Sectoral - Banking & Financial Services", subCategory)
}

// ClassifyInstrument is total: any non-empty name gets a taxonomy pair and
// only genuinely unmatchable names hit the terminal rule.
func TestClassifyInstrumentTotality(t *testing.T) {
	names := []string{
		"",
		"   ",
		"xyzzy",
		"9876",
		"Some Completely Unknown Scheme",
		"growth opportunities",
	}
	for _, name := range names {
		category, subCategory := ClassifyInstrument(name)
		assert.NotEmpty(t, category, name)
		assert.NotEmpty(t, subCategory, name)
	}

	category, subCategory := ClassifyInstrument("xyzzy")
	assert.Equal(t, "Unclassified", category)
	assert.Equal(t, "Unknown", subCategory)

	// Word-level fallback: "growth" alone signals equity.
	category, subCategory = ClassifyInstrument("growth opportunities")
	assert.Equal(t, "Equity", category)
	assert.Equal(t, "Diversified", subCategory)
}
