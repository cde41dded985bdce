package cdsl

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pms-portfolio/ecas-parser/dto"
)

func TestParseTextMutualFund(t *testing.T) {
	text := `Scheme Name: SBI Small Cap Fund Direct Growth INF200K01XXX 50.000 200.00 9000.00 10000.00`

	holdings := ParseText(text)
	assert.Len(t, holdings, 1)

	h := holdings[0]
	assert.Equal(t, dto.InstrumentMutualFund, h.Type)
	assert.Equal(t, "SBI Small Cap Fund", h.FundName)
	assert.Equal(t, "INF200K01XXX", h.ISIN)
	assert.Equal(t, "50", h.Units.String())
	assert.Equal(t, "200", h.NAV.String())
	assert.Equal(t, "9000", h.InvestedAmount.String())
	assert.Equal(t, "10000", h.Valuation.String())
	assert.Equal(t, "Equity", h.Category)
	assert.Equal(t, "Small Cap", h.SubCategory)
}

func TestParseTextMutualFundSchemeCode(t *testing.T) {
	text := `Scheme Name: HDFC Flexi Cap Fund INF179K01158 D033 100.000 105.00 10000.00 10500.00`

	holdings := ParseText(text)
	assert.Len(t, holdings, 1)
	assert.Equal(t, "HDFC Flexi Cap Fund", holdings[0].FundName)
	assert.Equal(t, "INF179K01158", holdings[0].ISIN)
	assert.Equal(t, "Flexi Cap", holdings[0].SubCategory)
}

// Statement boilerplate glued in front of the scheme name: stray closing
// paren, row number and scheme code. The code stays, the rest goes.
func TestParseTextSchemeNameGauntlet(t *testing.T) {
	text := `in INR) 48 D033 - SBI Small Cap Fund INF200K01XXX 50.000 200.00 9000.00 10000.00`

	holdings := ParseText(text)
	assert.Len(t, holdings, 1)
	assert.Equal(t, "D033 - SBI Small Cap Fund", holdings[0].FundName)
	assert.Equal(t, "Small Cap", holdings[0].SubCategory)
}

// Invisible Unicode (NBSP, zero-width space) glued into the scheme name by
// the PDF text layer is scrubbed before classification.
func TestParseTextCleansInvisibleCharacters(t *testing.T) {
	text := "Scheme Name: SBI Small Cap Fund\u00A0Direct\u200BGrowth INF200K01XXX 50.000 200.00 9000.00 10000.00"

	holdings := ParseText(text)
	assert.Len(t, holdings, 1)
	assert.Equal(t, "SBI Small Cap Fund", holdings[0].FundName)
	assert.Equal(t, "Small Cap", holdings[0].SubCategory)
}

func TestParseTextEquity(t *testing.T) {
	text := `INE040A01034 HDFC BANK LIMITED 10.000 1500.00 15000.00`

	holdings := ParseText(text)
	assert.Len(t, holdings, 1)

	h := holdings[0]
	assert.Equal(t, dto.InstrumentEquity, h.Type)
	assert.Equal(t, "HDFC BANK LIMITED", h.FundName)
	assert.Equal(t, "INE040A01034", h.ISIN)
	assert.Equal(t, "10", h.Units.String())
	assert.Equal(t, "1500", h.NAV.String())
	assert.Equal(t, "15000", h.Valuation.String())
	assert.Equal(t, "Equity", h.Category)
	assert.Equal(t, "Shares", h.SubCategory)
}

// Misaligned columns put the market value where the NAV belongs.
func TestParseTextEquitySwapsNAVAndValue(t *testing.T) {
	text := `INE040A01034 HDFC BANK LIMITED 10.000 15000.00 1500.00`

	holdings := ParseText(text)
	assert.Len(t, holdings, 1)
	assert.Equal(t, "1500", holdings[0].NAV.String())
	assert.Equal(t, "15000", holdings[0].Valuation.String())
}

func TestParseTextSkipsPortfolioFooter(t *testing.T) {
	text := `INE999999999 TOTAL PORTFOLIO VALUE 100.00 200.00 300.00`
	assert.Empty(t, ParseText(text))
}

func TestParseTextMixed(t *testing.T) {
	text := `Scheme Name: SBI Small Cap Fund Direct Growth INF200K01XXX 50.000 200.00 9000.00 10000.00
INE040A01034 HDFC BANK LIMITED 10.000 1500.00 15000.00`

	holdings := ParseText(text)
	assert.Len(t, holdings, 2)
	assert.Equal(t, dto.InstrumentMutualFund, holdings[0].Type)
	assert.Equal(t, dto.InstrumentEquity, holdings[1].Type)
}
