package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pms-portfolio/ecas-parser/dto"
)

func TestCleanFundName(t *testing.T) {
	tests := []struct {
		in    string
		htype dto.InstrumentType
		want  string
	}{
		{"HDFC Flexi Cap Fund # INF179K01158", dto.InstrumentMutualFund, "HDFC Flexi Cap Fund"},
		{" SBI  Magnum   Fund of 2025 Series", dto.InstrumentMutualFund, "SBI Magnum Fund"},
		{"UTI Nifty Index Fund 0f UTI AMC", dto.InstrumentMutualFund, "UTI Nifty Index Fund"},
		{"Axis Bluechip Fund - ", dto.InstrumentMutualFund, "Axis Bluechip Fund"},
		{"", dto.InstrumentMutualFund, ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CleanFundName(tt.in, tt.htype), tt.in)
	}
}

// Government securities keep their full descriptive name, even across the
// " of " boilerplate marker.
func TestCleanFundNameGovtBypass(t *testing.T) {
	got := CleanFundName("6.54%  Government of India   2032", dto.InstrumentGovtSecurity)
	assert.Equal(t, "6.54% Government of India 2032", got)

	got = CleanFundName("7.26% GOVT STOCK of 2033", dto.InstrumentCorporateBond)
	assert.Equal(t, "7.26% GOVT STOCK of 2033", got)
}

func TestExtractAMCName(t *testing.T) {
	normalizer := DefaultNameNormalizer()

	tests := []struct {
		in   string
		want string
	}{
		// Known issuer inside the name, plan qualifiers stripped first.
		{"Mirae Asset Large Cap Fund Direct Growth", "MIRAE ASSET"},
		{"ICICI Prudential Value Discovery Fund", "ICICI PRUDENTIAL"},
		// Scheme-code prefix: the real name sits after the first dash.
		{"D464D - SBI Small Cap Fund", "SBI"},
		// Unknown issuer, tokens before FUND are not stop words.
		{"ACME CAPITAL FUND", "ACME CAPITAL"},
		// Tokens before FUND are all stop words, first alpha token wins.
		{"FOO SMALL CAP FUND", "FOO"},
		// No FUND token at all.
		{"Bharat Bond ETF", "BHARAT"},
		{"", "OTHERS"},
		{"123 456", "OTHERS"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, normalizer.ExtractAMCName(tt.in), tt.in)
	}
}

// Longest AMC name wins: "MIRAE ASSET" must not lose to a shorter issuer
// that happens to be a substring of the scheme name.
func TestExtractAMCNameLongestFirst(t *testing.T) {
	normalizer := NewNameNormalizer(
		[]string{"AXIS", "AXIS SECURITIES"},
		DefaultStopWords,
		DefaultJunkPhrases,
	)
	assert.Equal(t, "AXIS SECURITIES", normalizer.ExtractAMCName("Axis Securities Nifty Fund"))
}

func TestExtractAMCNameDeterministic(t *testing.T) {
	normalizer := DefaultNameNormalizer()
	first := normalizer.ExtractAMCName("Parag Parikh Flexi Cap Fund Direct Growth")
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, normalizer.ExtractAMCName("Parag Parikh Flexi Cap Fund Direct Growth"))
	}
	assert.Equal(t, "PARAG PARIKH", first)
}
