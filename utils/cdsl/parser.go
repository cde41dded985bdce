// Package cdsl extracts holdings from CDSL consolidated account statements.
// CDSL statements flatten into one whitespace-collapsed blob, so both
// patterns anchor on the ISIN and a fixed run of trailing decimals rather
// than on line structure.
package cdsl

import (
	"regexp"
	"strings"

	"github.com/pms-portfolio/ecas-parser/dto"
	"github.com/pms-portfolio/ecas-parser/utils"
)

var (
	// Scheme name, "Fund" anchor, ISIN, up to 3 scheme-code tokens, then
	// units / nav / invested / valuation.
	mfPattern = regexp.MustCompile(`(?i)([A-Za-z0-9&\-\(\)/ ]+?Fund[^\n\r]{0,80}?)\s+(INF[0-9A-Z]{9})(?:\s+[A-Z0-9/\-]+){0,3}\s+([\d,]+\.\d+)\s+([\d,]+\.\d+)\s+([\d,]+\.\d+)\s+([\d,]+\.\d+)`)

	// ISIN, company name, 0-6 ignored numeric columns, units / nav / value.
	eqPattern = regexp.MustCompile(`(?i)(INE[0-9A-Z]{9})\s+([A-Za-z0-9#&\-\(\)\.,\s]+?)\s+(?:[\d\.\-]+\s+){0,6}?([\d,]+\.\d+)\s+([\d,]+\.\d+)\s+([\d,]+\.\d+)`)

	invisibleRe    = regexp.MustCompile("[\u00A0\u200B\u200C\u200D\uFEFF]")
	fancyDashRe    = regexp.MustCompile("[–—−]")
	nonPrintableRe = regexp.MustCompile(`[^\x20-\x7E]`)
	multiSpaceRe   = regexp.MustCompile(`\s{2,}`)
	lineBreakRe    = regexp.MustCompile(`\s*\n\s*`)

	// ") Regular Direct terms - in INR) D464D - SBI..." → "D464D - SBI...".
	strayParenRe = regexp.MustCompile(`^[^)]*\)\s*(\w)`)
	ecasPrefixRe = regexp.MustCompile(`(?i)^\s*(?:regular\s+direct\s*terms?|regular\s*terms?|direct\s*terms?|regular\s+direct|regular|direct)\s*[-:;()]*\s*(?:in\s*inr\)*)?\s*`)
	pnlPrefixRe  = regexp.MustCompile(`(?i)^\s*profit\s*/?\s*loss\s*inr\)?\s*`)

	// Leading row numbers go, scheme codes stay: "48 D033 -" → "D033 -".
	rowNumberRe = regexp.MustCompile(`^\s*\d{1,3}\s+([A-Z0-9]{2,10}\s*-)`)

	planSuffixRe   = regexp.MustCompile(`(?i)\s+-?\s*(?:direct|regular)\b.*$`)
	optionSuffixRe = regexp.MustCompile(`(?i)\s+-?\s*(?:growth|idcw|dividend)\s*(?:option|plan)?\s*$`)

	leadingPunctRe  = regexp.MustCompile(`^[\s\)\(\-_:;|.,#']+`)
	trailingPunctRe = regexp.MustCompile(`[\s\-\(\):;|.,#']+$`)
)

// cleanSchemeName runs the CDSL boilerplate gauntlet: invisible Unicode,
// fancy dashes, split lines, leading "Regular Direct terms - in INR)"
// prefixes, row numbers and trailing plan/option qualifiers.
func cleanSchemeName(name string) string {
	name = invisibleRe.ReplaceAllString(name, " ")
	name = fancyDashRe.ReplaceAllString(name, "-")
	name = nonPrintableRe.ReplaceAllString(name, "")

	name = lineBreakRe.ReplaceAllString(name, " ")
	name = strings.TrimSpace(multiSpaceRe.ReplaceAllString(name, " "))

	name = strayParenRe.ReplaceAllString(name, "$1")
	name = ecasPrefixRe.ReplaceAllString(strings.TrimSpace(name), "")
	name = pnlPrefixRe.ReplaceAllString(strings.TrimSpace(name), "")
	name = rowNumberRe.ReplaceAllString(name, "$1")

	name = planSuffixRe.ReplaceAllString(name, "")
	name = optionSuffixRe.ReplaceAllString(name, "")

	name = leadingPunctRe.ReplaceAllString(name, "")
	name = trailingPunctRe.ReplaceAllString(name, "")
	return strings.TrimSpace(multiSpaceRe.ReplaceAllString(name, " "))
}

// ParseText extracts mutual fund and equity holdings from collapsed CDSL
// statement text. The printed "Total Portfolio Value" footer is never
// trusted; the caller recomputes totals from parsed valuations.
func ParseText(text string) []dto.Holding {
	var holdings []dto.Holding

	for _, m := range mfPattern.FindAllStringSubmatch(text, -1) {
		fundName := cleanSchemeName(m[1])
		category, subCategory := utils.ClassifyInstrument(fundName)
		holdings = append(holdings, dto.Holding{
			Type:           dto.InstrumentMutualFund,
			FundName:       fundName,
			ISIN:           strings.TrimSpace(m[2]),
			Units:          utils.ParseAmount(m[3]),
			NAV:            utils.ParseAmount(m[4]),
			InvestedAmount: utils.ParseAmount(m[5]),
			Valuation:      utils.ParseAmount(m[6]),
			Category:       category,
			SubCategory:    subCategory,
		})
	}

	for _, m := range eqPattern.FindAllStringSubmatch(text, -1) {
		company := m[2]
		if strings.Contains(strings.ToLower(company), "portfolio value") {
			continue
		}
		company = leadingPunctRe.ReplaceAllString(strings.TrimSpace(company), "")
		company = trailingPunctRe.ReplaceAllString(company, "")
		company = strings.TrimSpace(multiSpaceRe.ReplaceAllString(company, " "))

		units := utils.ParseAmount(m[3])
		nav := utils.ParseAmount(m[4])
		value := utils.ParseAmount(m[5])

		// Column misalignment puts the market value in the NAV slot.
		if nav.GreaterThan(value) {
			nav, value = value, nav
		}
		if value.IsZero() && !units.IsZero() && !nav.IsZero() {
			value = units.Mul(nav).Round(2)
		}

		holdings = append(holdings, dto.Holding{
			Type:        dto.InstrumentEquity,
			FundName:    company,
			ISIN:        strings.TrimSpace(m[1]),
			Units:       units,
			NAV:         nav,
			Valuation:   value,
			Category:    "Equity",
			SubCategory: "Shares",
		})
	}

	return holdings
}
