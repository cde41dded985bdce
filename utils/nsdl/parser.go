// Package nsdl extracts holdings from NSDL consolidated account statements.
// NSDL statements are parsed from the whole-document text: every instrument
// class has its own regex family, tried most-constrained-first because the
// column count drifts across statement revisions.
package nsdl

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/pms-portfolio/ecas-parser/dto"
	"github.com/pms-portfolio/ecas-parser/utils"
)

const (
	numTok      = `[\d,]+\.?\d*`
	numTokStr   = `[\d,]+(?:\.\d+)?`
	mixedName   = `[A-Za-z0-9\s\-\&\.\(\)\/#]+?`
	secName     = `[A-Za-z0-9\-\&\.\s#/\(\)%]+?`
	decimalsTok = `[\d,]+\.\d+`
)

// Each family lists its variants most-constrained-first; once a variant has
// claimed a row, wider fallbacks skip it. The fallbacks only exist for older
// column layouts.
var equityPatterns = []*regexp.Regexp{
	// Current layout: nine pledge/lock-in columns between units and NAV.
	regexp.MustCompile(`(?i)(IN[E0-9][A-Z0-9]{9,})\s+([A-Z0-9&\-\.\s#/\(\)]+?)\s+(` + numTok + `)` +
		strings.Repeat(`\s+`+numTok, 9) + `\s+(` + numTok + `)\s+(` + numTok + `)`),
	regexp.MustCompile(`(?i)(IN[E0-9][A-Z0-9]{9,})\s+([A-Z0-9&\-\.\s#/\(\)]+?)\s+(` + numTok + `)(?:\s+` + numTok + `){2,}\s+(` + numTok + `)\s+(` + numTok + `)`),
	regexp.MustCompile(`(?i)(IN[E0-9][A-Z0-9]{9,})\s+(` + mixedName + `)\s+(` + numTokStr + `)(?:\s+` + numTokStr + `){2,8}\s+(` + numTokStr + `)\s+(` + numTokStr + `)`),
}

// Folio rows carry a folio number plus cost columns. The nine-group variant
// covers statements that append two trailing columns; group count tells the
// layouts apart.
var folioPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(INF[A-Z0-9]{9,})\s+(?:NOT AVAILABLE\s+)?(` + mixedName + `(?:Fund|Scheme|Plan)[^\n]*?)\s+[\d,]+\s+(` + numTok + `)\s+(` + numTok + `)\s+(` + numTok + `)\s+(` + numTok + `)\s+(` + numTok + `)\s+(` + numTok + `)\s+(` + numTok + `)`),
	regexp.MustCompile(`(?i)(INF[A-Z0-9]{9,})\s+(?:NOT AVAILABLE\s+)?(` + mixedName + `)\s+[\d,]+\s+(` + numTok + `)\s+(` + numTok + `)\s+(` + numTok + `)\s+(` + numTok + `)\s+(` + numTok + `)`),
}

var mfPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(INF[A-Z0-9]{9,})\s+(` + mixedName + `(?:MUTUAL FUND|FUND)[^\n]*?)\s+(` + numTok + `)(?:\s+` + numTok + `){2,}\s+(` + numTok + `)\s+(` + numTok + `)`),
	regexp.MustCompile(`(?i)(INF[A-Z0-9]{9,})\s+(` + mixedName + `)\s+(` + numTok + `)(?:\s+` + numTok + `){2,6}\s+(` + numTok + `)\s+(` + numTok + `)`),
}

var govtPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(IN0\d{9})\s+(` + secName + `)\s+(` + numTok + `)(?:\s+` + numTok + `){5,10}\s+(` + numTok + `)\s+(` + numTok + `)`),
	regexp.MustCompile(`(?i)(IN0\d{9})\s+(` + secName + `)\s+(` + numTokStr + `)(?:\s+` + numTokStr + `){3,12}\s+(` + numTokStr + `)\s+(` + numTokStr + `)`),
}

var corpPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(INE[A-Z0-9]{9})\s+(` + secName + `)\s+(` + numTok + `)(?:\s+` + numTok + `){5,10}\s+(` + numTok + `)\s+(` + numTok + `)`),
	regexp.MustCompile(`(INE[A-Z0-9]{9})\s+(` + secName + `)\s+(` + numTokStr + `)(?:\s+` + numTokStr + `){3,12}\s+(` + numTokStr + `)\s+(` + numTokStr + `)`),
}

var npsPattern = regexp.MustCompile(`(?i)([A-Za-z0-9\-\&\.\(\)\/#\s]+?TIER\s+I{1,2})\s+(` + decimalsTok + `)\s+(` + decimalsTok + `)\s+(` + decimalsTok + `)`)

var equityNameNoiseRe = regexp.MustCompile(`(?i)\s*(EQUITY SHARES.*|AFTER SUB DIVISION|SPLIT|FV.*|OF RS[\d/-]+.*)$`)

// findRows runs a pattern family over the text in precedence order. Rows are
// keyed by the start offset of the ISIN group so a wider fallback never
// re-captures a row an earlier variant already claimed.
func findRows(text string, patterns []*regexp.Regexp) [][]string {
	var rows [][]string
	claimed := make(map[int]struct{})

	for _, re := range patterns {
		for _, loc := range re.FindAllStringSubmatchIndex(text, -1) {
			isinStart := loc[2]
			if _, ok := claimed[isinStart]; ok {
				continue
			}
			claimed[isinStart] = struct{}{}

			groups := make([]string, 0, len(loc)/2-1)
			for g := 1; g < len(loc)/2; g++ {
				if loc[2*g] < 0 {
					groups = append(groups, "")
					continue
				}
				groups = append(groups, text[loc[2*g]:loc[2*g+1]])
			}
			rows = append(rows, groups)
		}
	}
	return rows
}

// ParseText turns the whole-document NSDL text into raw holdings.
// Post-processing mirrors the statement's quirks: plain MF rows already
// captured as folio rows are suppressed, exact equity duplicates are
// collapsed, junk ISINs are dropped and missing valuations are backfilled as
// units × nav.
func ParseText(text string) []dto.Holding {
	var holdings []dto.Holding

	for _, g := range findRows(text, equityPatterns) {
		name := equityNameNoiseRe.ReplaceAllString(g[1], "")
		holdings = append(holdings, dto.Holding{
			Type:        dto.InstrumentEquity,
			ISIN:        strings.TrimSpace(g[0]),
			FundName:    utils.CleanFundName(name, dto.InstrumentEquity),
			Units:       utils.ParseAmount(g[2]),
			NAV:         utils.ParseAmount(g[3]),
			Valuation:   utils.ParseAmount(g[4]),
			Category:    "Equity",
			SubCategory: "Shares",
		})
	}

	folioIndex := 1
	for _, g := range findRows(text, folioPatterns) {
		// Layouts: (isin, name, units, avg cost, total cost, nav, value)
		// with two extra trailing columns in the nine-group variant. The
		// leading field positions line up either way.
		if len(g) != 7 && len(g) != 9 {
			continue
		}
		isin := strings.TrimSpace(g[0])
		if !strings.HasPrefix(isin, "INF") || len(isin) < 10 {
			continue
		}

		category, subCategory := utils.ClassifyInstrument(g[1])
		holdings = append(holdings, dto.Holding{
			Type: dto.InstrumentMutualFundFolio,
			// Distinct folios of one scheme are intentionally kept apart.
			ISIN:           isin + "_" + strconv.Itoa(folioIndex),
			FundName:       utils.CleanFundName(g[1], dto.InstrumentMutualFund),
			Units:          utils.ParseAmount(g[2]),
			NAV:            utils.ParseAmount(g[5]),
			InvestedAmount: utils.ParseAmount(g[4]),
			Valuation:      utils.ParseAmount(g[6]),
			Category:       category,
			SubCategory:    subCategory,
		})
		folioIndex++
	}

	for _, g := range findRows(text, mfPatterns) {
		category, subCategory := utils.ClassifyInstrument(g[1])
		holdings = append(holdings, dto.Holding{
			Type:        dto.InstrumentMutualFund,
			ISIN:        strings.TrimSpace(g[0]),
			FundName:    utils.CleanFundName(g[1], dto.InstrumentMutualFund),
			Units:       utils.ParseAmount(g[2]),
			NAV:         utils.ParseAmount(g[3]),
			Valuation:   utils.ParseAmount(g[4]),
			Category:    category,
			SubCategory: subCategory,
		})
	}

	for _, g := range findRows(text, govtPatterns) {
		holdings = append(holdings, dto.Holding{
			Type:        dto.InstrumentGovtSecurity,
			ISIN:        strings.TrimSpace(g[0]),
			FundName:    utils.CleanFundName(g[1], dto.InstrumentGovtSecurity),
			Units:       utils.ParseAmount(g[2]),
			NAV:         utils.ParseAmount(g[3]),
			Valuation:   utils.ParseAmount(g[4]),
			Category:    "Government Securities",
			SubCategory: "Govt Bond",
		})
	}

	for _, m := range npsPattern.FindAllStringSubmatch(text, -1) {
		scheme := m[1]
		// "TIER" shows up in unrelated scheme names too; real NPS schemes
		// always say pension.
		if !strings.Contains(strings.ToLower(scheme), "pension") {
			continue
		}
		sub := "Tier I"
		if strings.Contains(strings.ToUpper(scheme), "TIER II") {
			sub = "Tier II"
		}
		holdings = append(holdings, dto.Holding{
			Type:        dto.InstrumentNPS,
			FundName:    utils.CleanFundName(scheme, dto.InstrumentNPS),
			Units:       utils.ParseAmount(m[2]),
			NAV:         utils.ParseAmount(m[3]),
			Valuation:   utils.ParseAmount(m[4]),
			Category:    "NPS",
			SubCategory: sub,
		})
	}

	for _, g := range findRows(text, corpPatterns) {
		holdings = append(holdings, dto.Holding{
			Type:        dto.InstrumentCorporateBond,
			ISIN:        strings.TrimSpace(g[0]),
			FundName:    utils.CleanFundName(g[1], dto.InstrumentCorporateBond),
			Units:       utils.ParseAmount(g[2]),
			NAV:         utils.ParseAmount(g[3]),
			Valuation:   utils.ParseAmount(g[4]),
			Category:    "Corporate Bonds",
			SubCategory: "Corporate Bond",
		})
	}

	holdings = suppressFolioDoubles(holdings)
	holdings = collapseEquityDuplicates(holdings)
	holdings = suppressCrossClassDoubles(holdings)
	return finalize(holdings)
}

// suppressCrossClassDoubles keeps one holding per ISIN across instrument
// classes. The wide equity key overlaps the bond and govt families, so a
// single statement row can match twice; the first class emitted wins. Equity
// repeats are exempt, they are separate lots of one scrip.
func suppressCrossClassDoubles(holdings []dto.Holding) []dto.Holding {
	seen := make(map[string]struct{})
	out := holdings[:0]
	for _, h := range holdings {
		isin := strings.TrimSpace(h.ISIN)
		if isin != "" {
			if _, ok := seen[isin]; ok && h.Type != dto.InstrumentEquity {
				continue
			}
			seen[isin] = struct{}{}
		}
		out = append(out, h)
	}
	return out
}

// suppressFolioDoubles drops plain MF rows whose base ISIN was already
// captured as a folio row; keeping both would double-count the scheme.
func suppressFolioDoubles(holdings []dto.Holding) []dto.Holding {
	folioISINs := make(map[string]struct{})
	for _, h := range holdings {
		if h.Type == dto.InstrumentMutualFundFolio {
			folioISINs[utils.BaseISIN(h.ISIN)] = struct{}{}
		}
	}

	out := holdings[:0]
	for _, h := range holdings {
		if h.Type == dto.InstrumentMutualFund {
			if _, ok := folioISINs[utils.BaseISIN(h.ISIN)]; ok {
				continue
			}
		}
		out = append(out, h)
	}
	return out
}

// collapseEquityDuplicates removes equity rows that appear twice with
// identical numbers, e.g. the same position repeated in a summary section.
// Rows with the same ISIN but a different valuation are legitimate separate
// lots and survive.
func collapseEquityDuplicates(holdings []dto.Holding) []dto.Holding {
	type equityKey struct {
		isin      string
		units     string
		valuation string
	}
	seen := make(map[equityKey]struct{})

	out := holdings[:0]
	for _, h := range holdings {
		if h.Type == dto.InstrumentEquity {
			key := equityKey{h.ISIN, h.Units.Round(4).String(), h.Valuation.Round(2).String()}
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
		}
		out = append(out, h)
	}
	return out
}

// finalize drops rows with junk ISINs (the literal "INFRASTRUCTURE" is a
// known extraction artifact) and backfills missing valuations.
func finalize(holdings []dto.Holding) []dto.Holding {
	out := make([]dto.Holding, 0, len(holdings))
	for _, h := range holdings {
		isin := strings.TrimSpace(h.ISIN)
		if isin == "" && h.Type != dto.InstrumentNPS {
			continue
		}
		if isin != "" {
			if len(utils.BaseISIN(isin)) < 10 || strings.Contains(strings.ToUpper(isin), "INFRASTRUCTURE") {
				continue
			}
		}
		if h.Valuation.IsZero() && h.Units.IsPositive() && h.NAV.IsPositive() {
			h.Valuation = h.Units.Mul(h.NAV).Round(2)
		}
		out = append(out, h)
	}
	return out
}
