// Package cams extracts holdings from CAMS mutual fund statements. CAMS
// lays each scheme out as a block pair: a left block with folio, market
// value and a multi-line scheme name, and a right block with units, NAV,
// cost and the ISIN. The pairing is positional, not textual.
package cams

import (
	"math"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/pms-portfolio/ecas-parser/dto"
	"github.com/pms-portfolio/ecas-parser/utils"
)

const (
	// Blocks on the same visual row drift a little vertically.
	rowTolerance = 5.0
	// Imperfect block interleaving: the right block is close, but not
	// always adjacent.
	maxLookahead = 5
)

var (
	folioRe      = regexp.MustCompile(`\d+/\d+|\d{6,}`)
	isinRe       = regexp.MustCompile(`INF[0-9A-Z]{9}`)
	amountRe     = regexp.MustCompile(`[\d,]+\.\d+`)
	amountLineRe = regexp.MustCompile(`^[\d,]+\.\d+`)
	spaceRe      = regexp.MustCompile(`\s+`)
)

// ParseBlocks pairs folio blocks with their vertically aligned ISIN blocks
// and emits one mutual fund holding per pair. Blocks that never find a
// partner are skipped; partial extraction beats a hard failure on these
// statements.
func ParseBlocks(blocks []dto.TextBlock) []dto.Holding {
	var holdings []dto.Holding
	used := make(map[int]struct{})

	for i, left := range blocks {
		if _, ok := used[i]; ok {
			continue
		}
		if !folioRe.MatchString(left.Text) {
			continue
		}

		rightIdx := -1
		for j := i + 1; j < len(blocks) && j <= i+maxLookahead; j++ {
			if _, ok := used[j]; ok {
				continue
			}
			if math.Abs(blocks[j].Y-left.Y) <= rowTolerance && isinRe.MatchString(blocks[j].Text) {
				rightIdx = j
				break
			}
		}
		if rightIdx < 0 {
			continue
		}
		right := blocks[rightIdx]
		used[i] = struct{}{}
		used[rightIdx] = struct{}{}

		folioNo, marketValue, scheme := splitLeftBlock(left.Text)

		nums := amountRe.FindAllString(right.Text, -1)
		if len(nums) < 3 {
			continue
		}
		units := utils.ParseAmount(nums[0])
		nav := utils.ParseAmount(nums[1])
		invested := utils.ParseAmount(nums[len(nums)-1])

		isin := isinRe.FindString(right.Text)

		valuation := marketValue
		if valuation.IsZero() {
			valuation = units.Mul(nav).Round(2)
		}

		category, subCategory := utils.ClassifyInstrument(scheme)
		holdings = append(holdings, dto.Holding{
			Type:           dto.InstrumentMutualFund,
			FundName:       truncate(scheme, 255),
			ISIN:           isin,
			FolioNo:        folioNo,
			Units:          units,
			NAV:            nav,
			InvestedAmount: invested,
			Valuation:      valuation,
			Category:       category,
			SubCategory:    subCategory,
		})
	}

	return holdings
}

// splitLeftBlock takes the left block apart: first line is the folio
// number, numeric-looking lines carry the market value, everything else is
// the (possibly wrapped) scheme name.
func splitLeftBlock(text string) (folioNo string, marketValue decimal.Decimal, scheme string) {
	var lines []string
	for _, l := range strings.Split(text, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			lines = append(lines, l)
		}
	}
	if len(lines) == 0 {
		return "", decimal.Zero, ""
	}

	folioNo = lines[0]
	marketValue = decimal.Zero

	var schemeParts []string
	for _, l := range lines[1:] {
		if amountLineRe.MatchString(l) {
			marketValue = utils.ParseAmount(amountLineRe.FindString(l))
		} else {
			schemeParts = append(schemeParts, l)
		}
	}
	scheme = strings.TrimSpace(spaceRe.ReplaceAllString(strings.Join(schemeParts, " "), " "))
	return folioNo, marketValue, scheme
}

func truncate(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}
