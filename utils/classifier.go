package utils

import "strings"

// keywordRule maps any of its keywords to a sub-category within one
// category. Rules are evaluated strictly in order: fund names routinely
// match several categories and the first hit is the answer.
type keywordRule struct {
	keywords    []string
	subCategory string
}

var hybridRules = []keywordRule{
	{[]string{"arbitrage"}, "Arbitrage"},
	{[]string{"equity savings"}, "Equity Savings"},
	{[]string{"conservative hybrid"}, "Conservative Hybrid"},
	{[]string{"aggressive hybrid"}, "Aggressive Hybrid"},
	{[]string{"balanced advantage", "dynamic asset"}, "Balanced Advantage"},
	{[]string{"multi asset"}, "Multi Asset Allocation"},
	{[]string{"hybrid"}, "Aggressive Hybrid"},
}

var sectoralRules = []keywordRule{
	{[]string{"bank", "financial", "bfsi", "psu bank"}, "Banking & Financial Services"},
	{[]string{"infra", "infrastructure"}, "Infrastructure"},
	{[]string{"technology", "tech", "software"}, "Technology"},
	{[]string{"pharma", "pharmaceutical", "healthcare", "health"}, "Pharma & Healthcare"},
	{[]string{"consumption", "consumer", "fmcg"}, "Consumption"},
	{[]string{"auto", "automobile"}, "Auto & Auto Ancillaries"},
	{[]string{"energy", "power", "oil & gas"}, "Energy"},
	{[]string{"manufacturing", "capital goods"}, "Manufacturing"},
	{[]string{"metal", "mining"}, "Metals & Mining"},
	{[]string{"media", "entertainment"}, "Media & Entertainment"},
	{[]string{"chemical", "specialty chemical"}, "Chemicals"},
	{[]string{"realty", "real estate"}, "Real Estate"},
	{[]string{"transport", "logistics"}, "Transportation & Logistics"},
	{[]string{"defence", "defense"}, "Defence"},
	{[]string{"esg", "responsible", "sustainable", "sustainability"}, "ESG"},
}

var debtRules = []keywordRule{
	{[]string{"overnight"}, "Overnight"},
	{[]string{"liquid"}, "Liquid"},
	{[]string{"money market"}, "Money Market"},
	{[]string{"ultra short", "ultrashort"}, "Ultra Short Duration"},
	{[]string{"low duration"}, "Low Duration"},
	{[]string{"short term", "short duration"}, "Short Duration"},
	{[]string{"medium duration", "medium term"}, "Medium Duration"},
	{[]string{"medium to long", "long term", "long duration"}, "Medium to Long Duration"},
	{[]string{"gilt", "government security"}, "Gilt"},
	{[]string{"dynamic bond"}, "Dynamic Bond"},
	{[]string{"corporate bond"}, "Corporate Bond"},
	{[]string{"credit risk", "credit opportunities"}, "Credit Risk"},
	{[]string{"banking & psu", "psu bond"}, "Banking & PSU"},
	{[]string{"floater", "floating rate"}, "Floating Rate"},
	{[]string{"debt", "income", "bond"}, "Medium Duration"},
}

var internationalRules = []keywordRule{
	{[]string{"us", "usa", "america", "s&p", "nasdaq"}, "US Focused"},
	{[]string{"global", "world", "international"}, "Global"},
	{[]string{"asia", "china", "japan", "emerging"}, "Asia/EM"},
	{[]string{"europe", "euro", "germany", "uk"}, "Europe"},
}

func containsAny(name string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(name, k) {
			return true
		}
	}
	return false
}

func matchRules(name string, rules []keywordRule) (string, bool) {
	for _, r := range rules {
		if containsAny(name, r.keywords) {
			return r.subCategory, true
		}
	}
	return "", false
}

// ClassifyInstrument maps a cleaned scheme or company name to a
// (category, sub_category) pair. It is total: every non-empty name gets an
// answer, with ("Unclassified", "Unknown") as the terminal rule. The rule
// order is deliberate and load-bearing.
func ClassifyInstrument(fundName string) (string, string) {
	if strings.TrimSpace(fundName) == "" {
		return "Unclassified", "Unknown"
	}
	name := strings.ToLower(strings.TrimSpace(fundName))

	// Commodity and alternatives.
	if strings.Contains(name, "gold") {
		return "Commodity", "Gold"
	}
	if strings.Contains(name, "silver") {
		return "Commodity", "Silver"
	}
	if containsAny(name, []string{"reit", "invit", "real estate", "realty"}) {
		return "Alternative", "REIT / InvIT"
	}
	if strings.Contains(name, "commodity") {
		return "Commodity", "Other Commodity"
	}

	if sub, ok := matchRules(name, hybridRules); ok {
		return "Hybrid", sub
	}

	if containsAny(name, []string{"elss", "tax saver", "tax savings", "80c"}) {
		return "Equity", "ELSS"
	}

	// Market cap tiers.
	if strings.Contains(name, "small cap") {
		return "Equity", "Small Cap"
	}
	if strings.Contains(name, "mid cap") {
		return "Equity", "Mid Cap"
	}
	if strings.Contains(name, "large cap") || strings.Contains(name, "bluechip") {
		return "Equity", "Large Cap"
	}
	if strings.Contains(name, "large & mid cap") || strings.Contains(name, "large and mid") {
		return "Equity", "Large & Mid Cap"
	}

	if containsAny(name, []string{"flexi cap", "flexicap"}) {
		return "Equity", "Flexi Cap"
	}
	if containsAny(name, []string{"multi cap", "multicap"}) {
		return "Equity", "Multi Cap"
	}

	if strings.Contains(name, "focused") {
		return "Equity", "Focused"
	}

	if strings.Contains(name, "contra") {
		return "Equity", "Contra"
	}
	if strings.Contains(name, "value") {
		return "Equity", "Value"
	}

	if strings.Contains(name, "dividend yield") {
		return "Equity", "Dividend Yield"
	}

	if sub, ok := matchRules(name, sectoralRules); ok {
		return "Equity", "Sectoral - " + sub
	}

	if containsAny(name, []string{"index", "nifty", "sensex", "bse"}) {
		return "Equity", "Index"
	}

	if strings.Contains(name, "equity") {
		return "Equity", "Diversified"
	}

	if sub, ok := matchRules(name, debtRules); ok {
		return "Debt", sub
	}

	if containsAny(name, []string{"fund of funds", "fof"}) {
		if containsAny(name, []string{"international", "global", "overseas"}) {
			return "Fund of Funds", "International FoF"
		}
		return "Fund of Funds", "Domestic FoF"
	}

	if sub, ok := matchRules(name, internationalRules); ok {
		return "International", sub
	}

	// Last resort: infer from individual words.
	words := make(map[string]struct{})
	for _, w := range strings.Fields(name) {
		words[w] = struct{}{}
	}
	equityIndicators := []string{"growth", "cap", "equity", "mid", "small", "large", "sector"}
	debtIndicators := []string{"income", "bond", "gilt", "duration", "credit", "corporate"}
	for _, w := range equityIndicators {
		if _, ok := words[w]; ok {
			return "Equity", "Diversified"
		}
	}
	for _, w := range debtIndicators {
		if _, ok := words[w]; ok {
			return "Debt", "Medium Duration"
		}
	}

	if containsAny(name, []string{"equity shares", "share", "stock", "etf"}) {
		return "Equity", "Individual Stock"
	}

	return "Unclassified", "Unknown"
}
