package utils

import (
	"regexp"
	"sort"
	"strings"

	"github.com/pms-portfolio/ecas-parser/dto"
)

var (
	whitespaceRe      = regexp.MustCompile(`\s+`)
	boilerplateMarkRe = regexp.MustCompile(`(?i)\s*#|\s+of\s+|\s+0f\s+`)
	trailingSepRe     = regexp.MustCompile(`[-,/:\s]+$`)
	alphaTokenRe      = regexp.MustCompile(`^[A-Z][A-Z&]*$`)
	punctRe           = regexp.MustCompile(`[^A-Z0-9& ]+`)
)

const maxNameLen = 255

// CleanFundName strips statement boilerplate from a raw scheme name.
// Government securities keep their full descriptive name: "6.54% GOI 2032"
// style strings carry meaning in every token.
func CleanFundName(name string, htype dto.InstrumentType) string {
	if name == "" {
		return name
	}

	lower := strings.ToLower(name)
	if htype == dto.InstrumentGovtSecurity || strings.Contains(lower, "govt") || strings.Contains(lower, "government") {
		return truncate(whitespaceRe.ReplaceAllString(strings.TrimSpace(name), " "), maxNameLen)
	}

	name = strings.TrimSpace(whitespaceRe.ReplaceAllString(name, " "))
	if loc := boilerplateMarkRe.FindStringIndex(name); loc != nil {
		name = name[:loc[0]]
	}
	name = strings.TrimSpace(trailingSepRe.ReplaceAllString(name, ""))
	return truncate(name, maxNameLen)
}

func truncate(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}

// DefaultAMCNames is the curated list of known asset managers, as they
// appear (upper-cased) inside scheme names. Order does not matter here; the
// normalizer re-sorts longest-first so "MIRAE ASSET" wins over "TATA"
// substrings and the like.
var DefaultAMCNames = []string{
	"ADITYA BIRLA SUN LIFE", "AXIS", "BANDHAN", "BANK OF INDIA",
	"BARODA BNP PARIBAS", "CANARA ROBECO", "DSP", "EDELWEISS",
	"FRANKLIN TEMPLETON", "HDFC", "HSBC", "ICICI PRUDENTIAL", "IDFC",
	"INVESCO", "ITI", "JM FINANCIAL", "KOTAK", "LIC", "MAHINDRA MANULIFE",
	"MIRAE ASSET", "MOTILAL OSWAL", "NAVI", "NIPPON INDIA", "PARAG PARIKH",
	"PGIM INDIA", "PPFAS", "QUANT", "QUANTUM", "SAMCO", "SBI", "SHRIRAM",
	"SUNDARAM", "TATA", "TAURUS", "UNION", "UTI", "WHITEOAK CAPITAL",
	"ZERODHA", "360 ONE",
}

// DefaultStopWords are sector/cap words that show up right before "FUND" but
// are never an issuer name on their own.
var DefaultStopWords = []string{
	"SMALL", "MID", "LARGE", "CAP", "FLEXI", "MULTI", "MICRO", "EQUITY",
	"DEBT", "HYBRID", "LIQUID", "OVERNIGHT", "INDEX", "NIFTY", "SENSEX",
	"BANKING", "INFRASTRUCTURE", "PHARMA", "TECHNOLOGY", "CONSUMPTION",
	"ENERGY", "VALUE", "CONTRA", "FOCUSED", "ARBITRAGE", "GILT", "BOND",
	"MUTUAL", "TAX", "SAVER", "BLUECHIP", "BALANCED", "ADVANTAGE",
	"OPPORTUNITIES", "EMERGING", "GROWTH", "THE",
}

// DefaultJunkPhrases are plan/option qualifiers stripped before issuer
// matching. Longest first so "DIRECT PLAN" goes before "DIRECT".
var DefaultJunkPhrases = []string{
	"DIRECT PLAN", "REGULAR PLAN", "GROWTH OPTION", "DIVIDEND PAYOUT",
	"DIVIDEND REINVESTMENT", "DIVIDEND OPTION", "IDCW", "DIRECT", "REGULAR",
	"GROWTH", "DIVIDEND",
}

// NameNormalizer recovers the managing institution from a scheme name. The
// matching algorithm is data-independent: the AMC table, stop words and junk
// phrases are injected so tests can run against synthetic fixtures.
type NameNormalizer struct {
	amcNames  []string
	amcTokens [][]string
	stopWords map[string]struct{}
	junk      []*regexp.Regexp
}

func NewNameNormalizer(amcNames, stopWords, junkPhrases []string) *NameNormalizer {
	names := make([]string, len(amcNames))
	copy(names, amcNames)
	sort.SliceStable(names, func(i, j int) bool { return len(names[i]) > len(names[j]) })

	n := &NameNormalizer{
		amcNames:  names,
		stopWords: make(map[string]struct{}, len(stopWords)),
	}
	for _, name := range names {
		n.amcTokens = append(n.amcTokens, strings.Fields(name))
	}
	for _, w := range stopWords {
		n.stopWords[strings.ToUpper(w)] = struct{}{}
	}
	for _, p := range junkPhrases {
		n.junk = append(n.junk, regexp.MustCompile(`\b`+regexp.QuoteMeta(strings.ToUpper(p))+`\b`))
	}
	return n
}

func DefaultNameNormalizer() *NameNormalizer {
	return NewNameNormalizer(DefaultAMCNames, DefaultStopWords, DefaultJunkPhrases)
}

// ExtractAMCName returns the issuer for a scheme name, or "OTHERS" when
// nothing recognizable is found. Deterministic and total.
func (n *NameNormalizer) ExtractAMCName(fundName string) string {
	name := strings.ToUpper(strings.TrimSpace(fundName))
	if name == "" {
		return "OTHERS"
	}
	for _, re := range n.junk {
		name = re.ReplaceAllString(name, " ")
	}
	// Scheme-code prefixes ("D464D - SBI ...") put the real name after the
	// first dash.
	if i := strings.Index(name, "-"); i >= 0 && strings.TrimSpace(name[i+1:]) != "" {
		name = name[i+1:]
	}
	name = strings.TrimSpace(whitespaceRe.ReplaceAllString(name, " "))

	for _, amc := range n.amcNames {
		if strings.HasPrefix(name, amc) || strings.Contains(name, amc) {
			return amc
		}
	}

	tokens := strings.Fields(name)

	if got := n.beforeFundTokens(tokens); got != "" {
		return got
	}

	if got := n.tokenSequenceMatch(tokens); got != "" {
		return got
	}

	for _, t := range tokens {
		if len(t) > 1 && alphaTokenRe.MatchString(t) {
			return t
		}
	}
	return "OTHERS"
}

// beforeFundTokens tries the one or two tokens immediately preceding "FUND".
func (n *NameNormalizer) beforeFundTokens(tokens []string) string {
	fundAt := -1
	for i, t := range tokens {
		if strings.HasPrefix(t, "FUND") {
			fundAt = i
			break
		}
	}
	if fundAt <= 0 {
		return ""
	}

	for _, width := range []int{2, 1} {
		if fundAt-width < 0 {
			continue
		}
		run := tokens[fundAt-width : fundAt]
		cleaned := make([]string, 0, len(run))
		for _, t := range run {
			t = strings.TrimSpace(punctRe.ReplaceAllString(t, ""))
			if t != "" {
				cleaned = append(cleaned, t)
			}
		}
		if len(cleaned) == 0 {
			continue
		}
		candidate := strings.Join(cleaned, " ")
		for _, amc := range n.amcNames {
			if candidate == amc {
				return amc
			}
		}
		stopped := false
		for _, t := range cleaned {
			if _, ok := n.stopWords[t]; ok {
				stopped = true
				break
			}
		}
		if !stopped {
			return candidate
		}
	}
	return ""
}

// tokenSequenceMatch scans the alphabetic tokens of the name for a
// contiguous subsequence equal to a known issuer's own token sequence.
func (n *NameNormalizer) tokenSequenceMatch(tokens []string) string {
	var alpha []string
	for _, t := range tokens {
		if alphaTokenRe.MatchString(t) {
			alpha = append(alpha, t)
		}
	}
	for i, amc := range n.amcTokens {
		if len(amc) == 0 || len(amc) > len(alpha) {
			continue
		}
		for start := 0; start+len(amc) <= len(alpha); start++ {
			match := true
			for k := range amc {
				if alpha[start+k] != amc[k] {
					match = false
					break
				}
			}
			if match {
				return n.amcNames[i]
			}
		}
	}
	return ""
}
