package service

import (
	"github.com/shopspring/decimal"

	"github.com/pms-portfolio/ecas-parser/dto"
)

// SumValuations totals the accepted holdings. Printed portfolio totals are
// never trusted; this sum is the only total the core reports.
func SumValuations(holdings []dto.Holding) decimal.Decimal {
	total := decimal.Zero
	for _, h := range holdings {
		total = total.Add(h.Valuation)
	}
	return total
}
