package client

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/pms-portfolio/ecas-parser/dto"
	"github.com/pms-portfolio/ecas-parser/utils"
)

// MorningstarClient fetches trailing total returns per ISIN from the
// Morningstar XML service.
type MorningstarClient struct {
	baseURL    string
	accessCode string
	httpClient *http.Client
}

func NewMorningstarClient(baseURL, accessCode string, timeout time.Duration) *MorningstarClient {
	return &MorningstarClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		accessCode: accessCode,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type mstarResponse struct {
	Status struct {
		Code string `xml:"code"`
	} `xml:"status"`
	Data struct {
		CurrencyID string `xml:"_CurrencyId,attr"`
	} `xml:"data"`
	API struct {
		Return1Yr              string `xml:"Return1Yr"`
		Return3Yr              string `xml:"Return3Yr"`
		Return5Yr              string `xml:"Return5Yr"`
		Return10Yr             string `xml:"Return10Yr"`
		CalendarYearReturnDate string `xml:"CalendarYearReturnDate"`
	} `xml:"api"`
}

// FetchTrailingReturns looks up 1y/3y/5y/10y returns for an ISIN. Synthetic
// "_n" folio suffixes are stripped before the call. Returns nil (no error)
// when Morningstar has no data for the scheme.
func (mc *MorningstarClient) FetchTrailingReturns(ctx context.Context, isin string) (*dto.TrailingReturns, error) {
	isin = utils.BaseISIN(strings.ToUpper(isin))
	if isin == "" {
		return nil, fmt.Errorf("empty isin")
	}

	url := fmt.Sprintf("%s/ISIN/%s?accesscode=%s", mc.baseURL, isin, mc.accessCode)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := mc.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("morningstar request failed for %s: %w", isin, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("morningstar returned HTTP %d for %s", resp.StatusCode, isin)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var parsed mstarResponse
	if err := xml.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("morningstar response for %s: %w", isin, err)
	}
	if parsed.Status.Code != "0" {
		// Service-level "no data" is not an error; the scheme is simply
		// not covered.
		return nil, nil
	}

	returns := &dto.TrailingReturns{
		ISIN:     isin,
		OneYear:  safeFloat(parsed.API.Return1Yr),
		ThreeYr:  safeFloat(parsed.API.Return3Yr),
		FiveYr:   safeFloat(parsed.API.Return5Yr),
		TenYr:    safeFloat(parsed.API.Return10Yr),
		Currency: parsed.Data.CurrencyID,
	}
	if returns.Currency == "" {
		returns.Currency = "INR"
	}
	if raw := strings.TrimSpace(parsed.API.CalendarYearReturnDate); raw != "" {
		if asOf, err := time.Parse("2006-01-02", raw); err == nil {
			returns.AsOfDate = &asOf
		}
	}

	if returns.OneYear == nil && returns.ThreeYr == nil && returns.FiveYr == nil && returns.TenYr == nil {
		return nil, nil
	}
	return returns, nil
}

func safeFloat(raw string) *float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &f
}
