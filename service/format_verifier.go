package service

import (
	"fmt"
	"strings"

	"github.com/pms-portfolio/ecas-parser/dto"
)

// issuerMarkers are phrases that only the issuing depository/registrar
// prints on its own statements.
var issuerMarkers = map[dto.IssuerType][]string{
	dto.IssuerNSDL: {"national securities depository limited", "nsdl"},
	dto.IssuerCDSL: {"central depository services", "cdsl"},
	dto.IssuerCAMS: {"computer age management services", "cams"},
}

// VerifyFormat checks the caller-declared issuer against the document's
// content markers. A declared type that no marker corroborates is a
// format mismatch; uploads routinely arrive with the wrong type selected.
func VerifyFormat(text string, issuer dto.IssuerType) error {
	markers, ok := issuerMarkers[issuer]
	if !ok {
		return fmt.Errorf("%w: unknown issuer type %q", ErrFormatMismatch, issuer)
	}

	lower := strings.ToLower(text)
	for _, marker := range markers {
		if strings.Contains(lower, marker) {
			return nil
		}
	}
	return fmt.Errorf("%w: no %s markers found in document", ErrFormatMismatch, issuer)
}

// DetectIssuer guesses the issuer by dominant marker count. It exists for
// callers that have no declared type to verify; when a hint is available,
// VerifyFormat is the primary path.
func DetectIssuer(text string) (dto.IssuerType, bool) {
	lower := strings.ToLower(text)

	var best dto.IssuerType
	bestCount := 0
	for _, issuer := range []dto.IssuerType{dto.IssuerNSDL, dto.IssuerCDSL, dto.IssuerCAMS} {
		count := 0
		for _, marker := range issuerMarkers[issuer] {
			count += strings.Count(lower, marker)
		}
		if count > bestCount {
			best, bestCount = issuer, count
		}
	}
	return best, bestCount > 0
}
