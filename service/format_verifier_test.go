package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pms-portfolio/ecas-parser/dto"
)

func TestVerifyFormat(t *testing.T) {
	nsdlText := "National Securities Depository Limited Consolidated Account Statement"
	cdslText := "Central Depository Services (India) Limited"
	camsText := "Computer Age Management Services Ltd"

	assert.NoError(t, VerifyFormat(nsdlText, dto.IssuerNSDL))
	assert.NoError(t, VerifyFormat(cdslText, dto.IssuerCDSL))
	assert.NoError(t, VerifyFormat(camsText, dto.IssuerCAMS))

	err := VerifyFormat(nsdlText, dto.IssuerCAMS)
	assert.ErrorIs(t, err, ErrFormatMismatch)

	err = VerifyFormat(camsText, dto.IssuerNSDL)
	assert.ErrorIs(t, err, ErrFormatMismatch)
}

func TestVerifyFormatUnknownIssuer(t *testing.T) {
	err := VerifyFormat("anything", dto.IssuerType("KARVY"))
	assert.ErrorIs(t, err, ErrFormatMismatch)
}

func TestDetectIssuer(t *testing.T) {
	issuer, ok := DetectIssuer("Statement from NSDL. NSDL holds your securities. CDSL is mentioned once.")
	assert.True(t, ok)
	assert.Equal(t, dto.IssuerNSDL, issuer)

	issuer, ok = DetectIssuer("Computer Age Management Services mutual fund statement")
	assert.True(t, ok)
	assert.Equal(t, dto.IssuerCAMS, issuer)

	_, ok = DetectIssuer("no depository markers here")
	assert.False(t, ok)
}
