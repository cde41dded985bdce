package service

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/pms-portfolio/ecas-parser/dto"
	"github.com/pms-portfolio/ecas-parser/utils/cams"
	"github.com/pms-portfolio/ecas-parser/utils/cdsl"
	"github.com/pms-portfolio/ecas-parser/utils/nsdl"
)

var pdfMagic = []byte("%PDF-")

// ECASService is the parsing core's single entry point: document bytes in,
// normalized holdings plus a quarantined duplicate stream out. It is
// side-effect free; storing either stream is the caller's business.
type ECASService struct {
	pdfProcessor PDFProcessor
	logger       *zap.Logger
}

func NewECASService(pdfProcessor PDFProcessor, logger *zap.Logger) *ECASService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ECASService{
		pdfProcessor: pdfProcessor,
		logger:       logger,
	}
}

// ProcessDocument parses one statement inside an upload batch. Files of a
// batch must be processed sequentially with the same BatchContext: each
// file's accepted holdings decide what counts as a duplicate in the next.
//
// Parsing is deterministic, so every error here means the input itself must
// be fixed; nothing is retryable.
func (s *ECASService) ProcessDocument(ctx context.Context, req *dto.ParseRequest, batch *BatchContext) (*dto.ParseResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if batch == nil {
		return nil, fmt.Errorf("nil batch context")
	}
	if !bytes.HasPrefix(req.Document, pdfMagic) {
		return nil, ErrUnsupportedFileType
	}

	log := s.logger.With(
		zap.String("batch_id", batch.ID),
		zap.String("source_file", req.SourceFile),
		zap.String("issuer", string(req.Issuer)),
	)

	holdings, err := s.extract(req)
	if err != nil {
		return nil, err
	}
	log.Info("extracted holdings", zap.Int("count", len(holdings)))

	result := &dto.ParseResult{}
	for _, h := range holdings {
		h.SourceFile = req.SourceFile
		h.MemberID = req.MemberID

		if batch.IsDuplicate(h) {
			log.Warn("duplicate holding quarantined",
				zap.String("isin", h.ISIN),
				zap.String("fund_name", h.FundName))
			result.Duplicates = append(result.Duplicates, dto.DuplicateRecord{
				Holding:  h,
				FileType: req.Issuer,
			})
			continue
		}
		batch.MarkSeen(h)
		result.Holdings = append(result.Holdings, h)
	}

	result.TotalValue = SumValuations(result.Holdings)
	log.Info("statement parsed",
		zap.Int("accepted", len(result.Holdings)),
		zap.Int("duplicates", len(result.Duplicates)),
		zap.String("total_value", result.TotalValue.String()))
	return result, nil
}

// extract verifies the declared format and runs the issuer's extractor.
// CAMS works off positioned blocks; NSDL and CDSL off flattened text.
func (s *ECASService) extract(req *dto.ParseRequest) ([]dto.Holding, error) {
	switch req.Issuer {
	case dto.IssuerNSDL, dto.IssuerCDSL:
		text, err := s.pdfProcessor.ExtractText(req.Document, req.Password)
		if err != nil {
			return nil, err
		}
		if err := VerifyFormat(text, req.Issuer); err != nil {
			return nil, err
		}
		if req.Issuer == dto.IssuerNSDL {
			return nsdl.ParseText(text), nil
		}
		return cdsl.ParseText(text), nil

	case dto.IssuerCAMS:
		blocks, err := s.pdfProcessor.ExtractBlocks(req.Document, req.Password)
		if err != nil {
			return nil, err
		}
		var b strings.Builder
		for _, blk := range blocks {
			b.WriteString(blk.Text)
			b.WriteString("\n")
		}
		if err := VerifyFormat(b.String(), dto.IssuerCAMS); err != nil {
			return nil, err
		}
		return cams.ParseBlocks(blocks), nil

	default:
		return nil, fmt.Errorf("%w: declared issuer %q", ErrFormatMismatch, req.Issuer)
	}
}
