package service

import (
	"strings"

	"github.com/google/uuid"

	"github.com/pms-portfolio/ecas-parser/dto"
)

// dedupSignature identifies a real-world position independent of which file
// reported it. ISIN-bearing instruments key on (isin, units, valuation);
// pension accounts have no ISIN and key on the instrument type and
// normalized name instead.
type dedupSignature struct {
	isin       string
	instrument dto.InstrumentType
	name       string
	units      string
	valuation  string
}

// BatchContext tracks which source files reported which signatures within
// one upload batch. Create a fresh context per batch and share it across the
// batch's files, strictly sequentially; never reuse it across batches and
// never keep a process-wide one. Independent batches with independent
// contexts are safe to run in parallel.
type BatchContext struct {
	ID   string
	seen map[dedupSignature]map[string]struct{}
}

func NewBatch() *BatchContext {
	return &BatchContext{
		ID:   uuid.NewString(),
		seen: make(map[dedupSignature]map[string]struct{}),
	}
}

func signature(h dto.Holding) dedupSignature {
	sig := dedupSignature{
		units:     h.Units.Round(6).String(),
		valuation: h.Valuation.Round(2).String(),
	}
	if isin := strings.ToUpper(strings.TrimSpace(h.ISIN)); isin != "" {
		sig.isin = isin
		return sig
	}
	sig.instrument = h.Type
	sig.name = strings.ToUpper(strings.TrimSpace(h.FundName))
	return sig
}

// IsDuplicate reports whether the same position was already seen in a
// different file of this batch. A repeat within one file (two folios of an
// identical scheme, say) is not a duplicate.
func (b *BatchContext) IsDuplicate(h dto.Holding) bool {
	sources, ok := b.seen[signature(h)]
	if !ok {
		return false
	}
	_, sameFile := sources[h.SourceFile]
	return !sameFile
}

// MarkSeen records the holding's source file for its signature. Called once
// per accepted holding, after the duplicate check.
func (b *BatchContext) MarkSeen(h dto.Holding) {
	sig := signature(h)
	if b.seen[sig] == nil {
		b.seen[sig] = make(map[string]struct{})
	}
	b.seen[sig][h.SourceFile] = struct{}{}
}
