// Package sequence provides bill number generators.
package sequence

import (
	"context"

	domainRepo "github.com/sangkips/boutique-api/internal/domain/repository"
	"go.uber.org/zap"
)

// StoreSequence derives the next bill number from the stored maximum.
type StoreSequence struct {
	source domainRepo.BillNumberSource
	log    *zap.Logger
}

// NewStoreSequence creates a sequence reading from source
func NewStoreSequence(source domainRepo.BillNumberSource, log *zap.Logger) *StoreSequence {
	return &StoreSequence{source: source, log: log}
}

// Next returns latest+1, or 1 when the collection is empty or the lookup fails.
func (s *StoreSequence) Next(ctx context.Context) int64 {
	latest, err := s.source.LatestBillNo(ctx)
	if err != nil {
		s.log.Warn("bill number lookup failed, starting at 1", zap.Error(err))
		return 1
	}
	return latest + 1
}

// Resync is a no-op; every call to Next already reads the store.
func (s *StoreSequence) Resync(context.Context) {}
