package store

//go:generate mockgen -source=memory.go -destination=mocks/mocks.go -package=mocks IDGenerator

import (
	"context"
	"log/slog"
	"sync"

	"receipts/internal/receipt/models"
	id "receipts/pkg/domain"
)

// IDGenerator produces random receipt identifiers. Generators are assumed
// effectively collision-free, but the store still checks.
type IDGenerator interface {
	NewID() id.ReceiptID
}

// UUIDGenerator issues random (v4) UUIDs.
type UUIDGenerator struct{}

func (UUIDGenerator) NewID() id.ReceiptID {
	return id.NewReceiptID()
}

// InMemory keeps receipts in a map guarded by a RWMutex. Each method holds
// the lock for its own duration only and never calls another locked method.
type InMemory struct {
	mu       sync.RWMutex
	receipts map[id.ReceiptID]*models.Receipt
	ids      IDGenerator
	logger   *slog.Logger
}

// NewInMemory builds an empty store. A nil generator falls back to
// UUIDGenerator and a nil logger to slog.Default().
func NewInMemory(ids IDGenerator, logger *slog.Logger) *InMemory {
	if ids == nil {
		ids = UUIDGenerator{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &InMemory{
		receipts: make(map[id.ReceiptID]*models.Receipt),
		ids:      ids,
		logger:   logger,
	}
}

// Add inserts r. If r.ID is already taken, or nil, a new ID is drawn until it
// is free and r.ID is updated in place. With 122 random bits the loop runs
// once in practice. The stored value is a copy of r.
func (s *InMemory) Add(ctx context.Context, r *models.Receipt) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for s.taken(r.ID) {
		r.ID = s.ids.NewID()
	}
	s.receipts[r.ID] = r.Clone()

	s.logger.InfoContext(ctx, "receipt added",
		"receipt_id", r.ID.String(),
		"points", r.Points,
	)
}

// taken must be called with s.mu held.
func (s *InMemory) taken(receiptID id.ReceiptID) bool {
	if receiptID.IsNil() {
		return true
	}
	_, ok := s.receipts[receiptID]
	return ok
}

// Get returns a copy of the receipt stored under receiptID.
func (s *InMemory) Get(_ context.Context, receiptID id.ReceiptID) (*models.Receipt, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.receipts[receiptID]
	if !ok {
		return nil, false
	}
	return r.Clone(), true
}

// GetAll returns a snapshot of every stored receipt keyed by ID. Changes to
// the returned map do not reach the store.
func (s *InMemory) GetAll(_ context.Context) map[id.ReceiptID]*models.Receipt {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[id.ReceiptID]*models.Receipt, len(s.receipts))
	for k, r := range s.receipts {
		out[k] = r.Clone()
	}
	return out
}

// Count returns the number of stored receipts.
func (s *InMemory) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.receipts)
}

// Delete removes the receipt stored under receiptID and reports whether it
// was present. A missing receipt is logged as a warning, not returned as an
// error.
func (s *InMemory) Delete(ctx context.Context, receiptID id.ReceiptID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.receipts[receiptID]; !ok {
		s.logger.WarnContext(ctx, "delete of unknown receipt",
			"receipt_id", receiptID.String(),
		)
		return false
	}
	delete(s.receipts, receiptID)
	s.logger.InfoContext(ctx, "receipt deleted",
		"receipt_id", receiptID.String(),
	)
	return true
}
