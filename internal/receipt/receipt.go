package receipt

import (
	"log/slog"

	"receipts/internal/receipt/handler"
	"receipts/internal/receipt/service"
	"receipts/internal/receipt/store"
)

// Service exposes receipt processing and lookup.
type Service = service.Service

// Handler wires HTTP endpoints to the receipt service.
type Handler = handler.Handler

// NewStore constructs the in-memory receipt store.
func NewStore(logger *slog.Logger) *store.InMemory {
	return store.NewInMemory(store.UUIDGenerator{}, logger)
}

// NewService constructs the receipt service with required dependencies.
func NewService(receipts service.Store, opts ...service.Option) (*Service, error) {
	return service.New(receipts, opts...)
}

// NewHandler constructs an HTTP handler for the receipt routes.
func NewHandler(s *Service, logger *slog.Logger, maxBodyBytes int64) *Handler {
	return handler.New(s, logger, maxBodyBytes)
}
