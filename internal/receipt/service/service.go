package service

import (
	"context"
	"errors"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"receipts/internal/receipt/metrics"
	"receipts/internal/receipt/models"
	"receipts/internal/receipt/points"
	"receipts/internal/receipt/validator"
	id "receipts/pkg/domain"
	dErrors "receipts/pkg/domain-errors"
)

const tracerName = "receipts/internal/receipt/service"

// Store is the receipt container the service writes to. Absence is reported
// with a bool, never an error.
type Store interface {
	Add(ctx context.Context, r *models.Receipt)
	Get(ctx context.Context, receiptID id.ReceiptID) (*models.Receipt, bool)
	Delete(ctx context.Context, receiptID id.ReceiptID) bool
	Count(ctx context.Context) int
}

// IDGenerator issues identifiers for new receipts.
type IDGenerator interface {
	NewID() id.ReceiptID
}

type randomIDs struct{}

func (randomIDs) NewID() id.ReceiptID { return id.NewReceiptID() }

// Service orchestrates receipt processing: validate, identify, score, store.
type Service struct {
	store   Store
	ids     IDGenerator
	logger  *slog.Logger
	metrics *metrics.Metrics
	tracer  trace.Tracer
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithIDGenerator(ids IDGenerator) Option {
	return func(s *Service) {
		s.ids = ids
	}
}

// New constructs a Service. The store is required.
func New(store Store, opts ...Option) (*Service, error) {
	if store == nil {
		return nil, errors.New("receipt store is required")
	}
	s := &Service{
		store:  store,
		ids:    randomIDs{},
		logger: slog.Default(),
		tracer: otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Process validates raw, scores it and stores the resulting receipt.
// Validation failures are returned with CodeValidation and unwrap to a
// *validation.Error listing every failing field; nothing is stored.
func (s *Service) Process(ctx context.Context, raw any) (*models.Receipt, error) {
	ctx, span := s.tracer.Start(ctx, "receipt.process")
	defer span.End()

	record, err := validator.Validate(raw)
	if err != nil {
		s.metrics.IncrementRejected()
		span.SetStatus(codes.Error, "validation failed")
		s.logger.WarnContext(ctx, "receipt rejected",
			"error", err.Error(),
		)
		return nil, dErrors.Wrap(err, dErrors.CodeValidation, "The receipt is invalid.")
	}

	score := points.Calculate(record)
	r, err := models.NewReceipt(s.ids.NewID(), record, score)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to build receipt")
	}
	s.store.Add(ctx, r)

	span.SetAttributes(
		attribute.String("receipt.id", r.ID.String()),
		attribute.Int("receipt.points", r.Points),
	)
	s.observeProcessed(ctx, r)
	return r, nil
}

func (s *Service) observeProcessed(ctx context.Context, r *models.Receipt) {
	if s.metrics == nil {
		return
	}
	s.metrics.ObserveProcessed(r.Points)
	for _, c := range points.Breakdown(r.Data) {
		s.metrics.AddRulePoints(c.Rule, c.Points)
	}
	s.metrics.SetStored(s.store.Count(ctx))
}

// Get returns the stored receipt, or CodeNotFound.
func (s *Service) Get(ctx context.Context, receiptID id.ReceiptID) (*models.Receipt, error) {
	ctx, span := s.tracer.Start(ctx, "receipt.get",
		trace.WithAttributes(attribute.String("receipt.id", receiptID.String())))
	defer span.End()

	r, ok := s.store.Get(ctx, receiptID)
	if !ok {
		return nil, dErrors.New(dErrors.CodeNotFound, "No receipt found for that ID.")
	}
	return r, nil
}

// Points returns the score awarded to a stored receipt, or CodeNotFound.
func (s *Service) Points(ctx context.Context, receiptID id.ReceiptID) (int, error) {
	r, err := s.Get(ctx, receiptID)
	if err != nil {
		return 0, err
	}
	return r.Points, nil
}

// Breakdown returns the per-rule contributions of a stored receipt's score.
func (s *Service) Breakdown(ctx context.Context, receiptID id.ReceiptID) ([]points.Contribution, error) {
	r, err := s.Get(ctx, receiptID)
	if err != nil {
		return nil, err
	}
	return points.Breakdown(r.Data), nil
}

// Delete removes a stored receipt and reports whether it existed.
func (s *Service) Delete(ctx context.Context, receiptID id.ReceiptID) bool {
	ctx, span := s.tracer.Start(ctx, "receipt.delete",
		trace.WithAttributes(attribute.String("receipt.id", receiptID.String())))
	defer span.End()

	deleted := s.store.Delete(ctx, receiptID)
	span.SetAttributes(attribute.Bool("receipt.deleted", deleted))
	s.metrics.IncrementDeletion(deleted)
	if deleted {
		s.metrics.SetStored(s.store.Count(ctx))
	}
	return deleted
}
