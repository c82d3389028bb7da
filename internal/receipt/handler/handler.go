package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"receipts/internal/receipt/models"
	"receipts/internal/receipt/points"
	id "receipts/pkg/domain"
	dErrors "receipts/pkg/domain-errors"
	"receipts/pkg/platform/httputil"
	"receipts/pkg/requestcontext"
)

// DefaultMaxBodyBytes bounds a receipt request body when no limit is configured.
const DefaultMaxBodyBytes int64 = 1 << 20

// Service defines the receipt operations the handler needs.
type Service interface {
	Process(ctx context.Context, raw any) (*models.Receipt, error)
	Get(ctx context.Context, receiptID id.ReceiptID) (*models.Receipt, error)
	Points(ctx context.Context, receiptID id.ReceiptID) (int, error)
	Breakdown(ctx context.Context, receiptID id.ReceiptID) ([]points.Contribution, error)
	Delete(ctx context.Context, receiptID id.ReceiptID) bool
}

// Handler wires receipt endpoints to the receipt service.
type Handler struct {
	service      Service
	logger       *slog.Logger
	maxBodyBytes int64
}

// New constructs a receipt handler. A non-positive maxBodyBytes uses
// DefaultMaxBodyBytes.
func New(service Service, logger *slog.Logger, maxBodyBytes int64) *Handler {
	if maxBodyBytes <= 0 {
		maxBodyBytes = DefaultMaxBodyBytes
	}
	return &Handler{
		service:      service,
		logger:       logger,
		maxBodyBytes: maxBodyBytes,
	}
}

// Register mounts receipt endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/receipts/process", h.HandleProcess)
	r.Get("/receipts/{id}", h.HandleGet)
	r.Get("/receipts/{id}/points", h.HandlePoints)
	r.Get("/receipts/{id}/points/breakdown", h.HandleBreakdown)
	r.Delete("/receipts/{id}", h.HandleDelete)
}

// HandleProcess handles POST /receipts/process.
func (h *Handler) HandleProcess(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	raw, err := httputil.DecodeJSON(w, r, h.maxBodyBytes)
	if err != nil {
		h.logger.WarnContext(ctx, "invalid receipt request body",
			"request_id", requestID,
			"error", err.Error(),
		)
		httputil.WriteError(w, err)
		return
	}

	receipt, err := h.service.Process(ctx, raw)
	if err != nil {
		if !dErrors.Is(err, dErrors.CodeValidation) {
			h.logger.ErrorContext(ctx, "receipt processing failed",
				"request_id", requestID,
				"error", err,
			)
		}
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "receipt processed",
		"request_id", requestID,
		"receipt_id", receipt.ID.String(),
		"points", receipt.Points,
	)
	httputil.WriteJSON(w, http.StatusOK, ProcessResponse{ID: receipt.ID.String()})
}

// HandleGet handles GET /receipts/{id}.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	receiptID, ok := h.receiptID(w, r)
	if !ok {
		return
	}
	receipt, err := h.service.Get(r.Context(), receiptID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromReceipt(receipt))
}

// HandlePoints handles GET /receipts/{id}/points.
func (h *Handler) HandlePoints(w http.ResponseWriter, r *http.Request) {
	receiptID, ok := h.receiptID(w, r)
	if !ok {
		return
	}
	pts, err := h.service.Points(r.Context(), receiptID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, PointsResponse{Points: pts})
}

// HandleBreakdown handles GET /receipts/{id}/points/breakdown.
func (h *Handler) HandleBreakdown(w http.ResponseWriter, r *http.Request) {
	receiptID, ok := h.receiptID(w, r)
	if !ok {
		return
	}
	contributions, err := h.service.Breakdown(r.Context(), receiptID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromBreakdown(contributions))
}

// HandleDelete handles DELETE /receipts/{id}.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	receiptID, ok := h.receiptID(w, r)
	if !ok {
		return
	}
	if !h.service.Delete(r.Context(), receiptID) {
		httputil.WriteError(w, errNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

var errNotFound = dErrors.New(dErrors.CodeNotFound, "No receipt found for that ID.")

// receiptID parses the {id} URL parameter. An ID that cannot be parsed can
// never name a stored receipt, so it is answered as not found.
func (h *Handler) receiptID(w http.ResponseWriter, r *http.Request) (id.ReceiptID, bool) {
	receiptID, err := id.ParseReceiptID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, errNotFound)
		return id.ReceiptID{}, false
	}
	return receiptID, true
}
