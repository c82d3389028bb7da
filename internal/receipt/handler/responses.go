package handler

import (
	"receipts/internal/receipt/models"
	"receipts/internal/receipt/points"
)

// ProcessResponse is the HTTP response for POST /receipts/process.
type ProcessResponse struct {
	ID string `json:"id"`
}

// PointsResponse is the HTTP response for GET /receipts/{id}/points.
type PointsResponse struct {
	Points int `json:"points"`
}

// ReceiptResponse is the HTTP response for GET /receipts/{id}.
type ReceiptResponse struct {
	ID      string        `json:"id"`
	Points  int           `json:"points"`
	Receipt models.Record `json:"receipt"`
}

// BreakdownResponse is the HTTP response for GET /receipts/{id}/points/breakdown.
type BreakdownResponse struct {
	Points int                   `json:"points"`
	Rules  []points.Contribution `json:"rules"`
}

// FromReceipt converts a stored receipt to its HTTP representation.
func FromReceipt(r *models.Receipt) *ReceiptResponse {
	return &ReceiptResponse{
		ID:      r.ID.String(),
		Points:  r.Points,
		Receipt: r.Data,
	}
}

// FromBreakdown converts per-rule contributions to an HTTP response.
func FromBreakdown(contributions []points.Contribution) *BreakdownResponse {
	resp := &BreakdownResponse{Rules: contributions}
	for _, c := range contributions {
		resp.Points += c.Points
	}
	return resp
}
