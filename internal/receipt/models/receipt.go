package models

import (
	id "receipts/pkg/domain"
	dErrors "receipts/pkg/domain-errors"
)

// Item is one purchased line on a receipt.
type Item struct {
	ShortDescription string `json:"shortDescription"`
	Price            string `json:"price"`
}

// Record is a receipt that has passed validation. Only the validator
// constructs it, so scoring code can rely on every format check.
type Record struct {
	Retailer     string `json:"retailer"`
	PurchaseDate string `json:"purchaseDate"`
	PurchaseTime string `json:"purchaseTime"`
	Items        []Item `json:"items"`
	Total        string `json:"total"`
}

// Clone returns a deep copy so callers cannot mutate a stored record.
func (r Record) Clone() Record {
	out := r
	out.Items = append([]Item(nil), r.Items...)
	return out
}

// Receipt is the stored entity.
//
// Invariants:
//   - Points is computed once, from Data alone, before the receipt exists
//   - Data is never mutated after validation
//   - ID is unique within the store holding the receipt (the store may
//     replace it on insert to keep that true)
type Receipt struct {
	ID     id.ReceiptID `json:"id"`
	Points int          `json:"points"`
	Data   Record       `json:"receipt"`
}

// NewReceipt assembles a receipt from an already validated record and its
// score.
func NewReceipt(receiptID id.ReceiptID, data Record, points int) (*Receipt, error) {
	if receiptID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "receipt id cannot be nil")
	}
	if points < 0 {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "receipt points cannot be negative")
	}
	return &Receipt{
		ID:     receiptID,
		Points: points,
		Data:   data.Clone(),
	}, nil
}

// Clone returns a copy of the receipt that shares no mutable state.
func (r *Receipt) Clone() *Receipt {
	if r == nil {
		return nil
	}
	return &Receipt{ID: r.ID, Points: r.Points, Data: r.Data.Clone()}
}
