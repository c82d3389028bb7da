package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "receipts/pkg/domain"
	dErrors "receipts/pkg/domain-errors"
)

func record() Record {
	return Record{
		Retailer:     "Target",
		PurchaseDate: "2022-01-01",
		PurchaseTime: "13:01",
		Items:        []Item{{ShortDescription: "Pepsi - 12-oz", Price: "1.25"}},
		Total:        "1.25",
	}
}

func TestNewReceipt(t *testing.T) {
	t.Run("assembles id, points and data", func(t *testing.T) {
		receiptID := id.NewReceiptID()
		r, err := NewReceipt(receiptID, record(), 31)
		require.NoError(t, err)
		assert.Equal(t, receiptID, r.ID)
		assert.Equal(t, 31, r.Points)
		assert.Equal(t, record(), r.Data)
	})

	t.Run("rejects nil id", func(t *testing.T) {
		_, err := NewReceipt(id.ReceiptID{}, record(), 1)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvariantViolation))
	})

	t.Run("rejects negative points", func(t *testing.T) {
		_, err := NewReceipt(id.NewReceiptID(), record(), -1)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvariantViolation))
	})

	t.Run("does not alias the caller's items", func(t *testing.T) {
		data := record()
		r, err := NewReceipt(id.NewReceiptID(), data, 1)
		require.NoError(t, err)

		data.Items[0].Price = "9.99"
		assert.Equal(t, "1.25", r.Data.Items[0].Price)
	})
}

func TestReceiptClone(t *testing.T) {
	r, err := NewReceipt(id.NewReceiptID(), record(), 7)
	require.NoError(t, err)

	c := r.Clone()
	assert.Equal(t, r, c)

	c.Data.Items[0].ShortDescription = "changed"
	c.Points = 0
	assert.Equal(t, "Pepsi - 12-oz", r.Data.Items[0].ShortDescription)
	assert.Equal(t, 7, r.Points)

	var nilReceipt *Receipt
	assert.Nil(t, nilReceipt.Clone())
}
