package domain

import (
	"github.com/google/uuid"

	dErrors "receipts/pkg/domain-errors"
)

// ReceiptID identifies a processed receipt. It is a random (v4) UUID.
type ReceiptID uuid.UUID

// NewReceiptID returns a fresh random receipt identifier.
func NewReceiptID() ReceiptID {
	return ReceiptID(uuid.New())
}

// ParseReceiptID parses a receipt identifier at a trust boundary.
// Empty, malformed and nil UUIDs are rejected with CodeInvalidInput.
func ParseReceiptID(s string) (ReceiptID, error) {
	if s == "" {
		return ReceiptID{}, dErrors.New(dErrors.CodeInvalidInput, "receipt id is required")
	}
	parsed, err := uuid.Parse(s)
	if err != nil {
		return ReceiptID{}, dErrors.Wrap(err, dErrors.CodeInvalidInput, "invalid receipt id")
	}
	if parsed == uuid.Nil {
		return ReceiptID{}, dErrors.New(dErrors.CodeInvalidInput, "receipt id cannot be nil")
	}
	return ReceiptID(parsed), nil
}

func (id ReceiptID) String() string {
	return uuid.UUID(id).String()
}

// IsNil reports whether the identifier is the zero UUID.
func (id ReceiptID) IsNil() bool {
	return uuid.UUID(id) == uuid.Nil
}

// MarshalText encodes the identifier in canonical UUID form so it can be used
// as a JSON value and as a JSON map key.
func (id ReceiptID) MarshalText() ([]byte, error) {
	return uuid.UUID(id).MarshalText()
}

// UnmarshalText decodes a canonical UUID string.
func (id *ReceiptID) UnmarshalText(data []byte) error {
	var u uuid.UUID
	if err := u.UnmarshalText(data); err != nil {
		return err
	}
	*id = ReceiptID(u)
	return nil
}
