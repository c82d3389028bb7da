// Package validator turns an untyped decoded receipt into a models.Record, or
// reports every field that fails its format check.
//
// The checks are syntactic only. A purchaseDate of 2022-13-32 passes; it is
// the shape that matters, not calendar validity.
package validator

import (
	"regexp"

	"receipts/internal/receipt/models"
	"receipts/pkg/platform/validation"
)

// Whitespace in the Unicode sense: RE2's \s is ASCII-only and omits \v.
const space = `\s\v\p{Z}`

var (
	retailerPattern    = regexp.MustCompile(`^[^` + space + `](?:.*[^` + space + `])?$`)
	datePattern        = regexp.MustCompile(`^[0-9]{4}-[0-9]{2}-[0-9]{2}$`)
	timePattern        = regexp.MustCompile(`^(?:[01]?[0-9]|2[0-3]):[0-5][0-9]$`)
	descriptionPattern = regexp.MustCompile(`^[\p{L}\p{N}_` + space + `\-]+$`)
	amountPattern      = regexp.MustCompile(`^[0-9]+\.[0-9]{2}$`)
)

var itemSchema = validation.NewSchema(
	validation.Required("shortDescription", validation.String(descriptionPattern)),
	validation.Required("price", validation.String(amountPattern)),
)

var receiptSchema = validation.NewSchema(
	validation.Required("retailer", validation.String(retailerPattern)),
	validation.Required("purchaseDate", validation.String(datePattern)),
	validation.Required("purchaseTime", validation.String(timePattern)),
	validation.Required("items", validation.List(1, validation.Object(itemSchema))),
	validation.Required("total", validation.String(amountPattern)),
)

// Validate checks raw (typically the result of decoding a JSON body into any)
// and returns the typed record. On failure the error is a *validation.Error
// listing every failing field.
func Validate(raw any) (models.Record, error) {
	if err := receiptSchema.Validate(raw); err != nil {
		return models.Record{}, err
	}
	return toRecord(raw.(map[string]any)), nil
}

// toRecord assumes raw already passed receiptSchema.
func toRecord(raw map[string]any) models.Record {
	rawItems := raw["items"].([]any)
	items := make([]models.Item, 0, len(rawItems))
	for _, ri := range rawItems {
		obj := ri.(map[string]any)
		items = append(items, models.Item{
			ShortDescription: obj["shortDescription"].(string),
			Price:            obj["price"].(string),
		})
	}
	return models.Record{
		Retailer:     raw["retailer"].(string),
		PurchaseDate: raw["purchaseDate"].(string),
		PurchaseTime: raw["purchaseTime"].(string),
		Items:        items,
		Total:        raw["total"].(string),
	}
}
