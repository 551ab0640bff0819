package pricing

import (
	"errors"
	"math"

	"github.com/shopspring/decimal"
)

var ErrInvalidAmount = errors.New("invalid amount")

const (
	// FreeShippingThreshold is the subtotal at which shipping becomes free.
	FreeShippingThreshold = 50.00
	// FlatShippingCost applies below the free shipping threshold.
	FlatShippingCost = 5.99
	// TaxRate is the fixed sales tax fraction applied to the subtotal.
	TaxRate = 0.08
)

var (
	freeShippingThreshold = decimal.NewFromFloat(FreeShippingThreshold)
	flatShippingCost      = decimal.NewFromFloat(FlatShippingCost)
	taxRate               = decimal.NewFromFloat(TaxRate)
)

// Quote holds the shipping, tax and grand total derived from a subtotal.
// Cart display and order creation both go through Calculate, so the two
// always agree exactly.
type Quote struct {
	Subtotal     float64 `json:"subtotal"`
	ShippingCost float64 `json:"shipping_cost"`
	Tax          float64 `json:"tax"`
	Total        float64 `json:"total"`
}

// Calculate derives shipping cost, tax and total for a subtotal. Tax is
// rounded half-up to 2 decimal places here, at the edge, not earlier, so
// rounding error never compounds.
func Calculate(subtotal float64) (Quote, error) {
	if subtotal < 0 || math.IsNaN(subtotal) || math.IsInf(subtotal, 0) {
		return Quote{}, ErrInvalidAmount
	}

	sub := decimal.NewFromFloat(subtotal).Round(2)

	shipping := flatShippingCost
	if sub.GreaterThanOrEqual(freeShippingThreshold) {
		shipping = decimal.Zero
	}

	tax := sub.Mul(taxRate).Round(2)
	total := sub.Add(shipping).Add(tax)

	return Quote{
		Subtotal:     sub.InexactFloat64(),
		ShippingCost: shipping.InexactFloat64(),
		Tax:          tax.InexactFloat64(),
		Total:        total.InexactFloat64(),
	}, nil
}
