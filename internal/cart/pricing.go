package cart

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	pkgerrors "github.com/shivaganesh9515/nextgen-organic-backend/pkg/errors"
)

var oneHundred = decimal.NewFromInt(100)

// VendorRate carries the per-vendor inputs the calculator needs.
type VendorRate struct {
	VendorID    uuid.UUID
	VendorName  string
	DeliveryFee decimal.Decimal
}

// PricedLine is a cart line with its effective unit price resolved.
type PricedLine struct {
	Line
	EffectiveUnitPrice decimal.Decimal
	LineTotal          decimal.Decimal
}

// VendorGroup is one vendor's bucket of priced lines. Groups are ordered by
// the first appearance of each vendor in the source line list.
type VendorGroup struct {
	VendorID   uuid.UUID
	VendorName string
	Lines      []PricedLine
}

// VendorTotal summarizes one vendor bucket.
type VendorTotal struct {
	Subtotal    decimal.Decimal
	DeliveryFee decimal.Decimal
	Total       decimal.Decimal
}

// Quote is the complete pricing result for a cart.
type Quote struct {
	Groups       []VendorGroup
	VendorTotals map[uuid.UUID]VendorTotal
	Subtotal     decimal.Decimal
	DeliveryFee  decimal.Decimal
	Discount     decimal.Decimal
	Total        decimal.Decimal
}

// DiscountedUnitPrice resolves the effective unit price for a line: when an
// original price is present the discount percentage is applied to it,
// otherwise the plain price stands.
func DiscountedUnitPrice(line Line) decimal.Decimal {
	if line.OriginalPrice == nil {
		return line.UnitPrice
	}
	discount := decimal.Zero
	if line.DiscountPercent != nil {
		discount = *line.DiscountPercent
	}
	return line.OriginalPrice.Sub(line.OriginalPrice.Mul(discount).Div(oneHundred))
}

// ComputeQuote partitions the lines by vendor (first-appearance order),
// prices each bucket, waives delivery fees at the threshold, and folds the
// buckets into grand totals. The coupon discount is clamped so the grand
// total never goes negative. It is a pure function: no side effects, full
// decimal precision throughout.
func ComputeQuote(lines []Line, rates map[uuid.UUID]VendorRate, freeDeliveryThreshold decimal.Decimal, couponDiscount decimal.Decimal) (Quote, error) {
	quote := Quote{
		VendorTotals: make(map[uuid.UUID]VendorTotal, len(rates)),
		Subtotal:     decimal.Zero,
		DeliveryFee:  decimal.Zero,
		Discount:     decimal.Zero,
		Total:        decimal.Zero,
	}

	groupIndex := make(map[uuid.UUID]int, len(rates))
	for _, line := range lines {
		if line.VendorID == uuid.Nil {
			return Quote{}, pkgerrors.New(pkgerrors.CodeValidation, "cart line is missing its vendor reference")
		}
		if line.Quantity < 1 {
			return Quote{}, pkgerrors.New(pkgerrors.CodeValidation, "cart line quantity must be at least 1")
		}
		if line.DiscountPercent != nil &&
			(line.DiscountPercent.IsNegative() || line.DiscountPercent.GreaterThan(oneHundred)) {
			return Quote{}, pkgerrors.New(pkgerrors.CodeValidation, "discount percent must be between 0 and 100")
		}

		rate, ok := rates[line.VendorID]
		if !ok {
			return Quote{}, pkgerrors.New(pkgerrors.CodeValidation, "unknown vendor on cart line")
		}

		idx, ok := groupIndex[line.VendorID]
		if !ok {
			idx = len(quote.Groups)
			groupIndex[line.VendorID] = idx
			quote.Groups = append(quote.Groups, VendorGroup{
				VendorID:   line.VendorID,
				VendorName: rate.VendorName,
			})
		}

		unit := DiscountedUnitPrice(line)
		lineTotal := unit.Mul(decimal.NewFromInt(int64(line.Quantity)))
		quote.Groups[idx].Lines = append(quote.Groups[idx].Lines, PricedLine{
			Line:               line,
			EffectiveUnitPrice: unit,
			LineTotal:          lineTotal,
		})
	}

	for _, group := range quote.Groups {
		subtotal := decimal.Zero
		for _, line := range group.Lines {
			subtotal = subtotal.Add(line.LineTotal)
		}

		fee := rates[group.VendorID].DeliveryFee
		if subtotal.GreaterThanOrEqual(freeDeliveryThreshold) {
			fee = decimal.Zero
		}

		quote.VendorTotals[group.VendorID] = VendorTotal{
			Subtotal:    subtotal,
			DeliveryFee: fee,
			Total:       subtotal.Add(fee),
		}
		quote.Subtotal = quote.Subtotal.Add(subtotal)
		quote.DeliveryFee = quote.DeliveryFee.Add(fee)
	}

	discount := couponDiscount
	if discount.IsNegative() {
		discount = decimal.Zero
	}
	gross := quote.Subtotal.Add(quote.DeliveryFee)
	if discount.GreaterThan(gross) {
		discount = gross
	}
	quote.Discount = discount
	quote.Total = gross.Sub(discount)

	return quote, nil
}
