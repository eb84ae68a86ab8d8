package cart

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Line is one product entry in a cart snapshot. Product pricing fields are
// copied in when the line is created so the snapshot stays renderable even
// if the catalog row changes later.
type Line struct {
	ProductID       uuid.UUID        `json:"product_id"`
	VendorID        uuid.UUID        `json:"vendor_id"`
	ProductName     string           `json:"product_name"`
	Unit            string           `json:"unit"`
	UnitPrice       decimal.Decimal  `json:"unit_price"`
	OriginalPrice   *decimal.Decimal `json:"original_price,omitempty"`
	DiscountPercent *decimal.Decimal `json:"discount_percent,omitempty"`
	Quantity        int              `json:"quantity"`
}

// Snapshot is the full cart: an ordered list of lines keyed by product id.
// The whole slice is serialized to a single durable key on every mutation.
type Snapshot struct {
	Lines []Line `json:"lines"`
}

// find returns the index of the line for productID, or -1.
func (s *Snapshot) find(productID uuid.UUID) int {
	for i := range s.Lines {
		if s.Lines[i].ProductID == productID {
			return i
		}
	}
	return -1
}

// Add merges a line into the snapshot: an existing entry for the same
// product has its quantity incremented, otherwise the line is appended.
func (s *Snapshot) Add(line Line) {
	if idx := s.find(line.ProductID); idx >= 0 {
		s.Lines[idx].Quantity += line.Quantity
		return
	}
	s.Lines = append(s.Lines, line)
}

// Remove drops the line for productID; absent products are a no-op.
func (s *Snapshot) Remove(productID uuid.UUID) {
	if idx := s.find(productID); idx >= 0 {
		s.Lines = append(s.Lines[:idx], s.Lines[idx+1:]...)
	}
}

// SetQuantity updates the quantity for productID. A quantity of zero or
// less removes the line, mirroring Remove.
func (s *Snapshot) SetQuantity(productID uuid.UUID, quantity int) {
	if quantity <= 0 {
		s.Remove(productID)
		return
	}
	if idx := s.find(productID); idx >= 0 {
		s.Lines[idx].Quantity = quantity
	}
}

// TotalItemCount sums the quantities across all lines.
func (s *Snapshot) TotalItemCount() int {
	var count int
	for _, line := range s.Lines {
		count += line.Quantity
	}
	return count
}

// TotalPrice sums the discount-aware line totals. The same unit price
// function backs the detailed vendor breakdown, so the simple aggregate and
// the grouped view always agree.
func (s *Snapshot) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for _, line := range s.Lines {
		total = total.Add(DiscountedUnitPrice(line).Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	return total
}
