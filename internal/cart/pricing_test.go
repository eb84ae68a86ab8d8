package cart

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/shivaganesh9515/nextgen-organic-backend/pkg/errors"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func TestDiscountedUnitPrice(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		line Line
		want string
	}{
		{
			name: "plain price when no original price",
			line: Line{UnitPrice: dec("100")},
			want: "100",
		},
		{
			name: "discount applied to original price",
			line: Line{UnitPrice: dec("80"), OriginalPrice: decPtr("100"), DiscountPercent: decPtr("25")},
			want: "75",
		},
		{
			name: "original price with zero discount",
			line: Line{UnitPrice: dec("80"), OriginalPrice: decPtr("100")},
			want: "100",
		},
		{
			name: "fractional discount keeps precision",
			line: Line{UnitPrice: dec("90"), OriginalPrice: decPtr("99.99"), DiscountPercent: decPtr("10")},
			want: "89.991",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := DiscountedUnitPrice(tc.line)
			assert.True(t, got.Equal(dec(tc.want)), "got %s want %s", got, tc.want)
		})
	}
}

func TestComputeQuoteTwoVendors(t *testing.T) {
	t.Parallel()

	vendorA := uuid.New()
	vendorB := uuid.New()
	rates := map[uuid.UUID]VendorRate{
		vendorA: {VendorID: vendorA, VendorName: "Orchard Fresh", DeliveryFee: dec("20")},
		vendorB: {VendorID: vendorB, VendorName: "Daily Bakery", DeliveryFee: dec("20")},
	}

	lines := []Line{
		{ProductID: uuid.New(), VendorID: vendorA, ProductName: "Apple", UnitPrice: dec("100"), Quantity: 1},
		{ProductID: uuid.New(), VendorID: vendorB, ProductName: "Bread", UnitPrice: dec("450"), Quantity: 1},
	}

	quote, err := ComputeQuote(lines, rates, dec("500"), decimal.Zero)
	require.NoError(t, err)

	require.Len(t, quote.Groups, 2)
	assert.Equal(t, vendorA, quote.Groups[0].VendorID, "first-appearance order")
	assert.Equal(t, vendorB, quote.Groups[1].VendorID)

	assert.True(t, quote.VendorTotals[vendorA].DeliveryFee.Equal(dec("20")))
	assert.True(t, quote.VendorTotals[vendorB].DeliveryFee.Equal(dec("20")))
	assert.True(t, quote.Subtotal.Equal(dec("550")))
	assert.True(t, quote.DeliveryFee.Equal(dec("40")))
	assert.True(t, quote.Total.Equal(dec("590")))
}

func TestComputeQuoteFeeWaivedAtThreshold(t *testing.T) {
	t.Parallel()

	vendorB := uuid.New()
	rates := map[uuid.UUID]VendorRate{
		vendorB: {VendorID: vendorB, VendorName: "Daily Bakery", DeliveryFee: dec("20")},
	}

	lines := []Line{
		{ProductID: uuid.New(), VendorID: vendorB, ProductName: "Bread", UnitPrice: dec("450"), Quantity: 2},
	}

	quote, err := ComputeQuote(lines, rates, dec("500"), decimal.Zero)
	require.NoError(t, err)

	total := quote.VendorTotals[vendorB]
	assert.True(t, total.Subtotal.Equal(dec("900")))
	assert.True(t, total.DeliveryFee.IsZero(), "fee waived at threshold")
	assert.True(t, quote.Total.Equal(dec("900")))
}

func TestComputeQuoteFeeWaivedExactlyAtThreshold(t *testing.T) {
	t.Parallel()

	vendor := uuid.New()
	rates := map[uuid.UUID]VendorRate{
		vendor: {VendorID: vendor, DeliveryFee: dec("35")},
	}
	lines := []Line{
		{ProductID: uuid.New(), VendorID: vendor, UnitPrice: dec("500"), Quantity: 1},
	}

	quote, err := ComputeQuote(lines, rates, dec("500"), decimal.Zero)
	require.NoError(t, err)
	assert.True(t, quote.VendorTotals[vendor].DeliveryFee.IsZero())
}

func TestComputeQuotePartition(t *testing.T) {
	t.Parallel()

	vendorA := uuid.New()
	vendorB := uuid.New()
	rates := map[uuid.UUID]VendorRate{
		vendorA: {VendorID: vendorA, DeliveryFee: dec("10")},
		vendorB: {VendorID: vendorB, DeliveryFee: dec("15")},
	}

	lines := []Line{
		{ProductID: uuid.New(), VendorID: vendorB, UnitPrice: dec("40"), Quantity: 1},
		{ProductID: uuid.New(), VendorID: vendorA, UnitPrice: dec("30"), Quantity: 2},
		{ProductID: uuid.New(), VendorID: vendorB, UnitPrice: dec("25"), Quantity: 1},
	}

	quote, err := ComputeQuote(lines, rates, dec("500"), decimal.Zero)
	require.NoError(t, err)

	// Every line lands in exactly one group, and groups follow first appearance.
	require.Len(t, quote.Groups, 2)
	assert.Equal(t, vendorB, quote.Groups[0].VendorID)
	assert.Equal(t, vendorA, quote.Groups[1].VendorID)

	seen := 0
	for _, g := range quote.Groups {
		for _, l := range g.Lines {
			assert.Equal(t, g.VendorID, l.VendorID)
			seen++
		}
	}
	assert.Equal(t, len(lines), seen)

	// Sum of vendor subtotals matches the flat subtotal.
	sum := decimal.Zero
	for _, vt := range quote.VendorTotals {
		sum = sum.Add(vt.Subtotal)
	}
	assert.True(t, sum.Equal(quote.Subtotal))
}

func TestComputeQuoteCouponClamp(t *testing.T) {
	t.Parallel()

	vendor := uuid.New()
	rates := map[uuid.UUID]VendorRate{
		vendor: {VendorID: vendor, DeliveryFee: dec("20")},
	}
	lines := []Line{
		{ProductID: uuid.New(), VendorID: vendor, UnitPrice: dec("50"), Quantity: 1},
	}

	quote, err := ComputeQuote(lines, rates, dec("500"), dec("500"))
	require.NoError(t, err)
	assert.True(t, quote.Total.IsZero(), "grand total floors at zero")
	assert.True(t, quote.Discount.Equal(dec("70")), "discount clamped to the gross amount")
}

func TestComputeQuoteEmptyCart(t *testing.T) {
	t.Parallel()

	quote, err := ComputeQuote(nil, nil, dec("500"), decimal.Zero)
	require.NoError(t, err)
	assert.Empty(t, quote.Groups)
	assert.True(t, quote.Total.IsZero())
}

func TestComputeQuoteValidation(t *testing.T) {
	t.Parallel()

	vendor := uuid.New()
	rates := map[uuid.UUID]VendorRate{
		vendor: {VendorID: vendor, DeliveryFee: dec("20")},
	}

	tests := []struct {
		name  string
		lines []Line
	}{
		{
			name:  "missing vendor id",
			lines: []Line{{ProductID: uuid.New(), UnitPrice: dec("10"), Quantity: 1}},
		},
		{
			name:  "unknown vendor",
			lines: []Line{{ProductID: uuid.New(), VendorID: uuid.New(), UnitPrice: dec("10"), Quantity: 1}},
		},
		{
			name:  "zero quantity",
			lines: []Line{{ProductID: uuid.New(), VendorID: vendor, UnitPrice: dec("10"), Quantity: 0}},
		},
		{
			name: "discount out of range",
			lines: []Line{{
				ProductID: uuid.New(), VendorID: vendor,
				UnitPrice: dec("10"), OriginalPrice: decPtr("20"), DiscountPercent: decPtr("120"),
				Quantity: 1,
			}},
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := ComputeQuote(tc.lines, rates, dec("500"), decimal.Zero)
			require.Error(t, err)
			appErr := pkgerrors.As(err)
			require.NotNil(t, appErr)
			assert.Equal(t, pkgerrors.CodeValidation, appErr.Code())
		})
	}
}
