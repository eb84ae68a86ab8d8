package cart

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestSnapshotAddMergesQuantities(t *testing.T) {
	t.Parallel()

	productID := uuid.New()
	var snapshot Snapshot
	snapshot.Add(Line{ProductID: productID, VendorID: uuid.New(), UnitPrice: dec("10"), Quantity: 2})
	snapshot.Add(Line{ProductID: productID, VendorID: uuid.New(), UnitPrice: dec("10"), Quantity: 3})

	assert.Len(t, snapshot.Lines, 1)
	assert.Equal(t, 5, snapshot.Lines[0].Quantity)
	assert.Equal(t, 5, snapshot.TotalItemCount())
}

func TestSnapshotAddKeepsInsertionOrder(t *testing.T) {
	t.Parallel()

	first := uuid.New()
	second := uuid.New()
	var snapshot Snapshot
	snapshot.Add(Line{ProductID: first, Quantity: 1})
	snapshot.Add(Line{ProductID: second, Quantity: 1})
	snapshot.Add(Line{ProductID: first, Quantity: 1})

	assert.Equal(t, first, snapshot.Lines[0].ProductID)
	assert.Equal(t, second, snapshot.Lines[1].ProductID)
}

func TestSnapshotRemoveAbsentIsNoOp(t *testing.T) {
	t.Parallel()

	var snapshot Snapshot
	snapshot.Add(Line{ProductID: uuid.New(), Quantity: 1})
	snapshot.Remove(uuid.New())
	assert.Len(t, snapshot.Lines, 1)
}

func TestSnapshotSetQuantityZeroRemoves(t *testing.T) {
	t.Parallel()

	productID := uuid.New()
	var snapshot Snapshot
	snapshot.Add(Line{ProductID: productID, Quantity: 4})

	snapshot.SetQuantity(productID, 0)
	assert.Empty(t, snapshot.Lines)

	snapshot.Add(Line{ProductID: productID, Quantity: 4})
	snapshot.SetQuantity(productID, -2)
	assert.Empty(t, snapshot.Lines)
}

func TestSnapshotSetQuantityReplaces(t *testing.T) {
	t.Parallel()

	productID := uuid.New()
	var snapshot Snapshot
	snapshot.Add(Line{ProductID: productID, Quantity: 4})
	snapshot.SetQuantity(productID, 7)
	assert.Equal(t, 7, snapshot.Lines[0].Quantity)
}

func TestSnapshotTotalPriceUsesDiscounts(t *testing.T) {
	t.Parallel()

	var snapshot Snapshot
	snapshot.Add(Line{ProductID: uuid.New(), UnitPrice: dec("50"), Quantity: 2})
	snapshot.Add(Line{
		ProductID:       uuid.New(),
		UnitPrice:       dec("80"),
		OriginalPrice:   decPtr("100"),
		DiscountPercent: decPtr("25"),
		Quantity:        1,
	})

	assert.True(t, snapshot.TotalPrice().Equal(dec("175")))
}
