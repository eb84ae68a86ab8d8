package checkout

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/shivaganesh9515/nextgen-organic-backend/internal/cart"
	"github.com/shivaganesh9515/nextgen-organic-backend/internal/wizard"
	"github.com/shivaganesh9515/nextgen-organic-backend/pkg/db/models"
	pkgerrors "github.com/shivaganesh9515/nextgen-organic-backend/pkg/errors"
	"github.com/shivaganesh9515/nextgen-organic-backend/pkg/logger"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

type memorySessions struct {
	states    map[string]wizard.State
	deleteErr error
}

func (m *memorySessions) Load(_ context.Context, userID string) (wizard.State, error) {
	state, ok := m.states[userID]
	if !ok {
		return wizard.State{}, pkgerrors.New(pkgerrors.CodeNotFound, "no checkout session in progress")
	}
	return state, nil
}

func (m *memorySessions) Save(_ context.Context, userID string, state wizard.State) error {
	m.states[userID] = state
	return nil
}

func (m *memorySessions) Delete(_ context.Context, userID string) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	delete(m.states, userID)
	return nil
}

// fakeCart holds one snapshot per user and prices it with a flat quote.
type fakeCart struct {
	snapshots map[string]cart.Snapshot
	quote     cart.Quote
	cleared   []string
	clearErr  error
}

func (f *fakeCart) Get(_ context.Context, userID string) (cart.Snapshot, error) {
	return f.snapshots[userID], nil
}

func (f *fakeCart) AddItem(_ context.Context, _ string, _ uuid.UUID, _ int) (cart.Snapshot, error) {
	panic("not used")
}

func (f *fakeCart) RemoveItem(_ context.Context, _ string, _ uuid.UUID) (cart.Snapshot, error) {
	panic("not used")
}

func (f *fakeCart) UpdateQuantity(_ context.Context, _ string, _ uuid.UUID, _ int) (cart.Snapshot, error) {
	panic("not used")
}

func (f *fakeCart) Clear(_ context.Context, userID string) error {
	if f.clearErr != nil {
		return f.clearErr
	}
	f.cleared = append(f.cleared, userID)
	delete(f.snapshots, userID)
	return nil
}

func (f *fakeCart) Quote(_ context.Context, _ string, _ string) (cart.Quote, error) {
	return f.quote, nil
}

type memoryOrders struct {
	orders map[uuid.UUID]*models.Order
}

func (m *memoryOrders) CreateOrder(_ context.Context, _ *gorm.DB, order *models.Order) error {
	m.orders[order.ID] = order
	return nil
}

func (m *memoryOrders) GetOrder(_ context.Context, id uuid.UUID) (*models.Order, error) {
	order, ok := m.orders[id]
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}
	return order, nil
}

func (m *memoryOrders) ListForUser(_ context.Context, userID uuid.UUID) ([]models.Order, error) {
	var out []models.Order
	for _, o := range m.orders {
		if o.UserID == userID {
			out = append(out, *o)
		}
	}
	return out, nil
}

type passthroughTx struct{}

func (passthroughTx) WithTx(_ context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

type fixture struct {
	service  Service
	sessions *memorySessions
	cart     *fakeCart
	orders   *memoryOrders
	userID   uuid.UUID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	userID := uuid.New()
	vendorID := uuid.New()
	line := cart.Line{
		ProductID:   uuid.New(),
		VendorID:    vendorID,
		ProductName: "Apples",
		UnitPrice:   dec("100"),
		Quantity:    2,
	}
	quote := cart.Quote{
		Groups: []cart.VendorGroup{{
			VendorID:   vendorID,
			VendorName: "Orchard Fresh",
			Lines: []cart.PricedLine{{
				Line:               line,
				EffectiveUnitPrice: dec("100"),
				LineTotal:          dec("200"),
			}},
		}},
		VendorTotals: map[uuid.UUID]cart.VendorTotal{
			vendorID: {Subtotal: dec("200"), DeliveryFee: dec("20"), Total: dec("220")},
		},
		Subtotal:    dec("200"),
		DeliveryFee: dec("20"),
		Discount:    dec("0"),
		Total:       dec("220"),
	}

	sessions := &memorySessions{states: map[string]wizard.State{}}
	fc := &fakeCart{
		snapshots: map[string]cart.Snapshot{userID.String(): {Lines: []cart.Line{line}}},
		quote:     quote,
	}
	orders := &memoryOrders{orders: map[uuid.UUID]*models.Order{}}

	svc, err := NewService(ServiceParams{
		Sessions:   sessions,
		Cart:       fc,
		Repository: orders,
		Tx:         passthroughTx{},
		Logger:     logger.New(logger.Options{Level: zerolog.Disabled}),
	})
	require.NoError(t, err)

	return &fixture{service: svc, sessions: sessions, cart: fc, orders: orders, userID: userID}
}

func addressFields() map[string]string {
	return map[string]string{
		"delivery_name":  "Asha Patel",
		"delivery_phone": "9876543210",
		"address_line":   "14 Market Road",
		"city":           "Pune",
		"pincode":        "411001",
	}
}

func (f *fixture) walkToReview(t *testing.T) {
	t.Helper()
	ctx := context.Background()

	_, err := f.service.Start(ctx, f.userID)
	require.NoError(t, err)
	_, err = f.service.Advance(ctx, f.userID, addressFields())
	require.NoError(t, err)
	_, err = f.service.Advance(ctx, f.userID, map[string]string{"delivery_slot": "morning"})
	require.NoError(t, err)
	state, err := f.service.Advance(ctx, f.userID, map[string]string{"payment_method": "cod"})
	require.NoError(t, err)
	require.True(t, Flow.IsFinal(state))
}

func TestStartRequiresNonEmptyCart(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.cart.snapshots = map[string]cart.Snapshot{}

	_, err := f.service.Start(context.Background(), f.userID)
	require.Error(t, err)
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeStateConflict, appErr.Code())
}

func TestAdvanceValidationKeepsStoredState(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	_, err := f.service.Start(ctx, f.userID)
	require.NoError(t, err)

	fields := addressFields()
	fields["delivery_phone"] = "12"
	_, err = f.service.Advance(ctx, f.userID, fields)
	require.Error(t, err)

	state, err := f.service.Current(ctx, f.userID)
	require.NoError(t, err)
	assert.Equal(t, 0, state.Index)
}

func TestBackPreservesFields(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	_, err := f.service.Start(ctx, f.userID)
	require.NoError(t, err)
	_, err = f.service.Advance(ctx, f.userID, addressFields())
	require.NoError(t, err)

	state, err := f.service.Back(ctx, f.userID)
	require.NoError(t, err)
	assert.Equal(t, 0, state.Index)
	assert.Equal(t, "Pune", state.Fields["city"])
}

func TestSubmitBeforeFinalStepFails(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	_, err := f.service.Start(ctx, f.userID)
	require.NoError(t, err)

	_, err = f.service.Submit(ctx, f.userID, "")
	require.Error(t, err)
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeStateConflict, appErr.Code())
}

func TestSubmitCreatesOrderAndClearsCart(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()
	f.walkToReview(t)

	order, err := f.service.Submit(ctx, f.userID, "")
	require.NoError(t, err)

	assert.True(t, order.Total.Equal(dec("220")))
	assert.Equal(t, "Asha Patel", order.DeliveryName)
	assert.Equal(t, "cod", order.PaymentMethod)
	require.Len(t, order.VendorGroups, 1)
	group := order.VendorGroups[0]
	assert.Equal(t, "Orchard Fresh", group.VendorName)
	assert.Equal(t, 0, group.Position)
	require.Len(t, group.Items, 1)
	assert.Equal(t, "Apples", group.Items[0].ProductName)
	assert.True(t, group.Items[0].LineTotal.Equal(dec("200")))

	// Cart and session are consumed by the submit.
	assert.Contains(t, f.cart.cleared, f.userID.String())
	_, err = f.service.Current(ctx, f.userID)
	require.Error(t, err)

	// The order is readable back by its owner only.
	got, err := f.service.GetOrder(ctx, f.userID, order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.ID, got.ID)

	_, err = f.service.GetOrder(ctx, uuid.New(), order.ID)
	require.Error(t, err)
}

func TestSubmitSucceedsWhenCleanupFails(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()
	f.walkToReview(t)

	f.cart.clearErr = pkgerrors.New(pkgerrors.CodeDependency, "cache unavailable")
	f.sessions.deleteErr = pkgerrors.New(pkgerrors.CodeDependency, "cache unavailable")

	order, err := f.service.Submit(ctx, f.userID, "")
	require.NoError(t, err)
	require.Len(t, f.orders.orders, 1)
	assert.True(t, order.Total.Equal(dec("220")))
}
