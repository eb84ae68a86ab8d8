package checkout

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shivaganesh9515/nextgen-organic-backend/internal/cart"
	"github.com/shivaganesh9515/nextgen-organic-backend/internal/wizard"
	"github.com/shivaganesh9515/nextgen-organic-backend/pkg/db/models"
	"github.com/shivaganesh9515/nextgen-organic-backend/pkg/enums"
	pkgerrors "github.com/shivaganesh9515/nextgen-organic-backend/pkg/errors"
	"github.com/shivaganesh9515/nextgen-organic-backend/pkg/logger"
)

// TxRunner runs a function inside a database transaction.
type TxRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service drives the checkout wizard and turns a finished session plus a
// priced cart into a placed order.
type Service interface {
	Start(ctx context.Context, userID uuid.UUID) (wizard.State, error)
	Current(ctx context.Context, userID uuid.UUID) (wizard.State, error)
	Advance(ctx context.Context, userID uuid.UUID, fields map[string]string) (wizard.State, error)
	Back(ctx context.Context, userID uuid.UUID) (wizard.State, error)
	Submit(ctx context.Context, userID uuid.UUID, couponCode string) (*models.Order, error)
	GetOrder(ctx context.Context, userID, orderID uuid.UUID) (*models.Order, error)
	ListOrders(ctx context.Context, userID uuid.UUID) ([]models.Order, error)
}

type ServiceParams struct {
	Sessions   SessionStore
	Cart       cart.Service
	Repository Repository
	Tx         TxRunner
	Logger     *logger.Logger
}

type service struct {
	sessions SessionStore
	cart     cart.Service
	repo     Repository
	tx       TxRunner
	logger   *logger.Logger
}

func NewService(params ServiceParams) (Service, error) {
	if params.Sessions == nil {
		return nil, errors.New("checkout service requires a session store")
	}
	if params.Cart == nil {
		return nil, errors.New("checkout service requires the cart service")
	}
	if params.Repository == nil {
		return nil, errors.New("checkout service requires a repository")
	}
	if params.Tx == nil {
		return nil, errors.New("checkout service requires a transaction runner")
	}
	if params.Logger == nil {
		return nil, errors.New("checkout service requires a logger")
	}
	return &service{
		sessions: params.Sessions,
		cart:     params.Cart,
		repo:     params.Repository,
		tx:       params.Tx,
		logger:   params.Logger,
	}, nil
}

// Start opens a fresh session. An empty cart cannot enter checkout.
func (s *service) Start(ctx context.Context, userID uuid.UUID) (wizard.State, error) {
	snapshot, err := s.cart.Get(ctx, userID.String())
	if err != nil {
		return wizard.State{}, err
	}
	if len(snapshot.Lines) == 0 {
		return wizard.State{}, pkgerrors.New(pkgerrors.CodeStateConflict, "cart is empty")
	}

	state := wizard.NewState()
	if err := s.sessions.Save(ctx, userID.String(), state); err != nil {
		return wizard.State{}, err
	}
	return state, nil
}

func (s *service) Current(ctx context.Context, userID uuid.UUID) (wizard.State, error) {
	return s.sessions.Load(ctx, userID.String())
}

// Advance merges the submitted fields into the bag and moves to the next
// step; validation failures leave the stored state untouched.
func (s *service) Advance(ctx context.Context, userID uuid.UUID, fields map[string]string) (wizard.State, error) {
	state, err := s.sessions.Load(ctx, userID.String())
	if err != nil {
		return wizard.State{}, err
	}
	state = state.Merge(fields)
	next, err := Flow.Next(state)
	if err != nil {
		return wizard.State{}, err
	}
	if err := s.sessions.Save(ctx, userID.String(), next); err != nil {
		return wizard.State{}, err
	}
	return next, nil
}

func (s *service) Back(ctx context.Context, userID uuid.UUID) (wizard.State, error) {
	state, err := s.sessions.Load(ctx, userID.String())
	if err != nil {
		return wizard.State{}, err
	}
	state = Flow.Prev(state)
	if err := s.sessions.Save(ctx, userID.String(), state); err != nil {
		return wizard.State{}, err
	}
	return state, nil
}

// Submit prices the cart, writes the order graph, then clears the cart and
// the session. The quote is snapshotted onto the order rows so later price
// changes never rewrite history.
func (s *service) Submit(ctx context.Context, userID uuid.UUID, couponCode string) (*models.Order, error) {
	state, err := s.sessions.Load(ctx, userID.String())
	if err != nil {
		return nil, err
	}

	snapshot, err := s.cart.Get(ctx, userID.String())
	if err != nil {
		return nil, err
	}
	if len(snapshot.Lines) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "cart is empty")
	}

	quote, err := s.cart.Quote(ctx, userID.String(), couponCode)
	if err != nil {
		return nil, err
	}

	var order *models.Order
	err = Flow.Submit(state, func(fields map[string]string) error {
		order = buildOrder(userID, fields, couponCode, quote)
		return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
			return s.repo.CreateOrder(ctx, tx, order)
		})
	})
	if err != nil {
		return nil, err
	}

	// The order is committed at this point; a cleanup failure must not
	// turn a placed order into an error response.
	if err := s.cart.Clear(ctx, userID.String()); err != nil {
		s.logger.Error(s.logger.WithUserID(ctx, userID.String()), "clearing cart after order placement", err)
	}
	if err := s.sessions.Delete(ctx, userID.String()); err != nil {
		s.logger.Error(s.logger.WithUserID(ctx, userID.String()), "deleting checkout session after order placement", err)
	}

	s.logger.Info(s.logger.WithUserID(ctx, userID.String()), "order placed")
	return order, nil
}

func (s *service) GetOrder(ctx context.Context, userID, orderID uuid.UUID) (*models.Order, error) {
	order, err := s.repo.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}
	return order, nil
}

func (s *service) ListOrders(ctx context.Context, userID uuid.UUID) ([]models.Order, error) {
	return s.repo.ListForUser(ctx, userID)
}

func buildOrder(userID uuid.UUID, fields map[string]string, couponCode string, quote cart.Quote) *models.Order {
	order := &models.Order{
		ID:            uuid.New(),
		UserID:        userID,
		Status:        enums.OrderStatusPlaced,
		Subtotal:      quote.Subtotal,
		DeliveryFee:   quote.DeliveryFee,
		Discount:      quote.Discount,
		Total:         quote.Total,
		DeliveryName:  fields["delivery_name"],
		DeliveryPhone: fields["delivery_phone"],
		AddressLine:   fields["address_line"],
		City:          fields["city"],
		Pincode:       fields["pincode"],
		DeliverySlot:  fields["delivery_slot"],
		PaymentMethod: fields["payment_method"],
	}
	if couponCode != "" {
		order.CouponCode = &couponCode
	}

	for position, group := range quote.Groups {
		total := quote.VendorTotals[group.VendorID]
		orderGroup := models.OrderVendorGroup{
			ID:          uuid.New(),
			OrderID:     order.ID,
			VendorID:    group.VendorID,
			VendorName:  group.VendorName,
			Position:    position,
			Subtotal:    total.Subtotal,
			DeliveryFee: total.DeliveryFee,
			Total:       total.Total,
		}
		for _, line := range group.Lines {
			orderGroup.Items = append(orderGroup.Items, models.OrderItem{
				GroupID:     orderGroup.ID,
				ProductID:   line.ProductID,
				ProductName: line.ProductName,
				UnitPrice:   line.EffectiveUnitPrice,
				Quantity:    line.Quantity,
				LineTotal:   line.LineTotal,
			})
		}
		order.VendorGroups = append(order.VendorGroups, orderGroup)
	}
	return order
}
