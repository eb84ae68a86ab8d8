package bulkorders

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shivaganesh9515/nextgen-organic-backend/pkg/db/models"
	"github.com/shivaganesh9515/nextgen-organic-backend/pkg/enums"
	pkgerrors "github.com/shivaganesh9515/nextgen-organic-backend/pkg/errors"
	"github.com/shivaganesh9515/nextgen-organic-backend/pkg/logger"
)

const minQuoteDetailsLength = 20

// VendorStatusReader resolves a vendor's onboarding status; only approved
// vendors may respond to quote requests.
type VendorStatusReader interface {
	GetVendorStatus(ctx context.Context, id uuid.UUID) (enums.VendorStatus, error)
}

// CreateRequestInput is a customer's wholesale quote request.
type CreateRequestInput struct {
	CustomerID  uuid.UUID
	VendorID    uuid.UUID
	ProductName string
	Quantity    int
	Unit        string
	Notes       *string
}

// RespondInput is a vendor's quote on a pending bulk order.
type RespondInput struct {
	OrderID       uuid.UUID
	VendorID      uuid.UUID
	QuotedPrice   decimal.Decimal
	QuotedDetails string
}

type Service interface {
	CreateRequest(ctx context.Context, input CreateRequestInput) (*models.BulkOrder, error)
	RespondQuote(ctx context.Context, input RespondInput) (*models.BulkOrder, error)
	ListForVendor(ctx context.Context, vendorID uuid.UUID) ([]models.BulkOrder, error)
	ListForCustomer(ctx context.Context, customerID uuid.UUID) ([]models.BulkOrder, error)
}

type ServiceParams struct {
	Repository Repository
	Vendors    VendorStatusReader
	Logger     *logger.Logger
	Now        func() time.Time
}

type service struct {
	repo    Repository
	vendors VendorStatusReader
	logger  *logger.Logger
	now     func() time.Time
}

func NewService(params ServiceParams) (Service, error) {
	if params.Repository == nil {
		return nil, errors.New("bulk order service requires a repository")
	}
	if params.Vendors == nil {
		return nil, errors.New("bulk order service requires a vendor status reader")
	}
	if params.Logger == nil {
		return nil, errors.New("bulk order service requires a logger")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &service{repo: params.Repository, vendors: params.Vendors, logger: params.Logger, now: now}, nil
}

func (s *service) CreateRequest(ctx context.Context, input CreateRequestInput) (*models.BulkOrder, error) {
	if input.Quantity < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}
	if strings.TrimSpace(input.ProductName) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product name is required")
	}
	status, err := s.vendors.GetVendorStatus(ctx, input.VendorID)
	if err != nil {
		return nil, err
	}
	// A request against a pending or rejected vendor would sit unquotable
	// forever, so it is refused up front.
	if status != enums.VendorStatusApproved {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "vendor is not accepting quote requests")
	}

	order := &models.BulkOrder{
		CustomerID:  input.CustomerID,
		VendorID:    input.VendorID,
		ProductName: strings.TrimSpace(input.ProductName),
		Quantity:    input.Quantity,
		Unit:        input.Unit,
		Notes:       input.Notes,
		Status:      enums.BulkOrderStatusPendingQuote,
	}
	if order.Unit == "" {
		order.Unit = "kg"
	}
	if err := s.repo.Create(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// RespondQuote attaches a vendor's price and terms to a pending order.
// Ordering of the checks matters: approval before existence would leak
// nothing, but existence before ownership would confirm foreign order ids,
// so an unapproved vendor is rejected first and an order belonging to a
// different vendor reads as forbidden.
func (s *service) RespondQuote(ctx context.Context, input RespondInput) (*models.BulkOrder, error) {
	status, err := s.vendors.GetVendorStatus(ctx, input.VendorID)
	if err != nil {
		return nil, err
	}
	if status != enums.VendorStatusApproved {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "vendor is not approved to quote")
	}

	if !input.QuotedPrice.IsPositive() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quoted price must be positive")
	}
	if len(strings.TrimSpace(input.QuotedDetails)) < minQuoteDetailsLength {
		return nil, pkgerrors.
			New(pkgerrors.CodeValidation, "quoted details must be at least 20 characters").
			WithDetails(map[string]any{"field": "quoted_details", "min_length": minQuoteDetailsLength})
	}

	order, err := s.repo.GetByID(ctx, input.OrderID)
	if err != nil {
		return nil, err
	}
	if order.VendorID != input.VendorID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "bulk order belongs to a different vendor")
	}
	if !order.Status.Quotable() {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "bulk order is not awaiting a quote")
	}

	quotedAt := s.now()
	details := strings.TrimSpace(input.QuotedDetails)
	order.Status = enums.BulkOrderStatusQuoted
	order.QuotedPrice = &input.QuotedPrice
	order.QuotedDetails = &details
	order.QuotedAt = &quotedAt

	if err := s.repo.Update(ctx, order); err != nil {
		return nil, err
	}
	s.logger.Info(s.logger.WithVendorID(ctx, input.VendorID.String()), "bulk order quoted")
	return order, nil
}

func (s *service) ListForVendor(ctx context.Context, vendorID uuid.UUID) ([]models.BulkOrder, error) {
	return s.repo.ListForVendor(ctx, vendorID)
}

func (s *service) ListForCustomer(ctx context.Context, customerID uuid.UUID) ([]models.BulkOrder, error) {
	return s.repo.ListForCustomer(ctx, customerID)
}
