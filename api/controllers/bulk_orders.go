package controllers

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shivaganesh9515/nextgen-organic-backend/api/middleware"
	"github.com/shivaganesh9515/nextgen-organic-backend/api/responses"
	"github.com/shivaganesh9515/nextgen-organic-backend/api/validators"
	bulksvc "github.com/shivaganesh9515/nextgen-organic-backend/internal/bulkorders"
	"github.com/shivaganesh9515/nextgen-organic-backend/pkg/db/models"
	pkgerrors "github.com/shivaganesh9515/nextgen-organic-backend/pkg/errors"
	"github.com/shivaganesh9515/nextgen-organic-backend/pkg/logger"
)

// BulkOrderCreate opens a wholesale quote request against one vendor.
func BulkOrderCreate(svc bulksvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		customerID, err := authenticatedUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload createBulkOrderRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.CreateRequest(r.Context(), bulksvc.CreateRequestInput{
			CustomerID:  customerID,
			VendorID:    payload.VendorID,
			ProductName: payload.ProductName,
			Quantity:    payload.Quantity,
			Unit:        payload.Unit,
			Notes:       payload.Notes,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, newBulkOrderResponse(order))
	}
}

func BulkOrderCustomerList(svc bulksvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		customerID, err := authenticatedUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		orders, err := svc.ListForCustomer(r.Context(), customerID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"items": newBulkOrderListResponse(orders)})
	}
}

// BulkOrderVendorList returns the quote requests addressed to the caller's
// vendor.
func BulkOrderVendorList(svc bulksvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vendorID, err := vendorContextID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		orders, err := svc.ListForVendor(r.Context(), vendorID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"items": newBulkOrderListResponse(orders)})
	}
}

// BulkOrderRespond records the vendor's quote on a pending request.
func BulkOrderRespond(svc bulksvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vendorID, err := vendorContextID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		orderID, err := parseUUIDParam(r, "orderId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload respondBulkOrderRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if !payload.QuotedPrice.IsPositive() {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.New(pkgerrors.CodeValidation, "quoted_price must be greater than zero"))
			return
		}

		order, err := svc.RespondQuote(r.Context(), bulksvc.RespondInput{
			OrderID:       orderID,
			VendorID:      vendorID,
			QuotedPrice:   payload.QuotedPrice,
			QuotedDetails: payload.QuotedDetails,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newBulkOrderResponse(order))
	}
}

// vendorContextID pulls the vendor id the auth middleware seeded for
// vendor-role tokens.
func vendorContextID(r *http.Request) (uuid.UUID, error) {
	raw := middleware.VendorIDFromContext(r.Context())
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeForbidden, "vendor context missing")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeForbidden, err, "malformed vendor id in token")
	}
	return id, nil
}

type createBulkOrderRequest struct {
	VendorID    uuid.UUID `json:"vendor_id" validate:"required"`
	ProductName string    `json:"product_name" validate:"required"`
	Quantity    int       `json:"quantity" validate:"required,min=1"`
	Unit        string    `json:"unit"`
	Notes       *string   `json:"notes"`
}

// QuotedPrice stays a decimal the whole way; positivity is enforced in
// the handler because the validator cannot see inside the type.
type respondBulkOrderRequest struct {
	QuotedPrice   decimal.Decimal `json:"quoted_price" validate:"-"`
	QuotedDetails string          `json:"quoted_details" validate:"required,min=20"`
}

type bulkOrderResponse struct {
	ID            uuid.UUID  `json:"id"`
	CustomerID    uuid.UUID  `json:"customer_id"`
	VendorID      uuid.UUID  `json:"vendor_id"`
	ProductName   string     `json:"product_name"`
	Quantity      int        `json:"quantity"`
	Unit          string     `json:"unit"`
	Notes         *string    `json:"notes,omitempty"`
	Status        string     `json:"status"`
	QuotedPrice   *string    `json:"quoted_price,omitempty"`
	QuotedDetails *string    `json:"quoted_details,omitempty"`
	QuotedAt      *time.Time `json:"quoted_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

func newBulkOrderListResponse(orders []models.BulkOrder) []bulkOrderResponse {
	items := make([]bulkOrderResponse, 0, len(orders))
	for i := range orders {
		items = append(items, newBulkOrderResponse(&orders[i]))
	}
	return items
}

func newBulkOrderResponse(order *models.BulkOrder) bulkOrderResponse {
	resp := bulkOrderResponse{
		ID:          order.ID,
		CustomerID:  order.CustomerID,
		VendorID:    order.VendorID,
		ProductName: order.ProductName,
		Quantity:    order.Quantity,
		Unit:        order.Unit,
		Notes:       order.Notes,
		Status:      string(order.Status),
		QuotedAt:    order.QuotedAt,
		CreatedAt:   order.CreatedAt,
	}
	if order.QuotedPrice != nil {
		price := order.QuotedPrice.StringFixed(2)
		resp.QuotedPrice = &price
	}
	if order.QuotedDetails != nil {
		resp.QuotedDetails = order.QuotedDetails
	}
	return resp
}
