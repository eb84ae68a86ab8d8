package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shivaganesh9515/nextgen-organic-backend/api/responses"
	"github.com/shivaganesh9515/nextgen-organic-backend/api/validators"
	cartsvc "github.com/shivaganesh9515/nextgen-organic-backend/internal/cart"
	pkgerrors "github.com/shivaganesh9515/nextgen-organic-backend/pkg/errors"
	"github.com/shivaganesh9515/nextgen-organic-backend/pkg/logger"
)

// CartFetch returns the caller's current cart snapshot.
func CartFetch(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := authenticatedUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		snapshot, err := svc.Get(r.Context(), userID.String())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newCartResponse(snapshot))
	}
}

// CartAddItem merges a product into the caller's cart, incrementing the
// quantity when the product is already present.
func CartAddItem(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := authenticatedUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload addCartItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		snapshot, err := svc.AddItem(r.Context(), userID.String(), payload.ProductID, payload.Quantity)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newCartResponse(snapshot))
	}
}

// CartUpdateItem sets an absolute quantity for a line. Zero or negative
// quantities remove the line.
func CartUpdateItem(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := authenticatedUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		productID, err := parseUUIDParam(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateCartItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		snapshot, err := svc.UpdateQuantity(r.Context(), userID.String(), productID, payload.Quantity)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newCartResponse(snapshot))
	}
}

func CartRemoveItem(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := authenticatedUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		productID, err := parseUUIDParam(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		snapshot, err := svc.RemoveItem(r.Context(), userID.String(), productID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newCartResponse(snapshot))
	}
}

func CartClear(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := authenticatedUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Clear(r.Context(), userID.String()); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newCartResponse(cartsvc.Snapshot{}))
	}
}

// CartQuote prices the current cart, optionally applying a coupon code
// passed as a query parameter.
func CartQuote(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := authenticatedUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		quote, err := svc.Quote(r.Context(), userID.String(), r.URL.Query().Get("coupon"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newQuoteResponse(quote))
	}
}

func quantityDecimal(quantity int) decimal.Decimal {
	return decimal.NewFromInt(int64(quantity))
}

func parseUUIDParam(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid "+name)
	}
	return id, nil
}

type addCartItemRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Quantity  int       `json:"quantity" validate:"required,min=1"`
}

type updateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

type cartResponse struct {
	Items      []cartLineResponse `json:"items"`
	ItemCount  int                `json:"item_count"`
	TotalPrice string             `json:"total_price"`
}

type cartLineResponse struct {
	ProductID       uuid.UUID `json:"product_id"`
	VendorID        uuid.UUID `json:"vendor_id"`
	ProductName     string    `json:"product_name"`
	Unit            string    `json:"unit"`
	UnitPrice       string    `json:"unit_price"`
	OriginalPrice   *string   `json:"original_price,omitempty"`
	DiscountPercent *string   `json:"discount_percent,omitempty"`
	EffectivePrice  string    `json:"effective_price"`
	Quantity        int       `json:"quantity"`
	LineTotal       string    `json:"line_total"`
}

func newCartResponse(snapshot cartsvc.Snapshot) cartResponse {
	items := make([]cartLineResponse, 0, len(snapshot.Lines))
	for _, line := range snapshot.Lines {
		items = append(items, newCartLineResponse(line))
	}
	return cartResponse{
		Items:      items,
		ItemCount:  snapshot.TotalItemCount(),
		TotalPrice: snapshot.TotalPrice().StringFixed(2),
	}
}

func newCartLineResponse(line cartsvc.Line) cartLineResponse {
	effective := cartsvc.DiscountedUnitPrice(line)
	resp := cartLineResponse{
		ProductID:      line.ProductID,
		VendorID:       line.VendorID,
		ProductName:    line.ProductName,
		Unit:           line.Unit,
		UnitPrice:      line.UnitPrice.StringFixed(2),
		EffectivePrice: effective.StringFixed(2),
		Quantity:       line.Quantity,
		LineTotal:      effective.Mul(quantityDecimal(line.Quantity)).StringFixed(2),
	}
	if line.OriginalPrice != nil {
		original := line.OriginalPrice.StringFixed(2)
		resp.OriginalPrice = &original
	}
	if line.DiscountPercent != nil {
		discount := line.DiscountPercent.String()
		resp.DiscountPercent = &discount
	}
	return resp
}

type quoteResponse struct {
	Vendors     []vendorGroupResponse `json:"vendors"`
	Subtotal    string                `json:"subtotal"`
	DeliveryFee string                `json:"delivery_fee"`
	Discount    string                `json:"discount"`
	Total       string                `json:"total"`
}

type vendorGroupResponse struct {
	VendorID    uuid.UUID          `json:"vendor_id"`
	VendorName  string             `json:"vendor_name"`
	Items       []cartLineResponse `json:"items"`
	Subtotal    string             `json:"subtotal"`
	DeliveryFee string             `json:"delivery_fee"`
	Total       string             `json:"total"`
}

func newQuoteResponse(quote cartsvc.Quote) quoteResponse {
	vendors := make([]vendorGroupResponse, 0, len(quote.Groups))
	for _, group := range quote.Groups {
		items := make([]cartLineResponse, 0, len(group.Lines))
		for _, line := range group.Lines {
			items = append(items, newCartLineResponse(line.Line))
		}
		totals := quote.VendorTotals[group.VendorID]
		vendors = append(vendors, vendorGroupResponse{
			VendorID:    group.VendorID,
			VendorName:  group.VendorName,
			Items:       items,
			Subtotal:    totals.Subtotal.StringFixed(2),
			DeliveryFee: totals.DeliveryFee.StringFixed(2),
			Total:       totals.Total.StringFixed(2),
		})
	}
	return quoteResponse{
		Vendors:     vendors,
		Subtotal:    quote.Subtotal.StringFixed(2),
		DeliveryFee: quote.DeliveryFee.StringFixed(2),
		Discount:    quote.Discount.StringFixed(2),
		Total:       quote.Total.StringFixed(2),
	}
}
