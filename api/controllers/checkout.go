package controllers

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/shivaganesh9515/nextgen-organic-backend/api/responses"
	"github.com/shivaganesh9515/nextgen-organic-backend/api/validators"
	checkoutsvc "github.com/shivaganesh9515/nextgen-organic-backend/internal/checkout"
	"github.com/shivaganesh9515/nextgen-organic-backend/internal/wizard"
	"github.com/shivaganesh9515/nextgen-organic-backend/pkg/db/models"
	"github.com/shivaganesh9515/nextgen-organic-backend/pkg/logger"
)

// CheckoutStart opens a checkout session for the caller's non-empty cart.
func CheckoutStart(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := authenticatedUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		state, err := svc.Start(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, newCheckoutStateResponse(state))
	}
}

func CheckoutCurrent(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := authenticatedUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		state, err := svc.Current(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newCheckoutStateResponse(state))
	}
}

// CheckoutNext merges submitted fields into the session and advances one
// step. A failed validation leaves the stored state unchanged.
func CheckoutNext(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := authenticatedUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload checkoutStepRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		state, err := svc.Advance(r.Context(), userID, payload.Fields)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newCheckoutStateResponse(state))
	}
}

// CheckoutBack steps the session toward the first step, keeping every
// collected field.
func CheckoutBack(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := authenticatedUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		state, err := svc.Back(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newCheckoutStateResponse(state))
	}
}

// CheckoutSubmit places the order from the review step, pricing the cart
// one final time with the optional coupon.
func CheckoutSubmit(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := authenticatedUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload checkoutSubmitRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.Submit(r.Context(), userID, payload.CouponCode)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, newOrderResponse(order))
	}
}

func OrderList(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := authenticatedUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		orders, err := svc.ListOrders(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		items := make([]orderResponse, 0, len(orders))
		for i := range orders {
			items = append(items, newOrderResponse(&orders[i]))
		}
		responses.WriteSuccess(w, map[string]any{"items": items})
	}
}

func OrderDetail(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := authenticatedUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		orderID, err := parseUUIDParam(r, "orderId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.GetOrder(r.Context(), userID, orderID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newOrderResponse(order))
	}
}

type checkoutStepRequest struct {
	Fields map[string]string `json:"fields" validate:"required"`
}

type checkoutSubmitRequest struct {
	CouponCode string `json:"coupon_code"`
}

type checkoutStateResponse struct {
	Step      string            `json:"step"`
	StepIndex int               `json:"step_index"`
	StepCount int               `json:"step_count"`
	IsFinal   bool              `json:"is_final"`
	Fields    map[string]string `json:"fields"`
}

func newCheckoutStateResponse(state wizard.State) checkoutStateResponse {
	resp := checkoutStateResponse{
		StepIndex: state.Index,
		StepCount: len(checkoutsvc.Flow.Steps),
		IsFinal:   checkoutsvc.Flow.IsFinal(state),
		Fields:    state.Fields,
	}
	if step, err := checkoutsvc.Flow.CurrentStep(state); err == nil {
		resp.Step = step.Name
	}
	return resp
}

type orderResponse struct {
	ID            uuid.UUID            `json:"id"`
	Status        string               `json:"status"`
	Subtotal      string               `json:"subtotal"`
	DeliveryFee   string               `json:"delivery_fee"`
	Discount      string               `json:"discount"`
	Total         string               `json:"total"`
	CouponCode    *string              `json:"coupon_code,omitempty"`
	DeliveryName  string               `json:"delivery_name"`
	DeliveryPhone string               `json:"delivery_phone"`
	AddressLine   string               `json:"address_line"`
	City          string               `json:"city"`
	Pincode       string               `json:"pincode"`
	DeliverySlot  string               `json:"delivery_slot"`
	PaymentMethod string               `json:"payment_method"`
	Vendors       []orderGroupResponse `json:"vendors"`
	CreatedAt     time.Time            `json:"created_at"`
}

type orderGroupResponse struct {
	VendorID    uuid.UUID           `json:"vendor_id"`
	VendorName  string              `json:"vendor_name"`
	Subtotal    string              `json:"subtotal"`
	DeliveryFee string              `json:"delivery_fee"`
	Total       string              `json:"total"`
	Items       []orderItemResponse `json:"items"`
}

type orderItemResponse struct {
	ProductID   uuid.UUID `json:"product_id"`
	ProductName string    `json:"product_name"`
	UnitPrice   string    `json:"unit_price"`
	Quantity    int       `json:"quantity"`
	LineTotal   string    `json:"line_total"`
}

func newOrderResponse(order *models.Order) orderResponse {
	groups := make([]orderGroupResponse, 0, len(order.VendorGroups))
	for _, group := range order.VendorGroups {
		items := make([]orderItemResponse, 0, len(group.Items))
		for _, item := range group.Items {
			items = append(items, orderItemResponse{
				ProductID:   item.ProductID,
				ProductName: item.ProductName,
				UnitPrice:   item.UnitPrice.StringFixed(2),
				Quantity:    item.Quantity,
				LineTotal:   item.LineTotal.StringFixed(2),
			})
		}
		groups = append(groups, orderGroupResponse{
			VendorID:    group.VendorID,
			VendorName:  group.VendorName,
			Subtotal:    group.Subtotal.StringFixed(2),
			DeliveryFee: group.DeliveryFee.StringFixed(2),
			Total:       group.Total.StringFixed(2),
			Items:       items,
		})
	}

	return orderResponse{
		ID:            order.ID,
		Status:        string(order.Status),
		Subtotal:      order.Subtotal.StringFixed(2),
		DeliveryFee:   order.DeliveryFee.StringFixed(2),
		Discount:      order.Discount.StringFixed(2),
		Total:         order.Total.StringFixed(2),
		CouponCode:    order.CouponCode,
		DeliveryName:  order.DeliveryName,
		DeliveryPhone: order.DeliveryPhone,
		AddressLine:   order.AddressLine,
		City:          order.City,
		Pincode:       order.Pincode,
		DeliverySlot:  order.DeliverySlot,
		PaymentMethod: order.PaymentMethod,
		Vendors:       groups,
		CreatedAt:     order.CreatedAt,
	}
}
