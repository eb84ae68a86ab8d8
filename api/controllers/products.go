package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shivaganesh9515/nextgen-organic-backend/api/responses"
	cartsvc "github.com/shivaganesh9515/nextgen-organic-backend/internal/cart"
	catalogsvc "github.com/shivaganesh9515/nextgen-organic-backend/internal/catalog"
	"github.com/shivaganesh9515/nextgen-organic-backend/pkg/db/models"
	"github.com/shivaganesh9515/nextgen-organic-backend/pkg/enums"
	pkgerrors "github.com/shivaganesh9515/nextgen-organic-backend/pkg/errors"
	"github.com/shivaganesh9515/nextgen-organic-backend/pkg/logger"
)

// ProductList serves the storefront catalog with filtering, sorting, and
// cursor pagination driven entirely by query parameters.
func ProductList(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter, err := parseProductFilter(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		products, nextCursor, err := svc.ListProducts(r.Context(), filter)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		items := make([]productResponse, 0, len(products))
		for _, product := range products {
			items = append(items, newProductResponse(product))
		}

		payload := productListResponse{Items: items}
		if nextCursor != "" {
			payload.NextCursor = &nextCursor
		}
		responses.WriteSuccess(w, payload)
	}
}

func ProductDetail(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID, err := parseUUIDParam(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.GetProduct(r.Context(), productID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newProductResponse(*product))
	}
}

func CategoryList(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categories, err := svc.ListCategories(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		items := make([]categoryResponse, 0, len(categories))
		for _, category := range categories {
			items = append(items, categoryResponse{
				ID:       category.ID,
				Name:     category.Name,
				Slug:     category.Slug,
				Position: category.Position,
			})
		}
		responses.WriteSuccess(w, map[string]any{"items": items})
	}
}

// VendorList returns approved vendors only.
func VendorList(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vendors, err := svc.ListVendors(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		items := make([]vendorResponse, 0, len(vendors))
		for _, vendor := range vendors {
			items = append(items, newVendorResponse(vendor))
		}
		responses.WriteSuccess(w, map[string]any{"items": items})
	}
}

func parseProductFilter(r *http.Request) (catalogsvc.ProductFilter, error) {
	query := r.URL.Query()
	filter := catalogsvc.ProductFilter{
		Search: query.Get("search"),
		Cursor: query.Get("cursor"),
	}

	if raw := query.Get("category_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return filter, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid category_id")
		}
		filter.CategoryID = &id
	}
	if raw := query.Get("vendor_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return filter, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid vendor_id")
		}
		filter.VendorID = &id
	}
	if raw := query.Get("min_price"); raw != "" {
		amount, err := decimal.NewFromString(raw)
		if err != nil {
			return filter, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid min_price")
		}
		filter.MinPrice = &amount
	}
	if raw := query.Get("max_price"); raw != "" {
		amount, err := decimal.NewFromString(raw)
		if err != nil {
			return filter, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid max_price")
		}
		filter.MaxPrice = &amount
	}
	if raw := query.Get("in_stock"); raw != "" {
		filter.InStockOnly = raw == "true" || raw == "1"
	}
	if raw := query.Get("organic"); raw != "" {
		filter.OrganicOnly = raw == "true" || raw == "1"
	}
	if raw := query.Get("sort"); raw != "" {
		sort := enums.ProductSort(raw)
		if !sort.IsValid() {
			return filter, pkgerrors.New(pkgerrors.CodeValidation, "invalid sort")
		}
		filter.Sort = sort
	}
	if raw := query.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 {
			return filter, pkgerrors.New(pkgerrors.CodeValidation, "invalid limit")
		}
		filter.Limit = limit
	}

	return filter, nil
}

type productListResponse struct {
	Items      []productResponse `json:"items"`
	NextCursor *string           `json:"next_cursor,omitempty"`
}

type productResponse struct {
	ID              uuid.UUID `json:"id"`
	VendorID        uuid.UUID `json:"vendor_id"`
	CategoryID      uuid.UUID `json:"category_id"`
	Name            string    `json:"name"`
	Slug            string    `json:"slug"`
	Description     *string   `json:"description,omitempty"`
	Unit            string    `json:"unit"`
	Price           string    `json:"price"`
	OriginalPrice   *string   `json:"original_price,omitempty"`
	DiscountPercent *string   `json:"discount_percent,omitempty"`
	EffectivePrice  string    `json:"effective_price"`
	Rating          float64   `json:"rating"`
	ReviewCount     int       `json:"review_count"`
	InStock         bool      `json:"in_stock"`
	IsOrganic       bool      `json:"is_organic"`
	Tags            []string  `json:"tags,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

type categoryResponse struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Slug     string    `json:"slug"`
	Position int       `json:"position"`
}

type vendorResponse struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Slug           string    `json:"slug"`
	Description    *string   `json:"description,omitempty"`
	DeliveryFee    string    `json:"delivery_fee"`
	MinOrderAmount string    `json:"min_order_amount"`
	Rating         float64   `json:"rating"`
	ReviewCount    int       `json:"review_count"`
	Specialties    []string  `json:"specialties,omitempty"`
	City           *string   `json:"city,omitempty"`
}

func newProductResponse(product models.Product) productResponse {
	resp := productResponse{
		ID:             product.ID,
		VendorID:       product.VendorID,
		CategoryID:     product.CategoryID,
		Name:           product.Name,
		Slug:           product.Slug,
		Description:    product.Description,
		Unit:           product.Unit,
		Price:          product.Price.StringFixed(2),
		EffectivePrice: effectiveProductPrice(product).StringFixed(2),
		Rating:         product.Rating,
		ReviewCount:    product.ReviewCount,
		InStock:        product.InStock,
		IsOrganic:      product.IsOrganic,
		Tags:           product.Tags,
		CreatedAt:      product.CreatedAt,
	}
	if product.OriginalPrice != nil {
		original := product.OriginalPrice.StringFixed(2)
		resp.OriginalPrice = &original
	}
	if product.DiscountPercent != nil {
		discount := product.DiscountPercent.String()
		resp.DiscountPercent = &discount
	}
	return resp
}

// effectiveProductPrice reuses the cart's unit price resolution so catalog
// cards and cart lines always show the same figure.
func effectiveProductPrice(product models.Product) decimal.Decimal {
	return cartsvc.DiscountedUnitPrice(cartsvc.Line{
		UnitPrice:       product.Price,
		OriginalPrice:   product.OriginalPrice,
		DiscountPercent: product.DiscountPercent,
	})
}

func newVendorResponse(vendor models.Vendor) vendorResponse {
	return vendorResponse{
		ID:             vendor.ID,
		Name:           vendor.Name,
		Slug:           vendor.Slug,
		Description:    vendor.Description,
		DeliveryFee:    vendor.DeliveryFee.StringFixed(2),
		MinOrderAmount: vendor.MinOrderAmount.StringFixed(2),
		Rating:         vendor.Rating,
		ReviewCount:    vendor.ReviewCount,
		Specialties:    vendor.Specialties,
		City:           vendor.City,
	}
}
