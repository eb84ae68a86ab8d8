package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/shivaganesh9515/nextgen-organic-backend/pkg/db/models"
	"github.com/shivaganesh9515/nextgen-organic-backend/pkg/enums"
	pkgerrors "github.com/shivaganesh9515/nextgen-organic-backend/pkg/errors"
	"github.com/shivaganesh9515/nextgen-organic-backend/pkg/pagination"
)

// ProductFilter narrows a catalog listing. Zero values mean "no filter".
type ProductFilter struct {
	CategoryID  *uuid.UUID
	VendorID    *uuid.UUID
	Search      string
	MinPrice    *decimal.Decimal
	MaxPrice    *decimal.Decimal
	InStockOnly bool
	OrganicOnly bool
	Sort        enums.ProductSort
	Limit       int
	Cursor      string
}

// Repository is the catalog read surface over the relational store.
type Repository interface {
	ListProducts(ctx context.Context, filter ProductFilter) ([]models.Product, string, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
	ListVendors(ctx context.Context) ([]models.Vendor, error)
	GetVendors(ctx context.Context, ids []uuid.UUID) ([]models.Vendor, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) (Repository, error) {
	if db == nil {
		return nil, errors.New("catalog repository requires a database handle")
	}
	return &repository{db: db}, nil
}

// ListProducts applies the filter, orders the page, and returns a next
// cursor when more rows remain. Cursor pagination only applies to the
// newest ordering; price and rating orderings page by offsetless limit.
func (r *repository) ListProducts(ctx context.Context, filter ProductFilter) ([]models.Product, string, error) {
	limit := pagination.NormalizeLimit(filter.Limit)
	query := r.db.WithContext(ctx).Model(&models.Product{})

	if filter.CategoryID != nil {
		query = query.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.VendorID != nil {
		query = query.Where("vendor_id = ?", *filter.VendorID)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
	}
	if filter.MinPrice != nil {
		query = query.Where("price >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		query = query.Where("price <= ?", *filter.MaxPrice)
	}
	if filter.InStockOnly {
		query = query.Where("in_stock = ?", true)
	}
	if filter.OrganicOnly {
		query = query.Where("is_organic = ?", true)
	}

	sort := filter.Sort
	if !sort.IsValid() {
		sort = enums.ProductSortNewest
	}
	switch sort {
	case enums.ProductSortPriceAsc:
		query = query.Order("price ASC, id ASC")
	case enums.ProductSortPriceDesc:
		query = query.Order("price DESC, id ASC")
	case enums.ProductSortRating:
		query = query.Order("rating DESC, review_count DESC, id ASC")
	default:
		query = query.Order("created_at DESC, id DESC")
		cursor, err := pagination.ParseCursor(filter.Cursor)
		if err != nil {
			return nil, "", pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
		}
		if cursor != nil {
			query = query.Where(
				"(created_at, id) < (?, ?)", cursor.CreatedAt, cursor.ID,
			)
		}
	}

	var rows []models.Product
	if err := query.Limit(limit + 1).Find(&rows).Error; err != nil {
		return nil, "", fmt.Errorf("listing products: %w", err)
	}

	next := ""
	if len(rows) > limit {
		rows = rows[:limit]
		if sort == enums.ProductSortNewest {
			last := rows[len(rows)-1]
			next = pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
		}
	}
	return rows, next, nil
}

func (r *repository) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	if err != nil {
		return nil, fmt.Errorf("fetching product: %w", err)
	}
	return &product, nil
}

func (r *repository) ListCategories(ctx context.Context) ([]models.Category, error) {
	var rows []models.Category
	if err := r.db.WithContext(ctx).Order("position ASC, name ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	return rows, nil
}

// ListVendors returns only approved vendors; pending and suspended parties
// never appear in the storefront directory.
func (r *repository) ListVendors(ctx context.Context) ([]models.Vendor, error) {
	var rows []models.Vendor
	err := r.db.WithContext(ctx).
		Where("status = ?", enums.VendorStatusApproved).
		Order("rating DESC, name ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("listing vendors: %w", err)
	}
	return rows, nil
}

func (r *repository) GetVendors(ctx context.Context, ids []uuid.UUID) ([]models.Vendor, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var rows []models.Vendor
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("fetching vendors: %w", err)
	}
	return rows, nil
}
