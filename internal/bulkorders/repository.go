package bulkorders

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shivaganesh9515/nextgen-organic-backend/pkg/db/models"
	pkgerrors "github.com/shivaganesh9515/nextgen-organic-backend/pkg/errors"
)

type Repository interface {
	Create(ctx context.Context, order *models.BulkOrder) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.BulkOrder, error)
	Update(ctx context.Context, order *models.BulkOrder) error
	ListForVendor(ctx context.Context, vendorID uuid.UUID) ([]models.BulkOrder, error)
	ListForCustomer(ctx context.Context, customerID uuid.UUID) ([]models.BulkOrder, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) (Repository, error) {
	if db == nil {
		return nil, errors.New("bulk order repository requires a database handle")
	}
	return &repository{db: db}, nil
}

func (r *repository) Create(ctx context.Context, order *models.BulkOrder) error {
	if err := r.db.WithContext(ctx).Create(order).Error; err != nil {
		return fmt.Errorf("creating bulk order: %w", err)
	}
	return nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*models.BulkOrder, error) {
	var order models.BulkOrder
	err := r.db.WithContext(ctx).First(&order, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "bulk order not found")
	}
	if err != nil {
		return nil, fmt.Errorf("fetching bulk order: %w", err)
	}
	return &order, nil
}

func (r *repository) Update(ctx context.Context, order *models.BulkOrder) error {
	if err := r.db.WithContext(ctx).Save(order).Error; err != nil {
		return fmt.Errorf("updating bulk order: %w", err)
	}
	return nil
}

func (r *repository) ListForVendor(ctx context.Context, vendorID uuid.UUID) ([]models.BulkOrder, error) {
	var rows []models.BulkOrder
	err := r.db.WithContext(ctx).
		Where("vendor_id = ?", vendorID).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("listing vendor bulk orders: %w", err)
	}
	return rows, nil
}

func (r *repository) ListForCustomer(ctx context.Context, customerID uuid.UUID) ([]models.BulkOrder, error) {
	var rows []models.BulkOrder
	err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("listing customer bulk orders: %w", err)
	}
	return rows, nil
}
