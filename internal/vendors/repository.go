package vendors

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shivaganesh9515/nextgen-organic-backend/pkg/db/models"
	"github.com/shivaganesh9515/nextgen-organic-backend/pkg/enums"
	pkgerrors "github.com/shivaganesh9515/nextgen-organic-backend/pkg/errors"
)

type Repository interface {
	CreateApplication(ctx context.Context, application *models.VendorApplication) error
	GetApplication(ctx context.Context, id uuid.UUID) (*models.VendorApplication, error)
	FindApplicationByEmail(ctx context.Context, email string) (*models.VendorApplication, error)
	ListPendingApplications(ctx context.Context) ([]models.VendorApplication, error)
	UpdateApplication(ctx context.Context, tx *gorm.DB, application *models.VendorApplication) error
	CreateVendor(ctx context.Context, tx *gorm.DB, vendor *models.Vendor) error
	GetVendor(ctx context.Context, id uuid.UUID) (*models.Vendor, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) (Repository, error) {
	if db == nil {
		return nil, errors.New("vendor repository requires a database handle")
	}
	return &repository{db: db}, nil
}

func (r *repository) CreateApplication(ctx context.Context, application *models.VendorApplication) error {
	if err := r.db.WithContext(ctx).Create(application).Error; err != nil {
		return fmt.Errorf("creating vendor application: %w", err)
	}
	return nil
}

func (r *repository) GetApplication(ctx context.Context, id uuid.UUID) (*models.VendorApplication, error) {
	var application models.VendorApplication
	err := r.db.WithContext(ctx).
		Preload("Documents").
		First(&application, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "vendor application not found")
	}
	if err != nil {
		return nil, fmt.Errorf("fetching vendor application: %w", err)
	}
	return &application, nil
}

func (r *repository) FindApplicationByEmail(ctx context.Context, email string) (*models.VendorApplication, error) {
	var application models.VendorApplication
	err := r.db.WithContext(ctx).First(&application, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "vendor application not found")
	}
	if err != nil {
		return nil, fmt.Errorf("fetching vendor application: %w", err)
	}
	return &application, nil
}

func (r *repository) ListPendingApplications(ctx context.Context) ([]models.VendorApplication, error) {
	var rows []models.VendorApplication
	err := r.db.WithContext(ctx).
		Preload("Documents").
		Where("status = ?", enums.VendorStatusPending).
		Order("created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("listing pending applications: %w", err)
	}
	return rows, nil
}

func (r *repository) UpdateApplication(ctx context.Context, tx *gorm.DB, application *models.VendorApplication) error {
	db := r.handle(tx)
	if err := db.WithContext(ctx).Save(application).Error; err != nil {
		return fmt.Errorf("updating vendor application: %w", err)
	}
	return nil
}

func (r *repository) CreateVendor(ctx context.Context, tx *gorm.DB, vendor *models.Vendor) error {
	db := r.handle(tx)
	if err := db.WithContext(ctx).Create(vendor).Error; err != nil {
		return fmt.Errorf("creating vendor: %w", err)
	}
	return nil
}

func (r *repository) GetVendor(ctx context.Context, id uuid.UUID) (*models.Vendor, error) {
	var vendor models.Vendor
	err := r.db.WithContext(ctx).First(&vendor, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "vendor not found")
	}
	if err != nil {
		return nil, fmt.Errorf("fetching vendor: %w", err)
	}
	return &vendor, nil
}

func (r *repository) handle(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}
