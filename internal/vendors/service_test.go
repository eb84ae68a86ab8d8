package vendors

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/shivaganesh9515/nextgen-organic-backend/pkg/db/models"
	"github.com/shivaganesh9515/nextgen-organic-backend/pkg/enums"
	pkgerrors "github.com/shivaganesh9515/nextgen-organic-backend/pkg/errors"
	"github.com/shivaganesh9515/nextgen-organic-backend/pkg/logger"
)

type memoryRepository struct {
	applications map[uuid.UUID]*models.VendorApplication
	vendors      map[uuid.UUID]*models.Vendor
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{
		applications: map[uuid.UUID]*models.VendorApplication{},
		vendors:      map[uuid.UUID]*models.Vendor{},
	}
}

func (m *memoryRepository) CreateApplication(_ context.Context, application *models.VendorApplication) error {
	m.applications[application.ID] = application
	return nil
}

func (m *memoryRepository) GetApplication(_ context.Context, id uuid.UUID) (*models.VendorApplication, error) {
	application, ok := m.applications[id]
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "vendor application not found")
	}
	return application, nil
}

func (m *memoryRepository) FindApplicationByEmail(_ context.Context, email string) (*models.VendorApplication, error) {
	for _, application := range m.applications {
		if application.Email == email {
			return application, nil
		}
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "vendor application not found")
}

func (m *memoryRepository) ListPendingApplications(_ context.Context) ([]models.VendorApplication, error) {
	var out []models.VendorApplication
	for _, application := range m.applications {
		if application.Status == enums.VendorStatusPending {
			out = append(out, *application)
		}
	}
	return out, nil
}

func (m *memoryRepository) UpdateApplication(_ context.Context, _ *gorm.DB, application *models.VendorApplication) error {
	m.applications[application.ID] = application
	return nil
}

func (m *memoryRepository) CreateVendor(_ context.Context, _ *gorm.DB, vendor *models.Vendor) error {
	m.vendors[vendor.ID] = vendor
	return nil
}

func (m *memoryRepository) GetVendor(_ context.Context, id uuid.UUID) (*models.Vendor, error) {
	vendor, ok := m.vendors[id]
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "vendor not found")
	}
	return vendor, nil
}

type memoryDocumentStore struct {
	saved     int
	discarded int
}

func (m *memoryDocumentStore) Save(_ context.Context, applicationID uuid.UUID, upload DocumentUpload) (string, error) {
	m.saved++
	return "mem://" + applicationID.String() + "/" + string(upload.Kind), nil
}

func (m *memoryDocumentStore) Discard(_ context.Context, _ uuid.UUID) error {
	m.discarded++
	m.saved = 0
	return nil
}

type passthroughTx struct{}

func (passthroughTx) WithTx(_ context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

var fixedNow = time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

func newFixture(t *testing.T) (Service, *memoryRepository, *memoryDocumentStore) {
	t.Helper()
	repo := newMemoryRepository()
	docs := &memoryDocumentStore{}
	svc, err := NewService(ServiceParams{
		Repository:       repo,
		Documents:        docs,
		Tx:               passthroughTx{},
		Logger:           logger.New(logger.Options{Level: zerolog.Disabled}),
		MaxDocumentBytes: testMaxBytes,
		Now:              func() time.Time { return fixedNow },
	})
	require.NoError(t, err)
	return svc, repo, docs
}

func validInput() ApplicationInput {
	return ApplicationInput{
		BusinessName: "Green Valley Organics",
		ContactName:  "Asha Patel",
		Email:        "asha@greenvalley.example",
		Phone:        "9876543210",
		AddressLine:  "14 Market Road",
		City:         "Pune",
		Pincode:      "411001",
		Documents:    requiredUploads(),
	}
}

func TestSubmitApplicationSuccess(t *testing.T) {
	t.Parallel()

	svc, repo, docs := newFixture(t)
	application, err := svc.SubmitApplication(context.Background(), validInput())
	require.NoError(t, err)

	assert.Equal(t, enums.VendorStatusPending, application.Status)
	assert.Len(t, application.Documents, 4)
	assert.Equal(t, 4, docs.saved)
	assert.Contains(t, repo.applications, application.ID)
	assert.Equal(t, "asha@greenvalley.example", application.Email)
}

func TestSubmitApplicationMissingFields(t *testing.T) {
	t.Parallel()

	svc, _, _ := newFixture(t)
	input := validInput()
	input.City = ""

	_, err := svc.SubmitApplication(context.Background(), input)
	require.Error(t, err)
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeValidation, appErr.Code())
}

func TestSubmitApplicationBadEmailAndPincode(t *testing.T) {
	t.Parallel()

	svc, _, _ := newFixture(t)
	ctx := context.Background()

	input := validInput()
	input.Email = "not-an-email"
	_, err := svc.SubmitApplication(ctx, input)
	require.Error(t, err)

	input = validInput()
	input.Pincode = "12ab56"
	_, err = svc.SubmitApplication(ctx, input)
	require.Error(t, err)
}

func TestSubmitApplicationDuplicateEmail(t *testing.T) {
	t.Parallel()

	svc, _, _ := newFixture(t)
	ctx := context.Background()

	_, err := svc.SubmitApplication(ctx, validInput())
	require.NoError(t, err)

	_, err = svc.SubmitApplication(ctx, validInput())
	require.Error(t, err)
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeConflict, appErr.Code())
}

func TestSubmitApplicationMissingDocument(t *testing.T) {
	t.Parallel()

	svc, _, docs := newFixture(t)
	input := validInput()
	input.Documents = input.Documents[:2]

	_, err := svc.SubmitApplication(context.Background(), input)
	require.Error(t, err)
	assert.Zero(t, docs.saved, "nothing stored when validation fails")
}

type failingCreateRepository struct {
	*memoryRepository
}

func (f *failingCreateRepository) CreateApplication(_ context.Context, _ *models.VendorApplication) error {
	return pkgerrors.New(pkgerrors.CodeDependency, "insert failed")
}

func TestSubmitApplicationFailedInsertDiscardsDocuments(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	docs, err := NewDiskStore(dir)
	require.NoError(t, err)

	svc, err := NewService(ServiceParams{
		Repository:       &failingCreateRepository{newMemoryRepository()},
		Documents:        docs,
		Tx:               passthroughTx{},
		Logger:           logger.New(logger.Options{Level: zerolog.Disabled}),
		MaxDocumentBytes: testMaxBytes,
	})
	require.NoError(t, err)

	_, err = svc.SubmitApplication(context.Background(), validInput())
	require.Error(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "no document directories left after a failed submit")
}

func TestApproveCreatesVendor(t *testing.T) {
	t.Parallel()

	svc, repo, _ := newFixture(t)
	ctx := context.Background()

	application, err := svc.SubmitApplication(ctx, validInput())
	require.NoError(t, err)

	reviewerID := uuid.New()
	vendor, err := svc.Approve(ctx, ApproveInput{
		ApplicationID:  application.ID,
		ReviewerID:     reviewerID,
		DeliveryFee:    decimal.NewFromInt(25),
		MinOrderAmount: decimal.NewFromInt(200),
	})
	require.NoError(t, err)

	assert.Equal(t, enums.VendorStatusApproved, vendor.Status)
	assert.Equal(t, "green-valley-organics", vendor.Slug)

	stored := repo.applications[application.ID]
	assert.Equal(t, enums.VendorStatusApproved, stored.Status)
	require.NotNil(t, stored.VendorID)
	assert.Equal(t, vendor.ID, *stored.VendorID)
	require.NotNil(t, stored.ReviewedAt)
	assert.Equal(t, fixedNow, *stored.ReviewedAt)

	status, err := svc.GetVendorStatus(ctx, vendor.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.VendorStatusApproved, status)
}

func TestApproveTwiceIsStateConflict(t *testing.T) {
	t.Parallel()

	svc, _, _ := newFixture(t)
	ctx := context.Background()

	application, err := svc.SubmitApplication(ctx, validInput())
	require.NoError(t, err)

	approve := ApproveInput{
		ApplicationID: application.ID,
		ReviewerID:    uuid.New(),
		DeliveryFee:   decimal.NewFromInt(25),
	}
	_, err = svc.Approve(ctx, approve)
	require.NoError(t, err)

	_, err = svc.Approve(ctx, approve)
	require.Error(t, err)
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeStateConflict, appErr.Code())
}

func TestRejectRecordsNote(t *testing.T) {
	t.Parallel()

	svc, repo, _ := newFixture(t)
	ctx := context.Background()

	application, err := svc.SubmitApplication(ctx, validInput())
	require.NoError(t, err)

	require.NoError(t, svc.Reject(ctx, application.ID, uuid.New(), "documents unreadable"))

	stored := repo.applications[application.ID]
	assert.Equal(t, enums.VendorStatusRejected, stored.Status)
	require.NotNil(t, stored.ReviewNote)
	assert.True(t, strings.Contains(*stored.ReviewNote, "unreadable"))
}
