package vendors

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/shivaganesh9515/nextgen-organic-backend/internal/wizard"
	"github.com/shivaganesh9515/nextgen-organic-backend/pkg/db/models"
	"github.com/shivaganesh9515/nextgen-organic-backend/pkg/enums"
	pkgerrors "github.com/shivaganesh9515/nextgen-organic-backend/pkg/errors"
	"github.com/shivaganesh9515/nextgen-organic-backend/pkg/logger"
)

var (
	emailPattern   = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	pincodePattern = regexp.MustCompile(`^[1-9][0-9]{5}$`)
	slugScrubber   = regexp.MustCompile(`[^a-z0-9]+`)
)

// onboardingFlow is the same field-bag controller the checkout uses; a
// submitted application must clear every step at once.
var onboardingFlow = wizard.Definition{
	Name: "vendor-onboarding",
	Steps: []wizard.Step{
		{
			Name:     "business",
			Required: []string{"business_name", "contact_name"},
		},
		{
			Name:     "contact",
			Required: []string{"email", "phone"},
			Validate: func(fields map[string]string) error {
				if !emailPattern.MatchString(fields["email"]) {
					return pkgerrors.New(pkgerrors.CodeValidation, "email address looks invalid")
				}
				return nil
			},
		},
		{
			Name:     "address",
			Required: []string{"address_line", "city", "pincode"},
			Validate: func(fields map[string]string) error {
				if !pincodePattern.MatchString(fields["pincode"]) {
					return pkgerrors.New(pkgerrors.CodeValidation, "pincode must be six digits")
				}
				return nil
			},
		},
	},
}

// ApplicationInput carries the multipart form fields plus buffered uploads.
type ApplicationInput struct {
	BusinessName string
	ContactName  string
	Email        string
	Phone        string
	GSTIN        *string
	AddressLine  string
	City         string
	Pincode      string
	Documents    []DocumentUpload
}

// ApproveInput sets the storefront policy for the new vendor.
type ApproveInput struct {
	ApplicationID  uuid.UUID
	ReviewerID     uuid.UUID
	DeliveryFee    decimal.Decimal
	MinOrderAmount decimal.Decimal
	Note           *string
}

type Service interface {
	SubmitApplication(ctx context.Context, input ApplicationInput) (*models.VendorApplication, error)
	GetApplication(ctx context.Context, id uuid.UUID) (*models.VendorApplication, error)
	ListPendingApplications(ctx context.Context) ([]models.VendorApplication, error)
	Approve(ctx context.Context, input ApproveInput) (*models.Vendor, error)
	Reject(ctx context.Context, applicationID, reviewerID uuid.UUID, note string) error
	GetVendor(ctx context.Context, id uuid.UUID) (*models.Vendor, error)
	GetVendorStatus(ctx context.Context, id uuid.UUID) (enums.VendorStatus, error)
}

// TxRunner runs a function inside a database transaction; pkg/db.Client
// satisfies it.
type TxRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type ServiceParams struct {
	Repository       Repository
	Documents        DocumentStore
	Tx               TxRunner
	Logger           *logger.Logger
	MaxDocumentBytes int64
	Now              func() time.Time
}

type service struct {
	repo     Repository
	docs     DocumentStore
	tx       TxRunner
	logger   *logger.Logger
	maxBytes int64
	now      func() time.Time
}

func NewService(params ServiceParams) (Service, error) {
	if params.Repository == nil {
		return nil, errors.New("vendor service requires a repository")
	}
	if params.Documents == nil {
		return nil, errors.New("vendor service requires a document store")
	}
	if params.Tx == nil {
		return nil, errors.New("vendor service requires a transaction runner")
	}
	if params.Logger == nil {
		return nil, errors.New("vendor service requires a logger")
	}
	maxBytes := params.MaxDocumentBytes
	if maxBytes <= 0 {
		maxBytes = 10 << 20
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &service{
		repo:     params.Repository,
		docs:     params.Documents,
		tx:       params.Tx,
		logger:   params.Logger,
		maxBytes: maxBytes,
		now:      now,
	}, nil
}

// SubmitApplication validates the form through the onboarding flow, checks
// the document policy, persists the uploads, and records the application
// as pending review.
func (s *service) SubmitApplication(ctx context.Context, input ApplicationInput) (*models.VendorApplication, error) {
	state := wizard.NewState().Merge(map[string]string{
		"business_name": input.BusinessName,
		"contact_name":  input.ContactName,
		"email":         input.Email,
		"phone":         input.Phone,
		"address_line":  input.AddressLine,
		"city":          input.City,
		"pincode":       input.Pincode,
	})
	var err error
	for !onboardingFlow.IsFinal(state) {
		if state, err = onboardingFlow.Next(state); err != nil {
			return nil, err
		}
	}
	if err := onboardingFlow.Submit(state, nil); err != nil {
		return nil, err
	}

	if err := ValidateDocuments(input.Documents, s.maxBytes); err != nil {
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))
	if existing, err := s.repo.FindApplicationByEmail(ctx, email); err == nil && existing != nil {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "an application for this email already exists")
	} else if err != nil {
		if appErr := pkgerrors.As(err); appErr == nil || appErr.Code() != pkgerrors.CodeNotFound {
			return nil, err
		}
	}

	application := &models.VendorApplication{
		ID:           uuid.New(),
		BusinessName: strings.TrimSpace(input.BusinessName),
		ContactName:  strings.TrimSpace(input.ContactName),
		Email:        email,
		Phone:        strings.TrimSpace(input.Phone),
		GSTIN:        input.GSTIN,
		AddressLine:  strings.TrimSpace(input.AddressLine),
		City:         strings.TrimSpace(input.City),
		Pincode:      strings.TrimSpace(input.Pincode),
		Status:       enums.VendorStatusPending,
	}

	for _, upload := range input.Documents {
		path, err := s.docs.Save(ctx, application.ID, upload)
		if err != nil {
			s.discardDocuments(ctx, application.ID)
			return nil, err
		}
		application.Documents = append(application.Documents, models.VendorDocument{
			ApplicationID: application.ID,
			Kind:          upload.Kind,
			FileName:      upload.FileName,
			ContentType:   upload.ContentType,
			SizeBytes:     int64(len(upload.Content)),
			StoragePath:   path,
		})
	}

	if err := s.repo.CreateApplication(ctx, application); err != nil {
		s.discardDocuments(ctx, application.ID)
		return nil, err
	}
	s.logger.Info(ctx, "vendor application submitted")
	return application, nil
}

// discardDocuments removes uploads stored for an application that was
// never recorded, so failed submits leave nothing behind on disk.
func (s *service) discardDocuments(ctx context.Context, applicationID uuid.UUID) {
	if err := s.docs.Discard(ctx, applicationID); err != nil {
		s.logger.Error(ctx, "discarding vendor application documents", err)
	}
}

func (s *service) GetApplication(ctx context.Context, id uuid.UUID) (*models.VendorApplication, error) {
	return s.repo.GetApplication(ctx, id)
}

func (s *service) ListPendingApplications(ctx context.Context) ([]models.VendorApplication, error) {
	return s.repo.ListPendingApplications(ctx)
}

// Approve creates the vendor record and marks the application approved in
// one transaction.
func (s *service) Approve(ctx context.Context, input ApproveInput) (*models.Vendor, error) {
	application, err := s.repo.GetApplication(ctx, input.ApplicationID)
	if err != nil {
		return nil, err
	}
	if application.Status != enums.VendorStatusPending {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "application has already been reviewed")
	}

	vendor := &models.Vendor{
		ID:             uuid.New(),
		Name:           application.BusinessName,
		Slug:           slugify(application.BusinessName),
		DeliveryFee:    input.DeliveryFee,
		MinOrderAmount: input.MinOrderAmount,
		Status:         enums.VendorStatusApproved,
		City:           &application.City,
		OwnerID:        input.ReviewerID,
	}

	reviewedAt := s.now()
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.repo.CreateVendor(ctx, tx, vendor); err != nil {
			return err
		}
		application.Status = enums.VendorStatusApproved
		application.ReviewNote = input.Note
		application.ReviewedBy = &input.ReviewerID
		application.ReviewedAt = &reviewedAt
		application.VendorID = &vendor.ID
		return s.repo.UpdateApplication(ctx, tx, application)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info(s.logger.WithVendorID(ctx, vendor.ID.String()), "vendor application approved")
	return vendor, nil
}

func (s *service) Reject(ctx context.Context, applicationID, reviewerID uuid.UUID, note string) error {
	application, err := s.repo.GetApplication(ctx, applicationID)
	if err != nil {
		return err
	}
	if application.Status != enums.VendorStatusPending {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "application has already been reviewed")
	}

	reviewedAt := s.now()
	application.Status = enums.VendorStatusRejected
	application.ReviewNote = &note
	application.ReviewedBy = &reviewerID
	application.ReviewedAt = &reviewedAt
	return s.repo.UpdateApplication(ctx, nil, application)
}

func (s *service) GetVendor(ctx context.Context, id uuid.UUID) (*models.Vendor, error) {
	return s.repo.GetVendor(ctx, id)
}

func (s *service) GetVendorStatus(ctx context.Context, id uuid.UUID) (enums.VendorStatus, error) {
	vendor, err := s.repo.GetVendor(ctx, id)
	if err != nil {
		return "", err
	}
	return vendor.Status, nil
}

func slugify(name string) string {
	slug := slugScrubber.ReplaceAllString(strings.ToLower(name), "-")
	return strings.Trim(slug, "-")
}
