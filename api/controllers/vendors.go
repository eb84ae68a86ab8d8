package controllers

import (
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shivaganesh9515/nextgen-organic-backend/api/responses"
	"github.com/shivaganesh9515/nextgen-organic-backend/api/validators"
	vendorsvc "github.com/shivaganesh9515/nextgen-organic-backend/internal/vendors"
	"github.com/shivaganesh9515/nextgen-organic-backend/pkg/config"
	"github.com/shivaganesh9515/nextgen-organic-backend/pkg/db/models"
	"github.com/shivaganesh9515/nextgen-organic-backend/pkg/enums"
	pkgerrors "github.com/shivaganesh9515/nextgen-organic-backend/pkg/errors"
	"github.com/shivaganesh9515/nextgen-organic-backend/pkg/logger"
)

// VendorApplicationSubmit accepts the multipart onboarding form: text
// fields for the business profile plus one file part per document slot.
func VendorApplicationSubmit(svc vendorsvc.Service, uploads config.UploadConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		maxBytes := uploads.MaxDocumentBytes()

		// The full form is bounded by the per-document cap times the
		// number of slots plus headroom for the text fields.
		formLimit := maxBytes*int64(len(enums.AllDocumentKinds())) + (1 << 20)
		r.Body = http.MaxBytesReader(w, r.Body, formLimit)
		if err := r.ParseMultipartForm(maxBytes); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "malformed multipart form"))
			return
		}
		defer func() {
			if r.MultipartForm != nil {
				_ = r.MultipartForm.RemoveAll()
			}
		}()

		input := vendorsvc.ApplicationInput{
			BusinessName: strings.TrimSpace(r.FormValue("business_name")),
			ContactName:  strings.TrimSpace(r.FormValue("contact_name")),
			Email:        strings.TrimSpace(r.FormValue("email")),
			Phone:        strings.TrimSpace(r.FormValue("phone")),
			AddressLine:  strings.TrimSpace(r.FormValue("address_line")),
			City:         strings.TrimSpace(r.FormValue("city")),
			Pincode:      strings.TrimSpace(r.FormValue("pincode")),
		}
		if gstin := strings.TrimSpace(r.FormValue("gstin")); gstin != "" {
			input.GSTIN = &gstin
		}

		documents, err := collectDocumentUploads(r, maxBytes)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		input.Documents = documents

		application, err := svc.SubmitApplication(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, newApplicationResponse(application))
	}
}

// collectDocumentUploads reads one file per document slot from the parsed
// form. Oversized files are rejected before the content is buffered.
func collectDocumentUploads(r *http.Request, maxBytes int64) ([]vendorsvc.DocumentUpload, error) {
	if r.MultipartForm == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "multipart form is empty")
	}

	var uploads []vendorsvc.DocumentUpload
	for _, kind := range enums.AllDocumentKinds() {
		headers := r.MultipartForm.File[string(kind)]
		if len(headers) == 0 {
			continue
		}
		if len(headers) > 1 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "duplicate file for document slot").
				WithDetails(map[string]any{"slot": string(kind)})
		}

		header := headers[0]
		if header.Size > maxBytes {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "document exceeds the size limit").
				WithDetails(map[string]any{"slot": string(kind), "max_bytes": maxBytes})
		}

		content, err := readUpload(header)
		if err != nil {
			return nil, err
		}

		uploads = append(uploads, vendorsvc.DocumentUpload{
			Kind:        kind,
			FileName:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Content:     content,
		})
	}
	return uploads, nil
}

func readUpload(header *multipart.FileHeader) ([]byte, error) {
	file, err := header.Open()
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "unreadable document upload")
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "unreadable document upload")
	}
	return content, nil
}

// AdminApplicationList returns applications awaiting review.
func AdminApplicationList(svc vendorsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		applications, err := svc.ListPendingApplications(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		items := make([]applicationResponse, 0, len(applications))
		for i := range applications {
			items = append(items, newApplicationResponse(&applications[i]))
		}
		responses.WriteSuccess(w, map[string]any{"items": items})
	}
}

func AdminApplicationDetail(svc vendorsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		applicationID, err := parseUUIDParam(r, "applicationId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		application, err := svc.GetApplication(r.Context(), applicationID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newApplicationResponse(application))
	}
}

// AdminApplicationApprove turns a pending application into a live vendor
// with the storefront policy supplied in the body.
func AdminApplicationApprove(svc vendorsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reviewerID, err := authenticatedUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		applicationID, err := parseUUIDParam(r, "applicationId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload approveApplicationRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		deliveryFee, err := parseAmount(payload.DeliveryFee, "delivery_fee")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		minOrder, err := parseAmount(payload.MinOrderAmount, "min_order_amount")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		vendor, err := svc.Approve(r.Context(), vendorsvc.ApproveInput{
			ApplicationID:  applicationID,
			ReviewerID:     reviewerID,
			DeliveryFee:    deliveryFee,
			MinOrderAmount: minOrder,
			Note:           payload.Note,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newVendorResponse(*vendor))
	}
}

func AdminApplicationReject(svc vendorsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reviewerID, err := authenticatedUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		applicationID, err := parseUUIDParam(r, "applicationId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload rejectApplicationRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Reject(r.Context(), applicationID, reviewerID, payload.Note); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "rejected"})
	}
}

func parseAmount(raw, field string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid "+field)
	}
	if amount.IsNegative() {
		return decimal.Zero, pkgerrors.New(pkgerrors.CodeValidation, field+" must not be negative")
	}
	return amount, nil
}

type approveApplicationRequest struct {
	DeliveryFee    string  `json:"delivery_fee" validate:"required"`
	MinOrderAmount string  `json:"min_order_amount" validate:"required"`
	Note           *string `json:"note"`
}

type rejectApplicationRequest struct {
	Note string `json:"note" validate:"required"`
}

type applicationResponse struct {
	ID           uuid.UUID          `json:"id"`
	BusinessName string             `json:"business_name"`
	ContactName  string             `json:"contact_name"`
	Email        string             `json:"email"`
	Phone        string             `json:"phone"`
	GSTIN        *string            `json:"gstin,omitempty"`
	AddressLine  string             `json:"address_line"`
	City         string             `json:"city"`
	Pincode      string             `json:"pincode"`
	Status       string             `json:"status"`
	ReviewNote   *string            `json:"review_note,omitempty"`
	VendorID     *uuid.UUID         `json:"vendor_id,omitempty"`
	Documents    []documentResponse `json:"documents"`
	CreatedAt    time.Time          `json:"created_at"`
}

type documentResponse struct {
	Kind        string `json:"kind"`
	FileName    string `json:"file_name"`
	ContentType string `json:"content_type"`
	SizeBytes   int64  `json:"size_bytes"`
}

func newApplicationResponse(application *models.VendorApplication) applicationResponse {
	documents := make([]documentResponse, 0, len(application.Documents))
	for _, document := range application.Documents {
		documents = append(documents, documentResponse{
			Kind:        string(document.Kind),
			FileName:    document.FileName,
			ContentType: document.ContentType,
			SizeBytes:   document.SizeBytes,
		})
	}

	return applicationResponse{
		ID:           application.ID,
		BusinessName: application.BusinessName,
		ContactName:  application.ContactName,
		Email:        application.Email,
		Phone:        application.Phone,
		GSTIN:        application.GSTIN,
		AddressLine:  application.AddressLine,
		City:         application.City,
		Pincode:      application.Pincode,
		Status:       string(application.Status),
		ReviewNote:   application.ReviewNote,
		VendorID:     application.VendorID,
		Documents:    documents,
		CreatedAt:    application.CreatedAt,
	}
}
