package vendors

import (
	"fmt"

	"github.com/shivaganesh9515/nextgen-organic-backend/pkg/enums"
	pkgerrors "github.com/shivaganesh9515/nextgen-organic-backend/pkg/errors"
)

var allowedContentTypes = map[string]struct{}{
	"application/pdf": {},
	"image/jpeg":      {},
	"image/png":       {},
}

// DocumentUpload is one received onboarding file, already buffered.
type DocumentUpload struct {
	Kind        enums.DocumentKind
	FileName    string
	ContentType string
	Content     []byte
}

// ValidateDocuments enforces the upload policy: every required slot
// present, no duplicate or unknown slots, each file within the byte cap
// and one of PDF/JPEG/PNG. The returned error names the offending slot.
func ValidateDocuments(uploads []DocumentUpload, maxBytes int64) error {
	seen := make(map[enums.DocumentKind]struct{}, len(uploads))
	for _, upload := range uploads {
		if !upload.Kind.IsValid() {
			return pkgerrors.
				New(pkgerrors.CodeValidation, fmt.Sprintf("unknown document slot %q", upload.Kind)).
				WithDetails(map[string]string{"slot": string(upload.Kind)})
		}
		if _, dup := seen[upload.Kind]; dup {
			return pkgerrors.
				New(pkgerrors.CodeValidation, fmt.Sprintf("duplicate document slot %q", upload.Kind)).
				WithDetails(map[string]string{"slot": string(upload.Kind)})
		}
		seen[upload.Kind] = struct{}{}

		if _, ok := allowedContentTypes[upload.ContentType]; !ok {
			return pkgerrors.
				New(pkgerrors.CodeValidation, fmt.Sprintf("document %q must be PDF, JPEG, or PNG", upload.Kind)).
				WithDetails(map[string]string{"slot": string(upload.Kind), "content_type": upload.ContentType})
		}
		if int64(len(upload.Content)) > maxBytes {
			return pkgerrors.
				New(pkgerrors.CodeValidation, fmt.Sprintf("document %q exceeds the size limit", upload.Kind)).
				WithDetails(map[string]any{"slot": string(upload.Kind), "max_bytes": maxBytes})
		}
		if len(upload.Content) == 0 {
			return pkgerrors.
				New(pkgerrors.CodeValidation, fmt.Sprintf("document %q is empty", upload.Kind)).
				WithDetails(map[string]string{"slot": string(upload.Kind)})
		}
	}

	for _, kind := range enums.AllDocumentKinds() {
		if !kind.Required() {
			continue
		}
		if _, ok := seen[kind]; !ok {
			return pkgerrors.
				New(pkgerrors.CodeValidation, fmt.Sprintf("document %q is required", kind)).
				WithDetails(map[string]string{"slot": string(kind)})
		}
	}
	return nil
}
