package vendors

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	pkgerrors "github.com/shivaganesh9515/nextgen-organic-backend/pkg/errors"
)

// DocumentStore persists validated onboarding uploads. Discard removes
// everything stored for an application whose record never made it to the
// database.
type DocumentStore interface {
	Save(ctx context.Context, applicationID uuid.UUID, upload DocumentUpload) (string, error)
	Discard(ctx context.Context, applicationID uuid.UUID) error
}

// diskStore writes documents under <dir>/<applicationID>/<kind><ext>.
// Cloud object storage is deliberately out of scope; the path column keeps
// the schema ready for it.
type diskStore struct {
	dir string
}

func NewDiskStore(dir string) (DocumentStore, error) {
	if dir == "" {
		return nil, fmt.Errorf("document store requires a directory")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating document dir: %w", err)
	}
	return &diskStore{dir: dir}, nil
}

func (s *diskStore) Save(_ context.Context, applicationID uuid.UUID, upload DocumentUpload) (string, error) {
	appDir := filepath.Join(s.dir, applicationID.String())
	if err := os.MkdirAll(appDir, 0o755); err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "creating application dir")
	}
	path := filepath.Join(appDir, string(upload.Kind)+extensionFor(upload.ContentType))
	if err := os.WriteFile(path, upload.Content, 0o644); err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "writing document")
	}
	return path, nil
}

func (s *diskStore) Discard(_ context.Context, applicationID uuid.UUID) error {
	return os.RemoveAll(filepath.Join(s.dir, applicationID.String()))
}

func extensionFor(contentType string) string {
	switch contentType {
	case "application/pdf":
		return ".pdf"
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	}
	return ""
}
