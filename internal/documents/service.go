package documents

import (
	"context"
	stdErrors "errors"
	"fmt"
	"strings"

	"github.com/fitdesk-hq/fitdesk-backend/pkg/db/models"
	"github.com/fitdesk-hq/fitdesk-backend/pkg/enums"
	pkgerrors "github.com/fitdesk-hq/fitdesk-backend/pkg/errors"
	"github.com/fitdesk-hq/fitdesk-backend/pkg/logger"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repo is the persistence surface the service needs.
type Repo interface {
	ListByStudio(ctx context.Context, studioID uuid.UUID, params ListParams) ([]models.Document, error)
	Create(ctx context.Context, document *models.Document) error
	Delete(ctx context.Context, studioID, id uuid.UUID) error
}

// Service owns the document library rules.
type Service struct {
	repo Repo
	logg *logger.Logger
}

// NewService wires the document service.
func NewService(repo Repo, logg *logger.Logger) *Service {
	return &Service{repo: repo, logg: logg}
}

// List returns the studio's documents.
func (s *Service) List(ctx context.Context, studioID uuid.UUID, params ListParams) ([]models.Document, error) {
	if params.Kind != "" && !params.Kind.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown document kind %q", params.Kind))
	}
	rows, err := s.repo.ListByStudio(ctx, studioID, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing documents")
	}
	return rows, nil
}

// Create records a document metadata row.
func (s *Service) Create(ctx context.Context, studioID, userID uuid.UUID, in CreateInput) (*models.Document, error) {
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.URL) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name and url are required")
	}
	kind := in.Kind
	if kind == "" {
		kind = enums.DocumentKindOther
	}
	if !kind.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown document kind %q", kind))
	}
	if in.SizeBytes < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "size_bytes cannot be negative")
	}

	document := &models.Document{
		ID:         uuid.New(),
		StudioID:   studioID,
		Name:       in.Name,
		Kind:       kind,
		URL:        in.URL,
		SizeBytes:  in.SizeBytes,
		MimeType:   in.MimeType,
		LeadID:     in.LeadID,
		UploadedBy: userID,
	}
	if err := s.repo.Create(ctx, document); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating document")
	}
	return document, nil
}

// Delete removes a document metadata row. The external binary is left to
// the storage system's own lifecycle.
func (s *Service) Delete(ctx context.Context, studioID, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, studioID, id); err != nil {
		if stdErrors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "document not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "deleting document")
	}
	return nil
}
