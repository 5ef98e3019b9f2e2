package vendors

import (
	"context"
	stdErrors "errors"
	"strings"

	"github.com/fitdesk-hq/fitdesk-backend/pkg/db/models"
	pkgerrors "github.com/fitdesk-hq/fitdesk-backend/pkg/errors"
	"github.com/fitdesk-hq/fitdesk-backend/pkg/logger"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Repo is the persistence surface the service needs.
type Repo interface {
	FindByID(ctx context.Context, studioID, id uuid.UUID) (*models.Vendor, error)
	ListByStudio(ctx context.Context, studioID uuid.UUID, params ListParams) ([]models.Vendor, error)
	Create(ctx context.Context, vendor *models.Vendor) error
	Update(ctx context.Context, id uuid.UUID, columns map[string]any) error
}

// Service owns vendor master data rules.
type Service struct {
	repo Repo
	logg *logger.Logger
}

// NewService wires the vendor service.
func NewService(repo Repo, logg *logger.Logger) *Service {
	return &Service{repo: repo, logg: logg}
}

// Get loads one vendor.
func (s *Service) Get(ctx context.Context, studioID, id uuid.UUID) (*models.Vendor, error) {
	vendor, err := s.repo.FindByID(ctx, studioID, id)
	if err != nil {
		return nil, notFoundOr(err, "vendor not found")
	}
	return vendor, nil
}

// List returns the studio's vendors.
func (s *Service) List(ctx context.Context, studioID uuid.UUID, params ListParams) ([]models.Vendor, error) {
	rows, err := s.repo.ListByStudio(ctx, studioID, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing vendors")
	}
	return rows, nil
}

// Create registers a new vendor.
func (s *Service) Create(ctx context.Context, studioID, userID uuid.UUID, in CreateInput) (*models.Vendor, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}

	vendor := &models.Vendor{
		ID:           uuid.New(),
		StudioID:     studioID,
		Name:         in.Name,
		ContactName:  in.ContactName,
		Email:        in.Email,
		Phone:        in.Phone,
		AddressLine:  in.AddressLine,
		GSTNumber:    in.GSTNumber,
		Categories:   pq.StringArray(in.Categories),
		PaymentTerms: in.PaymentTerms,
		Active:       true,
		CreatedBy:    userID,
	}
	if err := s.repo.Create(ctx, vendor); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating vendor")
	}
	return vendor, nil
}

// Update patches vendor fields.
func (s *Service) Update(ctx context.Context, studioID, id uuid.UUID, in UpdateInput) (*models.Vendor, error) {
	if _, err := s.repo.FindByID(ctx, studioID, id); err != nil {
		return nil, notFoundOr(err, "vendor not found")
	}

	columns := map[string]any{}
	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "name cannot be empty")
		}
		columns["name"] = *in.Name
	}
	if in.ContactName != nil {
		columns["contact_name"] = *in.ContactName
	}
	if in.Email != nil {
		columns["email"] = *in.Email
	}
	if in.Phone != nil {
		columns["phone"] = *in.Phone
	}
	if in.AddressLine != nil {
		columns["address_line"] = *in.AddressLine
	}
	if in.GSTNumber != nil {
		columns["gst_number"] = *in.GSTNumber
	}
	if in.Categories != nil {
		columns["categories"] = pq.StringArray(in.Categories)
	}
	if in.PaymentTerms != nil {
		columns["payment_terms"] = *in.PaymentTerms
	}
	if in.Active != nil {
		columns["active"] = *in.Active
	}

	if err := s.repo.Update(ctx, id, columns); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating vendor")
	}
	return s.repo.FindByID(ctx, studioID, id)
}

func notFoundOr(err error, message string) error {
	if stdErrors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.New(pkgerrors.CodeNotFound, message)
	}
	if typed := pkgerrors.As(err); typed != nil {
		return typed
	}
	return pkgerrors.Wrap(pkgerrors.CodeInternal, err, message)
}
