package materials

import (
	"context"
	stdErrors "errors"
	"strings"

	"github.com/fitdesk-hq/fitdesk-backend/pkg/db/models"
	pkgerrors "github.com/fitdesk-hq/fitdesk-backend/pkg/errors"
	"github.com/fitdesk-hq/fitdesk-backend/pkg/logger"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repo is the persistence surface the service needs.
type Repo interface {
	FindByID(ctx context.Context, studioID, id uuid.UUID) (*models.Material, error)
	ListByStudio(ctx context.Context, studioID uuid.UUID, params ListParams) ([]models.Material, error)
	Create(ctx context.Context, material *models.Material) error
	Update(ctx context.Context, id uuid.UUID, columns map[string]any) error
}

// Service owns material master data rules.
type Service struct {
	repo Repo
	logg *logger.Logger
}

// NewService wires the material service.
func NewService(repo Repo, logg *logger.Logger) *Service {
	return &Service{repo: repo, logg: logg}
}

// Get loads one material.
func (s *Service) Get(ctx context.Context, studioID, id uuid.UUID) (*models.Material, error) {
	material, err := s.repo.FindByID(ctx, studioID, id)
	if err != nil {
		return nil, notFoundOr(err, "material not found")
	}
	return material, nil
}

// List returns the studio's materials.
func (s *Service) List(ctx context.Context, studioID uuid.UUID, params ListParams) ([]models.Material, error) {
	rows, err := s.repo.ListByStudio(ctx, studioID, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing materials")
	}
	return rows, nil
}

// Create registers a new stock item.
func (s *Service) Create(ctx context.Context, studioID uuid.UUID, in CreateInput) (*models.Material, error) {
	if strings.TrimSpace(in.SKU) == "" || strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Unit) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "sku, name, and unit are required")
	}

	material := &models.Material{
		ID:       uuid.New(),
		StudioID: studioID,
		SKU:      in.SKU,
		Name:     in.Name,
		Category: in.Category,
		Unit:     in.Unit,
		UnitCost: in.UnitCost,
		VendorID: in.VendorID,
		Active:   true,
	}
	if in.StockOnHand != nil {
		material.StockOnHand = *in.StockOnHand
	}
	if in.ReorderLevel != nil {
		material.ReorderLevel = *in.ReorderLevel
	}
	if material.StockOnHand.IsNegative() || material.ReorderLevel.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "stock levels cannot be negative")
	}

	if err := s.repo.Create(ctx, material); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating material")
	}
	return material, nil
}

// Update patches material fields.
func (s *Service) Update(ctx context.Context, studioID, id uuid.UUID, in UpdateInput) (*models.Material, error) {
	if _, err := s.repo.FindByID(ctx, studioID, id); err != nil {
		return nil, notFoundOr(err, "material not found")
	}

	columns := map[string]any{}
	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "name cannot be empty")
		}
		columns["name"] = *in.Name
	}
	if in.Category != nil {
		columns["category"] = *in.Category
	}
	if in.Unit != nil {
		columns["unit"] = *in.Unit
	}
	if in.UnitCost != nil {
		if in.UnitCost.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "unit_cost cannot be negative")
		}
		columns["unit_cost"] = *in.UnitCost
	}
	if in.ReorderLevel != nil {
		if in.ReorderLevel.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "reorder_level cannot be negative")
		}
		columns["reorder_level"] = *in.ReorderLevel
	}
	if in.VendorID != nil {
		columns["vendor_id"] = *in.VendorID
	}
	if in.Active != nil {
		columns["active"] = *in.Active
	}

	if err := s.repo.Update(ctx, id, columns); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating material")
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
