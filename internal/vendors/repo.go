package vendors

import (
	"context"

	"github.com/fitdesk-hq/fitdesk-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository handles vendor persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to vendor operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindByID loads a vendor scoped to the studio.
func (r *Repository) FindByID(ctx context.Context, studioID, id uuid.UUID) (*models.Vendor, error) {
	var vendor models.Vendor
	if err := r.db.WithContext(ctx).
		Where("id = ? AND studio_id = ?", id, studioID).
		First(&vendor).Error; err != nil {
		return nil, err
	}
	return &vendor, nil
}

// ListByStudio returns the studio's vendors ordered by name.
func (r *Repository) ListByStudio(ctx context.Context, studioID uuid.UUID, params ListParams) ([]models.Vendor, error) {
	query := r.db.WithContext(ctx).
		Where("studio_id = ?", studioID).
		Order("name ASC")

	if params.ActiveOnly {
		query = query.Where("active = ?", true)
	}
	if params.Category != "" {
		query = query.Where("? = ANY(categories)", params.Category)
	}

	var rows []models.Vendor
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Create persists a new vendor.
func (r *Repository) Create(ctx context.Context, vendor *models.Vendor) error {
	if vendor.ID == uuid.Nil {
		vendor.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(vendor).Error
}

// Update applies the provided column map to the vendor row.
func (r *Repository) Update(ctx context.Context, id uuid.UUID, columns map[string]any) error {
	if len(columns) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&models.Vendor{}).
		Where("id = ?", id).
		Updates(columns).Error
}
