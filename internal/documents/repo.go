package documents

import (
	"context"

	"github.com/fitdesk-hq/fitdesk-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository handles document metadata persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to document operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListByStudio returns the studio's documents, newest first.
func (r *Repository) ListByStudio(ctx context.Context, studioID uuid.UUID, params ListParams) ([]models.Document, error) {
	query := r.db.WithContext(ctx).
		Where("studio_id = ?", studioID).
		Order("created_at DESC")

	if params.Kind != "" {
		query = query.Where("kind = ?", params.Kind)
	}
	if params.LeadID != nil {
		query = query.Where("lead_id = ?", *params.LeadID)
	}

	var rows []models.Document
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Create persists a new document row.
func (r *Repository) Create(ctx context.Context, document *models.Document) error {
	if document.ID == uuid.Nil {
		document.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(document).Error
}

// Delete removes a document row scoped to the studio.
func (r *Repository) Delete(ctx context.Context, studioID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND studio_id = ?", id, studioID).
		Delete(&models.Document{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
