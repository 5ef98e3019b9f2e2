package leads

import (
	"context"

	"github.com/fitdesk-hq/fitdesk-backend/pkg/db/models"
	"github.com/fitdesk-hq/fitdesk-backend/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository handles lead persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to lead operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindByID loads a lead scoped to the studio.
func (r *Repository) FindByID(ctx context.Context, studioID, id uuid.UUID) (*models.Lead, error) {
	var lead models.Lead
	if err := r.db.WithContext(ctx).
		Where("id = ? AND studio_id = ?", id, studioID).
		First(&lead).Error; err != nil {
		return nil, err
	}
	return &lead, nil
}

// ListByStudio returns a cursor page of leads, newest first, optionally
// filtered by stage.
func (r *Repository) ListByStudio(ctx context.Context, studioID uuid.UUID, params ListParams) ([]models.Lead, error) {
	query := r.db.WithContext(ctx).
		Where("studio_id = ?", studioID).
		Order("created_at DESC, id DESC").
		Limit(pagination.LimitWithBuffer(params.Limit))

	if params.Stage != "" {
		query = query.Where("stage = ?", params.Stage)
	}

	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, err
	}
	if cursor != nil {
		query = query.Where("(created_at, id) < (?, ?)", cursor.CreatedAt, cursor.ID)
	}

	var rows []models.Lead
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Create persists a new lead.
func (r *Repository) Create(ctx context.Context, lead *models.Lead) error {
	if lead.ID == uuid.Nil {
		lead.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(lead).Error
}

// Update applies the provided column map to the lead row.
func (r *Repository) Update(ctx context.Context, id uuid.UUID, columns map[string]any) error {
	if len(columns) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&models.Lead{}).
		Where("id = ?", id).
		Updates(columns).Error
}

// UpdateWithTx applies the column map inside the provided transaction.
func (r *Repository) UpdateWithTx(tx *gorm.DB, id uuid.UUID, columns map[string]any) error {
	if tx == nil {
		return gorm.ErrInvalidTransaction
	}
	if len(columns) == 0 {
		return nil
	}
	return tx.Model(&models.Lead{}).Where("id = ?", id).Updates(columns).Error
}

// Delete removes a lead scoped to the studio.
func (r *Repository) Delete(ctx context.Context, studioID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND studio_id = ?", id, studioID).
		Delete(&models.Lead{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
