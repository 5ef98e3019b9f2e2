package materials

import (
	"context"

	"github.com/fitdesk-hq/fitdesk-backend/pkg/db/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Repository handles material persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to material operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindByID loads a material scoped to the studio.
func (r *Repository) FindByID(ctx context.Context, studioID, id uuid.UUID) (*models.Material, error) {
	var material models.Material
	if err := r.db.WithContext(ctx).
		Where("id = ? AND studio_id = ?", id, studioID).
		First(&material).Error; err != nil {
		return nil, err
	}
	return &material, nil
}

// ListByStudio returns the studio's materials ordered by name.
func (r *Repository) ListByStudio(ctx context.Context, studioID uuid.UUID, params ListParams) ([]models.Material, error) {
	query := r.db.WithContext(ctx).
		Where("studio_id = ?", studioID).
		Order("name ASC")

	if params.ActiveOnly {
		query = query.Where("active = ?", true)
	}
	if params.Category != "" {
		query = query.Where("category = ?", params.Category)
	}
	if params.BelowReorder {
		query = query.Where("stock_on_hand < reorder_level")
	}

	var rows []models.Material
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Create persists a new material.
func (r *Repository) Create(ctx context.Context, material *models.Material) error {
	if material.ID == uuid.Nil {
		material.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(material).Error
}

// Update applies the provided column map to the material row.
func (r *Repository) Update(ctx context.Context, id uuid.UUID, columns map[string]any) error {
	if len(columns) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&models.Material{}).
		Where("id = ?", id).
		Updates(columns).Error
}

// AdjustStockWithTx shifts stock_on_hand by delta inside the provided
// transaction. Negative deltas must not take stock below zero.
func (r *Repository) AdjustStockWithTx(tx *gorm.DB, id uuid.UUID, delta decimal.Decimal) error {
	if tx == nil {
		return gorm.ErrInvalidTransaction
	}
	result := tx.Model(&models.Material{}).
		Where("id = ?", id).
		Where("stock_on_hand + ? >= 0", delta).
		Update("stock_on_hand", gorm.Expr("stock_on_hand + ?", delta))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
