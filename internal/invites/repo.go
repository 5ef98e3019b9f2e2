package invites

import (
	"context"

	"github.com/fitdesk-hq/fitdesk-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository handles invite persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to invite operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindByID loads an invite scoped to the studio.
func (r *Repository) FindByID(ctx context.Context, studioID, id uuid.UUID) (*models.Invite, error) {
	var invite models.Invite
	if err := r.db.WithContext(ctx).
		Where("id = ? AND studio_id = ?", id, studioID).
		First(&invite).Error; err != nil {
		return nil, err
	}
	return &invite, nil
}

// FindByToken loads an invite by its opaque token.
func (r *Repository) FindByToken(ctx context.Context, token string) (*models.Invite, error) {
	var invite models.Invite
	if err := r.db.WithContext(ctx).
		Where("token = ?", token).
		First(&invite).Error; err != nil {
		return nil, err
	}
	return &invite, nil
}

// ListByStudio returns the studio's invites, newest first.
func (r *Repository) ListByStudio(ctx context.Context, studioID uuid.UUID) ([]models.Invite, error) {
	var rows []models.Invite
	if err := r.db.WithContext(ctx).
		Where("studio_id = ?", studioID).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Create persists a new invite.
func (r *Repository) Create(ctx context.Context, invite *models.Invite) error {
	if invite.ID == uuid.Nil {
		invite.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(invite).Error
}

// Update applies the provided column map to the invite row.
func (r *Repository) Update(ctx context.Context, id uuid.UUID, columns map[string]any) error {
	if len(columns) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&models.Invite{}).
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
	return tx.Model(&models.Invite{}).Where("id = ?", id).Updates(columns).Error
}
