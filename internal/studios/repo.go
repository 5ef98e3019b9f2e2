package studios

import (
	"context"

	"github.com/fitdesk-hq/fitdesk-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository handles studio and membership persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to studio operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindByID loads a studio.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Studio, error) {
	var studio models.Studio
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&studio).Error; err != nil {
		return nil, err
	}
	return &studio, nil
}

// Create persists a studio and the owner membership together.
func (r *Repository) Create(ctx context.Context, studio *models.Studio, owner *models.Membership) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(studio).Error; err != nil {
			return err
		}
		return tx.Create(owner).Error
	})
}

// CreateWithTx persists a studio and the owner membership on the caller's
// transaction.
func (r *Repository) CreateWithTx(tx *gorm.DB, studio *models.Studio, owner *models.Membership) error {
	if tx == nil {
		return gorm.ErrInvalidTransaction
	}
	if err := tx.Create(studio).Error; err != nil {
		return err
	}
	return tx.Create(owner).Error
}

// Update applies the provided column map to the studio row.
func (r *Repository) Update(ctx context.Context, id uuid.UUID, columns map[string]any) error {
	if len(columns) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&models.Studio{}).
		Where("id = ?", id).
		Updates(columns).Error
}

// Membership loads the membership linking a user to a studio.
func (r *Repository) Membership(ctx context.Context, studioID, userID uuid.UUID) (*models.Membership, error) {
	var membership models.Membership
	if err := r.db.WithContext(ctx).
		Where("studio_id = ? AND user_id = ?", studioID, userID).
		First(&membership).Error; err != nil {
		return nil, err
	}
	return &membership, nil
}

// MembershipsForUser lists every studio the user belongs to.
func (r *Repository) MembershipsForUser(ctx context.Context, userID uuid.UUID) ([]models.Membership, error) {
	var rows []models.Membership
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Members lists the studio roster joined with user profiles.
func (r *Repository) Members(ctx context.Context, studioID uuid.UUID) ([]MemberDTO, error) {
	var rows []MemberDTO
	if err := r.db.WithContext(ctx).
		Table("memberships").
		Select("memberships.user_id, users.full_name, users.email, memberships.role, memberships.created_at AS joined_at").
		Joins("JOIN users ON users.id = memberships.user_id").
		Where("memberships.studio_id = ?", studioID).
		Order("memberships.created_at ASC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// AddMemberWithTx inserts a membership on the caller's transaction.
func (r *Repository) AddMemberWithTx(tx *gorm.DB, membership *models.Membership) error {
	if tx == nil {
		return gorm.ErrInvalidTransaction
	}
	if membership.ID == uuid.Nil {
		membership.ID = uuid.New()
	}
	return tx.Create(membership).Error
}
