package models

import (
	"time"

	"github.com/fitdesk-hq/fitdesk-backend/pkg/enums"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Lead is a sales pipeline entry for a prospective project.
type Lead struct {
	ID             uuid.UUID        `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	StudioID       uuid.UUID        `gorm:"column:studio_id;type:uuid;not null;index"`
	Name           string           `gorm:"column:name;not null"`
	ContactName    *string          `gorm:"column:contact_name"`
	ContactEmail   *string          `gorm:"column:contact_email"`
	ContactPhone   *string          `gorm:"column:contact_phone"`
	Source         *string          `gorm:"column:source"`
	Stage          enums.LeadStage  `gorm:"column:stage;type:lead_stage;not null;default:'new'"`
	BudgetMin      *decimal.Decimal `gorm:"column:budget_min;type:numeric(14,2)"`
	BudgetMax      *decimal.Decimal `gorm:"column:budget_max;type:numeric(14,2)"`
	Notes          *string          `gorm:"column:notes"`
	AssignedTo     *uuid.UUID       `gorm:"column:assigned_to;type:uuid"`
	LostReason     *string          `gorm:"column:lost_reason"`
	TransitionedAt *time.Time       `gorm:"column:transitioned_at"`
	CreatedBy      uuid.UUID        `gorm:"column:created_by;type:uuid;not null"`
	CreatedAt      time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}
