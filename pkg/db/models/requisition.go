package models

import (
	"time"

	"github.com/fitdesk-hq/fitdesk-backend/pkg/enums"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Requisition is an internal request for materials.
type Requisition struct {
	ID          uuid.UUID               `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	StudioID    uuid.UUID               `gorm:"column:studio_id;type:uuid;not null;index"`
	MaterialID  uuid.UUID               `gorm:"column:material_id;type:uuid;not null"`
	Quantity    decimal.Decimal         `gorm:"column:quantity;type:numeric(12,3);not null"`
	Purpose     *string                 `gorm:"column:purpose"`
	Status      enums.RequisitionStatus `gorm:"column:status;type:requisition_status;not null;default:'pending'"`
	RequestedBy uuid.UUID               `gorm:"column:requested_by;type:uuid;not null"`
	DecidedBy   *uuid.UUID              `gorm:"column:decided_by;type:uuid"`
	DecidedAt   *time.Time              `gorm:"column:decided_at"`
	CreatedAt   time.Time               `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time               `gorm:"column:updated_at;autoUpdateTime"`
}
