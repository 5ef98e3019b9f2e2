package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// QuotationSpace is a physical area ("Living Room") within one quotation.
// Rows exist only as part of a full-tree replace; deleting the quotation's
// spaces cascades to its components at the schema level.
type QuotationSpace struct {
	ID           uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	QuotationID  uuid.UUID       `gorm:"column:quotation_id;type:uuid;not null;index"`
	Name         string          `gorm:"column:name;not null"`
	SpaceTypeID  *uuid.UUID      `gorm:"column:space_type_id;type:uuid"`
	Subtotal     decimal.Decimal `gorm:"column:subtotal;type:numeric(14,2);not null;default:0"`
	DisplayOrder int             `gorm:"column:display_order;not null;default:0"`
	CreatedAt    time.Time       `gorm:"column:created_at;autoCreateTime"`
}
