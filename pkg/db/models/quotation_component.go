package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// QuotationComponent is a design element ("Wardrobe"), optionally nested
// under a space of the same quotation. SpaceID nil means headless.
type QuotationComponent struct {
	ID                 uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	QuotationID        uuid.UUID       `gorm:"column:quotation_id;type:uuid;not null;index"`
	SpaceID            *uuid.UUID      `gorm:"column:space_id;type:uuid;index"`
	Name               string          `gorm:"column:name;not null"`
	ComponentTypeID    *uuid.UUID      `gorm:"column:component_type_id;type:uuid"`
	ComponentVariantID *uuid.UUID      `gorm:"column:component_variant_id;type:uuid"`
	Subtotal           decimal.Decimal `gorm:"column:subtotal;type:numeric(14,2);not null;default:0"`
	DisplayOrder       int             `gorm:"column:display_order;not null;default:0"`
	CreatedAt          time.Time       `gorm:"column:created_at;autoCreateTime"`
}
