package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// QuotationLineItem is a priced unit. It may reference a space and/or a
// component; a resolvable component reference wins for display purposes.
// Line items do NOT cascade from space deletion and need explicit deletes.
type QuotationLineItem struct {
	ID                   uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	QuotationID          uuid.UUID       `gorm:"column:quotation_id;type:uuid;not null;index"`
	QuotationSpaceID     *uuid.UUID      `gorm:"column:quotation_space_id;type:uuid"`
	QuotationComponentID *uuid.UUID      `gorm:"column:quotation_component_id;type:uuid"`
	CostItemID           *uuid.UUID      `gorm:"column:cost_item_id;type:uuid"`
	Description          string          `gorm:"column:description;not null"`
	Quantity             decimal.Decimal `gorm:"column:quantity;type:numeric(12,3);not null;default:0"`
	Rate                 decimal.Decimal `gorm:"column:rate;type:numeric(14,2);not null;default:0"`
	Amount               decimal.Decimal `gorm:"column:amount;type:numeric(14,2);not null;default:0"`
	MeasurementUnit      *string         `gorm:"column:measurement_unit"`
	DisplayOrder         int             `gorm:"column:display_order;not null;default:0"`
	CreatedAt            time.Time       `gorm:"column:created_at;autoCreateTime"`
}
