package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Material is a stock item tracked per studio.
type Material struct {
	ID           uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	StudioID     uuid.UUID       `gorm:"column:studio_id;type:uuid;not null;index"`
	SKU          string          `gorm:"column:sku;not null"`
	Name         string          `gorm:"column:name;not null"`
	Category     *string         `gorm:"column:category"`
	Unit         string          `gorm:"column:unit;not null"`
	UnitCost     decimal.Decimal `gorm:"column:unit_cost;type:numeric(14,2);not null;default:0"`
	StockOnHand  decimal.Decimal `gorm:"column:stock_on_hand;type:numeric(12,3);not null;default:0"`
	ReorderLevel decimal.Decimal `gorm:"column:reorder_level;type:numeric(12,3);not null;default:0"`
	VendorID     *uuid.UUID      `gorm:"column:vendor_id;type:uuid"`
	Active       bool            `gorm:"column:active;not null;default:true"`
	CreatedAt    time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
