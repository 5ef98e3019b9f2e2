package materials

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateInput registers a stock item.
type CreateInput struct {
	SKU          string           `json:"sku" validate:"required"`
	Name         string           `json:"name" validate:"required"`
	Category     *string          `json:"category"`
	Unit         string           `json:"unit" validate:"required"`
	UnitCost     decimal.Decimal  `json:"unit_cost"`
	StockOnHand  *decimal.Decimal `json:"stock_on_hand"`
	ReorderLevel *decimal.Decimal `json:"reorder_level"`
	VendorID     *uuid.UUID       `json:"vendor_id"`
}

// UpdateInput patches material fields. Stock is adjusted by goods receipts
// and requisitions, not through this patch.
type UpdateInput struct {
	Name         *string          `json:"name"`
	Category     *string          `json:"category"`
	Unit         *string          `json:"unit"`
	UnitCost     *decimal.Decimal `json:"unit_cost"`
	ReorderLevel *decimal.Decimal `json:"reorder_level"`
	VendorID     *uuid.UUID       `json:"vendor_id"`
	Active       *bool            `json:"active"`
}

// ListParams filters the material list.
type ListParams struct {
	Category     string
	BelowReorder bool
	ActiveOnly   bool
}
