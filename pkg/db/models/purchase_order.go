package models

import (
	"time"

	"github.com/fitdesk-hq/fitdesk-backend/pkg/enums"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PurchaseOrder tracks an order placed with a vendor.
type PurchaseOrder struct {
	ID          uuid.UUID                 `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	StudioID    uuid.UUID                 `gorm:"column:studio_id;type:uuid;not null;index"`
	VendorID    uuid.UUID                 `gorm:"column:vendor_id;type:uuid;not null;index"`
	OrderNumber string                    `gorm:"column:order_number;not null"`
	Status      enums.PurchaseOrderStatus `gorm:"column:status;type:purchase_order_status;not null;default:'draft'"`
	Total       decimal.Decimal           `gorm:"column:total;type:numeric(14,2);not null;default:0"`
	ExpectedAt  *time.Time                `gorm:"column:expected_at"`
	IssuedAt    *time.Time                `gorm:"column:issued_at"`
	Notes       *string                   `gorm:"column:notes"`
	CreatedBy   uuid.UUID                 `gorm:"column:created_by;type:uuid;not null"`
	CreatedAt   time.Time                 `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time                 `gorm:"column:updated_at;autoUpdateTime"`
}

// PurchaseOrderItem is one material line on a purchase order.
type PurchaseOrderItem struct {
	ID              uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	PurchaseOrderID uuid.UUID       `gorm:"column:purchase_order_id;type:uuid;not null;index"`
	MaterialID      uuid.UUID       `gorm:"column:material_id;type:uuid;not null"`
	Quantity        decimal.Decimal `gorm:"column:quantity;type:numeric(12,3);not null"`
	ReceivedQty     decimal.Decimal `gorm:"column:received_qty;type:numeric(12,3);not null;default:0"`
	UnitCost        decimal.Decimal `gorm:"column:unit_cost;type:numeric(14,2);not null"`
	Amount          decimal.Decimal `gorm:"column:amount;type:numeric(14,2);not null"`
	CreatedAt       time.Time       `gorm:"column:created_at;autoCreateTime"`
}
