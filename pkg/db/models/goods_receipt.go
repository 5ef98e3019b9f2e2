package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// GoodsReceipt records a delivery posted against a purchase order.
type GoodsReceipt struct {
	ID              uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	StudioID        uuid.UUID `gorm:"column:studio_id;type:uuid;not null;index"`
	PurchaseOrderID uuid.UUID `gorm:"column:purchase_order_id;type:uuid;not null;index"`
	ReceivedBy      uuid.UUID `gorm:"column:received_by;type:uuid;not null"`
	Reference       *string   `gorm:"column:reference"`
	Notes           *string   `gorm:"column:notes"`
	ReceivedAt      time.Time `gorm:"column:received_at;not null"`
	CreatedAt       time.Time `gorm:"column:created_at;autoCreateTime"`
}

// GoodsReceiptItem records the received quantity for one PO line.
type GoodsReceiptItem struct {
	ID                  uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	GoodsReceiptID      uuid.UUID       `gorm:"column:goods_receipt_id;type:uuid;not null;index"`
	PurchaseOrderItemID uuid.UUID       `gorm:"column:purchase_order_item_id;type:uuid;not null"`
	Quantity            decimal.Decimal `gorm:"column:quantity;type:numeric(12,3);not null"`
	CreatedAt           time.Time       `gorm:"column:created_at;autoCreateTime"`
}
