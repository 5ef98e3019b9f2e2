package procurement

import (
	"time"

	"github.com/fitdesk-hq/fitdesk-backend/pkg/db/models"
	"github.com/fitdesk-hq/fitdesk-backend/pkg/enums"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderItemInput is one material line for a new purchase order.
type OrderItemInput struct {
	MaterialID uuid.UUID       `json:"material_id" validate:"required"`
	Quantity   decimal.Decimal `json:"quantity" validate:"required"`
	UnitCost   decimal.Decimal `json:"unit_cost"`
}

// CreateOrderInput opens a draft purchase order.
type CreateOrderInput struct {
	VendorID   uuid.UUID        `json:"vendor_id" validate:"required"`
	ExpectedAt *time.Time       `json:"expected_at"`
	Notes      *string          `json:"notes"`
	Items      []OrderItemInput `json:"items" validate:"required,min=1"`
}

// OrderDTO bundles a purchase order with its lines.
type OrderDTO struct {
	Order models.PurchaseOrder       `json:"order"`
	Items []models.PurchaseOrderItem `json:"items"`
}

// ReceiptItemInput posts a received quantity against one PO line.
type ReceiptItemInput struct {
	PurchaseOrderItemID uuid.UUID       `json:"purchase_order_item_id" validate:"required"`
	Quantity            decimal.Decimal `json:"quantity" validate:"required"`
}

// CreateReceiptInput posts a delivery against a purchase order.
type CreateReceiptInput struct {
	Reference *string            `json:"reference"`
	Notes     *string            `json:"notes"`
	Items     []ReceiptItemInput `json:"items" validate:"required,min=1"`
}

// ReceiptDTO bundles a goods receipt with its lines and the rolled-up
// purchase order status after posting.
type ReceiptDTO struct {
	Receipt     models.GoodsReceipt       `json:"receipt"`
	Items       []models.GoodsReceiptItem `json:"items"`
	OrderStatus enums.PurchaseOrderStatus `json:"order_status"`
}

// CreateRequisitionInput requests materials for internal use.
type CreateRequisitionInput struct {
	MaterialID uuid.UUID       `json:"material_id" validate:"required"`
	Quantity   decimal.Decimal `json:"quantity" validate:"required"`
	Purpose    *string         `json:"purpose"`
}

// DecisionInput approves or rejects a pending requisition. Approval
// fulfills immediately, drawing the quantity down from stock.
type DecisionInput struct {
	Approve bool `json:"approve"`
}
