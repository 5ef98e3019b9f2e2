package procurement

import (
	"context"

	"github.com/fitdesk-hq/fitdesk-backend/pkg/db/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Repository handles purchase order, receipt, and requisition persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to procurement operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindOrderByID loads a purchase order scoped to the studio.
func (r *Repository) FindOrderByID(ctx context.Context, studioID, id uuid.UUID) (*models.PurchaseOrder, error) {
	var order models.PurchaseOrder
	if err := r.db.WithContext(ctx).
		Where("id = ? AND studio_id = ?", id, studioID).
		First(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// ListOrders returns the studio's purchase orders, newest first.
func (r *Repository) ListOrders(ctx context.Context, studioID uuid.UUID) ([]models.PurchaseOrder, error) {
	var rows []models.PurchaseOrder
	if err := r.db.WithContext(ctx).
		Where("studio_id = ?", studioID).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// OrderItems returns the lines on a purchase order.
func (r *Repository) OrderItems(ctx context.Context, orderID uuid.UUID) ([]models.PurchaseOrderItem, error) {
	var rows []models.PurchaseOrderItem
	if err := r.db.WithContext(ctx).
		Where("purchase_order_id = ?", orderID).
		Order("created_at ASC, id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// OrderItemsWithTx loads the lines on a purchase order for update.
func (r *Repository) OrderItemsWithTx(tx *gorm.DB, orderID uuid.UUID) ([]models.PurchaseOrderItem, error) {
	if tx == nil {
		return nil, gorm.ErrInvalidTransaction
	}
	var rows []models.PurchaseOrderItem
	if err := tx.Where("purchase_order_id = ?", orderID).
		Order("created_at ASC, id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// CreateOrderWithTx inserts the order and its lines in one transaction.
func (r *Repository) CreateOrderWithTx(tx *gorm.DB, order *models.PurchaseOrder, items []models.PurchaseOrderItem) error {
	if tx == nil {
		return gorm.ErrInvalidTransaction
	}
	if err := tx.Create(order).Error; err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}
	return tx.Create(&items).Error
}

// UpdateOrder applies the provided column map to the order row.
func (r *Repository) UpdateOrder(ctx context.Context, id uuid.UUID, columns map[string]any) error {
	if len(columns) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&models.PurchaseOrder{}).
		Where("id = ?", id).
		Updates(columns).Error
}

// UpdateOrderWithTx applies the column map inside the provided transaction.
func (r *Repository) UpdateOrderWithTx(tx *gorm.DB, id uuid.UUID, columns map[string]any) error {
	if tx == nil {
		return gorm.ErrInvalidTransaction
	}
	if len(columns) == 0 {
		return nil
	}
	return tx.Model(&models.PurchaseOrder{}).Where("id = ?", id).Updates(columns).Error
}

// AddReceivedQtyWithTx bumps the received quantity on one PO line.
func (r *Repository) AddReceivedQtyWithTx(tx *gorm.DB, itemID uuid.UUID, qty decimal.Decimal) error {
	if tx == nil {
		return gorm.ErrInvalidTransaction
	}
	result := tx.Model(&models.PurchaseOrderItem{}).
		Where("id = ?", itemID).
		Update("received_qty", gorm.Expr("received_qty + ?", qty))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CreateReceiptWithTx inserts the receipt and its lines.
func (r *Repository) CreateReceiptWithTx(tx *gorm.DB, receipt *models.GoodsReceipt, items []models.GoodsReceiptItem) error {
	if tx == nil {
		return gorm.ErrInvalidTransaction
	}
	if err := tx.Create(receipt).Error; err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}
	return tx.Create(&items).Error
}

// FindRequisitionByID loads a requisition scoped to the studio.
func (r *Repository) FindRequisitionByID(ctx context.Context, studioID, id uuid.UUID) (*models.Requisition, error) {
	var requisition models.Requisition
	if err := r.db.WithContext(ctx).
		Where("id = ? AND studio_id = ?", id, studioID).
		First(&requisition).Error; err != nil {
		return nil, err
	}
	return &requisition, nil
}

// ListRequisitions returns the studio's requisitions, newest first.
func (r *Repository) ListRequisitions(ctx context.Context, studioID uuid.UUID) ([]models.Requisition, error) {
	var rows []models.Requisition
	if err := r.db.WithContext(ctx).
		Where("studio_id = ?", studioID).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// CreateRequisition persists a new requisition.
func (r *Repository) CreateRequisition(ctx context.Context, requisition *models.Requisition) error {
	if requisition.ID == uuid.Nil {
		requisition.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(requisition).Error
}

// UpdateRequisitionWithTx applies the column map inside the transaction.
func (r *Repository) UpdateRequisitionWithTx(tx *gorm.DB, id uuid.UUID, columns map[string]any) error {
	if tx == nil {
		return gorm.ErrInvalidTransaction
	}
	if len(columns) == 0 {
		return nil
	}
	return tx.Model(&models.Requisition{}).Where("id = ?", id).Updates(columns).Error
}
