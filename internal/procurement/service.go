package procurement

import (
	"context"
	stdErrors "errors"
	"fmt"
	"strings"
	"time"

	"github.com/fitdesk-hq/fitdesk-backend/pkg/db/models"
	"github.com/fitdesk-hq/fitdesk-backend/pkg/enums"
	pkgerrors "github.com/fitdesk-hq/fitdesk-backend/pkg/errors"
	"github.com/fitdesk-hq/fitdesk-backend/pkg/logger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Repo is the persistence surface the service needs.
type Repo interface {
	FindOrderByID(ctx context.Context, studioID, id uuid.UUID) (*models.PurchaseOrder, error)
	ListOrders(ctx context.Context, studioID uuid.UUID) ([]models.PurchaseOrder, error)
	OrderItems(ctx context.Context, orderID uuid.UUID) ([]models.PurchaseOrderItem, error)
	OrderItemsWithTx(tx *gorm.DB, orderID uuid.UUID) ([]models.PurchaseOrderItem, error)
	CreateOrderWithTx(tx *gorm.DB, order *models.PurchaseOrder, items []models.PurchaseOrderItem) error
	UpdateOrder(ctx context.Context, id uuid.UUID, columns map[string]any) error
	UpdateOrderWithTx(tx *gorm.DB, id uuid.UUID, columns map[string]any) error
	AddReceivedQtyWithTx(tx *gorm.DB, itemID uuid.UUID, qty decimal.Decimal) error
	CreateReceiptWithTx(tx *gorm.DB, receipt *models.GoodsReceipt, items []models.GoodsReceiptItem) error
	FindRequisitionByID(ctx context.Context, studioID, id uuid.UUID) (*models.Requisition, error)
	ListRequisitions(ctx context.Context, studioID uuid.UUID) ([]models.Requisition, error)
	CreateRequisition(ctx context.Context, requisition *models.Requisition) error
	UpdateRequisitionWithTx(tx *gorm.DB, id uuid.UUID, columns map[string]any) error
}

// StockAdjuster shifts material stock inside a transaction.
type StockAdjuster interface {
	AdjustStockWithTx(tx *gorm.DB, id uuid.UUID, delta decimal.Decimal) error
}

// TxRunner runs a function inside a database transaction.
type TxRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service owns purchase order, goods receipt, and requisition rules.
type Service struct {
	repo  Repo
	stock StockAdjuster
	tx    TxRunner
	logg  *logger.Logger
}

// NewService wires the procurement service.
func NewService(repo Repo, stock StockAdjuster, tx TxRunner, logg *logger.Logger) *Service {
	return &Service{repo: repo, stock: stock, tx: tx, logg: logg}
}

// GetOrder loads a purchase order with its lines.
func (s *Service) GetOrder(ctx context.Context, studioID, id uuid.UUID) (*OrderDTO, error) {
	order, err := s.repo.FindOrderByID(ctx, studioID, id)
	if err != nil {
		return nil, notFoundOr(err, "purchase order not found")
	}
	items, err := s.repo.OrderItems(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading order items")
	}
	return &OrderDTO{Order: *order, Items: items}, nil
}

// ListOrders returns the studio's purchase orders.
func (s *Service) ListOrders(ctx context.Context, studioID uuid.UUID) ([]models.PurchaseOrder, error) {
	rows, err := s.repo.ListOrders(ctx, studioID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing purchase orders")
	}
	return rows, nil
}

// CreateOrder opens a draft purchase order with its material lines.
func (s *Service) CreateOrder(ctx context.Context, studioID, userID uuid.UUID, in CreateOrderInput) (*OrderDTO, error) {
	if len(in.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "at least one item is required")
	}

	order := &models.PurchaseOrder{
		ID:          uuid.New(),
		StudioID:    studioID,
		VendorID:    in.VendorID,
		OrderNumber: nextOrderNumber(),
		Status:      enums.PurchaseOrderStatusDraft,
		ExpectedAt:  in.ExpectedAt,
		Notes:       in.Notes,
		CreatedBy:   userID,
	}

	items := make([]models.PurchaseOrderItem, 0, len(in.Items))
	total := decimal.Zero
	for _, itemIn := range in.Items {
		if !itemIn.Quantity.IsPositive() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "item quantity must be positive")
		}
		if itemIn.UnitCost.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "item unit_cost cannot be negative")
		}
		amount := itemIn.Quantity.Mul(itemIn.UnitCost)
		total = total.Add(amount)
		items = append(items, models.PurchaseOrderItem{
			ID:              uuid.New(),
			PurchaseOrderID: order.ID,
			MaterialID:      itemIn.MaterialID,
			Quantity:        itemIn.Quantity,
			UnitCost:        itemIn.UnitCost,
			Amount:          amount,
		})
	}
	order.Total = total

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		return s.repo.CreateOrderWithTx(tx, order, items)
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating purchase order")
	}
	return &OrderDTO{Order: *order, Items: items}, nil
}

// IssueOrder moves a draft order to issued.
func (s *Service) IssueOrder(ctx context.Context, studioID, id uuid.UUID) (*models.PurchaseOrder, error) {
	order, err := s.repo.FindOrderByID(ctx, studioID, id)
	if err != nil {
		return nil, notFoundOr(err, "purchase order not found")
	}
	if order.Status != enums.PurchaseOrderStatusDraft {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict,
			fmt.Sprintf("only draft orders can be issued; order is %s", order.Status))
	}

	now := time.Now().UTC()
	columns := map[string]any{"status": enums.PurchaseOrderStatusIssued, "issued_at": now}
	if err := s.repo.UpdateOrder(ctx, id, columns); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "issuing purchase order")
	}
	order.Status = enums.PurchaseOrderStatusIssued
	order.IssuedAt = &now
	return order, nil
}

// CancelOrder cancels an order that has not received any goods yet.
func (s *Service) CancelOrder(ctx context.Context, studioID, id uuid.UUID) (*models.PurchaseOrder, error) {
	order, err := s.repo.FindOrderByID(ctx, studioID, id)
	if err != nil {
		return nil, notFoundOr(err, "purchase order not found")
	}
	switch order.Status {
	case enums.PurchaseOrderStatusDraft, enums.PurchaseOrderStatusIssued:
	default:
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict,
			fmt.Sprintf("order is %s and cannot be cancelled", order.Status))
	}

	if err := s.repo.UpdateOrder(ctx, id, map[string]any{"status": enums.PurchaseOrderStatusCancelled}); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "cancelling purchase order")
	}
	order.Status = enums.PurchaseOrderStatusCancelled
	return order, nil
}

// PostReceipt records a delivery against an issued order. The receipt rows,
// the PO line received quantities, the material stock increments, and the
// rolled-up order status all commit together or not at all.
func (s *Service) PostReceipt(ctx context.Context, studioID, userID, orderID uuid.UUID, in CreateReceiptInput) (*ReceiptDTO, error) {
	order, err := s.repo.FindOrderByID(ctx, studioID, orderID)
	if err != nil {
		return nil, notFoundOr(err, "purchase order not found")
	}
	if !order.Status.AcceptsReceipts() {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict,
			fmt.Sprintf("order is %s and does not accept receipts", order.Status))
	}
	if len(in.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "at least one receipt item is required")
	}

	receipt := &models.GoodsReceipt{
		ID:              uuid.New(),
		StudioID:        studioID,
		PurchaseOrderID: orderID,
		ReceivedBy:      userID,
		Reference:       in.Reference,
		Notes:           in.Notes,
		ReceivedAt:      time.Now().UTC(),
	}

	var (
		receiptItems []models.GoodsReceiptItem
		finalStatus  enums.PurchaseOrderStatus
	)

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		orderItems, err := s.repo.OrderItemsWithTx(tx, orderID)
		if err != nil {
			return fmt.Errorf("loading order items: %w", err)
		}
		byID := make(map[uuid.UUID]*models.PurchaseOrderItem, len(orderItems))
		for i := range orderItems {
			byID[orderItems[i].ID] = &orderItems[i]
		}

		for _, itemIn := range in.Items {
			line, ok := byID[itemIn.PurchaseOrderItemID]
			if !ok {
				return pkgerrors.New(pkgerrors.CodeValidation,
					fmt.Sprintf("item %s does not belong to this order", itemIn.PurchaseOrderItemID))
			}
			if !itemIn.Quantity.IsPositive() {
				return pkgerrors.New(pkgerrors.CodeValidation, "receipt quantity must be positive")
			}
			if line.ReceivedQty.Add(itemIn.Quantity).GreaterThan(line.Quantity) {
				return pkgerrors.New(pkgerrors.CodeValidation,
					fmt.Sprintf("receipt exceeds ordered quantity on item %s", line.ID))
			}

			if err := s.repo.AddReceivedQtyWithTx(tx, line.ID, itemIn.Quantity); err != nil {
				return fmt.Errorf("updating received quantity: %w", err)
			}
			if err := s.stock.AdjustStockWithTx(tx, line.MaterialID, itemIn.Quantity); err != nil {
				return fmt.Errorf("posting stock: %w", err)
			}
			line.ReceivedQty = line.ReceivedQty.Add(itemIn.Quantity)

			receiptItems = append(receiptItems, models.GoodsReceiptItem{
				ID:                  uuid.New(),
				GoodsReceiptID:      receipt.ID,
				PurchaseOrderItemID: line.ID,
				Quantity:            itemIn.Quantity,
			})
		}

		if err := s.repo.CreateReceiptWithTx(tx, receipt, receiptItems); err != nil {
			return fmt.Errorf("inserting receipt: %w", err)
		}

		finalStatus = rollupStatus(orderItems)
		return s.repo.UpdateOrderWithTx(tx, orderID, map[string]any{"status": finalStatus})
	})
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil {
			return nil, typed
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "posting goods receipt")
	}

	return &ReceiptDTO{Receipt: *receipt, Items: receiptItems, OrderStatus: finalStatus}, nil
}

// CreateRequisition opens a pending material request.
func (s *Service) CreateRequisition(ctx context.Context, studioID, userID uuid.UUID, in CreateRequisitionInput) (*models.Requisition, error) {
	if !in.Quantity.IsPositive() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
	}

	requisition := &models.Requisition{
		ID:          uuid.New(),
		StudioID:    studioID,
		MaterialID:  in.MaterialID,
		Quantity:    in.Quantity,
		Purpose:     in.Purpose,
		Status:      enums.RequisitionStatusPending,
		RequestedBy: userID,
	}
	if err := s.repo.CreateRequisition(ctx, requisition); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating requisition")
	}
	return requisition, nil
}

// ListRequisitions returns the studio's requisitions.
func (s *Service) ListRequisitions(ctx context.Context, studioID uuid.UUID) ([]models.Requisition, error) {
	rows, err := s.repo.ListRequisitions(ctx, studioID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing requisitions")
	}
	return rows, nil
}

// DecideRequisition approves or rejects a pending requisition. Approval
// draws the quantity from stock and marks the request fulfilled; the stock
// draw and the status change commit together.
func (s *Service) DecideRequisition(ctx context.Context, studioID, userID, id uuid.UUID, in DecisionInput) (*models.Requisition, error) {
	requisition, err := s.repo.FindRequisitionByID(ctx, studioID, id)
	if err != nil {
		return nil, notFoundOr(err, "requisition not found")
	}
	if requisition.Status != enums.RequisitionStatusPending {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict,
			fmt.Sprintf("requisition is already %s", requisition.Status))
	}

	now := time.Now().UTC()
	status := enums.RequisitionStatusRejected
	if in.Approve {
		status = enums.RequisitionStatusFulfilled
	}
	columns := map[string]any{
		"status":     status,
		"decided_by": userID,
		"decided_at": now,
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if in.Approve {
			if err := s.stock.AdjustStockWithTx(tx, requisition.MaterialID, requisition.Quantity.Neg()); err != nil {
				if stdErrors.Is(err, gorm.ErrRecordNotFound) {
					return pkgerrors.New(pkgerrors.CodeStateConflict, "insufficient stock to fulfill requisition")
				}
				return fmt.Errorf("drawing stock: %w", err)
			}
		}
		return s.repo.UpdateRequisitionWithTx(tx, id, columns)
	})
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil {
			return nil, typed
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "deciding requisition")
	}

	requisition.Status = status
	requisition.DecidedBy = &userID
	requisition.DecidedAt = &now
	return requisition, nil
}

func rollupStatus(items []models.PurchaseOrderItem) enums.PurchaseOrderStatus {
	full := true
	for _, item := range items {
		if item.ReceivedQty.LessThan(item.Quantity) {
			full = false
			break
		}
	}
	if full {
		return enums.PurchaseOrderStatusReceived
	}
	return enums.PurchaseOrderStatusPartiallyReceived
}

func nextOrderNumber() string {
	raw := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return "PO-" + raw[:8]
}

func notFoundOr(err error, message string) error {
	if stdErrors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.New(pkgerrors.CodeNotFound, message)
	}
	if typed := pkgerrors.As(err); typed != nil {
		return typed
	}
	return pkgerrors.Wrap(pkgerrors.CodeInternal, err, message)
}
