package procurement

import (
	"context"
	"testing"

	"github.com/fitdesk-hq/fitdesk-backend/pkg/db/models"
	"github.com/fitdesk-hq/fitdesk-backend/pkg/enums"
	pkgerrors "github.com/fitdesk-hq/fitdesk-backend/pkg/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type stubRepo struct {
	order       *models.PurchaseOrder
	orderItems  []models.PurchaseOrderItem
	requisition *models.Requisition

	orderColumns       map[string]any
	requisitionColumns map[string]any
	receivedQty        map[uuid.UUID]decimal.Decimal
	receipt            *models.GoodsReceipt
	receiptItems       []models.GoodsReceiptItem
}

func (s *stubRepo) FindOrderByID(ctx context.Context, studioID, id uuid.UUID) (*models.PurchaseOrder, error) {
	if s.order == nil || s.order.ID != id || s.order.StudioID != studioID {
		return nil, gorm.ErrRecordNotFound
	}
	return s.order, nil
}

func (s *stubRepo) ListOrders(ctx context.Context, studioID uuid.UUID) ([]models.PurchaseOrder, error) {
	return nil, nil
}

func (s *stubRepo) OrderItems(ctx context.Context, orderID uuid.UUID) ([]models.PurchaseOrderItem, error) {
	return s.orderItems, nil
}

func (s *stubRepo) OrderItemsWithTx(tx *gorm.DB, orderID uuid.UUID) ([]models.PurchaseOrderItem, error) {
	return s.orderItems, nil
}

func (s *stubRepo) CreateOrderWithTx(tx *gorm.DB, order *models.PurchaseOrder, items []models.PurchaseOrderItem) error {
	s.order = order
	s.orderItems = items
	return nil
}

func (s *stubRepo) UpdateOrder(ctx context.Context, id uuid.UUID, columns map[string]any) error {
	s.orderColumns = columns
	return nil
}

func (s *stubRepo) UpdateOrderWithTx(tx *gorm.DB, id uuid.UUID, columns map[string]any) error {
	s.orderColumns = columns
	return nil
}

func (s *stubRepo) AddReceivedQtyWithTx(tx *gorm.DB, itemID uuid.UUID, qty decimal.Decimal) error {
	if s.receivedQty == nil {
		s.receivedQty = map[uuid.UUID]decimal.Decimal{}
	}
	s.receivedQty[itemID] = s.receivedQty[itemID].Add(qty)
	return nil
}

func (s *stubRepo) CreateReceiptWithTx(tx *gorm.DB, receipt *models.GoodsReceipt, items []models.GoodsReceiptItem) error {
	s.receipt = receipt
	s.receiptItems = items
	return nil
}

func (s *stubRepo) FindRequisitionByID(ctx context.Context, studioID, id uuid.UUID) (*models.Requisition, error) {
	if s.requisition == nil || s.requisition.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	return s.requisition, nil
}

func (s *stubRepo) ListRequisitions(ctx context.Context, studioID uuid.UUID) ([]models.Requisition, error) {
	return nil, nil
}

func (s *stubRepo) CreateRequisition(ctx context.Context, requisition *models.Requisition) error {
	s.requisition = requisition
	return nil
}

func (s *stubRepo) UpdateRequisitionWithTx(tx *gorm.DB, id uuid.UUID, columns map[string]any) error {
	s.requisitionColumns = columns
	return nil
}

type stubStock struct {
	deltas map[uuid.UUID]decimal.Decimal
	err    error
}

func (s *stubStock) AdjustStockWithTx(tx *gorm.DB, id uuid.UUID, delta decimal.Decimal) error {
	if s.err != nil {
		return s.err
	}
	if s.deltas == nil {
		s.deltas = map[uuid.UUID]decimal.Decimal{}
	}
	s.deltas[id] = s.deltas[id].Add(delta)
	return nil
}

type stubTx struct {
	calls int
}

func (s *stubTx) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	s.calls++
	return fn(nil)
}

func issuedOrder(studioID uuid.UUID) (*models.PurchaseOrder, []models.PurchaseOrderItem) {
	order := &models.PurchaseOrder{
		ID:          uuid.New(),
		StudioID:    studioID,
		VendorID:    uuid.New(),
		OrderNumber: "PO-TEST01",
		Status:      enums.PurchaseOrderStatusIssued,
		CreatedBy:   uuid.New(),
	}
	items := []models.PurchaseOrderItem{
		{
			ID:              uuid.New(),
			PurchaseOrderID: order.ID,
			MaterialID:      uuid.New(),
			Quantity:        decimal.NewFromInt(10),
			UnitCost:        decimal.NewFromInt(50),
			Amount:          decimal.NewFromInt(500),
		},
		{
			ID:              uuid.New(),
			PurchaseOrderID: order.ID,
			MaterialID:      uuid.New(),
			Quantity:        decimal.NewFromInt(4),
			UnitCost:        decimal.NewFromInt(25),
			Amount:          decimal.NewFromInt(100),
		},
	}
	return order, items
}

func TestServicePostReceiptPartial(t *testing.T) {
	studioID := uuid.New()
	order, items := issuedOrder(studioID)

	repo := &stubRepo{order: order, orderItems: items}
	stock := &stubStock{}
	tx := &stubTx{}
	svc := NewService(repo, stock, tx, nil)

	result, err := svc.PostReceipt(context.Background(), studioID, uuid.New(), order.ID, CreateReceiptInput{
		Items: []ReceiptItemInput{{PurchaseOrderItemID: items[0].ID, Quantity: decimal.NewFromInt(6)}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tx.calls != 1 {
		t.Fatalf("expected one transaction, got %d", tx.calls)
	}
	if result.OrderStatus != enums.PurchaseOrderStatusPartiallyReceived {
		t.Fatalf("status = %s, want partially_received", result.OrderStatus)
	}
	if got := stock.deltas[items[0].MaterialID]; !got.Equal(decimal.NewFromInt(6)) {
		t.Fatalf("stock delta = %s, want 6", got)
	}
	if len(result.Items) != 1 {
		t.Fatalf("expected one receipt item, got %d", len(result.Items))
	}
	if repo.receipt == nil {
		t.Fatal("receipt row was not inserted")
	}
}

func TestServicePostReceiptCompletesOrder(t *testing.T) {
	studioID := uuid.New()
	order, items := issuedOrder(studioID)

	repo := &stubRepo{order: order, orderItems: items}
	svc := NewService(repo, &stubStock{}, &stubTx{}, nil)

	result, err := svc.PostReceipt(context.Background(), studioID, uuid.New(), order.ID, CreateReceiptInput{
		Items: []ReceiptItemInput{
			{PurchaseOrderItemID: items[0].ID, Quantity: decimal.NewFromInt(10)},
			{PurchaseOrderItemID: items[1].ID, Quantity: decimal.NewFromInt(4)},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.OrderStatus != enums.PurchaseOrderStatusReceived {
		t.Fatalf("status = %s, want received", result.OrderStatus)
	}
}

func TestServicePostReceiptRejectsOverReceipt(t *testing.T) {
	studioID := uuid.New()
	order, items := issuedOrder(studioID)

	repo := &stubRepo{order: order, orderItems: items}
	svc := NewService(repo, &stubStock{}, &stubTx{}, nil)

	_, err := svc.PostReceipt(context.Background(), studioID, uuid.New(), order.ID, CreateReceiptInput{
		Items: []ReceiptItemInput{{PurchaseOrderItemID: items[1].ID, Quantity: decimal.NewFromInt(5)}},
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected %s, got %v", pkgerrors.CodeValidation, err)
	}
}

func TestServicePostReceiptRejectsDraftOrder(t *testing.T) {
	studioID := uuid.New()
	order, items := issuedOrder(studioID)
	order.Status = enums.PurchaseOrderStatusDraft

	repo := &stubRepo{order: order, orderItems: items}
	svc := NewService(repo, &stubStock{}, &stubTx{}, nil)

	_, err := svc.PostReceipt(context.Background(), studioID, uuid.New(), order.ID, CreateReceiptInput{
		Items: []ReceiptItemInput{{PurchaseOrderItemID: items[0].ID, Quantity: decimal.NewFromInt(1)}},
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected %s, got %v", pkgerrors.CodeStateConflict, err)
	}
}

func TestServiceDecideRequisitionApprovalDrawsStock(t *testing.T) {
	studioID := uuid.New()
	requisition := &models.Requisition{
		ID:          uuid.New(),
		StudioID:    studioID,
		MaterialID:  uuid.New(),
		Quantity:    decimal.NewFromInt(3),
		Status:      enums.RequisitionStatusPending,
		RequestedBy: uuid.New(),
	}

	repo := &stubRepo{requisition: requisition}
	stock := &stubStock{}
	svc := NewService(repo, stock, &stubTx{}, nil)

	decided, err := svc.DecideRequisition(context.Background(), studioID, uuid.New(), requisition.ID, DecisionInput{Approve: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if decided.Status != enums.RequisitionStatusFulfilled {
		t.Fatalf("status = %s, want fulfilled", decided.Status)
	}
	if got := stock.deltas[requisition.MaterialID]; !got.Equal(decimal.NewFromInt(-3)) {
		t.Fatalf("stock delta = %s, want -3", got)
	}
}

func TestServiceDecideRequisitionInsufficientStock(t *testing.T) {
	studioID := uuid.New()
	requisition := &models.Requisition{
		ID:          uuid.New(),
		StudioID:    studioID,
		MaterialID:  uuid.New(),
		Quantity:    decimal.NewFromInt(99),
		Status:      enums.RequisitionStatusPending,
		RequestedBy: uuid.New(),
	}

	repo := &stubRepo{requisition: requisition}
	stock := &stubStock{err: gorm.ErrRecordNotFound}
	svc := NewService(repo, stock, &stubTx{}, nil)

	_, err := svc.DecideRequisition(context.Background(), studioID, uuid.New(), requisition.ID, DecisionInput{Approve: true})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected %s, got %v", pkgerrors.CodeStateConflict, err)
	}
}

func TestServiceDecideRequisitionRejectLeavesStock(t *testing.T) {
	studioID := uuid.New()
	requisition := &models.Requisition{
		ID:          uuid.New(),
		StudioID:    studioID,
		MaterialID:  uuid.New(),
		Quantity:    decimal.NewFromInt(2),
		Status:      enums.RequisitionStatusPending,
		RequestedBy: uuid.New(),
	}

	repo := &stubRepo{requisition: requisition}
	stock := &stubStock{}
	svc := NewService(repo, stock, &stubTx{}, nil)

	decided, err := svc.DecideRequisition(context.Background(), studioID, uuid.New(), requisition.ID, DecisionInput{Approve: false})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if decided.Status != enums.RequisitionStatusRejected {
		t.Fatalf("status = %s, want rejected", decided.Status)
	}
	if len(stock.deltas) != 0 {
		t.Fatal("rejection must not touch stock")
	}
}
