package finance

import (
	"context"

	"github.com/fitdesk-hq/fitdesk-backend/pkg/db/models"
	"github.com/fitdesk-hq/fitdesk-backend/pkg/enums"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Repository computes finance aggregates from live rows.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to finance queries.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

type statusCount struct {
	Status string
	Count  int64
}

// QuotationStatusCounts groups the studio's quotations by status.
func (r *Repository) QuotationStatusCounts(ctx context.Context, studioID uuid.UUID) (map[string]int64, error) {
	var rows []statusCount
	if err := r.db.WithContext(ctx).
		Model(&models.Quotation{}).
		Select("status, COUNT(*) AS count").
		Where("studio_id = ?", studioID).
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	out := make(map[string]int64, len(rows))
	for _, row := range rows {
		out[row.Status] = row.Count
	}
	return out, nil
}

// QuotationValueByStatuses sums grand totals over the given statuses.
func (r *Repository) QuotationValueByStatuses(ctx context.Context, studioID uuid.UUID, statuses []enums.QuotationStatus) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	if err := r.db.WithContext(ctx).
		Model(&models.Quotation{}).
		Select("SUM(grand_total)").
		Where("studio_id = ? AND status IN ?", studioID, statuses).
		Scan(&total).Error; err != nil {
		return decimal.Zero, err
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}

// OpenPurchaseOrderValue sums issued and partially received orders.
func (r *Repository) OpenPurchaseOrderValue(ctx context.Context, studioID uuid.UUID) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	if err := r.db.WithContext(ctx).
		Model(&models.PurchaseOrder{}).
		Select("SUM(total)").
		Where("studio_id = ? AND status IN ?", studioID, []enums.PurchaseOrderStatus{
			enums.PurchaseOrderStatusIssued,
			enums.PurchaseOrderStatusPartiallyReceived,
		}).
		Scan(&total).Error; err != nil {
		return decimal.Zero, err
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}

// OpenLeadCount counts leads still in the active pipeline.
func (r *Repository) OpenLeadCount(ctx context.Context, studioID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Lead{}).
		Where("studio_id = ? AND stage NOT IN ?", studioID, []enums.LeadStage{
			enums.LeadStageWon,
			enums.LeadStageLost,
		}).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
