package finance

import (
	"context"

	"github.com/fitdesk-hq/fitdesk-backend/pkg/enums"
	pkgerrors "github.com/fitdesk-hq/fitdesk-backend/pkg/errors"
	"github.com/fitdesk-hq/fitdesk-backend/pkg/logger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// Repo is the aggregate query surface the service needs.
type Repo interface {
	QuotationStatusCounts(ctx context.Context, studioID uuid.UUID) (map[string]int64, error)
	QuotationValueByStatuses(ctx context.Context, studioID uuid.UUID, statuses []enums.QuotationStatus) (decimal.Decimal, error)
	OpenPurchaseOrderValue(ctx context.Context, studioID uuid.UUID) (decimal.Decimal, error)
	OpenLeadCount(ctx context.Context, studioID uuid.UUID) (int64, error)
}

// Service assembles the finance summary.
type Service struct {
	repo Repo
	logg *logger.Logger
}

// NewService wires the finance service.
func NewService(repo Repo, logg *logger.Logger) *Service {
	return &Service{repo: repo, logg: logg}
}

// Summary computes the dashboard aggregates. The reads are independent and
// fan out concurrently.
func (s *Service) Summary(ctx context.Context, studioID uuid.UUID) (*Summary, error) {
	summary := &Summary{}

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		counts, err := s.repo.QuotationStatusCounts(groupCtx, studioID)
		if err != nil {
			return err
		}
		summary.QuotationsByStatus = counts
		return nil
	})
	group.Go(func() error {
		value, err := s.repo.QuotationValueByStatuses(groupCtx, studioID, []enums.QuotationStatus{
			enums.QuotationStatusSent,
			enums.QuotationStatusViewed,
			enums.QuotationStatusNegotiating,
		})
		if err != nil {
			return err
		}
		summary.PipelineValue = value
		return nil
	})
	group.Go(func() error {
		value, err := s.repo.QuotationValueByStatuses(groupCtx, studioID, []enums.QuotationStatus{
			enums.QuotationStatusApproved,
		})
		if err != nil {
			return err
		}
		summary.ApprovedValue = value
		return nil
	})
	group.Go(func() error {
		value, err := s.repo.OpenPurchaseOrderValue(groupCtx, studioID)
		if err != nil {
			return err
		}
		summary.OpenPOValue = value
		return nil
	})
	group.Go(func() error {
		count, err := s.repo.OpenLeadCount(groupCtx, studioID)
		if err != nil {
			return err
		}
		summary.OpenLeads = count
		return nil
	})
	if err := group.Wait(); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "computing finance summary")
	}

	return summary, nil
}
