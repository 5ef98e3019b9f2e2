package quotations

import (
	"context"
	stdErrors "errors"
	"fmt"
	"strings"

	"github.com/fitdesk-hq/fitdesk-backend/pkg/db/models"
	"github.com/fitdesk-hq/fitdesk-backend/pkg/enums"
	pkgerrors "github.com/fitdesk-hq/fitdesk-backend/pkg/errors"
	"github.com/fitdesk-hq/fitdesk-backend/pkg/logger"
	"github.com/fitdesk-hq/fitdesk-backend/pkg/pagination"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// Repo is the persistence surface the service needs.
type Repo interface {
	FindByID(ctx context.Context, studioID, id uuid.UUID) (*models.Quotation, error)
	ListByStudio(ctx context.Context, studioID uuid.UUID, params pagination.Params) ([]models.Quotation, error)
	Versions(ctx context.Context, studioID uuid.UUID, quotationNumber string) ([]models.Quotation, error)
	MaxVersion(ctx context.Context, studioID uuid.UUID, quotationNumber string) (int, error)
	Create(ctx context.Context, quotation *models.Quotation) error
	CreateWithTx(tx *gorm.DB, quotation *models.Quotation) error
	UpdateHeaderWithTx(tx *gorm.DB, id uuid.UUID, columns map[string]any) error
	SpacesFor(ctx context.Context, quotationID uuid.UUID) ([]models.QuotationSpace, error)
	ComponentsFor(ctx context.Context, quotationID uuid.UUID) ([]models.QuotationComponent, error)
	LineItemsFor(ctx context.Context, quotationID uuid.UUID) ([]models.QuotationLineItem, error)
	ReplaceTree(tx *gorm.DB, quotationID uuid.UUID, spaces []SpaceInput) error
	ReplaceLineItems(tx *gorm.DB, quotationID uuid.UUID, items []LineItemInput) error
	CopySubtree(tx *gorm.DB, sourceID, targetID uuid.UUID) error
}

// TxRunner runs a function inside a database transaction.
type TxRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service owns quotation business rules.
type Service struct {
	repo         Repo
	tx           TxRunner
	logg         *logger.Logger
	numberPrefix string
}

// NewService wires the quotation service.
func NewService(repo Repo, tx TxRunner, logg *logger.Logger, numberPrefix string) *Service {
	if numberPrefix == "" {
		numberPrefix = "QT"
	}
	return &Service{repo: repo, tx: tx, logg: logg, numberPrefix: numberPrefix}
}

// Detail loads the quotation with its reconstructed hierarchy, the flat
// line-item list, and the version history. The three subtree reads and the
// version read are independent and fan out concurrently.
func (s *Service) Detail(ctx context.Context, studioID, id uuid.UUID) (*DetailDTO, error) {
	quotation, err := s.repo.FindByID(ctx, studioID, id)
	if err != nil {
		return nil, notFoundOr(err, "quotation not found")
	}

	var (
		spaces     []models.QuotationSpace
		components []models.QuotationComponent
		lineItems  []models.QuotationLineItem
		versions   []models.Quotation
	)

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		var err error
		spaces, err = s.repo.SpacesFor(groupCtx, id)
		return err
	})
	group.Go(func() error {
		var err error
		components, err = s.repo.ComponentsFor(groupCtx, id)
		return err
	})
	group.Go(func() error {
		var err error
		lineItems, err = s.repo.LineItemsFor(groupCtx, id)
		return err
	})
	group.Go(func() error {
		var err error
		versions, err = s.repo.Versions(groupCtx, studioID, quotation.QuotationNumber)
		return err
	})
	if err := group.Wait(); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading quotation detail")
	}

	tree := BuildTree(spaces, components, lineItems)

	return &DetailDTO{
		Quotation:    *quotation,
		Spaces:       tree.Spaces,
		Components:   tree.OrphanComponents,
		LineItems:    tree.OrphanLineItems,
		AllLineItems: lineItems,
		Versions:     versions,
	}, nil
}

// List returns a cursor page of the studio's quotations, newest first.
func (s *Service) List(ctx context.Context, studioID uuid.UUID, params pagination.Params) (*ListPage, error) {
	rows, err := s.repo.ListByStudio(ctx, studioID, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing quotations")
	}

	limit := pagination.NormalizeLimit(params.Limit)
	page := &ListPage{Items: make([]ListItemDTO, 0, len(rows))}
	for i, row := range rows {
		if i == limit {
			last := rows[limit-1]
			page.NextCursor = pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
			break
		}
		page.Items = append(page.Items, ListItemDTO{
			ID:              row.ID,
			QuotationNumber: row.QuotationNumber,
			Version:         row.Version,
			Title:           row.Title,
			Status:          row.Status,
			GrandTotal:      row.GrandTotal,
			LeadID:          row.LeadID,
			CreatedAt:       row.CreatedAt,
		})
	}
	return page, nil
}

// Create opens a fresh draft quotation with a new quotation number.
func (s *Service) Create(ctx context.Context, studioID, userID uuid.UUID, in CreateInput) (*models.Quotation, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "title is required")
	}

	quotation := &models.Quotation{
		ID:              uuid.New(),
		StudioID:        studioID,
		LeadID:          in.LeadID,
		QuotationNumber: s.nextNumber(),
		Version:         1,
		Title:           in.Title,
		Status:          enums.QuotationStatusDraft,
		ShowUnitPrices:  true,
		ValidUntil:      in.ValidUntil,
		AssignedTo:      in.AssignedTo,
		CreatedBy:       userID,
	}
	if err := s.repo.Create(ctx, quotation); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating quotation")
	}
	return quotation, nil
}

// Update applies a header patch and/or a subtree replacement. Terminal
// quotations reject every update; the caller must cut a revision instead.
func (s *Service) Update(ctx context.Context, studioID, userID, id uuid.UUID, in UpdateInput) (*DetailDTO, error) {
	quotation, err := s.repo.FindByID(ctx, studioID, id)
	if err != nil {
		return nil, notFoundOr(err, "quotation not found")
	}

	if quotation.Status.IsTerminal() {
		return nil, pkgerrors.New(pkgerrors.CodeImmutable,
			fmt.Sprintf("quotation is %s and can no longer be edited; create a revision", quotation.Status))
	}

	columns, err := headerColumns(quotation, userID, in)
	if err != nil {
		return nil, err
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.repo.UpdateHeaderWithTx(tx, id, columns); err != nil {
			return fmt.Errorf("updating header: %w", err)
		}
		if !in.HasSubtree() {
			return nil
		}
		if in.Spaces != nil {
			return s.repo.ReplaceTree(tx, id, in.Spaces)
		}
		return s.repo.ReplaceLineItems(tx, id, in.LineItems)
	})
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil {
			return nil, typed
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating quotation")
	}

	return s.Detail(ctx, studioID, id)
}

// Revision cuts a new editable version of the quotation: same quotation
// number, version max+1, status draft, subtree deep-copied.
func (s *Service) Revision(ctx context.Context, studioID, userID, id uuid.UUID) (*models.Quotation, error) {
	source, err := s.repo.FindByID(ctx, studioID, id)
	if err != nil {
		return nil, notFoundOr(err, "quotation not found")
	}

	maxVersion, err := s.repo.MaxVersion(ctx, studioID, source.QuotationNumber)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "resolving latest version")
	}

	next := cloneHeader(source, userID)
	next.QuotationNumber = source.QuotationNumber
	next.Version = maxVersion + 1

	if err := s.copyInTx(ctx, source.ID, next); err != nil {
		return nil, err
	}
	return next, nil
}

// Duplicate copies the quotation under a brand-new quotation number at
// version 1, status draft.
func (s *Service) Duplicate(ctx context.Context, studioID, userID, id uuid.UUID) (*models.Quotation, error) {
	source, err := s.repo.FindByID(ctx, studioID, id)
	if err != nil {
		return nil, notFoundOr(err, "quotation not found")
	}

	next := cloneHeader(source, userID)
	next.QuotationNumber = s.nextNumber()
	next.Version = 1
	next.Title = source.Title + " (copy)"

	if err := s.copyInTx(ctx, source.ID, next); err != nil {
		return nil, err
	}
	return next, nil
}

func (s *Service) copyInTx(ctx context.Context, sourceID uuid.UUID, next *models.Quotation) error {
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.repo.CreateWithTx(tx, next); err != nil {
			return fmt.Errorf("inserting quotation: %w", err)
		}
		return s.repo.CopySubtree(tx, sourceID, next.ID)
	})
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "copying quotation")
	}
	return nil
}

func (s *Service) nextNumber() string {
	raw := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return fmt.Sprintf("%s-%s", s.numberPrefix, raw[:8])
}

func cloneHeader(source *models.Quotation, userID uuid.UUID) *models.Quotation {
	return &models.Quotation{
		ID:              uuid.New(),
		StudioID:        source.StudioID,
		LeadID:          source.LeadID,
		Title:           source.Title,
		Status:          enums.QuotationStatusDraft,
		Subtotal:        source.Subtotal,
		DiscountPercent: source.DiscountPercent,
		DiscountAmount:  source.DiscountAmount,
		TaxPercent:      source.TaxPercent,
		TaxAmount:       source.TaxAmount,
		OverheadPercent: source.OverheadPercent,
		OverheadAmount:  source.OverheadAmount,
		GrandTotal:      source.GrandTotal,
		ValidUntil:      source.ValidUntil,
		Terms:           source.Terms,
		ShowUnitPrices:  source.ShowUnitPrices,
		AssignedTo:      source.AssignedTo,
		CreatedBy:       userID,
	}
}

// headerColumns converts the allow-listed PATCH fields into a column map.
// Fields absent from the allow-list never reach this point: the DTO simply
// does not decode them. updated_by is always stamped.
func headerColumns(current *models.Quotation, userID uuid.UUID, in UpdateInput) (map[string]any, error) {
	columns := map[string]any{"updated_by": userID}

	if in.Status != nil {
		next := *in.Status
		if !next.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation,
				fmt.Sprintf("unknown quotation status %q", next))
		}
		if !current.Status.CanTransitionTo(next) {
			return nil, pkgerrors.New(pkgerrors.CodeStateConflict,
				fmt.Sprintf("cannot move quotation from %s to %s", current.Status, next))
		}
		columns["status"] = next
	}
	if in.Title != nil {
		if strings.TrimSpace(*in.Title) == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "title cannot be empty")
		}
		columns["title"] = *in.Title
	}
	if in.Subtotal != nil {
		columns["subtotal"] = *in.Subtotal
	}
	if in.DiscountPercent != nil {
		columns["discount_percent"] = *in.DiscountPercent
	}
	if in.DiscountAmount != nil {
		columns["discount_amount"] = *in.DiscountAmount
	}
	if in.TaxPercent != nil {
		columns["tax_percent"] = *in.TaxPercent
	}
	if in.TaxAmount != nil {
		columns["tax_amount"] = *in.TaxAmount
	}
	if in.OverheadPercent != nil {
		columns["overhead_percent"] = *in.OverheadPercent
	}
	if in.OverheadAmount != nil {
		columns["overhead_amount"] = *in.OverheadAmount
	}
	if in.GrandTotal != nil {
		columns["grand_total"] = *in.GrandTotal
	}
	if in.ValidUntil != nil {
		columns["valid_until"] = *in.ValidUntil
	}
	if in.Terms != nil {
		columns["terms"] = *in.Terms
	}
	if in.ShowUnitPrices != nil {
		columns["show_unit_prices"] = *in.ShowUnitPrices
	}
	if in.AssignedTo.Valid {
		columns["assigned_to"] = in.AssignedTo.Value
	}

	return columns, nil
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
