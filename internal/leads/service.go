package leads

import (
	"context"
	stdErrors "errors"
	"fmt"
	"strings"
	"time"

	"github.com/fitdesk-hq/fitdesk-backend/internal/quotations"
	"github.com/fitdesk-hq/fitdesk-backend/pkg/db/models"
	"github.com/fitdesk-hq/fitdesk-backend/pkg/enums"
	pkgerrors "github.com/fitdesk-hq/fitdesk-backend/pkg/errors"
	"github.com/fitdesk-hq/fitdesk-backend/pkg/logger"
	"github.com/fitdesk-hq/fitdesk-backend/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repo is the persistence surface the service needs.
type Repo interface {
	FindByID(ctx context.Context, studioID, id uuid.UUID) (*models.Lead, error)
	ListByStudio(ctx context.Context, studioID uuid.UUID, params ListParams) ([]models.Lead, error)
	Create(ctx context.Context, lead *models.Lead) error
	Update(ctx context.Context, id uuid.UUID, columns map[string]any) error
	Delete(ctx context.Context, studioID, id uuid.UUID) error
}

// QuotationCreator spawns draft quotations for leads entering proposal.
type QuotationCreator interface {
	Create(ctx context.Context, studioID, userID uuid.UUID, in quotations.CreateInput) (*models.Quotation, error)
}

// Service owns lead pipeline rules.
type Service struct {
	repo       Repo
	quotations QuotationCreator
	logg       *logger.Logger
}

// NewService wires the lead service.
func NewService(repo Repo, quotationSvc QuotationCreator, logg *logger.Logger) *Service {
	return &Service{repo: repo, quotations: quotationSvc, logg: logg}
}

// Get loads one lead.
func (s *Service) Get(ctx context.Context, studioID, id uuid.UUID) (*models.Lead, error) {
	lead, err := s.repo.FindByID(ctx, studioID, id)
	if err != nil {
		return nil, notFoundOr(err, "lead not found")
	}
	return lead, nil
}

// List returns a cursor page of the studio's leads.
func (s *Service) List(ctx context.Context, studioID uuid.UUID, params ListParams) (*ListPage, error) {
	if params.Stage != "" && !params.Stage.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown lead stage %q", params.Stage))
	}

	rows, err := s.repo.ListByStudio(ctx, studioID, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing leads")
	}

	limit := pagination.NormalizeLimit(params.Limit)
	page := &ListPage{Items: make([]ListItem, 0, len(rows))}
	for i, row := range rows {
		if i == limit {
			last := rows[limit-1]
			page.NextCursor = pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
			break
		}
		page.Items = append(page.Items, ListItem{
			ID:         row.ID,
			Name:       row.Name,
			Stage:      row.Stage,
			Source:     row.Source,
			BudgetMin:  row.BudgetMin,
			BudgetMax:  row.BudgetMax,
			AssignedTo: row.AssignedTo,
			CreatedAt:  row.CreatedAt,
		})
	}
	return page, nil
}

// Create opens a new lead in the new stage.
func (s *Service) Create(ctx context.Context, studioID, userID uuid.UUID, in CreateInput) (*models.Lead, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}

	lead := &models.Lead{
		ID:           uuid.New(),
		StudioID:     studioID,
		Name:         in.Name,
		ContactName:  in.ContactName,
		ContactEmail: in.ContactEmail,
		ContactPhone: in.ContactPhone,
		Source:       in.Source,
		Stage:        enums.LeadStageNew,
		BudgetMin:    in.BudgetMin,
		BudgetMax:    in.BudgetMax,
		Notes:        in.Notes,
		AssignedTo:   in.AssignedTo,
		CreatedBy:    userID,
	}
	if err := s.repo.Create(ctx, lead); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating lead")
	}
	return lead, nil
}

// Update patches mutable lead fields.
func (s *Service) Update(ctx context.Context, studioID, id uuid.UUID, in UpdateInput) (*models.Lead, error) {
	if _, err := s.repo.FindByID(ctx, studioID, id); err != nil {
		return nil, notFoundOr(err, "lead not found")
	}

	columns := map[string]any{}
	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "name cannot be empty")
		}
		columns["name"] = *in.Name
	}
	if in.ContactName != nil {
		columns["contact_name"] = *in.ContactName
	}
	if in.ContactEmail != nil {
		columns["contact_email"] = *in.ContactEmail
	}
	if in.ContactPhone != nil {
		columns["contact_phone"] = *in.ContactPhone
	}
	if in.Source != nil {
		columns["source"] = *in.Source
	}
	if in.BudgetMin != nil {
		columns["budget_min"] = *in.BudgetMin
	}
	if in.BudgetMax != nil {
		columns["budget_max"] = *in.BudgetMax
	}
	if in.Notes != nil {
		columns["notes"] = *in.Notes
	}
	if in.AssignedTo != nil {
		columns["assigned_to"] = *in.AssignedTo
	}

	if err := s.repo.Update(ctx, id, columns); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating lead")
	}
	return s.repo.FindByID(ctx, studioID, id)
}

// Delete removes a lead.
func (s *Service) Delete(ctx context.Context, studioID, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, studioID, id); err != nil {
		return notFoundOr(err, "lead not found")
	}
	return nil
}

// Transition moves a lead to a new stage. Entering proposal spawns a draft
// quotation linked back to the lead; closed leads stay closed.
func (s *Service) Transition(ctx context.Context, studioID, userID, id uuid.UUID, in TransitionInput) (*TransitionResult, error) {
	if !in.Stage.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown lead stage %q", in.Stage))
	}

	lead, err := s.repo.FindByID(ctx, studioID, id)
	if err != nil {
		return nil, notFoundOr(err, "lead not found")
	}

	if lead.Stage.IsClosed() {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict,
			fmt.Sprintf("lead is already %s", lead.Stage))
	}
	if in.Stage == enums.LeadStageLost && in.LostReason == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "lost_reason is required when marking a lead lost")
	}

	now := time.Now().UTC()
	columns := map[string]any{
		"stage":           in.Stage,
		"transitioned_at": now,
	}
	if in.LostReason != nil {
		columns["lost_reason"] = *in.LostReason
	}
	if err := s.repo.Update(ctx, id, columns); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "transitioning lead")
	}

	result := &TransitionResult{LeadID: id, Stage: in.Stage}

	if in.Stage == enums.LeadStageProposal && lead.Stage != enums.LeadStageProposal {
		quotation, err := s.quotations.Create(ctx, studioID, userID, quotations.CreateInput{
			Title:      lead.Name,
			LeadID:     &id,
			AssignedTo: lead.AssignedTo,
		})
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "spawning proposal quotation")
		}
		result.QuotationID = &quotation.ID
		if s.logg != nil {
			s.logg.Info(ctx, "lead.proposal_quotation_created")
		}
	}

	return result, nil
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
