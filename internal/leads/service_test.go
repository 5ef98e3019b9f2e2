package leads

import (
	"context"
	"testing"

	"github.com/fitdesk-hq/fitdesk-backend/internal/quotations"
	"github.com/fitdesk-hq/fitdesk-backend/pkg/db/models"
	"github.com/fitdesk-hq/fitdesk-backend/pkg/enums"
	pkgerrors "github.com/fitdesk-hq/fitdesk-backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type stubRepo struct {
	lead    *models.Lead
	columns map[string]any
}

func (s *stubRepo) FindByID(ctx context.Context, studioID, id uuid.UUID) (*models.Lead, error) {
	if s.lead == nil || s.lead.ID != id || s.lead.StudioID != studioID {
		return nil, gorm.ErrRecordNotFound
	}
	return s.lead, nil
}

func (s *stubRepo) ListByStudio(ctx context.Context, studioID uuid.UUID, params ListParams) ([]models.Lead, error) {
	return nil, nil
}

func (s *stubRepo) Create(ctx context.Context, lead *models.Lead) error {
	s.lead = lead
	return nil
}

func (s *stubRepo) Update(ctx context.Context, id uuid.UUID, columns map[string]any) error {
	s.columns = columns
	return nil
}

func (s *stubRepo) Delete(ctx context.Context, studioID, id uuid.UUID) error {
	return nil
}

type stubQuotations struct {
	created *models.Quotation
	input   *quotations.CreateInput
}

func (s *stubQuotations) Create(ctx context.Context, studioID, userID uuid.UUID, in quotations.CreateInput) (*models.Quotation, error) {
	s.input = &in
	s.created = &models.Quotation{ID: uuid.New(), StudioID: studioID, Title: in.Title, LeadID: in.LeadID}
	return s.created, nil
}

func pipelineLead(studioID uuid.UUID, stage enums.LeadStage) *models.Lead {
	return &models.Lead{
		ID:        uuid.New(),
		StudioID:  studioID,
		Name:      "Hilltop Residence",
		Stage:     stage,
		CreatedBy: uuid.New(),
	}
}

func TestServiceTransitionToProposalSpawnsQuotation(t *testing.T) {
	studioID := uuid.New()
	lead := pipelineLead(studioID, enums.LeadStageQualified)

	repo := &stubRepo{lead: lead}
	quotationSvc := &stubQuotations{}
	svc := NewService(repo, quotationSvc, nil)

	result, err := svc.Transition(context.Background(), studioID, uuid.New(), lead.ID, TransitionInput{Stage: enums.LeadStageProposal})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Stage != enums.LeadStageProposal {
		t.Fatalf("stage = %s, want proposal", result.Stage)
	}
	if result.QuotationID == nil {
		t.Fatal("expected a spawned quotation id")
	}
	if quotationSvc.input == nil || quotationSvc.input.Title != lead.Name {
		t.Fatalf("quotation title should come from the lead, got %+v", quotationSvc.input)
	}
	if quotationSvc.input.LeadID == nil || *quotationSvc.input.LeadID != lead.ID {
		t.Fatal("quotation must link back to the lead")
	}
	if repo.columns["stage"] != enums.LeadStageProposal {
		t.Fatalf("stage column not written: %+v", repo.columns)
	}
}

func TestServiceTransitionNonProposalDoesNotSpawn(t *testing.T) {
	studioID := uuid.New()
	lead := pipelineLead(studioID, enums.LeadStageNew)

	quotationSvc := &stubQuotations{}
	svc := NewService(&stubRepo{lead: lead}, quotationSvc, nil)

	result, err := svc.Transition(context.Background(), studioID, uuid.New(), lead.ID, TransitionInput{Stage: enums.LeadStageContacted})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.QuotationID != nil {
		t.Fatal("no quotation should spawn outside the proposal stage")
	}
	if quotationSvc.input != nil {
		t.Fatal("quotation service must not be called")
	}
}

func TestServiceTransitionClosedLeadRejected(t *testing.T) {
	studioID := uuid.New()
	lead := pipelineLead(studioID, enums.LeadStageWon)

	svc := NewService(&stubRepo{lead: lead}, &stubQuotations{}, nil)

	_, err := svc.Transition(context.Background(), studioID, uuid.New(), lead.ID, TransitionInput{Stage: enums.LeadStageContacted})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected %s, got %v", pkgerrors.CodeStateConflict, err)
	}
}

func TestServiceTransitionLostNeedsReason(t *testing.T) {
	studioID := uuid.New()
	lead := pipelineLead(studioID, enums.LeadStageContacted)

	svc := NewService(&stubRepo{lead: lead}, &stubQuotations{}, nil)

	_, err := svc.Transition(context.Background(), studioID, uuid.New(), lead.ID, TransitionInput{Stage: enums.LeadStageLost})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected %s, got %v", pkgerrors.CodeValidation, err)
	}
}
