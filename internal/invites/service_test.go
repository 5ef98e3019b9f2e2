package invites

import (
	"context"
	"testing"
	"time"

	"github.com/fitdesk-hq/fitdesk-backend/pkg/db/models"
	"github.com/fitdesk-hq/fitdesk-backend/pkg/enums"
	pkgerrors "github.com/fitdesk-hq/fitdesk-backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type stubRepo struct {
	invite  *models.Invite
	columns map[string]any
}

func (s *stubRepo) FindByID(ctx context.Context, studioID, id uuid.UUID) (*models.Invite, error) {
	if s.invite == nil || s.invite.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	return s.invite, nil
}

func (s *stubRepo) FindByToken(ctx context.Context, token string) (*models.Invite, error) {
	if s.invite == nil || s.invite.Token != token {
		return nil, gorm.ErrRecordNotFound
	}
	return s.invite, nil
}

func (s *stubRepo) ListByStudio(ctx context.Context, studioID uuid.UUID) ([]models.Invite, error) {
	return nil, nil
}

func (s *stubRepo) Create(ctx context.Context, invite *models.Invite) error {
	s.invite = invite
	return nil
}

func (s *stubRepo) Update(ctx context.Context, id uuid.UUID, columns map[string]any) error {
	s.columns = columns
	return nil
}

func (s *stubRepo) UpdateWithTx(tx *gorm.DB, id uuid.UUID, columns map[string]any) error {
	s.columns = columns
	return nil
}

type stubMembers struct {
	added *models.Membership
}

func (s *stubMembers) AddMemberWithTx(tx *gorm.DB, membership *models.Membership) error {
	s.added = membership
	return nil
}

type stubTx struct{}

func (s *stubTx) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

func pendingInvite(studioID uuid.UUID) *models.Invite {
	return &models.Invite{
		ID:        uuid.New(),
		StudioID:  studioID,
		Email:     "designer@example.com",
		Role:      enums.MemberRoleDesigner,
		Token:     "tok-abc",
		Status:    enums.InviteStatusPending,
		InvitedBy: uuid.New(),
		ExpiresAt: time.Now().UTC().Add(time.Hour),
	}
}

func TestServiceAcceptPendingInvite(t *testing.T) {
	studioID := uuid.New()
	userID := uuid.New()
	invite := pendingInvite(studioID)

	repo := &stubRepo{invite: invite}
	members := &stubMembers{}
	svc := NewService(repo, members, nil, &stubTx{}, nil, time.Hour)

	result, err := svc.Accept(context.Background(), userID, invite.Token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.StudioID != studioID || result.Role != enums.MemberRoleDesigner {
		t.Fatalf("unexpected result: %+v", result)
	}
	if members.added == nil || members.added.UserID != userID || members.added.Role != enums.MemberRoleDesigner {
		t.Fatalf("membership not created correctly: %+v", members.added)
	}
	if repo.columns["status"] != enums.InviteStatusAccepted {
		t.Fatalf("invite not marked accepted: %+v", repo.columns)
	}
}

func TestServiceAcceptExpiredInvite(t *testing.T) {
	invite := pendingInvite(uuid.New())
	invite.ExpiresAt = time.Now().UTC().Add(-time.Minute)

	svc := NewService(&stubRepo{invite: invite}, &stubMembers{}, nil, &stubTx{}, nil, time.Hour)

	_, err := svc.Accept(context.Background(), uuid.New(), invite.Token)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected %s, got %v", pkgerrors.CodeStateConflict, err)
	}
}

func TestServiceAcceptAlreadyAccepted(t *testing.T) {
	invite := pendingInvite(uuid.New())
	invite.Status = enums.InviteStatusAccepted

	svc := NewService(&stubRepo{invite: invite}, &stubMembers{}, nil, &stubTx{}, nil, time.Hour)

	_, err := svc.Accept(context.Background(), uuid.New(), invite.Token)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected %s, got %v", pkgerrors.CodeStateConflict, err)
	}
}

func TestServiceCreateRequiresManagerRole(t *testing.T) {
	svc := NewService(&stubRepo{}, &stubMembers{}, nil, &stubTx{}, nil, time.Hour)

	_, err := svc.Create(context.Background(), uuid.New(), uuid.New(), enums.MemberRoleDesigner, CreateInput{
		Email: "new@example.com",
		Role:  enums.MemberRoleDesigner,
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeForbidden {
		t.Fatalf("expected %s, got %v", pkgerrors.CodeForbidden, err)
	}
}

func TestServiceCreateCannotGrantOwner(t *testing.T) {
	svc := NewService(&stubRepo{}, &stubMembers{}, nil, &stubTx{}, nil, time.Hour)

	_, err := svc.Create(context.Background(), uuid.New(), uuid.New(), enums.MemberRoleOwner, CreateInput{
		Email: "new@example.com",
		Role:  enums.MemberRoleOwner,
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected %s, got %v", pkgerrors.CodeValidation, err)
	}
}

func TestServiceCreateIssuesToken(t *testing.T) {
	repo := &stubRepo{}
	svc := NewService(repo, &stubMembers{}, nil, &stubTx{}, nil, time.Hour)

	dto, err := svc.Create(context.Background(), uuid.New(), uuid.New(), enums.MemberRoleAdmin, CreateInput{
		Email: "New@Example.com",
		Role:  enums.MemberRoleProcurement,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dto.Token == "" {
		t.Fatal("token must be returned at creation time")
	}
	if repo.invite.Email != "new@example.com" {
		t.Fatalf("email not normalized: %s", repo.invite.Email)
	}
	if !dto.ExpiresAt.After(time.Now().UTC()) {
		t.Fatal("expiry must be in the future")
	}
}
