package invites

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	stdErrors "errors"
	"fmt"
	"strings"
	"time"

	"github.com/fitdesk-hq/fitdesk-backend/pkg/db/models"
	"github.com/fitdesk-hq/fitdesk-backend/pkg/enums"
	pkgerrors "github.com/fitdesk-hq/fitdesk-backend/pkg/errors"
	"github.com/fitdesk-hq/fitdesk-backend/pkg/logger"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repo is the persistence surface the service needs.
type Repo interface {
	FindByID(ctx context.Context, studioID, id uuid.UUID) (*models.Invite, error)
	FindByToken(ctx context.Context, token string) (*models.Invite, error)
	ListByStudio(ctx context.Context, studioID uuid.UUID) ([]models.Invite, error)
	Create(ctx context.Context, invite *models.Invite) error
	Update(ctx context.Context, id uuid.UUID, columns map[string]any) error
	UpdateWithTx(tx *gorm.DB, id uuid.UUID, columns map[string]any) error
}

// MemberAdder inserts a membership on the caller's transaction.
type MemberAdder interface {
	AddMemberWithTx(tx *gorm.DB, membership *models.Membership) error
}

// TokenCache mirrors issued invite tokens for quick existence checks.
type TokenCache interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	InviteTokenKey(token string) string
}

// TxRunner runs a function inside a database transaction.
type TxRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service owns invitation rules. Email delivery is an external concern;
// the service only issues and settles tokens.
type Service struct {
	repo    Repo
	members MemberAdder
	cache   TokenCache
	tx      TxRunner
	logg    *logger.Logger
	ttl     time.Duration
}

// NewService wires the invite service.
func NewService(repo Repo, members MemberAdder, cache TokenCache, tx TxRunner, logg *logger.Logger, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}
	return &Service{repo: repo, members: members, cache: cache, tx: tx, logg: logg, ttl: ttl}
}

// List returns the studio's invites without tokens.
func (s *Service) List(ctx context.Context, studioID uuid.UUID) ([]InviteDTO, error) {
	rows, err := s.repo.ListByStudio(ctx, studioID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing invites")
	}

	out := make([]InviteDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, InviteDTO{
			ID:        row.ID,
			Email:     row.Email,
			Role:      row.Role,
			Status:    effectiveStatus(row),
			ExpiresAt: row.ExpiresAt,
			CreatedAt: row.CreatedAt,
		})
	}
	return out, nil
}

// Create issues an invitation. Only owners and admins may invite, and the
// owner role itself cannot be granted by invitation.
func (s *Service) Create(ctx context.Context, studioID, inviterID uuid.UUID, inviterRole enums.MemberRole, in CreateInput) (*InviteDTO, error) {
	if !inviterRole.CanManageMembers() {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "only owners and admins can invite members")
	}
	if !in.Role.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown role %q", in.Role))
	}
	if in.Role == enums.MemberRoleOwner {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "the owner role cannot be granted by invitation")
	}

	token, err := newToken()
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generating invite token")
	}

	invite := &models.Invite{
		ID:        uuid.New(),
		StudioID:  studioID,
		Email:     strings.ToLower(in.Email),
		Role:      in.Role,
		Token:     token,
		Status:    enums.InviteStatusPending,
		InvitedBy: inviterID,
		ExpiresAt: time.Now().UTC().Add(s.ttl),
	}
	if err := s.repo.Create(ctx, invite); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating invite")
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, s.cache.InviteTokenKey(token), invite.ID.String(), s.ttl); err != nil && s.logg != nil {
			s.logg.Warn(ctx, "invite.token_cache_write_failed")
		}
	}

	return &InviteDTO{
		ID:        invite.ID,
		Email:     invite.Email,
		Role:      invite.Role,
		Status:    invite.Status,
		Token:     token,
		ExpiresAt: invite.ExpiresAt,
		CreatedAt: invite.CreatedAt,
	}, nil
}

// Accept settles a pending invite for the authenticated user: the
// membership insert and the invite status flip commit together.
func (s *Service) Accept(ctx context.Context, userID uuid.UUID, token string) (*AcceptResult, error) {
	invite, err := s.repo.FindByToken(ctx, token)
	if err != nil {
		return nil, notFoundOr(err, "invite not found")
	}

	switch effectiveStatus(*invite) {
	case enums.InviteStatusPending:
	case enums.InviteStatusExpired:
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "invite has expired")
	default:
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict,
			fmt.Sprintf("invite is already %s", invite.Status))
	}

	now := time.Now().UTC()
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.members.AddMemberWithTx(tx, &models.Membership{
			ID:       uuid.New(),
			UserID:   userID,
			StudioID: invite.StudioID,
			Role:     invite.Role,
		}); err != nil {
			return fmt.Errorf("adding member: %w", err)
		}
		return s.repo.UpdateWithTx(tx, invite.ID, map[string]any{
			"status":      enums.InviteStatusAccepted,
			"accepted_at": now,
		})
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "accepting invite")
	}

	if s.cache != nil {
		_ = s.cache.Del(ctx, s.cache.InviteTokenKey(token))
	}

	return &AcceptResult{StudioID: invite.StudioID, Role: invite.Role}, nil
}

// Revoke cancels a pending invite.
func (s *Service) Revoke(ctx context.Context, studioID, id uuid.UUID, callerRole enums.MemberRole) error {
	if !callerRole.CanManageMembers() {
		return pkgerrors.New(pkgerrors.CodeForbidden, "only owners and admins can revoke invites")
	}

	invite, err := s.repo.FindByID(ctx, studioID, id)
	if err != nil {
		return notFoundOr(err, "invite not found")
	}
	if invite.Status != enums.InviteStatusPending {
		return pkgerrors.New(pkgerrors.CodeStateConflict,
			fmt.Sprintf("invite is already %s", invite.Status))
	}

	if err := s.repo.Update(ctx, id, map[string]any{"status": enums.InviteStatusRevoked}); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "revoking invite")
	}
	if s.cache != nil {
		_ = s.cache.Del(ctx, s.cache.InviteTokenKey(invite.Token))
	}
	return nil
}

// effectiveStatus maps a pending-but-expired row to expired without
// requiring a background sweeper.
func effectiveStatus(invite models.Invite) enums.InviteStatus {
	if invite.Status == enums.InviteStatusPending && time.Now().UTC().After(invite.ExpiresAt) {
		return enums.InviteStatusExpired
	}
	return invite.Status
}

func newToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
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
