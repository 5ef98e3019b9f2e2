package auth

import (
	"context"
	stdErrors "errors"
	"strings"
	"time"

	"github.com/fitdesk-hq/fitdesk-backend/pkg/auth"
	"github.com/fitdesk-hq/fitdesk-backend/pkg/auth/session"
	"github.com/fitdesk-hq/fitdesk-backend/pkg/config"
	"github.com/fitdesk-hq/fitdesk-backend/pkg/db"
	"github.com/fitdesk-hq/fitdesk-backend/pkg/db/models"
	pkgerrors "github.com/fitdesk-hq/fitdesk-backend/pkg/errors"
	"github.com/fitdesk-hq/fitdesk-backend/pkg/logger"
	"github.com/fitdesk-hq/fitdesk-backend/pkg/security"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserRepo is the user persistence surface the service needs.
type UserRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, id uuid.UUID, columns map[string]any) error
}

// MembershipResolver lists the studios a user belongs to.
type MembershipResolver interface {
	MembershipsForUser(ctx context.Context, userID uuid.UUID) ([]models.Membership, error)
}

// SessionManager owns refresh-token sessions in redis.
type SessionManager interface {
	Generate(ctx context.Context, accessID string) (string, error)
	Rotate(ctx context.Context, oldAccessID, provided string) (string, string, error)
	Revoke(ctx context.Context, accessID string) error
}

// Service owns registration, login, and session rotation.
type Service struct {
	users       UserRepo
	memberships MembershipResolver
	sessions    SessionManager
	jwtCfg      config.JWTConfig
	pwdCfg      config.PasswordConfig
	logg        *logger.Logger
}

// NewService wires the auth service.
func NewService(users UserRepo, memberships MembershipResolver, sessions SessionManager, jwtCfg config.JWTConfig, pwdCfg config.PasswordConfig, logg *logger.Logger) *Service {
	return &Service{
		users:       users,
		memberships: memberships,
		sessions:    sessions,
		jwtCfg:      jwtCfg,
		pwdCfg:      pwdCfg,
		logg:        logg,
	}
}

// Register creates a user and opens a session.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*SessionDTO, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || in.Password == "" || strings.TrimSpace(in.FullName) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email, password, and full_name are required")
	}

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "an account with this email already exists")
	} else if !stdErrors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "checking existing account")
	}

	hash, err := security.HashPassword(in.Password, s.pwdCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hashing password")
	}

	user := &models.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: hash,
		FullName:     in.FullName,
		Phone:        in.Phone,
	}
	if err := s.users.Create(ctx, user); err != nil {
		// The FindByEmail pre-check races concurrent registrations; the
		// unique index is the authority.
		if db.IsUniqueViolation(err, "idx_users_email") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "an account with this email already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating user")
	}

	return s.openSession(ctx, user)
}

// Login verifies credentials and opens a session.
func (s *Service) Login(ctx context.Context, in LoginInput) (*SessionDTO, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if stdErrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading user")
	}

	ok, err := security.VerifyPassword(in.Password, user.PasswordHash)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verifying password")
	}
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
	}

	now := time.Now().UTC()
	if err := s.users.Update(ctx, user.ID, map[string]any{"last_login_at": now}); err != nil && s.logg != nil {
		s.logg.Warn(ctx, "auth.last_login_update_failed")
	}

	return s.openSession(ctx, user)
}

// Refresh rotates the refresh token and reissues the access token. The
// presented access token may be expired; only its signature must hold.
func (s *Service) Refresh(ctx context.Context, in RefreshInput) (*TokenPair, error) {
	claims, err := auth.ParseAccessTokenAllowExpired(s.jwtCfg, in.AccessToken)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid access token")
	}

	newAccessID, newRefresh, err := s.sessions.Rotate(ctx, claims.ID, in.RefreshToken)
	if err != nil {
		if stdErrors.Is(err, session.ErrInvalidRefreshToken) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid refresh token")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "rotating session")
	}

	accessToken, err := auth.MintAccessToken(s.jwtCfg, time.Now().UTC(), auth.AccessTokenPayload{
		UserID:         claims.UserID,
		ActiveStudioID: claims.ActiveStudioID,
		Role:           claims.Role,
		JTI:            newAccessID,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "minting access token")
	}

	return &TokenPair{AccessToken: accessToken, RefreshToken: newRefresh}, nil
}

// Logout revokes the refresh session tied to the presented access token.
func (s *Service) Logout(ctx context.Context, accessTokenID string) error {
	if err := s.sessions.Revoke(ctx, accessTokenID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "revoking session")
	}
	return nil
}

// SwitchStudio reissues the access token scoped to another studio the user
// belongs to.
func (s *Service) SwitchStudio(ctx context.Context, userID, studioID uuid.UUID, currentJTI string) (*TokenPair, error) {
	memberships, err := s.memberships.MembershipsForUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading memberships")
	}

	var target *models.Membership
	for i := range memberships {
		if memberships[i].StudioID == studioID {
			target = &memberships[i]
			break
		}
	}
	if target == nil {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "not a member of this studio")
	}

	if err := s.sessions.Revoke(ctx, currentJTI); err != nil && s.logg != nil {
		s.logg.Warn(ctx, "auth.session_revoke_failed")
	}

	accessID := session.NewAccessID()
	refreshToken, err := s.sessions.Generate(ctx, accessID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating session")
	}

	accessToken, err := auth.MintAccessToken(s.jwtCfg, time.Now().UTC(), auth.AccessTokenPayload{
		UserID:         userID,
		ActiveStudioID: &target.StudioID,
		Role:           target.Role,
		JTI:            accessID,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "minting access token")
	}

	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

func (s *Service) openSession(ctx context.Context, user *models.User) (*SessionDTO, error) {
	memberships, err := s.memberships.MembershipsForUser(ctx, user.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading memberships")
	}

	payload := auth.AccessTokenPayload{UserID: user.ID, JTI: session.NewAccessID()}
	studios := make([]StudioMembershipDTO, 0, len(memberships))
	for i, membership := range memberships {
		if i == 0 {
			payload.ActiveStudioID = &membership.StudioID
			payload.Role = membership.Role
		}
		studios = append(studios, StudioMembershipDTO{StudioID: membership.StudioID, Role: membership.Role})
	}

	refreshToken, err := s.sessions.Generate(ctx, payload.JTI)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating session")
	}

	accessToken, err := auth.MintAccessToken(s.jwtCfg, time.Now().UTC(), payload)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "minting access token")
	}

	return &SessionDTO{
		User:    UserDTO{ID: user.ID, Email: user.Email, FullName: user.FullName},
		Studios: studios,
		Tokens:  TokenPair{AccessToken: accessToken, RefreshToken: refreshToken},
	}, nil
}
