package auth

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/fitdesk-hq/fitdesk-backend/pkg/config"
	"github.com/fitdesk-hq/fitdesk-backend/pkg/db/models"
	pkgerrors "github.com/fitdesk-hq/fitdesk-backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type stubUsers struct {
	byEmail   map[string]*models.User
	createErr error
	created   *models.User
}

func (s *stubUsers) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	for _, u := range s.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubUsers) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if u, ok := s.byEmail[email]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubUsers) Create(ctx context.Context, user *models.User) error {
	if s.createErr != nil {
		return s.createErr
	}
	s.created = user
	return nil
}

func (s *stubUsers) Update(ctx context.Context, id uuid.UUID, columns map[string]any) error {
	return nil
}

type stubMemberships struct {
	rows []models.Membership
}

func (s *stubMemberships) MembershipsForUser(ctx context.Context, userID uuid.UUID) ([]models.Membership, error) {
	return s.rows, nil
}

type stubSessions struct {
	generated int
	revoked   []string
}

func (s *stubSessions) Generate(ctx context.Context, accessID string) (string, error) {
	s.generated++
	return "refresh-" + accessID, nil
}

func (s *stubSessions) Rotate(ctx context.Context, oldAccessID, provided string) (string, string, error) {
	return "", "", errors.New("not used")
}

func (s *stubSessions) Revoke(ctx context.Context, accessID string) error {
	s.revoked = append(s.revoked, accessID)
	return nil
}

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{Secret: "test-secret", Issuer: "fitdesk-test", ExpirationMinutes: 15}
}

func testPasswordConfig() config.PasswordConfig {
	return config.PasswordConfig{ArgonMemoryKB: 8192, ArgonTime: 1, ArgonParallelism: 1, ArgonSaltLen: 16, ArgonKeyLen: 32}
}

func newTestService(users *stubUsers, sessions *stubSessions) *Service {
	return NewService(users, &stubMemberships{}, sessions, testJWTConfig(), testPasswordConfig(), nil)
}

func TestRegisterOpensSession(t *testing.T) {
	users := &stubUsers{byEmail: map[string]*models.User{}}
	sessions := &stubSessions{}
	svc := newTestService(users, sessions)

	session, err := svc.Register(context.Background(), RegisterInput{
		Email:    "Owner@Studio.Test",
		Password: "long-enough-pass",
		FullName: "Studio Owner",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if users.created == nil || users.created.Email != "owner@studio.test" {
		t.Fatalf("expected lowercased email persisted, got %+v", users.created)
	}
	if users.created.PasswordHash == "" || strings.Contains(users.created.PasswordHash, "long-enough-pass") {
		t.Fatalf("password must be stored hashed")
	}
	if session.Tokens.AccessToken == "" || session.Tokens.RefreshToken == "" {
		t.Fatalf("expected token pair, got %+v", session.Tokens)
	}
	if sessions.generated != 1 {
		t.Fatalf("expected one session, got %d", sessions.generated)
	}
}

func TestRegisterRejectsKnownEmail(t *testing.T) {
	users := &stubUsers{byEmail: map[string]*models.User{
		"owner@studio.test": {ID: uuid.New(), Email: "owner@studio.test"},
	}}
	svc := newTestService(users, &stubSessions{})

	_, err := svc.Register(context.Background(), RegisterInput{
		Email:    "owner@studio.test",
		Password: "long-enough-pass",
		FullName: "Studio Owner",
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestRegisterMapsUniqueViolationToConflict(t *testing.T) {
	// The pre-check races concurrent registrations: both pass FindByEmail,
	// one insert then trips the unique index. That must surface as a
	// conflict, not a 500.
	users := &stubUsers{
		byEmail:   map[string]*models.User{},
		createErr: errors.New(`ERROR: duplicate key value violates unique constraint "idx_users_email" (SQLSTATE 23505)`),
	}
	sessions := &stubSessions{}
	svc := newTestService(users, sessions)

	_, err := svc.Register(context.Background(), RegisterInput{
		Email:    "owner@studio.test",
		Password: "long-enough-pass",
		FullName: "Studio Owner",
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
	if sessions.generated != 0 {
		t.Fatalf("no session should open for a failed registration")
	}
}

func TestRegisterOtherCreateErrorsStayInternal(t *testing.T) {
	users := &stubUsers{
		byEmail:   map[string]*models.User{},
		createErr: errors.New("connection reset by peer"),
	}
	svc := newTestService(users, &stubSessions{})

	_, err := svc.Register(context.Background(), RegisterInput{
		Email:    "owner@studio.test",
		Password: "long-enough-pass",
		FullName: "Studio Owner",
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeInternal {
		t.Fatalf("expected internal error, got %v", err)
	}
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	users := &stubUsers{byEmail: map[string]*models.User{}}
	sessions := &stubSessions{}
	svc := newTestService(users, sessions)

	if _, err := svc.Register(context.Background(), RegisterInput{
		Email:    "owner@studio.test",
		Password: "long-enough-pass",
		FullName: "Studio Owner",
	}); err != nil {
		t.Fatalf("seeding user: %v", err)
	}
	users.byEmail["owner@studio.test"] = users.created

	_, err := svc.Login(context.Background(), LoginInput{
		Email:    "owner@studio.test",
		Password: "wrong-password",
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}
