package studios

import (
	"context"
	stdErrors "errors"
	"strings"

	"github.com/fitdesk-hq/fitdesk-backend/pkg/db/models"
	"github.com/fitdesk-hq/fitdesk-backend/pkg/enums"
	pkgerrors "github.com/fitdesk-hq/fitdesk-backend/pkg/errors"
	"github.com/fitdesk-hq/fitdesk-backend/pkg/logger"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Repo is the persistence surface the service needs.
type Repo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Studio, error)
	Create(ctx context.Context, studio *models.Studio, owner *models.Membership) error
	Update(ctx context.Context, id uuid.UUID, columns map[string]any) error
	Membership(ctx context.Context, studioID, userID uuid.UUID) (*models.Membership, error)
	MembershipsForUser(ctx context.Context, userID uuid.UUID) ([]models.Membership, error)
	Members(ctx context.Context, studioID uuid.UUID) ([]MemberDTO, error)
}

// Service owns studio profile and roster rules.
type Service struct {
	repo Repo
	logg *logger.Logger
}

// NewService wires the studio service.
func NewService(repo Repo, logg *logger.Logger) *Service {
	return &Service{repo: repo, logg: logg}
}

// Get loads the studio profile.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*models.Studio, error) {
	studio, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "studio not found")
	}
	return studio, nil
}

// Create registers a studio; the calling user becomes its owner.
func (s *Service) Create(ctx context.Context, userID uuid.UUID, in CreateInput) (*models.Studio, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}

	studio := &models.Studio{
		ID:          uuid.New(),
		Name:        in.Name,
		LegalName:   in.LegalName,
		Email:       in.Email,
		Phone:       in.Phone,
		AddressLine: in.AddressLine,
		City:        in.City,
		Country:     in.Country,
		TaxNumber:   in.TaxNumber,
		Specialties: pq.StringArray(in.Specialties),
		OwnerID:     userID,
	}
	owner := &models.Membership{
		ID:       uuid.New(),
		UserID:   userID,
		StudioID: studio.ID,
		Role:     enums.MemberRoleOwner,
	}
	if err := s.repo.Create(ctx, studio, owner); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating studio")
	}
	return studio, nil
}

// Update patches the studio profile. Only owners and admins may do this.
func (s *Service) Update(ctx context.Context, studioID, userID uuid.UUID, in UpdateInput) (*models.Studio, error) {
	membership, err := s.repo.Membership(ctx, studioID, userID)
	if err != nil {
		return nil, notFoundOr(err, "studio not found")
	}
	if !membership.Role.CanManageMembers() {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "only owners and admins can update the studio")
	}

	columns := map[string]any{}
	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "name cannot be empty")
		}
		columns["name"] = *in.Name
	}
	if in.LegalName != nil {
		columns["legal_name"] = *in.LegalName
	}
	if in.Email != nil {
		columns["email"] = *in.Email
	}
	if in.Phone != nil {
		columns["phone"] = *in.Phone
	}
	if in.AddressLine != nil {
		columns["address_line"] = *in.AddressLine
	}
	if in.City != nil {
		columns["city"] = *in.City
	}
	if in.Country != nil {
		columns["country"] = *in.Country
	}
	if in.TaxNumber != nil {
		columns["tax_number"] = *in.TaxNumber
	}
	if in.Specialties != nil {
		columns["specialties"] = pq.StringArray(in.Specialties)
	}
	if in.LogoURL != nil {
		columns["logo_url"] = *in.LogoURL
	}

	if err := s.repo.Update(ctx, studioID, columns); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating studio")
	}
	return s.repo.FindByID(ctx, studioID)
}

// Members returns the studio roster.
func (s *Service) Members(ctx context.Context, studioID uuid.UUID) ([]MemberDTO, error) {
	rows, err := s.repo.Members(ctx, studioID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing members")
	}
	return rows, nil
}

// RoleOf resolves the caller's role inside a studio.
func (s *Service) RoleOf(ctx context.Context, studioID, userID uuid.UUID) (enums.MemberRole, error) {
	membership, err := s.repo.Membership(ctx, studioID, userID)
	if err != nil {
		if stdErrors.Is(err, gorm.ErrRecordNotFound) {
			return "", pkgerrors.New(pkgerrors.CodeForbidden, "not a member of this studio")
		}
		return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "resolving membership")
	}
	return membership.Role, nil
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
