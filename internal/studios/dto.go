package studios

import (
	"time"

	"github.com/fitdesk-hq/fitdesk-backend/pkg/enums"
	"github.com/google/uuid"
)

// CreateInput registers a new studio owned by the calling user.
type CreateInput struct {
	Name        string   `json:"name" validate:"required"`
	LegalName   *string  `json:"legal_name"`
	Email       *string  `json:"email" validate:"omitempty,email"`
	Phone       *string  `json:"phone"`
	AddressLine *string  `json:"address_line"`
	City        *string  `json:"city"`
	Country     *string  `json:"country"`
	TaxNumber   *string  `json:"tax_number"`
	Specialties []string `json:"specialties"`
}

// UpdateInput patches the studio profile.
type UpdateInput struct {
	Name        *string  `json:"name"`
	LegalName   *string  `json:"legal_name"`
	Email       *string  `json:"email" validate:"omitempty,email"`
	Phone       *string  `json:"phone"`
	AddressLine *string  `json:"address_line"`
	City        *string  `json:"city"`
	Country     *string  `json:"country"`
	TaxNumber   *string  `json:"tax_number"`
	Specialties []string `json:"specialties"`
	LogoURL     *string  `json:"logo_url"`
}

// MemberDTO is one row of the member list.
type MemberDTO struct {
	UserID   uuid.UUID        `json:"user_id"`
	FullName string           `json:"full_name"`
	Email    string           `json:"email"`
	Role     enums.MemberRole `json:"role"`
	JoinedAt time.Time        `json:"joined_at"`
}
