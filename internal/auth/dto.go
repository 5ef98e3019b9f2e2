package auth

import (
	"github.com/fitdesk-hq/fitdesk-backend/pkg/enums"
	"github.com/google/uuid"
)

// RegisterInput creates a login principal.
type RegisterInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	FullName string `json:"full_name" validate:"required"`
	Phone    *string `json:"phone"`
}

// LoginInput authenticates a user.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RefreshInput rotates the session.
type RefreshInput struct {
	AccessToken  string `json:"access_token" validate:"required"`
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// UserDTO is the public user projection.
type UserDTO struct {
	ID       uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	FullName string    `json:"full_name"`
}

// StudioMembershipDTO lists one studio the user can act in.
type StudioMembershipDTO struct {
	StudioID uuid.UUID        `json:"studio_id"`
	Role     enums.MemberRole `json:"role"`
}

// TokenPair is the issued credential set.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// SessionDTO is the login/register/refresh response.
type SessionDTO struct {
	User    UserDTO               `json:"user"`
	Studios []StudioMembershipDTO `json:"studios"`
	Tokens  TokenPair             `json:"tokens"`
}
