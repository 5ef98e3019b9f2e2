package invites

import (
	"time"

	"github.com/fitdesk-hq/fitdesk-backend/pkg/enums"
	"github.com/google/uuid"
)

// CreateInput issues an invitation to join a studio.
type CreateInput struct {
	Email string           `json:"email" validate:"required,email"`
	Role  enums.MemberRole `json:"role" validate:"required"`
}

// InviteDTO is the issued-invite projection. The token is only returned at
// creation time; delivery to the invitee happens outside this system.
type InviteDTO struct {
	ID        uuid.UUID          `json:"id"`
	Email     string             `json:"email"`
	Role      enums.MemberRole   `json:"role"`
	Status    enums.InviteStatus `json:"status"`
	Token     string             `json:"token,omitempty"`
	ExpiresAt time.Time          `json:"expires_at"`
	CreatedAt time.Time          `json:"created_at"`
}

// AcceptResult reports the studio the accepting user joined.
type AcceptResult struct {
	StudioID uuid.UUID        `json:"studio_id"`
	Role     enums.MemberRole `json:"role"`
}
