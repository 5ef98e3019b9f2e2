package models

import (
	"time"

	"github.com/fitdesk-hq/fitdesk-backend/pkg/enums"
	"github.com/google/uuid"
)

// Invite is an outstanding offer to join a studio. Delivery of the invite
// email is handled by an external system; this row only tracks the token.
type Invite struct {
	ID         uuid.UUID          `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	StudioID   uuid.UUID          `gorm:"column:studio_id;type:uuid;not null;index"`
	Email      string             `gorm:"column:email;not null"`
	Role       enums.MemberRole   `gorm:"column:role;type:member_role;not null"`
	Token      string             `gorm:"column:token;not null;uniqueIndex"`
	Status     enums.InviteStatus `gorm:"column:status;type:invite_status;not null;default:'pending'"`
	InvitedBy  uuid.UUID          `gorm:"column:invited_by;type:uuid;not null"`
	ExpiresAt  time.Time          `gorm:"column:expires_at;not null"`
	AcceptedAt *time.Time         `gorm:"column:accepted_at"`
	CreatedAt  time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}
