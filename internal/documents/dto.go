package documents

import (
	"github.com/fitdesk-hq/fitdesk-backend/pkg/enums"
	"github.com/google/uuid"
)

// CreateInput records a document whose binary already lives in external
// storage; only the metadata row is created here.
type CreateInput struct {
	Name      string             `json:"name" validate:"required"`
	Kind      enums.DocumentKind `json:"kind"`
	URL       string             `json:"url" validate:"required,url"`
	SizeBytes int64              `json:"size_bytes"`
	MimeType  *string            `json:"mime_type"`
	LeadID    *uuid.UUID         `json:"lead_id"`
}

// ListParams filters the document list.
type ListParams struct {
	Kind   enums.DocumentKind
	LeadID *uuid.UUID
}
