package models

import (
	"time"

	"github.com/fitdesk-hq/fitdesk-backend/pkg/enums"
	"github.com/google/uuid"
)

// Document is a library entry. The binary lives in an external storage
// system; only metadata and the externally supplied URL are kept here.
type Document struct {
	ID         uuid.UUID          `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	StudioID   uuid.UUID          `gorm:"column:studio_id;type:uuid;not null;index"`
	Name       string             `gorm:"column:name;not null"`
	Kind       enums.DocumentKind `gorm:"column:kind;type:document_kind;not null;default:'other'"`
	URL        string             `gorm:"column:url;not null"`
	SizeBytes  int64              `gorm:"column:size_bytes;not null;default:0"`
	MimeType   *string            `gorm:"column:mime_type"`
	LeadID     *uuid.UUID         `gorm:"column:lead_id;type:uuid"`
	UploadedBy uuid.UUID          `gorm:"column:uploaded_by;type:uuid;not null"`
	CreatedAt  time.Time          `gorm:"column:created_at;autoCreateTime"`
}
