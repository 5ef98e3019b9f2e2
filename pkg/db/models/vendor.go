package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Vendor is a procurement supplier scoped to a studio.
type Vendor struct {
	ID           uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	StudioID     uuid.UUID      `gorm:"column:studio_id;type:uuid;not null;index"`
	Name         string         `gorm:"column:name;not null"`
	ContactName  *string        `gorm:"column:contact_name"`
	Email        *string        `gorm:"column:email"`
	Phone        *string        `gorm:"column:phone"`
	AddressLine  *string        `gorm:"column:address_line"`
	GSTNumber    *string        `gorm:"column:gst_number"`
	Categories   pq.StringArray `gorm:"column:categories;type:text[]"`
	PaymentTerms *string        `gorm:"column:payment_terms"`
	Active       bool           `gorm:"column:active;not null;default:true"`
	CreatedBy    uuid.UUID      `gorm:"column:created_by;type:uuid;not null"`
	CreatedAt    time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}
