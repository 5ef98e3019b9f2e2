package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Studio is the tenant: one interior design / fit-out firm.
type Studio struct {
	ID          uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Name        string         `gorm:"column:name;not null"`
	LegalName   *string        `gorm:"column:legal_name"`
	Email       *string        `gorm:"column:email"`
	Phone       *string        `gorm:"column:phone"`
	AddressLine *string        `gorm:"column:address_line"`
	City        *string        `gorm:"column:city"`
	Country     *string        `gorm:"column:country"`
	TaxNumber   *string        `gorm:"column:tax_number"`
	Specialties pq.StringArray `gorm:"column:specialties;type:text[]"`
	LogoURL     *string        `gorm:"column:logo_url"`
	OwnerID     uuid.UUID      `gorm:"column:owner;type:uuid;not null"`
	CreatedAt   time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}
