package models

import (
	"time"

	"github.com/fitdesk-hq/fitdesk-backend/pkg/enums"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Quotation is one version of a priced proposal. All versions of a logical
// quotation share QuotationNumber; (QuotationNumber, Version) is unique.
type Quotation struct {
	ID              uuid.UUID             `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	StudioID        uuid.UUID             `gorm:"column:studio_id;type:uuid;not null;index"`
	LeadID          *uuid.UUID            `gorm:"column:lead_id;type:uuid;index"`
	QuotationNumber string                `gorm:"column:quotation_number;not null;index"`
	Version         int                   `gorm:"column:version;not null;default:1"`
	Title           string                `gorm:"column:title;not null"`
	Status          enums.QuotationStatus `gorm:"column:status;type:quotation_status;not null;default:'draft'"`
	Subtotal        decimal.Decimal       `gorm:"column:subtotal;type:numeric(14,2);not null;default:0"`
	DiscountPercent decimal.Decimal       `gorm:"column:discount_percent;type:numeric(5,2);not null;default:0"`
	DiscountAmount  decimal.Decimal       `gorm:"column:discount_amount;type:numeric(14,2);not null;default:0"`
	TaxPercent      decimal.Decimal       `gorm:"column:tax_percent;type:numeric(5,2);not null;default:0"`
	TaxAmount       decimal.Decimal       `gorm:"column:tax_amount;type:numeric(14,2);not null;default:0"`
	OverheadPercent decimal.Decimal       `gorm:"column:overhead_percent;type:numeric(5,2);not null;default:0"`
	OverheadAmount  decimal.Decimal       `gorm:"column:overhead_amount;type:numeric(14,2);not null;default:0"`
	GrandTotal      decimal.Decimal       `gorm:"column:grand_total;type:numeric(14,2);not null;default:0"`
	ValidUntil      *time.Time            `gorm:"column:valid_until"`
	Terms           *string               `gorm:"column:terms"`
	ShowUnitPrices  bool                  `gorm:"column:show_unit_prices;not null;default:true"`
	AssignedTo      *uuid.UUID            `gorm:"column:assigned_to;type:uuid"`
	CreatedBy       uuid.UUID             `gorm:"column:created_by;type:uuid;not null"`
	UpdatedBy       *uuid.UUID            `gorm:"column:updated_by;type:uuid"`
	CreatedAt       time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}
