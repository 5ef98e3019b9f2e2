package quotations

import (
	"time"

	"github.com/fitdesk-hq/fitdesk-backend/pkg/db/models"
	"github.com/fitdesk-hq/fitdesk-backend/pkg/enums"
	"github.com/fitdesk-hq/fitdesk-backend/pkg/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ComponentNode is a component plus the line items resolved onto it.
type ComponentNode struct {
	models.QuotationComponent
	LineItems []models.QuotationLineItem `json:"lineItems"`
}

// SpaceNode is a space plus its nested components and direct line items.
type SpaceNode struct {
	models.QuotationSpace
	Components []*ComponentNode           `json:"components"`
	LineItems  []models.QuotationLineItem `json:"lineItems"`
}

// Tree is the reconstructed quotation hierarchy.
type Tree struct {
	Spaces           []*SpaceNode               `json:"spaces"`
	OrphanComponents []*ComponentNode           `json:"orphanComponents"`
	OrphanLineItems  []models.QuotationLineItem `json:"orphanLineItems"`
}

// DetailDTO is the GET payload: the tree plus the flat collections and the
// version history of the quotation number.
type DetailDTO struct {
	Quotation    models.Quotation             `json:"quotation"`
	Spaces       []*SpaceNode                 `json:"spaces"`
	Components   []*ComponentNode             `json:"components"`
	LineItems    []models.QuotationLineItem   `json:"lineItems"`
	AllLineItems []models.QuotationLineItem   `json:"allLineItems"`
	Versions     []models.Quotation           `json:"versions"`
}

// LineItemInput is one submitted priced unit.
type LineItemInput struct {
	CostItemID           *uuid.UUID       `json:"cost_item_id"`
	Description          string           `json:"description"`
	Quantity             decimal.Decimal  `json:"quantity"`
	Rate                 decimal.Decimal  `json:"rate"`
	Amount               decimal.Decimal  `json:"amount"`
	MeasurementUnit      *string          `json:"measurement_unit"`
	SortOrder            *int             `json:"sort_order"`
	QuotationSpaceID     *uuid.UUID       `json:"quotation_space_id"`
	QuotationComponentID *uuid.UUID       `json:"quotation_component_id"`
}

// ComponentInput is one submitted component with its nested items.
type ComponentInput struct {
	Name               string          `json:"name"`
	ComponentTypeID    *uuid.UUID      `json:"component_type_id"`
	ComponentVariantID *uuid.UUID      `json:"component_variant_id"`
	Subtotal           decimal.Decimal `json:"subtotal"`
	SortOrder          *int            `json:"sort_order"`
	LineItems          []LineItemInput `json:"lineItems"`
}

// SpaceInput is one submitted space with its nested components and items.
type SpaceInput struct {
	Name        string           `json:"name"`
	SpaceTypeID *uuid.UUID       `json:"space_type_id"`
	Subtotal    decimal.Decimal  `json:"subtotal"`
	SortOrder   *int             `json:"sort_order"`
	Components  []ComponentInput `json:"components"`
	LineItems   []LineItemInput  `json:"lineItems"`
}

// UpdateInput carries the PATCH body. Header fields are an allow-list;
// anything else the client sends is dropped during JSON decoding. Spaces
// and LineItems are mutually exclusive subtree shapes: nested replaces the
// whole tree, flat replaces line items only without id remapping.
type UpdateInput struct {
	Title           *string                `json:"title"`
	Status          *enums.QuotationStatus `json:"status"`
	Subtotal        *decimal.Decimal       `json:"subtotal"`
	DiscountPercent *decimal.Decimal       `json:"discount_percent"`
	DiscountAmount  *decimal.Decimal       `json:"discount_amount"`
	TaxPercent      *decimal.Decimal       `json:"tax_percent"`
	TaxAmount       *decimal.Decimal       `json:"tax_amount"`
	OverheadPercent *decimal.Decimal       `json:"overhead_percent"`
	OverheadAmount  *decimal.Decimal       `json:"overhead_amount"`
	GrandTotal      *decimal.Decimal       `json:"grand_total"`
	ValidUntil      *time.Time             `json:"valid_until"`
	Terms           *string                `json:"terms"`
	ShowUnitPrices  *bool                  `json:"show_unit_prices"`
	// AssignedTo distinguishes "absent" from an explicit null, so a PATCH
	// can clear the assignment.
	AssignedTo types.NullableUUID `json:"assigned_to"`

	Spaces    []SpaceInput    `json:"spaces"`
	LineItems []LineItemInput `json:"lineItems"`
}

// HasSubtree reports whether the PATCH carries either subtree shape.
func (in UpdateInput) HasSubtree() bool {
	return in.Spaces != nil || in.LineItems != nil
}

// CreateInput seeds a fresh draft quotation.
type CreateInput struct {
	Title      string     `json:"title"`
	LeadID     *uuid.UUID `json:"lead_id"`
	ValidUntil *time.Time `json:"valid_until"`
	AssignedTo *uuid.UUID `json:"assigned_to"`
}

// ListItemDTO is the list-view projection.
type ListItemDTO struct {
	ID              uuid.UUID             `json:"id"`
	QuotationNumber string                `json:"quotation_number"`
	Version         int                   `json:"version"`
	Title           string                `json:"title"`
	Status          enums.QuotationStatus `json:"status"`
	GrandTotal      decimal.Decimal       `json:"grand_total"`
	LeadID          *uuid.UUID            `json:"lead_id,omitempty"`
	CreatedAt       time.Time             `json:"created_at"`
}

// ListPage wraps a page of quotations with the next cursor, if any.
type ListPage struct {
	Items      []ListItemDTO `json:"items"`
	NextCursor string        `json:"next_cursor,omitempty"`
}
