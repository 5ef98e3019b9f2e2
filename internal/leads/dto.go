package leads

import (
	"time"

	"github.com/fitdesk-hq/fitdesk-backend/pkg/enums"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateInput opens a new pipeline entry.
type CreateInput struct {
	Name         string           `json:"name" validate:"required"`
	ContactName  *string          `json:"contact_name"`
	ContactEmail *string          `json:"contact_email" validate:"omitempty,email"`
	ContactPhone *string          `json:"contact_phone"`
	Source       *string          `json:"source"`
	BudgetMin    *decimal.Decimal `json:"budget_min"`
	BudgetMax    *decimal.Decimal `json:"budget_max"`
	Notes        *string          `json:"notes"`
	AssignedTo   *uuid.UUID       `json:"assigned_to"`
}

// UpdateInput patches mutable lead fields. Stage changes go through
// TransitionInput so the side effects stay in one place.
type UpdateInput struct {
	Name         *string          `json:"name"`
	ContactName  *string          `json:"contact_name"`
	ContactEmail *string          `json:"contact_email" validate:"omitempty,email"`
	ContactPhone *string          `json:"contact_phone"`
	Source       *string          `json:"source"`
	BudgetMin    *decimal.Decimal `json:"budget_min"`
	BudgetMax    *decimal.Decimal `json:"budget_max"`
	Notes        *string          `json:"notes"`
	AssignedTo   *uuid.UUID       `json:"assigned_to"`
}

// TransitionInput moves a lead to a new pipeline stage.
type TransitionInput struct {
	Stage      enums.LeadStage `json:"stage" validate:"required"`
	LostReason *string         `json:"lost_reason"`
}

// TransitionResult reports the moved lead and, when the move entered the
// proposal stage, the draft quotation spawned for it.
type TransitionResult struct {
	LeadID      uuid.UUID       `json:"lead_id"`
	Stage       enums.LeadStage `json:"stage"`
	QuotationID *uuid.UUID      `json:"quotation_id,omitempty"`
}

// ListParams filters the lead list.
type ListParams struct {
	Stage  enums.LeadStage
	Limit  int
	Cursor string
}

// ListItem is the pipeline list projection.
type ListItem struct {
	ID         uuid.UUID        `json:"id"`
	Name       string           `json:"name"`
	Stage      enums.LeadStage  `json:"stage"`
	Source     *string          `json:"source,omitempty"`
	BudgetMin  *decimal.Decimal `json:"budget_min,omitempty"`
	BudgetMax  *decimal.Decimal `json:"budget_max,omitempty"`
	AssignedTo *uuid.UUID       `json:"assigned_to,omitempty"`
	CreatedAt  time.Time        `json:"created_at"`
}

// ListPage wraps a page of leads with the next cursor, if any.
type ListPage struct {
	Items      []ListItem `json:"items"`
	NextCursor string     `json:"next_cursor,omitempty"`
}
