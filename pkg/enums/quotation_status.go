package enums

// QuotationStatus models the quotation lifecycle:
// draft -> sent -> viewed -> negotiating -> {approved | rejected},
// with expired reachable from any non-terminal state.
type QuotationStatus string

const (
	QuotationStatusDraft       QuotationStatus = "draft"
	QuotationStatusSent        QuotationStatus = "sent"
	QuotationStatusViewed      QuotationStatus = "viewed"
	QuotationStatusNegotiating QuotationStatus = "negotiating"
	QuotationStatusApproved    QuotationStatus = "approved"
	QuotationStatusRejected    QuotationStatus = "rejected"
	QuotationStatusExpired     QuotationStatus = "expired"
)

func (s QuotationStatus) IsValid() bool {
	switch s {
	case QuotationStatusDraft, QuotationStatusSent, QuotationStatusViewed,
		QuotationStatusNegotiating, QuotationStatusApproved, QuotationStatusRejected,
		QuotationStatusExpired:
		return true
	}
	return false
}

// IsTerminal reports whether the quotation can only move forward via a new revision.
func (s QuotationStatus) IsTerminal() bool {
	return s == QuotationStatusApproved || s == QuotationStatusRejected
}

var quotationSuccessors = map[QuotationStatus][]QuotationStatus{
	QuotationStatusDraft:       {QuotationStatusSent},
	QuotationStatusSent:        {QuotationStatusViewed},
	QuotationStatusViewed:      {QuotationStatusNegotiating},
	QuotationStatusNegotiating: {QuotationStatusApproved, QuotationStatusRejected},
}

// CanTransitionTo reports whether moving from s to next is a legal step.
func (s QuotationStatus) CanTransitionTo(next QuotationStatus) bool {
	if s == next {
		return true
	}
	// Expiry is driven by an external time-based process but may land at any
	// point before a terminal decision.
	if next == QuotationStatusExpired {
		return !s.IsTerminal()
	}
	for _, candidate := range quotationSuccessors[s] {
		if candidate == next {
			return true
		}
	}
	return false
}
