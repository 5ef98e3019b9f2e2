package finance

import "github.com/shopspring/decimal"

// Summary is the finance dashboard payload, computed from live quotation
// and purchase order rows.
type Summary struct {
	QuotationsByStatus map[string]int64 `json:"quotations_by_status"`
	PipelineValue      decimal.Decimal  `json:"pipeline_value"`
	ApprovedValue      decimal.Decimal  `json:"approved_value"`
	OpenPOValue        decimal.Decimal  `json:"open_po_value"`
	OpenLeads          int64            `json:"open_leads"`
}
