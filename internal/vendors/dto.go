package vendors

// CreateInput registers a supplier.
type CreateInput struct {
	Name         string   `json:"name" validate:"required"`
	ContactName  *string  `json:"contact_name"`
	Email        *string  `json:"email" validate:"omitempty,email"`
	Phone        *string  `json:"phone"`
	AddressLine  *string  `json:"address_line"`
	GSTNumber    *string  `json:"gst_number"`
	Categories   []string `json:"categories"`
	PaymentTerms *string  `json:"payment_terms"`
}

// UpdateInput patches supplier fields.
type UpdateInput struct {
	Name         *string  `json:"name"`
	ContactName  *string  `json:"contact_name"`
	Email        *string  `json:"email" validate:"omitempty,email"`
	Phone        *string  `json:"phone"`
	AddressLine  *string  `json:"address_line"`
	GSTNumber    *string  `json:"gst_number"`
	Categories   []string `json:"categories"`
	PaymentTerms *string  `json:"payment_terms"`
	Active       *bool    `json:"active"`
}

// ListParams filters the vendor list.
type ListParams struct {
	Category   string
	ActiveOnly bool
}
