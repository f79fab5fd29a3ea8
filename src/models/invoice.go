package models

import "time"

// Payable holds the header-level fields extracted from one annotation export.
// Declaration order matches the serialization order required by the target
// schema; nil means the field was absent from the source.
type Payable struct {
	InvoiceNumber *int
	InvoiceDate   *time.Time
	DueDate       *time.Time
	TotalAmount   *float64
	Notes         *string // exists in the target schema, never mapped from the source
	Iban          *string
	Amount        *float64
	Currency      *string // ISO 4217 code, uppercase
	Vendor        *string
	VendorAddress *string
}

// Detail is one line item of an annotation export.
type Detail struct {
	Amount    *float64
	AccountId *int // exists in the target schema, never mapped from the source
	Quantity  *int
	Notes     *string
}
