package mapper

// The source schema identifies fields by schema_id attributes on datapoint
// elements. These tables map recognized schema_ids to target tags; anything
// not listed here is dropped silently.

var headerSchemaIDToTag = map[string]string{
	"invoice_id":       "InvoiceNumber",
	"date_issue":       "InvoiceDate",
	"date_due":         "DueDate",
	"amount_total":     "TotalAmount",
	"iban":             "Iban",
	"amount_total_tax": "Amount",
	"currency":         "Currency",
	"sender_name":      "Vendor",
	"sender_address":   "VendorAddress",
}

var detailSchemaIDToTag = map[string]string{
	"item_description":  "Notes",
	"item_quantity":     "Quantity",
	"item_amount_total": "Amount",
}

const lineItemsSectionID = "line_items_section"
