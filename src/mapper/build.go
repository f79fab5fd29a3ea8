package mapper

import (
	"strconv"
	"strings"
	"time"

	"github.com/username/docbridge/backend/src/models"
)

// The target document is a compatibility-critical artifact: downstream
// consumers compare it byte for byte. The declaration quoting, the space in
// self-closing tags and the dense single-line body are all part of the
// contract, so the document is assembled by hand instead of going through
// encoding/xml marshalling.

const xmlDeclaration = "<?xml version='1.0' encoding='utf-8'?>\n"

const dateTimeFormat = "2006-01-02 15:04:05"

var textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// Build serializes the records into the target invoice-register document,
// header fields first in their fixed order, then one Detail per line item.
func Build(payable *models.Payable, details []models.Detail) string {
	var b strings.Builder
	b.WriteString(xmlDeclaration)
	b.WriteString("<InvoiceRegisters><Invoices><Payable>")
	writeInt(&b, "InvoiceNumber", payable.InvoiceNumber)
	writeDateTime(&b, "InvoiceDate", payable.InvoiceDate)
	writeDateTime(&b, "DueDate", payable.DueDate)
	writeDecimal(&b, "TotalAmount", payable.TotalAmount)
	writeText(&b, "Notes", payable.Notes)
	writeText(&b, "Iban", payable.Iban)
	writeDecimal(&b, "Amount", payable.Amount)
	writeText(&b, "Currency", payable.Currency)
	writeText(&b, "Vendor", payable.Vendor)
	writeText(&b, "VendorAddress", payable.VendorAddress)
	if len(details) == 0 {
		b.WriteString("<Details />")
	} else {
		b.WriteString("<Details>")
		for _, detail := range details {
			b.WriteString("<Detail>")
			writeDecimal(&b, "Amount", detail.Amount)
			writeInt(&b, "AccountId", detail.AccountId)
			writeInt(&b, "Quantity", detail.Quantity)
			writeText(&b, "Notes", detail.Notes)
			b.WriteString("</Detail>")
		}
		b.WriteString("</Details>")
	}
	b.WriteString("</Payable></Invoices></InvoiceRegisters>")
	return b.String()
}

func writeElement(b *strings.Builder, tag, text string, set bool) {
	if !set {
		b.WriteString("<" + tag + " />")
		return
	}
	b.WriteString("<" + tag + ">")
	b.WriteString(textEscaper.Replace(text))
	b.WriteString("</" + tag + ">")
}

func writeText(b *strings.Builder, tag string, v *string) {
	if v == nil {
		writeElement(b, tag, "", false)
		return
	}
	writeElement(b, tag, *v, true)
}

func writeInt(b *strings.Builder, tag string, v *int) {
	if v == nil {
		writeElement(b, tag, "", false)
		return
	}
	writeElement(b, tag, strconv.Itoa(*v), true)
}

// writeDecimal uses the shortest round-trip decimal form without exponent
// notation, so 137.90 comes out as "137.9".
func writeDecimal(b *strings.Builder, tag string, v *float64) {
	if v == nil {
		writeElement(b, tag, "", false)
		return
	}
	writeElement(b, tag, strconv.FormatFloat(*v, 'f', -1, 64), true)
}

// writeDateTime emits seconds precision with a space separator, no timezone
// and no fractional part.
func writeDateTime(b *strings.Builder, tag string, v *time.Time) {
	if v == nil {
		writeElement(b, tag, "", false)
		return
	}
	writeElement(b, tag, v.Format(dateTimeFormat), true)
}
