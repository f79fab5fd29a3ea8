package mapper

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

const fullExport = `<?xml version="1.0" encoding="utf-8"?>
<export>
    <results>
        <annotation url="https://example.com/api/v1/annotations/2451971">
            <status>exported</status>
            <document url="https://example.com/api/v1/documents/2453838">
                <file_name>EU Marketing Invoice (Norway).pdf</file_name>
            </document>
            <content>
                <section schema_id="invoice_info_section">
                    <datapoint rir_confidence="0.9771588350454424" schema_id="invoice_id"
                        type="string">143453775</datapoint>
                    <datapoint rir_confidence="0.9633343080893669" schema_id="date_issue"
                        type="date">2019-03-01</datapoint>
                    <datapoint rir_confidence="0.9276531531670439" schema_id="date_due" type="date">
                        2019-03-31</datapoint>
                    <datapoint rir_confidence="0.8970364740042044" schema_id="iban" type="string">
                        NO6513425245230</datapoint>
                </section>
                <section schema_id="amounts_section">
                    <datapoint schema_id="amount_total" type="number">12978.81</datapoint>
                    <datapoint schema_id="amount_total_tax" type="number">2595.76</datapoint>
                    <datapoint schema_id="amount_total_base" type="number"></datapoint>
                    <datapoint schema_id="currency" type="enum">
                        nok</datapoint>
                </section>
                <section schema_id="vendor_section">
                    <datapoint schema_id="sender_name" type="string">InfoNet Workshop</datapoint>
                    <datapoint schema_id="sender_address" type="string">2423 KONGSVINGER
                        Norway</datapoint>
                    <datapoint schema_id="sender_ic" type="string"></datapoint>
                    <datapoint schema_id="recipient_name" type="string"></datapoint>
                </section>
                <section schema_id="others_section"></section>
                <section schema_id="line_items_section">
                    <multivalue schema_id="line_items">
                        <tuple schema_id="line_item">
                            <datapoint schema_id="item_description" type="string">HPi Battery 4C
                                40WHr 2 BAH LI LA098241</datapoint>
                            <datapoint schema_id="item_quantity" type="number">3</datapoint>
                            <datapoint schema_id="item_rate" type="number"></datapoint>
                            <datapoint schema_id="item_amount" type="number">645.53</datapoint>
                            <datapoint schema_id="item_amount_total" type="number">1936.59</datapoint>
                        </tuple>
                        <tuple schema_id="line_item">
                            <datapoint schema_id="item_description" type="string">HP 11.6-inch HD
                                WLED UWVA touchscreen display ass</datapoint>
                            <datapoint schema_id="item_quantity" type="number">4</datapoint>
                            <datapoint schema_id="item_amount" type="number">2077.14</datapoint>
                            <datapoint schema_id="item_amount_total" type="number">8308.56</datapoint>
                        </tuple>
                        <tuple schema_id="line_item">
                            <datapoint schema_id="item_description" type="string">fre-ghti</datapoint>
                            <datapoint schema_id="item_quantity" type="number">1</datapoint>
                            <datapoint schema_id="item_amount" type="number">137.90</datapoint>
                            <datapoint schema_id="item_amount_total" type="number">137.90</datapoint>
                        </tuple>
                    </multivalue>
                </section>
            </content>
        </annotation>
    </results>
</export>`

const fullExportWant = `<?xml version='1.0' encoding='utf-8'?>
<InvoiceRegisters><Invoices><Payable><InvoiceNumber>143453775</InvoiceNumber><InvoiceDate>2019-03-01 00:00:00</InvoiceDate><DueDate>2019-03-31 00:00:00</DueDate><TotalAmount>12978.81</TotalAmount><Notes /><Iban>NO6513425245230</Iban><Amount>2595.76</Amount><Currency>NOK</Currency><Vendor>InfoNet Workshop</Vendor><VendorAddress>2423 KONGSVINGER Norway</VendorAddress><Details><Detail><Amount>1936.59</Amount><AccountId /><Quantity>3</Quantity><Notes>HPi Battery 4C 40WHr 2 BAH LI LA098241</Notes></Detail><Detail><Amount>8308.56</Amount><AccountId /><Quantity>4</Quantity><Notes>HP 11.6-inch HD WLED UWVA touchscreen display ass</Notes></Detail><Detail><Amount>137.9</Amount><AccountId /><Quantity>1</Quantity><Notes>fre-ghti</Notes></Detail></Details></Payable></Invoices></InvoiceRegisters>`

func TestConvertFullExport(t *testing.T) {
	got, err := Convert(fullExport)
	if err != nil {
		t.Fatalf("Convert() error: %v", err)
	}
	if got != fullExportWant {
		t.Errorf("Convert() mismatch\ngot:  %s\nwant: %s", got, fullExportWant)
	}
}

func TestConvertSparseExport(t *testing.T) {
	source := `<?xml version="1.0" encoding="utf-8"?>
<export>
    <datapoint schema_id="invoice_id">143453775</datapoint>
    <datapoint schema_id="date_issue">2019-03-01</datapoint>
    <section schema_id="line_items_section">
        <tuple>
            <datapoint schema_id="item_description">description</datapoint>
        </tuple>
        <tuple>
            <datapoint schema_id="item_quantity">4</datapoint>
        </tuple>
    </section>
</export>`

	want := `<?xml version='1.0' encoding='utf-8'?>
<InvoiceRegisters><Invoices><Payable><InvoiceNumber>143453775</InvoiceNumber><InvoiceDate>2019-03-01 00:00:00</InvoiceDate><DueDate /><TotalAmount /><Notes /><Iban /><Amount /><Currency /><Vendor /><VendorAddress /><Details><Detail><Amount /><AccountId /><Quantity /><Notes>description</Notes></Detail><Detail><Amount /><AccountId /><Quantity>4</Quantity><Notes /></Detail></Details></Payable></Invoices></InvoiceRegisters>`

	got, err := Convert(source)
	if err != nil {
		t.Fatalf("Convert() error: %v", err)
	}
	if got != want {
		t.Errorf("Convert() mismatch\ngot:  %s\nwant: %s", got, want)
	}
}

func TestConvertNoLineItemsSection(t *testing.T) {
	source := `<export><datapoint schema_id="iban">NO6513425245230</datapoint></export>`
	got, err := Convert(source)
	if err != nil {
		t.Fatalf("Convert() error: %v", err)
	}
	if !strings.Contains(got, "<Details />") {
		t.Errorf("expected self-closing Details element, got: %s", got)
	}
}

func TestConvertMalformedXML(t *testing.T) {
	_, err := Convert("<export><datapoint schema_id=")
	if !errors.Is(err, ErrParse) {
		t.Fatalf("expected ErrParse, got: %v", err)
	}
}

func TestConvertMultipleRootElements(t *testing.T) {
	source := `<junk><datapoint schema_id="invoice_id">9</datapoint></junk>` +
		`<export><datapoint schema_id="invoice_id">143453775</datapoint></export>`
	_, err := Convert(source)
	if !errors.Is(err, ErrParse) {
		t.Fatalf("expected ErrParse, got: %v", err)
	}
}

func TestConvertTrailingWhitespaceAfterRoot(t *testing.T) {
	source := `<export><datapoint schema_id="invoice_id">42</datapoint></export>` + "\n\n"
	out, err := Convert(source)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "<InvoiceNumber>42</InvoiceNumber>") {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestDecimalFormatting(t *testing.T) {
	tests := []struct {
		source   string
		expected string
	}{
		{"137.90", "137.9"},
		{"12978.81", "12978.81"},
		{"100.00", "100"},
		{"0.5", "0.5"},
	}

	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			source := fmt.Sprintf(`<export><datapoint schema_id="amount_total">%s</datapoint></export>`, tt.source)
			got, err := Convert(source)
			if err != nil {
				t.Fatalf("Convert() error: %v", err)
			}
			want := fmt.Sprintf("<TotalAmount>%s</TotalAmount>", tt.expected)
			if !strings.Contains(got, want) {
				t.Errorf("expected %s in output, got: %s", want, got)
			}
		})
	}
}

func TestCurrencyNormalization(t *testing.T) {
	source := `<export><datapoint schema_id="currency">nok</datapoint></export>`
	got, err := Convert(source)
	if err != nil {
		t.Fatalf("Convert() error: %v", err)
	}
	if !strings.Contains(got, "<Currency>NOK</Currency>") {
		t.Errorf("expected uppercase NOK in output, got: %s", got)
	}
}

func TestValidationFailures(t *testing.T) {
	tests := []struct {
		name   string
		source string
	}{
		{"non-numeric invoice id", `<export><datapoint schema_id="invoice_id">abc</datapoint></export>`},
		{"zero invoice id", `<export><datapoint schema_id="invoice_id">0</datapoint></export>`},
		{"negative invoice id", `<export><datapoint schema_id="invoice_id">-5</datapoint></export>`},
		{"bad issue date", `<export><datapoint schema_id="date_issue">not-a-date</datapoint></export>`},
		{"bad total amount", `<export><datapoint schema_id="amount_total">12,usd</datapoint></export>`},
		{"unknown currency", `<export><datapoint schema_id="currency">zzz</datapoint></export>`},
		{"non-positive quantity", `<export><section schema_id="line_items_section"><tuple><datapoint schema_id="item_quantity">0</datapoint></tuple></section></export>`},
		{"non-numeric item amount", `<export><section schema_id="line_items_section"><tuple><datapoint schema_id="item_amount_total">x</datapoint></tuple></section></export>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Convert(tt.source)
			if !errors.Is(err, ErrValidation) {
				t.Fatalf("expected ErrValidation, got: %v", err)
			}
		})
	}
}

func TestFieldOrderIndependentOfSourceOrder(t *testing.T) {
	// sender_name before invoice_id in the source; target order stays fixed.
	source := `<export>
		<datapoint schema_id="sender_name">Vendor Co</datapoint>
		<datapoint schema_id="invoice_id">7</datapoint>
	</export>`
	got, err := Convert(source)
	if err != nil {
		t.Fatalf("Convert() error: %v", err)
	}
	invoiceIdx := strings.Index(got, "<InvoiceNumber>")
	vendorIdx := strings.Index(got, "<Vendor>")
	if invoiceIdx == -1 || vendorIdx == -1 || invoiceIdx > vendorIdx {
		t.Errorf("expected InvoiceNumber before Vendor, got: %s", got)
	}
}

func TestLineItemOrderAndNestingDepth(t *testing.T) {
	// Tuples nested at different depths inside the section still come out in
	// document order.
	source := `<export><section schema_id="line_items_section">
		<multivalue><tuple><datapoint schema_id="item_amount_total">1.5</datapoint></tuple></multivalue>
		<wrapper><inner><tuple><datapoint schema_id="item_amount_total">2.5</datapoint></tuple></inner></wrapper>
		<tuple><datapoint schema_id="item_amount_total">3.5</datapoint></tuple>
	</section></export>`

	payable, details, err := Extract(source)
	if err != nil {
		t.Fatalf("Extract() error: %v", err)
	}
	if payable == nil {
		t.Fatal("Extract() returned nil payable")
	}
	if len(details) != 3 {
		t.Fatalf("expected 3 details, got %d", len(details))
	}
	for i, want := range []float64{1.5, 2.5, 3.5} {
		if details[i].Amount == nil || *details[i].Amount != want {
			t.Errorf("detail %d: expected amount %v, got %v", i, want, details[i].Amount)
		}
	}
}

func TestSectionWithoutSchemaIDIgnored(t *testing.T) {
	source := `<export><section>
		<tuple><datapoint schema_id="item_quantity">2</datapoint></tuple>
	</section></export>`
	_, details, err := Extract(source)
	if err != nil {
		t.Fatalf("Extract() error: %v", err)
	}
	if len(details) != 0 {
		t.Errorf("expected no details from unlabelled section, got %d", len(details))
	}
}

func TestUnmappedSchemaIDsIgnored(t *testing.T) {
	source := `<export>
		<datapoint schema_id="recipient_name">Someone Else</datapoint>
		<datapoint schema_id="iban">NO6513425245230</datapoint>
		<datapoint>orphan without schema_id</datapoint>
	</export>`
	payable, _, err := Extract(source)
	if err != nil {
		t.Fatalf("Extract() error: %v", err)
	}
	if payable.Iban == nil || *payable.Iban != "NO6513425245230" {
		t.Errorf("expected Iban to survive unmapped neighbours, got %v", payable.Iban)
	}
	if payable.Vendor != nil {
		t.Errorf("expected Vendor unset, got %q", *payable.Vendor)
	}
}

func TestDuplicateHeaderFieldLastWriteWins(t *testing.T) {
	source := `<export>
		<datapoint schema_id="sender_name">First</datapoint>
		<datapoint schema_id="sender_name">Second</datapoint>
	</export>`
	payable, _, err := Extract(source)
	if err != nil {
		t.Fatalf("Extract() error: %v", err)
	}
	if payable.Vendor == nil || *payable.Vendor != "Second" {
		t.Errorf("expected last sender_name to win, got %v", payable.Vendor)
	}
}

func TestEmptyDatapointTreatedAsUnset(t *testing.T) {
	source := `<export>
		<datapoint schema_id="invoice_id">   </datapoint>
		<datapoint schema_id="sender_name"></datapoint>
	</export>`
	payable, _, err := Extract(source)
	if err != nil {
		t.Fatalf("Extract() error: %v", err)
	}
	if payable.InvoiceNumber != nil {
		t.Errorf("expected whitespace-only InvoiceNumber to be unset, got %v", *payable.InvoiceNumber)
	}
	if payable.Vendor != nil {
		t.Errorf("expected empty Vendor to be unset, got %q", *payable.Vendor)
	}
}

func TestWhitespaceNormalization(t *testing.T) {
	source := "<export><datapoint schema_id=\"sender_address\">2423 KONGSVINGER\n\t\t\tNorway</datapoint></export>"
	payable, _, err := Extract(source)
	if err != nil {
		t.Fatalf("Extract() error: %v", err)
	}
	if payable.VendorAddress == nil || *payable.VendorAddress != "2423 KONGSVINGER Norway" {
		t.Errorf("expected collapsed address, got %v", payable.VendorAddress)
	}
}

func TestTextEscaping(t *testing.T) {
	source := `<export><datapoint schema_id="sender_name">Brown &amp; Sons &lt;AS&gt;</datapoint></export>`
	got, err := Convert(source)
	if err != nil {
		t.Fatalf("Convert() error: %v", err)
	}
	if !strings.Contains(got, "<Vendor>Brown &amp; Sons &lt;AS&gt;</Vendor>") {
		t.Errorf("expected re-escaped vendor name, got: %s", got)
	}
}

func TestDateTimeInputVariants(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   string
	}{
		{"date only", "2019-03-01", "2019-03-01 00:00:00"},
		{"space separated", "2019-03-01 10:20:30", "2019-03-01 10:20:30"},
		{"t separated", "2019-03-01T10:20:30", "2019-03-01 10:20:30"},
		{"fractional seconds dropped", "2019-03-01T10:20:30.682878Z", "2019-03-01 10:20:30"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			source := fmt.Sprintf(`<export><datapoint schema_id="date_issue">%s</datapoint></export>`, tt.source)
			got, err := Convert(source)
			if err != nil {
				t.Fatalf("Convert() error: %v", err)
			}
			want := fmt.Sprintf("<InvoiceDate>%s</InvoiceDate>", tt.want)
			if !strings.Contains(got, want) {
				t.Errorf("expected %s in output, got: %s", want, got)
			}
		})
	}
}
