package mapper

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/username/docbridge/backend/src/models"
)

// xmlNode is a generic element tree; encoding/xml fills it recursively for
// documents of any shape.
type xmlNode struct {
	XMLName  xml.Name
	Attrs    []xml.Attr `xml:",any,attr"`
	Children []xmlNode  `xml:",any"`
	Text     string     `xml:",chardata"`
}

func (n *xmlNode) attr(name string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}

// walk visits n and every descendant with the given tag, depth-first in
// document order.
func walk(n *xmlNode, tag string, fn func(*xmlNode)) {
	if n.XMLName.Local == tag {
		fn(n)
	}
	for i := range n.Children {
		walk(&n.Children[i], tag, fn)
	}
}

// cleanWhitespace collapses runs of whitespace (including newlines) to single
// spaces and trims the ends.
func cleanWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// parseDocument decodes the source text into a node tree and rejects
// anything left over after the root element. xml.Unmarshal alone stops at
// the first element, which would silently accept multi-root input; only the
// trailing misc that well-formed XML permits (whitespace, comments,
// processing instructions) is allowed through.
func parseDocument(text string) (*xmlNode, error) {
	dec := xml.NewDecoder(strings.NewReader(text))
	var root xmlNode
	if err := dec.Decode(&root); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return &root, nil
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrParse, err)
		}
		switch t := tok.(type) {
		case xml.CharData:
			if strings.TrimSpace(string(t)) != "" {
				return nil, fmt.Errorf("%w: junk after document element", ErrParse)
			}
		case xml.Comment, xml.ProcInst:
			// permitted trailing misc
		default:
			return nil, fmt.Errorf("%w: junk after document element", ErrParse)
		}
	}
}

// Extract parses a source annotation export and collects the mapped header
// and line-item fields into typed records. Returns ErrParse for malformed
// XML and ErrValidation when a recognized field's text fails coercion.
func Extract(text string) (*models.Payable, []models.Detail, error) {
	root, err := parseDocument(text)
	if err != nil {
		return nil, nil, err
	}

	// Line items live under section[schema_id=line_items_section]; each tuple
	// descendant is one item, at whatever nesting depth.
	var rawDetails []map[string]string
	walk(root, "section", func(section *xmlNode) {
		if id, _ := section.attr("schema_id"); id != lineItemsSectionID {
			return
		}
		walk(section, "tuple", func(tuple *xmlNode) {
			fields := make(map[string]string)
			walk(tuple, "datapoint", func(dp *xmlNode) {
				id, ok := dp.attr("schema_id")
				if !ok {
					return
				}
				if tag, ok := detailSchemaIDToTag[id]; ok {
					fields[tag] = cleanWhitespace(dp.Text)
				}
			})
			rawDetails = append(rawDetails, fields)
		})
	})

	// Header datapoints are matched anywhere in the document; duplicates are
	// last-write-wins in document order, like the upstream export tooling.
	headerFields := make(map[string]string)
	walk(root, "datapoint", func(dp *xmlNode) {
		id, ok := dp.attr("schema_id")
		if !ok {
			return
		}
		if tag, ok := headerSchemaIDToTag[id]; ok {
			headerFields[tag] = cleanWhitespace(dp.Text)
		}
	})

	payable, err := newPayable(headerFields)
	if err != nil {
		return nil, nil, err
	}

	details := make([]models.Detail, 0, len(rawDetails))
	for _, fields := range rawDetails {
		detail, err := newDetail(fields)
		if err != nil {
			return nil, nil, err
		}
		details = append(details, *detail)
	}

	return payable, details, nil
}

func newPayable(fields map[string]string) (*models.Payable, error) {
	p := &models.Payable{}
	var err error
	if p.InvoiceNumber, err = parsePositiveInt("InvoiceNumber", fields["InvoiceNumber"]); err != nil {
		return nil, err
	}
	if p.InvoiceDate, err = parseDateTime("InvoiceDate", fields["InvoiceDate"]); err != nil {
		return nil, err
	}
	if p.DueDate, err = parseDateTime("DueDate", fields["DueDate"]); err != nil {
		return nil, err
	}
	if p.TotalAmount, err = parseDecimal("TotalAmount", fields["TotalAmount"]); err != nil {
		return nil, err
	}
	p.Iban = parseText(fields["Iban"])
	if p.Amount, err = parseDecimal("Amount", fields["Amount"]); err != nil {
		return nil, err
	}
	if p.Currency, err = parseCurrency("Currency", fields["Currency"]); err != nil {
		return nil, err
	}
	p.Vendor = parseText(fields["Vendor"])
	p.VendorAddress = parseText(fields["VendorAddress"])
	return p, nil
}

func newDetail(fields map[string]string) (*models.Detail, error) {
	d := &models.Detail{}
	var err error
	if d.Amount, err = parseDecimal("Amount", fields["Amount"]); err != nil {
		return nil, err
	}
	if d.Quantity, err = parsePositiveInt("Quantity", fields["Quantity"]); err != nil {
		return nil, err
	}
	d.Notes = parseText(fields["Notes"])
	return d, nil
}
