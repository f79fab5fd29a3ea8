// Package mapper remaps document-AI annotation exports into the target
// invoice-register XML schema. Extraction walks the source tree for
// schema_id-tagged datapoints, coerces their text into typed records, and
// Build reserializes those records under a fixed element ordering.
package mapper

// Convert runs the full extract-and-reserialize pipeline over one source
// document.
func Convert(text string) (string, error) {
	payable, details, err := Extract(text)
	if err != nil {
		return "", err
	}
	return Build(payable, details), nil
}
