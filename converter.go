package webclip

// Converter serializes clean HTML into an output representation.
type Converter interface {
	// Convert transforms sanitized HTML into the target format.
	// Conversion is deterministic: the same input yields the same output.
	Convert(html string) (string, error)
}
