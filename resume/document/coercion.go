package document

// Coercion names a malformed input that was replaced by a default.
// Coercions are never returned as errors.
type Coercion string

const (
	MalformedLayout         Coercion = "malformed_layout"
	MalformedDesign         Coercion = "malformed_design"
	MalformedHiddenSections Coercion = "malformed_hidden_sections"
	MalformedHeader         Coercion = "malformed_header"
	UnknownVisibilityKey    Coercion = "unknown_visibility_key"
)

type reportFunc func(Coercion)

func (r reportFunc) emit(c Coercion) {
	if r != nil {
		r(c)
	}
}
