package document

import "github.com/mohae/deepcopy"

// Document is the semi-structured JSON content of a resume.
type Document map[string]any

// Top-level keys owned by the normalizers.
const (
	KeyLayout          = "layout"
	KeyHiddenSections  = "hiddenSections"
	KeyVisibleSections = "visibleSections"
	KeyDesign          = "design"
	KeyHeader          = "header"
	KeyExperience      = "experience"
)

func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, m != nil
	case Document:
		return m, m != nil
	}
	return nil, false
}

func asList(v any) ([]any, bool) {
	switch l := v.(type) {
	case []any:
		return l, l != nil
	case []string:
		if l == nil {
			return nil, false
		}
		out := make([]any, len(l))
		for i, s := range l {
			out[i] = s
		}
		return out, true
	}
	return nil, false
}

func cloneValue(v any) any {
	return deepcopy.Copy(v)
}

func cloneDocument(doc Document) Document {
	if doc == nil {
		return Document{}
	}
	out := make(Document, len(doc))
	for k, v := range doc {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneList(l []any) []any {
	out := make([]any, len(l))
	for i, v := range l {
		out[i] = cloneValue(v)
	}
	return out
}

func toAnyList(in []string) []any {
	out := make([]any, len(in))
	for i, s := range in {
		out[i] = s
	}
	return out
}
