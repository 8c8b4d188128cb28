package document

// Mode selects the create or update composition rules.
type Mode int

const (
	ModeCreate Mode = iota
	ModeUpdate
)

// DefaultLayout splits the registry in two columns, the left one taking the
// extra section when the count is odd.
func DefaultLayout() map[string]any {
	sections := Sections()
	mid := (len(sections) + 1) / 2
	return map[string]any{
		"left":  toAnyList(sections[:mid]),
		"right": toAnyList(sections[mid:]),
	}
}

// NormalizeLayout returns the layout to persist for candidate.
// Update mode keeps a client layout whose left and right are both lists; the
// section ids inside are not checked against the registry.
func NormalizeLayout(candidate any, mode Mode) map[string]any {
	return normalizeLayout(candidate, mode, nil)
}

func normalizeLayout(candidate any, mode Mode, report reportFunc) map[string]any {
	if mode == ModeCreate {
		return DefaultLayout()
	}
	if candidate == nil {
		return DefaultLayout()
	}
	layout, ok := asMap(candidate)
	if !ok {
		report.emit(MalformedLayout)
		return DefaultLayout()
	}
	left, leftOK := asList(layout["left"])
	right, rightOK := asList(layout["right"])
	if !leftOK || !rightOK {
		report.emit(MalformedLayout)
		return DefaultLayout()
	}
	out := make(map[string]any, len(layout))
	for k, v := range layout {
		out[k] = cloneValue(v)
	}
	out["left"] = cloneList(left)
	out["right"] = cloneList(right)
	return out
}
