package document

// NormalizeVisibility derives the per-section visibility map from the hidden
// list and then applies boolean overrides from visibleCandidate.
//
// The hidden list is returned as given (or empty when it is not a list); it
// is not recomputed from the overrides, so the two may disagree.
func NormalizeVisibility(hiddenCandidate, visibleCandidate any) ([]any, map[string]any) {
	return normalizeVisibility(hiddenCandidate, visibleCandidate, nil)
}

func normalizeVisibility(hiddenCandidate, visibleCandidate any, report reportFunc) ([]any, map[string]any) {
	hidden, ok := asList(hiddenCandidate)
	if !ok {
		if hiddenCandidate != nil {
			report.emit(MalformedHiddenSections)
		}
		hidden = []any{}
	} else {
		hidden = cloneList(hidden)
	}

	hiddenSet := make(map[string]struct{}, len(hidden))
	for _, v := range hidden {
		if id, ok := v.(string); ok {
			hiddenSet[id] = struct{}{}
		}
	}

	visible := make(map[string]any, len(knownSections))
	for _, s := range knownSections {
		_, isHidden := hiddenSet[s]
		visible[s] = !isHidden
	}

	overrides, ok := asMap(visibleCandidate)
	if !ok {
		return hidden, visible
	}
	for key, raw := range overrides {
		flag, isBool := raw.(bool)
		if !IsKnownSection(key) || !isBool {
			report.emit(UnknownVisibilityKey)
			continue
		}
		visible[key] = flag
	}
	return hidden, visible
}

func allVisible() map[string]any {
	visible := make(map[string]any, len(knownSections))
	for _, s := range knownSections {
		visible[s] = true
	}
	return visible
}
