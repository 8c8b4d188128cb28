package document

import "github.com/mohae/deepcopy"

const keySettings = "settings"

var defaultEntrySettings = map[string]any{
	"title":       true,
	"company":     true,
	"dates":       true,
	"location":    true,
	"description": true,
	"bullets":     true,
}

// DefaultEntrySettings returns a new field-visibility map for an experience
// entry with every field shown.
func DefaultEntrySettings() map[string]any {
	return deepcopy.Copy(defaultEntrySettings).(map[string]any)
}

// NormalizeExperience gives every experience entry without a settings object
// its own copy of the default settings. Entries that already carry settings
// are left alone, partial or not. Anything other than a list is returned
// unchanged.
func NormalizeExperience(candidate any) any {
	entries, ok := asList(candidate)
	if !ok {
		return candidate
	}
	out := make([]any, len(entries))
	for i, raw := range entries {
		entry, isMap := asMap(raw)
		if !isMap {
			out[i] = raw
			continue
		}
		if _, has := entry[keySettings]; has {
			out[i] = entry
			continue
		}
		copied := make(map[string]any, len(entry)+1)
		for k, v := range entry {
			copied[k] = v
		}
		copied[keySettings] = DefaultEntrySettings()
		out[i] = copied
	}
	return out
}
